package handlers

import (
	"net/http"

	"project-feasibility/internal/api/models"
	"project-feasibility/internal/model"

	"github.com/gin-gonic/gin"
)

var eventTypeInfo = map[model.EventType]models.EventTypeInfo{
	model.EventCapacity: {
		Target:      "capacity",
		Description: "Scales plant output. Revenue and variable opex follow.",
	},
	model.EventPricePeak: {
		Target:      "peak_price",
		Description: "Tariff applied to the peak share of output.",
	},
	model.EventPriceOffPeak: {
		Target:      "off_peak_price",
		Description: "Tariff applied to the off-peak share of output.",
	},
	model.EventExpenseOpex: {
		Target:      "fixed_opex",
		Description: "Annual fixed operating cost.",
	},
	model.EventExpenseFuel: {
		Target:      "fuel_cost",
		Description: "Annual fuel cost.",
	},
}

var eventModeInfo = map[model.EventMode]models.EventModeInfo{
	model.ModePercent: {
		Formula:     "p * (1 + v/100)",
		Description: "Change by a percentage of the current value (e.g. -10 for a 10% cut)",
	},
	model.ModeAbsolute: {
		Formula:     "v",
		Description: "Replace the current value",
	},
	model.ModeDelta: {
		Formula:     "p + v",
		Description: "Add v to the current value",
	},
}

// ListEventTypes handles GET /api/v1/event-types
func ListEventTypes(c *gin.Context) {
	catalog := models.EventCatalog{
		Types:   make([]models.EventTypeInfo, 0, len(model.EventTypes)),
		Modes:   make([]models.EventModeInfo, 0, len(model.EventModes)),
		Default: model.DefaultEvent(""),
	}
	for _, t := range model.EventTypes {
		info := eventTypeInfo[t]
		info.Name = string(t)
		catalog.Types = append(catalog.Types, info)
	}
	for _, m := range model.EventModes {
		info := eventModeInfo[m]
		info.Name = string(m)
		catalog.Modes = append(catalog.Modes, info)
	}
	c.JSON(http.StatusOK, catalog)
}
