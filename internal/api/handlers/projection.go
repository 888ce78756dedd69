package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"project-feasibility/internal/api/models"
	"project-feasibility/internal/config"
	"project-feasibility/internal/data"
	"project-feasibility/internal/model"
	"project-feasibility/internal/projection"
	"project-feasibility/internal/scenario"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errPresetNotFound is reported as INVALID_REQUEST.
var errPresetNotFound = errors.New("project preset not found")

// ProjectionHandler handles projection, comparison and ranking requests
type ProjectionHandler struct {
	svc        *scenario.Service
	projectDir string
	logger     *zap.Logger
}

// NewProjectionHandler creates a new projection handler. Presets named by project_file
// are looked up in projectDir.
func NewProjectionHandler(svc *scenario.Service, projectDir string, logger *zap.Logger) *ProjectionHandler {
	return &ProjectionHandler{svc: svc, projectDir: projectDir, logger: logger}
}

// RunProjection handles POST /api/v1/projection
func (h *ProjectionHandler) RunProjection(c *gin.Context) {
	var req models.ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in, err := h.buildInputs(req.ProjectFile, req.Project)
	if err != nil {
		h.writeError(c, err)
		return
	}

	recompute := true
	if req.RecomputeEquity != nil {
		recompute = *req.RecomputeEquity
	}

	res, err := h.svc.Calculate(c.Request.Context(), in, recompute, data.WithIDs(req.Events))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildResponse(res, req.Options.IncludeAnnual))
}

// CompareScenario handles POST /api/v1/scenario/compare
func (h *ProjectionHandler) CompareScenario(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in, err := h.buildInputs(req.ProjectFile, req.Project)
	if err != nil {
		h.writeError(c, err)
		return
	}

	cmp, err := h.svc.Compare(c.Request.Context(), in, data.WithIDs(req.Events))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ComparisonResponse{
		Comparison: []models.MetricComparison{
			metricRow("irr", cmp.IRR),
			metricRow("irr_equity", cmp.IRREquity),
			metricRow("npv_equity", cmp.NPVEquity),
			metricRow("payback_years", cmp.Payback),
			metricRow("npv", cmp.NPV),
			metricRow("lcoe", cmp.LCOE),
		},
		Base:     buildResponse(cmp.Base, req.Options.IncludeAnnual),
		Scenario: buildResponse(cmp.Scenario, req.Options.IncludeAnnual),
	})
}

// RankScenarios handles POST /api/v1/scenario/rank
func (h *ProjectionHandler) RankScenarios(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in, err := h.buildInputs(req.ProjectFile, req.Project)
	if err != nil {
		h.writeError(c, err)
		return
	}

	variations := make([]scenario.Variation, len(req.Variations))
	for i, v := range req.Variations {
		variations[i] = scenario.Variation{Name: v.Name, Events: data.WithIDs(v.Events)}
	}

	ranked, err := h.svc.Rank(c.Request.Context(), in, variations)
	if err != nil {
		h.writeError(c, err)
		return
	}

	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:    i + 1,
			Name:    r.Name,
			Metrics: buildMetrics(r.Result),
		}
	}
	c.JSON(http.StatusOK, models.RankResponse{Rankings: rankings})
}

// Helper methods

func (h *ProjectionHandler) buildInputs(projectFile string, req models.ProjectConfig) (model.InputModel, error) {
	project := toProjectConfig(req)

	// project_file is the preset id (e.g. "1_solar_50mw"), always looked up in the preset directory
	if projectFile != "" {
		path, ok := data.PresetPath(h.projectDir, projectFile)
		if !ok {
			return model.InputModel{}, fmt.Errorf("%w: %q", errPresetNotFound, projectFile)
		}
		loaded, err := config.LoadProjectFile(path)
		if err != nil {
			h.logger.Warn("failed to load project preset", zap.String("file", path), zap.Error(err))
			return model.InputModel{}, fmt.Errorf("%w: %q", errPresetNotFound, projectFile)
		}
		// Merge: preset is base, request is override
		project = config.MergeProject(loaded, project)
	}

	return model.NewInputModel(project.ToModel())
}

func (h *ProjectionHandler) writeError(c *gin.Context, err error) {
	status, code := http.StatusBadRequest, ""
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		code = "INVALID_INPUT"
	case errors.Is(err, model.ErrInvalidEvent):
		code = "INVALID_EVENT"
	case errors.Is(err, scenario.ErrIncompatibleHorizon):
		code = "INCOMPATIBLE_HORIZON"
	case errors.Is(err, errPresetNotFound):
		code = "INVALID_REQUEST"
	default:
		status, code = http.StatusInternalServerError, "INTERNAL_ERROR"
		h.logger.Error("projection failed", zap.Error(err))
	}
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

func toProjectConfig(p models.ProjectConfig) config.ProjectConfig {
	return config.ProjectConfig{
		Name:                p.Name,
		ProjectLifeYears:    p.ProjectLifeYears,
		Capacity:            p.Capacity,
		PeakPrice:           p.PeakPrice,
		OffPeakPrice:        p.OffPeakPrice,
		PeakShare:           p.PeakShare,
		FixedOpex:           p.FixedOpex,
		VariableOpexRate:    p.VariableOpexRate,
		FuelCost:            p.FuelCost,
		EquityRatio:         p.EquityRatio,
		DebtInterestRate:    p.DebtInterestRate,
		DebtTenorYears:      p.DebtTenorYears,
		DiscountRateProject: p.DiscountRateProject,
		DiscountRateEquity:  p.DiscountRateEquity,
		CapexSchedule:       p.CapexSchedule,
	}
}

func buildResponse(res *scenario.Result, includeAnnual bool) models.ProjectionResponse {
	response := models.ProjectionResponse{
		Status:  "completed",
		Metrics: buildMetrics(res),
		Series: models.Series{
			CashFlows:           res.CashFlows,
			CumulativeCashFlows: res.CumulativeCashFlows,
			EquityCashFlows:     res.EquityCashFlows,
		},
		Details: models.CostDetails{
			AnnualFixedCost:    res.Details.AnnualFixedCost,
			AnnualVariableCost: res.Details.AnnualVariableCost,
			AnnualFinanceCost:  res.Details.AnnualFinanceCost,
		},
		Inputs: res.Inputs,
		Events: res.Events,
	}
	if includeAnnual {
		response.Annual = convertAnnual(res.Annual)
	}
	return response
}

func buildMetrics(res *scenario.Result) models.Metrics {
	return models.Metrics{
		NPV:          metric(res.NPV),
		NPVEquity:    metric(res.NPVEquity),
		IRR:          metric(res.IRR),
		IRREquity:    metric(res.IRREquity),
		LCOE:         metric(res.LCOE),
		PaybackYears: metric(res.Payback),
	}
}

func metricRow(name string, d scenario.MetricDelta) models.MetricComparison {
	return models.MetricComparison{
		Metric:   name,
		Base:     metric(d.Base),
		Scenario: metric(d.Scenario),
		Diff:     metric(d.Diff),
	}
}

// metric maps NaN / ±Inf sentinels to null.
func metric(v float64) *float64 {
	if !scenario.Defined(v) {
		return nil
	}
	return &v
}

func convertAnnual(annual []projection.AnnualRecord) []models.AnnualRow {
	result := make([]models.AnnualRow, len(annual))
	for i, r := range annual {
		result[i] = models.AnnualRow{
			Year:            r.Year,
			Capacity:        r.Capacity,
			Output:          r.Output,
			PeakRevenue:     r.PeakRevenue,
			OffPeakRevenue:  r.OffPeakRevenue,
			Revenue:         r.Revenue,
			FixedCost:       r.FixedCost,
			VariableCost:    r.VariableCost,
			FuelCost:        r.FuelCost,
			Capex:           r.Capex,
			FinanceCost:     r.FinanceCost,
			InterestPaid:    r.InterestPaid,
			PrincipalPaid:   r.PrincipalPaid,
			DebtBalance:     r.DebtBalance,
			EBITDA:          r.EBITDA,
			ProjectCashFlow: r.ProjectCashFlow,
			EquityCashFlow:  r.EquityCashFlow,
		}
	}
	return result
}
