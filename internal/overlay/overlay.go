package overlay

import (
	"fmt"

	"project-feasibility/internal/model"
)

// YearParams are the effective perturbable parameters for one year.
type YearParams struct {
	Capacity         float64
	PeakPrice        float64
	OffPeakPrice     float64
	FixedOpex        float64
	VariableOpexRate float64
	FuelCost         float64
}

// Table is indexed by year, 0..ProjectLifeYears inclusive.
type Table []YearParams

// Base builds the unperturbed table for in.
func Base(in model.InputModel) Table {
	t := make(Table, in.ProjectLifeYears+1)
	for y := range t {
		t[y] = YearParams{
			Capacity:         in.Capacity,
			PeakPrice:        in.PeakPrice,
			OffPeakPrice:     in.OffPeakPrice,
			FixedOpex:        in.FixedOpex,
			VariableOpexRate: in.VariableOpexRate,
			FuelCost:         in.FuelCost,
		}
	}
	return t
}

// Apply overlays events onto the base parameters of in.
//
// Events are applied in slice order. Events touching the same parameter and year compose
// sequentially (percent and delta compound, absolute overwrites), so reordering events can
// change the result. All events are validated before any is applied.
func Apply(in model.InputModel, events []model.Event) (Table, error) {
	if err := model.ValidateEvents(events, in.ProjectLifeYears); err != nil {
		return nil, err
	}
	t := Base(in)
	for _, e := range events {
		for y := e.StartYear; y <= e.EndYear; y++ {
			p, err := t[y].field(e.Type)
			if err != nil {
				return nil, err
			}
			*p = e.Mode.Apply(*p, e.Value)
		}
	}
	return t, nil
}

func (p *YearParams) field(t model.EventType) (*float64, error) {
	switch t {
	case model.EventCapacity:
		return &p.Capacity, nil
	case model.EventPricePeak:
		return &p.PeakPrice, nil
	case model.EventPriceOffPeak:
		return &p.OffPeakPrice, nil
	case model.EventExpenseOpex:
		return &p.FixedOpex, nil
	case model.EventExpenseFuel:
		return &p.FuelCost, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", model.ErrInvalidEvent, t)
	}
}
