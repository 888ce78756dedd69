package scenario

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"

	"project-feasibility/internal/cache"
	"project-feasibility/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service wraps Calculate with an optional memo cache keyed by the content hash of
// (inputs, recomputeEquity, events without their ids). The engine itself stays pure; every call returns a
// freshly decoded Result, so callers never share one.
type Service struct {
	store  cache.Store
	logger *zap.Logger
}

// NewService creates a service. store may be nil to disable memoization.
func NewService(store cache.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Variation is a named event list evaluated against a shared base.
type Variation struct {
	Name   string
	Events []model.Event
}

func (s *Service) Calculate(ctx context.Context, in model.InputModel, recomputeEquity bool, events []model.Event) (*Result, error) {
	if len(events) == 0 {
		events = nil
	}
	if s.store == nil {
		return Calculate(in, recomputeEquity, events)
	}

	key, err := cache.Key(in, recomputeEquity, anonymous(events))
	if err != nil {
		// Unhashable inputs (e.g. NaN) are rejected by Calculate anyway.
		return Calculate(in, recomputeEquity, events)
	}

	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("memo cache get failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		res, err := decodeResult(raw)
		if err == nil {
			s.logger.Debug("memo cache hit", zap.String("key", key))
			if res.Events != nil {
				// the entry may come from a run whose events carried other ids
				res.Events = model.CloneEvents(events)
			}
			return res, nil
		}
		s.logger.Warn("memo cache entry undecodable", zap.String("key", key), zap.Error(err))
	}

	res, err := Calculate(in, recomputeEquity, events)
	if err != nil {
		return nil, err
	}

	enc, err := encodeResult(res)
	if err != nil {
		s.logger.Warn("memo cache encode failed", zap.Error(err))
		return res, nil
	}
	if err := s.store.Set(ctx, key, enc); err != nil {
		s.logger.Warn("memo cache set failed", zap.String("key", key), zap.Error(err))
	}
	return res, nil
}

// Compare runs the base case and the event scenario concurrently and diffs them.
func (s *Service) Compare(ctx context.Context, in model.InputModel, events []model.Event) (*Comparison, error) {
	var base, scen *Result
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		base, err = s.Calculate(gCtx, in, true, nil)
		return err
	})
	g.Go(func() error {
		var err error
		scen, err = s.Calculate(gCtx, in, true, events)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmp, err := Compare(base, scen)
	if err != nil {
		return nil, err
	}
	s.logger.Info("scenario compared",
		zap.Int("events", len(events)),
		zap.Float64("npv_equity_diff", cmp.NPVEquity.Diff),
		zap.Float64("irr_equity_diff", cmp.IRREquity.Diff))
	return cmp, nil
}

// Rank evaluates each variation concurrently and orders them by equity NPV.
// Any invalid variation fails the whole call.
func (s *Service) Rank(ctx context.Context, in model.InputModel, variations []Variation) ([]Named, error) {
	out := make([]Named, len(variations))
	g, gCtx := errgroup.WithContext(ctx)
	for i, v := range variations {
		i, v := i, v
		g.Go(func() error {
			res, err := s.Calculate(gCtx, in, true, v.Events)
			if err != nil {
				return fmt.Errorf("variation %q: %w", v.Name, err)
			}
			out[i] = Named{Name: v.Name, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Rank(out), nil
}

// anonymous strips event ids, which label events for editing but never affect the projection.
func anonymous(events []model.Event) []model.Event {
	out := model.CloneEvents(events)
	for i := range out {
		out[i].ID = ""
	}
	return out
}

func encodeResult(r *Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeResult(raw []byte) (*Result, error) {
	var r Result
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}
