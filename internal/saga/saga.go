// Package saga runs ordered side-effecting steps and undoes completed ones,
// newest first, when a later step fails. State is local to one Saga value and
// is never shared between requests.
package saga

import (
	"context"

	"go.uber.org/zap"
)

// Step is a forward action paired with the compensator that reverses it.
// Compensate may be nil for steps with nothing to undo.
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

type compensation struct {
	step string
	undo func(ctx context.Context) error
}

// Saga keeps the compensation log of a single execution
type Saga struct {
	name          string
	logger        *zap.Logger
	compensations []compensation
}

func New(name string, logger *zap.Logger) *Saga {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saga{
		name:   name,
		logger: logger.With(zap.String("saga", name)),
	}
}

// Run executes a step. On success its compensator is registered; on failure all
// registered compensators run in reverse order and the step's error is returned as is.
func (s *Saga) Run(ctx context.Context, step Step) error {
	if err := step.Action(ctx); err != nil {
		s.logger.Error("saga step failed",
			zap.String("step", step.Name),
			zap.Int("compensations", len(s.compensations)),
			zap.Error(err))
		s.Compensate(ctx)
		return err
	}

	if step.Compensate != nil {
		s.compensations = append(s.compensations, compensation{step: step.Name, undo: step.Compensate})
	}
	s.logger.Debug("saga step completed", zap.String("step", step.Name))
	return nil
}

// RunBestEffort executes a step whose failure must not abort the saga.
// The error is logged and dropped; nothing is registered or compensated.
func (s *Saga) RunBestEffort(ctx context.Context, step Step) {
	if err := step.Action(ctx); err != nil {
		s.logger.Warn("best-effort saga step failed",
			zap.String("step", step.Name),
			zap.Error(err))
	}
}

// Compensate runs and clears every registered compensator, newest first.
// A failing compensator is logged and the remaining ones still run.
func (s *Saga) Compensate(ctx context.Context) {
	// Compensators run even when the caller context is already cancelled.
	ctx = context.WithoutCancel(ctx)

	for i := len(s.compensations) - 1; i >= 0; i-- {
		c := s.compensations[i]
		if err := c.undo(ctx); err != nil {
			s.logger.Error("saga compensation failed",
				zap.String("step", c.step),
				zap.Error(err))
			continue
		}
		s.logger.Info("saga step compensated", zap.String("step", c.step))
	}
	s.compensations = nil
}
