package orchestrator

import (
	"context"

	"go.uber.org/zap"

	"github.com/winytils/release/internal/domain"
)

// StepExecutor runs release steps strictly in order and halts at the
// first failure. Steps are never retried.
type StepExecutor struct {
	logger *zap.Logger
}

// NewStepExecutor creates a new StepExecutor.
func NewStepExecutor(logger *zap.Logger) *StepExecutor {
	return &StepExecutor{logger: logger}
}

// Execute runs the steps in order. On the first failure the remaining
// steps are skipped, with one exception: a step marked AfterFailure
// still runs when its immediate predecessor was the step that failed.
// That keeps the output-directory cleanup tied to the upload attempt
// while leaving a failed build's partial output in place. The first
// error is always the one returned; an AfterFailure step's own error is
// logged, never propagated over it.
func (e *StepExecutor) Execute(ctx context.Context, steps []domain.Step) error {
	var firstErr error
	failedAt := -1
	for i := range steps {
		step := steps[i]
		if firstErr != nil {
			if !step.AfterFailure || failedAt != i-1 {
				continue
			}
		}
		e.logger.Info("running step",
			zap.String("step", string(step.Kind)),
			zap.String("name", step.Name))
		err := step.Run(ctx)
		if err == nil {
			continue
		}
		if firstErr != nil {
			e.logger.Warn("step failed after earlier failure",
				zap.String("step", string(step.Kind)),
				zap.Error(err))
			continue
		}
		e.logger.Error("step failed",
			zap.String("step", string(step.Kind)),
			zap.String("name", step.Name),
			zap.Error(err))
		firstErr = err
		failedAt = i
	}
	return firstErr
}
