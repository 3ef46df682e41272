package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/winytils/release/internal/domain"
)

func TestStepExecutor_Execute(t *testing.T) {
	t.Run("Should execute all steps in order", func(t *testing.T) {
		// Arrange
		var order []string
		step := func(name string) domain.Step {
			return domain.Step{
				Kind: domain.StepKind(name),
				Name: name,
				Run: func(_ context.Context) error {
					order = append(order, name)
					return nil
				},
			}
		}
		executor := NewStepExecutor(zap.NewNop())

		// Act
		err := executor.Execute(context.Background(), []domain.Step{
			step("first"), step("second"), step("third"),
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, []string{"first", "second", "third"}, order)
	})

	t.Run("Should skip remaining steps after a failure", func(t *testing.T) {
		// Arrange
		var order []string
		boom := errors.New("boom")
		steps := []domain.Step{
			{Kind: "first", Run: func(_ context.Context) error {
				order = append(order, "first")
				return nil
			}},
			{Kind: "second", Run: func(_ context.Context) error {
				order = append(order, "second")
				return boom
			}},
			{Kind: "third", Run: func(_ context.Context) error {
				order = append(order, "third")
				return nil
			}},
		}
		executor := NewStepExecutor(zap.NewNop())

		// Act
		err := executor.Execute(context.Background(), steps)

		// Assert
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("Should run an AfterFailure step when its predecessor failed", func(t *testing.T) {
		// Arrange
		var order []string
		boom := errors.New("upload rejected")
		steps := []domain.Step{
			{Kind: "upload", Run: func(_ context.Context) error {
				order = append(order, "upload")
				return boom
			}},
			{Kind: "cleanup", AfterFailure: true, Run: func(_ context.Context) error {
				order = append(order, "cleanup")
				return nil
			}},
		}
		executor := NewStepExecutor(zap.NewNop())

		// Act
		err := executor.Execute(context.Background(), steps)

		// Assert
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"upload", "cleanup"}, order)
	})

	t.Run("Should skip an AfterFailure step when an earlier step failed", func(t *testing.T) {
		// Arrange
		var order []string
		boom := errors.New("build failed")
		steps := []domain.Step{
			{Kind: "build", Run: func(_ context.Context) error {
				order = append(order, "build")
				return boom
			}},
			{Kind: "upload", Run: func(_ context.Context) error {
				order = append(order, "upload")
				return nil
			}},
			{Kind: "cleanup", AfterFailure: true, Run: func(_ context.Context) error {
				order = append(order, "cleanup")
				return nil
			}},
		}
		executor := NewStepExecutor(zap.NewNop())

		// Act
		err := executor.Execute(context.Background(), steps)

		// Assert
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"build"}, order)
	})

	t.Run("Should keep the first error over an AfterFailure step error", func(t *testing.T) {
		// Arrange
		uploadErr := errors.New("upload rejected")
		cleanupErr := errors.New("cleanup failed")
		steps := []domain.Step{
			{Kind: "upload", Run: func(_ context.Context) error { return uploadErr }},
			{Kind: "cleanup", AfterFailure: true, Run: func(_ context.Context) error { return cleanupErr }},
		}
		executor := NewStepExecutor(zap.NewNop())

		// Act
		err := executor.Execute(context.Background(), steps)

		// Assert
		assert.ErrorIs(t, err, uploadErr)
		assert.NotErrorIs(t, err, cleanupErr)
	})

	t.Run("Should propagate an AfterFailure step error on the success path", func(t *testing.T) {
		// Arrange
		cleanupErr := errors.New("cleanup failed")
		steps := []domain.Step{
			{Kind: "upload", Run: func(_ context.Context) error { return nil }},
			{Kind: "cleanup", AfterFailure: true, Run: func(_ context.Context) error { return cleanupErr }},
		}
		executor := NewStepExecutor(zap.NewNop())

		// Act
		err := executor.Execute(context.Background(), steps)

		// Assert
		assert.ErrorIs(t, err, cleanupErr)
	})
}
