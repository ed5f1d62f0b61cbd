package fast2d

import (
	"context"
	"fmt"
)

// ProcessingStep is one stage of a Mat-to-Mat transformation, run as part
// of a ProcessingChain. ShouldExecute lets a step opt out based on
// parameters (e.g. skipping the Gaussian blur when its sigma is not
// positive) without the chain needing to know why.
type ProcessingStep interface {
	Apply(ctx context.Context, input *Mat, params map[string]interface{}) (*Mat, error)
	Name() string
	ShouldExecute(params map[string]interface{}) bool
}

// ProcessingChain runs a sequence of steps, closing each intermediate Mat
// as soon as the next step has consumed it. Cancellation is checked
// between steps only, matching spec.md §5's "cooperative at frame
// boundaries" rule: once a step starts, it runs to completion.
type ProcessingChain struct {
	steps []ProcessingStep
}

func NewProcessingChain(steps []ProcessingStep) *ProcessingChain {
	return &ProcessingChain{steps: steps}
}

func (pc *ProcessingChain) Execute(ctx context.Context, input *Mat, params map[string]interface{}) (*Mat, error) {
	current := input
	owned := false

	for _, step := range pc.steps {
		select {
		case <-ctx.Done():
			if owned {
				current.Close()
			}
			return nil, ctx.Err()
		default:
		}

		if !step.ShouldExecute(params) {
			continue
		}

		result, err := step.Apply(ctx, current, params)
		if err != nil {
			if owned {
				current.Close()
			}
			return nil, fmt.Errorf("fast2d: step %s failed: %w", step.Name(), err)
		}

		if owned {
			current.Close()
		}
		current = result
		owned = true
	}

	return current, nil
}

func (pc *ProcessingChain) AddStep(step ProcessingStep) {
	pc.steps = append(pc.steps, step)
}

func (pc *ProcessingChain) StepCount() int {
	return len(pc.steps)
}

func (pc *ProcessingChain) StepNames() []string {
	names := make([]string, len(pc.steps))
	for i, step := range pc.steps {
		names[i] = step.Name()
	}
	return names
}
