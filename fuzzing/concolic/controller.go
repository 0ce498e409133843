package concolic

import (
	"context"

	"github.com/cinderfuzz/cinder/fuzzing/calls"
	"github.com/cinderfuzz/cinder/logging"
)

// Controller adaptively decides when symbolic exploration should replace a mutation step. It escalates faster while
// coverage stagnates and backs off while plain mutation keeps finding new coverage.
type Controller struct {
	// enabled indicates whether escalation may fire at all.
	enabled bool

	// executor is the symbolic executor invoked on escalation.
	executor Executor

	// stagnantSteps counts the steps observed since the last coverage gain.
	stagnantSteps int

	// waitThreshold is the current number of stagnant steps tolerated before escalating. Tuned during the run,
	// floored at 1.
	waitThreshold float64

	// rewardGainFactor scales how aggressively waitThreshold shrinks after a successful symbolic step.
	rewardGainFactor float64

	// penaltyFactor scales how waitThreshold grows while mutation alone keeps gaining coverage.
	penaltyFactor float64

	// logger describes the Controller's log object.
	logger *logging.Logger
}

// NewController creates an escalation controller around the given symbolic executor. A nil executor disables
// escalation regardless of the enabled flag.
func NewController(enabled bool, executor Executor, initialWait float64, rewardGainFactor float64, penaltyFactor float64, logger *logging.Logger) *Controller {
	return &Controller{
		enabled:          enabled && executor != nil,
		executor:         executor,
		waitThreshold:    initialWait,
		rewardGainFactor: rewardGainFactor,
		penaltyFactor:    penaltyFactor,
		logger:           logger,
	}
}

// ShouldEscalate indicates whether the current step should attempt symbolic exploration instead of plain mutation.
func (c *Controller) ShouldEscalate() bool {
	return c.enabled && float64(c.stagnantSteps) >= c.waitThreshold
}

// Escalate invokes the symbolic executor against the given sequence and branch targets. If a non-empty candidate
// sequence is returned, the stagnation counter resets and the wait threshold shrinks, since a successful symbolic
// step just proved its value. Returns the candidate sequence, or nil if the executor found nothing.
func (c *Controller) Escalate(ctx context.Context, sequence *calls.CallSequence, targetBranches map[uint64]struct{}) (*calls.CallSequence, error) {
	candidate, err := c.executor.Run(ctx, sequence, targetBranches)
	if err != nil {
		return nil, err
	}
	if candidate == nil || candidate.OccupiedCount() == 0 {
		return nil, nil
	}

	c.stagnantSteps = 0
	c.waitThreshold = c.waitThreshold / (c.rewardGainFactor * c.penaltyFactor)
	if c.waitThreshold < 1 {
		c.waitThreshold = 1
	}
	c.logger.Debug("symbolic exploration produced a candidate sequence, wait threshold lowered to ", c.waitThreshold)
	return candidate, nil
}

// Observe updates the controller's bookkeeping after a step resolved. Improved coverage resets the stagnation
// counter and raises the wait threshold, so escalation stays rare while mutation is productive; unchanged coverage
// increments the counter.
func (c *Controller) Observe(coverageImproved bool) {
	if coverageImproved {
		c.stagnantSteps = 0
		c.waitThreshold *= c.penaltyFactor
		return
	}
	c.stagnantSteps++
}

// StagnantSteps returns the number of steps observed since the last coverage gain.
func (c *Controller) StagnantSteps() int {
	return c.stagnantSteps
}

// WaitThreshold returns the current escalation threshold.
func (c *Controller) WaitThreshold() float64 {
	return c.waitThreshold
}
