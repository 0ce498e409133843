package concolic

import (
	"context"
	"math/big"
	"testing"

	"github.com/cinderfuzz/cinder/fuzzing/calls"
	"github.com/cinderfuzz/cinder/logging"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// fixedExecutor is a symbolic executor returning a fixed candidate sequence.
type fixedExecutor struct {
	candidate *calls.CallSequence
	runs      int
}

func (e *fixedExecutor) Run(ctx context.Context, sequence *calls.CallSequence, targetBranches map[uint64]struct{}) (*calls.CallSequence, error) {
	e.runs++
	return e.candidate, nil
}

// occupiedSequence builds a sequence with a single scheduled call.
func occupiedSequence() *calls.CallSequence {
	sequence := calls.NewCallSequence(1)
	sequence.Set(0, calls.OccupiedSlot(calls.NewCall(common.Address{1}, big.NewInt(0), []byte{0x01}, "aabbccdd", nil)))
	return sequence
}

func testLogger() *logging.Logger {
	return logging.NewLogger(zerolog.Disabled, false)
}

// TestControllerEscalatesAfterWaitThreshold verifies escalation does not fire until the configured number of
// stagnant steps has accumulated.
func TestControllerEscalatesAfterWaitThreshold(t *testing.T) {
	controller := NewController(true, &fixedExecutor{}, 5, 2, 2, testLogger())

	for i := 0; i < 5; i++ {
		assert.False(t, controller.ShouldEscalate(), "escalated after %d stagnant steps", i)
		controller.Observe(false)
	}
	// The sixth step sees five accumulated stagnant steps.
	assert.True(t, controller.ShouldEscalate())
}

// TestControllerCoverageGainRaisesThreshold verifies coverage gains reset stagnation and back escalation off.
func TestControllerCoverageGainRaisesThreshold(t *testing.T) {
	controller := NewController(true, &fixedExecutor{}, 5, 2, 2, testLogger())

	controller.Observe(false)
	controller.Observe(false)
	controller.Observe(true)
	assert.Zero(t, controller.StagnantSteps())
	assert.Equal(t, 10.0, controller.WaitThreshold())
}

// TestControllerSuccessfulEscalationLowersThreshold verifies a productive symbolic step shrinks the wait threshold,
// floored at 1.
func TestControllerSuccessfulEscalationLowersThreshold(t *testing.T) {
	executor := &fixedExecutor{candidate: occupiedSequence()}
	controller := NewController(true, executor, 8, 2, 2, testLogger())

	candidate, err := controller.Escalate(context.Background(), occupiedSequence(), nil)
	assert.NoError(t, err)
	assert.NotNil(t, candidate)
	assert.Equal(t, 2.0, controller.WaitThreshold())
	assert.Zero(t, controller.StagnantSteps())

	// Repeated successes floor at 1.
	_, err = controller.Escalate(context.Background(), occupiedSequence(), nil)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, controller.WaitThreshold())
}

// TestControllerEmptyCandidateKeepsThreshold verifies an unproductive symbolic step leaves the bookkeeping alone.
func TestControllerEmptyCandidateKeepsThreshold(t *testing.T) {
	executor := &fixedExecutor{candidate: calls.NewCallSequence(1)}
	controller := NewController(true, executor, 8, 2, 2, testLogger())
	controller.Observe(false)

	candidate, err := controller.Escalate(context.Background(), occupiedSequence(), nil)
	assert.NoError(t, err)
	assert.Nil(t, candidate)
	assert.Equal(t, 8.0, controller.WaitThreshold())
	assert.Equal(t, 1, controller.StagnantSteps())
}

// TestControllerDisabledWithoutExecutor verifies a nil executor disables escalation no matter the configuration.
func TestControllerDisabledWithoutExecutor(t *testing.T) {
	controller := NewController(true, nil, 1, 2, 2, testLogger())
	for i := 0; i < 10; i++ {
		controller.Observe(false)
	}
	assert.False(t, controller.ShouldEscalate())
}
