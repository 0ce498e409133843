package fuzzing

import (
	"testing"

	"github.com/cinderfuzz/cinder/fuzzing/staticanalysis"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSenders = []common.Address{{0x01}, {0x02}, {0x03}}

// TestMutateOutOfBoundsIndex verifies action indices outside the sequence fail with ErrInvalidAction.
func TestMutateOutOfBoundsIndex(t *testing.T) {
	contract := testContract(t)
	mutator := newTestMutator(testSenders, 1)
	state := NewState(contract.Report(), 4)

	_, err := mutator.Mutate(contract, state, Action{ID: ActionModifyArgs, Arg: -1})
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = mutator.Mutate(contract, state, Action{ID: ActionModifyArgs, Arg: 4})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

// TestMutateGapFillOverridesAction verifies any action against a sequence with an empty trailing slot becomes a
// replacement of that trailing slot, keeping the occupied run growing from the front.
func TestMutateGapFillOverridesAction(t *testing.T) {
	contract := testContract(t)
	selectors := testSelectors(t)
	mutator := newTestMutator(testSenders, 1)
	state := NewState(contract.Report(), 4)

	mutated, err := mutator.Mutate(contract, state, Action{ID: ActionModifySender, Arg: 0})
	require.NoError(t, err)

	// The trailing slot got filled; the targeted slot did not change.
	assert.False(t, mutated.TxList.At(3).Empty())
	assert.True(t, mutated.TxList.At(0).Empty())
	assert.True(t, mutated.TxList.At(1).Empty())
	assert.True(t, mutated.TxList.At(2).Empty())

	// No later calls exist, so only the external-call function qualifies as a replacement.
	assert.Equal(t, selectors["callOut"], mutated.TxList.At(3).Call().FuncHash)

	// The input state is untouched.
	assert.Zero(t, state.TxList.OccupiedCount())
}

// TestMutateReplaceHonorsDataDependencies verifies replacement candidates either perform external calls or write
// state some later call reads.
func TestMutateReplaceHonorsDataDependencies(t *testing.T) {
	contract := testContract(t)
	selectors := testSelectors(t)
	mutator := newTestMutator(testSenders, 1)

	// getX at index 1 reads x, so setX (writes x) and callOut (external) both qualify at index 0.
	state := occupiedState(t, contract.Report(), 2, contract, selectors["getX"], selectors["getX"])
	seen := make(map[string]struct{})
	for i := 0; i < 32; i++ {
		mutated, err := mutator.Mutate(contract, state, Action{ID: ActionReplace, Arg: 0})
		require.NoError(t, err)
		funcHash := mutated.TxList.At(0).Call().FuncHash
		assert.Contains(t, []string{selectors["setX"], selectors["callOut"]}, funcHash)
		seen[funcHash] = struct{}{}
	}
	assert.Len(t, seen, 2, "both qualifying candidates should be sampled eventually")
}

// TestMutateReplaceNoCandidate verifies replacement fails with ErrNoCandidate when no function can causally affect
// the rest of the sequence.
func TestMutateReplaceNoCandidate(t *testing.T) {
	contract := testContract(t)
	selectors := testSelectors(t)
	mutator := newTestMutator(testSenders, 1)

	// A report where nothing performs external calls and nothing writes what later calls read.
	inertReport := &staticanalysis.Report{Functions: map[string]*staticanalysis.FunctionReport{
		selectors["getX"]: {VarsRead: map[staticanalysis.VarID]struct{}{"x": {}}},
	}}
	state := occupiedState(t, inertReport, 2, contract, selectors["getX"], selectors["getX"])

	_, err := mutator.Mutate(contract, state, Action{ID: ActionReplace, Arg: 0})
	assert.ErrorIs(t, err, ErrNoCandidate)
}

// TestMutateModifyValueNotPayable verifies value mutations against a non-payable function fail with ErrNotPayable
// and leave the sequence untouched.
func TestMutateModifyValueNotPayable(t *testing.T) {
	contract := testContract(t)
	selectors := testSelectors(t)
	mutator := newTestMutator(testSenders, 1)
	state := occupiedState(t, contract.Report(), 1, contract, selectors["setX"])

	_, err := mutator.Mutate(contract, state, Action{ID: ActionModifyValue, Arg: 0})
	assert.ErrorIs(t, err, ErrNotPayable)
	assert.Equal(t, int64(0), state.TxList.At(0).Call().Value.Int64())
}

// TestMutateModifyValuePayable verifies value mutations against a payable function resample a distinct value.
func TestMutateModifyValuePayable(t *testing.T) {
	contract := testContract(t)
	selectors := testSelectors(t)
	mutator := newTestMutator(testSenders, 1)
	state := occupiedState(t, contract.Report(), 1, contract, selectors["pay"])

	mutated, err := mutator.Mutate(contract, state, Action{ID: ActionModifyValue, Arg: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, mutated.TxList.At(0).Call().Value.Sign())
	assert.Equal(t, int64(0), state.TxList.At(0).Call().Value.Int64())
}

// TestMutateModifySender verifies sender mutations resample a sender distinct from the current one.
func TestMutateModifySender(t *testing.T) {
	contract := testContract(t)
	selectors := testSelectors(t)
	mutator := newTestMutator(testSenders, 1)
	state := occupiedState(t, contract.Report(), 1, contract, selectors["getX"])

	mutated, err := mutator.Mutate(contract, state, Action{ID: ActionModifySender, Arg: 0})
	require.NoError(t, err)
	assert.NotEqual(t, state.TxList.At(0).Call().Sender, mutated.TxList.At(0).Call().Sender)
	assert.Contains(t, testSenders, mutated.TxList.At(0).Call().Sender)
}

// TestMutateModifyArgsResynthesizes verifies argument mutations rebuild the payload while keeping the target
// function and sender.
func TestMutateModifyArgsResynthesizes(t *testing.T) {
	contract := testContract(t)
	selectors := testSelectors(t)
	mutator := newTestMutator(testSenders, 1)
	state := occupiedState(t, contract.Report(), 1, contract, selectors["setX"])

	mutated, err := mutator.Mutate(contract, state, Action{ID: ActionModifyArgs, Arg: 0})
	require.NoError(t, err)

	call := mutated.TxList.At(0).Call()
	assert.Equal(t, selectors["setX"], call.FuncHash)
	assert.Equal(t, state.TxList.At(0).Call().Sender, call.Sender)
	// setX takes one uint256, so the payload is a 4-byte selector plus one 32-byte word.
	assert.Len(t, call.Payload, 36)
	assert.Len(t, call.TypedArgs, 1)
}

// TestMutateUnknownAction verifies actions outside the mutation vocabulary fail with ErrUnknownAction.
func TestMutateUnknownAction(t *testing.T) {
	contract := testContract(t)
	selectors := testSelectors(t)
	mutator := newTestMutator(testSenders, 1)
	state := occupiedState(t, contract.Report(), 1, contract, selectors["getX"])

	_, err := mutator.Mutate(contract, state, Action{ID: ActionID(42), Arg: 0})
	assert.ErrorIs(t, err, ErrUnknownAction)
}
