package calls

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCallSequenceSlots verifies slot occupancy accounting over a sparse sequence.
func TestCallSequenceSlots(t *testing.T) {
	sequence := NewCallSequence(4)
	assert.Equal(t, 4, sequence.Length())
	assert.Zero(t, sequence.OccupiedCount())
	assert.True(t, sequence.LastSlotEmpty())

	call := NewCall(common.Address{1}, big.NewInt(0), []byte{0x01}, "aabbccdd", nil)
	sequence.Set(1, OccupiedSlot(call))
	sequence.Set(3, OccupiedSlot(call.Clone()))

	assert.Equal(t, 2, sequence.OccupiedCount())
	assert.False(t, sequence.LastSlotEmpty())
	assert.True(t, sequence.At(0).Empty())
	assert.False(t, sequence.At(1).Empty())

	// Calls skips empty slots but preserves order.
	scheduled := sequence.Calls()
	assert.Len(t, scheduled, 2)
	assert.Same(t, call, scheduled[0])
}

// TestCallSequenceCloneIsDeep verifies mutating a clone never leaks into the original.
func TestCallSequenceCloneIsDeep(t *testing.T) {
	original := NewCallSequence(2)
	original.Set(0, OccupiedSlot(NewCall(common.Address{1}, big.NewInt(10), []byte{0x01, 0x02}, "aabbccdd", nil)))

	cloned := original.Clone()
	cloned.At(0).Call().Value.SetInt64(999)
	cloned.At(0).Call().Sender = common.Address{9}
	cloned.Set(1, OccupiedSlot(NewCall(common.Address{2}, big.NewInt(0), nil, "eeff0011", nil)))

	assert.Equal(t, int64(10), original.At(0).Call().Value.Int64())
	assert.Equal(t, common.Address{1}, original.At(0).Call().Sender)
	assert.True(t, original.At(1).Empty())
}

// TestCallCloneCopiesValue verifies a cloned call owns its own value and payload.
func TestCallCloneCopiesValue(t *testing.T) {
	call := NewCall(common.Address{1}, big.NewInt(5), []byte{0xde, 0xad}, "aabbccdd", nil)
	cloned := call.Clone()

	cloned.Value.SetInt64(7)
	cloned.Payload[0] = 0x00
	assert.Equal(t, int64(5), call.Value.Int64())
	assert.Equal(t, byte(0xde), call.Payload[0])
}

// TestCallNilValueNormalized verifies a missing value is normalized to zero both at construction and when cloning a
// call built elsewhere, so externally produced sequences execute safely.
func TestCallNilValueNormalized(t *testing.T) {
	constructed := NewCall(common.Address{1}, nil, []byte{0x01}, "aabbccdd", nil)
	require.NotNil(t, constructed.Value)
	assert.Zero(t, constructed.Value.Sign())

	raw := &Call{Sender: common.Address{1}, FuncHash: "aabbccdd"}
	cloned := raw.Clone()
	require.NotNil(t, cloned.Value)
	assert.Zero(t, cloned.Value.Sign())
}

// TestCallSequenceString verifies the pretty-printer includes every occupied slot with its index.
func TestCallSequenceString(t *testing.T) {
	sequence := NewCallSequence(3)
	sequence.Set(2, OccupiedSlot(NewCall(common.Address{1}, big.NewInt(1), []byte{0xaa}, "deadbeef", nil)))

	rendered := sequence.String()
	assert.Contains(t, rendered, "[2]")
	assert.Contains(t, rendered, "deadbeef")
	assert.NotContains(t, rendered, "[0]")
}
