package fuzzing

import (
	"math/big"
	"testing"

	"github.com/cinderfuzz/cinder/fuzzing/calls"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPassthroughDecoder verifies already-decoded actions pass through and anything else is rejected.
func TestPassthroughDecoder(t *testing.T) {
	decoder := &PassthroughDecoder{}

	action, err := decoder.DecodeAction(Action{ID: ActionModifySender, Arg: 3})
	assert.NoError(t, err)
	assert.Equal(t, ActionModifySender, action.ID)
	assert.Equal(t, 3, action.Arg)

	_, err = decoder.DecodeAction("modify-sender 3")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

// TestFlatStateEncoderLayout verifies the fixed-width per-slot encoding: occupancy flag, scaled selector bytes and a
// value flag.
func TestFlatStateEncoderLayout(t *testing.T) {
	encoder := &FlatStateEncoder{}
	state := NewState(nil, 3)
	state.TxList.Set(1, calls.OccupiedSlot(calls.NewCall(common.Address{1}, big.NewInt(5), []byte{0xff, 0x00, 0x00, 0x01}, "ff000001", nil)))

	encoded, seqLen, err := encoder.EncodeState(state)
	require.NoError(t, err)
	assert.Equal(t, 1, seqLen)
	require.Len(t, encoded, 18)

	// Slot 0 is empty: all zeros.
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, encoded[0:6])

	// Slot 1: occupied, selector bytes scaled into [0, 1], positive value flag.
	assert.Equal(t, 1.0, encoded[6])
	assert.Equal(t, 1.0, encoded[7])
	assert.Equal(t, 0.0, encoded[8])
	assert.InDelta(t, 1.0/255.0, encoded[10], 1e-9)
	assert.Equal(t, 1.0, encoded[11])
}

// TestFlatStateEncoderRejectsMalformedSelector verifies a corrupt function hash fails encoding instead of emitting
// garbage features.
func TestFlatStateEncoderRejectsMalformedSelector(t *testing.T) {
	encoder := &FlatStateEncoder{}
	state := NewState(nil, 1)
	state.TxList.Set(0, calls.OccupiedSlot(calls.NewCall(common.Address{1}, big.NewInt(0), nil, "zz", nil)))

	_, _, err := encoder.EncodeState(state)
	assert.Error(t, err)
}

// TestResampleDistinct verifies distinct-value resampling and its budget-exhaustion behavior.
func TestResampleDistinct(t *testing.T) {
	samples := 0
	value, distinct := resampleDistinct(
		func() int { samples++; return samples },
		func(a, b int) bool { return a == b },
		1,
		10,
	)
	assert.True(t, distinct)
	assert.Equal(t, 2, value)

	value, distinct = resampleDistinct(
		func() int { return 7 },
		func(a, b int) bool { return a == b },
		7,
		10,
	)
	assert.False(t, distinct)
	assert.Equal(t, 7, value)
}
