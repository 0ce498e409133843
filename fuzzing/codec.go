package fuzzing

import (
	"encoding/hex"
	"fmt"
)

// slotFeatureWidth is the number of features FlatStateEncoder emits per call slot.
const slotFeatureWidth = 6

// PassthroughDecoder decodes raw actions that already arrive as Action values, for drivers which perform their own
// policy-output processing upstream of the engine.
type PassthroughDecoder struct{}

// DecodeAction returns the raw action unchanged if it is an Action, or fails with ErrInvalidAction.
func (d *PassthroughDecoder) DecodeAction(rawAction any) (Action, error) {
	action, ok := rawAction.(Action)
	if !ok {
		return Action{}, fmt.Errorf("%w: expected a fuzzing.Action, got %T", ErrInvalidAction, rawAction)
	}
	return action, nil
}

// FlatStateEncoder encodes a state as a flat feature vector with a fixed-width row per call slot: an occupancy
// flag, the four selector bytes scaled into [0, 1], and a value-attached flag. It is a baseline encoding for
// drivers without a learned policy; policies with their own encoding contract replace it through FuzzerHooks.
type FlatStateEncoder struct{}

// EncodeState encodes the given state, returning the encoding and the number of scheduled calls.
func (e *FlatStateEncoder) EncodeState(state *State) ([]float64, int, error) {
	if state == nil {
		return nil, 0, fmt.Errorf("cannot encode a nil state")
	}

	encoded := make([]float64, 0, state.TxList.Length()*slotFeatureWidth)
	seqLen := 0
	for i := 0; i < state.TxList.Length(); i++ {
		slot := state.TxList.At(i)
		row := make([]float64, slotFeatureWidth)
		if !slot.Empty() {
			seqLen++
			call := slot.Call()
			row[0] = 1
			selector, err := hex.DecodeString(call.FuncHash)
			if err != nil || len(selector) != 4 {
				return nil, 0, fmt.Errorf("malformed function hash %q at slot %d", call.FuncHash, i)
			}
			for j, b := range selector {
				row[1+j] = float64(b) / 255
			}
			if call.Value.Sign() > 0 {
				row[5] = 1
			}
		}
		encoded = append(encoded, row...)
	}
	return encoded, seqLen, nil
}
