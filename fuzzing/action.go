package fuzzing

import "fmt"

// ActionID identifies one of the fixed structural/argument edits the mutation engine can apply to a state.
type ActionID int

const (
	// ActionReplace replaces the call at the target slot with a freshly synthesized call to a different function.
	ActionReplace ActionID = iota

	// ActionModifyArgs resynthesizes the arguments of the call at the target slot.
	ActionModifyArgs

	// ActionModifySender resamples the sender of the call at the target slot.
	ActionModifySender

	// ActionModifyValue resamples the attached value of the call at the target slot.
	ActionModifyValue
)

// String returns the name of the action.
func (id ActionID) String() string {
	switch id {
	case ActionReplace:
		return "Replace"
	case ActionModifyArgs:
		return "ModifyArgs"
	case ActionModifySender:
		return "ModifySender"
	case ActionModifyValue:
		return "ModifyValue"
	}
	return fmt.Sprintf("ActionID(%d)", int(id))
}

// Action describes one decoded policy action: which edit to apply, and the txList index to apply it at.
type Action struct {
	// ID selects the edit to apply.
	ID ActionID

	// Arg is the index into the txList the edit targets.
	Arg int
}

// ActionDecoder decodes the policy's raw output into an Action. The raw format is an external contract of the
// policy; the engine treats the decoded fields as opaque inputs subject to the mutation engine's constraints.
type ActionDecoder interface {
	// DecodeAction decodes a raw policy output into an Action.
	DecodeAction(rawAction any) (Action, error)
}

// StateEncoder encodes a State into the numeric form the learned policy consumes. The encoding layout is an
// external contract of the policy.
type StateEncoder interface {
	// EncodeState encodes the given state and returns the encoding along with the number of scheduled calls.
	EncodeState(state *State) (encoded []float64, seqLen int, err error)
}
