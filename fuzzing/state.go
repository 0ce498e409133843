package fuzzing

import (
	"github.com/cinderfuzz/cinder/fuzzing/calls"
	"github.com/cinderfuzz/cinder/fuzzing/staticanalysis"
)

// State describes the transaction-sequence state the learned policy mutates. It is owned exclusively by the Fuzzer
// and replaced wholesale on each successful mutation; outside callers never mutate it in place.
type State struct {
	// StaticAnalysis is the per-function feature report of the contract under test. Read-only.
	StaticAnalysis *staticanalysis.Report

	// TxList is the fixed-length sequence of call slots. Unused positions are empty slots, meaning no transaction
	// is scheduled there. The occupied run is contiguous from index 0 except while a mutation is in progress.
	TxList *calls.CallSequence
}

// NewState creates a state over the given analysis report with an entirely empty call sequence of the given fixed
// length.
func NewState(report *staticanalysis.Report, maxCallNum int) *State {
	return &State{
		StaticAnalysis: report,
		TxList:         calls.NewCallSequence(maxCallNum),
	}
}

// Clone creates a structural copy of the state. The analysis report is shared, as it is read-only.
func (s *State) Clone() *State {
	return &State{
		StaticAnalysis: s.StaticAnalysis,
		TxList:         s.TxList.Clone(),
	}
}
