package backend

import "strings"

// branchMnemonicPrefix identifies branch-class instructions by their mnemonic prefix. The program counters of these
// instructions are the unit of coverage tracking.
const branchMnemonicPrefix = "JUMP"

// TraceStep describes a single executed-instruction record within a transaction execution trace.
type TraceStep struct {
	// PC is the program counter of the executed instruction.
	PC uint64 `json:"pc"`

	// Op is the mnemonic of the executed instruction.
	Op string `json:"op"`
}

// IsBranch indicates whether the step executed a branch-class instruction.
func (s TraceStep) IsBranch() bool {
	return strings.HasPrefix(s.Op, branchMnemonicPrefix)
}

// Trace describes the ordered sequence of executed-instruction records produced by one transaction execution.
// A nil *Trace means the backend produced no trace at all; a Trace with no steps means the execution was traced
// but executed no instructions. The two are deliberately distinct.
type Trace struct {
	// Steps contains the executed-instruction records in execution order.
	Steps []TraceStep `json:"steps"`
}

// BranchPCs returns the set of program counters at which branch-class instructions executed within this trace.
func (t *Trace) BranchPCs() map[uint64]struct{} {
	pcs := make(map[uint64]struct{})
	if t == nil {
		return pcs
	}
	for _, step := range t.Steps {
		if step.IsBranch() {
			pcs[step.PC] = struct{}{}
		}
	}
	return pcs
}

// PCs returns the set of all program counters touched within this trace.
func (t *Trace) PCs() map[uint64]struct{} {
	pcs := make(map[uint64]struct{})
	if t == nil {
		return pcs
	}
	for _, step := range t.Steps {
		pcs[step.PC] = struct{}{}
	}
	return pcs
}
