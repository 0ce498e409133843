package concolic

import (
	"context"

	"github.com/cinderfuzz/cinder/fuzzing/calls"
)

// Executor describes a symbolic/concolic executor consumed by the fuzzing engine. Given a transaction sequence and
// a set of branch targets of interest, it attempts to derive a candidate sequence reaching them through constraint
// solving. An empty or nil result means nothing was found.
type Executor interface {
	// Run explores symbolically from the given sequence toward the given branch targets and returns a candidate
	// transaction sequence, or nil/empty if none was found.
	Run(ctx context.Context, sequence *calls.CallSequence, targetBranches map[uint64]struct{}) (*calls.CallSequence, error)
}
