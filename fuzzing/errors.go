package fuzzing

import (
	"errors"

	"github.com/cinderfuzz/cinder/backend"
)

// Errors describing the ways a fuzzing step or contract load can fail. Mutation dead ends (ErrNoCandidate,
// ErrNotPayable, ErrInvalidAction, ErrUnknownAction) are expected outcomes of exploration and are recovered locally
// as no-op steps; they are not system faults.
var (
	// ErrInvalidAction indicates a malformed action index, a caller or decoder bug.
	ErrInvalidAction = errors.New("invalid action")

	// ErrUnknownAction indicates an action identifier outside the mutation vocabulary.
	ErrUnknownAction = errors.New("unknown action")

	// ErrNoCandidate indicates no legal mutation exists given the current state and constraints.
	ErrNoCandidate = errors.New("no mutation candidate")

	// ErrNotPayable indicates a value mutation was attempted on a non-payable function.
	ErrNotPayable = errors.New("function is not payable")

	// ErrBackendUnavailable indicates the execution backend returned no usable response.
	ErrBackendUnavailable = backend.ErrUnavailable

	// ErrContractLoad indicates compiling or analyzing a contract failed. No partial cache entry is committed.
	ErrContractLoad = errors.New("contract load failed")
)

// isMutationDeadEnd indicates whether an error represents the mutation engine exploring a dead end, recovered as a
// no-op step rather than surfaced as a fault.
func isMutationDeadEnd(err error) bool {
	return errors.Is(err, ErrNoCandidate) ||
		errors.Is(err, ErrNotPayable) ||
		errors.Is(err, ErrInvalidAction) ||
		errors.Is(err, ErrUnknownAction)
}
