package coverage

import (
	"encoding/binary"

	"github.com/cinderfuzz/cinder/backend"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// Mode selects the unit of coverage tracking.
type Mode string

const (
	// ModeInstruction tracks coverage as the set of visited instruction program counters.
	ModeInstruction Mode = "coverage"

	// ModePath tracks coverage as the set of distinct execution path signatures. Each signature is one atomic
	// token; two paths sharing most of their locations are still distinct.
	ModePath Mode = "path"
)

// Visited describes the locations a single transaction's execution touched, in the representation selected by the
// active coverage mode.
type Visited struct {
	// Mode is the coverage mode this record was captured under.
	Mode Mode

	// PCs is the set of branch-instruction program counters the execution touched. Populated in ModeInstruction.
	PCs map[uint64]struct{}

	// PathSignature is the opaque token identifying the execution path taken. Populated in ModePath.
	PathSignature common.Hash
}

// VisitedFromTrace captures the visited-location record of a single execution trace under the given mode.
func VisitedFromTrace(trace *backend.Trace, mode Mode) *Visited {
	if mode == ModePath {
		return &Visited{
			Mode:          mode,
			PathSignature: PathSignatureOf(trace),
		}
	}
	return &Visited{
		Mode: mode,
		PCs:  trace.BranchPCs(),
	}
}

// PathSignatureOf derives the opaque path signature of an execution trace by hashing the ordered program counters
// of every executed instruction.
func PathSignatureOf(trace *backend.Trace) common.Hash {
	hasher := sha3.NewLegacyKeccak256()
	buf := make([]byte, 8)
	if trace != nil {
		for _, step := range trace.Steps {
			binary.BigEndian.PutUint64(buf, step.PC)
			hasher.Write(buf)
		}
	}
	return common.BytesToHash(hasher.Sum(nil))
}
