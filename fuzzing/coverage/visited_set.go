package coverage

import (
	"encoding/json"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/exp/maps"
)

// VisitedSet accumulates the program locations visited across every execution of a single contract. It grows
// monotonically: locations are only ever added, never removed. A set tracks either instruction program counters or
// path signatures, depending on the mode it was created with.
type VisitedSet struct {
	// mode is the coverage mode this set tracks locations under.
	mode Mode

	// pcs is the accumulated set of visited program counters. Used in ModeInstruction.
	pcs map[uint64]struct{}

	// paths is the accumulated set of observed path signatures. Used in ModePath.
	paths map[common.Hash]struct{}

	// updateLock offers thread safety when multiple episodes of the same contract update the set.
	updateLock sync.Mutex
}

// NewVisitedSet creates an empty visited set tracking locations under the given mode.
func NewVisitedSet(mode Mode) *VisitedSet {
	return &VisitedSet{
		mode:  mode,
		pcs:   make(map[uint64]struct{}),
		paths: make(map[common.Hash]struct{}),
	}
}

// Mode returns the coverage mode this set tracks locations under.
func (v *VisitedSet) Mode() Mode {
	return v.mode
}

// Size returns the number of distinct locations the set has accumulated.
func (v *VisitedSet) Size() int {
	v.updateLock.Lock()
	defer v.updateLock.Unlock()
	if v.mode == ModePath {
		return len(v.paths)
	}
	return len(v.pcs)
}

// Covers indicates whether the given per-transaction visited record adds nothing new to the set. In instruction
// mode the record is covered when its program counters are a subset of the accumulated set; in path mode the whole
// signature is one atomic token and the record is covered only on exact membership.
func (v *VisitedSet) Covers(visited *Visited) bool {
	v.updateLock.Lock()
	defer v.updateLock.Unlock()
	return v.covers(visited)
}

// Add merges the given per-transaction visited record into the set. Returns whether the set changed.
func (v *VisitedSet) Add(visited *Visited) bool {
	v.updateLock.Lock()
	defer v.updateLock.Unlock()

	if v.covers(visited) {
		return false
	}
	if v.mode == ModePath {
		v.paths[visited.PathSignature] = struct{}{}
		return true
	}
	for pc := range visited.PCs {
		v.pcs[pc] = struct{}{}
	}
	return true
}

// covers implements Covers without locking, for use by callers already holding the update lock.
func (v *VisitedSet) covers(visited *Visited) bool {
	if v.mode == ModePath {
		_, seen := v.paths[visited.PathSignature]
		return seen
	}
	for pc := range visited.PCs {
		if _, seen := v.pcs[pc]; !seen {
			return false
		}
	}
	return true
}

// PCs returns a copy of the accumulated program counter set.
func (v *VisitedSet) PCs() map[uint64]struct{} {
	v.updateLock.Lock()
	defer v.updateLock.Unlock()
	return maps.Clone(v.pcs)
}

// visitedSetJSON is the serialized form of a VisitedSet, used for warm-start persistence.
type visitedSetJSON struct {
	Mode  Mode          `json:"mode"`
	PCs   []uint64      `json:"pcs"`
	Paths []common.Hash `json:"paths"`
}

// MarshalJSON serializes the set for persistence.
func (v *VisitedSet) MarshalJSON() ([]byte, error) {
	v.updateLock.Lock()
	defer v.updateLock.Unlock()
	return json.Marshal(visitedSetJSON{
		Mode:  v.mode,
		PCs:   maps.Keys(v.pcs),
		Paths: maps.Keys(v.paths),
	})
}

// UnmarshalJSON restores a persisted set.
func (v *VisitedSet) UnmarshalJSON(data []byte) error {
	var serialized visitedSetJSON
	if err := json.Unmarshal(data, &serialized); err != nil {
		return err
	}
	v.mode = serialized.Mode
	v.pcs = make(map[uint64]struct{}, len(serialized.PCs))
	for _, pc := range serialized.PCs {
		v.pcs[pc] = struct{}{}
	}
	v.paths = make(map[common.Hash]struct{}, len(serialized.Paths))
	for _, path := range serialized.Paths {
		v.paths[path] = struct{}{}
	}
	return nil
}
