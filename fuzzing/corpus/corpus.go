package corpus

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/cinderfuzz/cinder/fuzzing/calls"
	"github.com/cinderfuzz/cinder/fuzzing/coverage"
)

// ValuePosition is the pseudo argument position under which native currency value seeds are stored. Typed argument
// positions are always non-negative, so the pseudo position can never collide with one.
const ValuePosition = -1

// SeedCandidate describes an argument value surfaced by symbolic exploration, offered for merging into the corpus.
type SeedCandidate struct {
	// Position is the argument position the value belongs to.
	Position int

	// Value is the concrete argument value.
	Value any
}

// SeedCorpus grows a per-function collection of previously observed argument values, consulted when synthesizing
// new arguments. Values are stored per function selector, per argument position, as an ordered list. Duplicates are
// allowed and lists never shrink.
type SeedCorpus struct {
	// entries maps function selector hex strings to argument positions to the ordered values seen at that position.
	entries map[string]map[int][]any

	// updateLock offers thread safety when multiple episodes of the same contract grow the corpus.
	updateLock sync.Mutex
}

// NewSeedCorpus creates an empty seed corpus.
func NewSeedCorpus() *SeedCorpus {
	return &SeedCorpus{
		entries: make(map[string]map[int][]any),
	}
}

// Values returns the ordered list of seed values recorded for the given function selector and argument position.
// The returned slice is owned by the corpus and must not be modified.
func (c *SeedCorpus) Values(funcHash string, position int) []any {
	c.updateLock.Lock()
	defer c.updateLock.Unlock()
	positions, ok := c.entries[funcHash]
	if !ok {
		return nil
	}
	return positions[position]
}

// Add appends a value to the seed list for the given function selector and argument position, creating the list on
// first insert.
func (c *SeedCorpus) Add(funcHash string, position int, value any) {
	c.updateLock.Lock()
	defer c.updateLock.Unlock()
	c.add(funcHash, position, value)
}

// Len returns the number of values recorded for the given function selector and argument position.
func (c *SeedCorpus) Len(funcHash string, position int) int {
	return len(c.Values(funcHash, position))
}

// LoadSeed harvests seeds from an executed call sequence. For each scheduled call whose execution touched locations
// not yet in the accumulated visited set, the call's argument values are appended to the corpus and the visited set
// is grown. A positive attached value is recorded under ValuePosition. Extra seed candidates (eg from symbolic exploration) are merged only into argument positions the corpus
// already knows; candidates for unknown positions are dropped.
// Returns whether any call triggered a new-path discovery.
func (c *SeedCorpus) LoadSeed(sequence *calls.CallSequence, visitedPerTx []*coverage.Visited, extraSeeds [][]SeedCandidate, visitedSet *coverage.VisitedSet) (bool, error) {
	executedCalls := sequence.Calls()
	if len(visitedPerTx) != len(executedCalls) {
		return false, fmt.Errorf("visited records (%d) do not align with executed calls (%d)", len(visitedPerTx), len(executedCalls))
	}

	newPathFound := false
	for i, call := range executedCalls {
		if visitedSet.Covers(visitedPerTx[i]) {
			continue
		}
		newPathFound = true
		visitedSet.Add(visitedPerTx[i])

		c.updateLock.Lock()
		for position, typedArg := range call.TypedArgs {
			c.add(call.FuncHash, position, typedArg.Value)
		}
		if call.Value != nil && call.Value.Sign() > 0 {
			c.add(call.FuncHash, ValuePosition, new(big.Int).Set(call.Value))
		}
		if i < len(extraSeeds) {
			for _, candidate := range extraSeeds[i] {
				// Candidates are merged only into positions the corpus has already discovered.
				if positions, ok := c.entries[call.FuncHash]; ok {
					if _, known := positions[candidate.Position]; known {
						positions[candidate.Position] = append(positions[candidate.Position], candidate.Value)
					}
				}
			}
		}
		c.updateLock.Unlock()
	}
	return newPathFound, nil
}

// add appends a value without locking, for use by callers already holding the update lock.
func (c *SeedCorpus) add(funcHash string, position int, value any) {
	positions, ok := c.entries[funcHash]
	if !ok {
		positions = make(map[int][]any)
		c.entries[funcHash] = positions
	}
	positions[position] = append(positions[position], value)
}
