package tracing

import (
	"github.com/cinderfuzz/cinder/backend"
	"github.com/cinderfuzz/cinder/fuzzing/corpus"
	"github.com/cinderfuzz/cinder/fuzzing/coverage"
	"github.com/cinderfuzz/cinder/fuzzing/detection"
)

// Result describes the output of analyzing one execution against the previous one.
type Result struct {
	// Reward is the branch-jump diversity score of the current execution relative to the previous one.
	Reward float64

	// Findings are the vulnerability classifications the detector produced for the current traces.
	Findings []*detection.Finding

	// Visited holds the per-transaction visited-location records of the current execution, indexed parallel to the
	// executed transaction list.
	Visited []*coverage.Visited

	// SeedCandidates surfaces argument values discovered through symbolic exploration which should be merged into
	// the seed corpus, indexed parallel to the executed transaction list.
	SeedCandidates [][]corpus.SeedCandidate
}

// TraceAnalyzer consumes the trace sets of the previous and current executions and produces a reward, a
// vulnerability report, visited-location records and seed candidates.
type TraceAnalyzer struct {
	// detector classifies trace sets into named findings. The analyzer delegates reporting to it entirely.
	detector detection.Detector

	// mode is the coverage mode visited-location records are captured under.
	mode coverage.Mode
}

// NewTraceAnalyzer creates a trace analyzer delegating vulnerability reporting to the given detector and capturing
// visited locations under the given coverage mode.
func NewTraceAnalyzer(detector detection.Detector, mode coverage.Mode) *TraceAnalyzer {
	return &TraceAnalyzer{
		detector: detector,
		mode:     mode,
	}
}

// Run analyzes the current execution's traces against the previous execution's. Pending seed candidates from
// symbolic exploration are surfaced through the result untouched.
func (a *TraceAnalyzer) Run(prevTraces []*backend.Trace, currTraces []*backend.Trace, pendingSeeds [][]corpus.SeedCandidate) (*Result, error) {
	findings, err := a.detector.Run(currTraces)
	if err != nil {
		return nil, err
	}

	visited := make([]*coverage.Visited, len(currTraces))
	for i, trace := range currTraces {
		visited[i] = coverage.VisitedFromTrace(trace, a.mode)
	}

	return &Result{
		Reward:         PathVariety(prevTraces, currTraces),
		Findings:       findings,
		Visited:        visited,
		SeedCandidates: pendingSeeds,
	}, nil
}

// PathVariety scores the branch-jump diversity of the current trace set against the previous one. It collects the
// program counters of branch-class instructions across each set independently and compares them:
//
//	reward = (|pJumps| + |cJumps| - 2*common) / |pJumps ∪ cJumps|
//
// where common is the size of the intersection. The score is zero when the sets are identical, positive when
// symmetric difference outweighs overlap, and is not bounded to [0, 1]. The exact arithmetic matters to reward
// shaping and must be preserved.
func PathVariety(prevTraces []*backend.Trace, currTraces []*backend.Trace) float64 {
	pJumps := collectBranchPCs(prevTraces)
	cJumps := collectBranchPCs(currTraces)

	union := make(map[uint64]struct{}, len(pJumps)+len(cJumps))
	for pc := range pJumps {
		union[pc] = struct{}{}
	}
	for pc := range cJumps {
		union[pc] = struct{}{}
	}
	if len(union) == 0 {
		return 0
	}

	common := len(pJumps) + len(cJumps) - len(union)
	return float64(len(pJumps)+len(cJumps)-2*common) / float64(len(union))
}

// collectBranchPCs gathers the set of branch-instruction program counters across every trace in a set.
func collectBranchPCs(traces []*backend.Trace) map[uint64]struct{} {
	pcs := make(map[uint64]struct{})
	for _, trace := range traces {
		for pc := range trace.BranchPCs() {
			pcs[pc] = struct{}{}
		}
	}
	return pcs
}
