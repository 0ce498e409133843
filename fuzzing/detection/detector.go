package detection

import "github.com/cinderfuzz/cinder/backend"

// Detector describes a vulnerability detector consumed by the fuzzing engine. Given the trace set of the current
// execution it classifies the observed behavior into named findings. Findings carry no transaction context when
// returned; the engine attaches it.
type Detector interface {
	// Run classifies the given execution traces and returns any findings.
	Run(traces []*backend.Trace) ([]*Finding, error)
}
