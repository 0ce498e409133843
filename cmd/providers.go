package cmd

import (
	"github.com/cinderfuzz/cinder/backend"
	"github.com/cinderfuzz/cinder/fuzzing/concolic"
	"github.com/cinderfuzz/cinder/fuzzing/detection"
	"github.com/cinderfuzz/cinder/fuzzing/staticanalysis"
)

// Providers bundles the external collaborators the fuzzing engine is built around. The engine defines their
// contracts but ships no concrete transports; an embedding build registers its own implementations before Execute.
type Providers struct {
	// Backend is the execution backend used to compile, deploy and execute transactions. Required by fuzz.
	Backend backend.Client

	// StaticAnalyzer produces per-function feature reports for loaded contracts. Required by fuzz.
	StaticAnalyzer staticanalysis.Analyzer

	// Detector classifies trace sets into named findings. Required by fuzz.
	Detector detection.Detector

	// SymbolicExecutor derives candidate sequences through constraint solving. Optional; escalation is disabled
	// when nil.
	SymbolicExecutor concolic.Executor
}

// providers holds the registered collaborators.
var providers Providers

// SetProviders registers the external collaborators used by commands which run the engine.
func SetProviders(p Providers) {
	providers = p
}
