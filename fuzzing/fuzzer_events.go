package fuzzing

import (
	"github.com/cinderfuzz/cinder/events"
	"github.com/cinderfuzz/cinder/fuzzing/contracts"
	"github.com/cinderfuzz/cinder/fuzzing/detection"
)

// ContractLoadedEvent describes an event where a contract was compiled, analyzed and admitted into the fuzzer's
// contract cache.
type ContractLoadedEvent struct {
	// Fuzzer represents the instance of the fuzzer that the contract was loaded into.
	Fuzzer *Fuzzer

	// Contract represents the contract record which was loaded.
	Contract *contracts.Contract
}

// PathDiscoveredEvent describes an event where a step's execution touched program locations not seen before for the
// contract under test.
type PathDiscoveredEvent struct {
	// Fuzzer represents the instance of the fuzzer that discovered the path.
	Fuzzer *Fuzzer

	// Contract represents the contract under test.
	Contract *contracts.Contract

	// Step is the episode step counter value at the time of discovery.
	Step int
}

// FindingReportedEvent describes an event where a not-previously-seen finding was reported during a step.
type FindingReportedEvent struct {
	// Fuzzer represents the instance of the fuzzer that reported the finding.
	Fuzzer *Fuzzer

	// Finding represents the reported finding, with its transaction sequence attached.
	Finding *detection.Finding
}

// FuzzerEvents defines event emitters for a Fuzzer.
type FuzzerEvents struct {
	// ContractLoaded emits events indicating a contract was loaded into the fuzzer.
	ContractLoaded events.EventEmitter[ContractLoadedEvent]

	// PathDiscovered emits events indicating a step discovered new coverage.
	PathDiscovered events.EventEmitter[PathDiscoveredEvent]

	// FindingReported emits events indicating a new finding was reported.
	FindingReported events.EventEmitter[FindingReportedEvent]
}

// FuzzerHooks defines the replaceable seams between the engine and an external policy driver: how raw policy
// outputs decode into actions and how states encode into policy inputs.
type FuzzerHooks struct {
	// ActionDecoder decodes raw policy outputs into actions. Defaults to PassthroughDecoder.
	ActionDecoder ActionDecoder

	// StateEncoder encodes states into policy inputs. Defaults to FlatStateEncoder.
	StateEncoder StateEncoder
}
