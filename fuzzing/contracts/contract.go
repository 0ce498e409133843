package contracts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cinderfuzz/cinder/backend"
	"github.com/cinderfuzz/cinder/fuzzing/calls"
	"github.com/cinderfuzz/cinder/fuzzing/corpus"
	"github.com/cinderfuzz/cinder/fuzzing/coverage"
	"github.com/cinderfuzz/cinder/fuzzing/staticanalysis"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract describes a compiled smart contract under test, together with the fuzzing state which persists across
// episodes for it: its accumulated visited set and its seed corpus. Everything else is immutable after load.
type Contract struct {
	// name represents the name of the contract.
	name string

	// sourcePath represents the source file path the contract was loaded from, the key it is cached under.
	sourcePath string

	// artifact describes the compiled contract data returned by the execution backend.
	artifact *backend.CompiledArtifact

	// contractAbi is the parsed ABI definition of the contract.
	contractAbi abi.ABI

	// methodsByHash maps 4-byte selector hex strings to their ABI methods.
	methodsByHash map[string]abi.Method

	// funcHashes lists every function selector hex string in a stable order.
	funcHashes []string

	// report describes the per-function static features of the contract. Read-only for the fuzzing core.
	report *staticanalysis.Report

	// visited accumulates the program locations visited across every episode of this contract.
	visited *coverage.VisitedSet

	// seeds grows the per-function argument seed corpus across every episode of this contract.
	seeds *corpus.SeedCorpus

	// visitedMethods records which functions have been executed against the backend at least once.
	visitedMethods map[string]bool

	// visitedMethodsLock guards visitedMethods.
	visitedMethodsLock sync.Mutex
}

// NewContract creates a contract record from a compiled artifact, its static analysis report and the coverage mode
// to track visited locations under.
func NewContract(name string, sourcePath string, artifact *backend.CompiledArtifact, report *staticanalysis.Report, mode coverage.Mode) (*Contract, error) {
	parsedAbi, err := abi.JSON(strings.NewReader(string(artifact.AbiJSON)))
	if err != nil {
		return nil, fmt.Errorf("could not parse ABI for contract %s: %v", name, err)
	}

	methodsByHash := make(map[string]abi.Method, len(parsedAbi.Methods))
	var funcHashes []string
	for _, method := range parsedAbi.Methods {
		funcHash := calls.SelectorHex(method.ID)
		methodsByHash[funcHash] = method
		funcHashes = append(funcHashes, funcHash)
	}

	return &Contract{
		name:           name,
		sourcePath:     sourcePath,
		artifact:       artifact,
		contractAbi:    parsedAbi,
		methodsByHash:  methodsByHash,
		funcHashes:     funcHashes,
		report:         report,
		visited:        coverage.NewVisitedSet(mode),
		seeds:          corpus.NewSeedCorpus(),
		visitedMethods: make(map[string]bool),
	}, nil
}

// Name returns the name of the contract.
func (c *Contract) Name() string {
	return c.name
}

// SourcePath returns the source file path the contract was loaded from.
func (c *Contract) SourcePath() string {
	return c.sourcePath
}

// Artifact returns the compiled contract data.
func (c *Contract) Artifact() *backend.CompiledArtifact {
	return c.artifact
}

// Report returns the static analysis report of the contract.
func (c *Contract) Report() *staticanalysis.Report {
	return c.report
}

// Visited returns the visited set accumulated across every episode of this contract.
func (c *Contract) Visited() *coverage.VisitedSet {
	return c.visited
}

// Seeds returns the seed corpus accumulated across every episode of this contract.
func (c *Contract) Seeds() *corpus.SeedCorpus {
	return c.seeds
}

// FuncHashes returns every function selector hex string of the contract, in a stable order.
func (c *Contract) FuncHashes() []string {
	return c.funcHashes
}

// Method returns the ABI method with the given selector hex string.
func (c *Contract) Method(funcHash string) (abi.Method, bool) {
	method, ok := c.methodsByHash[funcHash]
	return method, ok
}

// IsPayable indicates whether the function with the given selector accepts native currency.
func (c *Contract) IsPayable(funcHash string) bool {
	method, ok := c.methodsByHash[funcHash]
	return ok && method.StateMutability == "payable"
}

// MarkMethodVisited records that the function with the given selector has been executed against the backend.
func (c *Contract) MarkMethodVisited(funcHash string) {
	c.visitedMethodsLock.Lock()
	defer c.visitedMethodsLock.Unlock()
	c.visitedMethods[funcHash] = true
}

// MethodVisited indicates whether the function with the given selector has been executed at least once.
func (c *Contract) MethodVisited(funcHash string) bool {
	c.visitedMethodsLock.Lock()
	defer c.visitedMethodsLock.Unlock()
	return c.visitedMethods[funcHash]
}

// adoptState carries the cross-episode fuzzing state over from a previous record of the same contract, so that a
// reload refreshes the artifact and report while retaining accumulated coverage and seeds.
func (c *Contract) adoptState(previous *Contract) {
	c.visited = previous.visited
	c.seeds = previous.seeds
	c.visitedMethods = previous.visitedMethods
}
