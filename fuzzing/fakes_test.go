package fuzzing

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/cinderfuzz/cinder/backend"
	"github.com/cinderfuzz/cinder/fuzzing/calls"
	"github.com/cinderfuzz/cinder/fuzzing/concolic"
	"github.com/cinderfuzz/cinder/fuzzing/config"
	"github.com/cinderfuzz/cinder/fuzzing/contracts"
	"github.com/cinderfuzz/cinder/fuzzing/coverage"
	"github.com/cinderfuzz/cinder/fuzzing/detection"
	"github.com/cinderfuzz/cinder/fuzzing/staticanalysis"
	"github.com/cinderfuzz/cinder/fuzzing/valuegeneration"
	"github.com/cinderfuzz/cinder/logging"
	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// testAbiJSON is the ABI of the contract the fuzzing tests run against: a state write, a state read, a payable
// deposit and a function performing an external call.
const testAbiJSON = `[
	{"type":"function","name":"setX","stateMutability":"nonpayable","inputs":[{"name":"v","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"getX","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"pay","stateMutability":"payable","inputs":[],"outputs":[]},
	{"type":"function","name":"callOut","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

// testSelectors maps the test ABI's function names to selector hex strings.
func testSelectors(t *testing.T) map[string]string {
	parsed, err := gethabi.JSON(strings.NewReader(testAbiJSON))
	require.NoError(t, err)
	selectors := make(map[string]string)
	for name, method := range parsed.Methods {
		selectors[name] = calls.SelectorHex(method.ID)
	}
	return selectors
}

// testArtifact builds a compiled artifact for the test ABI with four branch-class opcodes.
func testArtifact() *backend.CompiledArtifact {
	return &backend.CompiledArtifact{
		ContractName:    "Vault",
		InitBytecode:    []byte{0x60, 0x80},
		RuntimeBytecode: []byte{0x60, 0x80, 0x60, 0x40, 0x57},
		Opcodes:         []string{"PUSH1", "JUMPI", "JUMPDEST", "ADD", "JUMP", "JUMPI", "STOP"},
		AbiJSON:         json.RawMessage(testAbiJSON),
		CompilerVersion: "0.8.19",
	}
}

// testReport builds the static analysis report of the test contract: setX writes x, getX reads it, pay writes the
// deposit ledger and callOut performs an external call.
func testReport(t *testing.T) *staticanalysis.Report {
	selectors := testSelectors(t)
	return &staticanalysis.Report{
		Functions: map[string]*staticanalysis.FunctionReport{
			selectors["setX"]: {
				VarsWritten: map[staticanalysis.VarID]struct{}{"x": {}},
			},
			selectors["getX"]: {
				VarsRead: map[staticanalysis.VarID]struct{}{"x": {}},
			},
			selectors["pay"]: {
				VarsWritten: map[staticanalysis.VarID]struct{}{"deposits": {}},
			},
			selectors["callOut"]: {
				CallCount: 1,
			},
		},
	}
}

// testContract builds a contract record over the test ABI and report.
func testContract(t *testing.T) *contracts.Contract {
	contract, err := contracts.NewContract("Vault", "Vault.sol", testArtifact(), testReport(t), coverage.ModeInstruction)
	require.NoError(t, err)
	return contract
}

// fakeBackend is an in-memory execution backend. Its trace responses are scripted through sendTx; by default each
// transaction visits a fresh branch program counter.
type fakeBackend struct {
	lock     sync.Mutex
	balances map[common.Address]string
	artifact *backend.CompiledArtifact
	requests []backend.TxRequest
	resets   int
	deploys  int
	nextPC   uint64
	sendTx   func(request backend.TxRequest) (*backend.Trace, error)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		balances: map[common.Address]string{
			{0x01}: "0x10",
			{0x02}: "0x10",
			{0x03}: "0x10",
		},
		artifact: testArtifact(),
	}
}

func (b *fakeBackend) Reset(ctx context.Context) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.resets++
	return nil
}

func (b *fakeBackend) Accounts(ctx context.Context) (map[common.Address]string, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	balances := make(map[common.Address]string, len(b.balances))
	for address, balance := range b.balances {
		balances[address] = balance
	}
	return balances, nil
}

func (b *fakeBackend) Compile(ctx context.Context, sourceText string, contractName string) (*backend.CompiledArtifact, error) {
	return b.artifact, nil
}

func (b *fakeBackend) Deploy(ctx context.Context, artifact *backend.CompiledArtifact) (common.Address, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.deploys++
	return common.Address{0xca}, nil
}

func (b *fakeBackend) SendTx(ctx context.Context, request backend.TxRequest) (*backend.Trace, error) {
	b.lock.Lock()
	b.requests = append(b.requests, request)
	script := b.sendTx
	b.nextPC++
	pc := b.nextPC
	b.lock.Unlock()

	if script != nil {
		return script(request)
	}
	return &backend.Trace{Steps: []backend.TraceStep{
		{PC: 0, Op: "PUSH1"},
		{PC: pc, Op: "JUMPI"},
	}}, nil
}

func (b *fakeBackend) setBalances(balance string) {
	b.lock.Lock()
	defer b.lock.Unlock()
	for address := range b.balances {
		b.balances[address] = balance
	}
}

// fakeAnalyzer is a static analyzer returning a fixed report.
type fakeAnalyzer struct {
	report *staticanalysis.Report
	loaded string
}

func (a *fakeAnalyzer) LoadContract(path string, name string) error {
	a.loaded = path
	return nil
}

func (a *fakeAnalyzer) Run() (*staticanalysis.Report, error) {
	return a.report, nil
}

// fakeDetector is a detector returning a fixed set of findings.
type fakeDetector struct {
	findings []*detection.Finding
}

func (d *fakeDetector) Run(traces []*backend.Trace) ([]*detection.Finding, error) {
	return d.findings, nil
}

// fakeExecutor is a symbolic executor returning a fixed candidate sequence.
type fakeExecutor struct {
	candidate *calls.CallSequence
	runs      int
}

func (e *fakeExecutor) Run(ctx context.Context, sequence *calls.CallSequence, targetBranches map[uint64]struct{}) (*calls.CallSequence, error) {
	e.runs++
	if e.candidate == nil {
		return nil, nil
	}
	return e.candidate.Clone(), nil
}

// testConfig builds a quiet project configuration for tests.
func testConfig(t *testing.T) config.ProjectConfig {
	projectConfig := config.GetDefaultProjectConfig()
	projectConfig.Fuzzing.SeedDirectory = t.TempDir()
	projectConfig.Fuzzing.ConcolicEnabled = false
	projectConfig.Fuzzing.Logging.Level = zerolog.Disabled
	projectConfig.Fuzzing.Logging.EnableConsoleLogging = false
	return *projectConfig
}

// executorOrNil converts a possibly-nil *fakeExecutor into a concolic.Executor without producing a non-nil
// interface wrapping a nil pointer.
func executorOrNil(executor *fakeExecutor) concolic.Executor {
	if executor == nil {
		return nil
	}
	return executor
}

// newTestFuzzer builds a fuzzer over the fake collaborators and loads the test contract into it.
func newTestFuzzer(t *testing.T, projectConfig config.ProjectConfig, client backend.Client, executor *fakeExecutor) *Fuzzer {
	fuzzer, err := NewFuzzer(context.Background(), projectConfig, client, &fakeAnalyzer{report: testReport(t)}, &fakeDetector{}, executorOrNil(executor))
	require.NoError(t, err)
	t.Cleanup(func() { _ = fuzzer.Close() })

	sourcePath := filepath.Join(t.TempDir(), "Vault.sol")
	require.NoError(t, os.WriteFile(sourcePath, []byte("contract Vault {}"), 0644))
	require.NoError(t, fuzzer.LoadContract(context.Background(), sourcePath, "Vault"))
	return fuzzer
}

// newTestMutator builds a mutation engine with a deterministic random source.
func newTestMutator(senders []common.Address, seed int64) *Mutator {
	randomProvider := rand.New(rand.NewSource(seed))
	return NewMutator(
		senders,
		senders[0],
		valuegeneration.NewRandomValueGenerator(randomProvider),
		0.5,
		100,
		randomProvider,
		logging.NewLogger(zerolog.Disabled, false),
	)
}

// occupiedState builds a state scheduling the given selectors contiguously from index 0 in a sequence of the given
// length.
func occupiedState(t *testing.T, report *staticanalysis.Report, length int, contract *contracts.Contract, selectors ...string) *State {
	state := NewState(report, length)
	for i, selector := range selectors {
		method, ok := contract.Method(selector)
		require.True(t, ok, fmt.Sprintf("unknown selector %s", selector))
		var payload []byte
		payload = append(payload, method.ID...)
		state.TxList.Set(i, calls.OccupiedSlot(calls.NewCall(common.Address{0x01}, big.NewInt(0), payload, selector, nil)))
	}
	return state
}
