package fuzzing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Masterminds/semver"
	"github.com/cinderfuzz/cinder/backend"
	"github.com/cinderfuzz/cinder/fuzzing/calls"
	"github.com/cinderfuzz/cinder/fuzzing/concolic"
	"github.com/cinderfuzz/cinder/fuzzing/config"
	"github.com/cinderfuzz/cinder/fuzzing/contracts"
	"github.com/cinderfuzz/cinder/fuzzing/corpus"
	"github.com/cinderfuzz/cinder/fuzzing/coverage"
	"github.com/cinderfuzz/cinder/fuzzing/detection"
	"github.com/cinderfuzz/cinder/fuzzing/staticanalysis"
	"github.com/cinderfuzz/cinder/fuzzing/tracing"
	"github.com/cinderfuzz/cinder/fuzzing/valuegeneration"
	"github.com/cinderfuzz/cinder/logging"
	"github.com/cinderfuzz/cinder/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// accountsFileName is the name of the file the engine writes its backend account addresses into, so external policy
// drivers and symbolic executors share the same account pool.
const accountsFileName = "address.json"

// coverageDatabaseFileName is the name of the on-disk coverage warm-start database.
const coverageDatabaseFileName = "coverage.db"

// Fuzzer is the episode controller of the engine. It owns the contract cache, the transaction-sequence state, the
// episode step counter and the cross-episode bookkeeping, and exposes the load/reset/step cycle an external policy
// driver runs against.
type Fuzzer struct {
	// config describes the project configuration the fuzzing is operating under.
	config config.ProjectConfig

	// logger describes the Fuzzer's log object.
	logger *logging.Logger

	// backend is the execution backend used to compile, deploy and execute transactions.
	backend backend.Client

	// staticAnalyzer produces per-function feature reports for loaded contracts.
	staticAnalyzer staticanalysis.Analyzer

	// analyzer scores executions and delegates vulnerability classification.
	analyzer *tracing.TraceAnalyzer

	// mutator applies policy actions to the transaction-sequence state.
	mutator *Mutator

	// escalation decides when symbolic exploration replaces a mutation step.
	escalation *concolic.Controller

	// cache holds the per-contract records which persist across episodes.
	cache *contracts.Cache

	// Hooks describes the replaceable seams toward the external policy driver.
	Hooks FuzzerHooks

	// Events describes the event system for the Fuzzer.
	Events FuzzerEvents

	// accounts lists the backend's account addresses in a stable order.
	accounts []common.Address

	// baselineBalance is the configured aggregate balance above which an increase is treated as an exploit. Only
	// meaningful when exploit detection is enabled.
	baselineBalance decimal.Decimal

	// randomProvider offers a source of random data.
	randomProvider *rand.Rand

	// contract is the contract currently under test.
	contract *contracts.Contract

	// contractAddress is the deployed address of the contract under test for the current episode.
	contractAddress common.Address

	// state is the current transaction-sequence state of the episode.
	state *State

	// prevTraces holds the trace set of the episode's previous execution, the comparison base for reward scoring.
	prevTraces []*backend.Trace

	// stepCounter counts the steps taken in the current episode.
	stepCounter int

	// episodeFindings deduplicates the findings reported during the current episode.
	episodeFindings map[string]*detection.Finding
}

// StepResult describes the outcome of a single fuzzing step, in the shape an external policy driver consumes.
type StepResult struct {
	// EncodedState is the policy encoding of the post-step state.
	EncodedState []float64

	// SeqLen is the number of scheduled calls in the post-step state.
	SeqLen int

	// Reward is the shaped reward of the step.
	Reward float64

	// Done indicates the episode reached a terminal outcome (an exploit was detected).
	Done bool

	// Timeout indicates the episode's step budget is exhausted.
	Timeout bool

	// NewPathFound indicates the step's execution discovered previously unseen coverage.
	NewPathFound bool

	// Findings lists the findings first reported during this step, with transaction sequences attached.
	Findings []*detection.Finding
}

// NewFuzzer creates a fuzzer over the given backend, static analyzer, detector and optional symbolic executor.
// It fetches and orders the backend's account pool, writes the account seed file and prepares the contract cache.
// Returns the fuzzer, or an error if one occurred.
func NewFuzzer(ctx context.Context, projectConfig config.ProjectConfig, client backend.Client, staticAnalyzer staticanalysis.Analyzer, detector detection.Detector, symbolicExecutor concolic.Executor) (*Fuzzer, error) {
	if err := projectConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project configuration: %v", err)
	}

	logger := logging.NewLogger(projectConfig.Fuzzing.Logging.Level, projectConfig.Fuzzing.Logging.EnableConsoleLogging)
	if projectConfig.Fuzzing.Logging.LogDirectory != "" {
		file, err := utils.CreateFile(projectConfig.Fuzzing.Logging.LogDirectory, "cinder.log")
		if err != nil {
			return nil, fmt.Errorf("could not create log file: %v", err)
		}
		logger.AddWriter(file, logging.STRUCTURED)
	}

	// Account pool, ordered so runs are reproducible for a fixed backend.
	balances, err := client.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not fetch backend accounts: %v", ErrBackendUnavailable, err)
	}
	if len(balances) == 0 {
		return nil, fmt.Errorf("%w: backend reported no accounts", ErrBackendUnavailable)
	}
	accounts := make([]common.Address, 0, len(balances))
	for address := range balances {
		accounts = append(accounts, address)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Hex() < accounts[j].Hex()
	})

	// The first account conventionally deploys; fresh calls default to the second sender when one exists.
	defaultSender := accounts[0]
	if len(accounts) > 1 {
		defaultSender = accounts[1]
	}

	if err := writeAccountsFile(projectConfig.Fuzzing.SeedDirectory, accounts); err != nil {
		return nil, err
	}

	databasePath := ""
	if projectConfig.Fuzzing.CoveragePersistence {
		databasePath = filepath.Join(projectConfig.Fuzzing.SeedDirectory, coverageDatabaseFileName)
	}
	cache, err := contracts.NewCache(databasePath)
	if err != nil {
		return nil, err
	}

	var baselineBalance decimal.Decimal
	if projectConfig.Fuzzing.ExploitDetection {
		baselineBalance, err = decimal.NewFromString(projectConfig.Fuzzing.BalanceBaseline)
		if err != nil {
			return nil, fmt.Errorf("invalid balance baseline %q: %v", projectConfig.Fuzzing.BalanceBaseline, err)
		}
	}

	randomProvider := rand.New(rand.NewSource(time.Now().UnixNano()))
	valueGenerator := valuegeneration.NewRandomValueGenerator(randomProvider)
	mode := coverage.Mode(projectConfig.Fuzzing.CoverageMode)

	fuzzer := &Fuzzer{
		config:         projectConfig,
		logger:         logger,
		backend:        client,
		staticAnalyzer: staticAnalyzer,
		analyzer:       tracing.NewTraceAnalyzer(detector, mode),
		mutator: NewMutator(
			accounts,
			defaultSender,
			valueGenerator,
			projectConfig.Fuzzing.SeedBias,
			projectConfig.Fuzzing.SenderRetryLimit,
			randomProvider,
			logger.NewSubLogger("module", "mutator"),
		),
		escalation: concolic.NewController(
			projectConfig.Fuzzing.ConcolicEnabled,
			symbolicExecutor,
			projectConfig.Fuzzing.ConcolicWait,
			projectConfig.Fuzzing.RewardGainFactor,
			projectConfig.Fuzzing.PenaltyFactor,
			logger.NewSubLogger("module", "concolic"),
		),
		cache: cache,
		Hooks: FuzzerHooks{
			ActionDecoder: &PassthroughDecoder{},
			StateEncoder:  &FlatStateEncoder{},
		},
		accounts:        accounts,
		baselineBalance: baselineBalance,
		randomProvider:  randomProvider,
		episodeFindings: make(map[string]*detection.Finding),
	}
	return fuzzer, nil
}

// LoadContract compiles and analyzes the contract at the given source path and admits it into the contract cache as
// the contract under test. A contract previously loaded from the same path keeps its accumulated coverage and seed
// corpus. No partial cache entry is committed on failure.
func (f *Fuzzer) LoadContract(ctx context.Context, sourcePath string, contractName string) error {
	sourceText, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("%w: could not read contract source %s: %v", ErrContractLoad, sourcePath, err)
	}

	artifact, err := f.backend.Compile(ctx, string(sourceText), contractName)
	if err != nil {
		return fmt.Errorf("%w: compilation of %s failed: %v", ErrContractLoad, contractName, err)
	}

	if f.config.Fuzzing.MinCompilerVersion != "" {
		if err := checkCompilerVersion(artifact.CompilerVersion, f.config.Fuzzing.MinCompilerVersion); err != nil {
			return fmt.Errorf("%w: %v", ErrContractLoad, err)
		}
	}

	if err := f.staticAnalyzer.LoadContract(sourcePath, contractName); err != nil {
		return fmt.Errorf("%w: static analyzer rejected %s: %v", ErrContractLoad, contractName, err)
	}
	report, err := f.staticAnalyzer.Run()
	if err != nil {
		return fmt.Errorf("%w: static analysis of %s failed: %v", ErrContractLoad, contractName, err)
	}

	contract, err := contracts.NewContract(contractName, sourcePath, artifact, report, coverage.Mode(f.config.Fuzzing.CoverageMode))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContractLoad, err)
	}
	if err := f.cache.Put(sourcePath, contract); err != nil {
		return fmt.Errorf("%w: %v", ErrContractLoad, err)
	}

	f.contract = contract
	f.logger.Info("loaded contract ", contractName, " from ", sourcePath)
	f.Events.ContractLoaded.Publish(ContractLoadedEvent{Fuzzer: f, Contract: contract})
	return nil
}

// Reset starts a fresh episode for the loaded contract: the backend state is restored, the contract is redeployed
// and the transaction-sequence state, step counter and per-episode findings are cleared. Cross-episode state, the
// accumulated coverage and seed corpus, is retained. Reset is idempotent.
// Returns the policy encoding of the fresh state.
func (f *Fuzzer) Reset(ctx context.Context) ([]float64, error) {
	if f.contract == nil {
		return nil, fmt.Errorf("no contract loaded")
	}

	if err := f.backend.Reset(ctx); err != nil {
		return nil, fmt.Errorf("%w: backend reset failed: %v", ErrBackendUnavailable, err)
	}
	address, err := f.backend.Deploy(ctx, f.contract.Artifact())
	if err != nil {
		return nil, fmt.Errorf("%w: deployment failed: %v", ErrBackendUnavailable, err)
	}

	f.contractAddress = address
	f.state = NewState(f.contract.Report(), f.config.Fuzzing.MaxCallNum)
	f.prevTraces = nil
	f.stepCounter = 0
	f.episodeFindings = make(map[string]*detection.Finding)

	encoded, _, err := f.Hooks.StateEncoder.EncodeState(f.state)
	return encoded, err
}

// Step runs one iteration of the episode loop: the raw policy action is decoded, the state is mutated (or, when
// coverage has stagnated, a symbolic candidate is adopted instead), the resulting sequence is executed against the
// backend and the execution is scored. Mutation dead ends are recovered as no-op steps with zero reward; they are
// not errors. Unexpected faults during execution or scoring are contained at the step boundary as degraded
// zero-reward results ending the episode, so a driving loop survives single-step faults. The step counter advances
// on every call, including no-op and degraded steps.
func (f *Fuzzer) Step(ctx context.Context, rawAction any) (*StepResult, error) {
	if f.state == nil {
		return nil, fmt.Errorf("episode not started, call Reset first")
	}

	f.stepCounter++
	timeout := f.stepCounter >= f.config.Fuzzing.AttemptLimit

	mutated, escalated, err := f.nextState(ctx, rawAction)
	if err != nil {
		if isMutationDeadEnd(err) {
			f.logger.Debug("mutation dead end: ", err)
			f.escalation.Observe(false)
			return f.noopResult(timeout)
		}
		return f.faultResult(err)
	}

	currTraces, executedCalls, err := f.executeSequence(ctx, mutated.TxList)
	if err != nil {
		return f.faultResult(err)
	}

	var pendingSeeds [][]corpus.SeedCandidate
	if escalated {
		pendingSeeds = symbolicSeeds(mutated, len(executedCalls))
	}
	result, err := f.analyzer.Run(f.prevTraces, currTraces, pendingSeeds)
	if err != nil {
		return f.faultResult(err)
	}

	newPathFound, err := f.contract.Seeds().LoadSeed(mutated.TxList, result.Visited[:len(executedCalls)], result.SeedCandidates, f.contract.Visited())
	if err != nil {
		return f.faultResult(err)
	}

	reward := result.Reward + f.config.Fuzzing.ValidMutationBonus
	if newPathFound {
		reward += f.config.Fuzzing.PathDiscoveryBonus
		f.Events.PathDiscovered.Publish(PathDiscoveredEvent{Fuzzer: f, Contract: f.contract, Step: f.stepCounter})
	}

	findings := result.Findings
	exploited := false
	if f.config.Fuzzing.ExploitDetection {
		var evidence string
		exploited, evidence, err = f.checkExploit(ctx)
		if err != nil {
			return f.faultResult(err)
		}
		if exploited {
			reward += f.config.Fuzzing.ExploitBonus
			findings = append(findings, detection.NewExploitFinding(evidence, mutated.TxList.Clone()))
		}
	}
	newFindings := f.recordFindings(findings, mutated.TxList)

	// The episode terminates once the step budget runs out, an exploit was observed or any finding was produced
	// this step.
	done := timeout || exploited || len(newFindings) > 0

	f.state = mutated
	f.prevTraces = currTraces
	f.escalation.Observe(newPathFound)

	encoded, seqLen, err := f.Hooks.StateEncoder.EncodeState(f.state)
	if err != nil {
		return nil, err
	}
	return &StepResult{
		EncodedState: encoded,
		SeqLen:       seqLen,
		Reward:       reward,
		Done:         done,
		Timeout:      timeout,
		NewPathFound: newPathFound,
		Findings:     newFindings,
	}, nil
}

// Coverage returns the coverage metric of the contract under test. In instruction mode this is the fraction of
// branch instructions visited, or 1 when the bytecode has none; in path mode it is the absolute number of distinct
// paths observed.
func (f *Fuzzer) Coverage() float64 {
	if f.contract == nil {
		return 0
	}
	visited := f.contract.Visited()
	if visited.Mode() == coverage.ModePath {
		return float64(visited.Size())
	}
	branchCount := f.contract.Artifact().BranchInstructionCount()
	if branchCount == 0 {
		return 1
	}
	return float64(visited.Size()) / float64(branchCount)
}

// Contract returns the contract currently under test, or nil if none is loaded.
func (f *Fuzzer) Contract() *contracts.Contract {
	return f.contract
}

// State returns the current transaction-sequence state of the episode.
func (f *Fuzzer) State() *State {
	return f.state
}

// StepCount returns the number of steps taken in the current episode.
func (f *Fuzzer) StepCount() int {
	return f.stepCounter
}

// Accounts returns the backend's account addresses in the engine's stable order.
func (f *Fuzzer) Accounts() []common.Address {
	return f.accounts
}

// Findings returns the deduplicated findings reported during the current episode.
func (f *Fuzzer) Findings() []*detection.Finding {
	findings := make([]*detection.Finding, 0, len(f.episodeFindings))
	for _, finding := range f.episodeFindings {
		findings = append(findings, finding)
	}
	return findings
}

// Close flushes the coverage warm-start database, if persistence is enabled, and releases the contract cache.
func (f *Fuzzer) Close() error {
	return f.cache.Close()
}

// nextState produces the next candidate state, either by escalating to symbolic exploration when coverage has
// stagnated long enough, or by decoding and applying the policy's action. The second return value indicates whether
// the state came from symbolic exploration.
func (f *Fuzzer) nextState(ctx context.Context, rawAction any) (*State, bool, error) {
	if f.escalation.ShouldEscalate() {
		stagnant := f.escalation.StagnantSteps()
		candidate, err := f.escalation.Escalate(ctx, f.state.TxList, f.frontierBranches())
		if err != nil {
			f.logger.Warn("symbolic exploration failed, falling back to mutation", err)
		} else if candidate != nil {
			// Externally produced sequences may omit call values; normalize them before execution.
			for _, call := range candidate.Calls() {
				if call.Value == nil {
					call.Value = new(big.Int)
				}
			}
			f.logger.Info("adopting symbolic candidate sequence after ", stagnant, " stagnant steps")
			return &State{StaticAnalysis: f.state.StaticAnalysis, TxList: candidate}, true, nil
		}
	}

	action, err := f.Hooks.ActionDecoder.DecodeAction(rawAction)
	if err != nil {
		return nil, false, err
	}
	mutated, err := f.mutator.Mutate(f.contract, f.state, action)
	return mutated, false, err
}

// executeSequence runs every scheduled call of the sequence against the backend in order. For each call whose target
// function performs external calls, a second revert-discarded probe of the same call is executed afterward, so call
// effects surface in the trace set without committing state twice. A backend-unavailable response for a single
// transaction is degraded to an empty trace rather than failing the step.
func (f *Fuzzer) executeSequence(ctx context.Context, sequence *calls.CallSequence) ([]*backend.Trace, []*calls.Call, error) {
	executedCalls := sequence.Calls()
	traces := make([]*backend.Trace, 0, len(executedCalls)*2)
	var probes []*backend.Trace

	for _, call := range executedCalls {
		trace, err := f.sendCall(ctx, call, false)
		if err != nil {
			return nil, nil, err
		}
		traces = append(traces, trace)
		call.Visited = true
		f.contract.MarkMethodVisited(call.FuncHash)

		if f.state.StaticAnalysis.Function(call.FuncHash).HasExternalCall() {
			probe, err := f.sendCall(ctx, call, true)
			if err != nil {
				return nil, nil, err
			}
			probes = append(probes, probe)
		}
	}
	return append(traces, probes...), executedCalls, nil
}

// sendCall executes a single call, optionally in revert-discarded probe mode. Backend unavailability is degraded to
// an empty trace.
func (f *Fuzzer) sendCall(ctx context.Context, call *calls.Call, revert bool) (*backend.Trace, error) {
	trace, err := f.backend.SendTx(ctx, backend.TxRequest{
		Sender:    call.Sender,
		Recipient: f.contractAddress,
		Value:     decimal.NewFromBigInt(call.Value, 0),
		Payload:   call.Payload,
		Revert:    revert,
	})
	if err != nil {
		if errors.Is(err, backend.ErrUnavailable) {
			f.logger.Warn("backend returned no trace for transaction, continuing with an empty trace", err)
			return &backend.Trace{}, nil
		}
		return nil, err
	}
	if trace == nil {
		return &backend.Trace{}, nil
	}
	return trace, nil
}

// symbolicSeeds builds the seed candidates of a symbolic candidate sequence, one candidate per typed argument of
// each scheduled call. A state produced by plain mutation contributes none; its argument values enter the corpus
// through the ordinary harvest.
func symbolicSeeds(state *State, executedCount int) [][]corpus.SeedCandidate {
	scheduled := state.TxList.Calls()
	if len(scheduled) != executedCount {
		return nil
	}
	seeds := make([][]corpus.SeedCandidate, len(scheduled))
	for i, call := range scheduled {
		for position, typedArg := range call.TypedArgs {
			seeds[i] = append(seeds[i], corpus.SeedCandidate{Position: position, Value: typedArg.Value})
		}
	}
	return seeds
}

// frontierBranches returns the branch program counters observed in the previous execution, the targets symbolic
// exploration is pointed at.
func (f *Fuzzer) frontierBranches() map[uint64]struct{} {
	frontier := make(map[uint64]struct{})
	for _, trace := range f.prevTraces {
		for pc := range trace.BranchPCs() {
			frontier[pc] = struct{}{}
		}
	}
	return frontier
}

// checkExploit sums the balances of every backend account and compares the aggregate against the configured
// baseline. An aggregate above the baseline is treated as an exploit of contract-owned funds.
func (f *Fuzzer) checkExploit(ctx context.Context) (bool, string, error) {
	balances, err := f.backend.Accounts(ctx)
	if err != nil {
		return false, "", fmt.Errorf("%w: could not fetch account balances: %v", ErrBackendUnavailable, err)
	}

	sum := new(big.Int)
	for address, balance := range balances {
		parsed, err := parseHexBalance(balance)
		if err != nil {
			return false, "", fmt.Errorf("malformed balance %q for account %s: %v", balance, address.Hex(), err)
		}
		sum.Add(sum, parsed)
	}

	aggregate := decimal.NewFromBigInt(sum, 0)
	if aggregate.Cmp(f.baselineBalance) > 0 {
		evidence := fmt.Sprintf("aggregate account balance %s exceeds baseline %s", aggregate.String(), f.baselineBalance.String())
		f.logger.Info("exploit detected: ", evidence)
		return true, evidence, nil
	}
	return false, "", nil
}

// recordFindings attaches the executed sequence to findings lacking one, deduplicates them against the episode's
// accumulated findings and publishes the new ones. Returns the findings first seen during this step.
func (f *Fuzzer) recordFindings(findings []*detection.Finding, sequence *calls.CallSequence) []*detection.Finding {
	var newFindings []*detection.Finding
	for _, finding := range findings {
		if _, seen := f.episodeFindings[finding.DedupKey()]; seen {
			continue
		}
		if finding.Sequence == nil {
			finding.Sequence = sequence.Clone()
		}
		f.episodeFindings[finding.DedupKey()] = finding
		newFindings = append(newFindings, finding)
		f.logger.Info("new finding: ", finding.String())
		f.Events.FindingReported.Publish(FindingReportedEvent{Fuzzer: f, Finding: finding})
	}
	return newFindings
}

// noopResult builds the result of a step whose mutation hit a dead end: the state is unchanged and the reward is
// zero.
func (f *Fuzzer) noopResult(timeout bool) (*StepResult, error) {
	encoded, seqLen, err := f.Hooks.StateEncoder.EncodeState(f.state)
	if err != nil {
		return nil, err
	}
	return &StepResult{
		EncodedState: encoded,
		SeqLen:       seqLen,
		Done:         timeout,
		Timeout:      timeout,
	}, nil
}

// faultResult builds the result of a step that failed unexpectedly mid-execution. The fault is logged and contained:
// the pre-step state is kept, the reward is zero and the timeout flag is raised so the driving loop abandons the
// episode instead of crashing.
func (f *Fuzzer) faultResult(faultErr error) (*StepResult, error) {
	f.logger.Warn("step failed, abandoning the episode with a degraded result", faultErr)
	f.escalation.Observe(false)
	encoded, seqLen, err := f.Hooks.StateEncoder.EncodeState(f.state)
	if err != nil {
		return nil, err
	}
	return &StepResult{
		EncodedState: encoded,
		SeqLen:       seqLen,
		Done:         true,
		Timeout:      true,
	}, nil
}

// parseHexBalance parses a backend-reported hex balance string into an integer. The 0x prefix is optional.
func parseHexBalance(balance string) (*big.Int, error) {
	if len(balance) < 2 || (balance[:2] != "0x" && balance[:2] != "0X") {
		balance = "0x" + balance
	}
	parsed, err := uint256.FromHex(balance)
	if err != nil {
		return nil, err
	}
	return parsed.ToBig(), nil
}

// checkCompilerVersion verifies the backend's reported compiler version satisfies the configured minimum.
func checkCompilerVersion(reported string, minimum string) error {
	version, err := semver.NewVersion(reported)
	if err != nil {
		return fmt.Errorf("backend reported unparseable compiler version %q: %v", reported, err)
	}
	constraint, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum compiler version %q: %v", minimum, err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("compiler version %s is below the configured minimum %s", reported, minimum)
	}
	return nil
}

// writeAccountsFile serializes the account pool into the seed directory so external tools share it.
func writeAccountsFile(seedDirectory string, accounts []common.Address) error {
	addresses := make([]string, len(accounts))
	for i, account := range accounts {
		addresses[i] = account.Hex()
	}
	file, err := utils.CreateFile(seedDirectory, accountsFileName)
	if err != nil {
		return fmt.Errorf("could not create account seed file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "\t")
	return encoder.Encode(addresses)
}
