package fuzzing

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/cinderfuzz/cinder/fuzzing/calls"
	"github.com/cinderfuzz/cinder/fuzzing/contracts"
	"github.com/cinderfuzz/cinder/fuzzing/staticanalysis"
	"github.com/cinderfuzz/cinder/fuzzing/valuegeneration"
	"github.com/cinderfuzz/cinder/logging"
	"github.com/ethereum/go-ethereum/common"
)

// Mutator applies one of the fixed mutation actions to a transaction-sequence state, enforcing payability, index
// bounds and sender distinctness. It never mutates the input state; successful mutations return a new state with a
// structurally copied sequence.
type Mutator struct {
	// senders is the account pool sender mutations sample from.
	senders []common.Address

	// defaultSender is the sender assigned to freshly synthesized calls.
	defaultSender common.Address

	// valueGenerator produces fresh argument and value samples when the seed corpus is not consulted.
	valueGenerator valuegeneration.ValueGenerator

	// seedBias is the probability of drawing an argument from the seed corpus when seeds exist.
	seedBias float64

	// retryLimit bounds retry-until-distinct resampling of senders and values.
	retryLimit int

	// randomProvider offers a source of random data for candidate selection.
	randomProvider *rand.Rand

	// logger describes the Mutator's log object.
	logger *logging.Logger
}

// NewMutator creates a mutation engine sampling senders from the given account pool.
func NewMutator(senders []common.Address, defaultSender common.Address, valueGenerator valuegeneration.ValueGenerator, seedBias float64, retryLimit int, randomProvider *rand.Rand, logger *logging.Logger) *Mutator {
	return &Mutator{
		senders:        senders,
		defaultSender:  defaultSender,
		valueGenerator: valueGenerator,
		seedBias:       seedBias,
		retryLimit:     retryLimit,
		randomProvider: randomProvider,
		logger:         logger,
	}
}

// Mutate applies the given action to the given state and returns the resulting state. The engine fills gaps before
// anything else: if the last slot is empty the action is overridden to a Replace there, and if the target slot is
// empty the action is overridden to a Replace. Dead ends fail with ErrNoCandidate, ErrNotPayable, ErrInvalidAction
// or ErrUnknownAction.
func (m *Mutator) Mutate(contract *contracts.Contract, state *State, action Action) (*State, error) {
	maxCallNum := state.TxList.Length()
	if action.Arg < 0 || action.Arg >= maxCallNum {
		return nil, fmt.Errorf("%w: index %d out of bounds [0, %d)", ErrInvalidAction, action.Arg, maxCallNum)
	}

	// Gap-filling pre-pass: fill the trailing slot before honoring any other edit, and never modify an empty slot.
	if state.TxList.LastSlotEmpty() {
		action = Action{ID: ActionReplace, Arg: maxCallNum - 1}
	} else if state.TxList.At(action.Arg).Empty() {
		action.ID = ActionReplace
	}

	txList := state.TxList.Clone()
	var err error
	switch action.ID {
	case ActionReplace:
		err = m.replace(contract, state, txList, action.Arg)
	case ActionModifyArgs:
		err = m.modifyArgs(contract, txList, action.Arg)
	case ActionModifySender:
		err = m.modifySender(txList, action.Arg)
	case ActionModifyValue:
		err = m.modifyValue(contract, txList, action.Arg)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownAction, int(action.ID))
	}
	if err != nil {
		return nil, err
	}

	return &State{
		StaticAnalysis: state.StaticAnalysis,
		TxList:         txList,
	}, nil
}

// replace swaps the call at the given index for a freshly synthesized call to a qualifying different function.
// A function qualifies when it performs an external call, or when its written-variable set intersects the union of
// the read-variable sets of every call scheduled after the index, so the swap can causally affect downstream calls.
func (m *Mutator) replace(contract *contracts.Contract, state *State, txList *calls.CallSequence, index int) error {
	currentHash := ""
	if target := state.TxList.At(index); !target.Empty() {
		currentHash = target.Call().FuncHash
	}

	// Union of the read sets of every call scheduled after the target index.
	laterReads := make(map[staticanalysis.VarID]struct{})
	for i := index + 1; i < state.TxList.Length(); i++ {
		slot := state.TxList.At(i)
		if slot.Empty() {
			continue
		}
		if report := state.StaticAnalysis.Function(slot.Call().FuncHash); report != nil {
			for varID := range report.VarsRead {
				laterReads[varID] = struct{}{}
			}
		}
	}

	var candidates []string
	for _, funcHash := range contract.FuncHashes() {
		if funcHash == currentHash {
			continue
		}
		report := state.StaticAnalysis.Function(funcHash)
		if report.HasExternalCall() || report.WritesIntersect(laterReads) {
			candidates = append(candidates, funcHash)
		}
	}
	if len(candidates) == 0 {
		return ErrNoCandidate
	}

	funcHash := candidates[m.randomProvider.Intn(len(candidates))]
	call, err := m.synthesizeCall(contract, funcHash)
	if err != nil {
		return err
	}
	txList.Set(index, calls.OccupiedSlot(call))
	return nil
}

// modifyArgs resynthesizes the typed arguments of the call at the given index from the seed corpus, keeping the
// target function, sender and value.
func (m *Mutator) modifyArgs(contract *contracts.Contract, txList *calls.CallSequence, index int) error {
	call := txList.At(index).Call()
	method, ok := contract.Method(call.FuncHash)
	if !ok {
		return fmt.Errorf("%w: no method with hash %s", ErrInvalidAction, call.FuncHash)
	}

	typedArgs := valuegeneration.SynthesizeArgs(method, contract.Seeds(), m.valueGenerator, m.seedBias, m.randomProvider)
	payload, err := valuegeneration.EncodePayload(method, typedArgs)
	if err != nil {
		return err
	}
	call.TypedArgs = typedArgs
	call.Payload = payload
	call.Visited = false
	return nil
}

// modifySender resamples the sender of the call at the given index uniformly from the account pool, retrying up to
// the configured budget for a sender distinct from the current one. When the budget runs out, the last sampled
// value is kept, best-effort.
func (m *Mutator) modifySender(txList *calls.CallSequence, index int) error {
	if len(m.senders) == 0 {
		return ErrNoCandidate
	}
	call := txList.At(index).Call()
	sender, distinct := resampleDistinct(
		func() common.Address { return m.senders[m.randomProvider.Intn(len(m.senders))] },
		func(a, b common.Address) bool { return a == b },
		call.Sender,
		m.retryLimit,
	)
	if !distinct {
		m.logger.Debug("sender resampling exhausted its retry budget without a distinct value")
	}
	call.Sender = sender
	call.Visited = false
	return nil
}

// modifyValue resamples the attached value of the call at the given index via the seed corpus, retrying up to the
// configured budget for a value distinct from the current one. Fails with ErrNotPayable when the target function
// does not accept native currency.
func (m *Mutator) modifyValue(contract *contracts.Contract, txList *calls.CallSequence, index int) error {
	call := txList.At(index).Call()
	if !contract.IsPayable(call.FuncHash) {
		return fmt.Errorf("%w: %s", ErrNotPayable, call.FuncHash)
	}

	value, distinct := resampleDistinct(
		func() *big.Int {
			return valuegeneration.SynthesizeValue(call.FuncHash, contract.Seeds(), m.valueGenerator, m.seedBias, m.randomProvider)
		},
		func(a, b *big.Int) bool { return a.Cmp(b) == 0 },
		call.Value,
		m.retryLimit,
	)
	if !distinct {
		m.logger.Debug("value resampling exhausted its retry budget without a distinct value")
	}
	call.Value = value
	call.Visited = false
	return nil
}

// synthesizeCall creates a fresh call to the given function, drawing arguments from the seed corpus and attaching a
// value only when the function is payable.
func (m *Mutator) synthesizeCall(contract *contracts.Contract, funcHash string) (*calls.Call, error) {
	method, ok := contract.Method(funcHash)
	if !ok {
		return nil, fmt.Errorf("%w: no method with hash %s", ErrInvalidAction, funcHash)
	}

	typedArgs := valuegeneration.SynthesizeArgs(method, contract.Seeds(), m.valueGenerator, m.seedBias, m.randomProvider)
	payload, err := valuegeneration.EncodePayload(method, typedArgs)
	if err != nil {
		return nil, err
	}

	value := big.NewInt(0)
	if contract.IsPayable(funcHash) {
		value = valuegeneration.SynthesizeValue(funcHash, contract.Seeds(), m.valueGenerator, m.seedBias, m.randomProvider)
	}
	return calls.NewCall(m.defaultSender, value, payload, funcHash, typedArgs), nil
}
