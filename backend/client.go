package backend

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ErrUnavailable indicates the execution backend returned no usable response for a request. An empty or absent
// response is treated as an explicit failure signal, never as an empty result.
var ErrUnavailable = errors.New("execution backend returned no usable response")

// TxRequest describes a single transaction to be executed by the backend against a deployed contract.
type TxRequest struct {
	// Sender is the account address the transaction is sent from.
	Sender common.Address

	// Recipient is the address of the deployed contract receiving the call.
	Recipient common.Address

	// Value is the amount of native currency attached to the call. It travels over the wire as a decimal string.
	Value decimal.Decimal

	// Payload is the call data, typically a 4-byte function selector followed by ABI-packed arguments.
	Payload []byte

	// Revert indicates the backend should execute the transaction and then revert all side effects, so call effects
	// can be observed without committing state.
	Revert bool
}

// Client describes the execution backend consumed by the fuzzing engine. It compiles, deploys and executes
// transactions, returning accounts and step-by-step opcode traces. All calls are synchronous request/response.
// Implementations must return ErrUnavailable (possibly wrapped) when the backend produced no usable response,
// so callers can distinguish "no trace returned" from "traced but empty".
type Client interface {
	// Reset restores the backend to a clean state.
	Reset(ctx context.Context) error

	// Accounts returns every account known to the backend, mapping each address to its balance as a hex string.
	Accounts(ctx context.Context) (map[common.Address]string, error)

	// Compile compiles the given contract source text and returns the resulting artifact.
	Compile(ctx context.Context, sourceText string, contractName string) (*CompiledArtifact, error)

	// Deploy deploys the given compiled artifact and returns the address of the deployed contract.
	Deploy(ctx context.Context, artifact *CompiledArtifact) (common.Address, error)

	// SendTx executes a single transaction and returns the ordered execution trace it produced.
	SendTx(ctx context.Context, request TxRequest) (*Trace, error)
}
