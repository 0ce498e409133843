package calls

import (
	"encoding/hex"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/exp/slices"
)

// SelectorHex returns the canonical hex string form of a 4-byte function selector, used to key functions throughout
// the engine.
func SelectorHex(selector []byte) string {
	return hex.EncodeToString(selector)
}

// TypedArg describes a single typed argument value of a call, used both for execution encoding and for seed
// harvesting.
type TypedArg struct {
	// Type is the ABI type of the argument.
	Type abi.Type

	// Value is the concrete argument value, in the Go representation go-ethereum's ABI encoder expects.
	Value any
}

// Call describes one transaction into the contract under test.
type Call struct {
	// Sender is the account address the call is sent from.
	Sender common.Address

	// Value is the amount of native currency attached to the call.
	Value *big.Int

	// Payload is the encoded call data: the 4-byte function selector followed by the ABI-packed arguments.
	Payload []byte

	// FuncHash identifies the target function in the contract ABI, as the hex string of its 4-byte selector.
	FuncHash string

	// TypedArgs is the ordered sequence of typed argument values encoded into Payload.
	TypedArgs []TypedArg

	// Visited indicates whether this call has been executed against the backend at least once.
	Visited bool
}

// NewCall creates a call targeting the given function with the given sender, value, payload and typed arguments.
// A nil value is normalized to zero.
func NewCall(sender common.Address, value *big.Int, payload []byte, funcHash string, typedArgs []TypedArg) *Call {
	if value == nil {
		value = new(big.Int)
	}
	return &Call{
		Sender:    sender,
		Value:     value,
		Payload:   payload,
		FuncHash:  funcHash,
		TypedArgs: typedArgs,
	}
}

// Clone creates a structural copy of the call. Argument values are shared, as they are only ever replaced
// wholesale by mutation actions, never edited in place.
func (c *Call) Clone() *Call {
	if c == nil {
		return nil
	}
	value := new(big.Int)
	if c.Value != nil {
		value.Set(c.Value)
	}
	return &Call{
		Sender:    c.Sender,
		Value:     value,
		Payload:   slices.Clone(c.Payload),
		FuncHash:  c.FuncHash,
		TypedArgs: slices.Clone(c.TypedArgs),
		Visited:   c.Visited,
	}
}
