package backend

import (
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// CompiledArtifact describes the output of compiling a single smart contract through the execution backend.
type CompiledArtifact struct {
	// ContractName is the name of the compiled contract.
	ContractName string `json:"contractName"`

	// InitBytecode is the constructor/deployment bytecode of the contract.
	InitBytecode []byte `json:"bytecode"`

	// RuntimeBytecode is the bytecode of the contract as deployed on-chain.
	RuntimeBytecode []byte `json:"runtimeBytecode"`

	// Opcodes lists the disassembled instruction mnemonics of the runtime bytecode, in program order.
	Opcodes []string `json:"opcodes"`

	// AbiJSON is the contract's ABI definition in its JSON form.
	AbiJSON json.RawMessage `json:"abi"`

	// CompilerVersion is the semantic version of the compiler which produced this artifact, as reported by the
	// backend.
	CompilerVersion string `json:"compilerVersion"`
}

// BranchInstructionCount returns the number of branch-class instructions within the contract's runtime bytecode.
// This is the denominator of the instruction-coverage metric.
func (a *CompiledArtifact) BranchInstructionCount() int {
	count := 0
	for _, op := range a.Opcodes {
		if strings.HasPrefix(op, branchMnemonicPrefix) {
			count++
		}
	}
	return count
}

// CodeIdentity derives a stable identity hash for the contract's runtime bytecode. If the bytecode carries an
// embedded metadata hash, that hash is used, since it survives irrelevant bytecode layout differences across
// recompilations. Otherwise the identity falls back to a keccak256 hash of the runtime bytecode itself.
func (a *CompiledArtifact) CodeIdentity() common.Hash {
	if metadata := ExtractContractMetadata(a.RuntimeBytecode); metadata != nil {
		if bytecodeHash := metadata.ExtractBytecodeHash(); bytecodeHash != nil {
			return crypto.Keccak256Hash(bytecodeHash)
		}
	}
	return crypto.Keccak256Hash(a.RuntimeBytecode)
}
