package valuegeneration

import (
	"math/big"
	"math/rand"

	"github.com/cinderfuzz/cinder/fuzzing/calls"
	"github.com/cinderfuzz/cinder/fuzzing/corpus"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// SynthesizeArgs produces a typed argument list for the given method. Each argument is drawn from the seed corpus
// with probability seedBias when seeds for its position exist; otherwise a fresh value is generated.
func SynthesizeArgs(method abi.Method, seeds *corpus.SeedCorpus, generator ValueGenerator, seedBias float64, randomProvider *rand.Rand) []calls.TypedArg {
	funcHash := calls.SelectorHex(method.ID)
	typedArgs := make([]calls.TypedArg, len(method.Inputs))
	for i, input := range method.Inputs {
		var value any
		if seedValues := seeds.Values(funcHash, i); len(seedValues) > 0 && randomProvider.Float64() < seedBias {
			value = seedValues[randomProvider.Intn(len(seedValues))]
		} else {
			value = GenerateAbiValue(generator, &input.Type)
		}
		typedArgs[i] = calls.TypedArg{Type: input.Type, Value: value}
	}
	return typedArgs
}

// EncodePayload packs the typed arguments of a call into its payload: the method's 4-byte selector followed by the
// ABI-encoded arguments.
func EncodePayload(method abi.Method, typedArgs []calls.TypedArg) ([]byte, error) {
	values := make([]any, len(typedArgs))
	for i, typedArg := range typedArgs {
		values[i] = typedArg.Value
	}
	packed, err := method.Inputs.Pack(values...)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, method.ID...), packed...), nil
}

// SynthesizeValue produces a native currency value to attach to a call targeting the given function. Known value
// seeds for the function are consulted with probability seedBias; otherwise a bounded random amount is generated.
func SynthesizeValue(funcHash string, seeds *corpus.SeedCorpus, generator ValueGenerator, seedBias float64, randomProvider *rand.Rand) *big.Int {
	if seedValues := seeds.Values(funcHash, corpus.ValuePosition); len(seedValues) > 0 && randomProvider.Float64() < seedBias {
		if value, ok := seedValues[randomProvider.Intn(len(seedValues))].(*big.Int); ok {
			return new(big.Int).Set(value)
		}
	}
	value := generator.GenerateInteger(false, 64)
	return value.Abs(value)
}
