package valuegeneration

import (
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/cinderfuzz/cinder/fuzzing/calls"
	"github.com/cinderfuzz/cinder/fuzzing/corpus"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const synthesisTestAbiJSON = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[
		{"name":"to","type":"address"},
		{"name":"amount","type":"uint256"},
		{"name":"approved","type":"bool"}
	],"outputs":[]}
]`

func transferMethod(t *testing.T) abi.Method {
	parsed, err := abi.JSON(strings.NewReader(synthesisTestAbiJSON))
	require.NoError(t, err)
	return parsed.Methods["transfer"]
}

// TestGenerateAbiValueTypes verifies generated values carry the Go representations go-ethereum's packer expects.
func TestGenerateAbiValueTypes(t *testing.T) {
	generator := NewRandomValueGenerator(rand.New(rand.NewSource(1)))
	method := transferMethod(t)

	address := GenerateAbiValue(generator, &method.Inputs[0].Type)
	assert.IsType(t, common.Address{}, address)

	amount := GenerateAbiValue(generator, &method.Inputs[1].Type)
	assert.IsType(t, &big.Int{}, amount)

	approved := GenerateAbiValue(generator, &method.Inputs[2].Type)
	assert.IsType(t, false, approved)
}

// TestSynthesizeArgsAndEncode verifies synthesized arguments pack into a well-formed payload: the 4-byte selector
// followed by one 32-byte word per argument.
func TestSynthesizeArgsAndEncode(t *testing.T) {
	generator := NewRandomValueGenerator(rand.New(rand.NewSource(1)))
	method := transferMethod(t)
	seeds := corpus.NewSeedCorpus()

	typedArgs := SynthesizeArgs(method, seeds, generator, 0.5, rand.New(rand.NewSource(2)))
	require.Len(t, typedArgs, 3)

	payload, err := EncodePayload(method, typedArgs)
	require.NoError(t, err)
	assert.Equal(t, method.ID, payload[:4])
	assert.Len(t, payload, 4+3*32)
}

// TestSynthesizeArgsFullSeedBias verifies a bias of 1 always draws from the corpus when a position has seeds.
func TestSynthesizeArgsFullSeedBias(t *testing.T) {
	generator := NewRandomValueGenerator(rand.New(rand.NewSource(1)))
	method := transferMethod(t)
	funcHash := calls.SelectorHex(method.ID)

	seeds := corpus.NewSeedCorpus()
	seeded := big.NewInt(777)
	seeds.Add(funcHash, 1, seeded)

	typedArgs := SynthesizeArgs(method, seeds, generator, 1, rand.New(rand.NewSource(2)))
	assert.Same(t, seeded, typedArgs[1].Value)
}

// TestSynthesizeValue verifies value synthesis draws seeded amounts under full bias and never returns a negative
// amount otherwise.
func TestSynthesizeValue(t *testing.T) {
	generator := NewRandomValueGenerator(rand.New(rand.NewSource(1)))
	seeds := corpus.NewSeedCorpus()
	seeds.Add("aabbccdd", corpus.ValuePosition, big.NewInt(123))

	seededValue := SynthesizeValue("aabbccdd", seeds, generator, 1, rand.New(rand.NewSource(2)))
	assert.Equal(t, int64(123), seededValue.Int64())

	freshValue := SynthesizeValue("aabbccdd", seeds, generator, 0, rand.New(rand.NewSource(2)))
	assert.GreaterOrEqual(t, freshValue.Sign(), 0)
}
