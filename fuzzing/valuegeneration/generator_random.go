package valuegeneration

import (
	"math/big"
	"math/rand"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// RandomValueGenerator generates values randomly, biased toward small magnitudes for lengths and strings so that
// synthesized transactions stay executable.
type RandomValueGenerator struct {
	// randomProvider offers a source of random data.
	randomProvider *rand.Rand

	// randomProviderLock is a lock to offer thread safety to the random number generator.
	randomProviderLock sync.Mutex

	// maxArrayLength bounds generated array lengths.
	maxArrayLength int

	// maxBytesLength bounds generated dynamic byte array lengths.
	maxBytesLength int

	// maxStringLength bounds generated string lengths.
	maxStringLength int
}

// NewRandomValueGenerator creates a RandomValueGenerator seeded from the given source.
func NewRandomValueGenerator(randomProvider *rand.Rand) *RandomValueGenerator {
	return &RandomValueGenerator{
		randomProvider:  randomProvider,
		maxArrayLength:  8,
		maxBytesLength:  64,
		maxStringLength: 64,
	}
}

// GenerateAddress generates a random address to use when populating inputs.
func (g *RandomValueGenerator) GenerateAddress() common.Address {
	addressBytes := make([]byte, common.AddressLength)
	g.randomProviderLock.Lock()
	g.randomProvider.Read(addressBytes)
	g.randomProviderLock.Unlock()
	return common.BytesToAddress(addressBytes)
}

// GenerateArrayOfLength generates a random array length to use when populating inputs.
func (g *RandomValueGenerator) GenerateArrayOfLength() int {
	g.randomProviderLock.Lock()
	defer g.randomProviderLock.Unlock()
	return g.randomProvider.Intn(g.maxArrayLength + 1)
}

// GenerateBool generates a random bool to use when populating inputs.
func (g *RandomValueGenerator) GenerateBool() bool {
	g.randomProviderLock.Lock()
	defer g.randomProviderLock.Unlock()
	return g.randomProvider.Intn(2) == 1
}

// GenerateBytes generates a random dynamic-sized byte array to use when populating inputs.
func (g *RandomValueGenerator) GenerateBytes() []byte {
	g.randomProviderLock.Lock()
	b := make([]byte, g.randomProvider.Intn(g.maxBytesLength+1))
	g.randomProvider.Read(b)
	g.randomProviderLock.Unlock()
	return b
}

// GenerateFixedBytes generates a random fixed-sized byte array to use when populating inputs.
func (g *RandomValueGenerator) GenerateFixedBytes(length int) []byte {
	b := make([]byte, length)
	g.randomProviderLock.Lock()
	g.randomProvider.Read(b)
	g.randomProviderLock.Unlock()
	return b
}

// GenerateString generates a random dynamic-sized string to use when populating inputs.
func (g *RandomValueGenerator) GenerateString() string {
	g.randomProviderLock.Lock()
	defer g.randomProviderLock.Unlock()
	b := make([]byte, g.randomProvider.Intn(g.maxStringLength+1))
	for i := range b {
		b[i] = byte(0x20 + g.randomProvider.Intn(0x5f)) // printable ASCII
	}
	return string(b)
}

// GenerateInteger generates a random integer of the given signedness and bit length to use when populating inputs.
func (g *RandomValueGenerator) GenerateInteger(signed bool, bitLength int) *big.Int {
	b := make([]byte, bitLength/8)
	g.randomProviderLock.Lock()
	g.randomProvider.Read(b)
	g.randomProviderLock.Unlock()

	value := new(big.Int).SetBytes(b)
	if signed {
		// Shift the unsigned sample down into the two's complement range of the bit length.
		half := new(big.Int).Lsh(big.NewInt(1), uint(bitLength-1))
		value.Sub(value, half)
	}
	return value
}
