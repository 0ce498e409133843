package utils

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHexStringToAddress verifies parsing with and without the "0x" prefix, and rejection of malformed input.
func TestHexStringToAddress(t *testing.T) {
	expected := common.HexToAddress("0x00000000000000000000000000000000000000ff")

	address, err := HexStringToAddress("0x00000000000000000000000000000000000000ff")
	require.NoError(t, err)
	assert.Equal(t, expected, address)

	address, err = HexStringToAddress("00000000000000000000000000000000000000ff")
	require.NoError(t, err)
	assert.Equal(t, expected, address)

	_, err = HexStringToAddress("0xnothex")
	assert.Error(t, err)
}

// TestHexStringsToAddresses verifies batch conversion fails as a whole when any entry is malformed.
func TestHexStringsToAddresses(t *testing.T) {
	addresses, err := HexStringsToAddresses([]string{
		"0x0000000000000000000000000000000000000001",
		"0x0000000000000000000000000000000000000002",
	})
	require.NoError(t, err)
	assert.Len(t, addresses, 2)

	_, err = HexStringsToAddresses([]string{
		"0x0000000000000000000000000000000000000001",
		"bad",
	})
	assert.Error(t, err)
}
