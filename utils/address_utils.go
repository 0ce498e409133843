package utils

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// HexStringToAddress converts a hex string (with or without the "0x" prefix) to a common.Address. Returns the address
// or an error if one occurs during conversion.
func HexStringToAddress(addressHexString string) (common.Address, error) {
	// Remove the 0x prefix and decode the hex string into an address object.
	trimmedString := strings.TrimPrefix(addressHexString, "0x")
	if !common.IsHexAddress(trimmedString) {
		return common.Address{}, fmt.Errorf("invalid address provided: %v", addressHexString)
	}
	return common.HexToAddress(trimmedString), nil
}

// HexStringsToAddresses converts hex strings (with or without the "0x" prefix) to common.Address objects. Returns the
// addresses or an error if one occurs during conversion.
func HexStringsToAddresses(addressHexStrings []string) ([]common.Address, error) {
	addresses := make([]common.Address, 0, len(addressHexStrings))
	for _, addressHexString := range addressHexStrings {
		address, err := HexStringToAddress(addressHexString)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, nil
}
