package utils

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

var eth1AddressRE = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

// IsValidEth1Address checks for a 0x prefixed, 20 byte hex account address
func IsValidEth1Address(s string) bool {
	return eth1AddressRE.MatchString(s)
}

func IsZeroAddress(add common.Address) bool {
	return add == common.Address{}
}
