package utils

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// FormatWeiAsEth renders a wei amount as an exact ether decimal string
func FormatWeiAsEth(wei *big.Int) string {
	if wei == nil {
		return "0 ETH"
	}
	return decimal.NewFromBigInt(wei, -18).String() + " ETH"
}
