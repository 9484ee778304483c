package ens

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHedgedPrice(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	hugeWant, _ := new(big.Int).SetString("135802467913580246791358024679", 10)

	tests := []struct {
		name string
		base *big.Int
		want *big.Int
	}{
		{name: "round", base: big.NewInt(1_000_000), want: big.NewInt(1_100_000)},
		{name: "floor", base: big.NewInt(7), want: big.NewInt(7)},
		{name: "zero", base: big.NewInt(0), want: big.NewInt(0)},
		{name: "beyond uint64", base: huge, want: hugeWant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := new(big.Int).Set(tt.base)
			got := HedgedPrice(base)
			assert.Equal(t, 0, tt.want.Cmp(got), "got %v want %v", got, tt.want)
			assert.Equal(t, 0, tt.base.Cmp(base), "base must not be modified")
		})
	}
}
