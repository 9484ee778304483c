package ens

import (
	"context"
	"fmt"
	"math/big"
)

var (
	hedgeNumerator   = big.NewInt(11)
	hedgeDenominator = big.NewInt(10)
)

// HedgedPrice returns floor(base * 11 / 10). The controller refunds whatever is sent above the rent.
func HedgedPrice(base *big.Int) *big.Int {
	price := new(big.Int).Mul(base, hedgeNumerator)
	return price.Quo(price, hedgeDenominator)
}

// Pricer quotes the value sent along with a registration
type Pricer struct {
	controller Controller
}

func NewPricer(controller Controller) *Pricer {
	return &Pricer{controller: controller}
}

// Price returns the hedged rent price for label over duration seconds
func (p *Pricer) Price(ctx context.Context, label string, duration *big.Int) (*big.Int, error) {
	base, err := p.controller.RentPrice(ctx, label, duration)
	if err != nil {
		return nil, fmt.Errorf("error retrieving rent price for %v: %w", label, err)
	}
	return HedgedPrice(base), nil
}
