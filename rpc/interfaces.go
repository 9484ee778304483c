package rpc

import (
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Backend is the subset of an execution client needed to read contract state, send transactions and wait for receipts
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

var (
	// ErrTxReverted is returned when a mined transaction has a failed receipt
	ErrTxReverted = errors.New("transaction reverted")
	// ErrCircuitOpen is returned while the endpoint breaker rejects calls
	ErrCircuitOpen = errors.New("circuit breaker open for chain endpoint")
)

var logger = logrus.New().WithField("module", "rpc")
