package rpc

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"sync"
	"time"

	"ens-api/metrics"
	"ens-api/types"
	"ens-api/workerpool"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	geth_types "github.com/ethereum/go-ethereum/core/types"
)

const (
	defaultBreakerRatio   = 0.6
	defaultBreakerMinReqs = 10
	defaultTxQueueSize    = 64
)

// Client is the single chain transport of the service. Reads go through Call,
// state changing calls go through Transact which signs with the configured key
// and hands out nonces strictly in submission order.
type Client struct {
	backend        Backend
	chainID        *big.Int
	key            *ecdsa.PrivateKey
	address        common.Address
	waitForReceipt bool

	limiter   ratelimit.Limiter
	breaker   *gobreaker.CircuitBreaker
	sequencer *workerpool.WorkerPool

	// only touched from the sequencer goroutine
	nonce    uint64
	hasNonce bool

	closeOnce sync.Once
}

// NewClient dials the configured endpoint and loads the signing key
func NewClient(cfg *types.ChainConfig) (*Client, error) {
	logger.Infof("initializing chain client at %v", cfg.Endpoint)

	key, err := ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	ethClient, err := ethclient.Dial(cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "error dialing rpc node")
	}

	chainID := new(big.Int).SetUint64(cfg.ChainID)
	if cfg.ChainID == 0 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		chainID, err = ethClient.ChainID(ctx)
		if err != nil {
			ethClient.Close()
			return nil, errors.Wrap(err, "error retrieving chain id")
		}
	}

	return NewClientWithBackend(ethClient, key, chainID, cfg), nil
}

// NewClientWithBackend builds a client on top of an already connected backend
func NewClientWithBackend(backend Backend, key *ecdsa.PrivateKey, chainID *big.Int, cfg *types.ChainConfig) *Client {
	limiter := ratelimit.NewUnlimited()
	if cfg.RateLimit > 0 {
		limiter = ratelimit.New(cfg.RateLimit)
	}

	queueSize := cfg.TxQueueSize
	if queueSize <= 0 {
		queueSize = defaultTxQueueSize
	}
	sequencer := workerpool.New(1, queueSize)
	sequencer.Run()

	client := &Client{
		backend:        backend,
		chainID:        chainID,
		key:            key,
		address:        crypto.PubkeyToAddress(key.PublicKey),
		waitForReceipt: cfg.WaitForReceipt,
		limiter:        limiter,
		breaker:        newBreaker(cfg.BreakerRatio, cfg.BreakerMinReqs),
		sequencer:      sequencer,
	}

	logger.WithFields(logrus.Fields{"address": client.address.Hex(), "chainId": chainID}).Info("chain client ready")
	return client
}

func newBreaker(ratio float64, minReqs uint32) *gobreaker.CircuitBreaker {
	if ratio <= 0 {
		ratio = defaultBreakerRatio
	}
	if minReqs == 0 {
		minReqs = defaultBreakerMinReqs
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "chain",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minReqs && failureRatio >= ratio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state changed")
		},
	})
}

// ParsePrivateKey parses a hex encoded secp256k1 key with or without 0x prefix
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, errors.New("no private key configured")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing private key")
	}
	return key, nil
}

// Address is the identity that signs every transaction sent by this client
func (client *Client) Address() common.Address {
	return client.address
}

// Backend returns the underlying backend for binding contracts
func (client *Client) Backend() Backend {
	return client.backend
}

// WaitsForReceipt reports whether Transact returns only after the transaction was mined
func (client *Client) WaitsForReceipt() bool {
	return client.waitForReceipt
}

// Call runs a read only contract call
func (client *Client) Call(ctx context.Context, method string, fn func(opts *bind.CallOpts) error) error {
	client.limiter.Take()

	start := time.Now()
	err := client.guard(func() error {
		return fn(&bind.CallOpts{Context: ctx, From: client.address})
	})
	metrics.ObserveRemoteCall("call", method, start, err)
	if err != nil {
		return errors.Wrapf(err, "error calling %v", method)
	}
	return nil
}

// Transact signs and sends a transaction built by fn. Transactions are
// submitted one at a time so that nonces are assigned in call order. With
// waitForReceipt enabled it blocks until the transaction is mined and returns
// ErrTxReverted for a failed receipt.
func (client *Client) Transact(ctx context.Context, method string, value *big.Int, fn func(opts *bind.TransactOpts) (*geth_types.Transaction, error)) (common.Hash, error) {
	var tx *geth_types.Transaction

	metrics.TxQueueLength.Set(float64(client.sequencer.TotalQueuedTask() + 1))
	err := client.sequencer.Submit(ctx, func(ctx context.Context) error {
		metrics.TxQueueLength.Set(float64(client.sequencer.TotalQueuedTask()))

		opts, err := bind.NewKeyedTransactorWithChainID(client.key, client.chainID)
		if err != nil {
			return errors.Wrap(err, "error creating transactor")
		}

		nonce, err := client.nextNonce(ctx)
		if err != nil {
			return err
		}
		opts.Context = ctx
		opts.Nonce = new(big.Int).SetUint64(nonce)
		opts.Value = value

		client.limiter.Take()
		start := time.Now()
		err = client.guard(func() error {
			var err error
			tx, err = fn(opts)
			return err
		})
		metrics.ObserveRemoteCall("transact", method, start, err)
		if err != nil {
			// the pending nonce is unknown after a failed submission
			client.hasNonce = false
			return err
		}
		client.nonce = nonce + 1
		return nil
	})
	if err != nil {
		return common.Hash{}, errors.Wrapf(err, "error sending %v", method)
	}

	logger.WithFields(logrus.Fields{"method": method, "tx": tx.Hash().Hex(), "nonce": tx.Nonce()}).Info("transaction sent")

	if !client.waitForReceipt {
		return tx.Hash(), nil
	}

	receipt, err := bind.WaitMined(ctx, client.backend, tx)
	if err != nil {
		return tx.Hash(), errors.Wrapf(err, "error waiting for %v receipt", tx.Hash().Hex())
	}
	if receipt.Status != geth_types.ReceiptStatusSuccessful {
		return tx.Hash(), errors.Wrapf(ErrTxReverted, "%v in block %v", tx.Hash().Hex(), receipt.BlockNumber)
	}
	return tx.Hash(), nil
}

// Receipt returns the receipt of a mined transaction
func (client *Client) Receipt(ctx context.Context, hash common.Hash) (*geth_types.Receipt, error) {
	client.limiter.Take()

	var receipt *geth_types.Receipt
	start := time.Now()
	err := client.guard(func() error {
		var err error
		receipt, err = client.backend.TransactionReceipt(ctx, hash)
		return err
	})
	metrics.ObserveRemoteCall("call", "receipt", start, err)
	if err != nil {
		return nil, errors.Wrapf(err, "error retrieving receipt of %v", hash.Hex())
	}
	return receipt, nil
}

func (client *Client) nextNonce(ctx context.Context) (uint64, error) {
	if client.hasNonce {
		return client.nonce, nil
	}
	nonce, err := client.backend.PendingNonceAt(ctx, client.address)
	if err != nil {
		return 0, errors.Wrap(err, "error retrieving pending nonce")
	}
	client.nonce = nonce
	client.hasNonce = true
	return nonce, nil
}

// guard runs fn through the circuit breaker. Contract reverts are answers
// from a healthy node and do not count as failures.
func (client *Client) guard(fn func() error) error {
	var callErr error
	_, err := client.breaker.Execute(func() (interface{}, error) {
		callErr = fn()
		if callErr != nil && !IsRevert(callErr) {
			return nil, callErr
		}
		return nil, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	if err != nil {
		return err
	}
	return callErr
}

// Close stops the transaction sequencer and disconnects from the node
func (client *Client) Close() {
	client.closeOnce.Do(func() {
		client.sequencer.Quit()
		if closer, ok := client.backend.(interface{ Close() }); ok {
			closer.Close()
		}
	})
}

// IsRevert reports whether err is an execution revert returned by the node
func IsRevert(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "revert")
}
