package ens

import (
	"context"
	"fmt"
	"math/big"

	"ens-api/types"
	"ens-api/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Orchestrator drives the two step commit-reveal registration. Names are
// always registered to the orchestrating identity, the caller supplied
// address only becomes the resolver's address record.
type Orchestrator struct {
	identity         common.Address
	controller       Controller
	checker          *Checker
	locator          *ResolverLocator
	pricer           *Pricer
	verifyCommitment bool
	minDuration      uint64
}

func NewOrchestrator(identity common.Address, controller Controller, checker *Checker, locator *ResolverLocator, pricer *Pricer, cfg *types.EnsConfig) *Orchestrator {
	return &Orchestrator{
		identity:         identity,
		controller:       controller,
		checker:          checker,
		locator:          locator,
		pricer:           pricer,
		verifyCommitment: cfg.VerifyCommitment,
		minDuration:      cfg.MinDuration,
	}
}

// Commit sends a blinded commitment for name pointing at target and hands back the salt needed to register it
func (o *Orchestrator) Commit(ctx context.Context, name, target string) (*CommitResult, error) {
	label, err := utils.NormalizeEnsLabel(name)
	if err != nil {
		return rejectedCommit(validationError("%v", err)), nil
	}
	if !utils.IsValidEth1Address(target) {
		return rejectedCommit(validationError("invalid address %q", target)), nil
	}
	targetAddress := common.HexToAddress(target)

	available, err := o.checker.CheckAvailability(ctx, label)
	if err != nil {
		return nil, err
	}
	if !available {
		return &CommitResult{Available: false}, nil
	}

	resolver, err := o.locator.Locate(ctx)
	if err != nil {
		return nil, err
	}

	salt, err := NewSalt()
	if err != nil {
		return nil, err
	}

	commitment, err := o.controller.MakeCommitmentWithConfig(ctx, label, o.identity, salt, resolver, targetAddress)
	if err != nil {
		return nil, fmt.Errorf("error making commitment for %v: %w", label, err)
	}
	if o.verifyCommitment {
		if local := CommitmentHash(label, o.identity, salt, resolver, targetAddress); local != commitment {
			return nil, fmt.Errorf("%w: %v remote %x local %x", ErrCommitmentMismatch, label, commitment, local)
		}
	}

	tx, err := o.controller.Commit(ctx, commitment)
	if err != nil {
		return nil, fmt.Errorf("error sending commitment for %v: %w", label, err)
	}

	logger.WithFields(logrus.Fields{"label": label, "address": targetAddress.Hex(), "tx": tx.Hex()}).Info("commitment sent")

	return &CommitResult{
		Available: true,
		Salt:      salt.Hex(),
		Tx:        tx.Hex(),
		Commitment: &types.EnsCommitment{
			Name:       utils.EnsFullName(label),
			Owner:      o.identity,
			Address:    targetAddress,
			Resolver:   resolver,
			Salt:       salt,
			Commitment: commitment,
			Tx:         tx,
		},
	}, nil
}

// Register reveals a previous commitment. Price and resolver are fetched
// again, nothing is carried over from Commit except the salt.
func (o *Orchestrator) Register(ctx context.Context, name string, duration uint64, salt, target string) (*TxResult, error) {
	label, err := utils.NormalizeEnsLabel(name)
	if err != nil {
		return rejectedTx(validationError("%v", err)), nil
	}
	if duration == 0 {
		return rejectedTx(validationError("duration must be positive")), nil
	}
	if duration < o.minDuration {
		return rejectedTx(validationError("duration %d is shorter than the minimum of %d seconds", duration, o.minDuration)), nil
	}
	secret, err := ParseSalt(salt)
	if err != nil {
		return rejectedTx(validationError("%v", err)), nil
	}
	if !utils.IsValidEth1Address(target) {
		return rejectedTx(validationError("invalid address %q", target)), nil
	}
	targetAddress := common.HexToAddress(target)
	durationBig := new(big.Int).SetUint64(duration)

	var price *big.Int
	var resolver common.Address
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		price, err = o.pricer.Price(gCtx, label, durationBig)
		return err
	})
	g.Go(func() error {
		var err error
		resolver, err = o.locator.Locate(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tx, err := o.controller.RegisterWithConfig(ctx, label, o.identity, durationBig, secret, resolver, targetAddress, price)
	if err != nil {
		return nil, fmt.Errorf("error registering %v: %w", label, err)
	}

	logger.WithFields(logrus.Fields{"label": label, "address": targetAddress.Hex(), "duration": duration, "value": utils.FormatWeiAsEth(price), "tx": tx.Hex()}).Info("registration sent")

	return &TxResult{
		Tx: tx.Hex(),
		Registration: &types.EnsRegistration{
			Name:     utils.EnsFullName(label),
			Owner:    o.identity,
			Address:  targetAddress,
			Resolver: resolver,
			Duration: durationBig,
			Price:    price,
			Salt:     secret,
			Tx:       tx,
		},
	}, nil
}
