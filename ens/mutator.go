package ens

import (
	"context"
	"fmt"
	"time"

	"ens-api/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

// Mutator changes records of names held by the orchestrating identity
type Mutator struct {
	identity   common.Address
	registry   Registry
	registrar  TokenRegistrar
	resolverAt ResolverAt
	checker    *Checker
}

func NewMutator(identity common.Address, contracts *Contracts, checker *Checker) *Mutator {
	return &Mutator{
		identity:   identity,
		registry:   contracts.Registry,
		registrar:  contracts.Registrar,
		resolverAt: contracts.ResolverAt,
		checker:    checker,
	}
}

// SetAddress points the address record of name at newAddress on the name's own resolver
func (m *Mutator) SetAddress(ctx context.Context, name, newAddress string) (*TxResult, error) {
	label, err := utils.NormalizeEnsLabel(name)
	if err != nil {
		return rejectedTx(validationError("%v", err)), nil
	}
	if !utils.IsValidEth1Address(newAddress) {
		return rejectedTx(validationError("invalid address %q", newAddress)), nil
	}
	target := common.HexToAddress(newAddress)

	domain, err := m.checker.Domain(ctx, label)
	if err != nil {
		return nil, err
	}
	if utils.IsZeroAddress(domain.Owner) {
		return rejectedTx(domainStateError("%v is not registered", domain.Name)), nil
	}
	if utils.IsZeroAddress(domain.Resolver) {
		return rejectedTx(domainStateError("%v has no resolver", domain.Name)), nil
	}
	resolver := m.resolverAt(domain.Resolver)
	node := domain.NameHash

	current, err := resolver.Addr(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("error retrieving address record of %v: %w", label, err)
	}
	if current == target {
		return rejectedTx(domainStateError("%v already resolves to %v", domain.Name, target.Hex())), nil
	}

	if domain.Owner != m.identity {
		return rejectedTx(ownershipError("%v is not owned by %v", domain.Name, m.identity.Hex())), nil
	}

	tx, err := resolver.SetAddr(ctx, node, target)
	if err != nil {
		return nil, fmt.Errorf("error setting address of %v: %w", label, err)
	}

	logger.WithFields(logrus.Fields{"label": label, "address": target.Hex(), "resolver": domain.Resolver.Hex(), "tx": tx.Hex()}).Info("address record set")
	return &TxResult{Tx: tx.Hex()}, nil
}

// TransferEns transfers the registrar token, and with it the right to reclaim the name, to newOwner
func (m *Mutator) TransferEns(ctx context.Context, name, newOwner string) (*TxResult, error) {
	label, err := utils.NormalizeEnsLabel(name)
	if err != nil {
		return rejectedTx(validationError("%v", err)), nil
	}
	if !utils.IsValidEth1Address(newOwner) {
		return rejectedTx(validationError("invalid address %q", newOwner)), nil
	}
	to := common.HexToAddress(newOwner)
	if utils.IsZeroAddress(to) {
		return rejectedTx(validationError("cannot transfer to the zero address")), nil
	}
	tokenID, err := utils.EnsTokenID(label)
	if err != nil {
		return rejectedTx(validationError("%v", err)), nil
	}

	// ownerOf reverts for expired tokens
	expires, err := m.checker.Expires(ctx, label)
	if err != nil {
		return nil, err
	}
	if expires <= uint64(time.Now().Unix()) {
		return rejectedTx(domainStateError("%v is not registered or has expired", utils.EnsFullName(label))), nil
	}

	holder, err := m.checker.TokenHolder(ctx, label)
	if err != nil {
		return nil, err
	}
	if holder != m.identity {
		return rejectedTx(ownershipError("%v token is not held by %v", utils.EnsFullName(label), m.identity.Hex())), nil
	}
	if to == holder {
		return rejectedTx(domainStateError("%v token is already held by %v", utils.EnsFullName(label), to.Hex())), nil
	}

	tx, err := m.registrar.SafeTransferFrom(ctx, m.identity, to, tokenID)
	if err != nil {
		return nil, fmt.Errorf("error transferring token of %v: %w", label, err)
	}

	logger.WithFields(logrus.Fields{"label": label, "to": to.Hex(), "tx": tx.Hex()}).Info("registrar token transferred")
	return &TxResult{Tx: tx.Hex()}, nil
}

// TransferRegister hands the registry ownership of name to newOwner
func (m *Mutator) TransferRegister(ctx context.Context, name, newOwner string) (*TxResult, error) {
	label, err := utils.NormalizeEnsLabel(name)
	if err != nil {
		return rejectedTx(validationError("%v", err)), nil
	}
	if !utils.IsValidEth1Address(newOwner) {
		return rejectedTx(validationError("invalid address %q", newOwner)), nil
	}
	to := common.HexToAddress(newOwner)
	node, err := utils.EnsNameHash(label)
	if err != nil {
		return rejectedTx(validationError("%v", err)), nil
	}

	owner, err := m.checker.RegistryOwner(ctx, label)
	if err != nil {
		return nil, err
	}
	if utils.IsZeroAddress(owner) {
		return rejectedTx(domainStateError("%v is not registered", utils.EnsFullName(label))), nil
	}
	if owner != m.identity {
		return rejectedTx(ownershipError("%v is not owned by %v", utils.EnsFullName(label), m.identity.Hex())), nil
	}
	if to == owner {
		return rejectedTx(domainStateError("%v is already owned by %v", utils.EnsFullName(label), to.Hex())), nil
	}

	tx, err := m.registry.SetOwner(ctx, node, to)
	if err != nil {
		return nil, fmt.Errorf("error transferring registry ownership of %v: %w", label, err)
	}

	logger.WithFields(logrus.Fields{"label": label, "to": to.Hex(), "tx": tx.Hex()}).Info("registry ownership transferred")
	return &TxResult{Tx: tx.Hex()}, nil
}
