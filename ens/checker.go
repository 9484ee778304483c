package ens

import (
	"context"
	"fmt"

	"ens-api/types"
	"ens-api/utils"

	"github.com/ethereum/go-ethereum/common"
)

const (
	AvailabilitySourceRegistry   = "registry"
	AvailabilitySourceController = "controller"
)

// AvailabilityChecker answers whether a label can be registered
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, label string) (bool, error)
}

type registryAvailability struct {
	registry Registry
}

// IsAvailable treats a name without registry owner as available
func (a *registryAvailability) IsAvailable(ctx context.Context, label string) (bool, error) {
	node, err := utils.EnsNameHash(label)
	if err != nil {
		return false, err
	}
	owner, err := a.registry.Owner(ctx, node)
	if err != nil {
		return false, fmt.Errorf("error retrieving registry owner of %v: %w", label, err)
	}
	return utils.IsZeroAddress(owner), nil
}

type controllerAvailability struct {
	controller Controller
}

func (a *controllerAvailability) IsAvailable(ctx context.Context, label string) (bool, error) {
	available, err := a.controller.Available(ctx, label)
	if err != nil {
		return false, fmt.Errorf("error checking controller availability of %v: %w", label, err)
	}
	return available, nil
}

// Checker answers availability and ownership questions on behalf of the orchestrating identity
type Checker struct {
	identity  common.Address
	registry  Registry
	registrar TokenRegistrar

	byRegistry   AvailabilityChecker
	byController AvailabilityChecker
	mode         AvailabilityChecker
}

func NewChecker(identity common.Address, contracts *Contracts, source string) (*Checker, error) {
	c := &Checker{
		identity:     identity,
		registry:     contracts.Registry,
		registrar:    contracts.Registrar,
		byRegistry:   &registryAvailability{registry: contracts.Registry},
		byController: &controllerAvailability{controller: contracts.Controller},
	}
	switch source {
	case "", AvailabilitySourceRegistry:
		c.mode = c.byRegistry
	case AvailabilitySourceController:
		c.mode = c.byController
	default:
		return nil, fmt.Errorf("unknown availability source %q", source)
	}
	return c, nil
}

// CheckAvailability asks the configured availability source
func (c *Checker) CheckAvailability(ctx context.Context, label string) (bool, error) {
	return c.mode.IsAvailable(ctx, label)
}

// IsAvailable asks the registry
func (c *Checker) IsAvailable(ctx context.Context, label string) (bool, error) {
	return c.byRegistry.IsAvailable(ctx, label)
}

// IsAvailableOnController asks the registrar controller
func (c *Checker) IsAvailableOnController(ctx context.Context, label string) (bool, error) {
	return c.byController.IsAvailable(ctx, label)
}

// RegistryOwner returns the registry owner of label.eth, the zero address if unregistered
func (c *Checker) RegistryOwner(ctx context.Context, label string) (common.Address, error) {
	node, err := utils.EnsNameHash(label)
	if err != nil {
		return common.Address{}, err
	}
	owner, err := c.registry.Owner(ctx, node)
	if err != nil {
		return common.Address{}, fmt.Errorf("error retrieving registry owner of %v: %w", label, err)
	}
	return owner, nil
}

// Domain reads the registry view of label.eth
func (c *Checker) Domain(ctx context.Context, label string) (*types.EnsDomain, error) {
	node, err := utils.EnsNameHash(label)
	if err != nil {
		return nil, err
	}
	labelHash, err := utils.EnsLabelHash(label)
	if err != nil {
		return nil, err
	}
	owner, err := c.registry.Owner(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("error retrieving registry owner of %v: %w", label, err)
	}
	domain := &types.EnsDomain{
		Label:     label,
		Name:      utils.EnsFullName(label),
		NameHash:  node,
		LabelHash: labelHash,
		Owner:     owner,
	}
	if utils.IsZeroAddress(owner) {
		return domain, nil
	}
	domain.Resolver, err = c.registry.Resolver(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("error retrieving resolver of %v: %w", label, err)
	}
	return domain, nil
}

// IsOwnedByUs reports whether the registry owner of label.eth is the orchestrating identity
func (c *Checker) IsOwnedByUs(ctx context.Context, label string) (bool, error) {
	owner, err := c.RegistryOwner(ctx, label)
	if err != nil {
		return false, err
	}
	return owner == c.identity, nil
}

// TokenHolder returns the holder of the registrar token of label
func (c *Checker) TokenHolder(ctx context.Context, label string) (common.Address, error) {
	tokenID, err := utils.EnsTokenID(label)
	if err != nil {
		return common.Address{}, err
	}
	holder, err := c.registrar.OwnerOf(ctx, tokenID)
	if err != nil {
		return common.Address{}, fmt.Errorf("error retrieving token holder of %v: %w", label, err)
	}
	return holder, nil
}

// IsTokenHeldByUs reports whether the orchestrating identity holds the registrar token of label
func (c *Checker) IsTokenHeldByUs(ctx context.Context, label string) (bool, error) {
	holder, err := c.TokenHolder(ctx, label)
	if err != nil {
		return false, err
	}
	return holder == c.identity, nil
}

// Expires returns the registrar expiry of label as unix seconds, zero if it was never registered
func (c *Checker) Expires(ctx context.Context, label string) (uint64, error) {
	tokenID, err := utils.EnsTokenID(label)
	if err != nil {
		return 0, err
	}
	expires, err := c.registrar.NameExpires(ctx, tokenID)
	if err != nil {
		return 0, fmt.Errorf("error retrieving expiry of %v: %w", label, err)
	}
	return expires.Uint64(), nil
}
