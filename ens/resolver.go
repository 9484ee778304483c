package ens

import (
	"context"
	"fmt"

	"ens-api/utils"

	"github.com/ethereum/go-ethereum/common"
	go_ens "github.com/wealdtech/go-ens/v3"
)

const DefaultResolverName = "resolver.eth"

// ResolverLocator finds the resolver new registrations point to. It asks the
// registry on every call unless a fixed address is configured.
type ResolverLocator struct {
	registry Registry
	name     string
	node     [32]byte
	fixed    common.Address
}

func NewResolverLocator(registry Registry, name, fixedAddress string) (*ResolverLocator, error) {
	if name == "" {
		name = DefaultResolverName
	}
	node, err := go_ens.NameHash(name)
	if err != nil {
		return nil, fmt.Errorf("error hashing resolver name %v: %w", name, err)
	}
	l := &ResolverLocator{registry: registry, name: name, node: node}
	if fixedAddress != "" {
		if !utils.IsValidEth1Address(fixedAddress) {
			return nil, fmt.Errorf("invalid resolver address %q", fixedAddress)
		}
		l.fixed = common.HexToAddress(fixedAddress)
	}
	return l, nil
}

// Locate returns the default resolver address
func (l *ResolverLocator) Locate(ctx context.Context) (common.Address, error) {
	if !utils.IsZeroAddress(l.fixed) {
		return l.fixed, nil
	}
	resolver, err := l.registry.Resolver(ctx, l.node)
	if err != nil {
		return common.Address{}, fmt.Errorf("error retrieving resolver of %v: %w", l.name, err)
	}
	if utils.IsZeroAddress(resolver) {
		return common.Address{}, fmt.Errorf("%w: %v has no resolver", ErrResolverNotConfigured, l.name)
	}
	return resolver, nil
}
