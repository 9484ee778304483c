package ens

import (
	"context"
	"fmt"
	"math/big"
	"time"

	ensContracts "ens-api/contracts/ens"
	"ens-api/rpc"
	"ens-api/types"
	"ens-api/utils"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	geth_types "github.com/ethereum/go-ethereum/core/types"
)

// Registry is the name ownership and resolver pointer boundary
type Registry interface {
	Owner(ctx context.Context, node [32]byte) (common.Address, error)
	Resolver(ctx context.Context, node [32]byte) (common.Address, error)
	SetOwner(ctx context.Context, node [32]byte, owner common.Address) (common.Hash, error)
}

// Controller is the commit-reveal registration boundary
type Controller interface {
	RentPrice(ctx context.Context, name string, duration *big.Int) (*big.Int, error)
	Available(ctx context.Context, name string) (bool, error)
	MakeCommitmentWithConfig(ctx context.Context, name string, owner common.Address, secret [32]byte, resolver, addr common.Address) ([32]byte, error)
	Commit(ctx context.Context, commitment [32]byte) (common.Hash, error)
	RegisterWithConfig(ctx context.Context, name string, owner common.Address, duration *big.Int, secret [32]byte, resolver, addr common.Address, value *big.Int) (common.Hash, error)
}

// TokenRegistrar is the ERC721 token boundary of the .eth registrar
type TokenRegistrar interface {
	OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error)
	NameExpires(ctx context.Context, tokenID *big.Int) (*big.Int, error)
	SafeTransferFrom(ctx context.Context, from, to common.Address, tokenID *big.Int) (common.Hash, error)
}

// Resolver is the address record boundary of a single resolver contract
type Resolver interface {
	Addr(ctx context.Context, node [32]byte) (common.Address, error)
	SetAddr(ctx context.Context, node [32]byte, addr common.Address) (common.Hash, error)
}

// ResolverAt binds the resolver deployed at address
type ResolverAt func(address common.Address) Resolver

// Contracts groups every contract boundary the service talks to
type Contracts struct {
	Registry   Registry
	Controller Controller
	Registrar  TokenRegistrar
	ResolverAt ResolverAt
}

// NewChainContracts binds the configured contract addresses on the chain client
func NewChainContracts(client *rpc.Client, cfg *types.EnsConfig) (*Contracts, error) {
	for name, address := range map[string]string{
		"registry":      cfg.Registry,
		"controller":    cfg.Controller,
		"baseRegistrar": cfg.BaseRegistrar,
	} {
		if !utils.IsValidEth1Address(address) {
			return nil, fmt.Errorf("invalid %v address %q", name, address)
		}
	}

	backend := client.Backend()
	return &Contracts{
		Registry: &chainRegistry{
			client:  client,
			binding: ensContracts.NewENSRegistry(common.HexToAddress(cfg.Registry), backend),
		},
		Controller: &chainController{
			client:  client,
			binding: ensContracts.NewENSRegistrarController(common.HexToAddress(cfg.Controller), backend),
		},
		Registrar: &chainRegistrar{
			client:  client,
			binding: ensContracts.NewENSBaseRegistrar(common.HexToAddress(cfg.BaseRegistrar), backend),
		},
		ResolverAt: func(address common.Address) Resolver {
			return &chainResolver{
				client:  client,
				binding: ensContracts.NewENSPublicResolver(address, backend),
			}
		},
	}, nil
}

type chainRegistry struct {
	client  *rpc.Client
	binding *ensContracts.ENSRegistry
}

func (r *chainRegistry) Owner(ctx context.Context, node [32]byte) (common.Address, error) {
	var owner common.Address
	err := r.client.Call(ctx, "registry.owner", func(opts *bind.CallOpts) (err error) {
		owner, err = r.binding.Owner(opts, node)
		return err
	})
	return owner, err
}

func (r *chainRegistry) Resolver(ctx context.Context, node [32]byte) (common.Address, error) {
	var resolver common.Address
	err := r.client.Call(ctx, "registry.resolver", func(opts *bind.CallOpts) (err error) {
		resolver, err = r.binding.Resolver(opts, node)
		return err
	})
	return resolver, err
}

func (r *chainRegistry) SetOwner(ctx context.Context, node [32]byte, owner common.Address) (common.Hash, error) {
	return r.client.Transact(ctx, "registry.setOwner", nil, func(opts *bind.TransactOpts) (*geth_types.Transaction, error) {
		return r.binding.SetOwner(opts, node, owner)
	})
}

type chainController struct {
	client  *rpc.Client
	binding *ensContracts.ENSRegistrarController
}

func (c *chainController) RentPrice(ctx context.Context, name string, duration *big.Int) (*big.Int, error) {
	var price *big.Int
	err := c.client.Call(ctx, "controller.rentPrice", func(opts *bind.CallOpts) (err error) {
		price, err = c.binding.RentPrice(opts, name, duration)
		return err
	})
	return price, err
}

func (c *chainController) Available(ctx context.Context, name string) (bool, error) {
	var available bool
	err := c.client.Call(ctx, "controller.available", func(opts *bind.CallOpts) (err error) {
		available, err = c.binding.Available(opts, name)
		return err
	})
	return available, err
}

func (c *chainController) MakeCommitmentWithConfig(ctx context.Context, name string, owner common.Address, secret [32]byte, resolver, addr common.Address) ([32]byte, error) {
	var commitment [32]byte
	err := c.client.Call(ctx, "controller.makeCommitmentWithConfig", func(opts *bind.CallOpts) (err error) {
		commitment, err = c.binding.MakeCommitmentWithConfig(opts, name, owner, secret, resolver, addr)
		return err
	})
	return commitment, err
}

func (c *chainController) Commit(ctx context.Context, commitment [32]byte) (common.Hash, error) {
	return c.client.Transact(ctx, "controller.commit", nil, func(opts *bind.TransactOpts) (*geth_types.Transaction, error) {
		return c.binding.Commit(opts, commitment)
	})
}

func (c *chainController) RegisterWithConfig(ctx context.Context, name string, owner common.Address, duration *big.Int, secret [32]byte, resolver, addr common.Address, value *big.Int) (common.Hash, error) {
	hash, err := c.client.Transact(ctx, "controller.registerWithConfig", value, func(opts *bind.TransactOpts) (*geth_types.Transaction, error) {
		return c.binding.RegisterWithConfig(opts, name, owner, duration, secret, resolver, addr)
	})
	if err != nil || !c.client.WaitsForReceipt() {
		return hash, err
	}

	receipt, err := c.client.Receipt(ctx, hash)
	if err != nil {
		logger.WithError(err).WithField("tx", hash.Hex()).Warn("error retrieving registration receipt")
		return hash, nil
	}
	if event := nameRegistered(c.binding, receipt.Logs); event != nil {
		logger.WithFields(logrus.Fields{
			"name":    event.Name,
			"owner":   event.Owner.Hex(),
			"cost":    utils.FormatWeiAsEth(event.Cost),
			"expires": time.Unix(event.Expires.Int64(), 0).UTC(),
			"tx":      hash.Hex(),
		}).Info("name registered")
	}
	return hash, nil
}

// nameRegistered returns the first NameRegistered event the controller emitted in logs
func nameRegistered(binding *ensContracts.ENSRegistrarController, logs []*geth_types.Log) *ensContracts.ENSRegistrarControllerNameRegistered {
	eventID := ensContracts.ENSRegistrarControllerParsedABI.Events["NameRegistered"].ID
	for _, log := range logs {
		if log == nil || log.Address != binding.Address() || len(log.Topics) == 0 || log.Topics[0] != eventID {
			continue
		}
		event, err := binding.ParseNameRegistered(*log)
		if err != nil {
			logger.WithError(err).WithField("tx", log.TxHash.Hex()).Warn("error decoding NameRegistered event")
			continue
		}
		return event
	}
	return nil
}

type chainRegistrar struct {
	client  *rpc.Client
	binding *ensContracts.ENSBaseRegistrar
}

func (r *chainRegistrar) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	var owner common.Address
	err := r.client.Call(ctx, "baseRegistrar.ownerOf", func(opts *bind.CallOpts) (err error) {
		owner, err = r.binding.OwnerOf(opts, tokenID)
		return err
	})
	return owner, err
}

func (r *chainRegistrar) NameExpires(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	var expires *big.Int
	err := r.client.Call(ctx, "baseRegistrar.nameExpires", func(opts *bind.CallOpts) (err error) {
		expires, err = r.binding.NameExpires(opts, tokenID)
		return err
	})
	return expires, err
}

func (r *chainRegistrar) SafeTransferFrom(ctx context.Context, from, to common.Address, tokenID *big.Int) (common.Hash, error) {
	return r.client.Transact(ctx, "baseRegistrar.safeTransferFrom", nil, func(opts *bind.TransactOpts) (*geth_types.Transaction, error) {
		return r.binding.SafeTransferFrom(opts, from, to, tokenID)
	})
}

type chainResolver struct {
	client  *rpc.Client
	binding *ensContracts.ENSPublicResolver
}

func (r *chainResolver) Addr(ctx context.Context, node [32]byte) (common.Address, error) {
	var addr common.Address
	err := r.client.Call(ctx, "resolver.addr", func(opts *bind.CallOpts) (err error) {
		addr, err = r.binding.Addr(opts, node)
		return err
	})
	return addr, err
}

func (r *chainResolver) SetAddr(ctx context.Context, node [32]byte, addr common.Address) (common.Hash, error) {
	return r.client.Transact(ctx, "resolver.setAddr", nil, func(opts *bind.TransactOpts) (*geth_types.Transaction, error) {
		return r.binding.SetAddr(opts, node, addr)
	})
}
