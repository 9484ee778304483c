// Package enstest provides an in-memory ENS deployment for tests
package enstest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"ens-api/ens"
	"ens-api/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	go_ens "github.com/wealdtech/go-ens/v3"
)

var (
	DefaultResolver = common.HexToAddress("0x4976fb03C32e5B8cfe2b6cCB31c09Ba78EBaBa41")
	ErrReverted     = errors.New("execution reverted")
)

// Chain emulates the registry, the registrar controller, the base registrar
// and any number of resolvers. Writes are authorised against Sender.
type Chain struct {
	mu sync.Mutex

	Sender common.Address
	// BasePrice is the rent per second of registration
	BasePrice *big.Int
	// Fail makes the named method return the given error
	Fail map[string]error

	owners      map[[32]byte]common.Address
	resolvers   map[[32]byte]common.Address
	records     map[common.Address]map[[32]byte]common.Address
	tokens      map[string]common.Address
	expiries    map[string]uint64
	commitments map[[32]byte]bool

	calls  []string
	writes []string
	values []*big.Int
	txs    uint64
}

// NewChain returns a deployment where resolver.eth points at DefaultResolver
func NewChain(sender common.Address) *Chain {
	c := &Chain{
		Sender:      sender,
		BasePrice:   big.NewInt(1000),
		Fail:        map[string]error{},
		owners:      map[[32]byte]common.Address{},
		resolvers:   map[[32]byte]common.Address{},
		records:     map[common.Address]map[[32]byte]common.Address{},
		tokens:      map[string]common.Address{},
		expiries:    map[string]uint64{},
		commitments: map[[32]byte]bool{},
	}
	node, _ := go_ens.NameHash(ens.DefaultResolverName)
	c.resolvers[node] = DefaultResolver
	return c
}

// Contracts exposes the chain through the core's contract boundaries
func (c *Chain) Contracts() *ens.Contracts {
	return &ens.Contracts{
		Registry:   (*registry)(c),
		Controller: (*controller)(c),
		Registrar:  (*registrar)(c),
		ResolverAt: func(address common.Address) ens.Resolver {
			return &resolver{chain: c, address: address}
		},
	}
}

// Seed registers label directly, bypassing commit-reveal
func (c *Chain) Seed(label string, owner common.Address, resolverAddress, addr common.Address, expires uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seed(label, owner, resolverAddress, addr, expires)
}

func (c *Chain) seed(label string, owner common.Address, resolverAddress, addr common.Address, expires uint64) {
	node, _ := utils.EnsNameHash(label)
	tokenID, _ := utils.EnsTokenID(label)
	c.owners[node] = owner
	c.resolvers[node] = resolverAddress
	if c.records[resolverAddress] == nil {
		c.records[resolverAddress] = map[[32]byte]common.Address{}
	}
	c.records[resolverAddress][node] = addr
	c.tokens[tokenID.String()] = owner
	c.expiries[tokenID.String()] = expires
}

// ClearDefaultResolver removes the resolver of resolver.eth
func (c *Chain) ClearDefaultResolver() {
	c.mu.Lock()
	defer c.mu.Unlock()
	node, _ := go_ens.NameHash(ens.DefaultResolverName)
	delete(c.resolvers, node)
}

// Calls returns every method invoked so far, reads and writes
func (c *Chain) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// Writes returns the state changing methods invoked so far
func (c *Chain) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}

// Values returns the value attached to each payable call
func (c *Chain) Values() []*big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*big.Int(nil), c.values...)
}

func (c *Chain) RegistryOwner(label string) common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	node, _ := utils.EnsNameHash(label)
	return c.owners[node]
}

func (c *Chain) TokenHolder(label string) common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	tokenID, _ := utils.EnsTokenID(label)
	return c.tokens[tokenID.String()]
}

func (c *Chain) Record(label string) common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	node, _ := utils.EnsNameHash(label)
	return c.records[c.resolvers[node]][node]
}

func (c *Chain) call(method string) error {
	c.calls = append(c.calls, method)
	return c.Fail[method]
}

func (c *Chain) write(method string) (common.Hash, error) {
	if err := c.call(method); err != nil {
		return common.Hash{}, err
	}
	c.writes = append(c.writes, method)
	c.txs++
	return crypto.Keccak256Hash([]byte(fmt.Sprintf("%v-%d", method, c.txs))), nil
}

func (c *Chain) rent(duration *big.Int) *big.Int {
	return new(big.Int).Mul(c.BasePrice, duration)
}

type registry Chain

func (r *registry) Owner(ctx context.Context, node [32]byte) (common.Address, error) {
	c := (*Chain)(r)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.call("registry.owner"); err != nil {
		return common.Address{}, err
	}
	return c.owners[node], nil
}

func (r *registry) Resolver(ctx context.Context, node [32]byte) (common.Address, error) {
	c := (*Chain)(r)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.call("registry.resolver"); err != nil {
		return common.Address{}, err
	}
	return c.resolvers[node], nil
}

func (r *registry) SetOwner(ctx context.Context, node [32]byte, owner common.Address) (common.Hash, error) {
	c := (*Chain)(r)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owners[node] != c.Sender {
		return common.Hash{}, fmt.Errorf("%w: caller is not the owner", ErrReverted)
	}
	tx, err := c.write("registry.setOwner")
	if err != nil {
		return common.Hash{}, err
	}
	c.owners[node] = owner
	return tx, nil
}

type controller Chain

func (r *controller) RentPrice(ctx context.Context, name string, duration *big.Int) (*big.Int, error) {
	c := (*Chain)(r)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.call("controller.rentPrice"); err != nil {
		return nil, err
	}
	return c.rent(duration), nil
}

func (r *controller) Available(ctx context.Context, name string) (bool, error) {
	c := (*Chain)(r)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.call("controller.available"); err != nil {
		return false, err
	}
	return c.available(name), nil
}

func (c *Chain) available(name string) bool {
	tokenID, _ := utils.EnsTokenID(name)
	return len(name) >= utils.EnsMinLabelLength && c.expiries[tokenID.String()] < uint64(time.Now().Unix())
}

func (r *controller) MakeCommitmentWithConfig(ctx context.Context, name string, owner common.Address, secret [32]byte, resolverAddress, addr common.Address) ([32]byte, error) {
	c := (*Chain)(r)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.call("controller.makeCommitmentWithConfig"); err != nil {
		return [32]byte{}, err
	}
	return ens.CommitmentHash(name, owner, secret, resolverAddress, addr), nil
}

func (r *controller) Commit(ctx context.Context, commitment [32]byte) (common.Hash, error) {
	c := (*Chain)(r)
	c.mu.Lock()
	defer c.mu.Unlock()
	tx, err := c.write("controller.commit")
	if err != nil {
		return common.Hash{}, err
	}
	c.commitments[commitment] = true
	return tx, nil
}

func (r *controller) RegisterWithConfig(ctx context.Context, name string, owner common.Address, duration *big.Int, secret [32]byte, resolverAddress, addr common.Address, value *big.Int) (common.Hash, error) {
	c := (*Chain)(r)
	c.mu.Lock()
	defer c.mu.Unlock()

	commitment := ens.CommitmentHash(name, owner, secret, resolverAddress, addr)
	if !c.commitments[commitment] {
		return common.Hash{}, fmt.Errorf("%w: unknown commitment", ErrReverted)
	}
	if !c.available(name) {
		return common.Hash{}, fmt.Errorf("%w: name unavailable", ErrReverted)
	}
	if value == nil || value.Cmp(c.rent(duration)) < 0 {
		return common.Hash{}, fmt.Errorf("%w: not enough ether provided", ErrReverted)
	}
	tx, err := c.write("controller.registerWithConfig")
	if err != nil {
		return common.Hash{}, err
	}
	c.values = append(c.values, new(big.Int).Set(value))
	delete(c.commitments, commitment)
	c.seed(name, owner, resolverAddress, addr, uint64(time.Now().Unix())+duration.Uint64())
	return tx, nil
}

type registrar Chain

func (r *registrar) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	c := (*Chain)(r)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.call("baseRegistrar.ownerOf"); err != nil {
		return common.Address{}, err
	}
	if c.expiries[tokenID.String()] < uint64(time.Now().Unix()) {
		return common.Address{}, ErrReverted
	}
	return c.tokens[tokenID.String()], nil
}

func (r *registrar) NameExpires(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	c := (*Chain)(r)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.call("baseRegistrar.nameExpires"); err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(c.expiries[tokenID.String()]), nil
}

func (r *registrar) SafeTransferFrom(ctx context.Context, from, to common.Address, tokenID *big.Int) (common.Hash, error) {
	c := (*Chain)(r)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tokens[tokenID.String()] != from || from != c.Sender {
		return common.Hash{}, fmt.Errorf("%w: transfer caller is not owner nor approved", ErrReverted)
	}
	tx, err := c.write("baseRegistrar.safeTransferFrom")
	if err != nil {
		return common.Hash{}, err
	}
	c.tokens[tokenID.String()] = to
	return tx, nil
}

type resolver struct {
	chain   *Chain
	address common.Address
}

func (r *resolver) Addr(ctx context.Context, node [32]byte) (common.Address, error) {
	c := r.chain
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.call("resolver.addr"); err != nil {
		return common.Address{}, err
	}
	return c.records[r.address][node], nil
}

func (r *resolver) SetAddr(ctx context.Context, node [32]byte, addr common.Address) (common.Hash, error) {
	c := r.chain
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owners[node] != c.Sender {
		return common.Hash{}, fmt.Errorf("%w: caller is not the owner", ErrReverted)
	}
	tx, err := c.write("resolver.setAddr")
	if err != nil {
		return common.Hash{}, err
	}
	if c.records[r.address] == nil {
		c.records[r.address] = map[[32]byte]common.Address{}
	}
	c.records[r.address][node] = addr
	return tx, nil
}
