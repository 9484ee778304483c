package ens

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ensPublicResolverABI only carries the ETH (coin type 60) overloads of addr and setAddr.
const ensPublicResolverABI = `[
{"constant":true,"inputs":[{"internalType":"bytes32","name":"node","type":"bytes32"}],"name":"addr","outputs":[{"internalType":"address payable","name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"},
{"constant":false,"inputs":[{"internalType":"bytes32","name":"node","type":"bytes32"},{"internalType":"address","name":"a","type":"address"}],"name":"setAddr","outputs":[],"payable":false,"stateMutability":"nonpayable","type":"function"}
]`

// ENSPublicResolver is a Go binding around a PublicResolver contract.
type ENSPublicResolver struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewENSPublicResolver creates a new instance of ENSPublicResolver, bound to a specific deployed contract.
func NewENSPublicResolver(address common.Address, backend bind.ContractBackend) *ENSPublicResolver {
	return &ENSPublicResolver{address: address, contract: bindContract(address, ENSPublicResolverParsedABI, backend)}
}

func (_ENSPublicResolver *ENSPublicResolver) Address() common.Address {
	return _ENSPublicResolver.address
}

// Addr is a free data retrieval call binding the contract method 0x3b3b57de.
//
// Solidity: function addr(bytes32 node) view returns(address)
func (_ENSPublicResolver *ENSPublicResolver) Addr(opts *bind.CallOpts, node [32]byte) (common.Address, error) {
	var out []interface{}
	err := _ENSPublicResolver.contract.Call(opts, &out, "addr", node)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, err
}

// SetAddr is a paid mutator transaction binding the contract method 0xd5fa2b00.
//
// Solidity: function setAddr(bytes32 node, address a) returns()
func (_ENSPublicResolver *ENSPublicResolver) SetAddr(opts *bind.TransactOpts, node [32]byte, a common.Address) (*types.Transaction, error) {
	return _ENSPublicResolver.contract.Transact(opts, "setAddr", node, a)
}
