package ens

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ensBaseRegistrarABI is the ERC721 subset of the .eth base registrar. Only the three argument safeTransferFrom overload is bound.
const ensBaseRegistrarABI = `[
{"constant":true,"inputs":[{"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"internalType":"address","name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"internalType":"uint256","name":"id","type":"uint256"}],"name":"nameExpires","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
{"constant":false,"inputs":[{"internalType":"address","name":"from","type":"address"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"safeTransferFrom","outputs":[],"payable":false,"stateMutability":"nonpayable","type":"function"}
]`

// ENSBaseRegistrar is a Go binding around the .eth BaseRegistrarImplementation contract.
type ENSBaseRegistrar struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewENSBaseRegistrar creates a new instance of ENSBaseRegistrar, bound to a specific deployed contract.
func NewENSBaseRegistrar(address common.Address, backend bind.ContractBackend) *ENSBaseRegistrar {
	return &ENSBaseRegistrar{address: address, contract: bindContract(address, ENSBaseRegistrarParsedABI, backend)}
}

func (_ENSBaseRegistrar *ENSBaseRegistrar) Address() common.Address {
	return _ENSBaseRegistrar.address
}

// OwnerOf is a free data retrieval call binding the contract method 0x6352211e.
//
// Solidity: function ownerOf(uint256 tokenId) view returns(address)
func (_ENSBaseRegistrar *ENSBaseRegistrar) OwnerOf(opts *bind.CallOpts, tokenId *big.Int) (common.Address, error) {
	var out []interface{}
	err := _ENSBaseRegistrar.contract.Call(opts, &out, "ownerOf", tokenId)
	if err != nil {
		return *new(common.Address), err
	}
	out0 := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return out0, err
}

// NameExpires is a free data retrieval call binding the contract method 0xd6e4fa86.
//
// Solidity: function nameExpires(uint256 id) view returns(uint256)
func (_ENSBaseRegistrar *ENSBaseRegistrar) NameExpires(opts *bind.CallOpts, id *big.Int) (*big.Int, error) {
	var out []interface{}
	err := _ENSBaseRegistrar.contract.Call(opts, &out, "nameExpires", id)
	if err != nil {
		return *new(*big.Int), err
	}
	out0 := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	return out0, err
}

// SafeTransferFrom is a paid mutator transaction binding the contract method 0x42842e0e.
//
// Solidity: function safeTransferFrom(address from, address to, uint256 tokenId) returns()
func (_ENSBaseRegistrar *ENSBaseRegistrar) SafeTransferFrom(opts *bind.TransactOpts, from common.Address, to common.Address, tokenId *big.Int) (*types.Transaction, error) {
	return _ENSBaseRegistrar.contract.Transact(opts, "safeTransferFrom", from, to, tokenId)
}
