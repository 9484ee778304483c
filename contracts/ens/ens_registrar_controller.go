package ens

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ensRegistrarControllerABI is the commit-reveal subset of the ETHRegistrarController that exposes the *WithConfig methods.
const ensRegistrarControllerABI = `[
{"constant":true,"inputs":[{"internalType":"string","name":"name","type":"string"},{"internalType":"uint256","name":"duration","type":"uint256"}],"name":"rentPrice","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"internalType":"string","name":"name","type":"string"}],"name":"available","outputs":[{"internalType":"bool","name":"","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"internalType":"string","name":"name","type":"string"},{"internalType":"address","name":"owner","type":"address"},{"internalType":"bytes32","name":"secret","type":"bytes32"},{"internalType":"address","name":"resolver","type":"address"},{"internalType":"address","name":"addr","type":"address"}],"name":"makeCommitmentWithConfig","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"payable":false,"stateMutability":"pure","type":"function"},
{"constant":false,"inputs":[{"internalType":"bytes32","name":"commitment","type":"bytes32"}],"name":"commit","outputs":[],"payable":false,"stateMutability":"nonpayable","type":"function"},
{"constant":false,"inputs":[{"internalType":"string","name":"name","type":"string"},{"internalType":"address","name":"owner","type":"address"},{"internalType":"uint256","name":"duration","type":"uint256"},{"internalType":"bytes32","name":"secret","type":"bytes32"},{"internalType":"address","name":"resolver","type":"address"},{"internalType":"address","name":"addr","type":"address"}],"name":"registerWithConfig","outputs":[],"payable":true,"stateMutability":"payable","type":"function"},
{"anonymous":false,"inputs":[{"indexed":false,"internalType":"string","name":"name","type":"string"},{"indexed":true,"internalType":"bytes32","name":"label","type":"bytes32"},{"indexed":true,"internalType":"address","name":"owner","type":"address"},{"indexed":false,"internalType":"uint256","name":"cost","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"expires","type":"uint256"}],"name":"NameRegistered","type":"event"}
]`

// ENSRegistrarController is a Go binding around the ETHRegistrarController contract.
type ENSRegistrarController struct {
	address  common.Address
	contract *bind.BoundContract
}

// ENSRegistrarControllerNameRegistered represents a NameRegistered event raised by the ETHRegistrarController contract.
type ENSRegistrarControllerNameRegistered struct {
	Name    string
	Label   [32]byte
	Owner   common.Address
	Cost    *big.Int
	Expires *big.Int
	Raw     types.Log // Blockchain specific contextual infos
}

// NewENSRegistrarController creates a new instance of ENSRegistrarController, bound to a specific deployed contract.
func NewENSRegistrarController(address common.Address, backend bind.ContractBackend) *ENSRegistrarController {
	return &ENSRegistrarController{address: address, contract: bindContract(address, ENSRegistrarControllerParsedABI, backend)}
}

func (_ENSRegistrarController *ENSRegistrarController) Address() common.Address {
	return _ENSRegistrarController.address
}

// RentPrice is a free data retrieval call binding the contract method 0x83e7f6ff.
//
// Solidity: function rentPrice(string name, uint256 duration) view returns(uint256)
func (_ENSRegistrarController *ENSRegistrarController) RentPrice(opts *bind.CallOpts, name string, duration *big.Int) (*big.Int, error) {
	var out []interface{}
	err := _ENSRegistrarController.contract.Call(opts, &out, "rentPrice", name, duration)
	if err != nil {
		return *new(*big.Int), err
	}
	out0 := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	return out0, err
}

// Available is a free data retrieval call binding the contract method 0xaeb8ce9b.
//
// Solidity: function available(string name) view returns(bool)
func (_ENSRegistrarController *ENSRegistrarController) Available(opts *bind.CallOpts, name string) (bool, error) {
	var out []interface{}
	err := _ENSRegistrarController.contract.Call(opts, &out, "available", name)
	if err != nil {
		return *new(bool), err
	}
	out0 := *abi.ConvertType(out[0], new(bool)).(*bool)
	return out0, err
}

// MakeCommitmentWithConfig is a free data retrieval call binding the contract method 0x3d86c52f.
//
// Solidity: function makeCommitmentWithConfig(string name, address owner, bytes32 secret, address resolver, address addr) pure returns(bytes32)
func (_ENSRegistrarController *ENSRegistrarController) MakeCommitmentWithConfig(opts *bind.CallOpts, name string, owner common.Address, secret [32]byte, resolver common.Address, addr common.Address) ([32]byte, error) {
	var out []interface{}
	err := _ENSRegistrarController.contract.Call(opts, &out, "makeCommitmentWithConfig", name, owner, secret, resolver, addr)
	if err != nil {
		return *new([32]byte), err
	}
	out0 := *abi.ConvertType(out[0], new([32]byte)).(*[32]byte)
	return out0, err
}

// Commit is a paid mutator transaction binding the contract method 0xf14fcbc8.
//
// Solidity: function commit(bytes32 commitment) returns()
func (_ENSRegistrarController *ENSRegistrarController) Commit(opts *bind.TransactOpts, commitment [32]byte) (*types.Transaction, error) {
	return _ENSRegistrarController.contract.Transact(opts, "commit", commitment)
}

// RegisterWithConfig is a paid mutator transaction binding the contract method 0xf7a16963.
//
// Solidity: function registerWithConfig(string name, address owner, uint256 duration, bytes32 secret, address resolver, address addr) payable returns()
func (_ENSRegistrarController *ENSRegistrarController) RegisterWithConfig(opts *bind.TransactOpts, name string, owner common.Address, duration *big.Int, secret [32]byte, resolver common.Address, addr common.Address) (*types.Transaction, error) {
	return _ENSRegistrarController.contract.Transact(opts, "registerWithConfig", name, owner, duration, secret, resolver, addr)
}

// ParseNameRegistered is a log parse operation binding the contract event 0xca6abbe9.
//
// Solidity: event NameRegistered(string name, bytes32 indexed label, address indexed owner, uint256 cost, uint256 expires)
func (_ENSRegistrarController *ENSRegistrarController) ParseNameRegistered(log types.Log) (*ENSRegistrarControllerNameRegistered, error) {
	event := new(ENSRegistrarControllerNameRegistered)
	if err := _ENSRegistrarController.contract.UnpackLog(event, "NameRegistered", log); err != nil {
		return nil, err
	}
	event.Raw = log
	return event, nil
}
