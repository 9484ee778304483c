package ens

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

var ENSRegistryParsedABI, ENSBaseRegistrarParsedABI, ENSRegistrarControllerParsedABI, ENSPublicResolverParsedABI *abi.ABI

func init() {
	var err error

	ENSRegistryParsedABI, err = parseABI(ensRegistryABI)
	if err != nil {
		panic(fmt.Sprintf("error getting ens-registry-abi: %v", err))
	}
	ENSBaseRegistrarParsedABI, err = parseABI(ensBaseRegistrarABI)
	if err != nil {
		panic(fmt.Sprintf("error getting ens-base-registrar-abi: %v", err))
	}
	ENSRegistrarControllerParsedABI, err = parseABI(ensRegistrarControllerABI)
	if err != nil {
		panic(fmt.Sprintf("error getting ens-registrar-controller-abi: %v", err))
	}
	ENSPublicResolverParsedABI, err = parseABI(ensPublicResolverABI)
	if err != nil {
		panic(fmt.Sprintf("error getting ens-public-resolver-abi: %v", err))
	}
}

func parseABI(data string) (*abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func bindContract(address common.Address, parsed *abi.ABI, backend bind.ContractBackend) *bind.BoundContract {
	return bind.NewBoundContract(address, *parsed, backend, backend, backend)
}
