package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EnsDomain is a second level name below the .eth suffix
type EnsDomain struct {
	Label     string
	Name      string
	NameHash  [32]byte
	LabelHash [32]byte
	Owner     common.Address
	Resolver  common.Address
}

// EnsCommitment is the blinded intent to register Name for Address. Only the salt is handed back to the caller.
type EnsCommitment struct {
	Name       string
	Owner      common.Address
	Address    common.Address
	Resolver   common.Address
	Salt       [32]byte
	Commitment [32]byte
	Tx         common.Hash
}

// EnsRegistration is a submitted registerWithConfig transaction
type EnsRegistration struct {
	Name     string
	Owner    common.Address
	Address  common.Address
	Resolver common.Address
	Duration *big.Int
	Price    *big.Int
	Salt     [32]byte
	Tx       common.Hash
}

// SubgraphDomain is a domain entity as reported by the ens subgraph
type SubgraphDomain struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	LabelName  string `json:"labelName"`
	Labelhash  string `json:"labelhash"`
	ExpiryDate string `json:"expiryDate"`
}

type SubgraphDomains struct {
	Domains []SubgraphDomain `json:"domains"`
}
