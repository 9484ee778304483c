package ens

import (
	"ens-api/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// CommitmentHash derives the commitment the registrar controller computes in makeCommitmentWithConfig
func CommitmentHash(label string, owner common.Address, secret [32]byte, resolver, addr common.Address) [32]byte {
	labelHash := crypto.Keccak256([]byte(label))

	var hash [32]byte
	if utils.IsZeroAddress(resolver) && utils.IsZeroAddress(addr) {
		copy(hash[:], crypto.Keccak256(labelHash, owner.Bytes(), secret[:]))
		return hash
	}
	copy(hash[:], crypto.Keccak256(labelHash, owner.Bytes(), resolver.Bytes(), addr.Bytes(), secret[:]))
	return hash
}
