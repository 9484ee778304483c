package ens

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodSelectors(t *testing.T) {
	tests := []struct {
		contract string
		method   string
		selector string
	}{
		{"registry", "owner", "02571be3"},
		{"registry", "resolver", "0178b8bf"},
		{"registry", "setOwner", "5b0fc9c3"},
		{"controller", "rentPrice", "83e7f6ff"},
		{"controller", "available", "aeb8ce9b"},
		{"controller", "makeCommitmentWithConfig", "3d86c52f"},
		{"controller", "commit", "f14fcbc8"},
		{"controller", "registerWithConfig", "f7a16963"},
		{"baseRegistrar", "ownerOf", "6352211e"},
		{"baseRegistrar", "nameExpires", "d6e4fa86"},
		{"baseRegistrar", "safeTransferFrom", "42842e0e"},
		{"resolver", "addr", "3b3b57de"},
		{"resolver", "setAddr", "d5fa2b00"},
	}

	for _, tt := range tests {
		var id []byte
		switch tt.contract {
		case "registry":
			id = ENSRegistryParsedABI.Methods[tt.method].ID
		case "controller":
			id = ENSRegistrarControllerParsedABI.Methods[tt.method].ID
		case "baseRegistrar":
			id = ENSBaseRegistrarParsedABI.Methods[tt.method].ID
		case "resolver":
			id = ENSPublicResolverParsedABI.Methods[tt.method].ID
		}
		if hex.EncodeToString(id) != tt.selector {
			t.Errorf("wrong selector for %v.%v: got %x want %v", tt.contract, tt.method, id, tt.selector)
		}
	}
}

func TestParseNameRegistered(t *testing.T) {
	controller := NewENSRegistrarController(common.HexToAddress("0x283Af0B28c62C092C9727F1Ee09c02CA627EB7F5"), nil)

	event := ENSRegistrarControllerParsedABI.Events["NameRegistered"]
	label := crypto.Keccak256Hash([]byte("alice"))
	owner := common.HexToAddress("0x00000000000000000000000000000000000a11ce")

	data, err := event.Inputs.NonIndexed().Pack("alice", big.NewInt(1100), big.NewInt(1735689600))
	require.NoError(t, err)

	got, err := controller.ParseNameRegistered(types.Log{
		Topics: []common.Hash{event.ID, label, common.BytesToHash(owner.Bytes())},
		Data:   data,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, [32]byte(label), got.Label)
	assert.Equal(t, owner, got.Owner)
	assert.Equal(t, int64(1100), got.Cost.Int64())
	assert.Equal(t, int64(1735689600), got.Expires.Int64())
}
