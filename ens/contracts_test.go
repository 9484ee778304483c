package ens

import (
	"math/big"
	"testing"

	ensContracts "ens-api/contracts/ens"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geth_types "github.com/ethereum/go-ethereum/core/types"
)

func TestNameRegistered(t *testing.T) {
	controllerAddress := common.HexToAddress("0x283Af0B28c62C092C9727F1Ee09c02CA627EB7F5")
	binding := ensContracts.NewENSRegistrarController(controllerAddress, nil)
	event := ensContracts.ENSRegistrarControllerParsedABI.Events["NameRegistered"]
	owner := common.HexToAddress("0x00000000000000000000000000000000000a11ce")

	data, err := event.Inputs.NonIndexed().Pack("alice", big.NewInt(1100), big.NewInt(1735689600))
	require.NoError(t, err)
	registered := &geth_types.Log{
		Address: controllerAddress,
		Topics:  []common.Hash{event.ID, crypto.Keccak256Hash([]byte("alice")), common.BytesToHash(owner.Bytes())},
		Data:    data,
	}

	foreign := *registered
	foreign.Address = common.HexToAddress("0x9999999999999999999999999999999999999999")
	transfer := &geth_types.Log{
		Address: controllerAddress,
		Topics:  []common.Hash{crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))},
	}

	tests := []struct {
		name string
		logs []*geth_types.Log
		want bool
	}{
		{"registration", []*geth_types.Log{transfer, registered}, true},
		{"other contract", []*geth_types.Log{&foreign}, false},
		{"no event", []*geth_types.Log{transfer, nil}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nameRegistered(binding, tt.logs)
			if !tt.want {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, "alice", got.Name)
			assert.Equal(t, owner, got.Owner)
			assert.Equal(t, int64(1100), got.Cost.Int64())
			assert.Equal(t, int64(1735689600), got.Expires.Int64())
		})
	}
}
