package utils

import (
	"encoding/hex"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"ens-api/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsNameHash(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"foo", "de9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"},
		{"alice", "787192fc5378cc32aa956ddfdedbf26b24e8d78e40109add0eea2c1a012c3dec"},
	}
	for _, tt := range tests {
		got, err := EnsNameHash(tt.label)
		require.NoError(t, err)
		if hex.EncodeToString(got[:]) != tt.want {
			t.Errorf("wrong namehash for %v: got %x want %v", tt.label, got, tt.want)
		}
	}
}

func TestEnsLabelHash(t *testing.T) {
	got, err := EnsLabelHash("eth")
	require.NoError(t, err)
	assert.Equal(t, "4f5b812789fc606be1b3b16908db13fc7a9adf7ca72641f84d75b47069d3d7f0", hex.EncodeToString(got[:]))

	tokenID, err := EnsTokenID("eth")
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).SetBytes(got[:]), tokenID)
}

func TestNormalizeEnsLabel(t *testing.T) {
	tests := []struct {
		in      string
		out     string
		wantErr bool
	}{
		{"alice", "alice", false},
		{"alice.eth", "alice", false},
		{"Alice", "alice", false},
		{" alice.eth ", "alice", false},
		{"Alice.ETH", "alice", false},
		{"ALICE.Eth", "alice", false},
		{"ab.ETH", "", true},
		{"sub.Alice.ETH", "", true},
		{"ab", "", true},
		{"", "", true},
		{".eth", "", true},
		{"sub.alice.eth", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeEnsLabel(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidEnsLabel, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.out, got)
	}
}

func TestIsValidEnsDomain(t *testing.T) {
	assert.True(t, IsValidEnsDomain("alice.eth"))
	assert.False(t, IsValidEnsDomain("alice"))
	assert.False(t, IsValidEnsDomain(".eth"))
}

func TestIsValidEth1Address(t *testing.T) {
	tests := []struct {
		address string
		valid   bool
	}{
		{"0x1111111111111111111111111111111111111111", true},
		{"0xAbCdEf0123456789abcdef0123456789ABCDEF01", true},
		{"1111111111111111111111111111111111111111", false},
		{"0x111111111111111111111111111111111111111", false},
		{"0xZZZZ", false},
		{"", false},
	}
	for _, tt := range tests {
		if v := IsValidEth1Address(tt.address); v != tt.valid {
			t.Errorf("wrong address validation for %v", tt.address)
		}
	}
}

func TestFormatWeiAsEth(t *testing.T) {
	wei, _ := new(big.Int).SetString("1100000000000000000", 10)
	assert.Equal(t, "1.1 ETH", FormatWeiAsEth(wei))
	assert.Equal(t, "0.000000000000000007 ETH", FormatWeiAsEth(big.NewInt(7)))
	assert.Equal(t, "0 ETH", FormatWeiAsEth(nil))
}

func TestReadConfigDefaults(t *testing.T) {
	cfg := &types.Config{}
	require.NoError(t, ReadConfig(cfg, ""))

	assert.Equal(t, "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e", cfg.Ens.Registry)
	assert.Equal(t, "resolver.eth", cfg.Ens.ResolverName)
	assert.Equal(t, uint64(2419200), cfg.Ens.MinDuration)
	assert.Equal(t, "8000", cfg.Api.Port)
}

func TestReadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
chain:
  endpoint: http://node:8545
ens:
  availabilitySource: controller
api:
  port: "9000"
  httpWriteTimeout: 2m
`), 0o600))

	t.Setenv("API_PORT", "9100")
	t.Setenv("CHAIN_PRIVATE_KEY", "0x01")

	cfg := &types.Config{}
	require.NoError(t, ReadConfig(cfg, path))

	assert.Equal(t, "http://node:8545", cfg.Chain.Endpoint)
	assert.Equal(t, "controller", cfg.Ens.AvailabilitySource)
	assert.Equal(t, "9100", cfg.Api.Port)
	assert.Equal(t, "0x01", cfg.Chain.PrivateKey)
	assert.Equal(t, "2m0s", cfg.Api.HttpWriteTimeout.String())
}
