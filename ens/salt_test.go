package ens

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var saltRE = regexp.MustCompile("^0x[0-9a-f]{64}$")

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy source exhausted")
}

func TestNewSalt(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		salt, err := NewSalt()
		require.NoError(t, err)
		assert.Regexp(t, saltRE, salt.Hex())
		assert.False(t, seen[salt.Hex()], "salt %v generated twice", salt.Hex())
		seen[salt.Hex()] = true
	}
}

func TestNewSaltEntropyFailure(t *testing.T) {
	randReader = failingReader{}
	defer func() { randReader = defaultRandReader }()

	_, err := NewSalt()
	assert.Error(t, err)
}

func TestParseSalt(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		want    Salt
		wantErr bool
	}{
		{name: "generated", input: salt.Hex(), want: salt},
		{name: "zero", input: "0x0000000000000000000000000000000000000000000000000000000000000000", want: Salt{}},
		{name: "missing prefix", input: salt.Hex()[2:], wantErr: true},
		{name: "too short", input: "0x1234", wantErr: true},
		{name: "not hex", input: "0xzz" + salt.Hex()[4:], wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSalt(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
