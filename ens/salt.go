package ens

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Salt is the secret that blinds a commitment
type Salt [32]byte

var (
	defaultRandReader io.Reader = rand.Reader
	randReader                  = defaultRandReader
)

// NewSalt draws 32 bytes from the system CSPRNG
func NewSalt() (Salt, error) {
	var s Salt
	if _, err := io.ReadFull(randReader, s[:]); err != nil {
		return Salt{}, fmt.Errorf("error reading salt entropy: %w", err)
	}
	return s, nil
}

// Hex returns 0x followed by 64 lowercase hex digits
func (s Salt) Hex() string {
	return "0x" + hex.EncodeToString(s[:])
}

// ParseSalt accepts the format produced by Hex
func ParseSalt(text string) (Salt, error) {
	var s Salt
	if len(text) != 66 || !strings.HasPrefix(text, "0x") {
		return s, fmt.Errorf("salt must be 0x followed by 64 hex digits")
	}
	b, err := hex.DecodeString(text[2:])
	if err != nil {
		return s, fmt.Errorf("salt is not valid hex: %w", err)
	}
	copy(s[:], b)
	return s, nil
}
