package utils

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	go_ens "github.com/wealdtech/go-ens/v3"
)

// EnsSuffix is the only top level domain the registrar controller issues names for
const EnsSuffix = ".eth"

// EnsMinLabelLength mirrors the controller's valid(name) check
const EnsMinLabelLength = 3

var ErrInvalidEnsLabel = errors.New("invalid ens label")

func IsValidEnsDomain(text string) bool {
	return strings.HasSuffix(text, EnsSuffix) && len(text) > len(EnsSuffix)
}

// NormalizeEnsLabel turns "Alice", "alice", "alice.eth" or "Alice.ETH" into the label "alice".
func NormalizeEnsLabel(name string) (string, error) {
	normalized, err := go_ens.NormaliseDomain(strings.TrimSpace(name))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEnsLabel, err)
	}
	normalized = strings.TrimSuffix(normalized, EnsSuffix)
	if normalized == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidEnsLabel)
	}
	if strings.Contains(normalized, ".") {
		return "", fmt.Errorf("%w: %v is not a second level name", ErrInvalidEnsLabel, name)
	}
	if utf8.RuneCountInString(normalized) < EnsMinLabelLength {
		return "", fmt.Errorf("%w: %v is shorter than %d characters", ErrInvalidEnsLabel, name, EnsMinLabelLength)
	}
	return normalized, nil
}

// EnsFullName appends the .eth suffix to a label
func EnsFullName(label string) string {
	return label + EnsSuffix
}

// EnsNameHash returns the namehash of <label>.eth
func EnsNameHash(label string) ([32]byte, error) {
	return go_ens.NameHash(EnsFullName(label))
}

// EnsLabelHash returns keccak256(label)
func EnsLabelHash(label string) ([32]byte, error) {
	return go_ens.LabelHash(label)
}

// EnsTokenID is the base registrar's ERC721 token id for a label, its labelhash as uint256
func EnsTokenID(label string) (*big.Int, error) {
	labelHash, err := EnsLabelHash(label)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(labelHash[:]), nil
}
