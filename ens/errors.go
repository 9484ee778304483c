package ens

import (
	"errors"
	"fmt"
)

var (
	// ErrResolverNotConfigured is returned when the reserved resolver name has no resolver set in the registry
	ErrResolverNotConfigured = errors.New("default resolver is not configured")
	// ErrCommitmentMismatch is returned when the controller derives a different commitment than we do
	ErrCommitmentMismatch = errors.New("controller commitment does not match local derivation")
)

type ResultErrorKind string

const (
	KindValidation  ResultErrorKind = "validation"
	KindDomainState ResultErrorKind = "domain-state"
	KindOwnership   ResultErrorKind = "ownership"
)

// ResultError is an expected rejection of a request. It is returned inside
// the operation result, never as the error value.
type ResultError struct {
	Kind    ResultErrorKind `json:"kind"`
	Message string          `json:"message"`
}

func (e *ResultError) Error() string {
	return e.Message
}

func validationError(format string, args ...interface{}) *ResultError {
	return &ResultError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func domainStateError(format string, args ...interface{}) *ResultError {
	return &ResultError{Kind: KindDomainState, Message: fmt.Sprintf(format, args...)}
}

func ownershipError(format string, args ...interface{}) *ResultError {
	return &ResultError{Kind: KindOwnership, Message: fmt.Sprintf(format, args...)}
}
