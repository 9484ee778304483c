package ens

import "ens-api/types"

// CommitResult is the outcome of a commitment request. Salt and Tx are only
// set when the name was available and the commitment was sent.
type CommitResult struct {
	Available  bool
	Salt       string
	Tx         string
	Commitment *types.EnsCommitment
	Error      *ResultError
}

// TxResult is the outcome of a state changing request
type TxResult struct {
	Tx           string
	Registration *types.EnsRegistration
	Error        *ResultError
}

func rejectedCommit(err *ResultError) *CommitResult {
	return &CommitResult{Error: err}
}

func rejectedTx(err *ResultError) *TxResult {
	return &TxResult{Error: err}
}
