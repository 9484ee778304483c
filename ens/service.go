package ens

import (
	"context"
	"errors"

	"ens-api/metrics"
	"ens-api/types"
	"ens-api/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

var logger = logrus.New().WithField("module", "ens")

// Service is the caller facing surface of the orchestration core
type Service struct {
	identity     common.Address
	checker      *Checker
	orchestrator *Orchestrator
	mutator      *Mutator
}

// NewService wires the core components on top of the given contract boundaries
func NewService(identity common.Address, contracts *Contracts, cfg *types.EnsConfig) (*Service, error) {
	checker, err := NewChecker(identity, contracts, cfg.AvailabilitySource)
	if err != nil {
		return nil, err
	}
	locator, err := NewResolverLocator(contracts.Registry, cfg.ResolverName, cfg.ResolverAddress)
	if err != nil {
		return nil, err
	}

	return &Service{
		identity:     identity,
		checker:      checker,
		orchestrator: NewOrchestrator(identity, contracts.Controller, checker, locator, NewPricer(contracts.Controller), cfg),
		mutator:      NewMutator(identity, contracts, checker),
	}, nil
}

// Identity is the account that owns every name registered through the service
func (s *Service) Identity() common.Address {
	return s.identity
}

func (s *Service) Checker() *Checker {
	return s.checker
}

// CheckAvailability reports whether name can be registered. A malformed name is never available.
func (s *Service) CheckAvailability(ctx context.Context, name string) (bool, error) {
	label, err := utils.NormalizeEnsLabel(name)
	if err != nil {
		observe("checkAvailability", logrus.Fields{"name": name}, validationError("%v", err), nil)
		return false, nil
	}
	available, err := s.checker.CheckAvailability(ctx, label)
	observe("checkAvailability", logrus.Fields{"label": label}, nil, err)
	return available, err
}

func (s *Service) MakeCommitment(ctx context.Context, name, address string) (*CommitResult, error) {
	res, err := s.orchestrator.Commit(ctx, name, address)
	observe("makeCommitment", logrus.Fields{"name": name, "address": address}, commitRejection(res), err)
	return res, err
}

func (s *Service) Register(ctx context.Context, name string, duration uint64, salt, address string) (*TxResult, error) {
	res, err := s.orchestrator.Register(ctx, name, duration, salt, address)
	observe("register", logrus.Fields{"name": name, "address": address, "duration": duration}, txRejection(res), err)
	return res, err
}

func (s *Service) SetAddress(ctx context.Context, name, newAddress string) (*TxResult, error) {
	res, err := s.mutator.SetAddress(ctx, name, newAddress)
	observe("setAddress", logrus.Fields{"name": name, "address": newAddress}, txRejection(res), err)
	return res, err
}

func (s *Service) TransferEns(ctx context.Context, name, newOwner string) (*TxResult, error) {
	res, err := s.mutator.TransferEns(ctx, name, newOwner)
	observe("transferEns", logrus.Fields{"name": name, "to": newOwner}, txRejection(res), err)
	return res, err
}

func (s *Service) TransferRegister(ctx context.Context, name, newOwner string) (*TxResult, error) {
	res, err := s.mutator.TransferRegister(ctx, name, newOwner)
	observe("transferRegister", logrus.Fields{"name": name, "to": newOwner}, txRejection(res), err)
	return res, err
}

func commitRejection(res *CommitResult) *ResultError {
	if res == nil {
		return nil
	}
	return res.Error
}

func txRejection(res *TxResult) *ResultError {
	if res == nil {
		return nil
	}
	return res.Error
}

func observe(operation string, fields logrus.Fields, rejection *ResultError, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
		fields["operation"] = operation
		if errors.Is(err, ErrResolverNotConfigured) || errors.Is(err, ErrCommitmentMismatch) {
			utils.LogError(err, "ens configuration error", 1, fields)
		} else {
			utils.LogError(err, "ens operation failed", 1, fields)
		}
	case rejection != nil:
		outcome = string(rejection.Kind)
		logger.WithFields(fields).WithField("operation", operation).Infof("request rejected: %v", rejection.Message)
	}
	metrics.EnsOperationsTotal.WithLabelValues(operation, outcome).Inc()
}
