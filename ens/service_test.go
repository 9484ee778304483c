package ens_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"ens-api/ens"
	"ens-api/ens/enstest"
	"ens-api/metrics"
	"ens-api/types"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	us       = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	alice    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob      = common.HexToAddress("0x2222222222222222222222222222222222222222")
	stranger = common.HexToAddress("0x9999999999999999999999999999999999999999")

	oneYear = uint64(31536000)
)

func defaultConfig() *types.EnsConfig {
	return &types.EnsConfig{
		AvailabilitySource: ens.AvailabilitySourceRegistry,
		VerifyCommitment:   true,
		MinDuration:        2419200,
	}
}

func newService(t *testing.T, cfg *types.EnsConfig) (*ens.Service, *enstest.Chain) {
	t.Helper()
	chain := enstest.NewChain(us)
	svc, err := ens.NewService(us, chain.Contracts(), cfg)
	require.NoError(t, err)
	return svc, chain
}

func future() uint64 {
	return uint64(time.Now().Add(24 * time.Hour).Unix())
}

func TestCommitRegisterEndToEnd(t *testing.T) {
	svc, chain := newService(t, defaultConfig())
	ctx := context.Background()

	available, err := svc.CheckAvailability(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, available)

	commit, err := svc.MakeCommitment(ctx, "alice", alice.Hex())
	require.NoError(t, err)
	require.Nil(t, commit.Error)
	assert.True(t, commit.Available)
	assert.Regexp(t, "^0x[0-9a-f]{64}$", commit.Salt)
	assert.NotEmpty(t, commit.Tx)
	assert.Equal(t, us, commit.Commitment.Owner)
	assert.Equal(t, enstest.DefaultResolver, commit.Commitment.Resolver)

	reg, err := svc.Register(ctx, "alice", oneYear, commit.Salt, alice.Hex())
	require.NoError(t, err)
	require.Nil(t, reg.Error)
	assert.NotEmpty(t, reg.Tx)
	assert.Equal(t, "alice.eth", reg.Registration.Name)

	available, err = svc.CheckAvailability(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, available)

	assert.Equal(t, us, chain.RegistryOwner("alice"))
	assert.Equal(t, us, chain.TokenHolder("alice"))
	assert.Equal(t, alice, chain.Record("alice"))
}

func TestRegisterSendsHedgedPrice(t *testing.T) {
	svc, chain := newService(t, defaultConfig())
	ctx := context.Background()

	commit, err := svc.MakeCommitment(ctx, "carol", alice.Hex())
	require.NoError(t, err)

	reg, err := svc.Register(ctx, "carol", oneYear, commit.Salt, alice.Hex())
	require.NoError(t, err)
	require.Nil(t, reg.Error)

	base := new(big.Int).Mul(chain.BasePrice, new(big.Int).SetUint64(oneYear))
	values := chain.Values()
	require.Len(t, values, 1)
	assert.Equal(t, 0, ens.HedgedPrice(base).Cmp(values[0]))
	assert.Equal(t, 0, values[0].Cmp(reg.Registration.Price))
}

func TestCommitUnavailable(t *testing.T) {
	for _, source := range []string{ens.AvailabilitySourceRegistry, ens.AvailabilitySourceController} {
		t.Run(source, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.AvailabilitySource = source
			svc, chain := newService(t, cfg)
			chain.Seed("taken", stranger, enstest.DefaultResolver, stranger, future())

			res, err := svc.MakeCommitment(context.Background(), "taken", alice.Hex())
			require.NoError(t, err)
			assert.False(t, res.Available)
			assert.Nil(t, res.Error)
			assert.Empty(t, res.Salt)
			assert.Empty(t, res.Tx)
			assert.Empty(t, chain.Writes())
		})
	}
}

func TestAvailabilityPathsAgree(t *testing.T) {
	svc, chain := newService(t, defaultConfig())
	chain.Seed("taken", stranger, enstest.DefaultResolver, stranger, future())
	chain.Seed("ours", us, enstest.DefaultResolver, alice, future())

	for _, label := range []string{"taken", "ours", "free", "another"} {
		byRegistry, err := svc.Checker().IsAvailable(context.Background(), label)
		require.NoError(t, err)
		byController, err := svc.Checker().IsAvailableOnController(context.Background(), label)
		require.NoError(t, err)
		assert.Equal(t, byRegistry, byController, label)
	}
}

func TestOwnershipChecks(t *testing.T) {
	svc, chain := newService(t, defaultConfig())
	chain.Seed("ours", us, enstest.DefaultResolver, alice, future())
	chain.Seed("theirs", stranger, enstest.DefaultResolver, stranger, future())
	ctx := context.Background()

	owned, err := svc.Checker().IsOwnedByUs(ctx, "ours")
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = svc.Checker().IsOwnedByUs(ctx, "theirs")
	require.NoError(t, err)
	assert.False(t, owned)

	held, err := svc.Checker().IsTokenHeldByUs(ctx, "ours")
	require.NoError(t, err)
	assert.True(t, held)

	held, err = svc.Checker().IsTokenHeldByUs(ctx, "theirs")
	require.NoError(t, err)
	assert.False(t, held)
}

func TestValidationRejectsWithoutRemoteCalls(t *testing.T) {
	svc, chain := newService(t, defaultConfig())
	ctx := context.Background()
	salt, err := ens.NewSalt()
	require.NoError(t, err)

	tests := []struct {
		name string
		run  func() (*ens.ResultError, error)
	}{
		{name: "commit bad address", run: func() (*ens.ResultError, error) {
			res, err := svc.MakeCommitment(ctx, "alice", "0xZZZZ")
			return res.Error, err
		}},
		{name: "commit short name", run: func() (*ens.ResultError, error) {
			res, err := svc.MakeCommitment(ctx, "ab", alice.Hex())
			return res.Error, err
		}},
		{name: "register bad salt", run: func() (*ens.ResultError, error) {
			res, err := svc.Register(ctx, "alice", oneYear, "0x1234", alice.Hex())
			return res.Error, err
		}},
		{name: "register short duration", run: func() (*ens.ResultError, error) {
			res, err := svc.Register(ctx, "alice", 60, salt.Hex(), alice.Hex())
			return res.Error, err
		}},
		{name: "register zero duration", run: func() (*ens.ResultError, error) {
			res, err := svc.Register(ctx, "alice", 0, salt.Hex(), alice.Hex())
			return res.Error, err
		}},
		{name: "set address bad address", run: func() (*ens.ResultError, error) {
			res, err := svc.SetAddress(ctx, "alice", "0xZZZZ")
			return res.Error, err
		}},
		{name: "transfer ens bad address", run: func() (*ens.ResultError, error) {
			res, err := svc.TransferEns(ctx, "alice", "bob")
			return res.Error, err
		}},
		{name: "transfer register subdomain", run: func() (*ens.ResultError, error) {
			res, err := svc.TransferRegister(ctx, "sub.alice.eth", bob.Hex())
			return res.Error, err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rejection, err := tt.run()
			require.NoError(t, err)
			require.NotNil(t, rejection)
			assert.Equal(t, ens.KindValidation, rejection.Kind)
		})
	}
	assert.Empty(t, chain.Calls())
}

func TestSetAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("updates record", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		chain.Seed("alice", us, enstest.DefaultResolver, alice, future())

		res, err := svc.SetAddress(ctx, "alice", bob.Hex())
		require.NoError(t, err)
		require.Nil(t, res.Error)
		assert.NotEmpty(t, res.Tx)
		assert.Equal(t, bob, chain.Record("alice"))
	})

	t.Run("uses the name's own resolver", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		custom := common.HexToAddress("0x5555555555555555555555555555555555555555")
		chain.Seed("alice", us, custom, alice, future())

		res, err := svc.SetAddress(ctx, "alice.eth", bob.Hex())
		require.NoError(t, err)
		require.Nil(t, res.Error)
		assert.Equal(t, bob, chain.Record("alice"))
	})

	t.Run("already set", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		chain.Seed("alice", us, enstest.DefaultResolver, alice, future())

		res, err := svc.SetAddress(ctx, "alice", alice.Hex())
		require.NoError(t, err)
		require.NotNil(t, res.Error)
		assert.Equal(t, ens.KindDomainState, res.Error.Kind)
		assert.Empty(t, chain.Writes())
	})

	t.Run("unregistered", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())

		res, err := svc.SetAddress(ctx, "nobody", alice.Hex())
		require.NoError(t, err)
		require.NotNil(t, res.Error)
		assert.Equal(t, ens.KindDomainState, res.Error.Kind)
		assert.Empty(t, chain.Writes())
	})

	t.Run("no resolver", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		chain.Seed("bare", us, common.Address{}, common.Address{}, future())

		res, err := svc.SetAddress(ctx, "bare", alice.Hex())
		require.NoError(t, err)
		require.NotNil(t, res.Error)
		assert.Equal(t, ens.KindDomainState, res.Error.Kind)
		assert.Empty(t, chain.Writes())
	})

	t.Run("not ours", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		chain.Seed("theirs", stranger, enstest.DefaultResolver, stranger, future())

		res, err := svc.SetAddress(ctx, "theirs", alice.Hex())
		require.NoError(t, err)
		require.NotNil(t, res.Error)
		assert.Equal(t, ens.KindOwnership, res.Error.Kind)
		assert.Empty(t, chain.Writes())
	})
}

func TestTransferEns(t *testing.T) {
	ctx := context.Background()

	t.Run("transfers token", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		chain.Seed("alice", us, enstest.DefaultResolver, alice, future())

		res, err := svc.TransferEns(ctx, "alice", bob.Hex())
		require.NoError(t, err)
		require.Nil(t, res.Error)
		assert.Equal(t, bob, chain.TokenHolder("alice"))
		assert.Equal(t, []string{"baseRegistrar.safeTransferFrom"}, chain.Writes())
	})

	t.Run("not held", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		chain.Seed("theirs", stranger, enstest.DefaultResolver, stranger, future())

		res, err := svc.TransferEns(ctx, "theirs", bob.Hex())
		require.NoError(t, err)
		require.NotNil(t, res.Error)
		assert.Equal(t, ens.KindOwnership, res.Error.Kind)
		assert.Empty(t, chain.Writes())
	})

	t.Run("already held by recipient", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		chain.Seed("alice", us, enstest.DefaultResolver, alice, future())

		res, err := svc.TransferEns(ctx, "alice", us.Hex())
		require.NoError(t, err)
		require.NotNil(t, res.Error)
		assert.Equal(t, ens.KindDomainState, res.Error.Kind)
		assert.Empty(t, chain.Writes())
	})

	t.Run("expired", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		chain.Seed("old", us, enstest.DefaultResolver, alice, uint64(time.Now().Add(-time.Hour).Unix()))

		res, err := svc.TransferEns(ctx, "old", bob.Hex())
		require.NoError(t, err)
		require.NotNil(t, res.Error)
		assert.Equal(t, ens.KindDomainState, res.Error.Kind)
		assert.Empty(t, chain.Writes())
	})
}

func TestTransferRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("transfers ownership", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		chain.Seed("alice", us, enstest.DefaultResolver, alice, future())

		res, err := svc.TransferRegister(ctx, "alice", bob.Hex())
		require.NoError(t, err)
		require.Nil(t, res.Error)
		assert.Equal(t, bob, chain.RegistryOwner("alice"))
		assert.Equal(t, us, chain.TokenHolder("alice"))
	})

	t.Run("not ours", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		chain.Seed("theirs", stranger, enstest.DefaultResolver, stranger, future())

		res, err := svc.TransferRegister(ctx, "theirs", bob.Hex())
		require.NoError(t, err)
		require.NotNil(t, res.Error)
		assert.Equal(t, ens.KindOwnership, res.Error.Kind)
		assert.Empty(t, chain.Writes())
	})

	t.Run("unregistered", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())

		res, err := svc.TransferRegister(ctx, "nobody", bob.Hex())
		require.NoError(t, err)
		require.NotNil(t, res.Error)
		assert.Equal(t, ens.KindDomainState, res.Error.Kind)
		assert.Empty(t, chain.Writes())
	})

	t.Run("already owner", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		chain.Seed("alice", us, enstest.DefaultResolver, alice, future())

		res, err := svc.TransferRegister(ctx, "alice", us.Hex())
		require.NoError(t, err)
		require.NotNil(t, res.Error)
		assert.Equal(t, ens.KindDomainState, res.Error.Kind)
		assert.Empty(t, chain.Writes())
	})
}

func TestRemoteFailuresAreNotRetried(t *testing.T) {
	svc, chain := newService(t, defaultConfig())
	boom := errors.New("connection refused")
	chain.Fail["controller.commit"] = boom

	res, err := svc.MakeCommitment(context.Background(), "alice", alice.Hex())
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, boom))

	commits := 0
	for _, call := range chain.Calls() {
		if call == "controller.commit" {
			commits++
		}
	}
	assert.Equal(t, 1, commits)
}

func TestRegisterWithoutCommitmentFails(t *testing.T) {
	svc, chain := newService(t, defaultConfig())
	salt, err := ens.NewSalt()
	require.NoError(t, err)

	res, err := svc.Register(context.Background(), "alice", oneYear, salt.Hex(), alice.Hex())
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, enstest.ErrReverted))
	assert.Empty(t, chain.Writes())
}

func TestResolverLocator(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		svc, chain := newService(t, defaultConfig())
		chain.ClearDefaultResolver()

		res, err := svc.MakeCommitment(ctx, "alice", alice.Hex())
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, ens.ErrResolverNotConfigured))
		assert.Empty(t, chain.Writes())
	})

	t.Run("fixed address", func(t *testing.T) {
		chain := enstest.NewChain(us)
		chain.ClearDefaultResolver()
		fixed := common.HexToAddress("0x5555555555555555555555555555555555555555")

		locator, err := ens.NewResolverLocator(chain.Contracts().Registry, "", fixed.Hex())
		require.NoError(t, err)
		got, err := locator.Locate(ctx)
		require.NoError(t, err)
		assert.Equal(t, fixed, got)
		assert.Empty(t, chain.Calls())
	})

	t.Run("invalid fixed address", func(t *testing.T) {
		chain := enstest.NewChain(us)
		_, err := ens.NewResolverLocator(chain.Contracts().Registry, "", "0x1234")
		assert.Error(t, err)
	})
}

func TestUnknownAvailabilitySource(t *testing.T) {
	cfg := defaultConfig()
	cfg.AvailabilitySource = "oracle"
	_, err := ens.NewService(us, enstest.NewChain(us).Contracts(), cfg)
	assert.Error(t, err)
}

func TestCheckerDomain(t *testing.T) {
	svc, chain := newService(t, defaultConfig())
	chain.Seed("alice", us, enstest.DefaultResolver, alice, future())
	ctx := context.Background()

	domain, err := svc.Checker().Domain(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice.eth", domain.Name)
	assert.Equal(t, us, domain.Owner)
	assert.Equal(t, enstest.DefaultResolver, domain.Resolver)
	assert.Equal(t, "0x787192fc5378cc32aa956ddfdedbf26b24e8d78e40109add0eea2c1a012c3dec", common.Hash(domain.NameHash).Hex())

	domain, err = svc.Checker().Domain(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, common.Address{}, domain.Owner)
	assert.Equal(t, common.Address{}, domain.Resolver)
}

func TestOperationOutcomeMetrics(t *testing.T) {
	svc, chain := newService(t, defaultConfig())
	chain.Seed("theirs", stranger, enstest.DefaultResolver, stranger, future())
	ctx := context.Background()

	outcomes := []struct {
		outcome string
		run     func()
	}{
		{"ownership", func() { _, _ = svc.TransferRegister(ctx, "theirs", bob.Hex()) }},
		{"domain-state", func() { _, _ = svc.TransferRegister(ctx, "nobody", bob.Hex()) }},
		{"validation", func() { _, _ = svc.TransferRegister(ctx, "theirs", "0xZZZZ") }},
	}
	for _, tt := range outcomes {
		counter := metrics.EnsOperationsTotal.WithLabelValues("transferRegister", tt.outcome)
		before := testutil.ToFloat64(counter)
		tt.run()
		assert.Equal(t, before+1, testutil.ToFloat64(counter), tt.outcome)
	}
}
