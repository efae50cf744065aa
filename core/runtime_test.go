package core

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"groledger/config"
	"groledger/core/events"
	"groledger/native/bonus"
	nativecommon "groledger/native/common"
	"groledger/native/fixedpoint"
	"groledger/native/staking"
	"groledger/native/token"
	"groledger/native/vesting"
	"groledger/storage"
)

const (
	genesisTime  = 1_700_000_000
	genesisBlock = 100
)

var (
	owner    = common.HexToAddress("0x0000000000000000000000000000000000000a01")
	timelock = common.HexToAddress("0x0000000000000000000000000000000000000a02")
	manager  = common.HexToAddress("0x0000000000000000000000000000000000000a03")
	investor = common.HexToAddress("0x0000000000000000000000000000000000000a04")
	team     = common.HexToAddress("0x0000000000000000000000000000000000000a05")
	dao      = common.HexToAddress("0x0000000000000000000000000000000000000a06")
	alice    = common.HexToAddress("0x0000000000000000000000000000000000000b01")
	bob      = common.HexToAddress("0x0000000000000000000000000000000000000b02")
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), fixedpoint.MustBigInt("1000000000000000000"))
}

func testSettings() Settings {
	return Settings{
		Roles: config.ResolvedRoles{
			Owner:          owner,
			Timelock:       timelock,
			Manager:        manager,
			Maintainer:     owner,
			DAOVester:      dao,
			InvestorVester: investor,
			TeamVester:     team,
		},
		MaxLockFactorBps:  10_000,
		InitUnlockedBps:   1_000,
		InstantUnlockBps:  3_000,
		RewardPerBlock:    tokens(1),
		MaxRewardPerBlock: tokens(10),
	}
}

type harness struct {
	rt   *Runtime
	db   *storage.MemDB
	sink *events.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := storage.NewMemDB()
	sink := &events.Buffer{}
	rt := NewRuntime(db, Options{Emitter: sink, Clock: NewClock(genesisTime, genesisBlock)})
	_, err := rt.Init(context.Background(), testSettings())
	require.NoError(t, err)
	sink.Reset()
	return &harness{rt: rt, db: db, sink: sink}
}

func (h *harness) exec(t *testing.T, op string, fn func(*Engines) error) *Receipt {
	t.Helper()
	receipt, err := h.rt.Execute(context.Background(), op, fn)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	return receipt
}

func (h *harness) view(t *testing.T, fn func(*Engines) error) {
	t.Helper()
	require.NoError(t, h.rt.View(fn))
}

func requireAmount(t *testing.T, want, got *big.Int) {
	t.Helper()
	require.Equal(t, want.String(), got.String())
}

func TestInitRunsOnce(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.rt.Initialized())

	_, err := h.rt.Init(context.Background(), testSettings())
	require.ErrorIs(t, err, token.ErrAlreadyInitialized)
	require.Empty(t, h.sink.Events())

	h.view(t, func(e *Engines) error {
		params, err := e.Ledger.Params()
		require.NoError(t, err)
		require.Equal(t, vesting.OneYear, params.MaxLockPeriod)

		for _, vester := range []common.Address{e.Staking.Address(), e.Bonus.Address(), e.Burner.Address()} {
			ok, err := e.Ledger.IsVester(vester)
			require.NoError(t, err)
			require.True(t, ok)
		}
		supplyCap, err := e.Token.Cap()
		require.NoError(t, err)
		requireAmount(t, token.MaxTotalSupply, supplyCap)
		return nil
	})
}

func TestUninitializedRuntime(t *testing.T) {
	rt := NewRuntime(storage.NewMemDB(), Options{})
	require.False(t, rt.Initialized())
}

func TestClockSurvivesRestart(t *testing.T) {
	h := newHarness(t)
	h.rt.Clock().Advance(100, 7)
	h.exec(t, "tick", func(*Engines) error { return nil })

	h.rt.Clock().Advance(50, 1)
	_, err := h.rt.Execute(context.Background(), "failing", func(*Engines) error {
		return errors.New("boom")
	})
	require.Error(t, err)

	restarted := NewRuntime(h.db, Options{Clock: NewClock(genesisTime, genesisBlock)})
	require.Equal(t, uint64(genesisTime+100), restarted.Clock().Now())
	require.Equal(t, uint64(genesisBlock+7), restarted.Clock().Block())

	ahead := NewRuntime(h.db, Options{Clock: NewClock(genesisTime+1_000, genesisBlock+50)})
	require.Equal(t, uint64(genesisTime+1_000), ahead.Clock().Now())
	require.Equal(t, uint64(genesisBlock+50), ahead.Clock().Block())
}

func TestModuleAddressesMatchEngines(t *testing.T) {
	rt := NewRuntime(storage.NewMemDB(), Options{})
	addrs := ModuleAddresses()
	require.Len(t, addrs, 6)
	require.Equal(t, rt.Engines().Ledger.Address().Hex(), addrs[ModuleLedger])
	require.Equal(t, rt.Engines().Staking.Address().Hex(), addrs[ModuleStaking])
	require.Equal(t, rt.Engines().Bonus.Address().Hex(), addrs[ModuleBonus])
}

func TestStakingRewardsVestAndExit(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "seed", func(e *Engines) error {
		if err := e.Book.Mint("LP", alice, tokens(100)); err != nil {
			return err
		}
		_, err := e.Staking.AddPool(manager, "LP", 100)
		return err
	})
	h.exec(t, "staking.deposit", func(e *Engines) error {
		return e.Staking.Deposit(alice, 0, tokens(100))
	})

	h.rt.Clock().Advance(12, 10)
	var claimed *big.Int
	receipt := h.exec(t, "staking.claim", func(e *Engines) error {
		var err error
		claimed, err = e.Staking.Claim(alice, 0, true)
		return err
	})
	requireAmount(t, tokens(10), claimed)
	require.Equal(t, uint64(genesisBlock+10), receipt.Block)
	require.Contains(t, h.sink.Types(), vesting.EventTypeDeposited)
	require.Contains(t, h.sink.Types(), staking.EventTypeClaimed)

	h.view(t, func(e *Engines) error {
		total, err := e.Ledger.TotalBalance(alice)
		require.NoError(t, err)
		requireAmount(t, tokens(10), total)
		agg, err := e.Ledger.Aggregate()
		require.NoError(t, err)
		requireAmount(t, tokens(10), agg.TotalPrincipal)
		return nil
	})

	h.rt.Clock().Advance(vesting.OneYear, 0)
	var res *vesting.ExitResult
	h.exec(t, "vesting.exit", func(e *Engines) error {
		var err error
		res, err = e.Ledger.Exit(alice, tokens(10))
		return err
	})
	requireAmount(t, tokens(10), res.Unlocked)
	requireAmount(t, big.NewInt(0), res.Penalty)

	h.view(t, func(e *Engines) error {
		balance, err := e.Token.BalanceOf(alice)
		require.NoError(t, err)
		requireAmount(t, tokens(10), balance)
		supply, err := e.Token.TotalSupply()
		require.NoError(t, err)
		requireAmount(t, tokens(10), supply)
		escrow, err := e.Book.BalanceOf("LP", e.Staking.Address())
		require.NoError(t, err)
		requireAmount(t, tokens(100), escrow)
		return nil
	})
}

func TestPenaltiesFundTheBonusPool(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "allocate", func(e *Engines) error {
		for _, account := range []common.Address{alice, bob} {
			if err := e.Distributer.Mint(investor, account, tokens(100)); err != nil {
				return err
			}
			if err := e.Burner.ReVest(account, tokens(100)); err != nil {
				return err
			}
		}
		return nil
	})

	var res *vesting.ExitResult
	h.exec(t, "vesting.exit", func(e *Engines) error {
		var err error
		res, err = e.Ledger.Exit(alice, tokens(100))
		return err
	})
	requireAmount(t, tokens(10), res.Unlocked)
	requireAmount(t, tokens(90), res.Penalty)
	require.Contains(t, h.sink.Types(), bonus.EventTypeAdded)

	h.view(t, func(e *Engines) error {
		pending, err := e.Bonus.PendingBonus(bob)
		require.NoError(t, err)
		requireAmount(t, tokens(90), pending)
		pending, err = e.Bonus.PendingBonus(alice)
		require.NoError(t, err)
		requireAmount(t, big.NewInt(0), pending)
		return nil
	})

	var claimed *big.Int
	h.exec(t, "bonus.claim", func(e *Engines) error {
		var err error
		claimed, err = e.Bonus.Claim(bob, true)
		return err
	})
	requireAmount(t, tokens(90), claimed)

	h.view(t, func(e *Engines) error {
		total, err := e.Ledger.TotalBalance(bob)
		require.NoError(t, err)
		requireAmount(t, tokens(190), total)
		pool, err := e.Bonus.TotalBonus()
		require.NoError(t, err)
		requireAmount(t, big.NewInt(0), pool)

		balance, err := e.Token.BalanceOf(alice)
		require.NoError(t, err)
		requireAmount(t, tokens(10), balance)
		supply, err := e.Token.TotalSupply()
		require.NoError(t, err)
		requireAmount(t, tokens(10), supply)

		remaining, err := e.Distributer.Remaining(token.CategoryInvestor)
		require.NoError(t, err)
		requireAmount(t, new(big.Int).Sub(token.DefaultQuotas[token.CategoryInvestor], tokens(200)), remaining)
		return nil
	})
}

func TestFailedOperationRollsBack(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "seed", func(e *Engines) error {
		_, err := e.Staking.AddPool(manager, "LP", 100)
		return err
	})
	h.sink.Reset()
	before := h.db.Len()

	receipt, err := h.rt.Execute(context.Background(), "broken", func(e *Engines) error {
		if err := e.Book.Mint("LP", alice, tokens(5)); err != nil {
			return err
		}
		return e.Staking.Deposit(alice, 0, tokens(50))
	})
	require.ErrorIs(t, err, nativecommon.ErrInsufficientBalance)
	require.Nil(t, receipt)
	require.Empty(t, h.sink.Events())
	require.Equal(t, before, h.db.Len())

	h.view(t, func(e *Engines) error {
		balance, err := e.Book.BalanceOf("LP", alice)
		require.NoError(t, err)
		requireAmount(t, big.NewInt(0), balance)
		stake, err := e.Staking.UserInfo(0, alice)
		require.NoError(t, err)
		require.Zero(t, stake.Staked.Sign())
		return nil
	})
}

func TestViewDiscardsWrites(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.rt.View(func(e *Engines) error {
		return e.Book.Mint("LP", alice, tokens(1))
	}))
	h.view(t, func(e *Engines) error {
		balance, err := e.Book.BalanceOf("LP", alice)
		require.NoError(t, err)
		requireAmount(t, big.NewInt(0), balance)
		return nil
	})
	require.Empty(t, h.sink.Events())
}

func TestCancelledContextSkipsOperation(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	_, err := h.rt.Execute(ctx, "cancelled", func(*Engines) error {
		ran = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, ran)

	_, err = h.rt.Execute(context.Background(), "nil", nil)
	require.Error(t, err)
}

func TestStakingMigrationThroughRuntime(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "seed", func(e *Engines) error {
		if err := e.Book.Mint("LP", alice, tokens(100)); err != nil {
			return err
		}
		if _, err := e.Staking.AddPool(manager, "LP", 100); err != nil {
			return err
		}
		return e.Staking.Deposit(alice, 0, tokens(100))
	})

	next := h.rt.NewStaking("staking-v2")
	h.rt.Clock().Advance(60, 5)
	h.exec(t, "staking.migrate", func(e *Engines) error {
		old := e.Staking
		if err := next.Initialize(staking.Params{
			Owner:             owner,
			Manager:           manager,
			Timelock:          timelock,
			RewardPerBlock:    tokens(1),
			MaxRewardPerBlock: tokens(10),
		}); err != nil {
			return err
		}
		if err := e.Ledger.SetVester(owner, next.Address(), true); err != nil {
			return err
		}
		next.SetPredecessor(old)
		old.SetSuccessor(next)
		e.Migrator.Map("LP", "LPv2")
		return old.Migrate(timelock, []uint64{0})
	})
	require.Contains(t, h.sink.Types(), staking.EventTypePoolMigrated)

	h.rt.Clock().Advance(60, 5)
	h.exec(t, "staking.migrateUser", func(e *Engines) error {
		return next.MigrateUser(alice, []uint64{0})
	})

	h.view(t, func(e *Engines) error {
		stake, err := next.UserInfo(0, alice)
		require.NoError(t, err)
		requireAmount(t, tokens(100), stake.Staked)
		claimable, err := next.Claimable(0, alice)
		require.NoError(t, err)
		requireAmount(t, tokens(10), claimable)

		moved, err := e.Book.BalanceOf("LPv2", next.Address())
		require.NoError(t, err)
		requireAmount(t, tokens(100), moved)
		left, err := e.Book.BalanceOf("LP", e.Staking.Address())
		require.NoError(t, err)
		requireAmount(t, big.NewInt(0), left)
		return nil
	})

	var claimed *big.Int
	h.exec(t, "staking.claim", func(e *Engines) error {
		var err error
		claimed, err = next.Claim(alice, 0, true)
		return err
	})
	requireAmount(t, tokens(10), claimed)
}

func TestSuccessorLedgerPaysOutMigratedPositions(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "allocate", func(e *Engines) error {
		if err := e.Distributer.Mint(investor, alice, tokens(1000)); err != nil {
			return err
		}
		return e.Burner.ReVest(alice, tokens(1000))
	})

	next := h.rt.NewLedger("vesting-v2", h.rt.Engines().Ledger)
	h.exec(t, "vesting.redeploy", func(e *Engines) error {
		if err := e.Ledger.SetStatus(timelock, true); err != nil {
			return err
		}
		if err := next.Initialize(vesting.DefaultParams(owner, timelock)); err != nil {
			return err
		}
		if err := e.Distributer.SetVester(owner, token.CategoryCommunity, next.Address()); err != nil {
			return err
		}
		e.Bonus.SetLedger(next)
		return nil
	})
	require.Contains(t, h.sink.Types(), token.EventTypeVesterSet)

	h.rt.Clock().Advance(vesting.OneYear/2, 0)
	var res *vesting.ExitResult
	h.exec(t, "vesting.exit", func(e *Engines) error {
		var err error
		res, err = next.Exit(alice, tokens(500))
		return err
	})
	requireAmount(t, tokens(275), res.Unlocked)
	requireAmount(t, tokens(225), res.Penalty)

	h.view(t, func(e *Engines) error {
		balance, err := e.Token.BalanceOf(alice)
		require.NoError(t, err)
		requireAmount(t, tokens(275), balance)
		total, err := next.TotalBalance(alice)
		require.NoError(t, err)
		requireAmount(t, tokens(500), total)
		pool, err := e.Bonus.TotalBonus()
		require.NoError(t, err)
		requireAmount(t, tokens(225), pool)

		_, err = e.Ledger.Exit(alice, tokens(1))
		require.Error(t, err)
		return nil
	})
}
