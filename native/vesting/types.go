package vesting

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"groledger/native/fixedpoint"
)

const (
	// PercentBase is the basis point denominator used by every percentage.
	PercentBase = fixedpoint.PercentBase
	// OneYear is the default maximum lock period in seconds (365.2425 days).
	OneYear uint64 = 31_556_952
	// OneMonth is the shortest maximum lock period the ledger accepts.
	OneMonth = OneYear / 12
	// MergeGrace is added to clamped merge timestamps so that a top-up of a
	// long matured position still vests over a short window.
	MergeGrace uint64 = 604_800
	// MaxLockFactorBps bounds SetMaxLockPeriod at twice the default lock.
	MaxLockFactorBps uint64 = 20_000

	DefaultInitUnlockedBps  uint64 = 1_000
	DefaultInstantUnlockBps uint64 = 3_000
	// UnsetBps asks Initialize for the default percentage. Zero is a valid
	// setting.
	UnsetBps = ^uint64(0)
)

// Account is the persisted per-account record. Total and StartTime form the
// vesting position, Withdrawn accumulates every payout.
type Account struct {
	Total     *big.Int `json:"total"`
	StartTime uint64   `json:"startTime"`
	Withdrawn *big.Int `json:"withdrawn"`
}

// Position is the (total, startTime) view of an account.
type Position struct {
	Total     *big.Int `json:"total"`
	StartTime uint64   `json:"startTime"`
}

// Empty reports whether the position holds nothing.
func (p Position) Empty() bool { return p.Total == nil || p.Total.Sign() == 0 }

// Aggregate is the ledger-wide position all accounts merge into.
type Aggregate struct {
	TotalPrincipal *big.Int `json:"totalPrincipal"`
	StartTime      uint64   `json:"startTime"`
}

// Params holds the ledger configuration and role holders.
type Params struct {
	Owner             common.Address `json:"owner"`
	Timelock          common.Address `json:"timelock"`
	MaxLockPeriod     uint64         `json:"maxLockPeriod"`
	InitUnlockedBps   uint64         `json:"initUnlockedBps"`
	InstantUnlockBps  uint64         `json:"instantUnlockBps"`
	AggregateMigrated bool           `json:"aggregateMigrated"`
}

// ExitResult reports the split of an exit.
type ExitResult struct {
	Amount   *big.Int `json:"amount"`
	Unlocked *big.Int `json:"unlocked"`
	Penalty  *big.Int `json:"penalty"`
}

// InstantResult reports the split of an unlocked deposit.
type InstantResult struct {
	Paid      *big.Int `json:"paid"`
	Forfeited *big.Int `json:"forfeited"`
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	return &Account{
		Total:     fixedpoint.Clone(a.Total),
		StartTime: a.StartTime,
		Withdrawn: fixedpoint.Clone(a.Withdrawn),
	}
}

// Position returns the vesting position carried by the account.
func (a *Account) Position() Position {
	if a == nil {
		return Position{Total: big.NewInt(0)}
	}
	return Position{Total: fixedpoint.Clone(a.Total), StartTime: a.StartTime}
}

// Clone returns a deep copy of the aggregate.
func (g *Aggregate) Clone() *Aggregate {
	if g == nil {
		return &Aggregate{TotalPrincipal: big.NewInt(0)}
	}
	return &Aggregate{TotalPrincipal: fixedpoint.Clone(g.TotalPrincipal), StartTime: g.StartTime}
}

func emptyAccount() *Account {
	return &Account{Total: big.NewInt(0), Withdrawn: big.NewInt(0)}
}

func ensureAccount(acct *Account) *Account {
	if acct == nil {
		return emptyAccount()
	}
	if acct.Total == nil {
		acct.Total = big.NewInt(0)
	}
	if acct.Withdrawn == nil {
		acct.Withdrawn = big.NewInt(0)
	}
	return acct
}
