package vesting

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"groledger/native/fixedpoint"
)

// vestingOf returns the still locked part of a position:
// total*(BASE-init)*remaining / (maxLock*BASE). One division keeps precision.
func vestingOf(total *big.Int, start, now uint64, params *Params) *big.Int {
	if total == nil || total.Sign() == 0 || params.MaxLockPeriod == 0 {
		return big.NewInt(0)
	}
	remaining := fixedpoint.Remaining(start, now, params.MaxLockPeriod)
	if remaining == 0 {
		return big.NewInt(0)
	}
	num := new(big.Int).Mul(total, new(big.Int).SetUint64(PercentBase-params.InitUnlockedBps))
	num.Mul(num, new(big.Int).SetUint64(remaining))
	den := new(big.Int).Mul(new(big.Int).SetUint64(params.MaxLockPeriod), big.NewInt(PercentBase))
	return num.Quo(num, den)
}

func vestedOf(total *big.Int, start, now uint64, params *Params) *big.Int {
	if total == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Sub(total, vestingOf(total, start, now, params))
}

// Position returns the account's position, reading through to the
// predecessor when the account has not interacted with this ledger yet.
func (e *Engine) Position(account common.Address) (Position, error) {
	if e.state == nil {
		return Position{}, errNilState
	}
	acct, _, err := e.loadAccount(account)
	if err != nil {
		return Position{}, err
	}
	return acct.Position(), nil
}

// Aggregate returns a copy of the ledger-wide position.
func (e *Engine) Aggregate() (*Aggregate, error) {
	if e.state == nil {
		return nil, errNilState
	}
	agg, err := e.aggregate()
	if err != nil {
		return nil, err
	}
	return agg.Clone(), nil
}

// Params returns a copy of the ledger configuration.
func (e *Engine) Params() (*Params, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	cp := *params
	return &cp, nil
}

// VestingBalance is the still locked part of the account's position.
func (e *Engine) VestingBalance(account common.Address) (*big.Int, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	acct, _, err := e.loadAccount(account)
	if err != nil {
		return nil, err
	}
	return vestingOf(acct.Total, acct.StartTime, e.now(), params), nil
}

// VestedBalance is the part of the position an exit pays out now.
func (e *Engine) VestedBalance(account common.Address) (*big.Int, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	acct, _, err := e.loadAccount(account)
	if err != nil {
		return nil, err
	}
	return vestedOf(acct.Total, acct.StartTime, e.now(), params), nil
}

// TotalBalance is the full position principal.
func (e *Engine) TotalBalance(account common.Address) (*big.Int, error) {
	pos, err := e.Position(account)
	if err != nil {
		return nil, err
	}
	return pos.Total, nil
}

// Withdrawn is the cumulative amount paid out to the account by this ledger.
func (e *Engine) Withdrawn(account common.Address) (*big.Int, error) {
	if e.state == nil {
		return nil, errNilState
	}
	acct, _, err := e.loadAccount(account)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(acct.Withdrawn), nil
}

// AggregateVestingBalance applies the decay formula to the aggregate
// position. The bonus pool uses it as an approximation of the sum of every
// account's vesting balance.
func (e *Engine) AggregateVestingBalance() (*big.Int, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	agg, err := e.aggregate()
	if err != nil {
		return nil, err
	}
	return vestingOf(agg.TotalPrincipal, agg.StartTime, e.now(), params), nil
}

// GetVestingDates returns the start and end of the account's lock.
func (e *Engine) GetVestingDates(account common.Address) (start, end uint64, err error) {
	params, err := e.params()
	if err != nil {
		return 0, 0, err
	}
	acct, _, err := e.loadAccount(account)
	if err != nil {
		return 0, 0, err
	}
	if acct.Total.Sign() == 0 {
		return 0, 0, ErrNoActivePosition
	}
	return acct.StartTime, acct.StartTime + params.MaxLockPeriod, nil
}
