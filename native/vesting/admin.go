package vesting

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	nativecommon "groledger/native/common"
)

// DefaultParams returns the default ledger parameters for owner and timelock.
func DefaultParams(owner, timelock common.Address) Params {
	return Params{
		Owner:            owner,
		Timelock:         timelock,
		MaxLockPeriod:    OneYear,
		InitUnlockedBps:  DefaultInitUnlockedBps,
		InstantUnlockBps: DefaultInstantUnlockBps,
	}
}

// Initialize stores the ledger parameters. A zero lock period and UnsetBps
// percentages take the defaults. When a predecessor is configured the
// aggregate is bootstrapped from it.
func (e *Engine) Initialize(params Params) error {
	if e.state == nil {
		return errNilState
	}
	if _, ok, err := e.state.VestingParamsGet(e.addr); err != nil {
		return err
	} else if ok {
		return ErrAlreadyInitialized
	}
	if params.Owner == (common.Address{}) {
		return ErrInvalidOwner
	}
	if params.MaxLockPeriod == 0 {
		params.MaxLockPeriod = OneYear
	}
	if params.InitUnlockedBps == UnsetBps {
		params.InitUnlockedBps = DefaultInitUnlockedBps
	}
	if params.InstantUnlockBps == UnsetBps {
		params.InstantUnlockBps = DefaultInstantUnlockBps
	}
	if params.InitUnlockedBps > PercentBase || params.InstantUnlockBps > PercentBase {
		return ErrPercentTooLarge
	}
	params.AggregateMigrated = false
	if err := e.state.VestingParamsPut(e.addr, &params); err != nil {
		return err
	}
	if e.previous != nil {
		return e.bootstrap(&params)
	}
	return nil
}

// SetVester adds or removes a depositor from the allow-list.
func (e *Engine) SetVester(caller, vester common.Address, allowed bool) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Owner, ErrNotOwner); err != nil {
		return err
	}
	if vester == (common.Address{}) {
		return ErrInvalidAccount
	}
	if err := e.state.VestingVesterPut(e.addr, vester, allowed); err != nil {
		return err
	}
	e.emit(VesterUpdatedEvent(e.addr, vester, allowed))
	return nil
}

// IsVester reports whether addr may deposit.
func (e *Engine) IsVester(addr common.Address) (bool, error) {
	if e.state == nil {
		return false, errNilState
	}
	return e.isVester(addr)
}

// SetStatus pauses or resumes mutations.
func (e *Engine) SetStatus(caller common.Address, paused bool) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Timelock, ErrNotTimelock); err != nil {
		return err
	}
	if err := e.state.SetPaused(e.module, paused); err != nil {
		return err
	}
	e.emit(StatusUpdatedEvent(e.addr, paused))
	return nil
}

// Paused reports whether the ledger rejects mutations.
func (e *Engine) Paused() bool {
	if e.state == nil {
		return false
	}
	return e.state.IsPaused(e.module)
}

// SetMaxLockPeriod sets the lock period to OneYear*factorBps/10000.
func (e *Engine) SetMaxLockPeriod(caller common.Address, factorBps uint64) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Owner, ErrNotOwner); err != nil {
		return err
	}
	if factorBps > MaxLockFactorBps {
		return ErrLockFactorTooLarge
	}
	period := new(big.Int).SetUint64(OneYear)
	period.Mul(period, new(big.Int).SetUint64(factorBps))
	period.Quo(period, big.NewInt(PercentBase))
	if period.Uint64() < OneMonth {
		return ErrLockPeriodTooShort
	}
	params.MaxLockPeriod = period.Uint64()
	if err := e.state.VestingParamsPut(e.addr, params); err != nil {
		return err
	}
	e.emit(ParamsUpdatedEvent(e.addr, "maxLockPeriod", strconv.FormatUint(params.MaxLockPeriod, 10)))
	return nil
}

// SetInitUnlockedPercent sets the share of every position that is vested at
// deposit time.
func (e *Engine) SetInitUnlockedPercent(caller common.Address, bps uint64) error {
	return e.setPercent(caller, bps, "initUnlockedPercent", func(p *Params) { p.InitUnlockedBps = bps })
}

// SetInstantUnlockPercent sets the share paid out by unlocked deposits.
func (e *Engine) SetInstantUnlockPercent(caller common.Address, bps uint64) error {
	return e.setPercent(caller, bps, "instantUnlockPercent", func(p *Params) { p.InstantUnlockBps = bps })
}

func (e *Engine) setPercent(caller common.Address, bps uint64, field string, apply func(*Params)) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Owner, ErrNotOwner); err != nil {
		return err
	}
	if bps > PercentBase {
		return ErrPercentTooLarge
	}
	apply(params)
	if err := e.state.VestingParamsPut(e.addr, params); err != nil {
		return err
	}
	e.emit(ParamsUpdatedEvent(e.addr, field, strconv.FormatUint(bps, 10)))
	return nil
}

// SetTimelock moves the pause authority.
func (e *Engine) SetTimelock(caller, timelock common.Address) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Owner, ErrNotOwner); err != nil {
		return err
	}
	params.Timelock = timelock
	if err := e.state.VestingParamsPut(e.addr, params); err != nil {
		return err
	}
	e.emit(ParamsUpdatedEvent(e.addr, "timelock", timelock.Hex()))
	return nil
}
