package vesting

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	nativecommon "groledger/native/common"
	"groledger/native/fixedpoint"
)

// Deposit credits amount to account on behalf of an allowed vester. Locked
// deposits merge into the position; unlocked deposits pay out the instant
// share and forfeit the rest to the bonus pool.
func (e *Engine) Deposit(caller, account common.Address, amount *big.Int, lock bool) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	ok, err := e.isVester(caller)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotVester
	}
	if account == (common.Address{}) {
		return ErrInvalidAccount
	}
	if !positive(amount) {
		return ErrInvalidAmount
	}
	if err := nativecommon.GuardOp(e.state, e.module, "vest"); err != nil {
		return err
	}
	if !lock {
		_, err := e.instantVest(params, account, amount)
		return err
	}

	now := e.now()
	acct, pulled, err := e.loadAccount(account)
	if err != nil {
		return err
	}
	before := acct.Position()
	acct.StartTime = mergeStart(acct.StartTime, acct.Total, now, amount, params.MaxLockPeriod)
	acct.Total = new(big.Int).Add(acct.Total, amount)

	agg, err := e.aggregate()
	if err != nil {
		return err
	}
	agg.StartTime = mergeStart(agg.StartTime, agg.TotalPrincipal, now, amount, params.MaxLockPeriod)
	agg.TotalPrincipal = new(big.Int).Add(agg.TotalPrincipal, amount)

	if err := e.storeAccount(account, acct, pulled, before); err != nil {
		return err
	}
	if err := e.state.VestingAggregatePut(e.addr, agg); err != nil {
		return err
	}
	e.emit(DepositedEvent(e.addr, account, amount, acct.Position()))
	return nil
}

func (e *Engine) instantVest(params *Params, account common.Address, amount *big.Int) (*InstantResult, error) {
	if e.minter == nil {
		return nil, errMinterNil
	}
	paid := fixedpoint.Bps(amount, params.InstantUnlockBps)
	forfeited := new(big.Int).Sub(amount, paid)
	if forfeited.Sign() > 0 {
		if e.bonus == nil {
			return nil, errBonusNotSet
		}
		if err := e.bonus.Add(e.addr, forfeited); err != nil {
			return nil, err
		}
	}
	if paid.Sign() > 0 {
		acct, pulled, err := e.loadAccount(account)
		if err != nil {
			return nil, err
		}
		before := acct.Position()
		acct.Withdrawn = new(big.Int).Add(acct.Withdrawn, paid)
		if err := e.storeAccount(account, acct, pulled, before); err != nil {
			return nil, err
		}
		if err := e.minter.Mint(e.addr, account, paid); err != nil {
			return nil, err
		}
	}
	res := &InstantResult{Paid: paid, Forfeited: forfeited}
	e.emit(InstantVestedEvent(e.addr, account, amount, res))
	return res, nil
}

// Exit withdraws up to amount from the caller's position. The vested share of
// the withdrawn slice is paid out and the unvested share is forfeited to the
// bonus pool.
func (e *Engine) Exit(account common.Address, amount *big.Int) (*ExitResult, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	if !positive(amount) {
		return nil, ErrExitAmount
	}
	if err := nativecommon.GuardOp(e.state, e.module, "exit"); err != nil {
		return nil, err
	}
	acct, pulled, err := e.loadAccount(account)
	if err != nil {
		return nil, err
	}
	if acct.Total.Sign() == 0 {
		return nil, ErrNoPosition
	}
	before := acct.Position()
	vested := vestedOf(acct.Total, acct.StartTime, e.now(), params)

	exitAmount := fixedpoint.Min(amount, acct.Total)
	var unlocked *big.Int
	if exitAmount.Cmp(acct.Total) == 0 {
		unlocked = vested
		acct.Total = big.NewInt(0)
		acct.StartTime = 0
	} else {
		unlocked = new(big.Int).Mul(vested, exitAmount)
		unlocked.Quo(unlocked, acct.Total)
		acct.Total = new(big.Int).Sub(acct.Total, exitAmount)
	}
	penalty := new(big.Int).Sub(exitAmount, unlocked)
	acct.Withdrawn = new(big.Int).Add(acct.Withdrawn, unlocked)

	agg, err := e.aggregate()
	if err != nil {
		return nil, err
	}
	agg.TotalPrincipal = new(big.Int).Sub(agg.TotalPrincipal, exitAmount)
	if agg.TotalPrincipal.Sign() < 0 {
		return nil, fixedpoint.ErrNegative
	}

	if err := e.storeAccount(account, acct, pulled, before); err != nil {
		return nil, err
	}
	if err := e.state.VestingAggregatePut(e.addr, agg); err != nil {
		return nil, err
	}
	if penalty.Sign() > 0 {
		if e.bonus == nil {
			return nil, errBonusNotSet
		}
		if err := e.bonus.Add(e.addr, penalty); err != nil {
			return nil, err
		}
	}
	if unlocked.Sign() > 0 {
		if e.minter == nil {
			return nil, errMinterNil
		}
		if err := e.minter.Mint(e.addr, account, unlocked); err != nil {
			return nil, err
		}
	}
	res := &ExitResult{Amount: exitAmount, Unlocked: unlocked, Penalty: penalty}
	e.emit(ExitedEvent(e.addr, account, res))
	return res, nil
}

// Extend restarts part of the caller's lock. bps is the share of the maximum
// lock period by which the start time moves forward, capped at now.
func (e *Engine) Extend(account common.Address, bps uint64) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if bps > PercentBase {
		return ErrExtensionTooLarge
	}
	if err := nativecommon.GuardOp(e.state, e.module, "extend"); err != nil {
		return err
	}
	acct, pulled, err := e.loadAccount(account)
	if err != nil {
		return err
	}
	if acct.Total.Sign() == 0 {
		return ErrExtendNoPosition
	}
	before := acct.Position()
	now := e.now()
	maxLock := params.MaxLockPeriod
	shift := maxLock * bps / PercentBase

	oldStart := acct.StartTime
	var newStart uint64
	if oldStart+maxLock < now {
		newStart = now - maxLock + shift
	} else {
		newStart = oldStart + shift
		if newStart > now {
			newStart = now
		}
	}

	agg, err := e.aggregate()
	if err != nil {
		return err
	}
	if agg.TotalPrincipal.Sign() > 0 && newStart > oldStart {
		delta := new(big.Int).Mul(acct.Total, new(big.Int).SetUint64(newStart-oldStart))
		delta.Quo(delta, agg.TotalPrincipal)
		agg.StartTime += delta.Uint64()
		if agg.StartTime > now {
			agg.StartTime = now
		}
	}
	acct.StartTime = newStart

	if err := e.storeAccount(account, acct, pulled, before); err != nil {
		return err
	}
	if err := e.state.VestingAggregatePut(e.addr, agg); err != nil {
		return err
	}
	e.emit(ExtendedEvent(e.addr, account, bps, oldStart, newStart))
	return nil
}

// mergeStart folds amount arriving at now into a position of weight total
// that started at start. Results older than one lock period are pulled
// forward to now - maxLock + MergeGrace.
func mergeStart(start uint64, total *big.Int, now uint64, amount *big.Int, maxLock uint64) uint64 {
	merged := fixedpoint.WeightedTimestamp(start, total, now, amount)
	if merged+maxLock < now {
		merged = now - maxLock + MergeGrace
	}
	return merged
}
