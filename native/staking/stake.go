package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	nativecommon "groledger/native/common"
)

// guard checks the pause flag for op.
func (e *Engine) guard(op string) (*Params, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	if err := nativecommon.GuardOp(e.state, e.module, op); err != nil {
		return nil, err
	}
	return params, nil
}

// position loads an active pool accrued to the current block together with
// the caller's stake settled against it. Pools cannot be updated once every
// weight is zero, so user operations fail until weight is restored.
func (e *Engine) position(op string, pid uint64, account common.Address) (*Params, *Pool, *UserStake, error) {
	params, err := e.guard(op)
	if err != nil {
		return nil, nil, nil, err
	}
	pool, err := e.loadActivePool(op, params, pid)
	if err != nil {
		return nil, nil, nil, err
	}
	if params.TotalWeight == 0 {
		return nil, nil, nil, ErrTotalWeightZero
	}
	stake, err := e.loadStake(pid, account)
	if err != nil {
		return nil, nil, nil, err
	}
	accrue(params, pool, e.block())
	settle(pool, stake)
	return params, pool, stake, nil
}

func (e *Engine) persist(pid uint64, account common.Address, pool *Pool, stake *UserStake) error {
	resetDebt(pool, stake)
	if err := e.putPool(pid, pool); err != nil {
		return err
	}
	return e.state.StakingUserPut(e.addr, pid, account, stake)
}

func validAmount(amount *big.Int) bool { return amount != nil && amount.Sign() >= 0 }

// Deposit escrows amount of the pool asset from caller into the engine. A
// zero amount only settles pending rewards.
func (e *Engine) Deposit(caller common.Address, pid uint64, amount *big.Int) error {
	if !validAmount(amount) {
		return ErrInvalidAmount
	}
	if e.book == nil {
		return errNilBook
	}
	_, pool, stake, err := e.position("deposit", pid, caller)
	if err != nil {
		return err
	}
	if amount.Sign() > 0 {
		if err := e.book.Transfer(pool.Asset, caller, e.addr, amount); err != nil {
			return err
		}
		stake.Staked = new(big.Int).Add(stake.Staked, amount)
		pool.TotalStaked = new(big.Int).Add(pool.TotalStaked, amount)
	}
	if err := e.persist(pid, caller, pool, stake); err != nil {
		return err
	}
	e.emit(StakeEvent(EventTypeDeposited, e.addr, caller, pid, amount, stake.Staked))
	return nil
}

// Withdraw returns amount of staked asset to caller. Rewards stay pending.
func (e *Engine) Withdraw(caller common.Address, pid uint64, amount *big.Int) error {
	return e.withdraw("withdraw", caller, []uint64{pid}, []*big.Int{amount})
}

// MultiWithdraw withdraws amounts[i] from pids[i].
func (e *Engine) MultiWithdraw(caller common.Address, pids []uint64, amounts []*big.Int) error {
	return e.withdraw("multiWithdraw", caller, pids, amounts)
}

func (e *Engine) withdraw(op string, caller common.Address, pids []uint64, amounts []*big.Int) error {
	if len(pids) != len(amounts) {
		return ErrLengthMismatch
	}
	if e.book == nil {
		return errNilBook
	}
	if _, err := e.guard(op); err != nil {
		return err
	}
	for i, pid := range pids {
		amount := amounts[i]
		if !validAmount(amount) {
			return ErrInvalidAmount
		}
		_, pool, stake, err := e.position(op, pid, caller)
		if err != nil {
			return err
		}
		if amount.Cmp(stake.Staked) > 0 {
			return ErrWithdrawExceeds
		}
		if amount.Sign() > 0 {
			stake.Staked = new(big.Int).Sub(stake.Staked, amount)
			pool.TotalStaked = new(big.Int).Sub(pool.TotalStaked, amount)
			if err := e.book.Transfer(pool.Asset, e.addr, caller, amount); err != nil {
				return err
			}
		}
		if err := e.persist(pid, caller, pool, stake); err != nil {
			return err
		}
		e.emit(StakeEvent(EventTypeWithdrawn, e.addr, caller, pid, amount, stake.Staked))
	}
	return nil
}

// Claim hands the caller's pending reward in pid to the vesting ledger.
func (e *Engine) Claim(caller common.Address, pid uint64, lock bool) (*big.Int, error) {
	return e.claim("claim", caller, []uint64{pid}, lock)
}

// MultiClaim collects pending rewards across pids into a single vesting
// deposit.
func (e *Engine) MultiClaim(caller common.Address, pids []uint64, lock bool) (*big.Int, error) {
	return e.claim("multiClaim", caller, pids, lock)
}

func (e *Engine) claim(op string, caller common.Address, pids []uint64, lock bool) (*big.Int, error) {
	if e.vester == nil {
		return nil, errNilVester
	}
	if _, err := e.guard(op); err != nil {
		return nil, err
	}
	total := big.NewInt(0)
	for _, pid := range pids {
		_, pool, stake, err := e.position(op, pid, caller)
		if err != nil {
			return nil, err
		}
		total.Add(total, stake.Pending)
		stake.Pending = big.NewInt(0)
		if err := e.persist(pid, caller, pool, stake); err != nil {
			return nil, err
		}
	}
	if total.Sign() > 0 {
		if err := e.vester.Deposit(e.addr, caller, total, lock); err != nil {
			return nil, err
		}
	}
	e.emit(ClaimedEvent(e.addr, caller, pids, total, lock))
	return total, nil
}

// WithdrawAndClaim withdraws amount and claims everything pending in pid.
func (e *Engine) WithdrawAndClaim(caller common.Address, pid uint64, amount *big.Int, lock bool) (*big.Int, error) {
	return e.withdrawAndClaim("withdrawAndClaim", caller, []uint64{pid}, []*big.Int{amount}, lock)
}

// MultiWithdrawAndClaim is MultiWithdraw followed by MultiClaim over the same
// pools.
func (e *Engine) MultiWithdrawAndClaim(caller common.Address, pids []uint64, amounts []*big.Int, lock bool) (*big.Int, error) {
	return e.withdrawAndClaim("multiWithdrawAndClaim", caller, pids, amounts, lock)
}

func (e *Engine) withdrawAndClaim(op string, caller common.Address, pids []uint64, amounts []*big.Int, lock bool) (*big.Int, error) {
	if err := e.withdraw(op, caller, pids, amounts); err != nil {
		return nil, err
	}
	return e.claim(op, caller, pids, lock)
}

// EmergencyWithdraw returns the whole stake and forfeits pending rewards. It
// remains available while the engine is paused.
func (e *Engine) EmergencyWithdraw(caller common.Address, pid uint64) (*big.Int, error) {
	if e.book == nil {
		return nil, errNilBook
	}
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	pool, err := e.loadActivePool("emergencyWithdraw", params, pid)
	if err != nil {
		return nil, err
	}
	stake, err := e.loadStake(pid, caller)
	if err != nil {
		return nil, err
	}
	accrue(params, pool, e.block())
	amount := new(big.Int).Set(stake.Staked)
	pool.TotalStaked = new(big.Int).Sub(pool.TotalStaked, amount)
	if amount.Sign() > 0 {
		if err := e.book.Transfer(pool.Asset, e.addr, caller, amount); err != nil {
			return nil, err
		}
	}
	if err := e.putPool(pid, pool); err != nil {
		return nil, err
	}
	if err := e.state.StakingUserPut(e.addr, pid, caller, emptyStake()); err != nil {
		return nil, err
	}
	e.emit(StakeEvent(EventTypeEmergencyWithdraw, e.addr, caller, pid, amount, big.NewInt(0)))
	return amount, nil
}
