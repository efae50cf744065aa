package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	nativecommon "groledger/native/common"
)

// Migrate freezes the listed pools and hands their accumulators and staked
// assets to the successor engine. When a migrator is configured the staked
// asset is converted on the way.
func (e *Engine) Migrate(caller common.Address, pids []uint64) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Timelock, ErrMigrateNotTimelock); err != nil {
		return err
	}
	if e.successor == nil {
		return ErrNoSuccessor
	}
	if e.book == nil {
		return errNilBook
	}
	to := e.successor.Address()
	block := e.block()
	for _, pid := range pids {
		pool, err := e.loadPool("migrate", params, pid)
		if err != nil {
			return err
		}
		if pool.Migrated {
			return ErrPoolMigrated
		}
		if params.TotalWeight > 0 {
			accrue(params, pool, block)
		}
		snapshot := pool.Clone()
		if err := e.moveStake(pool.TotalStaked, pool.Asset, to, snapshot); err != nil {
			return err
		}
		if err := e.successor.MigrateFrom(e.addr, pid, snapshot); err != nil {
			return err
		}
		params.TotalWeight -= pool.Weight
		pool.Weight = 0
		pool.Active = false
		pool.Migrated = true
		if err := e.putPool(pid, pool); err != nil {
			return err
		}
		if err := e.putParams(params); err != nil {
			return err
		}
		e.emit(PoolMigratedEvent(e.addr, to, pid, pool.Asset, snapshot.Asset, snapshot.TotalStaked))
	}
	return nil
}

// moveStake transfers the staked balance to the successor and records the
// asset it arrives as on the snapshot.
func (e *Engine) moveStake(amount *big.Int, asset string, to common.Address, snapshot *Pool) error {
	if e.migrator == nil {
		if amount.Sign() == 0 {
			return nil
		}
		return e.book.Transfer(asset, e.addr, to, amount)
	}
	target, err := e.migrator.Target(asset)
	if err != nil {
		return err
	}
	moved, err := e.migrator.Migrate(e.addr, to, asset, target, amount)
	if err != nil {
		return err
	}
	if moved == nil || moved.Cmp(amount) != 0 {
		return ErrMigrationMismatch
	}
	snapshot.Asset = target
	return nil
}

// MigrateFrom receives a pool from the predecessor. A pool created during
// bootstrap keeps its weight, takes over the accumulator and stake, and opens
// for deposits.
func (e *Engine) MigrateFrom(caller common.Address, pid uint64, pool *Pool) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if e.previous == nil || caller != e.previous.Address() {
		return ErrNotPredecessor
	}
	if pool == nil {
		return ErrInvalidAsset
	}
	incoming := ensurePool(pool.Clone())
	if pid < params.PoolCount {
		current, err := e.loadPool("migrateFrom", params, pid)
		if err != nil {
			return err
		}
		if current.TotalStaked.Sign() != 0 {
			return ErrPoolInUse
		}
		if current.Asset != incoming.Asset {
			if idx, ok, err := e.state.StakingAssetIndexGet(e.addr, incoming.Asset); err != nil {
				return err
			} else if ok && idx != pid {
				return ErrDuplicateAsset
			}
			if err := e.state.StakingAssetIndexPut(e.addr, incoming.Asset, pid); err != nil {
				return err
			}
		}
		current.Asset = incoming.Asset
		current.AccRewardPerShare = incoming.AccRewardPerShare
		current.LastUpdateBlock = incoming.LastUpdateBlock
		current.TotalStaked = incoming.TotalStaked
		current.Active = true
		if err := e.putPool(pid, current); err != nil {
			return err
		}
		e.emit(PoolReceivedEvent(e.addr, caller, pid, current))
		return nil
	}
	if pid != params.PoolCount {
		return ErrPoolOutOfOrder
	}
	if _, ok, err := e.state.StakingAssetIndexGet(e.addr, incoming.Asset); err != nil {
		return err
	} else if ok {
		return ErrDuplicateAsset
	}
	incoming.Active = true
	incoming.Migrated = false
	params.PoolCount++
	params.TotalWeight += incoming.Weight
	if err := e.putPool(pid, incoming); err != nil {
		return err
	}
	if err := e.state.StakingAssetIndexPut(e.addr, incoming.Asset, pid); err != nil {
		return err
	}
	if err := e.putParams(params); err != nil {
		return err
	}
	e.emit(PoolReceivedEvent(e.addr, caller, pid, incoming))
	return nil
}

// MigrateUser pulls account's stake and unsettled rewards in pids from the
// predecessor. Anyone may trigger it; each (pid, account) moves once.
func (e *Engine) MigrateUser(account common.Address, pids []uint64) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if e.previous == nil {
		return ErrNoPredecessor
	}
	from := e.previous.Address()
	block := e.block()
	for _, pid := range pids {
		done, err := e.state.StakingUserMigratedGet(e.addr, pid, account)
		if err != nil {
			return err
		}
		if done {
			return ErrUserMigrated
		}
		old, err := e.previous.PoolInfo(pid)
		if err != nil {
			return err
		}
		if old == nil || !old.Migrated {
			return ErrPoolNotMigrated
		}
		oldStake, err := e.previous.UserInfo(pid, account)
		if err != nil {
			return err
		}
		oldStake = ensureStake(oldStake.Clone())
		pool, err := e.loadPool("migrateUser", params, pid)
		if err != nil {
			return err
		}
		stake, err := e.loadStake(pid, account)
		if err != nil {
			return err
		}
		accrue(params, pool, block)
		settle(pool, stake)
		// The accumulator carries over, so the old stake keeps earning until it
		// is claimed here.
		carried := new(big.Int).Add(oldStake.Pending, earned(pool, oldStake))
		stake.Pending = new(big.Int).Add(stake.Pending, carried)
		stake.Staked = new(big.Int).Add(stake.Staked, oldStake.Staked)
		if err := e.persist(pid, account, pool, stake); err != nil {
			return err
		}
		if err := e.state.StakingUserMigratedPut(e.addr, pid, account); err != nil {
			return err
		}
		e.emit(UserMigratedEvent(e.addr, from, account, pid, oldStake.Staked))
	}
	return nil
}

// MigrateFromPrevious copies the emission rate and pool table from the
// predecessor once. Copied pools start empty and frozen; they receive their
// stake and open through Migrate on the old engine.
func (e *Engine) MigrateFromPrevious(caller common.Address) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Owner, ErrNotOwner); err != nil {
		return err
	}
	if params.Bootstrapped {
		return ErrAlreadyBootstrapped
	}
	if e.previous == nil {
		return ErrBootstrapNoPrev
	}
	if params.PoolCount != 0 {
		return ErrBootstrapPools
	}
	prev, err := e.previous.Params()
	if err != nil {
		return err
	}
	prev = ensureParams(prev.Clone())
	count, err := e.previous.PoolLength()
	if err != nil {
		return err
	}
	params.RewardPerBlock = prev.RewardPerBlock
	params.MaxRewardPerBlock = prev.MaxRewardPerBlock
	for pid := uint64(0); pid < count; pid++ {
		old, err := e.previous.PoolInfo(pid)
		if err != nil {
			return err
		}
		old = ensurePool(old.Clone())
		pool := &Pool{
			Asset:             old.Asset,
			Weight:            old.Weight,
			AccRewardPerShare: old.AccRewardPerShare,
			LastUpdateBlock:   old.LastUpdateBlock,
			TotalStaked:       big.NewInt(0),
		}
		if err := e.putPool(pid, pool); err != nil {
			return err
		}
		if err := e.state.StakingAssetIndexPut(e.addr, pool.Asset, pid); err != nil {
			return err
		}
		params.TotalWeight += pool.Weight
	}
	params.PoolCount = count
	params.Bootstrapped = true
	if err := e.putParams(params); err != nil {
		return err
	}
	e.emit(BootstrappedEvent(e.addr, e.previous.Address(), count))
	return nil
}
