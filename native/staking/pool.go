package staking

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	nativecommon "groledger/native/common"
)

// accrue advances the pool accumulator to block. Rewards only accrue while
// the pool holds stake and carries weight; the update block always moves.
func accrue(params *Params, pool *Pool, block uint64) {
	if block <= pool.LastUpdateBlock {
		return
	}
	if pool.TotalStaked.Sign() > 0 && pool.Weight > 0 && params.TotalWeight > 0 {
		blocks := new(big.Int).SetUint64(block - pool.LastUpdateBlock)
		num := new(big.Int).Mul(blocks, params.RewardPerBlock)
		num.Mul(num, new(big.Int).SetUint64(pool.Weight))
		num.Mul(num, AccPrecision)
		den := new(big.Int).Mul(new(big.Int).SetUint64(params.TotalWeight), pool.TotalStaked)
		pool.AccRewardPerShare = new(big.Int).Add(pool.AccRewardPerShare, num.Quo(num, den))
	}
	pool.LastUpdateBlock = block
}

// earned is the reward the stake has accumulated since its debt was last set.
func earned(pool *Pool, stake *UserStake) *big.Int {
	owed := new(big.Int).Mul(stake.Staked, pool.AccRewardPerShare)
	owed.Quo(owed, AccPrecision)
	owed.Sub(owed, stake.RewardDebt)
	if owed.Sign() < 0 {
		return big.NewInt(0)
	}
	return owed
}

// settle moves earned rewards into Pending. Callers must reset the debt
// after adjusting the stake.
func settle(pool *Pool, stake *UserStake) {
	stake.Pending = new(big.Int).Add(stake.Pending, earned(pool, stake))
}

func resetDebt(pool *Pool, stake *UserStake) {
	debt := new(big.Int).Mul(stake.Staked, pool.AccRewardPerShare)
	stake.RewardDebt = debt.Quo(debt, AccPrecision)
}

func (e *Engine) massUpdate(params *Params) error {
	block := e.block()
	for pid := uint64(0); pid < params.PoolCount; pid++ {
		pool, err := e.loadPool("massUpdatePools", params, pid)
		if err != nil {
			return err
		}
		if block <= pool.LastUpdateBlock {
			continue
		}
		accrue(params, pool, block)
		if err := e.putPool(pid, pool); err != nil {
			return err
		}
	}
	return nil
}

// MassUpdatePools brings every pool accumulator up to the current block.
func (e *Engine) MassUpdatePools() error {
	params, err := e.params()
	if err != nil {
		return err
	}
	return e.massUpdate(params)
}

// UpdatePool brings one pool accumulator up to the current block.
func (e *Engine) UpdatePool(pid uint64) (*Pool, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	if params.TotalWeight == 0 {
		return nil, ErrTotalWeightZero
	}
	pool, err := e.loadPool("updatePool", params, pid)
	if err != nil {
		return nil, err
	}
	accrue(params, pool, e.block())
	if err := e.putPool(pid, pool); err != nil {
		return nil, err
	}
	return pool.Clone(), nil
}

// AddPool registers a new stakeable asset with the given weight.
func (e *Engine) AddPool(caller common.Address, asset string, weight uint64) (uint64, error) {
	params, err := e.params()
	if err != nil {
		return 0, err
	}
	if err := nativecommon.RequireRole(caller, params.Manager, ErrAddNotManager); err != nil {
		return 0, err
	}
	asset = strings.TrimSpace(asset)
	if asset == "" {
		return 0, ErrInvalidAsset
	}
	if _, ok, err := e.state.StakingAssetIndexGet(e.addr, asset); err != nil {
		return 0, err
	} else if ok {
		return 0, ErrDuplicateAsset
	}
	if err := e.massUpdate(params); err != nil {
		return 0, err
	}
	pid := params.PoolCount
	pool := &Pool{
		Asset:             asset,
		Weight:            weight,
		AccRewardPerShare: big.NewInt(0),
		LastUpdateBlock:   e.block(),
		TotalStaked:       big.NewInt(0),
		Active:            true,
	}
	params.PoolCount++
	params.TotalWeight += weight
	if err := e.putPool(pid, pool); err != nil {
		return 0, err
	}
	if err := e.state.StakingAssetIndexPut(e.addr, asset, pid); err != nil {
		return 0, err
	}
	if err := e.putParams(params); err != nil {
		return 0, err
	}
	e.emit(PoolAddedEvent(e.addr, pid, asset, weight))
	return pid, nil
}

// SetPool changes the weight of an active pool.
func (e *Engine) SetPool(caller common.Address, pid uint64, weight uint64) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Manager, ErrSetNotManager); err != nil {
		return err
	}
	if _, err := e.loadActivePool("set", params, pid); err != nil {
		return err
	}
	if err := e.massUpdate(params); err != nil {
		return err
	}
	pool, err := e.loadPool("set", params, pid)
	if err != nil {
		return err
	}
	params.TotalWeight = params.TotalWeight - pool.Weight + weight
	pool.Weight = weight
	if err := e.putPool(pid, pool); err != nil {
		return err
	}
	if err := e.putParams(params); err != nil {
		return err
	}
	e.emit(PoolWeightSetEvent(e.addr, pid, weight, params.TotalWeight))
	return nil
}

// SetRewardPerBlock changes the emission rate after settling every pool at
// the old rate.
func (e *Engine) SetRewardPerBlock(caller common.Address, rate *big.Int) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Manager, ErrRateNotManager); err != nil {
		return err
	}
	if rate == nil || rate.Sign() < 0 {
		return ErrInvalidAmount
	}
	if rate.Cmp(params.MaxRewardPerBlock) > 0 {
		return ErrRateTooHigh
	}
	if err := e.massUpdate(params); err != nil {
		return err
	}
	params.RewardPerBlock = new(big.Int).Set(rate)
	if err := e.putParams(params); err != nil {
		return err
	}
	e.emit(RateUpdatedEvent(e.addr, rate))
	return nil
}

// Claimable projects the reward account could claim from pid at the current
// block without mutating state.
func (e *Engine) Claimable(pid uint64, account common.Address) (*big.Int, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	pool, err := e.loadPool("claimable", params, pid)
	if err != nil {
		return nil, err
	}
	stake, err := e.loadStake(pid, account)
	if err != nil {
		return nil, err
	}
	accrue(params, pool, e.block())
	return new(big.Int).Add(stake.Pending, earned(pool, stake)), nil
}

// PoolByAsset resolves the pool id registered for asset.
func (e *Engine) PoolByAsset(asset string) (uint64, bool, error) {
	if e.state == nil {
		return 0, false, errNilState
	}
	return e.state.StakingAssetIndexGet(e.addr, asset)
}
