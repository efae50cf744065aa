package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"groledger/native/fixedpoint"
)

// AccPrecision scales the reward-per-share accumulator.
var AccPrecision = big.NewInt(1_000_000_000_000)

// Pool is one stakeable asset and its reward accumulator.
type Pool struct {
	Asset             string   `json:"asset"`
	Weight            uint64   `json:"weight"`
	AccRewardPerShare *big.Int `json:"accRewardPerShare"`
	LastUpdateBlock   uint64   `json:"lastUpdateBlock"`
	TotalStaked       *big.Int `json:"totalStaked"`
	// Active is false once the pool has been frozen for migration.
	Active   bool `json:"active"`
	Migrated bool `json:"migrated"`
}

// Clone returns a deep copy of the pool.
func (p *Pool) Clone() *Pool {
	if p == nil {
		return nil
	}
	cp := *p
	cp.AccRewardPerShare = fixedpoint.Clone(p.AccRewardPerShare)
	cp.TotalStaked = fixedpoint.Clone(p.TotalStaked)
	return &cp
}

// UserStake is an account's position in one pool. RewardDebt is the
// accumulator value already credited to the stake; Pending holds settled
// rewards not yet claimed.
type UserStake struct {
	Staked     *big.Int `json:"staked"`
	RewardDebt *big.Int `json:"rewardDebt"`
	Pending    *big.Int `json:"pending"`
}

// Clone returns a deep copy of the stake.
func (u *UserStake) Clone() *UserStake {
	if u == nil {
		return nil
	}
	return &UserStake{
		Staked:     fixedpoint.Clone(u.Staked),
		RewardDebt: fixedpoint.Clone(u.RewardDebt),
		Pending:    fixedpoint.Clone(u.Pending),
	}
}

// Params is the engine configuration and pool table summary.
type Params struct {
	Owner             common.Address `json:"owner"`
	Manager           common.Address `json:"manager"`
	Timelock          common.Address `json:"timelock"`
	RewardPerBlock    *big.Int       `json:"rewardPerBlock"`
	MaxRewardPerBlock *big.Int       `json:"maxRewardPerBlock"`
	TotalWeight       uint64         `json:"totalWeight"`
	PoolCount         uint64         `json:"poolCount"`
	Bootstrapped      bool           `json:"bootstrapped"`
}

// Clone returns a deep copy of the params.
func (p *Params) Clone() *Params {
	if p == nil {
		return nil
	}
	cp := *p
	cp.RewardPerBlock = fixedpoint.Clone(p.RewardPerBlock)
	cp.MaxRewardPerBlock = fixedpoint.Clone(p.MaxRewardPerBlock)
	return &cp
}

func emptyStake() *UserStake {
	return &UserStake{Staked: big.NewInt(0), RewardDebt: big.NewInt(0), Pending: big.NewInt(0)}
}

func ensureStake(u *UserStake) *UserStake {
	if u == nil {
		return emptyStake()
	}
	if u.Staked == nil {
		u.Staked = big.NewInt(0)
	}
	if u.RewardDebt == nil {
		u.RewardDebt = big.NewInt(0)
	}
	if u.Pending == nil {
		u.Pending = big.NewInt(0)
	}
	return u
}

func ensurePool(p *Pool) *Pool {
	if p.AccRewardPerShare == nil {
		p.AccRewardPerShare = big.NewInt(0)
	}
	if p.TotalStaked == nil {
		p.TotalStaked = big.NewInt(0)
	}
	return p
}

func ensureParams(p *Params) *Params {
	if p.RewardPerBlock == nil {
		p.RewardPerBlock = big.NewInt(0)
	}
	if p.MaxRewardPerBlock == nil {
		p.MaxRewardPerBlock = big.NewInt(0)
	}
	return p
}
