package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"groledger/native/staking"
)

type storedStakingParams struct {
	Owner             common.Address
	Manager           common.Address
	Timelock          common.Address
	RewardPerBlock    *big.Int
	MaxRewardPerBlock *big.Int
	TotalWeight       uint64
	PoolCount         uint64
	Bootstrapped      bool
}

type storedStakingPool struct {
	Asset             string
	Weight            uint64
	AccRewardPerShare *big.Int
	LastUpdateBlock   uint64
	TotalStaked       *big.Int
	Active            bool
	Migrated          bool
}

type storedUserStake struct {
	Staked     *big.Int
	RewardDebt *big.Int
	Pending    *big.Int
}

func (m *Manager) StakingParamsGet(engine common.Address) (*staking.Params, bool, error) {
	var stored storedStakingParams
	ok, err := m.KVGet(stakingParamsKey(engine), &stored)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &staking.Params{
		Owner:             stored.Owner,
		Manager:           stored.Manager,
		Timelock:          stored.Timelock,
		RewardPerBlock:    nonNil(stored.RewardPerBlock),
		MaxRewardPerBlock: nonNil(stored.MaxRewardPerBlock),
		TotalWeight:       stored.TotalWeight,
		PoolCount:         stored.PoolCount,
		Bootstrapped:      stored.Bootstrapped,
	}, true, nil
}

func (m *Manager) StakingParamsPut(engine common.Address, params *staking.Params) error {
	return m.KVPut(stakingParamsKey(engine), storedStakingParams{
		Owner:             params.Owner,
		Manager:           params.Manager,
		Timelock:          params.Timelock,
		RewardPerBlock:    nonNil(params.RewardPerBlock),
		MaxRewardPerBlock: nonNil(params.MaxRewardPerBlock),
		TotalWeight:       params.TotalWeight,
		PoolCount:         params.PoolCount,
		Bootstrapped:      params.Bootstrapped,
	})
}

func (m *Manager) StakingPoolGet(engine common.Address, pid uint64) (*staking.Pool, bool, error) {
	var stored storedStakingPool
	ok, err := m.KVGet(stakingPoolKey(engine, pid), &stored)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &staking.Pool{
		Asset:             stored.Asset,
		Weight:            stored.Weight,
		AccRewardPerShare: nonNil(stored.AccRewardPerShare),
		LastUpdateBlock:   stored.LastUpdateBlock,
		TotalStaked:       nonNil(stored.TotalStaked),
		Active:            stored.Active,
		Migrated:          stored.Migrated,
	}, true, nil
}

func (m *Manager) StakingPoolPut(engine common.Address, pid uint64, pool *staking.Pool) error {
	return m.KVPut(stakingPoolKey(engine, pid), storedStakingPool{
		Asset:             pool.Asset,
		Weight:            pool.Weight,
		AccRewardPerShare: nonNil(pool.AccRewardPerShare),
		LastUpdateBlock:   pool.LastUpdateBlock,
		TotalStaked:       nonNil(pool.TotalStaked),
		Active:            pool.Active,
		Migrated:          pool.Migrated,
	})
}

func (m *Manager) StakingAssetIndexGet(engine common.Address, asset string) (uint64, bool, error) {
	var pid uint64
	ok, err := m.KVGet(stakingAssetKey(engine, asset), &pid)
	return pid, ok, err
}

func (m *Manager) StakingAssetIndexPut(engine common.Address, asset string, pid uint64) error {
	return m.KVPut(stakingAssetKey(engine, asset), pid)
}

func (m *Manager) StakingUserGet(engine common.Address, pid uint64, account common.Address) (*staking.UserStake, bool, error) {
	var stored storedUserStake
	ok, err := m.KVGet(stakingUserKey(engine, pid, account), &stored)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &staking.UserStake{
		Staked:     nonNil(stored.Staked),
		RewardDebt: nonNil(stored.RewardDebt),
		Pending:    nonNil(stored.Pending),
	}, true, nil
}

func (m *Manager) StakingUserPut(engine common.Address, pid uint64, account common.Address, stake *staking.UserStake) error {
	return m.KVPut(stakingUserKey(engine, pid, account), storedUserStake{
		Staked:     nonNil(stake.Staked),
		RewardDebt: nonNil(stake.RewardDebt),
		Pending:    nonNil(stake.Pending),
	})
}

func (m *Manager) StakingUserMigratedGet(engine common.Address, pid uint64, account common.Address) (bool, error) {
	var done bool
	if _, err := m.KVGet(stakingMigratedKey(engine, pid, account), &done); err != nil {
		return false, err
	}
	return done, nil
}

func (m *Manager) StakingUserMigratedPut(engine common.Address, pid uint64, account common.Address) error {
	return m.KVPut(stakingMigratedKey(engine, pid, account), true)
}
