package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"groledger/native/vesting"
)

type storedVestingAccount struct {
	Total     *big.Int
	StartTime uint64
	Withdrawn *big.Int
}

type storedVestingAggregate struct {
	TotalPrincipal *big.Int
	StartTime      uint64
}

type storedVestingParams struct {
	Owner             common.Address
	Timelock          common.Address
	MaxLockPeriod     uint64
	InitUnlockedBps   uint64
	InstantUnlockBps  uint64
	AggregateMigrated bool
}

func (m *Manager) VestingAccountGet(ledger, account common.Address) (*vesting.Account, bool, error) {
	var stored storedVestingAccount
	ok, err := m.KVGet(vestingAccountKey(ledger, account), &stored)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &vesting.Account{
		Total:     nonNil(stored.Total),
		StartTime: stored.StartTime,
		Withdrawn: nonNil(stored.Withdrawn),
	}, true, nil
}

func (m *Manager) VestingAccountPut(ledger, account common.Address, acct *vesting.Account) error {
	if acct == nil {
		return m.KVDelete(vestingAccountKey(ledger, account))
	}
	return m.KVPut(vestingAccountKey(ledger, account), storedVestingAccount{
		Total:     nonNil(acct.Total),
		StartTime: acct.StartTime,
		Withdrawn: nonNil(acct.Withdrawn),
	})
}

func (m *Manager) VestingAggregateGet(ledger common.Address) (*vesting.Aggregate, bool, error) {
	var stored storedVestingAggregate
	ok, err := m.KVGet(vestingAggregateKey(ledger), &stored)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &vesting.Aggregate{TotalPrincipal: nonNil(stored.TotalPrincipal), StartTime: stored.StartTime}, true, nil
}

func (m *Manager) VestingAggregatePut(ledger common.Address, agg *vesting.Aggregate) error {
	return m.KVPut(vestingAggregateKey(ledger), storedVestingAggregate{
		TotalPrincipal: nonNil(agg.TotalPrincipal),
		StartTime:      agg.StartTime,
	})
}

func (m *Manager) VestingParamsGet(ledger common.Address) (*vesting.Params, bool, error) {
	var stored storedVestingParams
	ok, err := m.KVGet(vestingParamsKey(ledger), &stored)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &vesting.Params{
		Owner:             stored.Owner,
		Timelock:          stored.Timelock,
		MaxLockPeriod:     stored.MaxLockPeriod,
		InitUnlockedBps:   stored.InitUnlockedBps,
		InstantUnlockBps:  stored.InstantUnlockBps,
		AggregateMigrated: stored.AggregateMigrated,
	}, true, nil
}

func (m *Manager) VestingParamsPut(ledger common.Address, params *vesting.Params) error {
	return m.KVPut(vestingParamsKey(ledger), storedVestingParams{
		Owner:             params.Owner,
		Timelock:          params.Timelock,
		MaxLockPeriod:     params.MaxLockPeriod,
		InitUnlockedBps:   params.InitUnlockedBps,
		InstantUnlockBps:  params.InstantUnlockBps,
		AggregateMigrated: params.AggregateMigrated,
	})
}

func (m *Manager) VestingVesterGet(ledger, vester common.Address) (bool, error) {
	var allowed bool
	ok, err := m.KVGet(vestingVesterKey(ledger, vester), &allowed)
	if err != nil || !ok {
		return false, err
	}
	return allowed, nil
}

func (m *Manager) VestingVesterPut(ledger, vester common.Address, allowed bool) error {
	if !allowed {
		return m.KVDelete(vestingVesterKey(ledger, vester))
	}
	return m.KVPut(vestingVesterKey(ledger, vester), true)
}

func nonNil(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}
