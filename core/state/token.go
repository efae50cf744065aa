package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	nativecommon "groledger/native/common"
	"groledger/native/token"
)

type storedTokenParams struct {
	Owner       common.Address
	Distributer common.Address
	Cap         *big.Int
}

type storedQuota struct {
	Cap  *big.Int
	Used *big.Int
}

func (m *Manager) TokenParamsGet(addr common.Address) (*token.TokenParams, bool, error) {
	var stored storedTokenParams
	ok, err := m.KVGet(tokenParamsKey(addr), &stored)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &token.TokenParams{Owner: stored.Owner, Distributer: stored.Distributer, Cap: nonNil(stored.Cap)}, true, nil
}

func (m *Manager) TokenParamsPut(addr common.Address, params *token.TokenParams) error {
	return m.KVPut(tokenParamsKey(addr), storedTokenParams{
		Owner:       params.Owner,
		Distributer: params.Distributer,
		Cap:         nonNil(params.Cap),
	})
}

func (m *Manager) DistributerParamsGet(addr common.Address) (*token.DistributerParams, bool, error) {
	var params token.DistributerParams
	ok, err := m.KVGet(distributerParamsKey(addr), &params)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &params, true, nil
}

func (m *Manager) DistributerParamsPut(addr common.Address, params *token.DistributerParams) error {
	return m.KVPut(distributerParamsKey(addr), params)
}

func (m *Manager) DistributerQuotaGet(addr common.Address, category string) (nativecommon.Allowance, bool, error) {
	var stored storedQuota
	ok, err := m.KVGet(distributerQuotaKey(addr, category), &stored)
	if err != nil || !ok {
		return nativecommon.Allowance{Cap: big.NewInt(0), Used: big.NewInt(0)}, ok, err
	}
	return nativecommon.Allowance{Cap: nonNil(stored.Cap), Used: nonNil(stored.Used)}, true, nil
}

func (m *Manager) DistributerQuotaPut(addr common.Address, category string, quota nativecommon.Allowance) error {
	return m.KVPut(distributerQuotaKey(addr, category), storedQuota{Cap: nonNil(quota.Cap), Used: nonNil(quota.Used)})
}
