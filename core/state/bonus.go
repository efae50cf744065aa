package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"groledger/native/bonus"
)

// storedBonusParams keeps the signed correction as a sign flag and magnitude
// because RLP only encodes non-negative integers.
type storedBonusParams struct {
	Owner              common.Address
	Maintainer         common.Address
	TotalBonus         *big.Int
	CorrectionNegative bool
	Correction         *big.Int
	ClaimDelay         uint64
}

func (m *Manager) BonusParamsGet(pool common.Address) (*bonus.Params, bool, error) {
	var stored storedBonusParams
	ok, err := m.KVGet(bonusParamsKey(pool), &stored)
	if err != nil || !ok {
		return nil, ok, err
	}
	correction := nonNil(stored.Correction)
	if stored.CorrectionNegative {
		correction.Neg(correction)
	}
	return &bonus.Params{
		Owner:      stored.Owner,
		Maintainer: stored.Maintainer,
		TotalBonus: nonNil(stored.TotalBonus),
		Correction: correction,
		ClaimDelay: stored.ClaimDelay,
	}, true, nil
}

func (m *Manager) BonusParamsPut(pool common.Address, params *bonus.Params) error {
	correction := nonNil(params.Correction)
	negative := correction.Sign() < 0
	return m.KVPut(bonusParamsKey(pool), storedBonusParams{
		Owner:              params.Owner,
		Maintainer:         params.Maintainer,
		TotalBonus:         nonNil(params.TotalBonus),
		CorrectionNegative: negative,
		Correction:         correction.Abs(correction),
		ClaimDelay:         params.ClaimDelay,
	})
}

func (m *Manager) BonusLastClaimGet(pool, account common.Address) (uint64, error) {
	var ts uint64
	if _, err := m.KVGet(bonusLastClaimKey(pool, account), &ts); err != nil {
		return 0, err
	}
	return ts, nil
}

func (m *Manager) BonusLastClaimPut(pool, account common.Address, ts uint64) error {
	return m.KVPut(bonusLastClaimKey(pool, account), ts)
}
