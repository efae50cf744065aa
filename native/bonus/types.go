package bonus

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"groledger/native/fixedpoint"
)

// Params is the persisted pool state.
type Params struct {
	Owner      common.Address `json:"owner"`
	Maintainer common.Address `json:"maintainer"`
	TotalBonus *big.Int       `json:"totalBonus"`
	// Correction is a signed offset added to the aggregate vesting balance
	// before it is used as the pro-rata denominator.
	Correction *big.Int `json:"correction"`
	ClaimDelay uint64   `json:"claimDelay"`
}

// Clone returns a deep copy of the params.
func (p *Params) Clone() *Params {
	if p == nil {
		return nil
	}
	cp := *p
	cp.TotalBonus = fixedpoint.Clone(p.TotalBonus)
	cp.Correction = fixedpoint.Clone(p.Correction)
	return &cp
}

// Snapshot is what a successor pool inherits.
type Snapshot struct {
	TotalBonus *big.Int `json:"totalBonus"`
	Correction *big.Int `json:"correction"`
	ClaimDelay uint64   `json:"claimDelay"`
}
