package common

import (
	"errors"
	"math/big"
)

var (
	ErrQuotaExceeded     = errors.New("quota exceeded")
	ErrQuotaInvalidDelta = errors.New("quota delta must be positive")
)

// Allowance tracks how much of a fixed cap has been drawn.
type Allowance struct {
	Cap  *big.Int
	Used *big.Int
}

// Remaining returns cap minus used, floored at zero.
func (a Allowance) Remaining() *big.Int {
	capV := nonNil(a.Cap)
	used := nonNil(a.Used)
	out := new(big.Int).Sub(capV, used)
	if out.Sign() < 0 {
		return big.NewInt(0)
	}
	return out
}

// Draw verifies the additional amount fits within the cap. The returned
// allowance reflects the updated usage when the quota is not exceeded.
func Draw(a Allowance, add *big.Int) (Allowance, error) {
	if add == nil || add.Sign() <= 0 {
		return a, ErrQuotaInvalidDelta
	}
	next := new(big.Int).Add(nonNil(a.Used), add)
	if next.Cmp(nonNil(a.Cap)) > 0 {
		return a, ErrQuotaExceeded
	}
	return Allowance{Cap: new(big.Int).Set(nonNil(a.Cap)), Used: next}, nil
}

// Refill returns amount to the allowance by raising the cap.
func Refill(a Allowance, amount *big.Int) (Allowance, error) {
	if amount == nil || amount.Sign() <= 0 {
		return a, ErrQuotaInvalidDelta
	}
	return Allowance{
		Cap:  new(big.Int).Add(nonNil(a.Cap), amount),
		Used: new(big.Int).Set(nonNil(a.Used)),
	}, nil
}

func nonNil(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}
