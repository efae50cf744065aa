// Package fixedpoint holds the integer arithmetic shared by the vesting,
// staking and bonus engines. Every helper truncates toward zero exactly once,
// at the final division.
package fixedpoint

import (
	"math/big"

	nativecommon "groledger/native/common"
)

// PercentBase is the basis point denominator.
const PercentBase = 10_000

var (
	percentBase = big.NewInt(PercentBase)

	ErrDivByZero = nativecommon.New(nativecommon.KindArithmeticGuard, "math: division by zero")
	ErrNegative  = nativecommon.New(nativecommon.KindArithmeticGuard, "math: negative operand")
)

// MustBigInt parses a base-10 constant, panicking on malformed input.
func MustBigInt(value string) *big.Int {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		panic("invalid big integer constant")
	}
	return v
}

// Clone returns a copy of v, treating nil as zero.
func Clone(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

// MulDiv computes floor(a*b/d).
func MulDiv(a, b, d *big.Int) (*big.Int, error) {
	if d == nil || d.Sign() == 0 {
		return nil, ErrDivByZero
	}
	if a == nil || b == nil {
		return big.NewInt(0), nil
	}
	product := new(big.Int).Mul(a, b)
	return product.Quo(product, d), nil
}

// Bps computes floor(a*bps/10000).
func Bps(a *big.Int, bps uint64) *big.Int {
	if a == nil || bps == 0 {
		return big.NewInt(0)
	}
	product := new(big.Int).Mul(a, new(big.Int).SetUint64(bps))
	return product.Quo(product, percentBase)
}

// Max returns the larger of a and b.
func Max(a, b *big.Int) *big.Int {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}
