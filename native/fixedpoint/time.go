package fixedpoint

import "math/big"

// WeightedTimestamp merges a position that started at t with weight a and
// new weight b arriving at now: floor((a*t + b*now)/(a+b)). When both
// weights are zero the result is now.
func WeightedTimestamp(t uint64, a *big.Int, now uint64, b *big.Int) uint64 {
	weight := new(big.Int)
	if a != nil {
		weight.Add(weight, a)
	}
	if b != nil {
		weight.Add(weight, b)
	}
	if weight.Sign() <= 0 {
		return now
	}
	acc := new(big.Int)
	if a != nil {
		acc.Mul(a, new(big.Int).SetUint64(t))
	}
	if b != nil {
		acc.Add(acc, new(big.Int).Mul(b, new(big.Int).SetUint64(now)))
	}
	acc.Quo(acc, weight)
	return acc.Uint64()
}

// Remaining returns max(0, start+period-now), capped at period when now is
// before start.
func Remaining(start, now, period uint64) uint64 {
	end := start + period
	if now >= end {
		return 0
	}
	if now < start {
		return period
	}
	return end - now
}

// LinearDecay computes total*max(0, start+period-now)/period. A zero period
// is treated as already elapsed.
func LinearDecay(total *big.Int, start, now, period uint64) *big.Int {
	if total == nil || total.Sign() == 0 || period == 0 {
		return big.NewInt(0)
	}
	out := new(big.Int).Mul(total, new(big.Int).SetUint64(Remaining(start, now, period)))
	return out.Quo(out, new(big.Int).SetUint64(period))
}

// LinearAccrual is the complement of LinearDecay: total minus the still
// decaying part, zero before start. The two always partition total.
func LinearAccrual(total *big.Int, start, now, period uint64) *big.Int {
	if total == nil || total.Sign() == 0 || now < start {
		return big.NewInt(0)
	}
	return new(big.Int).Sub(total, LinearDecay(total, start, now, period))
}
