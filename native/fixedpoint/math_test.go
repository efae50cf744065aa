package fixedpoint

import (
	"errors"
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"

	nativecommon "groledger/native/common"
)

func TestMulDiv(t *testing.T) {
	got, err := MulDiv(big.NewInt(7), big.NewInt(3), big.NewInt(2))
	if err != nil {
		t.Fatalf("muldiv: %v", err)
	}
	if got.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("unexpected result: got %s want 10", got)
	}
	if _, err := MulDiv(big.NewInt(1), big.NewInt(1), big.NewInt(0)); !errors.Is(err, nativecommon.ErrArithmeticGuard) {
		t.Fatalf("expected arithmetic guard, got %v", err)
	}
}

func TestBps(t *testing.T) {
	if got := Bps(big.NewInt(12345), 3000); got.Cmp(big.NewInt(3703)) != 0 {
		t.Fatalf("unexpected bps: got %s want 3703", got)
	}
	if got := Bps(big.NewInt(12345), PercentBase); got.Cmp(big.NewInt(12345)) != 0 {
		t.Fatalf("full bps should be identity: got %s", got)
	}
}

func TestWeightedTimestamp(t *testing.T) {
	if got := WeightedTimestamp(100, big.NewInt(1), 200, big.NewInt(1)); got != 150 {
		t.Fatalf("unexpected merge: got %d want 150", got)
	}
	if got := WeightedTimestamp(100, big.NewInt(0), 200, big.NewInt(5)); got != 200 {
		t.Fatalf("empty position should adopt now: got %d", got)
	}
	if got := WeightedTimestamp(100, big.NewInt(0), 200, big.NewInt(0)); got != 200 {
		t.Fatalf("zero weights should return now: got %d", got)
	}
	// (3*100 + 1*200)/4 = 125
	if got := WeightedTimestamp(100, big.NewInt(3), 200, big.NewInt(1)); got != 125 {
		t.Fatalf("unexpected weighted merge: got %d want 125", got)
	}
}

func TestDecayAndAccrualPartition(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 500; i++ {
		var raw uint64
		var start, delta, period uint32
		f.Fuzz(&raw)
		f.Fuzz(&start)
		f.Fuzz(&delta)
		f.Fuzz(&period)
		if period == 0 {
			period = 1
		}
		total := new(big.Int).SetUint64(raw)
		now := uint64(start) + uint64(delta)

		decay := LinearDecay(total, uint64(start), now, uint64(period))
		accrual := LinearAccrual(total, uint64(start), now, uint64(period))
		sum := new(big.Int).Add(decay, accrual)
		if sum.Cmp(total) != 0 {
			t.Fatalf("partition broken: total %s decay %s accrual %s", total, decay, accrual)
		}
		if decay.Cmp(total) > 0 || accrual.Cmp(total) > 0 {
			t.Fatalf("component exceeds total: total %s decay %s accrual %s", total, decay, accrual)
		}
	}
}

func TestLinearDecayBounds(t *testing.T) {
	total := big.NewInt(1000)
	if got := LinearDecay(total, 100, 100, 1000); got.Cmp(total) != 0 {
		t.Fatalf("fresh position fully locked: got %s", got)
	}
	if got := LinearDecay(total, 100, 600, 1000); got.Cmp(big.NewInt(500)) != 0 {
		t.Fatalf("half way: got %s want 500", got)
	}
	if got := LinearDecay(total, 100, 5000, 1000); got.Sign() != 0 {
		t.Fatalf("matured position: got %s want 0", got)
	}
	if got := LinearAccrual(total, 100, 50, 1000); got.Sign() != 0 {
		t.Fatalf("accrual before start: got %s want 0", got)
	}
	if got := LinearDecay(total, 100, 50, 1000); got.Cmp(total) != 0 {
		t.Fatalf("decay before start: got %s want %s", got, total)
	}
}

func TestRemainingCappedAtPeriod(t *testing.T) {
	cases := []struct {
		start, now, period, want uint64
	}{
		{100, 100, 1000, 1000},
		{100, 600, 1000, 500},
		{100, 1100, 1000, 0},
		{100, 5000, 1000, 0},
		{5000, 100, 1000, 1000},
	}
	for _, tc := range cases {
		if got := Remaining(tc.start, tc.now, tc.period); got != tc.want {
			t.Fatalf("Remaining(%d, %d, %d): got %d want %d", tc.start, tc.now, tc.period, got, tc.want)
		}
	}
}
