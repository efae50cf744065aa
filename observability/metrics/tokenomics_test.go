package metrics

import (
	"math/big"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"groledger/core/types"
	"groledger/native/vesting"
)

func TestObserveExitFlows(t *testing.T) {
	m := Tokenomics()
	before := testutil.ToFloat64(m.flows.WithLabelValues("exit_penalty"))
	exits := testutil.ToFloat64(m.exits)

	evt := vesting.WrapEvent(&types.Event{
		Type: vesting.EventTypeExited,
		Attributes: map[string]string{
			"unlocked": "1500000000000000000",
			"penalty":  "500000000000000000",
		},
	})
	m.ObserveEvent(evt)

	if got := testutil.ToFloat64(m.flows.WithLabelValues("exit_penalty")) - before; got != 0.5 {
		t.Fatalf("penalty flow: got %v want 0.5", got)
	}
	if got := testutil.ToFloat64(m.exits) - exits; got != 1 {
		t.Fatalf("exits: got %v want 1", got)
	}
}

func TestSetTotals(t *testing.T) {
	m := Tokenomics()
	m.SetTotals(new(big.Int).Mul(big.NewInt(42), big.NewInt(1_000_000_000_000_000_000)), nil)
	if got := testutil.ToFloat64(m.principal); got != 42 {
		t.Fatalf("principal: got %v want 42", got)
	}
	var nilMetrics *TokenomicsMetrics
	nilMetrics.ObserveEvent(nil)
	nilMetrics.SetTotals(big.NewInt(1), big.NewInt(1))
}
