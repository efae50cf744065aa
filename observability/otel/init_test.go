package otel

import (
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" Authorization = Bearer abc ,bad,=x,team=ledger")
	if len(got) != 2 || got["Authorization"] != "Bearer abc" || got["team"] != "ledger" {
		t.Fatalf("unexpected headers: %v", got)
	}
}

func TestInitDisabledIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{ServiceName: "groledgerd"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if _, err := Init(context.Background(), Config{}); err == nil {
		t.Fatalf("expected service name error")
	}
}

func TestResourceLabelsLedgerDeployment(t *testing.T) {
	res, err := Resource(Config{
		ServiceName: "groledgerd",
		Environment: "testnet",
		Ledger: Ledger{
			Storage: "bolt",
			Modules: map[string]string{"staking": "0x02", "vesting": "0x01"},
		},
	})
	if err != nil {
		t.Fatalf("resource: %v", err)
	}
	want := map[string]string{
		"service.name":           "groledgerd",
		"service.namespace":      "groledger",
		"deployment.environment": "testnet",
		"ledger.storage":         "bolt",
		"ledger.module.staking":  "0x02",
		"ledger.module.vesting":  "0x01",
	}
	set := res.Set()
	for key, value := range want {
		got, ok := set.Value(attribute.Key(key))
		if !ok || got.AsString() != value {
			t.Fatalf("%s = %q (present %v), want %q", key, got.AsString(), ok, value)
		}
	}
	if _, ok := set.Value("ledger.module.bonus"); ok {
		t.Fatalf("unexpected bonus module attribute")
	}
}

func TestSamplerRatioBounds(t *testing.T) {
	for _, ratio := range []float64{0, -1, 1, 2} {
		if got := Sampler(ratio).Description(); !strings.HasPrefix(got, "ParentBased{root:AlwaysOnSampler") {
			t.Fatalf("ratio %v: sampler %s", ratio, got)
		}
	}
	if got := Sampler(0.25).Description(); !strings.HasPrefix(got, "ParentBased{root:TraceIDRatioBased{0.25}") {
		t.Fatalf("ratio sampler %s", got)
	}
}
