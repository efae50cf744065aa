package metrics

import (
	"math/big"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"groledger/core/events"
	"groledger/native/bonus"
	"groledger/native/staking"
	"groledger/native/vesting"
)

// TokenomicsMetrics tracks token flows through the ledger in whole-token
// units (18 decimals).
type TokenomicsMetrics struct {
	flows     *prometheus.CounterVec
	exits     prometheus.Counter
	principal prometheus.Gauge
	bonusPool prometheus.Gauge
}

var (
	tokenomicsOnce     sync.Once
	tokenomicsRegistry *TokenomicsMetrics

	tokenUnit = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
)

func Tokenomics() *TokenomicsMetrics {
	tokenomicsOnce.Do(func() {
		tokenomicsRegistry = &TokenomicsMetrics{
			flows: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "groledger_token_flow_total",
				Help: "Tokens moved through the ledger by flow.",
			}, []string{"flow"}),
			exits: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "groledger_vesting_exits_total",
				Help: "Count of vesting exits.",
			}),
			principal: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "groledger_vesting_principal",
				Help: "Aggregate principal held by the vesting ledger.",
			}),
			bonusPool: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "groledger_bonus_pool",
				Help: "Undistributed balance of the bonus pool.",
			}),
		}
		prometheus.MustRegister(
			tokenomicsRegistry.flows,
			tokenomicsRegistry.exits,
			tokenomicsRegistry.principal,
			tokenomicsRegistry.bonusPool,
		)
	})
	return tokenomicsRegistry
}

func toTokens(raw string) float64 {
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return 0
	}
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(v), tokenUnit).Float64()
	return f
}

func (m *TokenomicsMetrics) addFlow(flow, raw string) {
	if amount := toTokens(raw); amount > 0 {
		m.flows.WithLabelValues(flow).Add(amount)
	}
}

// ObserveEvent folds a committed event into the flow counters. Events without
// a token flow are ignored.
func (m *TokenomicsMetrics) ObserveEvent(evt events.Event) {
	if m == nil {
		return
	}
	body := events.Body(evt)
	if body == nil {
		return
	}
	switch body.Type {
	case vesting.EventTypeDeposited:
		m.addFlow("vest_locked", body.Attr("amount"))
	case vesting.EventTypeInstantVested:
		m.addFlow("vest_instant_paid", body.Attr("paid"))
		m.addFlow("vest_instant_forfeited", body.Attr("forfeited"))
	case vesting.EventTypeExited:
		m.exits.Inc()
		m.addFlow("exit_unlocked", body.Attr("unlocked"))
		m.addFlow("exit_penalty", body.Attr("penalty"))
	case staking.EventTypeClaimed:
		m.addFlow("staking_reward", body.Attr("amount"))
	case bonus.EventTypeClaimed:
		m.addFlow("bonus_claimed", body.Attr("amount"))
	}
}

// SetTotals publishes the ledger principal and the bonus pool balance.
func (m *TokenomicsMetrics) SetTotals(principal, bonusPool *big.Int) {
	if m == nil {
		return
	}
	if principal != nil {
		m.principal.Set(toTokens(principal.String()))
	}
	if bonusPool != nil {
		m.bonusPool.Set(toTokens(bonusPool.String()))
	}
}
