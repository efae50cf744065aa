package staking

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"groledger/core/events"
	"groledger/core/types"
)

const (
	EventTypePoolAdded         = "staking.pool.added"
	EventTypePoolWeightSet     = "staking.pool.weight"
	EventTypeDeposited         = "staking.deposited"
	EventTypeWithdrawn         = "staking.withdrawn"
	EventTypeClaimed           = "staking.claimed"
	EventTypeEmergencyWithdraw = "staking.emergencyWithdrawn"
	EventTypeRateUpdated       = "staking.rate.updated"
	EventTypeParamsUpdated     = "staking.params.updated"
	EventTypeStatusUpdated     = "staking.status.updated"
	EventTypePoolMigrated      = "staking.pool.migrated"
	EventTypePoolReceived      = "staking.pool.received"
	EventTypeUserMigrated      = "staking.user.migrated"
	EventTypeBootstrapped      = "staking.bootstrapped"
)

type eventEnvelope struct {
	evt *types.Event
}

func (e eventEnvelope) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e eventEnvelope) Event() *types.Event { return e.evt }

// WrapEvent converts a raw event payload into the emitter-friendly envelope.
func WrapEvent(evt *types.Event) events.Event { return eventEnvelope{evt: evt} }

func pidString(pid uint64) string { return strconv.FormatUint(pid, 10) }

func PoolAddedEvent(engine common.Address, pid uint64, asset string, weight uint64) *types.Event {
	return &types.Event{
		Type: EventTypePoolAdded,
		Attributes: map[string]string{
			"engine": engine.Hex(),
			"pid":    pidString(pid),
			"asset":  asset,
			"weight": strconv.FormatUint(weight, 10),
		},
	}
}

func PoolWeightSetEvent(engine common.Address, pid uint64, weight, totalWeight uint64) *types.Event {
	return &types.Event{
		Type: EventTypePoolWeightSet,
		Attributes: map[string]string{
			"engine":      engine.Hex(),
			"pid":         pidString(pid),
			"weight":      strconv.FormatUint(weight, 10),
			"totalWeight": strconv.FormatUint(totalWeight, 10),
		},
	}
}

// StakeEvent covers deposits, withdrawals and emergency withdrawals.
func StakeEvent(kind string, engine, account common.Address, pid uint64, amount, staked *big.Int) *types.Event {
	return &types.Event{
		Type: kind,
		Attributes: map[string]string{
			"engine":  engine.Hex(),
			"account": account.Hex(),
			"pid":     pidString(pid),
			"amount":  amount.String(),
			"staked":  staked.String(),
		},
	}
}

func ClaimedEvent(engine, account common.Address, pids []uint64, amount *big.Int, lock bool) *types.Event {
	ids := make([]string, len(pids))
	for i, pid := range pids {
		ids[i] = pidString(pid)
	}
	return &types.Event{
		Type: EventTypeClaimed,
		Attributes: map[string]string{
			"engine":  engine.Hex(),
			"account": account.Hex(),
			"pids":    strings.Join(ids, ","),
			"amount":  amount.String(),
			"lock":    strconv.FormatBool(lock),
		},
	}
}

func RateUpdatedEvent(engine common.Address, rate *big.Int) *types.Event {
	return &types.Event{
		Type: EventTypeRateUpdated,
		Attributes: map[string]string{
			"engine":         engine.Hex(),
			"rewardPerBlock": rate.String(),
		},
	}
}

func ParamsUpdatedEvent(engine common.Address, field, value string) *types.Event {
	return &types.Event{
		Type: EventTypeParamsUpdated,
		Attributes: map[string]string{
			"engine": engine.Hex(),
			"field":  field,
			"value":  value,
		},
	}
}

func StatusUpdatedEvent(engine common.Address, paused bool) *types.Event {
	return &types.Event{
		Type: EventTypeStatusUpdated,
		Attributes: map[string]string{
			"engine": engine.Hex(),
			"paused": strconv.FormatBool(paused),
		},
	}
}

func PoolMigratedEvent(engine, successor common.Address, pid uint64, oldAsset, newAsset string, amount *big.Int) *types.Event {
	return &types.Event{
		Type: EventTypePoolMigrated,
		Attributes: map[string]string{
			"engine":    engine.Hex(),
			"successor": successor.Hex(),
			"pid":       pidString(pid),
			"oldAsset":  oldAsset,
			"newAsset":  newAsset,
			"amount":    amount.String(),
		},
	}
}

func PoolReceivedEvent(engine, previous common.Address, pid uint64, pool *Pool) *types.Event {
	return &types.Event{
		Type: EventTypePoolReceived,
		Attributes: map[string]string{
			"engine":            engine.Hex(),
			"previous":          previous.Hex(),
			"pid":               pidString(pid),
			"asset":             pool.Asset,
			"totalStaked":       pool.TotalStaked.String(),
			"accRewardPerShare": pool.AccRewardPerShare.String(),
		},
	}
}

func UserMigratedEvent(engine, previous, account common.Address, pid uint64, staked *big.Int) *types.Event {
	return &types.Event{
		Type: EventTypeUserMigrated,
		Attributes: map[string]string{
			"engine":   engine.Hex(),
			"previous": previous.Hex(),
			"account":  account.Hex(),
			"pid":      pidString(pid),
			"staked":   staked.String(),
		},
	}
}

func BootstrappedEvent(engine, previous common.Address, pools uint64) *types.Event {
	return &types.Event{
		Type: EventTypeBootstrapped,
		Attributes: map[string]string{
			"engine":   engine.Hex(),
			"previous": previous.Hex(),
			"pools":    strconv.FormatUint(pools, 10),
		},
	}
}
