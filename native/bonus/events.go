package bonus

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"groledger/core/events"
	"groledger/core/types"
)

const (
	// EventTypeAdded is emitted when forfeited amounts enter the pool.
	EventTypeAdded = "bonus.added"
	// EventTypeClaimed is emitted when an account claims its share.
	EventTypeClaimed = "bonus.claimed"
	// EventTypeCorrectionUpdated is emitted when the maintainer adjusts the denominator.
	EventTypeCorrectionUpdated = "bonus.correction.updated"
	// EventTypeParamsUpdated is emitted when roles or the claim delay change.
	EventTypeParamsUpdated = "bonus.params.updated"
	// EventTypeStatusUpdated is emitted when claims are paused or resumed.
	EventTypeStatusUpdated = "bonus.status.updated"
	// EventTypeMigrated is emitted when a successor pool snapshots its predecessor.
	EventTypeMigrated = "bonus.migrated"
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

func AddedEvent(pool common.Address, amount, total *big.Int) *types.Event {
	return &types.Event{
		Type: EventTypeAdded,
		Attributes: map[string]string{
			"pool":       pool.Hex(),
			"amount":     amount.String(),
			"totalBonus": total.String(),
		},
	}
}

func ClaimedEvent(pool, account common.Address, amount *big.Int, lock bool) *types.Event {
	return &types.Event{
		Type: EventTypeClaimed,
		Attributes: map[string]string{
			"pool":    pool.Hex(),
			"account": account.Hex(),
			"amount":  amount.String(),
			"lock":    strconv.FormatBool(lock),
		},
	}
}

func CorrectionUpdatedEvent(pool common.Address, correction *big.Int) *types.Event {
	return &types.Event{
		Type: EventTypeCorrectionUpdated,
		Attributes: map[string]string{
			"pool":       pool.Hex(),
			"correction": correction.String(),
		},
	}
}

func ParamsUpdatedEvent(pool common.Address, field, value string) *types.Event {
	return &types.Event{
		Type: EventTypeParamsUpdated,
		Attributes: map[string]string{
			"pool":  pool.Hex(),
			"field": field,
			"value": value,
		},
	}
}

func StatusUpdatedEvent(pool common.Address, paused bool) *types.Event {
	return &types.Event{
		Type: EventTypeStatusUpdated,
		Attributes: map[string]string{
			"pool":   pool.Hex(),
			"paused": strconv.FormatBool(paused),
		},
	}
}

func MigratedEvent(pool, previous common.Address, snap *Snapshot) *types.Event {
	return &types.Event{
		Type: EventTypeMigrated,
		Attributes: map[string]string{
			"pool":       pool.Hex(),
			"previous":   previous.Hex(),
			"totalBonus": snap.TotalBonus.String(),
			"correction": snap.Correction.String(),
		},
	}
}
