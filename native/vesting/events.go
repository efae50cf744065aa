package vesting

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"groledger/core/events"
	"groledger/core/types"
)

const (
	// EventTypeDeposited is emitted when an amount is merged into a locked position.
	EventTypeDeposited = "vesting.deposited"
	// EventTypeInstantVested is emitted when a deposit is paid out immediately.
	EventTypeInstantVested = "vesting.instant"
	// EventTypeExited is emitted when an account withdraws from its position.
	EventTypeExited = "vesting.exited"
	// EventTypeExtended is emitted when a position's lock is restarted.
	EventTypeExtended = "vesting.extended"
	// EventTypeAccountMigrated is emitted when a position is pulled from the predecessor ledger.
	EventTypeAccountMigrated = "vesting.account.migrated"
	// EventTypeAggregateMigrated is emitted when the aggregate is bootstrapped from the predecessor.
	EventTypeAggregateMigrated = "vesting.aggregate.migrated"
	// EventTypeParamsUpdated is emitted when ledger parameters change.
	EventTypeParamsUpdated = "vesting.params.updated"
	// EventTypeVesterUpdated is emitted when the vester allow-list changes.
	EventTypeVesterUpdated = "vesting.vester.updated"
	// EventTypeStatusUpdated is emitted when the ledger is paused or resumed.
	EventTypeStatusUpdated = "vesting.status.updated"
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

// DepositedEvent describes a locked deposit and the resulting position.
func DepositedEvent(ledger, account common.Address, amount *big.Int, pos Position) *types.Event {
	return &types.Event{
		Type: EventTypeDeposited,
		Attributes: map[string]string{
			"ledger":    ledger.Hex(),
			"account":   account.Hex(),
			"amount":    amount.String(),
			"total":     pos.Total.String(),
			"startTime": strconv.FormatUint(pos.StartTime, 10),
		},
	}
}

// InstantVestedEvent describes an unlocked deposit.
func InstantVestedEvent(ledger, account common.Address, amount *big.Int, res *InstantResult) *types.Event {
	return &types.Event{
		Type: EventTypeInstantVested,
		Attributes: map[string]string{
			"ledger":    ledger.Hex(),
			"account":   account.Hex(),
			"amount":    amount.String(),
			"paid":      res.Paid.String(),
			"forfeited": res.Forfeited.String(),
		},
	}
}

// ExitedEvent describes an exit split.
func ExitedEvent(ledger, account common.Address, res *ExitResult) *types.Event {
	return &types.Event{
		Type: EventTypeExited,
		Attributes: map[string]string{
			"ledger":   ledger.Hex(),
			"account":  account.Hex(),
			"amount":   res.Amount.String(),
			"unlocked": res.Unlocked.String(),
			"penalty":  res.Penalty.String(),
		},
	}
}

// ExtendedEvent describes a lock restart.
func ExtendedEvent(ledger, account common.Address, bps uint64, oldStart, newStart uint64) *types.Event {
	return &types.Event{
		Type: EventTypeExtended,
		Attributes: map[string]string{
			"ledger":       ledger.Hex(),
			"account":      account.Hex(),
			"extensionBps": strconv.FormatUint(bps, 10),
			"oldStartTime": strconv.FormatUint(oldStart, 10),
			"startTime":    strconv.FormatUint(newStart, 10),
		},
	}
}

// AccountMigratedEvent records a position pulled from the predecessor.
func AccountMigratedEvent(ledger, previous, account common.Address, pos Position) *types.Event {
	return &types.Event{
		Type: EventTypeAccountMigrated,
		Attributes: map[string]string{
			"ledger":    ledger.Hex(),
			"previous":  previous.Hex(),
			"account":   account.Hex(),
			"total":     pos.Total.String(),
			"startTime": strconv.FormatUint(pos.StartTime, 10),
		},
	}
}

// AggregateMigratedEvent records the aggregate bootstrap.
func AggregateMigratedEvent(ledger, previous common.Address, agg *Aggregate) *types.Event {
	return &types.Event{
		Type: EventTypeAggregateMigrated,
		Attributes: map[string]string{
			"ledger":         ledger.Hex(),
			"previous":       previous.Hex(),
			"totalPrincipal": agg.TotalPrincipal.String(),
			"startTime":      strconv.FormatUint(agg.StartTime, 10),
		},
	}
}

// ParamsUpdatedEvent records a parameter change.
func ParamsUpdatedEvent(ledger common.Address, field string, value string) *types.Event {
	return &types.Event{
		Type: EventTypeParamsUpdated,
		Attributes: map[string]string{
			"ledger": ledger.Hex(),
			"field":  field,
			"value":  value,
		},
	}
}

// VesterUpdatedEvent records an allow-list change.
func VesterUpdatedEvent(ledger, vester common.Address, allowed bool) *types.Event {
	return &types.Event{
		Type: EventTypeVesterUpdated,
		Attributes: map[string]string{
			"ledger":  ledger.Hex(),
			"vester":  vester.Hex(),
			"allowed": strconv.FormatBool(allowed),
		},
	}
}

// StatusUpdatedEvent records a pause toggle.
func StatusUpdatedEvent(ledger common.Address, paused bool) *types.Event {
	return &types.Event{
		Type: EventTypeStatusUpdated,
		Attributes: map[string]string{
			"ledger": ledger.Hex(),
			"paused": strconv.FormatBool(paused),
		},
	}
}
