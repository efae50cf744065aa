package vesting

import (
	"errors"

	nativecommon "groledger/native/common"
)

var (
	errNilState    = errors.New("vesting engine: state not configured")
	errNotInit     = errors.New("vesting engine: not initialized")
	errBonusNotSet = errors.New("vesting engine: bonus pool not configured")
	errMinterNil   = errors.New("vesting engine: minter not configured")
)

var (
	ErrAlreadyInitialized = nativecommon.New(nativecommon.KindStateConflict, "vesting engine: already initialized")
	ErrInvalidOwner       = nativecommon.New(nativecommon.KindInvalidArgument, "vesting engine: owner required")

	ErrNotVester      = nativecommon.New(nativecommon.KindAuthorization, "vest: !vester")
	ErrInvalidAccount = nativecommon.New(nativecommon.KindInvalidArgument, "vest: !account")
	ErrInvalidAmount  = nativecommon.New(nativecommon.KindInvalidArgument, "vest: !amount")

	ErrExitAmount = nativecommon.New(nativecommon.KindInvalidArgument, "exit: !amount")
	ErrNoPosition = nativecommon.New(nativecommon.KindStateConflict, "exit: no vesting")

	ErrExtensionTooLarge = nativecommon.New(nativecommon.KindInvalidArgument, "extend: extension > 100%")
	ErrExtendNoPosition  = nativecommon.New(nativecommon.KindStateConflict, "extend: no vesting")

	ErrNoActivePosition = nativecommon.New(nativecommon.KindStateConflict, "getVestingDates: No active position")

	ErrNotOwner    = nativecommon.New(nativecommon.KindAuthorization, "vesting: !owner")
	ErrNotTimelock = nativecommon.New(nativecommon.KindAuthorization, "vesting: msg.sender != timelock")

	ErrLockFactorTooLarge = nativecommon.New(nativecommon.KindInvalidArgument, "adjustLockPeriod: newFactor > 20000")
	ErrLockPeriodTooShort = nativecommon.New(nativecommon.KindInvalidArgument, "adjustLockPeriod: period < 1 month")
	ErrPercentTooLarge    = nativecommon.New(nativecommon.KindInvalidArgument, "vesting: percent > 100%")

	ErrNoPredecessor   = nativecommon.New(nativecommon.KindStateConflict, "migrateFromPrevious: !previous")
	ErrAlreadyMigrated = nativecommon.New(nativecommon.KindStateConflict, "migrateFromPrevious: already done")
)
