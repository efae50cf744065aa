package staking

import (
	"errors"

	nativecommon "groledger/native/common"
)

var (
	errNilState  = errors.New("staking engine: state not configured")
	errNotInit   = errors.New("staking engine: not initialized")
	errNilBook   = errors.New("staking engine: asset book not configured")
	errNilVester = errors.New("staking engine: vesting not configured")
)

var (
	ErrAlreadyInitialized = nativecommon.New(nativecommon.KindStateConflict, "staking engine: already initialized")
	ErrInvalidOwner       = nativecommon.New(nativecommon.KindInvalidArgument, "staking engine: owner required")

	ErrNotOwner            = nativecommon.New(nativecommon.KindAuthorization, "staker: !owner")
	ErrNotTimelock         = nativecommon.New(nativecommon.KindAuthorization, "setStatus: !timelock")
	ErrRateNotManager      = nativecommon.New(nativecommon.KindAuthorization, "setGroPerBlock: !manager")
	ErrRateTooHigh         = nativecommon.New(nativecommon.KindInvalidArgument, "setGroPerBlock: > maxGroPerBlock")
	ErrAddNotManager       = nativecommon.New(nativecommon.KindAuthorization, "add: !manager")
	ErrSetNotManager       = nativecommon.New(nativecommon.KindAuthorization, "set: !manager")
	ErrInvalidAsset        = nativecommon.New(nativecommon.KindInvalidArgument, "add: !lpToken")
	ErrDuplicateAsset      = nativecommon.New(nativecommon.KindStateConflict, "add: lpToken already added")
	ErrTotalWeightZero     = nativecommon.New(nativecommon.KindArithmeticGuard, "updatePool: totalAllocPoint == 0")
	ErrWithdrawExceeds     = nativecommon.New(nativecommon.KindInsufficientBalance, "withdraw: amount > stake")
	ErrLengthMismatch      = nativecommon.New(nativecommon.KindInvalidArgument, "multiWithdraw: !length")
	ErrInvalidAmount       = nativecommon.New(nativecommon.KindInvalidArgument, "staker: negative amount")
	ErrMigrateNotTimelock  = nativecommon.New(nativecommon.KindAuthorization, "migrate: !timelock")
	ErrNoSuccessor         = nativecommon.New(nativecommon.KindStateConflict, "migrate: !newStaker")
	ErrPoolMigrated        = nativecommon.New(nativecommon.KindStateConflict, "migrate: pid already done")
	ErrMigrationMismatch   = nativecommon.New(nativecommon.KindArithmeticGuard, "migrate: amount mismatch")
	ErrNotPredecessor      = nativecommon.New(nativecommon.KindAuthorization, "migrateFrom: !oldStaker")
	ErrPoolInUse           = nativecommon.New(nativecommon.KindStateConflict, "migrateFrom: pool in use")
	ErrPoolOutOfOrder      = nativecommon.New(nativecommon.KindInvalidArgument, "migrateFrom: pid out of order")
	ErrNoPredecessor       = nativecommon.New(nativecommon.KindStateConflict, "migrateUser: !oldStaker")
	ErrUserMigrated        = nativecommon.New(nativecommon.KindStateConflict, "migrateUser: pid already done")
	ErrPoolNotMigrated     = nativecommon.New(nativecommon.KindStateConflict, "migrateUser: pool not migrated")
	ErrBootstrapNoPrev     = nativecommon.New(nativecommon.KindStateConflict, "migrateFromV1: !oldStaker")
	ErrAlreadyBootstrapped = nativecommon.New(nativecommon.KindStateConflict, "migrateFromV1: already done")
	ErrBootstrapPools      = nativecommon.New(nativecommon.KindStateConflict, "migrateFromV1: pools exist")
)

func invalidPid(op string) error {
	return nativecommon.New(nativecommon.KindInvalidArgument, op+": invalid pid")
}

func poolFrozen(op string) error {
	return nativecommon.New(nativecommon.KindStateConflict, op+": pool frozen")
}
