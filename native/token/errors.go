package token

import (
	"errors"

	nativecommon "groledger/native/common"
)

var (
	errNilState = errors.New("token: state not configured")
	errNilBook  = errors.New("token: book not configured")
	errNoLedger = errors.New("burner: ledger not configured")

	ErrAlreadyInitialized = nativecommon.New(nativecommon.KindStateConflict, "token: already initialized")
	ErrNotInitialized     = nativecommon.New(nativecommon.KindStateConflict, "token: not initialized")
	ErrNotOwner           = nativecommon.New(nativecommon.KindAuthorization, "caller is not the owner")
	ErrNotDistributer     = nativecommon.New(nativecommon.KindAuthorization, "mint: !distributer")
	ErrCapExceeded        = nativecommon.New(nativecommon.KindArithmeticGuard, "mint: > cap")
	ErrNotVester          = nativecommon.New(nativecommon.KindAuthorization, "mint: msg.sender != vester")
	ErrNotDAOVester       = nativecommon.New(nativecommon.KindAuthorization, "mintDao: msg.sender != DAO_VESTER")
	ErrNotBurner          = nativecommon.New(nativecommon.KindAuthorization, "burn: msg.sender != BURNER")
	ErrQuotaExceeded      = nativecommon.New(nativecommon.KindInsufficientBalance, "mint: quota exceeded")
	ErrInvalidAmount      = nativecommon.New(nativecommon.KindInvalidArgument, "token: amount must be positive")
	ErrInvalidVester      = nativecommon.New(nativecommon.KindInvalidArgument, "setVester: zero address")
	ErrUnknownCategory    = nativecommon.New(nativecommon.KindInvalidArgument, "setVester: unknown category")
)
