package bonus

import (
	"errors"

	nativecommon "groledger/native/common"
)

var (
	errNilState  = errors.New("bonus engine: state not configured")
	errNotInit   = errors.New("bonus engine: not initialized")
	errNilLedger = errors.New("bonus engine: ledger not configured")
)

var (
	ErrAlreadyInitialized = nativecommon.New(nativecommon.KindStateConflict, "bonus engine: already initialized")
	ErrInvalidOwner       = nativecommon.New(nativecommon.KindInvalidArgument, "bonus engine: owner required")

	ErrNotVester          = nativecommon.New(nativecommon.KindAuthorization, "add: !vester")
	ErrNotOwner           = nativecommon.New(nativecommon.KindAuthorization, "bonus: !owner")
	ErrNotMaintainer      = nativecommon.New(nativecommon.KindAuthorization, "setCorrectionVariable: !maintainer")
	ErrDelayNotMaintainer = nativecommon.New(nativecommon.KindAuthorization, "setClaimDelay: !maintainer")
	ErrNotAuthorized      = nativecommon.New(nativecommon.KindAuthorization, "setStatus: !authorized")
	ErrCorrectionTooLarge = nativecommon.New(nativecommon.KindInvalidArgument, "setCorrectionVariable: correctionAmount to large")
	ErrInvalidAmount      = nativecommon.New(nativecommon.KindInvalidArgument, "add: !amount")
)
