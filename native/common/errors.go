package common

import "errors"

// Kind classifies ledger failures so callers can react without matching on
// individual reasons.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAuthorization
	KindInvalidArgument
	KindStateConflict
	KindInsufficientBalance
	KindArithmeticGuard
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindStateConflict:
		return "state_conflict"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindArithmeticGuard:
		return "arithmetic_guard"
	default:
		return "unknown"
	}
}

// Error is a classified ledger failure. Two errors match under errors.Is when
// their kinds agree and either the target carries no reason or both reasons
// are equal.
type Error struct {
	Kind   Kind
	Reason string
}

// New constructs a classified error.
func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.String()
	}
	return e.Reason
}

// Is implements errors.Is matching on kind and reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Kind-only sentinels for coarse matching.
var (
	ErrAuthorization       = &Error{Kind: KindAuthorization}
	ErrInvalidArgument     = &Error{Kind: KindInvalidArgument}
	ErrStateConflict       = &Error{Kind: KindStateConflict}
	ErrInsufficientBalance = &Error{Kind: KindInsufficientBalance}
	ErrArithmeticGuard     = &Error{Kind: KindArithmeticGuard}
)

// KindOf reports the kind of a classified error, KindUnknown otherwise.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindUnknown
}
