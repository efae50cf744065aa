package common

import (
	"errors"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var ErrModulePaused = errors.New("module paused")

type PauseView interface {
	IsPaused(module string) bool
}

func Guard(p PauseView, module string) error {
	if p == nil || module == "" {
		return nil
	}
	if p.IsPaused(module) {
		return ErrModulePaused
	}
	return nil
}

// GuardOp is Guard with the failure reported as "<op>: paused".
func GuardOp(p PauseView, module, op string) error {
	if err := Guard(p, module); err != nil {
		return New(KindStateConflict, op+": paused")
	}
	return nil
}

// RequireRole fails with the supplied authorization error unless caller equals
// the expected role holder. A zero role holder never matches.
func RequireRole(caller, holder ethcommon.Address, fail *Error) error {
	if holder == (ethcommon.Address{}) || caller != holder {
		return fail
	}
	return nil
}

// ModuleAddress derives a deterministic account for a named module so that
// engine-to-engine calls carry an identity.
func ModuleAddress(name string) ethcommon.Address {
	return ethcommon.BytesToAddress(ethcrypto.Keccak256([]byte("module/" + name))[12:])
}
