package vesting

import (
	"github.com/ethereum/go-ethereum/common"

	nativecommon "groledger/native/common"
	"groledger/native/fixedpoint"
)

// MigrateFromPrevious copies the predecessor's aggregate once. Initialize
// does this automatically when the predecessor is wired beforehand.
func (e *Engine) MigrateFromPrevious(caller common.Address) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Owner, ErrNotOwner); err != nil {
		return err
	}
	if e.previous == nil {
		return ErrNoPredecessor
	}
	return e.bootstrap(params)
}

func (e *Engine) bootstrap(params *Params) error {
	if params.AggregateMigrated {
		return ErrAlreadyMigrated
	}
	prev, err := e.previous.Aggregate()
	if err != nil {
		return err
	}
	agg, err := e.aggregate()
	if err != nil {
		return err
	}
	agg.StartTime = fixedpoint.WeightedTimestamp(prev.StartTime, prev.TotalPrincipal, agg.StartTime, agg.TotalPrincipal)
	agg.TotalPrincipal.Add(agg.TotalPrincipal, prev.TotalPrincipal)
	if err := e.state.VestingAggregatePut(e.addr, agg); err != nil {
		return err
	}
	params.AggregateMigrated = true
	if err := e.state.VestingParamsPut(e.addr, params); err != nil {
		return err
	}
	e.emit(AggregateMigratedEvent(e.addr, e.previous.Address(), agg))
	return nil
}

// MigrateAccount pulls the account's position from the predecessor without
// waiting for its first deposit or exit. Accounts already known to this
// ledger are left untouched.
func (e *Engine) MigrateAccount(account common.Address) (bool, error) {
	if e.state == nil {
		return false, errNilState
	}
	if e.previous == nil {
		return false, ErrNoPredecessor
	}
	acct, pulled, err := e.loadAccount(account)
	if err != nil {
		return false, err
	}
	if !pulled {
		return false, nil
	}
	return true, e.storeAccount(account, acct, true, acct.Position())
}
