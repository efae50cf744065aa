package bonus

import (
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"groledger/core/events"
	"groledger/core/types"
	nativecommon "groledger/native/common"
	"groledger/native/fixedpoint"
)

type engineState interface {
	nativecommon.PauseView
	SetPaused(module string, paused bool) error
	BonusParamsGet(pool common.Address) (*Params, bool, error)
	BonusParamsPut(pool common.Address, params *Params) error
	BonusLastClaimGet(pool, account common.Address) (uint64, error)
	BonusLastClaimPut(pool, account common.Address, ts uint64) error
}

// Ledger is the vesting ledger the pool measures shares against and pays
// claims into.
type Ledger interface {
	Address() common.Address
	VestingBalance(account common.Address) (*big.Int, error)
	AggregateVestingBalance() (*big.Int, error)
	Deposit(caller, account common.Address, amount *big.Int, lock bool) error
}

// Predecessor is a retired pool whose balances a successor inherits.
type Predecessor interface {
	Address() common.Address
	Snapshot() (*Snapshot, error)
}

// Engine redistributes exit penalties to accounts pro rata to their still
// vesting balance.
type Engine struct {
	addr     common.Address
	module   string
	state    engineState
	emitter  events.Emitter
	nowFn    func() uint64
	ledger   Ledger
	previous Predecessor
}

// NewEngine constructs a pool identified by addr.
func NewEngine(addr common.Address) *Engine {
	return &Engine{
		addr:    addr,
		module:  "bonus/" + addr.Hex(),
		emitter: events.NoopEmitter{},
		nowFn:   wallClock,
	}
}

func wallClock() uint64 { return uint64(time.Now().Unix()) }

func (e *Engine) Address() common.Address { return e.addr }

func (e *Engine) Module() string { return e.module }

func (e *Engine) SetState(state engineState) { e.state = state }

func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

func (e *Engine) SetNowFunc(now func() uint64) {
	if now == nil {
		e.nowFn = wallClock
		return
	}
	e.nowFn = now
}

// SetLedger configures the vesting ledger.
func (e *Engine) SetLedger(ledger Ledger) { e.ledger = ledger }

// SetPredecessor configures the pool this one succeeds.
func (e *Engine) SetPredecessor(previous Predecessor) { e.previous = previous }

func (e *Engine) emit(evt *types.Event) {
	if e == nil || evt == nil || e.emitter == nil {
		return
	}
	e.emitter.Emit(WrapEvent(evt))
}

func (e *Engine) now() uint64 {
	if e == nil || e.nowFn == nil {
		return wallClock()
	}
	return e.nowFn()
}

func (e *Engine) params() (*Params, error) {
	if e.state == nil {
		return nil, errNilState
	}
	params, ok, err := e.state.BonusParamsGet(e.addr)
	if err != nil {
		return nil, err
	}
	if !ok || params == nil {
		return nil, errNotInit
	}
	if params.TotalBonus == nil {
		params.TotalBonus = big.NewInt(0)
	}
	if params.Correction == nil {
		params.Correction = big.NewInt(0)
	}
	return params, nil
}

// Initialize stores the pool roles. A configured predecessor is snapshotted.
func (e *Engine) Initialize(params Params) error {
	if e.state == nil {
		return errNilState
	}
	if _, ok, err := e.state.BonusParamsGet(e.addr); err != nil {
		return err
	} else if ok {
		return ErrAlreadyInitialized
	}
	if params.Owner == (common.Address{}) {
		return ErrInvalidOwner
	}
	params.TotalBonus = big.NewInt(0)
	params.Correction = big.NewInt(0)
	var snap *Snapshot
	if e.previous != nil {
		var err error
		if snap, err = e.previous.Snapshot(); err != nil {
			return err
		}
		params.TotalBonus = fixedpoint.Clone(snap.TotalBonus)
		params.Correction = fixedpoint.Clone(snap.Correction)
		params.ClaimDelay = snap.ClaimDelay
	}
	if err := e.state.BonusParamsPut(e.addr, &params); err != nil {
		return err
	}
	if snap != nil {
		e.emit(MigratedEvent(e.addr, e.previous.Address(), snap))
	}
	return nil
}

// Snapshot exposes the balances a successor inherits.
func (e *Engine) Snapshot() (*Snapshot, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		TotalBonus: fixedpoint.Clone(params.TotalBonus),
		Correction: fixedpoint.Clone(params.Correction),
		ClaimDelay: params.ClaimDelay,
	}, nil
}

// Params returns a copy of the pool state.
func (e *Engine) Params() (*Params, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	return params.Clone(), nil
}

// TotalBonus is the undistributed balance.
func (e *Engine) TotalBonus() (*big.Int, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	return params.TotalBonus, nil
}

// Add credits forfeited amounts. Only the ledger may call it.
func (e *Engine) Add(caller common.Address, amount *big.Int) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if e.ledger == nil {
		return errNilLedger
	}
	if caller != e.ledger.Address() {
		return ErrNotVester
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	params.TotalBonus = new(big.Int).Add(params.TotalBonus, amount)
	if err := e.state.BonusParamsPut(e.addr, params); err != nil {
		return err
	}
	e.emit(AddedEvent(e.addr, amount, params.TotalBonus))
	return nil
}

// PendingBonus is totalBonus * vesting(account) / max(1, groove+correction),
// never more than totalBonus.
func (e *Engine) PendingBonus(account common.Address) (*big.Int, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	return e.pending(params, account)
}

func (e *Engine) pending(params *Params, account common.Address) (*big.Int, error) {
	if e.ledger == nil {
		return nil, errNilLedger
	}
	if params.TotalBonus.Sign() == 0 {
		return big.NewInt(0), nil
	}
	vesting, err := e.ledger.VestingBalance(account)
	if err != nil {
		return nil, err
	}
	if vesting.Sign() == 0 {
		return big.NewInt(0), nil
	}
	groove, err := e.ledger.AggregateVestingBalance()
	if err != nil {
		return nil, err
	}
	denom := new(big.Int).Add(groove, params.Correction)
	if denom.Sign() <= 0 {
		denom = big.NewInt(1)
	}
	share, err := fixedpoint.MulDiv(params.TotalBonus, vesting, denom)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Min(share, params.TotalBonus), nil
}

// CanClaim reports whether a claim by account would be processed now.
func (e *Engine) CanClaim(account common.Address) (bool, error) {
	params, err := e.params()
	if err != nil {
		return false, err
	}
	return e.canClaim(params, account)
}

func (e *Engine) canClaim(params *Params, account common.Address) (bool, error) {
	if e.state.IsPaused(e.module) {
		return false, nil
	}
	last, err := e.state.BonusLastClaimGet(e.addr, account)
	if err != nil {
		return false, err
	}
	return last == 0 || last+params.ClaimDelay <= e.now(), nil
}

// Claim pays the account's pending share into the ledger. Claims while
// paused, inside the cooldown, or with nothing pending return zero without
// error.
func (e *Engine) Claim(account common.Address, lock bool) (*big.Int, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	ok, err := e.canClaim(params, account)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	amount, err := e.pending(params, account)
	if err != nil {
		return nil, err
	}
	if amount.Sign() == 0 {
		return amount, nil
	}
	params.TotalBonus = new(big.Int).Sub(params.TotalBonus, amount)
	if err := e.state.BonusParamsPut(e.addr, params); err != nil {
		return nil, err
	}
	if err := e.state.BonusLastClaimPut(e.addr, account, e.now()); err != nil {
		return nil, err
	}
	if err := e.ledger.Deposit(e.addr, account, amount, lock); err != nil {
		return nil, err
	}
	e.emit(ClaimedEvent(e.addr, account, amount, lock))
	return amount, nil
}

// SetCorrection sets the signed denominator offset. Offsets larger in
// magnitude than the current aggregate, or that would leave a non-positive
// denominator, are rejected. Zero always resets it.
func (e *Engine) SetCorrection(caller common.Address, delta *big.Int) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Maintainer, ErrNotMaintainer); err != nil {
		return err
	}
	if e.ledger == nil {
		return errNilLedger
	}
	if delta == nil {
		delta = big.NewInt(0)
	}
	if delta.Sign() != 0 {
		groove, err := e.ledger.AggregateVestingBalance()
		if err != nil {
			return err
		}
		if new(big.Int).Abs(delta).Cmp(groove) > 0 {
			return ErrCorrectionTooLarge
		}
		if new(big.Int).Add(groove, delta).Sign() <= 0 {
			return ErrCorrectionTooLarge
		}
	}
	params.Correction = new(big.Int).Set(delta)
	if err := e.state.BonusParamsPut(e.addr, params); err != nil {
		return err
	}
	e.emit(CorrectionUpdatedEvent(e.addr, params.Correction))
	return nil
}

// SetClaimDelay sets the per-account cooldown in seconds.
func (e *Engine) SetClaimDelay(caller common.Address, delay uint64) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Maintainer, ErrDelayNotMaintainer); err != nil {
		return err
	}
	params.ClaimDelay = delay
	if err := e.state.BonusParamsPut(e.addr, params); err != nil {
		return err
	}
	e.emit(ParamsUpdatedEvent(e.addr, "claimDelay", strconv.FormatUint(delay, 10)))
	return nil
}

// SetMaintainer assigns the maintainer role.
func (e *Engine) SetMaintainer(caller, maintainer common.Address) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Owner, ErrNotOwner); err != nil {
		return err
	}
	params.Maintainer = maintainer
	if err := e.state.BonusParamsPut(e.addr, params); err != nil {
		return err
	}
	e.emit(ParamsUpdatedEvent(e.addr, "maintainer", maintainer.Hex()))
	return nil
}

// SetStatus pauses or resumes claims. Owner or maintainer.
func (e *Engine) SetStatus(caller common.Address, paused bool) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if nativecommon.RequireRole(caller, params.Owner, ErrNotAuthorized) != nil &&
		nativecommon.RequireRole(caller, params.Maintainer, ErrNotAuthorized) != nil {
		return ErrNotAuthorized
	}
	if err := e.state.SetPaused(e.module, paused); err != nil {
		return err
	}
	e.emit(StatusUpdatedEvent(e.addr, paused))
	return nil
}

// Paused reports whether claims are suspended.
func (e *Engine) Paused() bool {
	if e.state == nil {
		return false
	}
	return e.state.IsPaused(e.module)
}
