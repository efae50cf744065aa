package vesting

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"groledger/core/events"
	"groledger/core/types"
	nativecommon "groledger/native/common"
)

type engineState interface {
	nativecommon.PauseView
	SetPaused(module string, paused bool) error
	VestingAccountGet(ledger, account common.Address) (*Account, bool, error)
	VestingAccountPut(ledger, account common.Address, acct *Account) error
	VestingAggregateGet(ledger common.Address) (*Aggregate, bool, error)
	VestingAggregatePut(ledger common.Address, agg *Aggregate) error
	VestingParamsGet(ledger common.Address) (*Params, bool, error)
	VestingParamsPut(ledger common.Address, params *Params) error
	VestingVesterGet(ledger, vester common.Address) (bool, error)
	VestingVesterPut(ledger, vester common.Address, allowed bool) error
}

// BonusSink receives forfeited amounts.
type BonusSink interface {
	Add(caller common.Address, amount *big.Int) error
}

// Minter pays unlocked amounts out to accounts.
type Minter interface {
	Mint(caller, to common.Address, amount *big.Int) error
}

// Predecessor is a frozen ledger whose positions are read through until an
// account first interacts with its successor.
type Predecessor interface {
	Address() common.Address
	Position(account common.Address) (Position, error)
	Aggregate() (*Aggregate, error)
}

// Vester is the deposit/exit capability shared by vesting ledgers.
type Vester interface {
	Deposit(caller, account common.Address, amount *big.Int, lock bool) error
	Exit(account common.Address, amount *big.Int) (*ExitResult, error)
	VestedBalance(account common.Address) (*big.Int, error)
}

var (
	_ Vester      = (*Engine)(nil)
	_ Predecessor = (*Engine)(nil)
)

// Engine is the decay-model vesting ledger. Deposits merge into one position
// per account and unlock linearly over the maximum lock period.
type Engine struct {
	addr     common.Address
	module   string
	state    engineState
	emitter  events.Emitter
	nowFn    func() uint64
	bonus    BonusSink
	minter   Minter
	previous Predecessor
}

// NewEngine constructs a ledger identified by addr.
func NewEngine(addr common.Address) *Engine {
	return &Engine{
		addr:    addr,
		module:  "vesting/" + addr.Hex(),
		emitter: events.NoopEmitter{},
		nowFn:   wallClock,
	}
}

func wallClock() uint64 { return uint64(time.Now().Unix()) }

// Address returns the ledger identity.
func (e *Engine) Address() common.Address { return e.addr }

// Module returns the pause key of the ledger.
func (e *Engine) Module() string { return e.module }

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetEmitter configures the event emitter used by the engine.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source used for deterministic testing.
func (e *Engine) SetNowFunc(now func() uint64) {
	if now == nil {
		e.nowFn = wallClock
		return
	}
	e.nowFn = now
}

// SetBonusPool configures the sink receiving penalties and forfeitures.
func (e *Engine) SetBonusPool(bonus BonusSink) { e.bonus = bonus }

// SetMinter configures the payout minter.
func (e *Engine) SetMinter(minter Minter) { e.minter = minter }

// SetPredecessor configures the frozen ledger this one succeeds.
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
	params, ok, err := e.state.VestingParamsGet(e.addr)
	if err != nil {
		return nil, err
	}
	if !ok || params == nil {
		return nil, errNotInit
	}
	return params, nil
}

func (e *Engine) aggregate() (*Aggregate, error) {
	agg, ok, err := e.state.VestingAggregateGet(e.addr)
	if err != nil {
		return nil, err
	}
	if !ok || agg == nil {
		return &Aggregate{TotalPrincipal: big.NewInt(0)}, nil
	}
	if agg.TotalPrincipal == nil {
		agg.TotalPrincipal = big.NewInt(0)
	}
	return agg, nil
}

// loadAccount returns the stored record, or the predecessor's position when
// the account has never touched this ledger. pulled reports the latter.
func (e *Engine) loadAccount(account common.Address) (acct *Account, pulled bool, err error) {
	stored, ok, err := e.state.VestingAccountGet(e.addr, account)
	if err != nil {
		return nil, false, err
	}
	if ok && stored != nil {
		return ensureAccount(stored), false, nil
	}
	if e.previous == nil {
		return emptyAccount(), false, nil
	}
	pos, err := e.previous.Position(account)
	if err != nil {
		return nil, false, err
	}
	if pos.Empty() {
		return emptyAccount(), false, nil
	}
	acct = emptyAccount()
	acct.Total = new(big.Int).Set(pos.Total)
	acct.StartTime = pos.StartTime
	return acct, true, nil
}

// storeAccount persists the record and announces a read-through pull.
func (e *Engine) storeAccount(account common.Address, acct *Account, pulled bool, before Position) error {
	if err := e.state.VestingAccountPut(e.addr, account, acct); err != nil {
		return err
	}
	if pulled {
		e.emit(AccountMigratedEvent(e.addr, e.previous.Address(), account, before))
	}
	return nil
}

func (e *Engine) isVester(caller common.Address) (bool, error) {
	if caller == (common.Address{}) {
		return false, nil
	}
	return e.state.VestingVesterGet(e.addr, caller)
}

func positive(v *big.Int) bool { return v != nil && v.Sign() > 0 }
