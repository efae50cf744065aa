package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"groledger/core/events"
	"groledger/core/types"
	nativecommon "groledger/native/common"
)

type engineState interface {
	nativecommon.PauseView
	SetPaused(module string, paused bool) error
	StakingParamsGet(engine common.Address) (*Params, bool, error)
	StakingParamsPut(engine common.Address, params *Params) error
	StakingPoolGet(engine common.Address, pid uint64) (*Pool, bool, error)
	StakingPoolPut(engine common.Address, pid uint64, pool *Pool) error
	StakingAssetIndexGet(engine common.Address, asset string) (uint64, bool, error)
	StakingAssetIndexPut(engine common.Address, asset string, pid uint64) error
	StakingUserGet(engine common.Address, pid uint64, account common.Address) (*UserStake, bool, error)
	StakingUserPut(engine common.Address, pid uint64, account common.Address, stake *UserStake) error
	StakingUserMigratedGet(engine common.Address, pid uint64, account common.Address) (bool, error)
	StakingUserMigratedPut(engine common.Address, pid uint64, account common.Address) error
}

// AssetBook moves stakeable assets between accounts.
type AssetBook interface {
	Transfer(asset string, from, to common.Address, amount *big.Int) error
}

// Vester receives claimed rewards.
type Vester interface {
	Deposit(caller, account common.Address, amount *big.Int, lock bool) error
}

// Successor accepts pools handed over by this engine.
type Successor interface {
	Address() common.Address
	MigrateFrom(caller common.Address, pid uint64, pool *Pool) error
}

// Predecessor is a retired engine whose pools and stakes are pulled forward.
type Predecessor interface {
	Address() common.Address
	Params() (*Params, error)
	PoolLength() (uint64, error)
	PoolInfo(pid uint64) (*Pool, error)
	UserInfo(pid uint64, account common.Address) (*UserStake, error)
}

// Migrator converts the staked balance of one asset into its successor
// representation.
type Migrator interface {
	Target(oldAsset string) (string, error)
	Migrate(from, to common.Address, oldAsset, newAsset string, amount *big.Int) (*big.Int, error)
}

var (
	_ Successor   = (*Engine)(nil)
	_ Predecessor = (*Engine)(nil)
)

// Engine distributes a per-block reward across weighted pools.
type Engine struct {
	addr      common.Address
	module    string
	state     engineState
	emitter   events.Emitter
	blockFn   func() uint64
	book      AssetBook
	vester    Vester
	successor Successor
	previous  Predecessor
	migrator  Migrator
}

// NewEngine constructs a staking engine identified by addr.
func NewEngine(addr common.Address) *Engine {
	return &Engine{
		addr:    addr,
		module:  "staking/" + addr.Hex(),
		emitter: events.NoopEmitter{},
	}
}

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

// SetBlockFunc configures the block height source.
func (e *Engine) SetBlockFunc(block func() uint64) { e.blockFn = block }

func (e *Engine) SetAssetBook(book AssetBook) { e.book = book }

func (e *Engine) SetVesting(vester Vester) { e.vester = vester }

func (e *Engine) SetSuccessor(successor Successor) { e.successor = successor }

func (e *Engine) SetPredecessor(previous Predecessor) { e.previous = previous }

func (e *Engine) SetMigrator(migrator Migrator) { e.migrator = migrator }

func (e *Engine) emit(evt *types.Event) {
	if e == nil || evt == nil || e.emitter == nil {
		return
	}
	e.emitter.Emit(WrapEvent(evt))
}

func (e *Engine) block() uint64 {
	if e == nil || e.blockFn == nil {
		return 0
	}
	return e.blockFn()
}

func (e *Engine) params() (*Params, error) {
	if e.state == nil {
		return nil, errNilState
	}
	params, ok, err := e.state.StakingParamsGet(e.addr)
	if err != nil {
		return nil, err
	}
	if !ok || params == nil {
		return nil, errNotInit
	}
	return ensureParams(params), nil
}

func (e *Engine) putParams(params *Params) error {
	return e.state.StakingParamsPut(e.addr, params)
}

func (e *Engine) loadPool(op string, params *Params, pid uint64) (*Pool, error) {
	if pid >= params.PoolCount {
		return nil, invalidPid(op)
	}
	pool, ok, err := e.state.StakingPoolGet(e.addr, pid)
	if err != nil {
		return nil, err
	}
	if !ok || pool == nil {
		return nil, invalidPid(op)
	}
	return ensurePool(pool), nil
}

func (e *Engine) loadActivePool(op string, params *Params, pid uint64) (*Pool, error) {
	pool, err := e.loadPool(op, params, pid)
	if err != nil {
		return nil, err
	}
	if !pool.Active {
		return nil, poolFrozen(op)
	}
	return pool, nil
}

func (e *Engine) putPool(pid uint64, pool *Pool) error {
	return e.state.StakingPoolPut(e.addr, pid, pool)
}

func (e *Engine) loadStake(pid uint64, account common.Address) (*UserStake, error) {
	stake, ok, err := e.state.StakingUserGet(e.addr, pid, account)
	if err != nil {
		return nil, err
	}
	if !ok {
		return emptyStake(), nil
	}
	return ensureStake(stake), nil
}

// Initialize stores the engine roles and limits.
func (e *Engine) Initialize(params Params) error {
	if e.state == nil {
		return errNilState
	}
	if _, ok, err := e.state.StakingParamsGet(e.addr); err != nil {
		return err
	} else if ok {
		return ErrAlreadyInitialized
	}
	if params.Owner == (common.Address{}) {
		return ErrInvalidOwner
	}
	p := ensureParams(&params)
	p.TotalWeight = 0
	p.PoolCount = 0
	p.Bootstrapped = false
	if p.RewardPerBlock.Cmp(p.MaxRewardPerBlock) > 0 {
		return ErrRateTooHigh
	}
	return e.putParams(p)
}

// Params returns a copy of the engine configuration.
func (e *Engine) Params() (*Params, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	return params.Clone(), nil
}

// PoolLength is the number of pools ever added.
func (e *Engine) PoolLength() (uint64, error) {
	params, err := e.params()
	if err != nil {
		return 0, err
	}
	return params.PoolCount, nil
}

// PoolInfo returns a copy of the stored pool.
func (e *Engine) PoolInfo(pid uint64) (*Pool, error) {
	params, err := e.params()
	if err != nil {
		return nil, err
	}
	return e.loadPool("poolInfo", params, pid)
}

// UserInfo returns the stored stake of account in pid.
func (e *Engine) UserInfo(pid uint64, account common.Address) (*UserStake, error) {
	if e.state == nil {
		return nil, errNilState
	}
	return e.loadStake(pid, account)
}

// SetManager assigns the manager role.
func (e *Engine) SetManager(caller, manager common.Address) error {
	return e.setRole(caller, "manager", manager, func(p *Params) { p.Manager = manager })
}

// SetTimelock assigns the pause and migration authority.
func (e *Engine) SetTimelock(caller, timelock common.Address) error {
	return e.setRole(caller, "timelock", timelock, func(p *Params) { p.Timelock = timelock })
}

func (e *Engine) setRole(caller common.Address, field string, holder common.Address, apply func(*Params)) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Owner, ErrNotOwner); err != nil {
		return err
	}
	apply(params)
	if err := e.putParams(params); err != nil {
		return err
	}
	e.emit(ParamsUpdatedEvent(e.addr, field, holder.Hex()))
	return nil
}

// SetMaxRewardPerBlock bounds what the manager may set.
func (e *Engine) SetMaxRewardPerBlock(caller common.Address, max *big.Int) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Owner, ErrNotOwner); err != nil {
		return err
	}
	if max == nil || max.Sign() < 0 {
		return ErrInvalidAmount
	}
	params.MaxRewardPerBlock = new(big.Int).Set(max)
	if err := e.putParams(params); err != nil {
		return err
	}
	e.emit(ParamsUpdatedEvent(e.addr, "maxRewardPerBlock", max.String()))
	return nil
}

// SetStatus pauses or resumes user operations.
func (e *Engine) SetStatus(caller common.Address, paused bool) error {
	params, err := e.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Timelock, ErrNotTimelock); err != nil {
		return err
	}
	if err := e.state.SetPaused(e.module, paused); err != nil {
		return err
	}
	e.emit(StatusUpdatedEvent(e.addr, paused))
	return nil
}

// Paused reports whether user operations are suspended.
func (e *Engine) Paused() bool {
	if e.state == nil {
		return false
	}
	return e.state.IsPaused(e.module)
}
