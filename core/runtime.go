package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"groledger/core/events"
	"groledger/core/state"
	"groledger/native/bank"
	"groledger/native/bonus"
	nativecommon "groledger/native/common"
	"groledger/native/staking"
	"groledger/native/token"
	"groledger/native/vesting"
	"groledger/observability"
	"groledger/observability/metrics"
	"groledger/storage"
)

// Module names the engine addresses are derived from.
const (
	ModuleToken       = "token"
	ModuleDistributer = "distributer"
	ModuleBurner      = "burner"
	ModuleLedger      = "vesting"
	ModuleBonus       = "bonus"
	ModuleStaking     = "staking"
)

var errNilOp = errors.New("runtime: nil operation")

// ModuleAddresses returns the hex address of every genesis engine keyed by
// module name.
func ModuleAddresses() map[string]string {
	names := []string{ModuleToken, ModuleDistributer, ModuleBurner, ModuleLedger, ModuleBonus, ModuleStaking}
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = nativecommon.ModuleAddress(name).Hex()
	}
	return out
}

// Engines is the set of components an operation may touch. Every engine reads
// and writes through the operation's write set.
type Engines struct {
	Book        *bank.Book
	Token       *token.Token
	Distributer *token.Distributer
	Burner      *token.Burner
	Ledger      *vesting.Engine
	Bonus       *bonus.Engine
	Staking     *staking.Engine
	Migrator    *staking.AssetMigrator
}

// Receipt describes a committed operation.
type Receipt struct {
	ID     uuid.UUID
	Op     string
	Block  uint64
	Time   uint64
	Events []events.Event
}

// Options tunes a runtime. Zero values are usable.
type Options struct {
	Logger  *slog.Logger
	Emitter events.Emitter
	Clock   *Clock
}

// Runtime serializes every ledger operation. Operations run one at a time
// against a write overlay that either lands in the database as a whole or
// not at all. Events are held back until commit.
type Runtime struct {
	mu sync.Mutex

	db      storage.Database
	overlay *storage.Overlay
	state   *state.Manager
	buffer  *events.Buffer
	emitter events.Emitter
	clock   *Clock
	logger  *slog.Logger
	tracer  trace.Tracer

	engines Engines

	ledgers  []*vesting.Engine
	bonuses  []*bonus.Engine
	stakings []*staking.Engine
}

// NewRuntime wires the engines over db.
func NewRuntime(db storage.Database, opts Options) *Runtime {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	emitter := opts.Emitter
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = NewClock(0, 0)
	}
	overlay := storage.NewOverlay(db)
	r := &Runtime{
		db:      db,
		overlay: overlay,
		state:   state.NewManager(overlay),
		buffer:  &events.Buffer{},
		emitter: emitter,
		clock:   clock,
		logger:  logger.With(slog.String("component", "runtime")),
		tracer:  otel.Tracer("groledger/core"),
	}
	r.restoreClock()

	book := bank.NewBook()
	book.SetState(r.state)
	book.SetEmitter(r.buffer)

	tok := token.NewToken(nativecommon.ModuleAddress(ModuleToken), book)
	tok.SetState(r.state)

	dist := token.NewDistributer(nativecommon.ModuleAddress(ModuleDistributer), tok)
	dist.SetState(r.state)
	dist.SetEmitter(r.buffer)

	r.engines = Engines{
		Book:        book,
		Token:       tok,
		Distributer: dist,
		Migrator:    staking.NewAssetMigrator(book),
	}
	r.engines.Ledger = r.NewLedger(ModuleLedger, nil)
	r.engines.Bonus = r.NewBonus(ModuleBonus, nil)
	r.engines.Ledger.SetBonusPool(r.engines.Bonus)
	r.engines.Burner = token.NewBurner(nativecommon.ModuleAddress(ModuleBurner), dist, r.engines.Ledger)
	r.engines.Staking = r.NewStaking(ModuleStaking)
	return r
}

// Clock returns the environment clock.
func (r *Runtime) Clock() *Clock { return r.clock }

// Engines exposes the primary engines. Use them only inside Execute or View.
func (r *Runtime) Engines() *Engines { return &r.engines }

// NewLedger registers a vesting ledger under the module name. A predecessor
// turns it into a successor that reads positions through lazily. A successor
// pays out only once Distributer.SetVester points a category at it.
func (r *Runtime) NewLedger(name string, previous vesting.Predecessor) *vesting.Engine {
	ledger := vesting.NewEngine(nativecommon.ModuleAddress(name))
	ledger.SetState(r.state)
	ledger.SetEmitter(r.buffer)
	ledger.SetNowFunc(r.clock.Now)
	ledger.SetMinter(r.engines.Distributer)
	if r.engines.Bonus != nil {
		ledger.SetBonusPool(r.engines.Bonus)
	}
	if previous != nil {
		ledger.SetPredecessor(previous)
	}
	r.ledgers = append(r.ledgers, ledger)
	return ledger
}

// NewBonus registers a bonus pool reading the primary ledger.
func (r *Runtime) NewBonus(name string, previous bonus.Predecessor) *bonus.Engine {
	pool := bonus.NewEngine(nativecommon.ModuleAddress(name))
	pool.SetState(r.state)
	pool.SetEmitter(r.buffer)
	pool.SetNowFunc(r.clock.Now)
	pool.SetLedger(r.engines.Ledger)
	if previous != nil {
		pool.SetPredecessor(previous)
	}
	r.bonuses = append(r.bonuses, pool)
	return pool
}

// NewStaking registers a reward engine paying into the primary ledger.
func (r *Runtime) NewStaking(name string) *staking.Engine {
	engine := staking.NewEngine(nativecommon.ModuleAddress(name))
	engine.SetState(r.state)
	engine.SetEmitter(r.buffer)
	engine.SetBlockFunc(r.clock.Block)
	engine.SetAssetBook(r.engines.Book)
	engine.SetVesting(r.engines.Ledger)
	engine.SetMigrator(r.engines.Migrator)
	r.stakings = append(r.stakings, engine)
	return engine
}

// Initialized reports whether Init has committed.
func (r *Runtime) Initialized() bool {
	var ok bool
	_ = r.View(func(e *Engines) error {
		_, err := e.Token.Cap()
		ok = err == nil
		return nil
	})
	return ok
}

// Init initializes every primary engine and allow-lists the internal
// depositors on the ledger.
func (r *Runtime) Init(ctx context.Context, s Settings) (*Receipt, error) {
	roles := s.Roles
	return r.Execute(ctx, "runtime.init", func(e *Engines) error {
		if err := e.Token.Initialize(roles.Owner, nil); err != nil {
			return fmt.Errorf("token: %w", err)
		}
		if err := e.Token.SetDistributer(roles.Owner, e.Distributer.Address()); err != nil {
			return fmt.Errorf("token: %w", err)
		}
		if err := e.Distributer.Initialize(token.DistributerParams{
			Owner:           roles.Owner,
			DAOVester:       roles.DAOVester,
			InvestorVester:  roles.InvestorVester,
			TeamVester:      roles.TeamVester,
			CommunityVester: e.Ledger.Address(),
			Burner:          e.Burner.Address(),
		}); err != nil {
			return fmt.Errorf("distributer: %w", err)
		}
		if err := e.Ledger.Initialize(vesting.Params{
			Owner:            roles.Owner,
			Timelock:         roles.Timelock,
			MaxLockPeriod:    s.maxLockPeriod(),
			InitUnlockedBps:  s.InitUnlockedBps,
			InstantUnlockBps: s.InstantUnlockBps,
		}); err != nil {
			return fmt.Errorf("vesting: %w", err)
		}
		for _, vester := range []common.Address{e.Staking.Address(), e.Bonus.Address(), e.Burner.Address()} {
			if err := e.Ledger.SetVester(roles.Owner, vester, true); err != nil {
				return fmt.Errorf("vesting: %w", err)
			}
		}
		if err := e.Bonus.Initialize(bonus.Params{
			Owner:      roles.Owner,
			Maintainer: roles.Maintainer,
			ClaimDelay: s.ClaimDelay,
		}); err != nil {
			return fmt.Errorf("bonus: %w", err)
		}
		if err := e.Staking.Initialize(staking.Params{
			Owner:             roles.Owner,
			Manager:           roles.Manager,
			Timelock:          roles.Timelock,
			RewardPerBlock:    s.RewardPerBlock,
			MaxRewardPerBlock: s.MaxRewardPerBlock,
		}); err != nil {
			return fmt.Errorf("staking: %w", err)
		}
		return nil
	})
}

// View runs fn against the committed state. Writes made by fn are dropped.
func (r *Runtime) View(fn func(*Engines) error) error {
	if fn == nil {
		return errNilOp
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.rollback()
	return fn(&r.engines)
}

// Execute runs fn as one all-or-nothing operation. On success the write set is
// committed and the buffered events are forwarded to the emitter in order.
// On failure nothing persists and no event is published.
func (r *Runtime) Execute(ctx context.Context, op string, fn func(*Engines) error) (*Receipt, error) {
	if fn == nil {
		return nil, errNilOp
	}
	started := time.Now()
	ctx, span := r.tracer.Start(ctx, op, trace.WithAttributes(attribute.String("ledger.op", op)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, r.fail(span, op, started, err)
	}
	if err := fn(&r.engines); err != nil {
		r.rollback()
		return nil, r.fail(span, op, started, err)
	}
	if err := r.state.ClockPut(r.clock.Now(), r.clock.Block()); err != nil {
		r.rollback()
		return nil, r.fail(span, op, started, err)
	}
	if err := r.overlay.Commit(); err != nil {
		r.rollback()
		return nil, r.fail(span, op, started, err)
	}

	evts := r.buffer.FlushTo(r.emitter)
	for _, evt := range evts {
		observability.Events().Record(evt.EventType())
		metrics.Tokenomics().ObserveEvent(evt)
	}
	r.publishTotals()

	receipt := &Receipt{
		ID:     uuid.New(),
		Op:     op,
		Block:  r.clock.Block(),
		Time:   r.clock.Now(),
		Events: evts,
	}
	span.SetAttributes(
		attribute.String("ledger.receipt", receipt.ID.String()),
		attribute.Int("ledger.events", len(evts)),
	)
	observability.Ops().Observe(op, "", time.Since(started))
	r.logger.DebugContext(ctx, "operation committed",
		slog.String("op", op),
		slog.String("receipt", receipt.ID.String()),
		slog.Uint64("block", receipt.Block),
		slog.Int("events", len(evts)))
	return receipt, nil
}

// restoreClock moves the clock up to the last committed position so that a
// restart never runs time backwards behind stored positions.
func (r *Runtime) restoreClock() {
	now, block, ok, err := r.state.ClockGet()
	if err != nil {
		r.logger.Warn("clock restore failed", slog.Any("error", err))
		return
	}
	if ok {
		r.clock.Set(now, block)
	}
}

func (r *Runtime) rollback() {
	r.overlay.Discard()
	r.buffer.Reset()
}

func (r *Runtime) fail(span trace.Span, op string, started time.Time, err error) error {
	kind := nativecommon.KindOf(err).String()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	observability.Ops().Observe(op, kind, time.Since(started))
	r.logger.Warn("operation failed",
		slog.String("op", op),
		slog.String("kind", kind),
		slog.Any("error", err))
	return err
}

// publishTotals refreshes the principal and bonus gauges from the committed
// state. Engines that are not initialized yet are skipped.
func (r *Runtime) publishTotals() {
	var principal, pool *big.Int
	if agg, err := r.engines.Ledger.Aggregate(); err == nil && agg != nil {
		principal = agg.TotalPrincipal
	}
	if total, err := r.engines.Bonus.TotalBonus(); err == nil {
		pool = total
	}
	metrics.Tokenomics().SetTotals(principal, pool)
}

// Close releases the database.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollback()
	r.db.Close()
}
