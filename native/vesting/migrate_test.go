package vesting

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestSuccessorReadsThroughPredecessor(t *testing.T) {
	st := newMockState()
	old := newHarnessOn(t, st, common.HexToAddress("0x00000000000000000000000000000000000000f1"), nil)
	old.deposit(t, alice, tokens(1_000))
	old.deposit(t, bob, tokens(3_000))
	if err := old.engine.SetStatus(timelockAddr, true); err != nil {
		t.Fatalf("freeze old ledger: %v", err)
	}

	next := newHarnessOn(t, st, common.HexToAddress("0x00000000000000000000000000000000000000f2"), old.engine)
	next.now = t0 + 1_000

	agg, err := next.engine.Aggregate()
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	mustEqual(t, "bootstrapped principal", agg.TotalPrincipal, tokens(4_000))
	if agg.StartTime != t0 {
		t.Fatalf("unexpected bootstrapped start: got %d want %d", agg.StartTime, t0)
	}
	if err := next.engine.MigrateFromPrevious(ownerAddr); !errors.Is(err, ErrAlreadyMigrated) {
		t.Fatalf("expected ErrAlreadyMigrated, got %v", err)
	}

	pos, err := next.engine.Position(alice)
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	mustEqual(t, "read-through total", pos.Total, tokens(1_000))
	if _, ok := st.accounts[next.engine.Address()][alice]; ok {
		t.Fatalf("queries must not persist read-through positions")
	}

	next.deposit(t, alice, tokens(1_000))
	pos, _ = next.engine.Position(alice)
	mustEqual(t, "merged total", pos.Total, tokens(2_000))
	if pos.StartTime != t0+500 {
		t.Fatalf("unexpected merged start: got %d want %d", pos.StartTime, t0+500)
	}
	types := next.events.Types()
	if len(types) < 2 || types[len(types)-2] != EventTypeAccountMigrated {
		t.Fatalf("expected migration event before deposit, got %v", types)
	}
	agg, _ = next.engine.Aggregate()
	mustEqual(t, "principal after deposit", agg.TotalPrincipal, tokens(5_000))

	migrated, err := next.engine.MigrateAccount(bob)
	if err != nil || !migrated {
		t.Fatalf("migrate account: %v %v", migrated, err)
	}
	migrated, err = next.engine.MigrateAccount(bob)
	if err != nil || migrated {
		t.Fatalf("second migration must be a no-op: %v %v", migrated, err)
	}

	oldPos, _ := old.engine.Position(alice)
	mustEqual(t, "old ledger untouched", oldPos.Total, tokens(1_000))
}

func TestMigrateFromPreviousRequiresPredecessor(t *testing.T) {
	h := newHarness(t)
	if err := h.engine.MigrateFromPrevious(ownerAddr); !errors.Is(err, ErrNoPredecessor) {
		t.Fatalf("expected ErrNoPredecessor, got %v", err)
	}
	if err := h.engine.MigrateFromPrevious(alice); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}
