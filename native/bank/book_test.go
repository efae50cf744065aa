package bank

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"groledger/core/events"
)

type balanceKey struct {
	asset string
	addr  common.Address
}

type mockState struct {
	balances map[balanceKey]*big.Int
	supply   map[string]*big.Int
}

func newMockState() *mockState {
	return &mockState{balances: make(map[balanceKey]*big.Int), supply: make(map[string]*big.Int)}
}

func (m *mockState) BankBalanceGet(asset string, addr common.Address) (*big.Int, error) {
	if v := m.balances[balanceKey{asset, addr}]; v != nil {
		return new(big.Int).Set(v), nil
	}
	return big.NewInt(0), nil
}

func (m *mockState) BankBalancePut(asset string, addr common.Address, amount *big.Int) error {
	m.balances[balanceKey{asset, addr}] = new(big.Int).Set(amount)
	return nil
}

func (m *mockState) BankSupplyGet(asset string) (*big.Int, error) {
	if v := m.supply[asset]; v != nil {
		return new(big.Int).Set(v), nil
	}
	return big.NewInt(0), nil
}

func (m *mockState) BankSupplyPut(asset string, amount *big.Int) error {
	m.supply[asset] = new(big.Int).Set(amount)
	return nil
}

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

func newBook() (*Book, *events.Buffer) {
	buf := &events.Buffer{}
	b := NewBook()
	b.SetState(newMockState())
	b.SetEmitter(buf)
	return b, buf
}

func balance(t *testing.T, b *Book, asset string, addr common.Address) *big.Int {
	t.Helper()
	v, err := b.BalanceOf(asset, addr)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	return v
}

func TestMintTransferBurn(t *testing.T) {
	b, buf := newBook()
	if err := b.Mint("LP", alice, big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := b.Transfer("LP", alice, bob, big.NewInt(40)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if err := b.Burn("LP", bob, big.NewInt(10)); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if got := balance(t, b, "LP", alice); got.Cmp(big.NewInt(60)) != 0 {
		t.Fatalf("alice: got %s want 60", got)
	}
	if got := balance(t, b, "LP", bob); got.Cmp(big.NewInt(30)) != 0 {
		t.Fatalf("bob: got %s want 30", got)
	}
	supply, _ := b.TotalSupply("LP")
	if supply.Cmp(big.NewInt(90)) != 0 {
		t.Fatalf("supply: got %s want 90", supply)
	}
	want := []string{EventTypeMinted, EventTypeTransferred, EventTypeBurned}
	got := buf.Types()
	if len(got) != len(want) {
		t.Fatalf("events: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: got %s want %s", i, got[i], want[i])
		}
	}
}

func TestAssetsAreIsolated(t *testing.T) {
	b, _ := newBook()
	_ = b.Mint("LP", alice, big.NewInt(5))
	if got := balance(t, b, "LP2", alice); got.Sign() != 0 {
		t.Fatalf("LP2: got %s want 0", got)
	}
	if err := b.Transfer("LP2", alice, bob, big.NewInt(1)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
}

func TestBookRejectsBadArguments(t *testing.T) {
	b, _ := newBook()
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"empty asset", b.Mint("", alice, big.NewInt(1)), ErrInvalidAsset},
		{"zero account", b.Mint("LP", common.Address{}, big.NewInt(1)), ErrInvalidAccount},
		{"zero amount", b.Mint("LP", alice, big.NewInt(0)), ErrInvalidAmount},
		{"nil amount", b.Burn("LP", alice, nil), ErrInvalidAmount},
		{"zero recipient", b.Transfer("LP", alice, common.Address{}, big.NewInt(1)), ErrInvalidAccount},
		{"burn without balance", b.Burn("LP", alice, big.NewInt(1)), ErrInsufficientBalance},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, tc.err, tc.want)
		}
	}
}
