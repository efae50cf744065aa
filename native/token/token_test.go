package token

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"groledger/native/bank"
	nativecommon "groledger/native/common"
)

type mockState struct {
	tokens   map[common.Address]*TokenParams
	dists    map[common.Address]*DistributerParams
	quotas   map[string]nativecommon.Allowance
	balances map[string]*big.Int
	supply   map[string]*big.Int
}

func newMockState() *mockState {
	return &mockState{
		tokens:   make(map[common.Address]*TokenParams),
		dists:    make(map[common.Address]*DistributerParams),
		quotas:   make(map[string]nativecommon.Allowance),
		balances: make(map[string]*big.Int),
		supply:   make(map[string]*big.Int),
	}
}

func (m *mockState) TokenParamsGet(token common.Address) (*TokenParams, bool, error) {
	p, ok := m.tokens[token]
	if !ok {
		return nil, false, nil
	}
	cp := *p
	return &cp, true, nil
}

func (m *mockState) TokenParamsPut(token common.Address, params *TokenParams) error {
	cp := *params
	m.tokens[token] = &cp
	return nil
}

func (m *mockState) DistributerParamsGet(d common.Address) (*DistributerParams, bool, error) {
	p, ok := m.dists[d]
	if !ok {
		return nil, false, nil
	}
	cp := *p
	return &cp, true, nil
}

func (m *mockState) DistributerParamsPut(d common.Address, params *DistributerParams) error {
	cp := *params
	m.dists[d] = &cp
	return nil
}

func (m *mockState) DistributerQuotaGet(d common.Address, category string) (nativecommon.Allowance, bool, error) {
	q, ok := m.quotas[d.Hex()+category]
	return q, ok, nil
}

func (m *mockState) DistributerQuotaPut(d common.Address, category string, quota nativecommon.Allowance) error {
	m.quotas[d.Hex()+category] = quota
	return nil
}

func (m *mockState) BankBalanceGet(asset string, addr common.Address) (*big.Int, error) {
	if v := m.balances[asset+addr.Hex()]; v != nil {
		return new(big.Int).Set(v), nil
	}
	return big.NewInt(0), nil
}

func (m *mockState) BankBalancePut(asset string, addr common.Address, amount *big.Int) error {
	m.balances[asset+addr.Hex()] = new(big.Int).Set(amount)
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

type fakeLedger struct {
	deposits map[common.Address]*big.Int
	caller   common.Address
	locked   bool
}

func (f *fakeLedger) Deposit(caller, account common.Address, amount *big.Int, lock bool) error {
	if f.deposits == nil {
		f.deposits = make(map[common.Address]*big.Int)
	}
	if f.deposits[account] == nil {
		f.deposits[account] = big.NewInt(0)
	}
	f.deposits[account].Add(f.deposits[account], amount)
	f.caller = caller
	f.locked = lock
	return nil
}

var (
	ownerAddr     = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	tokenAddr     = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	distAddr      = common.HexToAddress("0x00000000000000000000000000000000000000c2")
	burnerAddr    = common.HexToAddress("0x00000000000000000000000000000000000000c3")
	daoVester     = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	investVester  = common.HexToAddress("0x00000000000000000000000000000000000000d2")
	teamVester    = common.HexToAddress("0x00000000000000000000000000000000000000d3")
	communityVest = common.HexToAddress("0x00000000000000000000000000000000000000d4")
	alice         = common.HexToAddress("0x00000000000000000000000000000000000000b1")
)

type harness struct {
	token  *Token
	dist   *Distributer
	burner *Burner
	ledger *fakeLedger
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	st := newMockState()
	book := bank.NewBook()
	book.SetState(st)
	h := &harness{token: NewToken(tokenAddr, book), ledger: &fakeLedger{}}
	h.token.SetState(st)
	if err := h.token.Initialize(ownerAddr, nil); err != nil {
		t.Fatalf("token initialize: %v", err)
	}
	if err := h.token.SetDistributer(ownerAddr, distAddr); err != nil {
		t.Fatalf("set distributer: %v", err)
	}
	h.dist = NewDistributer(distAddr, h.token)
	h.dist.SetState(st)
	if err := h.dist.Initialize(DistributerParams{
		Owner:           ownerAddr,
		DAOVester:       daoVester,
		InvestorVester:  investVester,
		TeamVester:      teamVester,
		CommunityVester: communityVest,
		Burner:          burnerAddr,
	}); err != nil {
		t.Fatalf("distributer initialize: %v", err)
	}
	h.burner = NewBurner(burnerAddr, h.dist, h.ledger)
	return h
}

func mustEqual(t *testing.T, label string, got, want *big.Int) {
	t.Helper()
	if got.Cmp(want) != 0 {
		t.Fatalf("%s: got %s want %s", label, got, want)
	}
}

func (h *harness) remaining(t *testing.T, c Category) *big.Int {
	t.Helper()
	v, err := h.dist.Remaining(c)
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	return v
}

func (h *harness) balance(t *testing.T, addr common.Address) *big.Int {
	t.Helper()
	v, err := h.token.BalanceOf(addr)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	return v
}

func TestQuotasSumToCap(t *testing.T) {
	sum := big.NewInt(0)
	for _, c := range Categories {
		sum.Add(sum, DefaultQuotas[c])
	}
	mustEqual(t, "quotas", sum, MaxTotalSupply)
}

func TestVestersMintFromOwnQuota(t *testing.T) {
	h := newHarness(t)
	amount := big.NewInt(100)
	if err := h.dist.Mint(ownerAddr, alice, amount); !errors.Is(err, ErrNotVester) {
		t.Fatalf("expected !vester, got %v", err)
	}
	if err := h.dist.Mint(daoVester, alice, amount); !errors.Is(err, ErrNotVester) {
		t.Fatalf("dao vester must use MintDao, got %v", err)
	}
	for _, tc := range []struct {
		vester   common.Address
		category Category
	}{
		{investVester, CategoryInvestor},
		{teamVester, CategoryTeam},
		{communityVest, CategoryCommunity},
	} {
		if err := h.dist.Mint(tc.vester, alice, amount); err != nil {
			t.Fatalf("mint %s: %v", tc.category, err)
		}
		mustEqual(t, string(tc.category), h.remaining(t, tc.category), new(big.Int).Sub(DefaultQuotas[tc.category], amount))
	}
	mustEqual(t, "alice", h.balance(t, alice), big.NewInt(300))
}

func TestMintDaoChoosesQuota(t *testing.T) {
	h := newHarness(t)
	if err := h.dist.MintDao(teamVester, alice, big.NewInt(1), true); !errors.Is(err, ErrNotDAOVester) {
		t.Fatalf("expected !DAO_VESTER, got %v", err)
	}
	if err := h.dist.MintDao(daoVester, alice, DefaultQuotas[CategoryCommunity], true); err != nil {
		t.Fatalf("mint dao community: %v", err)
	}
	mustEqual(t, "community", h.remaining(t, CategoryCommunity), big.NewInt(0))
	if err := h.dist.MintDao(daoVester, alice, big.NewInt(1), true); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected quota exceeded, got %v", err)
	}
	if err := h.dist.MintDao(daoVester, alice, DefaultQuotas[CategoryDAO], false); err != nil {
		t.Fatalf("mint dao: %v", err)
	}
	mustEqual(t, "dao", h.remaining(t, CategoryDAO), big.NewInt(0))
}

func TestSetVesterMovesQuota(t *testing.T) {
	h := newHarness(t)
	next := common.HexToAddress("0x00000000000000000000000000000000000000d9")
	if err := h.dist.SetVester(alice, CategoryCommunity, next); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}
	if err := h.dist.SetVester(ownerAddr, CategoryCommunity, common.Address{}); !errors.Is(err, ErrInvalidVester) {
		t.Fatalf("expected invalid vester, got %v", err)
	}
	if err := h.dist.SetVester(ownerAddr, Category("airdrop"), next); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected unknown category, got %v", err)
	}
	if err := h.dist.SetVester(ownerAddr, CategoryCommunity, next); err != nil {
		t.Fatalf("set vester: %v", err)
	}
	if err := h.dist.Mint(communityVest, alice, big.NewInt(1)); !errors.Is(err, ErrNotVester) {
		t.Fatalf("expected retired vester rejected, got %v", err)
	}
	before := h.remaining(t, CategoryCommunity)
	if err := h.dist.Mint(next, alice, big.NewInt(5)); err != nil {
		t.Fatalf("mint from new vester: %v", err)
	}
	mustEqual(t, "community remaining", h.remaining(t, CategoryCommunity), new(big.Int).Sub(before, big.NewInt(5)))
}

func TestTokenCapAndDistributerGate(t *testing.T) {
	h := newHarness(t)
	if err := h.token.Mint(alice, alice, big.NewInt(1)); !errors.Is(err, ErrNotDistributer) {
		t.Fatalf("expected !distributer, got %v", err)
	}
	if err := h.token.Mint(distAddr, alice, new(big.Int).Add(MaxTotalSupply, big.NewInt(1))); !errors.Is(err, ErrCapExceeded) {
		t.Fatalf("expected > cap, got %v", err)
	}
	if err := h.token.SetDistributer(alice, alice); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected !owner, got %v", err)
	}
}

func TestBurnRefillsCommunity(t *testing.T) {
	h := newHarness(t)
	amount := big.NewInt(10_000)
	if err := h.dist.Mint(investVester, alice, amount); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := h.dist.Burn(alice, alice, amount); !errors.Is(err, ErrNotBurner) {
		t.Fatalf("expected !BURNER, got %v", err)
	}
	if err := h.dist.Burn(burnerAddr, alice, big.NewInt(20_000)); !errors.Is(err, bank.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
	if err := h.dist.Burn(burnerAddr, alice, amount); err != nil {
		t.Fatalf("burn: %v", err)
	}
	mustEqual(t, "community", h.remaining(t, CategoryCommunity), new(big.Int).Add(DefaultQuotas[CategoryCommunity], amount))
	supply, _ := h.token.TotalSupply()
	mustEqual(t, "supply", supply, big.NewInt(0))
}

func TestReVestLocksBurnedTokens(t *testing.T) {
	h := newHarness(t)
	if err := h.dist.Mint(communityVest, alice, big.NewInt(1000)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := h.burner.ReVest(alice, big.NewInt(400)); err != nil {
		t.Fatalf("revest: %v", err)
	}
	mustEqual(t, "balance", h.balance(t, alice), big.NewInt(600))
	mustEqual(t, "vested", h.ledger.deposits[alice], big.NewInt(400))
	if h.ledger.caller != burnerAddr || !h.ledger.locked {
		t.Fatalf("unexpected ledger deposit caller=%s locked=%v", h.ledger.caller.Hex(), h.ledger.locked)
	}
	if err := h.burner.ReVest(alice, big.NewInt(601)); err == nil {
		t.Fatalf("expected revest beyond balance to fail")
	}
}
