package vesting

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type mockState struct {
	paused     map[string]bool
	accounts   map[common.Address]map[common.Address]*Account
	aggregates map[common.Address]*Aggregate
	params     map[common.Address]*Params
	vesters    map[common.Address]map[common.Address]bool
}

func newMockState() *mockState {
	return &mockState{
		paused:     make(map[string]bool),
		accounts:   make(map[common.Address]map[common.Address]*Account),
		aggregates: make(map[common.Address]*Aggregate),
		params:     make(map[common.Address]*Params),
		vesters:    make(map[common.Address]map[common.Address]bool),
	}
}

func (m *mockState) IsPaused(module string) bool { return m.paused[module] }

func (m *mockState) SetPaused(module string, paused bool) error {
	m.paused[module] = paused
	return nil
}

func (m *mockState) VestingAccountGet(ledger, account common.Address) (*Account, bool, error) {
	acct, ok := m.accounts[ledger][account]
	if !ok {
		return nil, false, nil
	}
	return acct.Clone(), true, nil
}

func (m *mockState) VestingAccountPut(ledger, account common.Address, acct *Account) error {
	if m.accounts[ledger] == nil {
		m.accounts[ledger] = make(map[common.Address]*Account)
	}
	m.accounts[ledger][account] = acct.Clone()
	return nil
}

func (m *mockState) VestingAggregateGet(ledger common.Address) (*Aggregate, bool, error) {
	agg, ok := m.aggregates[ledger]
	if !ok {
		return nil, false, nil
	}
	return agg.Clone(), true, nil
}

func (m *mockState) VestingAggregatePut(ledger common.Address, agg *Aggregate) error {
	m.aggregates[ledger] = agg.Clone()
	return nil
}

func (m *mockState) VestingParamsGet(ledger common.Address) (*Params, bool, error) {
	params, ok := m.params[ledger]
	if !ok {
		return nil, false, nil
	}
	cp := *params
	return &cp, true, nil
}

func (m *mockState) VestingParamsPut(ledger common.Address, params *Params) error {
	cp := *params
	m.params[ledger] = &cp
	return nil
}

func (m *mockState) VestingVesterGet(ledger, vester common.Address) (bool, error) {
	return m.vesters[ledger][vester], nil
}

func (m *mockState) VestingVesterPut(ledger, vester common.Address, allowed bool) error {
	if m.vesters[ledger] == nil {
		m.vesters[ledger] = make(map[common.Address]bool)
	}
	m.vesters[ledger][vester] = allowed
	return nil
}

type fakeBonus struct {
	caller common.Address
	total  *big.Int
	calls  int
}

func (f *fakeBonus) Add(caller common.Address, amount *big.Int) error {
	f.caller = caller
	if f.total == nil {
		f.total = big.NewInt(0)
	}
	f.total.Add(f.total, amount)
	f.calls++
	return nil
}

func (f *fakeBonus) Total() *big.Int {
	if f.total == nil {
		return big.NewInt(0)
	}
	return f.total
}

type fakeMinter struct {
	minted map[common.Address]*big.Int
}

func (f *fakeMinter) Mint(caller, to common.Address, amount *big.Int) error {
	if f.minted == nil {
		f.minted = make(map[common.Address]*big.Int)
	}
	if f.minted[to] == nil {
		f.minted[to] = big.NewInt(0)
	}
	f.minted[to].Add(f.minted[to], amount)
	return nil
}

func (f *fakeMinter) Of(addr common.Address) *big.Int {
	if v := f.minted[addr]; v != nil {
		return v
	}
	return big.NewInt(0)
}

func (f *fakeMinter) Total() *big.Int {
	sum := big.NewInt(0)
	for _, v := range f.minted {
		sum.Add(sum, v)
	}
	return sum
}
