package staking

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type userKey struct {
	engine  common.Address
	pid     uint64
	account common.Address
}

type poolKey struct {
	engine common.Address
	pid    uint64
}

type mockState struct {
	paused   map[string]bool
	params   map[common.Address]*Params
	pools    map[poolKey]*Pool
	index    map[common.Address]map[string]uint64
	users    map[userKey]*UserStake
	migrated map[userKey]bool
}

func newMockState() *mockState {
	return &mockState{
		paused:   make(map[string]bool),
		params:   make(map[common.Address]*Params),
		pools:    make(map[poolKey]*Pool),
		index:    make(map[common.Address]map[string]uint64),
		users:    make(map[userKey]*UserStake),
		migrated: make(map[userKey]bool),
	}
}

func (m *mockState) IsPaused(module string) bool { return m.paused[module] }

func (m *mockState) SetPaused(module string, paused bool) error {
	m.paused[module] = paused
	return nil
}

func (m *mockState) StakingParamsGet(engine common.Address) (*Params, bool, error) {
	p, ok := m.params[engine]
	if !ok {
		return nil, false, nil
	}
	return p.Clone(), true, nil
}

func (m *mockState) StakingParamsPut(engine common.Address, params *Params) error {
	m.params[engine] = params.Clone()
	return nil
}

func (m *mockState) StakingPoolGet(engine common.Address, pid uint64) (*Pool, bool, error) {
	p, ok := m.pools[poolKey{engine, pid}]
	if !ok {
		return nil, false, nil
	}
	return p.Clone(), true, nil
}

func (m *mockState) StakingPoolPut(engine common.Address, pid uint64, pool *Pool) error {
	m.pools[poolKey{engine, pid}] = pool.Clone()
	return nil
}

func (m *mockState) StakingAssetIndexGet(engine common.Address, asset string) (uint64, bool, error) {
	pid, ok := m.index[engine][asset]
	return pid, ok, nil
}

func (m *mockState) StakingAssetIndexPut(engine common.Address, asset string, pid uint64) error {
	if m.index[engine] == nil {
		m.index[engine] = make(map[string]uint64)
	}
	m.index[engine][asset] = pid
	return nil
}

func (m *mockState) StakingUserGet(engine common.Address, pid uint64, account common.Address) (*UserStake, bool, error) {
	u, ok := m.users[userKey{engine, pid, account}]
	if !ok {
		return nil, false, nil
	}
	return u.Clone(), true, nil
}

func (m *mockState) StakingUserPut(engine common.Address, pid uint64, account common.Address, stake *UserStake) error {
	m.users[userKey{engine, pid, account}] = stake.Clone()
	return nil
}

func (m *mockState) StakingUserMigratedGet(engine common.Address, pid uint64, account common.Address) (bool, error) {
	return m.migrated[userKey{engine, pid, account}], nil
}

func (m *mockState) StakingUserMigratedPut(engine common.Address, pid uint64, account common.Address) error {
	m.migrated[userKey{engine, pid, account}] = true
	return nil
}

type fakeBook struct {
	balances map[string]map[common.Address]*big.Int
}

func newFakeBook() *fakeBook {
	return &fakeBook{balances: make(map[string]map[common.Address]*big.Int)}
}

func (b *fakeBook) BalanceOf(asset string, addr common.Address) *big.Int {
	if v := b.balances[asset][addr]; v != nil {
		return new(big.Int).Set(v)
	}
	return big.NewInt(0)
}

func (b *fakeBook) adjust(asset string, addr common.Address, delta *big.Int) {
	if b.balances[asset] == nil {
		b.balances[asset] = make(map[common.Address]*big.Int)
	}
	b.balances[asset][addr] = new(big.Int).Add(b.BalanceOf(asset, addr), delta)
}

func (b *fakeBook) Mint(asset string, to common.Address, amount *big.Int) error {
	b.adjust(asset, to, amount)
	return nil
}

func (b *fakeBook) Burn(asset string, from common.Address, amount *big.Int) error {
	if b.BalanceOf(asset, from).Cmp(amount) < 0 {
		return fmt.Errorf("burn %s: insufficient balance", asset)
	}
	b.adjust(asset, from, new(big.Int).Neg(amount))
	return nil
}

func (b *fakeBook) Transfer(asset string, from, to common.Address, amount *big.Int) error {
	if err := b.Burn(asset, from, amount); err != nil {
		return err
	}
	return b.Mint(asset, to, amount)
}

type vestCall struct {
	caller  common.Address
	account common.Address
	amount  *big.Int
	lock    bool
}

type fakeVester struct {
	calls []vestCall
}

func (v *fakeVester) Deposit(caller, account common.Address, amount *big.Int, lock bool) error {
	v.calls = append(v.calls, vestCall{caller, account, new(big.Int).Set(amount), lock})
	return nil
}

func (v *fakeVester) Total(account common.Address) *big.Int {
	sum := big.NewInt(0)
	for _, c := range v.calls {
		if c.account == account {
			sum.Add(sum, c.amount)
		}
	}
	return sum
}
