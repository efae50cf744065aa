package state

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Balances are kept as 256-bit words so that nothing the book writes can
// exceed what a token contract could represent.
func (m *Manager) getWord(key []byte) (*big.Int, error) {
	var raw []byte
	ok, err := m.KVGet(key, &raw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	return new(uint256.Int).SetBytes(raw).ToBig(), nil
}

func (m *Manager) putWord(key []byte, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return m.KVDelete(key)
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("balance negative")
	}
	word, overflow := uint256.FromBig(amount)
	if overflow {
		return fmt.Errorf("balance overflow")
	}
	return m.KVPut(key, word.Bytes())
}

func (m *Manager) BankBalanceGet(asset string, addr common.Address) (*big.Int, error) {
	return m.getWord(bankBalanceKey(asset, addr))
}

func (m *Manager) BankBalancePut(asset string, addr common.Address, amount *big.Int) error {
	return m.putWord(bankBalanceKey(asset, addr), amount)
}

func (m *Manager) BankSupplyGet(asset string) (*big.Int, error) {
	return m.getWord(bankSupplyKey(asset))
}

func (m *Manager) BankSupplyPut(asset string, amount *big.Int) error {
	return m.putWord(bankSupplyKey(asset), amount)
}
