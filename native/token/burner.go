package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger is the vesting entry point the burner deposits into.
type Ledger interface {
	Deposit(caller, account common.Address, amount *big.Int, lock bool) error
}

// Burner turns liquid tokens back into a locked vesting position.
type Burner struct {
	addr        common.Address
	distributer *Distributer
	ledger      Ledger
}

func NewBurner(addr common.Address, distributer *Distributer, ledger Ledger) *Burner {
	return &Burner{addr: addr, distributer: distributer, ledger: ledger}
}

func (b *Burner) Address() common.Address { return b.addr }

// SetLedger points the burner at a vesting ledger, typically after a ledger
// migration.
func (b *Burner) SetLedger(ledger Ledger) { b.ledger = ledger }

// ReVest burns amount of the account's tokens and deposits the same amount
// into the ledger as a locked position.
func (b *Burner) ReVest(account common.Address, amount *big.Int) error {
	if b.distributer == nil || b.ledger == nil {
		return errNoLedger
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err := b.distributer.Burn(b.addr, account, amount); err != nil {
		return err
	}
	return b.ledger.Deposit(b.addr, account, amount, true)
}
