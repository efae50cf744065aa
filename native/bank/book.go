package bank

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"groledger/core/events"
	"groledger/core/types"
	nativecommon "groledger/native/common"
)

const (
	EventTypeMinted      = "bank.minted"
	EventTypeBurned      = "bank.burned"
	EventTypeTransferred = "bank.transferred"
)

var (
	ErrInvalidAsset        = nativecommon.New(nativecommon.KindInvalidArgument, "bank: asset required")
	ErrInvalidAmount       = nativecommon.New(nativecommon.KindInvalidArgument, "bank: amount must be positive")
	ErrInvalidAccount      = nativecommon.New(nativecommon.KindInvalidArgument, "bank: account required")
	ErrInsufficientBalance = nativecommon.New(nativecommon.KindInsufficientBalance, "bank: insufficient balance")
	ErrSupplyUnderflow     = nativecommon.New(nativecommon.KindArithmeticGuard, "bank: supply underflow")

	errNilState = nativecommon.New(nativecommon.KindStateConflict, "bank: state not configured")
)

type bookState interface {
	BankBalanceGet(asset string, addr common.Address) (*big.Int, error)
	BankBalancePut(asset string, addr common.Address, amount *big.Int) error
	BankSupplyGet(asset string) (*big.Int, error)
	BankSupplyPut(asset string, amount *big.Int) error
}

// Book tracks balances of named fungible assets. It has no notion of
// authority; the engines that hold a Book decide who may move what.
type Book struct {
	state   bookState
	emitter events.Emitter
}

func NewBook() *Book {
	return &Book{emitter: events.NoopEmitter{}}
}

func (b *Book) SetState(state bookState) { b.state = state }

func (b *Book) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		b.emitter = events.NoopEmitter{}
		return
	}
	b.emitter = emitter
}

func (b *Book) emit(evt *types.Event) {
	if b.emitter != nil {
		b.emitter.Emit(bankEvent{evt: evt})
	}
}

func checkArgs(asset string, addr common.Address, amount *big.Int) (string, error) {
	asset = strings.TrimSpace(asset)
	if asset == "" {
		return "", ErrInvalidAsset
	}
	if addr == (common.Address{}) {
		return "", ErrInvalidAccount
	}
	if amount == nil || amount.Sign() <= 0 {
		return "", ErrInvalidAmount
	}
	return asset, nil
}

// BalanceOf returns the balance of addr in asset.
func (b *Book) BalanceOf(asset string, addr common.Address) (*big.Int, error) {
	if b.state == nil {
		return nil, errNilState
	}
	return b.state.BankBalanceGet(asset, addr)
}

// TotalSupply returns the outstanding supply of asset.
func (b *Book) TotalSupply(asset string) (*big.Int, error) {
	if b.state == nil {
		return nil, errNilState
	}
	return b.state.BankSupplyGet(asset)
}

// Mint credits amount of asset to addr and grows the supply.
func (b *Book) Mint(asset string, to common.Address, amount *big.Int) error {
	if b.state == nil {
		return errNilState
	}
	asset, err := checkArgs(asset, to, amount)
	if err != nil {
		return err
	}
	supply, err := b.state.BankSupplyGet(asset)
	if err != nil {
		return err
	}
	if err := b.credit(asset, to, amount); err != nil {
		return err
	}
	if err := b.state.BankSupplyPut(asset, new(big.Int).Add(supply, amount)); err != nil {
		return err
	}
	b.emit(movementEvent(EventTypeMinted, asset, common.Address{}, to, amount))
	return nil
}

// Burn debits amount of asset from addr and shrinks the supply.
func (b *Book) Burn(asset string, from common.Address, amount *big.Int) error {
	if b.state == nil {
		return errNilState
	}
	asset, err := checkArgs(asset, from, amount)
	if err != nil {
		return err
	}
	if err := b.debit(asset, from, amount); err != nil {
		return err
	}
	supply, err := b.state.BankSupplyGet(asset)
	if err != nil {
		return err
	}
	if supply.Cmp(amount) < 0 {
		return ErrSupplyUnderflow
	}
	if err := b.state.BankSupplyPut(asset, new(big.Int).Sub(supply, amount)); err != nil {
		return err
	}
	b.emit(movementEvent(EventTypeBurned, asset, from, common.Address{}, amount))
	return nil
}

// Transfer moves amount of asset from one account to another.
func (b *Book) Transfer(asset string, from, to common.Address, amount *big.Int) error {
	if b.state == nil {
		return errNilState
	}
	asset, err := checkArgs(asset, from, amount)
	if err != nil {
		return err
	}
	if to == (common.Address{}) {
		return ErrInvalidAccount
	}
	if err := b.debit(asset, from, amount); err != nil {
		return err
	}
	if err := b.credit(asset, to, amount); err != nil {
		return err
	}
	b.emit(movementEvent(EventTypeTransferred, asset, from, to, amount))
	return nil
}

func (b *Book) credit(asset string, addr common.Address, amount *big.Int) error {
	balance, err := b.state.BankBalanceGet(asset, addr)
	if err != nil {
		return err
	}
	return b.state.BankBalancePut(asset, addr, new(big.Int).Add(balance, amount))
}

func (b *Book) debit(asset string, addr common.Address, amount *big.Int) error {
	balance, err := b.state.BankBalanceGet(asset, addr)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	return b.state.BankBalancePut(asset, addr, new(big.Int).Sub(balance, amount))
}

type bankEvent struct {
	evt *types.Event
}

func (e bankEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e bankEvent) Event() *types.Event { return e.evt }

func movementEvent(kind, asset string, from, to common.Address, amount *big.Int) *types.Event {
	return &types.Event{
		Type: kind,
		Attributes: map[string]string{
			"asset":  asset,
			"from":   from.Hex(),
			"to":     to.Hex(),
			"amount": amount.String(),
		},
	}
}
