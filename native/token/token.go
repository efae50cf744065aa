package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"groledger/native/bank"
	nativecommon "groledger/native/common"
)

type engineState interface {
	TokenParamsGet(token common.Address) (*TokenParams, bool, error)
	TokenParamsPut(token common.Address, params *TokenParams) error
	DistributerParamsGet(distributer common.Address) (*DistributerParams, bool, error)
	DistributerParamsPut(distributer common.Address, params *DistributerParams) error
	DistributerQuotaGet(distributer common.Address, category string) (nativecommon.Allowance, bool, error)
	DistributerQuotaPut(distributer common.Address, category string, quota nativecommon.Allowance) error
}

// Token is the capped governance token. Balances live in the shared book
// under Symbol; only the bound distributer may change the supply.
type Token struct {
	addr  common.Address
	state engineState
	book  *bank.Book
}

func NewToken(addr common.Address, book *bank.Book) *Token {
	return &Token{addr: addr, book: book}
}

func (t *Token) Address() common.Address { return t.addr }

func (t *Token) SetState(state engineState) { t.state = state }

// Initialize records the owner and supply cap. A nil cap uses MaxTotalSupply.
func (t *Token) Initialize(owner common.Address, supplyCap *big.Int) error {
	if t.state == nil {
		return errNilState
	}
	if _, ok, err := t.state.TokenParamsGet(t.addr); err != nil {
		return err
	} else if ok {
		return ErrAlreadyInitialized
	}
	if supplyCap == nil {
		supplyCap = MaxTotalSupply
	}
	return t.state.TokenParamsPut(t.addr, &TokenParams{Owner: owner, Cap: new(big.Int).Set(supplyCap)})
}

func (t *Token) params() (*TokenParams, error) {
	if t.state == nil {
		return nil, errNilState
	}
	if t.book == nil {
		return nil, errNilBook
	}
	params, ok, err := t.state.TokenParamsGet(t.addr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotInitialized
	}
	return params, nil
}

// SetDistributer binds the only account allowed to mint and burn.
func (t *Token) SetDistributer(caller, distributer common.Address) error {
	params, err := t.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Owner, ErrNotOwner); err != nil {
		return err
	}
	params.Distributer = distributer
	return t.state.TokenParamsPut(t.addr, params)
}

// Cap returns the maximum supply.
func (t *Token) Cap() (*big.Int, error) {
	params, err := t.params()
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(params.Cap), nil
}

func (t *Token) Mint(caller, to common.Address, amount *big.Int) error {
	params, err := t.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Distributer, ErrNotDistributer); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	supply, err := t.book.TotalSupply(Symbol)
	if err != nil {
		return err
	}
	if new(big.Int).Add(supply, amount).Cmp(params.Cap) > 0 {
		return ErrCapExceeded
	}
	return t.book.Mint(Symbol, to, amount)
}

func (t *Token) Burn(caller, from common.Address, amount *big.Int) error {
	params, err := t.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Distributer, ErrNotDistributer); err != nil {
		return err
	}
	return t.book.Burn(Symbol, from, amount)
}

func (t *Token) Transfer(from, to common.Address, amount *big.Int) error {
	if t.book == nil {
		return errNilBook
	}
	return t.book.Transfer(Symbol, from, to, amount)
}

func (t *Token) BalanceOf(addr common.Address) (*big.Int, error) {
	if t.book == nil {
		return nil, errNilBook
	}
	return t.book.BalanceOf(Symbol, addr)
}

func (t *Token) TotalSupply() (*big.Int, error) {
	if t.book == nil {
		return nil, errNilBook
	}
	return t.book.TotalSupply(Symbol)
}
