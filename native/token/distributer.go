package token

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"groledger/core/events"
	"groledger/core/types"
	nativecommon "groledger/native/common"
)

const (
	EventTypeDistributed = "distributer.minted"
	EventTypeBurned      = "distributer.burned"
	EventTypeVesterSet   = "distributer.vesterSet"
)

// Distributer mints token issuance against fixed category quotas. Each quota
// is bound to one vester; burns return supply to the community quota.
type Distributer struct {
	addr    common.Address
	state   engineState
	token   *Token
	emitter events.Emitter
}

func NewDistributer(addr common.Address, token *Token) *Distributer {
	return &Distributer{addr: addr, token: token, emitter: events.NoopEmitter{}}
}

func (d *Distributer) Address() common.Address { return d.addr }

func (d *Distributer) SetState(state engineState) { d.state = state }

func (d *Distributer) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		d.emitter = events.NoopEmitter{}
		return
	}
	d.emitter = emitter
}

// Initialize binds the vesters and seeds every quota from DefaultQuotas.
func (d *Distributer) Initialize(params DistributerParams) error {
	if d.state == nil {
		return errNilState
	}
	if _, ok, err := d.state.DistributerParamsGet(d.addr); err != nil {
		return err
	} else if ok {
		return ErrAlreadyInitialized
	}
	for _, category := range Categories {
		quota := nativecommon.Allowance{Cap: new(big.Int).Set(DefaultQuotas[category]), Used: big.NewInt(0)}
		if err := d.state.DistributerQuotaPut(d.addr, string(category), quota); err != nil {
			return err
		}
	}
	cp := params
	return d.state.DistributerParamsPut(d.addr, &cp)
}

func (d *Distributer) params() (*DistributerParams, error) {
	if d.state == nil {
		return nil, errNilState
	}
	params, ok, err := d.state.DistributerParamsGet(d.addr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotInitialized
	}
	return params, nil
}

// SetVester rebinds the vester of category. Redeployed ledgers take over the
// community quota this way.
func (d *Distributer) SetVester(caller common.Address, category Category, vester common.Address) error {
	params, err := d.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Owner, ErrNotOwner); err != nil {
		return err
	}
	if vester == (common.Address{}) {
		return ErrInvalidVester
	}
	switch category {
	case CategoryDAO:
		params.DAOVester = vester
	case CategoryInvestor:
		params.InvestorVester = vester
	case CategoryTeam:
		params.TeamVester = vester
	case CategoryCommunity:
		params.CommunityVester = vester
	default:
		return ErrUnknownCategory
	}
	if err := d.state.DistributerParamsPut(d.addr, params); err != nil {
		return err
	}
	d.emit(&types.Event{
		Type: EventTypeVesterSet,
		Attributes: map[string]string{
			"category": string(category),
			"vester":   vester.Hex(),
		},
	})
	return nil
}

// Remaining reports what is left to mint in category.
func (d *Distributer) Remaining(category Category) (*big.Int, error) {
	if d.state == nil {
		return nil, errNilState
	}
	quota, _, err := d.state.DistributerQuotaGet(d.addr, string(category))
	if err != nil {
		return nil, err
	}
	return quota.Remaining(), nil
}

// Mint issues amount to the caller's quota. The DAO vester must use MintDao.
func (d *Distributer) Mint(caller, to common.Address, amount *big.Int) error {
	params, err := d.params()
	if err != nil {
		return err
	}
	category, ok := params.vesterFor(caller)
	if !ok {
		return ErrNotVester
	}
	return d.mintFrom(category, to, amount)
}

// MintDao issues amount for the DAO vester from the community quota when
// community is set, from the DAO quota otherwise.
func (d *Distributer) MintDao(caller, to common.Address, amount *big.Int, community bool) error {
	params, err := d.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.DAOVester, ErrNotDAOVester); err != nil {
		return err
	}
	category := CategoryDAO
	if community {
		category = CategoryCommunity
	}
	return d.mintFrom(category, to, amount)
}

func (d *Distributer) mintFrom(category Category, to common.Address, amount *big.Int) error {
	if d.token == nil {
		return errNilBook
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	quota, _, err := d.state.DistributerQuotaGet(d.addr, string(category))
	if err != nil {
		return err
	}
	next, err := nativecommon.Draw(quota, amount)
	if err != nil {
		if errors.Is(err, nativecommon.ErrQuotaExceeded) {
			return ErrQuotaExceeded
		}
		return err
	}
	if err := d.state.DistributerQuotaPut(d.addr, string(category), next); err != nil {
		return err
	}
	if err := d.token.Mint(d.addr, to, amount); err != nil {
		return err
	}
	d.emit(&types.Event{
		Type: EventTypeDistributed,
		Attributes: map[string]string{
			"category":  string(category),
			"to":        to.Hex(),
			"amount":    amount.String(),
			"remaining": next.Remaining().String(),
		},
	})
	return nil
}

// Burn destroys amount held by from and returns it to the community quota.
func (d *Distributer) Burn(caller, from common.Address, amount *big.Int) error {
	params, err := d.params()
	if err != nil {
		return err
	}
	if err := nativecommon.RequireRole(caller, params.Burner, ErrNotBurner); err != nil {
		return err
	}
	if d.token == nil {
		return errNilBook
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err := d.token.Burn(d.addr, from, amount); err != nil {
		return err
	}
	quota, _, err := d.state.DistributerQuotaGet(d.addr, string(CategoryCommunity))
	if err != nil {
		return err
	}
	next, err := nativecommon.Refill(quota, amount)
	if err != nil {
		return err
	}
	if err := d.state.DistributerQuotaPut(d.addr, string(CategoryCommunity), next); err != nil {
		return err
	}
	d.emit(&types.Event{
		Type: EventTypeBurned,
		Attributes: map[string]string{
			"from":      from.Hex(),
			"amount":    amount.String(),
			"community": next.Remaining().String(),
		},
	})
	return nil
}

func (d *Distributer) emit(evt *types.Event) {
	if d.emitter != nil {
		d.emitter.Emit(WrapEvent(evt))
	}
}

type eventEnvelope struct {
	evt *types.Event
}

func (e eventEnvelope) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e eventEnvelope) Event() *types.Event { return e.evt }

// WrapEvent converts a structured event into an events.Event.
func WrapEvent(evt *types.Event) events.Event { return eventEnvelope{evt: evt} }
