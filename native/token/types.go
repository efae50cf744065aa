package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"groledger/native/fixedpoint"
)

// Symbol is the asset name the governance token is booked under.
const Symbol = "GRO"

// Category names a minting quota of the distributer.
type Category string

const (
	CategoryDAO       Category = "dao"
	CategoryInvestor  Category = "investor"
	CategoryTeam      Category = "team"
	CategoryCommunity Category = "community"
)

// Categories lists every quota in a stable order.
var Categories = []Category{CategoryDAO, CategoryInvestor, CategoryTeam, CategoryCommunity}

var (
	// MaxTotalSupply caps the token supply.
	MaxTotalSupply = fixedpoint.MustBigInt("100000000000000000000000000")

	DefaultQuotas = map[Category]*big.Int{
		CategoryCommunity: fixedpoint.MustBigInt("45000000000000000000000000"),
		CategoryInvestor:  fixedpoint.MustBigInt("19490577000000000000000000"),
		CategoryTeam:      fixedpoint.MustBigInt("22509423000000000000000000"),
		CategoryDAO:       fixedpoint.MustBigInt("8000000000000000000000000"),
	}
)

// TokenParams configures the capped token.
type TokenParams struct {
	Owner       common.Address `json:"owner"`
	Distributer common.Address `json:"distributer"`
	Cap         *big.Int       `json:"cap"`
}

// DistributerParams binds each quota to the vester allowed to draw it.
type DistributerParams struct {
	Owner           common.Address `json:"owner"`
	DAOVester       common.Address `json:"daoVester"`
	InvestorVester  common.Address `json:"investorVester"`
	TeamVester      common.Address `json:"teamVester"`
	CommunityVester common.Address `json:"communityVester"`
	Burner          common.Address `json:"burner"`
}

// vesterFor returns the category a non-DAO vester mints from.
func (p *DistributerParams) vesterFor(caller common.Address) (Category, bool) {
	if caller == (common.Address{}) {
		return "", false
	}
	switch caller {
	case p.InvestorVester:
		return CategoryInvestor, true
	case p.TeamVester:
		return CategoryTeam, true
	case p.CommunityVester:
		return CategoryCommunity, true
	}
	return "", false
}
