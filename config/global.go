package config

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ResolvedRoles holds the role holders as addresses. Unset roles are zero and
// never authorize anything.
type ResolvedRoles struct {
	Owner          common.Address
	Timelock       common.Address
	Manager        common.Address
	Maintainer     common.Address
	DAOVester      common.Address
	InvestorVester common.Address
	TeamVester     common.Address
}

func (r Roles) named() map[string]string {
	return map[string]string{
		"Owner":          r.Owner,
		"Timelock":       r.Timelock,
		"Manager":        r.Manager,
		"Maintainer":     r.Maintainer,
		"DAOVester":      r.DAOVester,
		"InvestorVester": r.InvestorVester,
		"TeamVester":     r.TeamVester,
	}
}

func address(value string) common.Address {
	if strings.TrimSpace(value) == "" {
		return common.Address{}
	}
	return common.HexToAddress(strings.TrimSpace(value))
}

// Resolve parses the configured role holders.
func (r Roles) Resolve() ResolvedRoles {
	return ResolvedRoles{
		Owner:          address(r.Owner),
		Timelock:       address(r.Timelock),
		Manager:        address(r.Manager),
		Maintainer:     address(r.Maintainer),
		DAOVester:      address(r.DAOVester),
		InvestorVester: address(r.InvestorVester),
		TeamVester:     address(r.TeamVester),
	}
}

// Rates parses the staking emission settings.
func (s Staking) Rates() (rate, maxRate *big.Int, err error) {
	if rate, err = parseUintAmount(s.RewardPerBlock); err != nil {
		return nil, nil, fmt.Errorf("invalid staking.RewardPerBlock: %w", err)
	}
	if maxRate, err = parseUintAmount(s.MaxRewardPerBlock); err != nil {
		return nil, nil, fmt.Errorf("invalid staking.MaxRewardPerBlock: %w", err)
	}
	return rate, maxRate, nil
}

func parseUintAmount(value string) (*big.Int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return big.NewInt(0), nil
	}
	amount, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", value)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("amount must not be negative")
	}
	return amount, nil
}
