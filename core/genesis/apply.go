// core/genesis/apply.go
package genesis

import (
	"context"
	"errors"
	"fmt"

	"groledger/config"
	"groledger/core"
	"groledger/native/token"
)

// ErrPlanApplied is returned when the ledger already carries supply or pools.
var ErrPlanApplied = errors.New("genesis: allocation plan already applied")

// Apply executes the plan as one operation. The clock moves to the plan's
// start first. Nothing persists if any step fails.
func Apply(ctx context.Context, rt *core.Runtime, plan *Plan, roles config.ResolvedRoles) (*core.Receipt, error) {
	if rt == nil {
		return nil, fmt.Errorf("runtime must not be nil")
	}
	if plan == nil {
		return nil, fmt.Errorf("allocation plan must not be nil")
	}
	rt.Clock().Set(plan.Clock.Time, plan.Clock.Block)

	return rt.Execute(ctx, "genesis.apply", func(e *core.Engines) error {
		supply, err := e.Token.TotalSupply()
		if err != nil {
			return err
		}
		pools, err := e.Staking.PoolLength()
		if err != nil {
			return err
		}
		if supply.Sign() > 0 || pools > 0 {
			return ErrPlanApplied
		}

		for i, vester := range plan.vesters {
			if err := e.Ledger.SetVester(roles.Owner, vester, true); err != nil {
				return fmt.Errorf("vesters[%d]: %w", i, err)
			}
		}
		for i, pool := range plan.Pools {
			if _, err := e.Staking.AddPool(roles.Manager, pool.Asset, pool.Weight); err != nil {
				return fmt.Errorf("pools[%d]: %w", i, err)
			}
		}
		for i, a := range plan.Assets {
			if err := e.Book.Mint(a.Asset, a.account, a.amount); err != nil {
				return fmt.Errorf("assets[%d]: %w", i, err)
			}
		}
		for i, alloc := range plan.Allocations {
			if err := mint(e.Distributer, roles, alloc); err != nil {
				return fmt.Errorf("allocations[%d]: %w", i, err)
			}
			if !alloc.Vest {
				continue
			}
			if err := e.Burner.ReVest(alloc.account, alloc.amount); err != nil {
				return fmt.Errorf("allocations[%d]: %w", i, err)
			}
		}
		return nil
	})
}

func mint(dist *token.Distributer, roles config.ResolvedRoles, alloc AllocationEntry) error {
	switch alloc.category {
	case token.CategoryInvestor:
		return dist.Mint(roles.InvestorVester, alloc.account, alloc.amount)
	case token.CategoryTeam:
		return dist.Mint(roles.TeamVester, alloc.account, alloc.amount)
	case token.CategoryDAO:
		return dist.MintDao(roles.DAOVester, alloc.account, alloc.amount, false)
	case token.CategoryCommunity:
		return dist.MintDao(roles.DAOVester, alloc.account, alloc.amount, true)
	default:
		return fmt.Errorf("unknown category %q", alloc.category)
	}
}
