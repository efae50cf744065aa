// core/genesis/plan.go
package genesis

import (
	"bytes"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"groledger/native/token"
)

// Plan is the allocation plan applied once at boot.
type Plan struct {
	Clock       ClockEntry        `yaml:"clock"`
	Vesters     []string          `yaml:"vesters"`
	Pools       []PoolEntry       `yaml:"pools"`
	Assets      []AssetEntry      `yaml:"assets"`
	Allocations []AllocationEntry `yaml:"allocations"`

	vesters []common.Address
}

// ClockEntry is the starting environment clock. Zero values keep the clock.
type ClockEntry struct {
	Time  uint64 `yaml:"time"`
	Block uint64 `yaml:"block"`
}

// PoolEntry registers a staking pool.
type PoolEntry struct {
	Asset  string `yaml:"asset"`
	Weight uint64 `yaml:"weight"`
}

// AssetEntry seeds a stakeable asset balance.
type AssetEntry struct {
	Asset   string `yaml:"asset"`
	Account string `yaml:"account"`
	Amount  string `yaml:"amount"`

	account common.Address
	amount  *big.Int
}

// AllocationEntry mints from a distributer category. Vest moves the minted
// tokens into a locked ledger position.
type AllocationEntry struct {
	Account  string `yaml:"account"`
	Category string `yaml:"category"`
	Amount   string `yaml:"amount"`
	Vest     bool   `yaml:"vest"`

	account  common.Address
	category token.Category
	amount   *big.Int
}

// LoadPlan reads and validates a YAML plan. Unknown fields are rejected.
func LoadPlan(path string) (*Plan, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("allocation plan path must be provided")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read allocation plan %q: %w", path, err)
	}
	plan, err := ParsePlan(raw)
	if err != nil {
		return nil, fmt.Errorf("allocation plan %q: %w", path, err)
	}
	return plan, nil
}

// ParsePlan decodes and validates a YAML plan.
func ParsePlan(raw []byte) (*Plan, error) {
	var plan Plan
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := plan.validate(); err != nil {
		return nil, fmt.Errorf("invalid: %w", err)
	}
	return &plan, nil
}

func (p *Plan) validate() error {
	p.vesters = p.vesters[:0]
	for i, raw := range p.Vesters {
		addr, err := parseAddress(raw)
		if err != nil {
			return fmt.Errorf("vesters[%d]: %w", i, err)
		}
		p.vesters = append(p.vesters, addr)
	}

	assets := make(map[string]struct{}, len(p.Pools))
	for i := range p.Pools {
		pool := &p.Pools[i]
		pool.Asset = strings.TrimSpace(pool.Asset)
		if pool.Asset == "" {
			return fmt.Errorf("pools[%d]: asset must be provided", i)
		}
		if strings.EqualFold(pool.Asset, token.Symbol) {
			return fmt.Errorf("pools[%d]: %s is not stakeable", i, token.Symbol)
		}
		if _, dup := assets[pool.Asset]; dup {
			return fmt.Errorf("pools[%d]: duplicate asset %q", i, pool.Asset)
		}
		assets[pool.Asset] = struct{}{}
	}

	for i := range p.Assets {
		a := &p.Assets[i]
		a.Asset = strings.TrimSpace(a.Asset)
		if a.Asset == "" {
			return fmt.Errorf("assets[%d]: asset must be provided", i)
		}
		if strings.EqualFold(a.Asset, token.Symbol) {
			return fmt.Errorf("assets[%d]: %s is minted through allocations", i, token.Symbol)
		}
		var err error
		if a.account, err = parseAddress(a.Account); err != nil {
			return fmt.Errorf("assets[%d]: %w", i, err)
		}
		if a.amount, err = parsePositive(a.Amount); err != nil {
			return fmt.Errorf("assets[%d]: %w", i, err)
		}
	}

	for i := range p.Allocations {
		alloc := &p.Allocations[i]
		var err error
		if alloc.account, err = parseAddress(alloc.Account); err != nil {
			return fmt.Errorf("allocations[%d]: %w", i, err)
		}
		if alloc.category, err = parseCategory(alloc.Category); err != nil {
			return fmt.Errorf("allocations[%d]: %w", i, err)
		}
		if alloc.amount, err = parsePositive(alloc.Amount); err != nil {
			return fmt.Errorf("allocations[%d]: %w", i, err)
		}
	}
	return nil
}

// Total sums the allocations per category.
func (p *Plan) Total() map[token.Category]*big.Int {
	totals := make(map[token.Category]*big.Int, len(token.Categories))
	for _, alloc := range p.Allocations {
		if alloc.amount == nil {
			continue
		}
		sum, ok := totals[alloc.category]
		if !ok {
			sum = big.NewInt(0)
			totals[alloc.category] = sum
		}
		sum.Add(sum, alloc.amount)
	}
	return totals
}

func parseAddress(value string) (common.Address, error) {
	trimmed := strings.TrimSpace(value)
	if !common.IsHexAddress(trimmed) {
		return common.Address{}, fmt.Errorf("invalid address %q", value)
	}
	addr := common.HexToAddress(trimmed)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("zero address")
	}
	return addr, nil
}

func parsePositive(value string) (*big.Int, error) {
	trimmed := strings.TrimSpace(value)
	amount, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", value)
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	return amount, nil
}

func parseCategory(value string) (token.Category, error) {
	category := token.Category(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range token.Categories {
		if category == known {
			return category, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", value)
}
