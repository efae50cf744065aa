package staking

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// MintBurnBook is the asset book surface the migrator needs.
type MintBurnBook interface {
	Burn(asset string, from common.Address, amount *big.Int) error
	Mint(asset string, to common.Address, amount *big.Int) error
}

// AssetMigrator converts staked assets one-for-one by burning the old asset
// from the retiring engine and minting the replacement to its successor.
type AssetMigrator struct {
	mu      sync.RWMutex
	book    MintBurnBook
	targets map[string]string
}

var _ Migrator = (*AssetMigrator)(nil)

// NewAssetMigrator returns a migrator backed by book.
func NewAssetMigrator(book MintBurnBook) *AssetMigrator {
	return &AssetMigrator{book: book, targets: make(map[string]string)}
}

// Map registers newAsset as the replacement for oldAsset.
func (m *AssetMigrator) Map(oldAsset, newAsset string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.targets[oldAsset] = newAsset
}

func (m *AssetMigrator) Target(oldAsset string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	target, ok := m.targets[oldAsset]
	if !ok {
		return "", fmt.Errorf("asset migrator: no target for %q", oldAsset)
	}
	return target, nil
}

func (m *AssetMigrator) Migrate(from, to common.Address, oldAsset, newAsset string, amount *big.Int) (*big.Int, error) {
	if m.book == nil {
		return nil, fmt.Errorf("asset migrator: book not configured")
	}
	if amount == nil || amount.Sign() == 0 {
		return big.NewInt(0), nil
	}
	if err := m.book.Burn(oldAsset, from, amount); err != nil {
		return nil, fmt.Errorf("asset migrator: burn %s: %w", oldAsset, err)
	}
	if err := m.book.Mint(newAsset, to, amount); err != nil {
		return nil, fmt.Errorf("asset migrator: mint %s: %w", newAsset, err)
	}
	return new(big.Int).Set(amount), nil
}
