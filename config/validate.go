package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	maxLockFactorBps = 20_000
	percentBase      = 10_000
)

// Validate reports the first setting that cannot be applied, prefixed with
// its section.
func Validate(cfg *Config) error {
	if cfg.Ledger.MaxLockFactorBps > maxLockFactorBps {
		return fmt.Errorf("ledger: MaxLockFactorBps > %d", maxLockFactorBps)
	}
	if cfg.Ledger.InitUnlockedBps > percentBase {
		return fmt.Errorf("ledger: InitUnlockedBps > %d", percentBase)
	}
	if cfg.Ledger.InstantUnlockBps > percentBase {
		return fmt.Errorf("ledger: InstantUnlockBps > %d", percentBase)
	}
	rate, err := parseUintAmount(cfg.Staking.RewardPerBlock)
	if err != nil {
		return fmt.Errorf("staking: RewardPerBlock: %w", err)
	}
	maxRate, err := parseUintAmount(cfg.Staking.MaxRewardPerBlock)
	if err != nil {
		return fmt.Errorf("staking: MaxRewardPerBlock: %w", err)
	}
	if rate.Cmp(maxRate) > 0 {
		return fmt.Errorf("staking: RewardPerBlock > MaxRewardPerBlock")
	}
	for name, value := range cfg.Roles.named() {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if !common.IsHexAddress(value) {
			return fmt.Errorf("roles: %s is not a hex address", name)
		}
	}
	switch cfg.Storage.Backend {
	case "memory", "leveldb", "bolt":
	default:
		return fmt.Errorf("storage: unknown backend %q", cfg.Storage.Backend)
	}
	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry: SampleRatio outside [0, 1]")
	}
	return nil
}
