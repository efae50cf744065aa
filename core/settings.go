package core

import (
	"math/big"

	"groledger/config"
	"groledger/native/vesting"
)

// Settings carries the boot parameters every engine is initialized with.
type Settings struct {
	Roles config.ResolvedRoles

	MaxLockFactorBps uint64
	InitUnlockedBps  uint64
	InstantUnlockBps uint64

	RewardPerBlock    *big.Int
	MaxRewardPerBlock *big.Int

	ClaimDelay uint64
}

// SettingsFromConfig resolves the boot parameters from a validated config.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	rate, maxRate, err := cfg.Staking.Rates()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Roles:             cfg.Roles.Resolve(),
		MaxLockFactorBps:  cfg.Ledger.MaxLockFactorBps,
		InitUnlockedBps:   cfg.Ledger.InitUnlockedBps,
		InstantUnlockBps:  cfg.Ledger.InstantUnlockBps,
		RewardPerBlock:    rate,
		MaxRewardPerBlock: maxRate,
		ClaimDelay:        cfg.Bonus.ClaimDelaySeconds,
	}, nil
}

func (s Settings) maxLockPeriod() uint64 {
	if s.MaxLockFactorBps == 0 {
		return vesting.OneYear
	}
	return vesting.OneYear * s.MaxLockFactorBps / vesting.PercentBase
}
