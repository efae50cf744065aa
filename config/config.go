package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// AllocationFile points at the YAML allocation plan applied at boot.
	AllocationFile string    `toml:"AllocationFile"`
	Ledger         Ledger    `toml:"ledger"`
	Staking        Staking   `toml:"staking"`
	Bonus          Bonus     `toml:"bonus"`
	Roles          Roles     `toml:"roles"`
	Storage        Storage   `toml:"storage"`
	Logging        Logging   `toml:"logging"`
	Telemetry      Telemetry `toml:"telemetry"`
}

// Default returns the configuration used when no file exists. Fields where
// zero is a valid setting are seeded here so that Load keeps an explicit zero.
func Default() *Config {
	cfg := &Config{
		Ledger: Ledger{
			InitUnlockedBps:  1_000,
			InstantUnlockBps: 3_000,
		},
	}
	applyDefaults(cfg)
	return cfg
}

// Load loads the configuration from the given path. A missing file is created
// with defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("config file %s has unknown keys: %s", path, strings.Join(keys, ", "))
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Ledger.MaxLockFactorBps == 0 {
		cfg.Ledger.MaxLockFactorBps = 10_000
	}
	if strings.TrimSpace(cfg.Staking.RewardPerBlock) == "" {
		cfg.Staking.RewardPerBlock = "0"
	}
	if strings.TrimSpace(cfg.Staking.MaxRewardPerBlock) == "" {
		cfg.Staking.MaxRewardPerBlock = "1000000000000000000000"
	}
	if strings.TrimSpace(cfg.Storage.Backend) == "" {
		cfg.Storage.Backend = "memory"
	}
	if strings.TrimSpace(cfg.Storage.DataDir) == "" {
		cfg.Storage.DataDir = "./groledger-data"
	}
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = 100
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 5
	}
	if cfg.Logging.MaxAgeDays == 0 {
		cfg.Logging.MaxAgeDays = 28
	}
	if strings.TrimSpace(cfg.Telemetry.Env) == "" {
		cfg.Telemetry.Env = "local"
	}
}

// createDefault creates and saves a default configuration file.
func createDefault(path string) (*Config, error) {
	cfg := Default()
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
