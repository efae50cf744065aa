package config

// Ledger configures the vesting ledger.
type Ledger struct {
	// MaxLockFactorBps scales the one year default lock period.
	MaxLockFactorBps uint64 `toml:"MaxLockFactorBps"`
	InitUnlockedBps  uint64 `toml:"InitUnlockedBps"`
	InstantUnlockBps uint64 `toml:"InstantUnlockBps"`
	// GenesisTime seeds the environment clock in unix seconds. Zero uses the
	// wall clock at boot.
	GenesisTime  uint64 `toml:"GenesisTime"`
	GenesisBlock uint64 `toml:"GenesisBlock"`
}

// Staking configures the reward engine. Amounts are base-unit integers.
type Staking struct {
	RewardPerBlock    string `toml:"RewardPerBlock"`
	MaxRewardPerBlock string `toml:"MaxRewardPerBlock"`
}

type Bonus struct {
	ClaimDelaySeconds uint64 `toml:"ClaimDelaySeconds"`
}

// Roles names the role holders as hex addresses.
type Roles struct {
	Owner          string `toml:"Owner"`
	Timelock       string `toml:"Timelock"`
	Manager        string `toml:"Manager"`
	Maintainer     string `toml:"Maintainer"`
	DAOVester      string `toml:"DAOVester"`
	InvestorVester string `toml:"InvestorVester"`
	TeamVester     string `toml:"TeamVester"`
}

type Storage struct {
	// Backend is "memory", "leveldb" or "bolt".
	Backend string `toml:"Backend"`
	DataDir string `toml:"DataDir"`
}

type Logging struct {
	Level      string `toml:"Level"`
	File       string `toml:"File"`
	MaxSizeMB  int    `toml:"MaxSizeMB"`
	MaxBackups int    `toml:"MaxBackups"`
	MaxAgeDays int    `toml:"MaxAgeDays"`
}

type Telemetry struct {
	Env         string  `toml:"Env"`
	Endpoint    string  `toml:"Endpoint"`
	Insecure    bool    `toml:"Insecure"`
	Headers     string  `toml:"Headers"`
	Traces      bool    `toml:"Traces"`
	Metrics     bool    `toml:"Metrics"`
	SampleRatio float64 `toml:"SampleRatio"`
	// MetricsAddress serves the Prometheus registry when set.
	MetricsAddress string `toml:"MetricsAddress"`
}
