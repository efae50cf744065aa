package state

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

func nsKey(engine common.Address, parts ...string) []byte {
	key := []byte(engine.Hex())
	for _, part := range parts {
		key = append(key, '/')
		key = append(key, part...)
	}
	return key
}

func vestingAccountKey(ledger, account common.Address) []byte {
	return nsKey(ledger, "vesting", "account", account.Hex())
}

func vestingAggregateKey(ledger common.Address) []byte {
	return nsKey(ledger, "vesting", "aggregate")
}

func vestingParamsKey(ledger common.Address) []byte {
	return nsKey(ledger, "vesting", "params")
}

func vestingVesterKey(ledger, vester common.Address) []byte {
	return nsKey(ledger, "vesting", "vester", vester.Hex())
}

func bonusParamsKey(pool common.Address) []byte {
	return nsKey(pool, "bonus", "params")
}

func bonusLastClaimKey(pool, account common.Address) []byte {
	return nsKey(pool, "bonus", "lastClaim", account.Hex())
}

func stakingParamsKey(engine common.Address) []byte {
	return nsKey(engine, "staking", "params")
}

func stakingPoolKey(engine common.Address, pid uint64) []byte {
	return nsKey(engine, "staking", "pool", strconv.FormatUint(pid, 10))
}

func stakingAssetKey(engine common.Address, asset string) []byte {
	return nsKey(engine, "staking", "asset", asset)
}

func stakingUserKey(engine common.Address, pid uint64, account common.Address) []byte {
	return nsKey(engine, "staking", "user", strconv.FormatUint(pid, 10), account.Hex())
}

func stakingMigratedKey(engine common.Address, pid uint64, account common.Address) []byte {
	return nsKey(engine, "staking", "migrated", strconv.FormatUint(pid, 10), account.Hex())
}

func bankBalanceKey(asset string, addr common.Address) []byte {
	return []byte("bank/balance/" + asset + "/" + addr.Hex())
}

func bankSupplyKey(asset string) []byte {
	return []byte("bank/supply/" + asset)
}

func tokenParamsKey(token common.Address) []byte {
	return nsKey(token, "token", "params")
}

func distributerParamsKey(d common.Address) []byte {
	return nsKey(d, "distributer", "params")
}

func distributerQuotaKey(d common.Address, category string) []byte {
	return nsKey(d, "distributer", "quota", category)
}
