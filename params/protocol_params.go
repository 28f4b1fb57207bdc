package params

import "github.com/ethereum/go-ethereum/common"

const (
	// GetBytesLimit bounds the length of dynamic byte arguments (name, symbol).
	GetBytesLimit = 1 << 16

	// SystemAccountSize is the storage growth, in bytes, charged for every
	// dispatched asset call.
	SystemAccountSize uint64 = 148

	// AssetEventTopics and AssetEventDataLen describe the event each mutating
	// call is expected to emit. Its cost is charged up front.
	AssetEventTopics  = 3
	AssetEventDataLen = 32

	// WeightPerGas is the ref-time weight bought by a single unit of gas.
	WeightPerGas uint64 = 25_000

	// GasPerStorageByte converts storage growth into gas.
	GasPerStorageByte uint64 = 366

	// AssetStringLimit bounds metadata names and symbols in the reference
	// ledger.
	AssetStringLimit = 50

	// MaxBalanceBits is the default width of ledger balances.
	MaxBalanceBits = 128
)

// AssetsFactoryAddress is the default precompile address.
var AssetsFactoryAddress = common.HexToAddress("0x0000000000000000000000000000000000000806")

// AssetAddressPrefix marks addresses derived from asset ids.
var AssetAddressPrefix = [4]byte{0xff, 0xff, 0xff, 0xff}

// Default dispatch weights of the asset calls, in ref-time units.
const (
	CreateWeight            uint64 = 1_100_000_000
	SetMetadataWeight       uint64 = 1_300_000_000
	SetMinBalanceWeight     uint64 = 900_000_000
	SetTeamWeight           uint64 = 1_000_000_000
	TransferOwnershipWeight uint64 = 1_000_000_000
	StartDestroyWeight      uint64 = 950_000_000
	FinishDestroyWeight     uint64 = 1_200_000_000
)
