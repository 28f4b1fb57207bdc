package assetsfactory

import (
	"github.com/clydemeng/assetsbridge/params"
	"github.com/clydemeng/assetsbridge/precompile"
	"github.com/ethereum/go-ethereum/common"
)

// Weights are the declared dispatch weights of the asset calls.
type Weights struct {
	Create            uint64
	SetMetadata       uint64
	SetMinBalance     uint64
	SetTeam           uint64
	TransferOwnership uint64
	StartDestroy      uint64
	FinishDestroy     uint64
}

// DefaultWeights are benchmark-derived weights for the reference ledger.
var DefaultWeights = Weights{
	Create:            params.CreateWeight,
	SetMetadata:       params.SetMetadataWeight,
	SetMinBalance:     params.SetMinBalanceWeight,
	SetTeam:           params.SetTeamWeight,
	TransferOwnership: params.TransferOwnershipWeight,
	StartDestroy:      params.StartDestroyWeight,
	FinishDestroy:     params.FinishDestroyWeight,
}

// Config is the precompile configuration.
type Config struct {
	Address       common.Address
	BytesLimit    int    // max length of name and symbol arguments
	StorageGrowth uint64 // bytes of storage growth charged per dispatch
	Weights       Weights
}

// DefaultConfig contains the default settings of the assets-factory
// precompile.
var DefaultConfig = Config{
	Address:       params.AssetsFactoryAddress,
	BytesLimit:    params.GetBytesLimit,
	StorageGrowth: params.SystemAccountSize,
	Weights:       DefaultWeights,
}

func (w Weights) of(kind OperationKind) precompile.Weight {
	switch kind {
	case OpCreate:
		return precompile.Weight(w.Create)
	case OpSetMetadata:
		return precompile.Weight(w.SetMetadata)
	case OpSetMinBalance:
		return precompile.Weight(w.SetMinBalance)
	case OpSetTeam:
		return precompile.Weight(w.SetTeam)
	case OpTransferOwnership:
		return precompile.Weight(w.TransferOwnership)
	case OpStartDestroy:
		return precompile.Weight(w.StartDestroy)
	case OpFinishDestroy:
		return precompile.Weight(w.FinishDestroy)
	}
	return 0
}
