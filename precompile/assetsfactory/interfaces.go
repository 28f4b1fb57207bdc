package assetsfactory

import (
	"github.com/clydemeng/assetsbridge/precompile"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// AssetID is the ledger's internal asset identifier.
type AssetID uint64

// AssetLedger is the asset state machine the precompile forwards to. Every
// mutating method takes the origin on whose behalf it runs and must leave the
// ledger untouched when it returns an error.
type AssetLedger interface {
	Create(origin precompile.AccountID, id AssetID, admin precompile.AccountID, minBalance *uint256.Int) error
	SetMetadata(origin precompile.AccountID, id AssetID, name, symbol []byte, decimals uint8) error
	SetMinBalance(origin precompile.AccountID, id AssetID, minBalance *uint256.Int) error
	SetTeam(origin precompile.AccountID, id AssetID, issuer, admin, freezer precompile.AccountID) error
	TransferOwnership(origin precompile.AccountID, id AssetID, owner precompile.AccountID) error
	StartDestroy(origin precompile.AccountID, id AssetID) error
	FinishDestroy(origin precompile.AccountID, id AssetID) error

	// MaxBalance is the largest balance the ledger can represent.
	MaxBalance() *uint256.Int
}

// AssetIDs narrows external ids, decides which ids may be created and derives
// the EVM address of an asset.
type AssetIDs interface {
	FromUint64(id uint64) (AssetID, bool)
	IsAllowedToCreate(id AssetID) bool
	ToAddress(id AssetID) common.Address
}

// AddressMapper maps EVM addresses to runtime accounts. It is total.
type AddressMapper interface {
	IntoAccountID(addr common.Address) precompile.AccountID
}
