package ledger

import "errors"

// Errors returned by the reference ledger. The names match the runtime asset
// module so reverts read the same on every backend.
var (
	ErrUnknown         = errors.New("Unknown")
	ErrInUse           = errors.New("InUse")
	ErrNoPermission    = errors.New("NoPermission")
	ErrMinBalanceZero  = errors.New("MinBalanceZero")
	ErrBadMetadata     = errors.New("BadMetadata")
	ErrAssetNotLive    = errors.New("AssetNotLive")
	ErrIncorrectStatus = errors.New("IncorrectStatus")
)
