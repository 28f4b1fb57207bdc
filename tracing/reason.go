package tracing

// AssetChangeReason describes why an asset record changed. Each reason maps
// to one ledger event.
type AssetChangeReason int

const (
	AssetChangeUnspecified AssetChangeReason = iota
	AssetChangeCreated
	AssetChangeMetadataSet
	AssetChangeMinBalance
	AssetChangeTeam
	AssetChangeOwner
	AssetChangeDestructionStarted
	AssetChangeDestroyed
)

// String returns a human-readable string for the reason.
func (r AssetChangeReason) String() string {
	switch r {
	case AssetChangeUnspecified:
		return "unspecified"
	case AssetChangeCreated:
		return "created"
	case AssetChangeMetadataSet:
		return "metadata_set"
	case AssetChangeMinBalance:
		return "min_balance_changed"
	case AssetChangeTeam:
		return "team_changed"
	case AssetChangeOwner:
		return "owner_changed"
	case AssetChangeDestructionStarted:
		return "destruction_started"
	case AssetChangeDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// EventSignature returns the Solidity event signature emitted for the reason.
// Every event has the asset id and the acting account as indexed topics and a
// single data word.
func (r AssetChangeReason) EventSignature() string {
	switch r {
	case AssetChangeCreated:
		return "Created(uint64,bytes32,uint256)"
	case AssetChangeMetadataSet:
		return "MetadataSet(uint64,bytes32,uint8)"
	case AssetChangeMinBalance:
		return "AssetMinBalanceChanged(uint64,bytes32,uint256)"
	case AssetChangeTeam:
		return "TeamChanged(uint64,bytes32,bytes32)"
	case AssetChangeOwner:
		return "OwnerChanged(uint64,bytes32,bytes32)"
	case AssetChangeDestructionStarted:
		return "DestructionStarted(uint64,bytes32,uint256)"
	case AssetChangeDestroyed:
		return "Destroyed(uint64,bytes32,uint256)"
	}
	return ""
}
