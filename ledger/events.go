package ledger

import (
	"encoding/binary"

	"github.com/clydemeng/assetsbridge/precompile/assetsfactory"
	"github.com/clydemeng/assetsbridge/tracing"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EventTopic returns the first log topic of the event emitted for reason.
func EventTopic(reason tracing.AssetChangeReason) common.Hash {
	return crypto.Keccak256Hash([]byte(reason.EventSignature()))
}

// ReasonOf resolves the event topic back into its reason.
func ReasonOf(topic common.Hash) (tracing.AssetChangeReason, bool) {
	for r := tracing.AssetChangeCreated; r <= tracing.AssetChangeDestroyed; r++ {
		if EventTopic(r) == topic {
			return r, true
		}
	}
	return tracing.AssetChangeUnspecified, false
}

func idTopic(id assetsfactory.AssetID) common.Hash {
	var h common.Hash
	binary.BigEndian.PutUint64(h[common.HashLength-8:], uint64(id))
	return h
}
