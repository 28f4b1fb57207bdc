package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// CallMetadata carries the minimal fields required by the executor to invoke
// a precompile and build a receipt.
type CallMetadata struct {
	From     common.Address // authenticated sender
	To       common.Address // precompile address
	Data     []byte         // calldata
	Value    *uint256.Int   // transferred value, nil means zero
	GasLimit uint64         // provided gas
	Static   bool           // STATICCALL semantics
}
