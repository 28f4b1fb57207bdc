package precompile

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// AccountID is the 32-byte account identifier used by the runtime.
type AccountID [32]byte

// Hex returns the 0x-prefixed account id.
func (a AccountID) Hex() string { return hexutil.Encode(a[:]) }

func (a AccountID) String() string { return a.Hex() }

// Hash returns the account id as a log topic.
func (a AccountID) Hash() common.Hash { return common.Hash(a) }

// CallContext carries everything a precompile may know about the current
// invocation. It is passed by value and never mutated.
type CallContext struct {
	Caller   common.Address // authenticated immediate caller
	Address  common.Address // address the precompile was invoked at
	Gas      uint64         // gas available to the invocation
	Value    *uint256.Int   // transferred value, nil means zero
	ReadOnly bool           // static call
}
