package assetsfactory

import (
	"sort"

	"github.com/clydemeng/assetsbridge/precompile/solidity"
)

// OperationKind enumerates the functions exposed by the precompile.
type OperationKind uint8

const (
	OpUnknown OperationKind = iota
	OpConvertAssetIdToAddress
	OpCreate
	OpSetMetadata
	OpSetMinBalance
	OpSetTeam
	OpTransferOwnership
	OpStartDestroy
	OpFinishDestroy
)

var signatures = map[OperationKind]string{
	OpConvertAssetIdToAddress: "convertAssetIdToAddress(uint64)",
	OpCreate:                  "create(uint64,address,uint128)",
	OpSetMetadata:             "setMetadata(uint64,bytes,bytes,uint8)",
	OpSetMinBalance:           "setMinBalance(uint64,uint128)",
	OpSetTeam:                 "setTeam(uint64,address,address,address)",
	OpTransferOwnership:       "transferOwnership(uint64,address)",
	OpStartDestroy:            "startDestroy(uint64)",
	OpFinishDestroy:           "finishDestroy(uint64)",
}

var (
	selectorToKind map[solidity.Selector]OperationKind
	kindToSelector map[OperationKind]solidity.Selector
)

func init() {
	selectorToKind = make(map[solidity.Selector]OperationKind, len(signatures))
	kindToSelector = make(map[OperationKind]solidity.Selector, len(signatures))
	for kind, sig := range signatures {
		sel := solidity.SelectorOf(sig)
		if _, dup := selectorToKind[sel]; dup {
			panic("duplicate selector for " + sig)
		}
		selectorToKind[sel] = kind
		kindToSelector[kind] = sel
	}
}

// Lookup resolves a selector to its operation.
func Lookup(sel solidity.Selector) (OperationKind, bool) {
	kind, ok := selectorToKind[sel]
	return kind, ok
}

// LookupName resolves a function name such as "setTeam".
func LookupName(name string) (OperationKind, bool) {
	for _, kind := range Operations() {
		if kind.String() == name {
			return kind, true
		}
	}
	return OpUnknown, false
}

// Operations lists every exposed operation in declaration order.
func Operations() []OperationKind {
	ops := make([]OperationKind, 0, len(signatures))
	for kind := range signatures {
		ops = append(ops, kind)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// Signature returns the canonical Solidity signature.
func (k OperationKind) Signature() string { return signatures[k] }

// Selector returns the 4-byte selector.
func (k OperationKind) Selector() solidity.Selector { return kindToSelector[k] }

// Mutating reports whether the operation changes ledger state.
func (k OperationKind) Mutating() bool {
	return k != OpConvertAssetIdToAddress && k != OpUnknown
}

// Mutability returns the Solidity state mutability.
func (k OperationKind) Mutability() string {
	if k.Mutating() {
		return "nonpayable"
	}
	return "view"
}

// String returns the Solidity function name.
func (k OperationKind) String() string {
	switch k {
	case OpConvertAssetIdToAddress:
		return "convertAssetIdToAddress"
	case OpCreate:
		return "create"
	case OpSetMetadata:
		return "setMetadata"
	case OpSetMinBalance:
		return "setMinBalance"
	case OpSetTeam:
		return "setTeam"
	case OpTransferOwnership:
		return "transferOwnership"
	case OpStartDestroy:
		return "startDestroy"
	case OpFinishDestroy:
		return "finishDestroy"
	}
	return "unknown"
}
