package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clydemeng/assetsbridge/precompile/assetsfactory"
	"github.com/clydemeng/assetsbridge/precompile/solidity"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

// encodeCall builds calldata for the named function from textual arguments.
func encodeCall(name string, args []string) ([]byte, error) {
	kind, ok := assetsfactory.LookupName(name)
	if !ok {
		return nil, fmt.Errorf("unknown function %q", name)
	}
	method, err := solidity.ParseSignature(kind.Signature(), kind.Mutability())
	if err != nil {
		return nil, err
	}
	if len(args) != len(method.Inputs) {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", method.Sig, len(method.Inputs), len(args))
	}
	values := make([]interface{}, len(args))
	for i, arg := range method.Inputs {
		v, err := parseArg(arg.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, arg.Type, err)
		}
		values[i] = v
	}
	packed, err := method.Inputs.Pack(values...)
	if err != nil {
		return nil, err
	}
	return append(common.CopyBytes(method.ID), packed...), nil
}

// parseArg converts s into the Go value abi expects for typ. Integers accept
// decimal or 0x-prefixed hex, bytes accept hex or a raw string.
func parseArg(typ abi.Type, s string) (interface{}, error) {
	switch typ.T {
	case abi.UintTy:
		switch typ.Size {
		case 8:
			v, err := strconv.ParseUint(s, 0, 8)
			return uint8(v), err
		case 64:
			return strconv.ParseUint(s, 0, 64)
		}
		v, ok := math.ParseBig256(s)
		if !ok || v.BitLen() > typ.Size {
			return nil, fmt.Errorf("invalid %s %q", typ, s)
		}
		return v, nil
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %q", s)
		}
		return common.HexToAddress(s), nil
	case abi.BytesTy:
		if strings.HasPrefix(s, "0x") {
			return hexutil.Decode(s)
		}
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unsupported type %s", typ)
}
