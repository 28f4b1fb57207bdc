package solidity

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Selector is the 4-byte function identifier prefixing calldata.
type Selector [4]byte

// SelectorOf hashes a canonical signature such as "transfer(address,uint256)".
func SelectorOf(signature string) Selector {
	var s Selector
	copy(s[:], crypto.Keccak256([]byte(signature))[:4])
	return s
}

// ReadSelector extracts the selector from calldata.
func ReadSelector(input []byte) (Selector, error) {
	var s Selector
	if len(input) < 4 {
		return s, ReadOutOfBounds("selector")
	}
	copy(s[:], input[:4])
	return s, nil
}

// Hex returns the 0x-prefixed selector.
func (s Selector) Hex() string { return hexutil.Encode(s[:]) }

func (s Selector) String() string { return s.Hex() }

// Bytes returns a copy of the selector as a slice.
func (s Selector) Bytes() []byte { return append([]byte(nil), s[:]...) }

// ParseSignature turns a canonical signature into an abi.Method with unnamed
// inputs and no outputs. Tuple arguments are not supported.
func ParseSignature(signature string, mutability string) (abi.Method, error) {
	open := strings.IndexByte(signature, '(')
	if open <= 0 || !strings.HasSuffix(signature, ")") {
		return abi.Method{}, fmt.Errorf("malformed signature %q", signature)
	}
	name := signature[:open]
	params := signature[open+1 : len(signature)-1]
	if strings.ContainsAny(params, "()") {
		return abi.Method{}, fmt.Errorf("tuple arguments are not supported: %q", signature)
	}
	var inputs abi.Arguments
	if params != "" {
		for i, raw := range strings.Split(params, ",") {
			typ, err := abi.NewType(strings.TrimSpace(raw), "", nil)
			if err != nil {
				return abi.Method{}, fmt.Errorf("argument %d of %q: %w", i, signature, err)
			}
			inputs = append(inputs, abi.Argument{Name: fmt.Sprintf("arg%d", i), Type: typ})
		}
	}
	isConst := mutability == "view" || mutability == "pure"
	return abi.NewMethod(name, name, abi.Function, mutability, isConst, mutability == "payable", inputs, nil), nil
}
