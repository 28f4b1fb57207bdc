package solidity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"
)

// RevertKind discriminates the reasons a precompile call can revert.
type RevertKind uint8

const (
	KindCustom RevertKind = iota
	KindReadOutOfBounds
	KindUnknownSelector
	KindValueTooLarge
	KindPointerToOutOfBounds
	KindCursorOverflow
	KindDispatch
)

// String returns a human-readable string for the kind.
func (k RevertKind) String() string {
	switch k {
	case KindCustom:
		return "custom"
	case KindReadOutOfBounds:
		return "read_out_of_bounds"
	case KindUnknownSelector:
		return "unknown_selector"
	case KindValueTooLarge:
		return "value_too_large"
	case KindPointerToOutOfBounds:
		return "pointer_out_of_bounds"
	case KindCursorOverflow:
		return "cursor_overflow"
	case KindDispatch:
		return "dispatch"
	}
	return "unknown"
}

var (
	// revertSelector is the selector of the standard Error(string) revert.
	revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]

	revertArgs = func() abi.Arguments {
		typ, err := abi.NewType("string", "", nil)
		if err != nil {
			panic(err)
		}
		return abi.Arguments{{Type: typ}}
	}()
)

// Revert is a structured revert reason. It is returned as an error by the
// codec and the precompiles and can be rendered into the Error(string) payload
// expected by EVM callers.
type Revert struct {
	kind      RevertKind
	what      string
	backtrace []string // innermost field first
	cause     error
}

// Custom creates a revert carrying a free-form message.
func Custom(message string) *Revert {
	return &Revert{kind: KindCustom, what: message}
}

// ReadOutOfBounds reports that reading `what` went past the end of the input.
func ReadOutOfBounds(what string) *Revert {
	return &Revert{kind: KindReadOutOfBounds, what: what}
}

// UnknownSelector reports a selector with no matching function.
func UnknownSelector() *Revert {
	return &Revert{kind: KindUnknownSelector}
}

// ValueTooLarge reports a value that does not fit the target representation.
func ValueTooLarge(what string) *Revert {
	return &Revert{kind: KindValueTooLarge, what: what}
}

// PointerToOutOfBounds reports a dynamic offset pointing past the input.
func PointerToOutOfBounds() *Revert {
	return &Revert{kind: KindPointerToOutOfBounds}
}

// CursorOverflow reports an arithmetic overflow of the reading cursor.
func CursorOverflow() *Revert {
	return &Revert{kind: KindCursorOverflow}
}

// DispatchFailed wraps an error returned by the dispatched runtime call. The
// cause is kept untouched and stays reachable through errors.Is/As.
func DispatchFailed(cause error) *Revert {
	return &Revert{kind: KindDispatch, cause: cause}
}

// InField records that the revert happened while handling the named field.
// Calls nest outward: the last recorded field is the outermost one.
func (r *Revert) InField(field string) *Revert {
	r.backtrace = append(r.backtrace, field)
	return r
}

// InField annotates err with the field name when it is a *Revert and returns
// any other error unchanged.
func InField(err error, field string) error {
	var rev *Revert
	if errors.As(err, &rev) {
		return rev.InField(field)
	}
	return err
}

// Kind returns the revert discriminant.
func (r *Revert) Kind() RevertKind { return r.kind }

// Field returns the dotted field path the revert is scoped to, outermost
// first, or the empty string.
func (r *Revert) Field() string {
	if len(r.backtrace) == 0 {
		return ""
	}
	parts := make([]string, len(r.backtrace))
	for i, f := range r.backtrace {
		parts[len(parts)-1-i] = f
	}
	return strings.Join(parts, ".")
}

// Reason returns the message without the field path.
func (r *Revert) Reason() string {
	switch r.kind {
	case KindCustom:
		return r.what
	case KindReadOutOfBounds:
		return fmt.Sprintf("Tried to read %s out of bounds", r.what)
	case KindUnknownSelector:
		return "Unknown selector"
	case KindValueTooLarge:
		return fmt.Sprintf("Value is too large for %s", r.what)
	case KindPointerToOutOfBounds:
		return "Pointer points to out of bound"
	case KindCursorOverflow:
		return "Reading cursor overflowed"
	case KindDispatch:
		return fmt.Sprintf("Dispatched call failed with error: %v", r.cause)
	}
	return "Unknown revert reason"
}

// Error implements error.
func (r *Revert) Error() string {
	if field := r.Field(); field != "" {
		return field + ": " + r.Reason()
	}
	return r.Reason()
}

// Unwrap exposes the dispatch cause, if any.
func (r *Revert) Unwrap() error { return r.cause }

// Is lets callers treat every structured revert as vm.ErrExecutionReverted.
func (r *Revert) Is(target error) bool {
	return target == vm.ErrExecutionReverted
}

// Bytes renders the revert into the Error(string) ABI payload.
func (r *Revert) Bytes() []byte {
	packed, err := revertArgs.Pack(r.Error())
	if err != nil {
		// Packing a single string never fails.
		panic(err)
	}
	return append(append([]byte{}, revertSelector...), packed...)
}
