package vm

import (
	"errors"
	"fmt"

	"github.com/clydemeng/assetsbridge/precompile"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/log"
)

// ErrNoPrecompile is returned for calls to an address with no precompile.
var ErrNoPrecompile = errors.New("no precompile at address")

// StatefulPrecompile is a precompile that reads the call context.
type StatefulPrecompile interface {
	Address() common.Address
	Run(ctx precompile.CallContext, input []byte) ([]byte, uint64, error)
}

// ExecutionResult is the outcome of a call.
type ExecutionResult struct {
	UsedGas    uint64 // total gas consumed by the call
	Err        error  // execution error (revert, out of gas), nil on success
	ReturnData []byte // output or revert payload
}

// Failed reports whether the call failed.
func (r *ExecutionResult) Failed() bool { return r.Err != nil }

// Return returns the output of a successful call.
func (r *ExecutionResult) Return() []byte {
	if r.Err != nil {
		return nil
	}
	return common.CopyBytes(r.ReturnData)
}

// Revert returns the revert payload of a reverted call.
func (r *ExecutionResult) Revert() []byte {
	if !errors.Is(r.Err, vm.ErrExecutionReverted) {
		return nil
	}
	return common.CopyBytes(r.ReturnData)
}

// RevertReason decodes the Error(string) message of a reverted call.
func (r *ExecutionResult) RevertReason() (string, bool) {
	data := r.Revert()
	if data == nil {
		return "", false
	}
	reason, err := abi.UnpackRevert(data)
	if err != nil {
		return "", false
	}
	return reason, true
}

// Executor runs calls against a backend.
type Executor interface {
	// Engine returns a human-readable short name identifying the backend.
	Engine() string

	// Call executes the call described by meta.
	Call(meta CallMetadata) (*ExecutionResult, error)
}

type precompileExecutor struct {
	contracts map[common.Address]StatefulPrecompile
	logger    log.Logger
}

// NewExecutor routes calls to the given precompiles by address.
func NewExecutor(contracts ...StatefulPrecompile) (Executor, error) {
	e := &precompileExecutor{
		contracts: make(map[common.Address]StatefulPrecompile, len(contracts)),
		logger:    log.New("module", "executor"),
	}
	for _, c := range contracts {
		addr := c.Address()
		if _, dup := e.contracts[addr]; dup {
			return nil, fmt.Errorf("duplicate precompile at %s", addr)
		}
		e.contracts[addr] = c
	}
	return e, nil
}

func (e *precompileExecutor) Engine() string { return "precompile" }

func (e *precompileExecutor) Call(meta CallMetadata) (*ExecutionResult, error) {
	contract, ok := e.contracts[meta.To]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrNoPrecompile, meta.To)
	}
	ctx := precompile.CallContext{
		Caller:   meta.From,
		Address:  meta.To,
		Gas:      meta.GasLimit,
		Value:    meta.Value,
		ReadOnly: meta.Static,
	}
	ret, left, err := contract.Run(ctx, meta.Data)
	if left > meta.GasLimit {
		return nil, fmt.Errorf("precompile %s returned %d gas out of %d", meta.To, left, meta.GasLimit)
	}
	e.logger.Trace("Precompile call", "to", meta.To, "from", meta.From, "gas", meta.GasLimit-left, "err", err)
	return &ExecutionResult{
		UsedGas:    meta.GasLimit - left,
		Err:        err,
		ReturnData: ret,
	}, nil
}
