package core

import (
	"github.com/clydemeng/assetsbridge/core/vm"
	"github.com/ethereum/go-ethereum/core/types"
)

// LogSource hands out the events committed by the state backend since the
// previous drain.
type LogSource interface {
	DrainLogs() []*types.Log
}

// CallExecutor wraps a vm.Executor and turns each call into a receipt, the
// way the state processor does for transactions.
type CallExecutor struct {
	inner vm.Executor
	logs  LogSource
}

// NewCallExecutor creates an executor. logs may be nil when the backend emits
// no events.
func NewCallExecutor(inner vm.Executor, logs LogSource) *CallExecutor {
	return &CallExecutor{inner: inner, logs: logs}
}

// Engine returns a short human identifier of the backend.
func (c *CallExecutor) Engine() string { return c.inner.Engine() }

// ApplyCall executes meta and builds its receipt. cumulativeGas is the gas
// used by preceding calls in the same batch. Only a failure to route the call
// returns an error; reverts and out-of-gas are reported through the receipt
// status and the execution result.
func (c *CallExecutor) ApplyCall(meta vm.CallMetadata, cumulativeGas uint64) (*types.Receipt, *vm.ExecutionResult, error) {
	res, err := c.inner.Call(meta)
	if err != nil {
		return nil, nil, err
	}
	var logs []*types.Log
	if c.logs != nil {
		logs = c.logs.DrainLogs()
	}
	receipt := &types.Receipt{
		Type:              types.LegacyTxType,
		CumulativeGasUsed: cumulativeGas + res.UsedGas,
		GasUsed:           res.UsedGas,
		Logs:              []*types.Log{},
	}
	if res.Failed() {
		receipt.Status = types.ReceiptStatusFailed
	} else {
		receipt.Status = types.ReceiptStatusSuccessful
		receipt.Logs = logs
	}
	for i, lg := range receipt.Logs {
		lg.Index = uint(i)
	}
	receipt.Bloom = types.CreateBloom(receipt)
	return receipt, res, nil
}
