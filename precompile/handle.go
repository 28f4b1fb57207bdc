package precompile

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/vm"
	gethparams "github.com/ethereum/go-ethereum/params"
)

// Handle meters the gas of a single precompile invocation.
type Handle struct {
	ctx  CallContext
	used uint64
}

// NewHandle creates a meter for ctx.Gas.
func NewHandle(ctx CallContext) *Handle {
	return &Handle{ctx: ctx}
}

// Context returns the invocation context.
func (h *Handle) Context() CallContext { return h.ctx }

// UsedGas returns the gas consumed so far.
func (h *Handle) UsedGas() uint64 { return h.used }

// RemainingGas returns the gas still available.
func (h *Handle) RemainingGas() uint64 { return h.ctx.Gas - h.used }

// RecordCost consumes cost gas or fails with vm.ErrOutOfGas, in which case
// nothing is consumed.
func (h *Handle) RecordCost(cost uint64) error {
	if cost > h.RemainingGas() {
		return vm.ErrOutOfGas
	}
	h.used += cost
	return nil
}

// RecordLogCostsManual charges for an event with the given number of topics
// and data bytes that will be emitted outside the EVM.
func (h *Handle) RecordLogCostsManual(topics, dataLen uint64) error {
	cost, overflow := LogCost(topics, dataLen)
	if overflow {
		return vm.ErrOutOfGas
	}
	return h.RecordCost(cost)
}

// Refund returns previously charged gas. The used counter never goes below
// zero.
func (h *Handle) Refund(amount uint64) {
	if amount > h.used {
		amount = h.used
	}
	h.used -= amount
}

// LogCost computes LOG gas: a base fee plus per-topic and per-byte fees.
func LogCost(topics, dataLen uint64) (uint64, bool) {
	topicCost, overflow := math.SafeMul(topics, gethparams.LogTopicGas)
	if overflow {
		return 0, true
	}
	dataCost, overflow := math.SafeMul(dataLen, gethparams.LogDataGas)
	if overflow {
		return 0, true
	}
	cost, overflow := math.SafeAdd(gethparams.LogGas, topicCost)
	if overflow {
		return 0, true
	}
	return math.SafeAdd(cost, dataCost)
}
