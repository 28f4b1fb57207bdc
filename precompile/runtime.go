package precompile

import (
	"errors"
	"fmt"

	"github.com/clydemeng/assetsbridge/params"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/log"
)

// ErrCallFiltered is returned when the runtime's call filter rejects a call.
var ErrCallFiltered = errors.New("call filtered")

// DispatchInfo is the pre-dispatch cost declaration of a call.
type DispatchInfo struct {
	Weight Weight
}

// PostDispatchInfo reports the weight actually consumed. A nil ActualWeight
// means the declared weight was used in full.
type PostDispatchInfo struct {
	ActualWeight *Weight
}

// Call is a runtime request that can be dispatched with an origin.
type Call interface {
	Name() string
	DispatchInfo() DispatchInfo
	Dispatch(origin AccountID) (PostDispatchInfo, error)
}

// Dispatcher charges for and executes calls on behalf of precompiles.
type Dispatcher interface {
	TryDispatch(h *Handle, origin AccountID, call Call, storageGrowth uint64) (PostDispatchInfo, error)
}

// DispatchError carries a failure returned by the dispatched call itself.
type DispatchError struct {
	Call string
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Call, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// CallFilter decides whether a call may be dispatched.
type CallFilter func(origin AccountID, call Call) bool

// RuntimeConfig holds the conversion rates used to charge dispatched calls.
type RuntimeConfig struct {
	WeightPerGas      uint64
	GasPerStorageByte uint64
}

// DefaultRuntimeConfig contains the default conversion rates.
var DefaultRuntimeConfig = RuntimeConfig{
	WeightPerGas:      params.WeightPerGas,
	GasPerStorageByte: params.GasPerStorageByte,
}

// Runtime is the reference Dispatcher. It converts the declared weight and
// storage growth into gas, charges it, runs the call and refunds any unused
// weight.
type Runtime struct {
	mapping GasWeightMapping
	config  RuntimeConfig
	filter  CallFilter
	logger  log.Logger
}

// NewRuntime creates a runtime. A nil filter admits every call.
func NewRuntime(config RuntimeConfig, filter CallFilter) *Runtime {
	return &Runtime{
		mapping: FixedGasWeightMapping{WeightPerGas: config.WeightPerGas},
		config:  config,
		filter:  filter,
		logger:  log.New("module", "runtime"),
	}
}

// DispatchCost returns the gas charged before dispatching a call with the
// given weight and storage growth.
func (r *Runtime) DispatchCost(weight Weight, storageGrowth uint64) (uint64, bool) {
	storageGas, overflow := math.SafeMul(storageGrowth, r.config.GasPerStorageByte)
	if overflow {
		return 0, true
	}
	return math.SafeAdd(r.mapping.WeightToGas(weight), storageGas)
}

// TryDispatch implements Dispatcher.
func (r *Runtime) TryDispatch(h *Handle, origin AccountID, call Call, storageGrowth uint64) (PostDispatchInfo, error) {
	info := call.DispatchInfo()
	cost, overflow := r.DispatchCost(info.Weight, storageGrowth)
	if overflow {
		return PostDispatchInfo{}, vm.ErrOutOfGas
	}
	if err := h.RecordCost(cost); err != nil {
		r.logger.Debug("Not enough gas to dispatch", "call", call.Name(), "cost", cost, "remaining", h.RemainingGas())
		return PostDispatchInfo{}, err
	}
	if r.filter != nil && !r.filter(origin, call) {
		return PostDispatchInfo{}, &DispatchError{Call: call.Name(), Err: ErrCallFiltered}
	}
	post, err := call.Dispatch(origin)
	if err != nil {
		r.logger.Debug("Dispatched call failed", "call", call.Name(), "origin", origin, "err", err)
		return post, &DispatchError{Call: call.Name(), Err: err}
	}
	if post.ActualWeight != nil && *post.ActualWeight < info.Weight {
		refund := r.mapping.WeightToGas(info.Weight) - r.mapping.WeightToGas(*post.ActualWeight)
		h.Refund(refund)
	}
	return post, nil
}
