package vm

import (
	"errors"
	"testing"

	"github.com/clydemeng/assetsbridge/precompile"
	"github.com/clydemeng/assetsbridge/precompile/solidity"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/stretchr/testify/require"
)

type echoPrecompile struct {
	addr common.Address
	cost uint64
	err  error
	seen []precompile.CallContext
}

func (p *echoPrecompile) Address() common.Address { return p.addr }

func (p *echoPrecompile) Run(ctx precompile.CallContext, input []byte) ([]byte, uint64, error) {
	p.seen = append(p.seen, ctx)
	if p.cost > ctx.Gas {
		return nil, 0, vm.ErrOutOfGas
	}
	if p.err != nil {
		var rev *solidity.Revert
		if errors.As(p.err, &rev) {
			return rev.Bytes(), ctx.Gas - p.cost, p.err
		}
		return nil, ctx.Gas - p.cost, p.err
	}
	return input, ctx.Gas - p.cost, nil
}

func TestExecutorRoutes(t *testing.T) {
	a := &echoPrecompile{addr: common.HexToAddress("0x0a"), cost: 10}
	b := &echoPrecompile{addr: common.HexToAddress("0x0b"), cost: 20}
	exec, err := NewExecutor(a, b)
	require.NoError(t, err)
	require.Equal(t, "precompile", exec.Engine())

	from := common.HexToAddress("0xf0")
	res, err := exec.Call(CallMetadata{From: from, To: b.addr, Data: []byte{1, 2}, GasLimit: 100, Static: true})
	require.NoError(t, err)
	require.False(t, res.Failed())
	require.Equal(t, uint64(20), res.UsedGas)
	require.Equal(t, []byte{1, 2}, res.Return())
	require.Nil(t, res.Revert())

	require.Empty(t, a.seen)
	require.Len(t, b.seen, 1)
	require.Equal(t, from, b.seen[0].Caller)
	require.True(t, b.seen[0].ReadOnly)
	require.Equal(t, uint64(100), b.seen[0].Gas)

	_, err = exec.Call(CallMetadata{To: common.HexToAddress("0x0c"), GasLimit: 100})
	require.ErrorIs(t, err, ErrNoPrecompile)
}

func TestExecutorDuplicateAddress(t *testing.T) {
	a := &echoPrecompile{addr: common.HexToAddress("0x0a")}
	_, err := NewExecutor(a, &echoPrecompile{addr: a.addr})
	require.Error(t, err)
}

func TestExecutorFailures(t *testing.T) {
	p := &echoPrecompile{addr: common.HexToAddress("0x0a"), cost: 50}
	exec, err := NewExecutor(p)
	require.NoError(t, err)

	res, err := exec.Call(CallMetadata{To: p.addr, GasLimit: 10})
	require.NoError(t, err)
	require.ErrorIs(t, res.Err, vm.ErrOutOfGas)
	require.Equal(t, uint64(10), res.UsedGas)
	require.Nil(t, res.Revert())

	p.err = solidity.Custom("Invalid asset id")
	res, err = exec.Call(CallMetadata{To: p.addr, GasLimit: 100})
	require.NoError(t, err)
	require.True(t, res.Failed())
	require.Nil(t, res.Return())
	reason, ok := res.RevertReason()
	require.True(t, ok)
	require.Equal(t, "Invalid asset id", reason)
	require.Equal(t, uint64(50), res.UsedGas)
}
