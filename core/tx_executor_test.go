package core

import (
	"math/big"
	"testing"

	"github.com/clydemeng/assetsbridge/addressmap"
	"github.com/clydemeng/assetsbridge/core/vm"
	"github.com/clydemeng/assetsbridge/ledger"
	"github.com/clydemeng/assetsbridge/precompile"
	"github.com/clydemeng/assetsbridge/precompile/assetsfactory"
	"github.com/clydemeng/assetsbridge/precompile/solidity"
	"github.com/clydemeng/assetsbridge/tracing"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	gethvm "github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

var (
	adminAddr  = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	callerAddr = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	otherAddr  = common.HexToAddress("0xcccccccccccccccccccccccccccccccccccccccc")
)

type testStack struct {
	ledger *ledger.Ledger
	mapper assetsfactory.AddressMapper
	exec   *CallExecutor
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	l, err := ledger.New(ledger.DefaultConfig)
	require.NoError(t, err)
	ids, err := ledger.NewAssetIDScheme(ledger.DefaultAssetIDConfig)
	require.NoError(t, err)
	mapper, err := addressmap.New(addressmap.DefaultConfig)
	require.NoError(t, err)
	rt := precompile.NewRuntime(precompile.DefaultRuntimeConfig, nil)
	p := assetsfactory.New(assetsfactory.DefaultConfig, l, ids, mapper, rt)
	exec, err := vm.NewExecutor(p)
	require.NoError(t, err)
	return &testStack{ledger: l, mapper: mapper, exec: NewCallExecutor(exec, l)}
}

func (s *testStack) call(t *testing.T, from common.Address, gas uint64, kind assetsfactory.OperationKind, args ...interface{}) (*types.Receipt, *vm.ExecutionResult) {
	t.Helper()
	method, err := solidity.ParseSignature(kind.Signature(), kind.Mutability())
	require.NoError(t, err)
	packed, err := method.Inputs.Pack(args...)
	require.NoError(t, err)
	receipt, res, err := s.exec.ApplyCall(vm.CallMetadata{
		From:     from,
		To:       assetsfactory.DefaultConfig.Address,
		Data:     append(method.ID, packed...),
		GasLimit: gas,
	}, 0)
	require.NoError(t, err)
	return receipt, res
}

func TestCreateEndToEnd(t *testing.T) {
	s := newTestStack(t)
	receipt, res := s.call(t, callerAddr, 1_000_000, assetsfactory.OpCreate, uint64(5), adminAddr, big.NewInt(1000))
	require.NoError(t, res.Err)
	require.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	require.Equal(t, res.UsedGas, receipt.GasUsed)

	d, ok := s.ledger.Asset(5)
	require.True(t, ok)
	require.Equal(t, s.mapper.IntoAccountID(callerAddr), d.Owner)
	require.Equal(t, s.mapper.IntoAccountID(adminAddr), d.Admin)
	require.Equal(t, uint256.NewInt(1000), d.MinBalance)

	require.Len(t, receipt.Logs, 1)
	lg := receipt.Logs[0]
	require.Len(t, lg.Topics, 3)
	require.Len(t, lg.Data, 32)
	require.Equal(t, ledger.EventTopic(tracing.AssetChangeCreated), lg.Topics[0])
	require.True(t, receipt.Bloom.Test(lg.Topics[0].Bytes()))
	require.True(t, receipt.Bloom.Test(lg.Address.Bytes()))
	require.True(t, receipt.Bloom.Test(lg.Topics[1].Bytes()))
	require.True(t, receipt.Bloom.Test(lg.Topics[2].Bytes()))
	require.Equal(t, types.CreateBloom(receipt), receipt.Bloom)
}

func TestCreateReservedID(t *testing.T) {
	s := newTestStack(t)
	receipt, res := s.call(t, callerAddr, 1_000_000, assetsfactory.OpCreate, uint64(0), adminAddr, big.NewInt(1000))
	require.Equal(t, types.ReceiptStatusFailed, receipt.Status)
	reason, ok := res.RevertReason()
	require.True(t, ok)
	require.Equal(t, "Invalid asset id", reason)
	require.Equal(t, uint64(1756), res.UsedGas)
	require.Empty(t, s.ledger.Assets())
	require.Empty(t, receipt.Logs)
	require.Equal(t, types.Bloom{}, receipt.Bloom)
}

func TestSetMinBalanceSaturates(t *testing.T) {
	s := newTestStack(t)
	_, res := s.call(t, callerAddr, 1_000_000, assetsfactory.OpCreate, uint64(5), adminAddr, big.NewInt(1000))
	require.NoError(t, res.Err)

	sel := assetsfactory.OpSetMinBalance.Selector()
	huge := new(uint256.Int).Lsh(uint256.NewInt(1), 130)
	input := append(sel.Bytes(), solidity.NewWriter().WriteUint64(5).WriteUint256(huge).Build()...)
	receipt, res, err := s.exec.ApplyCall(vm.CallMetadata{
		From:     callerAddr,
		To:       assetsfactory.DefaultConfig.Address,
		Data:     input,
		GasLimit: 1_000_000,
	}, 0)
	require.NoError(t, err)
	require.NoError(t, res.Err)
	require.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)

	d, _ := s.ledger.Asset(5)
	require.Equal(t, s.ledger.MaxBalance(), d.MinBalance)
}

func TestInsufficientGasForEvent(t *testing.T) {
	s := newTestStack(t)
	receipt, res := s.call(t, callerAddr, 1000, assetsfactory.OpCreate, uint64(5), adminAddr, big.NewInt(1000))
	require.ErrorIs(t, res.Err, gethvm.ErrOutOfGas)
	require.Equal(t, types.ReceiptStatusFailed, receipt.Status)
	require.Equal(t, uint64(1000), receipt.GasUsed)
	require.Empty(t, s.ledger.Assets())
}

func TestAssetLifecycle(t *testing.T) {
	s := newTestStack(t)
	gas := uint64(1_000_000)
	var cumulative uint64

	steps := []struct {
		from common.Address
		kind assetsfactory.OperationKind
		args []interface{}
		ok   bool
	}{
		{callerAddr, assetsfactory.OpCreate, []interface{}{uint64(9), adminAddr, big.NewInt(1)}, true},
		{callerAddr, assetsfactory.OpSetMetadata, []interface{}{uint64(9), []byte("Test Token"), []byte("TST"), uint8(18)}, true},
		{otherAddr, assetsfactory.OpSetTeam, []interface{}{uint64(9), otherAddr, otherAddr, otherAddr}, false},
		{callerAddr, assetsfactory.OpSetTeam, []interface{}{uint64(9), otherAddr, adminAddr, adminAddr}, true},
		{callerAddr, assetsfactory.OpTransferOwnership, []interface{}{uint64(9), otherAddr}, true},
		{callerAddr, assetsfactory.OpStartDestroy, []interface{}{uint64(9)}, false},
		{otherAddr, assetsfactory.OpStartDestroy, []interface{}{uint64(9)}, true},
		{callerAddr, assetsfactory.OpFinishDestroy, []interface{}{uint64(9)}, true},
		{callerAddr, assetsfactory.OpFinishDestroy, []interface{}{uint64(9)}, false},
	}
	for i, step := range steps {
		receipt, res := s.call(t, step.from, gas, step.kind, step.args...)
		cumulative += res.UsedGas
		if step.ok {
			require.NoError(t, res.Err, "step %d (%s)", i, step.kind)
			require.Len(t, receipt.Logs, 1, "step %d", i)
		} else {
			require.ErrorIs(t, res.Err, gethvm.ErrExecutionReverted, "step %d (%s)", i, step.kind)
			require.Empty(t, receipt.Logs)
		}
	}
	require.Empty(t, s.ledger.Assets())
	_, ok := s.ledger.Metadata(9)
	require.False(t, ok)
	require.NotZero(t, cumulative)
}

func TestLedgerErrorReachesCaller(t *testing.T) {
	s := newTestStack(t)
	_, res := s.call(t, callerAddr, 1_000_000, assetsfactory.OpStartDestroy, uint64(77))
	require.ErrorIs(t, res.Err, ledger.ErrUnknown)
	reason, ok := res.RevertReason()
	require.True(t, ok)
	require.Equal(t, "Dispatched call failed with error: Unknown", reason)
}

func TestCumulativeGas(t *testing.T) {
	s := newTestStack(t)
	method, err := solidity.ParseSignature(assetsfactory.OpConvertAssetIdToAddress.Signature(), "view")
	require.NoError(t, err)
	packed, err := method.Inputs.Pack(uint64(5))
	require.NoError(t, err)

	receipt, res, err := s.exec.ApplyCall(vm.CallMetadata{
		From:     callerAddr,
		To:       assetsfactory.DefaultConfig.Address,
		Data:     append(method.ID, packed...),
		GasLimit: 50_000,
		Static:   true,
	}, 21_000)
	require.NoError(t, err)
	require.NoError(t, res.Err)
	require.Equal(t, uint64(21_000)+res.UsedGas, receipt.CumulativeGasUsed)
	require.Equal(t, common.HexToAddress("0xffffffff00000000000000000000000000000005"), common.BytesToAddress(res.Return()))
	require.Equal(t, types.Bloom{}, receipt.Bloom)

	_, _, err = s.exec.ApplyCall(vm.CallMetadata{To: otherAddr, GasLimit: 1}, 0)
	require.ErrorIs(t, err, vm.ErrNoPrecompile)
}
