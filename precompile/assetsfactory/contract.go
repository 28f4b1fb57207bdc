package assetsfactory

import (
	"errors"
	"time"

	"github.com/clydemeng/assetsbridge/params"
	"github.com/clydemeng/assetsbridge/precompile"
	"github.com/clydemeng/assetsbridge/precompile/solidity"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// Precompile exposes asset creation and administration to EVM callers. It is
// stateless: all state lives in the ledger it dispatches to.
type Precompile struct {
	config     Config
	ledger     AssetLedger
	ids        AssetIDs
	mapper     AddressMapper
	dispatcher precompile.Dispatcher
	logger     log.Logger
}

// New creates the precompile over its collaborators.
func New(config Config, ledger AssetLedger, ids AssetIDs, mapper AddressMapper, dispatcher precompile.Dispatcher) *Precompile {
	return &Precompile{
		config:     config,
		ledger:     ledger,
		ids:        ids,
		mapper:     mapper,
		dispatcher: dispatcher,
		logger:     log.New("precompile", "assets-factory", "address", config.Address),
	}
}

// Address returns the address the precompile is installed at.
func (p *Precompile) Address() common.Address { return p.config.Address }

// Run executes a call. It returns the output, the gas left and an error: a
// *solidity.Revert for reverts (the output is then the revert payload) or
// vm.ErrOutOfGas, in which case all gas is consumed.
func (p *Precompile) Run(ctx precompile.CallContext, input []byte) ([]byte, uint64, error) {
	callMeter.Mark(1)
	h := precompile.NewHandle(ctx)
	ret, err := p.execute(h, input)
	if err == nil {
		return ret, h.RemainingGas(), nil
	}
	if errors.Is(err, vm.ErrOutOfGas) {
		outOfGasMeter.Mark(1)
		p.logger.Debug("Precompile out of gas", "caller", ctx.Caller, "gas", ctx.Gas)
		return nil, 0, vm.ErrOutOfGas
	}
	revertMeter.Mark(1)
	rev := asRevert(err)
	p.logger.Debug("Precompile reverted", "caller", ctx.Caller, "reason", rev)
	return rev.Bytes(), h.RemainingGas(), rev
}

func asRevert(err error) *solidity.Revert {
	var derr *precompile.DispatchError
	if errors.As(err, &derr) {
		return solidity.DispatchFailed(derr.Err)
	}
	var rev *solidity.Revert
	if errors.As(err, &rev) {
		return rev
	}
	return solidity.Custom(err.Error())
}

func (p *Precompile) execute(h *precompile.Handle, input []byte) ([]byte, error) {
	sel, err := solidity.ReadSelector(input)
	if err != nil {
		return nil, err
	}
	kind, ok := Lookup(sel)
	if !ok {
		return nil, solidity.UnknownSelector()
	}
	ctx := h.Context()
	if kind.Mutating() && ctx.ReadOnly {
		return nil, solidity.Custom("Can't call non-static function in static context")
	}
	if ctx.Value != nil && !ctx.Value.IsZero() {
		return nil, solidity.Custom("Function is not payable")
	}
	r := solidity.NewReader(input[4:])

	switch kind {
	case OpConvertAssetIdToAddress:
		return p.convertAssetIdToAddress(r)
	case OpCreate:
		return nil, p.create(h, r)
	case OpSetMetadata:
		return nil, p.setMetadata(h, r)
	case OpSetMinBalance:
		return nil, p.setMinBalance(h, r)
	case OpSetTeam:
		return nil, p.setTeam(h, r)
	case OpTransferOwnership:
		return nil, p.transferOwnership(h, r)
	case OpStartDestroy:
		return nil, p.startDestroy(h, r)
	case OpFinishDestroy:
		return nil, p.finishDestroy(h, r)
	}
	return nil, solidity.UnknownSelector()
}

// chargeEvent pre-pays the event emitted by every mutating call.
func chargeEvent(h *precompile.Handle) error {
	return h.RecordLogCostsManual(params.AssetEventTopics, params.AssetEventDataLen)
}

func (p *Precompile) assetID(id uint64) (AssetID, error) {
	assetID, ok := p.ids.FromUint64(id)
	if !ok {
		return 0, solidity.ValueTooLarge("asset id").InField("id")
	}
	return assetID, nil
}

// balance clamps v to the ledger maximum.
func (p *Precompile) balance(v *uint256.Int) *uint256.Int {
	limit := p.ledger.MaxBalance()
	if v.Gt(limit) {
		return limit.Clone()
	}
	return v
}

func (p *Precompile) origin(h *precompile.Handle) precompile.AccountID {
	return p.mapper.IntoAccountID(h.Context().Caller)
}

func (p *Precompile) dispatch(h *precompile.Handle, call precompile.Call) error {
	start := time.Now()
	_, err := p.dispatcher.TryDispatch(h, p.origin(h), call, p.config.StorageGrowth)
	dispatchTimer.UpdateSince(start)
	if err != nil && !errors.Is(err, vm.ErrOutOfGas) {
		dispatchErrors.Inc(1)
	}
	return err
}

func readID(r *solidity.Reader) (uint64, error) {
	id, err := r.ReadUint64()
	return id, solidity.InField(err, "id")
}

func readAddress(r *solidity.Reader, field string) (common.Address, error) {
	addr, err := r.ReadAddress()
	return addr, solidity.InField(err, field)
}

func readBalance(r *solidity.Reader, field string) (*uint256.Int, error) {
	v, err := r.ReadWord("uint128")
	return v, solidity.InField(err, field)
}

func (p *Precompile) convertAssetIdToAddress(r *solidity.Reader) ([]byte, error) {
	id, err := readID(r)
	if err != nil {
		return nil, err
	}
	assetID, err := p.assetID(id)
	if err != nil {
		return nil, err
	}
	return solidity.NewWriter().WriteAddress(p.ids.ToAddress(assetID)).Build(), nil
}

func (p *Precompile) create(h *precompile.Handle, r *solidity.Reader) error {
	id, err := readID(r)
	if err != nil {
		return err
	}
	admin, err := readAddress(r, "admin")
	if err != nil {
		return err
	}
	minBalance, err := readBalance(r, "minBalance")
	if err != nil {
		return err
	}
	if err := chargeEvent(h); err != nil {
		return err
	}
	assetID, err := p.assetID(id)
	if err != nil {
		return err
	}
	if !p.ids.IsAllowedToCreate(assetID) {
		return solidity.Custom("Invalid asset id")
	}
	return p.dispatch(h, &CreateCall{
		Ledger:     p.ledger,
		Weight:     p.config.Weights.of(OpCreate),
		ID:         assetID,
		Admin:      p.mapper.IntoAccountID(admin),
		MinBalance: p.balance(minBalance),
	})
}

func (p *Precompile) setMetadata(h *precompile.Handle, r *solidity.Reader) error {
	id, err := readID(r)
	if err != nil {
		return err
	}
	name, err := r.ReadBoundedBytes(p.config.BytesLimit)
	if err != nil {
		return solidity.InField(err, "name")
	}
	symbol, err := r.ReadBoundedBytes(p.config.BytesLimit)
	if err != nil {
		return solidity.InField(err, "symbol")
	}
	decimals, err := r.ReadUint8()
	if err != nil {
		return solidity.InField(err, "decimals")
	}
	if err := chargeEvent(h); err != nil {
		return err
	}
	assetID, err := p.assetID(id)
	if err != nil {
		return err
	}
	return p.dispatch(h, &SetMetadataCall{
		Ledger:    p.ledger,
		Weight:    p.config.Weights.of(OpSetMetadata),
		ID:        assetID,
		AssetName: name,
		Symbol:    symbol,
		Decimals:  decimals,
	})
}

func (p *Precompile) setMinBalance(h *precompile.Handle, r *solidity.Reader) error {
	id, err := readID(r)
	if err != nil {
		return err
	}
	minBalance, err := readBalance(r, "minBalance")
	if err != nil {
		return err
	}
	if err := chargeEvent(h); err != nil {
		return err
	}
	assetID, err := p.assetID(id)
	if err != nil {
		return err
	}
	return p.dispatch(h, &SetMinBalanceCall{
		Ledger:     p.ledger,
		Weight:     p.config.Weights.of(OpSetMinBalance),
		ID:         assetID,
		MinBalance: p.balance(minBalance),
	})
}

func (p *Precompile) setTeam(h *precompile.Handle, r *solidity.Reader) error {
	id, err := readID(r)
	if err != nil {
		return err
	}
	issuer, err := readAddress(r, "issuer")
	if err != nil {
		return err
	}
	admin, err := readAddress(r, "admin")
	if err != nil {
		return err
	}
	freezer, err := readAddress(r, "freezer")
	if err != nil {
		return err
	}
	if err := chargeEvent(h); err != nil {
		return err
	}
	assetID, err := p.assetID(id)
	if err != nil {
		return err
	}
	return p.dispatch(h, &SetTeamCall{
		Ledger:  p.ledger,
		Weight:  p.config.Weights.of(OpSetTeam),
		ID:      assetID,
		Issuer:  p.mapper.IntoAccountID(issuer),
		Admin:   p.mapper.IntoAccountID(admin),
		Freezer: p.mapper.IntoAccountID(freezer),
	})
}

func (p *Precompile) transferOwnership(h *precompile.Handle, r *solidity.Reader) error {
	id, err := readID(r)
	if err != nil {
		return err
	}
	owner, err := readAddress(r, "owner")
	if err != nil {
		return err
	}
	if err := chargeEvent(h); err != nil {
		return err
	}
	assetID, err := p.assetID(id)
	if err != nil {
		return err
	}
	return p.dispatch(h, &TransferOwnershipCall{
		Ledger: p.ledger,
		Weight: p.config.Weights.of(OpTransferOwnership),
		ID:     assetID,
		Owner:  p.mapper.IntoAccountID(owner),
	})
}

func (p *Precompile) startDestroy(h *precompile.Handle, r *solidity.Reader) error {
	id, err := readID(r)
	if err != nil {
		return err
	}
	if err := chargeEvent(h); err != nil {
		return err
	}
	assetID, err := p.assetID(id)
	if err != nil {
		return err
	}
	return p.dispatch(h, &StartDestroyCall{
		Ledger: p.ledger,
		Weight: p.config.Weights.of(OpStartDestroy),
		ID:     assetID,
	})
}

func (p *Precompile) finishDestroy(h *precompile.Handle, r *solidity.Reader) error {
	id, err := readID(r)
	if err != nil {
		return err
	}
	if err := chargeEvent(h); err != nil {
		return err
	}
	assetID, err := p.assetID(id)
	if err != nil {
		return err
	}
	return p.dispatch(h, &FinishDestroyCall{
		Ledger: p.ledger,
		Weight: p.config.Weights.of(OpFinishDestroy),
		ID:     assetID,
	})
}
