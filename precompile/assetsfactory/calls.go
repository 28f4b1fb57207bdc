package assetsfactory

import (
	"github.com/clydemeng/assetsbridge/precompile"
	"github.com/holiman/uint256"
)

// The call types below are the runtime requests built by the precompile. Each
// is bound to the ledger it will run against and carries its declared weight.

type CreateCall struct {
	Ledger     AssetLedger
	Weight     precompile.Weight
	ID         AssetID
	Admin      precompile.AccountID
	MinBalance *uint256.Int
}

func (c *CreateCall) Name() string { return "Assets.create" }

func (c *CreateCall) DispatchInfo() precompile.DispatchInfo {
	return precompile.DispatchInfo{Weight: c.Weight}
}

func (c *CreateCall) Dispatch(origin precompile.AccountID) (precompile.PostDispatchInfo, error) {
	return precompile.PostDispatchInfo{}, c.Ledger.Create(origin, c.ID, c.Admin, c.MinBalance)
}

type SetMetadataCall struct {
	Ledger    AssetLedger
	Weight    precompile.Weight
	ID        AssetID
	AssetName []byte
	Symbol    []byte
	Decimals  uint8
}

func (c *SetMetadataCall) Name() string { return "Assets.set_metadata" }

func (c *SetMetadataCall) DispatchInfo() precompile.DispatchInfo {
	return precompile.DispatchInfo{Weight: c.Weight}
}

func (c *SetMetadataCall) Dispatch(origin precompile.AccountID) (precompile.PostDispatchInfo, error) {
	return precompile.PostDispatchInfo{}, c.Ledger.SetMetadata(origin, c.ID, c.AssetName, c.Symbol, c.Decimals)
}

type SetMinBalanceCall struct {
	Ledger     AssetLedger
	Weight     precompile.Weight
	ID         AssetID
	MinBalance *uint256.Int
}

func (c *SetMinBalanceCall) Name() string { return "Assets.set_min_balance" }

func (c *SetMinBalanceCall) DispatchInfo() precompile.DispatchInfo {
	return precompile.DispatchInfo{Weight: c.Weight}
}

func (c *SetMinBalanceCall) Dispatch(origin precompile.AccountID) (precompile.PostDispatchInfo, error) {
	return precompile.PostDispatchInfo{}, c.Ledger.SetMinBalance(origin, c.ID, c.MinBalance)
}

type SetTeamCall struct {
	Ledger  AssetLedger
	Weight  precompile.Weight
	ID      AssetID
	Issuer  precompile.AccountID
	Admin   precompile.AccountID
	Freezer precompile.AccountID
}

func (c *SetTeamCall) Name() string { return "Assets.set_team" }

func (c *SetTeamCall) DispatchInfo() precompile.DispatchInfo {
	return precompile.DispatchInfo{Weight: c.Weight}
}

func (c *SetTeamCall) Dispatch(origin precompile.AccountID) (precompile.PostDispatchInfo, error) {
	return precompile.PostDispatchInfo{}, c.Ledger.SetTeam(origin, c.ID, c.Issuer, c.Admin, c.Freezer)
}

type TransferOwnershipCall struct {
	Ledger AssetLedger
	Weight precompile.Weight
	ID     AssetID
	Owner  precompile.AccountID
}

func (c *TransferOwnershipCall) Name() string { return "Assets.transfer_ownership" }

func (c *TransferOwnershipCall) DispatchInfo() precompile.DispatchInfo {
	return precompile.DispatchInfo{Weight: c.Weight}
}

func (c *TransferOwnershipCall) Dispatch(origin precompile.AccountID) (precompile.PostDispatchInfo, error) {
	return precompile.PostDispatchInfo{}, c.Ledger.TransferOwnership(origin, c.ID, c.Owner)
}

type StartDestroyCall struct {
	Ledger AssetLedger
	Weight precompile.Weight
	ID     AssetID
}

func (c *StartDestroyCall) Name() string { return "Assets.start_destroy" }

func (c *StartDestroyCall) DispatchInfo() precompile.DispatchInfo {
	return precompile.DispatchInfo{Weight: c.Weight}
}

func (c *StartDestroyCall) Dispatch(origin precompile.AccountID) (precompile.PostDispatchInfo, error) {
	return precompile.PostDispatchInfo{}, c.Ledger.StartDestroy(origin, c.ID)
}

type FinishDestroyCall struct {
	Ledger AssetLedger
	Weight precompile.Weight
	ID     AssetID
}

func (c *FinishDestroyCall) Name() string { return "Assets.finish_destroy" }

func (c *FinishDestroyCall) DispatchInfo() precompile.DispatchInfo {
	return precompile.DispatchInfo{Weight: c.Weight}
}

func (c *FinishDestroyCall) Dispatch(origin precompile.AccountID) (precompile.PostDispatchInfo, error) {
	return precompile.PostDispatchInfo{}, c.Ledger.FinishDestroy(origin, c.ID)
}
