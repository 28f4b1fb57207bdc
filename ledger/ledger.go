package ledger

import (
	"fmt"
	"sort"
	"sync"

	"github.com/clydemeng/assetsbridge/params"
	"github.com/clydemeng/assetsbridge/precompile"
	"github.com/clydemeng/assetsbridge/precompile/assetsfactory"
	"github.com/clydemeng/assetsbridge/tracing"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// Status is the lifecycle state of an asset.
type Status uint8

const (
	StatusLive Status = iota
	StatusDestroying
)

func (s Status) String() string {
	switch s {
	case StatusLive:
		return "live"
	case StatusDestroying:
		return "destroying"
	}
	return "unknown"
}

// Details is the administrative record of an asset.
type Details struct {
	Owner      precompile.AccountID
	Issuer     precompile.AccountID
	Admin      precompile.AccountID
	Freezer    precompile.AccountID
	MinBalance *uint256.Int
	Status     Status
}

func (d *Details) copy() *Details {
	cpy := *d
	cpy.MinBalance = d.MinBalance.Clone()
	return &cpy
}

// Metadata is the descriptive record of an asset.
type Metadata struct {
	Name     []byte
	Symbol   []byte
	Decimals uint8
}

// Config parameterises the reference ledger.
type Config struct {
	EventAddress   common.Address // address stamped on emitted logs
	StringLimit    int            // max length of names and symbols
	MaxBalanceBits uint           // balances are limited to 2^bits-1
}

// DefaultConfig contains the default ledger settings.
var DefaultConfig = Config{
	EventAddress:   params.AssetsFactoryAddress,
	StringLimit:    params.AssetStringLimit,
	MaxBalanceBits: params.MaxBalanceBits,
}

// Ledger is an in-memory asset ledger. Every operation stages its writes in
// a pending journal that is flushed when the operation succeeds and dropped
// when it fails, so a failed call never leaves partial state behind.
type Ledger struct {
	config     Config
	maxBalance *uint256.Int

	assets   map[assetsfactory.AssetID]*Details
	metadata map[assetsfactory.AssetID]*Metadata
	logs     []*types.Log

	// pending writes of the running operation; a nil value marks a deletion
	pendingAssets   map[assetsfactory.AssetID]*Details
	pendingMetadata map[assetsfactory.AssetID]*Metadata
	pendingLogs     []*types.Log

	logger log.Logger
	mu     sync.Mutex
}

// New creates an empty ledger.
func New(config Config) (*Ledger, error) {
	if config.MaxBalanceBits == 0 || config.MaxBalanceBits > 256 {
		return nil, fmt.Errorf("invalid balance width %d", config.MaxBalanceBits)
	}
	if config.StringLimit < 0 {
		return nil, fmt.Errorf("invalid string limit %d", config.StringLimit)
	}
	limit := new(uint256.Int).SetAllOne()
	if config.MaxBalanceBits < 256 {
		limit.Lsh(uint256.NewInt(1), config.MaxBalanceBits)
		limit.SubUint64(limit, 1)
	}
	return &Ledger{
		config:     config,
		maxBalance: limit,
		assets:     make(map[assetsfactory.AssetID]*Details),
		metadata:   make(map[assetsfactory.AssetID]*Metadata),
		logger:     log.New("module", "ledger"),
	}, nil
}

var _ assetsfactory.AssetLedger = (*Ledger)(nil)

// MaxBalance implements assetsfactory.AssetLedger.
func (l *Ledger) MaxBalance() *uint256.Int {
	return l.maxBalance.Clone()
}

// ensureJournal lazily allocates the pending maps.
func (l *Ledger) ensureJournal() {
	if l.pendingAssets == nil {
		l.pendingAssets = make(map[assetsfactory.AssetID]*Details)
	}
	if l.pendingMetadata == nil {
		l.pendingMetadata = make(map[assetsfactory.AssetID]*Metadata)
	}
}

// flushPending applies the journal to the committed maps and clears it.
func (l *Ledger) flushPending() {
	for id, d := range l.pendingAssets {
		if d == nil {
			delete(l.assets, id)
			continue
		}
		l.assets[id] = d
	}
	for id, m := range l.pendingMetadata {
		if m == nil {
			delete(l.metadata, id)
			continue
		}
		l.metadata[id] = m
	}
	l.logs = append(l.logs, l.pendingLogs...)
	l.discardPending()
}

func (l *Ledger) discardPending() {
	l.pendingAssets = nil
	l.pendingMetadata = nil
	l.pendingLogs = nil
}

// apply runs op against the journal and commits it only on success.
func (l *Ledger) apply(name string, op func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ensureJournal()
	if err := op(); err != nil {
		l.discardPending()
		l.logger.Debug("Asset operation rejected", "op", name, "err", err)
		return err
	}
	l.flushPending()
	return nil
}

// asset returns a private copy of the asset record, pending writes first.
func (l *Ledger) asset(id assetsfactory.AssetID) (*Details, bool) {
	if d, ok := l.pendingAssets[id]; ok {
		if d == nil {
			return nil, false
		}
		return d.copy(), true
	}
	d, ok := l.assets[id]
	if !ok {
		return nil, false
	}
	return d.copy(), true
}

// live loads an asset that must exist, be live and be owned by origin.
func (l *Ledger) live(origin precompile.AccountID, id assetsfactory.AssetID) (*Details, error) {
	d, ok := l.asset(id)
	if !ok {
		return nil, ErrUnknown
	}
	if d.Status != StatusLive {
		return nil, ErrAssetNotLive
	}
	if d.Owner != origin {
		return nil, ErrNoPermission
	}
	return d, nil
}

func (l *Ledger) emit(reason tracing.AssetChangeReason, id assetsfactory.AssetID, actor precompile.AccountID, data common.Hash) {
	l.pendingLogs = append(l.pendingLogs, &types.Log{
		Address: l.config.EventAddress,
		Topics:  []common.Hash{EventTopic(reason), idTopic(id), actor.Hash()},
		Data:    data.Bytes(),
	})
}

// Create registers a new live asset owned by origin.
func (l *Ledger) Create(origin precompile.AccountID, id assetsfactory.AssetID, admin precompile.AccountID, minBalance *uint256.Int) error {
	return l.apply("create", func() error {
		if _, ok := l.asset(id); ok {
			return ErrInUse
		}
		if minBalance == nil || minBalance.IsZero() {
			return ErrMinBalanceZero
		}
		l.pendingAssets[id] = &Details{
			Owner:      origin,
			Issuer:     admin,
			Admin:      admin,
			Freezer:    admin,
			MinBalance: minBalance.Clone(),
			Status:     StatusLive,
		}
		l.emit(tracing.AssetChangeCreated, id, origin, common.Hash(minBalance.Bytes32()))
		return nil
	})
}

// SetMetadata replaces the asset metadata.
func (l *Ledger) SetMetadata(origin precompile.AccountID, id assetsfactory.AssetID, name, symbol []byte, decimals uint8) error {
	return l.apply("setMetadata", func() error {
		if _, err := l.live(origin, id); err != nil {
			return err
		}
		if len(name) > l.config.StringLimit || len(symbol) > l.config.StringLimit {
			return ErrBadMetadata
		}
		l.pendingMetadata[id] = &Metadata{
			Name:     common.CopyBytes(name),
			Symbol:   common.CopyBytes(symbol),
			Decimals: decimals,
		}
		l.emit(tracing.AssetChangeMetadataSet, id, origin, common.BytesToHash([]byte{decimals}))
		return nil
	})
}

// SetMinBalance changes the minimum balance.
func (l *Ledger) SetMinBalance(origin precompile.AccountID, id assetsfactory.AssetID, minBalance *uint256.Int) error {
	return l.apply("setMinBalance", func() error {
		d, err := l.live(origin, id)
		if err != nil {
			return err
		}
		if minBalance == nil || minBalance.IsZero() {
			return ErrMinBalanceZero
		}
		d.MinBalance = minBalance.Clone()
		l.pendingAssets[id] = d
		l.emit(tracing.AssetChangeMinBalance, id, origin, common.Hash(minBalance.Bytes32()))
		return nil
	})
}

// SetTeam replaces the issuer, admin and freezer accounts.
func (l *Ledger) SetTeam(origin precompile.AccountID, id assetsfactory.AssetID, issuer, admin, freezer precompile.AccountID) error {
	return l.apply("setTeam", func() error {
		d, err := l.live(origin, id)
		if err != nil {
			return err
		}
		d.Issuer, d.Admin, d.Freezer = issuer, admin, freezer
		l.pendingAssets[id] = d
		l.emit(tracing.AssetChangeTeam, id, origin, admin.Hash())
		return nil
	})
}

// TransferOwnership hands the asset to owner. Transferring to the current
// owner is a no-op.
func (l *Ledger) TransferOwnership(origin precompile.AccountID, id assetsfactory.AssetID, owner precompile.AccountID) error {
	return l.apply("transferOwnership", func() error {
		d, err := l.live(origin, id)
		if err != nil {
			return err
		}
		if d.Owner == owner {
			return nil
		}
		d.Owner = owner
		l.pendingAssets[id] = d
		l.emit(tracing.AssetChangeOwner, id, origin, owner.Hash())
		return nil
	})
}

// StartDestroy moves a live asset into the destroying state.
func (l *Ledger) StartDestroy(origin precompile.AccountID, id assetsfactory.AssetID) error {
	return l.apply("startDestroy", func() error {
		d, err := l.live(origin, id)
		if err != nil {
			return err
		}
		d.Status = StatusDestroying
		l.pendingAssets[id] = d
		l.emit(tracing.AssetChangeDestructionStarted, id, origin, common.Hash{})
		return nil
	})
}

// FinishDestroy removes an asset that is being destroyed. Any signed origin
// may finish a destruction.
func (l *Ledger) FinishDestroy(origin precompile.AccountID, id assetsfactory.AssetID) error {
	return l.apply("finishDestroy", func() error {
		d, ok := l.asset(id)
		if !ok {
			return ErrUnknown
		}
		if d.Status != StatusDestroying {
			return ErrIncorrectStatus
		}
		l.pendingAssets[id] = nil
		l.pendingMetadata[id] = nil
		l.emit(tracing.AssetChangeDestroyed, id, origin, common.Hash{})
		return nil
	})
}

// Asset returns a copy of the committed asset record.
func (l *Ledger) Asset(id assetsfactory.AssetID) (Details, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	d, ok := l.assets[id]
	if !ok {
		return Details{}, false
	}
	return *d.copy(), true
}

// Metadata returns a copy of the committed asset metadata.
func (l *Ledger) Metadata(id assetsfactory.AssetID) (Metadata, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.metadata[id]
	if !ok {
		return Metadata{}, false
	}
	return Metadata{Name: common.CopyBytes(m.Name), Symbol: common.CopyBytes(m.Symbol), Decimals: m.Decimals}, true
}

// Assets returns the ids of all committed assets in ascending order.
func (l *Ledger) Assets() []assetsfactory.AssetID {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]assetsfactory.AssetID, 0, len(l.assets))
	for id := range l.assets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DrainLogs returns and clears the committed event logs.
func (l *Ledger) DrainLogs() []*types.Log {
	l.mu.Lock()
	defer l.mu.Unlock()

	logs := l.logs
	l.logs = nil
	return logs
}
