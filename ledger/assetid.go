package ledger

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/clydemeng/assetsbridge/params"
	"github.com/clydemeng/assetsbridge/precompile/assetsfactory"
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
)

// IDRange is an inclusive range of asset ids.
type IDRange struct {
	From uint64
	To   uint64
}

func (r IDRange) contains(id uint64) bool { return id >= r.From && id <= r.To }

// AssetIDConfig configures the asset id scheme.
type AssetIDConfig struct {
	MaxID     uint64    // largest representable asset id
	Reserved  []IDRange // ids that can never be created through the precompile
	CacheSize int       // derived address memo, 0 disables it
}

// DefaultAssetIDConfig reserves id 0 and the upper half of the id space.
var DefaultAssetIDConfig = AssetIDConfig{
	MaxID: math.MaxUint64,
	Reserved: []IDRange{
		{From: 0, To: 0},
		{From: 1 << 63, To: math.MaxUint64},
	},
	CacheSize: 1024,
}

// AssetIDScheme narrows external ids, applies the creation policy and derives
// asset addresses: the 4-byte prefix, eight zero bytes and the big-endian id.
type AssetIDScheme struct {
	config AssetIDConfig
	cache  *lru.Cache // AssetID -> common.Address
}

// NewAssetIDScheme validates the config and creates the scheme.
func NewAssetIDScheme(config AssetIDConfig) (*AssetIDScheme, error) {
	for _, r := range config.Reserved {
		if r.From > r.To {
			return nil, fmt.Errorf("invalid reserved range [%d, %d]", r.From, r.To)
		}
	}
	s := &AssetIDScheme{config: config}
	if config.CacheSize > 0 {
		cache, err := lru.New(config.CacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}
	return s, nil
}

var _ assetsfactory.AssetIDs = (*AssetIDScheme)(nil)

// FromUint64 implements assetsfactory.AssetIDs.
func (s *AssetIDScheme) FromUint64(id uint64) (assetsfactory.AssetID, bool) {
	if id > s.config.MaxID {
		return 0, false
	}
	return assetsfactory.AssetID(id), true
}

// IsAllowedToCreate implements assetsfactory.AssetIDs.
func (s *AssetIDScheme) IsAllowedToCreate(id assetsfactory.AssetID) bool {
	for _, r := range s.config.Reserved {
		if r.contains(uint64(id)) {
			return false
		}
	}
	return true
}

// ToAddress implements assetsfactory.AssetIDs.
func (s *AssetIDScheme) ToAddress(id assetsfactory.AssetID) common.Address {
	if s.cache != nil {
		if addr, ok := s.cache.Get(id); ok {
			return addr.(common.Address)
		}
	}
	var addr common.Address
	copy(addr[:], params.AssetAddressPrefix[:])
	binary.BigEndian.PutUint64(addr[common.AddressLength-8:], uint64(id))
	if s.cache != nil {
		s.cache.Add(id, addr)
	}
	return addr
}

// AddressToAssetID reverses ToAddress. Addresses outside the asset range are
// rejected.
func (s *AssetIDScheme) AddressToAssetID(addr common.Address) (assetsfactory.AssetID, bool) {
	prefixLen := len(params.AssetAddressPrefix)
	if !bytes.Equal(addr[:prefixLen], params.AssetAddressPrefix[:]) {
		return 0, false
	}
	for _, b := range addr[prefixLen : common.AddressLength-8] {
		if b != 0 {
			return 0, false
		}
	}
	return s.FromUint64(binary.BigEndian.Uint64(addr[common.AddressLength-8:]))
}
