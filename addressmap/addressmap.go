// Package addressmap converts EVM addresses into 32-byte runtime accounts.
package addressmap

import (
	"fmt"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/clydemeng/assetsbridge/precompile"
	"github.com/clydemeng/assetsbridge/precompile/assetsfactory"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/blake2b"
)

const (
	KindPadded = "padded"
	KindHashed = "hashed"
)

// hashPrefix is prepended to the address before hashing.
var hashPrefix = []byte("evm:")

// Config selects the mapping.
type Config struct {
	Kind       string
	CacheBytes int // hashed mapping only, 0 disables the cache
}

// DefaultConfig hashes addresses and caches 4MB of results.
var DefaultConfig = Config{
	Kind:       KindHashed,
	CacheBytes: 4 * 1024 * 1024,
}

// New creates the configured mapper.
func New(config Config) (assetsfactory.AddressMapper, error) {
	switch config.Kind {
	case KindPadded:
		return Padded{}, nil
	case KindHashed, "":
		return NewHashed(config.CacheBytes), nil
	}
	return nil, fmt.Errorf("unknown address mapping %q", config.Kind)
}

// Padded places the 20 address bytes at the start of the account id and
// zero-fills the rest.
type Padded struct{}

// IntoAccountID implements assetsfactory.AddressMapper.
func (Padded) IntoAccountID(addr common.Address) precompile.AccountID {
	var id precompile.AccountID
	copy(id[:], addr[:])
	return id
}

// Hashed derives the account id as blake2b-256("evm:" || address).
type Hashed struct {
	cache *fastcache.Cache
}

// NewHashed creates a hashed mapper with a cache of maxBytes.
func NewHashed(maxBytes int) *Hashed {
	h := &Hashed{}
	if maxBytes > 0 {
		h.cache = fastcache.New(maxBytes)
	}
	return h
}

// IntoAccountID implements assetsfactory.AddressMapper.
func (h *Hashed) IntoAccountID(addr common.Address) precompile.AccountID {
	var id precompile.AccountID
	if h.cache != nil {
		if blob, ok := h.cache.HasGet(nil, addr[:]); ok && len(blob) == len(id) {
			copy(id[:], blob)
			return id
		}
	}
	id = blake2b.Sum256(append(append([]byte{}, hashPrefix...), addr[:]...))
	if h.cache != nil {
		h.cache.Set(addr[:], id[:])
	}
	return id
}
