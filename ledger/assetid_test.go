package ledger

import (
	"math"
	"testing"

	"github.com/clydemeng/assetsbridge/precompile/assetsfactory"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestAssetIDSchemeDefaults(t *testing.T) {
	s, err := NewAssetIDScheme(DefaultAssetIDConfig)
	require.NoError(t, err)

	id, ok := s.FromUint64(math.MaxUint64)
	require.True(t, ok)
	require.False(t, s.IsAllowedToCreate(id))
	require.False(t, s.IsAllowedToCreate(0))
	require.False(t, s.IsAllowedToCreate(1<<63))
	require.True(t, s.IsAllowedToCreate(1))
	require.True(t, s.IsAllowedToCreate(1<<63-1))
}

func TestAssetIDSchemeNarrowing(t *testing.T) {
	s, err := NewAssetIDScheme(AssetIDConfig{MaxID: math.MaxUint32})
	require.NoError(t, err)

	_, ok := s.FromUint64(math.MaxUint32 + 1)
	require.False(t, ok)
	id, ok := s.FromUint64(math.MaxUint32)
	require.True(t, ok)
	require.Equal(t, assetsfactory.AssetID(math.MaxUint32), id)

	_, err = NewAssetIDScheme(AssetIDConfig{Reserved: []IDRange{{From: 5, To: 4}}})
	require.Error(t, err)
}

func TestAssetAddresses(t *testing.T) {
	cached, err := NewAssetIDScheme(DefaultAssetIDConfig)
	require.NoError(t, err)
	uncached, err := NewAssetIDScheme(AssetIDConfig{MaxID: math.MaxUint64})
	require.NoError(t, err)

	for _, id := range []assetsfactory.AssetID{0, 5, 1 << 40, math.MaxUint64} {
		addr := cached.ToAddress(id)
		require.Equal(t, addr, cached.ToAddress(id))
		require.Equal(t, addr, uncached.ToAddress(id))

		back, ok := cached.AddressToAssetID(addr)
		require.True(t, ok)
		require.Equal(t, id, back)
	}
	require.Equal(t, common.HexToAddress("0xffffffff00000000000000000000000000000005"), cached.ToAddress(5))

	_, ok := cached.AddressToAssetID(common.HexToAddress("0x0000000000000000000000000000000000000806"))
	require.False(t, ok)
	_, ok = cached.AddressToAssetID(common.HexToAddress("0xffffffff00000000000000010000000000000005"))
	require.False(t, ok)
}
