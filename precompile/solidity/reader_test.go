package solidity

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func packArgs(t *testing.T, signature string, args ...interface{}) []byte {
	t.Helper()
	method, err := ParseSignature(signature, "nonpayable")
	require.NoError(t, err)
	packed, err := method.Inputs.Pack(args...)
	require.NoError(t, err)
	return packed
}

func TestReaderStaticArguments(t *testing.T) {
	admin := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	balance := new(big.Int).Lsh(big.NewInt(1), 100)
	input := packArgs(t, "create(uint64,address,uint128)", uint64(5), admin, balance)

	r := NewReader(input)
	id, err := r.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(5), id)

	addr, err := r.ReadAddress()
	require.NoError(t, err)
	require.Equal(t, admin, addr)

	v, err := r.ReadUint256()
	require.NoError(t, err)
	require.Equal(t, balance, v.ToBig())
	require.Zero(t, r.remaining())
}

func TestReaderNarrowing(t *testing.T) {
	word := uint256.NewInt(0).Lsh(uint256.NewInt(1), 64).Bytes32()

	_, err := NewReader(word[:]).ReadUint64()
	var rev *Revert
	require.ErrorAs(t, err, &rev)
	require.Equal(t, KindValueTooLarge, rev.Kind())
	require.Equal(t, "Value is too large for uint64", rev.Error())

	small := uint256.NewInt(256).Bytes32()
	_, err = NewReader(small[:]).ReadUint8()
	require.EqualError(t, err, "Value is too large for uint8")

	top := uint256.NewInt(255).Bytes32()
	v, err := NewReader(top[:]).ReadUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(255), v)
}

func TestReaderOutOfBounds(t *testing.T) {
	_, err := NewReader(make([]byte, 31)).ReadUint64()
	require.EqualError(t, err, "Tried to read uint64 out of bounds")

	_, err = NewReader(nil).ReadAddress()
	require.EqualError(t, err, "Tried to read address out of bounds")

	_, err = ReadSelector([]byte{0x01, 0x02})
	require.EqualError(t, err, "Tried to read selector out of bounds")
}

func TestReaderWordLabel(t *testing.T) {
	var word [32]byte
	word[0] = 0xff
	v, err := NewReader(word[:]).ReadWord("uint128")
	require.NoError(t, err)
	require.Equal(t, 256, v.BitLen())

	_, err = NewReader(word[:16]).ReadWord("uint128")
	require.EqualError(t, err, "Tried to read uint128 out of bounds")
}

func TestReaderDirtyAddress(t *testing.T) {
	word := make([]byte, 32)
	word[0] = 1
	word[31] = 0xaa
	_, err := NewReader(word).ReadAddress()
	require.EqualError(t, err, "Value is too large for address")
}

func TestReaderBoundedBytes(t *testing.T) {
	name := []byte("Token")
	symbol := bytes.Repeat([]byte{'S'}, 40)
	input := packArgs(t, "setMetadata(uint64,bytes,bytes,uint8)", uint64(1), name, symbol, uint8(18))

	r := NewReader(input)
	_, err := r.ReadUint64()
	require.NoError(t, err)
	gotName, err := r.ReadBoundedBytes(64)
	require.NoError(t, err)
	require.Equal(t, name, gotName)
	gotSymbol, err := r.ReadBoundedBytes(64)
	require.NoError(t, err)
	require.Equal(t, symbol, gotSymbol)
	decimals, err := r.ReadUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(18), decimals)
}

func TestReaderBoundedBytesLimit(t *testing.T) {
	input := packArgs(t, "f(bytes)", bytes.Repeat([]byte{1}, 33))

	_, err := NewReader(input).ReadBoundedBytes(32)
	require.EqualError(t, err, "Value is too large for length")

	got, err := NewReader(input).ReadBoundedBytes(33)
	require.NoError(t, err)
	require.Len(t, got, 33)
}

func TestReaderBoundedBytesMalformed(t *testing.T) {
	// Offset beyond the input.
	offset := uint256.NewInt(4096).Bytes32()
	_, err := NewReader(offset[:]).ReadBoundedBytes(64)
	require.EqualError(t, err, "Pointer points to out of bound")

	// Offset that cannot be represented.
	var huge [32]byte
	huge[0] = 0xff
	_, err = NewReader(huge[:]).ReadBoundedBytes(64)
	require.EqualError(t, err, "Value is too large for pointer")

	// Length claims more data than present.
	input := packArgs(t, "f(bytes)", []byte("abc"))
	truncated := input[:64+1]
	_, err = NewReader(truncated).ReadBoundedBytes(64)
	require.EqualError(t, err, "Tried to read bytes out of bounds")
}

// TestReaderNeverPanics feeds random buffers through every read method.
func TestReaderNeverPanics(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 256)
	for i := 0; i < 2000; i++ {
		var input []byte
		f.Fuzz(&input)
		r := NewReader(input)
		require.NotPanics(t, func() {
			r.ReadUint64()
			r.ReadAddress()
			r.ReadBoundedBytes(1 << 16)
			r.ReadUint8()
			r.ReadUint256()
		})
	}
}
