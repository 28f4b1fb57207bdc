package solidity

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const wordSize = 32

// Reader walks ABI-encoded arguments one 32-byte word at a time. Dynamic
// offsets are relative to the start of the reader's input, so a Reader over
// calldata must be created after the selector has been stripped.
type Reader struct {
	input  []byte
	cursor int
}

// NewReader creates a reader over the argument bytes.
func NewReader(input []byte) *Reader {
	return &Reader{input: input}
}

func (r *Reader) remaining() int {
	return len(r.input) - r.cursor
}

func (r *Reader) readWord(what string) ([]byte, error) {
	end := r.cursor + wordSize
	if end < r.cursor {
		return nil, CursorOverflow()
	}
	if end > len(r.input) {
		return nil, ReadOutOfBounds(what)
	}
	word := r.input[r.cursor:end]
	r.cursor = end
	return word, nil
}

// readUint reads a word and checks that it fits into bits.
func (r *Reader) readUint(bits uint, what string) (*uint256.Int, error) {
	word, err := r.readWord(what)
	if err != nil {
		return nil, err
	}
	v := new(uint256.Int).SetBytes32(word)
	if bits < 256 && v.BitLen() > int(bits) {
		return nil, ValueTooLarge(what)
	}
	return v, nil
}

// ReadUint256 reads a full word as an unsigned integer.
func (r *Reader) ReadUint256() (*uint256.Int, error) {
	return r.readUint(256, "uint256")
}

// ReadWord reads a full word without a width check. Errors name typ, so
// narrower arguments that are clamped by the caller still report their ABI
// type.
func (r *Reader) ReadWord(typ string) (*uint256.Int, error) {
	return r.readUint(256, typ)
}

// ReadUint64 reads a word that must fit in 64 bits.
func (r *Reader) ReadUint64() (uint64, error) {
	v, err := r.readUint(64, "uint64")
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

// ReadUint8 reads a word that must fit in 8 bits.
func (r *Reader) ReadUint8() (uint8, error) {
	v, err := r.readUint(8, "uint8")
	if err != nil {
		return 0, err
	}
	return uint8(v.Uint64()), nil
}

// ReadAddress reads a left-padded 20-byte address. Dirty upper bytes are
// rejected.
func (r *Reader) ReadAddress() (common.Address, error) {
	word, err := r.readWord("address")
	if err != nil {
		return common.Address{}, err
	}
	for _, b := range word[:wordSize-common.AddressLength] {
		if b != 0 {
			return common.Address{}, ValueTooLarge("address")
		}
	}
	return common.BytesToAddress(word[wordSize-common.AddressLength:]), nil
}

// readPointer follows an offset word and returns a reader positioned at the
// pointed-to data.
func (r *Reader) readPointer() (*Reader, error) {
	word, err := r.readWord("pointer")
	if err != nil {
		return nil, ReadOutOfBounds("pointer")
	}
	v := new(uint256.Int).SetBytes32(word)
	if !v.IsUint64() || v.Uint64() > uint64(maxInt) {
		return nil, ValueTooLarge("pointer")
	}
	offset := int(v.Uint64())
	if offset >= len(r.input) {
		return nil, PointerToOutOfBounds()
	}
	return &Reader{input: r.input[offset:]}, nil
}

func (r *Reader) readRaw(n int) ([]byte, error) {
	end := r.cursor + n
	if end < r.cursor {
		return nil, CursorOverflow()
	}
	if end > len(r.input) {
		return nil, ReadOutOfBounds("bytes")
	}
	out := make([]byte, n)
	copy(out, r.input[r.cursor:end])
	r.cursor = end
	return out, nil
}

// ReadBoundedBytes reads a dynamic bytes argument whose length must not exceed
// limit. The length is checked before any data is copied.
func (r *Reader) ReadBoundedBytes(limit int) ([]byte, error) {
	inner, err := r.readPointer()
	if err != nil {
		return nil, err
	}
	word, err := inner.readWord("length")
	if err != nil {
		return nil, err
	}
	size := new(uint256.Int).SetBytes32(word)
	if !size.IsUint64() || size.Uint64() > uint64(limit) {
		return nil, ValueTooLarge("length")
	}
	return inner.readRaw(int(size.Uint64()))
}

const maxInt = int(^uint(0) >> 1)
