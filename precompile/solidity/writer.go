package solidity

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Writer builds ABI-encoded static outputs.
type Writer struct {
	data []byte
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteAddress appends a left-padded address word.
func (w *Writer) WriteAddress(addr common.Address) *Writer {
	w.data = append(w.data, common.LeftPadBytes(addr.Bytes(), wordSize)...)
	return w
}

// WriteUint256 appends a big-endian word.
func (w *Writer) WriteUint256(v *uint256.Int) *Writer {
	word := v.Bytes32()
	w.data = append(w.data, word[:]...)
	return w
}

// WriteUint64 appends a uint64 as a word.
func (w *Writer) WriteUint64(v uint64) *Writer {
	return w.WriteUint256(uint256.NewInt(v))
}

// Build returns the encoded output.
func (w *Writer) Build() []byte {
	return w.data
}
