package io

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/holiman/uint256"
)

// maxVarBytesSize is the maximum length of a byte string that can be decoded.
const maxVarBytesSize = 0x1000000

// BinReader is a convenient wrapper around a io.Reader and err object.
// Used to simplify error handling when reading into a struct with many fields.
type BinReader struct {
	r   io.Reader
	Err error
}

// NewBinReaderFromIO makes a BinReader from io.Reader.
func NewBinReaderFromIO(ior io.Reader) *BinReader {
	return &BinReader{r: ior}
}

// NewBinReaderFromBuf makes a BinReader from byte buffer.
func NewBinReaderFromBuf(b []byte) *BinReader {
	r := bytes.NewReader(b)
	return NewBinReaderFromIO(r)
}

// ReadB reads a byte from the underlying io.Reader. On read failures it
// returns zero.
func (r *BinReader) ReadB() byte {
	var b [1]byte
	r.ReadBytes(b[:])
	if r.Err != nil {
		return 0
	}
	return b[0]
}

// ReadBool reads a boolean value encoded in a zero/non-zero byte from the
// underlying io.Reader. On read failures it returns false.
func (r *BinReader) ReadBool() bool {
	return r.ReadB() != 0
}

// ReadBytes copies a fixed-size buffer from the reader to the provided slice.
func (r *BinReader) ReadBytes(buf []byte) {
	if r.Err != nil {
		return
	}
	_, r.Err = io.ReadFull(r.r, buf)
}

// ReadVarBytes reads a byte string prefixed with its length encoded as a
// signed compact integer.
func (r *BinReader) ReadVarBytes() []byte {
	n := r.ReadCompactInt()
	if r.Err != nil {
		return nil
	}
	if n < 0 || n > maxVarBytesSize {
		r.Err = fmt.Errorf("invalid byte string length %d", n)
		return nil
	}
	b := make([]byte, n)
	r.ReadBytes(b)
	return b
}

// ReadCompactInt reads a signed compact integer that must fit into int.
func (r *BinReader) ReadCompactInt() int {
	n := r.ReadCompactI256()
	if r.Err != nil {
		return 0
	}
	if !n.IsInt64() {
		r.Err = errors.New("compact integer overflows int")
		return 0
	}
	return int(n.Int64())
}

// ReadCompactU256 reads an unsigned compact integer that must fit into 256
// bits.
func (r *BinReader) ReadCompactU256() *uint256.Int {
	n := r.ReadCompactUnsigned()
	if r.Err != nil {
		return nil
	}
	u, overflow := uint256.FromBig(n)
	if overflow {
		r.Err = errors.New("compact integer overflows U256")
		return nil
	}
	return u
}

// ReadCompactUnsigned reads an unsigned compact integer.
func (r *BinReader) ReadCompactUnsigned() *big.Int {
	_, body := r.readCompactBody()
	if r.Err != nil {
		return nil
	}
	return new(big.Int).SetBytes(body)
}

// ReadCompactI256 reads a signed compact integer.
func (r *BinReader) ReadCompactI256() *big.Int {
	mode, body := r.readCompactBody()
	if r.Err != nil {
		return nil
	}
	n := new(big.Int).SetBytes(body)
	var bits int
	switch mode {
	case singleByteMode:
		bits = 6
	case twoByteMode:
		bits = 14
	case fourByteMode:
		bits = 30
	default:
		bits = len(body) * 8
	}
	if n.Bit(bits-1) == 1 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
	}
	return n
}

// readCompactBody reads the compact integer header and returns its mode
// along with the magnitude bytes (mode bits cleared).
func (r *BinReader) readCompactBody() (byte, []byte) {
	first := r.ReadB()
	if r.Err != nil {
		return 0, nil
	}
	mode := first & modeMask
	switch mode {
	case singleByteMode:
		return mode, []byte{first & valueMask}
	case twoByteMode:
		var b [2]byte
		b[0] = first & valueMask
		r.ReadBytes(b[1:])
		return mode, b[:]
	case fourByteMode:
		var b [4]byte
		b[0] = first & valueMask
		r.ReadBytes(b[1:])
		return mode, b[:]
	default:
		size := int(first&valueMask) + 4
		if size > MaxCompactLen {
			r.Err = fmt.Errorf("compact integer is too long: %d bytes", size)
			return mode, nil
		}
		b := make([]byte, size)
		r.ReadBytes(b)
		return mode, b
	}
}
