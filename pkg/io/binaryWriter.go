package io

import (
	"errors"
	"io"
	"math/big"

	"github.com/holiman/uint256"
)

// Compact integer encoding modes, stored in the two upper bits of the first
// byte.
const (
	singleByteMode = 0x00
	twoByteMode    = 0x40
	fourByteMode   = 0x80
	multiByteMode  = 0xc0

	modeMask  = 0xc0
	valueMask = 0x3f
)

// MaxCompactLen is the maximum number of bytes a compact-encoded 256-bit
// integer can occupy (header plus 33 bytes of two's complement payload).
const MaxCompactLen = 34

var (
	oneByteBound   = big.NewInt(0x40)
	twoByteBound   = big.NewInt(0x4000)
	fourByteBound  = big.NewInt(0x40000000)
	signedOneByte  = big.NewInt(0x20)
	signedTwoByte  = big.NewInt(0x2000)
	signedFourByte = big.NewInt(0x20000000)

	errNegativeUnsigned = errors.New("negative value for unsigned compact integer")
)

// BinWriter is a convenient wrapper around an io.Writer and err object.
// Used to simplify error handling when writing into an io.Writer
// from a struct with many fields.
type BinWriter struct {
	w   io.Writer
	Err error
	uv  [4]byte
}

// NewBinWriterFromIO makes a BinWriter from io.Writer.
func NewBinWriterFromIO(iow io.Writer) *BinWriter {
	return &BinWriter{w: iow}
}

// WriteB writes a byte into the underlying io.Writer.
func (w *BinWriter) WriteB(u8 byte) {
	w.uv[0] = u8
	w.WriteBytes(w.uv[:1])
}

// WriteBool writes a boolean value into the underlying io.Writer encoded as
// a byte with values of 0 or 1.
func (w *BinWriter) WriteBool(b bool) {
	var i byte
	if b {
		i = 1
	}
	w.WriteB(i)
}

// WriteBytes writes a variable byte into the underlying io.Writer without prefix.
func (w *BinWriter) WriteBytes(b []byte) {
	if w.Err != nil {
		return
	}
	_, w.Err = w.w.Write(b)
}

// WriteVarBytes writes a variable length byte array into the underlying
// io.Writer prefixed with its length as a signed compact integer.
func (w *BinWriter) WriteVarBytes(b []byte) {
	w.WriteCompactInt(len(b))
	w.WriteBytes(b)
}

// WriteCompactInt writes an int as a signed compact integer. It's used for
// lengths of vectors and byte strings.
func (w *BinWriter) WriteCompactInt(n int) {
	w.WriteCompactI256(big.NewInt(int64(n)))
}

// WriteCompactU256 writes an unsigned 256-bit integer in compact form.
func (w *BinWriter) WriteCompactU256(n *uint256.Int) {
	w.WriteCompactUnsigned(n.ToBig())
}

// WriteCompactUnsigned writes a non-negative big integer in compact unsigned
// form.
func (w *BinWriter) WriteCompactUnsigned(n *big.Int) {
	if w.Err != nil {
		return
	}
	if n.Sign() < 0 {
		w.Err = errNegativeUnsigned
		return
	}
	switch {
	case n.Cmp(oneByteBound) < 0:
		w.WriteB(byte(n.Uint64()) | singleByteMode)
	case n.Cmp(twoByteBound) < 0:
		v := n.Uint64()
		w.WriteBytes([]byte{byte(v>>8) | twoByteMode, byte(v)})
	case n.Cmp(fourByteBound) < 0:
		v := n.Uint64()
		w.WriteBytes([]byte{byte(v>>24) | fourByteMode, byte(v >> 16), byte(v >> 8), byte(v)})
	default:
		data := n.Bytes()
		w.WriteB(byte(len(data)-4) | multiByteMode)
		w.WriteBytes(data)
	}
}

// WriteCompactI256 writes a signed big integer in compact form.
func (w *BinWriter) WriteCompactI256(n *big.Int) {
	if w.Err != nil {
		return
	}
	neg := new(big.Int).Neg
	switch {
	case n.Cmp(neg(signedOneByte)) >= 0 && n.Cmp(signedOneByte) < 0:
		w.WriteB(byte(n.Int64())&valueMask | singleByteMode)
	case n.Cmp(neg(signedTwoByte)) >= 0 && n.Cmp(signedTwoByte) < 0:
		v := n.Int64()
		w.WriteBytes([]byte{byte(v>>8)&valueMask | twoByteMode, byte(v)})
	case n.Cmp(neg(signedFourByte)) >= 0 && n.Cmp(signedFourByte) < 0:
		v := n.Int64()
		w.WriteBytes([]byte{byte(v>>24)&valueMask | fourByteMode, byte(v >> 16), byte(v >> 8), byte(v)})
	default:
		data := twosComplement(n)
		w.WriteB(byte(len(data)-4) | multiByteMode)
		w.WriteBytes(data)
	}
}

// twosComplement returns the minimal big-endian two's complement
// representation of n.
func twosComplement(n *big.Int) []byte {
	m := n
	if n.Sign() < 0 {
		m = new(big.Int).Neg(n)
		m.Sub(m, big.NewInt(1))
	}
	size := m.BitLen()/8 + 1
	v := new(big.Int).Set(n)
	if n.Sign() < 0 {
		v.Add(v, new(big.Int).Lsh(big.NewInt(1), uint(size*8)))
	}
	res := make([]byte, size)
	return v.FillBytes(res)
}
