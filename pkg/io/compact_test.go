package io

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func mustBig(t *testing.T, s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 0)
	require.True(t, ok, s)
	return n
}

func TestCompactUnsigned(t *testing.T) {
	var testCases = []struct {
		value   string
		encoded string
	}{
		{"0", "00"},
		{"1", "01"},
		{"0x3f", "3f"},
		{"0x40", "4040"},
		{"0x3fff", "7fff"},
		{"0x4000", "80004000"},
		{"0x3fffffff", "bfffffff"},
		{"0x40000000", "c040000000"},
		{"0xffffffff", "c0ffffffff"},
		{"0x100000000", "c10100000000"},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			n := mustBig(t, tc.value)
			w := NewBufBinWriter()
			w.WriteCompactUnsigned(n)
			require.NoError(t, w.Err)
			require.Equal(t, tc.encoded, hex.EncodeToString(w.Bytes()))

			raw, err := hex.DecodeString(tc.encoded)
			require.NoError(t, err)
			r := NewBinReaderFromBuf(raw)
			require.Equal(t, 0, n.Cmp(r.ReadCompactUnsigned()))
			require.NoError(t, r.Err)
		})
	}
}

func TestCompactSigned(t *testing.T) {
	var testCases = []struct {
		value   string
		encoded string
	}{
		{"0", "00"},
		{"1", "01"},
		{"-1", "3f"},
		{"0x1f", "1f"},
		{"-32", "20"},
		{"0x20", "4020"},
		{"-33", "7fdf"},
		{"0x1fff", "5fff"},
		{"0x2000", "80002000"},
		{"-8193", "bfffdfff"},
		{"0x20000000", "c020000000"},
		{"-536870913", "c0dfffffff"},
		{"0x80000000", "c10080000000"},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			n := mustBig(t, tc.value)
			w := NewBufBinWriter()
			w.WriteCompactI256(n)
			require.NoError(t, w.Err)
			require.Equal(t, tc.encoded, hex.EncodeToString(w.Bytes()))

			raw, err := hex.DecodeString(tc.encoded)
			require.NoError(t, err)
			r := NewBinReaderFromBuf(raw)
			require.Equal(t, 0, n.Cmp(r.ReadCompactI256()), "got %s", n)
			require.NoError(t, r.Err)
		})
	}
}

func TestCompactU256Max(t *testing.T) {
	maxU256 := new(uint256.Int).Not(uint256.NewInt(0))
	w := NewBufBinWriter()
	w.WriteCompactU256(maxU256)
	require.NoError(t, w.Err)
	buf := w.Bytes()
	require.Equal(t, 33, len(buf))
	require.Equal(t, byte(0xdc), buf[0])

	r := NewBinReaderFromBuf(buf)
	require.Equal(t, maxU256, r.ReadCompactU256())
	require.NoError(t, r.Err)
}

func TestCompactNegativeUnsigned(t *testing.T) {
	w := NewBufBinWriter()
	w.WriteCompactUnsigned(big.NewInt(-1))
	require.Error(t, w.Err)
}

func TestVarBytes(t *testing.T) {
	w := NewBufBinWriter()
	w.WriteVarBytes([]byte{1, 2, 3})
	w.WriteBool(true)
	buf := w.Bytes()
	require.Equal(t, []byte{3, 1, 2, 3, 1}, buf)

	r := NewBinReaderFromBuf(buf)
	require.Equal(t, []byte{1, 2, 3}, r.ReadVarBytes())
	require.True(t, r.ReadBool())
	require.NoError(t, r.Err)

	r.ReadB()
	require.Error(t, r.Err)
}

func TestBufBinWriterDrained(t *testing.T) {
	w := NewBufBinWriter()
	w.WriteB(1)
	require.Equal(t, 1, w.Len())
	require.Equal(t, []byte{1}, w.Bytes())
	require.Nil(t, w.Bytes())
	w.WriteB(2)
	require.ErrorIs(t, w.Err, ErrDrained)

	w = NewBufBinWriter()
	w.WriteBytes([]byte{0xca, 0xfe})
	h, err := w.Hex()
	require.NoError(t, err)
	require.Equal(t, "cafe", h)
	_, err = w.Hex()
	require.ErrorIs(t, err, ErrDrained)
}
