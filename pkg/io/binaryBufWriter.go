package io

import (
	"bytes"
	"encoding/hex"
	"errors"
)

// ErrDrained is set as the writer error once the result is taken.
var ErrDrained = errors.New("buffer already drained")

// BufBinWriter is a BinWriter collecting the serialized data in memory, the
// result is taken once with Bytes or Hex.
type BufBinWriter struct {
	*BinWriter
	buf *bytes.Buffer
}

// NewBufBinWriter makes a BufBinWriter with an empty byte buffer.
func NewBufBinWriter() *BufBinWriter {
	b := new(bytes.Buffer)
	return &BufBinWriter{BinWriter: NewBinWriterFromIO(b), buf: b}
}

// Len returns the number of bytes written so far.
func (bw *BufBinWriter) Len() int {
	return bw.buf.Len()
}

// Bytes returns the serialized data or nil if some write failed. Subsequent
// writes fail with ErrDrained.
func (bw *BufBinWriter) Bytes() []byte {
	if bw.Err != nil {
		return nil
	}
	bw.Err = ErrDrained
	return bw.buf.Bytes()
}

// Hex is Bytes encoded as a lowercase hex string, bytecode and field
// encodings are passed to the node this way.
func (bw *BufBinWriter) Hex() (string, error) {
	if bw.Err != nil {
		return "", bw.Err
	}
	return hex.EncodeToString(bw.Bytes()), nil
}
