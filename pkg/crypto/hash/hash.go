/*
Package hash contains the blake2b-256 helpers used for transaction ids,
contract code hashes and public key hashes.
*/
package hash

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Size is the length of a blake2b-256 digest in bytes.
const Size = blake2b.Size256

// Blake2b returns the blake2b-256 digest of data.
func Blake2b(data []byte) [Size]byte {
	return blake2b.Sum256(data)
}

// Blake2bHex returns the hex-encoded blake2b-256 digest of data.
func Blake2bHex(data []byte) string {
	h := Blake2b(data)
	return hex.EncodeToString(h[:])
}

// DoubleBlake2b performs blake2b-256 twice on the given data.
func DoubleBlake2b(data []byte) [Size]byte {
	h := Blake2b(data)
	return Blake2b(h[:])
}
