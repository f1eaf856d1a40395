// Package merkle implements the RFC 6962-style hash tree the rest of the
// module builds over a canonicalized path->hash map: domain-separated leaf
// and interior hashing, leaf encoding, and inclusion/consistency proofs with
// their static verifiers.
package merkle

import (
	"crypto/sha256"
	"encoding/binary"
)

// HashSize is the width of every hash produced by this package.
const HashSize = sha256.Size

var (
	leafPrefix     = []byte{0x00}
	interiorPrefix = []byte{0x01}
)

// HashLeaf computes RFC 6962's leaf hash: SHA256(0x00 || x).
func HashLeaf(x []byte) [HashSize]byte {
	h := sha256.New()
	h.Write(leafPrefix)
	h.Write(x)
	var out [HashSize]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HashNode computes RFC 6962's interior node hash: SHA256(0x01 || l || r).
func HashNode(l, r [HashSize]byte) [HashSize]byte {
	h := sha256.New()
	h.Write(interiorPrefix)
	h.Write(l[:])
	h.Write(r[:])
	var out [HashSize]byte
	copy(out[:], h.Sum(nil))
	return out
}

// EmptyHash is the hash of the empty tree, SHA256("").
func EmptyHash() [HashSize]byte {
	var out [HashSize]byte
	copy(out[:], sha256.New().Sum(nil))
	return out
}

// VHash computes the value hash of a normalized leaf value:
// SHA256("V|" || utf8(s)).
func VHash(normalized string) [HashSize]byte {
	h := sha256.New()
	h.Write([]byte("V|"))
	h.Write([]byte(normalized))
	var out [HashSize]byte
	copy(out[:], h.Sum(nil))
	return out
}

// EncodeLeaf builds the byte payload fed to HashLeaf for a given canonical
// path and its value hash: a 4-byte big-endian length of the UTF-8 path,
// the path bytes, then the 32-byte value hash. Length-prefixing the path
// removes any ambiguity between where the path ends and the hash begins.
func EncodeLeaf(path string, valueHash [HashSize]byte) []byte {
	pb := []byte(path)
	out := make([]byte, 0, 4+len(pb)+HashSize)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(pb)))
	out = append(out, lenBuf[:]...)
	out = append(out, pb...)
	out = append(out, valueHash[:]...)
	return out
}
