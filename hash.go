// Package lamportsig implements a many-time hash-based signature scheme:
// Lamport-Diffie one-time signatures composed with a binary Merkle tree
// commitment over a sequence of one-time keypairs. All hashing goes through
// BLAKE3-256, chosen for its speed and because the scheme only needs an
// opaque collision- and preimage-resistant 32-byte oracle.
package lamportsig

import "github.com/zeebo/blake3"

// HashSize is the output length, in bytes, of every hash in this package.
const HashSize = 32

// Hash is a fixed-size BLAKE3-256 digest.
type Hash [HashSize]byte

// H hashes a single byte string.
func H(data []byte) Hash {
	h := blake3.New()
	h.Write(data)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// H2 hashes the concatenation of two digests, used to combine a Merkle
// node's two children into its parent.
func H2(left, right Hash) Hash {
	h := blake3.New()
	h.Write(left[:])
	h.Write(right[:])
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}
