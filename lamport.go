package lamportsig

// Lamport-Diffie one-time signatures: for each of the 256 bits of a BLAKE3
// digest, the private key holds two 32-byte preimages (one for bit 0, one
// for bit 1); the public key is the hash of each preimage; signing a
// message reveals, per bit of H(message), exactly one of the two
// preimages. Adapted from the chain-based one-time signature in the
// teacher's wots.go, simplified to Lamport's original "reveal or don't
// reveal" scheme: there is no hash chain and no chain-masking step, only a
// single hash per preimage.

const lamportBits = HashSize * 8

// LamportPrivateKeySize is the wire size, in bytes, of a LamportPrivateKey.
const LamportPrivateKeySize = 2 * lamportBits * HashSize

// LamportPublicKeySize is the wire size, in bytes, of a LamportPublicKey.
const LamportPublicKeySize = 2 * lamportBits * HashSize

// LamportSignatureSize is the wire size, in bytes, of a LamportSignature.
const LamportSignatureSize = lamportBits * HashSize

// LamportPrivateKey holds the 256 pairs of 32-byte preimages that back one
// one-time signature. It is single-use: signing the same key twice leaks
// enough preimages to forge further messages (see Sign's doc comment), and
// this package does not track whether a key has already been used.
type LamportPrivateKey struct {
	Left  [lamportBits]Hash
	Right [lamportBits]Hash
}

// LamportPublicKey holds the hash of every preimage in the matching
// LamportPrivateKey.
type LamportPublicKey struct {
	LeftHashes  [lamportBits]Hash
	RightHashes [lamportBits]Hash
}

// LamportSignature holds the 256 preimages revealed by Sign, one per bit
// of the signed message's digest.
type LamportSignature struct {
	Exposed [lamportBits]Hash
}

// GenerateLamportKey draws a fresh private key from rng. Every byte of
// both halves is secret; callers that persist a LamportPrivateKey are
// responsible for protecting it the way they would any other secret key
// material.
func GenerateLamportKey(rng RNG) (*LamportPrivateKey, error) {
	var sk LamportPrivateKey
	for i := 0; i < lamportBits; i++ {
		if err := rng.Fill(sk.Left[i][:]); err != nil {
			return nil, wrapErrorf(err, "lamportsig: generate Lamport key: left half")
		}
		if err := rng.Fill(sk.Right[i][:]); err != nil {
			return nil, wrapErrorf(err, "lamportsig: generate Lamport key: right half")
		}
	}
	return &sk, nil
}

// PublicKey derives the LamportPublicKey that verifies signatures produced
// by sk. It is deterministic and side-effect free: calling it repeatedly
// yields the same value.
func (sk *LamportPrivateKey) PublicKey() *LamportPublicKey {
	var pk LamportPublicKey
	for i := 0; i < lamportBits; i++ {
		pk.LeftHashes[i] = H(sk.Left[i][:])
		pk.RightHashes[i] = H(sk.Right[i][:])
	}
	return &pk
}

// Sign reveals, for each bit of H(message), the preimage on the side that
// bit selects. Signing two different messages with the same private key
// lets an observer forge signatures on further messages: whichever bits
// differ between the two digests expose both the left and right preimage
// at that position, and the union of preimages recovered across enough
// distinct messages eventually covers every bit position for at least one
// side, enough to sign an attacker-chosen message. Treat every
// LamportPrivateKey as strictly one-time.
//
// Sign is not constant-time: the branch on each message bit is visible on
// the instruction/cache-timing side channel, matching the reference this
// scheme is drawn from. Do not use this package to sign secrets an
// adversary can time.
func (sk *LamportPrivateKey) Sign(message []byte) *LamportSignature {
	digest := H(message)
	var sig LamportSignature
	for i := 0; i < lamportBits; i++ {
		if bitAt(i, digest) {
			sig.Exposed[i] = sk.Left[i]
		} else {
			sig.Exposed[i] = sk.Right[i]
		}
	}
	return &sig
}

// Verify reports whether sig is a valid Lamport signature of message under
// pk.
func (pk *LamportPublicKey) Verify(message []byte, sig *LamportSignature) bool {
	if pk == nil || sig == nil {
		return false
	}
	digest := H(message)
	for i := 0; i < lamportBits; i++ {
		want := pk.RightHashes[i]
		if bitAt(i, digest) {
			want = pk.LeftHashes[i]
		}
		if H(sig.Exposed[i][:]) != want {
			return false
		}
	}
	return true
}

// Zero overwrites every secret byte of sk with zero. Best-effort: Go
// offers no guarantee the memory isn't copied elsewhere (stack growth, the
// garbage collector), but this at least removes the easy copy once the
// caller is done signing with sk.
func (sk *LamportPrivateKey) Zero() {
	if sk == nil {
		return
	}
	for i := range sk.Left {
		sk.Left[i] = Hash{}
	}
	for i := range sk.Right {
		sk.Right[i] = Hash{}
	}
}
