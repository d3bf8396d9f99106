package lamportsig

import (
	"crypto/rand"

	"golang.org/x/crypto/chacha20"
)

// RNG is the randomness seam every key-generation function in this
// package draws from. Production code should use DefaultRNG; tests that
// need reproducible keys should use NewDeterministicRNG.
type RNG interface {
	// Fill fills buf entirely with fresh random bytes, or returns an error
	// (RngFailure) if it cannot.
	Fill(buf []byte) error
}

type osRNG struct{}

func (osRNG) Fill(buf []byte) error {
	_, err := rand.Read(buf)
	if err != nil {
		return wrapErrorf(err, "lamportsig: reading from the operating system CSPRNG")
	}
	return nil
}

// DefaultRNG reads from the operating system's cryptographically secure
// random number generator (crypto/rand).
var DefaultRNG RNG = osRNG{}

// DeterministicRNG is a ChaCha20 keystream dressed up as an RNG, keyed
// from a caller-supplied 32-byte seed with a fixed all-zero nonce. It exists purely for
// reproducible tests: the same seed always yields the same stream of
// "random" bytes, a property a real RNG must never have.
type DeterministicRNG struct {
	cipher *chacha20.Cipher
}

// NewDeterministicRNG derives a DeterministicRNG from seed. seed is used
// directly as the ChaCha20 key; the nonce is fixed to all zeros, which is
// safe here only because each DeterministicRNG is used to derive an
// entire keystream once per test run, never reused across independent
// streams with the same seed.
func NewDeterministicRNG(seed [chacha20.KeySize]byte) (*DeterministicRNG, error) {
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		return nil, wrapErrorf(err, "lamportsig: constructing deterministic RNG")
	}
	return &DeterministicRNG{cipher: c}, nil
}

// Fill writes the next len(buf) bytes of the ChaCha20 keystream into buf.
func (d *DeterministicRNG) Fill(buf []byte) error {
	for i := range buf {
		buf[i] = 0
	}
	d.cipher.XORKeyStream(buf, buf)
	return nil
}
