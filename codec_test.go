package lamportsig

import (
	"bytes"
	"errors"
	"testing"
)

func TestCodecLamportPrivateKeyRoundTrip(t *testing.T) {
	rng := mustDeterministicRNG(t, 20)
	sk, err := GenerateLamportKey(rng)
	if err != nil {
		t.Fatalf("GenerateLamportKey: %v", err)
	}
	buf := EncodeLamportPrivateKey(sk)
	if len(buf) != LamportPrivateKeySize {
		t.Fatalf("encoded length = %d, want %d", len(buf), LamportPrivateKeySize)
	}
	decoded, err := DecodeLamportPrivateKey(buf)
	if err != nil {
		t.Fatalf("DecodeLamportPrivateKey: %v", err)
	}
	if *decoded != *sk {
		t.Fatalf("round trip changed the private key")
	}
}

func TestCodecLamportPublicKeyRoundTrip(t *testing.T) {
	rng := mustDeterministicRNG(t, 21)
	sk, err := GenerateLamportKey(rng)
	if err != nil {
		t.Fatalf("GenerateLamportKey: %v", err)
	}
	pk := sk.PublicKey()
	buf := EncodeLamportPublicKey(pk)
	if len(buf) != LamportPublicKeySize {
		t.Fatalf("encoded length = %d, want %d", len(buf), LamportPublicKeySize)
	}
	decoded, err := DecodeLamportPublicKey(buf)
	if err != nil {
		t.Fatalf("DecodeLamportPublicKey: %v", err)
	}
	if *decoded != *pk {
		t.Fatalf("round trip changed the public key")
	}
}

func TestCodecLamportSignatureRoundTrip(t *testing.T) {
	rng := mustDeterministicRNG(t, 22)
	sk, err := GenerateLamportKey(rng)
	if err != nil {
		t.Fatalf("GenerateLamportKey: %v", err)
	}
	sig := sk.Sign([]byte("codec"))
	buf := EncodeLamportSignature(sig)
	if len(buf) != LamportSignatureSize {
		t.Fatalf("encoded length = %d, want %d", len(buf), LamportSignatureSize)
	}
	decoded, err := DecodeLamportSignature(buf)
	if err != nil {
		t.Fatalf("DecodeLamportSignature: %v", err)
	}
	if *decoded != *sig {
		t.Fatalf("round trip changed the signature")
	}
}

func TestCodecCommitmentRoundTrip(t *testing.T) {
	tree := BuildTree(bytesLeaves("one", "two", "three"))
	c := tree.Commitment()
	buf := EncodeCommitment(c)
	if len(buf) != CommitmentSize {
		t.Fatalf("encoded length = %d, want %d", len(buf), CommitmentSize)
	}
	decoded, err := DecodeCommitment(buf)
	if err != nil {
		t.Fatalf("DecodeCommitment: %v", err)
	}
	if decoded != c {
		t.Fatalf("round trip changed the commitment: got %+v, want %+v", decoded, c)
	}
}

func TestCodecProofRoundTrip(t *testing.T) {
	tree := BuildTree(bytesLeaves("one", "two", "three"))
	for i, leaf := range [][]byte{[]byte("one"), []byte("two"), []byte("three")} {
		p := tree.Prove(leaf, uint64(i))
		buf := EncodeProof(p)
		decoded, err := DecodeProof(buf)
		if err != nil {
			t.Fatalf("DecodeProof(%d): %v", i, err)
		}
		if !bytes.Equal(decoded.Item, p.Item) || decoded.Index != p.Index || len(decoded.Frontier) != len(p.Frontier) {
			t.Fatalf("round trip changed proof %d: got %+v, want %+v", i, decoded, p)
		}
		for j := range p.Frontier {
			if decoded.Frontier[j] != p.Frontier[j] {
				t.Fatalf("round trip changed frontier entry %d of proof %d", j, i)
			}
		}
	}
}

// Truncated input yields NotEnoughInputError; an invalid frontier tag
// yields InvalidProofNodeTagError.
func TestCodecSignatureRoundTripAndRobustness(t *testing.T) {
	rng := mustDeterministicRNG(t, 23)
	sk, err := GenerateKey(rng, 2)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	sig := sk.Sign([]byte("m1"))
	if sig == nil {
		t.Fatalf("Sign returned nil")
	}
	buf := EncodeSignature(sig)

	decoded, err := DecodeSignature(buf)
	if err != nil {
		t.Fatalf("DecodeSignature: %v", err)
	}
	if !Verify(sk.PublicKey(), []byte("m1"), decoded) {
		t.Fatalf("decoded signature does not verify")
	}

	truncated := buf[:len(buf)-1]
	if _, err := DecodeSignature(truncated); err == nil {
		t.Fatalf("DecodeSignature accepted a truncated buffer")
	} else {
		var notEnough *NotEnoughInputError
		if !errors.As(err, &notEnough) {
			t.Fatalf("truncated decode error = %v, want a wrapped NotEnoughInputError", err)
		}
	}

	// The first proof-node tag byte sits right after the fixed-size
	// Lamport signature, Lamport public key, and the proof's
	// item_length/item/index/frontier_length header.
	tagOffset := LamportSignatureSize + LamportPublicKeySize + 8 + len(sig.Proof.Item) + 8 + 8
	corrupted := append([]byte(nil), buf...)
	corrupted[tagOffset] = 0x03
	if _, err := DecodeSignature(corrupted); err == nil {
		t.Fatalf("DecodeSignature accepted an invalid proof-node tag")
	} else {
		var badTag *InvalidProofNodeTagError
		if !errors.As(err, &badTag) || badTag.Tag != 0x03 {
			t.Fatalf("corrupted-tag decode error = %v, want InvalidProofNodeTagError{Tag: 0x03}", err)
		}
	}
}

func TestCodecTruncationSystematic(t *testing.T) {
	tree := BuildTree(bytesLeaves("one", "two", "three"))
	p := tree.Prove([]byte("three"), 2)
	buf := EncodeProof(p)
	for i := 0; i < len(buf); i++ {
		if _, err := DecodeProof(buf[:i]); err == nil {
			t.Fatalf("DecodeProof accepted a %d-byte prefix of a %d-byte proof", i, len(buf))
		}
	}
}
