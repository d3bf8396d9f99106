package lamportsig

import (
	"encoding/binary"

	"github.com/bwesterb/byteswriter"
)

// Canonical big-endian wire encodings for every public artifact, and the
// decoders that invert them. Encoders are infallible; decoders return
// NotEnoughInputError or InvalidProofNodeTagError (wrapped in
// SignatureDecodingError for the composite Signature type) on malformed
// input, and never panic. byteswriter sequences the writes into a single
// pre-sized buffer, the same role it plays in container.go's subtree-header
// writes.

// EncodeLamportPrivateKey writes sk as 16384 bytes: the 256 left preimages
// then the 256 right preimages.
func EncodeLamportPrivateKey(sk *LamportPrivateKey) []byte {
	buf := make([]byte, LamportPrivateKeySize)
	w := byteswriter.NewWriter(buf)
	for _, h := range sk.Left {
		w.Write(h[:])
	}
	for _, h := range sk.Right {
		w.Write(h[:])
	}
	return buf
}

// DecodeLamportPrivateKey is the inverse of EncodeLamportPrivateKey.
func DecodeLamportPrivateKey(buf []byte) (*LamportPrivateKey, error) {
	if len(buf) < LamportPrivateKeySize {
		return nil, &NotEnoughInputError{ObservedLength: len(buf)}
	}
	var sk LamportPrivateKey
	for i := range sk.Left {
		copy(sk.Left[i][:], buf[i*HashSize:(i+1)*HashSize])
	}
	off := lamportBits * HashSize
	for i := range sk.Right {
		copy(sk.Right[i][:], buf[off+i*HashSize:off+(i+1)*HashSize])
	}
	return &sk, nil
}

// EncodeLamportPublicKey writes pk as 16384 bytes: the 256 left hashes
// then the 256 right hashes.
func EncodeLamportPublicKey(pk *LamportPublicKey) []byte {
	buf := make([]byte, LamportPublicKeySize)
	w := byteswriter.NewWriter(buf)
	for _, h := range pk.LeftHashes {
		w.Write(h[:])
	}
	for _, h := range pk.RightHashes {
		w.Write(h[:])
	}
	return buf
}

// DecodeLamportPublicKey is the inverse of EncodeLamportPublicKey.
func DecodeLamportPublicKey(buf []byte) (*LamportPublicKey, error) {
	if len(buf) < LamportPublicKeySize {
		return nil, &NotEnoughInputError{ObservedLength: len(buf)}
	}
	var pk LamportPublicKey
	for i := range pk.LeftHashes {
		copy(pk.LeftHashes[i][:], buf[i*HashSize:(i+1)*HashSize])
	}
	off := lamportBits * HashSize
	for i := range pk.RightHashes {
		copy(pk.RightHashes[i][:], buf[off+i*HashSize:off+(i+1)*HashSize])
	}
	return &pk, nil
}

// EncodeLamportSignature writes sig as 8192 bytes: the 256 revealed
// preimages concatenated.
func EncodeLamportSignature(sig *LamportSignature) []byte {
	buf := make([]byte, LamportSignatureSize)
	w := byteswriter.NewWriter(buf)
	for _, h := range sig.Exposed {
		w.Write(h[:])
	}
	return buf
}

// DecodeLamportSignature is the inverse of EncodeLamportSignature.
func DecodeLamportSignature(buf []byte) (*LamportSignature, error) {
	if len(buf) < LamportSignatureSize {
		return nil, &NotEnoughInputError{ObservedLength: len(buf)}
	}
	var sig LamportSignature
	for i := range sig.Exposed {
		copy(sig.Exposed[i][:], buf[i*HashSize:(i+1)*HashSize])
	}
	return &sig, nil
}

// CommitmentSize is the wire size, in bytes, of an encoded Commitment.
const CommitmentSize = HashSize + 8

// EncodeCommitment writes c as 40 bytes: the 32-byte root then the
// 8-byte big-endian leaf count.
func EncodeCommitment(c Commitment) []byte {
	buf := make([]byte, CommitmentSize)
	w := byteswriter.NewWriter(buf)
	w.Write(c.Root[:])
	_ = binary.Write(w, binary.BigEndian, c.NumItems)
	return buf
}

// DecodeCommitment is the inverse of EncodeCommitment.
func DecodeCommitment(buf []byte) (Commitment, error) {
	if len(buf) < CommitmentSize {
		return Commitment{}, &NotEnoughInputError{ObservedLength: len(buf)}
	}
	var c Commitment
	copy(c.Root[:], buf[:HashSize])
	c.NumItems = binary.BigEndian.Uint64(buf[HashSize:CommitmentSize])
	return c, nil
}

// EncodeProof writes p in this package's canonical wire format:
// item_length || item || index || frontier_length || frontier entries,
// each frontier entry a tag byte optionally followed by a 32-byte hash.
func EncodeProof(p *Proof) []byte {
	size := 8 + len(p.Item) + 8 + 8
	for _, n := range p.Frontier {
		size++
		if n.Kind != ProofNodeWithoutSibling {
			size += HashSize
		}
	}
	buf := make([]byte, size)
	w := byteswriter.NewWriter(buf)
	_ = binary.Write(w, binary.BigEndian, uint64(len(p.Item)))
	w.Write(p.Item)
	_ = binary.Write(w, binary.BigEndian, p.Index)
	_ = binary.Write(w, binary.BigEndian, uint64(len(p.Frontier)))
	for _, n := range p.Frontier {
		w.Write([]byte{byte(n.Kind)})
		if n.Kind != ProofNodeWithoutSibling {
			w.Write(n.Sibling[:])
		}
	}
	return buf
}

// DecodeProof is the inverse of EncodeProof.
func DecodeProof(buf []byte) (*Proof, error) {
	pos := 0
	readU64 := func() (uint64, bool) {
		if len(buf)-pos < 8 {
			return 0, false
		}
		v := binary.BigEndian.Uint64(buf[pos : pos+8])
		pos += 8
		return v, true
	}

	itemLen, ok := readU64()
	if !ok {
		return nil, &NotEnoughInputError{ObservedLength: len(buf)}
	}
	if uint64(len(buf)-pos) < itemLen {
		return nil, &NotEnoughInputError{ObservedLength: len(buf)}
	}
	item := make([]byte, itemLen)
	copy(item, buf[pos:pos+int(itemLen)])
	pos += int(itemLen)

	index, ok := readU64()
	if !ok {
		return nil, &NotEnoughInputError{ObservedLength: len(buf)}
	}
	frontierLen, ok := readU64()
	if !ok {
		return nil, &NotEnoughInputError{ObservedLength: len(buf)}
	}
	if frontierLen > uint64(len(buf)-pos) {
		return nil, &NotEnoughInputError{ObservedLength: len(buf)}
	}

	frontier := make([]ProofNode, frontierLen)
	for i := range frontier {
		if len(buf)-pos < 1 {
			return nil, &NotEnoughInputError{ObservedLength: len(buf)}
		}
		tag := buf[pos]
		pos++
		switch tag {
		case 0x00:
			frontier[i] = ProofNode{Kind: ProofNodeWithoutSibling}
		case 0x01, 0x02:
			if len(buf)-pos < HashSize {
				return nil, &NotEnoughInputError{ObservedLength: len(buf)}
			}
			var sib Hash
			copy(sib[:], buf[pos:pos+HashSize])
			pos += HashSize
			kind := ProofNodeLeftChildWithSibling
			if tag == 0x02 {
				kind = ProofNodeRightChildWithSibling
			}
			frontier[i] = ProofNode{Kind: kind, Sibling: sib}
		default:
			return nil, &InvalidProofNodeTagError{Tag: tag}
		}
	}
	return &Proof{Item: item, Index: index, Frontier: frontier}, nil
}

// EncodeSignature writes sig in this package's canonical wire format:
// the Lamport signature, then the Lamport public key, then the Merkle
// proof.
func EncodeSignature(sig *Signature) []byte {
	out := make([]byte, 0, LamportSignatureSize+LamportPublicKeySize+64)
	out = append(out, EncodeLamportSignature(sig.LamportSig)...)
	out = append(out, EncodeLamportPublicKey(sig.LamportPub)...)
	out = append(out, EncodeProof(sig.Proof)...)
	return out
}

// DecodeSignature is the inverse of EncodeSignature. Any failure is
// wrapped in a SignatureDecodingError.
func DecodeSignature(buf []byte) (*Signature, error) {
	if len(buf) < LamportSignatureSize+LamportPublicKeySize {
		return nil, &SignatureDecodingError{Inner: &NotEnoughInputError{ObservedLength: len(buf)}}
	}
	lsig, err := DecodeLamportSignature(buf[:LamportSignatureSize])
	if err != nil {
		return nil, &SignatureDecodingError{Inner: err}
	}
	lpub, err := DecodeLamportPublicKey(buf[LamportSignatureSize : LamportSignatureSize+LamportPublicKeySize])
	if err != nil {
		return nil, &SignatureDecodingError{Inner: err}
	}
	proof, err := DecodeProof(buf[LamportSignatureSize+LamportPublicKeySize:])
	if err != nil {
		return nil, &SignatureDecodingError{Inner: err}
	}
	return &Signature{LamportSig: lsig, LamportPub: lpub, Proof: proof}, nil
}
