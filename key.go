package lamportsig

// PrivateKey is the many-time signing key: a vector of one-time Lamport
// secrets committed to by a Merkle tree over their encoded public keys,
// plus a monotonic counter tracking how many have been consumed.
//
// PrivateKey provides no interior locking. Signing mutates the counter;
// concurrent Sign calls on the same PrivateKey race that counter and can
// hand out the same Lamport secret twice, which leaks it entirely. Callers
// needing concurrent access must serialize it themselves (a mutex, or
// confining the key to one goroutine).
type PrivateKey struct {
	secrets []*LamportPrivateKey
	tree    *Tree
	counter uint64
}

// GenerateKey draws a fresh many-time private key of capacity n from rng.
func GenerateKey(rng RNG, n uint64) (*PrivateKey, error) {
	if n == 0 {
		return nil, errorf("lamportsig: many-time key capacity must be at least 1")
	}
	secrets := make([]*LamportPrivateKey, n)
	leaves := make([][]byte, n)
	for i := range secrets {
		sk, err := GenerateLamportKey(rng)
		if err != nil {
			return nil, wrapErrorf(err, "lamportsig: generating secret %d of %d", i, n)
		}
		secrets[i] = sk
		leaves[i] = EncodeLamportPublicKey(sk.PublicKey())
		if i > 0 && i%65536 == 0 {
			log.Logf("lamportsig: generated %d/%d secrets", i, n)
		}
	}
	return &PrivateKey{secrets: secrets, tree: BuildTree(leaves)}, nil
}

// RestorePrivateKey rebuilds a PrivateKey from previously generated
// secrets and a counter, without drawing fresh randomness. This is how a
// persisted key (the CLI's on-disk format, §6) is brought back into
// memory: the Merkle tree is a pure function of the secrets, so it is
// cheaper to recompute than to store.
func RestorePrivateKey(secrets []*LamportPrivateKey, counter uint64) (*PrivateKey, error) {
	if len(secrets) == 0 {
		return nil, errorf("lamportsig: private key requires at least one secret")
	}
	if counter > uint64(len(secrets)) {
		return nil, errorf("lamportsig: counter %d exceeds capacity %d", counter, len(secrets))
	}
	leaves := make([][]byte, len(secrets))
	for i, sk := range secrets {
		leaves[i] = EncodeLamportPublicKey(sk.PublicKey())
	}
	return &PrivateKey{secrets: secrets, tree: BuildTree(leaves), counter: counter}, nil
}

// PublicKey returns the commitment a verifier checks signatures against.
func (sk *PrivateKey) PublicKey() Commitment { return sk.tree.Commitment() }

// Counter reports how many Lamport secrets have been consumed so far.
func (sk *PrivateKey) Counter() uint64 { return sk.counter }

// Capacity reports the total number of messages sk can ever sign.
func (sk *PrivateKey) Capacity() uint64 { return uint64(len(sk.secrets)) }

// Secrets exposes the underlying Lamport secrets in order, for callers
// that persist a PrivateKey to disk (the CLI container). The tree and
// counter are not part of this slice; reconstruct a PrivateKey from it
// with RestorePrivateKey.
func (sk *PrivateKey) Secrets() []*LamportPrivateKey { return sk.secrets }

// Signature is a many-time signature: a one-time Lamport signature, the
// one-time public key it verifies against, and a Merkle proof that the
// encoded one-time public key sits at the signed index under the
// many-time public key.
type Signature struct {
	LamportSig *LamportSignature
	LamportPub *LamportPublicKey
	Proof      *Proof
}

// Sign signs message with the next unused Lamport secret and returns the
// resulting many-time Signature, or nil if sk is exhausted (every secret
// has already been consumed). Sign never returns an error: exhaustion is
// the only failure mode and it is reported by a nil result, not an error,
// per this package's error taxonomy. The consumed Lamport secret is
// zeroed in place once its signature is produced, since reusing it would
// only ever be a bug.
func (sk *PrivateKey) Sign(message []byte) *Signature {
	if sk.counter >= uint64(len(sk.secrets)) {
		return nil
	}
	i := sk.counter
	lsk := sk.secrets[i]
	lpk := lsk.PublicKey()
	proof := sk.tree.Prove(EncodeLamportPublicKey(lpk), i)
	if proof == nil {
		panic("lamportsig: many-time key's own tree rejected its committed leaf")
	}
	lsig := lsk.Sign(message)
	lsk.Zero()
	sk.counter++
	return &Signature{LamportSig: lsig, LamportPub: lpk, Proof: proof}
}

// Verify reports whether sig is a valid many-time signature of message
// under pub. The Merkle proof is checked against the encoded public key
// carried in sig, not against whatever bytes its own Proof.Item field
// happens to hold, so substituting a different one-time public key into
// sig also invalidates the Merkle proof.
func Verify(pub Commitment, message []byte, sig *Signature) bool {
	if sig == nil || sig.Proof == nil || sig.LamportPub == nil || sig.LamportSig == nil {
		return false
	}
	boundProof := &Proof{
		Item:     EncodeLamportPublicKey(sig.LamportPub),
		Index:    sig.Proof.Index,
		Frontier: sig.Proof.Frontier,
	}
	if !pub.Verify(boundProof) {
		return false
	}
	return sig.LamportPub.Verify(message, sig.LamportSig)
}
