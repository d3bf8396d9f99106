package lamportsig

import (
	"strconv"
	"testing"
)

func bytesLeaves(strs ...string) [][]byte {
	out := make([][]byte, len(strs))
	for i, s := range strs {
		out[i] = []byte(s)
	}
	return out
}

// Odd leaf count exercises the promoted-node (NodeWithoutSibling)
// frontier entry.
func TestMerkleThreeLeavesPromotedNode(t *testing.T) {
	leaves := bytesLeaves("one", "two", "three")
	tree := BuildTree(leaves)
	c := tree.Commitment()
	if c.NumItems != 3 {
		t.Fatalf("NumItems = %d, want 3", c.NumItems)
	}

	var proofs [3]*Proof
	for i, leaf := range leaves {
		p := tree.Prove(leaf, uint64(i))
		if p == nil {
			t.Fatalf("Prove(%q, %d) = nil, want a proof", leaf, i)
		}
		if !c.Verify(p) {
			t.Fatalf("Verify failed for index %d", i)
		}
		proofs[i] = p
	}

	// index 2 is the promoted odd leaf: its frontier has one entry per
	// non-root level (two for three leaves), the first being
	// NodeWithoutSibling.
	if len(proofs[2].Frontier) != 2 || proofs[2].Frontier[0].Kind != ProofNodeWithoutSibling {
		t.Fatalf("proof for promoted leaf = %+v, want two entries starting with NodeWithoutSibling", proofs[2].Frontier)
	}

	mutated := *proofs[2]
	mutated.Frontier = append([]ProofNode(nil), proofs[2].Frontier...)
	mutated.Frontier[0].Kind = ProofNodeLeftChildWithSibling
	if c.Verify(&mutated) {
		t.Fatalf("Verify accepted a proof with a flipped frontier tag")
	}
}

func TestMerkleSingleLeafTree(t *testing.T) {
	item := []byte("hello, world")
	tree := BuildTree([][]byte{item})
	c := tree.Commitment()
	if c.Root != H(item) {
		t.Fatalf("single-leaf root = %x, want H(leaf) = %x", c.Root, H(item))
	}
	p := tree.Prove(item, 0)
	if p == nil || len(p.Frontier) != 0 {
		t.Fatalf("Prove(item, 0) = %+v, want an empty-frontier proof", p)
	}
	if !c.Verify(p) {
		t.Fatalf("Verify rejected the single-leaf proof")
	}
	if tree.Prove(item, 1) != nil {
		t.Fatalf("Prove(item, 1) on a single-leaf tree should be nil")
	}
}

// Inclusion proofs must verify across a range of leaf counts, including
// even, odd, and a large stress case.
func TestMerkleInclusionAcrossSizes(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 7, 8, 16, 17, 1000} {
		n := n
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			leaves := make([][]byte, n)
			for i := range leaves {
				leaves[i] = []byte{byte(i), byte(i >> 8)}
			}
			tree := BuildTree(leaves)
			c := tree.Commitment()

			for i, leaf := range leaves {
				p := tree.Prove(leaf, uint64(i))
				if p == nil {
					t.Fatalf("Prove(%d) = nil", i)
				}
				if !c.Verify(p) {
					t.Fatalf("Verify(%d) = false, want true", i)
				}
			}

			// wrong index or wrong item is rejected by Prove.
			if tree.Prove(leaves[0], uint64(n)) != nil {
				t.Fatalf("Prove accepted an out-of-range index")
			}
			if n > 1 && tree.Prove(leaves[0], 1) != nil {
				t.Fatalf("Prove accepted a mismatched (item, index) pair")
			}
			if tree.Prove([]byte("not a leaf"), 0) != nil {
				t.Fatalf("Prove accepted an item absent from the tree")
			}

			// perturbing any one frontier hash breaks verification.
			p := tree.Prove(leaves[0], 0)
			for i, node := range p.Frontier {
				if node.Kind == ProofNodeWithoutSibling {
					continue
				}
				mutated := *p
				mutated.Frontier = append([]ProofNode(nil), p.Frontier...)
				mutated.Frontier[i].Sibling[0] ^= 0xFF
				if c.Verify(&mutated) {
					t.Fatalf("Verify accepted a perturbed sibling hash at frontier entry %d", i)
				}
			}
		})
	}
}

func TestMerkleVerifyRejectsWrongLength(t *testing.T) {
	tree := BuildTree(bytesLeaves("one", "two", "three"))
	c := tree.Commitment()
	p := tree.Prove([]byte("one"), 0)
	truncated := *p
	truncated.Frontier = p.Frontier[:len(p.Frontier)-1]
	if c.Verify(&truncated) {
		t.Fatalf("Verify accepted a frontier with too few entries")
	}
	padded := *p
	padded.Frontier = append(append([]ProofNode(nil), p.Frontier...), ProofNode{Kind: ProofNodeWithoutSibling})
	if c.Verify(&padded) {
		t.Fatalf("Verify accepted a frontier with too many entries")
	}
}

func TestTreeEqual(t *testing.T) {
	leaves := bytesLeaves("a", "b", "c", "d", "e")
	tree := BuildTree(leaves)
	if !tree.Equal(leaves) {
		t.Fatalf("Equal rejected the exact leaves the tree was built from")
	}
	other := bytesLeaves("a", "b", "c", "d", "X")
	if tree.Equal(other) {
		t.Fatalf("Equal accepted a different leaf set")
	}
}
