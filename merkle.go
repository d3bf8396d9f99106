package lamportsig

// Binary Merkle tree over an ordered sequence of byte-string leaves, with
// authenticated inclusion proofs against a short (root, count) commitment.
// Adapted from core.go's lTree/genLeaf leaf-compression code,
// generalized from WOTS+'s fixed tree arity to a plain N-leaf binary tree,
// and matching the level-construction/proof-frontier algorithm of
// src/merkle/internal.rs: odd-width levels promote their last node
// unchanged rather than duplicating it to pair with itself.

// ProofNodeKind tags one step of a Proof's frontier.
//
//go:generate enumer -type ProofNodeKind
type ProofNodeKind uint8

const (
	// ProofNodeWithoutSibling marks a level where this node had no pair
	// partner and was promoted unchanged.
	ProofNodeWithoutSibling ProofNodeKind = 0
	// ProofNodeLeftChildWithSibling marks our node as the left child; the
	// accompanying hash is the right sibling.
	ProofNodeLeftChildWithSibling ProofNodeKind = 1
	// ProofNodeRightChildWithSibling marks our node as the right child;
	// the accompanying hash is the left sibling.
	ProofNodeRightChildWithSibling ProofNodeKind = 2
)

// ProofNode is one step of a Proof's frontier: a tag plus, for the two
// sibling kinds, the sibling's hash.
type ProofNode struct {
	Kind    ProofNodeKind
	Sibling Hash
}

// Tree is a built Merkle tree. Construct one with BuildTree.
type Tree struct {
	root   Hash
	levels [][]Hash // bottom-up, NOT including the root; empty for a single leaf.
}

// Commitment is the short summary of a Tree a verifier needs: its root and
// leaf count.
type Commitment struct {
	Root     Hash
	NumItems uint64
}

// Proof is a claim that Item sits at Index under a Commitment's root,
// together with the sibling hashes (the frontier) needed to recompute the
// root.
type Proof struct {
	Item     []byte
	Index    uint64
	Frontier []ProofNode
}

// BuildTree builds a Merkle tree over leaves in order. leaves must be
// non-empty; callers (the many-time signer always supplies N >= 1) are
// responsible for that.
func BuildTree(leaves [][]byte) *Tree {
	if len(leaves) == 0 {
		panic("lamportsig: BuildTree requires at least one leaf")
	}
	level := make([]Hash, len(leaves))
	for i, leaf := range leaves {
		level[i] = H(leaf)
	}
	if len(level) == 1 {
		return &Tree{root: level[0]}
	}

	var levels [][]Hash
	for {
		levels = append(levels, level)
		n := len(level)
		if n == 2 {
			return &Tree{root: H2(level[0], level[1]), levels: levels}
		}
		odd := n % 2
		next := make([]Hash, n/2+odd)
		for i := 0; i < n/2; i++ {
			next[i] = H2(level[2*i], level[2*i+1])
		}
		if odd == 1 {
			next[len(next)-1] = level[n-1]
		}
		level = next
	}
}

// NumItems reports how many leaves the tree was built over.
func (t *Tree) NumItems() uint64 {
	if len(t.levels) == 0 {
		return 1
	}
	return uint64(len(t.levels[0]))
}

// Commitment returns the short summary of t.
func (t *Tree) Commitment() Commitment {
	return Commitment{Root: t.root, NumItems: t.NumItems()}
}

// frontierLength returns the number of non-root levels a tree built over
// numItems leaves has — equivalently, the number of frontier entries a
// valid Proof against it must carry.
func frontierLength(numItems uint64) int {
	if numItems <= 1 {
		return 0
	}
	count := 1
	w := numItems
	for w != 2 {
		odd := w % 2
		w = w/2 + odd
		count++
	}
	return count
}

// Prove returns a Proof that item sits at index, or nil if index is out of
// range or item does not hash to the leaf stored at that index.
//
// The frontier's NodeWithoutSibling detection corrects an off-by-one found
// while grounding this algorithm on its reference: a level of odd width w
// promotes the node at position w-1, so the promoted node is recognized by
// p == w-1 (the last valid index of that level), not p == w (which no
// valid index ever reaches). See DESIGN.md.
func (t *Tree) Prove(item []byte, index uint64) *Proof {
	numItems := t.NumItems()
	if index >= numItems {
		return nil
	}
	if H(item) != t.leafAt(index) {
		return nil
	}
	if len(t.levels) == 0 {
		return &Proof{Item: item, Index: index}
	}

	frontier := make([]ProofNode, 0, len(t.levels))
	pos := index
	width := numItems
	for _, level := range t.levels {
		odd := width % 2
		switch {
		case odd == 1 && pos == width-1:
			frontier = append(frontier, ProofNode{Kind: ProofNodeWithoutSibling})
			pos = width / 2
		case pos%2 == 0:
			frontier = append(frontier, ProofNode{Kind: ProofNodeLeftChildWithSibling, Sibling: level[pos+1]})
			pos /= 2
		default:
			frontier = append(frontier, ProofNode{Kind: ProofNodeRightChildWithSibling, Sibling: level[pos-1]})
			pos = (pos - 1) / 2
		}
		width = width/2 + odd
	}
	return &Proof{Item: item, Index: index, Frontier: frontier}
}

func (t *Tree) leafAt(index uint64) Hash {
	if len(t.levels) == 0 {
		return t.root
	}
	return t.levels[0][index]
}

// Equal reports whether t was built from exactly this sequence of leaves,
// by fully recomputing the tree. Useful as a container-integrity
// self-check; an inclusion Proof only attests to a single leaf.
func (t *Tree) Equal(leaves [][]byte) bool {
	rebuilt := BuildTree(leaves)
	return rebuilt.root == t.root && len(rebuilt.levels) == len(t.levels)
}

// Verify reports whether p is a valid inclusion proof against c.
func (c Commitment) Verify(p *Proof) bool {
	if p == nil {
		return false
	}
	if uint64(len(p.Frontier)) != frontierLength(c.NumItems) {
		return false
	}
	h := H(p.Item)
	pos := p.Index
	width := c.NumItems
	for _, node := range p.Frontier {
		odd := width % 2
		switch node.Kind {
		case ProofNodeWithoutSibling:
			if !(odd == 1 && pos == width-1) {
				return false
			}
			pos = width / 2
		case ProofNodeLeftChildWithSibling:
			if pos%2 != 0 {
				return false
			}
			h = H2(h, node.Sibling)
			pos /= 2
		case ProofNodeRightChildWithSibling:
			if pos%2 != 1 {
				return false
			}
			h = H2(node.Sibling, h)
			pos = (pos - 1) / 2
		default:
			return false
		}
		width = width/2 + odd
	}
	return pos == 0 && h == c.Root
}
