package merkle

// MerkleTree is an immutable, ordered sequence of encoded leaf payloads with
// memoized subtree hashing. Mirrors the cached recursive construction of an
// RFC 6962 tree: no hash is computed until Root, InclusionProof, or
// ConsistencyProof is first invoked, after which every subtree hash it
// touches is cached by its (start, size) position for the lifetime of the
// tree.
type MerkleTree struct {
	data  [][]byte
	cache *node
}

// node memoizes the hash of one subtree, lazily populating its children the
// first time that subtree is visited.
type node struct {
	this  *[HashSize]byte
	left  *node
	right *node
}

// New builds a MerkleTree over already-encoded leaf payloads (see
// EncodeLeaf). No hashing happens until the tree is queried.
func New(leaves [][]byte) *MerkleTree {
	return &MerkleTree{data: leaves, cache: new(node)}
}

// Size returns the number of leaves in the tree.
func (mt *MerkleTree) Size() int {
	return len(mt.data)
}

// Root computes the Merkle Tree Hash, MTH(0, n), per RFC 6962 §2.1.
func (mt *MerkleTree) Root() [HashSize]byte {
	return mt.mth(mt.data, mt.cache)
}

func (mt *MerkleTree) mth(data [][]byte, c *node) [HashSize]byte {
	if c.this == nil {
		var h [HashSize]byte
		switch n := len(data); {
		case n == 0:
			h = EmptyHash()
		case n == 1:
			h = HashLeaf(data[0])
		default:
			k := largestPowerOfTwoLessThan(n)
			c.left = new(node)
			c.right = new(node)
			h = HashNode(mt.mth(data[:k], c.left), mt.mth(data[k:], c.right))
		}
		c.this = &h
	}
	return *c.this
}

// InclusionProof builds the audit path for the leaf at index m, per RFC 6962
// §2.1.1. The path is built bottom-up: at each recursive split, the sibling
// subtree's hash is appended along with whether that sibling sits to the
// right of the path so far.
func (mt *MerkleTree) InclusionProof(m int) []ProofNode {
	mt.Root() // force the cache to populate before recursing into it
	return mt.inclusionProof(m, mt.data, mt.cache)
}

func (mt *MerkleTree) inclusionProof(m int, data [][]byte, c *node) []ProofNode {
	if len(data) <= 1 {
		return nil
	}
	k := largestPowerOfTwoLessThan(len(data))
	if m < k {
		return append(mt.inclusionProof(m, data[:k], c.left),
			ProofNode{Hash: mt.mth(data[k:], c.right), SiblingOnRight: true})
	}
	return append(mt.inclusionProof(m-k, data[k:], c.right),
		ProofNode{Hash: mt.mth(data[:k], c.left), SiblingOnRight: false})
}

// ConsistencyProof builds the set of nodes proving that the first oldSize
// leaves of this tree are a prefix of its current leaf sequence, per RFC
// 6962 §2.1.2 (PROOF/SUBPROOF).
func (mt *MerkleTree) ConsistencyProof(oldSize int) [][HashSize]byte {
	mt.Root()
	return mt.subproof(oldSize, mt.data, mt.cache, true)
}

func (mt *MerkleTree) subproof(m int, data [][]byte, c *node, top bool) [][HashSize]byte {
	n := len(data)
	if m == n {
		if top {
			return nil
		}
		return [][HashSize]byte{mt.mth(data, c)}
	}
	if n <= 1 {
		// m < n with n <= 1 cannot happen for valid (m, n) inputs; guarded
		// by callers validating 1 <= m <= n before invoking this helper.
		return nil
	}
	k := largestPowerOfTwoLessThan(n)
	if m <= k {
		return append(mt.subproof(m, data[:k], c.left, top), mt.mth(data[k:], c.right))
	}
	return append(mt.subproof(m-k, data[k:], c.right, false), mt.mth(data[:k], c.left))
}

// largestPowerOfTwoLessThan returns, for n >= 2, the largest power of two
// strictly smaller than n: the highest set bit of n-1. This always yields a
// left-subtree size that is itself a power of two, as RFC 6962 requires.
func largestPowerOfTwoLessThan(n int) int {
	k := 1
	for k<<1 < n {
		k <<= 1
	}
	return k
}
