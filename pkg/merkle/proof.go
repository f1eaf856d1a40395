package merkle

import (
	"math/bits"

	"github.com/certen/docmerkle/internal/docerr"
)

// ProofNode is one step of an inclusion proof: a sibling subtree hash and
// whether that sibling sits to the right of the hash accumulated so far.
type ProofNode struct {
	Hash           [HashSize]byte
	SiblingOnRight bool
}

// InclusionProof is the audit path from one leaf to the tree root.
type InclusionProof struct {
	LeafIndex int
	LeafCount int
	Path      []ProofNode
}

// ConsistencyProof proves that a tree of OldSize leaves is a prefix of a
// tree of NewSize leaves.
type ConsistencyProof struct {
	OldSize int
	NewSize int
	Nodes   [][HashSize]byte
}

// Prove builds an InclusionProof for leaf index m of a tree with n leaves.
func Prove(mt *MerkleTree, m int) (InclusionProof, error) {
	n := mt.Size()
	if m < 0 || m >= n {
		return InclusionProof{}, docerr.Newf(docerr.PathNotFound, "leaf index %d out of range [0, %d)", m, n)
	}
	return InclusionProof{LeafIndex: m, LeafCount: n, Path: mt.InclusionProof(m)}, nil
}

// ProveConsistency builds a ConsistencyProof that the first oldSize leaves
// of mt are unchanged from a prior tree of that size.
func ProveConsistency(mt *MerkleTree, oldSize int) (ConsistencyProof, error) {
	n := mt.Size()
	if oldSize < 1 || oldSize > n {
		return ConsistencyProof{}, docerr.Newf(docerr.InvalidProofArgs, "old_size %d outside [1, %d]", oldSize, n)
	}
	return ConsistencyProof{OldSize: oldSize, NewSize: n, Nodes: mt.ConsistencyProof(oldSize)}, nil
}

// VerifyInclusion checks that leafPayload (the output of EncodeLeaf) is
// included at proof.LeafIndex in a tree whose root is expectedRoot.
func VerifyInclusion(leafPayload []byte, proof InclusionProof, expectedRoot [HashSize]byte) bool {
	h := HashLeaf(leafPayload)
	for _, step := range proof.Path {
		if step.SiblingOnRight {
			h = HashNode(h, step.Hash)
		} else {
			h = HashNode(step.Hash, h)
		}
	}
	return h == expectedRoot
}

// VerifyConsistency checks that oldRoot (a tree of proof.OldSize leaves) is
// consistent with newRoot (a tree of proof.NewSize leaves), per RFC 6962
// §2.1.2. Trivially true when OldSize == NewSize and the roots match.
//
// fn and sn are first trimmed by the number of trailing zero bits of
// OldSize: this collapses the case where OldSize is itself a power of two
// (the proof carries no redundant node for the already-known oldRoot) and
// the general case (the proof's first node is consumed as the initial
// running hash) into the same loop.
func VerifyConsistency(oldRoot [HashSize]byte, newRoot [HashSize]byte, proof ConsistencyProof) bool {
	m, n := proof.OldSize, proof.NewSize
	if m == n {
		return oldRoot == newRoot
	}
	if m < 1 || m > n || len(proof.Nodes) == 0 {
		return false
	}

	nodes := proof.Nodes
	trim := bits.TrailingZeros(uint(m))
	fn, sn := (m-1)>>trim, (n-1)>>trim

	var fr, sr [HashSize]byte
	if fn == 0 {
		fr = oldRoot
	} else {
		fr, nodes = nodes[0], nodes[1:]
	}
	sr = fr

	for sn > 0 {
		switch {
		case fn%2 == 1:
			if len(nodes) == 0 {
				return false
			}
			c := nodes[0]
			nodes = nodes[1:]
			fr = HashNode(c, fr)
			sr = HashNode(c, sr)
		case fn < sn:
			if len(nodes) == 0 {
				return false
			}
			c := nodes[0]
			nodes = nodes[1:]
			sr = HashNode(sr, c)
		}
		fn /= 2
		sn /= 2
	}

	return len(nodes) == 0 && fr == oldRoot && sr == newRoot
}
