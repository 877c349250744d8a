package differ

import (
	"github.com/cirrusops/contentdiff/internal/tokenizer"
)

// OpKind identifies a single edit operation in an edit script.
type OpKind int

const (
	// OpKeep aligns a token present in both sequences.
	OpKeep OpKind = iota
	// OpDelete removes a token of the first sequence.
	OpDelete
	// OpInsert adds a token of the second sequence.
	OpInsert
)

// EditOp references token indices in the two input sequences. A is valid for
// keep and delete operations, B for keep and insert operations.
type EditOp struct {
	Kind OpKind
	A    int
	B    int
}

// Aligner computes a shortest edit script between two token sequences using
// the greedy algorithm from Myers, "An O(ND) Difference Algorithm and Its
// Variations". Runtime is O((N+M)*D) and the backtrack trace costs O(D^2)
// space, where D is the edit distance. When several shortest scripts exist
// the aligner prefers deletions over insertions at each divergence point and
// consumes equal runs eagerly, so identical inputs always produce identical
// scripts.
type Aligner struct{}

// NewAligner creates a new aligner.
func NewAligner() *Aligner {
	return &Aligner{}
}

// Align returns a shortest edit script transforming tokensA into tokensB.
// The script visits every token of both inputs exactly once, in order.
func (a *Aligner) Align(tokensA, tokensB []tokenizer.Token) []EditOp {
	n := len(tokensA)
	m := len(tokensB)

	if n == 0 && m == 0 {
		return nil
	}
	if n == 0 {
		ops := make([]EditOp, m)
		for j := range ops {
			ops[j] = EditOp{Kind: OpInsert, B: j}
		}
		return ops
	}
	if m == 0 {
		ops := make([]EditOp, n)
		for i := range ops {
			ops[i] = EditOp{Kind: OpDelete, A: i}
		}
		return ops
	}

	// v[offset+k] holds the furthest x reached on diagonal k. A snapshot of
	// v is kept per round so the backtrack can recover the path.
	maxD := n + m
	offset := maxD
	v := make([]int, 2*maxD+1)
	trace := make([][]int, 0, 16)

	for d := 0; d <= maxD; d++ {
		trace = append(trace, append([]int(nil), v...))

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k

			for x < n && y < m && tokensA[x].Text == tokensB[y].Text {
				x++
				y++
			}

			v[offset+k] = x

			if x >= n && y >= m {
				return backtrack(trace, offset, n, m)
			}
		}
	}

	// d is bounded by n+m, so the search always terminates above.
	return nil
}

// backtrack reconstructs the edit script from the per-round snapshots,
// walking from (n, m) back to the origin.
func backtrack(trace [][]int, offset, n, m int) []EditOp {
	ops := make([]EditOp, 0, n+m)
	x, y := n, m

	for d := len(trace) - 1; d > 0; d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, EditOp{Kind: OpKeep, A: x, B: y})
		}

		if x == prevX {
			y--
			ops = append(ops, EditOp{Kind: OpInsert, B: y})
		} else {
			x--
			ops = append(ops, EditOp{Kind: OpDelete, A: x})
		}
	}

	for x > 0 && y > 0 {
		x--
		y--
		ops = append(ops, EditOp{Kind: OpKeep, A: x, B: y})
	}

	reverseOps(ops)
	return ops
}

func reverseOps(ops []EditOp) {
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
}
