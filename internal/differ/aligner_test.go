package differ

import (
	"fmt"
	"testing"

	"github.com/cirrusops/contentdiff/internal/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lcsLength is a reference O(N*M) dynamic-programming LCS used to verify
// that the aligner's scripts are shortest: a minimal insert+delete script
// over sequences of lengths n and m has exactly n+m-2*lcs edits.
func lcsLength(a, b []tokenizer.Token) int {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0
	}

	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1].Text == b[j-1].Text {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}
	return dp[n][m]
}

func countOps(ops []EditOp) (keeps, deletes, inserts int) {
	for _, op := range ops {
		switch op.Kind {
		case OpKeep:
			keeps++
		case OpDelete:
			deletes++
		case OpInsert:
			inserts++
		}
	}
	return keeps, deletes, inserts
}

func TestAligner_BothEmpty(t *testing.T) {
	aligner := NewAligner()

	ops := aligner.Align(nil, nil)

	assert.Empty(t, ops)
}

func TestAligner_FirstEmpty(t *testing.T) {
	aligner := NewAligner()
	tokensB := tokenizer.Tokenize("brand new text")

	ops := aligner.Align(nil, tokensB)

	require.Len(t, ops, len(tokensB))
	for j, op := range ops {
		assert.Equal(t, OpInsert, op.Kind)
		assert.Equal(t, j, op.B)
	}
}

func TestAligner_SecondEmpty(t *testing.T) {
	aligner := NewAligner()
	tokensA := tokenizer.Tokenize("soon to be gone")

	ops := aligner.Align(tokensA, nil)

	require.Len(t, ops, len(tokensA))
	for i, op := range ops {
		assert.Equal(t, OpDelete, op.Kind)
		assert.Equal(t, i, op.A)
	}
}

func TestAligner_IdenticalSequences(t *testing.T) {
	aligner := NewAligner()
	tokens := tokenizer.Tokenize("nothing changed here at all")

	ops := aligner.Align(tokens, tokens)

	require.Len(t, ops, len(tokens))
	for i, op := range ops {
		assert.Equal(t, OpKeep, op.Kind)
		assert.Equal(t, i, op.A)
		assert.Equal(t, i, op.B)
	}
}

func TestAligner_DisjointSequences(t *testing.T) {
	aligner := NewAligner()
	tokensA := tokenizer.Tokenize("alpha beta gamma")
	tokensB := tokenizer.Tokenize("uno dos tres")

	ops := aligner.Align(tokensA, tokensB)

	keeps, deletes, inserts := countOps(ops)
	assert.Equal(t, 0, keeps)
	assert.Equal(t, len(tokensA), deletes)
	assert.Equal(t, len(tokensB), inserts)
}

func TestAligner_DeleteBeforeInsertAtReplacement(t *testing.T) {
	aligner := NewAligner()
	tokensA := tokenizer.Tokenize("the cat sat")
	tokensB := tokenizer.Tokenize("the dog sat")

	ops := aligner.Align(tokensA, tokensB)

	require.Len(t, ops, 4)
	assert.Equal(t, OpKeep, ops[0].Kind)
	assert.Equal(t, OpDelete, ops[1].Kind)
	assert.Equal(t, OpInsert, ops[2].Kind)
	assert.Equal(t, OpKeep, ops[3].Kind)
}

func TestAligner_ScriptVisitsEveryTokenInOrder(t *testing.T) {
	aligner := NewAligner()
	tokensA := tokenizer.Tokenize("we launched the spring campaign today")
	tokensB := tokenizer.Tokenize("we finally launched the summer campaign")

	ops := aligner.Align(tokensA, tokensB)

	nextA, nextB := 0, 0
	for _, op := range ops {
		switch op.Kind {
		case OpKeep:
			require.Equal(t, nextA, op.A)
			require.Equal(t, nextB, op.B)
			nextA++
			nextB++
		case OpDelete:
			require.Equal(t, nextA, op.A)
			nextA++
		case OpInsert:
			require.Equal(t, nextB, op.B)
			nextB++
		}
	}
	assert.Equal(t, len(tokensA), nextA)
	assert.Equal(t, len(tokensB), nextB)
}

func TestAligner_ScriptsAreMinimal(t *testing.T) {
	cases := []struct {
		textA string
		textB string
	}{
		{"", ""},
		{"one", ""},
		{"", "one"},
		{"hello world", "hello world"},
		{"hello world", "hello brave world"},
		{"the cat sat", "the dog sat"},
		{"a b c a b b a", "c b a b a c"},
		{"repeat repeat repeat", "repeat repeat"},
		{"x y z", "z y x"},
		{"the quick brown fox jumps over the lazy dog", "a quick brown dog leaps over a lazy fox"},
		{"tone friendly and warm", "tone formal and precise but still warm"},
	}

	aligner := NewAligner()
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q->%q", tc.textA, tc.textB), func(t *testing.T) {
			tokensA := tokenizer.Tokenize(tc.textA)
			tokensB := tokenizer.Tokenize(tc.textB)

			ops := aligner.Align(tokensA, tokensB)

			keeps, deletes, inserts := countOps(ops)
			lcs := lcsLength(tokensA, tokensB)
			assert.Equal(t, lcs, keeps, "keep count must equal the LCS length")
			assert.Equal(t, len(tokensA)+len(tokensB)-2*lcs, deletes+inserts,
				"edit count must match the minimal script length")
		})
	}
}

func TestAligner_Deterministic(t *testing.T) {
	aligner := NewAligner()
	tokensA := tokenizer.Tokenize("some words move around in this sentence")
	tokensB := tokenizer.Tokenize("in this sentence some words move around")

	first := aligner.Align(tokensA, tokensB)
	second := aligner.Align(tokensA, tokensB)

	assert.Equal(t, first, second)
}
