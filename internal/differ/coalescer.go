package differ

import (
	"strings"

	"github.com/cirrusops/contentdiff/internal/models"
	"github.com/cirrusops/contentdiff/internal/tokenizer"
)

// Coalescer merges consecutive same-kind edit operations into display
// segments.
type Coalescer struct{}

// NewCoalescer creates a new coalescer.
func NewCoalescer() *Coalescer {
	return &Coalescer{}
}

// Coalesce walks the edit script in order and groups it into segments.
// Within a changed run the removed text is emitted before the added text,
// matching the aligner's delete-before-insert preference, so no two adjacent
// segments ever share a kind. Concatenating equal+removed segments
// reproduces the first input; equal+added segments reproduce the second.
func (c *Coalescer) Coalesce(ops []EditOp, tokensA, tokensB []tokenizer.Token) []models.DiffSegment {
	if len(ops) == 0 {
		return nil
	}

	var segments []models.DiffSegment
	var equal, removed, added strings.Builder

	flushChanged := func() {
		if removed.Len() > 0 {
			segments = append(segments, models.DiffSegment{Kind: models.SegmentRemoved, Text: removed.String()})
			removed.Reset()
		}
		if added.Len() > 0 {
			segments = append(segments, models.DiffSegment{Kind: models.SegmentAdded, Text: added.String()})
			added.Reset()
		}
	}
	flushEqual := func() {
		if equal.Len() > 0 {
			segments = append(segments, models.DiffSegment{Kind: models.SegmentEqual, Text: equal.String()})
			equal.Reset()
		}
	}

	for _, op := range ops {
		switch op.Kind {
		case OpKeep:
			flushChanged()
			equal.WriteString(tokensA[op.A].Text)
		case OpDelete:
			flushEqual()
			removed.WriteString(tokensA[op.A].Text)
		case OpInsert:
			flushEqual()
			added.WriteString(tokensB[op.B].Text)
		}
	}
	flushChanged()
	flushEqual()

	return segments
}
