package models

// SegmentKind classifies a diff segment.
type SegmentKind int

const (
	// SegmentEqual indicates text present in both inputs.
	SegmentEqual SegmentKind = 0
	// SegmentAdded indicates text present only in the second input.
	SegmentAdded SegmentKind = 1
	// SegmentRemoved indicates text present only in the first input.
	SegmentRemoved SegmentKind = -1
)

// String returns the segment kind as a display name.
func (k SegmentKind) String() string {
	switch k {
	case SegmentAdded:
		return "added"
	case SegmentRemoved:
		return "removed"
	default:
		return "equal"
	}
}

// DiffSegment is one contiguous run of same-kind text in a diff result.
type DiffSegment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`
}

// DiffResult holds the structured result of a content diff operation.
// Segments are ordered left to right and cover the full span of both inputs:
// concatenating equal+removed segments reproduces the first input exactly,
// concatenating equal+added segments reproduces the second.
type DiffResult struct {
	Segments         []DiffSegment `json:"segments"`
	TokensAdded      int           `json:"tokens_added"`
	TokensRemoved    int           `json:"tokens_removed"`
	IsIdentical      bool          `json:"is_identical"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	ProcessingTimeMs int64         `json:"processing_time_ms"`
	OldHash          string        `json:"old_hash,omitempty"`
	NewHash          string        `json:"new_hash,omitempty"`
}

// HasChanges reports whether the result contains any added or removed text.
func (r *DiffResult) HasChanges() bool {
	return r.TokensAdded > 0 || r.TokensRemoved > 0
}
