package reporter

import (
	"strings"

	"github.com/cirrusops/contentdiff/internal/models"
)

// FormatInline renders a diff as a single string with wdiff-style markers:
// removed text wrapped in [- -], added text wrapped in {+ +}, equal text
// passed through untouched. Suited for terminals and plain-text review.
func FormatInline(result *models.DiffResult) string {
	if result == nil {
		return ""
	}
	if result.ErrorMessage != "" {
		return result.ErrorMessage
	}

	var b strings.Builder
	for _, seg := range result.Segments {
		switch seg.Kind {
		case models.SegmentRemoved:
			b.WriteString("[-")
			b.WriteString(seg.Text)
			b.WriteString("-]")
		case models.SegmentAdded:
			b.WriteString("{+")
			b.WriteString(seg.Text)
			b.WriteString("+}")
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
