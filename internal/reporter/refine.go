package reporter

import (
	"html/template"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// refineReplacement runs a character-level diff over a removed/added segment
// pair and wraps the runs that actually changed in <strong> markers. This is
// display polish only: the segment pair itself stays the minimal token-level
// alignment, the refinement just points the eye at the changed characters
// within a replaced word.
func refineReplacement(removed, added string) (removedHTML, addedHTML string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(removed, added, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var oldB, newB strings.Builder
	for _, d := range diffs {
		escaped := template.HTMLEscapeString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldB.WriteString(escaped)
			newB.WriteString(escaped)
		case diffmatchpatch.DiffDelete:
			oldB.WriteString("<strong>")
			oldB.WriteString(escaped)
			oldB.WriteString("</strong>")
		case diffmatchpatch.DiffInsert:
			newB.WriteString("<strong>")
			newB.WriteString(escaped)
			newB.WriteString("</strong>")
		}
	}
	return oldB.String(), newB.String()
}
