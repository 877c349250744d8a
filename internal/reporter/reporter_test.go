package reporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cirrusops/contentdiff/internal/config"
	"github.com/cirrusops/contentdiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReporter(t *testing.T, cfg config.ReporterConfig) *HTMLReporter {
	t.Helper()

	if cfg.ReportTitle == "" {
		cfg.ReportTitle = "Content Diff"
	}
	r, err := NewHTMLReporter(zerolog.Nop(), cfg)
	require.NoError(t, err)
	return r
}

func sampleResult() *models.DiffResult {
	return &models.DiffResult{
		Segments: []models.DiffSegment{
			{Kind: models.SegmentEqual, Text: "the "},
			{Kind: models.SegmentRemoved, Text: "cat "},
			{Kind: models.SegmentAdded, Text: "dog "},
			{Kind: models.SegmentEqual, Text: "sat"},
		},
		TokensAdded:   1,
		TokensRemoved: 1,
	}
}

func TestHTMLReporter_RenderDiffMarksSegments(t *testing.T) {
	r := newTestReporter(t, config.ReporterConfig{})

	html, err := r.RenderDiff(sampleResult(), ReportMetadata{ContentID: "post-1"})

	require.NoError(t, err)
	assert.Contains(t, html, "<del>cat </del>")
	assert.Contains(t, html, "<ins>dog </ins>")
	assert.Contains(t, html, "the ")
	assert.Contains(t, html, "post-1")
}

func TestHTMLReporter_EscapesContent(t *testing.T) {
	r := newTestReporter(t, config.ReporterConfig{})
	result := &models.DiffResult{
		Segments: []models.DiffSegment{
			{Kind: models.SegmentAdded, Text: "<script>alert(1)</script>"},
		},
		TokensAdded: 1,
	}

	html, err := r.RenderDiff(result, ReportMetadata{})

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestHTMLReporter_RefinesReplacementPairs(t *testing.T) {
	r := newTestReporter(t, config.ReporterConfig{RefineReplacements: true})
	result := &models.DiffResult{
		Segments: []models.DiffSegment{
			{Kind: models.SegmentRemoved, Text: "color "},
			{Kind: models.SegmentAdded, Text: "colour "},
		},
		TokensAdded:   1,
		TokensRemoved: 1,
	}

	html, err := r.RenderDiff(result, ReportMetadata{})

	require.NoError(t, err)
	// Only the inserted "u" gets emphasized, the shared prefix stays plain.
	assert.Contains(t, html, "<ins>colo<strong>u</strong>r </ins>")
}

func TestHTMLReporter_IdenticalVersionsNotice(t *testing.T) {
	r := newTestReporter(t, config.ReporterConfig{})
	result := &models.DiffResult{
		Segments:    []models.DiffSegment{{Kind: models.SegmentEqual, Text: "same text"}},
		IsIdentical: true,
	}

	html, err := r.RenderDiff(result, ReportMetadata{})

	require.NoError(t, err)
	assert.Contains(t, html, "identical")
}

func TestHTMLReporter_ErrorResultRendersMessage(t *testing.T) {
	r := newTestReporter(t, config.ReporterConfig{})
	result := &models.DiffResult{ErrorMessage: "content exceeds maximum size"}

	html, err := r.RenderDiff(result, ReportMetadata{})

	require.NoError(t, err)
	assert.Contains(t, html, "content exceeds maximum size")
	assert.NotContains(t, html, "<ins>")
}

func TestHTMLReporter_NilResultRejected(t *testing.T) {
	r := newTestReporter(t, config.ReporterConfig{})

	_, err := r.RenderDiff(nil, ReportMetadata{})

	assert.Error(t, err)
}

func TestHTMLReporter_WriteReport(t *testing.T) {
	dir := t.TempDir()
	r := newTestReporter(t, config.ReporterConfig{OutputDir: dir})

	path, err := r.WriteReport(sampleResult(), ReportMetadata{
		ContentID:   "post/1",
		GeneratedAt: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "diff-post-1-20250601-093000.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<del>cat </del>")
}

func TestFormatInline(t *testing.T) {
	out := FormatInline(sampleResult())

	assert.Equal(t, "the [-cat -]{+dog +}sat", out)
}

func TestFormatInline_ErrorResult(t *testing.T) {
	out := FormatInline(&models.DiffResult{ErrorMessage: "too large"})

	assert.Equal(t, "too large", out)
}

func TestFormatInline_RoundTripSides(t *testing.T) {
	result := sampleResult()
	out := FormatInline(result)

	stripped := strings.NewReplacer("[-", "", "-]", "", "{+", "", "+}", "").Replace(out)
	assert.Equal(t, "the cat dog sat", stripped)
}
