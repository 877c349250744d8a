package reporter

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cirrusops/contentdiff/internal/common"
	"github.com/cirrusops/contentdiff/internal/config"
	"github.com/cirrusops/contentdiff/internal/models"
	"github.com/rs/zerolog"
)

//go:embed templates/*
var templateFS embed.FS

// ReportMetadata describes the compared pair for the report header.
type ReportMetadata struct {
	ContentID   string
	BaseLabel   string
	TargetLabel string
	GeneratedAt time.Time
}

// ReportPageData is the data handed to the HTML template.
type ReportPageData struct {
	Title         string
	ContentID     string
	BaseLabel     string
	TargetLabel   string
	GeneratedAt   time.Time
	TokensAdded   int
	TokensRemoved int
	IsIdentical   bool
	ErrorMessage  string
	DiffHTML      template.HTML
}

// HTMLReporter renders a DiffResult as a standalone HTML page, mapping equal
// segments to plain text, added segments to <ins> and removed segments to
// <del> markup.
type HTMLReporter struct {
	logger   zerolog.Logger
	template *template.Template
	config   config.ReporterConfig
}

// NewHTMLReporter creates a new HTMLReporter with the embedded template.
func NewHTMLReporter(logger zerolog.Logger, cfg config.ReporterConfig) (*HTMLReporter, error) {
	tmpl, err := template.New("").Funcs(templateFunctions()).ParseFS(templateFS, "templates/diff_report.html.tmpl")
	if err != nil {
		return nil, common.WrapError(err, "failed to parse HTML diff template")
	}

	return &HTMLReporter{
		logger:   logger,
		template: tmpl,
		config:   cfg,
	}, nil
}

// RenderDiff renders the result into a complete HTML document.
func (r *HTMLReporter) RenderDiff(result *models.DiffResult, meta ReportMetadata) (string, error) {
	if result == nil {
		return "", common.NewError("diff result cannot be nil")
	}

	generatedAt := meta.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	pageData := ReportPageData{
		Title:         r.config.ReportTitle,
		ContentID:     meta.ContentID,
		BaseLabel:     meta.BaseLabel,
		TargetLabel:   meta.TargetLabel,
		GeneratedAt:   generatedAt,
		TokensAdded:   result.TokensAdded,
		TokensRemoved: result.TokensRemoved,
		IsIdentical:   result.IsIdentical,
		ErrorMessage:  result.ErrorMessage,
		DiffHTML:      r.renderSegments(result.Segments),
	}

	var buf bytes.Buffer
	if err := r.template.ExecuteTemplate(&buf, "diff_report.html.tmpl", pageData); err != nil {
		return "", common.WrapError(err, "failed to execute HTML diff template")
	}
	return buf.String(), nil
}

// WriteReport renders the result and writes it below the configured output
// directory, returning the report path.
func (r *HTMLReporter) WriteReport(result *models.DiffResult, meta ReportMetadata) (string, error) {
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now()
	}

	html, err := r.RenderDiff(result, meta)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.config.OutputDir, 0755); err != nil {
		return "", common.WrapErrorf(err, "failed to create report directory '%s'", r.config.OutputDir)
	}

	path := filepath.Join(r.config.OutputDir, r.reportFileName(meta))
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", common.WrapErrorf(err, "failed to write report '%s'", path)
	}

	r.logger.Info().Str("report_path", path).Msg("Diff report generated")
	return path, nil
}

// reportFileName builds a stable, filesystem-safe report name.
func (r *HTMLReporter) reportFileName(meta ReportMetadata) string {
	contentID := sanitizeForFilename(meta.ContentID)
	if contentID == "" {
		contentID = "content"
	}
	return fmt.Sprintf("diff-%s-%s.html", contentID, meta.GeneratedAt.UTC().Format("20060102-150405"))
}

// renderSegments converts segments into markup. With RefineReplacements
// enabled, an adjacent removed/added pair is additionally run through a
// character-level diff so only the runes that actually changed are
// emphasized inside the pair.
func (r *HTMLReporter) renderSegments(segments []models.DiffSegment) template.HTML {
	var b strings.Builder
	for i := 0; i < len(segments); i++ {
		seg := segments[i]

		if r.config.RefineReplacements &&
			seg.Kind == models.SegmentRemoved &&
			i+1 < len(segments) &&
			segments[i+1].Kind == models.SegmentAdded {
			removedHTML, addedHTML := refineReplacement(seg.Text, segments[i+1].Text)
			b.WriteString("<del>")
			b.WriteString(removedHTML)
			b.WriteString("</del>")
			b.WriteString("<ins>")
			b.WriteString(addedHTML)
			b.WriteString("</ins>")
			i++
			continue
		}

		switch seg.Kind {
		case models.SegmentAdded:
			b.WriteString("<ins>")
			b.WriteString(template.HTMLEscapeString(seg.Text))
			b.WriteString("</ins>")
		case models.SegmentRemoved:
			b.WriteString("<del>")
			b.WriteString(template.HTMLEscapeString(seg.Text))
			b.WriteString("</del>")
		default:
			b.WriteString(template.HTMLEscapeString(seg.Text))
		}
	}
	return template.HTML(b.String())
}

// templateFunctions returns helpers available inside the report template.
func templateFunctions() template.FuncMap {
	return template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05 MST")
		},
	}
}

// sanitizeForFilename keeps letters, digits and dashes.
func sanitizeForFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
