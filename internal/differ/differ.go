package differ

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cirrusops/contentdiff/internal/common"
	"github.com/cirrusops/contentdiff/internal/config"
	"github.com/cirrusops/contentdiff/internal/models"
	"github.com/cirrusops/contentdiff/internal/tokenizer"
)

// ContentDiffer computes the difference between two revisions of a content
// item. It is pure and holds no mutable state besides an optional
// caller-provided cache, so a single instance may be used from any number of
// goroutines.
type ContentDiffer struct {
	aligner         *Aligner
	coalescer       *Coalescer
	statsCalculator *DiffStatsCalculator
	cache           *DiffCache
	config          DiffConfig
	tokenize        func(string) []tokenizer.Token
}

// ContentDifferBuilder provides a fluent interface for creating ContentDiffer
type ContentDifferBuilder struct {
	diffCfg DiffConfig
	cache   *DiffCache
}

// NewContentDifferBuilder creates a new builder
func NewContentDifferBuilder() *ContentDifferBuilder {
	return &ContentDifferBuilder{
		diffCfg: DefaultDiffConfig(),
	}
}

// WithDiffConfig sets the diff configuration
func (b *ContentDifferBuilder) WithDiffConfig(cfg DiffConfig) *ContentDifferBuilder {
	b.diffCfg = cfg
	return b
}

// WithDiffSettings applies the diff section of the application config.
func (b *ContentDifferBuilder) WithDiffSettings(cfg config.DiffConfig) *ContentDifferBuilder {
	b.diffCfg = DiffConfig{
		Granularity:     Granularity(cfg.Granularity),
		MaxContentBytes: cfg.MaxContentSizeMB * 1024 * 1024,
	}
	return b
}

// WithCache attaches a caller-owned result cache.
func (b *ContentDifferBuilder) WithCache(cache *DiffCache) *ContentDifferBuilder {
	b.cache = cache
	return b
}

// Build creates a new ContentDiffer instance
func (b *ContentDifferBuilder) Build() (*ContentDiffer, error) {
	var tokenize func(string) []tokenizer.Token
	switch b.diffCfg.Granularity {
	case GranularityWord, "":
		tokenize = tokenizer.Tokenize
	case GranularityLine:
		tokenize = tokenizer.TokenizeLines
	default:
		return nil, common.NewValidationError("granularity", b.diffCfg.Granularity, "must be word or line")
	}

	return &ContentDiffer{
		aligner:         NewAligner(),
		coalescer:       NewCoalescer(),
		statsCalculator: NewDiffStatsCalculator(),
		cache:           b.cache,
		config:          b.diffCfg,
		tokenize:        tokenize,
	}, nil
}

// NewContentDiffer creates a ContentDiffer with default configuration.
func NewContentDiffer() *ContentDiffer {
	cd, _ := NewContentDifferBuilder().Build()
	return cd
}

// ComputeDiff compares two text revisions with default configuration.
func ComputeDiff(textA, textB string) *models.DiffResult {
	return NewContentDiffer().ComputeDiff(textA, textB)
}

// ComputeDiff compares two text revisions and returns a structured diff
// result. It is total: every pair of strings, including empty ones, yields a
// result and never an error. Oversized inputs produce a result whose
// ErrorMessage explains why no segments were computed.
func (cd *ContentDiffer) ComputeDiff(textA, textB string) *models.DiffResult {
	startTime := time.Now()

	oldHash := contentHash(textA)
	newHash := contentHash(textB)

	if cd.cache != nil {
		if cached, ok := cd.cache.Get(oldHash, newHash); ok {
			return cached
		}
	}

	var result *models.DiffResult
	if cd.exceedsSizeLimit(textA, textB) {
		result = cd.buildTooLargeResult(textA, textB)
	} else {
		result = cd.processDiff(textA, textB)
	}

	result.OldHash = oldHash
	result.NewHash = newHash
	result.ProcessingTimeMs = time.Since(startTime).Milliseconds()

	if cd.cache != nil {
		cd.cache.Put(oldHash, newHash, result)
	}
	return result
}

// processDiff runs the tokenize/align/coalesce pipeline.
func (cd *ContentDiffer) processDiff(textA, textB string) *models.DiffResult {
	tokensA := cd.tokenize(textA)
	tokensB := cd.tokenize(textB)

	ops := cd.aligner.Align(tokensA, tokensB)
	segments := cd.coalescer.Coalesce(ops, tokensA, tokensB)
	stats := cd.statsCalculator.CalculateStats(ops)

	return &models.DiffResult{
		Segments:      segments,
		TokensAdded:   stats.TokensAdded,
		TokensRemoved: stats.TokensRemoved,
		IsIdentical:   stats.IsIdentical,
	}
}

// exceedsSizeLimit checks either input against the configured size guard.
func (cd *ContentDiffer) exceedsSizeLimit(textA, textB string) bool {
	limit := cd.config.MaxContentBytes
	return limit > 0 && (len(textA) > limit || len(textB) > limit)
}

// buildTooLargeResult creates a result for content that is too large to diff.
func (cd *ContentDiffer) buildTooLargeResult(textA, textB string) *models.DiffResult {
	return &models.DiffResult{
		IsIdentical: textA == textB,
		ErrorMessage: fmt.Sprintf(
			"content is too large for a detailed diff (limit: %d bytes, sizes: %d and %d bytes)",
			cd.config.MaxContentBytes, len(textA), len(textB)),
	}
}

// contentHash returns the hex SHA-256 of a text payload, used as cache key
// and recorded on the result for callers that track revisions by hash.
func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// DiffStats holds diff calculation results.
type DiffStats struct {
	TokensAdded   int
	TokensRemoved int
	IsIdentical   bool
}

// DiffStatsCalculator calculates statistics from an edit script.
type DiffStatsCalculator struct{}

// NewDiffStatsCalculator creates a new diff stats calculator
func NewDiffStatsCalculator() *DiffStatsCalculator {
	return &DiffStatsCalculator{}
}

// CalculateStats counts inserted and deleted tokens in an edit script.
func (dsc *DiffStatsCalculator) CalculateStats(ops []EditOp) DiffStats {
	stats := DiffStats{}
	for _, op := range ops {
		switch op.Kind {
		case OpInsert:
			stats.TokensAdded++
		case OpDelete:
			stats.TokensRemoved++
		}
	}
	stats.IsIdentical = stats.TokensAdded == 0 && stats.TokensRemoved == 0
	return stats
}
