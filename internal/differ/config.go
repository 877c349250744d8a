package differ

// Granularity selects the token unit the aligner works on.
type Granularity string

const (
	// GranularityWord aligns word tokens with attached whitespace. Suits
	// short-form copy where single-word edits matter.
	GranularityWord Granularity = "word"
	// GranularityLine aligns whole lines. Cheaper for long documents.
	GranularityLine Granularity = "line"
)

// DiffConfig holds configuration for content diffing.
type DiffConfig struct {
	Granularity     Granularity
	MaxContentBytes int // 0 disables the size guard
}

// DefaultDiffConfig returns default configuration.
func DefaultDiffConfig() DiffConfig {
	return DiffConfig{
		Granularity:     GranularityWord,
		MaxContentBytes: 10 * 1024 * 1024,
	}
}
