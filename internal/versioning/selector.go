package versioning

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/cirrusops/contentdiff/internal/common"
	"github.com/cirrusops/contentdiff/internal/models"
	"github.com/rs/zerolog"
)

// ErrInsufficientVersions indicates a content item has fewer than two
// versions, so there is nothing to diff. Callers surface a message instead
// of invoking the diff pipeline.
var ErrInsufficientVersions = errors.New("insufficient versions to diff")

// VersionNotFoundError indicates an explicitly requested version id is
// absent from the fetched version list.
type VersionNotFoundError struct {
	ID string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version not found: %s", e.ID)
}

// VersionStore supplies the ordered version history of a content item.
// Implemented by datastore.VersionStore; the selector never touches storage
// itself.
type VersionStore interface {
	ListVersions(ctx context.Context, contentID string) ([]models.ContentVersion, error)
}

// Selection carries optional explicit version ids for the two diff sides.
// The zero value requests the default pair. A partial selection (only one id
// set) also falls back to the default pair.
type Selection struct {
	BaseID   string
	TargetID string
}

// IsExplicit reports whether both sides were chosen by the caller.
func (s Selection) IsExplicit() bool {
	return s.BaseID != "" && s.TargetID != ""
}

// VersionPair is a resolved comparison: Base content is diffed against
// Target content.
type VersionPair struct {
	Base   models.ContentVersion
	Target models.ContentVersion
}

// Selector resolves which two versions of a content item to diff. It holds
// no state between calls; every resolution is a pure function of the version
// list and the selection, so a single Selector may serve concurrent callers.
type Selector struct {
	less   func(a, b models.ContentVersion) bool
	logger zerolog.Logger
}

// SelectorBuilder provides a fluent interface for creating a Selector.
type SelectorBuilder struct {
	less   func(a, b models.ContentVersion) bool
	logger zerolog.Logger
}

// NewSelectorBuilder creates a new builder.
func NewSelectorBuilder() *SelectorBuilder {
	return &SelectorBuilder{
		less:   DefaultVersionLess,
		logger: zerolog.Nop(),
	}
}

// WithLess overrides the ordering used to pick the default pair.
func (b *SelectorBuilder) WithLess(less func(a, b models.ContentVersion) bool) *SelectorBuilder {
	b.less = less
	return b
}

// WithLogger sets the logger.
func (b *SelectorBuilder) WithLogger(logger zerolog.Logger) *SelectorBuilder {
	b.logger = logger
	return b
}

// Build creates the Selector instance.
func (b *SelectorBuilder) Build() (*Selector, error) {
	if b.less == nil {
		return nil, common.NewValidationError("less", b.less, "ordering function cannot be nil")
	}
	return &Selector{less: b.less, logger: b.logger}, nil
}

// NewSelector creates a Selector with the default version-number ordering.
func NewSelector(logger zerolog.Logger) *Selector {
	selector, _ := NewSelectorBuilder().WithLogger(logger).Build()
	return selector
}

// DefaultVersionLess orders versions by version number ascending. Creation
// time and id break ties deterministically; branch topology (ParentID) is
// ignored, so a forked lineage still yields a stable order.
func DefaultVersionLess(a, b models.ContentVersion) bool {
	if a.Version != b.Version {
		return a.Version < b.Version
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// ResolvePair chooses the two versions to diff. With an explicit selection
// both ids must be present in the list; otherwise the two highest-numbered
// versions are compared, the second-highest as base and the highest as
// target. Fewer than two versions is a precondition failure regardless of
// selection.
func (s *Selector) ResolvePair(versions []models.ContentVersion, sel Selection) (VersionPair, error) {
	if len(versions) < 2 {
		return VersionPair{}, ErrInsufficientVersions
	}

	if sel.IsExplicit() {
		base, err := findVersion(versions, sel.BaseID)
		if err != nil {
			return VersionPair{}, err
		}
		target, err := findVersion(versions, sel.TargetID)
		if err != nil {
			return VersionPair{}, err
		}
		return VersionPair{Base: base, Target: target}, nil
	}

	sorted := make([]models.ContentVersion, len(versions))
	copy(sorted, versions)
	sort.SliceStable(sorted, func(i, j int) bool { return s.less(sorted[i], sorted[j]) })

	pair := VersionPair{
		Base:   sorted[len(sorted)-2],
		Target: sorted[len(sorted)-1],
	}
	s.logger.Debug().
		Int("base_version", pair.Base.Version).
		Int("target_version", pair.Target.Version).
		Msg("Resolved default version pair")
	return pair, nil
}

// ResolveContent fetches the version list from the store and resolves the
// pair to diff.
func (s *Selector) ResolveContent(ctx context.Context, store VersionStore, contentID string, sel Selection) (VersionPair, error) {
	versions, err := store.ListVersions(ctx, contentID)
	if err != nil {
		return VersionPair{}, common.WrapErrorf(err, "failed to list versions for content '%s'", contentID)
	}
	return s.ResolvePair(versions, sel)
}

func findVersion(versions []models.ContentVersion, id string) (models.ContentVersion, error) {
	for _, v := range versions {
		if v.ID == id {
			return v, nil
		}
	}
	return models.ContentVersion{}, &VersionNotFoundError{ID: id}
}
