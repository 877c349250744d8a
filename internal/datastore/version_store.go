package datastore

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/cirrusops/contentdiff/internal/common"
	"github.com/cirrusops/contentdiff/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// VersionStore persists content version lineages in SQLite and serves them
// back ordered by version number, implementing versioning.VersionStore.
type VersionStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewVersionStore opens (creating if needed) the version database and
// ensures the schema is set up.
func NewVersionStore(dataSourceName string, logger zerolog.Logger) (*VersionStore, error) {
	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create version database directory")
		return nil, common.WrapErrorf(err, "failed to create version database directory '%s'", dbDir)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		logger.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open version database")
		return nil, common.WrapErrorf(err, "sql.Open failed for '%s'", dataSourceName)
	}

	store := &VersionStore{
		db:     dbInstance,
		logger: logger,
	}

	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		logger.Error().Err(err).Msg("Failed to initialize version store schema")
		return nil, common.WrapError(err, "failed to initialize schema")
	}

	logger.Info().Str("db_path", dataSourceName).Msg("Version store initialized and schema verified")
	return store, nil
}

// Close closes the database connection.
func (s *VersionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the content_versions table if it doesn't already exist.
func (s *VersionStore) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS content_versions (
		id TEXT PRIMARY KEY,
		content_id TEXT NOT NULL,
		version INTEGER NOT NULL,
		parent_id TEXT,
		tone TEXT,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE(content_id, version)
	);
	CREATE INDEX IF NOT EXISTS idx_content_versions_content_id ON content_versions(content_id);
	`
	if _, err := s.db.Exec(query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize content_versions schema")
		return common.WrapError(err, "failed to create content_versions table")
	}
	return nil
}

// SaveVersion inserts a new version record. A missing ID is filled with a
// fresh UUID, a zero CreatedAt with the current time, and a zero Version
// with the lineage's next version number. The stored record is returned.
func (s *VersionStore) SaveVersion(ctx context.Context, v models.ContentVersion) (models.ContentVersion, error) {
	if v.ContentID == "" {
		return models.ContentVersion{}, common.NewValidationError("content_id", v.ContentID, "content id cannot be empty")
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	if v.Version == 0 {
		next, err := s.NextVersion(ctx, v.ContentID)
		if err != nil {
			return models.ContentVersion{}, err
		}
		v.Version = next
	}

	query := `INSERT INTO content_versions (id, content_id, version, parent_id, tone, content, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		v.ID, v.ContentID, v.Version,
		sql.NullString{String: v.ParentID, Valid: v.ParentID != ""},
		sql.NullString{String: v.Tone, Valid: v.Tone != ""},
		v.Content, v.CreatedAt)
	if err != nil {
		s.logger.Error().Err(err).Str("content_id", v.ContentID).Int("version", v.Version).Msg("Failed to insert content version")
		return models.ContentVersion{}, common.WrapErrorf(err, "failed to insert version %d for content '%s'", v.Version, v.ContentID)
	}

	s.logger.Info().
		Str("id", v.ID).
		Str("content_id", v.ContentID).
		Int("version", v.Version).
		Msg("Saved content version")
	return v, nil
}

// GetVersion fetches a single version by id. Missing ids yield an error
// wrapping common.ErrNotFound.
func (s *VersionStore) GetVersion(ctx context.Context, id string) (models.ContentVersion, error) {
	query := `SELECT id, content_id, version, parent_id, tone, content, created_at
	          FROM content_versions WHERE id = ?`
	row := s.db.QueryRowContext(ctx, query, id)

	v, err := scanVersion(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ContentVersion{}, common.WrapErrorf(common.ErrNotFound, "version '%s'", id)
		}
		return models.ContentVersion{}, common.WrapErrorf(err, "failed to fetch version '%s'", id)
	}
	return v, nil
}

// ListVersions returns every version of a content item ordered by version
// number ascending. An unknown content id yields an empty list, not an
// error.
func (s *VersionStore) ListVersions(ctx context.Context, contentID string) ([]models.ContentVersion, error) {
	query := `SELECT id, content_id, version, parent_id, tone, content, created_at
	          FROM content_versions WHERE content_id = ?
	          ORDER BY version ASC, created_at ASC`
	rows, err := s.db.QueryContext(ctx, query, contentID)
	if err != nil {
		s.logger.Error().Err(err).Str("content_id", contentID).Msg("Failed to list content versions")
		return nil, common.WrapErrorf(err, "failed to list versions for content '%s'", contentID)
	}
	defer rows.Close()

	var versions []models.ContentVersion
	for rows.Next() {
		v, err := scanVersion(rows.Scan)
		if err != nil {
			return nil, common.WrapError(err, "failed to scan version row")
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "failed to iterate version rows")
	}
	return versions, nil
}

// NextVersion returns the next free version number in a lineage, starting at
// 1 for an empty lineage.
func (s *VersionStore) NextVersion(ctx context.Context, contentID string) (int, error) {
	query := `SELECT COALESCE(MAX(version), 0) + 1 FROM content_versions WHERE content_id = ?`
	var next int
	if err := s.db.QueryRowContext(ctx, query, contentID).Scan(&next); err != nil {
		return 0, common.WrapErrorf(err, "failed to compute next version for content '%s'", contentID)
	}
	return next, nil
}

// DeleteVersions removes every version of a content item and returns the
// number of deleted records.
func (s *VersionStore) DeleteVersions(ctx context.Context, contentID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM content_versions WHERE content_id = ?`, contentID)
	if err != nil {
		return 0, common.WrapErrorf(err, "failed to delete versions for content '%s'", contentID)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, common.WrapError(err, "failed to count deleted versions")
	}
	s.logger.Info().Str("content_id", contentID).Int64("deleted", deleted).Msg("Deleted content versions")
	return deleted, nil
}

// scanVersion reads one row via the given scan function, mapping nullable
// columns onto empty strings.
func scanVersion(scan func(dest ...any) error) (models.ContentVersion, error) {
	var v models.ContentVersion
	var parentID, tone sql.NullString

	if err := scan(&v.ID, &v.ContentID, &v.Version, &parentID, &tone, &v.Content, &v.CreatedAt); err != nil {
		return models.ContentVersion{}, err
	}
	v.ParentID = parentID.String
	v.Tone = tone.String
	return v, nil
}
