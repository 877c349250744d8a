package datastore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cirrusops/contentdiff/internal/common"
	"github.com/cirrusops/contentdiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *VersionStore {
	t.Helper()

	store, err := NewVersionStore(filepath.Join(t.TempDir(), "versions.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestVersionStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.SaveVersion(ctx, models.ContentVersion{
		ContentID: "post-1",
		Content:   "first draft of the launch copy",
		Tone:      "friendly",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 1, saved.Version)
	assert.False(t, saved.CreatedAt.IsZero())

	fetched, err := store.GetVersion(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.Equal(t, "first draft of the launch copy", fetched.Content)
	assert.Equal(t, "friendly", fetched.Tone)
	assert.True(t, fetched.IsRoot())
}

func TestVersionStore_GetVersionNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetVersion(context.Background(), "no-such-id")

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestVersionStore_SaveRejectsEmptyContentID(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveVersion(context.Background(), models.ContentVersion{Content: "text"})

	assert.Error(t, err)
}

func TestVersionStore_VersionNumbersAllocateSequentially(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	root, err := store.SaveVersion(ctx, models.ContentVersion{ContentID: "post-1", Content: "v1"})
	require.NoError(t, err)

	child, err := store.SaveVersion(ctx, models.ContentVersion{
		ContentID: "post-1",
		ParentID:  root.ID,
		Content:   "v2",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, child.Version)
	assert.Equal(t, root.ID, child.ParentID)

	next, err := store.NextVersion(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}

func TestVersionStore_NextVersionEmptyLineage(t *testing.T) {
	store := newTestStore(t)

	next, err := store.NextVersion(context.Background(), "never-seen")

	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestVersionStore_ListVersionsOrdered(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// Insert out of order to prove the store sorts by version number.
	for _, v := range []models.ContentVersion{
		{ID: "id-3", ContentID: "post-1", Version: 3, Content: "third", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "id-1", ContentID: "post-1", Version: 1, Content: "first", CreatedAt: base},
		{ID: "id-2", ContentID: "post-1", Version: 2, Content: "second", CreatedAt: base.Add(time.Hour)},
		{ID: "other", ContentID: "post-2", Version: 1, Content: "unrelated", CreatedAt: base},
	} {
		_, err := store.SaveVersion(ctx, v)
		require.NoError(t, err)
	}

	versions, err := store.ListVersions(ctx, "post-1")

	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{versions[0].Content, versions[1].Content, versions[2].Content})
	assert.Equal(t, []int{1, 2, 3},
		[]int{versions[0].Version, versions[1].Version, versions[2].Version})
}

func TestVersionStore_ListVersionsUnknownContent(t *testing.T) {
	store := newTestStore(t)

	versions, err := store.ListVersions(context.Background(), "missing")

	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestVersionStore_DuplicateVersionRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveVersion(ctx, models.ContentVersion{ID: "a", ContentID: "post-1", Version: 1, Content: "x"})
	require.NoError(t, err)

	_, err = store.SaveVersion(ctx, models.ContentVersion{ID: "b", ContentID: "post-1", Version: 1, Content: "y"})
	assert.Error(t, err)
}

func TestVersionStore_DeleteVersions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveVersion(ctx, models.ContentVersion{ContentID: "post-1", Content: "v1"})
	require.NoError(t, err)
	_, err = store.SaveVersion(ctx, models.ContentVersion{ContentID: "post-1", Content: "v2"})
	require.NoError(t, err)

	deleted, err := store.DeleteVersions(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	versions, err := store.ListVersions(ctx, "post-1")
	require.NoError(t, err)
	assert.Empty(t, versions)
}
