package ledger

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/telephoto/internal/common"
	"github.com/dmitrijs2005/telephoto/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), db
}

func TestIsUploaded_FalseForUnknownURI(t *testing.T) {
	r, _ := setupRepo(t)

	uploaded, err := r.IsUploaded(context.Background(), "file:///dcim/a.jpg")
	require.NoError(t, err)
	assert.False(t, uploaded)
}

func TestMarkUploaded_ThenIsUploaded(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.MarkUploaded(ctx, "file:///dcim/a.jpg", "900:DOC1", models.KindImage, "a.jpg"))

	uploaded, err := r.IsUploaded(ctx, "file:///dcim/a.jpg")
	require.NoError(t, err)
	assert.True(t, uploaded)
}

func TestMarkUploaded_Idempotent(t *testing.T) {
	r, db := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.MarkUploaded(ctx, "file:///dcim/a.jpg", "900:DOC1", models.KindImage, "a.jpg"))
	require.NoError(t, r.MarkUploaded(ctx, "file:///dcim/a.jpg", "901:DOC2", models.KindImage, "a.jpg"))

	var count int
	require.NoError(t, db.QueryRow(`select count(*) from uploaded_files`).Scan(&count))
	assert.Equal(t, 1, count)

	// The first write wins; the duplicate is ignored, not an update.
	var remoteID string
	require.NoError(t, db.QueryRow(`select remote_file_id from uploaded_files`).Scan(&remoteID))
	assert.Equal(t, "900:DOC1", remoteID)
}

func TestGet_ReturnsRecordOrNotFound(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	_, err := r.Get(ctx, "file:///dcim/a.jpg")
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, r.MarkUploaded(ctx, "file:///dcim/a.jpg", "900:DOC1", models.KindImage, "a.jpg"))

	rec, err := r.Get(ctx, "file:///dcim/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "900:DOC1", rec.RemoteFileID)
	assert.Equal(t, models.KindImage, rec.Kind)
	assert.Equal(t, "a.jpg", rec.DisplayName)
	assert.False(t, rec.UploadedAt.IsZero())
}

func TestRecordText_InsertAndReplace(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.RecordText(ctx, "file:///dcim/a.jpg", "first pass"))
	require.NoError(t, r.RecordText(ctx, "file:///dcim/a.jpg", "second pass"))

	text, err := r.TextFor(ctx, "file:///dcim/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "second pass", text)
}

func TestTextFor_NotFound(t *testing.T) {
	r, _ := setupRepo(t)

	_, err := r.TextFor(context.Background(), "file:///dcim/none.jpg")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCountUploaded(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	count, err := r.CountUploaded(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, r.MarkUploaded(ctx, "u1", "r1", models.KindImage, "a"))
	require.NoError(t, r.MarkUploaded(ctx, "u2", "r2", models.KindVideo, "b"))

	count, err = r.CountUploaded(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListUploaded_NewestFirstAndKindFilter(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.MarkUploaded(ctx, "u1", "r1", models.KindImage, "a.jpg"))
	require.NoError(t, r.MarkUploaded(ctx, "u2", "r2", models.KindVideo, "b.mp4"))
	require.NoError(t, r.MarkUploaded(ctx, "u3", "r3", models.KindImage, "c.jpg"))

	all, err := r.ListUploaded(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "u3", all[0].AssetURI)
	assert.Equal(t, "u2", all[1].AssetURI)
	assert.Equal(t, "u1", all[2].AssetURI)

	images, err := r.ListUploaded(ctx, models.KindImage)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "u3", images[0].AssetURI)
	assert.Equal(t, "u1", images[1].AssetURI)
}

func TestSearchByText_CaseInsensitiveSubstring(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.MarkUploaded(ctx, "u1", "r1", models.KindImage, "a.jpg"))
	require.NoError(t, r.MarkUploaded(ctx, "u2", "r2", models.KindImage, "b.jpg"))
	require.NoError(t, r.MarkUploaded(ctx, "u3", "r3", models.KindImage, "c.jpg"))

	require.NoError(t, r.RecordText(ctx, "u1", "Electricity INVOICE March"))
	require.NoError(t, r.RecordText(ctx, "u2", "shopping list"))
	require.NoError(t, r.RecordText(ctx, "u3", "another invoice, April"))

	got, err := r.SearchByText(ctx, "invoice")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first: u3 was marked after u1.
	assert.Equal(t, "u3", got[0].AssetURI)
	assert.Equal(t, "u1", got[1].AssetURI)
}

func TestSearchByText_NoTextIndexedMeansNoMatch(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.MarkUploaded(ctx, "u1", "r1", models.KindImage, "a.jpg"))

	got, err := r.SearchByText(ctx, "anything")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRemove_DeletesRecordTextAndLinks(t *testing.T) {
	r, db := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.MarkUploaded(ctx, "u1", "r1", models.KindImage, "a.jpg"))
	require.NoError(t, r.RecordText(ctx, "u1", "some text"))
	require.NoError(t, r.CreateFolder(ctx, "vacation"))
	require.NoError(t, r.AddToFolder(ctx, "u1", "vacation"))

	require.NoError(t, r.Remove(ctx, "u1"))

	uploaded, err := r.IsUploaded(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, uploaded)

	_, err = r.TextFor(ctx, "u1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	var links int
	require.NoError(t, db.QueryRow(`select count(*) from file_folders`).Scan(&links))
	assert.Equal(t, 0, links)
}

func TestRemove_UnknownURI(t *testing.T) {
	r, _ := setupRepo(t)

	err := r.Remove(context.Background(), "u-missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStats(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.MarkUploaded(ctx, "u1", "r1", models.KindImage, "a.jpg"))
	require.NoError(t, r.MarkUploaded(ctx, "u2", "r2", models.KindImage, "b.jpg"))
	require.NoError(t, r.MarkUploaded(ctx, "u3", "r3", models.KindVideo, "c.mp4"))

	s, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StorageStats{TotalFiles: 3, Images: 2, Videos: 1}, s)
}
