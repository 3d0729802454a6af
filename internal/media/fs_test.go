package media

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/telephoto/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, modTime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestDirLibrary_AssetsNewestFirstWithLimit(t *testing.T) {
	root := t.TempDir()
	base := time.Now().Add(-time.Hour)
	writeFile(t, filepath.Join(root, "old.jpg"), base)
	writeFile(t, filepath.Join(root, "mid.jpg"), base.Add(time.Minute))
	writeFile(t, filepath.Join(root, "new.jpg"), base.Add(2*time.Minute))
	writeFile(t, filepath.Join(root, "notes.txt"), base) // ignored

	lib := NewDirLibrary(root)
	got, err := lib.Assets(context.Background(), ListOptions{Kind: models.KindImage, Limit: 2})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "new.jpg", got[0].DisplayName)
	assert.Equal(t, "mid.jpg", got[1].DisplayName)
}

func TestDirLibrary_KindDetection(t *testing.T) {
	root := t.TempDir()
	now := time.Now()
	writeFile(t, filepath.Join(root, "clip.MP4"), now)
	writeFile(t, filepath.Join(root, "pic.jpeg"), now)

	lib := NewDirLibrary(root)

	videos, err := lib.Assets(context.Background(), ListOptions{Kind: models.KindVideo})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "clip.MP4", videos[0].DisplayName)

	images, err := lib.Assets(context.Background(), ListOptions{Kind: models.KindImage})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "pic.jpeg", images[0].DisplayName)
}

func TestDirLibrary_AlbumsAreSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "camera", "a.jpg"), time.Now())
	writeFile(t, filepath.Join(root, "screenshots", "b.png"), time.Now())

	lib := NewDirLibrary(root)
	albums, err := lib.Albums(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(albums))
	for _, a := range albums {
		names = append(names, a.Name)
	}
	assert.ElementsMatch(t, []string{"camera", "screenshots"}, names)
}

func TestDirLibrary_AlbumScopedListing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "camera", "a.jpg"), time.Now())
	writeFile(t, filepath.Join(root, "screenshots", "b.png"), time.Now())

	lib := NewDirLibrary(root)
	albumID := filepath.Join(root, "camera")

	got, err := lib.Assets(context.Background(), ListOptions{AlbumID: albumID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a.jpg", got[0].DisplayName)
	assert.Equal(t, albumID, got[0].AlbumID)
}

func TestDirLibrary_Permission(t *testing.T) {
	root := t.TempDir()

	granted, err := NewDirLibrary(root).RequestPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, granted)

	granted, err = NewDirLibrary(filepath.Join(root, "missing")).RequestPermission(context.Background())
	require.NoError(t, err)
	assert.False(t, granted)

	granted, err = NewDirLibrary().RequestPermission(context.Background())
	require.NoError(t, err)
	assert.False(t, granted)
}
