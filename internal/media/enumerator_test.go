package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/telephoto/internal/common"
	"github.com/dmitrijs2005/telephoto/internal/logging"
	"github.com/dmitrijs2005/telephoto/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLibrary struct {
	granted   bool
	permErr   error
	assets    map[string][]models.MediaAsset // keyed by album id, "" = unscoped
	listCalls []ListOptions
}

func (f *fakeLibrary) RequestPermission(context.Context) (bool, error) {
	return f.granted, f.permErr
}

func (f *fakeLibrary) Assets(_ context.Context, opts ListOptions) ([]models.MediaAsset, error) {
	f.listCalls = append(f.listCalls, opts)

	source := f.assets[opts.AlbumID]
	var out []models.MediaAsset
	for _, a := range source {
		if opts.Kind != "" && a.Kind != opts.Kind {
			continue
		}
		out = append(out, a)
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (f *fakeLibrary) Albums(context.Context) ([]models.Album, error) {
	return nil, nil
}

func asset(uri string, kind models.MediaKind) models.MediaAsset {
	return models.MediaAsset{ID: uri, URI: uri, Kind: kind, DisplayName: uri, CreatedAt: time.Now()}
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEnumerate_UnscopedImagesBeforeVideos(t *testing.T) {
	lib := &fakeLibrary{
		granted: true,
		assets: map[string][]models.MediaAsset{
			"": {
				asset("v1.mp4", models.KindVideo),
				asset("i1.jpg", models.KindImage),
				asset("i2.jpg", models.KindImage),
			},
		},
	}
	e := NewEnumerator(lib, DefaultPageSizes(), testLogger())

	got, err := e.Enumerate(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, models.KindImage, got[0].Kind)
	assert.Equal(t, models.KindImage, got[1].Kind)
	assert.Equal(t, models.KindVideo, got[2].Kind)
}

func TestEnumerate_UnscopedUsesPageSizes(t *testing.T) {
	lib := &fakeLibrary{granted: true}
	e := NewEnumerator(lib, PageSizes{Images: 7, Videos: 3, PerAlbum: 5}, testLogger())

	_, err := e.Enumerate(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, lib.listCalls, 2)
	assert.Equal(t, ListOptions{Kind: models.KindImage, Limit: 7}, lib.listCalls[0])
	assert.Equal(t, ListOptions{Kind: models.KindVideo, Limit: 3}, lib.listCalls[1])
}

func TestEnumerate_ScopedConcatenatesInScopeOrder(t *testing.T) {
	lib := &fakeLibrary{
		granted: true,
		assets: map[string][]models.MediaAsset{
			"b": {asset("b1.jpg", models.KindImage)},
			"a": {asset("a1.jpg", models.KindImage), asset("a2.jpg", models.KindImage)},
		},
	}
	e := NewEnumerator(lib, PageSizes{Images: 10, Videos: 10, PerAlbum: 10}, testLogger())

	got, err := e.Enumerate(context.Background(), []string{"b", "a"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b1.jpg", got[0].URI)
	assert.Equal(t, "a1.jpg", got[1].URI)
	assert.Equal(t, "a2.jpg", got[2].URI)
}

func TestEnumerate_PermissionDeniedIsEmptyNotError(t *testing.T) {
	lib := &fakeLibrary{granted: false}
	e := NewEnumerator(lib, DefaultPageSizes(), testLogger())

	got, err := e.Enumerate(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, lib.listCalls, "enumeration must not list assets without permission")
}

func TestEnumerate_PermissionDeniedErrorDegradesToEmpty(t *testing.T) {
	lib := &fakeLibrary{permErr: fmt.Errorf("stat /dcim: %w", common.ErrPermissionDenied)}
	e := NewEnumerator(lib, DefaultPageSizes(), testLogger())

	got, err := e.Enumerate(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, lib.listCalls)
}

func TestEnumerate_PermissionProbeErrorPropagates(t *testing.T) {
	lib := &fakeLibrary{permErr: errors.New("index unavailable")}
	e := NewEnumerator(lib, DefaultPageSizes(), testLogger())

	_, err := e.Enumerate(context.Background(), nil)
	assert.Error(t, err)
}
