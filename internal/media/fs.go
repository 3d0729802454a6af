package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/telephoto/internal/common"
	"github.com/dmitrijs2005/telephoto/internal/models"
)

// Extension-based media kind detection for the directory-backed library.
var extKinds = map[string]models.MediaKind{
	".jpg":  models.KindImage,
	".jpeg": models.KindImage,
	".png":  models.KindImage,
	".gif":  models.KindImage,
	".webp": models.KindImage,
	".heic": models.KindImage,
	".mp4":  models.KindVideo,
	".mov":  models.KindVideo,
	".mkv":  models.KindVideo,
	".avi":  models.KindVideo,
	".webm": models.KindVideo,
	".m4v":  models.KindVideo,
}

// DirLibrary exposes one or more directory trees as a media Library. Each
// immediate subdirectory of a root acts as an album; file modification time
// stands in for the creation timestamp.
type DirLibrary struct {
	roots []string
}

func NewDirLibrary(roots ...string) *DirLibrary {
	return &DirLibrary{roots: roots}
}

// RequestPermission reports whether every configured root is a readable
// directory. Missing roots deny access rather than erroring, matching the
// degrade-to-no-op contract; a root the process is not allowed to read
// reports common.ErrPermissionDenied.
func (l *DirLibrary) RequestPermission(ctx context.Context) (bool, error) {
	if len(l.roots) == 0 {
		return false, nil
	}
	for _, root := range l.roots {
		info, err := os.Stat(root)
		if errors.Is(err, fs.ErrPermission) {
			return false, fmt.Errorf("stat %s: %w", root, common.ErrPermissionDenied)
		}
		if err != nil || !info.IsDir() {
			return false, nil
		}
	}
	return true, nil
}

func (l *DirLibrary) Albums(ctx context.Context) ([]models.Album, error) {
	var albums []models.Album
	for _, root := range l.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("read root %s: %w", root, err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			albums = append(albums, models.Album{
				ID:   filepath.Join(root, e.Name()),
				Name: e.Name(),
			})
		}
	}
	return albums, nil
}

func (l *DirLibrary) Assets(ctx context.Context, opts ListOptions) ([]models.MediaAsset, error) {
	roots := l.roots
	if opts.AlbumID != "" {
		roots = []string{opts.AlbumID}
	}

	var assets []models.MediaAsset
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := scanTree(root, opts)
		if err != nil {
			return nil, err
		}
		assets = append(assets, found...)
	}

	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].CreatedAt.After(assets[j].CreatedAt)
	})

	if opts.Limit > 0 && len(assets) > opts.Limit {
		assets = assets[:opts.Limit]
	}
	return assets, nil
}

func scanTree(root string, opts ListOptions) ([]models.MediaAsset, error) {
	var assets []models.MediaAsset

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		kind, ok := extKinds[strings.ToLower(filepath.Ext(d.Name()))]
		if !ok {
			return nil
		}
		if opts.Kind != "" && kind != opts.Kind {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		albumID := opts.AlbumID
		if albumID == "" {
			if dir := filepath.Dir(path); dir != root {
				albumID = dir
			}
		}

		assets = append(assets, models.MediaAsset{
			ID:          path,
			URI:         path,
			Kind:        kind,
			DisplayName: d.Name(),
			CreatedAt:   info.ModTime(),
			AlbumID:     albumID,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	return assets, nil
}
