package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/telephoto/internal/common"
	"github.com/dmitrijs2005/telephoto/internal/models"
)

func (r *SQLiteRepository) CreateFolder(ctx context.Context, name string) error {
	query := `insert into folders (name, created_at) values (?, ?) on conflict(name) do nothing`

	_, err := r.db.ExecContext(ctx, query, name, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Folders(ctx context.Context) ([]models.Folder, error) {
	rows, err := r.db.QueryContext(ctx, `select id, name, created_at from folders order by created_at desc, id desc`)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var result []models.Folder
	for rows.Next() {
		var (
			f         models.Folder
			createdAt string
		)
		if err := rows.Scan(&f.ID, &f.Name, &createdAt); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		f.CreatedAt = ts
		result = append(result, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) AddToFolder(ctx context.Context, assetURI, folderName string) error {
	var fileID int64
	err := r.db.QueryRowContext(ctx, `select id from uploaded_files where file_uri = ?`, assetURI).Scan(&fileID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("file %s: %w", assetURI, common.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lookup file: %w", err)
	}

	var folderID int64
	err = r.db.QueryRowContext(ctx, `select id from folders where name = ?`, folderName).Scan(&folderID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("folder %s: %w", folderName, common.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lookup folder: %w", err)
	}

	query := `insert into file_folders (file_id, folder_id) values (?, ?)
			on conflict(file_id, folder_id) do nothing`
	if _, err := r.db.ExecContext(ctx, query, fileID, folderID); err != nil {
		return fmt.Errorf("link file to folder: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) FilesInFolder(ctx context.Context, folderName string) ([]models.UploadRecord, error) {
	query := `select f.id, f.file_uri, f.remote_file_id, f.media_kind, f.file_name, f.uploaded_at
			from uploaded_files f
			join file_folders ff on ff.file_id = f.id
			join folders d on d.id = ff.folder_id
			where d.name = ?
			order by f.uploaded_at desc, f.id desc`

	rows, err := r.db.QueryContext(ctx, query, folderName)
	if err != nil {
		return nil, fmt.Errorf("list folder files: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}
