package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/dmitrijs2005/telephoto/internal/common"
	"github.com/dmitrijs2005/telephoto/internal/dbx"
	"github.com/dmitrijs2005/telephoto/internal/filex"
	"github.com/dmitrijs2005/telephoto/internal/ledger/migrations"
	"github.com/dmitrijs2005/telephoto/internal/models"
)

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (or creates) the ledger database at path and migrates it.
// A single connection serializes writes; reads racing a concurrent write
// may under-report an upload, which the pipeline tolerates, but never
// over-report one.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}

	return db, nil
}

// SQLiteRepository implements Repository over a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) IsUploaded(ctx context.Context, assetURI string) (bool, error) {
	query := `select 1 from uploaded_files where file_uri = ?`

	var one int
	err := r.db.QueryRowContext(ctx, query, assetURI).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		// Conservative default: report "not uploaded" so the asset is
		// retried rather than silently skipped, with the fault alongside.
		return false, fmt.Errorf("check upload status: %w", err)
	}
	return true, nil
}

func (r *SQLiteRepository) MarkUploaded(ctx context.Context, assetURI, remoteFileID string, kind models.MediaKind, displayName string) error {
	query := `insert into uploaded_files (file_uri, remote_file_id, media_kind, file_name, uploaded_at)
			values (?, ?, ?, ?, ?)
			on conflict(file_uri) do nothing`

	_, err := r.db.ExecContext(ctx, query,
		assetURI, remoteFileID, string(kind), displayName, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("mark uploaded: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, assetURI string) (models.UploadRecord, error) {
	query := `select ` + recordColumns + ` from uploaded_files where file_uri = ?`

	var (
		rec        models.UploadRecord
		kind       string
		uploadedAt string
	)
	err := r.db.QueryRowContext(ctx, query, assetURI).Scan(
		&rec.ID, &rec.AssetURI, &rec.RemoteFileID, &kind, &rec.DisplayName, &uploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UploadRecord{}, common.ErrNotFound
	}
	if err != nil {
		return models.UploadRecord{}, fmt.Errorf("get upload: %w", err)
	}

	rec.Kind = models.MediaKind(kind)
	ts, err := time.Parse(time.RFC3339, uploadedAt)
	if err != nil {
		return models.UploadRecord{}, fmt.Errorf("parse uploaded_at %q: %w", uploadedAt, err)
	}
	rec.UploadedAt = ts
	return rec, nil
}

func (r *SQLiteRepository) RecordText(ctx context.Context, assetURI, text string) error {
	query := `insert into image_text (file_uri, extracted_text)
			values (?, ?)
			on conflict(file_uri) do update set extracted_text = excluded.extracted_text`

	_, err := r.db.ExecContext(ctx, query, assetURI, text)
	if err != nil {
		return fmt.Errorf("record text: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) TextFor(ctx context.Context, assetURI string) (string, error) {
	query := `select extracted_text from image_text where file_uri = ?`

	var text string
	err := r.db.QueryRowContext(ctx, query, assetURI).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get text: %w", err)
	}
	return text, nil
}

func (r *SQLiteRepository) CountUploaded(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `select count(*) from uploaded_files`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count uploaded: %w", err)
	}
	return count, nil
}

const recordColumns = `id, file_uri, remote_file_id, media_kind, file_name, uploaded_at`

func (r *SQLiteRepository) ListUploaded(ctx context.Context, kind models.MediaKind) ([]models.UploadRecord, error) {
	query := `select ` + recordColumns + ` from uploaded_files order by uploaded_at desc, id desc`
	args := []any{}
	if kind != "" {
		query = `select ` + recordColumns + ` from uploaded_files where media_kind = ? order by uploaded_at desc, id desc`
		args = append(args, string(kind))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list uploaded: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *SQLiteRepository) SearchByText(ctx context.Context, query string) ([]models.UploadRecord, error) {
	stmt := `select f.id, f.file_uri, f.remote_file_id, f.media_kind, f.file_name, f.uploaded_at
			from uploaded_files f
			join image_text t on t.file_uri = f.file_uri
			where lower(t.extracted_text) like '%' || lower(?) || '%'
			order by f.uploaded_at desc, f.id desc`

	rows, err := r.db.QueryContext(ctx, stmt, query)
	if err != nil {
		return nil, fmt.Errorf("search by text: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *SQLiteRepository) Remove(ctx context.Context, assetURI string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var fileID int64
		err := tx.QueryRowContext(ctx, `select id from uploaded_files where file_uri = ?`, assetURI).Scan(&fileID)
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lookup upload: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `delete from file_folders where file_id = ?`, fileID); err != nil {
			return fmt.Errorf("unlink folders: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `delete from image_text where file_uri = ?`, assetURI); err != nil {
			return fmt.Errorf("delete text: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `delete from uploaded_files where id = ?`, fileID); err != nil {
			return fmt.Errorf("delete upload: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Stats(ctx context.Context) (models.StorageStats, error) {
	query := `select
			count(*),
			count(case when media_kind = 'image' then 1 end),
			count(case when media_kind = 'video' then 1 end)
		from uploaded_files`

	var s models.StorageStats
	if err := r.db.QueryRowContext(ctx, query).Scan(&s.TotalFiles, &s.Images, &s.Videos); err != nil {
		return models.StorageStats{}, fmt.Errorf("stats: %w", err)
	}
	return s, nil
}

func scanRecords(rows *sql.Rows) ([]models.UploadRecord, error) {
	var result []models.UploadRecord

	for rows.Next() {
		var (
			rec        models.UploadRecord
			kind       string
			uploadedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.AssetURI, &rec.RemoteFileID, &kind, &rec.DisplayName, &uploadedAt); err != nil {
			return nil, err
		}

		rec.Kind = models.MediaKind(kind)
		ts, err := time.Parse(time.RFC3339, uploadedAt)
		if err != nil {
			return nil, fmt.Errorf("parse uploaded_at %q: %w", uploadedAt, err)
		}
		rec.UploadedAt = ts

		result = append(result, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
