package file

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pdf-collab-api/internal/domain/file"
	"pdf-collab-api/internal/domain/user"
	"pdf-collab-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) file.Repository {
	return &Repository{db: db}
}

func scanFile(row pgx.Row) (*File, error) {
	f := new(File)
	err := row.Scan(
		&f.ID,
		&f.UUID,
		&f.OwnerUUID,

		&f.Bucket,
		&f.StorageKey,
		&f.FileName,
		&f.OriginalName,
		&f.MimeType,
		&f.SizeBytes,
		&f.DownloadURL,
		&f.SharedWith,

		&f.UploadedAt,
	)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (r *Repository) queryFiles(ctx context.Context, sql string, args ...any) (file.Files, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) FetchFileByUUID(ctx context.Context, fileUUID uuid.UUID) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, SelectFileByUUID, fileUUID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchFilesByOwner(ctx context.Context, ownerID user.ID) (file.Files, error) {
	return r.queryFiles(ctx, SelectFilesByOwner, ownerID)
}

func (r *Repository) SearchFilesByOwner(ctx context.Context, ownerID user.ID, query string) (file.Files, error) {
	return r.queryFiles(ctx, SearchFilesByOwner, ownerID, query)
}

func (r *Repository) FetchFilesSharedWith(ctx context.Context, userUUID uuid.UUID) (file.Files, error) {
	return r.queryFiles(ctx, SelectFilesSharedWith, userUUID.String())
}

func (r *Repository) CreateFile(ctx context.Context, ownerID user.ID, req *file.File) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(
		ctx,
		InsertFile,
		ownerID, req.Bucket, req.StorageKey, req.FileName, req.OriginalName, req.MimeType, req.SizeBytes, req.DownloadURL,
	))
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) AppendSharedUser(ctx context.Context, fileUUID, target uuid.UUID) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, AppendSharedUser, fileUUID.String(), target.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}
