package file

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-collab-api/internal/domain/file"
	"pdf-collab-api/internal/domain/user"
)

var fileColumns = []string{
	"id", "uuid", "owner_uuid", "bucket", "storage_key", "file_name",
	"original_name", "mime_type", "size_bytes", "download_url", "shared_with", "uploaded_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func fileRow(f *File) *pgxmock.Rows {
	return pgxmock.NewRows(fileColumns).AddRow(
		f.ID, f.UUID, f.OwnerUUID, f.Bucket, f.StorageKey, f.FileName,
		f.OriginalName, f.MimeType, f.SizeBytes, f.DownloadURL, f.SharedWith, f.UploadedAt,
	)
}

func sampleFile() *File {
	return &File{
		ID:           42,
		UUID:         uuid.New(),
		OwnerUUID:    uuid.New(),
		Bucket:       "pdfcollab",
		StorageKey:   "uploads/2026/09/01/abc/1756000000-report.pdf",
		FileName:     "1756000000-report.pdf",
		OriginalName: "report.pdf",
		MimeType:     "application/pdf",
		SizeBytes:    2048,
		DownloadURL:  "https://s3.local/pdfcollab/uploads/2026/09/01/abc/1756000000-report.pdf",
		SharedWith:   []uuid.UUID{},
		UploadedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestRepository_FetchFileByUUID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		want := sampleFile()

		mock.ExpectQuery(SelectFileByUUID).
			WithArgs(want.UUID.String()).
			WillReturnRows(fileRow(want))

		repo := NewRepository(mock)
		got, err := repo.FetchFileByUUID(context.Background(), want.UUID)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want.UUID, got.UUID)
		assert.Equal(t, want.OwnerUUID, got.OwnerUUID)
		assert.Equal(t, want.OriginalName, got.OriginalName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent row maps to nil, nil", func(t *testing.T) {
		mock := newMock(t)
		id := uuid.New()

		mock.ExpectQuery(SelectFileByUUID).
			WithArgs(id.String()).
			WillReturnRows(pgxmock.NewRows(fileColumns))

		repo := NewRepository(mock)
		got, err := repo.FetchFileByUUID(context.Background(), id)

		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_SearchFilesByOwner(t *testing.T) {
	mock := newMock(t)
	owner := user.ID(7)
	f := sampleFile()

	mock.ExpectQuery(SearchFilesByOwner).
		WithArgs(owner, "report").
		WillReturnRows(fileRow(f))

	repo := NewRepository(mock)
	got, err := repo.SearchFilesByOwner(context.Background(), owner, "report")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, f.OriginalName, got[0].OriginalName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateFile(t *testing.T) {
	mock := newMock(t)
	owner := user.ID(7)
	f := sampleFile()

	mock.ExpectQuery(InsertFile).
		WithArgs(
			owner, f.Bucket, f.StorageKey, f.FileName, f.OriginalName,
			f.MimeType, f.SizeBytes, f.DownloadURL,
		).
		WillReturnRows(fileRow(f))

	repo := NewRepository(mock)
	got, err := repo.CreateFile(context.Background(), owner, &file.File{
		Bucket:       f.Bucket,
		StorageKey:   f.StorageKey,
		FileName:     f.FileName,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		SizeBytes:    f.SizeBytes,
		DownloadURL:  f.DownloadURL,
	})

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, f.UUID, got.UUID)
	assert.Equal(t, f.StorageKey, got.StorageKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AppendSharedUser(t *testing.T) {
	t.Run("target appended", func(t *testing.T) {
		mock := newMock(t)
		target := uuid.New()
		f := sampleFile()
		f.SharedWith = []uuid.UUID{target}

		mock.ExpectQuery(AppendSharedUser).
			WithArgs(f.UUID.String(), target.String()).
			WillReturnRows(fileRow(f))

		repo := NewRepository(mock)
		got, err := repo.AppendSharedUser(context.Background(), f.UUID, target)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, []uuid.UUID{target}, got.SharedWith)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown file maps to nil, nil", func(t *testing.T) {
		mock := newMock(t)
		fileUUID, target := uuid.New(), uuid.New()

		mock.ExpectQuery(AppendSharedUser).
			WithArgs(fileUUID.String(), target.String()).
			WillReturnRows(pgxmock.NewRows(fileColumns))

		repo := NewRepository(mock)
		got, err := repo.AppendSharedUser(context.Background(), fileUUID, target)

		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FetchFilesSharedWith(t *testing.T) {
	mock := newMock(t)
	caller := uuid.New()
	f := sampleFile()
	f.SharedWith = []uuid.UUID{caller}

	mock.ExpectQuery(SelectFilesSharedWith).
		WithArgs(caller.String()).
		WillReturnRows(fileRow(f))

	repo := NewRepository(mock)
	got, err := repo.FetchFilesSharedWith(context.Background(), caller)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].SharedWithContains(caller))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchFilesByOwner_QueryError(t *testing.T) {
	mock := newMock(t)
	owner := user.ID(7)

	mock.ExpectQuery(SelectFilesByOwner).
		WithArgs(owner).
		WillReturnError(errors.New("connection reset"))

	repo := NewRepository(mock)
	got, err := repo.FetchFilesByOwner(context.Background(), owner)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
