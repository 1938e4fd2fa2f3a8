package ports

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"pdf-collab-api/internal/domain/file"
	"pdf-collab-api/internal/domain/user"
)

type FileService interface {
	UploadFile(ctx context.Context, ownerUUID user.UUID, in *multipart.FileHeader) (*file.File, error)
	FindOwnedFiles(ctx context.Context, ownerUUID user.UUID) (file.Files, error)
	SearchOwnedFiles(ctx context.Context, ownerUUID user.UUID, query string) (file.Files, error)
	FindSharedWithMe(ctx context.Context, userUUID user.UUID) (file.Files, error)
	ShareFile(ctx context.Context, callerUUID user.UUID, fileUUID, target uuid.UUID) (*file.File, error)
	DownloadURL(ctx context.Context, callerUUID user.UUID, fileUUID uuid.UUID) (string, error)
}
