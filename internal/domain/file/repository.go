package file

import (
	"context"

	"github.com/google/uuid"

	"pdf-collab-api/internal/domain/user"
)

type Repository interface {
	FetchFileByUUID(ctx context.Context, fileUUID uuid.UUID) (*File, error)
	FetchFilesByOwner(ctx context.Context, ownerID user.ID) (Files, error)
	SearchFilesByOwner(ctx context.Context, ownerID user.ID, query string) (Files, error)
	FetchFilesSharedWith(ctx context.Context, userUUID uuid.UUID) (Files, error)
	CreateFile(ctx context.Context, ownerID user.ID, req *File) (*File, error)
	// AppendSharedUser adds target to the file share list as a single
	// atomic set-add; re-sharing an already shared target is a no-op.
	AppendSharedUser(ctx context.Context, fileUUID, target uuid.UUID) (*File, error)
}
