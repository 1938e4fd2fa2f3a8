package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID        uint64
		UUID      uuid.UUID
		OwnerUUID uuid.UUID

		Bucket       string
		StorageKey   string
		FileName     string
		OriginalName string
		MimeType     string
		SizeBytes    uint64
		DownloadURL  string
		SharedWith   []uuid.UUID

		UploadedAt time.Time
	}
	Files []*File
)
