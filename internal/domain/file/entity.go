package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	// File is an uploaded PDF: storage reference plus ownership and
	// the set of users the owner granted read access to.
	File struct {
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

// SharedWithContains reports whether the share list already holds target.
func (f *File) SharedWithContains(target uuid.UUID) bool {
	for _, id := range f.SharedWith {
		if id == target {
			return true
		}
	}
	return false
}
