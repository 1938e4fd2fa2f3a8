package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		UUID         uuid.UUID   `json:"uuid"`
		FileName     string      `json:"filename"`
		OriginalName string      `json:"original_name"`
		MimeType     string      `json:"mime_type"`
		SizeBytes    uint64      `json:"size_bytes"`
		UploadedBy   uuid.UUID   `json:"uploaded_by"`
		SharedWith   []uuid.UUID `json:"shared_with"`
		DownloadURL  string      `json:"download_url"`
		UploadedAt   time.Time   `json:"uploaded_at"`
	}
	Files        []File
	ResponseData struct {
		Data Files `json:"data"`
	}
)
