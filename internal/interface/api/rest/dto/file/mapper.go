package file

import (
	"github.com/google/uuid"

	"pdf-collab-api/internal/domain/file"
)

func ToResponseFile(fDomain file.File) File {
	// keep json "shared_with" an array, never null
	shared := fDomain.SharedWith
	if shared == nil {
		shared = []uuid.UUID{}
	}

	var f = File{
		UUID:         fDomain.UUID,
		FileName:     fDomain.FileName,
		OriginalName: fDomain.OriginalName,
		MimeType:     fDomain.MimeType,
		SizeBytes:    fDomain.SizeBytes,
		UploadedBy:   fDomain.OwnerUUID,
		SharedWith:   shared,
		DownloadURL:  fDomain.DownloadURL,
		UploadedAt:   fDomain.UploadedAt,
	}

	return f
}

func ToResponseFiles(fsDomain file.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}
