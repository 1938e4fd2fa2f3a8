package file

import (
	domain "pdf-collab-api/internal/domain/file"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		UUID:      model.UUID,
		OwnerUUID: model.OwnerUUID,

		Bucket:       model.Bucket,
		StorageKey:   model.StorageKey,
		FileName:     model.FileName,
		OriginalName: model.OriginalName,
		MimeType:     model.MimeType,
		SizeBytes:    model.SizeBytes,
		DownloadURL:  model.DownloadURL,
		SharedWith:   model.SharedWith,

		UploadedAt: model.UploadedAt,
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
