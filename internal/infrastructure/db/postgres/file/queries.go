package file

// Owner rows are keyed internally by users.id; responses and ownership
// checks need the owner's public uuid, hence the join on every read.
const (
	SelectFileByUUID = `
		SELECT f.id, f.uuid, u.uuid, f.bucket, f.storage_key, f.file_name, f.original_name, f.mime_type, f.size_bytes, f.download_url, f.shared_with, f.uploaded_at
		FROM files f
		JOIN users u ON u.id = f.owner_id
		WHERE f.uuid = $1
	`
	SelectFilesByOwner = `
		SELECT f.id, f.uuid, u.uuid, f.bucket, f.storage_key, f.file_name, f.original_name, f.mime_type, f.size_bytes, f.download_url, f.shared_with, f.uploaded_at
		FROM files f
		JOIN users u ON u.id = f.owner_id
		WHERE f.owner_id = $1
		ORDER BY f.uploaded_at DESC
	`
	SearchFilesByOwner = `
		SELECT f.id, f.uuid, u.uuid, f.bucket, f.storage_key, f.file_name, f.original_name, f.mime_type, f.size_bytes, f.download_url, f.shared_with, f.uploaded_at
		FROM files f
		JOIN users u ON u.id = f.owner_id
		WHERE f.owner_id = $1 AND f.original_name ILIKE '%' || $2 || '%'
		ORDER BY f.uploaded_at DESC
	`
	SelectFilesSharedWith = `
		SELECT f.id, f.uuid, u.uuid, f.bucket, f.storage_key, f.file_name, f.original_name, f.mime_type, f.size_bytes, f.download_url, f.shared_with, f.uploaded_at
		FROM files f
		JOIN users u ON u.id = f.owner_id
		WHERE $1::uuid = ANY(f.shared_with)
		ORDER BY f.uploaded_at DESC
	`
	InsertFile = `
		WITH ins AS (
			INSERT INTO files (owner_id, bucket, storage_key, file_name, original_name, mime_type, size_bytes, download_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, uuid, owner_id, bucket, storage_key, file_name, original_name, mime_type, size_bytes, download_url, shared_with, uploaded_at
		)
		SELECT ins.id, ins.uuid, u.uuid, ins.bucket, ins.storage_key, ins.file_name, ins.original_name, ins.mime_type, ins.size_bytes, ins.download_url, ins.shared_with, ins.uploaded_at
		FROM ins
		JOIN users u ON u.id = ins.owner_id
	`
	// Single-statement set-add: concurrent shares on the same row cannot
	// lose updates and re-sharing an existing target changes nothing.
	AppendSharedUser = `
		UPDATE files f
		SET shared_with = CASE
			WHEN $2::uuid = ANY(f.shared_with) THEN f.shared_with
			ELSE array_append(f.shared_with, $2::uuid)
		END
		FROM users u
		WHERE f.uuid = $1 AND u.id = f.owner_id
		RETURNING f.id, f.uuid, u.uuid, f.bucket, f.storage_key, f.file_name, f.original_name, f.mime_type, f.size_bytes, f.download_url, f.shared_with, f.uploaded_at
	`
)
