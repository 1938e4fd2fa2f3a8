package user

const (
	SelectUserByUUID = `
		SELECT id, uuid, name, email, password_hash, created_at
		FROM users
		WHERE uuid = $1
	`
	SelectUserByEmail = `
		SELECT id, uuid, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING
		  id, uuid, name, email, password_hash, created_at
	`
	SelectIdByUUID = `SELECT id FROM users WHERE uuid = $1::uuid`
)
