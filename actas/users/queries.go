package users

const (
	userColumns = `id, name, email, external_id, avatar_url, email_verified_at, created_at, updated_at`

	queryFindByExternalID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE external_id = $1
	`

	queryFindByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	queryCreate = `
		INSERT INTO users (name, email, external_id, avatar_url, email_verified_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	queryUpdateAvatar = `
		UPDATE users
		SET avatar_url = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns

	queryList = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	queryCount = `
		SELECT COUNT(*) FROM users
	`
)
