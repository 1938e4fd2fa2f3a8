package file

type ShareRequest struct {
	SharedWithUserID string `json:"shared_with_user_id"`
}
