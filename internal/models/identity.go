package models

// Identity is the authenticated user attached to a request after the session
// middleware verified the token. Handlers read it from the request context
// instead of re-parsing the token.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}
