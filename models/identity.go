package models

// Identity is the authenticated session supplied by the external auth
// capability. A nil *Identity means the caller is not signed in.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == "admin"
}
