package auth

import "piclips/internal/models"

// Identity is the authenticated caller of a request. Handlers receive it
// from the auth middleware and pass it into services explicitly.
type Identity struct {
	AccountID string
	Username  string
	Role      string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}
