package affiliate

import (
	"github.com/coverbridge/coverbridge/internal/types"
)

// Affiliate is a member under a client (typically an employee). It links
// a user to a client for "own"-scope access checks; only active links
// grant access.
type Affiliate struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	ClientID  string  `json:"client_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email,omitempty"`
	types.BaseModel
}

// IsActive reports whether the link currently grants "own" scope.
func (a *Affiliate) IsActive() bool {
	return a.Status == types.StatusActive
}
