package client

import (
	"time"
)

// Assignment links a user to a client they may act on under the "client"
// access scope. Presence of the row is the entire grant; removing it
// revokes access on the next call.
type Assignment struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id"`
	ClientID       string    `json:"client_id"`
	AssignedBy     string    `json:"assigned_by"`
	AssignedAt     time.Time `json:"assigned_at"`
}
