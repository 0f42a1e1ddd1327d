package client

import (
	"context"
)

// Repository defines the interface for client persistence operations.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, c *Client) error
}

// AssignmentRepository persists user↔client grants for the "client"
// access scope.
type AssignmentRepository interface {
	Create(ctx context.Context, a *Assignment) error
	// Get returns the grant for (userID, clientID), or a not-found error.
	Get(ctx context.Context, userID, clientID string) (*Assignment, error)
	Delete(ctx context.Context, a *Assignment) error
}
