package affiliate

import (
	"context"
)

// Repository defines the interface for affiliate persistence operations.
type Repository interface {
	Create(ctx context.Context, a *Affiliate) error
	// GetByUserAndClient returns the affiliate link for (userID, clientID)
	// regardless of its status, or a not-found error.
	GetByUserAndClient(ctx context.Context, userID, clientID string) (*Affiliate, error)
	Update(ctx context.Context, a *Affiliate) error
}
