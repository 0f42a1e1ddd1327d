package insurer

import (
	"context"
)

// Repository defines the interface for insurer persistence operations.
type Repository interface {
	Create(ctx context.Context, i *Insurer) error
	Get(ctx context.Context, id string) (*Insurer, error)
	Update(ctx context.Context, i *Insurer) error
}
