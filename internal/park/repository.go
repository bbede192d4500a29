package park

import (
	"context"
)

// Repository defines the interface for park storage reads.
type Repository interface {
	Query(ctx context.Context, q Query) ([]Record, error)
}
