package hr

import "context"

// Store is the data layer every screen reads from and mutates through.
// Implementations must honour ctx cancellation.
type Store interface {
	List(ctx context.Context, e Entity) ([]Record, error)
	Create(ctx context.Context, e Entity, payload Record) (Record, error)
	Update(ctx context.Context, e Entity, id string, payload Record) (Record, error)
	Delete(ctx context.Context, e Entity, id string) error
}

// Getter is implemented by stores that can fetch one record without listing.
type Getter interface {
	Get(ctx context.Context, e Entity, id string) (Record, error)
}
