// Package repository translates typed content records to and from the
// document store. Every backend exposes the same Repository contract and
// identifies documents by the store's own opaque string ids; no numeric id
// is ever synthesised from them.
package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/storefront-api/internal/apperror"
)

// Filter is an equality match on document field names. A nil or empty
// filter matches every document in the collection.
type Filter map[string]any

// Identifiable constrains the pointer form of a record so generic backends
// can assign the id the store generated.
type Identifiable[E any] interface {
	*E
	SetID(id string)
}

// Repository is the persistence contract for one collection. Listing order
// is whatever the store returns; callers that need an order sort themselves.
// Update and Delete on a missing id return an error matching
// apperror.ErrNotFound and never create a record.
type Repository[E any] interface {
	List(ctx context.Context, filter Filter) ([]E, error)
	Get(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, item E) (E, error)
	Update(ctx context.Context, id string, fields map[string]any) (E, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

func notFound(collection, id string) error {
	return fmt.Errorf("%s %q: %w", collection, id, apperror.ErrNotFound)
}
