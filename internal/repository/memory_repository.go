package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/iliyamo/storefront-api/internal/apperror"
)

// MemoryRepo keeps JSON-encoded documents in process memory. It backs the
// "memory" store driver used for local demos and the service and handler
// tests. Documents are returned in insertion order.
type MemoryRepo[E any, P Identifiable[E]] struct {
	mu         sync.RWMutex
	collection string
	order      []string
	docs       map[string][]byte
}

func NewMemoryRepo[E any, P Identifiable[E]](collection string) *MemoryRepo[E, P] {
	return &MemoryRepo[E, P]{collection: collection, docs: map[string][]byte{}}
}

func (r *MemoryRepo[E, P]) List(_ context.Context, filter Filter) ([]E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]E, 0, len(r.order))
	for _, id := range r.order {
		body := r.docs[id]
		if len(filter) > 0 {
			var fields map[string]any
			if err := json.Unmarshal(body, &fields); err != nil {
				return nil, apperror.Upstream(r.collection+".decode", err)
			}
			if !matches(fields, filter) {
				continue
			}
		}
		var item E
		if err := json.Unmarshal(body, &item); err != nil {
			return nil, apperror.Upstream(r.collection+".decode", err)
		}
		out = append(out, item)
	}
	return out, nil
}

func matches(fields map[string]any, filter Filter) bool {
	for k, want := range filter {
		if fmt.Sprint(fields[k]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func (r *MemoryRepo[E, P]) Get(_ context.Context, id string) (E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out E
	body, ok := r.docs[id]
	if !ok {
		return out, notFound(r.collection, id)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, apperror.Upstream(r.collection+".decode", err)
	}
	return out, nil
}

func (r *MemoryRepo[E, P]) Create(_ context.Context, item E) (E, error) {
	id := uuid.NewString()
	P(&item).SetID(id)
	body, err := json.Marshal(item)
	if err != nil {
		return item, apperror.Upstream(r.collection+".encode", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[id] = body
	r.order = append(r.order, id)
	return item, nil
}

func (r *MemoryRepo[E, P]) Update(_ context.Context, id string, fields map[string]any) (E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out E
	body, ok := r.docs[id]
	if !ok {
		return out, notFound(r.collection, id)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return out, apperror.Upstream(r.collection+".decode", err)
	}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return out, apperror.Upstream(r.collection+".encode", err)
		}
		doc[k] = raw
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return out, apperror.Upstream(r.collection+".encode", err)
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, apperror.Upstream(r.collection+".decode", err)
	}
	r.docs[id] = merged
	return out, nil
}

func (r *MemoryRepo[E, P]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return notFound(r.collection, id)
	}
	delete(r.docs, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepo[E, P]) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = map[string][]byte{}
	r.order = nil
	return nil
}

func (r *MemoryRepo[E, P]) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.docs)), nil
}
