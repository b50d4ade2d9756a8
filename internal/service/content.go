// Package service holds the business rules around the content collections:
// validation, defaults, ordering and the side effects of a change.
package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/iliyamo/storefront-api/internal/apperror"
	"github.com/iliyamo/storefront-api/internal/audit"
	"github.com/iliyamo/storefront-api/internal/auth"
	"github.com/iliyamo/storefront-api/internal/model"
	"github.com/iliyamo/storefront-api/internal/repository"
	"github.com/iliyamo/storefront-api/internal/validation"
)

// Record is implemented by every stored entity.
type Record interface {
	GetID() string
}

// Content is the generic CRUD service for one collection. E is the stored
// record, I its create shape and P its patch shape.
type Content[E Record, I model.Builder[E], P model.Patch] struct {
	entity   string
	repo     repository.Repository[E]
	recorder audit.Recorder
	logger   *slog.Logger
	now      func() time.Time

	afterCreate func(ctx context.Context, item E)
}

// NewContent builds a service for entity (the name used in audit events).
func NewContent[E Record, I model.Builder[E], P model.Patch](entity string, repo repository.Repository[E], rec audit.Recorder, logger *slog.Logger) *Content[E, I, P] {
	if rec == nil {
		rec = audit.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Content[E, I, P]{entity: entity, repo: repo, recorder: rec, logger: logger, now: time.Now}
}

// Entity returns the name used in audit events.
func (s *Content[E, I, P]) Entity() string { return s.entity }

// List returns the records matching filter. Records with a display order
// come back sorted ascending by it; others keep the store's order.
func (s *Content[E, I, P]) List(ctx context.Context, filter repository.Filter) ([]E, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortByOrder(items)
	return items, nil
}

func (s *Content[E, I, P]) Get(ctx context.Context, id string) (E, error) {
	return s.repo.Get(ctx, id)
}

// Create validates in, applies defaults and persists the result.
func (s *Content[E, I, P]) Create(ctx context.Context, in I) (E, error) {
	var zero E
	if err := validation.Struct(in); err != nil {
		return zero, err
	}
	// BSON dates hold milliseconds; truncating keeps create and get equal.
	created, err := s.repo.Create(ctx, in.Build(s.now().UTC().Truncate(time.Millisecond)))
	if err != nil {
		return zero, err
	}
	s.record(ctx, audit.ActionCreated, created.GetID(), nil)
	if s.afterCreate != nil {
		s.afterCreate(ctx, created)
	}
	return created, nil
}

// Update applies the supplied fields of p. Unknown ids are NotFound and an
// empty patch is a validation error; neither writes anything.
func (s *Content[E, I, P]) Update(ctx context.Context, id string, p P) (E, error) {
	var zero E
	if err := validation.Struct(p); err != nil {
		return zero, err
	}
	fields := p.Fields()
	if len(fields) == 0 {
		return zero, apperror.Invalid("body", "required", "at least one field must be supplied")
	}
	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return zero, err
	}
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	s.record(ctx, audit.ActionUpdated, id, names)
	return updated, nil
}

func (s *Content[E, I, P]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, audit.ActionDeleted, id, nil)
	return nil
}

// Count returns the number of stored records.
func (s *Content[E, I, P]) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Content[E, I, P]) record(ctx context.Context, action, id string, fields []string) {
	ev := audit.Event{
		Entity: s.entity,
		Action: action,
		ID:     id,
		Actor:  auth.Subject(ctx),
		Fields: fields,
		At:     s.now().UTC(),
	}
	if err := s.recorder.Record(ctx, ev); err != nil {
		s.logger.Warn("audit record failed", "entity", s.entity, "action", action, "id", id, "error", err)
	}
}

func sortByOrder[E any](items []E) {
	if len(items) < 2 {
		return
	}
	if _, ok := any(items[0]).(model.Ordered); !ok {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return any(items[i]).(model.Ordered).Order() < any(items[j]).(model.Ordered).Order()
	})
}
