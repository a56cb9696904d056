// Package catalog orchestrates catalog mutations: validate, write through the
// entity repository, then record the audit entry.
package catalog

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
	"github.com/heartmarshall/orbis-catalog/internal/service/audit"
	"github.com/heartmarshall/orbis-catalog/pkg/ctxutil"
)

type validator interface {
	Validate() error
}

type entityRepo[E domain.Record, C, U any] interface {
	Table() string
	List(ctx context.Context, q domain.ListQuery) (domain.Page[E], error)
	Get(ctx context.Context, id int64) (E, error)
	Create(ctx context.Context, in C) (E, error)
	Update(ctx context.Context, id int64, patch U) (E, E, error)
	Delete(ctx context.Context, id int64) (E, error)
}

type toggler[E domain.Record] interface {
	FlagColumn() string
	SetActive(ctx context.Context, id int64, active bool) (bool, E, error)
}

type recorder interface {
	Record(ctx context.Context, ev audit.Event) error
}

// Service runs the generic catalog operations for one entity.
type Service[E domain.Record, C, U validator] struct {
	repo   entityRepo[E, C, U]
	toggle toggler[E]
	audit  recorder
	log    *slog.Logger
}

// NewService creates a Service. Activate and Deactivate are available when
// repo also implements SetActive.
func NewService[E domain.Record, C, U validator](
	log *slog.Logger,
	repo entityRepo[E, C, U],
	audit recorder,
) *Service[E, C, U] {
	s := &Service[E, C, U]{
		repo:  repo,
		audit: audit,
		log:   log.With("service", "catalog", "table", repo.Table()),
	}
	if t, ok := repo.(toggler[E]); ok {
		s.toggle = t
	}
	return s
}

// Table returns the storage table the service manages.
func (s *Service[E, C, U]) Table() string { return s.repo.Table() }

// Toggleable reports whether the entity has an active flag.
func (s *Service[E, C, U]) Toggleable() bool { return s.toggle != nil }

// List returns one page of records matching q.
func (s *Service[E, C, U]) List(ctx context.Context, q domain.ListQuery) (domain.Page[E], error) {
	return s.repo.List(ctx, q)
}

// Get returns a record by id.
func (s *Service[E, C, U]) Get(ctx context.Context, id int64) (E, error) {
	return s.repo.Get(ctx, id)
}

// Create validates in, stores it and records a CREATE entry.
func (s *Service[E, C, U]) Create(ctx context.Context, in C) (E, error) {
	var zero E
	if err := in.Validate(); err != nil {
		return zero, err
	}

	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return zero, err
	}

	s.record(ctx, created.RecordID(), domain.AuditCreate, nil, created)
	s.log.InfoContext(ctx, "record created", s.attrs(ctx, created.RecordID())...)
	return created, nil
}

// Update validates patch, merges it over the stored record and records an
// UPDATE entry with both states.
func (s *Service[E, C, U]) Update(ctx context.Context, id int64, patch U) (E, error) {
	var zero E
	if err := patch.Validate(); err != nil {
		return zero, err
	}

	before, after, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return zero, err
	}

	s.record(ctx, id, domain.AuditUpdate, before, after)
	s.log.InfoContext(ctx, "record updated", s.attrs(ctx, id)...)
	return after, nil
}

// Delete removes a record permanently and records a DELETE entry.
func (s *Service[E, C, U]) Delete(ctx context.Context, id int64) (E, error) {
	var zero E
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return zero, err
	}

	s.record(ctx, id, domain.AuditDelete, removed, nil)
	s.log.InfoContext(ctx, "record deleted", s.attrs(ctx, id)...)
	return removed, nil
}

// Activate sets the active flag.
func (s *Service[E, C, U]) Activate(ctx context.Context, id int64) (E, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate clears the active flag. The record stays readable.
func (s *Service[E, C, U]) Deactivate(ctx context.Context, id int64) (E, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service[E, C, U]) setActive(ctx context.Context, id int64, on bool) (E, error) {
	var zero E
	if s.toggle == nil {
		return zero, domain.NewValidationError("ativo", s.repo.Table()+" has no active flag")
	}

	was, after, err := s.toggle.SetActive(ctx, id, on)
	if err != nil {
		return zero, err
	}

	kind, msg := domain.AuditActivate, "record activated"
	if !on {
		kind, msg = domain.AuditDeactivate, "record deactivated"
	}
	flag := s.toggle.FlagColumn()
	s.record(ctx, id, kind, map[string]any{flag: was}, map[string]any{flag: on})
	s.log.InfoContext(ctx, msg, s.attrs(ctx, id)...)
	return after, nil
}

// record writes the audit entry. Failures are logged by the recorder and do
// not affect the committed mutation.
func (s *Service[E, C, U]) record(ctx context.Context, id int64, kind domain.AuditKind, before, after any) {
	actor, _ := ctxutil.ActorFromCtx(ctx)
	_ = s.audit.Record(ctx, audit.Event{
		Table:    s.repo.Table(),
		RecordID: id,
		Kind:     kind,
		Before:   before,
		After:    after,
		Actor:    actor,
	})
}

func (s *Service[E, C, U]) attrs(ctx context.Context, id int64) []any {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		actor = domain.DefaultActor
	}
	return []any{slog.Int64("id", id), slog.String("actor", actor)}
}
