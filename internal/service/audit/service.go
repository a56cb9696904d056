// Package audit records catalog mutations and serves the audit trail.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strconv"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

type auditRepo interface {
	Append(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error)
	List(ctx context.Context, q domain.AuditQuery) (domain.Page[domain.AuditEntry], error)
	Get(ctx context.Context, id int64) (domain.AuditEntry, error)
	TableStats(ctx context.Context) ([]domain.AuditTableStats, error)
	ActorStats(ctx context.Context) ([]domain.AuditActorStats, error)
}

// bookkeepingField is left out of snapshots so diffs only report
// caller-visible changes.
const bookkeepingField = "data_modificacao"

// Event describes one mutation to record. Before and After are domain records
// or plain maps; nil means the record did not exist on that side.
type Event struct {
	Table    string
	RecordID int64
	Kind     domain.AuditKind
	Before   any
	After    any
	Actor    string
	Note     *string
}

// Recorder persists audit entries and exposes the audit trail.
type Recorder struct {
	repo         auditRepo
	defaultActor string
	log          *slog.Logger
}

// NewRecorder creates a Recorder. An empty defaultActor falls back to
// domain.DefaultActor.
func NewRecorder(log *slog.Logger, repo auditRepo, defaultActor string) *Recorder {
	if defaultActor == "" {
		defaultActor = domain.DefaultActor
	}
	return &Recorder{
		repo:         repo,
		defaultActor: defaultActor,
		log:          log.With("service", "audit"),
	}
}

// Record appends an entry for ev. A failure is logged and returned as an
// *domain.AuditWriteError; the mutation it describes is never undone.
func (r *Recorder) Record(ctx context.Context, ev Event) error {
	entry, err := r.entry(ev)
	if err == nil {
		_, err = r.repo.Append(ctx, entry)
	}
	if err == nil {
		return nil
	}

	werr := &domain.AuditWriteError{
		Table:    ev.Table,
		RecordID: strconv.FormatInt(ev.RecordID, 10),
		Kind:     ev.Kind,
		Err:      err,
	}
	r.log.ErrorContext(ctx, "audit write failed",
		slog.String("table", werr.Table),
		slog.String("record_id", werr.RecordID),
		slog.String("kind", string(werr.Kind)),
		slog.String("error", err.Error()),
	)
	return werr
}

func (r *Recorder) entry(ev Event) (domain.AuditEntry, error) {
	if !ev.Kind.IsValid() {
		return domain.AuditEntry{}, fmt.Errorf("unknown audit kind %q", ev.Kind)
	}
	before, err := Snapshot(ev.Before)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	after, err := Snapshot(ev.After)
	if err != nil {
		return domain.AuditEntry{}, err
	}

	actor := ev.Actor
	if actor == "" {
		actor = r.defaultActor
	}

	return domain.AuditEntry{
		Table:         ev.Table,
		RecordID:      strconv.FormatInt(ev.RecordID, 10),
		Kind:          ev.Kind,
		ChangedFields: ChangedFields(before, after),
		Before:        before,
		After:         after,
		Actor:         actor,
		Note:          ev.Note,
	}, nil
}

// Snapshot converts v to its JSON object form without data_modificacao.
// A nil v yields a nil map.
func Snapshot(v any) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	delete(out, bookkeepingField)
	return out, nil
}

// ChangedFields returns, sorted, the keys of after whose value differs from
// the same key in before. It is empty when either side is missing.
func ChangedFields(before, after map[string]any) []string {
	changed := []string{}
	if before == nil || after == nil {
		return changed
	}
	for k, v := range after {
		old, ok := before[k]
		if !ok || !reflect.DeepEqual(old, v) {
			changed = append(changed, k)
		}
	}
	slices.Sort(changed)
	return changed
}

// List returns one page of audit entries, newest first.
func (r *Recorder) List(ctx context.Context, q domain.AuditQuery) (domain.Page[domain.AuditEntry], error) {
	if q.Kind != "" && !q.Kind.IsValid() {
		return domain.Page[domain.AuditEntry]{}, domain.NewValidationError("operacao", "unknown operation")
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return domain.Page[domain.AuditEntry]{}, domain.NewValidationError("data_fim", "must not precede data_inicio")
	}
	return r.repo.List(ctx, q)
}

// Get returns one audit entry.
func (r *Recorder) Get(ctx context.Context, id int64) (domain.AuditEntry, error) {
	return r.repo.Get(ctx, id)
}

// TableStats counts entries per audited table.
func (r *Recorder) TableStats(ctx context.Context) ([]domain.AuditTableStats, error) {
	return r.repo.TableStats(ctx)
}

// ActorStats summarizes activity per actor.
func (r *Recorder) ActorStats(ctx context.Context) ([]domain.AuditActorStats, error) {
	return r.repo.ActorStats(ctx)
}
