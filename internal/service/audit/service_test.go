package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

//go:generate moq -out audit_repo_mock_test.go -pkg audit . auditRepo

func appendOK() *auditRepoMock {
	return &auditRepoMock{
		AppendFunc: func(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error) {
			e.ID = 1
			return e, nil
		},
	}
}

func step(name string, updated time.Time) domain.Step {
	return domain.Step{
		ID:             1,
		Name:           name,
		Centers:        "1010",
		WorkCenters:    []string{"1010"},
		RequiredParams: []string{},
		Active:         true,
		CreatedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:      updated,
	}
}

// ---------------------------------------------------------------------------
// Record
// ---------------------------------------------------------------------------

func TestRecorder_Record_Update(t *testing.T) {
	t.Parallel()

	repo := appendOK()
	rec := NewRecorder(slog.Default(), repo, "")

	before := step("CORTE", time.Now())
	after := step("CORTE LASER", time.Now().Add(time.Minute))

	err := rec.Record(context.Background(), Event{
		Table:    "etapas",
		RecordID: 1,
		Kind:     domain.AuditUpdate,
		Before:   before,
		After:    after,
		Actor:    "ana",
	})
	require.NoError(t, err)

	calls := repo.AppendCalls()
	require.Len(t, calls, 1)
	got := calls[0].E
	assert.Equal(t, "etapas", got.Table)
	assert.Equal(t, "1", got.RecordID)
	assert.Equal(t, domain.AuditUpdate, got.Kind)
	assert.Equal(t, []string{"nome"}, got.ChangedFields, "data_modificacao is not a caller-visible change")
	assert.Equal(t, "CORTE", got.Before["nome"])
	assert.Equal(t, "CORTE LASER", got.After["nome"])
	assert.NotContains(t, got.After, "data_modificacao")
	assert.Equal(t, "ana", got.Actor)
}

func TestRecorder_Record_CreateHasNoChangedFields(t *testing.T) {
	t.Parallel()

	repo := appendOK()
	rec := NewRecorder(slog.Default(), repo, "")

	err := rec.Record(context.Background(), Event{
		Table:    "etapas",
		RecordID: 1,
		Kind:     domain.AuditCreate,
		After:    step("CORTE LASER", time.Now()),
	})
	require.NoError(t, err)

	got := repo.AppendCalls()[0].E
	assert.Nil(t, got.Before)
	assert.Empty(t, got.ChangedFields)
	assert.Equal(t, domain.DefaultActor, got.Actor)
}

func TestRecorder_Record_ConfiguredDefaultActor(t *testing.T) {
	t.Parallel()

	repo := appendOK()
	rec := NewRecorder(slog.Default(), repo, "orbis-batch")

	require.NoError(t, rec.Record(context.Background(), Event{
		Table: "etapas", RecordID: 1, Kind: domain.AuditDelete, Before: map[string]any{"nome": "x"},
	}))
	assert.Equal(t, "orbis-batch", repo.AppendCalls()[0].E.Actor)
}

func TestRecorder_Record_Toggle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		was     bool
		now     bool
		kind    domain.AuditKind
		changed []string
	}{
		{name: "flipped", was: true, now: false, kind: domain.AuditDeactivate, changed: []string{"ativa"}},
		{name: "already in state", was: true, now: true, kind: domain.AuditActivate, changed: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := appendOK()
			rec := NewRecorder(slog.Default(), repo, "")

			require.NoError(t, rec.Record(context.Background(), Event{
				Table:    "etapas",
				RecordID: 1,
				Kind:     tt.kind,
				Before:   map[string]any{"ativa": tt.was},
				After:    map[string]any{"ativa": tt.now},
			}))
			assert.Equal(t, tt.changed, repo.AppendCalls()[0].E.ChangedFields)
		})
	}
}

func TestRecorder_Record_FailureIsLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	repo := &auditRepoMock{
		AppendFunc: func(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error) {
			return domain.AuditEntry{}, errors.New("disk full")
		},
	}
	rec := NewRecorder(log, repo, "")

	err := rec.Record(context.Background(), Event{
		Table: "operacoes", RecordID: 7, Kind: domain.AuditCreate, After: map[string]any{"nome": "x"},
	})

	var werr *domain.AuditWriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, "operacoes", werr.Table)
	assert.Equal(t, "7", werr.RecordID)
	assert.Equal(t, domain.KindAuditWrite, domain.Kind(err))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), "disk full")
}

func TestRecorder_Record_UnknownKind(t *testing.T) {
	t.Parallel()

	repo := appendOK()
	rec := NewRecorder(slog.New(slog.DiscardHandler), repo, "")

	err := rec.Record(context.Background(), Event{Table: "etapas", RecordID: 1, Kind: "PURGE"})

	var werr *domain.AuditWriteError
	assert.ErrorAs(t, err, &werr)
	assert.Empty(t, repo.AppendCalls())
}

// ---------------------------------------------------------------------------
// Diff helpers
// ---------------------------------------------------------------------------

func TestChangedFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		before map[string]any
		after  map[string]any
		want   []string
	}{
		{name: "nil before", before: nil, after: map[string]any{"a": 1.0}, want: []string{}},
		{name: "nil after", before: map[string]any{"a": 1.0}, after: nil, want: []string{}},
		{name: "no change", before: map[string]any{"a": 1.0}, after: map[string]any{"a": 1.0}, want: []string{}},
		{
			name:   "sorted",
			before: map[string]any{"z": "1", "a": "1", "m": []any{"x"}},
			after:  map[string]any{"z": "2", "a": "2", "m": []any{"x"}},
			want:   []string{"a", "z"},
		},
		{name: "new key", before: map[string]any{}, after: map[string]any{"k": nil}, want: []string{"k"}},
		{
			name:   "nested object",
			before: map[string]any{"c": map[string]any{"x": 1.0}},
			after:  map[string]any{"c": map[string]any{"x": 2.0}},
			want:   []string{"c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ChangedFields(tt.before, tt.after))
		})
	}
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	got, err := Snapshot(step("CORTE", time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "CORTE", got["nome"])
	assert.Equal(t, []any{"1010"}, got["centros_trabalho"])
	assert.Contains(t, got, "data_criacao")
	assert.NotContains(t, got, "data_modificacao")

	got, err = Snapshot(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ---------------------------------------------------------------------------
// Read side
// ---------------------------------------------------------------------------

func TestRecorder_List_Validation(t *testing.T) {
	t.Parallel()

	repo := &auditRepoMock{}
	rec := NewRecorder(slog.Default(), repo, "")

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)

	_, err := rec.List(context.Background(), domain.AuditQuery{Kind: "PURGE"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = rec.List(context.Background(), domain.AuditQuery{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, repo.ListCalls())
}

func TestRecorder_List_PassesQuery(t *testing.T) {
	t.Parallel()

	repo := &auditRepoMock{
		ListFunc: func(ctx context.Context, q domain.AuditQuery) (domain.Page[domain.AuditEntry], error) {
			return domain.NewPage([]domain.AuditEntry{{ID: 1}}, 1, 50, 1), nil
		},
	}
	rec := NewRecorder(slog.Default(), repo, "")

	page, err := rec.List(context.Background(), domain.AuditQuery{Table: "etapas", Kind: domain.AuditUpdate})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	require.Len(t, repo.ListCalls(), 1)
	assert.Equal(t, "etapas", repo.ListCalls()[0].Q.Table)
}
