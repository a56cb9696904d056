// Package audit implements the audit log repository using PostgreSQL.
// Entries are append-only.
package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/codec"
	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/query"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Table is the storage table name.
const Table = "logs_auditoria"

var columns = []string{
	"id", "tabela_afetada", "registro_id", "operacao", "campos_alterados",
	"valores_anteriores", "valores_novos", "user_id", "observacoes", "data_operacao",
}

type row struct {
	ID                int64     `db:"id"`
	TabelaAfetada     string    `db:"tabela_afetada"`
	RegistroID        string    `db:"registro_id"`
	Operacao          string    `db:"operacao"`
	CamposAlterados   *string   `db:"campos_alterados"`
	ValoresAnteriores *string   `db:"valores_anteriores"`
	ValoresNovos      *string   `db:"valores_novos"`
	UserID            string    `db:"user_id"`
	Observacoes       *string   `db:"observacoes"`
	DataOperacao      time.Time `db:"data_operacao"`
}

func decode(r row) (domain.AuditEntry, error) {
	changed, err := codec.DecodeArray[string]("campos_alterados", r.CamposAlterados)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	before, err := codec.DecodeObject("valores_anteriores", r.ValoresAnteriores)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	after, err := codec.DecodeObject("valores_novos", r.ValoresNovos)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	return domain.AuditEntry{
		ID:            r.ID,
		Table:         r.TabelaAfetada,
		RecordID:      r.RegistroID,
		Kind:          domain.AuditKind(r.Operacao),
		ChangedFields: changed,
		Before:        before,
		After:         after,
		Actor:         r.UserID,
		Note:          r.Observacoes,
		CreatedAt:     r.DataOperacao,
	}, nil
}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db     postgres.DB
	paging query.Paging
}

// New creates a new audit repository.
func New(db postgres.DB, paging query.Paging) *Repo {
	return &Repo{db: db, paging: paging}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Append inserts an audit entry and returns it as stored. Missing snapshots
// are stored as empty objects.
func (r *Repo) Append(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error) {
	changed := e.ChangedFields
	if changed == nil {
		changed = []string{}
	}
	before := e.Before
	if before == nil {
		before = map[string]any{}
	}
	after := e.After
	if after == nil {
		after = map[string]any{}
	}

	changedJSON, err := codec.Encode(changed)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	beforeJSON, err := codec.Encode(before)
	if err != nil {
		return domain.AuditEntry{}, err
	}
	afterJSON, err := codec.Encode(after)
	if err != nil {
		return domain.AuditEntry{}, err
	}

	sql, args, err := query.Psql().
		Insert(Table).
		Columns("tabela_afetada", "registro_id", "operacao", "campos_alterados",
			"valores_anteriores", "valores_novos", "user_id", "observacoes").
		Values(e.Table, e.RecordID, string(e.Kind), changedJSON,
			beforeJSON, afterJSON, e.Actor, e.Note).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("build insert: %w", err)
	}

	var stored row
	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := pgxscan.Get(ctx, q, &stored, sql, args...); err != nil {
		return domain.AuditEntry{}, postgres.MapError(err, Table, 0)
	}
	return decode(stored)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns one page of entries matching q, newest first.
func (r *Repo) List(ctx context.Context, q domain.AuditQuery) (domain.Page[domain.AuditEntry], error) {
	p := r.paging.Normalize(q.Page, q.Limit)

	st, err := query.New(Table, columns...).
		Eq("tabela_afetada", q.Table).
		Eq("user_id", q.Actor).
		Eq("operacao", string(q.Kind)).
		Eq("registro_id", q.RecordID).
		From("data_operacao", q.From).
		To("data_operacao", q.To).
		OrderBy("data_operacao DESC", "id DESC").
		Build(p)
	if err != nil {
		return domain.Page[domain.AuditEntry]{}, err
	}

	var (
		rows  []row
		total int
	)
	db := postgres.QuerierFromCtx(ctx, r.db)

	fetch := func(ctx context.Context) error {
		if err := pgxscan.Select(ctx, db, &rows, st.Data.SQL, st.Data.Args...); err != nil {
			return postgres.MapError(err, Table, 0)
		}
		return nil
	}
	count := func(ctx context.Context) error {
		if err := db.QueryRow(ctx, st.Count.SQL, st.Count.Args...).Scan(&total); err != nil {
			return postgres.MapError(err, Table, 0)
		}
		return nil
	}
	if err := postgres.RunAll(ctx, fetch, count); err != nil {
		return domain.Page[domain.AuditEntry]{}, err
	}

	items := make([]domain.AuditEntry, 0, len(rows))
	for _, rw := range rows {
		e, err := decode(rw)
		if err != nil {
			return domain.Page[domain.AuditEntry]{}, err
		}
		items = append(items, e)
	}
	return domain.NewPage(items, p.Page, p.Limit, total), nil
}

// Get returns the entry with the given id.
func (r *Repo) Get(ctx context.Context, id int64) (domain.AuditEntry, error) {
	sql, args, err := query.Psql().
		Select(columns...).
		From(Table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("build query: %w", err)
	}

	var stored row
	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := pgxscan.Get(ctx, q, &stored, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			err = pgx.ErrNoRows
		}
		return domain.AuditEntry{}, postgres.MapError(err, Table, id)
	}
	return decode(stored)
}

// TableStats counts entries per audited table, busiest first.
func (r *Repo) TableStats(ctx context.Context) ([]domain.AuditTableStats, error) {
	sql, args, err := query.Psql().
		Select("tabela_afetada AS tabela", "COUNT(*) AS total_logs").
		From(Table).
		GroupBy("tabela_afetada").
		OrderBy("total_logs DESC", "tabela ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []struct {
		Tabela    string `db:"tabela"`
		TotalLogs int    `db:"total_logs"`
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, Table, 0)
	}

	out := make([]domain.AuditTableStats, 0, len(rows))
	for _, rw := range rows {
		out = append(out, domain.AuditTableStats{Table: rw.Tabela, Total: rw.TotalLogs})
	}
	return out, nil
}

// ActorStats counts entries per actor with the time of their latest change,
// most recently active first.
func (r *Repo) ActorStats(ctx context.Context) ([]domain.AuditActorStats, error) {
	sql, args, err := query.Psql().
		Select("user_id", "COUNT(*) AS total_operacoes", "MAX(data_operacao) AS ultima_atividade").
		From(Table).
		GroupBy("user_id").
		OrderBy("ultima_atividade DESC", "user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []struct {
		UserID          string    `db:"user_id"`
		TotalOperacoes  int       `db:"total_operacoes"`
		UltimaAtividade time.Time `db:"ultima_atividade"`
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, Table, 0)
	}

	out := make([]domain.AuditActorStats, 0, len(rows))
	for _, rw := range rows {
		out = append(out, domain.AuditActorStats{
			Actor:        rw.UserID,
			Total:        rw.TotalOperacoes,
			LastActivity: rw.UltimaAtividade,
		})
	}
	return out, nil
}
