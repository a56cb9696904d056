package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UniqueName returns prefix with a short random suffix so tests sharing the
// container never collide on a uniqueness scope.
func UniqueName(prefix string) string {
	return prefix + " " + uuid.New().String()[:8]
}

// SeedStep inserts an active step directly and returns its id.
func SeedStep(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO etapas (nome, centros, centros_trabalho, parametros_necessarios)
		 VALUES ($1, '1010', '["1010"]', '[]') RETURNING id`,
		name,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed step: %v", err)
	}
	return id
}

// CountAudit returns the number of audit entries for one record.
func CountAudit(t *testing.T, pool *pgxpool.Pool, table, recordID string) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM logs_auditoria WHERE tabela_afetada = $1 AND registro_id = $2`,
		table, recordID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: count audit: %v", err)
	}
	return n
}
