package coefficient_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/coefficient"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

const cols = "id, nome, descricao, parametros_condicao, dados_coeficientes, tabela_sap, ativa, data_criacao, data_modificacao"

var columns = []string{
	"id", "nome", "descricao", "parametros_condicao", "dados_coeficientes",
	"tabela_sap", "ativa", "data_criacao", "data_modificacao",
}

func exact(sql string) string { return "^" + regexp.QuoteMeta(sql) + "$" }

func ptr[T any](v T) *T { return &v }

var ts = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*coefficient.Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return coefficient.New(mock), mock
}

const (
	storedParams = `["espessura","material"]`
	storedData   = `[{"espessura":2,"fator":1.15},{"espessura":4,"fator":1.3}]`
)

var coefficients = []any{
	map[string]any{"espessura": float64(2), "fator": 1.15},
	map[string]any{"espessura": float64(4), "fator": 1.3},
}

func tableRow(rows *pgxmock.Rows, params, data *string) *pgxmock.Rows {
	return rows.AddRow(int64(6), "FATOR_DOBRA", (*string)(nil), params, data, ptr("ZPP_COEF"), int16(1), ts, ts)
}

func TestRepo_Create_ArraysRoundTrip(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(exact("SELECT id FROM tabelas_coeficientes WHERE nome = $1 LIMIT 1")).
		WithArgs("FATOR_DOBRA").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectQuery(exact("INSERT INTO tabelas_coeficientes (nome,descricao,parametros_condicao,dados_coeficientes,tabela_sap,ativa,data_modificacao) VALUES ($1,$2,$3,$4,$5,$6,now()) RETURNING id")).
		WithArgs("FATOR_DOBRA", (*string)(nil), ptr(storedParams), ptr(storedData), ptr("ZPP_COEF"), int16(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(6)))
	mock.ExpectQuery(exact("SELECT " + cols + " FROM tabelas_coeficientes WHERE id = $1")).
		WithArgs(int64(6)).
		WillReturnRows(tableRow(pgxmock.NewRows(columns), ptr(storedParams), ptr(storedData)))
	mock.ExpectCommit()

	got, err := repo.Create(context.Background(), domain.CreateCoefficientTableInput{
		Name:            "FATOR_DOBRA",
		ConditionParams: []any{"espessura", "material"},
		Coefficients:    coefficients,
		SAPTable:        ptr("ZPP_COEF"),
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"espessura", "material"}, got.ConditionParams)
	assert.Equal(t, coefficients, got.Coefficients)
	assert.True(t, got.Active)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByName(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(exact("SELECT " + cols + " FROM tabelas_coeficientes WHERE nome = $1 ORDER BY nome ASC, id ASC")).
			WithArgs("FATOR_DOBRA").
			WillReturnRows(tableRow(pgxmock.NewRows(columns), ptr(storedParams), nil))

		got, err := repo.GetByName(context.Background(), "FATOR_DOBRA")
		require.NoError(t, err)
		assert.Equal(t, int64(6), got.ID)
		assert.Equal(t, []any{"espessura", "material"}, got.ConditionParams)
		assert.Equal(t, []any{}, got.Coefficients, "NULL data decodes as an empty list")
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`FROM tabelas_coeficientes WHERE nome = \$1`).
			WithArgs("FATOR_CORTE").
			WillReturnRows(pgxmock.NewRows(columns))

		_, err := repo.GetByName(context.Background(), "FATOR_CORTE")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRepo_Get_CorruptCoefficients(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(exact("SELECT " + cols + " FROM tabelas_coeficientes WHERE id = $1")).
		WithArgs(int64(6)).
		WillReturnRows(tableRow(pgxmock.NewRows(columns), ptr(storedParams), ptr(`{"fator":`)))

	_, err := repo.Get(context.Background(), 6)
	assert.Equal(t, domain.KindStorage, domain.Kind(err))
	assert.Contains(t, err.Error(), "dados_coeficientes")
}

func TestRepo_List_SAPTableActive(t *testing.T) {
	repo, mock := newRepo(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(exact("SELECT "+cols+" FROM tabelas_coeficientes WHERE tabela_sap = $1 AND ativa = $2 ORDER BY nome ASC, id ASC LIMIT 50 OFFSET 0")).
		WithArgs("ZPP_COEF", int16(1)).
		WillReturnRows(tableRow(pgxmock.NewRows(columns), ptr(storedParams), ptr(storedData)))
	mock.ExpectQuery(exact("SELECT COUNT(*) FROM tabelas_coeficientes WHERE tabela_sap = $1 AND ativa = $2")).
		WithArgs("ZPP_COEF", int16(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	page, err := repo.List(context.Background(), domain.ListQuery{
		Filters: map[string]string{"tabela_sap": "ZPP_COEF"},
		Active:  ptr(true),
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, coefficients, page.Items[0].Coefficients)
	require.NoError(t, mock.ExpectationsWereMet())
}
