package postgres_test

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestRunInTx_Commit(t *testing.T) {
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE etapas`).WithArgs(int16(0), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if !postgres.InTx(ctx) {
			t.Error("expected a transaction in the callback context")
		}
		q := postgres.QuerierFromCtx(ctx, mock)
		_, err := q.Exec(ctx, `UPDATE etapas SET ativa = $1 WHERE id = $2`, int16(0), int64(1))
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)
	sentinel := errors.New("business logic error")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)

	mock.ExpectBegin()
	mock.ExpectRollback()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		panic("test panic")
	})
}

func TestRunInTx_BeginError(t *testing.T) {
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)
	beginErr := errors.New("connection refused")

	mock.ExpectBegin().WillReturnError(beginErr)

	called := false
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, beginErr) {
		t.Fatalf("expected begin error, got: %v", err)
	}
	if called {
		t.Error("callback must not run when begin fails")
	}
}

func TestRunInTx_NestedJoinsOuter(t *testing.T) {
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)

	// Only one BEGIN/COMMIT pair is expected for two nested calls.
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return tm.RunInTx(ctx, func(inner context.Context) error {
			if postgres.QuerierFromCtx(inner, mock) != postgres.QuerierFromCtx(ctx, mock) {
				t.Error("nested call should reuse the outer transaction")
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestQuerierFromCtx_NoTx(t *testing.T) {
	mock := newMock(t)

	if postgres.InTx(context.Background()) {
		t.Error("background context should not carry a transaction")
	}
	if got := postgres.QuerierFromCtx(context.Background(), mock); got != mock {
		t.Error("QuerierFromCtx without tx should return the db")
	}
}
