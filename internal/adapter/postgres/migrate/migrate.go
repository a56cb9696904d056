// Package migrate applies the embedded goose migrations.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/orbis-catalog/migrations"
)

// Migration is the state of one migration file.
type Migration struct {
	Version int64
	Source  string
	Applied bool
}

// Up applies every pending migration and returns the versions it applied.
func Up(ctx context.Context, dsn string) ([]int64, error) {
	var applied []int64
	err := withProvider(ctx, dsn, migrations.FS, func(p *goose.Provider) error {
		results, err := p.Up(ctx)
		if err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
		for _, r := range results {
			applied = append(applied, r.Source.Version)
		}
		return nil
	})
	return applied, err
}

// Status reports every known migration and whether it has been applied.
func Status(ctx context.Context, dsn string) ([]Migration, error) {
	var out []Migration
	err := withProvider(ctx, dsn, migrations.FS, func(p *goose.Provider) error {
		statuses, err := p.Status(ctx)
		if err != nil {
			return fmt.Errorf("goose status: %w", err)
		}
		for _, s := range statuses {
			out = append(out, Migration{
				Version: s.Source.Version,
				Source:  s.Source.Path,
				Applied: s.State == goose.StateApplied,
			})
		}
		return nil
	})
	return out, err
}

// goose.NewProvider splits $$-delimited bodies correctly, unlike the legacy
// goose.Up entry point.
func withProvider(ctx context.Context, dsn string, fsys fs.FS, fn func(*goose.Provider) error) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	return fn(provider)
}
