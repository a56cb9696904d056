package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/orbis-catalog/internal/adapter/postgres/migrate"
	"github.com/heartmarshall/orbis-catalog/internal/app/seeder"
	"github.com/heartmarshall/orbis-catalog/internal/config"
	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

type countingCreator[C, E any] struct{ calls int }

func (c *countingCreator[C, E]) Create(_ context.Context, _ C) (E, error) {
	var zero E
	c.calls++
	return zero, nil
}

func stubConfig(t *testing.T) {
	t.Helper()
	orig := loadConfig
	loadConfig = func() (*config.Config, error) {
		return &config.Config{
			Log:      config.LogConfig{Level: "error", Format: "text"},
			Database: config.DatabaseConfig{DSN: "postgres://orbis@localhost/orbis"},
		}, nil
	}
	t.Cleanup(func() { loadConfig = orig })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateUp(t *testing.T) {
	stubConfig(t)
	orig := migrateUp
	t.Cleanup(func() { migrateUp = orig })

	var gotDSN string
	migrateUp = func(_ context.Context, dsn string) ([]int64, error) {
		gotDSN = dsn
		return []int64{1, 2}, nil
	}

	out, err := execute(t, "migrate", "up")
	require.NoError(t, err)
	assert.Equal(t, "postgres://orbis@localhost/orbis", gotDSN)
	assert.Contains(t, out, "applied 00001")
	assert.Contains(t, out, "applied 00002")
}

func TestMigrateUp_NothingPending(t *testing.T) {
	stubConfig(t)
	orig := migrateUp
	t.Cleanup(func() { migrateUp = orig })
	migrateUp = func(context.Context, string) ([]int64, error) { return nil, nil }

	out, err := execute(t, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "schema is up to date")
}

func TestMigrateStatus(t *testing.T) {
	stubConfig(t)
	orig := migrateStatus
	t.Cleanup(func() { migrateStatus = orig })
	migrateStatus = func(context.Context, string) ([]migrate.Migration, error) {
		return []migrate.Migration{
			{Version: 1, Source: "00001_catalog.sql", Applied: true},
			{Version: 2, Source: "00002_audit.sql"},
		}, nil
	}

	out, err := execute(t, "migrate", "status")
	require.NoError(t, err)
	assert.Regexp(t, `00001\s+applied\s+00001_catalog.sql`, out)
	assert.Regexp(t, `00002\s+pending\s+00002_audit.sql`, out)
}

func TestMigrate_ConfigError(t *testing.T) {
	orig := loadConfig
	t.Cleanup(func() { loadConfig = orig })
	loadConfig = func() (*config.Config, error) { return nil, errors.New("DATABASE_DSN is required") }

	_, err := execute(t, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_DSN")
}

func stubSeedTargets(t *testing.T) (*countingCreator[domain.CreateStepInput, domain.Step], *bool) {
	t.Helper()
	orig := seedTargets
	t.Cleanup(func() { seedTargets = orig })

	steps := &countingCreator[domain.CreateStepInput, domain.Step]{}
	closed := false
	seedTargets = func(context.Context, *config.Config, *slog.Logger) (seeder.Targets, func(), error) {
		return seeder.Targets{
			Parameters:   &countingCreator[domain.CreateParameterInput, domain.Parameter]{},
			Steps:        steps,
			Routes:       &countingCreator[domain.CreateRouteInput, domain.Route]{},
			Operations:   &countingCreator[domain.CreateOperationInput, domain.Operation]{},
			Coefficients: &countingCreator[domain.CreateCoefficientTableInput, domain.CoefficientTable]{},
			Rules:        &countingCreator[domain.CreateRuleInput, domain.Rule]{},
			Projects:     &countingCreator[domain.CreateProjectInput, domain.Project]{},
		}, func() { closed = true }, nil
	}
	return steps, &closed
}

func TestSeed_SelectedPhase(t *testing.T) {
	stubConfig(t)
	steps, closed := stubSeedTargets(t)

	out, err := execute(t, "seed", "--phase", "etapas")
	require.NoError(t, err)
	assert.Equal(t, 4, steps.calls)
	assert.True(t, *closed)
	assert.Regexp(t, `etapas\s+4\s+0\s+0`, out)
	assert.NotContains(t, out, "parametros")
}

func TestSeed_DryRun(t *testing.T) {
	stubConfig(t)
	steps, _ := stubSeedTargets(t)

	out, err := execute(t, "seed", "--dry-run")
	require.NoError(t, err)
	assert.Zero(t, steps.calls)
	assert.Regexp(t, `etapas\s+0\s+4\s+0`, out)
}

func TestSeed_UnknownPhase(t *testing.T) {
	stubConfig(t)
	stubSeedTargets(t)

	_, err := execute(t, "seed", "--phase", "usuarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown phase")
}
