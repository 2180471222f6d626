package service

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/paintingdb/internal/database"
	"github.com/jask/paintingdb/internal/database/repository"
	"github.com/jask/paintingdb/internal/testdata"
)

func TestResetAndReseed(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))
	t.Log("migrations applied")

	repos := testdata.Repos{Painters: repository.NewPainterRepo(db), Paintings: repository.NewPaintingRepo(db)}
	cat, err := testdata.Generate(ctx, repos, testdata.Options{Painters: 5, MaxPaintings: 4, Seed: 1})
	require.NoError(t, err)

	svc := &MaintenanceService{DB: db}
	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, Stats{Painters: 5, Paintings: len(cat.Paintings)}, st)
	t.Log("generated catalogue counted")

	require.NoError(t, svc.Reset(ctx))
	st, err = svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, Stats{}, st)
	t.Log("reset verified")

	st, err = svc.Reseed(ctx)
	require.NoError(t, err)
	require.Equal(t, Stats{Painters: 13, Paintings: 17}, st)

	names, err := testdata.ListPainters(ctx, db)
	require.NoError(t, err)
	require.Equal(t, "Andy Warhol", names[0].Name)
	t.Log("reseed verified")
}

func TestResetWithoutDB(t *testing.T) {
	t.Parallel()
	svc := &MaintenanceService{}
	require.Error(t, svc.Reset(context.Background()))
}

func TestVacuumFailureIsLogged(t *testing.T) {
	t.Parallel()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	var buf bytes.Buffer
	svc := &MaintenanceService{DB: db, Logger: zerolog.New(&buf)}
	svc.vacuum(context.Background())

	out := buf.String()
	require.Contains(t, out, `"level":"warn"`)
	require.Contains(t, out, `"component":"maintenance"`)
	require.Contains(t, out, "vacuum failed")
	require.Contains(t, out, "database is closed")
}
