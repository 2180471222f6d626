package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jask/paintingdb/internal/database"
	"github.com/jask/paintingdb/internal/database/repository"
)

// MaintenanceService houses destructive actions exposed on the command line.
type MaintenanceService struct {
	DB     *sql.DB
	Logger zerolog.Logger
}

// Stats counts catalogue rows.
type Stats struct {
	Painters  int
	Paintings int
}

// Reset wipes the catalogue. It keeps the schema intact so the app can continue running.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		// children first, painter_id references painters
		tables := []string{
			"paintings",
			"painters",
		}
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	s.vacuum(ctx)
	return nil
}

// vacuum compacts the file after a reset. The reset already committed, so a
// failure is only logged.
func (s *MaintenanceService) vacuum(ctx context.Context) {
	if _, err := s.DB.ExecContext(ctx, "VACUUM"); err != nil {
		s.Logger.Warn().Err(err).Str("component", "maintenance").Msg("vacuum failed")
	}
}

// Reseed wipes the catalogue and loads the sample one again.
func (s *MaintenanceService) Reseed(ctx context.Context) (Stats, error) {
	if err := s.Reset(ctx); err != nil {
		return Stats{}, err
	}
	if err := database.SeedDefaults(ctx, s.DB); err != nil {
		return Stats{}, fmt.Errorf("reseed: %w", err)
	}
	return s.Stats(ctx)
}

func (s *MaintenanceService) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error
	if st.Painters, err = repository.NewPainterRepo(s.DB).Count(ctx); err != nil {
		return Stats{}, err
	}
	if st.Paintings, err = repository.NewPaintingRepo(s.DB).Count(ctx); err != nil {
		return Stats{}, err
	}
	return st, nil
}
