package testdata

import (
	"context"

	"github.com/jask/paintingdb/internal/database/repository"
)

// ListPainters reads every painter ordered by name.
func ListPainters(ctx context.Context, q repository.Querier) ([]repository.Painter, error) {
	rows, err := q.QueryContext(ctx, `SELECT _id, name, birth_year FROM painters ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []repository.Painter
	for rows.Next() {
		var p repository.Painter
		if err := rows.Scan(&p.ID, &p.Name, &p.BirthYear); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListPaintings reads the paintings of painterID ordered by title.
func ListPaintings(ctx context.Context, q repository.Querier, painterID int64) ([]repository.Painting, error) {
	rows, err := q.QueryContext(ctx, `SELECT _id, title, year, painter_id FROM paintings WHERE painter_id = ? ORDER BY title`, painterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []repository.Painting
	for rows.Next() {
		var p repository.Painting
		if err := rows.Scan(&p.ID, &p.Title, &p.Year, &p.PainterID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
