package repository

import (
	"context"
)

// PaintingRepo handles paintings.
type PaintingRepo struct {
	db Querier
}

func NewPaintingRepo(db Querier) *PaintingRepo { return &PaintingRepo{db: db} }

func (r *PaintingRepo) Insert(ctx context.Context, p Painting) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO paintings(title, year, painter_id) VALUES (?, ?, ?)`, p.Title, p.Year, p.PainterID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *PaintingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM paintings`).Scan(&n)
	return n, err
}
