package repository

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB and *sql.Tx repositories need.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PainterRepo handles painters.
type PainterRepo struct {
	db Querier
}

func NewPainterRepo(db Querier) *PainterRepo {
	return &PainterRepo{db: db}
}

// Insert adds p and returns its surrogate id.
func (r *PainterRepo) Insert(ctx context.Context, p Painter) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO painters(name, birth_year) VALUES (?, ?)`, p.Name, p.BirthYear)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// IDBySuffix returns the id of the first painter whose name ends with suffix.
// It returns (0, false, nil) when nothing matches.
func (r *PainterRepo) IDBySuffix(ctx context.Context, suffix string) (int64, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT _id FROM painters WHERE name LIKE '%' || ? ORDER BY _id LIMIT 1`, suffix)
	var id int64
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}
	return id, true, nil
}

func (r *PainterRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM painters`).Scan(&n)
	return n, err
}
