package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/paintingdb/internal/database/repository"
)

type samplePainting struct {
	title         string
	year          int
	painterSuffix string
}

var samplePainters = []repository.Painter{
	{Name: "Claude Monet", BirthYear: year(1840)},
	{Name: "Edvard Munch", BirthYear: year(1863)},
	{Name: "Rico Lebrun", BirthYear: year(1900)},
	{Name: "Betty Parsons", BirthYear: year(1900)},
	{Name: "Virginia True", BirthYear: year(1900)},
	{Name: "Andy Warhol", BirthYear: year(1928)},
	{Name: "Jasper Johns", BirthYear: year(1930)},
	{Name: "Robert Rauschenberg", BirthYear: year(1925)},
	{Name: "Frank Stella", BirthYear: year(1925)},
	{Name: "David Hockney", BirthYear: year(1937)},
	{Name: "Mark Rothko", BirthYear: year(1903)},
	{Name: "Jackson Pollock", BirthYear: year(1912)},
	{Name: "Henri Matisse", BirthYear: year(1869)},
}

// The duplicated "Inferno Series - E" row is intentional; it mirrors the
// catalogue this program was first shipped with.
var samplePaintings = []samplePainting{
	{"Wisteria", 1925, "Monet"},
	{"The Scream", 1893, "Munch"},
	{"The Yellow Log", 1912, "Munch"},
	{"The Haymaker", 1917, "Munch"},
	{"Figure in Rain", 1949, "Lebrun"},
	{"Musician", 1940, "Lebrun"},
	{"Inferno Series - B", 1961, "Lebrun"},
	{"Inferno Series - E", 1961, "Lebrun"},
	{"Inferno Series - E", 1961, "Lebrun"},
	{"Bright Day", 1966, "Parsons"},
	{"Cactus", 1931, "True"},
	{"Empire", 1964, "Warhol"},
	{"Orange and Yellow", 1956, "Rothko"},
	{"Blue Poles", 1952, "Pollock"},
	{"Le bonheur de vivre", 1905, "Matisse"},
	{"Flag", 1955, "Johns"},
	{"White Painting (Three Panel)", 1951, "Rauschenberg"},
}

// SeedDefaults loads the sample catalogue into an empty database.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	n, err := repository.NewPainterRepo(db).Count(ctx)
	if err != nil {
		return fmt.Errorf("count painters: %w", err)
	}
	if n > 0 {
		return nil
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		return seedCatalogue(ctx, tx)
	})
}

func seedCatalogue(ctx context.Context, q repository.Querier) error {
	painters := repository.NewPainterRepo(q)
	paintings := repository.NewPaintingRepo(q)
	for _, p := range samplePainters {
		if _, err := painters.Insert(ctx, p); err != nil {
			return fmt.Errorf("insert painter %s: %w", p.Name, err)
		}
	}
	for _, sp := range samplePaintings {
		id, ok, err := painters.IDBySuffix(ctx, sp.painterSuffix)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no painter matching %q for %q", sp.painterSuffix, sp.title)
		}
		p := repository.Painting{Title: sp.title, Year: year(sp.year), PainterID: id}
		if _, err := paintings.Insert(ctx, p); err != nil {
			return fmt.Errorf("insert painting %s: %w", sp.title, err)
		}
	}
	return nil
}

func year(y int) *int { return &y }
