package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/jask/paintingdb/internal/database/repository"
)

// Repos bundles repos used by Generate.
type Repos struct {
	Painters  *repository.PainterRepo
	Paintings *repository.PaintingRepo
}

// Options sizes a generated catalogue. The same Seed always yields the same rows.
type Options struct {
	Painters     int
	MaxPaintings int
	Seed         int64
}

// Catalog is what Generate inserted, with surrogate ids filled in.
type Catalog struct {
	Painters  []repository.Painter
	Paintings []repository.Painting
}

var (
	firstNames = []string{"Ada", "Berthe", "Camille", "Dora", "Egon", "Frida", "Georgia", "Hilma", "Ivan", "Joan", "Kazimir", "Lee"}
	lastNames  = []string{"Albers", "Bonnard", "Cassatt", "Derain", "Ernst", "Gris", "Hopper", "Klee", "Leger", "Miro", "Nolde", "Rivera"}
	adjectives = []string{"Blue", "Quiet", "Broken", "Golden", "Night", "Red", "Still", "White"}
	subjects   = []string{"Harbour", "Garden", "Figure", "Window", "Study", "Landscape", "Bather", "Portrait"}
)

// Generate inserts a random catalogue. Titles repeat across painters on
// purpose so duplicate display values are exercised.
func Generate(ctx context.Context, repos Repos, opts Options) (Catalog, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	var cat Catalog

	for i := 0; i < opts.Painters; i++ {
		name := fmt.Sprintf("%s %s %d", firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))], i)
		born := 1800 + rng.Intn(150)
		p := repository.Painter{Name: name, BirthYear: &born}
		id, err := repos.Painters.Insert(ctx, p)
		if err != nil {
			return Catalog{}, err
		}
		p.ID = id
		cat.Painters = append(cat.Painters, p)
	}

	for _, painter := range cat.Painters {
		n := 0
		if opts.MaxPaintings > 0 {
			n = rng.Intn(opts.MaxPaintings + 1)
		}
		for j := 0; j < n; j++ {
			title := adjectives[rng.Intn(len(adjectives))] + " " + subjects[rng.Intn(len(subjects))]
			year := *painter.BirthYear + 20 + rng.Intn(50)
			pt := repository.Painting{Title: title, Year: &year, PainterID: painter.ID}
			id, err := repos.Paintings.Insert(ctx, pt)
			if err != nil {
				return Catalog{}, err
			}
			pt.ID = id
			cat.Paintings = append(cat.Paintings, pt)
		}
	}
	return cat, nil
}

// PainterNames returns every painter name in byte order.
func (c Catalog) PainterNames() []string {
	out := make([]string, 0, len(c.Painters))
	for _, p := range c.Painters {
		out = append(out, p.Name)
	}
	sort.Strings(out)
	return out
}

// TitlesOf returns the titles painted by painterID in byte order.
func (c Catalog) TitlesOf(painterID int64) []string {
	var out []string
	for _, p := range c.Paintings {
		if p.PainterID == painterID {
			out = append(out, p.Title)
		}
	}
	sort.Strings(out)
	return out
}
