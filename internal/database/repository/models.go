package repository

// Painter represents a painters row.
type Painter struct {
	ID        int64
	Name      string
	BirthYear *int
}

// Painting represents a paintings row.
type Painting struct {
	ID        int64
	Title     string
	Year      *int
	PainterID int64
}
