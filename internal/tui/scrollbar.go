package tui

// Scrollbar draws a one-column vertical track with a thumb sized to the
// visible share of the content.
type Scrollbar struct {
	Track string
	Thumb string
}

func defaultScrollbar() Scrollbar {
	return Scrollbar{Track: "│", Thumb: "┃"}
}

// Render returns height cells for a window of height rows starting at
// offset into total rows. When everything fits the column is blank.
func (b Scrollbar) Render(height, total, offset int) []string {
	if height <= 0 {
		return nil
	}
	cells := make([]string, height)
	if total <= height {
		for i := range cells {
			cells[i] = " "
		}
		return cells
	}

	thumb := height * height / total
	if thumb < 1 {
		thumb = 1
	}
	maxOffset := total - height
	offset = clamp(offset, 0, maxOffset)
	pos := (height - thumb) * offset / maxOffset
	for i := range cells {
		if i >= pos && i < pos+thumb {
			cells[i] = b.Thumb
		} else {
			cells[i] = b.Track
		}
	}
	return cells
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
