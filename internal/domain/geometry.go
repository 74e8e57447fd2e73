package domain

// Rect is a rectangle in terminal cells
type Rect struct {
	X, Y          int
	Width, Height int
}

// Bottom returns the row just below the rectangle
func (r Rect) Bottom() int { return r.Y + r.Height }

// Geometry describes where the bound input currently sits.
// Input is relative to the viewport; ScrollY is the page scroll offset.
type Geometry struct {
	Input          Rect
	ScrollY        int
	ViewportWidth  int
	ViewportHeight int
}

// Placement is the computed panel position in page coordinates
type Placement struct {
	Top       int
	Left      int
	Width     int
	MaxHeight int
}
