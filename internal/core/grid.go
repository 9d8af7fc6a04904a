package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// ByteGridFromRows builds a grid from equally long rows. Short rows are
// padded with zeros.
func ByteGridFromRows(rows [][]uint8) *ByteGrid {
	w := 0
	for _, row := range rows {
		if len(row) > w {
			w = len(row)
		}
	}
	g := NewByteGrid(w, len(rows))
	for y, row := range rows {
		copy(g.data[y*g.W:], row)
	}
	return g
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value at (x, y), or 0 outside the grid.
func (g *ByteGrid) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return 0
	}
	return g.data[g.Index(x, y)]
}

// Filled returns the number of non-zero cells.
func (g *ByteGrid) Filled() int {
	n := 0
	for _, v := range g.data {
		if v != 0 {
			n++
		}
	}
	return n
}
