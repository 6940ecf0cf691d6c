package models

// Range represents the cell coordinate bounds of a sheet's used area.
type Range struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Contains reports whether the coordinate lies inside the range.
func (r Range) Contains(row, col int) bool {
	return row >= r.R1 && row <= r.R2 && col >= r.C1 && col <= r.C2
}

// Union returns the smallest range covering both r and o.
func (r Range) Union(o Range) Range {
	return Range{
		R1: min(r.R1, o.R1),
		C1: min(r.C1, o.C1),
		R2: max(r.R2, o.R2),
		C2: max(r.C2, o.C2),
	}
}

type coord struct {
	row, col int
}

// Grid is a sparse view of one sheet. Each position holds either a Cell,
// a *Cell or a bare value; parser.Normalize resolves the two shapes.
type Grid struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Range is the used range, nil when the sheet holds no cells.
	Range *Range `json:"range,omitempty"`

	cells map[coord]interface{}
}

// NewGrid creates an empty grid for the named sheet.
func NewGrid(name string) *Grid {
	return &Grid{Name: name, cells: make(map[coord]interface{})}
}

// Set stores an entry at (row, col) and widens the range to cover it.
// Nil entries are ignored.
func (g *Grid) Set(row, col int, entry interface{}) {
	if entry == nil || row < 1 || col < 1 {
		return
	}
	if g.cells == nil {
		g.cells = make(map[coord]interface{})
	}
	g.cells[coord{row, col}] = entry
	g.Extend(Range{R1: row, C1: col, R2: row, C2: col})
}

// Extend widens the range to cover r.
func (g *Grid) Extend(r Range) {
	if g.Range == nil {
		g.Range = &r
		return
	}
	u := g.Range.Union(r)
	g.Range = &u
}

// At returns the entry at (row, col), or nil when the position is empty.
func (g *Grid) At(row, col int) interface{} {
	if g == nil || g.cells == nil {
		return nil
	}
	return g.cells[coord{row, col}]
}

// Len returns the number of stored entries.
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.cells)
}
