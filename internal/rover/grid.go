package rover

import "math"

// Occupancy grid defaults.
const (
	DefaultMapSize    = 10.0 // physical extent in meters, centered on origin
	DefaultResolution = 5    // cells per meter
)

// missCutoff treats near-max-range readings as open space rather than a
// real obstacle when deciding whether to mark the terminal cell.
const missCutoff = 0.95

// CellState is the fused knowledge about one grid cell.
type CellState uint8

const (
	CellUnknown CellState = iota
	CellFree
	CellOccupied
)

// Grid is a square occupancy grid over the XZ ground plane, centered on the
// world origin. Cells are stored in row-major order: index = iz*side + ix.
type Grid struct {
	Size       float64 // physical extent in meters
	Resolution int     // cells per meter
	Cells      []CellState
	side       int // cells per edge
}

// NewGrid creates a grid of the given extent and resolution, all Unknown.
func NewGrid(size float64, resolution int) *Grid {
	g := &Grid{}
	g.Ensure(size, resolution)
	return g
}

// Ensure lazily (re)allocates the cell storage when the grid is absent or
// sized for different parameters. Existing knowledge is discarded on
// reallocation.
func (g *Grid) Ensure(size float64, resolution int) {
	if size <= 0 {
		size = DefaultMapSize
	}
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	side := int(size * float64(resolution))
	if g.Cells != nil && g.side == side && g.Size == size && g.Resolution == resolution {
		return
	}
	g.Size = size
	g.Resolution = resolution
	g.side = side
	g.Cells = make([]CellState, side*side)
}

// Side returns the number of cells along one edge.
func (g *Grid) Side() int {
	return g.side
}

// cellIndex maps world XZ coordinates to a flat cell index.
// The second result is false when the point lies outside the grid.
func (g *Grid) cellIndex(x, z float64) (int, bool) {
	half := g.Size / 2
	ix := int(math.Floor((x + half) * float64(g.Resolution)))
	iz := int(math.Floor((z + half) * float64(g.Resolution)))
	if ix < 0 || ix >= g.side || iz < 0 || iz >= g.side {
		return 0, false
	}
	return iz*g.side + ix, true
}

// At returns the cell state at world coordinates (x, z).
// Points outside the grid read as Unknown.
func (g *Grid) At(x, z float64) CellState {
	idx, ok := g.cellIndex(x, z)
	if !ok {
		return CellUnknown
	}
	return g.Cells[idx]
}

// AtCell returns the cell state by grid indices.
func (g *Grid) AtCell(ix, iz int) CellState {
	if ix < 0 || ix >= g.side || iz < 0 || iz >= g.side {
		return CellUnknown
	}
	return g.Cells[iz*g.side+ix]
}

// markFree marks a cell Free unless it is already Occupied: occupancy is
// sticky and is never downgraded by later fusions.
func (g *Grid) markFree(x, z float64) {
	idx, ok := g.cellIndex(x, z)
	if !ok {
		return
	}
	if g.Cells[idx] != CellOccupied {
		g.Cells[idx] = CellFree
	}
}

// markOccupied marks a cell Occupied.
func (g *Grid) markOccupied(x, z float64) {
	idx, ok := g.cellIndex(x, z)
	if !ok {
		return
	}
	g.Cells[idx] = CellOccupied
}

// Fuse integrates a 360° scan taken at (originX, originZ) into the grid.
//
// Cells along each ray up to the hit distance become Free (unless already
// Occupied); the terminal cell becomes Occupied only when the reading is
// clearly short of the sensor's maximum range.
func (g *Grid) Fuse(originX, originZ float64, readings []Reading, maxRange float64) {
	if g.Cells == nil {
		g.Ensure(DefaultMapSize, DefaultResolution)
	}

	step := 1 / (2 * float64(g.Resolution)) // half a cell per step
	for _, r := range readings {
		dx := math.Sin(r.Angle)
		dz := math.Cos(r.Angle)

		for d := 0.0; d < r.Distance; d += step {
			g.markFree(originX+dx*d, originZ+dz*d)
		}
		if r.Distance < missCutoff*maxRange {
			g.markOccupied(originX+dx*r.Distance, originZ+dz*r.Distance)
		}
	}
}

// Counts returns how many cells are known free and occupied.
func (g *Grid) Counts() (free, occupied int) {
	for _, c := range g.Cells {
		switch c {
		case CellFree:
			free++
		case CellOccupied:
			occupied++
		}
	}
	return free, occupied
}
