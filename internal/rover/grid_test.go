package rover

import (
	"math"
	"testing"
)

func TestGridAllocation(t *testing.T) {
	g := NewGrid(10, 5)
	if g.Side() != 50 {
		t.Errorf("Side() = %d, expected 50", g.Side())
	}
	if len(g.Cells) != 2500 {
		t.Errorf("len(Cells) = %d, expected 2500", len(g.Cells))
	}
	for i, c := range g.Cells {
		if c != CellUnknown {
			t.Fatalf("cell %d = %v, expected Unknown", i, c)
		}
	}
}

func TestGridEnsureReallocatesOnMismatch(t *testing.T) {
	g := NewGrid(10, 5)
	g.markOccupied(1, 1)

	// Same parameters: knowledge retained.
	g.Ensure(10, 5)
	if g.At(1, 1) != CellOccupied {
		t.Error("Ensure() with matching size discarded cells")
	}

	// Changed parameters: fresh Unknown grid.
	g.Ensure(8, 4)
	if g.Side() != 32 {
		t.Errorf("Side() = %d, expected 32", g.Side())
	}
	if g.At(1, 1) != CellUnknown {
		t.Error("Ensure() with new size should reset cells to Unknown")
	}
}

func TestGridEnsureDefaults(t *testing.T) {
	g := &Grid{}
	g.Ensure(0, 0)
	if g.Size != DefaultMapSize || g.Resolution != DefaultResolution {
		t.Errorf("Ensure(0,0) = size %v res %d, expected defaults", g.Size, g.Resolution)
	}
}

func TestGridOutOfBounds(t *testing.T) {
	g := NewGrid(10, 5)
	if got := g.At(100, 100); got != CellUnknown {
		t.Errorf("At() outside grid = %v, expected Unknown", got)
	}
	// Marking outside the grid must be a silent no-op.
	g.markFree(100, 100)
	g.markOccupied(-100, 0)
}

func TestFuseMarksFreeAndOccupied(t *testing.T) {
	g := NewGrid(10, 5)

	// One ray along +Z hitting at 2 m, well below the miss cutoff.
	readings := []Reading{{Angle: 0, Distance: 2.0}}
	g.Fuse(0, 0, readings, SensorMaxRange)

	if got := g.At(0, 1.0); got != CellFree {
		t.Errorf("cell along ray = %v, expected Free", got)
	}
	if got := g.At(0, 2.0); got != CellOccupied {
		t.Errorf("terminal cell = %v, expected Occupied", got)
	}
	// Off-ray cells stay Unknown.
	if got := g.At(2.0, -2.0); got != CellUnknown {
		t.Errorf("off-ray cell = %v, expected Unknown", got)
	}
}

func TestFuseNearMaxRangeIsNotAnObstacle(t *testing.T) {
	g := NewGrid(10, 5)

	// 4.8 m of 5.0 m max is above the 95% cutoff: free space, no obstacle.
	readings := []Reading{{Angle: 0, Distance: 4.8}}
	g.Fuse(0, 0, readings, SensorMaxRange)

	_, occupied := g.Counts()
	if occupied != 0 {
		t.Errorf("near-max reading produced %d occupied cells, expected 0", occupied)
	}
	if got := g.At(0, 3.0); got != CellFree {
		t.Errorf("cell along ray = %v, expected Free", got)
	}
}

func TestFuseOccupiedIsSticky(t *testing.T) {
	g := NewGrid(10, 5)

	// First scan sees an obstacle at 2 m along +Z.
	g.Fuse(0, 0, []Reading{{Angle: 0, Distance: 2.0}}, SensorMaxRange)
	if got := g.At(0, 2.0); got != CellOccupied {
		t.Fatalf("terminal cell = %v, expected Occupied", got)
	}

	// Later scans pass through that cell with no hit: Occupied must stay.
	for i := 0; i < 10; i++ {
		g.Fuse(0, 0, []Reading{{Angle: 0, Distance: 4.8}}, SensorMaxRange)
	}
	if got := g.At(0, 2.0); got != CellOccupied {
		t.Errorf("occupied cell was downgraded to %v", got)
	}
}

func TestFuseLazyAllocation(t *testing.T) {
	g := &Grid{}
	g.Fuse(0, 0, []Reading{{Angle: math.Pi / 2, Distance: 1.0}}, SensorMaxRange)
	if g.Cells == nil {
		t.Fatal("Fuse() on empty grid should allocate")
	}
	if g.At(1.0, 0) != CellOccupied {
		t.Errorf("terminal cell = %v, expected Occupied", g.At(1.0, 0))
	}
}
