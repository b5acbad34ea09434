package rover

import (
	"math"
	"testing"
	"time"

	"github.com/msorokin/robolab/internal/core"
)

// stubWorld returns a fixed distance for every ray and counts queries.
type stubWorld struct {
	distance float64
	hit      bool
	queries  int
	lastDir  core.Vec3
}

func (w *stubWorld) Raycast(origin, dir core.Vec3, maxRange float64) (float64, bool) {
	w.queries++
	w.lastDir = dir
	return w.distance, w.hit
}

func TestDistanceMissReadsMaxRange(t *testing.T) {
	w := &stubWorld{hit: false}
	s := NewSensor(w)
	st := NewState()

	if d := s.Distance(t0, &st); d != SensorMaxRange {
		t.Errorf("Distance() = %v, expected max range %v", d, SensorMaxRange)
	}
}

func TestDistanceRateGate(t *testing.T) {
	w := &stubWorld{distance: 2.0, hit: true}
	s := NewSensor(w)
	st := NewState()

	s.Distance(t0, &st)
	if w.queries != 1 {
		t.Fatalf("first read should query the world, got %d queries", w.queries)
	}

	// Within the 100 ms window: cached value, no new ray.
	w.distance = 1.0
	if d := s.Distance(t0.Add(50*time.Millisecond), &st); d != 2.0 {
		t.Errorf("gated read = %v, expected cached 2.0", d)
	}
	if w.queries != 1 {
		t.Errorf("gated read queried the world (%d queries)", w.queries)
	}

	// Past the window: fresh sample.
	if d := s.Distance(t0.Add(150*time.Millisecond), &st); d != 1.0 {
		t.Errorf("fresh read = %v, expected 1.0", d)
	}
	if w.queries != 2 {
		t.Errorf("expected 2 queries, got %d", w.queries)
	}
}

func TestDistanceCastsAlongHeading(t *testing.T) {
	w := &stubWorld{distance: 1.0, hit: true}
	s := NewSensor(w)
	st := NewState()
	st.Heading = math.Pi / 2 // facing +X

	s.Distance(t0, &st)
	if math.Abs(w.lastDir.X-1) > 1e-9 || math.Abs(w.lastDir.Z) > 1e-9 {
		t.Errorf("ray direction = %+v, expected +X", w.lastDir)
	}
}

func TestDistanceClampsBelowZero(t *testing.T) {
	w := &stubWorld{distance: -0.5, hit: true}
	s := NewSensor(w)
	st := NewState()

	if d := s.Distance(t0, &st); d != 0 {
		t.Errorf("Distance() = %v, expected clamp to 0", d)
	}
}

func TestScanWorldAnchored(t *testing.T) {
	w := &stubWorld{hit: false}
	s := NewSensor(w)
	st := NewState()
	st.Heading = 1.3 // scan angles must ignore this

	readings := s.Scan(&st)
	if len(readings) != DefaultScanRays {
		t.Fatalf("Scan() returned %d readings, expected %d", len(readings), DefaultScanRays)
	}

	for i, r := range readings {
		want := float64(i) * 2 * math.Pi / float64(DefaultScanRays)
		if math.Abs(r.Angle-want) > 1e-9 {
			t.Errorf("reading %d angle = %v, expected %v", i, r.Angle, want)
		}
		if r.Distance != SensorMaxRange {
			t.Errorf("reading %d distance = %v, expected max range on miss", i, r.Distance)
		}
	}
}

func TestScanCustomRayCount(t *testing.T) {
	w := &stubWorld{distance: 3.0, hit: true}
	s := NewSensor(w)
	s.SetRays(8)
	st := NewState()

	readings := s.Scan(&st)
	if len(readings) != 8 {
		t.Errorf("Scan() returned %d readings, expected 8", len(readings))
	}
	if w.queries != 8 {
		t.Errorf("expected 8 world queries, got %d", w.queries)
	}
}
