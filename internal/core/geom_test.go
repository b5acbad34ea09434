package core

import (
	"math"
	"testing"
)

func TestVec3Length(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected float64
	}{
		{"zero vector", V3(0, 0, 0), 0},
		{"unit x", V3(1, 0, 0), 1},
		{"pythagorean", V3(3, 4, 0), 5},
		{"negative components", V3(-3, 0, -4), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.Length(); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Length() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestVec3Normalized(t *testing.T) {
	v := V3(0, 3, 4).Normalized()
	if math.Abs(v.Length()-1) > 1e-9 {
		t.Errorf("Normalized() length = %v, expected 1", v.Length())
	}

	// Zero vector stays zero instead of producing NaN
	z := V3(0, 0, 0).Normalized()
	if z != (Vec3{}) {
		t.Errorf("Normalized() of zero vector = %v, expected zero", z)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		name          string
		val, min, max float64
		expected      float64
	}{
		{"below range", -10, -5, 5, -5},
		{"above range", 10, -5, 5, 5},
		{"inside range", 3, -5, 5, 3},
		{"at boundary", 5, -5, 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
				t.Errorf("ClampF(%v) = %v, expected %v", tc.val, got, tc.expected)
			}
		})
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	for _, deg := range []float64{-180, -90, 0, 45, 90, 180} {
		back := Rad2Deg(Deg2Rad(deg))
		if math.Abs(back-deg) > 1e-9 {
			t.Errorf("Rad2Deg(Deg2Rad(%v)) = %v", deg, back)
		}
	}
}

func TestEaseInOut(t *testing.T) {
	// Endpoints are fixed
	if got := EaseInOut(0); got != 0 {
		t.Errorf("EaseInOut(0) = %v, expected 0", got)
	}
	if got := EaseInOut(1); got != 1 {
		t.Errorf("EaseInOut(1) = %v, expected 1", got)
	}
	// Midpoint is exactly 0.5 for the quadratic blend
	if got := EaseInOut(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("EaseInOut(0.5) = %v, expected 0.5", got)
	}
	// Monotonically non-decreasing across [0, 1]
	prev := 0.0
	for i := 0; i <= 100; i++ {
		v := EaseInOut(float64(i) / 100)
		if v < prev {
			t.Fatalf("EaseInOut not monotonic at t=%v: %v < %v", float64(i)/100, v, prev)
		}
		prev = v
	}
}
