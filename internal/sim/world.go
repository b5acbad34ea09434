package sim

import (
	"math"

	"github.com/msorokin/robolab/internal/core"
)

// TagObstacle marks geometry the distance sensor can see. Entries carrying
// any other tag (decoration, helpers) are never raycast candidates; the
// robot's own body and the ground are simply not part of the world model.
const TagObstacle = "obstacle"

// Circle is a cylindrical obstacle on the ground plane.
type Circle struct {
	Tag    string
	X, Z   float64
	Radius float64
}

// Wall is a vertical wall segment on the ground plane.
type Wall struct {
	Tag            string
	X1, Z1, X2, Z2 float64
}

// ObstacleWorld answers ray queries against tagged obstacle geometry.
// It implements rover.World.
type ObstacleWorld struct {
	Circles []Circle
	Walls   []Wall
}

// Raycast returns the nearest obstacle hit along the ray, in the XZ plane.
func (w *ObstacleWorld) Raycast(origin, dir core.Vec3, maxRange float64) (float64, bool) {
	nearest := maxRange
	hit := false

	for _, c := range w.Circles {
		if c.Tag != TagObstacle {
			continue
		}
		if d, ok := rayCircle(origin.X, origin.Z, dir.X, dir.Z, c.X, c.Z, c.Radius); ok && d <= nearest {
			nearest = d
			hit = true
		}
	}
	for _, s := range w.Walls {
		if s.Tag != TagObstacle {
			continue
		}
		if d, ok := raySegment(origin.X, origin.Z, dir.X, dir.Z, s.X1, s.Z1, s.X2, s.Z2); ok && d <= nearest {
			nearest = d
			hit = true
		}
	}
	return nearest, hit
}

// rayCircle intersects a 2D ray with a circle and returns the nearest
// non-negative hit distance.
func rayCircle(ox, oz, dx, dz, cx, cz, r float64) (float64, bool) {
	// Normalize the direction so t is a distance.
	l := math.Hypot(dx, dz)
	if l == 0 {
		return 0, false
	}
	dx /= l
	dz /= l

	fx := ox - cx
	fz := oz - cz
	b := fx*dx + fz*dz
	c := fx*fx + fz*fz - r*r

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq // origin inside the circle
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// raySegment intersects a 2D ray with a line segment and returns the hit
// distance along the ray.
func raySegment(ox, oz, dx, dz, x1, z1, x2, z2 float64) (float64, bool) {
	l := math.Hypot(dx, dz)
	if l == 0 {
		return 0, false
	}
	dx /= l
	dz /= l

	sx := x2 - x1
	sz := z2 - z1

	denom := dx*sz - dz*sx
	if math.Abs(denom) < 1e-12 {
		return 0, false // parallel
	}

	t := ((x1-ox)*sz - (z1-oz)*sx) / denom // distance along the ray
	u := ((x1-ox)*dz - (z1-oz)*dx) / denom // position along the segment
	if t < 0 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
