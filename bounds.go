package wfobj

import (
	"github.com/flywave/go3d/vec3"
)

// Bounds is an axis-aligned bounding box over a Scene's position pool.
type Bounds struct {
	Min vec3.T
	Max vec3.T
}

// Center returns the midpoint of the box.
func (b Bounds) Center() vec3.T {
	return vec3.T{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Bounds computes the axis-aligned bounding box of every position in the
// scene's pool, regardless of which meshes actually reference it. Returns
// a zero Bounds for a scene with no positions.
//
// Grounded on _examples/other_examples/flywave-go-obj reader_test.go's use
// of vec3.T/vec3.Sub for scene-centering math.
func (s *Scene) Bounds() Bounds {
	if len(s.Positions) == 0 {
		return Bounds{}
	}

	first := s.Positions[0]
	min := vec3.T{first.X, first.Y, first.Z}
	max := min

	for _, p := range s.Positions[1:] {
		if p.X < min[0] {
			min[0] = p.X
		}
		if p.Y < min[1] {
			min[1] = p.Y
		}
		if p.Z < min[2] {
			min[2] = p.Z
		}
		if p.X > max[0] {
			max[0] = p.X
		}
		if p.Y > max[1] {
			max[1] = p.Y
		}
		if p.Z > max[2] {
			max[2] = p.Z
		}
	}

	return Bounds{Min: min, Max: max}
}
