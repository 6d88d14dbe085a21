package surface

import "github.com/optibench/go-sequential-raytracer/pkg/core"

// Anomaly classifies a geometric irregularity found while intersecting
type Anomaly int

const (
	AnomalyNone Anomaly = iota
	// AnomalyParallel marks a ray moving parallel to or away from the surface
	AnomalyParallel
	// AnomalyInsideSphere marks a ray whose origin is inside a convex surface
	AnomalyInsideSphere
)

// Intersection is one local-frame ray-surface hit candidate
type Intersection struct {
	Point  core.Vec3 // local hit point
	Normal core.Vec3 // local unit normal at the hit, facing backward
	T      float64   // parametric distance along the ray
	Valid  bool
}

// IntersectLocal solves the shape-specific intersection in the surface's
// local frame. The origin and direction must already be transformed by
// the surface's forward matrix. Aperture and front-face acceptance are
// the caller's job; this only solves the geometry.
func (s *Surface) IntersectLocal(origin, direction core.Vec3) (Intersection, Anomaly) {
	switch s.Shape {
	case Planar:
		return intersectPlane(origin, direction)
	case Spherical, Aspherical:
		if s.Radius == 0 {
			return intersectPlane(origin, direction)
		}
		return intersectSphere(origin, direction, s.Radius)
	case Cylindrical:
		if s.Radius == 0 {
			return intersectPlane(origin, direction)
		}
		return intersectCylinder(origin, direction, s.Radius)
	default:
		return Intersection{}, AnomalyNone
	}
}
