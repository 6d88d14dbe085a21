package surface

import (
	"math"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
)

// intersectCylinder solves a ray against an infinite cylinder whose axis
// runs along local Y with its curvature circle in the local X-Z plane,
// centered on the center of curvature at the origin. The quadratic is
// the 2-D circle solve ignoring the unbounded axis; root selection uses
// the same signed-radius convention as the sphere. The transverse
// width/height extents are enforced by the aperture gate.
func intersectCylinder(origin, direction core.Vec3, radius float64) (Intersection, Anomaly) {
	r2 := radius * radius

	a := direction.X*direction.X + direction.Z*direction.Z
	if a < core.Epsilon*core.Epsilon {
		// Ray runs along the cylinder axis
		return Intersection{}, AnomalyParallel
	}

	if radius > 0 && origin.X*origin.X+origin.Z*origin.Z <= r2 {
		return Intersection{}, AnomalyInsideSphere
	}

	halfB := origin.X*direction.X + origin.Z*direction.Z
	c := origin.X*origin.X + origin.Z*origin.Z - r2

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return Intersection{}, AnomalyNone
	}

	sqrtD := math.Sqrt(discriminant)
	var t float64
	if radius > 0 {
		t = (-halfB - sqrtD) / a
	} else {
		t = (-halfB + sqrtD) / a
	}

	if t <= core.Epsilon || t > core.MaxIntersectDistance {
		return Intersection{}, AnomalyNone
	}

	point := origin.Add(direction.Multiply(t))
	normal := core.NewVec3(point.X/radius, 0, point.Z/radius)

	return Intersection{
		Point:  point,
		Normal: normal.Normalize(),
		T:      t,
		Valid:  true,
	}, AnomalyNone
}
