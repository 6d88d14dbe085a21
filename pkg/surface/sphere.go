package surface

import (
	"math"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
)

// intersectSphere solves the quadratic |O + tD|² = R² in the local frame,
// whose origin is the center of curvature.
//
// Root selection follows the sign of the radius. A convex surface
// (R > 0) bulges toward the incoming ray: the ray must start outside the
// sphere and the nearer root is the real surface; finding the origin
// inside is a geometry anomaly. A concave surface (R < 0) wraps around
// the ray, which starts inside the notional sphere, so the farther root
// is always the one that exists. Collapsing this asymmetry breaks
// convex/concave elements, so it is kept explicit.
func intersectSphere(origin, direction core.Vec3, radius float64) (Intersection, Anomaly) {
	r2 := radius * radius

	if radius > 0 && origin.LengthSquared() <= r2 {
		return Intersection{}, AnomalyInsideSphere
	}

	a := direction.Dot(direction)
	halfB := origin.Dot(direction)
	c := origin.LengthSquared() - r2

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return Intersection{}, AnomalyNone
	}

	sqrtD := math.Sqrt(discriminant)
	var t float64
	if radius > 0 {
		t = (-halfB - sqrtD) / a // nearer root
	} else {
		t = (-halfB + sqrtD) / a // farther root
	}

	if t <= core.Epsilon || t > core.MaxIntersectDistance {
		return Intersection{}, AnomalyNone
	}

	point := origin.Add(direction.Multiply(t))
	// Dividing by the signed radius orients the normal backward toward
	// the incoming side for both convex and concave surfaces
	normal := point.Multiply(1.0 / radius)

	return Intersection{
		Point:  point,
		Normal: normal.Normalize(),
		T:      t,
		Valid:  true,
	}, AnomalyNone
}
