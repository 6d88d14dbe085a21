package surface

import (
	"math"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
)

// intersectPlane solves the single root of a ray against the local plane
// x = 0, whose normal is the canonical backward axis. Rays parallel to
// the plane or moving away from it are geometric anomalies.
func intersectPlane(origin, direction core.Vec3) (Intersection, Anomaly) {
	if math.Abs(direction.X) < core.Epsilon {
		return Intersection{}, AnomalyParallel
	}
	// The plane faces -X; a ray must travel toward +X to reach its front
	if direction.X <= 0 {
		return Intersection{}, AnomalyParallel
	}

	t := -origin.X / direction.X
	if t <= core.Epsilon || t > core.MaxIntersectDistance {
		return Intersection{}, AnomalyNone
	}

	point := origin.Add(direction.Multiply(t))
	return Intersection{
		Point:  point,
		Normal: CanonicalBackward,
		T:      t,
		Valid:  true,
	}, AnomalyNone
}
