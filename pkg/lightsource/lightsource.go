package lightsource

import (
	"github.com/optibench/go-sequential-raytracer/pkg/core"
)

// Pattern identifies the spatial/angular layout of an emitted ray bundle
type Pattern int

const (
	Linear Pattern = iota
	Ring
	Uniform
	Gaussian
	Point
)

// String returns the pattern name
func (p Pattern) String() string {
	switch p {
	case Linear:
		return "linear"
	case Ring:
		return "ring"
	case Uniform:
		return "uniform"
	case Gaussian:
		return "gaussian"
	case Point:
		return "point"
	default:
		return "unknown"
	}
}

// LightSource emits a deterministic bundle of rays. Randomized patterns
// draw from a seeded generator so identical parameters always reproduce
// identical ray sets, which optimization loops depend on.
type LightSource struct {
	Position   core.Vec3
	Direction  core.Vec3 // propagation direction; defaults to +X
	Wavelength float64   // nanometers

	NumberOfRays int
	Pattern      Pattern

	Width      float64 // linear: line width; gaussian: 1/e² half-width
	Radius     float64 // ring and uniform: bundle radius
	Aspect     float64 // ring: ellipse aspect ratio, default 1
	Divergence float64 // point: cone half-angle, radians
	Dial       float64 // in-plane rotation of the footprint, radians

	Seed      uint64
	Source    int     // light id source number
	Intensity float64 // per-ray intensity; defaults to 1
}

// Generate produces the source's ray bundle in world space. Rays are
// laid out in the source's local frame (offsets in the Y-Z plane,
// propagation along +X) and mapped through one shared transform.
func (ls *LightSource) Generate() []core.Ray {
	n := ls.NumberOfRays
	if n <= 0 {
		return nil
	}
	direction := ls.Direction
	if direction.Length() < core.Epsilon {
		direction = core.NewVec3(1, 0, 0)
	} else {
		direction = direction.Normalize()
	}
	intensity := ls.Intensity
	if intensity <= 0 {
		intensity = 1.0
	}

	var local []localRay
	switch ls.Pattern {
	case Linear:
		local = ls.linearBundle(n)
	case Ring:
		local = ls.ringBundle(n)
	case Uniform:
		local = ls.uniformBundle(n)
	case Gaussian:
		local = ls.gaussianBundle(n)
	case Point:
		local = ls.pointBundle(n)
	default:
		local = ls.linearBundle(n)
	}

	// One shared transform: rotate local +X onto the propagation
	// direction, then translate to the source position
	rotation := core.UprightRotation(direction.Negate())

	rays := make([]core.Ray, 0, len(local))
	for _, lr := range local {
		origin := ls.Position.Add(rotation.TransformDirection(lr.origin))
		dir := rotation.TransformDirection(lr.direction)
		ray := core.NewRay(origin, dir, ls.Wavelength)
		ray.Intensity = intensity
		ray.ID = core.NewLightID(ls.Source)
		rays = append(rays, ray)
	}
	return rays
}

// localRay is a pre-transform ray in the source's own frame
type localRay struct {
	origin    core.Vec3
	direction core.Vec3
}
