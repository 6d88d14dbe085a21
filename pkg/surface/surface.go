package surface

import (
	"github.com/optibench/go-sequential-raytracer/pkg/core"
)

// Shape identifies the geometric form of an optical surface
type Shape int

const (
	Spherical Shape = iota
	Aspherical       // currently traced with the spherical approximation
	Planar
	Cylindrical
)

// String returns the shape name
func (s Shape) String() string {
	switch s {
	case Spherical:
		return "spherical"
	case Aspherical:
		return "aspherical"
	case Planar:
		return "planar"
	case Cylindrical:
		return "cylindrical"
	default:
		return "unknown"
	}
}

// Mode identifies how a surface interacts with a ray that hits it
type Mode int

const (
	Refraction Mode = iota
	Reflection
	Partial
	Absorption
	Aperture
	Diffuse
	Inactive
)

// String returns the interaction mode name
func (m Mode) String() string {
	switch m {
	case Refraction:
		return "refraction"
	case Reflection:
		return "reflection"
	case Partial:
		return "partial"
	case Absorption:
		return "absorption"
	case Aperture:
		return "aperture"
	case Diffuse:
		return "diffuse"
	case Inactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// Surface represents one placed optical element. Position is the vertex:
// the point where the optical axis meets the surface. For curved shapes
// the local frame's origin sits at the center of curvature instead, which
// is what the closed-form intersection math wants.
//
// Forward maps world to local coordinates, Inverse maps local back to
// world. Both are computed once by Recompute and reused for every ray;
// they must be recomputed whenever pose or dial changes.
type Surface struct {
	ID    string
	Index int // sequential position in the system, set at build time

	Shape Shape
	Mode  Mode

	// Radius is the signed radius of curvature: positive bulges toward
	// the incoming rays (convex), negative is concave. Zero for planar.
	Radius float64

	// Circular aperture half-diameter; if zero and Width/Height are set
	// the aperture is rectangular instead
	Semidia       float64
	Width, Height float64

	Position core.Vec3 // vertex in world coordinates
	Normal   core.Vec3 // unit, facing the incoming rays
	Dial     float64   // roll about the normal, radians

	N1, N2       float64 // incident-side and transmitted-side indices
	Transmission float64 // partial mode: fraction transmitted, default 0.5

	// Selects reports whether this surface acts on the given wavelength
	// (nm). Nil means the surface acts on every wavelength.
	Selects func(wavelengthNm float64) bool

	Forward core.Matrix4 // world → local
	Inverse core.Matrix4 // local → world
}

// IsCurved reports whether the local origin is the center of curvature
func (s *Surface) IsCurved() bool {
	return s.Shape != Planar && s.Radius != 0
}

// WithinAperture reports whether a local-frame point falls inside the
// surface's aperture footprint. Radial comparison is done squared to
// skip the square root.
func (s *Surface) WithinAperture(p core.Vec3) bool {
	if s.Semidia > 0 {
		return p.Y*p.Y+p.Z*p.Z <= s.Semidia*s.Semidia
	}
	if s.Width > 0 && s.Height > 0 {
		return p.Y >= -s.Width/2 && p.Y <= s.Width/2 &&
			p.Z >= -s.Height/2 && p.Z <= s.Height/2
	}
	return p.Y*p.Y+p.Z*p.Z <= core.DefaultSemidia*core.DefaultSemidia
}

// SelectsWavelength reports whether the surface acts on the wavelength
func (s *Surface) SelectsWavelength(nm float64) bool {
	if s.Selects == nil {
		return true
	}
	return s.Selects(nm)
}
