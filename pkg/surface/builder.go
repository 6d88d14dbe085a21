package surface

import (
	"math"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
)

// CanonicalBackward is the local surface normal axis: surfaces face the
// incoming rays, which nominally travel along +X.
var CanonicalBackward = core.Backward

// NormalFromAngles converts azimuth/elevation (radians) into a unit
// normal relative to the canonical backward axis. Zero angles give the
// backward axis itself; azimuth swings the normal in the X-Y plane,
// elevation tilts it toward +Z.
func NormalFromAngles(azimuth, elevation float64) core.Vec3 {
	return core.NewVec3(
		-math.Cos(elevation)*math.Cos(azimuth),
		-math.Cos(elevation)*math.Sin(azimuth),
		math.Sin(elevation),
	)
}

// Recompute rebuilds the surface's forward and inverse transforms from
// its current pose. Malformed normals silently fall back to the
// canonical backward axis; a missing aperture gets the nominal default
// semi-diameter. Callers must invoke this after any pose or dial change.
func (s *Surface) Recompute() {
	if s.Normal.Length() < core.Epsilon || hasNaN(s.Normal) {
		s.Normal = CanonicalBackward
	} else {
		s.Normal = s.Normal.Normalize()
	}
	if s.Semidia <= 0 && (s.Width <= 0 || s.Height <= 0) {
		s.Semidia = core.DefaultSemidia
	}
	if s.Mode == Partial && s.Transmission <= 0 {
		s.Transmission = 0.5
	}

	rotation := core.UprightRotation(s.Normal)
	if s.Dial != 0 {
		// Dial rolls the aperture footprint about the already-aligned
		// normal; the normal itself is unchanged
		rotation = core.Rodrigues(s.Normal, s.Dial).Mul(rotation)
	}

	// Curved shapes put the local origin at the center of curvature so
	// the quadratic intersection solves against the origin
	origin := s.Position
	if s.IsCurved() {
		origin = s.Position.Subtract(s.Normal.Multiply(s.Radius))
	}

	// Forward is world → local: transpose of the local → world rotation
	// plus the matching translation
	rt := rotation.Transpose()
	s.Forward = core.NewRigidTransform(rt, rt.TransformDirection(origin.Negate()))
	// The inverse is always taken as the exact matrix inverse rather
	// than rebuilt from the pose, so the pair can never drift apart
	s.Inverse = s.Forward.Inverse()
}

func hasNaN(v core.Vec3) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// Assembly places a group of surfaces that share one local frame
type Assembly struct {
	Position core.Vec3
	Normal   core.Vec3
	Dial     float64
}

// Place applies the assembly transform to every member surface. Members
// are expected to be built in assembly-local coordinates; their position
// and normal are rewritten in world coordinates and their transforms
// recomputed. Building locally and placing globally keeps the spacing
// between members invariant to where the assembly lands in the system.
func (a Assembly) Place(members []*Surface) {
	normal := a.Normal
	if normal.Length() < core.Epsilon || hasNaN(normal) {
		normal = CanonicalBackward
	} else {
		normal = normal.Normalize()
	}

	rotation := core.UprightRotation(normal)
	if a.Dial != 0 {
		rotation = core.Rodrigues(normal, a.Dial).Mul(rotation)
	}

	for _, m := range members {
		local := m.Normal
		if local.Length() < core.Epsilon || hasNaN(local) {
			local = CanonicalBackward
		}
		m.Position = a.Position.Add(rotation.TransformDirection(m.Position))
		m.Normal = rotation.TransformDirection(local)
		m.Recompute()
	}
}
