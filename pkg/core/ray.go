package core

import (
	"fmt"
	"strings"
)

// Unterminated marks a ray that no surface has stopped yet
const Unterminated = -1

// LightID identifies one branch of a traced light path. Source is the
// emitting light source number; Branches records, in order, the digit
// appended at each partial-surface split this branch did not dominate.
// The dominant branch at a split keeps its id unchanged, so the digit
// history alone makes every branch in a trace tree unique.
//
// Rendered form matches the classic fractional notation: source 1 with
// branch digits [1, 2] prints as "1.12".
type LightID struct {
	Source   int
	Branches []int
}

// NewLightID creates the root id for a light source
func NewLightID(source int) LightID {
	return LightID{Source: source}
}

// Child returns a copy of the id with one more branch digit appended.
// The receiver's digit slice is never aliased by the child.
func (id LightID) Child(digit int) LightID {
	branches := make([]int, len(id.Branches)+1)
	copy(branches, id.Branches)
	branches[len(id.Branches)] = digit
	return LightID{Source: id.Source, Branches: branches}
}

// Equal reports whether two ids identify the same branch
func (id LightID) Equal(other LightID) bool {
	if id.Source != other.Source || len(id.Branches) != len(other.Branches) {
		return false
	}
	for i, d := range id.Branches {
		if d != other.Branches[i] {
			return false
		}
	}
	return true
}

// String renders the id in fractional notation, e.g. "1", "1.1", "1.12".
// Digits of 10 or more render parenthesized so the notation stays
// unambiguous past nine splits; equality always uses the digit slice.
func (id LightID) String() string {
	if len(id.Branches) == 0 {
		return fmt.Sprintf("%d", id.Source)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d.", id.Source)
	for _, d := range id.Branches {
		if d >= 10 {
			fmt.Fprintf(&sb, "(%d)", d)
		} else {
			fmt.Fprintf(&sb, "%d", d)
		}
	}
	return sb.String()
}

// Ray represents one light ray waypoint: a point, a unit direction, and
// the optical bookkeeping carried along the path. Rays are immutable
// value objects; propagation produces new rays.
type Ray struct {
	Origin     Vec3
	Direction  Vec3    // unit vector
	Wavelength float64 // nanometers
	Intensity  float64 // [0, 1] or unnormalized energy
	ID         LightID
	PathLength float64 // cumulative distance from emission
	StartsAt   int     // surface index the ray entered the system at
	StopsAt    int     // surface index that terminated it, or Unterminated
	Splits     int     // partial-surface splits traversed so far
}

// NewRay creates a ray with unit intensity and no termination marker
func NewRay(origin, direction Vec3, wavelength float64) Ray {
	return Ray{
		Origin:     origin,
		Direction:  direction.Normalize(),
		Wavelength: wavelength,
		Intensity:  1.0,
		StopsAt:    Unterminated,
	}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Advanced returns a copy of the ray moved to a new origin and direction,
// with the path length accrued by the distance from the old origin.
func (r Ray) Advanced(origin, direction Vec3) Ray {
	out := r
	out.PathLength += origin.Subtract(r.Origin).Length()
	out.Origin = origin
	out.Direction = direction.Normalize()
	return out
}
