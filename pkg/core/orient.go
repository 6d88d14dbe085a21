package core

import "math"

// Backward is the canonical backward axis. Surfaces face the incoming
// rays along it; rays nominally travel along +X.
var Backward = NewVec3(-1, 0, 0)

// UprightRotation returns the rotation carrying the canonical backward
// axis onto target with a deterministic roll convention: first roll
// about the canonical X axis to line up the azimuthal projections, then
// close the remaining gap with a single Rodrigues rotation. A single
// great-circle rotation would orient the axis just as well but flips the
// in-plane orientation discontinuously as the target crosses the axis;
// the two-step form keeps the roll continuous.
func UprightRotation(target Vec3) Matrix4 {
	n := target.Normalize()

	roll := Identity()
	if math.Hypot(n.Y, n.Z) > Epsilon {
		roll = RotationX(math.Atan2(n.Z, n.Y))
	}

	gap := Backward.AngleBetween(n)
	if gap < Epsilon {
		return roll
	}

	axis := Backward.Cross(n)
	if axis.Length() < Epsilon {
		// Target is anti-parallel to the canonical axis
		axis = NewVec3(0, 1, 0)
	}
	return Rodrigues(axis, gap).Mul(roll)
}
