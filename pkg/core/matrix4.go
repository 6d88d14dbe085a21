package core

import "math"

// Matrix4 represents a 4×4 homogeneous transform (row-major).
// The upper-left 3×3 block is rotation, the last column is translation.
type Matrix4 struct {
	M [4][4]float64
}

// Identity returns the 4×4 identity matrix
func Identity() Matrix4 {
	return Matrix4{M: [4][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// NewRigidTransform builds a transform from a rotation matrix and a translation.
// The rotation argument's 3×3 block is used; its translation column is ignored.
func NewRigidTransform(rotation Matrix4, translation Vec3) Matrix4 {
	out := rotation
	out.M[0][3] = translation.X
	out.M[1][3] = translation.Y
	out.M[2][3] = translation.Z
	out.M[3] = [4]float64{0, 0, 0, 1}
	return out
}

// Mul returns the matrix product a*b (b applied first)
func (a Matrix4) Mul(b Matrix4) Matrix4 {
	var out Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a.M[r][k] * b.M[k][c]
			}
			out.M[r][c] = sum
		}
	}
	return out
}

// Transpose returns the transposed matrix
func (a Matrix4) Transpose() Matrix4 {
	var out Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out.M[r][c] = a.M[c][r]
		}
	}
	return out
}

// TransformPoint applies the full affine transform to a point (w=1)
func (a Matrix4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: a.M[0][0]*p.X + a.M[0][1]*p.Y + a.M[0][2]*p.Z + a.M[0][3],
		Y: a.M[1][0]*p.X + a.M[1][1]*p.Y + a.M[1][2]*p.Z + a.M[1][3],
		Z: a.M[2][0]*p.X + a.M[2][1]*p.Y + a.M[2][2]*p.Z + a.M[2][3],
	}
}

// TransformDirection applies only the rotation block to a direction (w=0)
func (a Matrix4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		X: a.M[0][0]*d.X + a.M[0][1]*d.Y + a.M[0][2]*d.Z,
		Y: a.M[1][0]*d.X + a.M[1][1]*d.Y + a.M[1][2]*d.Z,
		Z: a.M[2][0]*d.X + a.M[2][1]*d.Y + a.M[2][2]*d.Z,
	}
}

// Translation returns the translation column of the transform
func (a Matrix4) Translation() Vec3 {
	return Vec3{X: a.M[0][3], Y: a.M[1][3], Z: a.M[2][3]}
}

// Inverse returns the exact matrix inverse via Gauss-Jordan elimination
// with partial pivoting. Singular matrices return the identity; surface
// transforms are rigid and never singular in practice.
func (a Matrix4) Inverse() Matrix4 {
	work := a
	out := Identity()

	for col := 0; col < 4; col++ {
		// Partial pivot: pick the largest magnitude entry in this column
		pivot := col
		for r := col + 1; r < 4; r++ {
			if math.Abs(work.M[r][col]) > math.Abs(work.M[pivot][col]) {
				pivot = r
			}
		}
		if work.M[pivot][col] == 0 {
			return Identity()
		}
		if pivot != col {
			work.M[pivot], work.M[col] = work.M[col], work.M[pivot]
			out.M[pivot], out.M[col] = out.M[col], out.M[pivot]
		}

		inv := 1.0 / work.M[col][col]
		for c := 0; c < 4; c++ {
			work.M[col][c] *= inv
			out.M[col][c] *= inv
		}
		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			factor := work.M[r][col]
			if factor == 0 {
				continue
			}
			for c := 0; c < 4; c++ {
				work.M[r][c] -= factor * work.M[col][c]
				out.M[r][c] -= factor * out.M[col][c]
			}
		}
	}
	return out
}

// RotationX returns a rotation about the X axis by angle radians
func RotationX(angle float64) Matrix4 {
	c, s := math.Cos(angle), math.Sin(angle)
	out := Identity()
	out.M[1][1], out.M[1][2] = c, -s
	out.M[2][1], out.M[2][2] = s, c
	return out
}

// Rodrigues returns the rotation about an arbitrary unit axis by angle
// radians, built from the axis-angle (Rodrigues) formula.
func Rodrigues(axis Vec3, angle float64) Matrix4 {
	u := axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c

	out := Identity()
	out.M[0][0] = c + u.X*u.X*t
	out.M[0][1] = u.X*u.Y*t - u.Z*s
	out.M[0][2] = u.X*u.Z*t + u.Y*s
	out.M[1][0] = u.Y*u.X*t + u.Z*s
	out.M[1][1] = c + u.Y*u.Y*t
	out.M[1][2] = u.Y*u.Z*t - u.X*s
	out.M[2][0] = u.Z*u.X*t - u.Y*s
	out.M[2][1] = u.Z*u.Y*t + u.X*s
	out.M[2][2] = c + u.Z*u.Z*t
	return out
}
