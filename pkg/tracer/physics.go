package tracer

import (
	"math"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
)

// Tunables for the diffuse scattering heuristic. The cone is sized so
// roughly diffuseSigmaCount standard deviations of scatter still land
// inside the next surface's aperture; both constants are empirical, not
// physics, and are fair game for retuning.
const (
	diffuseSigmaCount = 2.0
	// About half a degree: the floor keeps the scatter from collapsing
	// into a perfect beam when the next element is far away
	diffuseMinSigma = 0.00873
)

// reflectDirection mirrors the incident direction about the normal:
// R = I - 2(I·N)N
func reflectDirection(in, normal core.Vec3) core.Vec3 {
	return in.Subtract(normal.Multiply(2 * in.Dot(normal)))
}

// refractDirection bends the incident direction by the vector form of
// Snell's law. The second return is true on total internal reflection,
// in which case the returned direction is the reflection instead: TIR
// is expected physics, not a fault, and the ray simply turns around.
func refractDirection(in, normal core.Vec3, n1, n2 float64) (core.Vec3, bool) {
	if n2 == 0 {
		return reflectDirection(in, normal), true
	}
	eta := n1 / n2
	cos1 := -in.Dot(normal)

	discriminant := 1 - eta*eta*(1-cos1*cos1)
	if discriminant < 0 {
		return reflectDirection(in, normal), true
	}

	out := in.Multiply(eta).Add(normal.Multiply(eta*cos1 - math.Sqrt(discriminant)))
	return out.Normalize(), false
}

// scatterTowards aims a diffusely scattered ray at a target point with
// Gaussian angular spread sigma, using the context sampler. The basis
// construction mirrors the usual cone-sampling setup.
func scatterTowards(from, target core.Vec3, sigma float64, sampler core.Sampler) core.Vec3 {
	base := target.Subtract(from).Normalize()

	var helper core.Vec3
	if math.Abs(base.X) > 0.1 {
		helper = core.NewVec3(0, 1, 0)
	} else {
		helper = core.NewVec3(1, 0, 0)
	}
	tangent := helper.Cross(base).Normalize()
	bitangent := base.Cross(tangent)

	dy := math.Tan(sigma * sampler.NormFloat64())
	dz := math.Tan(sigma * sampler.NormFloat64())
	return base.Add(tangent.Multiply(dy)).Add(bitangent.Multiply(dz)).Normalize()
}

// diffuseSigma derives the scatter cone sigma from the next surface's
// aperture size and its distance: wide and close means wide scatter,
// small and far means a tight beam that still has a chance of arriving.
func diffuseSigma(apertureRadius, distance float64) float64 {
	if distance <= 0 {
		return diffuseMinSigma
	}
	sigma := math.Atan(apertureRadius/distance) / diffuseSigmaCount
	return math.Max(sigma, diffuseMinSigma)
}
