package lightsource

import (
	"math"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
)

// forward is every bundle's local propagation axis
var forward = core.NewVec3(1, 0, 0)

// inPlane rotates a (y, z) footprint offset by the dial angle
func (ls *LightSource) inPlane(y, z float64) core.Vec3 {
	if ls.Dial == 0 {
		return core.NewVec3(0, y, z)
	}
	c, s := math.Cos(ls.Dial), math.Sin(ls.Dial)
	return core.NewVec3(0, y*c-z*s, y*s+z*c)
}

// linearBundle spaces rays evenly along a line of the source width
func (ls *LightSource) linearBundle(n int) []localRay {
	rays := make([]localRay, 0, n)
	for i := 0; i < n; i++ {
		y := 0.0
		if n > 1 {
			y = -ls.Width/2 + ls.Width*float64(i)/float64(n-1)
		}
		rays = append(rays, localRay{origin: ls.inPlane(y, 0), direction: forward})
	}
	return rays
}

// ringBundle spaces rays evenly around an ellipse of the source radius
// stretched by the aspect ratio
func (ls *LightSource) ringBundle(n int) []localRay {
	aspect := ls.Aspect
	if aspect <= 0 {
		aspect = 1.0
	}
	rays := make([]localRay, 0, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		y := ls.Radius * math.Cos(theta)
		z := ls.Radius * aspect * math.Sin(theta)
		rays = append(rays, localRay{origin: ls.inPlane(y, z), direction: forward})
	}
	return rays
}

// uniformBundle emits a center ray plus concentric hexagonal rings, the
// usual even-area approximation for a circular pupil. Ring k carries 6k
// rays; rings are added until the requested count is reached, truncating
// the outermost ring.
func (ls *LightSource) uniformBundle(n int) []localRay {
	// Smallest ring count K with 1 + 3K(K+1) >= n
	rings := 0
	for 1+3*rings*(rings+1) < n {
		rings++
	}
	step := ls.Radius
	if rings > 0 {
		step = ls.Radius / float64(rings)
	}

	rays := make([]localRay, 0, n)
	rays = append(rays, localRay{origin: ls.inPlane(0, 0), direction: forward})
	for k := 1; k <= rings && len(rays) < n; k++ {
		count := 6 * k
		radius := step * float64(k)
		for i := 0; i < count && len(rays) < n; i++ {
			theta := 2 * math.Pi * float64(i) / float64(count)
			rays = append(rays, localRay{
				origin:    ls.inPlane(radius*math.Cos(theta), radius*math.Sin(theta)),
				direction: forward,
			})
		}
	}
	return rays
}

// gaussianBundle samples footprint offsets from a normal distribution
// whose sigma matches the 1/e² half-width convention
func (ls *LightSource) gaussianBundle(n int) []localRay {
	gen := core.NewLCG(ls.Seed)
	// Intensity ∝ exp(-2r²/w²) means each axis is normal with σ = w/2
	sigma := ls.Width / 2

	rays := make([]localRay, 0, n)
	for i := 0; i < n; i++ {
		y := sigma * gen.NormFloat64()
		z := sigma * gen.NormFloat64()
		rays = append(rays, localRay{origin: ls.inPlane(y, z), direction: forward})
	}
	return rays
}

// pointBundle emits every ray from the origin. With positive divergence
// the directions are sampled uniformly over the solid angle of the cone,
// not uniformly in polar angle, so the bundle does not clump on-axis.
func (ls *LightSource) pointBundle(n int) []localRay {
	if ls.Divergence <= 0 {
		rays := make([]localRay, n)
		for i := range rays {
			rays[i] = localRay{direction: forward}
		}
		return rays
	}

	gen := core.NewLCG(ls.Seed)
	cosMax := math.Cos(ls.Divergence)

	rays := make([]localRay, 0, n)
	for i := 0; i < n; i++ {
		cosTheta := 1 - gen.Float64()*(1-cosMax)
		sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
		phi := 2 * math.Pi * gen.Float64()
		dir := core.NewVec3(
			cosTheta,
			sinTheta*math.Cos(phi),
			sinTheta*math.Sin(phi),
		)
		rays = append(rays, localRay{direction: dir})
	}
	return rays
}
