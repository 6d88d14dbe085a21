package tracer

import (
	"math"
	"testing"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
	"github.com/optibench/go-sequential-raytracer/pkg/surface"
)

func refractor(n1, n2 float64) *surface.Surface {
	s := &surface.Surface{
		ID:      "glass",
		Shape:   surface.Planar,
		Mode:    surface.Refraction,
		Semidia: 100,
		N1:      n1,
		N2:      n2,
	}
	s.Recompute()
	return s
}

func TestRefraction_SnellRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		n1, n2 float64
		theta1 float64
	}{
		{"air to glass shallow", 1.0, 1.5, 0.1},
		{"air to glass steep", 1.0, 1.5, 1.2},
		{"glass to air below critical", 1.5, 1.0, 0.5},
		{"water to glass", 1.33, 1.52, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := refractor(tt.n1, tt.n2)
			directionIn := core.NewVec3(math.Cos(tt.theta1), math.Sin(tt.theta1), 0)
			// Aim through the vertex at the origin
			ray := core.NewRay(directionIn.Multiply(-20), directionIn, 532)

			ctx := NewContext(1)
			res := TraceThroughSurface(ray, s, nil, ctx)

			if !res.Interacted || res.Transmitted == nil {
				t.Fatal("expected a transmitted ray")
			}
			if res.TIR {
				t.Fatal("unexpected total internal reflection")
			}

			sinTheta2 := math.Hypot(res.Transmitted.Direction.Y, res.Transmitted.Direction.Z)
			want := tt.n1 * math.Sin(tt.theta1) / tt.n2
			if math.Abs(sinTheta2-want) > 1e-6 {
				t.Errorf("Snell violated: n1·sinθ1=%g, n2·sinθ2=%g",
					tt.n1*math.Sin(tt.theta1), tt.n2*sinTheta2)
			}
		})
	}
}

func TestRefraction_TotalInternalReflection(t *testing.T) {
	// 60° from glass toward air is past the ~41.8° critical angle
	s := refractor(1.5, 1.0)
	theta := math.Pi / 3
	direction := core.NewVec3(math.Cos(theta), math.Sin(theta), 0)
	ray := core.NewRay(direction.Multiply(-20), direction, 532)

	ctx := NewContext(1)
	res := TraceThroughSurface(ray, s, nil, ctx)

	if !res.Interacted || res.Transmitted == nil {
		t.Fatal("expected a continuing ray")
	}
	if !res.TIR {
		t.Error("expected TIR flag")
	}
	// The continuing ray is the reflection: the X component flips
	if math.Abs(res.Transmitted.Direction.X-(-math.Cos(theta))) > 1e-9 {
		t.Errorf("expected reflected direction, got %v", res.Transmitted.Direction)
	}
	// TIR is expected physics: it must not be logged as a warning
	for _, w := range ctx.Warnings {
		if w.Kind == WarnPhysics {
			t.Errorf("TIR must not produce a physics warning, got %q", w.Message)
		}
	}
}

func TestReflection_Symmetry(t *testing.T) {
	s := &surface.Surface{
		ID:      "mirror",
		Shape:   surface.Planar,
		Mode:    surface.Reflection,
		Semidia: 100,
	}
	s.Recompute()

	for _, theta := range []float64{0.1, 0.5, 1.0, 1.4} {
		direction := core.NewVec3(math.Cos(theta), math.Sin(theta), 0)
		ray := core.NewRay(direction.Multiply(-20), direction, 532)

		ctx := NewContext(1)
		res := TraceThroughSurface(ray, s, nil, ctx)

		if !res.Interacted || res.Transmitted == nil {
			t.Fatalf("theta=%g: expected a reflected ray", theta)
		}

		incidentAngle := ray.Direction.Negate().AngleBetween(res.Normal)
		reflectedAngle := res.Transmitted.Direction.AngleBetween(res.Normal)
		if math.Abs(incidentAngle-reflectedAngle) > 1e-6 {
			t.Errorf("theta=%g: incident angle %g != reflected angle %g",
				theta, incidentAngle, reflectedAngle)
		}
	}
}

func TestDiffuseSigma_Heuristic(t *testing.T) {
	// Wide and close scatters more than small and far
	wide := diffuseSigma(20, 10)
	narrow := diffuseSigma(2, 100)
	if wide <= narrow {
		t.Errorf("expected wider cone for closer aperture: %g vs %g", wide, narrow)
	}
	// The floor keeps the cone from collapsing entirely
	if got := diffuseSigma(0.001, 1e6); got < diffuseMinSigma {
		t.Errorf("sigma fell below the floor: %g", got)
	}
}

func TestScatterTowards_AimsAtTarget(t *testing.T) {
	sampler := core.NewLCG(3)
	from := core.NewVec3(0, 0, 0)
	target := core.NewVec3(50, 0, 0)

	for i := 0; i < 100; i++ {
		dir := scatterTowards(from, target, 0.01, sampler)
		if dir.AngleBetween(core.NewVec3(1, 0, 0)) > 0.2 {
			t.Fatalf("scatter %d strayed far from the target direction: %v", i, dir)
		}
	}
}
