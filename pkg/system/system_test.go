package system

import (
	"math"
	"testing"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
	"github.com/optibench/go-sequential-raytracer/pkg/surface"
	"github.com/optibench/go-sequential-raytracer/pkg/tracer"
)

func TestBuildAssignsSequentialIndices(t *testing.T) {
	records := []SurfaceRecord{
		{ID: "a", Shape: "planar", Mode: "refraction", Semidia: 10, Position: core.NewVec3(10, 0, 0)},
		{ID: "b", Shape: "planar", Mode: "aperture", Semidia: 5, Position: core.NewVec3(20, 0, 0)},
		{ID: "c", Shape: "planar", Mode: "detector", Width: 40, Height: 40, Position: core.NewVec3(30, 0, 0)},
	}

	sys, err := Build("test", records, nil, nil, nil, DesignWavelength)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range sys.Surfaces {
		if s.Index != i {
			t.Errorf("surface %s: index %d, want %d", s.ID, s.Index, i)
		}
	}
	if sys.Surfaces[2].Mode != surface.Absorption {
		t.Errorf("detector alias should map to absorption, got %v", sys.Surfaces[2].Mode)
	}
}

func TestBuildResolvesMaterial(t *testing.T) {
	records := []SurfaceRecord{
		{ID: "front", Shape: "spherical", Mode: "refraction", Radius: 50,
			Semidia: 20, Material: "BK7"},
	}

	sys, err := Build("test", records, nil, nil, nil, DesignWavelength)
	if err != nil {
		t.Fatal(err)
	}
	s := sys.Surfaces[0]
	if s.N1 != 1.0 {
		t.Errorf("incident index should be air, got %g", s.N1)
	}
	if math.Abs(s.N2-1.5168) > 5e-4 {
		t.Errorf("BK7 at d-line: got %.5f, want 1.5168", s.N2)
	}
}

func TestBuildRejectsUnknownNames(t *testing.T) {
	_, err := Build("test", []SurfaceRecord{{ID: "x", Shape: "toroidal"}},
		nil, nil, nil, DesignWavelength)
	if err == nil {
		t.Error("unknown shape should fail the build")
	}

	_, err = Build("test", []SurfaceRecord{{ID: "x", Mode: "teleport"}},
		nil, nil, nil, DesignWavelength)
	if err == nil {
		t.Error("unknown mode should fail the build")
	}
}

func TestBuildAnglesInDegrees(t *testing.T) {
	records := []SurfaceRecord{
		{ID: "fold", Shape: "planar", Mode: "mirror", Semidia: 20,
			Position: core.NewVec3(30, 0, 0), Azimuth: 45},
	}

	sys, err := Build("test", records, nil, nil, nil, DesignWavelength)
	if err != nil {
		t.Fatal(err)
	}
	n := sys.Surfaces[0].Normal
	want := core.NewVec3(-math.Sqrt2/2, -math.Sqrt2/2, 0)
	if math.Abs(n.X-want.X) > 1e-9 || math.Abs(n.Y-want.Y) > 1e-9 || math.Abs(n.Z-want.Z) > 1e-9 {
		t.Errorf("45° azimuth normal: got %v, want %v", n, want)
	}
}

func TestBuildWavelengthSelection(t *testing.T) {
	records := []SurfaceRecord{
		{ID: "dichroic", Shape: "planar", Mode: "mirror", Semidia: 20,
			SelectWavelengths: []float64{450, 532}},
		{ID: "plain", Shape: "planar", Mode: "mirror", Semidia: 20},
	}

	sys, err := Build("test", records, nil, nil, nil, 532)
	if err != nil {
		t.Fatal(err)
	}

	dichroic, plain := sys.Surfaces[0], sys.Surfaces[1]
	tests := []struct {
		nm   float64
		want bool
	}{
		{450, true},
		{450.4, true}, // within the half-nanometer tolerance
		{532, true},
		{633, false},
		{451, false},
	}
	for _, tt := range tests {
		if got := dichroic.SelectsWavelength(tt.nm); got != tt.want {
			t.Errorf("dichroic at %gnm: got %v, want %v", tt.nm, got, tt.want)
		}
		if !plain.SelectsWavelength(tt.nm) {
			t.Errorf("unselective surface must act on %gnm", tt.nm)
		}
	}
}

func TestBuildPlacesAssembly(t *testing.T) {
	records := []SurfaceRecord{
		{ID: "front", Shape: "planar", Mode: "refraction", Semidia: 10,
			Position: core.NewVec3(0, 0, 0), Assembly: "doublet"},
		{ID: "back", Shape: "planar", Mode: "refraction", Semidia: 10,
			Position: core.NewVec3(5, 0, 0), Assembly: "doublet"},
	}
	assemblies := []AssemblyRecord{
		{Name: "doublet", Position: core.NewVec3(40, 0, 0)},
	}

	sys, err := Build("test", records, assemblies, nil, nil, DesignWavelength)
	if err != nil {
		t.Fatal(err)
	}
	front, back := sys.Surfaces[0], sys.Surfaces[1]
	if math.Abs(front.Position.X-40) > 1e-9 {
		t.Errorf("front should be translated to x=40, got %g", front.Position.X)
	}
	if math.Abs(back.Position.Subtract(front.Position).Length()-5) > 1e-9 {
		t.Errorf("member spacing must survive placement, got %g",
			back.Position.Subtract(front.Position).Length())
	}
}

func TestBenchesTrace(t *testing.T) {
	for _, name := range BenchNames() {
		name := name
		t.Run(name, func(t *testing.T) {
			sys, ok := NewBench(name)
			if !ok {
				t.Fatalf("bench %s not registered", name)
			}
			paths, ctx := tracer.TraceBatch(sys.Sources, sys.Surfaces,
				tracer.Config{Workers: 2, Seed: 1}, nil)
			if len(paths) == 0 {
				t.Fatal("bench produced no paths")
			}
			if len(ctx.Hits) == 0 {
				t.Fatal("bench produced no surface hits")
			}
			for _, w := range ctx.Warnings {
				if w.Severity == tracer.SeverityError {
					t.Errorf("unexpected error warning on %s: %s", w.SurfaceID, w.Message)
				}
			}
		})
	}
}

func TestSingletBenchFocuses(t *testing.T) {
	sys := NewSingletBench()
	_, ctx := tracer.TraceBatch(sys.Sources, sys.Surfaces,
		tracer.Config{Workers: 1, Seed: 1}, nil)

	// Every hit on the detector lands well inside the marginal ray
	// height; the singlet is focused near its paraxial focal plane
	var detectorHits int
	for _, h := range ctx.Hits {
		if h.SurfaceIndex != 2 {
			continue
		}
		detectorHits++
		r := math.Hypot(h.Point.Y, h.Point.Z)
		if r > 3 {
			t.Errorf("detector hit %g from axis; expected tight focus", r)
		}
	}
	if detectorHits != 7 {
		t.Errorf("expected all 7 fan rays on the detector, got %d", detectorHits)
	}
}

func TestBeamsplitterBenchBranches(t *testing.T) {
	sys := NewBeamsplitterBench()
	paths, _ := tracer.TraceBatch(sys.Sources, sys.Surfaces,
		tracer.Config{Workers: 1, Seed: 1}, nil)

	// 5 source rays, each split once
	if len(paths) != 10 {
		t.Fatalf("expected 10 branch paths, got %d", len(paths))
	}
	var cascaded int
	for _, p := range paths {
		if p.Name == "1.1" {
			cascaded++
		}
	}
	if cascaded != 5 {
		t.Errorf("expected 5 cascaded branches, got %d", cascaded)
	}
}
