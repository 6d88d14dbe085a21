package system

import (
	"fmt"
	"sort"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
	"github.com/optibench/go-sequential-raytracer/pkg/lightsource"
)

// d-line wavelength (nm), the usual design reference
const DesignWavelength = 587.6

// NewSingletBench builds a biconvex BK7 singlet focused onto a flat
// detector, fed by a linear fan of collimated rays
func NewSingletBench() *System {
	records := []SurfaceRecord{
		{
			ID:       "lens-front",
			Shape:    "spherical",
			Mode:     "refraction",
			Radius:   50,
			Semidia:  20,
			Position: core.NewVec3(0, 0, 0),
			Material: "BK7",
		},
		{
			ID:       "lens-back",
			Shape:    "spherical",
			Mode:     "refraction",
			Radius:   -50,
			Semidia:  20,
			Position: core.NewVec3(4, 0, 0),
			N1:       1.5168,
			N2:       1.0,
		},
		{
			ID:       "detector",
			Shape:    "planar",
			Mode:     "absorption",
			Width:    50,
			Height:   50,
			Position: core.NewVec3(52, 0, 0),
		},
	}

	sources := []*lightsource.LightSource{{
		Position:     core.NewVec3(-20, 0, 0),
		Direction:    core.NewVec3(1, 0, 0),
		Wavelength:   DesignWavelength,
		NumberOfRays: 7,
		Pattern:      lightsource.Linear,
		Width:        24,
		Source:       1,
	}}

	sys, err := Build("singlet", records, nil, sources, CatalogResolver, DesignWavelength)
	if err != nil {
		panic(fmt.Sprintf("singlet bench: %v", err))
	}
	return sys
}

// NewBeamsplitterBench builds a 45° half-silvered plate splitting the
// beam onto two detectors, exercising partial surfaces and branch ids
func NewBeamsplitterBench() *System {
	records := []SurfaceRecord{
		{
			ID:           "splitter",
			Shape:        "planar",
			Mode:         "partial",
			Semidia:      25,
			Position:     core.NewVec3(30, 0, 0),
			Azimuth:      45,
			N1:           1.0,
			N2:           1.0,
			Transmission: 0.5,
		},
		{
			ID:       "detector-straight",
			Shape:    "planar",
			Mode:     "absorption",
			Width:    40,
			Height:   40,
			Position: core.NewVec3(90, 0, 0),
		},
		{
			ID:       "detector-folded",
			Shape:    "planar",
			Mode:     "absorption",
			Width:    40,
			Height:   40,
			Position: core.NewVec3(30, -60, 0),
			Azimuth:  -90,
		},
	}

	sources := []*lightsource.LightSource{{
		Position:     core.NewVec3(-10, 0, 0),
		Direction:    core.NewVec3(1, 0, 0),
		Wavelength:   532,
		NumberOfRays: 5,
		Pattern:      lightsource.Linear,
		Width:        10,
		Source:       1,
	}}

	sys, err := Build("beamsplitter", records, nil, sources, CatalogResolver, 532)
	if err != nil {
		panic(fmt.Sprintf("beamsplitter bench: %v", err))
	}
	return sys
}

// NewDiffuserBench builds a diffuser feeding an iris and a detector,
// exercising diffuse scattering, the aperture stop, and a Gaussian
// source bundle
func NewDiffuserBench() *System {
	records := []SurfaceRecord{
		{
			ID:       "diffuser",
			Shape:    "planar",
			Mode:     "diffuse",
			Semidia:  15,
			Position: core.NewVec3(20, 0, 0),
		},
		{
			ID:       "iris",
			Shape:    "planar",
			Mode:     "aperture",
			Semidia:  5,
			Position: core.NewVec3(45, 0, 0),
		},
		{
			ID:       "detector",
			Shape:    "planar",
			Mode:     "absorption",
			Width:    60,
			Height:   60,
			Position: core.NewVec3(80, 0, 0),
		},
	}

	sources := []*lightsource.LightSource{{
		Position:     core.NewVec3(0, 0, 0),
		Direction:    core.NewVec3(1, 0, 0),
		Wavelength:   632.8,
		NumberOfRays: 25,
		Pattern:      lightsource.Gaussian,
		Width:        6,
		Seed:         7,
		Source:       1,
	}}

	sys, err := Build("diffuser", records, nil, sources, CatalogResolver, 632.8)
	if err != nil {
		panic(fmt.Sprintf("diffuser bench: %v", err))
	}
	return sys
}

// builders maps bench names to their constructors
var builders = map[string]func() *System{
	"singlet":      NewSingletBench,
	"beamsplitter": NewBeamsplitterBench,
	"diffuser":     NewDiffuserBench,
}

// BenchNames lists the builtin benches in stable order
func BenchNames() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBench builds a builtin bench by name
func NewBench(name string) (*System, bool) {
	builder, ok := builders[name]
	if !ok {
		return nil, false
	}
	return builder(), true
}
