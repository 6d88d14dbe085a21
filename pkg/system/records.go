package system

import (
	"fmt"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
	"github.com/optibench/go-sequential-raytracer/pkg/surface"
)

// SurfaceRecord is the declarative description of one surface, as the
// external system parser hands it over. Angles are degrees here and
// converted to radians at build time.
type SurfaceRecord struct {
	ID    string
	Shape string
	Mode  string

	Radius  float64
	Semidia float64
	Width   float64
	Height  float64

	Position  core.Vec3
	Normal    *core.Vec3 // explicit normal, or nil to use angles
	Azimuth   float64    // degrees, used when Normal is nil
	Elevation float64    // degrees
	Dial      float64    // degrees

	N1, N2       float64
	Material     string // glass name resolved through the index lookup
	Transmission float64

	// SelectWavelengths lists the wavelengths (nm) the surface acts on;
	// empty means all
	SelectWavelengths []float64

	// Assembly names the shared local frame this surface belongs to
	Assembly string
}

// AssemblyRecord places a named group of surfaces as one rigid unit
type AssemblyRecord struct {
	Name     string
	Position core.Vec3
	Normal   core.Vec3
	Dial     float64 // degrees
}

// ParseShape maps a declarative shape name onto the surface shape
func ParseShape(name string) (surface.Shape, error) {
	switch name {
	case "spherical", "":
		return surface.Spherical, nil
	case "aspherical":
		return surface.Aspherical, nil
	case "planar", "plane":
		return surface.Planar, nil
	case "cylindrical", "cylinder":
		return surface.Cylindrical, nil
	default:
		return 0, fmt.Errorf("unknown surface shape %q", name)
	}
}

// ParseMode maps a declarative mode name onto the interaction mode
func ParseMode(name string) (surface.Mode, error) {
	switch name {
	case "refraction", "":
		return surface.Refraction, nil
	case "reflection", "mirror":
		return surface.Reflection, nil
	case "partial":
		return surface.Partial, nil
	case "absorption", "detector":
		return surface.Absorption, nil
	case "aperture", "stop":
		return surface.Aperture, nil
	case "diffuse", "diffuser":
		return surface.Diffuse, nil
	case "inactive":
		return surface.Inactive, nil
	default:
		return 0, fmt.Errorf("unknown surface mode %q", name)
	}
}
