package system

import (
	"fmt"
	"math"

	"github.com/optibench/go-sequential-raytracer/pkg/lightsource"
	"github.com/optibench/go-sequential-raytracer/pkg/surface"
)

// System is one fully placed optical bench: the ordered surface list
// and the light sources that feed it. Both are read-only once built; an
// immutable snapshot is safely shared by concurrently traced rays.
type System struct {
	Name       string
	Surfaces   []*surface.Surface
	Sources    []*lightsource.LightSource
	Wavelength float64 // design wavelength (nm) used for index lookup
}

// wavelength tolerance for selection predicates, in nm
const selectTolerance = 0.5

// Build turns declarative records into a placed system. Surfaces keep
// the record order; each gets its sequential numerical index, which the
// tracer uses for branch bookkeeping and termination markers. Assembly
// members are built in assembly-local coordinates and placed as a unit.
func Build(name string, records []SurfaceRecord, assemblies []AssemblyRecord,
	sources []*lightsource.LightSource, resolver IndexResolver, designNm float64) (*System, error) {

	if resolver == nil {
		resolver = CatalogResolver
	}

	surfaces := make([]*surface.Surface, 0, len(records))
	members := make(map[string][]*surface.Surface)

	for i, record := range records {
		shape, err := ParseShape(record.Shape)
		if err != nil {
			return nil, fmt.Errorf("surface %d (%s): %w", i, record.ID, err)
		}
		mode, err := ParseMode(record.Mode)
		if err != nil {
			return nil, fmt.Errorf("surface %d (%s): %w", i, record.ID, err)
		}

		n1, n2 := resolver(record, designNm)

		s := &surface.Surface{
			ID:           record.ID,
			Index:        i,
			Shape:        shape,
			Mode:         mode,
			Radius:       record.Radius,
			Semidia:      record.Semidia,
			Width:        record.Width,
			Height:       record.Height,
			Position:     record.Position,
			Dial:         record.Dial * math.Pi / 180,
			N1:           n1,
			N2:           n2,
			Transmission: record.Transmission,
			Selects:      selectPredicate(record.SelectWavelengths),
		}
		if record.Normal != nil {
			s.Normal = *record.Normal
		} else if record.Azimuth != 0 || record.Elevation != 0 {
			s.Normal = surface.NormalFromAngles(
				record.Azimuth*math.Pi/180,
				record.Elevation*math.Pi/180,
			)
		}

		if record.Assembly != "" {
			members[record.Assembly] = append(members[record.Assembly], s)
		} else {
			s.Recompute()
		}
		surfaces = append(surfaces, s)
	}

	for _, asm := range assemblies {
		group, ok := members[asm.Name]
		if !ok {
			continue
		}
		placement := surface.Assembly{
			Position: asm.Position,
			Normal:   asm.Normal,
			Dial:     asm.Dial * math.Pi / 180,
		}
		placement.Place(group)
		delete(members, asm.Name)
	}
	// Members of assemblies never placed still need valid transforms
	for _, group := range members {
		for _, s := range group {
			s.Recompute()
		}
	}

	return &System{
		Name:       name,
		Surfaces:   surfaces,
		Sources:    sources,
		Wavelength: designNm,
	}, nil
}

// selectPredicate builds the wavelength-selection closure, or nil when
// the surface acts on every wavelength
func selectPredicate(wavelengths []float64) func(float64) bool {
	if len(wavelengths) == 0 {
		return nil
	}
	accepted := make([]float64, len(wavelengths))
	copy(accepted, wavelengths)
	return func(nm float64) bool {
		for _, w := range accepted {
			if math.Abs(w-nm) <= selectTolerance {
				return true
			}
		}
		return false
	}
}
