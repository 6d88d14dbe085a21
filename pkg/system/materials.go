package system

import "math"

// Glass holds Sellmeier dispersion coefficients (C terms in µm²)
type Glass struct {
	Name string
	B    [3]float64
	C    [3]float64
}

// Index evaluates the Sellmeier equation at a wavelength in nanometers
func (g Glass) Index(wavelengthNm float64) float64 {
	l2 := wavelengthNm / 1000.0 // µm
	l2 *= l2
	sum := 0.0
	for i := 0; i < 3; i++ {
		sum += g.B[i] * l2 / (l2 - g.C[i])
	}
	return math.Sqrt(1 + sum)
}

// catalog covers the handful of stock glasses the builtin benches use.
// A full glass catalog is an external collaborator; this is just enough
// to exercise the wavelength-dependent lookup path.
var catalog = map[string]Glass{
	"BK7": {
		Name: "BK7",
		B:    [3]float64{1.03961212, 0.231792344, 1.01046945},
		C:    [3]float64{0.00600069867, 0.0200179144, 103.560653},
	},
	"F2": {
		Name: "F2",
		B:    [3]float64{1.34533359, 0.209073176, 0.937357162},
		C:    [3]float64{0.00997743871, 0.0470450767, 111.886764},
	},
}

// LookupIndex resolves a named glass at a wavelength in nanometers
func LookupIndex(name string, wavelengthNm float64) (float64, bool) {
	glass, ok := catalog[name]
	if !ok {
		return 0, false
	}
	return glass.Index(wavelengthNm), true
}

// IndexResolver supplies the incident- and transmitted-side refractive
// indices for one surface record at a wavelength. This is the interface
// boundary to whatever glass catalog the caller actually uses.
type IndexResolver func(record SurfaceRecord, wavelengthNm float64) (n1, n2 float64)

// CatalogResolver resolves the record's material through the builtin
// catalog, falling back to the record's literal indices, then to air
func CatalogResolver(record SurfaceRecord, wavelengthNm float64) (float64, float64) {
	n1 := record.N1
	if n1 <= 0 {
		n1 = 1.0
	}
	n2 := record.N2
	if record.Material != "" {
		if resolved, ok := LookupIndex(record.Material, wavelengthNm); ok {
			n2 = resolved
		}
	}
	if n2 <= 0 {
		n2 = 1.0
	}
	return n1, n2
}
