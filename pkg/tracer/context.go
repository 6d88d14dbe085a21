package tracer

import (
	"fmt"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
)

// Severity grades a trace warning
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// WarningKind classifies what went sideways during a trace
type WarningKind string

const (
	WarnGeometry   WarningKind = "geometry"
	WarnRayAnomaly WarningKind = "ray_anomaly"
	WarnPhysics    WarningKind = "physics"
	WarnAperture   WarningKind = "aperture"
)

// Warning is one diagnostic attached to a surface during tracing
type Warning struct {
	SurfaceID string      `json:"surfaceId"`
	Kind      WarningKind `json:"kind"`
	Message   string      `json:"message"`
	Severity  Severity    `json:"severity"`
}

// Hit records one accepted ray-surface intersection
type Hit struct {
	SurfaceIndex int          `json:"surfaceIndex"`
	LightID      core.LightID `json:"-"`
	Light        string       `json:"lightId"`
	Point        core.Vec3    `json:"point"`
	Wavelength   float64      `json:"wavelength"`
}

// Context carries the mutable collectors for one trace invocation:
// the warning log, the hit log, and the sampler diffuse scattering
// draws from. Each invocation gets its own context so independent
// traces never cross-contaminate; parallel batches run one context
// per ray and merge afterward.
type Context struct {
	Warnings []Warning
	Hits     []Hit
	Sampler  core.Sampler
	Logger   core.Logger
}

// NewContext creates a context with a seeded sampler
func NewContext(seed uint64) *Context {
	return &Context{
		Sampler: core.NewLCG(seed),
		Logger:  core.NopLogger{},
	}
}

// Warn appends a warning and echoes it to the logger
func (c *Context) Warn(surfaceID string, kind WarningKind, severity Severity, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	c.Warnings = append(c.Warnings, Warning{
		SurfaceID: surfaceID,
		Kind:      kind,
		Message:   message,
		Severity:  severity,
	})
	if c.Logger != nil {
		c.Logger.Printf("surface %s [%s/%s]: %s", surfaceID, kind, severity, message)
	}
}

// RecordHit appends an accepted intersection to the hit log
func (c *Context) RecordHit(surfaceIndex int, id core.LightID, point core.Vec3, wavelength float64) {
	c.Hits = append(c.Hits, Hit{
		SurfaceIndex: surfaceIndex,
		LightID:      id,
		Light:        id.String(),
		Point:        point,
		Wavelength:   wavelength,
	})
}

// Merge appends another context's collectors onto this one
func (c *Context) Merge(other *Context) {
	c.Warnings = append(c.Warnings, other.Warnings...)
	c.Hits = append(c.Hits, other.Hits...)
}
