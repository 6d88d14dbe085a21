package tracer

import (
	"math"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
	"github.com/optibench/go-sequential-raytracer/pkg/surface"
)

// Free-space extension applied to rays that leave the system unblocked,
// so open paths still draw as finite segments
const (
	extensionFraction = 0.1
	minExtension      = 5.0
)

// RayPath is one continuous polyline of ray waypoints from emission to
// termination or free-space extension, belonging to one light id
type RayPath struct {
	ID   core.LightID `json:"-"`
	Name string       `json:"lightId"`
	Rays []core.Ray   `json:"rays"`
}

// Result describes one ray-surface encounter. When neither Interacted
// nor Blocked is set the ray continues unperturbed past the surface.
type Result struct {
	Interacted  bool      // geometry accepted, physics applied
	Blocked     bool      // ray terminated at this surface
	Point       core.Vec3 // world intersection, valid when Interacted
	Normal      core.Vec3 // world normal at the hit
	Transmitted *core.Ray // continuing ray in world space
	Reflected   *core.Ray // second branch from a partial surface
	TIR         bool      // refraction fell back to reflection
}

// TraceThroughSurface runs the per-encounter state machine: wavelength
// gate, local transform, shape intersection, geometric acceptance, and
// the surface's interaction physics. The next surface in sequence is
// needed only by diffuse scattering and may be nil.
func TraceThroughSurface(ray core.Ray, s *surface.Surface, next *surface.Surface, ctx *Context) Result {
	// Surfaces transparent to this wavelength are skipped outright,
	// with no geometry test at all
	if !s.SelectsWavelength(ray.Wavelength) {
		return Result{}
	}

	localO := s.Forward.TransformPoint(ray.Origin)
	localD := s.Forward.TransformDirection(ray.Direction)

	isect, anomaly := s.IntersectLocal(localO, localD)

	switch anomaly {
	case surface.AnomalyParallel:
		ctx.Warn(s.ID, WarnGeometry, SeverityWarning,
			"ray %s parallel to or moving away from surface", ray.ID)
	case surface.AnomalyInsideSphere:
		ctx.Warn(s.ID, WarnRayAnomaly, SeverityWarning,
			"ray %s originates inside convex surface (R=%g)", ray.ID, s.Radius)
	}

	accepted := isect.Valid &&
		localD.Dot(isect.Normal) < 0 &&
		s.WithinAperture(isect.Point)

	if !accepted {
		if isect.Valid && !s.WithinAperture(isect.Point) {
			ctx.Warn(s.ID, WarnAperture, SeverityInfo,
				"ray %s missed aperture", ray.ID)
		}
		if s.Mode == surface.Aperture {
			// An iris decides pass-through vs. block on its own
			// aperture plane even when the 3-D test fails
			return aperturePlaneDecision(ray, s, localO, localD, ctx)
		}
		return Result{}
	}

	point := s.Inverse.TransformPoint(isect.Point)
	normal := s.Inverse.TransformDirection(isect.Normal)
	ctx.RecordHit(s.Index, ray.ID, point, ray.Wavelength)

	return applySurfacePhysics(ray, s, next, isect, point, normal, localD, ctx)
}

// applySurfacePhysics dispatches on the surface's interaction mode and
// produces zero, one, or two outgoing world-space rays
func applySurfacePhysics(ray core.Ray, s *surface.Surface, next *surface.Surface,
	isect surface.Intersection, point, normal core.Vec3, localD core.Vec3, ctx *Context) Result {

	result := Result{Interacted: true, Point: point, Normal: normal}

	outgoing := func(localDir core.Vec3) *core.Ray {
		worldDir := s.Inverse.TransformDirection(localDir)
		out := ray.Advanced(point, worldDir)
		return &out
	}

	switch s.Mode {
	case surface.Refraction:
		dir, tir := refractDirection(localD.Normalize(), isect.Normal, s.N1, s.N2)
		result.Transmitted = outgoing(dir)
		result.TIR = tir

	case surface.Reflection:
		result.Transmitted = outgoing(reflectDirection(localD.Normalize(), isect.Normal))

	case surface.Partial:
		dir, tir := refractDirection(localD.Normalize(), isect.Normal, s.N1, s.N2)
		transmitted := outgoing(dir)
		reflected := outgoing(reflectDirection(localD.Normalize(), isect.Normal))
		if tir {
			// No transmitted branch exists under TIR; the surface acts
			// as a plain mirror
			result.Transmitted = reflected
			result.TIR = true
			break
		}
		transmitted.Intensity = ray.Intensity * s.Transmission
		reflected.Intensity = ray.Intensity * (1 - s.Transmission)
		result.Transmitted = transmitted
		result.Reflected = reflected

	case surface.Absorption:
		result.Blocked = true

	case surface.Aperture:
		// A stop passes the ray through unchanged at the hit point
		result.Transmitted = outgoing(localD)

	case surface.Diffuse:
		if next == nil {
			// Nothing to scatter toward indicates a broken system
			// definition, not expected physics
			ctx.Warn(s.ID, WarnPhysics, SeverityError,
				"diffuse surface has no following surface; ray %s absorbed", ray.ID)
			result.Blocked = true
			break
		}
		distance := next.Position.Subtract(point).Length()
		sigma := diffuseSigma(apertureRadius(next), distance)
		dir := scatterTowards(point, next.Position, sigma, ctx.Sampler)
		out := ray.Advanced(point, dir)
		result.Transmitted = &out

	default: // Inactive or unrecognized: the ray is blocked
		result.Blocked = true
	}

	return result
}

// aperturePlaneDecision intersects a ray with an iris's own aperture
// plane to decide pass-through vs. block when the full 3-D test failed
func aperturePlaneDecision(ray core.Ray, s *surface.Surface, localO, localD core.Vec3, ctx *Context) Result {
	vertexX := 0.0
	if s.IsCurved() {
		vertexX = -s.Radius
	}

	if math.Abs(localD.X) < core.Epsilon || localD.X <= 0 {
		// No usable plane crossing; let the ray continue
		return Result{}
	}
	t := (vertexX - localO.X) / localD.X
	if t <= core.Epsilon || t > core.MaxIntersectDistance {
		return Result{}
	}

	local := localO.Add(localD.Multiply(t))
	onAxis := core.NewVec3(local.X-vertexX, local.Y, local.Z)
	point := s.Inverse.TransformPoint(local)

	if s.WithinAperture(onAxis) {
		out := ray.Advanced(point, ray.Direction)
		return Result{
			Interacted:  true,
			Point:       point,
			Normal:      s.Normal,
			Transmitted: &out,
		}
	}

	ctx.Warn(s.ID, WarnAperture, SeverityInfo, "ray %s blocked by stop", ray.ID)
	return Result{Interacted: true, Point: point, Normal: s.Normal, Blocked: true}
}

// apertureRadius reports the characteristic aperture half-size used by
// the diffuse scatter heuristic
func apertureRadius(s *surface.Surface) float64 {
	if s.Semidia > 0 {
		return s.Semidia
	}
	if s.Width > 0 && s.Height > 0 {
		return math.Max(s.Width, s.Height) / 2
	}
	return core.DefaultSemidia
}

// pathNode is one segment of the branch tree a trace produces: a run of
// linear waypoints, optionally ending in a partial-surface split
type pathNode struct {
	rays        []core.Ray
	reflected   *pathNode
	transmitted *pathNode
}

// TraceRay traces one ray through the ordered surface list starting at
// the first surface, returning every branch as its own complete path
func TraceRay(ray core.Ray, surfaces []*surface.Surface, ctx *Context) []RayPath {
	return TraceRayFrom(ray, surfaces, 0, ctx)
}

// TraceRayFrom traces starting at the given surface index
func TraceRayFrom(ray core.Ray, surfaces []*surface.Surface, start int, ctx *Context) []RayPath {
	ray.StartsAt = start
	node := traceFrom(ray, surfaces, start, ctx)
	return flatten(node, nil)
}

// TraceRaySequential returns the flattened set of waypoint rays spanning
// all branches, each tagged with its cascaded light id. This is the
// shape the visualization layer consumes.
func TraceRaySequential(ray core.Ray, surfaces []*surface.Surface, ctx *Context) []core.Ray {
	node := traceFrom(ray, surfaces, 0, ctx)
	var out []core.Ray
	var walk func(n *pathNode)
	walk = func(n *pathNode) {
		out = append(out, n.rays...)
		if n.transmitted != nil {
			walk(n.transmitted)
		}
		if n.reflected != nil {
			walk(n.reflected)
		}
	}
	walk(node)
	return out
}

// traceFrom walks surfaces in order from start. Linear continuations
// extend the current node; a partial split recurses independently into
// the reflected and transmitted branches, each from the next surface.
func traceFrom(ray core.Ray, surfaces []*surface.Surface, start int, ctx *Context) *pathNode {
	node := &pathNode{rays: []core.Ray{ray}}
	cur := ray
	lastInteracted := -1

	for i := start; i < len(surfaces); i++ {
		s := surfaces[i]
		var next *surface.Surface
		if i+1 < len(surfaces) {
			next = surfaces[i+1]
		}

		res := TraceThroughSurface(cur, s, next, ctx)

		if !res.Interacted {
			// Unperturbed pass: no waypoint
			continue
		}
		lastInteracted = i

		if res.Blocked {
			terminal := cur.Advanced(res.Point, cur.Direction)
			terminal.StopsAt = s.Index
			node.rays = append(node.rays, terminal)
			if i < len(surfaces)-1 {
				last := surfaces[len(surfaces)-1]
				ctx.Warn(last.ID, WarnRayAnomaly, SeverityWarning,
					"ray %s terminated at surface %d before reaching the end of the system", cur.ID, s.Index)
			}
			return node
		}

		if res.Reflected != nil {
			// Partial split: the dominant branch keeps the parent id,
			// the minority branch appends one more digit
			digit := cur.Splits + 1
			transmitted := *res.Transmitted
			reflected := *res.Reflected
			transmitted.Splits = digit
			reflected.Splits = digit

			if s.Transmission >= 0.5 {
				reflected.ID = cur.ID.Child(digit)
			} else {
				transmitted.ID = cur.ID.Child(digit)
			}

			node.transmitted = traceFrom(transmitted, surfaces, i+1, ctx)
			node.reflected = traceFrom(reflected, surfaces, i+1, ctx)
			return node
		}

		cur = *res.Transmitted
		node.rays = append(node.rays, cur)
	}

	node.rays = appendCompletion(node.rays, cur, surfaces, lastInteracted)
	return node
}

// appendCompletion applies the open-path policy once every surface has
// been walked without the ray being blocked: unterminated rays headed
// for a final iris stop at its plane; everything else gets a short
// free-space extension so the path stays drawable.
func appendCompletion(rays []core.Ray, cur core.Ray, surfaces []*surface.Surface, lastInteracted int) []core.Ray {
	if len(surfaces) > 0 {
		last := surfaces[len(surfaces)-1]
		if last.Mode == surface.Aperture {
			if lastInteracted == len(surfaces)-1 {
				// Already standing on the iris plane
				return rays
			}
			localO := last.Forward.TransformPoint(cur.Origin)
			localD := last.Forward.TransformDirection(cur.Direction)
			vertexX := 0.0
			if last.IsCurved() {
				vertexX = -last.Radius
			}
			if localD.X > core.Epsilon {
				if t := (vertexX - localO.X) / localD.X; t > core.Epsilon && t <= core.MaxIntersectDistance {
					terminal := cur.Advanced(last.Inverse.TransformPoint(localO.Add(localD.Multiply(t))), cur.Direction)
					return append(rays, terminal)
				}
			}
		}
	}

	extension := extensionFraction * cur.PathLength
	if extension < minExtension {
		extension = minExtension
	}
	terminal := cur.Advanced(cur.At(extension), cur.Direction)
	return append(rays, terminal)
}

// flatten turns the branch tree into complete root-to-leaf paths with an
// explicit walk, transmitted branches first
func flatten(node *pathNode, prefix []core.Ray) []RayPath {
	all := make([]core.Ray, 0, len(prefix)+len(node.rays))
	all = append(all, prefix...)
	all = append(all, node.rays...)

	if node.transmitted == nil && node.reflected == nil {
		id := all[len(all)-1].ID
		return []RayPath{{ID: id, Name: id.String(), Rays: all}}
	}

	var out []RayPath
	if node.transmitted != nil {
		out = append(out, flatten(node.transmitted, all)...)
	}
	if node.reflected != nil {
		out = append(out, flatten(node.reflected, all)...)
	}
	return out
}
