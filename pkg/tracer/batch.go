package tracer

import (
	"runtime"
	"sync"

	"github.com/optibench/go-sequential-raytracer/pkg/core"
	"github.com/optibench/go-sequential-raytracer/pkg/lightsource"
	"github.com/optibench/go-sequential-raytracer/pkg/surface"
)

// Config holds batch tracing knobs
type Config struct {
	Workers int    // 0 means one per CPU
	Seed    uint64 // base seed for per-ray scatter sampling
}

// rayJob is one ray queued for a worker
type rayJob struct {
	index int
	ray   core.Ray
}

// rayResult pairs a job's paths with its private trace context
type rayResult struct {
	index int
	paths []RayPath
	ctx   *Context
}

// TraceBatch generates every source's bundle and traces all rays across
// a worker pool. The surface list is read-only during the batch and
// shared by every worker; each ray gets its own context, seeded from
// its index, so results and collector contents are deterministic no
// matter how the scheduler interleaves the workers. The merged context
// is returned alongside the paths.
func TraceBatch(sources []*lightsource.LightSource, surfaces []*surface.Surface, cfg Config, logger core.Logger) ([]RayPath, *Context) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var rays []core.Ray
	for _, src := range sources {
		rays = append(rays, src.Generate()...)
	}

	jobs := make(chan rayJob, len(rays))
	results := make([]rayResult, len(rays))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				ctx := NewContext(cfg.Seed + uint64(job.index))
				paths := TraceRay(job.ray, surfaces, ctx)
				results[job.index] = rayResult{index: job.index, paths: paths, ctx: ctx}
			}
		}()
	}

	for i, ray := range rays {
		jobs <- rayJob{index: i, ray: ray}
	}
	close(jobs)
	wg.Wait()

	merged := NewContext(cfg.Seed)
	merged.Logger = logger
	var paths []RayPath
	for _, res := range results {
		paths = append(paths, res.paths...)
		merged.Merge(res.ctx)
	}
	return paths, merged
}
