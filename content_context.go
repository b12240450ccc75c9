// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/internal/cache"
	"github.com/gogpu/contents/internal/parallel"
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
	"github.com/gogpu/contents/tessellator"
)

// DefaultPipelineCacheLimit is the soft limit of the pipeline cache.
const DefaultPipelineCacheLimit = 128

// ErrNoPipelineFactory is returned when a ContentContext has no factory.
var ErrNoPipelineFactory = errors.New("contents: no pipeline factory")

// ContentContext is the rendering context shared by all contents: the
// pipeline registry and the fill tessellator. It is created once per device
// and passed by reference to every Render call.
//
// Pipeline lookups are safe for concurrent use.
type ContentContext struct {
	factory   renderer.PipelineFactory
	pipelines *cache.Cache[renderer.PipelineDescriptor, renderer.Pipeline]
	tess      tessellator.Tessellator
	tolerance float64
	prepared  map[*geometry.Path]PreparedMesh
	pool      *parallel.WorkerPool
}

// ContentContextOption configures a ContentContext.
type ContentContextOption func(*contentContextConfig)

type contentContextConfig struct {
	cacheLimit int
	tolerance  float64
	maxEvents  int
	workers    int
}

// WithPipelineCacheLimit sets the soft limit of the pipeline cache.
// 0 means unlimited.
func WithPipelineCacheLimit(n int) ContentContextOption {
	return func(c *contentContextConfig) {
		if n >= 0 {
			c.cacheLimit = n
		}
	}
}

// WithTessellationTolerance sets the curve flattening tolerance in pixels.
func WithTessellationTolerance(tol float64) ContentContextOption {
	return func(c *contentContextConfig) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}

// WithTessellationLimit caps the sweep events of one tessellation. Paths
// that need more fail with a tessellation error.
func WithTessellationLimit(events int) ContentContextOption {
	return func(c *contentContextConfig) {
		if events > 0 {
			c.maxEvents = events
		}
	}
}

// WithTessellationWorkers lets EntityPass tessellate fill paths on n
// goroutines before assembling commands. n <= 0 uses GOMAXPROCS. Call
// Close to stop the workers.
func WithTessellationWorkers(n int) ContentContextOption {
	return func(c *contentContextConfig) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		c.workers = n
	}
}

// NewContentContext creates a context whose pipelines come from factory.
func NewContentContext(factory renderer.PipelineFactory, opts ...ContentContextOption) *ContentContext {
	cfg := contentContextConfig{
		cacheLimit: DefaultPipelineCacheLimit,
		tolerance:  geometry.DefaultTolerance,
		maxEvents:  tessellator.DefaultMaxEvents,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &ContentContext{
		factory:   factory,
		pipelines: cache.New[renderer.PipelineDescriptor, renderer.Pipeline](cfg.cacheLimit),
		tess:      tessellator.Tessellator{MaxEvents: cfg.maxEvents},
		tolerance: cfg.tolerance,
	}
	if cfg.workers > 0 {
		c.pool = parallel.NewWorkerPool(cfg.workers)
	}
	return c
}

// Close stops the tessellation workers and drops cached pipelines. The
// context must not be used afterwards.
func (c *ContentContext) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
	c.pipelines.Clear()
}

// Tolerance returns the curve flattening tolerance.
func (c *ContentContext) Tolerance() float64 { return c.tolerance }

// PipelineStats returns the pipeline cache statistics.
func (c *ContentContext) PipelineStats() cache.Stats { return c.pipelines.Stats() }

// SolidFillPipeline returns the solid colour pipeline for opts.
func (c *ContentContext) SolidFillPipeline(opts ContentContextOptions) (renderer.Pipeline, error) {
	return c.pipeline(opts.descriptor("SolidFill", shaders.SolidFill, vertexStride(shaders.SolidFill), true))
}

// LinearGradientFillPipeline returns the linear gradient pipeline for opts.
func (c *ContentContext) LinearGradientFillPipeline(opts ContentContextOptions) (renderer.Pipeline, error) {
	return c.pipeline(opts.descriptor("LinearGradientFill", shaders.LinearGradientFill, vertexStride(shaders.LinearGradientFill), true))
}

// RadialGradientFillPipeline returns the radial gradient pipeline for opts.
func (c *ContentContext) RadialGradientFillPipeline(opts ContentContextOptions) (renderer.Pipeline, error) {
	return c.pipeline(opts.descriptor("RadialGradientFill", shaders.RadialGradientFill, vertexStride(shaders.RadialGradientFill), true))
}

// SweepGradientFillPipeline returns the sweep gradient pipeline for opts.
func (c *ContentContext) SweepGradientFillPipeline(opts ContentContextOptions) (renderer.Pipeline, error) {
	return c.pipeline(opts.descriptor("SweepGradientFill", shaders.SweepGradientFill, vertexStride(shaders.SweepGradientFill), true))
}

// TextureFillPipeline returns the texture pipeline for opts.
func (c *ContentContext) TextureFillPipeline(opts ContentContextOptions) (renderer.Pipeline, error) {
	return c.pipeline(opts.descriptor("TextureFill", shaders.TextureFill, vertexStride(shaders.TextureFill), true))
}

// ClipPipeline returns the stencil-only pipeline for opts. It never writes
// colour.
func (c *ContentContext) ClipPipeline(opts ContentContextOptions) (renderer.Pipeline, error) {
	return c.pipeline(opts.descriptor("Clip", shaders.Clip, vertexStride(shaders.Clip), false))
}

func (c *ContentContext) pipeline(desc renderer.PipelineDescriptor) (renderer.Pipeline, error) {
	if c.factory == nil {
		return nil, ErrNoPipelineFactory
	}
	return c.pipelines.GetOrCreate(desc, func() (renderer.Pipeline, error) {
		Logger().Debug("contents: creating pipeline",
			"shader", desc.Shader, "blend", desc.Blend, "samples", desc.SampleCount, "stencil", desc.Stencil.Compare)
		p, err := c.factory.CreatePipeline(desc)
		if err != nil {
			return nil, fmt.Errorf("contents: create %s pipeline: %w", desc.Shader, err)
		}
		if p == nil {
			return nil, fmt.Errorf("contents: create %s pipeline: %w", desc.Shader, renderer.ErrNilPipeline)
		}
		return p, nil
	})
}

func vertexStride(shader string) uint32 {
	return uint32(shaders.VertexLayout(shader).ArrayStride)
}

// TessellateFill flattens path and triangulates it with the path's fill
// rule, calling emit for every vertex. A nil path is an InputError.
func (c *ContentContext) TessellateFill(path *geometry.Path, emit func(geometry.Point)) tessellator.Result {
	if mesh, ok := c.prepared[path]; ok && path != nil {
		for _, p := range mesh.Points {
			emit(p)
		}
		return mesh.Result
	}
	if path == nil {
		return tessellator.InputError
	}
	return c.tess.Tessellate(path.FillType(), path.CreatePolyline(c.tolerance), emit)
}

// PreparedMesh is a fill mesh tessellated ahead of command assembly.
type PreparedMesh struct {
	Points []geometry.Point
	Result tessellator.Result
}

// PrepareMesh tessellates path into a self-contained mesh. It does not touch
// the pipeline cache or any render pass and may run on any goroutine.
func (c *ContentContext) PrepareMesh(path *geometry.Path) PreparedMesh {
	if path == nil {
		return PreparedMesh{Result: tessellator.InputError}
	}
	pts, res := c.tess.Triangulate(path.FillType(), path.CreatePolyline(c.tolerance))
	return PreparedMesh{Points: pts, Result: res}
}

// WithPreparedMeshes returns a copy of the context whose TessellateFill
// replays meshes for the given paths instead of tessellating them again.
// The copy shares the pipeline cache.
func (c *ContentContext) WithPreparedMeshes(meshes map[*geometry.Path]PreparedMesh) *ContentContext {
	cp := *c
	cp.prepared = meshes
	return &cp
}
