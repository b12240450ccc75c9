// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"errors"
	"fmt"

	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/internal/parallel"
	"github.com/gogpu/contents/renderer"
)

// ErrContentFailed is returned by EntityPass.Render when at least one entity
// failed to draw. The remaining entities were still rendered.
var ErrContentFailed = errors.New("contents: entity failed to render")

// EntityPass is an ordered list of entities drawn into one render pass.
// Later entities stack on top of earlier ones.
//
// When the ContentContext has tessellation workers, fill paths are
// tessellated in parallel first; commands are still added in entity order
// on the calling goroutine.
type EntityPass struct {
	entities []*Entity
}

// NewEntityPass creates a pass holding entities.
func NewEntityPass(entities ...*Entity) *EntityPass {
	p := &EntityPass{}
	for _, e := range entities {
		p.AddEntity(e)
	}
	return p
}

// AddEntity appends e to the pass.
func (p *EntityPass) AddEntity(e *Entity) {
	if e != nil {
		p.entities = append(p.entities, e)
	}
}

// Entities returns the entities in draw order.
func (p *EntityPass) Entities() []*Entity { return p.entities }

// Len returns the number of entities.
func (p *EntityPass) Len() int { return len(p.entities) }

// Render draws every entity into pass in order.
//
// Exhausting the transient buffer aborts the frame and returns the
// allocator's error. Any other failed draw is logged and skipped; Render
// continues and returns ErrContentFailed.
func (p *EntityPass) Render(ctx *ContentContext, pass renderer.RenderPass) error {
	log := Logger()
	if ctx.pool != nil && len(p.entities) > 1 {
		ctx = ctx.WithPreparedMeshes(p.prepare(ctx))
	}

	transients := pass.TransientsBuffer()
	failed := 0
	for i, e := range p.entities {
		if e.Render(ctx, pass) {
			continue
		}
		if err := transients.Err(); err != nil {
			log.Error("contents: frame aborted", "entity", i, "err", err)
			return fmt.Errorf("contents: entity %d: %w", i, err)
		}
		log.Warn("contents: entity skipped", "entity", i)
		failed++
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d entities", ErrContentFailed, failed, len(p.entities))
	}
	return nil
}

// prepare tessellates every distinct fill path on the worker pool.
func (p *EntityPass) prepare(ctx *ContentContext) map[*geometry.Path]PreparedMesh {
	var paths []*geometry.Path
	seen := make(map[*geometry.Path]bool)
	for _, e := range p.entities {
		c := e.Contents()
		if c == nil {
			continue
		}
		path := c.fillPath()
		if path == nil || seen[path] {
			continue
		}
		seen[path] = true
		paths = append(paths, path)
	}

	meshes := parallel.Map(ctx.pool, paths, ctx.PrepareMesh)
	prepared := make(map[*geometry.Path]PreparedMesh, len(paths))
	for i, path := range paths {
		prepared[path] = meshes[i]
	}
	return prepared
}
