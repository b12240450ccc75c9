// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package contents turns declarative paint descriptions into GPU draw
// commands.
//
// A [Contents] value holds a fill path and paint parameters. Rendering it
// tessellates the path, writes vertices and uniform blocks into the frame's
// transient buffer, selects a pipeline from the [ContentContext] and submits
// one [renderer.Command] to the render pass:
//
//	ctx := contents.NewContentContext(backend.PipelineFactory())
//
//	grad := contents.NewLinearGradientContents()
//	grad.SetPath(geometry.NewPathBuilder().AddRect(geometry.MakeXYWH(0, 0, 100, 100)).TakePath())
//	grad.SetEndPoints(geometry.Pt(0, 0), geometry.Pt(100, 0))
//	grad.SetColors([]contents.Color{contents.Red, contents.Blue})
//
//	entity := contents.NewEntity(grad)
//	ok := entity.Render(ctx, pass)
//
// Render returns true when the draw was accepted or when there was nothing
// to draw (an empty or degenerate path). It returns false when tessellation
// fails, transient memory is exhausted or the pass rejects the command.
//
// The set of Contents variants is closed: solid colour, linear, radial and
// sweep gradients, textures, and the stencil clip pair.
//
// [EntityPass] renders an ordered list of entities into one pass and can
// tessellate their paths in parallel before assembling commands in order.
package contents
