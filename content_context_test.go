// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/tessellator"
)

func TestPipelineSelectionIsCached(t *testing.T) {
	factory := &fakeFactory{}
	ctx := NewContentContext(factory)
	pass := newTestPass()

	opts := OptionsFromPass(pass)
	p1, err := ctx.LinearGradientFillPipeline(opts)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := ctx.LinearGradientFillPipeline(opts)
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Error("equal options returned different pipelines")
	}
	if factory.Calls() != 1 {
		t.Errorf("factory calls = %d, want 1", factory.Calls())
	}

	opts.BlendMode = renderer.BlendPlus
	p3, err := ctx.LinearGradientFillPipeline(opts)
	if err != nil {
		t.Fatal(err)
	}
	if p3 == p1 {
		t.Error("different blend mode returned the same pipeline")
	}
	if _, err := ctx.SolidFillPipeline(OptionsFromPass(pass)); err != nil {
		t.Fatal(err)
	}
	if factory.Calls() != 3 {
		t.Errorf("factory calls = %d, want 3", factory.Calls())
	}
	if s := ctx.PipelineStats(); s.Len != 3 || s.Hits != 1 {
		t.Errorf("PipelineStats() = %+v", s)
	}
}

func TestPipelineDescriptorFromOptions(t *testing.T) {
	ctx := NewContentContext(&fakeFactory{})
	opts := ContentContextOptions{
		SampleCount: 4,
		ColorFormat: gputypes.TextureFormatBGRA8Unorm,
		BlendMode:   renderer.BlendSourceIn,
	}
	p, err := ctx.RadialGradientFillPipeline(opts)
	if err != nil {
		t.Fatal(err)
	}
	desc := p.Descriptor()
	if desc.SampleCount != 4 || desc.ColorFormat != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("target = %d samples %v", desc.SampleCount, desc.ColorFormat)
	}
	if desc.Blend != renderer.BlendSourceIn.BlendState() {
		t.Errorf("Blend = %+v", desc.Blend)
	}
	// Unset stencil options fall back to the ordinary draw state.
	if desc.Stencil != renderer.DefaultStencilState() {
		t.Errorf("Stencil = %+v", desc.Stencil)
	}
	if !desc.ColorWrites || desc.VertexStride != 8 {
		t.Errorf("ColorWrites %v stride %d", desc.ColorWrites, desc.VertexStride)
	}

	tex, err := ctx.TextureFillPipeline(opts)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Descriptor().VertexStride != 16 {
		t.Errorf("texture stride = %d, want 16", tex.Descriptor().VertexStride)
	}
}

func TestPipelineFailureIsNotCached(t *testing.T) {
	errDevice := errors.New("device lost")
	factory := &fakeFactory{err: errDevice}
	ctx := NewContentContext(factory)
	pass := newTestPass()

	g := NewLinearGradientContents()
	g.SetPath(unitSquare())
	if NewEntity(g).Render(ctx, pass) {
		t.Error("Render() = true with failing factory")
	}
	if _, err := ctx.LinearGradientFillPipeline(OptionsFromPass(pass)); !errors.Is(err, errDevice) {
		t.Errorf("err = %v, want device lost", err)
	}
	if factory.Calls() != 2 {
		t.Errorf("factory calls = %d, want 2 (failures are retried)", factory.Calls())
	}

	factory.err = nil
	if !NewEntity(g).Render(ctx, newTestPass()) {
		t.Error("Render() = false after factory recovered")
	}
}

func TestNoPipelineFactory(t *testing.T) {
	ctx := NewContentContext(nil)
	if _, err := ctx.ClipPipeline(ContentContextOptions{}); !errors.Is(err, ErrNoPipelineFactory) {
		t.Errorf("err = %v, want ErrNoPipelineFactory", err)
	}
}

func TestPreparedMeshesReplay(t *testing.T) {
	ctx := NewContentContext(&fakeFactory{})
	path := unitSquare()

	mesh := ctx.PrepareMesh(path)
	if mesh.Result != tessellator.Success || len(mesh.Points) != 6 {
		t.Fatalf("PrepareMesh = %v with %d points", mesh.Result, len(mesh.Points))
	}

	fake := PreparedMesh{Points: []geometry.Point{{X: 1}, {X: 2}, {X: 3}}, Result: tessellator.Success}
	replay := ctx.WithPreparedMeshes(map[*geometry.Path]PreparedMesh{path: fake})
	var got []geometry.Point
	if res := replay.TessellateFill(path, func(p geometry.Point) { got = append(got, p) }); res != tessellator.Success {
		t.Fatalf("TessellateFill = %v", res)
	}
	if len(got) != 3 || got[2].X != 3 {
		t.Errorf("replayed %v, want the prepared points", got)
	}

	// The original context is unaffected.
	got = got[:0]
	ctx.TessellateFill(path, func(p geometry.Point) { got = append(got, p) })
	if len(got) != 6 {
		t.Errorf("original context emitted %d points, want 6", len(got))
	}
}

func TestContentContextOptions(t *testing.T) {
	pass := &countingPass{CommandPass: renderer.NewCommandPass(geometry.ISize{Width: 1, Height: 1},
		renderer.NewHostBuffer(), renderer.WithSampleCount(4))}
	e := NewEntity(nil)
	e.SetBlendMode(renderer.BlendXor)

	got := OptionsFromPassAndEntity(pass, e)
	want := ContentContextOptions{
		SampleCount:      4,
		ColorFormat:      gputypes.TextureFormatRGBA8Unorm,
		BlendMode:        renderer.BlendXor,
		StencilCompare:   gputypes.CompareFunctionEqual,
		StencilOperation: gputypes.StencilOperationKeep,
	}
	if got != want {
		t.Errorf("OptionsFromPassAndEntity() = %+v, want %+v", got, want)
	}
}
