// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/contents"
	"github.com/gogpu/contents/backend"
	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
)

// openNoop opens a device on the HAL noop backend.
func openNoop(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance() error = %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		t.Fatal("noop instance has no adapters")
	}
	opened, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		opened.Device.Destroy()
		instance.Destroy()
	})
	return opened.Device, opened.Queue
}

func newNoopBackend(t *testing.T, opts ...Option) *Backend {
	t.Helper()
	device, queue := openNoop(t)
	b, err := New(device, queue, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func rect(x, y, w, h float64) *geometry.Path {
	return geometry.NewPathBuilder().AddRect(geometry.MakeXYWH(x, y, w, h)).TakePath()
}

func scene() []*contents.Entity {
	s := contents.NewSolidColorContents(contents.Red)
	s.SetPath(rect(10, 10, 40, 40))

	g := contents.NewLinearGradientContents()
	g.SetPath(rect(0, 0, 64, 64))
	g.SetEndPoints(geometry.Point{}, geometry.Point{X: 64})
	g.SetColors([]contents.Color{contents.Blue, contents.Green})

	tex := image.NewRGBA(image.Rect(0, 0, 2, 2))
	tex.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	tc := contents.NewTextureContents()
	tc.SetPath(rect(20, 20, 10, 10))
	tc.SetTexture(tex)

	return []*contents.Entity{
		contents.NewEntity(contents.NewClipContents(rect(0, 0, 32, 32))),
		contents.NewEntity(s),
		contents.NewEntity(g),
		contents.NewEntity(tc),
		contents.NewEntity(contents.NewClipRestoreContents()),
	}
}

func TestNewRejectsNil(t *testing.T) {
	if _, err := New(nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("New(nil, nil) error = %v, want ErrNilDevice", err)
	}
	if _, err := NewFromProvider(nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewFromProvider(nil) error = %v, want ErrNilDevice", err)
	}
}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.NameWGPU) {
		t.Fatal("wgpu backend not registered")
	}
}

func TestPipelineCached(t *testing.T) {
	b := newNoopBackend(t)
	desc := renderer.PipelineDescriptor{
		Label:        "solid",
		Shader:       shaders.SolidFill,
		VertexStride: 8,
		SampleCount:  4,
		ColorFormat:  gputypes.TextureFormatRGBA8Unorm,
		Blend:        renderer.BlendSourceOver.BlendState(),
		ColorWrites:  true,
		Stencil:      renderer.DefaultStencilState(),
	}
	f := b.PipelineFactory()
	p1, err := f.CreatePipeline(desc)
	if err != nil {
		t.Fatalf("CreatePipeline() error = %v", err)
	}
	p2, err := f.CreatePipeline(desc)
	if err != nil {
		t.Fatalf("second CreatePipeline() error = %v", err)
	}
	if p1 != p2 {
		t.Error("identical descriptors produced different pipelines")
	}
	if diff := cmp.Diff(desc, p1.Descriptor()); diff != "" {
		t.Errorf("Descriptor() mismatch (-want +got):\n%s", diff)
	}
	if got := b.pipelines.Len(); got != 1 {
		t.Errorf("cached pipelines = %d, want 1", got)
	}

	desc.VertexStride = 16
	if _, err := f.CreatePipeline(desc); err == nil {
		t.Error("mismatched vertex stride accepted")
	}

	b.Close()
	if got := b.pipelines.Len(); got != 0 {
		t.Errorf("cached pipelines after Close = %d, want 0", got)
	}
	if _, err := f.CreatePipeline(desc); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("CreatePipeline() after Close error = %v, want ErrClosed", err)
	}
}

func TestRenderPipelineDescriptor(t *testing.T) {
	desc := renderer.PipelineDescriptor{
		Label:        "clip",
		Shader:       shaders.Clip,
		VertexStride: 8,
		SampleCount:  4,
		ColorFormat:  gputypes.TextureFormatBGRA8Unorm,
		Stencil: renderer.StencilState{
			Compare:   gputypes.CompareFunctionEqual,
			PassOp:    gputypes.StencilOperationIncrementClamp,
			ReadMask:  0xFF,
			WriteMask: 0xFF,
		},
		Topology: gputypes.PrimitiveTopologyTriangleList,
	}
	rpd := renderPipelineDescriptor(desc, nil, nil, shaders.VertexLayout(shaders.Clip))

	target := rpd.Fragment.Targets[0]
	if target.WriteMask != gputypes.ColorWriteMaskNone {
		t.Errorf("WriteMask = %v, want none", target.WriteMask)
	}
	if target.Blend != nil {
		t.Errorf("Blend = %+v, want nil", target.Blend)
	}
	if target.Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format = %v", target.Format)
	}
	if rpd.Multisample.Count != 4 {
		t.Errorf("Multisample.Count = %d, want 4", rpd.Multisample.Count)
	}
	ds := rpd.DepthStencil
	if ds.StencilFront.PassOp != hal.StencilOperationIncrementClamp {
		t.Errorf("PassOp = %v, want IncrementClamp", ds.StencilFront.PassOp)
	}
	if ds.StencilFront.FailOp != hal.StencilOperationKeep || ds.StencilBack.Compare != gputypes.CompareFunctionEqual {
		t.Errorf("stencil faces = %+v / %+v", ds.StencilFront, ds.StencilBack)
	}
	if ds.StencilReadMask != 0xFF || ds.StencilWriteMask != 0xFF {
		t.Errorf("stencil masks = %#x/%#x", ds.StencilReadMask, ds.StencilWriteMask)
	}

	desc.ColorWrites = true
	desc.Blend = renderer.BlendPlus.BlendState()
	desc.SampleCount = 0
	rpd = renderPipelineDescriptor(desc, nil, nil, shaders.VertexLayout(shaders.Clip))
	if got := rpd.Fragment.Targets[0]; got.WriteMask != gputypes.ColorWriteMaskAll || got.Blend == nil || *got.Blend != desc.Blend {
		t.Errorf("colour target = %+v", got)
	}
	if rpd.Multisample.Count != 1 {
		t.Errorf("Multisample.Count = %d, want 1", rpd.Multisample.Count)
	}
}

func TestStencilOperation(t *testing.T) {
	tests := []struct {
		in   gputypes.StencilOperation
		want hal.StencilOperation
	}{
		{gputypes.StencilOperationUndefined, hal.StencilOperationKeep},
		{gputypes.StencilOperationKeep, hal.StencilOperationKeep},
		{gputypes.StencilOperationZero, hal.StencilOperationZero},
		{gputypes.StencilOperationReplace, hal.StencilOperationReplace},
		{gputypes.StencilOperationInvert, hal.StencilOperationInvert},
		{gputypes.StencilOperationIncrementClamp, hal.StencilOperationIncrementClamp},
		{gputypes.StencilOperationDecrementClamp, hal.StencilOperationDecrementClamp},
		{gputypes.StencilOperationIncrementWrap, hal.StencilOperationIncrementWrap},
		{gputypes.StencilOperationDecrementWrap, hal.StencilOperationDecrementWrap},
	}
	for _, tt := range tests {
		if got := stencilOperation(tt.in); got != tt.want {
			t.Errorf("stencilOperation(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFinishScene(t *testing.T) {
	b := newNoopBackend(t)
	ctx := contents.NewContentContext(b.PipelineFactory())
	defer ctx.Close()

	size := geometry.ISize{Width: 64, Height: 48}
	fr, err := b.BeginFrame(size)
	if err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := contents.NewEntityPass(scene()...).Render(ctx, fr); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := len(fr.(*frame).Commands()); got != 5 {
		t.Errorf("recorded commands = %d, want 5", got)
	}
	img, err := fr.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 64, 48) {
		t.Errorf("image bounds = %v", got)
	}
	if b.targets.sampleCount != DefaultSampleCount || b.targets.msaaTex == nil {
		t.Errorf("targets = %d samples, msaa %v", b.targets.sampleCount, b.targets.msaaTex)
	}

	// The device copy of the transient buffer holds the frame arena.
	want := b.transients.Bytes()
	mapping, err := b.device.MapBuffer(b.arena, 0, uint64(len(want)))
	if err != nil {
		t.Fatalf("MapBuffer() error = %v", err)
	}
	got := unsafe.Slice((*byte)(mapping.Ptr), len(want))
	if !bytes.Equal(got, want) {
		t.Error("uploaded transients differ from the frame arena")
	}
}

func TestSingleSampleTargets(t *testing.T) {
	b := newNoopBackend(t, WithSampleCount(1))
	ctx := contents.NewContentContext(b.PipelineFactory())
	defer ctx.Close()

	fr, err := b.BeginFrame(geometry.ISize{Width: 8, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	if err := contents.NewEntityPass(scene()...).Render(ctx, fr); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, err := fr.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if b.targets.msaaTex != nil {
		t.Error("single-sampled fr created an MSAA texture")
	}
	if got := b.targets.colorAttachment().View; got != b.targets.resolveView {
		t.Error("single-sampled pass does not render into the resolve view")
	}
}

func TestForeignPipeline(t *testing.T) {
	b := newNoopBackend(t)
	fr, err := b.BeginFrame(geometry.ISize{Width: 4, Height: 4})
	if err != nil {
		t.Fatal(err)
	}
	hb := fr.TransientsBuffer()

	vb := renderer.NewVertexBufferBuilder[renderer.SolidFillVertex](3)
	vb.AppendVertex(renderer.SolidFillVertex{Position: f32.Vec2{0, 0}})
	vb.AppendVertex(renderer.SolidFillVertex{Position: f32.Vec2{4, 0}})
	vb.AppendVertex(renderer.SolidFillVertex{Position: f32.Vec2{0, 4}})
	vertices, err := vb.CreateVertexBuffer(hb)
	if err != nil {
		t.Fatal(err)
	}
	info, err := hb.EmplaceUniform(shaders.FrameInfo{})
	if err != nil {
		t.Fatal(err)
	}

	cmd := renderer.Command{
		Label: "foreign",
		Pipeline: &renderer.DescriptorPipeline{Desc: renderer.PipelineDescriptor{
			Shader: shaders.SolidFill, VertexStride: 8,
		}},
		PrimitiveType: gputypes.PrimitiveTopologyTriangleList,
	}
	cmd.BindVertices(vertices)
	cmd.BindUniform(renderer.StageVertex, shaders.FrameInfoBinding, info)
	if !fr.AddCommand(cmd) {
		t.Fatalf("AddCommand() rejected: %v", fr.(*frame).Err())
	}
	if _, err := fr.Finish(); !errors.Is(err, ErrForeignPipeline) {
		t.Errorf("Finish() error = %v, want ErrForeignPipeline", err)
	}
}

func TestFrameLifecycle(t *testing.T) {
	b := newNoopBackend(t)
	if _, err := b.BeginFrame(geometry.ISize{Width: -1, Height: 4}); !errors.Is(err, backend.ErrInvalidSize) {
		t.Errorf("BeginFrame(-1x4) error = %v, want ErrInvalidSize", err)
	}

	fr, err := b.BeginFrame(geometry.ISize{Width: 4, Height: 4})
	if err != nil {
		t.Fatal(err)
	}
	img, err := fr.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if img.Bounds().Dx() != 4 || img.RGBAAt(1, 1) != (color.RGBA{}) {
		t.Errorf("empty fr = %v %v", img.Bounds(), img.RGBAAt(1, 1))
	}
	if _, err := fr.Finish(); !errors.Is(err, backend.ErrFrameFinished) {
		t.Errorf("second Finish() error = %v, want ErrFrameFinished", err)
	}

	pending, err := b.BeginFrame(geometry.ISize{Width: 4, Height: 4})
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := pending.Finish(); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Finish() after Close error = %v, want ErrClosed", err)
	}
	if _, err := b.BeginFrame(geometry.ISize{Width: 4, Height: 4}); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("BeginFrame() after Close error = %v, want ErrClosed", err)
	}
}

func TestCopyRows(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src := make([]byte, 2*256)
	copy(src, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	copy(src[256:], []byte{9, 10, 11, 12, 13, 14, 15, 16})

	copyRows(dst, src, 256, false)
	if diff := cmp.Diff([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, dst.Pix); diff != "" {
		t.Errorf("RGBA rows mismatch (-want +got):\n%s", diff)
	}
	copyRows(dst, src, 256, true)
	if diff := cmp.Diff([]byte{3, 2, 1, 4, 7, 6, 5, 8, 11, 10, 9, 12, 15, 14, 13, 16}, dst.Pix); diff != "" {
		t.Errorf("BGRA rows mismatch (-want +got):\n%s", diff)
	}
}

func TestTightPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	if got := tightPixels(img); len(got) != 64 || &got[0] != &img.Pix[0] {
		t.Error("tight image was copied")
	}
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	want := []byte{
		20, 21, 22, 23, 24, 25, 26, 27,
		36, 37, 38, 39, 40, 41, 42, 43,
	}
	if diff := cmp.Diff(want, tightPixels(sub)); diff != "" {
		t.Errorf("tightPixels(sub) mismatch (-want +got):\n%s", diff)
	}
}

type fakeProvider struct {
	format gputypes.TextureFormat
}

func (fakeProvider) Device() gpucontext.Device               { return nil }
func (fakeProvider) Queue() gpucontext.Queue                 { return nil }
func (p fakeProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (fakeProvider) Adapter() gpucontext.Adapter             { return nil }
func (fakeProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop", Type: gpucontext.AdapterTypeSoftware}
}

type halProvider struct {
	fakeProvider
	device hal.Device
	queue  hal.Queue
}

func (p halProvider) HalDevice() any { return p.device }
func (p halProvider) HalQueue() any  { return p.queue }

func TestNewFromProvider(t *testing.T) {
	if _, err := NewFromProvider(fakeProvider{}); err == nil {
		t.Error("provider without HAL types accepted")
	}

	device, queue := openNoop(t)
	b, err := NewFromProvider(halProvider{
		fakeProvider: fakeProvider{format: gputypes.TextureFormatBGRA8Unorm},
		device:       device,
		queue:        queue,
	}, WithSampleCount(1))
	if err != nil {
		t.Fatalf("NewFromProvider() error = %v", err)
	}
	defer b.Close()

	if b.colorFormat != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("colour format = %v, want surface format", b.colorFormat)
	}
	if b.SampleCount() != 1 {
		t.Errorf("SampleCount() = %d, want 1", b.SampleCount())
	}
	want := GPUInfo{Name: "noop", DeviceType: gputypes.DeviceTypeCPU}
	if diff := cmp.Diff(want, b.GPUInfo()); diff != "" {
		t.Errorf("GPUInfo() mismatch (-want +got):\n%s", diff)
	}
}

func TestWithColorFormatIgnoresUnreadable(t *testing.T) {
	b := newNoopBackend(t, WithColorFormat(gputypes.TextureFormatRGBA16Float))
	if b.colorFormat != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("colour format = %v, want RGBA8Unorm", b.colorFormat)
	}
}
