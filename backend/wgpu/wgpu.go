// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/contents/backend"
	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/internal/cache"
	"github.com/gogpu/contents/renderer"
)

// DefaultSampleCount is the MSAA sample count of a new Backend.
const DefaultSampleCount = 4

// ErrNilDevice is returned by New for a nil device or queue.
var ErrNilDevice = errors.New("wgpu: nil device or queue")

func init() {
	backend.Register(backend.NameWGPU, func() (backend.Backend, error) {
		b, err := NewHeadless()
		if err != nil {
			return nil, err
		}
		return b, nil
	})
}

// Option configures a Backend.
type Option func(*Backend)

// WithSampleCount sets the MSAA sample count. Values below 1 are ignored.
func WithSampleCount(n uint32) Option {
	return func(b *Backend) {
		if n > 0 {
			b.sampleCount = n
		}
	}
}

// WithColorFormat sets the colour target format. Only RGBA8Unorm and
// BGRA8Unorm can be read back; other formats are ignored.
func WithColorFormat(format gputypes.TextureFormat) Option {
	return func(b *Backend) {
		if readableFormat(format) {
			b.colorFormat = format
		}
	}
}

// WithHostBufferOptions configures the transient buffer of the backend.
func WithHostBufferOptions(opts ...renderer.HostBufferOption) Option {
	return func(b *Backend) { b.hostOpts = append(b.hostOpts, opts...) }
}

// WithCommandLimit sets the maximum number of commands per frame.
func WithCommandLimit(n int) Option {
	return func(b *Backend) { b.commandLimit = n }
}

func readableFormat(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatRGBA8Unorm || f == gputypes.TextureFormatBGRA8Unorm
}

// Backend renders frames on a HAL device into offscreen targets and reads
// them back.
//
// Frames are executed one at a time; BeginFrame recycles the transient
// buffer, so a frame must be finished before the next one begins.
type Backend struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue
	owned  *openDevice
	info   GPUInfo

	sampleCount  uint32
	colorFormat  gputypes.TextureFormat
	commandLimit int
	hostOpts     []renderer.HostBufferOption
	transients   *renderer.HostBuffer

	pipelines *cache.Cache[renderer.PipelineDescriptor, *pipeline]
	targets   targetSet
	arena     hal.Buffer
	arenaSize uint64
	samplers  map[gputypes.FilterMode]hal.Sampler

	closed bool
}

// New creates a backend on an existing HAL device. The caller keeps
// ownership of device and queue.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	b := &Backend{
		device:       device,
		queue:        queue,
		sampleCount:  DefaultSampleCount,
		colorFormat:  gputypes.TextureFormatRGBA8Unorm,
		commandLimit: renderer.DefaultCommandLimit,
		pipelines:    cache.New[renderer.PipelineDescriptor, *pipeline](0),
		samplers:     make(map[gputypes.FilterMode]hal.Sampler),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.pipelines.OnEvict(func(_ renderer.PipelineDescriptor, p *pipeline) {
		p.destroy(b.device)
	})
	b.transients = renderer.NewHostBuffer(b.hostOpts...)
	return b, nil
}

// NewHeadless opens a device on the first available HAL backend and creates
// a backend that owns it.
func NewHeadless(opts ...Option) (*Backend, error) {
	d, err := openHeadless()
	if err != nil {
		return nil, err
	}
	b, err := New(d.device, d.queue, opts...)
	if err != nil {
		d.release()
		return nil, err
	}
	b.owned = d
	b.info = d.info
	return b, nil
}

// NewFromProvider creates a backend sharing the device of a host
// application. The provider must expose its HAL device and queue.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Backend, error) {
	if provider == nil {
		return nil, ErrNilDevice
	}
	device, queue, err := halDevices(provider)
	if err != nil {
		return nil, err
	}
	if f := provider.SurfaceFormat(); readableFormat(f) {
		opts = append([]Option{WithColorFormat(f)}, opts...)
	}
	b, err := New(device, queue, opts...)
	if err != nil {
		return nil, err
	}
	info := provider.AdapterInfo()
	b.info = GPUInfo{Name: info.Name, DeviceType: deviceType(info.Type)}
	renderer.Logger().Info("wgpu: using provider device", "gpu", info.Name, "type", info.Type.String())
	return b, nil
}

func deviceType(t gpucontext.AdapterType) gputypes.DeviceType {
	switch t {
	case gpucontext.AdapterTypeDiscrete:
		return gputypes.DeviceTypeDiscreteGPU
	case gpucontext.AdapterTypeIntegrated:
		return gputypes.DeviceTypeIntegratedGPU
	case gpucontext.AdapterTypeSoftware:
		return gputypes.DeviceTypeCPU
	default:
		return gputypes.DeviceTypeOther
	}
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.NameWGPU }

// GPUInfo returns the adapter the backend renders on. It is empty for
// backends created with New.
func (b *Backend) GPUInfo() GPUInfo { return b.info }

// SampleCount returns the MSAA sample count of the colour target.
func (b *Backend) SampleCount() uint32 { return b.sampleCount }

// PipelineFactory implements backend.Backend. Pipelines are created once per
// descriptor and live until Close.
func (b *Backend) PipelineFactory() renderer.PipelineFactory {
	return renderer.PipelineFactoryFunc(b.createPipeline)
}

func (b *Backend) createPipeline(desc renderer.PipelineDescriptor) (renderer.Pipeline, error) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return nil, backend.ErrClosed
	}
	p, err := b.pipelines.GetOrCreate(desc, func() (*pipeline, error) {
		p, err := createPipeline(b.device, desc)
		if err != nil {
			return nil, err
		}
		renderer.Logger().Debug("wgpu: pipeline created", "label", desc.Label, "shader", desc.Shader,
			"samples", desc.SampleCount)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// BeginFrame implements backend.Backend.
func (b *Backend) BeginFrame(size geometry.ISize) (backend.Frame, error) {
	if err := backend.ValidateSize(size); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, backend.ErrClosed
	}
	b.transients.Reset()
	pass := renderer.NewCommandPass(size, b.transients,
		renderer.WithSampleCount(b.sampleCount),
		renderer.WithColorFormat(b.colorFormat),
		renderer.WithCommandLimit(b.commandLimit),
	)
	return &frame{CommandPass: pass, backend: b}, nil
}

// ensureArena grows the device copy of the transient buffer to hold size
// bytes.
func (b *Backend) ensureArena(size uint64) error {
	if b.arena != nil && b.arenaSize >= size {
		return nil
	}
	if b.arena != nil {
		b.device.DestroyBuffer(b.arena)
		b.arena, b.arenaSize = nil, 0
	}
	capacity := uint64(64 << 10)
	for capacity < size {
		capacity *= 2
	}
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "contents_transients",
		Size:  capacity,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create transient buffer: %w", err)
	}
	b.arena, b.arenaSize = buf, capacity
	return nil
}

// sampler returns the shared sampler for a filter mode.
func (b *Backend) sampler(filter gputypes.FilterMode) (hal.Sampler, error) {
	if filter != gputypes.FilterModeLinear {
		filter = gputypes.FilterModeNearest
	}
	if s, ok := b.samplers[filter]; ok {
		return s, nil
	}
	s, err := b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "contents_sampler_" + filter.String(),
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter,
		MinFilter:    filter,
		LodMaxClamp:  32,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}
	b.samplers[filter] = s
	return s, nil
}

// Close implements backend.Backend. It waits for the device, destroys every
// object the backend created and releases an owned device.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	err := b.device.WaitIdle()
	b.pipelines.Clear()
	b.targets.destroy(b.device)
	if b.arena != nil {
		b.device.DestroyBuffer(b.arena)
		b.arena, b.arenaSize = nil, 0
	}
	for f, s := range b.samplers {
		b.device.DestroySampler(s)
		delete(b.samplers, f)
	}
	if b.owned != nil {
		b.owned.release()
		b.owned = nil
	}
	if err != nil {
		return fmt.Errorf("wgpu: wait idle: %w", err)
	}
	return nil
}
