// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
)

const (
	// DefaultFramesInFlight is the number of frame arenas kept in the ring.
	DefaultFramesInFlight = 3

	// DefaultFrameCapacity is the per-frame arena limit in bytes (16 MiB).
	DefaultFrameCapacity = 16 << 20

	initialArenaCapacity = 64 << 10
)

// ErrOutOfMemory is returned when a frame arena cannot hold an allocation.
// The frame must be abandoned; the error stays latched until Reset.
var ErrOutOfMemory = errors.New("renderer: transient buffer out of memory")

// ErrInvalidAlignment is returned for an alignment that is not a power of two.
var ErrInvalidAlignment = errors.New("renderer: alignment must be a power of two")

// UniformData is a uniform block that encodes itself in its GPU layout.
type UniformData interface {
	// Append appends the encoded block to dst and returns the extended slice.
	Append(dst []byte) []byte
}

// Range is a byte range inside a frame arena.
type Range struct {
	Offset int
	Length int
}

// BufferView references bytes allocated from a HostBuffer during one frame.
// A view stays valid until its arena comes around the ring again.
type BufferView struct {
	Buffer *HostBuffer
	Range  Range

	frame int
	epoch uint64
}

// Frame returns the index of the arena the view was allocated from.
func (v BufferView) Frame() int { return v.frame }

// Valid reports whether the view's arena has not been recycled since the
// view was allocated.
func (v BufferView) Valid() bool {
	if v.Buffer == nil {
		return false
	}
	v.Buffer.mu.Lock()
	defer v.Buffer.mu.Unlock()
	return v.Buffer.live(v)
}

// Current reports whether the view belongs to the buffer's current frame.
func (v BufferView) Current() bool {
	if v.Buffer == nil {
		return false
	}
	v.Buffer.mu.Lock()
	defer v.Buffer.mu.Unlock()
	return v.Buffer.live(v) && v.frame == v.Buffer.frameIndex
}

// Bytes returns the referenced bytes, or nil when the view is stale.
// The returned slice must not be modified.
func (v BufferView) Bytes() []byte {
	if v.Buffer == nil {
		return nil
	}
	hb := v.Buffer
	hb.mu.Lock()
	defer hb.mu.Unlock()
	if !hb.live(v) {
		return nil
	}
	end := v.Range.Offset + v.Range.Length
	return hb.frames[v.frame][v.Range.Offset:end:end]
}

// HostBuffer is the transient allocator for per-frame vertex and uniform
// data. It keeps a ring of framesInFlight arenas; each Reset advances to the
// next arena and discards everything previously allocated in it. Views into
// the other arenas of the ring stay readable.
//
// HostBuffer is safe for concurrent use.
type HostBuffer struct {
	mu           sync.Mutex
	frames       [][]byte
	epochs       []uint64 // recycle count per arena
	frameIndex   int
	capacity     int
	uniformAlign int
	err          error
}

// HostBufferOption configures a HostBuffer.
type HostBufferOption func(*HostBuffer)

// WithFrameCapacity sets the per-frame arena limit in bytes.
func WithFrameCapacity(bytes int) HostBufferOption {
	return func(hb *HostBuffer) {
		if bytes > 0 {
			hb.capacity = bytes
		}
	}
}

// WithFramesInFlight sets the number of arenas in the ring.
func WithFramesInFlight(n int) HostBufferOption {
	return func(hb *HostBuffer) {
		if n > 0 {
			hb.frames = make([][]byte, n)
		}
	}
}

// WithUniformAlignment overrides the uniform offset alignment. Backends pass
// their device's MinUniformBufferOffsetAlignment.
func WithUniformAlignment(align int) HostBufferOption {
	return func(hb *HostBuffer) {
		if isPowerOfTwo(align) {
			hb.uniformAlign = align
		}
	}
}

// NewHostBuffer creates a transient allocator.
func NewHostBuffer(opts ...HostBufferOption) *HostBuffer {
	hb := &HostBuffer{
		frames:       make([][]byte, DefaultFramesInFlight),
		capacity:     DefaultFrameCapacity,
		uniformAlign: int(gputypes.DefaultLimits().MinUniformBufferOffsetAlignment),
	}
	for _, opt := range opts {
		opt(hb)
	}
	for i := range hb.frames {
		hb.frames[i] = make([]byte, 0, min(initialArenaCapacity, hb.capacity))
	}
	hb.epochs = make([]uint64, len(hb.frames))
	return hb
}

func (hb *HostBuffer) arena() []byte { return hb.frames[hb.frameIndex] }

func (hb *HostBuffer) live(v BufferView) bool {
	return v.frame < len(hb.epochs) && hb.epochs[v.frame] == v.epoch
}

// Emplace copies data into the current frame arena at an offset aligned to
// align bytes.
func (hb *HostBuffer) Emplace(data []byte, align int) (BufferView, error) {
	return hb.EmplaceFunc(len(data), align, func(dst []byte) {
		copy(dst, data)
	})
}

// EmplaceFunc reserves length bytes aligned to align and lets write fill them
// in place. write must fill the whole slice and must not retain it.
func (hb *HostBuffer) EmplaceFunc(length, align int, write func(dst []byte)) (BufferView, error) {
	if !isPowerOfTwo(align) {
		return BufferView{}, fmt.Errorf("%w: %d", ErrInvalidAlignment, align)
	}
	hb.mu.Lock()
	defer hb.mu.Unlock()

	if hb.err != nil {
		return BufferView{}, hb.err
	}
	buf := hb.arena()
	offset := alignUp(len(buf), align)
	end := offset + length
	if end > hb.capacity {
		hb.err = fmt.Errorf("%w: need %d bytes, frame capacity %d", ErrOutOfMemory, end, hb.capacity)
		Logger().Warn("renderer: frame arena exhausted",
			"frame", hb.frameIndex, "requested", length, "capacity", hb.capacity)
		return BufferView{}, hb.err
	}
	buf = grow(buf, end)
	write(buf[offset:end:end])
	hb.frames[hb.frameIndex] = buf
	return BufferView{
		Buffer: hb,
		Range:  Range{Offset: offset, Length: length},
		frame:  hb.frameIndex,
		epoch:  hb.epochs[hb.frameIndex],
	}, nil
}

// EmplaceUniform encodes a uniform block into the arena at the uniform offset
// alignment.
func (hb *HostBuffer) EmplaceUniform(u UniformData) (BufferView, error) {
	encoded := u.Append(make([]byte, 0, 128))
	return hb.Emplace(encoded, hb.uniformAlign)
}

// Reset advances to the next arena in the ring, invalidating every view
// allocated from it, and clears a latched error.
func (hb *HostBuffer) Reset() {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	hb.frameIndex = (hb.frameIndex + 1) % len(hb.frames)
	hb.frames[hb.frameIndex] = hb.frames[hb.frameIndex][:0]
	hb.epochs[hb.frameIndex]++
	hb.err = nil
}

// Bytes returns the current frame arena for upload to the device. The slice
// must not be modified.
func (hb *HostBuffer) Bytes() []byte {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	return hb.arena()
}

// Len returns the number of bytes used in the current frame.
func (hb *HostBuffer) Len() int {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	return len(hb.arena())
}

// Err returns the allocation error of the current frame, if any.
func (hb *HostBuffer) Err() error {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	return hb.err
}

// FrameIndex returns the index of the current arena in the ring.
func (hb *HostBuffer) FrameIndex() int {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	return hb.frameIndex
}

// Capacity returns the per-frame arena limit in bytes.
func (hb *HostBuffer) Capacity() int { return hb.capacity }

// UniformAlignment returns the offset alignment used by EmplaceUniform.
func (hb *HostBuffer) UniformAlignment() int { return hb.uniformAlign }

// grow extends buf with zero bytes to length n.
func grow(buf []byte, n int) []byte {
	if n <= cap(buf) {
		old := len(buf)
		buf = buf[:n]
		clear(buf[old:])
		return buf
	}
	return append(buf, make([]byte, n-len(buf))...)
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
