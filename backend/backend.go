// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered
	// or cannot be opened.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("backend: closed")

	// ErrFrameFinished is returned when a frame is finished twice.
	ErrFrameFinished = errors.New("backend: frame already finished")

	// ErrInvalidSize is returned by BeginFrame for an empty target.
	ErrInvalidSize = errors.New("backend: invalid render target size")
)

// Backend executes content commands on one device.
//
// A Backend renders one frame at a time; BeginFrame must not be called
// again until the previous frame is finished.
type Backend interface {
	// Name returns the backend identifier (e.g. "software", "wgpu").
	Name() string

	// PipelineFactory returns the factory for this backend's pipelines. Pass
	// it to contents.NewContentContext.
	PipelineFactory() renderer.PipelineFactory

	// BeginFrame resets the transient buffer and starts recording a frame
	// for a target of the given size.
	BeginFrame(size geometry.ISize) (Frame, error)

	// Close releases all backend resources.
	Close() error
}

// Frame is a render pass whose commands run when the frame finishes.
type Frame interface {
	renderer.RenderPass

	// Finish executes the recorded commands in order and returns the
	// rendered target with premultiplied alpha.
	Finish() (*image.RGBA, error)
}

// ValidateSize checks a render target size.
func ValidateSize(size geometry.ISize) error {
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, size.Width, size.Height)
	}
	return nil
}
