// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package renderer is the GPU-agnostic command layer shared by contents and
// backends.
//
// A frame records draw commands into a RenderPass. Vertex and uniform data
// for those commands live in a HostBuffer, a per-frame bump arena that is
// reclaimed wholesale by Reset. Pipelines are opaque handles created by a
// backend-supplied PipelineFactory from a comparable PipelineDescriptor, so
// descriptors double as cache keys.
package renderer
