// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software executes content commands on the CPU.
//
// Each command's triangles are rasterized into a coverage mask with
// golang.org/x/image/vector, then every covered pixel runs the stencil test
// and the fragment stage of the command's shader before it is blended into
// the target with the pipeline's blend factors. The result matches the wgpu
// backend up to anti-aliasing: coverage is analytic instead of multisampled,
// and a pixel takes part in stencil writes when its center is covered.
//
// Importing the package registers it as the "software" backend.
package software
