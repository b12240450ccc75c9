// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geometry provides the geometric primitives shared by the content
// rendering core: points, 4x4 transformation matrices, rectangles, immutable
// paths with a fill type, and the flattened polylines that the tessellator
// consumes.
//
// # Coordinate System
//
// Local and pixel space use the usual 2D graphics convention:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// [MakeOrthographic] maps pixel space of a render target to normalized device
// coordinates, with +Y pointing up in NDC.
package geometry
