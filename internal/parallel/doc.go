// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package parallel runs independent per-entity work, such as path
// tessellation, on a small goroutine pool.
//
// Results are always merged back in submission order so that the command
// stream built from them does not depend on scheduling.
package parallel
