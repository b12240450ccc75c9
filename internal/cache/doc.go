// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides the generic LRU cache behind pipeline registries.
//
// Cache[K, V] uses a soft limit with 25% eviction when capacity is exceeded.
// Creation may fail; failures are returned to the caller and not cached, so a
// later lookup retries.
//
//	pipelines := cache.New[renderer.PipelineDescriptor, renderer.Pipeline](64)
//	p, err := pipelines.GetOrCreate(desc, func() (renderer.Pipeline, error) {
//		return factory.CreatePipeline(desc)
//	})
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
