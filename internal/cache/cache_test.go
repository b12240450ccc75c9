// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"errors"
	"sync"
	"testing"
)

func TestGetOrCreateCachesSuccess(t *testing.T) {
	c := New[string, int](0)
	calls := 0
	create := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCreate("a", create)
		if err != nil || v != 42 {
			t.Fatalf("GetOrCreate = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Stats = %+v, want 2 hits 1 miss", s)
	}
	if got := s.HitRate(); got < 0.66 || got > 0.67 {
		t.Errorf("HitRate() = %v", got)
	}
}

func TestGetOrCreateDoesNotCacheErrors(t *testing.T) {
	c := New[string, int](0)
	errBoom := errors.New("boom")

	if _, err := c.GetOrCreate("a", func() (int, error) { return 0, errBoom }); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Fatalf("Len() = %d after failed create", c.Len())
	}
	v, err := c.GetOrCreate("a", func() (int, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Errorf("retry = %d, %v", v, err)
	}
}

func TestEvictionCallsOnEvict(t *testing.T) {
	c := New[int, int](4)
	var evicted []int
	c.OnEvict(func(k, _ int) { evicted = append(evicted, k) })

	for i := 0; i < 5; i++ {
		c.Set(i, i)
	}
	// 5 > 4 triggers eviction down to 3 entries, oldest first.
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if len(evicted) != 2 || evicted[0] != 0 || evicted[1] != 1 {
		t.Errorf("evicted = %v, want [0 1]", evicted)
	}
	if _, ok := c.Get(4); !ok {
		t.Error("newest entry evicted")
	}

	c.Clear()
	if len(evicted) != 5 {
		t.Errorf("evicted after Clear = %d entries, want 5", len(evicted))
	}
}

func TestConcurrentGetOrCreate(t *testing.T) {
	c := New[int, int](0)
	var mu sync.Mutex
	created := map[int]int{}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 16; k++ {
				_, _ = c.GetOrCreate(k, func() (int, error) {
					mu.Lock()
					created[k]++
					mu.Unlock()
					return k, nil
				})
			}
		}()
	}
	wg.Wait()

	for k, n := range created {
		if n != 1 {
			t.Errorf("key %d created %d times", k, n)
		}
	}
}
