// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package stream

import (
	"sync"

	"github.com/specialistvlad/controlrig/internal/datum"
)

// Locked serializes access to a getter behind a mutex. The graph itself is
// single-threaded by contract; Locked is the boundary wrapper for the one
// legitimate cross-thread case, a node polled by actuator code running
// outside the driver loop.
type Locked[T any] struct {
	mu    sync.Mutex
	inner Getter[T]
}

// NewLocked wraps inner behind a mutex.
func NewLocked[T any](inner Getter[T]) *Locked[T] {
	return &Locked[T]{inner: inner}
}

func (l *Locked[T]) Update() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Update()
}

func (l *Locked[T]) Get() (*datum.Datum[T], error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Get()
}
