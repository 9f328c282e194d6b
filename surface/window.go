// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"sync/atomic"
)

var lastWindowID atomic.Uint64

// NextWindowID returns a process-unique window identifier.
// Backends that wrap native windows use it to implement Window.ID.
func NextWindowID() uint64 {
	return lastWindowID.Add(1)
}

// HeadlessWindow is a Window with no native counterpart. It is used for
// offscreen backends (memory, file, shm) and in tests.
type HeadlessWindow struct {
	id    uint64
	title string
}

// NewHeadlessWindow creates a headless window with a fresh ID.
func NewHeadlessWindow(title string) *HeadlessWindow {
	return &HeadlessWindow{id: NextWindowID(), title: title}
}

// ID implements Window.
func (w *HeadlessWindow) ID() uint64 { return w.id }

// Title returns the title the window was created with.
func (w *HeadlessWindow) Title() string { return w.title }

func (w *HeadlessWindow) String() string {
	return fmt.Sprintf("headless window %d (%q)", w.id, w.title)
}
