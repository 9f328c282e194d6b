// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glfwsurface

// contextRefs counts the live presentation contexts of one window.
//
// A renderer resuming while already active creates its new context before
// closing the old one, and both share the window's single GL context. Only
// the close of the last live context may detach it.
type contextRefs struct {
	live int
}

// acquire records a new live context.
func (r *contextRefs) acquire() {
	r.live++
}

// release records a closed context and reports whether it was the last one.
func (r *contextRefs) release() (last bool) {
	if r.live == 0 {
		return false
	}
	r.live--
	return r.live == 0
}

// count returns the number of live contexts.
func (r *contextRefs) count() int { return r.live }
