// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glfwsurface

import "testing"

func TestContextRefsOverlappingContexts(t *testing.T) {
	var refs contextRefs

	// Resume while active: new context first, then the old one is closed.
	refs.acquire()
	refs.acquire()
	if refs.release() {
		t.Fatal("closing the replaced context must not detach while another is live")
	}
	if refs.count() != 1 {
		t.Fatalf("count() = %d, want 1", refs.count())
	}
	if !refs.release() {
		t.Error("closing the last context must detach")
	}
}

func TestContextRefsSingleCycle(t *testing.T) {
	var refs contextRefs

	for i := 0; i < 3; i++ {
		refs.acquire()
		if !refs.release() {
			t.Errorf("cycle %d: release of the only context should be last", i)
		}
	}
}

func TestContextRefsExtraRelease(t *testing.T) {
	var refs contextRefs

	if refs.release() {
		t.Error("release without a live context must not report last")
	}
	if refs.count() != 0 {
		t.Errorf("count() = %d, want 0", refs.count())
	}
}
