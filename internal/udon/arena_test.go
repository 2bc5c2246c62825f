// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

package udon

import "testing"

func TestArenaAppendAndResolve(t *testing.T) {
	a := newArena()
	idx := a.append([]byte("hello"))
	if idx != 0 {
		t.Fatalf("first append idx = %d; want 0", idx)
	}
	got := a.resolve(ByteSlice{ChunkIdx: idx, Start: 1, End: 4})
	if string(got) != "ell" {
		t.Errorf("resolve = %q; want %q", got, "ell")
	}
}

func TestArenaAppendIsCopyNotAlias(t *testing.T) {
	a := newArena()
	b := []byte("hello")
	a.append(b)
	b[0] = 'H'
	got := a.resolve(ByteSlice{ChunkIdx: 0, Start: 0, End: 5})
	if string(got) != "hello" {
		t.Errorf("arena chunk mutated alongside caller buffer: got %q", got)
	}
}

func TestArenaHandleForWithinOneChunk(t *testing.T) {
	a := newArena()
	a.append([]byte("one "))
	a.append([]byte("two"))
	h := a.handleFor(4, 7)
	if h.ChunkIdx != 1 || h.Start != 0 || h.End != 3 {
		t.Fatalf("handleFor(4,7) = %+v; want chunk 1, [0:3)", h)
	}
	if string(a.resolve(h)) != "two" {
		t.Errorf("resolve(handleFor(4,7)) = %q; want %q", a.resolve(h), "two")
	}
}

func TestArenaHandleForCrossesChunkBoundary(t *testing.T) {
	a := newArena()
	a.append([]byte("ab"))
	a.append([]byte("cd"))
	h := a.handleFor(1, 3) // "b" + "c"
	got := a.resolve(h)
	if string(got) != "bc" {
		t.Fatalf("cross-chunk handleFor = %q; want %q", got, "bc")
	}
	if h.ChunkIdx != 2 {
		t.Errorf("cross-chunk handle should materialize into a new synthetic chunk; got chunk %d", h.ChunkIdx)
	}
}

func TestArenaByteAt(t *testing.T) {
	a := newArena()
	a.append([]byte("abc"))
	a.append([]byte("def"))
	for i, want := range []byte("abcdef") {
		b, ok := a.byteAt(uint64(i))
		if !ok || b != want {
			t.Errorf("byteAt(%d) = %q, %v; want %q, true", i, b, ok, want)
		}
	}
	if _, ok := a.byteAt(6); ok {
		t.Errorf("byteAt(6) should report not-available past the appended total")
	}
}

func TestArenaClearResetsState(t *testing.T) {
	a := newArena()
	a.append([]byte("data"))
	a.clear()
	if a.len() != 0 {
		t.Fatalf("len() after clear = %d; want 0", a.len())
	}
	idx := a.append([]byte("fresh"))
	if idx != 0 {
		t.Errorf("append after clear should start at chunk 0; got %d", idx)
	}
}

func TestArenaResolveInvalidHandlePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("resolve with out-of-range End should panic")
		}
	}()
	a := newArena()
	a.append([]byte("ab"))
	a.resolve(ByteSlice{ChunkIdx: 0, Start: 0, End: 10})
}

func TestArenaEmptyHandleForIsEmpty(t *testing.T) {
	a := newArena()
	a.append([]byte("abc"))
	h := a.handleFor(1, 1)
	if !h.Empty() {
		t.Fatalf("handleFor(1,1) should be Empty()")
	}
	if got := a.resolve(h); len(got) != 0 {
		t.Errorf("resolve(empty handle) = %q; want empty", got)
	}
}
