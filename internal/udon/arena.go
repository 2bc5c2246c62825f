// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Chunk arena (C1): owns appended input chunks and resolves byte
// handles against them. Chunks are append-only for the lifetime of a
// parse; indices never relocate, so handles stay valid once issued.

package udon

// arenaChunk is one owned, immutable byte buffer plus the offset at
// which it begins in the logical input stream. detached chunks hold
// parser-synthesized bytes (materializeSynthetic, or handleFor's
// cross-chunk stitch) that never occupied a real position in the fed
// input; their streamOffset is meaningless and chunkForOffset skips
// them, so they never shadow real input during line scanning.
type arenaChunk struct {
	data         []byte
	streamOffset uint64
	detached     bool
}

// arena implements C1. The conservative policy described in spec.md 3.5
// (retain every chunk for the parser's lifetime) is the one implemented
// here; a future compaction pass is out of scope.
type arena struct {
	chunks []arenaChunk
	total  uint64
}

func newArena() *arena {
	return &arena{}
}

// append copies bytes into a newly owned chunk and returns its index.
func (a *arena) append(b []byte) uint32 {
	owned := make([]byte, len(b))
	copy(owned, b)
	idx := uint32(len(a.chunks))
	a.chunks = append(a.chunks, arenaChunk{data: owned, streamOffset: a.total})
	a.total += uint64(len(owned))
	return idx
}

// appendDetached copies bytes into a newly owned chunk that is excluded
// from the real-input offset space: it does not advance a.total, so
// takeNextLine's scan bound (which tracks only bytes actually fed via
// Feed) never extends into parser-synthesized bytes.
func (a *arena) appendDetached(b []byte) uint32 {
	owned := make([]byte, len(b))
	copy(owned, b)
	idx := uint32(len(a.chunks))
	a.chunks = append(a.chunks, arenaChunk{data: owned, detached: true})
	return idx
}

// len returns the total number of bytes appended so far.
func (a *arena) len() uint64 { return a.total }

// resolve returns the byte range referenced by a handle. Panics on an
// out-of-range handle, which spec.md 4.1 treats as a programming error.
func (a *arena) resolve(h ByteSlice) []byte {
	c := a.chunks[h.ChunkIdx]
	if h.Start > h.End || uint32(len(c.data)) < h.End {
		panic("udon: invalid byte handle")
	}
	return c.data[h.Start:h.End]
}

// clear releases all chunks and resets counters, used by Parser.Reset.
func (a *arena) clear() {
	a.chunks = nil
	a.total = 0
}

// byteAt returns the byte at a global stream offset, and whether it is
// available yet (false past the end of what has been fed).
func (a *arena) byteAt(pos uint64) (byte, bool) {
	idx, ok := a.chunkForOffset(pos)
	if !ok {
		return 0, false
	}
	c := a.chunks[idx]
	return c.data[pos-c.streamOffset], true
}

// chunkForOffset returns the chunk index containing the given global
// offset. Chunks are few in practice (one per feed() call), so a linear
// scan from the end is fine; most lookups are near the tail.
func (a *arena) chunkForOffset(pos uint64) (uint32, bool) {
	for i := len(a.chunks) - 1; i >= 0; i-- {
		c := a.chunks[i]
		if c.detached {
			continue
		}
		end := c.streamOffset + uint64(len(c.data))
		if pos >= c.streamOffset && pos < end {
			return uint32(i), true
		}
	}
	return 0, false
}

// handleFor builds a ByteSlice handle for the half-open global range
// [start, end). When the range stays within one chunk this is a
// zero-copy reference; when it crosses a chunk boundary (only possible
// when a token spans two already-fed chunks) the bytes are copied once
// into a new synthetic chunk so that every handle remains chunk-local,
// per the cross-chunk-materialization decision recorded in DESIGN.md.
func (a *arena) handleFor(start, end uint64) ByteSlice {
	if start == end {
		idx, ok := a.chunkForOffset(start)
		if !ok && len(a.chunks) > 0 {
			idx = uint32(len(a.chunks) - 1)
		}
		return ByteSlice{ChunkIdx: idx, Start: 0, End: 0}
	}
	startIdx, ok := a.chunkForOffset(start)
	if !ok {
		panic("udon: handleFor start out of range")
	}
	startChunk := a.chunks[startIdx]
	endLocal := end - startChunk.streamOffset
	if endLocal <= uint64(len(startChunk.data)) {
		return ByteSlice{
			ChunkIdx: startIdx,
			Start:    uint32(start - startChunk.streamOffset),
			End:      uint32(endLocal),
		}
	}

	stitched := make([]byte, 0, end-start)
	pos := start
	for pos < end {
		idx, ok := a.chunkForOffset(pos)
		if !ok {
			break
		}
		c := a.chunks[idx]
		chunkEnd := c.streamOffset + uint64(len(c.data))
		upto := end
		if chunkEnd < upto {
			upto = chunkEnd
		}
		stitched = append(stitched, c.data[pos-c.streamOffset:upto-c.streamOffset]...)
		pos = upto
	}
	idx := a.appendDetached(stitched)
	return ByteSlice{ChunkIdx: idx, Start: 0, End: uint32(len(stitched))}
}

// materializeSynthetic stores bytes that were produced by the parser
// itself (such as a dedented prose line with its leading spaces
// stripped) rather than borrowed verbatim from input, and returns a
// handle to them. The chunk is detached so it never extends the
// real-input offset space that takeNextLine scans.
func (a *arena) materializeSynthetic(b []byte) ByteSlice {
	idx := a.appendDetached(b)
	return ByteSlice{ChunkIdx: idx, Start: 0, End: uint32(len(b))}
}
