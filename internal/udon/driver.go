// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Streaming driver (C10): Parser lifecycle (feed/finish/read/peek/
// reset), line extraction from the arena, and backpressure-aware event
// emission into the ring. Grounded on NewParser/SetInputString/
// SetInputReader/Delete in internal/libyaml/api.go, whose allocate-once,
// reset-in-place shape this mirrors.
//
// Suspension model: spec.md 5 requires suspension only between events,
// never mid-event, and resumption exactly where it left off. This
// implementation buffers one top-level logical line's worth of events
// in memory before committing any of them to the ring; if the ring
// fills partway through committing, the remainder is held in
// p.pending and drained on the next feed/finish/read call. A
// multi-line construct (only array literals can span lines) that runs
// out of currently buffered lines rewinds the stack and cursor to the
// start of the top-level line and waits for more input, so a
// currently-incomplete array never partially commits.
package udon

// Parser is the streaming UDON parser (spec.md 3.4, 4.10).
type Parser struct {
	arena *arena
	ring  *eventRing
	cfg   Config

	stack      []stackEntry
	arrayDepth int

	nextLineStart uint64
	eofSeen       bool

	pending []Event
}

// NewParser constructs a Parser with an empty arena and a ring sized
// to the requested (rounded-up-to-power-of-two) capacity.
func NewParser(opts ...Option) *Parser {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	p := &Parser{
		arena: newArena(),
		ring:  newEventRing(cfg.ringCapacity),
		cfg:   cfg,
	}
	p.stack = []stackEntry{{kind: stackDocument, baseColumn: -1}}
	return p
}

// Feed appends bytes to the arena and parses as many complete logical
// lines as possible without blocking. Incomplete trailing bytes remain
// pending until more data arrives or Finish is called.
func (p *Parser) Feed(b []byte) {
	if len(b) > 0 {
		p.arena.append(b)
	}
	p.run()
}

// Finish marks the current buffer as end of input and drives the
// dispatcher until either the ring fills or EOF is reached, emitting
// any outstanding end events.
func (p *Parser) Finish() {
	p.eofSeen = true
	p.run()
}

// Read dequeues the next event, or ok=false if none is available yet.
func (p *Parser) Read() (Event, bool) {
	p.run()
	return p.ring.pop()
}

// Peek inspects the next event without removing it.
func (p *Parser) Peek() (Event, bool) {
	p.run()
	return p.ring.peek()
}

// Reset clears the arena, ring, and parse state while preserving
// allocated capacities.
func (p *Parser) Reset() {
	p.arena.clear()
	p.ring.clear()
	p.stack = p.stack[:0]
	p.stack = append(p.stack, stackEntry{kind: stackDocument, baseColumn: -1})
	p.arrayDepth = 0
	p.nextLineStart = 0
	p.eofSeen = false
	p.pending = nil
}

// run drains any backlog into the ring, then dispatches complete
// top-level lines until the input is exhausted, the ring fills, or a
// construct needs more input than is currently buffered.
func (p *Parser) run() {
	if !p.drainPending() {
		return
	}

	for {
		checkpointStack := append([]stackEntry(nil), p.stack...)
		checkpointLineStart := p.nextLineStart
		checkpointArrayDepth := p.arrayDepth

		line, base, ok := p.takeNextLine()
		if !ok {
			if p.eofSeen {
				var evs []Event
				p.popAll(p.nextLineStart, func(e Event) { evs = append(evs, e) })
				p.commitAndDrain(evs)
			}
			return
		}

		cur := &lineCursor{p: p, s: newLineScanner(line, base)}
		var evs []Event
		emit := func(e Event) { evs = append(evs, e) }
		needMore := p.dispatchTopLevelLine(cur, emit)

		if needMore {
			p.stack = checkpointStack
			p.nextLineStart = checkpointLineStart
			p.arrayDepth = checkpointArrayDepth
			return
		}

		if !p.commitAndDrain(evs) {
			return
		}
	}
}

// drainPending pushes any previously backlogged events into the ring.
// It reports false if the ring is still full afterward.
func (p *Parser) drainPending() bool {
	for len(p.pending) > 0 {
		if !p.ring.tryPush(p.pending[0]) {
			return false
		}
		p.pending = p.pending[1:]
	}
	return true
}

// commitAndDrain pushes evs into the ring in order, stashing whatever
// does not fit into p.pending. It reports false if anything was
// stashed (the ring is full).
func (p *Parser) commitAndDrain(evs []Event) bool {
	for i, e := range evs {
		if !p.ring.tryPush(e) {
			p.pending = append(p.pending, evs[i:]...)
			return false
		}
	}
	return true
}

// takeNextLine returns the next complete logical line starting at
// p.nextLineStart: the bytes up to (but not including) the next '\n',
// with a trailing '\r' dropped. It returns ok=false when no complete
// line is available yet and Finish has not been called; once Finish
// has been called, any remaining bytes with no trailing newline are
// returned once as a final line.
func (p *Parser) takeNextLine() (line []byte, base uint64, ok bool) {
	total := p.arena.len()
	if p.nextLineStart >= total {
		return nil, 0, false
	}
	for pos := p.nextLineStart; pos < total; pos++ {
		b, _ := p.arena.byteAt(pos)
		if b != '\n' {
			continue
		}
		lineEnd := pos
		if lineEnd > p.nextLineStart {
			if prev, _ := p.arena.byteAt(lineEnd - 1); prev == '\r' {
				lineEnd--
			}
		}
		handle := p.arena.handleFor(p.nextLineStart, lineEnd)
		line = p.arena.resolve(handle)
		base = p.nextLineStart
		p.nextLineStart = pos + 1
		return line, base, true
	}
	if p.eofSeen {
		handle := p.arena.handleFor(p.nextLineStart, total)
		line = p.arena.resolve(handle)
		base = p.nextLineStart
		p.nextLineStart = total
		return line, base, true
	}
	return nil, 0, false
}

// lineCursor is the multi-line-aware scanning context used by the
// array literal parser (the only construct that may span lines).
type lineCursor struct {
	p *Parser
	s *lineScanner
}

// ensure guarantees a byte is available at the cursor, pulling in
// subsequent buffered lines (and skipping their leading whitespace, a
// no-op for structure since array items are whitespace-separated) as
// needed. needMore is true when the stream has no more complete lines
// buffered and Finish has not yet been called.
func (c *lineCursor) ensure() (ok bool, needMore bool) {
	for c.s.eof() {
		line, base, fetched := c.p.takeNextLine()
		if !fetched {
			if c.p.eofSeen {
				return false, false
			}
			return false, true
		}
		c.s = newLineScanner(line, base)
		c.s.skipSpaces()
	}
	return true, false
}

func (c *lineCursor) lastOffset() uint64 { return c.s.offset() }

// Resolve returns the bytes referenced by a handle produced by p. It
// is the exported door into the arena for collaborators (the root
// package, the tree composer already uses it internally) that hold
// raw events rather than a composed tree.
func Resolve(p *Parser, h ByteSlice) []byte {
	return p.arena.resolve(h)
}
