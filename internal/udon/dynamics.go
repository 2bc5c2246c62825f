// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Dynamics parser (C7): interpolation, inline and block directives,
// raw blocks, and id references/merges. Grounded on the comment- and
// tag-capture machinery in internal/libyaml/parser.go (verbatim capture
// between delimiters, deferred interpretation of the captured bytes).

package udon

func peekIs(s *lineScanner, n int, c byte) bool {
	b, ok := s.peekAt(n)
	return ok && b == c
}

func spanFrom(s *lineScanner, start int) Span {
	return Span{Start: s.base + uint64(start), End: s.offset()}
}

// tryMatchInlineDirective attempts to parse `!name{...}` or
// `!ns:name{...}` starting at the '!' byte. matched is false (and the
// cursor is restored) when the bytes do not form a directive head
// followed immediately by '{', so the caller can fall back to treating
// '!' as literal prose or as a block-directive head.
func tryMatchInlineDirective(s *lineScanner) (ns, name, content []byte, matched, closed bool) {
	save := s.pos
	s.advance() // '!'
	first := s.readLabel()
	if len(first) == 0 {
		s.pos = save
		return nil, nil, nil, false, false
	}
	if b, ok := s.peek(); ok && b == ':' {
		s.advance()
		second := s.readLabel()
		if len(second) == 0 {
			s.pos = save
			return nil, nil, nil, false, false
		}
		ns, name = first, second
	} else {
		name = first
	}
	if b, ok := s.peek(); !ok || b != '{' {
		s.pos = save
		return nil, nil, nil, false, false
	}
	s.advance()
	contentStart := s.pos
	_, ok := s.readBraceBalancedContent()
	if !ok {
		return ns, name, s.buf[contentStart:], true, false
	}
	return ns, name, s.buf[contentStart : s.pos-1], true, true
}

// readIdReference parses the interior of `@[id]` starting just after
// the '@' (cursor sits on '['). It shares its bracket grammar with the
// identity parser's `[id]` piece (spec.md 4.5) since both forms are the
// same bare-or-quoted bracketed name.
func readIdReference(s *lineScanner) (id []byte, code ErrorCode) {
	s.advance() // '['
	val, _, code := parseBracketID(s)
	return val, code
}

// emitInlineDirective emits InlineDirectiveEvent for an already-parsed
// `!name{...}`/`!ns:name{...}` construct.
func emitInlineDirective(p *Parser, s *lineScanner, ns, name, content []byte, start int, emit func(Event)) {
	handle := p.arena.materializeSynthetic(content)
	emit(Event{
		Type: InlineDirectiveEvent,
		Span: spanFrom(s, start),
		Inline: &InlineDirectivePayload{
			Namespace: ns,
			Name:      name,
			Content:   handle,
		},
	})
}

// dispatchBangLine handles a top-level line whose first non-space byte
// is '!': interpolation, an inline directive used standalone, or a
// block directive head (spec.md 4.7/4.9 rule 5).
func dispatchBangLine(p *Parser, s *lineScanner, emit func(Event), col int) {
	lineStart := s.pos

	if peekIs(s, 1, '{') && peekIs(s, 2, '{') {
		start := s.pos
		s.pos += 3
		expr, closed := s.readInterpolationContent()
		if !closed {
			emit(Event{Type: ErrorEvent, Code: Unclosed, Span: spanFrom(s, start)})
			return
		}
		emit(Event{Type: InterpolationEvent, Raw: expr, Span: spanFrom(s, start)})
		scanProse(p, s, emit)
		return
	}

	if ns, name, content, matched, closed := tryMatchInlineDirective(s); matched {
		if !closed {
			emit(Event{Type: ErrorEvent, Code: Unclosed, Span: spanFrom(s, lineStart)})
			return
		}
		emitInlineDirective(p, s, ns, name, content, lineStart, emit)
		scanProse(p, s, emit)
		return
	}

	s.advance() // '!'
	nsOrName := s.readLabel()
	if len(nsOrName) == 0 {
		emit(Event{Type: ErrorEvent, Code: IncompleteDirective, Span: spanFrom(s, lineStart)})
		return
	}
	var namespace, name []byte
	if b, ok := s.peek(); ok && b == ':' {
		s.advance()
		nm := s.readLabel()
		if len(nm) == 0 {
			emit(Event{Type: ErrorEvent, Code: IncompleteDirective, Span: spanFrom(s, lineStart)})
			return
		}
		namespace, name = nsOrName, nm
	} else {
		name = nsOrName
	}

	s.skipSpaces()
	argStart := s.pos
	hasArgs := argStart < len(s.buf)
	s.pos = len(s.buf)

	kind := stackDirective
	if string(namespace) == "raw" {
		kind = stackRawDirective
	}
	emit(Event{Type: DirectiveStart, Namespace: namespace, Name: name, Span: spanFrom(s, lineStart)})
	if hasArgs {
		handle := s.handleFor(p.arena, argStart, len(s.buf))
		emit(Event{Type: TextEvent, Handle: handle, Span: Span{Start: s.base + uint64(argStart), End: s.offset()}})
	}
	p.pushStack(kind, name, len(name) > 0, col, emit)
}

// emitRawContentLine emits the current line as RawContent for a
// freeform or raw-directive body, applying the same prose-dedent rule
// content lines use (spec.md 4.8 final paragraph).
func emitRawContentLine(p *Parser, s *lineScanner, col int, top *stackEntry, emit func(Event)) {
	if warn := top.noteContentLine(col); warn {
		emit(Event{Type: WarningEvent, Code: InconsistentIndent, Span: Span{Start: s.base, End: s.base}})
	}
	text := contentTextFor(s.buf, col, top.contentBaseColumn)
	start := len(s.buf) - len(text)
	if start < 0 {
		start = 0
	}
	handle := s.handleFor(p.arena, start, len(s.buf))
	emit(Event{Type: RawContentEvent, Handle: handle, Span: Span{Start: s.base + uint64(start), End: s.base + uint64(len(s.buf))}})
}
