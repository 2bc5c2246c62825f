// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Line dispatcher (C9): recognizes blank, comment, freeform-fence,
// directive, element-head, attribute, and prose lines, and drives the
// syntactic producers (C5-C8) over each. Grounded on the per-line
// token-kind switch in internal/libyaml/parser.go's state machine,
// adapted from token-oriented to line-oriented dispatch.

package udon

func isFenceBytes(b []byte) bool {
	return len(b) >= 3 && b[0] == '`' && b[1] == '`' && b[2] == '`'
}

// dispatchTopLevelLine processes one already-indentation-counted
// top-level logical line. needMore is true when a multi-line construct
// (an array literal) ran out of buffered input; the caller must rewind
// and retry once more data has been fed.
func (p *Parser) dispatchTopLevelLine(cur *lineCursor, emit func(Event)) (needMore bool) {
	s := cur.s
	col, sawTab := s.countIndent()
	if sawTab {
		emit(Event{Type: ErrorEvent, Code: NoTabs, Span: Span{Start: s.base, End: s.offset()}})
	}

	top := p.top()

	if top.kind == stackFreeform {
		if col == top.baseColumn && isFenceBytes(s.buf[s.pos:]) {
			s.pos += 3
			emit(Event{Type: FreeformEnd, Span: Span{Start: s.base + uint64(col), End: s.offset()}})
			p.stack = p.stack[:len(p.stack)-1]
			return false
		}
		emitRawContentLine(p, s, col, top, emit)
		return false
	}

	p.popWhile(col, s.base+uint64(col), emit)
	top = p.top()

	if top.kind == stackRawDirective && col > top.baseColumn {
		emitRawContentLine(p, s, col, top, emit)
		return false
	}

	if s.eof() {
		handleBlankLine(p, top, emit)
		return false
	}

	b, _ := s.peek()
	switch {
	case b == ';':
		dispatchComment(p, s, emit)
	case isFenceBytes(s.buf[s.pos:]):
		s.pos += 3
		emit(Event{Type: FreeformStart, Span: Span{Start: s.base + uint64(col), End: s.offset()}})
		p.pushStack(stackFreeform, nil, false, col, emit)
	case b == '!':
		dispatchBangLine(p, s, emit, col)
	case b == '|' && IsElementHeadAt(s.buf, s.pos+1):
		return p.dispatchHeadLine(cur, emit)
	case b == ':':
		parseIndentedAttrLine(p, cur, emit)
		// An array value still open here ran out of buffered input.
		return p.arrayDepth > 0
	default:
		dispatchProseLine(p, s, col, top, emit)
	}
	return false
}

func handleBlankLine(p *Parser, top *stackEntry, emit func(Event)) {
	_ = p
	_ = top
	_ = emit
	// spec.md 4.9 rule 2 permits either emitting an empty separating
	// Text or skipping entirely; this implementation skips, which is
	// conformant and keeps single-blank-line runs inert.
}

func dispatchComment(p *Parser, s *lineScanner, emit func(Event)) {
	start := s.pos
	s.advance() // ';'
	if b, ok := s.peek(); ok && b == '{' {
		s.advance()
		content, closed := s.readBraceBalancedContent()
		handle := s.handleFor(p.arena, start+2, start+2+len(content))
		emit(Event{Type: CommentEvent, Handle: handle, Span: spanFrom(s, start)})
		if !closed {
			emit(Event{Type: ErrorEvent, Code: UnclosedComment, Span: spanFrom(s, start)})
		}
		return
	}
	contentStart := s.pos
	s.pos = len(s.buf)
	handle := s.handleFor(p.arena, contentStart, len(s.buf))
	emit(Event{Type: CommentEvent, Handle: handle, Span: spanFrom(s, start)})
}

// dispatchHeadLine parses one or more inline `|head`s on a single
// line, per spec.md 4.5/4.8 (each head applies the pop-while rule at
// its own source column before being pushed).
func (p *Parser) dispatchHeadLine(cur *lineCursor, emit func(Event)) (needMore bool) {
	s := cur.s
	for {
		headCol := s.pos
		s.advance() // '|'
		p.popWhile(headCol, s.base+uint64(headCol), emit)

		hi, code := ParseHeadIdentity(s)
		startSpan := spanFrom(s, headCol)
		emit(Event{Type: ElementStart, Name: hi.Name, Span: startSpan})
		if code != NoCode {
			emit(Event{Type: ErrorEvent, Code: code, Span: spanFrom(s, headCol)})
		}
		p.pushStack(stackElement, hi.Name, len(hi.Name) > 0 || hi.NameQuoted, headCol, emit)
		for _, piece := range hi.Pieces {
			emitIdentityPiece(p, s, piece, emit)
		}

		parseInlineAttributes(p, cur, emit)
		if p.arrayDepth > 0 {
			// An array value still open here ran out of buffered input.
			return true
		}

		s.skipSpaces()
		if s.eof() {
			return false
		}
		if b, ok := s.peek(); ok && b == '|' && IsElementHeadAt(s.buf, s.pos+1) {
			continue
		}
		scanProse(p, s, emit)
		return false
	}
}

func emitIdentityPiece(p *Parser, s *lineScanner, piece IdentityPiece, emit func(Event)) {
	at := s.offset()
	emit(Event{Type: AttributeEvent, Name: []byte(piece.Key), Span: Span{Start: at, End: at}})
	if piece.Flag {
		emit(Event{Type: BoolValue, Bool: true, Span: Span{Start: at, End: at}})
		return
	}

	// spec.md 9: `[id]` always materializes as String, preserving the
	// source bytes, unless the caller opted into numeric ids via
	// WithNumericIDs and the id text is all digits.
	if piece.Key == "$id" && !piece.Quoted && p.cfg.numericIDs && allASCIIDigits(piece.Value) {
		if sv := ClassifyScalar(piece.Value); sv.Kind == ScalarInteger {
			emit(Event{Type: IntegerValue, Int: sv.Int, Span: Span{Start: at, End: at}})
			return
		}
	}

	evType := StringValue
	if piece.Quoted {
		evType = QuotedStringValue
	}
	handle := p.arena.materializeSynthetic(piece.Value)
	emit(Event{Type: evType, Handle: handle, Span: Span{Start: at, End: at}})
}

func allASCIIDigits(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// dispatchProseLine handles an indented content line that is neither
// comment, directive, nor element head: free-running prose, subject to
// automatic base-column dedentation.
func dispatchProseLine(p *Parser, s *lineScanner, col int, top *stackEntry, emit func(Event)) {
	if top.kind == stackDocument {
		// Prose directly at the document root with no open element: a
		// minimal conformant choice is to still surface it as text so
		// no source byte is silently dropped.
		scanProse(p, s, emit)
		return
	}
	if warn := top.noteContentLine(col); warn {
		emit(Event{Type: WarningEvent, Code: InconsistentIndent, Span: Span{Start: s.base, End: s.base}})
	}
	text := contentTextFor(s.buf, col, top.contentBaseColumn)
	skip := len(s.buf) - len(text)
	if skip > s.pos {
		s.pos = skip
	}
	// Surplus indentation beyond the content base stays in the text;
	// only spaces are given back, so a skipped TAB is never re-read.
	for s.pos > skip && s.buf[s.pos-1] == ' ' {
		s.pos--
	}
	scanProse(p, s, emit)
}

// scanProse scans from the cursor to end of line for the inline
// structural constructs of spec.md 4.9 rule 8, emitting Text for
// everything in between.
func scanProse(p *Parser, s *lineScanner, emit func(Event)) {
	textStart := s.pos
	flush := func(end int) {
		if end > textStart {
			handle := s.handleFor(p.arena, textStart, end)
			emit(Event{Type: TextEvent, Handle: handle, Span: Span{Start: s.base + uint64(textStart), End: s.base + uint64(end)}})
		}
	}

	for !s.eof() {
		b, _ := s.peek()

		if b == '\'' {
			if nb, ok := s.peekAt(1); ok && isEscapableLiteral(nb) {
				flush(s.pos)
				s.pos += 2
				handle := s.handleFor(p.arena, s.pos-1, s.pos)
				emit(Event{Type: TextEvent, Handle: handle, Span: spanFrom(s, s.pos-2)})
				textStart = s.pos
				continue
			}
		}

		if b == '|' && peekIs(s, 1, '{') {
			flush(s.pos)
			start := s.pos
			s.pos += 2
			content, closed := s.readBraceBalancedContent()
			if !closed {
				emit(Event{Type: ErrorEvent, Code: Unclosed, Span: spanFrom(s, start)})
				textStart = s.pos
				continue
			}
			parseEmbeddedElement(p, s, content, start, emit)
			textStart = s.pos
			continue
		}

		if b == '!' && peekIs(s, 1, '{') && peekIs(s, 2, '{') {
			flush(s.pos)
			start := s.pos
			s.pos += 3
			expr, closed := s.readInterpolationContent()
			if !closed {
				emit(Event{Type: ErrorEvent, Code: Unclosed, Span: spanFrom(s, start)})
				textStart = s.pos
				continue
			}
			emit(Event{Type: InterpolationEvent, Raw: expr, Span: spanFrom(s, start)})
			textStart = s.pos
			continue
		}

		if b == '!' {
			dirStart := s.pos
			if ns, name, content, matched, closed := tryMatchInlineDirective(s); matched {
				flush(dirStart)
				start := dirStart
				if !closed {
					emit(Event{Type: ErrorEvent, Code: Unclosed, Span: spanFrom(s, start)})
				} else {
					emitInlineDirective(p, s, ns, name, content, start, emit)
				}
				textStart = s.pos
				continue
			}
		}

		if b == '@' && peekIs(s, 1, '[') {
			flush(s.pos)
			start := s.pos
			s.advance() // '@'
			id, code := readIdReference(s)
			if code != NoCode {
				emit(Event{Type: ErrorEvent, Code: code, Span: spanFrom(s, start)})
			} else {
				emit(Event{Type: IdReferenceEvent, Name: id, Span: spanFrom(s, start)})
			}
			textStart = s.pos
			continue
		}

		if b == ';' && peekIs(s, 1, '{') {
			flush(s.pos)
			start := s.pos
			s.pos += 2
			contentStart := s.pos
			_, closed := s.readBraceBalancedContent()
			end := s.pos - 1
			if !closed {
				end = s.pos
			}
			handle := s.handleFor(p.arena, contentStart, end)
			emit(Event{Type: CommentEvent, Handle: handle, Span: spanFrom(s, start)})
			if !closed {
				emit(Event{Type: ErrorEvent, Code: UnclosedComment, Span: spanFrom(s, start)})
			}
			textStart = s.pos
			continue
		}

		s.pos++
	}
	flush(s.pos)
}

func isEscapableLiteral(b byte) bool {
	switch b {
	case '|', ':', ';', '\'', '!':
		return true
	}
	return false
}

// parseEmbeddedElement parses the brace-balanced interior of a `|{...}`
// embedded element: identity grammar, inline attributes, then trailing
// content scanned as prose, all confined to content's bytes.
func parseEmbeddedElement(p *Parser, outer *lineScanner, content []byte, start int, emit func(Event)) {
	inner := newLineScanner(content, outer.base+uint64(start)+2)
	hi, code := ParseHeadIdentity(inner)
	emit(Event{Type: EmbeddedStart, Name: hi.Name, Span: spanFrom(outer, start)})
	if code != NoCode {
		emit(Event{Type: ErrorEvent, Code: code, Span: spanFrom(outer, start)})
	}
	for _, piece := range hi.Pieces {
		emitIdentityPiece(p, inner, piece, emit)
	}
	inner.skipSpaces()
	if !inner.eof() {
		scanProse(p, inner, emit)
	}
	emit(Event{Type: EmbeddedEnd, Span: Span{Start: outer.offset(), End: outer.offset()}})
}
