// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Attribute & array parser (C6): inline and indented `:key value`
// attributes and `[...]` array literals, including arrays that span
// multiple already-fed lines. Grounded on the block/flow mapping-entry
// and flow-sequence-entry handling in internal/libyaml/parser.go
// (parseFlowSequenceEntry/parseBlockMappingKey), adapted to the
// column-free, line-oriented grammar of spec.md 4.6.

package udon

// readUntilSpace reads a bare lexeme terminated by the next SPACE byte
// or end of line.
func (s *lineScanner) readUntilSpace() []byte {
	start := s.pos
	for !s.eof() && s.buf[s.pos] != ' ' {
		s.pos++
	}
	return s.buf[start:s.pos]
}

// parseAttrKey reads an attribute key: a quoted name or a bare label
// run.
func parseAttrKey(s *lineScanner) (key []byte, quoted bool, code ErrorCode) {
	if b, ok := s.peek(); ok && b == '\'' {
		s.advance()
		content, ok2 := s.readQuotedName()
		if !ok2 {
			return nil, false, UnclosedQuote
		}
		return content, true, NoCode
	}
	if b, ok := s.peek(); !ok || !isLabelChar(b) {
		return nil, false, ExpectedAttrKey
	}
	return s.readLabel(), false, NoCode
}

func scalarKindEventType(k ScalarKind) EventType {
	switch k {
	case ScalarDate:
		return DateValue
	case ScalarTime:
		return TimeValue
	case ScalarDateTime:
		return DateTimeValue
	case ScalarDuration:
		return DurationValue
	case ScalarRelativeTime:
		return RelativeTimeValue
	default:
		return StringValue
	}
}

// emitClassifiedValue emits the event for a bare (unquoted) value token
// already classified by ClassifyScalar.
func emitClassifiedValue(p *Parser, s *lineScanner, sv ScalarValue, start int, emit func(Event)) {
	span := Span{Start: s.base + uint64(start), End: s.offset()}
	switch sv.Kind {
	case ScalarNil:
		emit(Event{Type: NilValue, Span: span})
	case ScalarBool:
		emit(Event{Type: BoolValue, Span: span, Bool: sv.Bool})
	case ScalarInteger:
		emit(Event{Type: IntegerValue, Span: span, Int: sv.Int})
	case ScalarFloat:
		emit(Event{Type: FloatValue, Span: span, Float: sv.Float})
	case ScalarRational:
		emit(Event{Type: RationalValue, Span: span, RatNum: sv.RatNum, RatDen: sv.RatDen})
	case ScalarComplex:
		emit(Event{Type: ComplexValue, Span: span, Re: sv.Re, Im: sv.Im})
	default:
		handle := s.handleFor(p.arena, start, s.pos)
		emit(Event{Type: scalarKindEventType(sv.Kind), Span: span, Handle: handle})
	}
}

// parseValue parses one value position: a quoted string, an array
// literal, or a bare scalar token. When wholeLine is true (indented
// attribute form) a bare value runs to the end of the line, allowing
// embedded spaces, instead of stopping at the next SPACE. needMore
// signals that an array literal ran out of buffered lines before
// closing and more input is required (propagated from
// parseArrayLiteral).
func parseValue(p *Parser, cur *lineCursor, emit func(Event), wholeLine bool) (code ErrorCode, needMore bool) {
	s := cur.s
	b, ok := s.peek()
	if !ok {
		return NoCode, false
	}
	switch b {
	case '"', '\'':
		quote := b
		s.advance()
		start := s.pos
		content, closed := s.readQuotedString(quote)
		if !closed {
			return UnclosedQuote, false
		}
		span := Span{Start: s.base + uint64(start), End: s.offset()}
		handle := s.handleFor(p.arena, start, start+len(content))
		emit(Event{Type: QuotedStringValue, Span: span, Handle: handle})
		return NoCode, false
	case '[':
		s.advance()
		return parseArrayLiteral(p, cur, emit)
	case '@':
		if nb, ok := s.peekAt(1); ok && nb == '[' {
			start := s.pos
			s.advance() // '@'
			id, code := readIdReference(s)
			if code != NoCode {
				return code, false
			}
			emit(Event{Type: IdReferenceEvent, Name: id, Span: Span{Start: s.base + uint64(start), End: s.offset()}})
			return NoCode, false
		}
		fallthrough
	default:
		start := s.pos
		var tok []byte
		if wholeLine {
			tok = s.buf[s.pos:]
			s.pos = len(s.buf)
		} else {
			tok = s.readUntilSpace()
			if p.arrayDepth > 0 {
				// Inside an array a bare item also ends at ']'.
				for i, c := range tok {
					if c == ']' {
						s.pos -= len(tok) - i
						tok = tok[:i]
						break
					}
				}
			}
		}
		if len(tok) == 0 {
			return NoCode, false
		}
		sv := ClassifyScalar(tok)
		emitClassifiedValue(p, s, sv, start, emit)
		return NoCode, false
	}
}

// parseArrayLiteral parses the interior of `[...]` after the opening
// bracket has been consumed. Items are separated by whitespace,
// including newlines when the array spans lines; it nests to
// arbitrary depth via p.arrayDepth, a plain counter (arrays carry no
// column significance and never go on the open-element stack).
func parseArrayLiteral(p *Parser, cur *lineCursor, emit func(Event)) (code ErrorCode, needMore bool) {
	openSpan := Span{Start: cur.s.base + uint64(cur.s.pos) - 1, End: cur.s.offset()}
	emit(Event{Type: ArrayStart, Span: openSpan})
	p.arrayDepth++

	for {
		for {
			ok, more := cur.ensure()
			if !ok {
				if more {
					return NoCode, true
				}
				emit(Event{Type: ErrorEvent, Code: UnclosedArray, Span: Span{Start: cur.lastOffset(), End: cur.lastOffset()}})
				emit(Event{Type: ArrayEnd, Span: Span{Start: cur.lastOffset(), End: cur.lastOffset()}})
				p.arrayDepth--
				return NoCode, false
			}
			if cur.s.skipSpaces() > 0 {
				continue
			}
			break
		}

		b, _ := cur.s.peek()
		if b == ']' {
			cur.s.advance()
			emit(Event{Type: ArrayEnd, Span: Span{Start: cur.s.offset() - 1, End: cur.s.offset()}})
			p.arrayDepth--
			return NoCode, false
		}

		code, needMore := parseValue(p, cur, emit, false)
		if needMore {
			return NoCode, true
		}
		if code != NoCode {
			emit(Event{Type: ErrorEvent, Code: code, Span: Span{Start: cur.s.offset(), End: cur.s.offset()}})
			emit(Event{Type: ArrayEnd, Span: Span{Start: cur.s.offset(), End: cur.s.offset()}})
			p.arrayDepth--
			return NoCode, false
		}
	}
}

// parseAttribute parses one attribute occurrence: `:key value`,
// `:key` (flag), or `:[id]` (attribute-merge reference). The leading
// ':' has already been consumed by the caller.
func parseAttribute(p *Parser, cur *lineCursor, emit func(Event), wholeLineValue bool) (code ErrorCode, needMore bool) {
	s := cur.s
	if b, ok := s.peek(); ok && b == '[' {
		s.advance()
		start := s.pos
		for {
			bb, ok := s.peek()
			if !ok {
				return Unclosed, false
			}
			if bb == ']' {
				break
			}
			s.advance()
		}
		id := s.buf[start:s.pos]
		s.advance()
		emit(Event{Type: AttributeMergeEvent, Name: id, Span: Span{Start: s.base + uint64(start) - 2, End: s.offset()}})
		return NoCode, false
	}

	keyStart := s.pos
	key, _, keyCode := parseAttrKey(s)
	if keyCode != NoCode {
		emit(Event{Type: ErrorEvent, Code: keyCode, Span: Span{Start: s.offset(), End: s.offset()}})
		return keyCode, false
	}
	emit(Event{Type: AttributeEvent, Name: key, Span: Span{Start: s.base + uint64(keyStart) - 1, End: s.offset()}})

	s.skipSpaces()
	if s.eof() {
		emit(Event{Type: BoolValue, Bool: true, Span: Span{Start: s.offset(), End: s.offset()}})
		return NoCode, false
	}
	return parseValue(p, cur, emit, wholeLineValue)
}

// parseInlineAttributes parses the run of `:key value` occurrences on
// an element-head line, stopping at the first non-attribute content
// (inline text, or end of line).
func parseInlineAttributes(p *Parser, cur *lineCursor, emit func(Event)) (code ErrorCode) {
	for {
		s := cur.s
		s.skipSpaces()
		b, ok := s.peek()
		if !ok || b != ':' {
			return NoCode
		}
		s.advance()
		attrCode, needMore := parseAttribute(p, cur, emit, false)
		if needMore {
			// An array value consumed the rest of the buffered input;
			// nothing further on this logical line remains to parse. The
			// array is still counted in p.arrayDepth, which is how the
			// caller sees that the line needs more input.
			return NoCode
		}
		if attrCode != NoCode {
			return attrCode
		}
	}
}

// parseIndentedAttrLine parses a line whose first non-space byte is
// ':', belonging to the innermost open element.
func parseIndentedAttrLine(p *Parser, cur *lineCursor, emit func(Event)) {
	if len(p.stack) <= 1 {
		emit(Event{Type: ErrorEvent, Code: ExpectedAttrKey, Span: Span{Start: cur.s.offset(), End: cur.s.offset()}})
		return
	}
	cur.s.advance() // consume ':'
	code, needMore := parseAttribute(p, cur, emit, true)
	if needMore || code != NoCode {
		return
	}
}
