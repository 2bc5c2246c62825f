// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Indentation / hierarchy engine (C8): the open-element stack and the
// single "pop while new_col <= top.base_column" rule, plus automatic
// prose-base dedentation. Grounded on Parser.indent/indents in
// internal/libyaml/parser.go, which tracks a monotonic indent stack and
// unrolls it on dedent; this engine generalizes that to the mixed
// element/array/directive/freeform stack spec.md 3.3/4.8 requires.

package udon

// stackKind distinguishes which End event type closes a stack entry.
type stackKind int8

const (
	stackDocument stackKind = iota
	stackElement
	stackEmbedded
	stackDirective
	stackRawDirective
	stackArray
	stackFreeform
)

func (k stackKind) endEventType() EventType {
	switch k {
	case stackElement:
		return ElementEnd
	case stackEmbedded:
		return EmbeddedEnd
	case stackDirective, stackRawDirective:
		return DirectiveEnd
	case stackArray:
		return ArrayEnd
	case stackFreeform:
		return FreeformEnd
	default:
		return NoEvent
	}
}

// stackEntry is one open-element entry, spec.md 3.3.
type stackEntry struct {
	kind   stackKind
	name   []byte
	hasName bool

	baseColumn       int
	parentBaseColumn int

	contentBaseColumn int
	hasContentBase    bool
}

// noteContentLine applies the content_base_column rule of spec.md 4.8
// for one newly seen content line at the given column. It returns true
// when the line triggers Warning(InconsistentIndent).
func (e *stackEntry) noteContentLine(col int) (warn bool) {
	if !e.hasContentBase {
		e.contentBaseColumn = col
		e.hasContentBase = true
		return false
	}
	if col < e.contentBaseColumn && col > e.baseColumn {
		e.contentBaseColumn = col
		return true
	}
	return false
}

// contentTextFor strips up to contentBase leading spaces from a
// content line's bytes, preserving any extra indentation as part of
// the text, per the prose dedent law of spec.md 4.8/8.7. lineCol is the
// column already counted by countIndent (tabs, if any, are not
// reflected in byte offsets; this is a documented simplification).
func contentTextFor(line []byte, lineCol int, contentBase int) []byte {
	if lineCol <= contentBase {
		if lineCol >= len(line) {
			return nil
		}
		return line[lineCol:]
	}
	if contentBase > len(line) {
		contentBase = len(line)
	}
	if contentBase < 0 {
		contentBase = 0
	}
	return line[contentBase:]
}

// pushStack opens a new entry on top of the stack. When cfg.maxDepth is
// set and this push would exceed it, an Error(Unclosed) diagnostic is
// emitted alongside the push (the entry is still pushed, so the
// balance invariant of spec.md 3.5 holds regardless of WithMaxDepth);
// this mirrors the teacher's anchor/alias depth guard in
// constructor.go, which flags runaway recursion without abandoning the
// structure already parsed.
func (p *Parser) pushStack(kind stackKind, name []byte, hasName bool, baseColumn int, emit func(Event)) *stackEntry {
	parent := p.stack[len(p.stack)-1].baseColumn
	e := stackEntry{
		kind:             kind,
		name:             name,
		hasName:          hasName,
		baseColumn:       baseColumn,
		parentBaseColumn: parent,
	}
	p.stack = append(p.stack, e)
	if p.cfg.maxDepth > 0 && len(p.stack)-1 > p.cfg.maxDepth {
		at := p.nextLineStart
		emit(Event{Type: ErrorEvent, Code: Unclosed, Span: Span{Start: at, End: at}})
	}
	return &p.stack[len(p.stack)-1]
}

// top returns the innermost open entry; the document root is always
// present so this never operates on an empty stack.
func (p *Parser) top() *stackEntry {
	return &p.stack[len(p.stack)-1]
}

// popWhile implements the one rule of spec.md 4.8, emitting an end
// event (with the given span) for every popped entry.
func (p *Parser) popWhile(newCol int, at uint64, emit func(Event)) {
	for len(p.stack) > 1 && newCol <= p.top().baseColumn {
		e := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		emit(Event{Type: e.kind.endEventType(), Span: Span{Start: at, End: at}})
	}
}

// popAll closes every open entry (document end or true EOF), innermost
// first.
func (p *Parser) popAll(at uint64, emit func(Event)) {
	for len(p.stack) > 1 {
		e := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		emit(Event{Type: e.kind.endEventType(), Span: Span{Start: at, End: at}})
	}
}
