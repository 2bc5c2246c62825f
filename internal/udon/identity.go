// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Identity parser (C5): the `name`, `[id]`, `.class`, `?!*+` suffix
// grammar that follows a `|`, whether at a block element head or
// inside a brace-delimited embedded element. Grounded on the
// single-byte-lookahead dispatch idiom of the teacher's
// stateMachine/parser.go and the anchor/tag scanning shape in
// scan_anchor-equivalent code paths.

package udon

import (
	"unicode"
	"unicode/utf8"
)

// IdentityPiece is one `[id]`/`.class`/suffix token attached to an
// element head, in source order. Key is "$id", "$class", or the
// one-byte suffix ("?", "!", "*", "+"). Flag pieces (suffixes) carry no
// value; the driver materializes Bool(true) for them.
type IdentityPiece struct {
	Key    string
	Value  []byte
	Quoted bool
	Flag   bool
}

// HeadIdentity is the parsed result of one element head's identity
// grammar: an optional name followed by zero or more pieces.
type HeadIdentity struct {
	Name       []byte
	NameQuoted bool
	Pieces     []IdentityPiece
}

// IsElementHeadAt reports whether the byte just after a `|` at
// line[posAfterPipe] opens an element, using exactly the one-byte (or
// space-then-content) lookahead mandated by spec.md 4.5. Indentation
// plays no part in this decision.
func IsElementHeadAt(line []byte, posAfterPipe int) bool {
	if posAfterPipe >= len(line) {
		return false
	}
	b := line[posAfterPipe]
	switch b {
	case '[', '.', '{', '\'':
		return true
	case ' ':
		rest := line[posAfterPipe+1:]
		i := 0
		for i < len(rest) && rest[i] == ' ' {
			i++
		}
		return i < len(rest)
	}
	r, _ := utf8.DecodeRune(line[posAfterPipe:])
	return r != utf8.RuneError && unicode.IsLetter(r)
}

func isSuffixByte(b byte) bool {
	return b == '?' || b == '!' || b == '*' || b == '+'
}

// ParseHeadIdentity consumes the identity grammar starting at the
// scanner's current position (just after the `|`) and stops at the
// first byte that is not part of identity (space, ':', EOF, or an
// unexpected byte). It never consumes the terminating byte.
func ParseHeadIdentity(s *lineScanner) (HeadIdentity, ErrorCode) {
	var hi HeadIdentity

	if b, ok := s.peek(); ok {
		if r, _ := utf8.DecodeRune(s.buf[s.pos:]); r != utf8.RuneError && unicode.IsLetter(r) {
			name, ok2 := s.readElementName()
			if ok2 {
				hi.Name = name
			}
		} else if b == '\'' {
			s.advance()
			content, ok2 := s.readQuotedName()
			if !ok2 {
				return hi, UnclosedQuote
			}
			hi.Name = content
			hi.NameQuoted = true
		}
	}

	for {
		b, ok := s.peek()
		if !ok {
			return hi, NoCode
		}
		switch b {
		case '[':
			s.advance()
			val, quoted, code := parseBracketID(s)
			if code != NoCode {
				return hi, code
			}
			hi.Pieces = append(hi.Pieces, IdentityPiece{Key: "$id", Value: val, Quoted: quoted})
		case '.':
			s.advance()
			val, quoted, code := parseClassName(s)
			if code != NoCode {
				return hi, code
			}
			hi.Pieces = append(hi.Pieces, IdentityPiece{Key: "$class", Value: val, Quoted: quoted})
		case '?', '!', '*', '+':
			s.advance()
			hi.Pieces = append(hi.Pieces, IdentityPiece{Key: string(b), Flag: true})
		default:
			return hi, NoCode
		}
	}
}

// parseBracketID parses the interior of `[...]`, either a bare label
// run or an apostrophe-quoted name.
func parseBracketID(s *lineScanner) (val []byte, quoted bool, code ErrorCode) {
	if b, ok := s.peek(); ok && b == '\'' {
		s.advance()
		content, ok2 := s.readQuotedName()
		if !ok2 {
			return nil, false, UnclosedQuote
		}
		if nb, ok3 := s.peek(); !ok3 || nb != ']' {
			return nil, false, Unclosed
		}
		s.advance()
		return content, true, NoCode
	}
	start := s.pos
	for {
		b, ok := s.peek()
		if !ok {
			return nil, false, Unclosed
		}
		if b == ']' {
			break
		}
		s.advance()
	}
	val = s.buf[start:s.pos]
	s.advance()
	return val, false, NoCode
}

// parseClassName parses the interior of `.class`, either a bare label
// run or an apostrophe-quoted name.
func parseClassName(s *lineScanner) (val []byte, quoted bool, code ErrorCode) {
	if b, ok := s.peek(); ok && b == '\'' {
		s.advance()
		content, ok2 := s.readQuotedName()
		if !ok2 {
			return nil, false, UnclosedQuote
		}
		return content, true, NoCode
	}
	val = s.readLabel()
	if len(val) == 0 {
		return nil, false, ExpectedClassName
	}
	return val, false, NoCode
}
