// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package eventtest drives the streaming driver over whole-buffer,
// one-byte-chunk, and one-line-chunk input and asserts identical event
// sequences, exercising spec.md 8 property 6 (idempotent re-parse
// under arbitrary chunking). Grounded on the
// TestCase/RunTestCases/TestHandler table-driven pattern in
// internal/libyaml's yamldatatest_test.go/testdata_test.go, scaled down
// from a YAML-fixture-file registry to an inline Go-table-friendly
// helper since this repository has only one implementation to drive.
package eventtest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/udon-lang/udon/internal/udon"
)

// Simplified is a span-erased, handle-resolved projection of an Event.
// Byte handles are chunk-local, so a ByteSlice from a whole-buffer
// parse and the same logical bytes from a one-byte-chunk parse are
// never equal by identity; Simplified resolves every handle to its
// underlying string so the three chunkings can be compared by value
// (spec.md 8 property 6 only promises the same *sequence of events*,
// not identical spans or handles).
type Simplified struct {
	Type      udon.EventType
	Name      string
	Namespace string
	Value     string

	Bool  bool
	Int   int64
	Float float64

	RatNum, RatDen int64
	Re, Im         float64

	Code udon.ErrorCode
}

func simplify(p *udon.Parser, e udon.Event) Simplified {
	s := Simplified{
		Type:      e.Type,
		Name:      string(e.Name),
		Namespace: string(e.Namespace),
		Bool:      e.Bool,
		Int:       e.Int,
		Float:     e.Float,
		RatNum:    e.RatNum,
		RatDen:    e.RatDen,
		Re:        e.Re,
		Im:        e.Im,
		Code:      e.Code,
	}
	switch e.Type {
	case udon.StringValue, udon.QuotedStringValue, udon.DateValue, udon.TimeValue,
		udon.DateTimeValue, udon.DurationValue, udon.RelativeTimeValue,
		udon.TextEvent, udon.CommentEvent, udon.RawContentEvent:
		s.Value = string(udon.Resolve(p, e.Handle))
	case udon.InterpolationEvent:
		s.Value = string(e.Raw)
	case udon.InlineDirectiveEvent:
		if e.Inline != nil {
			s.Namespace = string(e.Inline.Namespace)
			s.Name = string(e.Inline.Name)
			s.Value = string(udon.Resolve(p, e.Inline.Content))
		}
	}
	return s
}

// Drain reads every event currently available from p (Feed/Finish must
// already have been called as needed) into a Simplified slice.
func Drain(p *udon.Parser) []Simplified {
	var out []Simplified
	for {
		e, ok := p.Read()
		if !ok {
			return out
		}
		out = append(out, simplify(p, e))
	}
}

// parseWhole feeds src in one Feed call.
func parseWhole(src []byte, opts ...udon.Option) []Simplified {
	p := udon.NewParser(opts...)
	p.Feed(src)
	p.Finish()
	return Drain(p)
}

// parseByteByByte feeds src one byte at a time.
func parseByteByByte(src []byte, opts ...udon.Option) []Simplified {
	p := udon.NewParser(opts...)
	for i := range src {
		p.Feed(src[i : i+1])
	}
	p.Finish()
	return Drain(p)
}

// parseLineByLine feeds src one '\n'-terminated line at a time (the
// trailing partial line, if any, is fed as a final chunk).
func parseLineByLine(src []byte, opts ...udon.Option) []Simplified {
	p := udon.NewParser(opts...)
	start := 0
	for i, b := range src {
		if b == '\n' {
			p.Feed(src[start : i+1])
			start = i + 1
		}
	}
	if start < len(src) {
		p.Feed(src[start:])
	}
	p.Finish()
	return Drain(p)
}

// RunChunked parses src under whole-buffer, one-byte-chunk, and
// one-line-chunk feeding and fails t if any two disagree. It returns
// the whole-buffer event sequence for the caller's own assertions.
func RunChunked(t *testing.T, src []byte, opts ...udon.Option) []Simplified {
	t.Helper()

	whole := parseWhole(src, opts...)
	byByte := parseByteByByte(src, opts...)
	byLine := parseLineByLine(src, opts...)

	if diff := cmp.Diff(whole, byByte); diff != "" {
		t.Errorf("one-byte-chunk parse differs from whole-buffer parse (-whole +byte):\n%s", diff)
	}
	if diff := cmp.Diff(whole, byLine); diff != "" {
		t.Errorf("one-line-chunk parse differs from whole-buffer parse (-whole +line):\n%s", diff)
	}

	return whole
}
