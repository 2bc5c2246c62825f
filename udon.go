// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package udon re-exports the public surface of internal/udon, exactly
// as the teacher's yaml.go/node.go/options.go re-export
// internal/libyaml: callers outside this module drive the streaming
// parser and the convenience tree layer through this package, never by
// importing internal/udon directly (the Go toolchain forbids it
// anyway).
package udon

import (
	"bufio"
	"io"

	"github.com/udon-lang/udon/internal/udon"
)

// Type aliases for the streaming event contract (spec.md 6.2) and its
// supporting handles.
type (
	Parser                 = udon.Parser
	Event                  = udon.Event
	EventType              = udon.EventType
	ErrorCode              = udon.ErrorCode
	Span                   = udon.Span
	Mark                   = udon.Mark
	ByteSlice              = udon.ByteSlice
	InlineDirectivePayload = udon.InlineDirectivePayload
	MarkedError            = udon.MarkedError
)

// Event type constants, re-exported so callers never need to import
// internal/udon directly.
const (
	NoEvent              = udon.NoEvent
	ElementStart         = udon.ElementStart
	ElementEnd           = udon.ElementEnd
	EmbeddedStart        = udon.EmbeddedStart
	EmbeddedEnd          = udon.EmbeddedEnd
	DirectiveStart       = udon.DirectiveStart
	DirectiveEnd         = udon.DirectiveEnd
	ArrayStart           = udon.ArrayStart
	ArrayEnd             = udon.ArrayEnd
	FreeformStart        = udon.FreeformStart
	FreeformEnd          = udon.FreeformEnd
	AttributeEvent       = udon.AttributeEvent
	NilValue             = udon.NilValue
	BoolValue            = udon.BoolValue
	IntegerValue         = udon.IntegerValue
	FloatValue           = udon.FloatValue
	RationalValue        = udon.RationalValue
	ComplexValue         = udon.ComplexValue
	StringValue          = udon.StringValue
	QuotedStringValue    = udon.QuotedStringValue
	DateValue            = udon.DateValue
	TimeValue            = udon.TimeValue
	DateTimeValue        = udon.DateTimeValue
	DurationValue        = udon.DurationValue
	RelativeTimeValue    = udon.RelativeTimeValue
	TextEvent            = udon.TextEvent
	CommentEvent         = udon.CommentEvent
	RawContentEvent      = udon.RawContentEvent
	InterpolationEvent   = udon.InterpolationEvent
	InlineDirectiveEvent = udon.InlineDirectiveEvent
	IdReferenceEvent     = udon.IdReferenceEvent
	AttributeMergeEvent  = udon.AttributeMergeEvent
	WarningEvent         = udon.WarningEvent
	ErrorEvent           = udon.ErrorEvent
)

// Error code constants (spec.md 6.3).
const (
	NoCode               = udon.NoCode
	Unclosed             = udon.Unclosed
	UnclosedString       = udon.UnclosedString
	UnclosedQuote        = udon.UnclosedQuote
	UnclosedArray        = udon.UnclosedArray
	UnclosedBracket      = udon.UnclosedBracket
	UnclosedComment      = udon.UnclosedComment
	UnclosedDirective    = udon.UnclosedDirective
	UnclosedFreeform     = udon.UnclosedFreeform
	IncompleteDirective  = udon.IncompleteDirective
	ExpectedAttrKey      = udon.ExpectedAttrKey
	ExpectedClassName    = udon.ExpectedClassName
	UnexpectedAfterValue = udon.UnexpectedAfterValue
	NoTabs               = udon.NoTabs
	InconsistentIndent   = udon.InconsistentIndent
)

// NewParser constructs a streaming UDON Parser (spec.md 3.4/4.10).
func NewParser(opts ...Option) *Parser {
	return udon.NewParser(opts...)
}

// Resolve returns the bytes a value/content event's Handle refers to.
// It is a thin wrapper over the arena lookup the driver performs
// internally, exposed so callers consuming raw events (rather than the
// tree layer, which already resolves handles into strings) do not need
// reflection or unsafe access into the Parser's private arena.
func Resolve(p *Parser, h ByteSlice) []byte {
	return udon.Resolve(p, h)
}

// defaultReadChunkSize is the amount of input Parse/Decoder.Decode
// pulls from the reader per Feed call; it has no bearing on
// correctness (the streaming driver reassembles logical lines across
// any chunk boundary), only on how often backpressure is checked.
const defaultReadChunkSize = 64 * 1024

// Parse reads all of r, drives the streaming parser to completion, and
// composes the resulting event stream into a tree (mirrors yaml.go's
// top-level Unmarshal, but returns the parsed Document/error pair
// instead of decoding into a caller-supplied Go value, since UDON has
// no struct-binding operation, spec.md 1).
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	d := NewDecoder(r, opts...)
	return d.Decode()
}

// Decoder drives a Parser over an io.Reader and composes events into a
// Document, mirroring yaml.go's Decoder wrapping internal/libyaml's
// scan/parse/compose pipeline.
type Decoder struct {
	r io.Reader
	p *Parser
}

// NewDecoder constructs a Decoder reading from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, p: NewParser(opts...)}
}

// Decode reads all remaining input from the underlying reader, drains
// the Parser, and returns the composed tree. The whole input is parsed
// and composed; if any in-band Error event occurred, the first one is
// returned as the error alongside the Document. Warning events do not
// surface as a Go error (spec.md 7 treats only Error as halting for a
// strict consumer).
func (d *Decoder) Decode() (*Document, error) {
	buf := make([]byte, defaultReadChunkSize)
	br := bufio.NewReader(d.r)
	for {
		n, err := br.Read(buf)
		if n > 0 {
			d.p.Feed(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	d.p.Finish()

	root, diags := Compose(d.p)
	for _, diag := range diags {
		if !diag.Code.Warning() {
			return &Document{Root: root}, diag
		}
	}
	return &Document{Root: root}, nil
}

// Document is the root of a composed UDON tree (spec.md 10 /
// SPEC_FULL.md 10's supplemented tree-building layer).
type Document struct {
	Root *Node
}
