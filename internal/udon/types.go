// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Shared types for the UDON streaming parser: positions, byte handles,
// and the event wire format produced by the driver (C10) and consumed
// by the tree layer, the CLI, or any other external collaborator.

package udon

import "fmt"

// Mark is a position in the logical input stream. The parser itself
// tracks positions as byte offsets and Spans and does not use Mark.
// Line and Column are zero-indexed.
type Mark struct {
	Offset uint64
	Line   int
	Column int
}

func (m Mark) String() string {
	return fmt.Sprintf("line %d, column %d", m.Line+1, m.Column+1)
}

// Span is a half-open byte-offset interval into the logical input
// stream, attached to every event (spec.md 3.1/6.2).
type Span struct {
	Start uint64
	End   uint64
}

// ByteSlice is a reference to a contiguous byte range owned by a chunk in
// the arena (spec.md 3.1). Handles are value types: equality is by
// identity (chunk + offsets), not by content.
type ByteSlice struct {
	ChunkIdx uint32
	Start    uint32
	End      uint32
}

// Len returns the number of bytes the handle covers.
func (b ByteSlice) Len() uint32 { return b.End - b.Start }

// Empty reports whether the handle covers zero bytes.
func (b ByteSlice) Empty() bool { return b.Start == b.End }

// EventType discriminates the cases enumerated in spec.md 6.2.
type EventType int8

const (
	NoEvent EventType = iota

	// Structural
	ElementStart
	ElementEnd
	EmbeddedStart
	EmbeddedEnd
	DirectiveStart
	DirectiveEnd
	ArrayStart
	ArrayEnd
	FreeformStart
	FreeformEnd

	// Attributes
	AttributeEvent

	// Values
	NilValue
	BoolValue
	IntegerValue
	FloatValue
	RationalValue
	ComplexValue
	StringValue
	QuotedStringValue
	DateValue
	TimeValue
	DateTimeValue
	DurationValue
	RelativeTimeValue

	// Content
	TextEvent
	CommentEvent
	RawContentEvent

	// Dynamics
	InterpolationEvent
	InlineDirectiveEvent

	// References
	IdReferenceEvent
	AttributeMergeEvent

	// Diagnostics
	WarningEvent
	ErrorEvent
)

var eventTypeNames = [...]string{
	NoEvent:             "NoEvent",
	ElementStart:        "ElementStart",
	ElementEnd:          "ElementEnd",
	EmbeddedStart:       "EmbeddedStart",
	EmbeddedEnd:         "EmbeddedEnd",
	DirectiveStart:      "DirectiveStart",
	DirectiveEnd:        "DirectiveEnd",
	ArrayStart:          "ArrayStart",
	ArrayEnd:            "ArrayEnd",
	FreeformStart:       "FreeformStart",
	FreeformEnd:         "FreeformEnd",
	AttributeEvent:      "Attribute",
	NilValue:            "Nil",
	BoolValue:           "Bool",
	IntegerValue:        "Integer",
	FloatValue:          "Float",
	RationalValue:       "Rational",
	ComplexValue:        "Complex",
	StringValue:         "String",
	QuotedStringValue:   "QuotedString",
	DateValue:           "Date",
	TimeValue:           "Time",
	DateTimeValue:       "DateTime",
	DurationValue:       "Duration",
	RelativeTimeValue:   "RelativeTime",
	TextEvent:           "Text",
	CommentEvent:        "Comment",
	RawContentEvent:     "RawContent",
	InterpolationEvent:  "Interpolation",
	InlineDirectiveEvent: "InlineDirective",
	IdReferenceEvent:    "IdReference",
	AttributeMergeEvent: "AttributeMerge",
	WarningEvent:        "Warning",
	ErrorEvent:          "Error",
}

func (t EventType) String() string {
	if int(t) >= 0 && int(t) < len(eventTypeNames) && eventTypeNames[t] != "" {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// ErrorCode is the closed set of diagnostic codes from spec.md 6.3.
type ErrorCode int

const (
	NoCode ErrorCode = iota
	Unclosed
	UnclosedString
	UnclosedQuote
	UnclosedArray
	UnclosedBracket
	UnclosedComment
	UnclosedDirective
	UnclosedFreeform
	IncompleteDirective
	ExpectedAttrKey
	ExpectedClassName
	UnexpectedAfterValue
	NoTabs
	InconsistentIndent
)

var errorCodeNames = [...]string{
	NoCode:               "NoCode",
	Unclosed:             "Unclosed",
	UnclosedString:       "UnclosedString",
	UnclosedQuote:        "UnclosedQuote",
	UnclosedArray:        "UnclosedArray",
	UnclosedBracket:      "UnclosedBracket",
	UnclosedComment:      "UnclosedComment",
	UnclosedDirective:    "UnclosedDirective",
	UnclosedFreeform:     "UnclosedFreeform",
	IncompleteDirective:  "IncompleteDirective",
	ExpectedAttrKey:      "ExpectedAttrKey",
	ExpectedClassName:    "ExpectedClassName",
	UnexpectedAfterValue: "UnexpectedAfterValue",
	NoTabs:               "NoTabs",
	InconsistentIndent:   "InconsistentIndent",
}

func (c ErrorCode) String() string {
	if int(c) >= 0 && int(c) < len(errorCodeNames) && errorCodeNames[c] != "" {
		return errorCodeNames[c]
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Warning reports whether the code is a warning (processing continues
// unchanged) rather than an error (processing continues best-effort).
func (c ErrorCode) Warning() bool {
	return c == InconsistentIndent
}

// InlineDirectivePayload holds the indirected fields of an
// InlineDirectiveEvent. It is kept out of Event directly so the common
// event shape stays small (spec.md 3.2).
type InlineDirectivePayload struct {
	Namespace []byte
	Name      []byte
	Content   ByteSlice
}

// Event is a single item in the structural event stream (spec.md 6.2).
// Not every field is meaningful for every Type; events are built as
// struct literals where they are emitted (dispatch.go, attrs.go,
// dynamics.go, hierarchy.go), which set the fields used per event.
type Event struct {
	Type EventType
	Span Span

	// Name carries the element/embedded/directive name, the attribute
	// key, or the id referenced by IdReference/AttributeMerge.
	Name []byte

	// Namespace carries a directive's optional namespace.
	Namespace []byte

	// Handle resolves through the arena for value/content events whose
	// payload is borrowed from input bytes (String, QuotedString, Text,
	// Comment, RawContent).
	Handle ByteSlice

	// Raw carries payload bytes that are not arena-backed, such as an
	// interpolation expression captured during dispatch.
	Raw []byte

	Bool  bool
	Int   int64
	Float float64

	RatNum, RatDen int64
	Re, Im         float64

	// Inline holds the indirected payload for InlineDirectiveEvent.
	Inline *InlineDirectivePayload

	// Code identifies a Warning/Error event.
	Code ErrorCode
}
