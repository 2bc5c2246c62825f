// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Convenience error type for collaborators that want a Go error out of
// the otherwise in-band Warning/Error event stream (spec.md 7).
// Grounded on MarkedYAMLError/ScannerError/ParserError in
// internal/libyaml/errors.go.

package udon

import "fmt"

// MarkedError pairs a diagnostic code with the span where it occurred.
// The core parser never returns this type itself (diagnostics are
// events, per spec.md 7); it exists for callers that want a Go error,
// such as the tree composer, which collects one per diagnostic event
// and keeps composing.
type MarkedError struct {
	Span Span
	Code ErrorCode
}

func (e *MarkedError) Error() string {
	return fmt.Sprintf("udon: %s at byte offset %d", e.Code, e.Span.Start)
}

// ErrorFromEvent builds a MarkedError from a Warning or Error event.
func ErrorFromEvent(e Event) *MarkedError {
	return &MarkedError{Span: e.Span, Code: e.Code}
}
