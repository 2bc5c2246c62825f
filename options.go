// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Re-exports of internal/udon's functional options, mirroring the
// teacher's options.go DecodeOption/EncodeOption re-export of
// internal/libyaml's Options.
package udon

import "github.com/udon-lang/udon/internal/udon"

// Option configures a Parser at construction time.
type Option = udon.Option

// WithRingCapacity sets the event ring's requested capacity; it is
// rounded up to the next power of two (spec.md 4.2).
func WithRingCapacity(n int) Option { return udon.WithRingCapacity(n) }

// WithNumericIDs opts into decoding all-digit `[id]` tokens as Integer
// rather than String (spec.md 9's open question; default off).
func WithNumericIDs(enabled bool) Option { return udon.WithNumericIDs(enabled) }

// WithMaxDepth sets the open-element stack depth past which each push
// emits Error(Unclosed); the entry is still pushed. Zero means no
// limit.
func WithMaxDepth(n int) Option { return udon.WithMaxDepth(n) }

// WithAttachComments opts Compose into also collecting each Node's
// comments into LeadingComments/TrailingComments (SPEC_FULL.md 10);
// the event stream itself is unaffected.
func WithAttachComments(enabled bool) Option { return udon.WithAttachComments(enabled) }
