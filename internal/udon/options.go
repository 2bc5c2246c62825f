// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Functional options for Parser construction, grounded on the
// teacher's option/option.go Config/Option pattern.

package udon

// Config holds Parser construction settings.
type Config struct {
	ringCapacity   int
	numericIDs     bool
	maxDepth       int
	attachComments bool
}

// Option configures a Parser at construction time.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		ringCapacity: 256,
		numericIDs:   false,
		maxDepth:     0,
	}
}

// WithRingCapacity sets the event ring's requested capacity; it is
// rounded up to the next power of two (spec.md 4.2).
func WithRingCapacity(n int) Option {
	return func(c *Config) { c.ringCapacity = n }
}

// WithNumericIDs opts into decoding all-digit `[id]` tokens as Integer
// rather than String. Left off by default per spec.md 9's open
// question: `[id]` always emits String until a typed-id mode is added.
func WithNumericIDs(enabled bool) Option {
	return func(c *Config) { c.numericIDs = enabled }
}

// WithMaxDepth bounds the open-element stack depth; zero means
// unbounded. Exceeding the bound is reported the same way any other
// structural error is: an Error event, not a panic.
func WithMaxDepth(n int) Option {
	return func(c *Config) { c.maxDepth = n }
}

// WithAttachComments opts Compose into also collecting each Node's
// Comment events into LeadingComments/TrailingComments, in addition to
// leaving them in the node's Text segments. The event stream itself is
// unaffected either way; this only changes what the tree layer does
// with CommentEvents it already sees.
func WithAttachComments(enabled bool) Option {
	return func(c *Config) { c.attachComments = enabled }
}
