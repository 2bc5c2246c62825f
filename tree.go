// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Re-exports of the tree-building convenience layer (internal/udon/
// tree.go, composer.go), mirroring node.go's Node/Content re-export of
// internal/libyaml in the teacher.
package udon

import "github.com/udon-lang/udon/internal/udon"

// Node, Value, Attr, and TextSegment mirror the teacher's Node/Content
// DOM-style types, adapted to UDON's event set (SPEC_FULL.md 10).
type (
	Node        = udon.Node
	Value       = udon.Value
	Attr        = udon.Attr
	TextSegment = udon.TextSegment
)

// Compose drains p (already fed all its input, with Finish called)
// into a Node tree, plus any Warning/Error events encountered, per
// internal/udon/composer.go.
func Compose(p *Parser) (*Node, []*MarkedError) {
	return udon.Compose(p)
}
