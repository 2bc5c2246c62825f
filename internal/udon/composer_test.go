// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

package udon

import "testing"

func composeString(t *testing.T, src string) (*Node, []*MarkedError) {
	t.Helper()
	p := NewParser()
	p.Feed([]byte(src))
	p.Finish()
	return Compose(p)
}

func TestComposeSimpleElement(t *testing.T) {
	root, diags := composeString(t, "|div\n")
	if len(diags) != 0 {
		t.Fatalf("diags = %v; want none", diags)
	}
	if len(root.Children) != 1 {
		t.Fatalf("root.Children = %v; want 1 child", root.Children)
	}
	child := root.Children[0]
	if child.Kind != ElementStart || child.Name != "div" {
		t.Fatalf("child = %+v; want ElementStart div", child)
	}
}

func TestComposeAttributesAndIdentity(t *testing.T) {
	root, diags := composeString(t, "|foo[id].bar?\n")
	if len(diags) != 0 {
		t.Fatalf("diags = %v; want none", diags)
	}
	child := root.Children[0]
	if len(child.Attrs) != 3 {
		t.Fatalf("child.Attrs = %+v; want 3 attrs ($id, $class, ?)", child.Attrs)
	}
	idVal, ok := child.Attr("$id")
	if !ok || idVal.Str != "id" {
		t.Errorf("Attr($id) = %+v, %v; want Str=id", idVal, ok)
	}
	classVal, ok := child.Attr("$class")
	if !ok || classVal.Str != "bar" {
		t.Errorf("Attr($class) = %+v, %v; want Str=bar", classVal, ok)
	}
	flagVal, ok := child.Attr("?")
	if !ok || !flagVal.Bool {
		t.Errorf("Attr(?) = %+v, %v; want Bool=true", flagVal, ok)
	}
}

func TestComposeNestedChildren(t *testing.T) {
	root, _ := composeString(t, "|a\n  |b\n    |c\n|d\n")
	if len(root.Children) != 2 {
		t.Fatalf("root.Children = %v; want 2 (a, d)", root.Children)
	}
	a, d := root.Children[0], root.Children[1]
	if a.Name != "a" || d.Name != "d" {
		t.Fatalf("a.Name=%q d.Name=%q; want a, d", a.Name, d.Name)
	}
	if len(a.Children) != 1 || a.Children[0].Name != "b" {
		t.Fatalf("a.Children = %+v; want a single child b", a.Children)
	}
	b := a.Children[0]
	if len(b.Children) != 1 || b.Children[0].Name != "c" {
		t.Fatalf("b.Children = %+v; want a single child c", b.Children)
	}
}

func TestComposeArrayAttribute(t *testing.T) {
	root, diags := composeString(t, `|el :tags [a 42 "x"]`+"\n")
	if len(diags) != 0 {
		t.Fatalf("diags = %v; want none", diags)
	}
	el := root.Children[0]
	tags, ok := el.Attr("tags")
	if !ok || tags.Type != ArrayStart {
		t.Fatalf("Attr(tags) = %+v, %v; want an ArrayStart value", tags, ok)
	}
	if len(tags.Array) != 3 {
		t.Fatalf("tags.Array = %+v; want 3 items", tags.Array)
	}
	if tags.Array[0].Str != "a" || tags.Array[1].Int != 42 || tags.Array[2].Str != "x" {
		t.Fatalf("tags.Array = %+v; want [a, 42, x]", tags.Array)
	}
}

func TestComposeNestedArray(t *testing.T) {
	root, _ := composeString(t, "|el :m [1 [2 3]]\n")
	el := root.Children[0]
	m, ok := el.Attr("m")
	if !ok || len(m.Array) != 2 {
		t.Fatalf("Attr(m) = %+v, %v; want 2 top-level items", m, ok)
	}
	if m.Array[0].Int != 1 {
		t.Errorf("m.Array[0] = %+v; want Int 1", m.Array[0])
	}
	inner := m.Array[1]
	if inner.Type != ArrayStart || len(inner.Array) != 2 || inner.Array[0].Int != 2 || inner.Array[1].Int != 3 {
		t.Fatalf("m.Array[1] = %+v; want nested [2 3]", inner)
	}
}

func TestComposeTextAndInterpolation(t *testing.T) {
	root, _ := composeString(t, "|p Hello, !{{user.name}}!\n")
	p := root.Children[0]
	if len(p.Text) != 3 {
		t.Fatalf("p.Text = %+v; want 3 segments", p.Text)
	}
	if p.Text[0].Str != "Hello, " {
		t.Errorf("p.Text[0] = %+v; want Str=%q", p.Text[0], "Hello, ")
	}
	if p.Text[1].Type != InterpolationEvent || p.Text[1].Str != "user.name" {
		t.Errorf("p.Text[1] = %+v; want Interpolation(user.name)", p.Text[1])
	}
	if p.Text[2].Str != "!" {
		t.Errorf("p.Text[2] = %+v; want Str=%q", p.Text[2], "!")
	}
}

func TestComposeEmbeddedElement(t *testing.T) {
	root, _ := composeString(t, "|p before |{span text} after\n")
	p := root.Children[0]
	var foundChild *Node
	for _, seg := range p.Text {
		if seg.Type == EmbeddedStart {
			foundChild = seg.Child
		}
	}
	if foundChild == nil || foundChild.Name != "span" {
		t.Fatalf("expected an embedded child named span; text = %+v", p.Text)
	}
}

func TestComposeDiagnosticsSurfaceWarningsAndErrors(t *testing.T) {
	_, diags := composeString(t, "|el :tags [1 2\n")
	if len(diags) == 0 {
		t.Fatalf("expected at least one diagnostic for the unclosed array")
	}
	found := false
	for _, d := range diags {
		if d.Code == UnclosedArray {
			found = true
		}
	}
	if !found {
		t.Fatalf("diags = %v; want one of them to be UnclosedArray", diags)
	}
}

func TestComposeAttachesLeadingAndTrailingComments(t *testing.T) {
	p := NewParser(WithAttachComments(true))
	p.Feed([]byte("|div\n  ;first\n  |span\n  ;second\n"))
	p.Finish()
	root, _ := Compose(p)
	div := root.Children[0]
	if len(div.LeadingComments) != 1 || div.LeadingComments[0] != "first" {
		t.Fatalf("div.LeadingComments = %v; want [\"first\"]", div.LeadingComments)
	}
	if len(div.TrailingComments) != 1 || div.TrailingComments[0] != "second" {
		t.Fatalf("div.TrailingComments = %v; want [\"second\"]", div.TrailingComments)
	}
	// Comments still show up in Text regardless of the option.
	var sawComments int
	for _, seg := range div.Text {
		if seg.Type == CommentEvent {
			sawComments++
		}
	}
	if sawComments != 2 {
		t.Fatalf("div.Text comment segments = %d; want 2", sawComments)
	}
}

func TestComposeWithoutAttachCommentsLeavesSideTableEmpty(t *testing.T) {
	root, _ := composeString(t, "|div\n  ;first\n  |span\n  ;second\n")
	div := root.Children[0]
	if len(div.LeadingComments) != 0 || len(div.TrailingComments) != 0 {
		t.Fatalf("comments should not be attached without WithAttachComments; got leading=%v trailing=%v",
			div.LeadingComments, div.TrailingComments)
	}
}

func TestComposeFreeformBlock(t *testing.T) {
	root, _ := composeString(t, "```\n|not-an-element\n```\n")
	if len(root.Children) != 1 || root.Children[0].Kind != FreeformStart {
		t.Fatalf("root.Children = %+v; want a single FreeformStart", root.Children)
	}
	block := root.Children[0]
	if len(block.Text) != 1 || block.Text[0].Type != RawContentEvent {
		t.Fatalf("block.Text = %+v; want a single RawContent segment", block.Text)
	}
	if block.Text[0].Str != "|not-an-element" {
		t.Errorf("block.Text[0].Str = %q; want %q", block.Text[0].Str, "|not-an-element")
	}
}
