// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Event-stream-to-tree composer: replays a Parser's event stream into
// a Node tree. Adapted from the compose.go/composer.go event-to-node
// shape, but driven by this package's pull-based Read/Peek rather than
// a parser-internal event channel.

package udon

// Compose drains p (which must already have been fed all its input,
// with Finish called) into a tree rooted at an implicit document node,
// plus any Warning/Error events encountered along the way.
func Compose(p *Parser) (*Node, []*MarkedError) {
	root := &Node{Kind: NoEvent}
	stack := []*builder{{node: root}}
	var diags []*MarkedError

	for {
		e, ok := p.Read()
		if !ok {
			break
		}
		top := stack[len(stack)-1]

		switch e.Type {
		case ElementStart, DirectiveStart, FreeformStart:
			child := &Node{Kind: e.Type, Name: string(e.Name), Namespace: string(e.Namespace)}
			top.node.Children = append(top.node.Children, child)
			stack = append(stack, &builder{node: child})

		case EmbeddedStart:
			child := &Node{Kind: e.Type, Name: string(e.Name)}
			top.node.Text = append(top.node.Text, TextSegment{Type: EmbeddedStart, Child: child})
			stack = append(stack, &builder{node: child})

		case ElementEnd, DirectiveEnd, FreeformEnd, EmbeddedEnd:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}

		case ArrayStart:
			top.arrayStack = append(top.arrayStack, &arrayFrame{})

		case ArrayEnd:
			if n := len(top.arrayStack); n > 0 {
				frame := top.arrayStack[n-1]
				top.arrayStack = top.arrayStack[:n-1]
				top.attachValue(Value{Type: ArrayStart, Array: frame.items})
			}

		case AttributeEvent:
			top.pendingAttrKey = string(e.Name)
			top.pendingAttrSet = true

		case NilValue, BoolValue, IntegerValue, FloatValue, RationalValue, ComplexValue,
			StringValue, QuotedStringValue, DateValue, TimeValue, DateTimeValue,
			DurationValue, RelativeTimeValue:
			top.attachValue(valueFromEvent(p, e))

		case TextEvent, RawContentEvent:
			top.node.Text = append(top.node.Text, TextSegment{Type: e.Type, Str: string(p.arena.resolve(e.Handle))})

		case CommentEvent:
			text := string(p.arena.resolve(e.Handle))
			top.node.Text = append(top.node.Text, TextSegment{Type: e.Type, Str: text})
			if p.cfg.attachComments {
				if len(top.node.Text) == 1 && len(top.node.Children) == 0 {
					top.node.LeadingComments = append(top.node.LeadingComments, text)
				} else {
					top.node.TrailingComments = append(top.node.TrailingComments, text)
				}
			}

		case InterpolationEvent:
			top.node.Text = append(top.node.Text, TextSegment{Type: e.Type, Str: string(e.Raw)})

		case InlineDirectiveEvent:
			seg := TextSegment{Type: e.Type}
			if e.Inline != nil {
				seg.Namespace = string(e.Inline.Namespace)
				seg.Name = string(e.Inline.Name)
				seg.Str = string(p.arena.resolve(e.Inline.Content))
			}
			top.node.Text = append(top.node.Text, seg)

		case IdReferenceEvent, AttributeMergeEvent:
			top.node.Text = append(top.node.Text, TextSegment{Type: e.Type, Str: string(e.Name)})

		case WarningEvent, ErrorEvent:
			diags = append(diags, ErrorFromEvent(e))
		}
	}

	return root, diags
}

// builder tracks, per open Node, the in-progress attribute key (if
// any) and any nested array literals being accumulated.
type builder struct {
	node *Node

	pendingAttrKey string
	pendingAttrSet bool

	arrayStack []*arrayFrame
}

// arrayFrame accumulates one array literal's items as they arrive,
// finalized into a Value only at ArrayEnd so that nesting never needs
// to mutate a value already appended to a parent slice.
type arrayFrame struct {
	items []Value
}

// attachValue routes a completed value to wherever it belongs: the
// innermost open array, or the pending attribute. A value arriving
// with neither an open array nor a pending attribute key has no
// grammatical home and is dropped.
func (b *builder) attachValue(v Value) {
	if n := len(b.arrayStack); n > 0 {
		frame := b.arrayStack[n-1]
		frame.items = append(frame.items, v)
		return
	}
	if b.pendingAttrSet {
		b.node.Attrs = append(b.node.Attrs, Attr{Key: b.pendingAttrKey, Value: v})
		b.pendingAttrSet = false
	}
}

func valueFromEvent(p *Parser, e Event) Value {
	switch e.Type {
	case NilValue:
		return Value{Type: e.Type}
	case BoolValue:
		return Value{Type: e.Type, Bool: e.Bool}
	case IntegerValue:
		return Value{Type: e.Type, Int: e.Int}
	case FloatValue:
		return Value{Type: e.Type, Float: e.Float}
	case RationalValue:
		return Value{Type: e.Type, RatNum: e.RatNum, RatDen: e.RatDen}
	case ComplexValue:
		return Value{Type: e.Type, Re: e.Re, Im: e.Im}
	default: // StringValue, QuotedStringValue, Date/Time/DateTime/Duration/RelativeTime
		return Value{Type: e.Type, Str: string(p.arena.resolve(e.Handle))}
	}
}
