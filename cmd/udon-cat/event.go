// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Event-to-line formatting for udon-cat, grounded on
// cmd/go-yaml/event.go's EventType/Event-to-line conversion.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/udon-lang/udon"
)

// jsonEvent is the one-JSON-object-per-line wire shape for --json,
// mirroring cmd/go-yaml/json.go's conversion of parsed values to `any`
// before marshaling.
type jsonEvent struct {
	Type      string `json:"type"`
	Start     uint64 `json:"start"`
	End       uint64 `json:"end"`
	Name      string `json:"name,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Value     string `json:"value,omitempty"`
	Code      string `json:"code,omitempty"`
}

func formatLine(p *udon.Parser, ev udon.Event) (string, error) {
	base := fmt.Sprintf("[%d:%d] %s", ev.Span.Start, ev.Span.End, ev.Type)

	switch ev.Type {
	case udon.ElementStart, udon.EmbeddedStart, udon.DirectiveStart, udon.FreeformStart:
		if len(ev.Name) > 0 {
			base += " " + string(ev.Name)
		}
		if len(ev.Namespace) > 0 {
			base += " ns=" + string(ev.Namespace)
		}
	case udon.AttributeEvent, udon.IdReferenceEvent, udon.AttributeMergeEvent:
		base += " " + string(ev.Name)
	case udon.BoolValue:
		base += " " + strconv.FormatBool(ev.Bool)
	case udon.IntegerValue:
		base += " " + strconv.FormatInt(ev.Int, 10)
	case udon.FloatValue:
		base += " " + strconv.FormatFloat(ev.Float, 'g', -1, 64)
	case udon.RationalValue:
		base += fmt.Sprintf(" %d/%d", ev.RatNum, ev.RatDen)
	case udon.ComplexValue:
		base += fmt.Sprintf(" %g%+gi", ev.Re, ev.Im)
	case udon.StringValue, udon.QuotedStringValue, udon.DateValue, udon.TimeValue,
		udon.DateTimeValue, udon.DurationValue, udon.RelativeTimeValue,
		udon.TextEvent, udon.CommentEvent, udon.RawContentEvent:
		base += " " + strconv.Quote(string(udon.Resolve(p, ev.Handle)))
	case udon.InterpolationEvent:
		base += " " + strconv.Quote(string(ev.Raw))
	case udon.InlineDirectiveEvent:
		if ev.Inline != nil {
			base += fmt.Sprintf(" %s.%s %s", ev.Inline.Namespace, ev.Inline.Name, strconv.Quote(string(udon.Resolve(p, ev.Inline.Content))))
		}
	case udon.WarningEvent, udon.ErrorEvent:
		base += " " + ev.Code.String()
	}
	return base, nil
}

func formatJSON(p *udon.Parser, ev udon.Event) (string, error) {
	je := jsonEvent{
		Type:      ev.Type.String(),
		Start:     ev.Span.Start,
		End:       ev.Span.End,
		Name:      string(ev.Name),
		Namespace: string(ev.Namespace),
	}

	switch ev.Type {
	case udon.BoolValue:
		je.Value = strconv.FormatBool(ev.Bool)
	case udon.IntegerValue:
		je.Value = strconv.FormatInt(ev.Int, 10)
	case udon.FloatValue:
		je.Value = strconv.FormatFloat(ev.Float, 'g', -1, 64)
	case udon.RationalValue:
		je.Value = fmt.Sprintf("%d/%d", ev.RatNum, ev.RatDen)
	case udon.ComplexValue:
		je.Value = fmt.Sprintf("%g%+gi", ev.Re, ev.Im)
	case udon.StringValue, udon.QuotedStringValue, udon.DateValue, udon.TimeValue,
		udon.DateTimeValue, udon.DurationValue, udon.RelativeTimeValue,
		udon.TextEvent, udon.CommentEvent, udon.RawContentEvent:
		je.Value = string(udon.Resolve(p, ev.Handle))
	case udon.InterpolationEvent:
		je.Value = string(ev.Raw)
	case udon.InlineDirectiveEvent:
		if ev.Inline != nil {
			je.Namespace = string(ev.Inline.Namespace)
			je.Name = string(ev.Inline.Name)
			je.Value = string(udon.Resolve(p, ev.Inline.Content))
		}
	case udon.WarningEvent, udon.ErrorEvent:
		je.Code = ev.Code.String()
	}

	b, err := json.Marshal(je)
	if err != nil {
		return "", fmt.Errorf("marshaling event: %w", err)
	}
	return string(b), nil
}
