// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRunPlainText(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf, []byte("|div\n"), 256, false, false); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "ElementStart div") {
		t.Fatalf("missing ElementStart line: %q", out)
	}
	if !strings.Contains(out, "ElementEnd") {
		t.Fatalf("missing ElementEnd line: %q", out)
	}
}

func TestRunJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf, []byte("|el :tags [a 42]\n"), 256, true, false); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 0 {
		t.Fatalf("no output")
	}
	for _, line := range lines {
		var je jsonEvent
		if err := json.Unmarshal([]byte(line), &je); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
	}
	if !strings.Contains(lines[0], `"ElementStart"`) {
		t.Fatalf("first event should be ElementStart: %s", lines[0])
	}
}

func TestRunStrictStopsAtError(t *testing.T) {
	var buf bytes.Buffer
	err := run(&buf, []byte("|el :tags [a\n"), 256, false, true)
	if err == nil {
		t.Fatalf("expected error from unclosed array in strict mode")
	}
}
