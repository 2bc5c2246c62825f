// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

package udon

import "testing"

func TestIsElementHeadAt(t *testing.T) {
	cases := []struct {
		line string
		pos  int
		want bool
	}{
		{"|div", 1, true},
		{"|[id]", 1, true},
		{"|.cls", 1, true},
		{"|'quoted'", 1, true},
		{"|{embed}", 1, true},
		{"| div", 1, true},
		{"|  ", 1, false},
		{"|", 1, false},
		{"|:attr val", 1, false},
		{"|42notaname", 1, false},
	}
	for _, c := range cases {
		if got := IsElementHeadAt([]byte(c.line), c.pos); got != c.want {
			t.Errorf("IsElementHeadAt(%q, %d) = %v; want %v", c.line, c.pos, got, c.want)
		}
	}
}

func TestParseHeadIdentityNameOnly(t *testing.T) {
	s := newLineScanner([]byte("div rest"), 0)
	hi, code := ParseHeadIdentity(s)
	if code != NoCode {
		t.Fatalf("code = %v; want NoCode", code)
	}
	if string(hi.Name) != "div" || hi.NameQuoted {
		t.Fatalf("hi = %+v; want Name=div", hi)
	}
	if b, _ := s.peek(); b != ' ' {
		t.Errorf("cursor should stop at the space separating name from attrs")
	}
}

func TestParseHeadIdentityQuotedName(t *testing.T) {
	s := newLineScanner([]byte("'my name' rest"), 0)
	hi, code := ParseHeadIdentity(s)
	if code != NoCode {
		t.Fatalf("code = %v; want NoCode", code)
	}
	if string(hi.Name) != "my name" || !hi.NameQuoted {
		t.Fatalf("hi = %+v; want Name='my name', NameQuoted", hi)
	}
}

func TestParseHeadIdentityIDAndClassAndFlags(t *testing.T) {
	s := newLineScanner([]byte("item[42].big.red?! rest"), 0)
	hi, code := ParseHeadIdentity(s)
	if code != NoCode {
		t.Fatalf("code = %v; want NoCode", code)
	}
	if string(hi.Name) != "item" {
		t.Fatalf("hi.Name = %q; want %q", hi.Name, "item")
	}
	wantKeys := []string{"$id", "$class", "$class", "?", "!"}
	if len(hi.Pieces) != len(wantKeys) {
		t.Fatalf("len(Pieces) = %d; want %d (%+v)", len(hi.Pieces), len(wantKeys), hi.Pieces)
	}
	for i, k := range wantKeys {
		if hi.Pieces[i].Key != k {
			t.Errorf("Pieces[%d].Key = %q; want %q", i, hi.Pieces[i].Key, k)
		}
	}
	if string(hi.Pieces[0].Value) != "42" {
		t.Errorf("Pieces[0].Value = %q; want %q", hi.Pieces[0].Value, "42")
	}
	if string(hi.Pieces[1].Value) != "big" || string(hi.Pieces[2].Value) != "red" {
		t.Errorf("class values = %q, %q; want big, red", hi.Pieces[1].Value, hi.Pieces[2].Value)
	}
	if !hi.Pieces[3].Flag || !hi.Pieces[4].Flag {
		t.Errorf("suffix pieces should be flagged")
	}
}

func TestParseHeadIdentityNoNameJustID(t *testing.T) {
	s := newLineScanner([]byte("[abc]"), 0)
	hi, code := ParseHeadIdentity(s)
	if code != NoCode {
		t.Fatalf("code = %v; want NoCode", code)
	}
	if len(hi.Name) != 0 {
		t.Errorf("hi.Name = %q; want empty", hi.Name)
	}
	if len(hi.Pieces) != 1 || hi.Pieces[0].Key != "$id" || string(hi.Pieces[0].Value) != "abc" {
		t.Fatalf("hi.Pieces = %+v; want a single $id=abc", hi.Pieces)
	}
}

func TestParseHeadIdentityUnclosedBracket(t *testing.T) {
	s := newLineScanner([]byte("name[abc"), 0)
	_, code := ParseHeadIdentity(s)
	if code != Unclosed {
		t.Fatalf("code = %v; want Unclosed", code)
	}
}

func TestParseHeadIdentityEmptyClassIsError(t *testing.T) {
	s := newLineScanner([]byte("name."), 0)
	_, code := ParseHeadIdentity(s)
	if code != ExpectedClassName {
		t.Fatalf("code = %v; want ExpectedClassName", code)
	}
}

func TestParseHeadIdentityPopulatedClassFollowedBySuffixIsNotError(t *testing.T) {
	s := newLineScanner([]byte("foo[id].bar?"), 0)
	hi, code := ParseHeadIdentity(s)
	if code != NoCode {
		t.Fatalf("code = %v; want NoCode", code)
	}
	want := []IdentityPiece{
		{Key: "$id", Value: []byte("id")},
		{Key: "$class", Value: []byte("bar")},
		{Key: "?", Flag: true},
	}
	if len(hi.Pieces) != len(want) {
		t.Fatalf("hi.Pieces = %+v; want %+v", hi.Pieces, want)
	}
	for i, w := range want {
		g := hi.Pieces[i]
		if g.Key != w.Key || string(g.Value) != string(w.Value) || g.Flag != w.Flag {
			t.Errorf("hi.Pieces[%d] = %+v; want %+v", i, g, w)
		}
	}
}

func TestParseHeadIdentityClassImmediatelyFollowedBySuffixIsError(t *testing.T) {
	s := newLineScanner([]byte("name.?"), 0)
	_, code := ParseHeadIdentity(s)
	if code != ExpectedClassName {
		t.Fatalf("code = %v; want ExpectedClassName", code)
	}
}

func TestParseHeadIdentityStopsAtColon(t *testing.T) {
	s := newLineScanner([]byte("name:attr"), 0)
	hi, code := ParseHeadIdentity(s)
	if code != NoCode {
		t.Fatalf("code = %v; want NoCode", code)
	}
	if string(hi.Name) != "name" {
		t.Fatalf("hi.Name = %q; want %q", hi.Name, "name")
	}
	if b, _ := s.peek(); b != ':' {
		t.Errorf("cursor should stop just before ':'; got %q", b)
	}
}
