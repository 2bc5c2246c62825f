// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

package udon

import "testing"

func TestClassifyScalarNil(t *testing.T) {
	for _, s := range []string{"null", "nil", "~"} {
		if sv := ClassifyScalar([]byte(s)); sv.Kind != ScalarNil {
			t.Errorf("ClassifyScalar(%q).Kind = %v; want ScalarNil", s, sv.Kind)
		}
	}
}

func TestClassifyScalarBoolIsCaseSensitive(t *testing.T) {
	if sv := ClassifyScalar([]byte("true")); sv.Kind != ScalarBool || !sv.Bool {
		t.Errorf("ClassifyScalar(true) = %+v; want Bool(true)", sv)
	}
	if sv := ClassifyScalar([]byte("false")); sv.Kind != ScalarBool || sv.Bool {
		t.Errorf("ClassifyScalar(false) = %+v; want Bool(false)", sv)
	}
	if sv := ClassifyScalar([]byte("True")); sv.Kind != ScalarString {
		t.Errorf("ClassifyScalar(True).Kind = %v; want ScalarString (only lowercase is Bool)", sv.Kind)
	}
	if sv := ClassifyScalar([]byte("TRUE")); sv.Kind != ScalarString {
		t.Errorf("ClassifyScalar(TRUE).Kind = %v; want ScalarString", sv.Kind)
	}
}

func TestClassifyScalarComplex(t *testing.T) {
	cases := []struct {
		in     string
		re, im float64
	}{
		{"3+4i", 3, 4},
		{"-2-1i", -2, -1},
		{"5i", 0, 5},
		{"1e3+2i", 1000, 2},
	}
	for _, c := range cases {
		sv := ClassifyScalar([]byte(c.in))
		if sv.Kind != ScalarComplex || sv.Re != c.re || sv.Im != c.im {
			t.Errorf("ClassifyScalar(%q) = %+v; want Complex(%g,%g)", c.in, sv, c.re, c.im)
		}
	}
}

func TestClassifyScalarRational(t *testing.T) {
	sv := ClassifyScalar([]byte("3/4r"))
	if sv.Kind != ScalarRational || sv.RatNum != 3 || sv.RatDen != 4 {
		t.Errorf("ClassifyScalar(3/4r) = %+v; want Rational(3,4)", sv)
	}
	if sv := ClassifyScalar([]byte("-3/4r")); sv.Kind != ScalarRational || sv.RatNum != -3 {
		t.Errorf("ClassifyScalar(-3/4r) = %+v; want Rational(-3,4)", sv)
	}
	if sv := ClassifyScalar([]byte("3/0r")); sv.Kind == ScalarRational {
		t.Errorf("ClassifyScalar(3/0r) should not classify with a zero denominator")
	}
}

func TestClassifyScalarBasedInteger(t *testing.T) {
	cases := map[string]int64{
		"0x1F":     31,
		"0X1f":     31,
		"0o17":     15,
		"0b1010":   10,
		"0d42":     42,
		"-0x10":    -16,
		"0x1_000":  4096,
	}
	for in, want := range cases {
		sv := ClassifyScalar([]byte(in))
		if sv.Kind != ScalarInteger || sv.Int != want {
			t.Errorf("ClassifyScalar(%q) = %+v; want Integer(%d)", in, sv, want)
		}
	}
}

func TestClassifyScalarFloat(t *testing.T) {
	cases := map[string]float64{
		"3.14":    3.14,
		"1e10":    1e10,
		"-0.5":    -0.5,
		"1_000.5": 1000.5,
	}
	for in, want := range cases {
		sv := ClassifyScalar([]byte(in))
		if sv.Kind != ScalarFloat || sv.Float != want {
			t.Errorf("ClassifyScalar(%q) = %+v; want Float(%g)", in, sv, want)
		}
	}
}

func TestClassifyScalarDecimalInteger(t *testing.T) {
	cases := map[string]int64{"42": 42, "-7": -7, "1_000_000": 1000000, "0": 0}
	for in, want := range cases {
		sv := ClassifyScalar([]byte(in))
		if sv.Kind != ScalarInteger || sv.Int != want {
			t.Errorf("ClassifyScalar(%q) = %+v; want Integer(%d)", in, sv, want)
		}
	}
	if sv := ClassifyScalar([]byte("+5")); sv.Kind == ScalarInteger {
		t.Errorf("a leading '+' is not part of the decimal-integer grammar; got %+v", sv)
	}
}

func TestClassifyScalarDateTimeDuration(t *testing.T) {
	if sv := ClassifyScalar([]byte("2024-03-15")); sv.Kind != ScalarDate {
		t.Errorf("ClassifyScalar(2024-03-15).Kind = %v; want ScalarDate", sv.Kind)
	}
	if sv := ClassifyScalar([]byte("2024-03")); sv.Kind != ScalarDate {
		t.Errorf("ClassifyScalar(2024-03).Kind = %v; want ScalarDate", sv.Kind)
	}
	if sv := ClassifyScalar([]byte("14:30:00")); sv.Kind != ScalarTime {
		t.Errorf("ClassifyScalar(14:30:00).Kind = %v; want ScalarTime", sv.Kind)
	}
	if sv := ClassifyScalar([]byte("2024-03-15T14:30:00Z")); sv.Kind != ScalarDateTime {
		t.Errorf("ClassifyScalar(datetime).Kind = %v; want ScalarDateTime", sv.Kind)
	}
	if sv := ClassifyScalar([]byte("2024-03-15T14:30:00+02:00")); sv.Kind != ScalarDateTime {
		t.Errorf("ClassifyScalar(datetime with offset).Kind = %v; want ScalarDateTime", sv.Kind)
	}
	if sv := ClassifyScalar([]byte("3d")); sv.Kind != ScalarDuration {
		t.Errorf("ClassifyScalar(3d).Kind = %v; want ScalarDuration", sv.Kind)
	}
	if sv := ClassifyScalar([]byte("P3DT4H")); sv.Kind != ScalarDuration {
		t.Errorf("ClassifyScalar(P3DT4H).Kind = %v; want ScalarDuration", sv.Kind)
	}
	if sv := ClassifyScalar([]byte("+3d")); sv.Kind != ScalarRelativeTime {
		t.Errorf("ClassifyScalar(+3d).Kind = %v; want ScalarRelativeTime", sv.Kind)
	}
	if sv := ClassifyScalar([]byte("-2w")); sv.Kind != ScalarRelativeTime {
		t.Errorf("ClassifyScalar(-2w).Kind = %v; want ScalarRelativeTime", sv.Kind)
	}
}

func TestClassifyScalarFallsBackToString(t *testing.T) {
	for _, s := range []string{"hello", "True", "", "3/4", "0x", "P", "PT"} {
		if sv := ClassifyScalar([]byte(s)); sv.Kind != ScalarString {
			t.Errorf("ClassifyScalar(%q).Kind = %v; want ScalarString", s, sv.Kind)
		}
	}
}

func TestClassifyScalarOrderPrecedence(t *testing.T) {
	// "5i" ends in 'i' and must classify as Complex, never as a String
	// that happens to look like a based-integer or duration suffix.
	if sv := ClassifyScalar([]byte("5i")); sv.Kind != ScalarComplex {
		t.Errorf("ClassifyScalar(5i).Kind = %v; want ScalarComplex (rule 3 before rule 5-7)", sv.Kind)
	}
}
