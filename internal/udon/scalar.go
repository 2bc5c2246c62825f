// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Scalar value recognizer (C3): classifies a byte span known to be a
// value lexeme into one of the kinds enumerated in spec.md 4.3, in the
// mandated rule order, first match wins. Grounded on the implicit
// tag-resolution precedence (null/bool/int/float/timestamp/str) in the
// teacher's Resolver and the checked-overflow numeric parsing idiom in
// constructInt/constructFloat/constructTimestamp (internal/libyaml/
// constructor.go).

package udon

import (
	"regexp"
	"strconv"
	"strings"
)

// ScalarKind is the discriminated classification of a scalar lexeme.
type ScalarKind int

const (
	ScalarString ScalarKind = iota
	ScalarNil
	ScalarBool
	ScalarInteger
	ScalarFloat
	ScalarRational
	ScalarComplex
	ScalarDate
	ScalarTime
	ScalarDateTime
	ScalarDuration
	ScalarRelativeTime
)

// ScalarValue is the decoded result of classifying a lexeme. For
// ScalarDate/Time/DateTime/Duration/RelativeTime/String the original
// bytes are the payload (spec.md 6.2 carries these as raw bytes); the
// other kinds carry a decoded numeric/boolean value.
type ScalarValue struct {
	Kind ScalarKind

	Bool  bool
	Int   int64
	Float float64

	RatNum, RatDen int64
	Re, Im         float64
}

var (
	dateRe     = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}(-[0-9]{2})?$`)
	timeRe     = regexp.MustCompile(`^[0-9]{2}:[0-9]{2}(:[0-9]{2}(\.[0-9]+)?)?$`)
	dateTimeRe = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}(:[0-9]{2}(\.[0-9]+)?)?(Z|[+-][0-9]{2}:[0-9]{2})?$`)

	shorthandDurationRe = regexp.MustCompile(`^[0-9][0-9_]*(mo|[smhdwy])$`)
	isoDurationRe       = regexp.MustCompile(`^P(?:[0-9]+Y)?(?:[0-9]+M)?(?:[0-9]+W)?(?:[0-9]+D)?(?:T(?:[0-9]+H)?(?:[0-9]+M)?(?:[0-9]+S)?)?$`)
)

// ClassifyScalar applies the rules of spec.md 4.3 in order and returns
// the first match. The recognizer never consumes input outside b; the
// caller is expected to have already isolated the lexeme (unquoted
// token or quote interior).
func ClassifyScalar(b []byte) ScalarValue {
	s := string(b)

	if s == "null" || s == "nil" || s == "~" {
		return ScalarValue{Kind: ScalarNil}
	}

	if s == "true" {
		return ScalarValue{Kind: ScalarBool, Bool: true}
	}
	if s == "false" {
		return ScalarValue{Kind: ScalarBool, Bool: false}
	}

	if re, im, ok := classifyComplex(s); ok {
		return ScalarValue{Kind: ScalarComplex, Re: re, Im: im}
	}

	if num, den, ok := classifyRational(s); ok {
		return ScalarValue{Kind: ScalarRational, RatNum: num, RatDen: den}
	}

	if v, ok := classifyBasedInteger(s); ok {
		return ScalarValue{Kind: ScalarInteger, Int: v}
	}

	if v, ok := classifyFloat(s); ok {
		return ScalarValue{Kind: ScalarFloat, Float: v}
	}

	if v, ok := classifyDecimalInteger(s); ok {
		return ScalarValue{Kind: ScalarInteger, Int: v}
	}

	if dateTimeRe.MatchString(s) {
		return ScalarValue{Kind: ScalarDateTime}
	}
	if dateRe.MatchString(s) {
		return ScalarValue{Kind: ScalarDate}
	}
	if timeRe.MatchString(s) {
		return ScalarValue{Kind: ScalarTime}
	}

	if isDuration(s) {
		return ScalarValue{Kind: ScalarDuration}
	}

	if (strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")) && isDuration(s[1:]) {
		return ScalarValue{Kind: ScalarRelativeTime}
	}

	return ScalarValue{Kind: ScalarString}
}

func isDuration(s string) bool {
	if s == "" {
		return false
	}
	if s == "P" || s == "PT" {
		return false
	}
	return shorthandDurationRe.MatchString(s) || isoDurationRe.MatchString(s)
}

// classifyComplex implements rule 3: last byte is 'i'; an optional
// real±imag split where the sign is not in exponent position.
func classifyComplex(s string) (re, im float64, ok bool) {
	if len(s) < 2 || s[len(s)-1] != 'i' {
		return 0, 0, false
	}
	body := s[:len(s)-1]
	if body == "" {
		return 0, 0, false
	}

	splitIdx := -1
	for i := 1; i < len(body); i++ {
		c := body[i]
		if c != '+' && c != '-' {
			continue
		}
		if body[i-1] == 'e' || body[i-1] == 'E' {
			continue
		}
		splitIdx = i
		break
	}

	var realStr, imagStr string
	if splitIdx == -1 {
		realStr, imagStr = "0", body
	} else {
		realStr, imagStr = body[:splitIdx], body[splitIdx:]
	}

	reVal, err := strconv.ParseFloat(stripUnderscores(realStr), 64)
	if err != nil {
		return 0, 0, false
	}
	imVal, err := strconv.ParseFloat(stripUnderscores(imagStr), 64)
	if err != nil {
		return 0, 0, false
	}
	return reVal, imVal, true
}

// classifyRational implements rule 4.
func classifyRational(s string) (num, den int64, ok bool) {
	if len(s) < 2 || s[len(s)-1] != 'r' {
		return 0, 0, false
	}
	body := s[:len(s)-1]
	slash := strings.IndexByte(body, '/')
	if slash < 0 {
		return 0, 0, false
	}
	n, err := strconv.ParseInt(stripUnderscores(body[:slash]), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	d, err := strconv.ParseInt(stripUnderscores(body[slash+1:]), 10, 64)
	if err != nil || d <= 0 {
		return 0, 0, false
	}
	return n, d, true
}

// classifyBasedInteger implements rule 5: optional '-' then an explicit
// 0x/0o/0b/0d prefix.
func classifyBasedInteger(s string) (int64, bool) {
	neg := false
	rest := s
	if strings.HasPrefix(rest, "-") {
		neg = true
		rest = rest[1:]
	}
	if len(rest) < 3 {
		return 0, false
	}

	var base int
	switch strings.ToLower(rest[:2]) {
	case "0x":
		base = 16
	case "0o":
		base = 8
	case "0b":
		base = 2
	case "0d":
		base = 10
	default:
		return 0, false
	}

	digits := stripUnderscores(rest[2:])
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, false
	}
	if v > 1<<63 || (!neg && v > 1<<63-1) {
		return 0, false
	}
	iv := int64(v)
	if neg {
		iv = -iv
	}
	return iv, true
}

// classifyFloat implements rule 6.
func classifyFloat(s string) (float64, bool) {
	if !strings.ContainsAny(s, ".eE") {
		return 0, false
	}
	v, err := strconv.ParseFloat(stripUnderscores(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// classifyDecimalInteger implements rule 7.
func classifyDecimalInteger(s string) (int64, bool) {
	if s == "" || s == "-" {
		return 0, false
	}
	rest := s
	if rest[0] == '-' {
		rest = rest[1:]
	} else if rest[0] == '+' {
		return 0, false
	}
	if rest == "" {
		return 0, false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] != '_' && (rest[i] < '0' || rest[i] > '9') {
			return 0, false
		}
	}
	v, err := strconv.ParseInt(stripUnderscores(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func stripUnderscores(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	return strings.ReplaceAll(s, "_", "")
}
