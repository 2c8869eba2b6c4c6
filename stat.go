package main

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Stat is a numeric CSV field validated once at load time.
// Valid is false when the source text had no leading number.
type Stat struct {
	Value float64
	Valid bool
}

var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseStat reads the longest numeric prefix of s, so "30.2 pts" is 30.2
// and "abc" or "" is invalid. Leading whitespace and a BOM are ignored.
func ParseStat(s string) Stat {
	s = strings.TrimLeftFunc(s, isLeadingSpace)
	m := numericPrefix.FindString(s)
	if m == "" {
		return Stat{}
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		var numErr *strconv.NumError
		// Overflow still yields ±Inf, which counts as a number.
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return Stat{}
		}
	}
	if math.IsNaN(v) {
		return Stat{}
	}
	return Stat{Value: v, Valid: true}
}

// MarshalJSON encodes an invalid Stat as null.
func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Valid || math.IsInf(s.Value, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON accepts a number or null.
func (s *Stat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = Stat{}
		return nil
	}
	if err := json.Unmarshal(b, &s.Value); err != nil {
		return err
	}
	s.Valid = true
	return nil
}

// isLeadingSpace matches what a browser's parseFloat skips, including the
// byte-order mark.
func isLeadingSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}
