// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert parses text form values into typed values with defaults.

Multipart forms carry every field as a string. An empty value means "use the
default"; a non-empty value that does not parse is reported so the caller can
answer with a validation error instead of silently storing zero.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToFloat64D parses s as a float64, returning def when s is blank.
func ToFloat64D(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

// ToIntD parses s as an int, returning def when s is blank.
func ToIntD(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// ToBoolD parses s as a bool, returning def when s is blank.
func ToBoolD(s string, def bool) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.ParseBool(s)
}

// StringD returns the trimmed s, or def when s is blank.
func StringD(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
