// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query splits list-valued request fields.
package query

import "strings"

// StringSlice parses a single comma-separated value into a trimmed slice of
// strings. Empty entries are dropped; a blank input yields an empty, non-nil slice.
func StringSlice(val string) []string {
	res := make([]string, 0)
	for _, v := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(v); clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
