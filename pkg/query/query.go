// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query reads typed values from URL query strings and form values.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Strings collects every value of key. Repeated keys and comma separated
// values are both accepted: "?tags=A&tags=B" and "?tags=A,B" are equivalent.
// Blank entries are dropped.
func Strings(values url.Values, key string) []string {
	var result []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if clean := strings.TrimSpace(part); clean != "" {
				result = append(result, clean)
			}
		}
	}
	return result
}

// Int parses key as an integer, returning def when absent or malformed.
func Int(values url.Values, key string, def int) int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return def
	}

	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}

	return def
}
