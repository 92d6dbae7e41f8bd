// Package utils holds query-string helpers shared by the HTTP handlers.
package utils

import (
	"strconv"
	"strings"
)

// ClampLimit parses a "limit" query value into [1, max]. Blank, malformed or
// non-positive input yields def; def itself is clamped too. max <= 0 means
// no upper bound.
//
//	utils.ClampLimit("", 50, 200)    // 50
//	utils.ClampLimit("500", 50, 200) // 200
//	utils.ClampLimit("-3", 50, 200)  // 50
func ClampLimit(s string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		n = def
	}
	if n < 1 {
		n = 1
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}
