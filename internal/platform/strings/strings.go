// Package strings provides small string helpers shared across services
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Squash lowercases s and collapses runs of whitespace into single spaces.
// Used anywhere a normalized cache key or comparison string is needed
func Squash(s string) string {
	return std.Join(std.Fields(std.ToLower(s)), " ")
}
