package slices

import (
	originSlices "slices"
	"strings"

	"golang.org/x/exp/constraints"
)

// Compact drops zero values ("", 0, false) while keeping order.
func Compact[T comparable](list []T) []T {
	result := make([]T, 0, len(list))
	var zero T
	for _, v := range list {
		if v == zero {
			continue
		}
		result = append(result, v)
	}
	return result
}

// Unique keeps the first occurrence of every value.
func Unique[T comparable](list []T) []T {
	result := make([]T, 0, len(list))
	seen := make(map[T]struct{}, len(list))
	for _, v := range list {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// UniqueFold is Unique for strings compared case-insensitively, ignoring blanks.
func UniqueFold(list []string) []string {
	result := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, v)
	}
	return result
}

func ContainsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// EqualUnordered reports whether a and b hold the same values with the same multiplicity.
func EqualUnordered[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[T]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}

// Standardize returns a sorted set of the non-zero values of list.
func Standardize[T constraints.Ordered](list []T) []T {
	result := Unique(Compact(list))
	originSlices.Sort(result)
	return result
}
