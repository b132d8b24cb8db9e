// Package mapx provides generic map and slice helpers: clone, merge,
// sorted-key extraction, and order-preserving deduplication.
package mapx

import (
	"cmp"
	stdmaps "maps"
	"slices"
)

// Numeric is the constraint for types that support the += operator.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Clone returns a shallow copy of m.
// Returns nil for a nil map.
func Clone[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}

	clone := make(map[K]V, len(m))
	stdmaps.Copy(clone, m)

	return clone
}

// MergeAdditive additively merges src into dst: dst[k] += src[k] for every key in src.
// If dst is nil, this is a no-op.
func MergeAdditive[K comparable, V Numeric](dst, src map[K]V) {
	if dst == nil {
		return
	}

	for k, v := range src {
		dst[k] += v
	}
}

// SortedKeys returns the keys of m in sorted order.
// Returns nil for a nil map.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	if m == nil {
		return nil
	}

	keys := make([]K, 0, len(m))

	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Unique returns a new slice containing only the first occurrence of each element.
// Insertion order is preserved. Returns nil for a nil slice.
func Unique[T comparable](s []T) []T {
	if s == nil {
		return nil
	}

	seen := make(map[T]struct{}, len(s))
	result := make([]T, 0, len(s))

	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
