package mapx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClone(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := Clone[string, int](nil)
		assert.Nil(t, got)
	})

	t.Run("empty_returns_empty", func(t *testing.T) {
		t.Parallel()

		got := Clone(map[string]int{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("shallow_copy", func(t *testing.T) {
		t.Parallel()

		src := map[string]int{"a": 1, "b": 2}
		got := Clone(src)
		assert.Equal(t, src, got)

		// Mutation independence.
		got["c"] = 3

		assert.NotContains(t, src, "c")
	})
}

func TestMergeAdditive(t *testing.T) {
	t.Parallel()

	t.Run("nil_src_no_op", func(t *testing.T) {
		t.Parallel()

		dst := map[string]int{"a": 1}
		MergeAdditive(dst, nil)
		assert.Equal(t, map[string]int{"a": 1}, dst)
	})

	t.Run("nil_dst_no_panic", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() {
			MergeAdditive(nil, map[string]int{"a": 1})
		})
	})

	t.Run("additive_int", func(t *testing.T) {
		t.Parallel()

		dst := map[string]int{"a": 1, "b": 2}
		src := map[string]int{"b": 3, "c": 4}
		MergeAdditive(dst, src)

		assert.Equal(t, 1, dst["a"])
		assert.Equal(t, 5, dst["b"])
		assert.Equal(t, 4, dst["c"])
	})

	t.Run("additive_hourly_counts", func(t *testing.T) {
		t.Parallel()

		dst := map[int]int{8: 12, 9: 7}
		src := map[int]int{9: 3, 17: 21}
		MergeAdditive(dst, src)

		assert.Equal(t, 12, dst[8])
		assert.Equal(t, 10, dst[9])
		assert.Equal(t, 21, dst[17])
	})

	t.Run("additive_float64", func(t *testing.T) {
		t.Parallel()

		dst := map[string]float64{"x": 1.5}
		src := map[string]float64{"x": 2.5, "y": 3.0}
		MergeAdditive(dst, src)

		assert.InDelta(t, 4.0, dst["x"], 0.0001)
		assert.InDelta(t, 3.0, dst["y"], 0.0001)
	})
}

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := SortedKeys[int, any](nil)
		assert.Nil(t, got)
	})

	t.Run("empty_returns_empty", func(t *testing.T) {
		t.Parallel()

		got := SortedKeys(map[int]string{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("int_keys_sorted", func(t *testing.T) {
		t.Parallel()

		m := map[int]string{3: "c", 1: "a", 2: "b"}
		got := SortedKeys(m)
		assert.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("string_keys_sorted", func(t *testing.T) {
		t.Parallel()

		m := map[string]int{"banana": 2, "apple": 1, "cherry": 3}
		got := SortedKeys(m)
		assert.Equal(t, []string{"apple", "banana", "cherry"}, got)
	})
}

func TestUnique(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := Unique[string](nil)
		assert.Nil(t, got)
	})

	t.Run("empty_returns_empty", func(t *testing.T) {
		t.Parallel()

		got := Unique([]string{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("first_occurrence_wins", func(t *testing.T) {
		t.Parallel()

		got := Unique([]string{"b", "a", "b", "c", "a"})
		assert.Equal(t, []string{"b", "a", "c"}, got)
	})

	t.Run("no_duplicates_unchanged", func(t *testing.T) {
		t.Parallel()

		got := Unique([]int{3, 1, 2})
		assert.Equal(t, []int{3, 1, 2}, got)
	})
}
