// ABOUTME: Tests for randomization primitives.
// ABOUTME: Uses fixed seeds so sampling assertions are reproducible.
package random

import (
	"slices"
	"testing"
)

func TestShuffleIsPermutation(t *testing.T) {
	r := NewSeeded(1, 2)
	list := []int{1, 2, 3, 4, 5, 6, 7, 8}
	got := Shuffle(r, list)

	if &got[0] != &list[0] {
		t.Error("Shuffle should return the same slice")
	}

	sorted := slices.Clone(got)
	slices.Sort(sorted)
	if !slices.Equal(sorted, []int{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("Shuffle lost elements: %v", got)
	}
}

func TestShuffleEmpty(t *testing.T) {
	r := NewSeeded(1, 2)
	if got := Shuffle(r, []string{}); len(got) != 0 {
		t.Errorf("Shuffle(empty) = %v, want empty", got)
	}
}

func TestSampleUnique(t *testing.T) {
	list := []string{"a", "b", "c", "d"}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"negative", -1, 0},
		{"zero", 0, 0},
		{"fewer", 2, 2},
		{"exact", 4, 4},
		{"more than available", 10, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSeeded(7, 7)
			got := SampleUnique(r, list, tt.n)
			if len(got) != tt.want {
				t.Fatalf("SampleUnique(n=%d) len = %d, want %d", tt.n, len(got), tt.want)
			}

			seen := make(map[string]bool)
			for _, v := range got {
				if seen[v] {
					t.Errorf("duplicate element %q in %v", v, got)
				}
				seen[v] = true
				if !slices.Contains(list, v) {
					t.Errorf("unexpected element %q", v)
				}
			}
		})
	}

	if !slices.Equal(list, []string{"a", "b", "c", "d"}) {
		t.Errorf("SampleUnique modified its input: %v", list)
	}
}

func TestSampleUniqueVariesOrder(t *testing.T) {
	r := NewSeeded(42, 0)
	list := []int{1, 2, 3, 4, 5, 6}
	first := SampleUnique(r, list, 6)
	for i := 0; i < 50; i++ {
		if !slices.Equal(first, SampleUnique(r, list, 6)) {
			return
		}
	}
	t.Error("SampleUnique returned the same order 50 times in a row")
}

func TestIntInclusive(t *testing.T) {
	r := NewSeeded(3, 4)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := r.IntInclusive(2, 5)
		if v < 2 || v > 5 {
			t.Fatalf("IntInclusive(2, 5) = %d, out of range", v)
		}
		seen[v] = true
	}
	for v := 2; v <= 5; v++ {
		if !seen[v] {
			t.Errorf("IntInclusive(2, 5) never produced %d", v)
		}
	}
}

func TestIntInclusiveDegenerate(t *testing.T) {
	r := NewSeeded(3, 4)
	if got := r.IntInclusive(3, 3); got != 3 {
		t.Errorf("IntInclusive(3, 3) = %d, want 3", got)
	}
}

func TestIntInclusiveSwappedBounds(t *testing.T) {
	r := NewSeeded(3, 4)
	for i := 0; i < 100; i++ {
		v := r.IntInclusive(5, 2)
		if v < 2 || v > 5 {
			t.Fatalf("IntInclusive(5, 2) = %d, out of range", v)
		}
	}
}

func TestRepeatToLength(t *testing.T) {
	tests := []struct {
		name   string
		list   []string
		length int
		want   []string
	}{
		{"shorter", []string{"a", "b", "c"}, 2, []string{"a", "b"}},
		{"cycles", []string{"a", "b"}, 5, []string{"a", "b", "a", "b", "a"}},
		{"exact", []string{"a", "b"}, 2, []string{"a", "b"}},
		{"zero length", []string{"a"}, 0, []string{}},
		{"empty list", nil, 3, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RepeatToLength(tt.list, tt.length)
			if !slices.Equal(got, tt.want) {
				t.Errorf("RepeatToLength(%v, %d) = %v, want %v", tt.list, tt.length, got, tt.want)
			}
		})
	}
}
