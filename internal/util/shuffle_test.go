package util

import "testing"

func TestShuffleInPlaceKeepsAllElements(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	ShuffleInPlace(items)

	if len(items) != 8 {
		t.Fatalf("len = %d, want 8", len(items))
	}
	seen := map[int]bool{}
	for _, v := range items {
		seen[v] = true
	}
	for i := 1; i <= 8; i++ {
		if !seen[i] {
			t.Errorf("element %d lost after shuffle", i)
		}
	}
}

func TestShuffleInPlaceEmptyAndSingle(t *testing.T) {
	ShuffleInPlace([]string{})

	one := []string{"only"}
	ShuffleInPlace(one)
	if one[0] != "only" {
		t.Errorf("single element changed: %v", one)
	}
}
