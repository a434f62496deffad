package sequence

import "testing"

func TestEstimateDistinctExactForSmallSets(t *testing.T) {
	tests := []struct {
		col  Indices
		want int
	}{
		{nil, 0},
		{Indices{1}, 1},
		{Indices{1, 1, 1}, 1},
		{Indices{1, 2, 3, 4, 5}, 5},
		{Indices{7, 7, 8, 8, 9}, 3},
	}
	for _, tt := range tests {
		got := estimateDistinct(tt.col)
		if got != tt.want {
			t.Errorf("estimateDistinct(%v) = %d, want %d", tt.col, got, tt.want)
		}
	}
}

func TestEstimateDistinctNeverOvercounts(t *testing.T) {
	col := make(Indices, 0, 1000)
	for i := 0; i < 1000; i++ {
		col = append(col, Index(i%50))
	}
	got := estimateDistinct(col)
	if got > 50 {
		t.Errorf("estimateDistinct overcounted: got %d, want <= 50", got)
	}
	if got == 0 {
		t.Error("estimateDistinct undercounted to zero on a non-empty column")
	}
}

func TestEstimateDistinctMonotoneUnderAddingDuplicates(t *testing.T) {
	base := estimateDistinct(Indices{1, 2, 3})
	withDupes := estimateDistinct(Indices{1, 1, 2, 2, 3, 3})
	if withDupes != base {
		t.Errorf("duplicate values changed the estimate: %d vs %d", withDupes, base)
	}
}
