package compose

import "testing"

func TestBatches(t *testing.T) {
	tests := []struct {
		pairs, perPage int
		sizes          []int
	}{
		{10, 9, []int{9, 1}},
		{9, 9, []int{9}},
		{1, 9, []int{1}},
		{20, 4, []int{4, 4, 4, 4, 4}},
		{0, 9, nil},
	}

	for _, tt := range tests {
		batches := Batches(makePairs(tt.pairs), tt.perPage)
		if len(batches) != len(tt.sizes) {
			t.Errorf("Batches(%d, %d) = %d batches, want %d", tt.pairs, tt.perPage, len(batches), len(tt.sizes))
			continue
		}
		start := 0
		for i, b := range batches {
			if len(b.Pairs) != tt.sizes[i] || b.Index != i || b.Start != start {
				t.Errorf("Batches(%d, %d)[%d] = {Index %d Start %d len %d}, want {%d %d %d}",
					tt.pairs, tt.perPage, i, b.Index, b.Start, len(b.Pairs), i, start, tt.sizes[i])
			}
			start += len(b.Pairs)
		}
	}
}

func TestBatchesPreservesOrder(t *testing.T) {
	pairs := makePairs(5)
	batches := Batches(pairs, 2)
	if batches[2].Pairs[0] != pairs[4] {
		t.Errorf("last batch holds %v, want pair 4", batches[2].Pairs[0])
	}
	if got := batches[1].Image(1, Back); got != pairs[3].Back {
		t.Errorf("Image(1, Back) = %v, want %v", got, pairs[3].Back)
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct{ n, perPage, want int }{
		{10, 9, 4},
		{9, 9, 2},
		{1, 9, 2},
		{18, 9, 4},
		{19, 9, 6},
		{0, 9, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := PageCount(tt.n, tt.perPage); got != tt.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tt.n, tt.perPage, got, tt.want)
		}
	}
}

func TestSideString(t *testing.T) {
	if Front.String() != "front" || Back.String() != "back" {
		t.Errorf("Side strings = %q, %q", Front, Back)
	}
}
