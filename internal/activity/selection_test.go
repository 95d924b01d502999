package activity

import "testing"

func TestStepWraps(t *testing.T) {
	cases := []struct {
		index, delta, count, want int
	}{
		{0, -1, 5, 4},
		{4, 1, 5, 0},
		{2, 1, 5, 3},
		{0, 1, 1, 0},
		{3, -1, 0, 0},
		{7, 1, 3, 1}, // stale index is clamped first
	}
	for _, tc := range cases {
		if got := Step(tc.index, tc.delta, tc.count); got != tc.want {
			t.Errorf("Step(%d, %d, %d) = %d, want %d", tc.index, tc.delta, tc.count, got, tc.want)
		}
	}
}

func TestStepStaysInRange(t *testing.T) {
	for count := 1; count <= 12; count++ {
		index := 0
		for i := 0; i < 50; i++ {
			delta := 1
			if i%3 == 0 {
				delta = -1
			}
			index = Step(index, delta, count)
			if index < 0 || index >= count {
				t.Fatalf("count %d: index %d out of range", count, index)
			}
		}
	}
}

func TestPageStep(t *testing.T) {
	// 10 entries, pages of 4: [0-3] [4-7] [8-9]
	if got := PageStep(1, 4, 10, true); got != 4 {
		t.Fatalf("expected next page start 4, got %d", got)
	}
	if got := PageStep(9, 4, 10, true); got != 0 {
		t.Fatalf("expected wrap to first page, got %d", got)
	}
	if got := PageStep(2, 4, 10, false); got != 8 {
		t.Fatalf("expected wrap to last page, got %d", got)
	}
	if got := PageStep(6, 4, 10, false); got != 0 {
		t.Fatalf("expected previous page start 0, got %d", got)
	}
	if got := PageStep(3, 4, 0, true); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}

func TestPageStepStaysInRange(t *testing.T) {
	for count := 1; count <= 20; count++ {
		for pageSize := 0; pageSize <= 6; pageSize++ {
			index := 0
			for i := 0; i < 10; i++ {
				index = PageStep(index, pageSize, count, i%2 == 0)
				if index < 0 || index >= count {
					t.Fatalf("count %d page %d: index %d out of range", count, pageSize, index)
				}
			}
		}
	}
}

func TestPageSize(t *testing.T) {
	if got := PageSize(500, 56); got != 8 {
		t.Fatalf("expected 8 rows, got %d", got)
	}
	if got := PageSize(10, 56); got != 1 {
		t.Fatalf("expected at least one row, got %d", got)
	}
	if got := PageSize(100, 0); got != 1 {
		t.Fatalf("expected 1 for zero row height, got %d", got)
	}
}
