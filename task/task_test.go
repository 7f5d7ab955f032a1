package task

import (
	"fmt"
	"testing"
)

func checkPartition(t *testing.T, height uint, threadCount uint, ranges []RowRange) {
	t.Helper()
	if uint(len(ranges)) != threadCount {
		t.Fatalf("got %d ranges, want %d", len(ranges), threadCount)
	}
	var next uint
	var covered uint
	for i, r := range ranges {
		if r.Begin > r.End {
			t.Fatalf("range %d %s is reversed", i, r)
		}
		if r.Begin != next {
			t.Fatalf("range %d %s does not start where range %d ended (%d)", i, r, i-1, next)
		}
		next = r.End
		covered += r.Len()
	}
	if next != height || covered != height {
		t.Fatalf("ranges cover [0, %d) with %d rows, want [0, %d)", next, covered, height)
	}
}

func TestPartitionCoversEveryRowOnce(t *testing.T) {
	for _, height := range []uint{1, 2, 3, 4, 7, 100, 500, 1081} {
		for _, threadCount := range []uint{1, 2, 3, 4, 8, 10, 64, 2000} {
			t.Run(fmt.Sprintf("%d rows %d threads", height, threadCount), func(t *testing.T) {
				checkPartition(t, height, threadCount, Partition(height, threadCount))
			})
		}
	}
}

func TestPartitionSingleThread(t *testing.T) {
	ranges := Partition(500, 1)
	if len(ranges) != 1 || ranges[0] != (RowRange{Begin: 0, End: 500}) {
		t.Errorf("Partition(500, 1) = %v, want [[0, 500)]", ranges)
	}
}

func TestPartitionLastRangeTakesRemainder(t *testing.T) {
	want := []RowRange{{0, 3}, {3, 6}, {6, 10}}
	got := Partition(10, 3)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("range %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPartitionTwoByFour(t *testing.T) {
	got := Partition(4, 2)
	if got[0] != (RowRange{0, 2}) || got[1] != (RowRange{2, 4}) {
		t.Errorf("Partition(4, 2) = %v, want [[0, 2) [2, 4)]", got)
	}
}

func TestPartitionMoreThreadsThanRows(t *testing.T) {
	got := Partition(3, 10)
	for i := 0; i < 9; i++ {
		if !got[i].Empty() {
			t.Errorf("range %d = %s, want empty", i, got[i])
		}
	}
	if got[9] != (RowRange{0, 3}) {
		t.Errorf("last range = %s, want [0, 3)", got[9])
	}
}

func TestPartitionNoThreads(t *testing.T) {
	if got := Partition(10, 0); got != nil {
		t.Errorf("Partition(10, 0) = %v, want nil", got)
	}
}

func TestRowRange(t *testing.T) {
	r := RowRange{Begin: 2, End: 5}
	if r.Len() != 3 || r.Empty() {
		t.Errorf("%s: Len = %d, Empty = %t", r, r.Len(), r.Empty())
	}
	if !r.Contains(2) || !r.Contains(4) || r.Contains(5) || r.Contains(1) {
		t.Errorf("%s: Contains is not half open", r)
	}
	if r.String() != "[2, 5)" {
		t.Errorf("String() = %q", r.String())
	}
	empty := RowRange{Begin: 4, End: 4}
	if !empty.Empty() || empty.Contains(4) {
		t.Errorf("%s should be empty", empty)
	}
}

func TestIdle(t *testing.T) {
	tests := []struct {
		height      uint
		threadCount uint
		want        uint
	}{
		{3, 10, 9},
		{1, 4, 3},
		{10, 3, 0},
		{4, 4, 0},
		{5, 4, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d rows %d threads", tt.height, tt.threadCount), func(t *testing.T) {
			if got := Idle(Partition(tt.height, tt.threadCount)); got != tt.want {
				t.Errorf("Idle = %d, want %d", got, tt.want)
			}
		})
	}
}
