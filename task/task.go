package task

import "fmt"

// RowRange is the half open row interval [Begin, End) handed to one worker.
type RowRange struct {
	Begin uint
	End   uint
}

func (r RowRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Begin, r.End)
}

func (r RowRange) Len() uint {
	if r.End < r.Begin {
		return 0
	}
	return r.End - r.Begin
}

func (r RowRange) Empty() bool {
	return r.Len() == 0
}

func (r RowRange) Contains(row uint) bool {
	return row >= r.Begin && row < r.End
}

// Partition splits [0, height) into threadCount contiguous ranges. Every
// range but the last has height/threadCount rows; the last one absorbs the
// remainder. When threadCount exceeds height the leading ranges are empty.
func Partition(height uint, threadCount uint) []RowRange {
	if threadCount == 0 {
		return nil
	}

	baseSize := height / threadCount
	ranges := make([]RowRange, threadCount)
	var i uint
	for i = 0; i < threadCount; i++ {
		ranges[i].Begin = i * baseSize
		if i == threadCount-1 {
			ranges[i].End = height
		} else {
			ranges[i].End = baseSize * (i + 1)
		}
	}
	return ranges
}

// Idle counts the ranges that carry no rows.
func Idle(ranges []RowRange) uint {
	var idle uint
	for _, r := range ranges {
		if r.Empty() {
			idle++
		}
	}
	return idle
}
