package misc

import (
	"time"
)

// CircularQueue keeps the last len(Data) items, overwriting the oldest.
type CircularQueue[T any] struct {
	Start  int
	Length int
	Data   []T
}

func NewCircularQueue[T any](size int) CircularQueue[T] {
	return CircularQueue[T]{
		Data: make([]T, max(size, 1)),
	}
}

func (q *CircularQueue[T]) IsFull() bool {
	return q.Length >= len(q.Data)
}

func (q *CircularQueue[T]) Enqueue(item T) {
	if q.IsFull() {
		q.Data[q.Start] = item
		q.Start = (q.Start + 1) % len(q.Data)
		return
	}

	q.Data[(q.Start+q.Length)%len(q.Data)] = item
	q.Length++
}

// At returns the index-th oldest item.
func (q *CircularQueue[T]) At(index int) T {
	return q.Data[(q.Start+index)%len(q.Data)]
}

func (q *CircularQueue[T]) Clear() {
	q.Length = 0
	q.Start = 0
}

// FrameStats tracks how long the last few ticks spent shading.
type FrameStats struct {
	samples CircularQueue[time.Duration]
}

func NewFrameStats(window int) *FrameStats {
	return &FrameStats{samples: NewCircularQueue[time.Duration](window)}
}

func (fs *FrameStats) Add(d time.Duration) {
	fs.samples.Enqueue(d)
}

// Average and Max return 0 with no samples.
func (fs *FrameStats) Average() time.Duration {
	if fs.samples.Length == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < fs.samples.Length; i++ {
		total += fs.samples.At(i)
	}
	return total / time.Duration(fs.samples.Length)
}

func (fs *FrameStats) Max() time.Duration {
	var m time.Duration
	for i := 0; i < fs.samples.Length; i++ {
		m = max(m, fs.samples.At(i))
	}
	return m
}
