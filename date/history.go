package date

import "slices"

// History is a series of values, at most one per day, kept in chronological
// order. The zero History is empty and ready to use.
type History[T any] struct {
	points []point[T]
}

type point[T any] struct {
	day   Date
	value T
}

// Len returns the number of days with a value.
func (h *History[T]) Len() int { return len(h.points) }

// Set records the value of a day, replacing any previous value of that day.
func (h *History[T]) Set(day Date, value T) {
	i, found := slices.BinarySearchFunc(h.points, day, func(p point[T], d Date) int { return p.day.Compare(d) })
	if found {
		h.points[i].value = value
		return
	}
	h.points = slices.Insert(h.points, i, point[T]{day, value})
}

// Latest returns the most recent day and its value, or zero values when the
// history is empty.
func (h *History[T]) Latest() (Date, T) {
	if len(h.points) == 0 {
		var zero T
		return Date{}, zero
	}
	p := h.points[len(h.points)-1]
	return p.day, p.value
}
