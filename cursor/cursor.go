// Package cursor provides CursorList, the ordered-sequence-with-pointer
// abstraction shared by the menu and fuzzy-finder reference applications.
package cursor

// List is an ordered sequence of T with an internal pointer in [0, len).
// Cyclic controls whether Advance/Retreat wrap around or clamp at the ends.
// The zero value is an empty, non-cyclic list.
type List[T any] struct {
	items   []T
	pointer int
	cyclic  bool
}

// New creates a List over items. When cyclic is true, Advance/Retreat wrap
// around; when false, they clamp at the first/last element.
func New[T any](items []T, cyclic bool) *List[T] {
	return &List[T]{items: items, cyclic: cyclic}
}

// Len returns the number of items.
func (l *List[T]) Len() int { return len(l.items) }

// Items returns the underlying slice. Callers must not retain it across a
// mutation of the list.
func (l *List[T]) Items() []T { return l.items }

// At returns the item at index i.
func (l *List[T]) At(i int) T { return l.items[i] }

// Pointer returns the current pointer.
func (l *List[T]) Pointer() int { return l.pointer }

// Current returns the item at the current pointer. Panics on an empty list,
// same as indexing an empty slice — callers must check Len first.
func (l *List[T]) Current() T { return l.items[l.pointer] }

// SetPointer assigns the pointer directly, clamping to len-1 if it would
// overshoot. On an empty list the pointer stays 0.
func (l *List[T]) SetPointer(p int) {
	if n := len(l.items); n == 0 {
		l.pointer = 0
	} else if p >= n {
		l.pointer = n - 1
	} else if p < 0 {
		l.pointer = 0
	} else {
		l.pointer = p
	}
}

// Advance moves the pointer forward by n. On an empty list this is a no-op.
// Cyclic lists wrap modulo length; non-cyclic lists clamp at len-1.
func (l *List[T]) Advance(n int) int {
	size := len(l.items)
	if size == 0 {
		return l.pointer
	}
	next := l.pointer + n
	if next+1 > size {
		if l.cyclic {
			l.pointer = mod(next, size)
		} else {
			l.pointer = size - 1
		}
	} else {
		l.pointer = next
	}
	return l.pointer
}

// Retreat moves the pointer backward by n, mirroring Advance.
func (l *List[T]) Retreat(n int) int {
	size := len(l.items)
	if size == 0 {
		return l.pointer
	}
	prev := l.pointer - n
	if prev < 0 {
		if l.cyclic {
			l.pointer = mod(prev, size)
		} else {
			l.pointer = 0
		}
	} else {
		l.pointer = prev
	}
	return l.pointer
}

// AtEnd reports whether the list is non-cyclic and the pointer is on the
// last element.
func (l *List[T]) AtEnd() bool {
	return !l.cyclic && len(l.items) > 0 && l.pointer == len(l.items)-1
}

// mod returns the non-negative remainder of n/size, for size > 0.
func mod(n, size int) int {
	r := n % size
	if r < 0 {
		r += size
	}
	return r
}
