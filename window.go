package tcodec

// Window is a fixed-capacity view over an element array with a valid range
// [start, end). The array is allocated once, by the caller; codec steps only
// move the cursors, consuming elements from the front of an input window and
// producing elements at the back of an output window.
//
// Windows have value semantics: mutating methods return the updated window
// and codec steps return the windows they were given, updated. The backing
// array is shared between copies, so the delta between the window passed in
// and the window returned tells the caller exactly how much was consumed or
// produced.
//
// Invariant: 0 <= start <= end <= capacity. Methods panic on violations, as
// those are programming errors of the caller, not runtime conditions.
type Window[E any] struct {
	data  []E
	start int
	end   int
}

// NewWindow returns an empty window over a fresh array of the given capacity.
func NewWindow[E any](capacity int) Window[E] {
	if capacity < 0 {
		panic("capacity can't be < 0")
	}
	return Window[E]{data: make([]E, capacity)}
}

// WindowOf returns a full window holding copies of the given elements. Its
// capacity equals the number of elements.
func WindowOf[E any](elems ...E) Window[E] {
	data := make([]E, len(elems))
	copy(data, elems)
	return Window[E]{data: data, end: len(elems)}
}

// Cap returns the capacity of the backing array.
func (w Window[E]) Cap() int {
	return len(w.data)
}

// Len returns the number of valid elements, end - start.
func (w Window[E]) Len() int {
	return w.end - w.start
}

// Free returns the space left for produced elements, capacity - end.
func (w Window[E]) Free() int {
	return len(w.data) - w.end
}

// Empty reports whether the window holds no valid elements.
func (w Window[E]) Empty() bool {
	return w.start == w.end
}

// Full reports whether the window has no free space.
func (w Window[E]) Full() bool {
	return w.end == len(w.data)
}

// At returns the i-th valid element, counted from start.
func (w Window[E]) At(i int) E {
	if i < 0 || i >= w.Len() {
		panic("index out of window")
	}
	return w.data[w.start+i]
}

// Elems returns the valid elements as a slice aliasing the backing array.
// The slice is valid until the next mutating call on any copy of the window.
func (w Window[E]) Elems() []E {
	return w.data[w.start:w.end]
}

// Advance consumes n elements from the front and returns the updated window.
func (w Window[E]) Advance(n int) Window[E] {
	if n < 0 {
		panic("n can't be < 0")
	}
	if w.start+n > w.end {
		panic("can't advance past end")
	}
	w.start += n
	return w
}

// Put produces one element at the back and returns the updated window.
func (w Window[E]) Put(v E) Window[E] {
	if w.Full() {
		panic("window is full")
	}
	w.data[w.end] = v
	w.end++
	return w
}

// Append produces the given elements at the back and returns the updated
// window.
func (w Window[E]) Append(elems ...E) Window[E] {
	if len(elems) > w.Free() {
		panic("not enough free space")
	}
	copy(w.data[w.end:], elems)
	w.end += len(elems)
	return w
}

// Set rewrites the i-th valid element in place. This is a side effect on the
// backing array, distinct from cursor movement; codecs use it only during
// recovery, for schemes that rewrite ambiguous input bytes.
func (w Window[E]) Set(i int, v E) {
	if i < 0 || i >= w.Len() {
		panic("index out of window")
	}
	w.data[w.start+i] = v
}

// Compact shifts the valid elements to the front of the backing array and
// returns the updated window, making the consumed prefix reusable as free
// space. Drivers call it before refilling an input window.
func (w Window[E]) Compact() Window[E] {
	if w.start == 0 {
		return w
	}
	n := copy(w.data, w.data[w.start:w.end])
	w.start = 0
	w.end = n
	return w
}
