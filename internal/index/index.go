// Package index provides dense, typed handles for the three index spaces the
// pane layout works in: channels, columns, and positions inside a column's
// stack. Each space is a distinct named type, so a ColumnID can never be
// passed where a ChannelID is expected without an explicit conversion.
package index

import (
	"fmt"
	"iter"
)

// ChannelID addresses a channel buffer in the channel arena.
type ChannelID int

// ColumnID addresses a column in the layout.
type ColumnID int

// StackPos addresses an entry inside one column's stack.
type StackPos int

// Next returns the handle after c in the same space.
func (c ChannelID) Next() ChannelID { return c + 1 }

// Prev returns the handle before c in the same space.
func (c ChannelID) Prev() ChannelID { return c - 1 }

// Next returns the handle after c in the same space.
func (c ColumnID) Next() ColumnID { return c + 1 }

// Prev returns the handle before c in the same space.
func (c ColumnID) Prev() ColumnID { return c - 1 }

// Next returns the handle after p in the same space.
func (p StackPos) Next() StackPos { return p + 1 }

// Prev returns the handle before p in the same space.
func (p StackPos) Prev() StackPos { return p - 1 }

// Index is satisfied by the three handle types only.
type Index interface {
	ChannelID | ColumnID | StackPos
}

// OutOfRangeError reports an access past the bound of a Vec. Callers only
// probe handles they have just computed, so this signals a programming error.
type OutOfRangeError struct {
	Space string
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d out of range (len %d)", e.Space, e.Index, e.Len)
}

func spaceName[I Index]() string {
	var zero I
	switch any(zero).(type) {
	case ChannelID:
		return "channel"
	case ColumnID:
		return "column"
	default:
		return "stack position"
	}
}

// Vec is a slice addressed by one index space.
type Vec[I Index, T any] struct {
	items []T
}

// NewVec returns a Vec holding items. The slice is used as-is.
func NewVec[I Index, T any](items ...T) Vec[I, T] {
	return Vec[I, T]{items: items}
}

// Len returns the number of elements as a handle of the same space.
func (v *Vec[I, T]) Len() I {
	return I(len(v.items))
}

// Last returns the handle of the final element, or -1 when empty.
func (v *Vec[I, T]) Last() I {
	return I(len(v.items) - 1)
}

// Empty reports whether the vector holds no elements.
func (v *Vec[I, T]) Empty() bool {
	return len(v.items) == 0
}

// Contains reports whether i addresses a live element.
func (v *Vec[I, T]) Contains(i I) bool {
	return int(i) >= 0 && int(i) < len(v.items)
}

func (v *Vec[I, T]) errAt(i I, bound int) *OutOfRangeError {
	return &OutOfRangeError{Space: spaceName[I](), Index: int(i), Len: bound}
}

// Get returns the element at i or an OutOfRangeError.
func (v *Vec[I, T]) Get(i I) (T, error) {
	if !v.Contains(i) {
		var zero T
		return zero, v.errAt(i, len(v.items))
	}
	return v.items[i], nil
}

// At returns the element at i and panics with an OutOfRangeError when i is
// past the bound.
func (v *Vec[I, T]) At(i I) T {
	if !v.Contains(i) {
		panic(v.errAt(i, len(v.items)))
	}
	return v.items[i]
}

// Ptr returns a pointer to the element at i for in-place mutation.
func (v *Vec[I, T]) Ptr(i I) *T {
	if !v.Contains(i) {
		panic(v.errAt(i, len(v.items)))
	}
	return &v.items[i]
}

// Set replaces the element at i.
func (v *Vec[I, T]) Set(i I, value T) {
	*v.Ptr(i) = value
}

// Push appends value and returns its handle.
func (v *Vec[I, T]) Push(value T) I {
	v.items = append(v.items, value)
	return I(len(v.items) - 1)
}

// Insert places value at i, shifting later elements up by one. i may equal
// Len to append.
func (v *Vec[I, T]) Insert(i I, value T) {
	if int(i) < 0 || int(i) > len(v.items) {
		panic(v.errAt(i, len(v.items)+1))
	}
	var zero T
	v.items = append(v.items, zero)
	copy(v.items[i+1:], v.items[i:])
	v.items[i] = value
}

// Remove deletes the element at i, shifting later elements down by one, and
// returns it.
func (v *Vec[I, T]) Remove(i I) T {
	if !v.Contains(i) {
		panic(v.errAt(i, len(v.items)))
	}
	value := v.items[i]
	copy(v.items[i:], v.items[i+1:])
	var zero T
	v.items[len(v.items)-1] = zero
	v.items = v.items[:len(v.items)-1]
	return value
}

// Find returns the handle of the first element matching fn.
func (v *Vec[I, T]) Find(fn func(T) bool) (I, bool) {
	for i, item := range v.items {
		if fn(item) {
			return I(i), true
		}
	}
	return -1, false
}

// All iterates handles and elements in order.
func (v *Vec[I, T]) All() iter.Seq2[I, T] {
	return func(yield func(I, T) bool) {
		for i, item := range v.items {
			if !yield(I(i), item) {
				return
			}
		}
	}
}
