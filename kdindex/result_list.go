package kdindex

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// A ResultList keeps the lowest-priority elements added to it, up to a fixed
// capacity, sorted by ascending priority.
//
// Elements with equal priorities are kept in insertion order.
type ResultList[E any, P constraints.Ordered] struct {
	capacity   int
	elements   []E
	priorities []P
}

// NewResultList creates an empty list which holds at most capacity elements.
func NewResultList[E any, P constraints.Ordered](capacity int) *ResultList[E, P] {
	if capacity <= 0 {
		panic("result list capacity must be positive")
	}
	return &ResultList[E, P]{
		capacity:   capacity,
		elements:   make([]E, 0, capacity),
		priorities: make([]P, 0, capacity),
	}
}

// Add inserts an element at its sorted position.
//
// If the list is full, the element is rejected unless its priority is strictly
// lower than MaxPriority(), in which case the current maximum is dropped.
//
// The return value reports whether the element was kept.
func (r *ResultList[E, P]) Add(element E, priority P) bool {
	n := len(r.priorities)
	if n == r.capacity && priority >= r.priorities[n-1] {
		return false
	}

	idx, _ := slices.BinarySearchFunc(r.priorities, priority, func(p, target P) int {
		// Place new entries after existing equal priorities.
		if p <= target {
			return -1
		}
		return 1
	})

	if n < r.capacity {
		var zeroElem E
		var zeroPriority P
		r.elements = append(r.elements, zeroElem)
		r.priorities = append(r.priorities, zeroPriority)
		n++
	}
	copy(r.elements[idx+1:n], r.elements[idx:n-1])
	copy(r.priorities[idx+1:n], r.priorities[idx:n-1])
	r.elements[idx] = element
	r.priorities[idx] = priority
	return true
}

// Len returns the number of elements in the list.
func (r *ResultList[E, P]) Len() int {
	return len(r.elements)
}

// Cap returns the maximum number of elements the list can hold.
func (r *ResultList[E, P]) Cap() int {
	return r.capacity
}

// Full returns true if Len() == Cap().
func (r *ResultList[E, P]) Full() bool {
	return len(r.elements) == r.capacity
}

// MinElement returns the element with the lowest priority.
// Panics if the list is empty.
func (r *ResultList[E, P]) MinElement() E {
	return r.elements[0]
}

// MinPriority returns the lowest priority in the list.
// Panics if the list is empty.
func (r *ResultList[E, P]) MinPriority() P {
	return r.priorities[0]
}

// MaxElement returns the element with the highest priority.
// Panics if the list is empty.
func (r *ResultList[E, P]) MaxElement() E {
	return r.elements[len(r.elements)-1]
}

// MaxPriority returns the highest priority in the list.
// Panics if the list is empty.
func (r *ResultList[E, P]) MaxPriority() P {
	return r.priorities[len(r.priorities)-1]
}

// Elements returns a copy of the elements in ascending priority order.
func (r *ResultList[E, P]) Elements() []E {
	return append([]E{}, r.elements...)
}

// Priorities returns a copy of the priorities in ascending order.
func (r *ResultList[E, P]) Priorities() []P {
	return append([]P{}, r.priorities...)
}

// Iterate calls f for each entry in ascending priority order, stopping early if
// f returns false.
func (r *ResultList[E, P]) Iterate(f func(element E, priority P) bool) {
	for i, e := range r.elements {
		if !f(e, r.priorities[i]) {
			return
		}
	}
}
