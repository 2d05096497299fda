package stack

import "slices"

// Stack is a LIFO of comparable values. The module loader keeps the names of
// in-progress loads on one to detect and print import cycles.
type Stack[T comparable] struct {
	values []T
}

func New[T comparable]() *Stack[T] {
	return &Stack[T]{values: make([]T, 0)}
}

func (s *Stack[T]) Push(value T) {
	s.values = append(s.values, value)
}

func (s *Stack[T]) Pop() T {
	if len(s.values) == 0 {
		var zero T
		return zero
	}
	value := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return value
}

func (s *Stack[T]) Peek() T {
	if len(s.values) == 0 {
		var zero T
		return zero
	}
	return s.values[len(s.values)-1]
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.values) == 0
}

func (s *Stack[T]) Count() int {
	return len(s.values)
}

// Contains reports whether value is anywhere on the stack.
func (s *Stack[T]) Contains(value T) bool {
	return slices.Contains(s.values, value)
}

// From returns the values from the first occurrence of value up to the top,
// bottom first. It returns nil when value is not on the stack.
func (s *Stack[T]) From(value T) []T {
	i := slices.Index(s.values, value)
	if i < 0 {
		return nil
	}
	return slices.Clone(s.values[i:])
}

// Values returns a copy of the stack contents, bottom first.
func (s *Stack[T]) Values() []T {
	return slices.Clone(s.values)
}
