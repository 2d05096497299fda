package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	s := New[string]()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, "", s.Pop(), "pop on empty stack returns the zero value")
	assert.Equal(t, "", s.Peek())

	s.Push("a")
	s.Push("b")
	s.Push("c")
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, "c", s.Peek())
	assert.True(t, s.Contains("b"))
	assert.False(t, s.Contains("z"))
	assert.Equal(t, []string{"a", "b", "c"}, s.Values())

	assert.Equal(t, "c", s.Pop())
	assert.Equal(t, "b", s.Pop())
	assert.Equal(t, 1, s.Count())
	assert.False(t, s.IsEmpty())
}

func TestStackFrom(t *testing.T) {
	s := New[string]()
	for _, v := range []string{"main", "a", "b", "c"} {
		s.Push(v)
	}

	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "bottom", value: "main", want: []string{"main", "a", "b", "c"}},
		{name: "middle", value: "b", want: []string{"b", "c"}},
		{name: "top", value: "c", want: []string{"c"}},
		{name: "absent", value: "x", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.From(tt.value))
		})
	}

	got := s.From("a")
	got[0] = "mutated"
	assert.Equal(t, []string{"main", "a", "b", "c"}, s.Values(), "From returns a copy")
}
