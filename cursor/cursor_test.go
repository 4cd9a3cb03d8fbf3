package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceCyclicWraps(t *testing.T) {
	l := New([]string{"a", "b", "c"}, true)
	assert.Equal(t, 1, l.Advance(1))
	assert.Equal(t, (1+5)%3, l.Advance(5))
}

func TestAdvanceNonCyclicClamps(t *testing.T) {
	l := New([]string{"a", "b", "c"}, false)
	l.Advance(10)
	assert.Equal(t, 2, l.Pointer())
	assert.True(t, l.AtEnd())
}

func TestRetreatCyclicWraps(t *testing.T) {
	l := New([]string{"a", "b", "c"}, true)
	assert.Equal(t, 2, l.Retreat(1))
	assert.Equal(t, mod(2-5, 3), l.Retreat(5))
}

func TestRetreatNonCyclicClampsAtZero(t *testing.T) {
	l := New([]string{"a", "b", "c"}, false)
	l.Retreat(10)
	assert.Equal(t, 0, l.Pointer())
}

func TestSetPointerClampsOutOfRange(t *testing.T) {
	l := New([]string{"a", "b", "c"}, false)
	l.SetPointer(99)
	assert.Equal(t, 2, l.Pointer())
	l.SetPointer(-5)
	assert.Equal(t, 0, l.Pointer())
}

func TestEmptyListIsSafe(t *testing.T) {
	l := New[string](nil, true)
	assert.Equal(t, 0, l.Advance(3))
	assert.False(t, l.AtEnd())
}

func TestCurrentAndAt(t *testing.T) {
	l := New([]int{10, 20, 30}, false)
	l.SetPointer(1)
	assert.Equal(t, 20, l.Current())
	assert.Equal(t, 30, l.At(2))
}
