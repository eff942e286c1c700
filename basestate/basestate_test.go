package basestate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyIsZeroValue(t *testing.T) {
	var s State
	assert.Equal(t, Empty, s)
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Count())
}

func TestNewAndAccessors(t *testing.T) {
	s := New(true, false, true)
	assert.True(t, s.First())
	assert.False(t, s.Second())
	assert.True(t, s.Third())
	assert.Equal(t, 2, s.Count())
}

func TestWithMethodsReturnCopies(t *testing.T) {
	base := Empty
	first := base.WithFirst(true)

	assert.False(t, base.First())
	assert.True(t, first.First())
}

func TestLoaded(t *testing.T) {
	assert.True(t, New(true, true, true).Loaded())
	assert.False(t, New(true, true, false).Loaded())
}

func TestAsTuple(t *testing.T) {
	f, s, th := New(true, false, true).AsTuple()
	assert.True(t, f)
	assert.False(t, s)
	assert.True(t, th)
}

func TestString(t *testing.T) {
	assert.Equal(t, "___", Empty.String())
	assert.Equal(t, "1_3", New(true, false, true).String())
	assert.Equal(t, "123", New(true, true, true).String())
}
