package slices

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	toString := func(val int) string { return fmt.Sprintf("%d", val) }
	input := []int{1, 3, 5, 7, 9}
	expectedOutput := []string{"1", "3", "5", "7", "9"}

	output := Map(input, toString)
	assert.Equal(t, expectedOutput, output)
}

func TestMapEmptyList(t *testing.T) {
	toString := func(val int) string { return fmt.Sprintf("%d", val) }
	input := []int{}
	expectedOutput := []string{}

	output := Map(input, toString)
	assert.Equal(t, expectedOutput, output)
}

func TestFilter(t *testing.T) {
	isEven := func(val int) bool { return val%2 == 0 }

	output := Filter([]int{1, 2, 3, 4, 5, 6}, isEven)
	assert.Equal(t, []int{2, 4, 6}, output)
}

func TestFilterNil(t *testing.T) {
	isEven := func(val int) bool { return val%2 == 0 }

	var input []int
	output := Filter(input, isEven)
	assert.Nil(t, output)
}

func TestUnique(t *testing.T) {
	output := Unique([]string{"a", "b", "a", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, output)
}

func TestUniqueNil(t *testing.T) {
	var input []string
	assert.Nil(t, Unique(input))
}

func TestSubtract(t *testing.T) {
	output := Subtract([]string{"a", "b", "c", "d"}, []string{"b", "d", "e"})
	assert.Equal(t, []string{"a", "c"}, output)
}

func TestSubtractEmpty(t *testing.T) {
	output := Subtract([]string{"a", "b"}, nil)
	assert.Equal(t, []string{"a", "b"}, output)
}
