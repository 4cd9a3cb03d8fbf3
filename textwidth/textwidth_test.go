package textwidth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringWidthASCII(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
}

func TestStringWidthWideRunes(t *testing.T) {
	// Each CJK ideograph below is East-Asian Wide and counts as 2 columns.
	assert.Equal(t, 4, StringWidth("你好"))
}

func TestTrimLeavesShortStringsAlone(t *testing.T) {
	assert.Equal(t, "short", Trim("short", 10, 0))
}

func TestTrimBelowMinimumPrecisionLeavesStringAlone(t *testing.T) {
	assert.Equal(t, "hello world", Trim("hello world", 2, 0))
}

func TestTrimElidesMiddle(t *testing.T) {
	assert.Equal(t, "abc...", Trim("abcdefghij", 6, 0))
}

func TestTrimPreservesRStartTail(t *testing.T) {
	assert.Equal(t, "a...ij", Trim("abcdefghij", 6, 2))
}

func TestTrimIsCachedConsistently(t *testing.T) {
	first := Trim("repeatedrepeatedrepeated", 8, 0)
	second := Trim("repeatedrepeatedrepeated", 8, 0)
	assert.Equal(t, first, second)
}
