package fuzzyfinder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMatchFindsSubsequence(t *testing.T) {
	m, ok := computeMatch("fzf", "fuzzy finder")
	require.True(t, ok, "expected fzf to match fuzzy finder")
	assert.Len(t, m.indices, 3)
}

func TestComputeMatchFailsWithoutSubsequence(t *testing.T) {
	_, ok := computeMatch("xyz", "fuzzy finder")
	assert.False(t, ok, "expected no match for a query with letters absent from the item")
}

func TestComputeMatchRewardsExactCase(t *testing.T) {
	exact, _ := computeMatch("F", "Fuzzy")
	mixed, _ := computeMatch("f", "Fuzzy")
	assert.Greater(t, exact.score, mixed.score)
}

func TestComputeMatchPenalizesGaps(t *testing.T) {
	tight, _ := computeMatch("ab", "ab")
	loose, _ := computeMatch("ab", "a....b")
	assert.Greater(t, tight.score, loose.score)
}

func TestNewAndExitClearsValue(t *testing.T) {
	f := New([]string{"alpha", "beta"}, nil)
	f.Exit()
	assert.Nil(t, f.Value())
}

func TestSendSetsValueAndCallsReceiver(t *testing.T) {
	var received string
	f := New([]string{"alpha", "beta", "gamma"}, func(s string) { received = s })
	f.maxLines = 10
	f.Send()
	require.NotNil(t, f.Value())
	assert.Equal(t, "alpha", *f.Value())
	assert.Equal(t, "alpha", received)
}

func TestViewportScrollsExactlyIntoView(t *testing.T) {
	objects := make([]string, 50)
	for i := range objects {
		objects[i] = string(rune('a' + i%26))
	}
	f := New(objects, nil)
	f.maxLines = 10

	f.NextItem(15)
	assert.Equal(t, 15, f.sublist.Pointer())
	assert.Equal(t, 6, f.startIndex)

	f.PreviousItem(20)
	assert.Equal(t, 0, f.sublist.Pointer())
	assert.Equal(t, 0, f.startIndex)
}

func TestRjustLinePadsToTerminalWidthIgnoringANSI(t *testing.T) {
	f := New([]string{"x"}, nil)
	out := f.rjustLine("\x1b[31mhi\x1b[0m")
	stripped := ansiPattern.ReplaceAllString(out, "")
	width, _ := f.Termsize()
	assert.Equal(t, width, len(stripped))
}
