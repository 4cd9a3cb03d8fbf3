package linebuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertPrintableRune(t *testing.T) {
	b := New()
	b.Key("h")
	b.Key("i")
	assert.Equal(t, "hi", b.Line())
}

func TestInsertRejectsControlBytes(t *testing.T) {
	b := New()
	b.Key("\x01")
	assert.Equal(t, "", b.Line())
}

func TestBackspaceRemovesPrecedingRune(t *testing.T) {
	b := New()
	b.Key("a")
	b.Key("b")
	b.Key("\x7f")
	assert.Equal(t, "a", b.Line())
}

func TestHomeAndEndMoveCursorToLineEdges(t *testing.T) {
	b := New()
	for _, r := range "hello" {
		b.Key(string(r))
	}
	b.Key("\x1b[H") // HOME
	b.Key("x")
	assert.Equal(t, "xhello", b.Line())
	b.Key("\x1b[F") // END
	b.Key("!")
	assert.Equal(t, "xhello!", b.Line())
}

func TestEnterSendsAndClearsLine(t *testing.T) {
	b := New()
	for _, r := range "ship it" {
		b.Key(string(r))
	}
	sent, ok := b.Key("\r")
	require.True(t, ok)
	assert.Equal(t, "ship it", sent)
	assert.Equal(t, "", b.Line())
}

func TestEnterDisabledWhenSendOnEnterOff(t *testing.T) {
	b := New(WithoutSendOnEnter())
	b.Key("a")
	_, ok := b.Key("\r")
	assert.False(t, ok, "Key(ENTER) should not report sent with WithoutSendOnEnter")
}

func TestHistoryUpDownRoundTrip(t *testing.T) {
	b := New()
	for _, r := range "first" {
		b.Key(string(r))
	}
	b.Key("\r")
	for _, r := range "second" {
		b.Key(string(r))
	}
	b.Key("\r")

	b.Key("\x1b[A") // UP
	assert.Equal(t, "second", b.Line())
	b.Key("\x1b[A") // UP
	assert.Equal(t, "first", b.Line())
	b.Key("\x1b[B") // DOWN
	assert.Equal(t, "second", b.Line())
}

func TestWordLeftLandsAfterPreviousWord(t *testing.T) {
	b := New()
	for _, r := range "foo bar baz" {
		b.Key(string(r))
	}
	b.Key("\x1bb") // OPT_LARROW
	b.Key("X")
	assert.Equal(t, "foo barX baz", b.Line())
}

func TestTabInsertsSpaces(t *testing.T) {
	b := New(WithTabSize(2))
	b.Key("\t")
	assert.Equal(t, "  ", b.Line())
}
