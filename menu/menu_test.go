package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grove-tui/grove/cursor"
	"github.com/grove-tui/grove/xterm"
)

func newTestMenu(buf *strings.Builder, level *Level) *Menu {
	m := &Menu{levels: []*Level{level}}
	m.App = xterm.NewApp(xterm.NewConfig(xterm.WithHiddenCursor()), buf, m.handleKey)
	return m
}

func TestDisplayHorizontalHighlightsPointer(t *testing.T) {
	var buf strings.Builder
	level := &Level{
		Items: cursor.New([]Item{{Label: "File"}, {Label: "Edit"}}, true),
		Mode:  Horizontal,
	}
	m := newTestMenu(&buf, level)
	m.Open()
	buf.Reset()

	m.display(false)

	assert.Contains(t, buf.String(), "\x1b[7m", "display() output missing reverse-video highlight")
}

func TestDisplayVerticalJoinsWithCursorDown(t *testing.T) {
	var buf strings.Builder
	level := &Level{
		Items: cursor.New([]Item{{Label: "A"}, {Label: "B"}, {Label: "C"}}, true),
		Mode:  Vertical,
	}
	m := newTestMenu(&buf, level)
	m.Open()
	buf.Reset()

	m.display(false)

	assert.Contains(t, buf.String(), "\x1b[E", "display() output missing vertical-join escape")
}

func TestPushAddsLevelAtDefaultPosition(t *testing.T) {
	var buf strings.Builder
	top := &Level{
		Items: cursor.New([]Item{{Label: "File"}}, true),
		Mode:  Horizontal,
	}
	m := newTestMenu(&buf, top)
	m.Open()

	sub := &Level{
		Items: cursor.New([]Item{{Label: "New"}, {Label: "Open"}}, true),
		Mode:  Vertical,
	}
	m.Push(sub, 1)

	assert.Same(t, sub, m.current())
	assert.Equal(t, 1, sub.Items.Pointer())
}

func TestHandleKeyEscPopsStack(t *testing.T) {
	var buf strings.Builder
	top := &Level{Items: cursor.New([]Item{{Label: "File"}}, true), Mode: Horizontal}
	m := newTestMenu(&buf, top)
	m.Open()
	sub := &Level{Items: cursor.New([]Item{{Label: "New"}}, true), Mode: Vertical}
	m.Push(sub, 0)

	m.handleKey("\x1b") // ESC

	assert.Same(t, top, m.current())
}

func TestHandleKeyEnterInvokesFuncPayload(t *testing.T) {
	var buf strings.Builder
	called := false
	top := &Level{
		Items: cursor.New([]Item{{Label: "Run", Payload: func() { called = true }}}, true),
		Mode:  Horizontal,
	}
	m := newTestMenu(&buf, top)
	m.Open()

	m.handleKey("\r")

	assert.True(t, called, "expected ENTER to invoke the item's func() payload")
}

func TestHandleKeyEnterUsesSelectorWhenSet(t *testing.T) {
	var buf strings.Builder
	var got any
	top := &Level{
		Items:    cursor.New([]Item{{Label: "X", Payload: 42}}, true),
		Selector: func(v any) { got = v },
		Mode:     Horizontal,
	}
	m := newTestMenu(&buf, top)
	m.Open()

	m.handleKey("\r")

	assert.Equal(t, 42, got)
}

func TestHandleKeyArrowWrapsAroundAtEnds(t *testing.T) {
	var buf strings.Builder
	top := &Level{
		Items: cursor.New([]Item{{Label: "A"}, {Label: "B"}, {Label: "C"}}, true),
		Mode:  Vertical,
	}
	m := newTestMenu(&buf, top)
	m.Open()

	m.handleKey("\x1b[A") // U_ARROW, retreating from pointer 0

	assert.Equal(t, 2, top.Items.Pointer(), "expected retreating past the first item to wrap to the last")

	m.handleKey("\x1b[B") // D_ARROW, advancing from pointer 2

	assert.Equal(t, 0, top.Items.Pointer(), "expected advancing past the last item to wrap to the first")
}

func TestHandleKeyEnterPanicsWithoutSelectorOrCallable(t *testing.T) {
	var buf strings.Builder
	top := &Level{
		Items: cursor.New([]Item{{Label: "Broken", Payload: 42}}, true),
		Mode:  Horizontal,
	}
	m := newTestMenu(&buf, top)
	m.Open()

	assert.Panics(t, func() { m.handleKey("\r") })
}
