// Package menu implements a nested terminal menu reference application: a
// stack of selectable item lists rendered horizontally or vertically, with
// ESC popping back to the parent level.
package menu

import (
	"fmt"
	"strings"

	"github.com/grove-tui/grove/cursor"
	"github.com/grove-tui/grove/keysym"
	"github.com/grove-tui/grove/textwidth"
	"github.com/grove-tui/grove/xterm"
)

// Mode selects how a Level's items are laid out.
type Mode int

const (
	// Horizontal lays items side by side on one line, each padded to an
	// equal share of the terminal width.
	Horizontal Mode = iota
	// Vertical lays items one per line, each padded to the widest item.
	Vertical
)

// Item is one selectable entry: a label shown to the user and an
// arbitrary payload delivered to the menu's Selector (or invoked directly
// if it is itself a func()).
type Item struct {
	Label   string
	Payload any
}

// Level is one layer of the menu stack: an ordered, cursor-addressable
// list of items, how to lay them out, and what to do when one is chosen.
type Level struct {
	Items    *cursor.List[Item]
	Selector func(any)
	Mode     Mode
}

// Menu is a nested terminal menu built on xterm.App. Construct one with
// New, push levels with Push, and run it with Run.
type Menu struct {
	*xterm.App
	levels []*Level
}

// New constructs a Menu with one initial level and hides the cursor for
// the app's lifetime.
func New(initial *Level) *Menu {
	m := &Menu{levels: []*Level{initial}}
	m.App = xterm.NewApp(xterm.NewConfig(xterm.WithHiddenCursor()), nil, m.handleKey)
	m.Recorder().Bind(keysym.CTRL_X, m.Exit)
	m.Recorder().Bind(keysym.CTRL_C, m.Exit)
	return m
}

// Push adds a new level on top of the stack at defaultPos and redraws.
func (m *Menu) Push(level *Level, defaultPos int) {
	if m.InApplicationContext() {
		m.cleanup()
	}
	level.Items.SetPointer(defaultPos)
	m.levels = append(m.levels, level)
	if m.InApplicationContext() {
		m.display(false)
	}
}

// Exit cleans up the on-screen menu and closes the application.
func (m *Menu) Exit() {
	m.cleanup()
	m.Close()
}

// Run opens the application, draws the top level, and blocks on the input
// recorder until Exit (or the unbound CTRL_D rescue) ends it.
func (m *Menu) Run() {
	m.Open()
	defer m.Close()
	m.display(true)
	_ = m.Recorder().Start(nil)
}

func (m *Menu) current() *Level { return m.levels[len(m.levels)-1] }

func (m *Menu) handleKey(key string) {
	level := m.current()
	switch {
	case keysym.ESC.Is(key) && len(m.levels) > 1:
		m.popDisplay()
	case keysym.ENTER.Is(key):
		item := level.Items.Current()
		switch {
		case level.Selector != nil:
			level.Selector(item.Payload)
		default:
			fn, ok := item.Payload.(func())
			if !ok {
				panic(fmt.Sprintf("menu: item %q has neither a selector nor a callable payload", item.Label))
			}
			fn()
		}
	default:
		vertical := level.Mode == Vertical
		horizontal := level.Mode == Horizontal
		switch {
		case vertical && keysym.D_ARROW.Is(key), horizontal && keysym.R_ARROW.Is(key):
			level.Items.Advance(1)
		case vertical && keysym.U_ARROW.Is(key), horizontal && keysym.L_ARROW.Is(key):
			level.Items.Retreat(1)
		}
		m.display(true)
	}
}

func (m *Menu) popDisplay() {
	m.cleanup()
	m.levels = m.levels[:len(m.levels)-1]
	m.display(false)
}

func (m *Menu) cleanup() {
	m.Write("\x1b[0J")
	level := m.current()
	if level.Mode == Vertical {
		m.Write(strings.Repeat("\x1b[F\x1b[2K", level.Items.Len()))
	} else {
		m.Write("\x1b[F\x1b[2K")
	}
}

func (m *Menu) display(cleanup bool) {
	if cleanup {
		m.cleanup()
	}
	level := m.current()
	width, _ := m.Termsize()
	switch level.Mode {
	case Horizontal:
		itemLen := width / level.Items.Len()
		var rendered []string
		for i, item := range level.Items.Items() {
			cell := fmt.Sprintf("%-*s", itemLen, textwidth.Trim(item.Label, itemLen, 0))
			if i == level.Items.Pointer() {
				cell = "\x1b[7m" + cell + "\x1b[0m"
			}
			rendered = append(rendered, cell)
		}
		m.Write(strings.Join(rendered, ""))
	case Vertical:
		itemLen := 0
		for _, item := range level.Items.Items() {
			if l := len(item.Label); l > itemLen {
				itemLen = l
			}
		}
		if itemLen > width {
			itemLen = width
		}
		var rendered []string
		for i, item := range level.Items.Items() {
			cell := fmt.Sprintf("%-*s", itemLen, textwidth.Trim(item.Label, itemLen, 0))
			if i == level.Items.Pointer() {
				cell = "\x1b[7m" + cell + "\x1b[0m"
			}
			rendered = append(rendered, cell)
		}
		m.Write(strings.Join(rendered, "\x1b[E"))
	}
	m.Write("\r\n")
	m.Flush()
}
