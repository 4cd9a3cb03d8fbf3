// Package linebuffer implements a single-line editable text buffer driven
// by decoded key bursts: insertion, cursor movement, word jumps, and an
// optional per-instance command history, with an ANSI redraw string ready
// to hand to a terminal.
package linebuffer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/grove-tui/grove/keysym"
	"github.com/grove-tui/grove/textwidth"
)

// Option configures a LineBuffer at construction time.
type Option func(*LineBuffer)

// WithoutSendOnEnter disables returning the line on ENTER; Key never
// reports "sent" and the caller must read Line itself.
func WithoutSendOnEnter() Option { return func(b *LineBuffer) { b.sendOnEnter = false } }

// WithoutCursorMovement disables arrow/home/end/word-jump cursor motion,
// leaving only insertion and deletion.
func WithoutCursorMovement() Option { return func(b *LineBuffer) { b.cursorMovement = false } }

// WithoutHistory disables up/down history recall.
func WithoutHistory() Option { return func(b *LineBuffer) { b.useHistory = false } }

// WithTabSize sets how many spaces a TAB burst inserts. Default is 4.
func WithTabSize(n int) Option { return func(b *LineBuffer) { b.tabSize = n } }

// LineBuffer is a single editable line with absolute cursor position
// measured in runes across prompt+line, matching the position convention
// a redraw escape needs.
type LineBuffer struct {
	line    []rune
	pos     int
	prompt  []rune
	history []string
	histPos int

	sendOnEnter    bool
	cursorMovement bool
	useHistory     bool
	tabSize        int
}

// New constructs a LineBuffer with sendOnEnter, cursorMovement, and
// useHistory all enabled and a tab size of 4, unless overridden by opts.
func New(opts ...Option) *LineBuffer {
	b := &LineBuffer{
		sendOnEnter:    true,
		cursorMovement: true,
		useHistory:     true,
		tabSize:        4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Reset clears the line, cursor, history position, and prompt.
func (b *LineBuffer) Reset() {
	b.line = nil
	b.pos = 0
	b.histPos = 0
	b.prompt = nil
}

// Pos returns the 1-indexed absolute cursor column, for diagnostics.
func (b *LineBuffer) Pos() int { return b.pos + 1 }

// Prompt returns the current prompt text.
func (b *LineBuffer) Prompt() string { return string(b.prompt) }

// SetPrompt changes the prompt, keeping the cursor at the same offset
// within the line text.
func (b *LineBuffer) SetPrompt(prompt string) {
	offset := b.pos - len(b.prompt)
	b.prompt = []rune(prompt)
	b.pos = len(b.prompt) + offset
}

// SetPlaceholder fills an empty line with placeholder text and moves the
// cursor to its end. It has no effect once the line is non-empty.
func (b *LineBuffer) SetPlaceholder(placeholder string) {
	if len(b.line) == 0 {
		b.line = []rune(placeholder)
		b.pos = len(b.prompt) + len(b.line)
	}
}

// Line returns the current line text, without the prompt.
func (b *LineBuffer) Line() string { return string(b.line) }

func (b *LineBuffer) cursorLeft(n int) bool {
	offset := b.pos - len(b.prompt)
	valid := offset > 0
	if valid {
		if n > offset {
			n = offset
		}
		b.pos -= n
	}
	return valid
}

func (b *LineBuffer) cursorRight(n int) bool {
	offset := len(b.prompt) + len(b.line) - b.pos
	valid := offset > 0
	if valid {
		if n > offset {
			n = offset
		}
		b.pos += n
	}
	return valid
}

// HistoryUp recalls the previous history entry, stashing the in-progress
// line as the newest entry the first time it is called.
func (b *LineBuffer) HistoryUp() {
	if b.histPos == 0 || b.histPos < len(b.history)-1 {
		if b.histPos == 0 {
			b.history = append(b.history, string(b.line))
		}
		b.histPos++
		b.line = []rune(b.history[len(b.history)-b.histPos-1])
		b.pos = len(b.line) + len(b.prompt)
	}
}

// HistoryDown recalls the next (more recent) history entry, popping the
// stashed in-progress line back once history is exhausted.
func (b *LineBuffer) HistoryDown() {
	if b.histPos > 0 {
		b.histPos--
		if b.histPos == 0 {
			b.line = []rune(b.history[len(b.history)-1])
			b.history = b.history[:len(b.history)-1]
		} else {
			b.line = []rune(b.history[len(b.history)-b.histPos-1])
		}
		b.pos = len(b.line) + len(b.prompt)
	}
}

// EnterSend records the current line into history (deduping against the
// previous entry), clears the line, and returns the text that was sent.
func (b *LineBuffer) EnterSend() string {
	current := string(b.line)
	if b.histPos != 0 {
		b.history = b.history[:len(b.history)-1]
		b.histPos = 0
	}
	if len(b.history) == 0 || current != b.history[len(b.history)-1] {
		b.history = append(b.history, current)
	}
	b.line = nil
	b.pos = len(b.prompt)
	return current
}

func isAllSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// insert appends burst into the line at the absolute cursor position when
// burst is either pure whitespace other than ENTER, or a single printable
// (non-control) rune.
func (b *LineBuffer) insert(burst string) {
	runes := []rune(burst)
	insertable := (!keysym.ENTER.Is(burst) && isAllSpace(burst)) ||
		(len(runes) == 1 && runes[0] >= 0x20)
	if !insertable {
		return
	}
	pos := clamp(b.pos-len(b.prompt), 0, len(b.line))
	out := make([]rune, 0, len(b.line)+len(runes))
	out = append(out, b.line[:pos]...)
	out = append(out, runes...)
	out = append(out, b.line[pos:]...)
	b.line = out
	b.pos++
}

// leftWordEnd finds the largest end <= len(s) such that s[end-1] (if any)
// is not whitespace and s[end:] begins with a run of whitespace followed
// by a non-whitespace rune. It mirrors a lookbehind/lookahead regex search
// that Go's RE2 engine cannot express directly.
func leftWordEnd(s []rune) (int, bool) {
	for end := len(s); end >= 0; end-- {
		if end > 0 && unicode.IsSpace(s[end-1]) {
			continue
		}
		j := end
		for j < len(s) && unicode.IsSpace(s[j]) {
			j++
		}
		if j == end {
			continue
		}
		if j < len(s) {
			return end, true
		}
	}
	return 0, false
}

// rightWordEnd finds the end of the first run of whitespace in s that is
// followed by a non-whitespace rune.
func rightWordEnd(s []rune) (int, bool) {
	i := 0
	for i < len(s) && !unicode.IsSpace(s[i]) {
		i++
	}
	if i >= len(s) {
		return 0, false
	}
	j := i
	for j < len(s) && unicode.IsSpace(s[j]) {
		j++
	}
	if j < len(s) {
		return j, true
	}
	return 0, false
}

func (b *LineBuffer) wordLeft() {
	truePos := b.pos - len(b.prompt)
	if truePos < 0 {
		truePos = 0
	}
	if truePos > len(b.line) {
		truePos = len(b.line)
	}
	substr := b.line[:truePos]
	offset := len(b.line)
	if end, ok := leftWordEnd(substr); ok {
		offset = truePos - end
	}
	b.cursorLeft(offset)
}

func (b *LineBuffer) wordRight() {
	truePos := b.pos - len(b.prompt)
	start := truePos + 1
	if start > len(b.line) {
		start = len(b.line)
	}
	rest := b.line[start:]
	offset := len(b.line)
	if end, ok := rightWordEnd(rest); ok {
		offset = end + 1
	}
	b.cursorRight(offset)
}

// Key feeds one decoded key burst into the buffer. When the burst triggers
// a send (ENTER with send-on-enter enabled), it returns the sent line and
// true.
func (b *LineBuffer) Key(burst string) (string, bool) {
	switch {
	case keysym.DEL.Is(burst) || keysym.BACKSPACE.Is(burst):
		var ok bool
		if keysym.DEL.Is(burst) {
			ok = b.pos < len(b.prompt)+len(b.line)
		} else {
			ok = b.cursorLeft(1)
		}
		if ok {
			truePos := b.pos - len(b.prompt)
			if truePos >= 0 && truePos < len(b.line) {
				b.line = append(b.line[:truePos], b.line[truePos+1:]...)
			}
		}
	case keysym.TAB.Is(burst):
		b.insert(strings.Repeat(" ", b.tabSize))
	default:
		b.insert(burst)
		if b.cursorMovement {
			switch {
			case keysym.R_ARROW.Is(burst):
				b.cursorRight(1)
			case keysym.L_ARROW.Is(burst):
				b.cursorLeft(1)
			case keysym.HOME.Is(burst):
				b.cursorLeft(len(b.line))
			case keysym.END.Is(burst):
				b.cursorRight(len(b.line))
			case keysym.CTRL_LARROW.Is(burst) || keysym.OPT_LARROW.Is(burst):
				b.wordLeft()
			case keysym.CTRL_RARROW.Is(burst) || keysym.OPT_RARROW.Is(burst):
				b.wordRight()
			}
		}
		if b.useHistory {
			switch {
			case keysym.U_ARROW.Is(burst):
				b.HistoryUp()
			case keysym.D_ARROW.Is(burst):
				b.HistoryDown()
			}
		}
		if b.sendOnEnter && keysym.ENTER.Is(burst) {
			return b.EnterSend(), true
		}
	}
	return "", false
}

// WithCSI renders the redraw sequence: clear the line, return to column 0,
// write prompt and line, then reposition the cursor using visual column
// width rather than rune count so wide characters place it correctly.
func (b *LineBuffer) WithCSI() string {
	col := textwidth.StringWidth(string(b.prompt)) + textwidth.StringWidth(string(b.line[:clamp(b.pos-len(b.prompt), 0, len(b.line))]))
	return "\x1b[2K\x1b[0G" + string(b.prompt) + string(b.line) +
		"\x1b[" + strconv.Itoa(col+1) + "G"
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
