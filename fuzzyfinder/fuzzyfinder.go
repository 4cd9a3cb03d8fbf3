// Package fuzzyfinder implements an fzf-style fuzzy finder reference
// application: a scrollable, live-filtered list driven by a linebuffer
// search query, with mouse-wheel scrolling over the X10 legacy mouse
// protocol.
package fuzzyfinder

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/grove-tui/grove/cursor"
	"github.com/grove-tui/grove/keysym"
	"github.com/grove-tui/grove/linebuffer"
	"github.com/grove-tui/grove/textwidth"
	"github.com/grove-tui/grove/xterm"
)

// ansiPattern strips SGR/CSI and other ANSI escape sequences so rjustLine
// can measure a rendered line's true visible width.
var ansiPattern = regexp.MustCompile("\x1b[@-Z\\\\-_]|[\u0080-\u009a\u009c-\u009f]|(?:\x1b\\[|\u009b)[0-?]*[ -/]*[@-~]")

const matchCacheSize = 4096

// match is one query-to-item scoring result: the rune indices the query
// matched at, and a normalized score where higher is a better match.
type match struct {
	indices []int
	score   float64
}

type matchKey struct {
	query string
	item  string
}

// FuzzyFinder is a scrollable fuzzy-search list built on xterm.App.
type FuzzyFinder struct {
	*xterm.App

	objects  []string
	sublist  *cursor.List[string]
	lineBuf  *linebuffer.LineBuffer

	startIndex  int
	maxLines    int
	value       *string
	currentQuery string
	receiver    func(string)

	matchCache *lru.Cache[matchKey, *match]
	cacheMu    sync.Mutex
}

// New constructs a FuzzyFinder over objects. receiver, if non-nil, is
// called with the chosen object when the user sends a selection.
func New(objects []string, receiver func(string)) *FuzzyFinder {
	cache, err := lru.New[matchKey, *match](matchCacheSize)
	if err != nil {
		panic(err)
	}
	f := &FuzzyFinder{
		objects:    append([]string(nil), objects...),
		receiver:   receiver,
		matchCache: cache,
		lineBuf:    linebuffer.New(linebuffer.WithoutSendOnEnter(), linebuffer.WithoutHistory()),
	}
	f.sublist = cursor.New(append([]string(nil), f.objects...), false)

	cfg := xterm.NewConfig(
		xterm.WithAlternateBuffer(),
		xterm.WithAlternateScroll(),
		xterm.WithoutAutoWrap(),
		xterm.WithMouseEvents(),
	)
	f.App = xterm.NewApp(cfg, nil, f.handleKey)
	f.Recorder().Bind(keysym.CTRL_C, f.Exit)
	f.Recorder().Bind(keysym.CTRL_D, f.Exit)
	f.Recorder().Bind(keysym.D_ARROW, func() { f.NextItem(1) })
	f.Recorder().Bind(keysym.U_ARROW, func() { f.PreviousItem(1) })
	f.Recorder().Bind(keysym.PG_UP, func() { f.PreviousItem(len(f.objects)) })
	f.Recorder().Bind(keysym.PG_DOWN, func() { f.NextItem(len(f.objects)) })
	f.Recorder().Bind(keysym.ENTER, f.Send)
	return f
}

// Value returns the chosen object, or nil if the finder was dismissed
// without a selection.
func (f *FuzzyFinder) Value() *string { return f.value }

// Exit dismisses the finder without a selection.
func (f *FuzzyFinder) Exit() {
	f.value = nil
	f.Close()
}

// Run opens the finder, draws its initial frame, and blocks until Exit or
// Send ends the input recorder.
func (f *FuzzyFinder) Run() {
	f.Open()
	_, height := f.Termsize()
	f.maxLines = height - 2
	defer f.Close()
	f.footer()
	f.writeLines()
	f.highlight(f.sublist.Pointer(), false)
	f.searchBar()
	f.Flush()
	_ = f.Recorder().Start(nil)
}

func (f *FuzzyFinder) handleKey(key string) {
	up := strings.Count(key, "\x1b[M`")
	down := strings.Count(key, "\x1b[Ma")
	f.PreviousItem(up)
	f.NextItem(down)
	if up == 0 && down == 0 {
		f.lineBuf.Key(key)
	}
	f.searchBar()
}

func (f *FuzzyFinder) clear() {
	f.Write("\x1b[0;0H\x1b[2K" + strings.Repeat("\x1b[E\x1b[2K", f.maxLines-1))
}

func (f *FuzzyFinder) writeLines() {
	f.footer()
	width, _ := f.Termsize()
	if f.sublist.Len() == 0 {
		f.clear()
		f.Write("\x1b[0;0H\x1b[7m(EMPTY)\x1b[0m")
		return
	}
	f.Write("\x1b[0;0H\x1b[2K")
	end := f.startIndex + f.maxLines
	items := f.sublist.Items()
	if end > len(items) {
		end = len(items)
	}
	lines := make([]string, 0, end-f.startIndex)
	for _, item := range items[f.startIndex:end] {
		lines = append(lines, f.formatNormalLine(item, width))
	}
	f.Write(strings.Join(lines, "\x1b[E\x1b[2K"))
	f.Flush()
}

func (f *FuzzyFinder) footer() {
	_, height := f.Termsize()
	width, _ := f.Termsize()
	f.Write(fmt.Sprintf("\x1b[%d;0H", height-1))
	total := f.sublist.Len()
	displayCount := f.maxLines
	if total < displayCount {
		displayCount = total
	}
	start := f.startIndex
	startLabel := 0
	if total > 0 {
		startLabel = start + 1
	}
	counter := fmt.Sprintf("%d/%d-%d/%d ", f.sublist.Pointer()+1, startLabel, start+displayCount, total)
	f.Write(padRightRune(counter, width, '─'))
}

func (f *FuzzyFinder) searchBar() {
	query := f.lineBuf.Line()
	if query != f.currentQuery {
		f.currentQuery = query
		if query == "" {
			f.sublist = cursor.New(append([]string(nil), f.objects...), false)
			f.startIndex = 0
			f.writeLines()
			f.highlight(0, false)
		} else {
			matched := make([]string, 0, len(f.objects))
			for _, obj := range f.objects {
				if _, ok := f.matchesQuery(query, obj); ok {
					matched = append(matched, obj)
				}
			}
			sort.SliceStable(matched, func(i, j int) bool {
				si, _ := f.matchesQuery(query, matched[i])
				sj, _ := f.matchesQuery(query, matched[j])
				return si.score > sj.score
			})
			f.sublist = cursor.New(matched, false)
			f.startIndex = 0
			f.clear()
			f.writeLines()
			f.highlight(0, false)
		}
	}
	_, height := f.Termsize()
	f.Write(fmt.Sprintf("\x1b[%d;0H\x1b[2K", height))
	f.Write(f.lineBuf.WithCSI())
	f.Flush()
}

func (f *FuzzyFinder) highlight(index int, unhighlight bool) {
	if index >= f.sublist.Len() {
		return
	}
	width, _ := f.Termsize()
	row := 1 + index - f.startIndex
	f.Write(fmt.Sprintf("\x1b7\x1b[%d;0H", row))
	if unhighlight {
		f.Write("\x1b[0K" + f.formatNormalLine(f.sublist.At(index), width))
	} else {
		line := fmt.Sprintf("\x1b[48;5;22m \x1b[2;39m▐\x1b[22m \x1b[31;1m>\x1b[39;22m %s",
			f.formatItem(f.sublist.At(index)))
		f.Write(f.rjustLine(line))
		f.Write("\x1b[0m")
	}
	f.Write("\x1b8")
}

func (f *FuzzyFinder) rjustLine(item string) string {
	width, _ := f.Termsize()
	visible := ansiPattern.ReplaceAllString(item, "")
	pad := width - len([]rune(visible))
	if pad < 0 {
		pad = 0
	}
	return item + strings.Repeat(" ", pad)
}

// NextItem advances the selection by n, scrolling the viewport down if
// the new position would fall below it.
func (f *FuzzyFinder) NextItem(n int) {
	if f.sublist.Len() == 0 {
		return
	}
	f.highlight(f.sublist.Pointer(), true)
	f.sublist.Advance(n)
	pointer := f.sublist.Pointer()
	if pointer >= f.startIndex+f.maxLines {
		f.scrollDown(pointer - f.startIndex - f.maxLines + 1)
	}
	f.highlight(pointer, false)
	f.footer()
	f.Flush()
}

// PreviousItem retreats the selection by n, scrolling the viewport up if
// the new position would fall above it.
func (f *FuzzyFinder) PreviousItem(n int) {
	if f.sublist.Len() == 0 {
		return
	}
	f.highlight(f.sublist.Pointer(), true)
	f.sublist.Retreat(n)
	pointer := f.sublist.Pointer()
	if pointer < f.startIndex {
		f.scrollToView()
	}
	f.highlight(pointer, false)
	f.footer()
	f.Flush()
}

func (f *FuzzyFinder) scrollToView() {
	offset := f.sublist.Pointer() - f.startIndex
	if offset < 0 {
		f.scrollUp(-offset)
	} else if offset >= f.maxLines {
		f.scrollDown(offset)
	}
}

func (f *FuzzyFinder) scrollUp(n int) {
	if f.startIndex > 0 {
		if n > f.startIndex {
			n = f.startIndex
		}
		f.startIndex -= n
		f.writeLines()
	}
}

func (f *FuzzyFinder) scrollDown(n int) {
	listSize := f.sublist.Len()
	if f.startIndex+f.maxLines < listSize {
		max := listSize - f.startIndex - f.maxLines
		if n > max {
			n = max
		}
		f.startIndex += n
		f.writeLines()
	}
}

func (f *FuzzyFinder) matchesQuery(query, item string) (*match, bool) {
	key := matchKey{query: query, item: item}
	f.cacheMu.Lock()
	if v, ok := f.matchCache.Get(key); ok {
		f.cacheMu.Unlock()
		if v == nil {
			return nil, false
		}
		return v, true
	}
	f.cacheMu.Unlock()

	m, ok := computeMatch(query, item)
	f.cacheMu.Lock()
	if ok {
		f.matchCache.Add(key, m)
	} else {
		f.matchCache.Add(key, nil)
	}
	f.cacheMu.Unlock()
	return m, ok
}

// computeMatch greedily matches each rune of query against item
// left-to-right, taking the first case-insensitive occurrence after the
// previous hit, scoring a gap penalty between consecutive hits and a bonus
// for an exact-case hit.
func computeMatch(query, item string) (*match, bool) {
	itemRunes := []rune(item)
	folded := []rune(strings.ToLower(item))
	indices := make([]int, 0, len(query))
	score := 0.0
	lastIndex := -1
	for _, qc := range query {
		lc := unicode.ToLower(qc)
		found := -1
		for i := lastIndex + 1; i < len(folded); i++ {
			if folded[i] == lc {
				found = i
				break
			}
		}
		if found == -1 {
			return nil, false
		}
		indices = append(indices, found)
		gap := float64(found-lastIndex-1) * 0.05
		if itemRunes[found] != qc {
			score += 0.5 + gap
		} else {
			score += 1 + gap
		}
		lastIndex = found
	}
	if len(indices) == 0 {
		return nil, false
	}
	return &match{indices: indices, score: score / float64(lastIndex+1)}, true
}

func (f *FuzzyFinder) formatNormalLine(item string, width int) string {
	return fmt.Sprintf(" \x1b[2;39m▐\x1b[0m   %s", f.formatItem(textwidth.Trim(item, width-5, 0)))
}

func (f *FuzzyFinder) formatItem(item string) string {
	query := f.currentQuery
	if query == "" {
		return item
	}
	m, ok := f.matchesQuery(query, item)
	if !ok {
		return item
	}
	runes := []rune(item)
	for i := len(m.indices) - 1; i >= 0; i-- {
		idx := m.indices[i]
		runes = append(runes[:idx],
			append([]rune("\x1b[1;36m"+string(runes[idx])+"\x1b[22;39m"), runes[idx+1:]...)...)
	}
	return string(runes)
}

// Send finalizes the current selection, ending the input recorder and
// invoking the receiver if one was given.
func (f *FuzzyFinder) Send() {
	if f.sublist.Len() == 0 {
		return
	}
	f.Recorder().End()
	chosen := f.sublist.At(f.sublist.Pointer())
	f.value = &chosen
	if f.receiver != nil {
		f.receiver(chosen)
	}
}

func padRightRune(s string, width int, pad rune) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(string(pad), n)
}
