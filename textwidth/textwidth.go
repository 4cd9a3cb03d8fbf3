// Package textwidth measures the visual column width of strings using
// East-Asian width only (no grapheme clustering — see spec.md's Non-goals),
// and trims strings to a column budget. Both are backed by a small bounded
// LRU so long fuzzy-finder sessions cannot grow these caches without bound
// (spec.md §9 design note).
package textwidth

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mattn/go-runewidth"
)

const cacheSize = 4096

var (
	widthCache = mustCache[string, int](cacheSize)
	trimCache  = mustCache[trimKey, string](cacheSize)
)

type trimKey struct {
	s         string
	precision int
	rstart    int
}

func mustCache[K comparable, V any](size int) *lru.Cache[K, V] {
	c, err := lru.New[K, V](size)
	if err != nil {
		panic(err)
	}
	return c
}

// StringWidth returns the sum, over every rune in s, of 2 for East-Asian
// Wide/Fullwidth runes and 1 for everything else.
func StringWidth(s string) int {
	if v, ok := widthCache.Get(s); ok {
		return v
	}
	w := 0
	for _, r := range s {
		if runewidth.RuneWidth(r) == 2 {
			w += 2
		} else {
			w++
		}
	}
	widthCache.Add(s, w)
	return w
}

// Trim trims s to precision runes if needed, replacing the elided middle
// with "...". rstart preserves that many trailing characters untouched,
// mirroring the original term_app_pack.utils.trim. If precision < 3 or s
// already fits, s is returned unchanged. Lengths are counted in runes, not
// display columns, so wide runes are not weighted double here.
func Trim(s string, precision, rstart int) string {
	key := trimKey{s: s, precision: precision, rstart: rstart}
	if v, ok := trimCache.Get(key); ok {
		return v
	}

	out := s
	runes := []rune(s)
	if precision >= 3 && precision < len(runes) {
		head := string(runes[:precision-rstart-3])
		tail := string(runes[len(runes)-rstart:])
		out = head + "..." + tail
	}
	trimCache.Add(key, out)
	return out
}
