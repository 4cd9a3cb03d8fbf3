// Package keysym defines the closed set of logical key events grove's input
// recorder can decode, and the raw byte-sequence aliases each one answers to
// across POSIX and legacy Windows console encodings.
package keysym

// Symbol is an immutable named key event carrying the set of raw byte
// sequences that decode to it. Equality against a burst string is membership
// in Aliases, not identity: use Symbol.Is to test a decoded burst.
type Symbol struct {
	name    string
	aliases map[string]struct{}
}

// newSymbol builds a Symbol from one or more raw alias strings. A Symbol
// with no aliases would never match anything, so this panics on an empty
// alias list — every Symbol defined in this package is a compile-time
// literal, so that can only happen from a bug here.
func newSymbol(name string, aliases ...string) Symbol {
	if len(aliases) == 0 {
		panic("keysym: " + name + " has no aliases")
	}
	set := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		set[a] = struct{}{}
	}
	return Symbol{name: name, aliases: set}
}

// Name returns the symbol's identifier, e.g. "ENTER".
func (s Symbol) Name() string { return s.name }

// Aliases returns the symbol's raw byte-sequence aliases.
func (s Symbol) Aliases() []string {
	out := make([]string, 0, len(s.aliases))
	for a := range s.aliases {
		out = append(out, a)
	}
	return out
}

// Is reports whether a decoded key burst equals this symbol, i.e. whether
// burst is one of its aliases.
func (s Symbol) Is(burst string) bool {
	_, ok := s.aliases[burst]
	return ok
}

// Group is a union of alias sets from several symbols, consulted by bindings
// (never by the decoder itself, per spec).
type Group struct {
	aliases map[string]struct{}
}

// Has reports whether burst belongs to any symbol in the group.
func (g Group) Has(burst string) bool {
	_, ok := g.aliases[burst]
	return ok
}

func newGroup(symbols ...Symbol) Group {
	set := make(map[string]struct{})
	for _, s := range symbols {
		for a := range s.aliases {
			set[a] = struct{}{}
		}
	}
	return Group{aliases: set}
}

// Named key symbols. Alias lists reproduce the table in spec.md §6
// verbatim: DEC/CSI forms plus the legacy Windows scan-code pairs
// (leading 0xE0 or 0x00), which the Windows console reader in
// internal/rawmode delivers, so one symbol set serves both platforms.
var (
	ESC   = newSymbol("ESC", "\x1b")
	ENTER = newSymbol("ENTER", "\r", "\n", "\x1bOM")
	TAB   = newSymbol("TAB", "\t", "\x1bOI")
	SPACE = newSymbol("SPACE", " ", "\x1bO ")

	INSERT    = newSymbol("INSERT", "\x1b[2~")
	DEL       = newSymbol("DEL", "\x2e", "\x1b[3~", "\x00S", "\xe0S")
	CTRL_DEL  = newSymbol("CTRL_DEL", "\xe0\x93", "\x00\x93")
	BACKSPACE = newSymbol("BACKSPACE", "\x7f", "\x08")
	CTRL_BS   = newSymbol("CTRL_BS", "\x17")

	L_ARROW = newSymbol("L_ARROW", "\x1b[D", "\xe0K", "\x1bOD", "\x00K")
	R_ARROW = newSymbol("R_ARROW", "\x1b[C", "\xe0M", "\x1bOC", "\x00M")
	U_ARROW = newSymbol("U_ARROW", "\x1b[A", "\xe0H", "\x1bOA", "\x00H")
	D_ARROW = newSymbol("D_ARROW", "\x1b[B", "\xe0P", "\x1bOB", "\x00P")

	OPT_LARROW  = newSymbol("OPT_LARROW", "\x1bb")
	OPT_RARROW  = newSymbol("OPT_RARROW", "\x1bf")
	CTRL_LARROW = newSymbol("CTRL_LARROW", "\xe0s", "\x00s")
	CTRL_RARROW = newSymbol("CTRL_RARROW", "\xe0t", "\x00t")

	HOME = newSymbol("HOME", "\x1b[H", "\xe0G", "\x1bOH", "\x1b[1~", "\x00G")
	END  = newSymbol("END", "\x1b[F", "\xe0O", "\x1bOF", "\x1b[4~", "\x00O")

	PG_UP   = newSymbol("PG_UP", "\xe0I", "\x1b[5~", "\x00I")
	PG_DOWN = newSymbol("PG_DOWN", "\xe0Q", "\x1b[6~", "\x00Q")

	CTRL_A = newSymbol("CTRL_A", "\x01")
	CTRL_B = newSymbol("CTRL_B", "\x02")
	CTRL_C = newSymbol("CTRL_C", "\x03")
	CTRL_D = newSymbol("CTRL_D", "\x04")
	CTRL_E = newSymbol("CTRL_E", "\x05")
	CTRL_F = newSymbol("CTRL_F", "\x06")
	CTRL_G = newSymbol("CTRL_G", "\x07")
	CTRL_H = newSymbol("CTRL_H", "\x08")
	CTRL_I = newSymbol("CTRL_I", "\x09")
	CTRL_J = newSymbol("CTRL_J", "\x0a")
	CTRL_K = newSymbol("CTRL_K", "\x0b")
	CTRL_L = newSymbol("CTRL_L", "\x0c")
	CTRL_M = newSymbol("CTRL_M", "\x0d")
	CTRL_N = newSymbol("CTRL_N", "\x0e")
	CTRL_O = newSymbol("CTRL_O", "\x0f")
	CTRL_P = newSymbol("CTRL_P", "\x10")
	CTRL_Q = newSymbol("CTRL_Q", "\x11")
	CTRL_R = newSymbol("CTRL_R", "\x12")
	CTRL_S = newSymbol("CTRL_S", "\x13")
	CTRL_T = newSymbol("CTRL_T", "\x14")
	CTRL_U = newSymbol("CTRL_U", "\x15")
	CTRL_V = newSymbol("CTRL_V", "\x16")
	CTRL_W = newSymbol("CTRL_W", "\x17")
	CTRL_X = newSymbol("CTRL_X", "\x18")
	CTRL_Y = newSymbol("CTRL_Y", "\x19")
	CTRL_Z = newSymbol("CTRL_Z", "\x1a")

	F1  = newSymbol("F1", "\x1bOP", "\x00;")
	F2  = newSymbol("F2", "\x1bOQ", "\x00<")
	F3  = newSymbol("F3", "\x1bOR", "\x00=")
	F4  = newSymbol("F4", "\x1bOS", "\x00>")
	F5  = newSymbol("F5", "\x1b[15~")
	F6  = newSymbol("F6", "\x1b[17~")
	F7  = newSymbol("F7", "\x1b[18~")
	F8  = newSymbol("F8", "\x1b[19~")
	F9  = newSymbol("F9", "\x1b[20~")
	F10 = newSymbol("F10", "\x1b[21~")
	F11 = newSymbol("F11", "\x1b[23~")
	F12 = newSymbol("F12", "\x1b[24~")
)

// Groupings are unions consulted only by bindings.
var (
	FUNCTION = newGroup(F1, F2, F3, F4, F5, F6, F7, F8, F9, F10, F11, F12)
	ARROWS   = newGroup(U_ARROW, D_ARROW, R_ARROW, L_ARROW)
	NAV      = newGroup(ARROWS.symbols(), HOME, END, PG_UP, PG_DOWN)
	CTRL     = newGroup(
		CTRL_A, CTRL_B, CTRL_C, CTRL_D, CTRL_E, CTRL_F, CTRL_G, CTRL_H, CTRL_I,
		CTRL_J, CTRL_K, CTRL_L, CTRL_M, CTRL_N, CTRL_O, CTRL_P, CTRL_Q, CTRL_R,
		CTRL_S, CTRL_T, CTRL_U, CTRL_V, CTRL_W, CTRL_X, CTRL_Y, CTRL_Z,
	)
)

// symbols reconstructs pseudo-Symbols from a Group's alias set so it can be
// folded into a wider Group (used to build NAV out of ARROWS plus more).
func (g Group) symbols() Symbol {
	return Symbol{name: "", aliases: g.aliases}
}
