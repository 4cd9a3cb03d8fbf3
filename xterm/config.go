package xterm

// Config is an immutable bundle of the DEC private modes an App enables on
// Open and disables (or otherwise reverts) on Close. NewConfig with no
// options is the baseline: no alternate buffer, no mouse reporting, cursor
// shown, smooth scroll on, autowrap on. The zero Config differs from it in
// having smooth scroll and autowrap off.
type Config struct {
	alternateBuffer bool
	alternateScroll bool
	hideCursor      bool
	scrollRegion    *scrollRegion
	metaKey         bool
	altNumlock      bool
	smoothScroll    bool
	fastScroll      bool
	autoWrap        bool
	sgrMouse        bool
	utf8Mouse       bool
	urxvtMouse      bool
	mouseEvents     bool
}

type scrollRegion struct {
	top, bottom int
}

// Option configures a Config at construction time.
type Option func(*Config)

// NewConfig builds a Config from the given options, with smooth scroll and
// autowrap on by default (matching the original dataclass defaults).
func NewConfig(opts ...Option) Config {
	c := Config{smoothScroll: true, autoWrap: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithAlternateBuffer switches to the alternate screen buffer on Open.
func WithAlternateBuffer() Option { return func(c *Config) { c.alternateBuffer = true } }

// WithAlternateScroll enables alternate-scroll mode (wheel scroll sends
// arrow keys in the alternate buffer instead of scrolling it).
func WithAlternateScroll() Option { return func(c *Config) { c.alternateScroll = true } }

// WithHiddenCursor hides the cursor for the duration of the app context.
func WithHiddenCursor() Option { return func(c *Config) { c.hideCursor = true } }

// WithScrollingRegion sets a DECSTBM scrolling region [top, bottom].
func WithScrollingRegion(top, bottom int) Option {
	return func(c *Config) { c.scrollRegion = &scrollRegion{top: top, bottom: bottom} }
}

// WithMetaKey enables the meta-key-sends-escape mode.
func WithMetaKey() Option { return func(c *Config) { c.metaKey = true } }

// WithAltNumlock enables the alt-sends-escape numlock mode.
func WithAltNumlock() Option { return func(c *Config) { c.altNumlock = true } }

// WithoutSmoothScroll disables smooth (jump) scroll.
func WithoutSmoothScroll() Option { return func(c *Config) { c.smoothScroll = false } }

// WithFastScroll enables fast scroll mode.
func WithFastScroll() Option { return func(c *Config) { c.fastScroll = true } }

// WithoutAutoWrap disables autowrap.
func WithoutAutoWrap() Option { return func(c *Config) { c.autoWrap = false } }

// WithSGRMouse enables SGR (1006) mouse reporting.
func WithSGRMouse() Option { return func(c *Config) { c.sgrMouse = true } }

// WithUTF8Mouse enables UTF-8 (1005) mouse reporting.
func WithUTF8Mouse() Option { return func(c *Config) { c.utf8Mouse = true } }

// WithURxvtMouse enables urxvt (1015) mouse reporting.
func WithURxvtMouse() Option { return func(c *Config) { c.urxvtMouse = true } }

// WithMouseEvents enables mouse button/motion event reporting (1003).
func WithMouseEvents() Option { return func(c *Config) { c.mouseEvents = true } }
