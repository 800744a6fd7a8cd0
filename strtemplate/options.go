package strtemplate

// Default placeholder delimiters.
const (
	DefaultStartTag = "${"
	DefaultEndTag   = "}"
)

type config struct {
	startTag  string
	endTag    string
	fragments bool
}

func defaultConfig() config {
	return config{
		startTag: DefaultStartTag,
		endTag:   DefaultEndTag,
	}
}

// Option configures Compile.
type Option func(*config)

// WithTags sets both placeholder delimiters. Tags are not
// validated: empty or overlapping tags are accepted.
func WithTags(start, end string) Option {
	return func(co *config) {
		co.startTag = start
		co.endTag = end
	}
}

// WithStartTag sets the opening delimiter.
func WithStartTag(start string) Option {
	return func(co *config) { co.startTag = start }
}

// WithEndTag sets the closing delimiter.
func WithEndTag(end string) Option {
	return func(co *config) { co.endTag = end }
}

// WithFragments makes Execute and Func return the filled
// fragment sequence ([]any) instead of the joined string.
func WithFragments() Option {
	return func(co *config) { co.fragments = true }
}

// Settings is the resolved form of a list of options.
type Settings struct {
	StartTag  string
	EndTag    string
	Fragments bool
}

// SettingsOf applies opts over the defaults without
// compiling anything.
func SettingsOf(opts ...Option) Settings {
	co := defaultConfig()
	for _, o := range opts {
		o(&co)
	}

	return Settings{
		StartTag:  co.startTag,
		EndTag:    co.endTag,
		Fragments: co.fragments,
	}
}
