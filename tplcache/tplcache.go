package tplcache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"

	"github.com/byte4ever/strtemplate/strtemplate"
)

// Cache holds compiled templates. The zero value is ready
// to use and safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*strtemplate.Template
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{}
}

// Key computes the SHA256 hex digest identifying a
// template compiled from source with the given delimiters
// and output mode.
func Key(
	source string,
	startTag string,
	endTag string,
	fragments bool,
) string {
	ha := sha256.New()

	// Length prefixes keep ("a", "bc") and ("ab", "c")
	// apart.
	for _, part := range []string{
		startTag, endTag, strconv.FormatBool(fragments), source,
	} {
		_, _ = ha.Write([]byte(strconv.Itoa(len(part)) + ":")) //nolint:errcheck // hash writes never fail
		_, _ = ha.Write([]byte(part))                           //nolint:errcheck // hash writes never fail
	}

	return hex.EncodeToString(ha.Sum(nil))
}

// Compile returns the cached template for source and opts,
// compiling it on first use.
func (c *Cache) Compile(
	source string,
	opts ...strtemplate.Option,
) *strtemplate.Template {
	st := strtemplate.SettingsOf(opts...)
	key := Key(source, st.StartTag, st.EndTag, st.Fragments)

	c.mu.RLock()
	tpl, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		return tpl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if tpl, ok := c.entries[key]; ok {
		return tpl
	}

	if c.entries == nil {
		c.entries = make(map[string]*strtemplate.Template)
	}

	tpl = strtemplate.Compile(source, opts...)
	c.entries[key] = tpl

	return tpl
}

// Len returns the number of cached templates.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Reset drops every cached template.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
}
