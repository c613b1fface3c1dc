// Package clean reduces noise in a HAR capture: drops static-asset and
// stylesheet traffic by MIME type and URL extension, strips per-entry
// metadata, and truncates base64 binary bodies that would otherwise swamp
// an analysis context window.
package clean

import (
	"strings"

	"github.com/harprep/harprep/internal/har"
)

// Stats reports the entry counts of a clean run. Kept+Removed == Original.
type Stats struct {
	Original int `json:"original"`
	Kept     int `json:"kept"`
	Removed  int `json:"removed"`
}

// Blocklist pairs MIME-type fragments (substring match) with URL extensions
// (suffix match, query string already stripped). Blocklists are plain data
// so callers and tests can substitute their own.
type Blocklist struct {
	MIMEFragments []string
	Extensions    []string
}

// StaticAssets covers images, audio, video, and fonts.
var StaticAssets = Blocklist{
	MIMEFragments: []string{
		"image/", "audio/", "video/", "font/", "application/font",
		"application/woff", "application/x-font",
	},
	Extensions: []string{
		".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
		".woff", ".woff2", ".ttf", ".eot", ".mp4", ".mp3",
	},
}

// Stylesheets covers CSS and source maps.
var Stylesheets = Blocklist{
	MIMEFragments: []string{"text/css"},
	Extensions:    []string{".css", ".map"},
}

// metadataKeys are stripped from every surviving entry regardless of flags.
// Timing and cache detail is noise for logic-level security analysis.
var metadataKeys = []string{"timings", "cache", "pageref", "time", "_initiator", "_priority"}

const binaryPlaceholder = "[BINARY_DATA_REMOVED]"

// browserStamp replaces log.browser so cleaned files are self-identifying.
var browserStamp = map[string]any{"name": "harclean", "version": "2.0"}

// Options controls what the cleaner keeps. A non-nil Blocklist replaces the
// built-in defaults entirely; the Keep flags then have no effect on it.
type Options struct {
	KeepStatic bool
	KeepCSS    bool
	KeepBinary bool
	Blocklist  *Blocklist
}

// Cleaner holds the blocklist assembled from Options.
type Cleaner struct {
	opts  Options
	block Blocklist
}

// New assembles a Cleaner. With no custom blocklist, static assets are
// blocked unless KeepStatic and stylesheets unless KeepCSS.
func New(opts Options) *Cleaner {
	c := &Cleaner{opts: opts}
	if opts.Blocklist != nil {
		c.block = *opts.Blocklist
		return c
	}
	if !opts.KeepStatic {
		c.block.MIMEFragments = append(c.block.MIMEFragments, StaticAssets.MIMEFragments...)
		c.block.Extensions = append(c.block.Extensions, StaticAssets.Extensions...)
	}
	if !opts.KeepCSS {
		c.block.MIMEFragments = append(c.block.MIMEFragments, Stylesheets.MIMEFragments...)
		c.block.Extensions = append(c.block.Extensions, Stylesheets.Extensions...)
	}
	return c
}

// Clean filters and strips the document in place. Requires log.entries.
// Document-level cleanup (pages removal, browser stamp) happens on every
// run, independent of flags.
func (c *Cleaner) Clean(doc *har.Document) (Stats, error) {
	entries, ok := doc.Entries()
	if !ok {
		return Stats{}, har.ErrSchema
	}

	kept := make([]any, 0, len(entries))
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			kept = append(kept, raw)
			continue
		}
		if c.blocked(entry) {
			continue
		}
		for _, key := range metadataKeys {
			delete(entry, key)
		}
		if !c.opts.KeepBinary {
			truncateBinaryBody(entry)
		}
		kept = append(kept, entry)
	}
	if err := doc.SetEntries(kept); err != nil {
		return Stats{}, err
	}

	if logVal, ok := doc.Log(); ok {
		delete(logVal, "pages")
		logVal["browser"] = browserStamp
	}

	return Stats{
		Original: len(entries),
		Kept:     len(kept),
		Removed:  len(entries) - len(kept),
	}, nil
}

// blocked reports whether the entry's MIME type or URL extension hits the
// blocklist. Either check alone is enough to drop the entry.
func (c *Cleaner) blocked(entry map[string]any) bool {
	mime := strings.ToLower(contentField(entry, "mimeType"))
	for _, frag := range c.block.MIMEFragments {
		if frag != "" && strings.Contains(mime, frag) {
			return true
		}
	}

	url, _ := dig(entry, "request", "url").(string)
	url = strings.ToLower(url)
	if i := strings.IndexByte(url, '?'); i >= 0 {
		url = url[:i]
	}
	for _, ext := range c.block.Extensions {
		if ext != "" && strings.HasSuffix(url, ext) {
			return true
		}
	}
	return false
}

// truncateBinaryBody replaces a base64-encoded response body with a short
// placeholder. Text bodies pass through untouched.
func truncateBinaryBody(entry map[string]any) {
	content, ok := dig(entry, "response", "content").(map[string]any)
	if !ok {
		return
	}
	if content["encoding"] != "base64" {
		return
	}
	if _, ok := content["text"]; ok {
		content["text"] = binaryPlaceholder
	}
}

func contentField(entry map[string]any, key string) string {
	s, _ := dig(entry, "response", "content", key).(string)
	return s
}

// dig walks nested objects by key, returning nil when any step is missing
// or not an object.
func dig(v map[string]any, keys ...string) any {
	var cur any = v
	for _, key := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[key]
	}
	return cur
}
