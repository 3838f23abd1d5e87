// Package htmlsanitize strips dangerous markup from user-supplied HTML.
// Course titles and descriptions are authored by teachers and rendered in
// the catalog, so everything persisted through the write paths goes
// through Sanitize first.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// Sanitize returns s with scripts, event handlers, and javascript: URLs
// removed. Formatting tags typical of user-generated content (p, strong,
// em, lists, links) are preserved; links gain rel="nofollow".
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// StrictSanitize strips all markup, leaving plain text. Used for fields
// that should never contain HTML at all (titles, categories, tags).
func StrictSanitize(s string) string {
	if s == "" {
		return ""
	}
	return bluemonday.StrictPolicy().Sanitize(s)
}
