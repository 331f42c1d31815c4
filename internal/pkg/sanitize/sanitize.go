// Package sanitize strips HTML from user-supplied text before it is stored.
// Labels and testimonials are rendered back to visitors, so markup is never
// allowed through.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Strip removes every tag and attribute, leaving plain text.
func Strip(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// StripAll applies Strip to each element, preserving order.
func StripAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Strip(s)
	}
	return out
}
