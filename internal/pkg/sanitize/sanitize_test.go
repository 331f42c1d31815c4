package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<script>alert(1)</script>Weddings", "Weddings"},
		{"<b>Events</b>", "Events"},
		{"  padded  ", "padded"},
		{`<a href="https://evil">link</a>`, "link"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Strip(tc.in), "input %q", tc.in)
	}
}

func TestStripAll(t *testing.T) {
	got := StripAll([]string{"<i>one</i>", "two"})
	assert.Equal(t, []string{"one", "two"}, got)
}
