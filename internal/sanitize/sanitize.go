// Package sanitize scrubs remote comment bodies before they enter the
// forest. The item source serves user-authored HTML; nothing downstream
// should have to trust it.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// policy matches the markup the item source actually emits in comment
// bodies: inline formatting, paragraphs, code blocks and plain links.
var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "i", "b", "em", "strong", "pre", "code", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(true)
	return p
}

// Body returns the comment body with everything outside the allowed markup
// removed. Plain text passes through unchanged.
func Body(html string) string {
	return policy.Sanitize(html)
}
