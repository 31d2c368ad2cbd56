// Package view projects the materialized forest into presentation orders
// and implements substring search over it. Projections are pure reads; they
// never mutate the tree store.
package view

import (
	"html"
	"sort"
	"strings"
	"unicode"

	"github.com/burrowhq/burrow/internal/model"
)

// Forest is the read surface a projection needs from the tree store.
type Forest interface {
	Story() *model.StoryRoot
	Roots() []*model.CommentNode
	IsCollapsed(id int64) bool
	IsHighlighted(id int64) bool
	SubtreeSize(id int64) int
}

// Nested walks the forest depth-first in pre-order. A collapsed node keeps
// its header row but its children are skipped; the row carries the count of
// replies it is hiding.
func Nested(f Forest) []model.NodeView {
	var out []model.NodeView
	var walk func(nodes []*model.CommentNode)
	walk = func(nodes []*model.CommentNode) {
		for _, n := range nodes {
			row := model.NodeView{
				Node:        n,
				Collapsed:   f.IsCollapsed(n.ID),
				Highlighted: f.IsHighlighted(n.ID),
			}
			if row.Collapsed {
				row.HiddenReplies = f.SubtreeSize(n.ID) - 1
				out = append(out, row)
				continue
			}
			out = append(out, row)
			walk(n.Children)
		}
	}
	walk(f.Roots())
	return out
}

// Recency flattens the whole materialized forest into one list sorted by
// creation time, newest first, each row annotated with its nearest
// enclosing context: a snippet of the parent comment, or the story title
// for top-level comments. Collapse state is ignored; recency order shows
// the same node set as nested order.
func Recency(f Forest) []model.NodeView {
	story := f.Story()
	var out []model.NodeView
	var walk func(nodes []*model.CommentNode, parent *model.CommentNode)
	walk = func(nodes []*model.CommentNode, parent *model.CommentNode) {
		for _, n := range nodes {
			ctx := ""
			if parent != nil {
				ctx = Snippet(parent.BodyHTML, 80)
			} else if story != nil {
				ctx = story.Title
			}
			out = append(out, model.NodeView{
				Node:        n,
				Highlighted: f.IsHighlighted(n.ID),
				Context:     ctx,
			})
			walk(n.Children, n)
		}
	}
	walk(f.Roots(), nil)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Node, out[j].Node
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt > b.CreatedAt
		}
		return a.ID > b.ID
	})
	return out
}

// Search walks the materialized forest in pre-order and returns nodes whose
// author or body text contains term, case-insensitively, with every
// occurrence wrapped in <mark> for highlighting. Body matching sees only
// text content, never tag markup, and it only sees what has been
// materialized; it is not a query against the item source.
func Search(f Forest, term string) []model.SearchMatch {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	want := foldRunes(term)

	var out []model.SearchMatch
	var walk func(nodes []*model.CommentNode)
	walk = func(nodes []*model.CommentNode) {
		for _, n := range nodes {
			authorHit := containsFold(n.Author, want)
			bodyHit := containsFold(stripTags(n.BodyHTML), want)
			if authorHit || bodyHit {
				m := model.SearchMatch{Node: n}
				if authorHit {
					m.AuthorHighlight = Mark(n.Author, term)
				}
				if bodyHit {
					m.BodyHighlight = Mark(n.BodyHTML, term)
				}
				out = append(out, m)
			}
			walk(n.Children)
		}
	}
	walk(f.Roots())
	return out
}

// Mark wraps every case-insensitive occurrence of term in s with a <mark>
// tag, preserving the original casing of the matched text. Comparison is
// per rune, never via a lowered copy of s: some runes change byte length
// when lowercased, so indexes into a lowered string do not transfer back to
// the original. Tag markup is copied through unmatched.
func Mark(s, term string) string {
	want := foldRunes(term)
	if len(want) == 0 {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	for i := 0; i < len(runes); {
		if runes[i] == '<' {
			// Inside a tag; a match may neither start nor end here.
			for i < len(runes) {
				r := runes[i]
				b.WriteRune(r)
				i++
				if r == '>' {
					break
				}
			}
			continue
		}
		if n := matchFold(runes[i:], want); n > 0 {
			b.WriteString("<mark>")
			b.WriteString(string(runes[i : i+n]))
			b.WriteString("</mark>")
			i += n
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

func foldRunes(term string) []rune {
	runes := []rune(term)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// matchFold reports how many leading runes of s fold-match want, or 0.
func matchFold(s, want []rune) int {
	if len(s) < len(want) {
		return 0
	}
	for i, w := range want {
		if unicode.ToLower(s[i]) != w {
			return 0
		}
	}
	return len(want)
}

func containsFold(s string, want []rune) bool {
	if len(want) == 0 {
		return false
	}
	runes := []rune(s)
	for i := range runes {
		if matchFold(runes[i:], want) > 0 {
			return true
		}
	}
	return false
}

// Snippet reduces an HTML comment body to a short plain-text excerpt.
func Snippet(bodyHTML string, max int) string {
	text := stripTags(bodyHTML)
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			// Tag boundaries separate words in the excerpt.
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
