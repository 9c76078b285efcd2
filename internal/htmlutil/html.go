// Package htmlutil cleans generated or pasted blog HTML and derives plain-text
// excerpts and URL slugs from it.
package htmlutil

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// excerptSkipped elements contribute no visible text to an excerpt.
var excerptSkipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// policy is bluemonday's allowlist for user content. URLs must parse and be
// relative or http, https or mailto; svg, math, forms and event handlers are
// dropped.
var policy = bluemonday.UGCPolicy()

// Sanitize keeps the allowed subset of an HTML fragment and drops the rest.
func Sanitize(content string) string {
	return strings.TrimSpace(policy.Sanitize(content))
}

// Excerpt returns at most max runes of the fragment's visible text, cut at a
// word boundary.
func Excerpt(content string, max int) string {
	nodes, err := parseFragment(content)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, n := range nodes {
		collectText(&b, n)
	}
	text := strings.Join(strings.Fields(b.String()), " ")
	r := []rune(text)
	if max <= 0 || len(r) <= max {
		return text
	}
	cut := string(r[:max])
	if i := strings.LastIndex(cut, " "); i > max/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

var fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns a title into a lower-case hyphenated ASCII-friendly slug.
func Slugify(title string) string {
	folded, _, err := transform.String(fold, title)
	if err != nil {
		folded = title
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "post"
	}
	return slug
}

func parseFragment(content string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(content), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return nodes, nil
}

func collectText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	case html.ElementNode:
		if excerptSkipped[n.DataAtom] {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}
