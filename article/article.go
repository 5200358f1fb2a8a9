// Package article post-processes stored article HTML: reading time, heading
// anchors for the table of contents, excerpts, and splicing call-to-action
// markup into the body.
//
// Bodies are parsed into a node tree with golang.org/x/net/html and rendered
// back, so splice points and anchors follow the document structure rather
// than tag boundaries in the source text. Every function is total: if the
// input cannot be parsed it is returned as is.
package article

import (
	"bytes"
	"math"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WordsPerMinute is the reading speed used by ReadTime.
const WordsPerMinute = 200

// Ellipsis is appended to truncated excerpts.
const Ellipsis = "..."

// StripTags returns the text content of s with all markup removed and
// entities decoded. Script and style contents are dropped. The result is
// trimmed of surrounding whitespace.
func StripTags(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a read error; either way the text so far is all there is.
			return strings.TrimSpace(b.String())
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			if isRawText(name) {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if isRawText(name) && skip > 0 {
				skip--
			}
		}
	}
}

func isRawText(name []byte) bool {
	a := atom.Lookup(name)
	return a == atom.Script || a == atom.Style
}

// ReadTime estimates reading time in whole minutes, never less than one.
func ReadTime(s string) int {
	words := len(strings.Fields(StripTags(s)))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Excerpt returns the text of s cut to budget characters. Text that already
// fits is returned unchanged; longer text is cut and followed by Ellipsis.
func Excerpt(s string, budget int) string {
	text := StripTags(s)
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	if budget < 0 {
		budget = 0
	}
	return string(runes[:budget]) + Ellipsis
}

// Slug converts heading text to an anchor identifier: lowercase ASCII letters
// and digits, with every other run of characters collapsed to one hyphen and
// no leading or trailing hyphen.
func Slug(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	pending := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pending = false
		default:
			pending = true
		}
	}
	return b.String()
}

// fragment is a parsed body: a detached container whose children are the
// top-level nodes of the markup.
type fragment struct {
	root *html.Node
}

func parse(s string) (*fragment, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &fragment{root: root}, nil
}

func (f *fragment) String() (string, error) {
	var buf bytes.Buffer
	for c := f.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// elements returns every element node under root in document order.
func (f *fragment) elements() []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(f.root)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func isAncestor(a, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}
