package article

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Heading is a level-2 or level-3 heading and its anchor.
type Heading struct {
	ID    string
	Text  string
	Level int
}

// fallbackID is used for headings whose text has no letters or digits.
const fallbackID = "section"

// ExtractHeadings returns the h2 and h3 headings of s in document order.
//
// A heading that already carries an id keeps it. Otherwise the id is the Slug
// of its text, suffixed with -2, -3, ... when that id is already taken by
// another element or an earlier heading, so every anchor is unique.
func ExtractHeadings(s string) []Heading {
	f, err := parse(s)
	if err != nil {
		return nil
	}
	return f.assignIDs(false)
}

// InjectHeadingIDs writes the ids ExtractHeadings would report onto every h2
// and h3 that lacks one. Headings with an id are left alone, so applying it
// twice gives the same result as applying it once.
func InjectHeadingIDs(s string) string {
	f, err := parse(s)
	if err != nil {
		return s
	}
	f.assignIDs(true)
	out, err := f.String()
	if err != nil {
		return s
	}
	return out
}

func (f *fragment) assignIDs(write bool) []Heading {
	elems := f.elements()
	taken := make(map[string]struct{})
	for _, n := range elems {
		if id, ok := attr(n, "id"); ok && id != "" {
			taken[id] = struct{}{}
		}
	}

	var headings []Heading
	for _, n := range elems {
		level := headingLevel(n)
		if level == 0 {
			continue
		}
		text := textContent(n)
		id, ok := attr(n, "id")
		if !ok || id == "" {
			id = uniqueID(Slug(text), taken)
			taken[id] = struct{}{}
			if write {
				setAttr(n, "id", id)
			}
		}
		headings = append(headings, Heading{ID: id, Text: text, Level: level})
	}
	return headings
}

func headingLevel(n *html.Node) int {
	switch n.DataAtom {
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	}
	return 0
}

func uniqueID(base string, taken map[string]struct{}) string {
	if base == "" {
		base = fallbackID
	}
	if _, used := taken[base]; !used {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if _, used := taken[candidate]; !used {
			return candidate
		}
	}
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// InsertAfterSecondH2 places snippet right after the first paragraph that
// follows the second h2 of s. When s has fewer than two h2 headings, or no
// paragraph follows the second one, snippet is appended to the end.
func InsertAfterSecondH2(s, snippet string) string {
	doc, err := parse(s)
	if err != nil {
		return s + snippet
	}
	insert, err := parse(snippet)
	if err != nil {
		return s + snippet
	}

	if p := paragraphAfterSecondH2(doc.elements()); p != nil {
		next := p.NextSibling
		for c := insert.root.FirstChild; c != nil; {
			following := c.NextSibling
			insert.root.RemoveChild(c)
			p.Parent.InsertBefore(c, next)
			c = following
		}
	} else {
		for c := insert.root.FirstChild; c != nil; {
			following := c.NextSibling
			insert.root.RemoveChild(c)
			doc.root.AppendChild(c)
			c = following
		}
	}

	out, err := doc.String()
	if err != nil {
		return s + snippet
	}
	return out
}

func paragraphAfterSecondH2(elems []*html.Node) *html.Node {
	var second *html.Node
	seen := 0
	for _, n := range elems {
		if second == nil {
			if n.DataAtom == atom.H2 {
				seen++
				if seen == 2 {
					second = n
				}
			}
			continue
		}
		if n.DataAtom == atom.P && !isAncestor(second, n) {
			return n
		}
	}
	return nil
}
