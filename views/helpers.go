package views

import (
	"fmt"
	"strings"

	"github.com/eringen/carehub/content"
)

// chipClass returns CSS classes for a category chip, with active variant.
func chipClass(active bool) string {
	if active {
		return "chip chip-active"
	}
	return "chip"
}

// readTime formats an estimated reading time.
func readTime(minutes int) string {
	return fmt.Sprintf("%d min read", minutes)
}

// postMeta is the byline line of a post card.
func postMeta(p content.BlogPost, minutes int) string {
	parts := make([]string, 0, 3)
	if d := p.PublishedDate.Long(); d != "" {
		parts = append(parts, d)
	}
	if p.Author != "" {
		parts = append(parts, p.Author)
	}
	parts = append(parts, readTime(minutes))
	return strings.Join(parts, " · ")
}

// pageTitle is the <title> text: "Page | Site", or just the site name.
func pageTitle(title, site string) string {
	switch {
	case title == "":
		return site
	case site == "" || title == site:
		return title
	}
	return title + " | " + site
}

func pressed(active bool) string {
	if active {
		return "true"
	}
	return "false"
}
