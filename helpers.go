package carehub

import (
	"net/url"
	"path"
	"strings"

	"github.com/eringen/carehub/content"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// BlogPath returns the site path of a blog post.
func BlogPath(slug string) string { return "/blog/" + url.PathEscape(slug) + "/" }

// ConditionPath returns the site path of a condition hub.
func ConditionPath(slug string) string { return "/conditions/" + url.PathEscape(slug) + "/" }

// CarePath returns the site path of a care service.
func CarePath(slug string) string { return "/care/" + url.PathEscape(slug) + "/" }

// LabsPath returns the site path of a labs panel.
func LabsPath(slug string) string { return "/labs/" + url.PathEscape(slug) + "/" }

// ConditionIndexURL returns the conditions listing URL for a search query and
// category. Empty values are left out so the unfiltered listing is "/conditions/".
func ConditionIndexURL(query string, category content.Category) string {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if category != "" && category != content.CategoryAll {
		q.Set("category", string(category))
	}
	if len(q) == 0 {
		return "/conditions/"
	}
	return "/conditions/?" + q.Encode()
}
