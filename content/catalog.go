// Package content holds the in-memory content catalog: condition hubs, blog
// posts, care services and lab panels, looked up by slug.
//
// A Catalog is built once at process start and never mutated, so it can be
// shared by every request without locking.
package content

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// ErrNotFound is returned when no record matches a slug.
var ErrNotFound = errors.New("content: not found")

// Catalog is an immutable collection of content records.
type Catalog struct {
	conditions []ConditionHub
	posts      []BlogPost
	care       []CareService
	labs       []LabsPanel
}

// New builds a Catalog from the given records. The slices are copied.
// Slugs must be non-empty and unique within each record type.
func New(conditions []ConditionHub, posts []BlogPost, care []CareService, labs []LabsPanel) (*Catalog, error) {
	var errs []error
	errs = append(errs, checkSlugs("condition", conditions, func(c ConditionHub) string { return c.Slug })...)
	errs = append(errs, checkSlugs("blog post", posts, func(p BlogPost) string { return p.Slug })...)
	errs = append(errs, checkSlugs("care service", care, func(c CareService) string { return c.Slug })...)
	errs = append(errs, checkSlugs("labs panel", labs, func(l LabsPanel) string { return l.Slug })...)
	for _, c := range conditions {
		if !c.Category.Valid() {
			errs = append(errs, fmt.Errorf("condition %q: unknown category %q", c.Slug, c.Category))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Catalog{
		conditions: slices.Clone(conditions),
		posts:      slices.Clone(posts),
		care:       slices.Clone(care),
		labs:       slices.Clone(labs),
	}, nil
}

func checkSlugs[T any](kind string, records []T, slug func(T) string) []error {
	var errs []error
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		s := slug(r)
		if s == "" {
			errs = append(errs, fmt.Errorf("%s #%d: slug is required", kind, i+1))
			continue
		}
		if _, dup := seen[s]; dup {
			errs = append(errs, fmt.Errorf("%s %q: duplicate slug", kind, s))
			continue
		}
		seen[s] = struct{}{}
	}
	return errs
}

// BlogBySlug returns the blog post with the given slug.
func (c *Catalog) BlogBySlug(slug string) (BlogPost, error) {
	for _, p := range c.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

// ConditionBySlug returns the condition hub with the given slug.
func (c *Catalog) ConditionBySlug(slug string) (ConditionHub, error) {
	for _, h := range c.conditions {
		if h.Slug == slug {
			return h, nil
		}
	}
	return ConditionHub{}, ErrNotFound
}

// CareBySlug returns the care service with the given slug.
func (c *Catalog) CareBySlug(slug string) (CareService, error) {
	for _, s := range c.care {
		if s.Slug == slug {
			return s, nil
		}
	}
	return CareService{}, ErrNotFound
}

// LabsBySlug returns the labs panel with the given slug.
func (c *Catalog) LabsBySlug(slug string) (LabsPanel, error) {
	for _, l := range c.labs {
		if l.Slug == slug {
			return l, nil
		}
	}
	return LabsPanel{}, ErrNotFound
}

// Conditions returns every condition hub in catalog order.
func (c *Catalog) Conditions() []ConditionHub { return slices.Clone(c.conditions) }

// BlogPosts returns every blog post in catalog order.
func (c *Catalog) BlogPosts() []BlogPost { return slices.Clone(c.posts) }

// CareServices returns every care service in catalog order.
func (c *Catalog) CareServices() []CareService { return slices.Clone(c.care) }

// LabsPanels returns every labs panel in catalog order.
func (c *Catalog) LabsPanels() []LabsPanel { return slices.Clone(c.labs) }

// ConditionsBySlugs resolves slugs in order, skipping any that do not exist.
// At most limit conditions are returned; limit <= 0 means no limit.
func (c *Catalog) ConditionsBySlugs(slugs []string, limit int) []ConditionHub {
	var out []ConditionHub
	for _, s := range slugs {
		if limit > 0 && len(out) == limit {
			break
		}
		if h, err := c.ConditionBySlug(s); err == nil {
			out = append(out, h)
		}
	}
	return out
}

// PostsForCondition returns posts whose primary condition is slug.
func (c *Catalog) PostsForCondition(slug string) []BlogPost {
	var out []BlogPost
	for _, p := range c.posts {
		if p.PrimaryConditionSlug == slug {
			out = append(out, p)
		}
	}
	return out
}

// LabsForCondition returns the first labs panel related to the condition.
func (c *Catalog) LabsForCondition(slug string) (LabsPanel, bool) {
	for _, l := range c.labs {
		if l.RelatedConditionSlug == slug {
			return l, true
		}
	}
	return LabsPanel{}, false
}

// ConditionsForCare returns, in catalog order, the conditions a care service helps.
func (c *Catalog) ConditionsForCare(care CareService) []ConditionHub {
	var out []ConditionHub
	for _, h := range c.conditions {
		if slices.Contains(care.WhoItHelpsConditions, h.Slug) {
			out = append(out, h)
		}
	}
	return out
}

// LatestPosts returns up to n posts, newest first; n < 0 returns them all.
// Posts sharing a date keep catalog order.
func (c *Catalog) LatestPosts(n int) []BlogPost {
	posts := slices.Clone(c.posts)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedDate.After(posts[j].PublishedDate.Time)
	})
	if n >= 0 && len(posts) > n {
		posts = posts[:n]
	}
	return posts
}

// FilterConditions keeps conditions in the given category whose name,
// description or summary contains query, ignoring case. CategoryAll or an
// empty category keeps every category; a blank query keeps every condition.
func FilterConditions(list []ConditionHub, query string, category Category) []ConditionHub {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]ConditionHub, 0, len(list))
	for _, h := range list {
		if category != "" && category != CategoryAll && h.Category != category {
			continue
		}
		if query != "" && !matchesQuery(h, query) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func matchesQuery(h ConditionHub, query string) bool {
	return strings.Contains(strings.ToLower(h.Name), query) ||
		strings.Contains(strings.ToLower(h.Description), query) ||
		strings.Contains(strings.ToLower(h.SEOSummary), query)
}

// CategoryGroup is a non-empty set of conditions sharing a category.
type CategoryGroup struct {
	Category   Category
	Conditions []ConditionHub
}

// GroupByCategory groups conditions in CategoryOrder, dropping empty groups.
// Conditions keep their relative order inside a group.
func GroupByCategory(list []ConditionHub) []CategoryGroup {
	byCat := make(map[Category][]ConditionHub)
	for _, h := range list {
		cat := h.Category
		if cat == "" {
			cat = CategoryOther
		}
		byCat[cat] = append(byCat[cat], h)
	}
	var groups []CategoryGroup
	for _, cat := range CategoryOrder {
		if hs := byCat[cat]; len(hs) > 0 {
			groups = append(groups, CategoryGroup{Category: cat, Conditions: hs})
		}
	}
	return groups
}
