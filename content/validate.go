package content

import (
	"errors"
	"fmt"
)

// RefError describes a slug reference that does not resolve.
type RefError struct {
	From  string // e.g. "condition mold-toxicity"
	Field string // e.g. "primary_care_slug"
	Slug  string
}

func (e *RefError) Error() string {
	return fmt.Sprintf("%s: %s references missing %q", e.From, e.Field, e.Slug)
}

// Validate reports every dangling cross-reference in the catalog. It returns
// nil when all references resolve, otherwise an errors.Join of *RefError.
//
// Primary references (condition to care, blog to condition, labs to
// condition) make the affected page render as not found. The rest only drop
// a cross-link.
func (c *Catalog) Validate() error {
	var errs []error
	ref := func(from, field, slug string, ok bool) {
		if !ok {
			errs = append(errs, &RefError{From: from, Field: field, Slug: slug})
		}
	}
	for _, h := range c.conditions {
		from := "condition " + h.Slug
		_, err := c.CareBySlug(h.PrimaryCareSlug)
		ref(from, "primary_care_slug", h.PrimaryCareSlug, err == nil)
		if h.PrimaryLabSlug != "" {
			_, err := c.LabsBySlug(h.PrimaryLabSlug)
			ref(from, "primary_lab_slug", h.PrimaryLabSlug, err == nil)
		}
		for _, s := range h.RelatedSlugs {
			_, err := c.ConditionBySlug(s)
			ref(from, "related_slugs", s, err == nil)
		}
		for _, s := range h.RelatedBlogSlugs {
			_, err := c.BlogBySlug(s)
			ref(from, "related_blog_slugs", s, err == nil)
		}
	}
	for _, p := range c.posts {
		_, err := c.ConditionBySlug(p.PrimaryConditionSlug)
		ref("blog post "+p.Slug, "primary_condition_slug", p.PrimaryConditionSlug, err == nil)
	}
	for _, l := range c.labs {
		_, err := c.ConditionBySlug(l.RelatedConditionSlug)
		ref("labs panel "+l.Slug, "related_condition_slug", l.RelatedConditionSlug, err == nil)
	}
	for _, s := range c.care {
		for _, slug := range s.WhoItHelpsConditions {
			_, err := c.ConditionBySlug(slug)
			ref("care service "+s.Slug, "who_it_helps_conditions", slug, err == nil)
		}
	}
	return errors.Join(errs...)
}

// RefErrors unpacks the errors returned by Validate.
func RefErrors(err error) []*RefError {
	if err == nil {
		return nil
	}
	var out []*RefError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			var re *RefError
			if errors.As(e, &re) {
				out = append(out, re)
			}
		}
		return out
	}
	var re *RefError
	if errors.As(err, &re) {
		out = append(out, re)
	}
	return out
}
