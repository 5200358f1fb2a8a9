package carehub

import (
	"github.com/eringen/carehub/analytics"
	"github.com/eringen/carehub/article"
	"github.com/eringen/carehub/content"
)

// PageMeta carries per-page metadata into the <head> template.
type PageMeta struct {
	SiteName    string
	Title       string
	Description string
	Path        string // site-relative, always with a trailing slash
	URL         string // canonical, filled in by the handler from SiteConfig.URL
	OGType      string // "website" or "article"
}

// Crumb is one breadcrumb entry. The last crumb of a trail has no Href.
type Crumb struct {
	Label string
	Href  string
}

// AnchorLink points at a section id on the same page.
type AnchorLink struct {
	ID    string
	Label string
}

// BridgeCTA is the call-to-action block spliced into an article body.
type BridgeCTA struct {
	Title string
	Body  string
	Label string
	Href  string
}

// Article is a post body after heading anchors and the bridge CTA are applied.
type Article struct {
	HTML        string
	Headings    []article.Heading
	ReadMinutes int
}

// PostSummary is a post as it appears in a card list.
type PostSummary struct {
	Post        content.BlogPost
	Excerpt     string
	ReadMinutes int
}

// SymptomGroup is a labelled list of symptoms. An empty Label marks the
// generic list shown when a condition has no structured symptoms.
type SymptomGroup struct {
	Label    string
	Symptoms []string
}

// CategoryChip is one category filter on the conditions listing.
type CategoryChip struct {
	Category content.Category
	Href     string
	Active   bool
}

// PopularCondition is a condition with its view count over the popularity window.
type PopularCondition struct {
	Condition content.ConditionHub
	Views     int
}

// SectionLink is an entry point on the home page.
type SectionLink struct {
	Label       string
	Href        string
	Description string
}

// BlogPage is the view model for /blog/:slug/.
type BlogPage struct {
	Meta              PageMeta
	Breadcrumbs       []Crumb
	Post              content.BlogPost
	ReviewedBy        string
	Condition         content.ConditionHub
	Care              content.CareService
	Labs              *content.LabsPanel // nil when no panel covers the condition
	RelatedConditions []content.ConditionHub
	Summary           string
	Bridge            BridgeCTA
	Article           Article
}

// ConditionPage is the view model for /conditions/:slug/.
type ConditionPage struct {
	Meta              PageMeta
	Breadcrumbs       []Crumb
	Condition         content.ConditionHub
	Care              content.CareService
	Labs              *content.LabsPanel // nil when PrimaryLabSlug is unset or dangling
	TopSymptoms       []string
	AtAGlance         []string
	Symptoms          []SymptomGroup
	Nav               []AnchorLink
	RelatedPosts      []PostSummary
	RelatedConditions []content.ConditionHub
}

// HasCauses reports whether the causes section is rendered.
func (p ConditionPage) HasCauses() bool {
	return len(p.Condition.Causes) > 0 || len(p.Condition.RiskFactors) > 0
}

// CarePage is the view model for /care/:slug/.
type CarePage struct {
	Meta        PageMeta
	Breadcrumbs []Crumb
	Care        content.CareService
	Conditions  []content.ConditionHub
}

// LabsPage is the view model for /labs/:slug/.
type LabsPage struct {
	Meta        PageMeta
	Breadcrumbs []Crumb
	Labs        content.LabsPanel
	Condition   content.ConditionHub
	Care        content.CareService
	RelatedPost *PostSummary // nil when no post covers the condition
}

// ConditionIndexPage is the view model for /conditions/.
type ConditionIndexPage struct {
	Meta        PageMeta
	Breadcrumbs []Crumb
	Query       string
	Category    content.Category
	Chips       []CategoryChip
	Groups      []content.CategoryGroup
	Total       int
}

// BlogIndexPage is the view model for /blog/.
type BlogIndexPage struct {
	Meta        PageMeta
	Breadcrumbs []Crumb
	Posts       []PostSummary
}

// CareIndexPage is the view model for /care/.
type CareIndexPage struct {
	Meta        PageMeta
	Breadcrumbs []Crumb
	Services    []content.CareService
}

// LabsIndexPage is the view model for /labs/.
type LabsIndexPage struct {
	Meta        PageMeta
	Breadcrumbs []Crumb
	Panels      []content.LabsPanel
}

// HomePage is the view model for /.
type HomePage struct {
	Meta     PageMeta
	Sections []SectionLink
	Latest   []PostSummary
	Popular  []PopularCondition
}

// AnalyticsPage is the view model for the admin analytics dashboard.
type AnalyticsPage struct {
	Meta      PageMeta
	Period    string
	Periods   []string
	Stats     *analytics.Stats
	CSRFToken string
}
