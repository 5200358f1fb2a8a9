package carehub

import (
	"fmt"
	"strings"

	"github.com/eringen/carehub/analytics"
	"github.com/eringen/carehub/article"
	"github.com/eringen/carehub/content"
)

// Excerpt budgets, in characters.
const (
	listExcerptLen    = 150
	relatedExcerptLen = 120
)

const (
	maxBlogRelatedConditions = 3
	maxConditionRelatedPosts = 5
	maxTopSymptoms           = 2
	latestPostsOnHome        = 3
)

var (
	defaultTopSymptoms = []string{"fatigue", "brain fog"}
	defaultAtAGlance   = []string{"Brain fog", "Fatigue", "Sinus issues", "Digestive problems"}
	defaultSymptoms    = []string{"Fatigue", "Brain fog", "Digestive issues", "Mood changes", "Sleep problems"}
)

// NotFoundError reports a page whose primary record, or a record the page
// cannot render without, does not exist. It unwraps to content.ErrNotFound.
type NotFoundError struct {
	Kind string
	Slug string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Slug, content.ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return content.ErrNotFound }

func notFound(kind, slug string) error {
	return &NotFoundError{Kind: kind, Slug: slug}
}

// ArticleSource turns a post body into a processed Article.
type ArticleSource interface {
	Article(post content.BlogPost, cta BridgeCTA) Article
}

// ProcessArticle injects heading anchors into body and splices bridgeHTML in
// after the second h2. Headings and reading time describe the body alone.
func ProcessArticle(body, bridgeHTML string) Article {
	anchored := article.InjectHeadingIDs(body)
	out := Article{
		Headings:    article.ExtractHeadings(anchored),
		ReadMinutes: article.ReadTime(body),
		HTML:        anchored,
	}
	if bridgeHTML != "" {
		out.HTML = article.InsertAfterSecondH2(anchored, bridgeHTML)
	}
	return out
}

func summarize(p content.BlogPost, budget int) PostSummary {
	return PostSummary{
		Post:        p,
		Excerpt:     article.Excerpt(p.BodyHTML, budget),
		ReadMinutes: article.ReadTime(p.BodyHTML),
	}
}

func shortName(h content.ConditionHub) string {
	if h.ShortName != "" {
		return h.ShortName
	}
	return h.Name
}

// BuildBlogPage assembles /blog/:slug/. The post, its primary condition and
// that condition's care service are required.
func BuildBlogPage(cat *content.Catalog, slug string, articles ArticleSource) (BlogPage, error) {
	post, err := cat.BlogBySlug(slug)
	if err != nil {
		return BlogPage{}, notFound(analytics.KindBlog, slug)
	}
	cond, err := cat.ConditionBySlug(post.PrimaryConditionSlug)
	if err != nil {
		return BlogPage{}, notFound(analytics.KindCondition, post.PrimaryConditionSlug)
	}
	care, err := cat.CareBySlug(cond.PrimaryCareSlug)
	if err != nil {
		return BlogPage{}, notFound(analytics.KindCare, cond.PrimaryCareSlug)
	}

	page := BlogPage{
		Meta: PageMeta{
			Title:       post.Title,
			Description: article.Excerpt(post.BodyHTML, listExcerptLen),
			Path:        BlogPath(post.Slug),
			OGType:      "article",
		},
		Breadcrumbs: []Crumb{
			{Label: "Home", Href: "/"},
			{Label: "Blog", Href: "/blog/"},
			{Label: cond.Name, Href: ConditionPath(cond.Slug)},
			{Label: post.Title},
		},
		Post:              post,
		ReviewedBy:        post.ReviewedBy,
		Condition:         cond,
		Care:              care,
		RelatedConditions: cat.ConditionsBySlugs(cond.RelatedSlugs, maxBlogRelatedConditions),
		Summary: fmt.Sprintf("If you're experiencing these symptoms, our clinicians can help diagnose and treat %s through a comprehensive root cause approach.",
			strings.ToLower(cond.Name)),
		Bridge: BridgeCTA{
			Title: fmt.Sprintf("Still struggling with possible %s issues?", shortName(cond)),
			Body: fmt.Sprintf("If you recognize these symptoms, our clinicians can help you understand whether %s is part of the picture and design a plan to feel better.",
				strings.ToLower(cond.Name)),
			Label: "Get care for " + cond.Name,
			Href:  ConditionPath(cond.Slug),
		},
	}
	if labs, ok := cat.LabsForCondition(cond.Slug); ok {
		page.Labs = &labs
	}
	if articles != nil {
		page.Article = articles.Article(post, page.Bridge)
	} else {
		page.Article = ProcessArticle(post.BodyHTML, "")
	}
	return page, nil
}

// BuildConditionPage assembles /conditions/:slug/. The condition and its
// care service are required; the lab panel and related content are optional.
func BuildConditionPage(cat *content.Catalog, slug string) (ConditionPage, error) {
	cond, err := cat.ConditionBySlug(slug)
	if err != nil {
		return ConditionPage{}, notFound(analytics.KindCondition, slug)
	}
	care, err := cat.CareBySlug(cond.PrimaryCareSlug)
	if err != nil {
		return ConditionPage{}, notFound(analytics.KindCare, cond.PrimaryCareSlug)
	}

	page := ConditionPage{
		Meta: PageMeta{
			Title:       cond.Name,
			Description: cond.SEOSummary,
			Path:        ConditionPath(cond.Slug),
			OGType:      "website",
		},
		Breadcrumbs: []Crumb{
			{Label: "Home", Href: "/"},
			{Label: "Conditions", Href: "/conditions/"},
			{Label: cond.Name},
		},
		Condition:         cond,
		Care:              care,
		TopSymptoms:       topSymptoms(cond.CommonSymptoms),
		AtAGlance:         atAGlance(cond.CommonSymptoms),
		Symptoms:          symptomGroups(cond.CommonSymptoms),
		RelatedPosts:      relatedPosts(cat, cond),
		RelatedConditions: cat.ConditionsBySlugs(cond.RelatedSlugs, 0),
	}
	if cond.PrimaryLabSlug != "" {
		if labs, err := cat.LabsBySlug(cond.PrimaryLabSlug); err == nil {
			page.Labs = &labs
		}
	}

	page.Nav = []AnchorLink{
		{ID: "at-a-glance", Label: "Overview"},
		{ID: "symptoms", Label: "Symptoms"},
	}
	if page.HasCauses() {
		page.Nav = append(page.Nav, AnchorLink{ID: "causes", Label: "Causes"})
	}
	page.Nav = append(page.Nav,
		AnchorLink{ID: "diagnosis", Label: "Diagnosis"},
		AnchorLink{ID: "treatment", Label: "Treatment"},
	)
	return page, nil
}

func topSymptoms(g *content.SymptomGroups) []string {
	if g == nil {
		return defaultTopSymptoms
	}
	var out []string
	out = append(out, firstN(g.BrainAndMood, 2)...)
	out = append(out, firstN(g.EnergyAndSleep, 1)...)
	return firstN(out, maxTopSymptoms)
}

func atAGlance(g *content.SymptomGroups) []string {
	if g == nil {
		return defaultAtAGlance
	}
	var out []string
	out = append(out, firstN(g.BrainAndMood, 3)...)
	return append(out, firstN(g.EnergyAndSleep, 2)...)
}

func symptomGroups(g *content.SymptomGroups) []SymptomGroup {
	if g == nil {
		return []SymptomGroup{{Symptoms: defaultSymptoms}}
	}
	var out []SymptomGroup
	add := func(label string, s []string) {
		if len(s) > 0 {
			out = append(out, SymptomGroup{Label: label, Symptoms: s})
		}
	}
	add("Brain and mood", g.BrainAndMood)
	add("Energy and sleep", g.EnergyAndSleep)
	add("Sinus and breathing", g.SinusAndBreathing)
	add("Gut and digestion", g.GutAndDigestion)
	add("Other symptoms", g.Other)
	return out
}

// relatedPosts lists posts whose primary condition is cond, then the posts
// cond links explicitly, without repeats.
func relatedPosts(cat *content.Catalog, cond content.ConditionHub) []PostSummary {
	seen := make(map[string]struct{})
	var out []PostSummary
	add := func(p content.BlogPost) {
		if len(out) >= maxConditionRelatedPosts {
			return
		}
		if _, dup := seen[p.Slug]; dup {
			return
		}
		seen[p.Slug] = struct{}{}
		out = append(out, summarize(p, relatedExcerptLen))
	}
	for _, p := range cat.PostsForCondition(cond.Slug) {
		add(p)
	}
	for _, s := range cond.RelatedBlogSlugs {
		if p, err := cat.BlogBySlug(s); err == nil {
			add(p)
		}
	}
	return out
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// BuildCarePage assembles /care/:slug/.
func BuildCarePage(cat *content.Catalog, slug string) (CarePage, error) {
	care, err := cat.CareBySlug(slug)
	if err != nil {
		return CarePage{}, notFound(analytics.KindCare, slug)
	}
	return CarePage{
		Meta: PageMeta{
			Title:       care.Name,
			Description: care.HeroCopy,
			Path:        CarePath(care.Slug),
			OGType:      "website",
		},
		Breadcrumbs: []Crumb{
			{Label: "Home", Href: "/"},
			{Label: "Care", Href: "/care/"},
			{Label: care.Name},
		},
		Care:       care,
		Conditions: cat.ConditionsForCare(care),
	}, nil
}

// BuildLabsPage assembles /labs/:slug/. The panel, its condition and the
// condition's care service are required.
func BuildLabsPage(cat *content.Catalog, slug string) (LabsPage, error) {
	labs, err := cat.LabsBySlug(slug)
	if err != nil {
		return LabsPage{}, notFound(analytics.KindLabs, slug)
	}
	cond, err := cat.ConditionBySlug(labs.RelatedConditionSlug)
	if err != nil {
		return LabsPage{}, notFound(analytics.KindCondition, labs.RelatedConditionSlug)
	}
	care, err := cat.CareBySlug(cond.PrimaryCareSlug)
	if err != nil {
		return LabsPage{}, notFound(analytics.KindCare, cond.PrimaryCareSlug)
	}

	page := LabsPage{
		Meta: PageMeta{
			Title:       labs.Name,
			Description: labs.Description,
			Path:        LabsPath(labs.Slug),
			OGType:      "website",
		},
		Breadcrumbs: []Crumb{
			{Label: "Home", Href: "/"},
			{Label: "Labs", Href: "/labs/"},
			{Label: labs.Name},
		},
		Labs:      labs,
		Condition: cond,
		Care:      care,
	}
	if posts := cat.PostsForCondition(cond.Slug); len(posts) > 0 {
		s := summarize(posts[0], listExcerptLen)
		page.RelatedPost = &s
	}
	return page, nil
}

// BuildConditionIndex assembles /conditions/ for the given search query and
// category filter value. Unknown categories select every condition.
func BuildConditionIndex(cat *content.Catalog, query, category string) ConditionIndexPage {
	query = strings.TrimSpace(query)
	selected := content.ParseCategory(category)
	matches := content.FilterConditions(cat.Conditions(), query, selected)

	chips := make([]CategoryChip, 0, len(content.FilterCategories))
	for _, c := range content.FilterCategories {
		chips = append(chips, CategoryChip{
			Category: c,
			Href:     ConditionIndexURL(query, c),
			Active:   c == selected,
		})
	}

	return ConditionIndexPage{
		Meta: PageMeta{
			Title:       "Conditions",
			Description: "Explore the conditions our clinicians treat, grouped by body system.",
			Path:        "/conditions/",
			OGType:      "website",
		},
		Breadcrumbs: []Crumb{
			{Label: "Home", Href: "/"},
			{Label: "Conditions"},
		},
		Query:    query,
		Category: selected,
		Chips:    chips,
		Groups:   content.GroupByCategory(matches),
		Total:    len(matches),
	}
}

// BuildBlogIndex assembles /blog/ in catalog order.
func BuildBlogIndex(cat *content.Catalog) BlogIndexPage {
	posts := cat.BlogPosts()
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, summarize(p, listExcerptLen))
	}
	return BlogIndexPage{
		Meta: PageMeta{
			Title:       "Blog",
			Description: "Articles on root-cause care, reviewed by our clinicians.",
			Path:        "/blog/",
			OGType:      "website",
		},
		Breadcrumbs: []Crumb{{Label: "Home", Href: "/"}, {Label: "Blog"}},
		Posts:       out,
	}
}

// BuildCareIndex assembles /care/.
func BuildCareIndex(cat *content.Catalog) CareIndexPage {
	return CareIndexPage{
		Meta: PageMeta{
			Title:       "Care",
			Description: "Care programs and the conditions they address.",
			Path:        "/care/",
			OGType:      "website",
		},
		Breadcrumbs: []Crumb{{Label: "Home", Href: "/"}, {Label: "Care"}},
		Services:    cat.CareServices(),
	}
}

// BuildLabsIndex assembles /labs/.
func BuildLabsIndex(cat *content.Catalog) LabsIndexPage {
	return LabsIndexPage{
		Meta: PageMeta{
			Title:       "Labs",
			Description: "Diagnostic panels and the biomarkers they measure.",
			Path:        "/labs/",
			OGType:      "website",
		},
		Breadcrumbs: []Crumb{{Label: "Home", Href: "/"}, {Label: "Labs"}},
		Panels:      cat.LabsPanels(),
	}
}

// BuildHome assembles the home page. popular is the analytics ranking of
// pages; entries that are not conditions in cat are skipped.
func BuildHome(cat *content.Catalog, popular []analytics.PageStat) HomePage {
	latest := cat.LatestPosts(latestPostsOnHome)
	page := HomePage{
		Meta: PageMeta{
			Title:       "Home",
			Description: "Condition guides, lab panels and care programs connected in one place.",
			Path:        "/",
			OGType:      "website",
		},
		Sections: []SectionLink{
			{Label: "Conditions", Href: "/conditions/", Description: "Symptoms, causes and testing for each condition we treat."},
			{Label: "Blog", Href: "/blog/", Description: "Clinician-reviewed articles."},
			{Label: "Labs", Href: "/labs/", Description: "Panels you can order and what they measure."},
			{Label: "Care", Href: "/care/", Description: "How our care programs work."},
		},
		Latest: make([]PostSummary, 0, len(latest)),
	}
	for _, p := range latest {
		page.Latest = append(page.Latest, summarize(p, listExcerptLen))
	}
	for _, s := range popular {
		if s.Kind != analytics.KindCondition {
			continue
		}
		cond, err := cat.ConditionBySlug(s.Slug)
		if err != nil {
			continue
		}
		page.Popular = append(page.Popular, PopularCondition{Condition: cond, Views: s.Views})
	}
	return page
}
