package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/eringen/carehub"
	"github.com/eringen/carehub/analytics"
	"github.com/eringen/carehub/article"
	"github.com/eringen/carehub/content"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func defaultCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	cat, err := content.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func mustContain(t *testing.T, html string, subs ...string) {
	t.Helper()
	for _, s := range subs {
		if !strings.Contains(html, s) {
			t.Errorf("expected output to contain %q\n%s", s, html)
		}
	}
}

func TestBreadcrumbs(t *testing.T) {
	got := render(t, Breadcrumbs([]carehub.Crumb{
		{Label: "Home", Href: "/"},
		{Label: "Conditions", Href: "/conditions/"},
		{Label: "Mold <Toxicity>"},
	}))
	mustContain(t, got,
		`<a href="/">Home</a>`,
		`<a href="/conditions/">Conditions</a>`,
		`<span class="current" aria-current="page">Mold &lt;Toxicity&gt;</span>`,
	)
	if n := strings.Count(got, `class="sep"`); n != 2 {
		t.Errorf("expected 2 separators, got %d", n)
	}
	if got := render(t, Breadcrumbs(nil)); got != "" {
		t.Errorf("expected empty output for no crumbs, got %q", got)
	}
}

func TestStickyTableOfContents(t *testing.T) {
	two := []article.Heading{{ID: "a", Text: "A", Level: 2}, {ID: "b", Text: "B", Level: 3}}
	if got := render(t, StickyTableOfContents(two)); got != "" {
		t.Errorf("expected no toc for two headings, got %q", got)
	}

	three := append(two, article.Heading{ID: "c", Text: "C & D", Level: 2})
	got := render(t, StickyTableOfContents(three))
	mustContain(t, got,
		`data-toc`,
		`<li><a href="#a">A</a></li>`,
		`<li class="toc-level-3"><a href="#b">B</a></li>`,
		`<a href="#c">C &amp; D</a>`,
	)
}

func TestFAQAccordion(t *testing.T) {
	if got := render(t, FAQAccordion(nil)); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
	got := render(t, FAQAccordion([]content.FAQ{{Question: "Is it common?", Answer: "Yes."}}))
	mustContain(t, got, `<details><summary>Is it common?</summary><p>Yes.</p></details>`)
	if strings.Contains(got, " open") {
		t.Error("accordion entries should start closed")
	}
}

func TestBridgeCTA(t *testing.T) {
	got := render(t, BridgeCTA(carehub.BridgeCTA{
		Title: "Still struggling?",
		Body:  "We can help.",
		Label: "Get care",
		Href:  "/conditions/mold-toxicity/",
	}))
	mustContain(t, got,
		`<aside class="bridge-cta">`,
		`<strong>Still struggling?</strong>`,
		`<p>We can help.</p>`,
		`<a class="btn btn-primary" href="/conditions/mold-toxicity/">Get care</a>`,
	)
	if strings.Contains(got, "<h2") {
		t.Error("bridge must not add headings to the article outline")
	}
}

func TestCTAButtonRejectsUnsafeURL(t *testing.T) {
	got := render(t, CTAButton("Click", "javascript:alert(1)", ButtonSecondary))
	if strings.Contains(got, "javascript:") {
		t.Errorf("unsafe URL rendered: %s", got)
	}
	mustContain(t, got, `class="btn btn-secondary"`)
}

func TestChip(t *testing.T) {
	got := render(t, Chip(carehub.CategoryChip{
		Category: content.CategoryGut,
		Href:     carehub.ConditionIndexURL("", content.CategoryGut),
		Active:   true,
	}))
	mustContain(t, got,
		`class="chip chip-active"`,
		`data-category-chip="Gut &amp; Digestion"`,
		`aria-pressed="true"`,
	)
}

func TestLayout(t *testing.T) {
	meta := carehub.PageMeta{SiteName: "CareHub", Title: "Labs", Description: "Panels", URL: "http://localhost:3000/labs/", OGType: "website"}
	got := render(t, Layout(meta, nil, templ.Raw("<p>body</p>")))
	mustContain(t, got,
		"<!doctype html>",
		"<title>Labs | CareHub</title>",
		`<meta name="description" content="Panels">`,
		`<link rel="canonical" href="http://localhost:3000/labs/">`,
		"<main><p>body</p></main>",
		`/public/toc.js`,
		`/public/filter.js`,
	)
}

func TestPageTitle(t *testing.T) {
	tests := []struct{ title, site, want string }{
		{"", "CareHub", "CareHub"},
		{"Labs", "CareHub", "Labs | CareHub"},
		{"Labs", "", "Labs"},
		{"CareHub", "CareHub", "CareHub"},
	}
	for _, tt := range tests {
		if got := pageTitle(tt.title, tt.site); got != tt.want {
			t.Errorf("pageTitle(%q, %q) = %q, want %q", tt.title, tt.site, got, tt.want)
		}
	}
}

func TestBlogPostPage(t *testing.T) {
	cat := defaultCatalog(t)
	cache := carehub.NewArticleCache(BridgeCTA)
	page, err := carehub.BuildBlogPage(cat, "mold-toxicity-symptoms", cache)
	if err != nil {
		t.Fatalf("BuildBlogPage: %v", err)
	}
	got := render(t, BlogPost(page))

	if n := strings.Count(got, `class="bridge-cta"`); n != 1 {
		t.Errorf("expected bridge CTA once, got %d", n)
	}
	mustContain(t, got,
		"12 Mold Toxicity Symptoms You Should Not Ignore",
		`data-toc`,
		`<h2 id="what-is-mold-toxicity">`,
		`<div class="tldr">`,
		`id="next-steps"`,
		"Medically reviewed by",
	)
	bridge := strings.Index(got, `class="bridge-cta"`)
	second := strings.Index(got, `id="12-mold-toxicity-symptoms-you-should-not-ignore"`)
	third := strings.Index(got, `id="what-to-do-if-you-think-you-have-mold-toxicity"`)
	if !(second < bridge && bridge < third) {
		t.Errorf("bridge CTA should sit between the second and third h2 (%d, %d, %d)", second, bridge, third)
	}
}

func TestConditionPage(t *testing.T) {
	page, err := carehub.BuildConditionPage(defaultCatalog(t), "mold-toxicity")
	if err != nil {
		t.Fatalf("BuildConditionPage: %v", err)
	}
	got := render(t, Condition(page))
	for _, l := range page.Nav {
		mustContain(t, got, `href="#`+l.ID+`"`, `id="`+l.ID+`"`)
	}
	mustContain(t, got, `<div class="faq">`, "/care/complex-chronic/")
}

func TestConditionIndexAndList(t *testing.T) {
	cat := defaultCatalog(t)
	page := carehub.BuildConditionIndex(cat, "", "")
	got := render(t, ConditionIndex(page))
	mustContain(t, got,
		`id="condition-results"`,
		`data-condition-filter`,
		`name="q"`,
		`data-category-chip="All"`,
	)

	list := render(t, ConditionList(page))
	if strings.Contains(list, "<html") {
		t.Error("list partial must not include the layout")
	}
	mustContain(t, list, `class="category-group"`)

	empty := render(t, ConditionList(carehub.BuildConditionIndex(cat, "zzz-no-such-condition", "")))
	mustContain(t, empty, "No conditions match your search.")
}

func TestCareAndLabsPages(t *testing.T) {
	cat := defaultCatalog(t)
	care, err := carehub.BuildCarePage(cat, "complex-chronic")
	if err != nil {
		t.Fatalf("BuildCarePage: %v", err)
	}
	mustContain(t, render(t, Care(care)), `id="who-it-helps"`, "/conditions/mold-toxicity/")

	labs, err := carehub.BuildLabsPage(cat, "mold-mycotoxin-panel")
	if err != nil {
		t.Fatalf("BuildLabsPage: %v", err)
	}
	mustContain(t, render(t, Labs(labs)), `id="biomarkers"`, "/conditions/mold-toxicity/", "/care/complex-chronic/")
}

func TestAdminAnalytics(t *testing.T) {
	page := carehub.AnalyticsPage{
		Meta:      carehub.PageMeta{SiteName: "CareHub", Title: "Analytics"},
		Period:    "month",
		Periods:   analytics.PeriodNames,
		CSRFToken: "tok",
		Stats: &analytics.Stats{
			TotalViews:     42,
			UniqueVisitors: 7,
			TopPages:       []analytics.PageStat{{Kind: "condition", Slug: "sibo", Path: "/conditions/sibo/", Views: 5}},
			BrowserStats:   []analytics.DimensionStat{{Name: "Firefox", Count: 3}},
		},
	}
	got := render(t, AdminAnalytics(page))
	mustContain(t, got,
		"<td>42</td>",
		"<td>7</td>",
		`href="/conditions/sibo/"`,
		`class="chip chip-active" href="/admin/?period=month"`,
		`id="browsers"`,
		`name="_csrf" value="tok"`,
	)

	page.Stats = nil
	mustContain(t, render(t, AdminAnalytics(page)), "Analytics is disabled.")
}

func TestAdminLogin(t *testing.T) {
	got := render(t, AdminLogin("CareHub", true, "tok"))
	mustContain(t, got, "Invalid password.", `action="/admin/login/"`, `value="tok"`)
	if strings.Contains(render(t, AdminLogin("CareHub", false, "tok")), "Invalid password.") {
		t.Error("error message shown without a failed attempt")
	}
}

func TestFuncsComplete(t *testing.T) {
	f := Funcs("CareHub")
	if f.Home == nil || f.BlogPost == nil || f.ConditionList == nil || f.BridgeCTA == nil ||
		f.AdminLogin == nil || f.AdminAnalytics == nil || f.NotFound == nil || f.ServerError == nil {
		t.Fatal("Funcs left a view unset")
	}
	mustContain(t, render(t, f.NotFound()), "Page not found", "CareHub")
}
