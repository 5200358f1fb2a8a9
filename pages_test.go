package carehub

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/eringen/carehub/analytics"
	"github.com/eringen/carehub/content"
)

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	conditions := []content.ConditionHub{
		{
			Slug: "mold-toxicity", Name: "Mold Toxicity", ShortName: "Mold", Category: content.CategoryDetox,
			PrimaryCareSlug: "complex-chronic", PrimaryLabSlug: "mold-panel",
			RelatedSlugs:     []string{"sibo", "missing", "thyroid", "acne", "candida"},
			RelatedBlogSlugs: []string{"p2", "sibo-post"},
			CommonSymptoms: &content.SymptomGroups{
				BrainAndMood:   []string{"Brain fog", "Anxiety", "Memory issues", "Headaches"},
				EnergyAndSleep: []string{"Fatigue", "Insomnia", "Night sweats"},
				Other:          []string{"Rashes"},
			},
			Causes: []string{"Water damaged buildings"},
		},
		{Slug: "sibo", Name: "SIBO", Category: content.CategoryGut, PrimaryCareSlug: "complex-chronic", Description: "Bacterial overgrowth in the small intestine."},
		{Slug: "thyroid", Name: "Thyroid", Category: content.CategoryHormones, PrimaryCareSlug: "complex-chronic"},
		{Slug: "acne", Name: "Acne", Category: content.CategorySkin, PrimaryCareSlug: "complex-chronic"},
		{Slug: "candida", Name: "Candida", Category: content.CategoryGut, PrimaryCareSlug: "complex-chronic"},
		{Slug: "orphan", Name: "Orphan", Category: content.CategoryOther, PrimaryCareSlug: "no-such-care"},
	}
	var posts []content.BlogPost
	for i := 1; i <= 6; i++ {
		posts = append(posts, content.BlogPost{
			Slug:                 fmt.Sprintf("p%d", i),
			Title:                fmt.Sprintf("Post %d", i),
			PublishedDate:        content.NewDate(2024, 1, i),
			PrimaryConditionSlug: "mold-toxicity",
			BodyHTML:             "<h2>One</h2><p>First.</p><h2>Two</h2><p>Second.</p><h3>Three</h3><p>Third.</p>",
		})
	}
	posts = append(posts,
		content.BlogPost{Slug: "sibo-post", Title: "SIBO post", PrimaryConditionSlug: "sibo", PublishedDate: content.NewDate(2024, 2, 1), BodyHTML: "<p>Gut.</p>", ReviewedBy: "Dr. Gut"},
		content.BlogPost{Slug: "lost", Title: "Lost", PrimaryConditionSlug: "gone", BodyHTML: "<p>x</p>"},
	)
	care := []content.CareService{{Slug: "complex-chronic", Name: "Complex Chronic Care", HeroCopy: "Care.", WhoItHelpsConditions: []string{"sibo", "mold-toxicity"}}}
	labs := []content.LabsPanel{
		{Slug: "mold-panel", Name: "Mold Panel", Price: "$299", RelatedConditionSlug: "mold-toxicity"},
		{Slug: "acne-panel", Name: "Acne Panel", RelatedConditionSlug: "acne"},
		{Slug: "stray-panel", Name: "Stray", RelatedConditionSlug: "gone"},
	}
	cat, err := content.New(conditions, posts, care, labs)
	if err != nil {
		t.Fatalf("content.New: %v", err)
	}
	return cat
}

func wantNotFound(t *testing.T, err error, kind, slug string) {
	t.Helper()
	if !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if nf.Kind != kind || nf.Slug != slug {
		t.Errorf("not found = (%q, %q), want (%q, %q)", nf.Kind, nf.Slug, kind, slug)
	}
}

func TestBuildBlogPage(t *testing.T) {
	cat := testCatalog(t)
	page, err := BuildBlogPage(cat, "p1", nil)
	if err != nil {
		t.Fatalf("BuildBlogPage: %v", err)
	}
	if page.Condition.Slug != "mold-toxicity" || page.Care.Slug != "complex-chronic" {
		t.Errorf("unexpected cross references: %q, %q", page.Condition.Slug, page.Care.Slug)
	}
	if page.Labs == nil || page.Labs.Slug != "mold-panel" {
		t.Errorf("expected mold-panel labs, got %+v", page.Labs)
	}
	var related []string
	for _, c := range page.RelatedConditions {
		related = append(related, c.Slug)
	}
	if got := strings.Join(related, ","); got != "sibo,thyroid,acne" {
		t.Errorf("related conditions = %q, want first three resolvable", got)
	}
	if len(page.Breadcrumbs) != 4 || page.Breadcrumbs[2].Href != "/conditions/mold-toxicity/" || page.Breadcrumbs[3].Href != "" {
		t.Errorf("unexpected breadcrumbs %+v", page.Breadcrumbs)
	}
	if page.Bridge.Title != "Still struggling with possible Mold issues?" {
		t.Errorf("bridge title = %q", page.Bridge.Title)
	}
	if len(page.Article.Headings) != 3 || page.Article.Headings[0].ID != "one" {
		t.Errorf("unexpected headings %+v", page.Article.Headings)
	}
	if page.Meta.Path != "/blog/p1/" || page.Meta.OGType != "article" {
		t.Errorf("unexpected meta %+v", page.Meta)
	}
}

func TestBuildBlogPageNotFound(t *testing.T) {
	cat := testCatalog(t)
	_, err := BuildBlogPage(cat, "nope", nil)
	wantNotFound(t, err, analytics.KindBlog, "nope")

	_, err = BuildBlogPage(cat, "lost", nil)
	wantNotFound(t, err, analytics.KindCondition, "gone")

	_, err = BuildBlogPage(cat, "P1", nil)
	wantNotFound(t, err, analytics.KindBlog, "P1")
}

func TestBuildBlogPageWithoutLabs(t *testing.T) {
	page, err := BuildBlogPage(testCatalog(t), "sibo-post", nil)
	if err != nil {
		t.Fatalf("BuildBlogPage: %v", err)
	}
	if page.Labs != nil {
		t.Errorf("expected no labs panel, got %+v", page.Labs)
	}
	if page.ReviewedBy != "Dr. Gut" {
		t.Errorf("ReviewedBy = %q", page.ReviewedBy)
	}
	if page.Bridge.Title != "Still struggling with possible SIBO issues?" {
		t.Errorf("bridge title should fall back to the name, got %q", page.Bridge.Title)
	}
}

func TestBuildConditionPage(t *testing.T) {
	page, err := BuildConditionPage(testCatalog(t), "mold-toxicity")
	if err != nil {
		t.Fatalf("BuildConditionPage: %v", err)
	}
	if got := strings.Join(page.TopSymptoms, ","); got != "Brain fog,Anxiety" {
		t.Errorf("top symptoms = %q", got)
	}
	if got := strings.Join(page.AtAGlance, ","); got != "Brain fog,Anxiety,Memory issues,Fatigue,Insomnia" {
		t.Errorf("at a glance = %q", got)
	}
	if len(page.Symptoms) != 3 || page.Symptoms[2].Label != "Other symptoms" {
		t.Errorf("unexpected symptom groups %+v", page.Symptoms)
	}
	if page.Labs == nil || page.Labs.Slug != "mold-panel" {
		t.Errorf("expected mold-panel, got %+v", page.Labs)
	}

	var posts []string
	for _, p := range page.RelatedPosts {
		posts = append(posts, p.Post.Slug)
	}
	if got := strings.Join(posts, ","); got != "p1,p2,p3,p4,p5" {
		t.Errorf("related posts = %q, want primary posts capped at 5", got)
	}
	if len(page.RelatedConditions) != 4 {
		t.Errorf("expected 4 resolvable related conditions, got %d", len(page.RelatedConditions))
	}

	var nav []string
	for _, l := range page.Nav {
		nav = append(nav, l.ID)
	}
	if got := strings.Join(nav, ","); got != "at-a-glance,symptoms,causes,diagnosis,treatment" {
		t.Errorf("nav = %q", got)
	}
}

func TestBuildConditionPageDefaults(t *testing.T) {
	page, err := BuildConditionPage(testCatalog(t), "sibo")
	if err != nil {
		t.Fatalf("BuildConditionPage: %v", err)
	}
	if got := strings.Join(page.TopSymptoms, ","); got != "fatigue,brain fog" {
		t.Errorf("top symptoms = %q", got)
	}
	if len(page.Symptoms) != 1 || page.Symptoms[0].Label != "" || len(page.Symptoms[0].Symptoms) != 5 {
		t.Errorf("expected the generic symptom list, got %+v", page.Symptoms)
	}
	if page.Labs != nil {
		t.Errorf("expected no labs, got %+v", page.Labs)
	}
	if page.HasCauses() {
		t.Error("sibo has no causes")
	}
	for _, l := range page.Nav {
		if l.ID == "causes" {
			t.Error("causes link without causes section")
		}
	}
	if len(page.RelatedPosts) != 1 || page.RelatedPosts[0].Post.Slug != "sibo-post" {
		t.Errorf("unexpected related posts %+v", page.RelatedPosts)
	}
}

func TestBuildConditionPageNotFound(t *testing.T) {
	cat := testCatalog(t)
	_, err := BuildConditionPage(cat, "nope")
	wantNotFound(t, err, analytics.KindCondition, "nope")

	_, err = BuildConditionPage(cat, "orphan")
	wantNotFound(t, err, analytics.KindCare, "no-such-care")
}

func TestBuildCarePage(t *testing.T) {
	cat := testCatalog(t)
	page, err := BuildCarePage(cat, "complex-chronic")
	if err != nil {
		t.Fatalf("BuildCarePage: %v", err)
	}
	if len(page.Conditions) != 2 || page.Conditions[0].Slug != "mold-toxicity" {
		t.Errorf("expected conditions in catalog order, got %+v", page.Conditions)
	}
	_, err = BuildCarePage(cat, "nope")
	wantNotFound(t, err, analytics.KindCare, "nope")
}

func TestBuildLabsPage(t *testing.T) {
	cat := testCatalog(t)
	page, err := BuildLabsPage(cat, "mold-panel")
	if err != nil {
		t.Fatalf("BuildLabsPage: %v", err)
	}
	if page.RelatedPost == nil || page.RelatedPost.Post.Slug != "p1" {
		t.Errorf("expected p1 as related post, got %+v", page.RelatedPost)
	}

	page, err = BuildLabsPage(cat, "acne-panel")
	if err != nil {
		t.Fatalf("BuildLabsPage: %v", err)
	}
	if page.RelatedPost != nil {
		t.Errorf("expected no related post, got %+v", page.RelatedPost)
	}

	_, err = BuildLabsPage(cat, "stray-panel")
	wantNotFound(t, err, analytics.KindCondition, "gone")
	_, err = BuildLabsPage(cat, "nope")
	wantNotFound(t, err, analytics.KindLabs, "nope")
}

func TestBuildConditionIndex(t *testing.T) {
	cat := testCatalog(t)

	all := BuildConditionIndex(cat, "", "")
	if all.Total != 6 || all.Category != content.CategoryAll {
		t.Errorf("expected all 6 conditions, got %d in %q", all.Total, all.Category)
	}
	if all.Groups[0].Category != content.CategoryGut {
		t.Errorf("groups should follow CategoryOrder, first is %q", all.Groups[0].Category)
	}

	gut := BuildConditionIndex(cat, "  ", string(content.CategoryGut))
	if gut.Total != 2 || gut.Query != "" {
		t.Errorf("gut filter: total %d, query %q", gut.Total, gut.Query)
	}
	for _, chip := range gut.Chips {
		if chip.Active != (chip.Category == content.CategoryGut) {
			t.Errorf("chip %q active = %v", chip.Category, chip.Active)
		}
	}

	search := BuildConditionIndex(cat, " small INTESTINE ", "bogus")
	if search.Total != 1 || search.Groups[0].Conditions[0].Slug != "sibo" {
		t.Errorf("search should match description case-insensitively, got %+v", search.Groups)
	}
	if search.Query != "small INTESTINE" {
		t.Errorf("query should be trimmed, got %q", search.Query)
	}
	if search.Chips[1].Href != "/conditions/?category=Gut+%26+Digestion&q=small+INTESTINE" {
		t.Errorf("chip href = %q", search.Chips[1].Href)
	}
}

func TestBuildHome(t *testing.T) {
	cat := testCatalog(t)
	popular := []analytics.PageStat{
		{Kind: analytics.KindBlog, Slug: "p1", Views: 50},
		{Kind: analytics.KindCondition, Slug: "sibo", Views: 9},
		{Kind: analytics.KindCondition, Slug: "deleted", Views: 8},
		{Kind: analytics.KindCondition, Slug: "acne", Views: 3},
	}
	page := BuildHome(cat, popular)
	if len(page.Popular) != 2 || page.Popular[0].Condition.Slug != "sibo" || page.Popular[0].Views != 9 {
		t.Errorf("unexpected popular %+v", page.Popular)
	}
	if len(page.Latest) != 3 || page.Latest[0].Post.Slug != "sibo-post" {
		t.Errorf("expected the 3 newest posts, got %+v", page.Latest)
	}
	if len(BuildHome(cat, nil).Popular) != 0 {
		t.Error("expected no popular conditions without analytics")
	}
}

func TestBuildIndexes(t *testing.T) {
	cat := testCatalog(t)
	blog := BuildBlogIndex(cat)
	if len(blog.Posts) != 8 {
		t.Errorf("expected 8 posts, got %d", len(blog.Posts))
	}
	if !strings.HasPrefix(blog.Posts[0].Excerpt, "One") || blog.Posts[0].ReadMinutes != 1 {
		t.Errorf("unexpected excerpt %q", blog.Posts[0].Excerpt)
	}
	if len(BuildCareIndex(cat).Services) != 1 || len(BuildLabsIndex(cat).Panels) != 3 {
		t.Error("unexpected index sizes")
	}
}

func TestProcessArticle(t *testing.T) {
	body := "<h2>A</h2><p>a</p><h2>B</h2><p>b</p><h2>C</h2><p>c</p>"
	got := ProcessArticle(body, `<aside class="x">cta</aside>`)
	want := `<h2 id="a">A</h2><p>a</p><h2 id="b">B</h2><p>b</p><aside class="x">cta</aside><h2 id="c">C</h2><p>c</p>`
	if got.HTML != want {
		t.Errorf("HTML =\n%s\nwant\n%s", got.HTML, want)
	}
	if len(got.Headings) != 3 || got.ReadMinutes != 1 {
		t.Errorf("unexpected headings %+v or minutes %d", got.Headings, got.ReadMinutes)
	}

	plain := ProcessArticle(body, "")
	if strings.Contains(plain.HTML, "aside") {
		t.Error("no bridge expected without bridge markup")
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := notFound(analytics.KindLabs, "x")
	if got := err.Error(); got != `labs "x": `+content.ErrNotFound.Error() {
		t.Errorf("Error() = %q", got)
	}
}
