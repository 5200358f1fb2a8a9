package content

import (
	"strings"
	"testing"
)

func TestDefaultCatalogIsConsistent(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if err := cat.Validate(); err != nil {
		t.Errorf("embedded catalog has dangling references:\n%v", err)
	}
	if len(cat.Conditions()) == 0 || len(cat.BlogPosts()) == 0 || len(cat.CareServices()) == 0 || len(cat.LabsPanels()) == 0 {
		t.Error("embedded catalog should populate every record type")
	}
	for _, p := range cat.BlogPosts() {
		if strings.TrimSpace(p.BodyHTML) == "" {
			t.Errorf("post %q has an empty body", p.Slug)
		}
		if p.BodyMarkdown != "" {
			t.Errorf("post %q kept its markdown source", p.Slug)
		}
	}
}

func TestLoadMarkdownBody(t *testing.T) {
	src := `
conditions:
  - slug: sleep
    name: Sleep
    category: Brain & Mood
    primary_care_slug: care
blog_posts:
  - slug: melatonin
    title: Melatonin
    published_date: 2024-02-01
    primary_condition_slug: sleep
    body_markdown: |
      ## Why melatonin is not a cure-all

      Melatonin signals **darkness**.
care_services:
  - slug: care
    name: Care
`
	cat, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	p, err := cat.BlogBySlug("melatonin")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p.BodyHTML, "<h2>Why melatonin is not a cure-all</h2>") {
		t.Errorf("markdown heading not rendered: %q", p.BodyHTML)
	}
	if !strings.Contains(p.BodyHTML, "<strong>darkness</strong>") {
		t.Errorf("markdown emphasis not rendered: %q", p.BodyHTML)
	}
	if got := p.PublishedDate.String(); got != "2024-02-01" {
		t.Errorf("PublishedDate = %q, want 2024-02-01", got)
	}
	if got := p.PublishedDate.Long(); got != "February 1, 2024" {
		t.Errorf("PublishedDate.Long() = %q", got)
	}
}

func TestLoadSanitizesBody(t *testing.T) {
	src := `
blog_posts:
  - slug: p
    published_date: 2024-02-01
    body_html: <h2 id="keep" class="lead">Hi</h2><script>alert(1)</script><p onclick="x()">Body</p>
`
	cat, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	p, _ := cat.BlogBySlug("p")
	if strings.Contains(p.BodyHTML, "script") || strings.Contains(p.BodyHTML, "onclick") {
		t.Errorf("unsafe markup survived: %q", p.BodyHTML)
	}
	if !strings.Contains(p.BodyHTML, `id="keep"`) || !strings.Contains(p.BodyHTML, `class="lead"`) {
		t.Errorf("heading attributes were dropped: %q", p.BodyHTML)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", "catalog is empty"},
		{"unknown field", "conditions:\n  - slug: a\n    colour: red\n", "colour"},
		{"bad date", "blog_posts:\n  - slug: a\n    published_date: 15/01/2024\n", "invalid date"},
		{"two bodies", "blog_posts:\n  - slug: a\n    published_date: 2024-01-15\n    body_html: <p>x</p>\n    body_markdown: x\n", "only one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}
