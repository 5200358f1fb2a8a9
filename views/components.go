package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/carehub"
	"github.com/eringen/carehub/article"
	"github.com/eringen/carehub/content"
)

// minTOCHeadings is the fewest headings that get a table of contents.
const minTOCHeadings = 3

var navLinks = []carehub.Crumb{
	{Label: "Conditions", Href: "/conditions/"},
	{Label: "Labs", Href: "/labs/"},
	{Label: "Care", Href: "/care/"},
	{Label: "Blog", Href: "/blog/"},
}

// Layout wraps body in the site shell: head metadata, header navigation,
// breadcrumbs and footer.
func Layout(meta carehub.PageMeta, crumbs []carehub.Crumb, body templ.Component) templ.Component {
	return component(func(w *writer) {
		w.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.elem("title", "", pageTitle(meta.Title, meta.SiteName))
		if meta.Description != "" {
			w.raw(`<meta name="description"`)
			w.attr("content", meta.Description)
			w.raw(">")
		}
		if meta.URL != "" {
			w.raw(`<link rel="canonical"`)
			w.href(meta.URL)
			w.raw(">")
		}
		if meta.OGType != "" {
			w.raw(`<meta property="og:type"`)
			w.attr("content", meta.OGType)
			w.raw(">")
		}
		w.raw(`<link rel="stylesheet" href="/public/carehub.css">`,
			`<link rel="alternate" type="application/rss+xml" title="Blog" href="/feed.xml">`,
			`</head><body><header class="site-header"><a class="brand" href="/">`)
		w.text(meta.SiteName)
		w.raw(`</a><nav aria-label="Main"><ul>`)
		for _, l := range navLinks {
			w.raw("<li><a")
			w.href(l.Href)
			w.raw(">")
			w.text(l.Label)
			w.raw("</a></li>")
		}
		w.raw(`</ul></nav></header><main>`)
		w.comp(Breadcrumbs(crumbs))
		w.comp(body)
		w.raw(`</main><footer class="site-footer"><p class="disclaimer">`,
			`This content is for educational purposes only and is not a substitute for professional medical advice.`,
			`</p></footer>`,
			`<script src="/public/toc.js" defer></script><script src="/public/filter.js" defer></script>`,
			`</body></html>`)
	})
}

// Breadcrumbs renders a trail. Crumbs without Href are the current page.
func Breadcrumbs(crumbs []carehub.Crumb) templ.Component {
	return component(func(w *writer) {
		if len(crumbs) == 0 {
			return
		}
		w.raw(`<nav class="breadcrumbs" aria-label="Breadcrumb"><ol>`)
		for i, c := range crumbs {
			w.raw("<li>")
			if i > 0 {
				w.raw(`<span class="sep" aria-hidden="true">/</span>`)
			}
			if c.Href == "" {
				w.raw(`<span class="current" aria-current="page">`)
				w.text(c.Label)
				w.raw("</span>")
			} else {
				w.raw("<a")
				w.href(c.Href)
				w.raw(">")
				w.text(c.Label)
				w.raw("</a>")
			}
			w.raw("</li>")
		}
		w.raw("</ol></nav>")
	})
}

// Card renders a linked summary card.
func Card(p CardProps) templ.Component {
	return component(func(w *writer) {
		w.raw(`<article class="card">`)
		if p.Eyebrow != "" {
			w.elem("p", "eyebrow", p.Eyebrow)
		}
		w.raw("<h3>")
		if p.Href != "" {
			w.raw("<a")
			w.href(p.Href)
			w.raw(">")
			w.text(p.Title)
			w.raw("</a>")
		} else {
			w.text(p.Title)
		}
		w.raw("</h3>")
		if p.Body != "" {
			w.elem("p", "", p.Body)
		}
		if p.Meta != "" {
			w.elem("p", "meta", p.Meta)
		}
		w.raw("</article>")
	})
}

// CardGrid renders cards in a grid, nothing when empty.
func CardGrid(cards []CardProps) templ.Component {
	return component(func(w *writer) {
		if len(cards) == 0 {
			return
		}
		w.raw(`<div class="card-grid">`)
		for _, c := range cards {
			w.comp(Card(c))
		}
		w.raw("</div>")
	})
}

// CTAButton renders a link styled as a button.
func CTAButton(label, href string, variant ButtonVariant) templ.Component {
	return component(func(w *writer) {
		w.raw("<a")
		w.attr("class", variant.class())
		w.href(href)
		w.raw(">")
		w.text(label)
		w.raw("</a>")
	})
}

// Section renders a titled page section with an anchor id.
func Section(id, title string, body templ.Component) templ.Component {
	return component(func(w *writer) {
		w.raw("<section")
		if id != "" {
			w.attr("id", id)
		}
		w.raw(` class="section">`)
		if title != "" {
			w.elem("h2", "", title)
		}
		w.comp(body)
		w.raw("</section>")
	})
}

// Chip renders a category filter chip. The link works without scripts;
// filter.js intercepts it through data-category-chip.
func Chip(chip carehub.CategoryChip) templ.Component {
	return component(func(w *writer) {
		w.raw("<a")
		w.attr("class", chipClass(chip.Active))
		w.href(chip.Href)
		w.attr("data-category-chip", string(chip.Category))
		w.attr("aria-pressed", pressed(chip.Active))
		w.raw(">")
		w.text(string(chip.Category))
		w.raw("</a>")
	})
}

// BridgeCTA renders the call to action spliced into article bodies.
func BridgeCTA(cta carehub.BridgeCTA) templ.Component {
	return component(func(w *writer) {
		w.raw(`<aside class="bridge-cta">`)
		w.raw(`<p class="bridge-title"><strong>`)
		w.text(cta.Title)
		w.raw("</strong></p>")
		if cta.Body != "" {
			w.elem("p", "", cta.Body)
		}
		w.comp(CTAButton(cta.Label, cta.Href, ButtonPrimary))
		w.raw("</aside>")
	})
}

// FAQAccordion renders questions as disclosure widgets. Open state lives in
// the browser and is never persisted.
func FAQAccordion(faqs []content.FAQ) templ.Component {
	return component(func(w *writer) {
		if len(faqs) == 0 {
			return
		}
		w.raw(`<div class="faq">`)
		for _, f := range faqs {
			w.raw("<details><summary>")
			w.text(f.Question)
			w.raw("</summary>")
			w.elem("p", "", f.Answer)
			w.raw("</details>")
		}
		w.raw("</div>")
	})
}

// StickyTableOfContents links to the article headings. toc.js marks the
// entry whose heading is in the reading band. Short articles get none.
func StickyTableOfContents(headings []article.Heading) templ.Component {
	return component(func(w *writer) {
		if len(headings) < minTOCHeadings {
			return
		}
		w.raw(`<nav class="toc" data-toc aria-label="On this page"><p class="toc-title">On this page</p><ol>`)
		for _, h := range headings {
			if h.Level == 3 {
				w.raw(`<li class="toc-level-3">`)
			} else {
				w.raw("<li>")
			}
			w.raw("<a")
			w.href("#" + h.ID)
			w.raw(">")
			w.text(h.Text)
			w.raw("</a></li>")
		}
		w.raw("</ol></nav>")
	})
}

// AnchorNav renders in-page section links.
func AnchorNav(links []carehub.AnchorLink) templ.Component {
	return component(func(w *writer) {
		if len(links) == 0 {
			return
		}
		w.raw(`<nav class="anchor-nav" aria-label="Sections"><ul>`)
		for _, l := range links {
			w.raw("<li><a")
			w.href("#" + l.ID)
			w.raw(">")
			w.text(l.Label)
			w.raw("</a></li>")
		}
		w.raw("</ul></nav>")
	})
}

// ConditionFilter renders the search box and category chips of the
// conditions listing. It submits as a plain GET form without scripts.
func ConditionFilter(page carehub.ConditionIndexPage) templ.Component {
	return component(func(w *writer) {
		w.raw(`<form class="condition-filter" method="get" action="/conditions/" data-condition-filter role="search">`,
			`<label for="condition-q">Search conditions</label>`,
			`<input id="condition-q" type="search" name="q" placeholder="Search by name or symptom"`)
		w.attr("value", page.Query)
		w.raw(`><input type="hidden" name="category"`)
		w.attr("value", string(page.Category))
		w.raw(`><button class="btn btn-secondary" type="submit">Search</button></form>`)
		w.raw(`<div class="chips" role="group" aria-label="Categories">`)
		for _, c := range page.Chips {
			w.comp(Chip(c))
		}
		w.raw("</div>")
	})
}
