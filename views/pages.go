package views

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/carehub"
	"github.com/eringen/carehub/content"
)

func postCard(s carehub.PostSummary) CardProps {
	return CardProps{
		Title: s.Post.Title,
		Href:  carehub.BlogPath(s.Post.Slug),
		Body:  s.Excerpt,
		Meta:  postMeta(s.Post, s.ReadMinutes),
	}
}

func postCards(posts []carehub.PostSummary) []CardProps {
	cards := make([]CardProps, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, postCard(p))
	}
	return cards
}

func conditionCard(c content.ConditionHub) CardProps {
	return CardProps{
		Eyebrow: string(c.Category),
		Title:   c.Name,
		Href:    carehub.ConditionPath(c.Slug),
		Body:    c.Description,
	}
}

func conditionCards(list []content.ConditionHub) []CardProps {
	cards := make([]CardProps, 0, len(list))
	for _, c := range list {
		cards = append(cards, conditionCard(c))
	}
	return cards
}

func labsCard(l content.LabsPanel) CardProps {
	return CardProps{
		Eyebrow: "Lab panel",
		Title:   l.Name,
		Href:    carehub.LabsPath(l.Slug),
		Body:    l.Description,
		Meta:    l.Price,
	}
}

func careCard(c content.CareService) CardProps {
	return CardProps{
		Eyebrow: "Care",
		Title:   c.Name,
		Href:    carehub.CarePath(c.Slug),
		Body:    c.HeroCopy,
	}
}

// pageHeader writes the <h1> block shared by listing pages.
func pageHeader(w *writer, title, lead string) {
	w.raw(`<header class="page-header">`)
	w.elem("h1", "", title)
	if lead != "" {
		w.elem("p", "lead", lead)
	}
	w.raw("</header>")
}

// Home renders /.
func Home(page carehub.HomePage) templ.Component {
	return Layout(page.Meta, nil, component(func(w *writer) {
		pageHeader(w, page.Meta.SiteName, page.Meta.Description)
		w.raw(`<div class="card-grid">`)
		for _, s := range page.Sections {
			w.comp(Card(CardProps{Title: s.Label, Href: s.Href, Body: s.Description}))
		}
		w.raw("</div>")
		if len(page.Popular) > 0 {
			w.comp(Section("most-read", "Most read conditions", component(func(w *writer) {
				w.raw(`<ol class="popular">`)
				for _, p := range page.Popular {
					w.raw("<li><a")
					w.href(carehub.ConditionPath(p.Condition.Slug))
					w.raw(">")
					w.text(p.Condition.Name)
					w.raw("</a></li>")
				}
				w.raw("</ol>")
			})))
		}
		if len(page.Latest) > 0 {
			w.comp(Section("latest", "Latest articles", CardGrid(postCards(page.Latest))))
		}
	}))
}

// BlogIndex renders /blog/.
func BlogIndex(page carehub.BlogIndexPage) templ.Component {
	return Layout(page.Meta, page.Breadcrumbs, component(func(w *writer) {
		pageHeader(w, "Blog", page.Meta.Description)
		if len(page.Posts) == 0 {
			w.elem("p", "empty", "No articles yet.")
			return
		}
		w.comp(CardGrid(postCards(page.Posts)))
	}))
}

// BlogPost renders /blog/:slug/. The bridge CTA is already part of
// page.Article.HTML.
func BlogPost(page carehub.BlogPage) templ.Component {
	return Layout(page.Meta, page.Breadcrumbs, component(func(w *writer) {
		post := page.Post
		w.raw(`<article class="post"><header><p class="eyebrow"><a`)
		w.href(carehub.ConditionPath(page.Condition.Slug))
		w.raw(">")
		w.text(page.Condition.Name)
		w.raw("</a></p>")
		w.elem("h1", "", post.Title)
		w.raw(`<p class="byline">`)
		if post.Author != "" {
			w.text("By " + post.Author)
		}
		if page.ReviewedBy != "" {
			w.raw(` · <span class="reviewer">`)
			w.text("Medically reviewed by " + page.ReviewedBy)
			w.raw("</span>")
		}
		if d := post.PublishedDate; !d.IsZero() {
			w.raw(` · <time`)
			w.attr("datetime", d.String())
			w.raw(">")
			w.text(d.Long())
			w.raw("</time>")
		}
		w.raw(" · ")
		w.text(readTime(page.Article.ReadMinutes))
		w.raw("</p></header>")

		if len(post.TLDRBullets) > 0 || page.Summary != "" {
			w.raw(`<div class="tldr"><p><strong>TL;DR</strong></p>`)
			w.list("", post.TLDRBullets)
			if page.Summary != "" {
				w.elem("p", "", page.Summary)
			}
			w.raw("</div>")
		}

		w.raw(`<div class="post-layout">`)
		w.comp(StickyTableOfContents(page.Article.Headings))
		w.raw(`<div class="post-body">`)
		w.comp(templ.Raw(page.Article.HTML))
		w.raw("</div></div>")

		next := []CardProps{careCard(page.Care)}
		if page.Labs != nil {
			next = append(next, labsCard(*page.Labs))
		}
		next = append(next, CardProps{
			Eyebrow: "Condition guide",
			Title:   "Learn more about " + page.Condition.Name,
			Href:    carehub.ConditionPath(page.Condition.Slug),
			Body:    page.Condition.SEOSummary,
		})
		w.comp(Section("next-steps", "Next steps", CardGrid(next)))
		if len(page.RelatedConditions) > 0 {
			w.comp(Section("related-conditions", "Related conditions", CardGrid(conditionCards(page.RelatedConditions))))
		}
		w.raw("</article>")
	}))
}

// ConditionIndex renders /conditions/ with the filter form.
func ConditionIndex(page carehub.ConditionIndexPage) templ.Component {
	return Layout(page.Meta, page.Breadcrumbs, component(func(w *writer) {
		pageHeader(w, "Conditions", page.Meta.Description)
		w.comp(ConditionFilter(page))
		w.raw(`<div id="condition-results" aria-live="polite">`)
		w.comp(ConditionList(page))
		w.raw("</div>")
	}))
}

// ConditionList renders the grouped results of the conditions listing. It is
// also served alone for filter.js.
func ConditionList(page carehub.ConditionIndexPage) templ.Component {
	return component(func(w *writer) {
		if page.Total == 0 {
			w.elem("p", "empty", "No conditions match your search.")
			return
		}
		noun := " conditions"
		if page.Total == 1 {
			noun = " condition"
		}
		w.elem("p", "result-count", strconv.Itoa(page.Total)+noun)
		for _, g := range page.Groups {
			w.raw(`<section class="category-group">`)
			w.elem("h2", "", string(g.Category))
			w.comp(CardGrid(conditionCards(g.Conditions)))
			w.raw("</section>")
		}
	})
}

// Condition renders /conditions/:slug/.
func Condition(page carehub.ConditionPage) templ.Component {
	return Layout(page.Meta, page.Breadcrumbs, component(func(w *writer) {
		cond := page.Condition
		w.raw(`<article class="condition"><header>`)
		w.elem("p", "eyebrow", string(cond.Category))
		w.elem("h1", "", cond.Name)
		w.elem("p", "lead", cond.Description)
		if len(page.TopSymptoms) > 0 {
			w.elem("p", "", "Common signs include "+strings.Join(page.TopSymptoms, " and ")+".")
		}
		w.raw(`<p class="actions">`)
		w.comp(CTAButton("Get care for "+cond.Name, carehub.CarePath(page.Care.Slug), ButtonPrimary))
		if page.Labs != nil {
			w.raw(" ")
			w.comp(CTAButton("Test with "+page.Labs.Name, carehub.LabsPath(page.Labs.Slug), ButtonSecondary))
		}
		w.raw("</p></header>")
		w.comp(AnchorNav(page.Nav))

		w.comp(Section("at-a-glance", "At a glance", component(func(w *writer) {
			w.list("", page.AtAGlance)
			if cond.WhoItAffects != "" {
				w.elem("p", "", cond.WhoItAffects)
			}
		})))

		w.comp(Section("symptoms", "Symptoms", component(func(w *writer) {
			for _, g := range page.Symptoms {
				if g.Label != "" {
					w.elem("h3", "", g.Label)
				}
				w.list("", g.Symptoms)
			}
		})))

		if page.HasCauses() {
			w.comp(Section("causes", "Causes and risk factors", component(func(w *writer) {
				if len(cond.Causes) > 0 {
					w.elem("h3", "", "Causes")
					w.list("", cond.Causes)
				}
				if len(cond.RiskFactors) > 0 {
					w.elem("h3", "", "Risk factors")
					w.list("", cond.RiskFactors)
				}
			})))
		}

		w.comp(Section("diagnosis", "Diagnosis", component(func(w *writer) {
			w.elem("p", "", "Diagnosis starts with a detailed history and targeted testing.")
			if page.Labs != nil {
				w.comp(Card(labsCard(*page.Labs)))
			}
		})))

		w.comp(Section("treatment", "Treatment", component(func(w *writer) {
			w.elem("p", "", page.Care.HeroCopy)
			w.comp(CTAButton("Explore "+page.Care.Name, carehub.CarePath(page.Care.Slug), ButtonSecondary))
		})))

		if cond.WhenToGetHelp != "" {
			w.raw(`<div class="urgent"><p><strong>When to get help</strong></p>`)
			w.elem("p", "", cond.WhenToGetHelp)
			w.raw("</div>")
		}
		if len(cond.FAQ) > 0 {
			w.comp(Section("faq", "Frequently asked questions", FAQAccordion(cond.FAQ)))
		}
		if len(page.RelatedPosts) > 0 {
			w.comp(Section("related-articles", "Related articles", CardGrid(postCards(page.RelatedPosts))))
		}
		if len(page.RelatedConditions) > 0 {
			w.comp(Section("related-conditions", "Related conditions", CardGrid(conditionCards(page.RelatedConditions))))
		}
		w.raw("</article>")
	}))
}

// CareIndex renders /care/.
func CareIndex(page carehub.CareIndexPage) templ.Component {
	return Layout(page.Meta, page.Breadcrumbs, component(func(w *writer) {
		pageHeader(w, "Care", page.Meta.Description)
		cards := make([]CardProps, 0, len(page.Services))
		for _, s := range page.Services {
			cards = append(cards, careCard(s))
		}
		w.comp(CardGrid(cards))
	}))
}

// Care renders /care/:slug/.
func Care(page carehub.CarePage) templ.Component {
	return Layout(page.Meta, page.Breadcrumbs, component(func(w *writer) {
		w.raw(`<article class="care">`)
		pageHeader(w, page.Care.Name, page.Care.HeroCopy)
		if len(page.Conditions) > 0 {
			w.comp(Section("who-it-helps", "Who it helps", CardGrid(conditionCards(page.Conditions))))
		}
		w.comp(CTAButton("Browse all conditions", "/conditions/", ButtonSecondary))
		w.raw("</article>")
	}))
}

// LabsIndex renders /labs/.
func LabsIndex(page carehub.LabsIndexPage) templ.Component {
	return Layout(page.Meta, page.Breadcrumbs, component(func(w *writer) {
		pageHeader(w, "Labs", page.Meta.Description)
		cards := make([]CardProps, 0, len(page.Panels))
		for _, p := range page.Panels {
			cards = append(cards, labsCard(p))
		}
		w.comp(CardGrid(cards))
	}))
}

// Labs renders /labs/:slug/.
func Labs(page carehub.LabsPage) templ.Component {
	return Layout(page.Meta, page.Breadcrumbs, component(func(w *writer) {
		labs := page.Labs
		w.raw(`<article class="labs">`)
		pageHeader(w, labs.Name, labs.Description)
		if labs.Price != "" {
			w.elem("p", "price", labs.Price)
		}
		if len(labs.Biomarkers) > 0 {
			w.comp(Section("biomarkers", "What it measures", component(func(w *writer) {
				w.list("", labs.Biomarkers)
			})))
		}
		if len(labs.RecommendedIf) > 0 {
			w.comp(Section("recommended-if", "Recommended if you have", component(func(w *writer) {
				w.list("", labs.RecommendedIf)
			})))
		}
		related := []CardProps{conditionCard(page.Condition), careCard(page.Care)}
		if page.RelatedPost != nil {
			c := postCard(*page.RelatedPost)
			c.Eyebrow = "Learn more"
			related = append(related, c)
		}
		w.comp(Section("related", "Related", CardGrid(related)))
		w.raw("</article>")
	}))
}

// NotFound renders the 404 page.
func NotFound(site string) templ.Component {
	return Layout(carehub.PageMeta{SiteName: site, Title: "Page not found"}, nil, component(func(w *writer) {
		pageHeader(w, "Page not found", "The page you are looking for does not exist or has moved.")
		w.comp(CTAButton("Browse conditions", "/conditions/", ButtonPrimary))
	}))
}

// ServerError renders the 500 page.
func ServerError(site string) templ.Component {
	return Layout(carehub.PageMeta{SiteName: site, Title: "Something went wrong"}, nil, component(func(w *writer) {
		pageHeader(w, "Something went wrong", "Please try again in a moment.")
	}))
}
