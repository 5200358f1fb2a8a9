package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/carehub"
	"github.com/eringen/carehub/analytics"
)

func csrfField(w *writer, token string) {
	w.raw(`<input type="hidden" name="_csrf"`)
	w.attr("value", token)
	w.raw(">")
}

// AdminLogin renders the admin password form.
func AdminLogin(site string, showError bool, csrfToken string) templ.Component {
	meta := carehub.PageMeta{SiteName: site, Title: "Admin login"}
	return Layout(meta, nil, component(func(w *writer) {
		pageHeader(w, "Admin login", "")
		if showError {
			w.elem("p", "form-error", "Invalid password.")
		}
		w.raw(`<form class="admin-login" method="post" action="/admin/login/">`)
		csrfField(w, csrfToken)
		w.raw(`<label for="password">Password</label>`,
			`<input id="password" type="password" name="password" autocomplete="current-password" required>`,
			`<button class="btn btn-primary" type="submit">Log in</button></form>`)
	}))
}

// AdminAnalytics renders the page-view dashboard.
func AdminAnalytics(page carehub.AnalyticsPage) templ.Component {
	return Layout(page.Meta, nil, component(func(w *writer) {
		pageHeader(w, "Analytics", "")
		w.raw(`<div class="chips" role="group" aria-label="Period">`)
		for _, p := range page.Periods {
			active := p == page.Period
			w.raw("<a")
			w.attr("class", chipClass(active))
			w.href("/admin/?period=" + p)
			w.attr("aria-pressed", pressed(active))
			w.raw(">")
			w.text(p)
			w.raw("</a>")
		}
		w.raw("</div>")

		stats := page.Stats
		if stats == nil {
			w.elem("p", "empty", "Analytics is disabled.")
		} else {
			w.elem("p", "period", stats.Period)
			w.raw(`<table class="stats-table"><tbody><tr><th>Page views</th><td>`)
			w.num(stats.TotalViews)
			w.raw(`</td></tr><tr><th>Unique visitors</th><td>`)
			w.num(stats.UniqueVisitors)
			w.raw(`</td></tr></tbody></table>`)

			w.comp(Section("top-pages", "Top pages", component(func(w *writer) {
				if len(stats.TopPages) == 0 {
					w.elem("p", "empty", "No views yet.")
					return
				}
				w.raw(`<table class="stats-table"><thead><tr><th>Page</th><th>Kind</th><th>Views</th></tr></thead><tbody>`)
				for _, p := range stats.TopPages {
					w.raw("<tr><td><a")
					w.href(p.Path)
					w.raw(">")
					w.text(p.Path)
					w.raw("</a></td>")
					w.elem("td", "", p.Kind)
					w.raw("<td>")
					w.num(p.Views)
					w.raw("</td></tr>")
				}
				w.raw("</tbody></table>")
			})))

			w.comp(Section("views", "Views over time", component(func(w *writer) {
				w.raw(`<table class="stats-table"><tbody>`)
				for _, v := range stats.Views {
					w.raw("<tr>")
					w.elem("th", "", v.Date)
					w.raw("<td>")
					w.num(v.Views)
					w.raw("</td></tr>")
				}
				w.raw("</tbody></table>")
			})))

			dimensionTable(w, "kinds", "Page kinds", stats.KindStats)
			dimensionTable(w, "referrers", "Referrers", stats.ReferrerStats)
			dimensionTable(w, "browsers", "Browsers", stats.BrowserStats)
			dimensionTable(w, "os", "Operating systems", stats.OSStats)
			dimensionTable(w, "devices", "Devices", stats.DeviceStats)
		}

		w.raw(`<form method="post" action="/admin/logout/">`)
		csrfField(w, page.CSRFToken)
		w.raw(`<button class="btn btn-secondary" type="submit">Log out</button></form>`)
	}))
}

func dimensionTable(w *writer, id, title string, rows []analytics.DimensionStat) {
	if len(rows) == 0 {
		return
	}
	w.comp(Section(id, title, component(func(w *writer) {
		w.raw(`<table class="stats-table"><tbody>`)
		for _, r := range rows {
			w.raw("<tr>")
			w.elem("th", "", r.Name)
			w.raw("<td>")
			w.num(r.Count)
			w.raw("</td></tr>")
		}
		w.raw("</tbody></table>")
	})))
}
