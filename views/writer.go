package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// writer accumulates markup for a component and keeps the first write error,
// so render code can stay linear.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

// component adapts a render function into a templ.Component.
func component(fn func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{ctx: ctx, w: out}
		fn(w)
		return w.err
	})
}

// raw writes trusted markup as is.
func (w *writer) raw(parts ...string) {
	for _, s := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, s)
	}
}

// text writes s HTML-escaped.
func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (w *writer) attr(name, value string) {
	w.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// href writes an href attribute, replacing unsafe URLs.
func (w *writer) href(u string) {
	w.attr("href", string(templ.URL(u)))
}

// elem writes <tag class="...">text</tag>. An empty class is left out.
func (w *writer) elem(tag, class, text string) {
	w.raw("<", tag)
	if class != "" {
		w.attr("class", class)
	}
	w.raw(">")
	w.text(text)
	w.raw("</", tag, ">")
}

func (w *writer) num(n int) {
	w.raw(strconv.Itoa(n))
}

// comp renders a nested component into the same output.
func (w *writer) comp(c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(w.ctx, w.w)
}

// list writes items as a <ul>, nothing when empty.
func (w *writer) list(class string, items []string) {
	if len(items) == 0 {
		return
	}
	w.raw("<ul")
	if class != "" {
		w.attr("class", class)
	}
	w.raw(">")
	for _, it := range items {
		w.elem("li", "", it)
	}
	w.raw("</ul>")
}
