package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// navLink is one entry of the top navigation.
type navLink struct {
	Href  string
	Label string
}

var navLinks = []navLink{
	{Href: "/catalog", Label: "Catalog"},
	{Href: "/estimate", Label: "Estimate Builder"},
}

// Layout renders the full page shell around content. active selects the
// highlighted nav entry by href.
func Layout(title, active string, content templ.Component) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.write("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.write("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		h.writef("<title>%s — Ironwood Railings &amp; Millwork</title>", esc(title))
		h.write("<link rel=\"stylesheet\" href=\"/static/app.css\">")
		h.write("<script src=\"https://unpkg.com/htmx.org@2.0.4\" defer></script>")
		h.write("<script type=\"module\" src=\"https://ajax.googleapis.com/ajax/libs/model-viewer/3.5.0/model-viewer.min.js\"></script>")
		h.write("</head><body>")

		h.write("<header class=\"topbar\"><div class=\"brand\">Ironwood</div><nav>")
		for _, link := range navLinks {
			cls := "nav-link"
			if link.Href == active {
				cls = "nav-link active"
			}
			h.writef("<a class=\"%s\" href=\"%s\">%s</a>", cls, esc(link.Href), esc(link.Label))
		}
		h.write("</nav></header>")

		h.write("<main id=\"content\">")
		h.render(ctx, content)
		h.write("</main>")

		h.write("<div id=\"toast-container\" aria-live=\"polite\"></div>")
		h.write("<script src=\"/static/toast.js\" defer></script>")
		h.write("</body></html>")
		return h.err
	})
}
