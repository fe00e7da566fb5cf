package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"ironwood/services"
)

// DiagnosticsData is the manifest probe outcome for the diagnostics panel.
type DiagnosticsData struct {
	GeneratedAtUTC string
	Results        []services.ProbeResult

	// Failed is set when the manifest itself could not be loaded.
	Failed bool
}

// DiagnosticsPanel renders the deployment file check: a reachable/total
// summary plus one line per manifest entry.
func DiagnosticsPanel(data DiagnosticsData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.write("<div class=\"diagnostics\"><h3>Deployment check</h3>")
		if data.Failed {
			h.write("<p class=\"placeholder\">The deployment manifest could not be read.</p></div>")
			return h.err
		}

		ok := 0
		for _, r := range data.Results {
			if r.OK {
				ok++
			}
		}
		h.writef("<p class=\"summary\">%d/%d files reachable</p>", ok, len(data.Results))
		if data.GeneratedAtUTC != "" {
			h.writef("<p class=\"generated\">Manifest generated %s</p>", esc(data.GeneratedAtUTC))
		}

		h.write("<ul>")
		for _, r := range data.Results {
			status := "missing"
			mark := "✗"
			if r.OK {
				status = "ok"
				mark = "✓"
			}
			h.writef("<li class=\"%s\">%s %s <span class=\"bytes\">%d bytes</span></li>",
				status, mark, esc(r.Path), r.Bytes)
		}
		h.write("</ul></div>")
		return h.err
	})
}
