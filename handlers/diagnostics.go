package handlers

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/services"
	"ironwood/templates"
)

const manifestPath = "data/manifest.json"

var probeClient = &http.Client{Timeout: 10 * time.Second}

// HandleDiagnostics handles GET /estimate/diagnostics. It probes every file
// listed in the asset manifest over HTTP against this server and reports
// per-file reachability. An unreadable manifest renders as a failed panel
// rather than an error response.
func HandleDiagnostics(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.DiagnosticsData{
			GeneratedAtUTC: time.Now().UTC().Format("2006-01-02 15:04:05") + " UTC",
		}

		manifest, err := services.LoadManifest(manifestPath)
		if err != nil {
			log.Printf("diagnostics: could not load manifest: %v", err)
			data.Failed = true
			return templates.DiagnosticsPanel(data).Render(e.Request.Context(), e.Response)
		}

		if manifest.GeneratedAtUTC != "" {
			data.GeneratedAtUTC = manifest.GeneratedAtUTC
		}

		base := url.URL{Scheme: requestScheme(e.Request), Host: e.Request.Host}
		data.Results = services.ProbeFiles(e.Request.Context(), probeClient, base.String(), manifest)

		return templates.DiagnosticsPanel(data).Render(e.Request.Context(), e.Response)
	}
}
