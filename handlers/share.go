package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/services"
	"ironwood/templates"
)

// HandleShareLink handles GET /estimate/share — renders a URL that carries
// the whole estimate in its ?q= payload.
func HandleShareLink(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, _, err := loadDraft(app, e)
		if err != nil {
			log.Printf("share: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		payload, err := services.EncodeShare(est)
		if err != nil {
			log.Printf("share: could not encode estimate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not build the share link")
		}

		shareURL := url.URL{
			Scheme:   requestScheme(e.Request),
			Host:     e.Request.Host,
			Path:     "/estimate",
			RawQuery: "q=" + payload,
		}
		return templates.ShareLinkBox(shareURL.String()).Render(e.Request.Context(), e.Response)
	}
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}
