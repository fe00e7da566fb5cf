package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/services"
)

const draftCookie = "estimate_draft"

// loadDraft resolves the browser's current estimate draft from the
// estimate_draft cookie. A missing or stale cookie yields a freshly persisted
// estimate and a new cookie.
func loadDraft(app *pocketbase.PocketBase, e *core.RequestEvent) (services.Estimate, *core.Record, error) {
	if cookie, err := e.Request.Cookie(draftCookie); err == nil && cookie.Value != "" {
		rec, err := app.FindRecordById("estimates", cookie.Value)
		if err == nil {
			return services.EstimateFromRecord(rec), rec, nil
		}
		log.Printf("draft: stale draft cookie %s, starting fresh", cookie.Value)
	}
	return newDraft(app, e)
}

// newDraft persists a fresh estimate and points the draft cookie at it.
func newDraft(app *pocketbase.PocketBase, e *core.RequestEvent) (services.Estimate, *core.Record, error) {
	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return services.Estimate{}, nil, err
	}

	est := services.NewEstimate()
	rec := core.NewRecord(col)
	if err := services.ApplyEstimateToRecord(est, rec); err != nil {
		return services.Estimate{}, nil, err
	}
	if err := app.Save(rec); err != nil {
		return services.Estimate{}, nil, err
	}

	setDraftCookie(e, rec.Id)
	return est, rec, nil
}

// saveDraft writes the estimate back onto its record and persists it.
func saveDraft(app *pocketbase.PocketBase, rec *core.Record, est services.Estimate) error {
	if err := services.ApplyEstimateToRecord(est, rec); err != nil {
		return err
	}
	return app.Save(rec)
}

func setDraftCookie(e *core.RequestEvent, recordID string) {
	http.SetCookie(e.Response, &http.Cookie{
		Name:     draftCookie,
		Value:    recordID,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 365,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
