package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/services"
	"ironwood/templates"
)

// HandleApplyScope handles POST /estimate/scope/{slug}?mode=add|replace.
// Replace discards every existing line and therefore requires an explicit
// confirm flag; requests without it are rejected with a warning toast.
// A defaults flag overlays the template's suggested markup/discount/tax.
func HandleApplyScope(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, rec, err := loadDraft(app, e)
		if err != nil {
			log.Printf("scope_apply: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		slug := e.Request.PathValue("slug")
		var tpl *services.ScopeTemplate
		for _, candidate := range loadScopeTemplates(app) {
			if candidate.ID == slug {
				tpl = &candidate
				break
			}
		}
		if tpl == nil {
			return ErrorToast(e, http.StatusNotFound, "Scope template not found")
		}

		q := e.Request.URL.Query()
		mode := q.Get("mode")
		if mode == services.ScopeModeReplace && q.Get("confirm") != "1" {
			SetToast(e, "warning", "Replacing lines needs confirmation")
			e.Response.Header().Set("HX-Reswap", "none")
			return e.String(http.StatusBadRequest, "confirmation required")
		}

		applyDefaults := e.Request.FormValue("defaults") == "1"
		if err := services.ApplyScope(&est, *tpl, mode, applyDefaults); err != nil {
			log.Printf("scope_apply: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Unknown scope mode")
		}

		if err := saveDraft(app, rec, est); err != nil {
			log.Printf("scope_apply: could not save draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Applied scope: "+tpl.Name)
		data := buildEstimateData(app, est)
		return templates.EstimateContent(data).Render(e.Request.Context(), e.Response)
	}
}
