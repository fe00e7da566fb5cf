package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/collections"
	"ironwood/services"
	"ironwood/templates"
)

// loadCatalogItems returns the pricing catalog in seed order.
func loadCatalogItems(app *pocketbase.PocketBase) []services.CatalogItem {
	records, err := app.FindRecordsByFilter("catalog_items", "id != ''", "sort_order", 0, 0, nil)
	if err != nil {
		log.Printf("estimate: could not query catalog items: %v", err)
		return nil
	}
	items := make([]services.CatalogItem, 0, len(records))
	for _, rec := range records {
		items = append(items, services.CatalogItemFromRecord(rec))
	}
	return items
}

// loadScopeTemplates returns every scope template in seed order.
func loadScopeTemplates(app *pocketbase.PocketBase) []services.ScopeTemplate {
	records, err := app.FindRecordsByFilter("scope_templates", "id != ''", "sort_order", 0, 0, nil)
	if err != nil {
		log.Printf("estimate: could not query scope templates: %v", err)
		return nil
	}
	tpls := make([]services.ScopeTemplate, 0, len(records))
	for _, rec := range records {
		tpls = append(tpls, services.ScopeTemplateFromRecord(rec))
	}
	return tpls
}

// estimateTerms combines the global base terms with the applied scope's own.
func estimateTerms(app *pocketbase.PocketBase, est services.Estimate) []string {
	var terms []string
	if raw := collections.GetSetting(app, "base_terms"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &terms); err != nil {
			log.Printf("estimate: malformed base_terms setting: %v", err)
			terms = nil
		}
	}

	if est.ScopeID != "" {
		for _, tpl := range loadScopeTemplates(app) {
			if tpl.ID == est.ScopeID {
				terms = append(terms, tpl.Terms...)
				break
			}
		}
	}
	return terms
}

// buildEstimateData assembles the full page state around the current draft.
func buildEstimateData(app *pocketbase.PocketBase, est services.Estimate) templates.EstimatePageData {
	items := loadCatalogItems(app)

	var scopes []templates.ScopeOption
	for _, tpl := range loadScopeTemplates(app) {
		scopes = append(scopes, templates.ScopeOption{
			Slug:    tpl.ID,
			Name:    tpl.Name,
			Group:   tpl.Group,
			Summary: tpl.Summary,
		})
	}

	return templates.EstimatePageData{
		Est:          est,
		Totals:       services.CalcEstimateTotals(est),
		CatalogItems: items,
		CatalogEmpty: len(items) == 0,
		Scopes:       scopes,
		Terms:        estimateTerms(app, est),
		WebhookURL:   collections.GetSetting(app, "webhook_url"),
	}
}

// HandleEstimatePage handles GET /estimate. A ?q= share snapshot overwrites
// the draft; a failed decode is logged and the existing draft kept.
func HandleEstimatePage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, rec, err := loadDraft(app, e)
		if err != nil {
			log.Printf("estimate_page: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if payload := e.Request.URL.Query().Get("q"); payload != "" {
			shared, err := services.DecodeShare(payload)
			if err != nil {
				log.Printf("estimate_page: ignoring bad share payload: %v", err)
			} else {
				est = shared
				if err := saveDraft(app, rec, est); err != nil {
					log.Printf("estimate_page: could not save shared draft: %v", err)
					return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
				}
				SetToast(e, "info", "Opened a shared estimate")
			}
		}

		data := buildEstimateData(app, est)

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.EstimateContent(data)
		} else {
			component = templates.EstimatePage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleEstimateNew handles POST /estimate/new — replaces the draft with a
// fresh estimate.
func HandleEstimateNew(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, _, err := newDraft(app, e)
		if err != nil {
			log.Printf("estimate_page: could not create draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Started estimate "+est.ID)
		data := buildEstimateData(app, est)
		return templates.EstimateContent(data).Render(e.Request.Context(), e.Response)
	}
}
