package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/services"
	"ironwood/templates"
)

// HandleEstimateForm handles POST /estimate/form — syncs the metadata and
// finance fields into the draft and re-renders the line section (totals
// depend on the finance fields).
func HandleEstimateForm(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, rec, err := loadDraft(app, e)
		if err != nil {
			log.Printf("estimate_form: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		est.Client = strings.TrimSpace(e.Request.FormValue("client"))
		est.Project = strings.TrimSpace(e.Request.FormValue("project"))
		est.Address = strings.TrimSpace(e.Request.FormValue("address"))
		est.Date = strings.TrimSpace(e.Request.FormValue("date"))
		est.Notes = e.Request.FormValue("notes")
		est.ValidDays = formInt(e.Request.FormValue("valid_days"), est.ValidDays)
		est.MarkupPct = formFloat(e.Request.FormValue("markup_pct"), est.MarkupPct)
		est.DiscountAmt = formFloat(e.Request.FormValue("discount_amt"), est.DiscountAmt)
		est.TaxPct = formFloat(e.Request.FormValue("tax_pct"), est.TaxPct)

		if err := saveDraft(app, rec, est); err != nil {
			log.Printf("estimate_form: could not save draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		data := buildEstimateData(app, est)
		return templates.LineItemsSection(data).Render(e.Request.Context(), e.Response)
	}
}

// formInt parses a form value, keeping the previous value on garbage.
func formInt(raw string, prev int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return prev
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return prev
	}
	return n
}

// formFloat parses a form value, keeping the previous value on garbage.
func formFloat(raw string, prev float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return prev
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return prev
	}
	return f
}

// renderLineSection is the shared save-and-re-render tail of every line
// mutation.
func renderLineSection(app *pocketbase.PocketBase, e *core.RequestEvent, rec *core.Record, est services.Estimate) error {
	if err := saveDraft(app, rec, est); err != nil {
		log.Printf("estimate_form: could not save draft: %v", err)
		return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	data := buildEstimateData(app, est)
	return templates.LineItemsSection(data).Render(e.Request.Context(), e.Response)
}
