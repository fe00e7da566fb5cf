package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/services"
)

// HandleAddLine handles POST /estimate/lines — appends a blank custom line.
func HandleAddLine(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, rec, err := loadDraft(app, e)
		if err != nil {
			log.Printf("line_items: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		est.Lines = append(est.Lines, services.LineItem{Name: "Custom line", Qty: 1})
		return renderLineSection(app, e, rec, est)
	}
}

// HandleAddLineFromCatalog handles POST /estimate/lines/from-catalog —
// appends a catalog entry by its position in the pricing catalog.
func HandleAddLineFromCatalog(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, rec, err := loadDraft(app, e)
		if err != nil {
			log.Printf("line_items: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items := loadCatalogItems(app)
		idx, err := strconv.Atoi(strings.TrimSpace(e.Request.FormValue("item")))
		if err != nil || idx < 0 || idx >= len(items) {
			return ErrorToast(e, http.StatusBadRequest, "Catalog item not found")
		}

		est.Lines = append(est.Lines, services.LineFromCatalogItem(items[idx]))
		SetToast(e, "success", items[idx].Name+" added")
		return renderLineSection(app, e, rec, est)
	}
}

// HandleUpdateLine handles PATCH /estimate/lines/{idx} — patches the
// provided fields on one line. Quantities are clamped, never rejected.
func HandleUpdateLine(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, rec, err := loadDraft(app, e)
		if err != nil {
			log.Printf("line_items: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		idx, err := lineIndex(e, est)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Line item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		line := &est.Lines[idx]
		if _, ok := e.Request.Form["name"]; ok {
			line.Name = e.Request.FormValue("name")
		}
		if _, ok := e.Request.Form["note"]; ok {
			line.Note = e.Request.FormValue("note")
		}
		if v := strings.TrimSpace(e.Request.FormValue("qty")); v != "" {
			if qty, err := strconv.Atoi(v); err == nil {
				line.Qty = services.ClampQty(qty)
			}
		}
		if v := strings.TrimSpace(e.Request.FormValue("unit_price")); v != "" {
			if price, err := strconv.ParseFloat(v, 64); err == nil {
				line.UnitPrice = price
			}
		}

		return renderLineSection(app, e, rec, est)
	}
}

// HandleDeleteLine handles DELETE /estimate/lines/{idx} — removes one line,
// preserving the order of the rest.
func HandleDeleteLine(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, rec, err := loadDraft(app, e)
		if err != nil {
			log.Printf("line_items: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		idx, err := lineIndex(e, est)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Line item not found")
		}

		est.Lines = append(est.Lines[:idx], est.Lines[idx+1:]...)
		SetToast(e, "success", "Line removed")
		return renderLineSection(app, e, rec, est)
	}
}

// HandleClearLines handles POST /estimate/lines/clear — drops every line.
func HandleClearLines(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, rec, err := loadDraft(app, e)
		if err != nil {
			log.Printf("line_items: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		est.Lines = []services.LineItem{}
		SetToast(e, "success", "All lines cleared")
		return renderLineSection(app, e, rec, est)
	}
}

// lineIndex parses and bounds-checks the {idx} path value.
func lineIndex(e *core.RequestEvent, est services.Estimate) (int, error) {
	idx, err := strconv.Atoi(e.Request.PathValue("idx"))
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(est.Lines) {
		return 0, strconv.ErrRange
	}
	return idx, nil
}
