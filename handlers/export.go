package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/services"
	"ironwood/templates"
)

// exportData flattens the current draft plus its terms into the shape the
// file generators and the print sheet share.
func exportData(app *pocketbase.PocketBase, est services.Estimate) services.ExportData {
	return services.BuildExportData(est, estimateTerms(app, est))
}

func attachment(e *core.RequestEvent, filename, contentType string, body []byte) error {
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return e.Blob(http.StatusOK, contentType, body)
}

// HandleExportJSON handles GET /estimate/export/json.
func HandleExportJSON(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, _, err := loadDraft(app, e)
		if err != nil {
			log.Printf("export: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		body, err := services.EstimateJSON(est)
		if err != nil {
			log.Printf("export: json generation failed: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not generate the JSON export")
		}
		return attachment(e, "ironwood-estimate-"+est.ID+".json", "application/json", body)
	}
}

// HandleExportCSV handles GET /estimate/export/csv.
func HandleExportCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, _, err := loadDraft(app, e)
		if err != nil {
			log.Printf("export: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		body := services.EstimateCSV(est)
		return attachment(e, "ironwood-estimate-"+est.ID+".csv", "text/csv", []byte(body))
	}
}

// HandleExportExcel handles GET /estimate/export/excel.
func HandleExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, _, err := loadDraft(app, e)
		if err != nil {
			log.Printf("export: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		body, err := services.GenerateEstimateExcel(exportData(app, est))
		if err != nil {
			log.Printf("export: excel generation failed: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not generate the Excel export")
		}
		return attachment(e, "ironwood-estimate-"+est.ID+".xlsx",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", body)
	}
}

// HandleExportPDF handles GET /estimate/export/pdf.
func HandleExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, _, err := loadDraft(app, e)
		if err != nil {
			log.Printf("export: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		body, err := services.GenerateEstimatePDF(exportData(app, est))
		if err != nil {
			log.Printf("export: pdf generation failed: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not generate the PDF export")
		}
		return attachment(e, "ironwood-estimate-"+est.ID+".pdf", "application/pdf", body)
	}
}

// HandlePrintSheet handles GET /estimate/print — the printable quote page.
func HandlePrintSheet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, _, err := loadDraft(app, e)
		if err != nil {
			log.Printf("export: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return templates.PrintSheet(exportData(app, est)).Render(e.Request.Context(), e.Response)
	}
}
