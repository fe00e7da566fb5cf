package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/collections"
	"ironwood/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app, "data"); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateDraftNumbers(app); err != nil {
			log.Printf("Warning: estimate number migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Static assets plus the raw data documents (models, manifest); the
		// diagnostics probe fetches the latter over HTTP.
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))
		se.Router.GET("/data/{path...}", apis.Static(os.DirFS("./data"), false))

		// ── Catalog ──────────────────────────────────────────────
		se.Router.GET("/catalog", handlers.HandleCatalogPage(app))
		se.Router.GET("/catalog/list", handlers.HandleCatalogList(app))
		se.Router.GET("/catalog/detail/{slug}", handlers.HandleCatalogDetail(app))
		se.Router.POST("/catalog/viewer/{action}", handlers.HandleViewerAction(app))

		// ── Estimate builder ─────────────────────────────────────
		se.Router.GET("/estimate", handlers.HandleEstimatePage(app))
		se.Router.POST("/estimate/new", handlers.HandleEstimateNew(app))
		se.Router.POST("/estimate/form", handlers.HandleEstimateForm(app))

		// Line items
		se.Router.POST("/estimate/lines", handlers.HandleAddLine(app))
		se.Router.POST("/estimate/lines/from-catalog", handlers.HandleAddLineFromCatalog(app))
		se.Router.POST("/estimate/lines/clear", handlers.HandleClearLines(app))
		se.Router.PATCH("/estimate/lines/{idx}", handlers.HandleUpdateLine(app))
		se.Router.DELETE("/estimate/lines/{idx}", handlers.HandleDeleteLine(app))

		// Scope templates
		se.Router.POST("/estimate/scope/{slug}", handlers.HandleApplyScope(app))

		// Exports and the printable sheet
		se.Router.GET("/estimate/export/json", handlers.HandleExportJSON(app))
		se.Router.GET("/estimate/export/csv", handlers.HandleExportCSV(app))
		se.Router.GET("/estimate/export/excel", handlers.HandleExportExcel(app))
		se.Router.GET("/estimate/export/pdf", handlers.HandleExportPDF(app))
		se.Router.GET("/estimate/print", handlers.HandlePrintSheet(app))

		// Sharing, webhook, diagnostics
		se.Router.GET("/estimate/share", handlers.HandleShareLink(app))
		se.Router.POST("/estimate/webhook", handlers.HandleSendWebhook(app))
		se.Router.POST("/estimate/webhook/url", handlers.HandleSaveWebhookURL(app))
		se.Router.GET("/estimate/diagnostics", handlers.HandleDiagnostics(app))

		// Redirect home to the catalog
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/catalog")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
