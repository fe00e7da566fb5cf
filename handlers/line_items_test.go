package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"

	"ironwood/services"
	"ironwood/testhelpers"
)

func draftLines(t *testing.T, app *pocketbase.PocketBase, recID string) []services.LineItem {
	t.Helper()
	rec, err := app.FindRecordById("estimates", recID)
	if err != nil {
		t.Fatalf("failed to reload draft: %v", err)
	}
	return services.EstimateFromRecord(rec).Lines
}

func TestHandleAddLine(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec0, cookie := seedDraft(t, app, services.NewEstimate())

	req := formRequest(http.MethodPost, "/estimate/lines", url.Values{})
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := HandleAddLine(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	lines := draftLines(t, app, rec0.Id)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Name != "Custom line" || lines[0].Qty != 1 {
		t.Errorf("unexpected default line: %+v", lines[0])
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "line-items-section", "Custom line")
}

func TestHandleAddLineFromCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCatalogItem(t, app, "Oak Rail 8ft", 189.5, "clear coat")
	testhelpers.CreateTestCatalogItem(t, app, "Steel Post", 74, "")
	rec0, cookie := seedDraft(t, app, services.NewEstimate())

	req := formRequest(http.MethodPost, "/estimate/lines/from-catalog", url.Values{"item": {"1"}})
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := HandleAddLineFromCatalog(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	lines := draftLines(t, app, rec0.Id)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Name != "Steel Post" || lines[0].UnitPrice != 74 || lines[0].Qty != 1 {
		t.Errorf("unexpected catalog line: %+v", lines[0])
	}
}

func TestHandleAddLineFromCatalogBadIndex(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCatalogItem(t, app, "Oak Rail 8ft", 189.5, "")
	_, cookie := seedDraft(t, app, services.NewEstimate())

	for _, item := range []string{"5", "-1", "abc", ""} {
		req := formRequest(http.MethodPost, "/estimate/lines/from-catalog", url.Values{"item": {item}})
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		if err := HandleAddLineFromCatalog(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("item=%q: expected 400, got %d", item, rec.Code)
		}
	}
}

func TestHandleUpdateLineClampsQty(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	est := services.NewEstimate()
	est.Lines = []services.LineItem{{Name: "Oak Rail 8ft", Qty: 2, UnitPrice: 189.5}}
	rec0, cookie := seedDraft(t, app, est)

	tests := []struct {
		raw  string
		want int
	}{
		{"5", 5},
		{"-3", 0},
		{"1000000", 999999},
	}
	for _, tt := range tests {
		req := formRequest(http.MethodPatch, "/estimate/lines/0", url.Values{"qty": {tt.raw}})
		req.SetPathValue("idx", "0")
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		if err := HandleUpdateLine(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("qty=%q: handler returned error: %v", tt.raw, err)
		}
		if got := draftLines(t, app, rec0.Id)[0].Qty; got != tt.want {
			t.Errorf("qty=%q: expected %d, got %d", tt.raw, tt.want, got)
		}
	}
}

func TestHandleUpdateLinePatchesOnlyProvidedFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	est := services.NewEstimate()
	est.Lines = []services.LineItem{{Name: "Oak Rail 8ft", Qty: 2, UnitPrice: 189.5, Note: "clear coat"}}
	rec0, cookie := seedDraft(t, app, est)

	req := formRequest(http.MethodPatch, "/estimate/lines/0", url.Values{"unit_price": {"210"}})
	req.SetPathValue("idx", "0")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := HandleUpdateLine(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	line := draftLines(t, app, rec0.Id)[0]
	if line.UnitPrice != 210 {
		t.Errorf("expected unit price 210, got %v", line.UnitPrice)
	}
	if line.Name != "Oak Rail 8ft" || line.Note != "clear coat" || line.Qty != 2 {
		t.Errorf("untouched fields changed: %+v", line)
	}
}

func TestHandleUpdateLineBadIndex(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	est := services.NewEstimate()
	est.Lines = []services.LineItem{{Name: "Oak Rail 8ft", Qty: 1}}
	_, cookie := seedDraft(t, app, est)

	for _, idx := range []string{"1", "-1", "abc"} {
		req := formRequest(http.MethodPatch, "/estimate/lines/"+idx, url.Values{"qty": {"3"}})
		req.SetPathValue("idx", idx)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		if err := HandleUpdateLine(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("idx=%q: handler returned error: %v", idx, err)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("idx=%q: expected 404, got %d", idx, rec.Code)
		}
	}
}

func TestHandleDeleteLinePreservesOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	est := services.NewEstimate()
	est.Lines = []services.LineItem{
		{Name: "First", Qty: 1},
		{Name: "Second", Qty: 1},
		{Name: "Third", Qty: 1},
	}
	rec0, cookie := seedDraft(t, app, est)

	req := httptest.NewRequest(http.MethodDelete, "/estimate/lines/1", nil)
	req.SetPathValue("idx", "1")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := HandleDeleteLine(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	lines := draftLines(t, app, rec0.Id)
	if len(lines) != 2 || lines[0].Name != "First" || lines[1].Name != "Third" {
		t.Errorf("unexpected lines after delete: %+v", lines)
	}
}

func TestHandleClearLines(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	est := services.NewEstimate()
	est.Lines = []services.LineItem{{Name: "Oak Rail 8ft", Qty: 2, UnitPrice: 189.5}}
	rec0, cookie := seedDraft(t, app, est)

	req := formRequest(http.MethodPost, "/estimate/lines/clear", url.Values{})
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := HandleClearLines(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if lines := draftLines(t, app, rec0.Id); len(lines) != 0 {
		t.Errorf("expected no lines, got %+v", lines)
	}
	if !strings.Contains(rec.Body.String(), "No line items yet") {
		t.Error("expected the empty-lines placeholder")
	}
}
