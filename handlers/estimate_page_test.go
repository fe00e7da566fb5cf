package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ironwood/services"
	"ironwood/testhelpers"
)

func TestHandleEstimatePageStartsDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/estimate", nil)
	rec := httptest.NewRecorder()
	if err := HandleEstimatePage(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var draft *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == draftCookie {
			draft = c
		}
	}
	if draft == nil {
		t.Fatal("expected a draft cookie on the first visit")
	}
	if _, err := app.FindRecordById("estimates", draft.Value); err != nil {
		t.Fatalf("draft cookie should point at a persisted estimate: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"<html",
		"estimate-form",
		"line-items-section",
		"Total",
	)
}

func TestHandleEstimatePageReusesDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	est := services.NewEstimate()
	est.Client = "Dana Whitfield"
	_, cookie := seedDraft(t, app, est)

	req := httptest.NewRequest(http.MethodGet, "/estimate", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := HandleEstimatePage(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Dana Whitfield", est.ID)
}

func TestHandleEstimatePageSharePayloadOverwritesDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	shared := services.NewEstimate()
	shared.Client = "Shared Client"
	shared.Lines = []services.LineItem{{Name: "Oak Rail 8ft", Qty: 2, UnitPrice: 189.5}}
	payload, err := services.EncodeShare(shared)
	if err != nil {
		t.Fatalf("failed to encode share payload: %v", err)
	}

	rec0, cookie := seedDraft(t, app, services.NewEstimate())

	req := httptest.NewRequest(http.MethodGet, "/estimate?q="+payload, nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := HandleEstimatePage(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Shared Client", "Oak Rail 8ft")
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "showToast") {
		t.Error("expected an info toast for the opened share link")
	}

	// The snapshot is persisted onto the existing draft record.
	stored, err := app.FindRecordById("estimates", rec0.Id)
	if err != nil {
		t.Fatalf("failed to reload draft record: %v", err)
	}
	if got := services.EstimateFromRecord(stored).Client; got != "Shared Client" {
		t.Errorf("expected persisted client %q, got %q", "Shared Client", got)
	}
}

func TestHandleEstimatePageBadSharePayloadKeepsDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	est := services.NewEstimate()
	est.Client = "Existing Client"
	_, cookie := seedDraft(t, app, est)

	req := httptest.NewRequest(http.MethodGet, "/estimate?q=!!!not-base64!!!", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := HandleEstimatePage(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Existing Client")
}

func TestHandleEstimateNewReplacesDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	old := services.NewEstimate()
	old.Client = "Old Client"
	oldRec, cookie := seedDraft(t, app, old)

	req := httptest.NewRequest(http.MethodPost, "/estimate/new", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := HandleEstimateNew(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var fresh *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == draftCookie {
			fresh = c
		}
	}
	if fresh == nil {
		t.Fatal("expected a new draft cookie")
	}
	if fresh.Value == oldRec.Id {
		t.Error("new estimate should point the cookie at a different record")
	}

	body := rec.Body.String()
	if strings.Contains(body, "Old Client") {
		t.Error("new estimate should not carry the old client over")
	}
	if strings.Contains(body, "<html") {
		t.Error("new estimate responds with the content partial, not the full page")
	}
}
