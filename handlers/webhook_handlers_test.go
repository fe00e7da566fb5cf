package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"ironwood/collections"
	"ironwood/services"
	"ironwood/testhelpers"
)

func TestHandleSendWebhookWithoutURLShowsPrompt(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	_, cookie := seedDraft(t, app, services.NewEstimate())

	req := formRequest(http.MethodPost, "/estimate/webhook", url.Values{})
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := HandleSendWebhook(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"webhook-prompt",
		"Set a webhook URL first",
	)
}

func TestHandleSendWebhookDeliversEstimate(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	est := services.NewEstimate()
	est.Client = "Dana Whitfield"
	est.Lines = []services.LineItem{{Name: "Oak Rail 8ft", Qty: 2, UnitPrice: 189.5}}
	_, cookie := seedDraft(t, app, est)

	var received []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := collections.SaveSetting(app, "webhook_url", srv.URL); err != nil {
		t.Fatalf("failed to save webhook url: %v", err)
	}

	req := formRequest(http.MethodPost, "/estimate/webhook", url.Values{})
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := HandleSendWebhook(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if !strings.Contains(rec.Header().Get("HX-Trigger"), "showToast") {
		t.Error("expected a success toast")
	}

	var payload map[string]any
	if err := json.Unmarshal(received, &payload); err != nil {
		t.Fatalf("webhook body is not JSON: %v", err)
	}
	if payload["client"] != "Dana Whitfield" {
		t.Errorf("unexpected webhook payload client: %v", payload["client"])
	}
}

func TestHandleSendWebhookFailureSurfacesGuidance(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	_, cookie := seedDraft(t, app, services.NewEstimate())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if err := collections.SaveSetting(app, "webhook_url", srv.URL); err != nil {
		t.Fatalf("failed to save webhook url: %v", err)
	}

	req := formRequest(http.MethodPost, "/estimate/webhook", url.Values{})
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := HandleSendWebhook(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	// The prompt comes back with the configured URL so it can be corrected.
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "webhook-prompt", srv.URL)
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "showToast") {
		t.Error("expected an error toast")
	}
}

func TestHandleSaveWebhookURL(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := formRequest(http.MethodPost, "/estimate/webhook/url", url.Values{"url": {"https://hooks.example.com/crm"}})
	rec := httptest.NewRecorder()
	if err := HandleSaveWebhookURL(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if got := collections.GetSetting(app, "webhook_url"); got != "https://hooks.example.com/crm" {
		t.Errorf("setting not persisted, got %q", got)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "https://hooks.example.com/crm")
}

func TestHandleSaveWebhookURLRejectsBadScheme(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := formRequest(http.MethodPost, "/estimate/webhook/url", url.Values{"url": {"ftp://hooks.example.com"}})
	rec := httptest.NewRecorder()
	if err := HandleSaveWebhookURL(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if got := collections.GetSetting(app, "webhook_url"); got != "" {
		t.Errorf("rejected URL should not be stored, got %q", got)
	}
}

func TestHandleSaveWebhookURLClears(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.SaveSetting(app, "webhook_url", "https://hooks.example.com/crm"); err != nil {
		t.Fatalf("failed to save webhook url: %v", err)
	}

	req := formRequest(http.MethodPost, "/estimate/webhook/url", url.Values{"url": {""}})
	rec := httptest.NewRecorder()
	if err := HandleSaveWebhookURL(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if got := collections.GetSetting(app, "webhook_url"); got != "" {
		t.Errorf("expected cleared setting, got %q", got)
	}
}
