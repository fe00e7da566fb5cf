package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendWebhookDeliversSnapshot(t *testing.T) {
	var gotBody []byte
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	est := NewEstimate()
	est.Client = "Harbor Homes"
	est.Lines = []LineItem{{Name: "Oak Rail 8ft", Qty: 2, UnitPrice: 189.5}}

	if err := SendWebhook(context.Background(), srv.Client(), srv.URL, est); err != nil {
		t.Fatalf("SendWebhook: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}

	var payload WebhookPayload
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload.Client != "Harbor Homes" {
		t.Errorf("client = %q", payload.Client)
	}
	if payload.Totals.Total == 0 {
		t.Error("totals not computed into payload")
	}
	if payload.SentAtUTC == "" {
		t.Error("sent_at_utc missing")
	}
}

func TestSendWebhookNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	err := SendWebhook(context.Background(), srv.Client(), srv.URL, NewEstimate())
	var werr *WebhookError
	if !errors.As(err, &werr) {
		t.Fatalf("error = %v, want *WebhookError", err)
	}
	if werr.Status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", werr.Status)
	}
	if werr.Guidance == "" {
		t.Error("status failure must carry user guidance")
	}
}

func TestSendWebhookUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // guaranteed connection refusal

	err := SendWebhook(context.Background(), http.DefaultClient, url, NewEstimate())
	var werr *WebhookError
	if !errors.As(err, &werr) {
		t.Fatalf("error = %v, want *WebhookError", err)
	}
	if werr.Status != 0 {
		t.Errorf("transport failure should not carry a status, got %d", werr.Status)
	}
	if werr.Unwrap() == nil {
		t.Error("transport failure must wrap the underlying error")
	}
}
