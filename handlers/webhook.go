package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/collections"
	"ironwood/services"
	"ironwood/templates"
)

// webhookClient is shared by all sends; the timeout keeps a dead endpoint
// from pinning request goroutines.
var webhookClient = &http.Client{Timeout: 10 * time.Second}

// HandleSendWebhook handles POST /estimate/webhook. Without a configured URL
// it answers with the settings prompt instead of failing. Delivery failures
// surface the guidance message; the estimate itself is never touched.
func HandleSendWebhook(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est, _, err := loadDraft(app, e)
		if err != nil {
			log.Printf("webhook: could not load draft: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		target := collections.GetSetting(app, "webhook_url")
		if target == "" {
			return templates.WebhookPrompt("", "Set a webhook URL first — your CRM automation provides one.").
				Render(e.Request.Context(), e.Response)
		}

		if err := services.SendWebhook(e.Request.Context(), webhookClient, target, est); err != nil {
			log.Printf("webhook: delivery failed: %v", err)
			SetToast(e, "error", "Webhook delivery failed")

			guidance := "The webhook could not be delivered."
			var werr *services.WebhookError
			if errors.As(err, &werr) {
				guidance = werr.Guidance
			}
			return templates.WebhookPrompt(target, guidance).Render(e.Request.Context(), e.Response)
		}

		SetToast(e, "success", "Estimate sent to webhook")
		return e.NoContent(http.StatusOK)
	}
}

// HandleSaveWebhookURL handles POST /estimate/webhook/url.
func HandleSaveWebhookURL(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		raw := strings.TrimSpace(e.Request.FormValue("url"))
		if raw != "" {
			parsed, err := url.Parse(raw)
			if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
				return ErrorToast(e, http.StatusBadRequest, "The webhook URL must be an http(s) address")
			}
		}

		if err := collections.SaveSetting(app, "webhook_url", raw); err != nil {
			log.Printf("webhook: could not save url: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if raw == "" {
			SetToast(e, "info", "Webhook URL cleared")
		} else {
			SetToast(e, "success", "Webhook URL saved")
		}
		return templates.WebhookPrompt(raw, "").Render(e.Request.Context(), e.Response)
	}
}
