package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/services"
	"ironwood/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// seedDraft persists an estimate and returns it with the cookie that makes
// subsequent requests resolve to it.
func seedDraft(t *testing.T, app *pocketbase.PocketBase, est services.Estimate) (*core.Record, *http.Cookie) {
	t.Helper()
	rec := testhelpers.CreateTestEstimate(t, app, est)
	return rec, &http.Cookie{Name: draftCookie, Value: rec.Id}
}

// formRequest builds a form-encoded request the way the browser submits the
// estimate controls.
func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
