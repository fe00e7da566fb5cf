package handlers

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ironwood/services"
	"ironwood/templates"
)

const viewerCookie = "viewer_session"

// viewerSession pairs the control surface with the element state it drives.
type viewerSession struct {
	controls *services.ViewerControls
	element  *services.ModelViewerElement
}

// viewerSessions holds the per-browser viewer state. The state is transient
// UI state (camera, rotation, fullscreen), so it lives in memory rather than
// a collection; losing it on restart just resets the camera.
var viewerSessions = struct {
	mu sync.Mutex
	m  map[string]*viewerSession
}{m: make(map[string]*viewerSession)}

// sessionViewer resolves (or creates) the viewer state for this browser.
func sessionViewer(e *core.RequestEvent) (*services.ViewerControls, *services.ModelViewerElement) {
	var key string
	if cookie, err := e.Request.Cookie(viewerCookie); err == nil && cookie.Value != "" {
		key = cookie.Value
	} else {
		key = uuid.NewString()
		http.SetCookie(e.Response, &http.Cookie{
			Name:     viewerCookie,
			Value:    key,
			Path:     "/catalog",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	viewerSessions.mu.Lock()
	defer viewerSessions.mu.Unlock()

	s, ok := viewerSessions.m[key]
	if !ok {
		element := services.NewModelViewerElement()
		s = &viewerSession{
			controls: services.NewViewerControls(element, "", "", ""),
			element:  element,
		}
		viewerSessions.m[key] = s
	}
	return s.controls, s.element
}

// viewerStripData maps the session state onto the rendered attributes.
func viewerStripData(controls *services.ViewerControls, element *services.ModelViewerElement) templates.ViewerStripData {
	return templates.ViewerStripData{
		Src:          element.Src,
		CameraOrbit:  element.CameraOrbit,
		CameraTarget: element.Target,
		AutoRotate:   element.AutoRotate(),
		Fullscreen:   controls.FullscreenActive(),
		Presentation: controls.Presentation,
	}
}

// HandleViewerAction handles POST /catalog/viewer/{action} for the control
// strip buttons: reset, fit, auto, full and moved. Viewer failures are
// logged inside the controls and never fail the request.
func HandleViewerAction(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		controls, element := sessionViewer(e)

		action := e.Request.PathValue("action")
		switch action {
		case "reset":
			controls.Reset(e.Request.Context())
		case "fit":
			controls.Fit(e.Request.Context())
		case "auto":
			controls.ToggleAutoRotate()
		case "full":
			// The browser reports whether its platform fullscreen request
			// was granted; presentation mode flips regardless.
			granted := e.Request.FormValue("granted") == "1"
			controls.ToggleFullscreen(granted)
		case "moved":
			controls.CameraMoved()
		default:
			return ErrorToast(e, http.StatusNotFound, "Unknown viewer action")
		}

		strip := viewerStripData(controls, element)
		if action == "full" {
			return templates.ViewerPanel(strip).Render(e.Request.Context(), e.Response)
		}
		return templates.ControlStrip(strip).Render(e.Request.Context(), e.Response)
	}
}
