package services

import (
	"context"
	"log"
	"time"
)

// Camera presets used by the control strip. Orbit distance is a tight-fit
// percentage; 100% frames the model exactly.
const (
	DefaultCameraOrbit  = "0deg 75deg 105%"
	DefaultCameraTarget = "auto auto auto"
	FitCameraOrbit      = "0deg 75deg 100%"
)

// FramingGraceDelay is how long the page waits after swapping the model
// source before recomputing framing, so the viewer can finish loading the new
// asset. A tunable grace period, not a correctness guarantee.
const FramingGraceDelay = 150 * time.Millisecond

// Viewer is the capability contract for the external 3D viewer component.
// Any concrete viewer meeting it is substitutable; all of its operations may
// fail and callers treat failures as non-fatal.
type Viewer interface {
	SetModelSource(src string)
	SetCameraOrbit(orbit string)
	SetCameraTarget(target string)
	SetFieldOfView(fov string)

	// RecomputeFraming recalculates camera distance/target so the model
	// fits the viewport. Errors are logged by callers, never surfaced.
	RecomputeFraming(ctx context.Context) error
	SnapCameraToGoal()
	ResetTurntableRotation()

	AutoRotate() bool
	SetAutoRotate(on bool)
}

// ViewerControls wires the Reset/Fit/Auto-rotate/Fullscreen buttons to a
// viewer. The camera values captured at construction are what Reset restores,
// so Reset is "back to how the page loaded", not a hard-coded default.
//
// A nil viewer disables every control without raising: each method becomes a
// no-op.
type ViewerControls struct {
	viewer Viewer

	InitialOrbit  string
	InitialTarget string
	InitialFOV    string

	// Presentation is the CSS-only fullscreen fallback; PlatformFullscreen
	// mirrors the platform API state. The fullscreen label reflects their
	// union.
	Presentation       bool
	PlatformFullscreen bool

	// RotateInterrupted records that a user camera movement already disabled
	// auto-rotate once; later movements must not re-trigger it.
	RotateInterrupted bool
}

// NewViewerControls captures the viewer's starting camera configuration.
// Empty values fall back to the stock presets so Reset always has something
// to restore.
func NewViewerControls(v Viewer, orbit, target, fov string) *ViewerControls {
	if orbit == "" {
		orbit = DefaultCameraOrbit
	}
	if target == "" {
		target = DefaultCameraTarget
	}
	return &ViewerControls{
		viewer:        v,
		InitialOrbit:  orbit,
		InitialTarget: target,
		InitialFOV:    fov,
	}
}

// Reset restores the captured camera target, orbit and field of view, resets
// the turntable rotation and recomputes framing.
func (c *ViewerControls) Reset(ctx context.Context) {
	if c.viewer == nil {
		return
	}
	c.viewer.SetCameraTarget(c.InitialTarget)
	c.viewer.SetCameraOrbit(c.InitialOrbit)
	if c.InitialFOV != "" {
		c.viewer.SetFieldOfView(c.InitialFOV)
	}
	c.viewer.ResetTurntableRotation()
	c.ensureFraming(ctx)
}

// Fit centers the target automatically and pulls the orbit distance to a
// tight fit, then recomputes framing.
func (c *ViewerControls) Fit(ctx context.Context) {
	if c.viewer == nil {
		return
	}
	c.viewer.SetCameraTarget(DefaultCameraTarget)
	c.viewer.SetCameraOrbit(FitCameraOrbit)
	c.ensureFraming(ctx)
}

// ToggleAutoRotate flips the turntable flag and reports the new state so the
// button label can follow it.
func (c *ViewerControls) ToggleAutoRotate() bool {
	if c.viewer == nil {
		return false
	}
	c.viewer.SetAutoRotate(!c.viewer.AutoRotate())
	return c.viewer.AutoRotate()
}

// ToggleFullscreen always flips presentation mode so the control has a
// visible effect, and separately records whether the platform fullscreen
// request succeeded. It reports whether the control should label itself as
// active afterwards.
func (c *ViewerControls) ToggleFullscreen(platformGranted bool) bool {
	c.Presentation = !c.Presentation
	c.PlatformFullscreen = platformGranted
	return c.FullscreenActive()
}

// FullscreenActive reports platform-fullscreen OR presentation mode.
func (c *ViewerControls) FullscreenActive() bool {
	return c.PlatformFullscreen || c.Presentation
}

// CameraMoved handles a user-initiated camera movement: the first one
// disables auto-rotate, every later one is ignored.
func (c *ViewerControls) CameraMoved() {
	if c.RotateInterrupted || c.viewer == nil {
		return
	}
	c.RotateInterrupted = true
	c.viewer.SetAutoRotate(false)
}

// ScheduleFraming recomputes framing after the grace delay, off the request
// path. Called when the model source changes, so the viewer has time to load
// the new asset first.
func (c *ViewerControls) ScheduleFraming() {
	if c.viewer == nil {
		return
	}
	time.AfterFunc(FramingGraceDelay, func() {
		c.ensureFraming(context.Background())
	})
}

func (c *ViewerControls) ensureFraming(ctx context.Context) {
	if err := c.viewer.RecomputeFraming(ctx); err != nil {
		log.Printf("viewer: framing recompute failed: %v", err)
		return
	}
	c.viewer.SnapCameraToGoal()
}

// ModelViewerElement is the server-side stand-in for the <model-viewer>
// element: it holds the attribute state the templates render. Its framing
// operations always succeed; the real recompute happens in the component
// after the grace delay.
type ModelViewerElement struct {
	Src         string
	CameraOrbit string
	Target      string
	FOV         string
	Rotating    bool
}

// NewModelViewerElement returns an element with the stock camera presets.
func NewModelViewerElement() *ModelViewerElement {
	return &ModelViewerElement{
		CameraOrbit: DefaultCameraOrbit,
		Target:      DefaultCameraTarget,
	}
}

func (m *ModelViewerElement) SetModelSource(src string)    { m.Src = src }
func (m *ModelViewerElement) SetCameraOrbit(orbit string)  { m.CameraOrbit = orbit }
func (m *ModelViewerElement) SetCameraTarget(target string) { m.Target = target }
func (m *ModelViewerElement) SetFieldOfView(fov string)    { m.FOV = fov }

func (m *ModelViewerElement) RecomputeFraming(ctx context.Context) error { return ctx.Err() }
func (m *ModelViewerElement) SnapCameraToGoal()                          {}
func (m *ModelViewerElement) ResetTurntableRotation()                    {}

func (m *ModelViewerElement) AutoRotate() bool      { return m.Rotating }
func (m *ModelViewerElement) SetAutoRotate(on bool) { m.Rotating = on }
