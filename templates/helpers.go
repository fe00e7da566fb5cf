// Package templates holds the view layer: plain data structs plus
// templ.Component values rendered straight into the response writer.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// component wraps a render function as a templ.Component.
func component(fn func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(fn)
}

// esc HTML-escapes a string for element content and attribute values.
func esc(s string) string {
	return templ.EscapeString(s)
}

// writef is fmt.Fprintf with the error dropped into a shared slot, so render
// bodies stay linear instead of checking every line.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) writef(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

func (h *htmlWriter) write(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}
