package components

import (
	"fmt"

	xlog "pomo/internal/platform/log"
)

// Boundary renders one section of the screen. A panic inside render is logged
// and replaced by a one-line notice so the rest of the screen still draws.
func Boundary(name string, render func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			logger := xlog.WithComponent("ui")
			logger.Error().
				Str("event", "ui.render_panic").
				Str("section", name).
				Interface("panic", r).
				Msg("view panicked")
			out = fmt.Sprintf("[%s unavailable: %v]", name, r)
		}
	}()
	return render()
}
