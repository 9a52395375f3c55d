package app

import (
	"log/slog"

	"github.com/jarvis-agent/desktop/internal/types"
	"github.com/jarvis-agent/desktop/store"
)

// placement is implemented by windows whose geometry can be persisted.
type placement interface {
	Position() (int, int)
	Size() (int, int)
	SetPosition(x, y int)
	SetSize(width, height int)
}

func windowStateKey(name string) string {
	return "window/" + name
}

func saveGeometry(st *store.Store, name string, p placement) {
	x, y := p.Position()
	w, h := p.Size()
	g := types.WindowGeometry{X: x, Y: y, Width: w, Height: h}
	if !g.Valid() {
		return
	}
	if err := st.SetJSON(windowStateKey(name), g); err != nil {
		slog.Warn("save window state", "window", name, "error", err)
	}
}

func restoreGeometry(st *store.Store, name string, p placement) {
	var g types.WindowGeometry
	found, err := st.GetJSON(windowStateKey(name), &g)
	if err != nil {
		slog.Warn("load window state", "window", name, "error", err)
		return
	}
	if !found || !g.Valid() {
		return
	}
	p.SetSize(g.Width, g.Height)
	p.SetPosition(g.X, g.Y)
	slog.Debug("window state restored", "window", name, "x", g.X, "y", g.Y, "width", g.Width, "height", g.Height)
}
