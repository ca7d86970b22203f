package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/ansipixels/twincam/hotspot"
	"github.com/ansipixels/twincam/navigator"
	"github.com/ansipixels/twincam/render"
)

var (
	colorText   = render.RGB(230, 230, 235)
	colorDim    = render.RGB(140, 145, 155)
	colorAccent = render.RGB(90, 200, 255)
	colorWarn   = render.RGB(255, 90, 60)
	colorMarker = render.RGB(255, 210, 80)
)

// HUD draws the overlay text on top of the scene.
type HUD struct {
	Title    string
	ShowHelp bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD for the named scene.
func NewHUD(title string) *HUD {
	return &HUD{Title: title, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

var helpLines = []string{
	"1-9 viewpoint   ←/→ prev/next   r home   space pause tour",
	"drag orbit   wheel zoom   click fly/inspect   : command",
	"t tour on/off   x clear alert   ? help   esc close/quit",
}

// Draw writes the HUD rows into c.
func (h *HUD) Draw(c *render.Canvas, s *navigator.Shell, p *Prompt) {
	if c.Height < 3 {
		return
	}
	c.Text(0, 0, " twincam  "+h.Title, colorText)
	fps := fmt.Sprintf("%.0f FPS ", h.fps)
	c.Text(c.Width-len(fps), 0, fps, colorDim)

	active := "▶ " + s.ActiveName()
	if label := s.TransitionLabel(); label != "" {
		active += "  → " + label
	}
	c.Text(1, 1, active, colorAccent)

	if insp, ok := s.Inspector(); ok {
		lines := []string{
			"┤ " + insp.Object + " ├",
			fmt.Sprintf("(%.2f, %.2f, %.2f)", insp.Position[0], insp.Position[1], insp.Position[2]),
			"esc to close",
		}
		w := 0
		for _, l := range lines {
			w = max(w, len([]rune(l)))
		}
		for i, l := range lines {
			c.Text(c.Width-w-2, 2+i, l, colorText)
		}
	}

	if h.ShowHelp {
		for i, l := range helpLines {
			c.Text(1, c.Height-2-len(helpLines)+i, l, colorDim)
		}
	}

	bottom := c.Height - 1
	if p.IsOpen() {
		c.Text(0, bottom, ":"+p.Text()+"█", colorText)
		return
	}
	pos := s.Handle().CurrentPosition()
	status := fmt.Sprintf(" pos (%.2f, %.2f, %.2f)   tour %s", pos[0], pos[1], pos[2], tourState(s))
	c.Text(0, bottom, status, colorText)
	if key := s.AlertKey(); key != "" {
		alert := fmt.Sprintf("alert %s [%s] ", key, s.AlertState())
		col := colorWarn
		if math.Sin(2*math.Pi*s.Elapsed()) < 0 {
			col = colorDim
		}
		c.Text(c.Width-len(alert), bottom, alert, col)
	} else if msg := p.Status(); msg != "" {
		c.Text(c.Width-len([]rune(msg))-1, bottom, msg, colorDim)
	}
}

func tourState(s *navigator.Shell) string {
	switch {
	case !s.TourEnabled():
		return "off"
	case s.TourPaused():
		return "paused"
	}
	return "on"
}

// DrawMarkers draws the hotspot rings and dots; the label only appears on
// the hovered marker.
func DrawMarkers(c *render.Canvas, markers []hotspot.ScreenMarker, t float64) {
	scale, _ := hotspot.Pulse(t)
	ringL, ringR := '(', ')'
	if scale > 1.5 {
		ringL, ringR = '⟨', '⟩'
	}
	for _, m := range markers {
		dot := '○'
		if m.Active {
			dot = '●'
		}
		c.Set(m.X-1, m.Y, ringL, colorMarker)
		c.Set(m.X, m.Y, dot, colorMarker)
		c.Set(m.X+1, m.Y, ringR, colorMarker)
		if label := hotspot.Label(m.Marker); label != "" {
			c.Text(m.X+3, m.Y, label, colorText)
		}
	}
}
