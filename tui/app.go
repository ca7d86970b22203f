// Package tui is the terminal front-end: it owns the ultraviolet terminal,
// runs the frame loop and turns key and mouse events into shell calls.
package tui

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ansipixels/twincam/hotspot"
	"github.com/ansipixels/twincam/input"
	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/navigator"
	"github.com/ansipixels/twincam/render"
	"github.com/ansipixels/twincam/scene"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/rs/zerolog"
)

const (
	orbitStrength = 0.02 // radians per dragged cell
	dollyStep     = 0.08
	keyOrbit      = 0.06
	// A press and release closer than this (in cells) is a click, not a drag.
	clickSlop = 1
)

// App is one terminal session over a navigator shell.
type App struct {
	shell  *navigator.Shell
	scene  *scene.Scene
	cam    *render.Camera
	canvas *render.Canvas
	hud    *HUD
	prompt Prompt
	log    zerolog.Logger
	fps    int

	width, height int
	markers       []hotspot.ScreenMarker

	mouseDown    bool
	dragged      bool
	downX, downY int
	lastX, lastY int
	quit         bool

	startAlert string
}

// NewApp creates the front-end. The shell must not be attached yet.
func NewApp(shell *navigator.Shell, sc *scene.Scene, title string, fps int, log zerolog.Logger) *App {
	if fps <= 0 {
		fps = 30
	}
	return &App{
		shell: shell,
		scene: sc,
		cam:   render.NewCamera(),
		hud:   NewHUD(title),
		log:   log,
		fps:   fps,
	}
}

// ArmOnStart arms the alert key right after the shell attaches, so a
// resolving alert can fly the camera.
func (a *App) ArmOnStart(key string) { a.startAlert = key }

// resize adapts the canvas and the camera aspect. Terminal cells are
// roughly twice as tall as wide.
func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	if a.canvas == nil {
		a.canvas = render.NewCanvas(w, h)
	} else {
		a.canvas.Resize(w, h)
	}
	a.cam.SetAspectRatio(float64(w) / float64(2*h))
}

// Run takes over the terminal until ctx is cancelled or the user quits.
func (a *App) Run(ctx context.Context) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	a.resize(width, height)
	a.shell.Attach(a.cam)
	defer a.shell.Detach()
	if a.startAlert != "" {
		a.shell.SetAlertKey(a.startAlert)
	}

	// Events are forwarded to the frame loop so every shell call happens
	// on this goroutine.
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	targetDuration := time.Second / time.Duration(a.fps)
	lastFrame := time.Now()
	for !a.quit {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

	drain:
		for {
			select {
			case ev := <-events:
				a.handle(term, ev)
			default:
				break drain
			}
		}

		now := time.Now()
		dt := now.Sub(lastFrame)
		lastFrame = now
		if dt > 100*time.Millisecond {
			dt = 100 * time.Millisecond
		}
		a.shell.Tick(dt)

		a.canvas.Clear()
		a.canvas.DrawScene(a.scene, a.cam)
		a.markers = a.shell.Hotspots().Project(a.cam, a.width, a.height)
		DrawMarkers(a.canvas, a.markers, a.shell.Elapsed())
		a.hud.UpdateFPS()
		a.hud.Draw(a.canvas, a.shell, &a.prompt)
		if err := a.canvas.Render(os.Stdout); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
	return nil
}

func (a *App) handle(term *uv.Terminal, ev uv.Event) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		term.Erase()
		term.Resize(ev.Width, ev.Height)
		a.resize(ev.Width, ev.Height)
	case uv.KeyPressEvent:
		a.key(ev)
	case uv.MouseClickEvent:
		if ev.Button != uv.MouseLeft {
			return
		}
		a.mouseDown, a.dragged = true, false
		a.downX, a.downY = ev.X, ev.Y
		a.lastX, a.lastY = ev.X, ev.Y
	case uv.MouseReleaseEvent:
		if a.mouseDown && !a.dragged {
			a.click(ev.X, ev.Y)
		}
		a.mouseDown = false
	case uv.MouseMotionEvent:
		a.motion(ev.X, ev.Y)
	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			a.shell.Dolly(-dollyStep)
		case uv.MouseWheelDown:
			a.shell.Dolly(dollyStep)
		}
	}
}

func (a *App) key(ev uv.KeyPressEvent) {
	if a.prompt.IsOpen() {
		// The router still sees the key and ignores it under text focus.
		a.shell.HandleKey(input.KeyEvent{Key: domKey(ev)})
		switch {
		case ev.MatchString("escape"):
			a.prompt.Close()
			a.shell.SetTextFocus(false)
		case ev.MatchString("enter"):
			a.prompt.Submit(a.shell)
			a.shell.SetTextFocus(false)
		case ev.MatchString("backspace"):
			a.prompt.Backspace()
		case ev.MatchString("space"):
			a.prompt.Insert(" ")
		default:
			a.prompt.Insert(ev.Text)
		}
		return
	}

	switch {
	case ev.MatchString("ctrl+c"):
		a.quit = true
		return
	case ev.MatchString("escape"):
		if _, open := a.shell.Inspector(); open {
			a.shell.CloseInspector()
			return
		}
		a.quit = true
		return
	case ev.MatchString(":"):
		a.prompt.Open()
		a.shell.SetTextFocus(true)
		return
	case ev.MatchString("?"), ev.MatchString("shift+/"):
		a.hud.ShowHelp = !a.hud.ShowHelp
		return
	case ev.MatchString("t"):
		a.shell.SetTour(!a.shell.TourEnabled(), a.shell.TourInterval())
		return
	case ev.MatchString("x"):
		a.shell.SetAlertKey("")
		return
	case ev.MatchString("w", "up"):
		a.shell.Orbit(0, keyOrbit)
		return
	case ev.MatchString("s", "down"):
		a.shell.Orbit(0, -keyOrbit)
		return
	case ev.MatchString("a"):
		a.shell.Orbit(-keyOrbit, 0)
		return
	case ev.MatchString("d"):
		a.shell.Orbit(keyOrbit, 0)
		return
	case ev.MatchString("+", "="):
		a.shell.Dolly(-dollyStep)
		return
	case ev.MatchString("-", "_"):
		a.shell.Dolly(dollyStep)
		return
	}
	if res := a.shell.HandleKey(input.KeyEvent{Key: domKey(ev)}); !res.Handled {
		a.log.Debug().Str("key", ev.String()).Msg("unhandled key")
	}
}

// domKey names a key press the way the input router expects.
func domKey(ev uv.KeyPressEvent) string {
	switch {
	case ev.MatchString("right"):
		return input.KeyArrowRight
	case ev.MatchString("left"):
		return input.KeyArrowLeft
	case ev.MatchString("space"):
		return input.KeySpace
	}
	return ev.Text
}

// ray returns the pick ray through the centre of cell (x, y).
func (a *App) ray(x, y int) math3d.Ray {
	return a.cam.ScreenRay(float64(x)+0.5, float64(y)+0.5, a.width, a.height)
}

func (a *App) click(x, y int) {
	if id, ok := hotspot.HitTest(a.markers, x, y); ok {
		a.shell.ClickHotspot(id)
		return
	}
	kind := a.shell.Click(a.ray(x, y))
	a.log.Debug().Int("x", x).Int("y", y).Stringer("kind", kind).Msg("click")
}

func (a *App) motion(x, y int) {
	if a.mouseDown {
		dx, dy := x-a.lastX, y-a.lastY
		if math.Abs(float64(x-a.downX)) > clickSlop || math.Abs(float64(y-a.downY)) > clickSlop {
			a.dragged = true
		}
		if a.dragged {
			a.shell.Orbit(float64(-dx)*orbitStrength, float64(dy)*orbitStrength)
		}
		a.lastX, a.lastY = x, y
		return
	}

	hs := a.shell.Hotspots()
	if id, ok := hotspot.HitTest(a.markers, x, y); ok {
		hs.Hover(id)
	} else if cur := hs.Hovered(); cur != "" {
		hs.Unhover(cur)
	}
	a.shell.PointerMove(a.ray(x, y))
}
