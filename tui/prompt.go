package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ansipixels/twincam/config"
	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/navigator"
)

// Prompt is the ':' command line. While it is open the shell has text
// focus, so navigation keys type instead of flying.
type Prompt struct {
	open   bool
	buf    []rune
	status string
}

// Open starts a new command.
func (p *Prompt) Open() {
	p.open = true
	p.buf = p.buf[:0]
}

// Close abandons the command.
func (p *Prompt) Close() {
	p.open = false
	p.buf = p.buf[:0]
}

// IsOpen reports whether the prompt owns the keyboard.
func (p *Prompt) IsOpen() bool { return p.open }

// Insert appends text.
func (p *Prompt) Insert(s string) {
	p.buf = append(p.buf, []rune(s)...)
}

// Backspace deletes the last rune.
func (p *Prompt) Backspace() {
	if len(p.buf) > 0 {
		p.buf = p.buf[:len(p.buf)-1]
	}
}

// Text returns the command typed so far.
func (p *Prompt) Text() string { return string(p.buf) }

// Status returns the result line of the last command.
func (p *Prompt) Status() string { return p.status }

// Submit runs the command against s and closes the prompt.
func (p *Prompt) Submit(s *navigator.Shell) {
	msg, err := Execute(s, p.Text())
	if err != nil {
		p.status = "error: " + err.Error()
	} else {
		p.status = msg
	}
	p.Close()
}

// Execute runs one command line:
//
//	fly <viewpoint-id>
//	goto <x> <y> <z>
//	alert [key]         (no key clears)
//	tour on [interval] | tour off
//	capture
func Execute(s *navigator.Shell, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	args := fields[1:]
	switch fields[0] {
	case "fly":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: fly <viewpoint-id>")
		}
		v, ok := s.Catalog().Get(args[0])
		if !ok {
			return "", fmt.Errorf("unknown viewpoint %q", args[0])
		}
		s.Handle().FlyToViewpoint(v)
		return "flying to " + v.Name, nil
	case "goto":
		if len(args) != 3 {
			return "", fmt.Errorf("usage: goto <x> <y> <z>")
		}
		var xyz [3]float64
		for i, a := range args {
			f, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return "", fmt.Errorf("bad coordinate %q: %w", a, err)
			}
			xyz[i] = f
		}
		s.Handle().FlyToPoint(math3d.FromArray(xyz), "")
		return fmt.Sprintf("flying to (%.2f, %.2f, %.2f)", xyz[0], xyz[1], xyz[2]), nil
	case "alert":
		if len(args) == 0 {
			s.SetAlertKey("")
			return "alert cleared", nil
		}
		s.SetAlertKey(args[0])
		return fmt.Sprintf("alert %s: %s", args[0], s.AlertState()), nil
	case "tour":
		if len(args) == 0 {
			return "", fmt.Errorf("usage: tour on [interval] | tour off")
		}
		switch args[0] {
		case "off":
			s.SetTour(false, s.TourInterval())
			return "tour off", nil
		case "on":
			interval := s.TourInterval()
			if interval <= 0 {
				interval = 8 * time.Second
			}
			if len(args) > 1 {
				d, err := config.ParseInterval(args[1])
				if err != nil || d == 0 {
					return "", fmt.Errorf("bad interval %q", args[1])
				}
				interval = d
			}
			s.SetTour(true, interval)
			return "tour every " + interval.String(), nil
		}
		return "", fmt.Errorf("usage: tour on [interval] | tour off")
	case "capture":
		if s.Capture() == "" {
			return "", fmt.Errorf("capture failed")
		}
		return "pose captured to log", nil
	}
	return "", fmt.Errorf("unknown command %q", fields[0])
}
