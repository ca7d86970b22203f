package navigator

import (
	"fmt"

	"github.com/ansipixels/twincam/config"
	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/viewpoint"
	"go.yaml.in/yaml/v3"
)

// Capture logs the current pose as a catalog entry ready to paste into the
// viewpoints list of a config file, and returns it.
func (s *Shell) Capture() string {
	s.captures++
	id := fmt.Sprintf("capture-%d", s.captures)
	vp := viewpoint.Viewpoint{
		ID:       id,
		Name:     id,
		Position: math3d.FromArray(s.controller.RoundedPosition()),
		Target:   math3d.FromArray(s.controller.RoundedTarget()),
	}
	out, err := yaml.Marshal([]config.ViewpointEntry{config.EntryFromViewpoint(vp)})
	if err != nil {
		s.log.Error().Err(err).Msg("capture failed")
		return ""
	}
	s.captured = string(out)
	s.log.Info().Str("entry", s.captured).Msg("viewpoint captured")
	return s.captured
}

// LastCapture returns the most recent capture, "" if none.
func (s *Shell) LastCapture() string { return s.captured }
