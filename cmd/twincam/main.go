// twincam - Factory digital twin camera in the terminal
// Fly between curated viewpoints of a factory floor, pick machines and
// ground positions, and strobe alerted equipment.
//
// Controls:
//
//	1-9         - Fly to viewpoint by number
//	Left/Right  - Previous/next viewpoint
//	R           - Back to the first viewpoint
//	Space       - Pause/resume the tour
//	T           - Toggle the tour
//	Mouse click - Fly to object or ground point
//	Mouse drag  - Orbit
//	Scroll, +/- - Dolly
//	:           - Command prompt (fly, goto, alert, tour, capture)
//	?           - Toggle help
//	Esc         - Close inspector or quit
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/ansipixels/twincam/config"
	"github.com/ansipixels/twincam/navigator"
	"github.com/ansipixels/twincam/scene"
	"github.com/ansipixels/twincam/tui"
	"github.com/charmbracelet/fang"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var configPath string

func main() {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "twincam",
		Short: "Factory digital twin camera",
		Long: `twincam - Factory digital twin camera

Fly a camera between curated viewpoints of a factory floor in your terminal.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./twincam.yaml or ~/.config/twincam/twincam.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().String("log-file", "", "Log file (default twincam.log in the temp dir)")
	bind(v, cmd.PersistentFlags().Lookup("log-level"), "logLevel")
	bind(v, cmd.PersistentFlags().Lookup("log-file"), "logFile")

	runCmd := &cobra.Command{
		Use:   "run [scene.glb|obj|stl]",
		Short: "Open the interactive viewer",
		Long: `Open the interactive viewer on a glTF, OBJ or STL scene, or on the built-in
demo floor when no file is given.

Controls:
  1-9         - Fly to viewpoint by number
  Left/Right  - Previous/next viewpoint
  R           - Back to the first viewpoint
  Space       - Pause/resume the tour
  T           - Toggle the tour
  Click       - Fly to object or ground point
  Drag        - Orbit
  Scroll, +/- - Dolly
  :           - Command prompt
  ?           - Toggle help
  Esc         - Close inspector or quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return run(v, path)
		},
	}
	f := runCmd.Flags()
	f.Int("fps", 30, "Target FPS")
	f.String("initial", "", "Initial viewpoint id")
	f.Bool("tour", false, "Start the guided tour")
	f.Duration("tour-interval", 0, "Tour step interval (e.g. 8s)")
	f.Bool("dev-capture", false, "Enable the C key viewpoint capture")
	f.String("alert", "", "Alert key to arm at startup")
	f.Bool("fly-to-alerts", true, "Fly to an alert when its equipment resolves")
	bind(v, f.Lookup("fps"), "fps")
	bind(v, f.Lookup("initial"), "initialViewpoint")
	bind(v, f.Lookup("tour"), "tour.enabled")
	bind(v, f.Lookup("tour-interval"), "tour.interval")
	bind(v, f.Lookup("dev-capture"), "devCapture")
	bind(v, f.Lookup("alert"), "alertKey")
	bind(v, f.Lookup("fly-to-alerts"), "flyToAlerts")

	infoCmd := &cobra.Command{
		Use:   "info [scene.glb|obj|stl]",
		Short: "Display scene information",
		Long:  "Display mesh and triangle counts, bounds, and which alert keys resolve to geometry in a scene.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runInfo(v, path)
		},
	}

	viewpointsCmd := &cobra.Command{
		Use:   "viewpoints",
		Short: "List the viewpoint catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewpoints(v)
		},
	}

	cmd.AddCommand(runCmd, infoCmd, viewpointsCmd)

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

func bind(v *viper.Viper, flag *pflag.Flag, key string) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}

func settings(v *viper.Viper) (config.Settings, error) {
	if err := config.Load(v, configPath); err != nil {
		return config.Settings{}, err
	}
	return config.Decode(v)
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.Demo(), nil
	}
	return scene.Load(path)
}

// openLog opens the log file in append mode. The viewer owns the screen so
// logs never go to stderr while it runs.
func openLog(s config.Settings) (*os.File, zerolog.Logger, error) {
	path := s.LogFile
	if path == "" {
		path = filepath.Join(os.TempDir(), "twincam.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("opening log file: %w", err)
	}
	return f, config.NewLogger(s.LogLevel, f, false), nil
}

func run(v *viper.Viper, path string) error {
	s, err := settings(v)
	if err != nil {
		return err
	}
	catalog, err := s.Catalog()
	if err != nil {
		return err
	}
	sc, err := loadScene(path)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}
	logf, log, err := openLog(s)
	if err != nil {
		return err
	}
	defer logf.Close()
	log.Info().Str("scene", path).Int("meshes", sc.MeshCount()).Int("viewpoints", catalog.Len()).Msg("starting")

	cfg := navigator.Config{
		InitialViewpoint: s.InitialViewpoint,
		TourEnabled:      s.Tour.Enabled,
		TourInterval:     s.Tour.Interval,
		DevCapture:       s.DevCapture,
		FlyToAlerts:      s.FlyToAlerts,
		FlightDuration:   s.Flight.Duration,
		PointDuration:    s.Flight.PointDuration,
		PointDistance:    s.Flight.PointDistance,
		AlertFrequency:   s.Alert.Frequency,
		FPS:              s.FPS,
	}
	cb := navigator.Callbacks{
		OnActiveViewpointChange: func(id string) {
			log.Debug().Str("viewpoint", id).Msg("active viewpoint")
		},
		OnGeometryCount: func(n int) {
			log.Info().Int("meshes", n).Msg("geometry")
		},
	}
	shell, err := navigator.New(sc, catalog, s.AlertTable(), cfg, cb, navigator.WithLogger(log))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	title := "Demo floor"
	if path != "" {
		title = filepath.Base(path)
	}
	app := tui.NewApp(shell, sc, title, s.FPS, log)
	app.ArmOnStart(s.AlertKey)
	return app.Run(ctx)
}

func runInfo(v *viper.Viper, path string) error {
	s, err := settings(v)
	if err != nil {
		return err
	}
	sc, err := loadScene(path)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}
	name := "demo"
	if path != "" {
		name = filepath.Base(path)
	}
	b := sc.Bounds()
	size := b.Size()
	center := b.Center()
	fmt.Printf("Scene:      %s\n", name)
	fmt.Printf("Meshes:     %d\n", sc.MeshCount())
	fmt.Printf("Triangles:  %d\n", sc.TriangleCount())
	fmt.Printf("Bounds Min: (%.3f, %.3f, %.3f)\n", b.Min.X, b.Min.Y, b.Min.Z)
	fmt.Printf("Bounds Max: (%.3f, %.3f, %.3f)\n", b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Printf("Dimensions: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Center:     (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)

	table := s.AlertTable()
	keys := table.Keys()
	sort.Strings(keys)
	fmt.Println("Alerts:")
	for _, key := range keys {
		n := len(sc.FindMeshes(table[key]...))
		state := "resolves"
		if n == 0 {
			state = "no geometry"
		}
		fmt.Printf("  %-20s %d/%d meshes, %s\n", key, n, len(table[key]), state)
	}
	return nil
}

func runViewpoints(v *viper.Viper) error {
	s, err := settings(v)
	if err != nil {
		return err
	}
	catalog, err := s.Catalog()
	if err != nil {
		return err
	}
	for i, vp := range catalog.All() {
		fmt.Printf("%d  %-12s %-22s %-14s pos (%.1f, %.1f, %.1f) -> (%.1f, %.1f, %.1f)\n",
			i+1, vp.ID, vp.Name, vp.Category,
			vp.Position.X, vp.Position.Y, vp.Position.Z,
			vp.Target.X, vp.Target.Y, vp.Target.Z)
	}
	return nil
}
