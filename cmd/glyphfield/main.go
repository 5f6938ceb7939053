package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/glyphfield/internal/config"
	"github.com/san-kum/glyphfield/internal/export"
	"github.com/san-kum/glyphfield/internal/field"
	"github.com/san-kum/glyphfield/internal/gui"
	"github.com/san-kum/glyphfield/internal/logging"
	"github.com/san-kum/glyphfield/internal/particles"
	"github.com/san-kum/glyphfield/internal/renderer"
	"github.com/san-kum/glyphfield/internal/storage"
	"github.com/san-kum/glyphfield/internal/viz"
	"github.com/san-kum/glyphfield/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/image/font"
)

var (
	dataDir    string
	configFile string
	preset     string
	logFile    string
	verbose    bool

	// Render settings, applied over the config file and preset
	intensity float64
	hero      bool
	fps       int
	alphabet  string
	noiseName string
	seed      int64
	themeName string
	size      string
	fontPath  string

	// Snapshot
	snapTime    float64
	snapScroll  float64
	snapPointer string
	snapFormat  string
	snapOut     string

	// Record
	recFrames      int
	recStart       float64
	recScrollSpeed float64
	recSweep       bool

	exportOut string

	// Particles
	partCount    int
	partDistance float64
	partSeed     int64
	partSteps    int
	partSVG      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "glyphfield",
		Short:         "procedural ascii noise backdrop",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".glyphfield", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write structured logs to this file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")
	addRenderFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "show the backdrop in the terminal",
		RunE:  runLive,
	}
	addRenderFlags(liveCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render a single frame to png, svg or text",
		RunE:  runSnapshot,
	}
	addRenderFlags(snapshotCmd)
	snapshotCmd.Flags().Float64Var(&snapTime, "t", 0, "animation time in seconds")
	snapshotCmd.Flags().Float64Var(&snapScroll, "scroll", 0, "scroll offset in pixels")
	snapshotCmd.Flags().StringVar(&snapPointer, "pointer", "", "pointer position as x,y pixels")
	snapshotCmd.Flags().StringVar(&snapFormat, "format", "", "png, svg or txt (default from --out)")
	snapshotCmd.Flags().StringVarP(&snapOut, "out", "o", "glyphfield.png", "output file, - for stdout")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record an animated gif and per-frame stats",
		RunE:  runRecord,
	}
	addRenderFlags(recordCmd)
	recordCmd.Flags().IntVar(&recFrames, "frames", 60, "number of frames")
	recordCmd.Flags().Float64Var(&recStart, "start", 0, "animation time of the first frame")
	recordCmd.Flags().Float64Var(&snapScroll, "scroll", 0, "initial scroll offset in pixels")
	recordCmd.Flags().Float64Var(&recScrollSpeed, "scroll-speed", 0, "scroll speed in px/s")
	recordCmd.Flags().BoolVar(&recSweep, "sweep", true, "sweep the pointer across the frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recordings",
		RunE:  listRecordings,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [recording_id]",
		Short: "plot the opacity of a recording",
		Args:  cobra.ExactArgs(1),
		RunE:  showStats,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [recording_id]",
		Short: "export recording stats to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output file, - for stdout")

	particlesCmd := &cobra.Command{
		Use:   "particles",
		Short: "show the particle network in the terminal",
		RunE:  runParticles,
	}
	particlesCmd.Flags().IntVar(&partCount, "count", config.DefaultParticles, "number of particles")
	particlesCmd.Flags().Float64Var(&partDistance, "distance", config.DefaultLinkDist, "connection distance")
	particlesCmd.Flags().Int64Var(&partSeed, "seed", 0, "random seed (0 for time based)")
	particlesCmd.Flags().IntVar(&partSteps, "steps", 120, "steps simulated before an svg export")
	particlesCmd.Flags().StringVar(&partSVG, "svg", "", "write an svg snapshot instead of running live")
	particlesCmd.Flags().StringVar(&themeName, "theme", "", "colour theme")
	particlesCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "show the backdrop in a window",
		RunE:  runGUI,
	}
	addRenderFlags(guiCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s intensity %.2f  hero %-5v  noise %s\n", name, p.Intensity, p.Hero, p.Noise)
			}
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list available themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range viz.ThemeNames() {
				t := viz.GetTheme(name)
				fmt.Printf("  %s\n", viz.GradientText(name, t.Palette))
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	addRenderFlags(initCmd)

	rootCmd.AddCommand(liveCmd, snapshotCmd, recordCmd, listCmd, statsCmd, exportJSONCmd, particlesCmd, guiCmd, presetsCmd, themesCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	cmd.Flags().Float64Var(&intensity, "intensity", d.Intensity, "base opacity scale in [0,1]")
	cmd.Flags().BoolVar(&hero, "hero", d.Hero, "hero mode: wider pointer radius, no scroll dimming")
	cmd.Flags().IntVar(&fps, "fps", d.FPS, "frame rate")
	cmd.Flags().StringVar(&alphabet, "alphabet", d.Alphabet, "glyphs to draw from")
	cmd.Flags().StringVar(&noiseName, "noise", d.Noise, "noise source (hash, simplex)")
	cmd.Flags().Int64Var(&seed, "seed", d.Seed, "noise seed")
	cmd.Flags().StringVar(&themeName, "theme", d.Theme, "colour theme")
	cmd.Flags().StringVar(&size, "size", fmt.Sprintf("%dx%d", d.Width, d.Height), "surface size in pixels (WxH)")
	cmd.Flags().StringVar(&fontPath, "font", "", "ttf/otf font for window and image output")
}

// loadConfig resolves defaults, then the config file, then the preset, then
// explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := resolve(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve applies the preset and flags over cfg and validates the result.
func resolve(cmd *cobra.Command, cfg *config.Config) error {
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("intensity") {
		cfg.Intensity = intensity
	}
	if flags.Changed("hero") {
		cfg.Hero = hero
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("alphabet") {
		cfg.Alphabet = alphabet
	}
	if flags.Changed("noise") {
		cfg.Noise = noiseName
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("font") {
		cfg.FontPath = fontPath
	}
	if flags.Changed("size") {
		w, h, err := parseSize(size)
		if err != nil {
			return err
		}
		cfg.Width, cfg.Height = w, h
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	return nil
}

// setup loads the configuration and builds the logger it names.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("config resolved",
		zap.String("command", cmd.Name()),
		zap.String("config", configFile),
		zap.String("preset", preset),
		zap.Float64("intensity", cfg.Intensity),
		zap.Bool("hero", cfg.Hero),
		zap.String("noise", cfg.Noise),
		zap.String("theme", cfg.Theme))
	return cfg, log, nil
}

func parseSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: got %dx%d", config.ErrSize, w, h)
	}
	return w, h, nil
}

func parsePoint(s string) (*export.Point, error) {
	var p export.Point
	if _, err := fmt.Sscanf(s, "%g,%g", &p.X, &p.Y); err != nil {
		return nil, fmt.Errorf("invalid pointer %q: want x,y", s)
	}
	return &p, nil
}

func renderOptions(cfg *config.Config, theme viz.Theme) renderer.Options {
	return renderer.Options{
		Intensity: cfg.Intensity,
		Hero:      cfg.Hero,
		Alphabet:  cfg.Runes(),
		Palette:   theme.Palette,
		Noise:     cfg.NoiseSource(),
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	var reload chan viz.ConfigMsg
	if configFile != "" {
		reload = make(chan viz.ConfigMsg, 1)
		cw, err := watch.New(configFile, log, func(next *config.Config, err error) {
			if err == nil {
				err = resolve(cmd, next)
			}
			reload <- viz.ConfigMsg{Config: next, Err: err}
		})
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := cw.Start(ctx); err != nil {
			return err
		}
		defer func() {
			cw.Stop()
			close(reload)
		}()
	}

	return viz.RunLive(cfg, log, reload)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	theme := viz.GetTheme(cfg.Theme)
	session := export.Session{
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		Frames: 1,
		Start:  seconds(snapTime),
		Scroll: snapScroll,
	}
	if snapPointer != "" {
		if session.Pointer, err = parsePoint(snapPointer); err != nil {
			return err
		}
	}

	format := snapFormat
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(snapOut), ".")
	}

	var out bytes.Buffer
	var stats field.Stats
	onFrame := func(f export.Frame) { stats = f.Stats }
	opts := renderOptions(cfg, theme)

	switch format {
	case "png":
		face, err := loadFace(cfg.FontPath)
		if err != nil {
			return err
		}
		s := export.NewImageSurface(cfg.Width, cfg.Height, face)
		s.SetBackground(theme.Background)
		if err := export.Capture(s, opts, session, log, onFrame); err != nil {
			return err
		}
		if err := export.WritePNG(&out, s.Image()); err != nil {
			return err
		}
	case "svg":
		s := export.NewSVGSurface(cfg.Width, cfg.Height)
		s.SetBackground(theme.Background)
		if err := export.Capture(s, opts, session, log, onFrame); err != nil {
			return err
		}
		if _, err := s.WriteTo(&out); err != nil {
			return err
		}
	case "txt":
		c := viz.NewGlyphCanvas(cfg.Width/viz.PxPerCol, cfg.Height/viz.PxPerRow, theme.Background)
		session.Width, session.Height = c.PixelSize()
		if err := export.Capture(c, opts, session, log, onFrame); err != nil {
			return err
		}
		out.WriteString(c.Plain())
		out.WriteString("\n")
	default:
		return fmt.Errorf("unknown format %q: want png, svg or txt", format)
	}

	if snapOut == "-" {
		_, err = out.WriteTo(os.Stdout)
		return err
	}
	if err := os.WriteFile(snapOut, out.Bytes(), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d cells, %d lit, mean opacity %.3f)\n", snapOut, stats.Cells, stats.Lit, stats.MeanOpacity)
	return nil
}

func loadFace(path string) (font.Face, error) {
	if path == "" {
		return nil, nil
	}
	return export.LoadFace(path, field.FontSize)
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	face, err := loadFace(cfg.FontPath)
	if err != nil {
		return err
	}
	theme := viz.GetTheme(cfg.Theme)
	surface := export.NewImageSurface(cfg.Width, cfg.Height, face)
	surface.SetBackground(theme.Background)
	rec := export.NewGIFRecorder(cfg.FPS)

	var frames []storage.FrameStats
	session := export.Session{
		Width:       cfg.Width,
		Height:      cfg.Height,
		FPS:         cfg.FPS,
		Frames:      recFrames,
		Start:       seconds(recStart),
		Scroll:      snapScroll,
		ScrollSpeed: recScrollSpeed,
		Sweep:       recSweep,
	}

	fmt.Printf("recording %d frames at %dx%d...\n", recFrames, cfg.Width, cfg.Height)
	start := time.Now()
	err = export.Capture(surface, renderOptions(cfg, theme), session, log, func(f export.Frame) {
		rec.Add(surface.Image())
		frames = append(frames, storage.FrameStats{
			Frame:       f.Index,
			Time:        f.Time,
			Cells:       f.Stats.Cells,
			Lit:         f.Stats.Lit,
			MeanOpacity: f.Stats.MeanOpacity,
			MaxOpacity:  f.Stats.MaxOpacity,
		})
	})
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Create("glyph")
	if err != nil {
		return err
	}

	f, err := os.Create(st.Path(id, storage.AnimationFile))
	if err != nil {
		return err
	}
	if err := rec.Encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if _, err := st.Save(storage.Recording{
		ID:     id,
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		Config: cfg,
	}, frames); err != nil {
		return err
	}

	log.Info("recording saved",
		zap.String("id", id),
		zap.Int("frames", rec.Frames()),
		zap.Duration("elapsed", time.Since(start)))
	fmt.Printf("saved %s (%d frames, %s)\n", id, rec.Frames(), st.Path(id, storage.AnimationFile))
	return nil
}

func listRecordings(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	recs, err := st.List()
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("no recordings found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tFPS\tFRAMES\tINTENSITY\tHERO\tNOISE")

	for _, rec := range recs {
		intensity, heroMode, noiseSrc := "-", "-", "-"
		if rec.Config != nil {
			intensity = fmt.Sprintf("%.2f", rec.Config.Intensity)
			heroMode = fmt.Sprintf("%v", rec.Config.Hero)
			noiseSrc = rec.Config.Noise
		}
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\t%s\t%s\t%s\n",
			rec.ID,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Width, rec.Height,
			rec.FPS,
			rec.Frames,
			intensity, heroMode, noiseSrc,
		)
	}

	return w.Flush()
}

func showStats(cmd *cobra.Command, args []string) error {
	id := args[0]

	st := storage.New(dataDir)
	rec, err := st.Load(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no recording %q in %s", id, dataDir)
		}
		return err
	}

	frames, err := st.LoadStats(id)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		fmt.Println("recording has no frames")
		return nil
	}

	mean := make([]float64, len(frames))
	peak := make([]float64, len(frames))
	for i, f := range frames {
		mean[i] = f.MeanOpacity
		peak[i] = f.MaxOpacity
	}
	sum := storage.Summarize(frames)

	fmt.Printf("%s  %dx%d @ %d fps  %d frames\n\n", rec.ID, rec.Width, rec.Height, rec.FPS, len(frames))
	graph := asciigraph.PlotMany([][]float64{mean, peak},
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
		asciigraph.SeriesLegends("mean", "max"),
		asciigraph.Caption("opacity per frame"))
	fmt.Println(graph)
	fmt.Printf("\nlit cells per frame: %.1f of %d  peak opacity %.3f\n", sum.MeanLit, frames[0].Cells, sum.PeakOpacity)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if exportOut == "-" {
		return st.Export(args[0], os.Stdout)
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	if err := st.Export(args[0], f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", exportOut)
	return nil
}

func runParticles(cmd *cobra.Command, args []string) error {
	pcfg := particles.DefaultConfig()
	pcfg.Count = partCount
	pcfg.ConnectionDistance = partDistance
	pcfg.Seed = partSeed
	if pcfg.Seed == 0 {
		pcfg.Seed = time.Now().UnixNano()
	}
	if pcfg.Count <= 0 || pcfg.ConnectionDistance <= 0 {
		return config.ErrParticles
	}
	theme := viz.GetTheme(themeName)

	if partSVG == "" {
		if fps <= 0 {
			return config.ErrFPS
		}
		return viz.RunParticles(pcfg, theme, fps)
	}

	net := particles.New(pcfg)
	far := particles.Vec3{X: 1e4, Y: 1e4}
	for i := 0; i < partSteps; i++ {
		net.Step(far)
	}
	canvas := viz.NewCanvas(120, 40)
	links := viz.DrawNetwork(canvas, net, viz.NewCamera(), theme)
	doc := export.CanvasToSVG(canvas, 4, theme.Background)
	if err := os.WriteFile(partSVG, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d particles, %d links)\n", partSVG, len(net.Particles), links)
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()
	return gui.Run(cfg, log)
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := "glyphfield.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
