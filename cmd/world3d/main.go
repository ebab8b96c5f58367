package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/san-kum/world3d/internal/config"
	"github.com/san-kum/world3d/internal/logging"
	"github.com/san-kum/world3d/internal/panel"
	"github.com/san-kum/world3d/internal/playground"
	"github.com/san-kum/world3d/internal/render/rlview"
	"github.com/san-kum/world3d/internal/render/term"
	"github.com/san-kum/world3d/internal/snapshot"
	"github.com/san-kum/world3d/internal/tui"
	"github.com/san-kum/world3d/internal/world"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFormat  string
	logFile    string
	frameRate  int
	background string
	drag       bool
	noOrbit    bool
	noGrid     bool
	width      int
	height     int
	restore    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "world3d",
		Short:        "3d scene playground",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayground(cmd, args, "tui")
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file (tui logs to <data>/world3d.log by default)")

	runCmd := &cobra.Command{
		Use:   "run [playground]",
		Short: "run a playground with the configured host",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayground(cmd, args, "")
		},
	}
	tuiCmd := &cobra.Command{
		Use:   "tui [playground]",
		Short: "run a playground in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayground(cmd, args, "tui")
		},
	}
	windowCmd := &cobra.Command{
		Use:   "window [playground]",
		Short: "run a playground in a raylib window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayground(cmd, args, "window")
		},
	}
	for _, c := range []*cobra.Command{rootCmd, runCmd, tuiCmd, windowCmd} {
		c.Flags().StringVar(&preset, "preset", "", "use preset configuration")
		c.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")
		c.Flags().StringVar(&background, "background", "", "background color (#rrggbb)")
		c.Flags().BoolVar(&drag, "drag", false, "enable drag controls")
		c.Flags().BoolVar(&noOrbit, "no-orbit", false, "disable orbit controls")
		c.Flags().BoolVar(&noGrid, "no-grid", false, "hide the grid")
		c.Flags().IntVar(&width, "width", config.DefaultWindowWidth, "window width")
		c.Flags().IntVar(&height, "height", config.DefaultWindowHeight, "window height")
		c.Flags().BoolVar(&restore, "restore", false, "restore the latest snapshot of the playground")
	}

	playgroundsCmd := &cobra.Command{
		Use:   "playgrounds",
		Short: "list playgrounds",
		RunE:  listPlaygrounds,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				p := config.GetPreset(preset)
				if p == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
				cfg.Apply(p)
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	configCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	snapshotsCmd := &cobra.Command{
		Use:   "snapshots",
		Short: "list snapshots",
		RunE:  listSnapshots,
	}
	showCmd := &cobra.Command{
		Use:   "show [snapshot_id]",
		Short: "print a snapshot as json",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}
	snapshotsCmd.AddCommand(showCmd)

	rootCmd.AddCommand(runCmd, tuiCmd, windowCmd, playgroundsCmd, presetsCmd, configCmd, snapshotsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves defaults, then the config file, then the preset,
// then flags that were set explicitly.
func loadConfig(cmd *cobra.Command, args []string, host string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}

	if len(args) > 0 {
		cfg.Playground = args[0]
	}
	if host != "" {
		cfg.Host = host
	}
	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if flags.Changed("background") {
		cfg.Background = background
	}
	if flags.Changed("drag") {
		cfg.Drag = config.Bool(drag)
	}
	if flags.Changed("no-orbit") {
		cfg.Orbit = config.Bool(!noOrbit)
	}
	if flags.Changed("no-grid") && noGrid {
		cfg.Grid = &config.GridConfig{Enabled: false}
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") || cfg.Log.Level == "" {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") || cfg.Log.Format == "" {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("log-file") {
		cfg.Log.Output = logFile
	}
	return cfg, cfg.Validate()
}

// newLogger falls back to a production logger on stderr when the
// configured output cannot be opened.
func newLogger(cfg *config.Config) *zap.Logger {
	out := cfg.Log.Output
	if out == "" && cfg.Host == "tui" {
		out = filepath.Join(cfg.DataDir, "world3d.log")
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			out = ""
		}
	}
	if out == "" {
		return logging.MustNew(cfg.Log.Level, cfg.Log.Format)
	}
	return logging.MustNew(cfg.Log.Level, cfg.Log.Format, out)
}

func runPlayground(cmd *cobra.Command, args []string, host string) error {
	cfg, err := loadConfig(cmd, args, host)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	defer logger.Sync()

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, world.WithLogger(logger.Named("world")))

	registry := playground.NewRegistry()
	pg, err := registry.Get(cfg.Playground)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, registry.List())
	}
	if store := cfg.PanelStore(); store != nil {
		opts = append(opts, rememberPanel(pg, store))
	}

	snaps := snapshotStore(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("starting",
		zap.String("playground", pg.Name),
		zap.String("host", cfg.Host),
		zap.Int("fps", cfg.FrameRate))

	switch cfg.Host {
	case "window":
		w, err := pg.Start(rlview.Open(cfg.Window.Title+" :: "+pg.Name, cfg.Window.Width, cfg.Window.Height, cfg.FrameRate), opts...)
		if err != nil {
			return err
		}
		defer w.Close()
		if restore {
			restoreLatest(logger, snaps, pg.Name, w)
		}
		// raylib paces frames itself.
		w.Options.FrameRate = 0
		err = w.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			logger.Error("frame loop stopped", zap.Error(err))
		}
		return err
	default:
		var surface *term.Surface
		w, err := pg.Start(term.OpenSize(term.DefaultCols, term.DefaultRows, &surface), opts...)
		if err != nil {
			return err
		}
		defer w.Close()
		if restore {
			restoreLatest(logger, snaps, pg.Name, w)
		}
		m := tui.New(w, surface, pg.Name)
		m.Snapshots = snaps
		if cfg.FrameRate > 0 {
			m.Tick = time.Second / time.Duration(cfg.FrameRate)
		}
		if err := tui.Run(ctx, m); err != nil {
			logger.Error("frame loop stopped", zap.Error(err))
			return err
		}
		return nil
	}
}

// rememberPanel wraps the playground panel options so values persist in
// store under the playground name.
func rememberPanel(pg *playground.Playground, store *panel.Store) world.Option {
	return func(o *world.Options) {
		if o.Panel == nil {
			return
		}
		o.Panel.Store = store
		o.Panel.Preset = pg.Name
	}
}

func restoreLatest(logger *zap.Logger, snaps *snapshot.Store, name string, w *world.World) {
	snap, err := snaps.Latest(name)
	if err != nil {
		logger.Warn("no snapshot to restore", zap.String("playground", name), zap.Error(err))
		return
	}
	n := snapshot.Apply(snap, w)
	logger.Info("snapshot restored", zap.String("id", snap.ID), zap.Int("objects", n))
}

func listPlaygrounds(cmd *cobra.Command, args []string) error {
	registry := playground.NewRegistry()
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDESCRIPTION")
	for _, name := range registry.List() {
		pg, err := registry.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\n", pg.Name, pg.Description)
	}
	return tw.Flush()
}

func snapshotStore(cfg *config.Config) *snapshot.Store {
	return snapshot.New(cfg.SnapshotDir())
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil, "")
	if err != nil {
		return err
	}
	st := snapshotStore(cfg)
	snaps, err := st.List()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLAYGROUND\tTIME\tFRAME\tOBJECTS")
	for _, s := range snaps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			s.ID,
			s.Playground,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Frame,
			len(s.Objects),
		)
	}
	return tw.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil, "")
	if err != nil {
		return err
	}
	st := snapshotStore(cfg)
	snap, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
