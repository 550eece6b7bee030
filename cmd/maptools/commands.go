package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/muurk/maptools/internal/app"
	"github.com/muurk/maptools/internal/config"
	"github.com/muurk/maptools/internal/devtools"
	"github.com/muurk/maptools/internal/logging"
	"github.com/muurk/maptools/internal/mirror"
	"github.com/muurk/maptools/internal/persist"
	"github.com/muurk/maptools/internal/scenario"
	"github.com/muurk/maptools/internal/screen"
	"github.com/muurk/maptools/internal/trips"
	"github.com/muurk/maptools/internal/version"
	"github.com/muurk/maptools/internal/world"
)

// Common flags
var (
	configPath string
	dataDir    string
	mapName    string
	logLevel   string
	mirrorOn   bool
	mirrorAddr string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/maptools/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&mapName, "map", "", "Map to open (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&mirrorOn, "mirror", false, "Mirror the session over WebSocket")
	rootCmd.PersistentFlags().StringVar(&mirrorAddr, "mirror-addr", "", "Mirror listen address (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tripsCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
}

// setup loads the configuration, applies flag overrides and starts logging.
func setup(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("map") {
		cfg.DefaultMap = mapName
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("mirror") {
		cfg.Mirror.Enabled = mirrorOn
	}
	if flags.Changed("mirror-addr") {
		cfg.Mirror.Addr = mirrorAddr
	}

	if err := logging.Initialize(cfg.Log.Level, cfg.LogFile()); err != nil {
		return nil, err
	}
	logging.Info("Starting maptools",
		zap.String("version", version.Full()),
		zap.String("command", cmd.Name()),
		zap.String("data_dir", cfg.DataDir),
	)
	return cfg, nil
}

// openMap loads the configured map, or the first map in the data directory.
func openMap(store persist.Store, cfg *config.Config) (*world.Map, error) {
	name := cfg.DefaultMap
	if name == "" {
		names, err := store.ListNamedObjects(persist.MapsDir())
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("no maps in %s; add %s/<name>.yaml or pass --data-dir", cfg.DataDir, persist.MapsDir())
		}
		name = names[0]
	}

	m, err := persist.LoadMap(store, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open map %s: %w", name, err)
	}
	return m, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	store := persist.NewFS(cfg.DataDir)
	m, err := openMap(store, cfg)
	if err != nil {
		return err
	}

	return runApp(cmd, cfg, &screen.Context{Map: m, Store: store})
}

// runApp opens the dev tools menu, with extra screens pushed on top of it,
// and blocks until the user quits.
func runApp(cmd *cobra.Command, cfg *config.Config, ctx *screen.Context, extra ...screen.Screen) error {
	var opts []app.Option
	if cfg.Mirror.Enabled {
		srv, err := mirror.Start(cmd.Context(), mirror.Options{
			Addr:      cfg.Mirror.Addr,
			Advertise: cfg.Mirror.Advertise,
			Name:      cfg.Mirror.Name,
			Map:       ctx.Map.GetName(),
		})
		if err != nil {
			return err
		}
		defer func() { _ = srv.Close() }()
		opts = append(opts, app.WithMirror(srv))
	}

	model := app.New(devtools.NewLauncher(), ctx, opts...)
	for _, s := range extra {
		model.Stack().Apply(screen.Push(s))
	}
	return app.Run(cmd.Context(), model)
}

// listCmd prints the names in one data category
var listCmd = &cobra.Command{
	Use:   "list <maps|scenarios|polygons|datasets>",
	Short: "List maps, scenarios, polygons or datasets",
	Long: `List the named objects in one category of the data directory.

Scenarios belong to the current map; polygons and datasets belong to the
current map's city.`,
	Example: `  # Maps in the default data directory
  maptools list maps

  # Scenarios recorded for montlake
  maptools list scenarios --map montlake`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"maps", "scenarios", "polygons", "datasets"},
	RunE:      runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	store := persist.NewFS(cfg.DataDir)

	var category string
	switch args[0] {
	case "maps":
		category = persist.MapsDir()
	case "scenarios", "polygons", "datasets":
		m, err := openMap(store, cfg)
		if err != nil {
			return err
		}
		switch args[0] {
		case "scenarios":
			category = persist.ScenariosDir(m.GetName())
		case "polygons":
			category = persist.PolygonsDir(m.CityName())
		default:
			category = persist.DatasetsDir(m.CityName())
		}
	default:
		return fmt.Errorf("unknown category %q (want maps, scenarios, polygons or datasets)", args[0])
	}

	names, err := store.ListNamedObjects(category)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintf(out, "No %s in %s\n", args[0], category)
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

var printTrips bool

// tripsCmd opens the trip visualizer for a scenario
var tripsCmd = &cobra.Command{
	Use:   "trips <scenario>",
	Short: "Browse the trips of a scenario",
	Long: `Open the trip visualizer for one scenario of the current map.

Only trips that start and end on the map are shown. With --print the
trip summaries are written to stdout instead.`,
	Example: `  # Browse riverside's trips on montlake
  maptools trips riverside --map montlake

  # Print them
  maptools trips riverside --map montlake --print`,
	Args: cobra.ExactArgs(1),
	RunE: runTrips,
}

func init() {
	tripsCmd.Flags().BoolVar(&printTrips, "print", false, "Print trip summaries instead of opening the visualizer")
}

func runTrips(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	store := persist.NewFS(cfg.DataDir)
	m, err := openMap(store, cfg)
	if err != nil {
		return err
	}

	sc, err := scenario.Load(store, m.GetName(), args[0])
	if err != nil {
		return err
	}

	if printTrips {
		return writeTrips(cmd.OutOrStdout(), m, sc)
	}

	v, err := trips.NewVisualizer(m, sc.Trips())
	if err != nil {
		return err
	}
	return runApp(cmd, cfg, &screen.Context{Map: m, Store: store}, v)
}

func writeTrips(out io.Writer, m *world.Map, sc *scenario.Scenario) error {
	all := sc.Trips()
	clipped := trips.Clip(m, all)

	p := message.NewPrinter(language.English)
	p.Fprintf(out, "Scenario %s on %s: %d trips, %d on the map\n", sc.Name, m.GetName(), len(all), len(clipped))
	for _, t := range clipped {
		p.Fprintf(out, "\nTrip %d (%s -> %s)\n", t.ID, t.From, t.To)
		for _, line := range t.Summary() {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	return nil
}

var browseTimeout int

// discoverCmd lists mirrors on the network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find mirrored sessions on the local network",
	Long: `Browse mDNS for maptools sessions started with --mirror and advertising
enabled, and print the URL to watch each one.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&browseTimeout, "timeout", 0, "Browse timeout in seconds (default from config)")
}

func browseFor(cmd *cobra.Command, cfg *config.Config) ([]*mirror.Session, error) {
	timeout := cfg.Mirror.BrowseTimeout
	if browseTimeout > 0 {
		timeout = browseTimeout
	}
	sessions, err := mirror.Browse(cmd.Context(), time.Duration(timeout)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	return sessions, nil
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Browsing for mirrored sessions...")
	sessions, err := browseFor(cmd, cfg)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions found.")
		fmt.Fprintln(out, "\nTroubleshooting:")
		fmt.Fprintln(out, "  - Start the editor with --mirror and mirror.advertise: true")
		fmt.Fprintln(out, "  - Check that multicast (UDP 5353) is allowed")
		fmt.Fprintln(out, "  - Try increasing --timeout")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(out, "%s\n  %s\n", s, s.URL())
	}
	return nil
}

// watchCmd follows a mirrored session
var watchCmd = &cobra.Command{
	Use:   "watch [url]",
	Short: "Watch a mirrored session",
	Long: `Print the frames of a mirrored session as they are drawn.

Without a URL the first session found over mDNS is watched.`,
	Example: `  maptools watch ws://192.168.1.20:7420/mirror`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&browseTimeout, "timeout", 0, "Browse timeout in seconds (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	var url string
	if len(args) == 1 {
		url = args[0]
	} else {
		sessions, err := browseFor(cmd, cfg)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return fmt.Errorf("no mirrored sessions found")
		}
		url = sessions[0].URL()
	}

	logging.Info("Watching mirror", zap.String("url", url))
	return mirror.Watch(cmd.Context(), url, cmd.OutOrStdout())
}

var forceInit bool

// initCmd writes a default config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.GetConfigPath(); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.NewConfig()
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("map") {
		cfg.DefaultMap = mapName
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
