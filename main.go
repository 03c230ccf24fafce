package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"PollockBoard/internal/config"
	"PollockBoard/internal/logging"
	feed "PollockBoard/internal/net"
	"PollockBoard/internal/state"
	"PollockBoard/internal/ui"
)

const appTitle = "Pollock Board"

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	verbose    bool
	seed       uint64
	width      int
	height     int
	feed       bool
	feedAddr   string
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:          "pollockboard",
		Short:        "Pollock Board paints drips and splashes on a canvas",
		Long:         `Pollock Board is an interactive canvas. Drag to splatter paint, press letter keys to throw effects, or type a sequence of keys to replay them one after another.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.New(os.Stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runBoard(cmd.Context(), cfg, opts.verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	opts.bind(root.Flags())

	root.AddCommand(newSendCmd())
	return root
}

func (o *options) bind(f *pflag.FlagSet) {
	f.StringVarP(&o.configPath, "config", "c", "", "TOML config file")
	f.Uint64Var(&o.seed, "seed", 0, "fix the random seed (0 picks a fresh one)")
	f.IntVar(&o.width, "width", 0, "canvas width")
	f.IntVar(&o.height, "height", 0, "canvas height")
	f.BoolVar(&o.feed, "feed", false, "accept command sequences over the network")
	f.StringVar(&o.feedAddr, "feed-addr", "", "listen address for the command feed")
}

// loadConfig reads the config file, if any, and lets explicitly set flags
// override it.
func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("width") {
		cfg.Canvas.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = opts.height
	}
	if flags.Changed("feed") {
		cfg.Feed.Enabled = opts.feed
	}
	if flags.Changed("feed-addr") {
		cfg.Feed.Addr = opts.feedAddr
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runBoard(ctx context.Context, cfg config.Config, verbose bool) error {
	logger := logging.FromContext(ctx)
	if !verbose {
		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}

	board, err := ui.NewBoard(cfg, nil, logger)
	if err != nil {
		return err
	}
	board.OnInvocation = logPainted(logger)

	status := ""
	if cfg.Feed.Enabled {
		share, stop, err := startFeed(ctx, cfg.Feed, board, logger)
		if err != nil {
			logger.Warn("command feed disabled", "err", err)
			status = "Feed unavailable"
		} else {
			defer stop()
			status = "Feed: ws://" + share + feed.FeedPath
		}
	}

	logger.Info("starting board", "width", cfg.Canvas.Width, "height", cfg.Canvas.Height, "process", state.ProcessID())
	ui.RunApp(ctx, appTitle, status, board)
	return nil
}

// logPainted logs every painted effect at debug level.
func logPainted(logger *log.Logger) func(state.Invocation) {
	return func(inv state.Invocation) {
		logger.Debug("painted",
			"seq", inv.Seq,
			"source", inv.Source,
			"effect", inv.Effect,
			"x", int(inv.Origin.X),
			"y", int(inv.Origin.Y),
			"color", inv.Color,
		)
	}
}

// startFeed listens for remote sequences and, when configured, advertises
// the feed over mDNS. It returns the address to share and a func that
// stops the advertisement.
func startFeed(ctx context.Context, fc config.Feed, board *ui.BoardWidget, logger *log.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", fc.Addr)
	if err != nil {
		return "", nil, fmt.Errorf("feed listen %s: %w", fc.Addr, err)
	}

	srv := feed.NewServer(func(peerID, seq string) int {
		fyne.Do(func() { board.RunRemote(seq) })
		return utf8.RuneCountInString(seq)
	}, logger)
	go func() {
		if err := srv.Serve(ctx, ln); err != nil {
			logger.Error("feed stopped", "err", err)
		}
	}()

	share, err := feed.ShareAddress(ln.Addr().String())
	if err != nil {
		share = ln.Addr().String()
	}
	logger.Info("feed ready", "url", "ws://"+share+feed.FeedPath)

	stop := func() {}
	if fc.Advertise {
		port := ln.Addr().(*net.TCPAddr).Port
		server, err := feed.Advertise(port)
		if err != nil {
			logger.Warn("mDNS advertisement failed", "err", err)
		} else {
			logger.Info("feed advertised", "port", port)
			stop = func() { server.Shutdown() }
		}
	}
	return share, stop, nil
}
