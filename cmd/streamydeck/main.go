package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"streamydeck/internal/asset"
	"streamydeck/internal/config"
	"streamydeck/internal/deck"
	"streamydeck/internal/telemetry"
	"streamydeck/internal/termdeck"
	"streamydeck/internal/ui"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// options holds the parsed CLI flags.
type options struct {
	configPath string
	assetsDir  string
	logFile    string
	example    string
	verbose    bool
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.configPath, "config", "", "path to streamydeck.yaml (default: ./streamydeck.yaml or ~/.config/streamydeck/)")
	flag.StringVar(&opts.assetsDir, "assets", "", "assets root holding icons/ and fonts/ (overrides assets_dir)")
	flag.StringVar(&opts.logFile, "log", "", "log file (overrides log_file)")
	flag.StringVar(&opts.example, "example", "demo", "which example to run: demo or exit")
	flag.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: streamydeck [flags]\n\n")
		fmt.Fprintf(os.Stderr, "streamydeck drives a key-grid control surface emulated in the terminal.\n")
		fmt.Fprintf(os.Stderr, "Press keys with the keyboard rows 12345, qwert, asdfg or the mouse.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if _, ok := examples[opts.example]; !ok {
		fmt.Fprintf(os.Stderr, "error: unknown example %q\n", opts.example)
		flag.Usage()
		os.Exit(1)
	}

	return opts
}

// examples maps -example values to view builders.
var examples = map[string]func(*ui.Session, *asset.Store, config.Values) (*app, error){
	"demo": buildDemo,
	"exit": buildExitExample,
}

// newLogger writes JSON logs to path; the terminal belongs to the deck.
func newLogger(path string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func run(opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.New(zap.NewNop().Sugar(), opts.configPath)
	if err := cfg.Load(); err != nil {
		return err
	}
	vals := cfg.Values()
	if opts.logFile != "" {
		vals.LogFile = opts.logFile
	}
	if opts.assetsDir != "" {
		vals.AssetsDir = opts.assetsDir
	}

	logger, err := newLogger(vals.LogFile, opts.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()
	cfg.SetLogger(sugar)

	tp, err := telemetry.NewProvider(ctx)
	if err != nil {
		return fmt.Errorf("create tracer provider: %w", err)
	}
	defer tp.Shutdown(context.Background())

	store := asset.NewStore(vals.AssetsDir)
	store.SetLabelFont(vals.Font)

	term := termdeck.New(vals.Rows, vals.Cols, termdeck.WithLogger(sugar.Named("termdeck")))
	dev, err := deck.Select([]deck.Device{term})
	if err != nil {
		return fmt.Errorf("%w. Is the stream deck plugged?", err)
	}
	if err := deck.Init(dev, vals.Brightness, sugar.Named("deck")); err != nil {
		return err
	}

	session := ui.NewSession(dev, termdeck.NewRenderer(),
		ui.WithSessionLogger(sugar),
		ui.WithDispatcherOptions(ui.WithCooldown(vals.Cooldown), ui.WithTracer(tp.Tracer())),
		ui.WithDefaultViewOptions(ui.WithPacing(vals.Pacing)),
	)
	a, err := examples[opts.example](session, store, vals)
	if err == nil {
		err = a.start()
	}
	if err != nil {
		deck.Terminate(dev)
		return err
	}

	changes := cfg.SubscribeToChanges()
	cfg.WatchConfigFileChanges()
	defer cfg.StopWatchingConfigFile()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				if err := a.reload(cfg.Values()); err != nil {
					sugar.Warnw("Failed to apply reloaded config", "error", err)
				}
			}
		}
	}()

	sugar.Infow("Running", "example", opts.example, "serial", dev.Serial())
	runErr := term.Run(ctx)
	if err := deck.Terminate(dev); err != nil && !errors.Is(err, termdeck.ErrClosed) {
		sugar.Warnw("Failed to terminate device", "error", err)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "streamydeck: %v\n", err)
		os.Exit(1)
	}
}
