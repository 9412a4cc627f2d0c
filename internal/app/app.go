package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pkt.systems/pslog"

	"github.com/five82/logterm"
	"github.com/five82/logterm/internal/config"
	"github.com/five82/logterm/internal/logtail"
	"github.com/five82/logterm/internal/prefs"
)

// SelfChannel is where the viewer's own log appears.
const SelfChannel = "logterm"

// Options configure a viewer session. Zero values defer to the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string
	MaxLines   int
	PageSize   int
	Level      string
	Theme      string
	LogOutput  string
	NoColor    bool

	// Files are shown one channel per file, seeded with recent lines and
	// then followed.
	Files []string
	// Demo generates synthetic traffic.
	Demo bool
	// StatsEvery is the ingest stats poll interval. Zero uses the default.
	StatsEvery time.Duration
}

// Run boots the viewer until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return err
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, prefsErr := prefs.Load(prefsPath)

	term := logterm.New(logterm.Options{
		MaxLines:  cfg.MaxLines,
		PageSize:  cfg.PageSize,
		Level:     cfg.Level,
		Route:     cfg.Route,
		Theme:     prefs.Theme(opts.Theme, userPrefs, cfg.Theme),
		PrefsPath: prefsPath,
		NoColor:   opts.NoColor,
	})

	logger, closeLog, err := newLogger(term, cfg.LogOutput)
	if err != nil {
		return err
	}
	defer closeLog()
	ctx = pslog.ContextWithLogger(ctx, logger)

	if prefsErr != nil {
		logger.Warn("preferences unreadable, using defaults", "path", prefsPath, "error", prefsErr)
	}
	logger.Info("logterm started",
		"max_lines", cfg.MaxLines,
		"level", cfg.Level.String(),
		"split_by", cfg.Route.SplitBy.String(),
		"key", cfg.Route.Key,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, path := range opts.Files {
		if n, err := logtail.Seed(path, cfg.MaxLines, term); err != nil {
			logger.Warn("seed failed", "path", path, "error", err)
		} else {
			logger.Debug("seeded channel", "path", path, "lines", n)
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			if err := logtail.Follow(ctx, path, term); err != nil && ctx.Err() == nil {
				logger.Error("follow failed", "path", path, "error", err)
			}
		}(path)
	}
	if opts.Demo {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Demo(ctx, term.Logger(), defaultDemoInterval)
		}()
	}
	StartStatsPoller(ctx, term, opts.StatsEvery)

	err = term.Run(ctx)
	cancel()
	wg.Wait()
	return err
}

func applyOverrides(cfg *config.Config, opts Options) error {
	if opts.MaxLines > 0 {
		cfg.MaxLines = opts.MaxLines
	}
	if opts.PageSize > 0 {
		cfg.PageSize = opts.PageSize
	}
	if opts.Level != "" {
		level, err := config.ParseLevel(opts.Level)
		if err != nil {
			return err
		}
		cfg.Level = level
		cfg.Route.Level = level
	}
	if opts.LogOutput != "" {
		cfg.LogOutput = opts.LogOutput
	}
	return nil
}

// newLogger builds the viewer's own logger. It writes into SelfChannel and,
// when path is set, mirrors every entry to that file.
func newLogger(term *logterm.Terminal, path string) (pslog.Logger, func(), error) {
	var out io.Writer = term.Writer(SelfChannel)
	closeFn := func() {}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log output: %w", err)
		}
		out = io.MultiWriter(out, file)
		closeFn = func() { _ = file.Close() }
	}

	logger := pslog.NewWithOptions(out, pslog.Options{
		Mode:     pslog.ModeConsole,
		NoColor:  true,
		MinLevel: pslog.DebugLevel,
	})
	return logger, closeFn, nil
}
