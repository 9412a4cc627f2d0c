package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/five82/logterm/internal/app"
)

var errNotTerminal = errors.New("stdout is not a terminal")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd(startViewer)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "logterm: %v\n", err)
		return 1
	}
	return 0
}

type runFunc func(ctx context.Context, opts app.Options) error

func startViewer(ctx context.Context, opts app.Options) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return errNotTerminal
	}
	return app.Run(ctx, opts)
}

// flags shared by every subcommand.
type flags struct {
	configPath string
	prefsPath  string
	maxLines   int
	pageSize   int
	level      string
	theme      string
	logOutput  string
	noColor    bool
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "config file path (default ~/.config/logterm/config.toml)")
	fs.StringVar(&f.prefsPath, "prefs", "", "preferences file path (default ~/.config/logterm/prefs.toml)")
	fs.IntVar(&f.maxLines, "max-lines", 0, "scrollback lines kept per channel")
	fs.IntVar(&f.pageSize, "page-size", 0, "lines moved by page up/down")
	fs.StringVar(&f.level, "level", "", "minimum record level: debug, info, warn, error")
	fs.StringVar(&f.theme, "theme", "", "color theme")
	fs.StringVar(&f.logOutput, "log-output", "", "also write logterm's own log to this file")
	fs.BoolVar(&f.noColor, "no-color", termenv.EnvNoColor(), "disable colors (NO_COLOR is honored)")
}

func (f *flags) options() app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		PrefsPath:  f.prefsPath,
		MaxLines:   f.maxLines,
		PageSize:   f.pageSize,
		Level:      f.level,
		Theme:      f.theme,
		LogOutput:  f.logOutput,
		NoColor:    f.noColor,
	}
}

func newRootCmd(start runFunc) *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "logterm",
		Short:         "Terminal viewer for live log streams",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	f.register(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Show synthetic traffic from several components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := f.options()
			opts.Demo = true
			return start(cmd.Context(), opts)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "tail FILE...",
		Short: "Follow log files, one channel per file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := f.options()
			opts.Files = args
			return start(cmd.Context(), opts)
		},
	})
	return root
}
