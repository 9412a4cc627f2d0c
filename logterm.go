// Package logterm is a terminal viewer for live log streams. Records are
// routed to named channels, and channels are shown as tabs stacked in
// columns that can be rearranged while the stream runs.
//
// Embed it by logging through Logger or Handler, or by writing text with
// AppendLine and Writer, then call Run to take over the terminal:
//
//	term := logterm.New(logterm.Options{MaxLines: 5000})
//	log := term.Logger()
//	go worker(log.With("component", "worker"))
//	if err := term.Run(ctx); err != nil {
//		return err
//	}
//
// Producers never block. Everything they send is applied in arrival order
// by the single goroutine that owns the display state.
package logterm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/five82/logterm/internal/channel"
	"github.com/five82/logterm/internal/ingest"
	"github.com/five82/logterm/internal/route"
	"github.com/five82/logterm/internal/ui"
)

// Routing choices.
type (
	SplitBy      = route.SplitBy
	Filter       = route.Filter
	RouteOptions = route.Options
)

const (
	SplitByAttr       = route.SplitByAttr
	SplitByAttrPrefix = route.SplitByAttrPrefix
	SplitByGroup      = route.SplitByGroup
)

// Allow and Deny build channel filters.
var (
	Allow = route.Allow
	Deny  = route.Deny
)

// ErrAlreadyRunning is returned by a second call to Run.
var ErrAlreadyRunning = errors.New("logterm: terminal is already running")

// Options configures a Terminal. They are fixed once New returns.
type Options struct {
	// MaxLines caps every channel's scrollback. Default 2000.
	MaxLines int
	// PageSize is the page-up/page-down step. Default 10.
	PageSize int
	// Level overrides Route.Level when set.
	Level slog.Leveler
	Route RouteOptions
	Theme string
	// PrefsPath is where a theme cycled in the viewer is saved.
	PrefsPath string
	NoColor   bool
	// Input and Output default to the process terminal.
	Input  io.Reader
	Output io.Writer
}

// Terminal is one viewer instance.
type Terminal struct {
	opts    Options
	queue   *ingest.Queue
	names   *ingest.Names
	handler *route.Handler
	running atomic.Bool
}

// New creates a Terminal. Records sent before Run are kept and shown when
// it starts.
func New(opts Options) *Terminal {
	if opts.MaxLines <= 0 {
		opts.MaxLines = channel.DefaultMaxLines
	}
	if opts.PageSize <= 0 {
		opts.PageSize = ui.DefaultPageSize
	}
	routeOpts := opts.Route
	if opts.Level != nil {
		routeOpts.Level = opts.Level
	}

	queue := ingest.NewQueue()
	return &Terminal{
		opts:    opts,
		queue:   queue,
		names:   &ingest.Names{},
		handler: route.NewHandler(queue, routeOpts),
	}
}

// Handler returns the slog handler that routes records into the viewer.
func (t *Terminal) Handler() slog.Handler { return t.handler }

// Logger returns a logger backed by Handler.
func (t *Terminal) Logger() *slog.Logger { return slog.New(t.handler) }

// AppendLine adds text to the channel called name.
func (t *Terminal) AppendLine(name string, text []byte) { t.queue.AppendLine(name, text) }

// Drop records a filtered record.
func (t *Terminal) Drop() { t.queue.Drop() }

// Writer returns an io.Writer whose every Write is one line in channel name.
func (t *Terminal) Writer(name string) io.Writer { return t.queue.Writer(name) }

// Decide queues a routing decision for the next Emit. Producers that route
// and format in two steps must hold their own lock across Decide and Emit.
func (t *Terminal) Decide(name string, routed bool) { t.names.Decide(name, routed) }

// Emit sends formatted text whose routing was queued by Decide. An Emit
// without a queued decision stops the viewer.
func (t *Terminal) Emit(text []byte) { t.queue.Push(ingest.Raw{Text: text}) }

// Stats reports traffic through the ingest queue.
func (t *Terminal) Stats() ingest.Stats { return t.queue.Stats() }

// Run shows the viewer until the user quits or ctx is cancelled.
func (t *Terminal) Run(ctx context.Context) error {
	if !t.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer t.running.Store(false)

	if t.opts.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	model := ui.New(ui.Options{
		MaxLines:  t.opts.MaxLines,
		PageSize:  t.opts.PageSize,
		ThemeName: t.opts.Theme,
		PrefsPath: t.opts.PrefsPath,
		Names:     t.names,
		Clipboard: t.opts.Output,
	})

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}
	if t.opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(t.opts.Input))
	}
	if t.opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(t.opts.Output))
	}
	program := tea.NewProgram(model, progOpts...)

	pumpCtx, stopPump := context.WithCancel(ctx)
	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		_ = t.queue.Run(pumpCtx, program)
	}()

	_, err := program.Run()
	stopPump()
	<-pumpDone

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
