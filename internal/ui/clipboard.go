package ui

import (
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// clipboardLimit caps the OSC 52 payload; most terminals reject more.
const clipboardLimit = 100 * 1024

// copyCmd writes text to the terminal clipboard with an OSC 52 sequence,
// wrapped for tmux or screen when running inside one.
func copyCmd(w io.Writer, text string) tea.Cmd {
	return func() tea.Msg {
		seq := osc52.New(ansi.Strip(text)).Limit(clipboardLimit)

		term := strings.ToLower(os.Getenv("TERM"))
		if tmux := os.Getenv("TMUX"); tmux != "" || strings.HasPrefix(term, "tmux") {
			seq = seq.Tmux()
		} else if strings.HasPrefix(term, "screen") {
			seq = seq.Screen()
		}

		_, _ = seq.WriteTo(w)
		return nil
	}
}
