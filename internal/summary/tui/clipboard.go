package tui

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// yankResultMsg is sent after a yank attempt completes
type yankResultMsg struct {
	text string
	err  error
}

// oscClipboard sets the system clipboard with an OSC 52 escape sequence.
// It implements tea.ExecCommand; inside tmux the sequence is wrapped in a
// DCS passthrough.
type oscClipboard struct {
	text   string
	stdout io.Writer
}

func (o *oscClipboard) Run() error {
	encoded := base64.StdEncoding.EncodeToString([]byte(o.text))

	seq := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)
	if os.Getenv("TMUX") != "" {
		// ESCs inside the payload are doubled
		seq = fmt.Sprintf("\x1bPtmux;\x1b\x1b]52;c;%s\x07\x1b\\", encoded)
	}

	_, err := io.WriteString(o.stdout, seq)
	return err
}

func (o *oscClipboard) SetStdin(_ io.Reader)  {}
func (o *oscClipboard) SetStdout(w io.Writer) { o.stdout = w }
func (o *oscClipboard) SetStderr(_ io.Writer) {}

// yankToClipboard copies a post slug to the clipboard
func yankToClipboard(slug string) tea.Cmd {
	return tea.Exec(&oscClipboard{text: slug}, func(err error) tea.Msg {
		return yankResultMsg{text: slug, err: err}
	})
}
