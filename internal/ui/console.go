package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorWarning = lipgloss.Color("#F59E0B")
	colorAbort   = lipgloss.Color("#EF4444")
)

// UI is the user-facing console used to report progress.
// Fatal conditions are not raised through UI; they are returned as errors and rendered once with Abort.
type UI interface {
	Blank(msg string)
	Info(msg string)
	Trace(msg string)
	Debug(msg string)
	Warn(msg string)

	// Prompt shows each message and blocks until the user presses enter.
	// It returns an error when input ends without confirmation.
	Prompt(messages ...string) error

	// Abort renders a fatal message. It does not exit the process.
	Abort(msg string)
}

var _ UI = (*Console)(nil)

// Console writes prefixed, level-filtered messages, e.g. "INFO JediBundle: Cloning 'oops'.".
type Console struct {
	task   string
	levels Levels
	out    io.Writer
	in     *bufio.Reader

	warnStyle  lipgloss.Style
	abortStyle lipgloss.Style
}

// NewConsole returns a Console that writes to out and reads prompt confirmations from in.
// The color profile is detected from out, so output to a file or buffer carries no escape codes.
func NewConsole(task string, levels Levels, out io.Writer, in io.Reader) *Console {
	if levels == nil {
		levels = DefaultLevels()
	}

	renderer := lipgloss.NewRenderer(out)

	var reader *bufio.Reader
	if in != nil {
		reader = bufio.NewReader(in)
	}

	return &Console{
		task:       task,
		levels:     levels,
		out:        out,
		in:         reader,
		warnStyle:  renderer.NewStyle().Foreground(colorWarning),
		abortStyle: renderer.NewStyle().Bold(true).Foreground(colorAbort),
	}
}

func (c *Console) Blank(msg string) {
	c.send(LevelBlank, msg)
}

func (c *Console) Info(msg string) {
	c.send(LevelInfo, msg)
}

func (c *Console) Trace(msg string) {
	c.send(LevelTrace, msg)
}

func (c *Console) Debug(msg string) {
	c.send(LevelDebug, msg)
}

// Warn is shown whenever info messages are shown.
func (c *Console) Warn(msg string) {
	if !c.levels.Enabled(LevelInfo) {
		return
	}
	c.write("WARNING", c.warnStyle.Render(msg))
}

func (c *Console) Prompt(messages ...string) error {
	for _, msg := range messages {
		c.write(string(LevelInfo), c.warnStyle.Render(msg))
	}
	c.write(string(LevelInfo), c.warnStyle.Render("Press enter to continue..."))

	if c.in == nil {
		return fmt.Errorf("no confirmation received: %w", io.ErrUnexpectedEOF)
	}

	// Input closed before enter was pressed; callers must not treat that as consent.
	if _, err := c.in.ReadString('\n'); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("no confirmation received: %w", io.ErrUnexpectedEOF)
		}
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	return nil
}

// Abort is always shown regardless of the enabled levels.
func (c *Console) Abort(msg string) {
	c.write("ABORT", c.abortStyle.Render(strings.TrimSpace(msg)+" ABORTING..."))
}

func (c *Console) send(lvl Level, msg string) {
	if !c.levels.Enabled(lvl) {
		return
	}

	if lvl == LevelBlank {
		_, _ = fmt.Fprintln(c.out, msg)
		return
	}

	c.write(string(lvl), msg)
}

func (c *Console) write(prefix string, msg string) {
	if c.task == "" {
		_, _ = fmt.Fprintf(c.out, "%s: %s\n", prefix, msg)
		return
	}
	_, _ = fmt.Fprintf(c.out, "%s %s: %s\n", prefix, c.task, msg)
}
