package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Spinner shows activity while an indeterminate pass runs, such as the
// initial scan of a watched stylesheet tree. The message is fixed for the
// spinner's lifetime.
type Spinner struct {
	writer   io.Writer
	message  string
	interval time.Duration
	active   bool
	done     chan struct{}
	noColor  bool
}

// SpinnerOptions configures spinner behavior
type SpinnerOptions struct {
	Message  string
	NoColor  bool
	Interval time.Duration // Default: 100ms
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a new spinner
func NewSpinner(w io.Writer, opts SpinnerOptions) *Spinner {
	interval := opts.Interval
	if interval == 0 {
		interval = 100 * time.Millisecond
	}

	return &Spinner{
		writer:   w,
		message:  opts.Message,
		interval: interval,
		done:     make(chan struct{}),
		noColor:  noColorOr(opts.NoColor),
	}
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	s.active = true
	go s.animate()
}

// Stop stops the spinner and clears the line
func (s *Spinner) Stop() {
	if !s.active {
		return
	}
	s.active = false
	s.done <- struct{}{}
	fmt.Fprint(s.writer, "\r\033[K")
}

// Success stops the spinner and shows a success message
func (s *Spinner) Success(message string) {
	s.Stop()
	green := color.New(color.FgGreen, color.Bold)
	if s.noColor {
		green.DisableColor()
	}
	green.Fprintf(s.writer, "✓ %s\n", message)
}

// Error stops the spinner and shows an error message
func (s *Spinner) Error(message string) {
	s.Stop()
	red := color.New(color.FgRed, color.Bold)
	if s.noColor {
		red.DisableColor()
	}
	red.Fprintf(s.writer, "❌ %s\n", message)
}

func (s *Spinner) animate() {
	cyan := color.New(color.FgCyan)
	if s.noColor {
		cyan.DisableColor()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			cyan.Fprintf(s.writer, "\r%s %s", spinnerFrames[frame%len(spinnerFrames)], s.message)
		}
	}
}

// noColorOr keeps explicit NoColor requests while inheriting the global
// fatih/color terminal detection otherwise
func noColorOr(explicit bool) bool {
	return explicit || color.NoColor
}

// ProgressBar tracks a determinate pass, one step per stylesheet parsed
type ProgressBar struct {
	writer  io.Writer
	total   int
	current int
	width   int
	message string
	noColor bool
}

// ProgressBarOptions configures progress bar behavior
type ProgressBarOptions struct {
	Total   int
	Width   int // Default: 40
	Message string
	NoColor bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(w io.Writer, opts ProgressBarOptions) *ProgressBar {
	width := opts.Width
	if width == 0 {
		width = 40
	}

	return &ProgressBar{
		writer:  w,
		total:   opts.Total,
		width:   width,
		message: opts.Message,
		noColor: noColorOr(opts.NoColor),
	}
}

// Add advances the progress by n steps, clamped to the total
func (p *ProgressBar) Add(n int) {
	p.current += n
	if p.current > p.total {
		p.current = p.total
	}
	p.render()
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.current = p.total
	p.render()
	fmt.Fprintln(p.writer)
}

// FinishWithMessage completes the progress bar with a success message
func (p *ProgressBar) FinishWithMessage(message string) {
	p.Finish()
	green := color.New(color.FgGreen, color.Bold)
	if p.noColor {
		green.DisableColor()
	}
	green.Fprintf(p.writer, "✓ %s\n", message)
}

func (p *ProgressBar) render() {
	if p.total == 0 {
		return
	}

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if p.noColor {
		cyan.DisableColor()
		gray.DisableColor()
	}

	filled := p.width * p.current / p.total

	var bar strings.Builder
	bar.WriteString("[")
	cyan.Fprint(&bar, strings.Repeat("█", filled))
	gray.Fprint(&bar, strings.Repeat("░", p.width-filled))
	bar.WriteString("]")

	line := fmt.Sprintf("\r%s %3d%%", bar.String(), 100*p.current/p.total)
	if p.message != "" {
		line += " " + p.message
	}
	fmt.Fprint(p.writer, line)
}

// WithSpinner runs fn behind a spinner, reporting success or failure when
// it returns
func WithSpinner(w io.Writer, message string, noColor bool, fn func() error) error {
	spinner := NewSpinner(w, SpinnerOptions{
		Message: message,
		NoColor: noColor,
	})
	spinner.Start()
	defer spinner.Stop()

	if err := fn(); err != nil {
		spinner.Error(fmt.Sprintf("%s failed", message))
		return err
	}

	spinner.Success(message)
	return nil
}

// WithProgress runs fn with a progress bar sized to total steps
func WithProgress(w io.Writer, message string, total int, noColor bool, fn func(*ProgressBar) error) error {
	bar := NewProgressBar(w, ProgressBarOptions{
		Total:   total,
		Message: message,
		NoColor: noColor,
	})

	if err := fn(bar); err != nil {
		fmt.Fprintln(w)
		return err
	}

	bar.FinishWithMessage(message)
	return nil
}
