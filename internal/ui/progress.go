// Package ui renders console progress for the CLI commands.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Phase represents a stage of a command
type Phase string

const (
	PhaseScanning  Phase = "Scanning"
	PhaseIndexing  Phase = "Indexing"
	PhaseExporting Phase = "Exporting"
)

// ProgressBar wraps the progressbar library with our custom styling.
// A total below zero renders a spinner for work of unknown size.
type ProgressBar struct {
	mu    sync.Mutex
	bar   *progressbar.ProgressBar
	phase string
	total int
}

// NewProgressBar creates a new progress bar for a specific phase on stderr
func NewProgressBar(phase Phase, total int) *ProgressBar {
	return NewProgressBarWithOutput(phase, total, os.Stderr)
}

// NewProgressBarWithOutput creates a new progress bar with custom output
func NewProgressBarWithOutput(phase Phase, total int, output io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetPredictTime(true),
	)

	return &ProgressBar{
		bar:   bar,
		phase: string(phase),
		total: total,
	}
}

func newDiscardBar(phase Phase, total int) *ProgressBar {
	return &ProgressBar{
		bar:   progressbar.NewOptions(total, progressbar.OptionSetWriter(io.Discard)),
		phase: string(phase),
		total: total,
	}
}

// Add increments the progress bar by n
func (pb *ProgressBar) Add(n int) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.bar.Add(n)
}

// Set sets the progress bar to a specific value
func (pb *ProgressBar) Set(n int) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.bar.Set(n)
}

// Track returns a callback matching index.ProgressFunc that moves the bar.
// The total is updated if the caller reports a different one.
func (pb *ProgressBar) Track() func(done, total int) {
	return func(done, total int) {
		pb.mu.Lock()
		defer pb.mu.Unlock()
		if total != pb.total {
			pb.total = total
			pb.bar.ChangeMax(total)
		}
		_ = pb.bar.Set(done)
	}
}

// Total returns the current maximum of the bar
func (pb *ProgressBar) Total() int {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.total
}

// Current returns the current value of the bar
func (pb *ProgressBar) Current() int {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return int(pb.bar.State().CurrentNum)
}

// Finish completes the progress bar
func (pb *ProgressBar) Finish() error {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.bar.Finish()
}

// Describe updates the description of the progress bar
func (pb *ProgressBar) Describe(description string) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.bar.Describe(fmt.Sprintf("[%s] %s", pb.phase, description))
}

// Pipeline represents a multi-phase progress tracking system
type Pipeline struct {
	phases   []Phase
	current  int
	bar      *ProgressBar
	disabled bool
	output   io.Writer
}

// NewPipeline creates a new pipeline progress tracker on stderr
func NewPipeline(phases []Phase) *Pipeline {
	return NewPipelineWithOutput(phases, os.Stderr)
}

// NewPipelineWithOutput creates a new pipeline with custom output
func NewPipelineWithOutput(phases []Phase, output io.Writer) *Pipeline {
	return &Pipeline{
		phases:  phases,
		current: -1,
		output:  output,
	}
}

// Disable turns every later bar into a no-op
func (p *Pipeline) Disable() {
	p.disabled = true
}

// NextPhase finishes the current phase and starts a bar for the next one.
// Returns nil when every phase has been started.
func (p *Pipeline) NextPhase(total int) *ProgressBar {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}

	p.current++
	if p.current >= len(p.phases) {
		return nil
	}

	if p.disabled {
		p.bar = newDiscardBar(p.phases[p.current], total)
	} else {
		p.bar = NewProgressBarWithOutput(p.phases[p.current], total, p.output)
	}
	return p.bar
}

// CurrentPhase returns the running phase, "" before the first NextPhase
func (p *Pipeline) CurrentPhase() Phase {
	if p.current < 0 || p.current >= len(p.phases) {
		return ""
	}
	return p.phases[p.current]
}

// Finish completes the running phase
func (p *Pipeline) Finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}

// PrintSummary prints a message unless the pipeline is disabled
func (p *Pipeline) PrintSummary(message string) {
	if !p.disabled {
		fmt.Fprintln(p.output, message)
	}
}
