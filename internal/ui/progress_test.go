package ui

import (
	"bytes"
	"testing"
)

func TestPipelinePhases(t *testing.T) {
	var out bytes.Buffer
	p := NewPipelineWithOutput([]Phase{PhaseScanning, PhaseIndexing}, &out)

	if p.CurrentPhase() != "" {
		t.Errorf("Expected no phase before start, got %s", p.CurrentPhase())
	}

	if bar := p.NextPhase(-1); bar == nil {
		t.Fatal("Expected scanning bar")
	}
	if p.CurrentPhase() != PhaseScanning {
		t.Errorf("Expected %s, got %s", PhaseScanning, p.CurrentPhase())
	}

	bar := p.NextPhase(10)
	if bar == nil {
		t.Fatal("Expected indexing bar")
	}
	if p.CurrentPhase() != PhaseIndexing {
		t.Errorf("Expected %s, got %s", PhaseIndexing, p.CurrentPhase())
	}

	if p.NextPhase(1) != nil {
		t.Error("Expected nil after the last phase")
	}
	p.Finish()

	p.PrintSummary("done: 12 endpoints")
	if !bytes.Contains(out.Bytes(), []byte("done: 12 endpoints")) {
		t.Errorf("Summary missing from output: %q", out.String())
	}
}

func TestProgressBarTrack(t *testing.T) {
	var out bytes.Buffer
	bar := NewProgressBarWithOutput(PhaseIndexing, 5, &out)

	track := bar.Track()
	track(2, 5)
	if bar.Current() != 2 {
		t.Errorf("Expected current 2, got %d", bar.Current())
	}

	// a different total resizes the bar
	track(3, 8)
	if bar.Total() != 8 {
		t.Errorf("Expected total 8, got %d", bar.Total())
	}
	if bar.Current() != 3 {
		t.Errorf("Expected current 3, got %d", bar.Current())
	}
}

func TestDisabledPipelineIsSilent(t *testing.T) {
	var out bytes.Buffer
	p := NewPipelineWithOutput([]Phase{PhaseIndexing}, &out)
	p.Disable()

	bar := p.NextPhase(3)
	if bar == nil {
		t.Fatal("Disabled pipeline still returns a usable bar")
	}
	bar.Track()(3, 3)
	p.Finish()
	p.PrintSummary("hidden")

	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}
