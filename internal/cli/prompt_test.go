package cli

import (
	"strings"
	"testing"

	"github.com/backmassage/trackpull/internal/config"
)

// scriptedPrompter answers prompts from canned maps keyed by message
// prefix; unmatched prompts return the offered default.
type scriptedPrompter struct {
	inputs   map[string]string
	confirms map[string]bool
	selects  map[string]string
}

func matchPrefix[V any](m map[string]V, message string) (V, bool) {
	for prefix, v := range m {
		if strings.HasPrefix(message, prefix) {
			return v, true
		}
	}
	var zero V
	return zero, false
}

func (p *scriptedPrompter) Input(message, def string) (string, error) {
	if v, ok := matchPrefix(p.inputs, message); ok {
		return v, nil
	}
	return def, nil
}

func (p *scriptedPrompter) Confirm(message string, def bool) (bool, error) {
	if v, ok := matchPrefix(p.confirms, message); ok {
		return v, nil
	}
	return def, nil
}

func (p *scriptedPrompter) Select(message string, options []string, def string) (string, error) {
	if v, ok := matchPrefix(p.selects, message); ok {
		return v, nil
	}
	return def, nil
}

func TestFillJob_OverridesAnswers(t *testing.T) {
	p := &scriptedPrompter{
		inputs: map[string]string{
			"Input folder":  "/media/videos",
			"Output folder": "/media/audio",
			"Bitrate":       "192",
		},
		confirms: map[string]bool{
			"Loudness": true,
		},
		selects: map[string]string{
			"Mode": "mp3",
		},
	}

	job := config.Default()
	if err := FillJob(p, &job); err != nil {
		t.Fatal(err)
	}

	if job.InputDir != "/media/videos" || job.OutputDir != "/media/audio" {
		t.Errorf("dirs = %q / %q", job.InputDir, job.OutputDir)
	}
	if job.Mode != config.ModeMP3 {
		t.Errorf("Mode = %q, want mp3", job.Mode)
	}
	if !job.Loudnorm {
		t.Error("Loudnorm should be on")
	}
	if job.BitrateKbps != 192 {
		t.Errorf("BitrateKbps = %d, want 192", job.BitrateKbps)
	}
	// Defaults survive for prompts answered with the offered default.
	if !job.Recursive || !job.PreserveTree {
		t.Error("defaults should survive")
	}
	if job.Selector.ByLanguage || job.Selector.Index != 0 {
		t.Errorf("Selector = %+v, want index 0", job.Selector)
	}
}

func TestFillJob_LanguageSelection(t *testing.T) {
	p := &scriptedPrompter{
		inputs: map[string]string{
			"Language code": "ind",
		},
		selects: map[string]string{
			"Select audio track by": "language",
		},
	}

	job := config.Default()
	if err := FillJob(p, &job); err != nil {
		t.Fatal(err)
	}
	if !job.Selector.ByLanguage || job.Selector.Language != "ind" {
		t.Errorf("Selector = %+v, want language ind", job.Selector)
	}
}

func TestFillJob_EmptyLanguageDefaultsToEng(t *testing.T) {
	p := &scriptedPrompter{
		inputs: map[string]string{
			"Language code": "  ",
		},
		selects: map[string]string{
			"Select audio track by": "language",
		},
	}

	job := config.Default()
	if err := FillJob(p, &job); err != nil {
		t.Fatal(err)
	}
	if job.Selector.Language != "eng" {
		t.Errorf("Language = %q, want eng", job.Selector.Language)
	}
}

func TestFillJob_BadNumber(t *testing.T) {
	p := &scriptedPrompter{
		inputs: map[string]string{
			"Sample rate": "fast",
		},
	}
	job := config.Default()
	if err := FillJob(p, &job); err == nil {
		t.Error("expected error for non-numeric answer")
	}
}
