package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/backmassage/trackpull/internal/config"
)

// Prompter abstracts interactive prompts so the fill flow is testable
// without a terminal.
type Prompter interface {
	Input(message, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string, defaultValue string) (string, error)
}

// SurveyPrompter implements Prompter using the survey library.
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production.
var DefaultPrompter Prompter = &SurveyPrompter{}

// FillJob walks the job options interactively, pre-filling each prompt with
// the job's current value so flags and job files act as defaults.
func FillJob(p Prompter, job *config.Job) error {
	var err error

	if job.InputDir, err = p.Input("Input folder:", job.InputDir); err != nil {
		return err
	}
	if job.OutputDir, err = p.Input("Output folder (empty = ./audio_out):", job.OutputDir); err != nil {
		return err
	}

	mode, err := p.Select("Mode:", []string{
		string(config.ModeCopy), string(config.ModeMP3),
		string(config.ModeAAC), string(config.ModeWAV),
	}, string(job.Mode))
	if err != nil {
		return err
	}
	job.Mode = config.Mode(mode)

	if job.Recursive, err = p.Confirm("Scan subdirectories?", job.Recursive); err != nil {
		return err
	}
	if job.PreserveTree, err = p.Confirm("Preserve folder structure?", job.PreserveTree); err != nil {
		return err
	}

	if err := fillSelector(p, job); err != nil {
		return err
	}

	if job.Loudnorm, err = p.Confirm("Loudness normalization (EBU R128)?", job.Loudnorm); err != nil {
		return err
	}
	if job.SampleRate, err = promptOptionalInt(p, "Sample rate in Hz (empty = keep source):", job.SampleRate); err != nil {
		return err
	}
	if job.BitrateKbps, err = promptOptionalInt(p, "Bitrate in kbps (empty = encoder default):", job.BitrateKbps); err != nil {
		return err
	}
	if job.GPUDecode, err = p.Confirm("Use GPU (CUDA) decoding?", job.GPUDecode); err != nil {
		return err
	}

	workers, err := promptOptionalInt(p, "Workers:", job.Workers)
	if err != nil {
		return err
	}
	if workers > 0 {
		job.Workers = workers
	}
	return nil
}

func fillSelector(p Prompter, job *config.Job) error {
	current := "index"
	if job.Selector.ByLanguage {
		current = "language"
	}
	kind, err := p.Select("Select audio track by:", []string{"index", "language"}, current)
	if err != nil {
		return err
	}

	if kind == "language" {
		lang := job.Selector.Language
		if lang == "" {
			lang = "eng"
		}
		if lang, err = p.Input("Language code (ISO-639-2):", lang); err != nil {
			return err
		}
		if strings.TrimSpace(lang) == "" {
			lang = "eng"
		}
		job.Selector = config.StreamSelector{ByLanguage: true, Language: strings.TrimSpace(lang)}
		return nil
	}

	idx, err := promptOptionalInt(p, "Track index:", job.Selector.Index)
	if err != nil {
		return err
	}
	job.Selector = config.StreamSelector{Index: idx}
	return nil
}

// promptOptionalInt prompts for a number; an empty answer keeps current.
func promptOptionalInt(p Prompter, message string, current int) (int, error) {
	def := ""
	if current != 0 {
		def = strconv.Itoa(current)
	}
	raw, err := p.Input(message, def)
	if err != nil {
		return 0, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return current, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return n, nil
}
