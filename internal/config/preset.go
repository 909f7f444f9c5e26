package config

import "fmt"

// Preset names accepted by ApplyPreset.
const (
	// PresetMusicGPU tunes the job for extracting music tracks from a flat
	// folder of videos: MP3 at 320 kbps / 44.1 kHz, loudness-normalized,
	// GPU-assisted decoding, first audio track only.
	PresetMusicGPU = "music-gpu"
)

// ApplyPreset overwrites job fields with the named preset's values.
// Presets are applied before individual flag overrides, so users can still
// tweak single options on top of one.
func ApplyPreset(j *Job, name string) error {
	switch name {
	case PresetMusicGPU:
		j.Mode = ModeMP3
		j.Loudnorm = true
		j.BitrateKbps = 320
		j.SampleRate = 44100
		j.GPUDecode = true
		j.Recursive = false
		j.Selector = StreamSelector{Index: 0}
		j.Workers = musicPresetWorkers(DefaultWorkers())
		return nil
	default:
		return fmt.Errorf("unknown preset %q (available: %s)", name, PresetMusicGPU)
	}
}

// musicPresetWorkers clamps the pool for music batches: at least 4 so small
// files keep the encoder busy, at most 6 so GPU decode sessions aren't
// oversubscribed.
func musicPresetWorkers(def int) int {
	w := def
	if w < 4 {
		w = 4
	}
	if w > 6 {
		w = 6
	}
	return w
}
