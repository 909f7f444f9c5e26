package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validJob() Job {
	j := Default()
	j.InputDir = "/media/videos"
	j.OutputDir = "/media/audio"
	return j
}

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/videos", "/media/videos"},
		{"single trailing slash", "/media/videos/", "/media/videos"},
		{"multiple trailing slashes", "/media/videos///", "/media/videos"},
		{"root path", "/", "/"},
		{"relative path", "output", "output"},
		{"relative with slash", "output/", "output"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_Mode(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		wantErr bool
	}{
		{"copy is valid", ModeCopy, false},
		{"mp3 is valid", ModeMP3, false},
		{"aac is valid", ModeAAC, false},
		{"wav is valid", ModeWAV, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "flac", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := validJob()
			j.Mode = tt.mode
			err := j.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Selector(t *testing.T) {
	tests := []struct {
		name    string
		sel     StreamSelector
		wantErr bool
	}{
		{"index zero", StreamSelector{Index: 0}, false},
		{"index positive", StreamSelector{Index: 3}, false},
		{"index negative", StreamSelector{Index: -1}, true},
		{"language eng", StreamSelector{ByLanguage: true, Language: "eng"}, false},
		{"language ind", StreamSelector{ByLanguage: true, Language: "ind"}, false},
		{"language too short", StreamSelector{ByLanguage: true, Language: "en"}, true},
		{"language empty", StreamSelector{ByLanguage: true, Language: ""}, true},
		{"language uppercase", StreamSelector{ByLanguage: true, Language: "ENG"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := validJob()
			j.Selector = tt.sel
			err := j.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Numbers(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Job)
		wantErr bool
	}{
		{"defaults valid", func(j *Job) {}, false},
		{"negative sample rate", func(j *Job) { j.SampleRate = -1 }, true},
		{"positive sample rate", func(j *Job) { j.SampleRate = 44100 }, false},
		{"negative bitrate", func(j *Job) { j.BitrateKbps = -192 }, true},
		{"positive bitrate", func(j *Job) { j.BitrateKbps = 192 }, false},
		{"zero workers", func(j *Job) { j.Workers = 0 }, true},
		{"one worker", func(j *Job) { j.Workers = 1 }, false},
		{"missing input dir", func(j *Job) { j.InputDir = "" }, true},
		{"missing output dir", func(j *Job) { j.OutputDir = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := validJob()
			tt.mutate(&j)
			err := j.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSelector_String(t *testing.T) {
	tests := []struct {
		name string
		sel  StreamSelector
		want string
	}{
		{"index zero", StreamSelector{Index: 0}, "a:0"},
		{"index two", StreamSelector{Index: 2}, "a:2"},
		{"language", StreamSelector{ByLanguage: true, Language: "eng"}, "a:m:language:eng"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePaths(t *testing.T) {
	tests := []struct {
		name    string
		in, out string
		wantErr bool
	}{
		{"disjoint", "/media/videos", "/media/audio", false},
		{"output inside input", "/media/videos", "/media/videos/audio", true},
		{"output equals input", "/media/videos", "/media/videos", true},
		{"sibling prefix", "/media/videos", "/media/videos2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := validJob()
			err := j.ValidatePaths(tt.in, tt.out)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePaths(%q, %q) error = %v, wantErr %v", tt.in, tt.out, err, tt.wantErr)
			}
		})
	}
}

func TestApplyPreset_MusicGPU(t *testing.T) {
	j := Default()
	if err := ApplyPreset(&j, PresetMusicGPU); err != nil {
		t.Fatal(err)
	}
	if j.Mode != ModeMP3 {
		t.Errorf("Mode = %q, want mp3", j.Mode)
	}
	if !j.Loudnorm {
		t.Error("Loudnorm should be on")
	}
	if j.BitrateKbps != 320 || j.SampleRate != 44100 {
		t.Errorf("bitrate/rate = %d/%d, want 320/44100", j.BitrateKbps, j.SampleRate)
	}
	if !j.GPUDecode {
		t.Error("GPUDecode should be on")
	}
	if j.Recursive {
		t.Error("Recursive should be off")
	}
	if j.Selector.ByLanguage || j.Selector.Index != 0 {
		t.Errorf("Selector = %+v, want index 0", j.Selector)
	}
	if j.Workers < 4 || j.Workers > 6 {
		t.Errorf("Workers = %d, want within [4,6]", j.Workers)
	}
}

func TestApplyPreset_Unknown(t *testing.T) {
	j := Default()
	if err := ApplyPreset(&j, "mystery"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadFile_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	data := []byte("input_dir: /media/videos\nmode: mp3\nbitrate_kbps: 192\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	job, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if job.Mode != ModeMP3 || job.BitrateKbps != 192 {
		t.Errorf("mode/bitrate = %q/%d, want mp3/192", job.Mode, job.BitrateKbps)
	}
	// Unset fields keep their defaults.
	if !job.Recursive || !job.PreserveTree {
		t.Error("defaults should survive a partial job file")
	}
	if job.Workers != DefaultWorkers() {
		t.Errorf("Workers = %d, want default %d", job.Workers, DefaultWorkers())
	}
}

func TestSaveFile_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")

	j := validJob()
	j.Mode = ModeAAC
	j.Selector = StreamSelector{ByLanguage: true, Language: "ind"}
	j.SampleRate = 48000
	if err := SaveFile(&j, path); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Mode != ModeAAC || got.SampleRate != 48000 {
		t.Errorf("mode/rate = %q/%d, want aac/48000", got.Mode, got.SampleRate)
	}
	if !got.Selector.ByLanguage || got.Selector.Language != "ind" {
		t.Errorf("Selector = %+v, want language ind", got.Selector)
	}
}
