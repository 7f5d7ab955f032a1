package mandelbrot

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestNewSettingsDefaults(t *testing.T) {
	s := NewSettings()
	if s.CenterX != 0 || s.CenterY != 0 || s.Scale != 4 {
		t.Errorf("unexpected plane defaults: %s", s)
	}
	if s.Width != 500 || s.Height != 500 || s.MaxIterations != 1000 || s.ThreadCount != 1 {
		t.Errorf("unexpected raster defaults: %s", s)
	}
	if s.OutputFile != DefaultOutputFile {
		t.Errorf("OutputFile = %q, want %q", s.OutputFile, DefaultOutputFile)
	}
	if err := s.Verify(); err != nil {
		t.Errorf("defaults do not verify: %s", err)
	}
}

func TestSettingsVerify(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *Settings)
		want   error
	}{
		{"defaults", func(s *Settings) {}, nil},
		{"more threads than rows", func(s *Settings) { s.ThreadCount = 10; s.Height = 3 }, nil},
		{"negative scale", func(s *Settings) { s.Scale = -1 }, nil},
		{"zero width", func(s *Settings) { s.Width = 0 }, ErrInvalidWidth},
		{"zero height", func(s *Settings) { s.Height = 0 }, ErrInvalidHeight},
		{"zero iterations", func(s *Settings) { s.MaxIterations = 0 }, ErrInvalidMaxIterations},
		{"zero threads", func(s *Settings) { s.ThreadCount = 0 }, ErrInvalidThreadCount},
		{"nan center", func(s *Settings) { s.CenterX = math.NaN() }, ErrInvalidCenter},
		{"infinite center", func(s *Settings) { s.CenterY = math.Inf(-1) }, ErrInvalidCenter},
		{"infinite scale", func(s *Settings) { s.Scale = math.Inf(1) }, ErrInvalidScale},
		{"largest image", func(s *Settings) { s.Width = 1 << 14; s.Height = 1 << 14 }, nil},
		{"huge image", func(s *Settings) { s.Width = 1 << 20; s.Height = 1 << 20 }, ErrImageTooLarge},
		{"product wraps", func(s *Settings) { s.Width = math.MaxUint; s.Height = 2 }, ErrImageTooLarge},
		{"one huge row", func(s *Settings) { s.Width = MaxPixels + 1; s.Height = 1 }, ErrImageTooLarge},
		{"thread cap", func(s *Settings) { s.ThreadCount = MaxThreadCount }, nil},
		{"too many threads", func(s *Settings) { s.ThreadCount = MaxThreadCount + 1 }, ErrTooManyThreads},
		{"max uint threads", func(s *Settings) { s.ThreadCount = math.MaxUint }, ErrTooManyThreads},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettings()
			tt.modify(&s)
			if err := s.Verify(); !errors.Is(err, tt.want) {
				t.Errorf("Verify() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadSettingsKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	contents := `{"centerX": -0.5, "width": 64, "threadCount": 4}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %s", err)
	}
	want := NewSettings()
	want.CenterX = -0.5
	want.Width = 64
	want.ThreadCount = 4
	if s != want {
		t.Errorf("LoadSettings = %s, want %s", s, want)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"width": "wide"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("expected an error for malformed json")
	}
}

func TestSettingsMarshalRoundTrip(t *testing.T) {
	s := NewSettings()
	s.CenterX = 0.286932
	s.CenterY = 0.014287
	s.Scale = 0.0005
	s.ThreadCount = 2

	data, err := s.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "dump.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != s {
		t.Errorf("round trip = %s, want %s", loaded, s)
	}
}

func TestSettingsKey(t *testing.T) {
	a := NewSettings()
	b := NewSettings()
	b.OutputFile = "other.png"
	if a.Key() != b.Key() {
		t.Errorf("output file should not change the key: %q vs %q", a.Key(), b.Key())
	}

	b.CenterX = 1e-12
	if a.Key() == b.Key() {
		t.Errorf("tiny center change should change the key: %q", a.Key())
	}
}
