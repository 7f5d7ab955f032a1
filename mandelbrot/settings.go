package mandelbrot

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"ParallelMandelbrot/misc"

	"github.com/bytedance/sonic"
)

var (
	ErrInvalidCenter        = errors.New("center must be a finite number")
	ErrInvalidScale         = errors.New("scale must be a finite number")
	ErrInvalidWidth         = errors.New("width must be greater than 0")
	ErrInvalidHeight        = errors.New("height must be greater than 0")
	ErrInvalidMaxIterations = errors.New("max iterations must be greater than 0")
	ErrInvalidThreadCount   = errors.New("thread count must be greater than 0")
	ErrImageTooLarge        = errors.New("image is too large")
	ErrTooManyThreads       = errors.New("thread count is too large")
)

const (
	DefaultOutputFile = "mandel.bmp"

	// MaxPixels keeps a 4 byte per pixel buffer addressable on every platform.
	MaxPixels = 1 << 28
	// MaxThreadCount caps the goroutines (and partitions) of one render.
	MaxThreadCount = 1 << 16
)

// Settings describes one render. It is built once, verified, and then only
// ever passed by value; nothing mutates it after the workers start.
type Settings struct {
	CenterX       float64 `json:"centerX"`
	CenterY       float64 `json:"centerY"`
	Height        uint    `json:"height"`
	MaxIterations uint    `json:"maxIterations"`
	OutputFile    string  `json:"outputFile"`
	Scale         float64 `json:"scale"`
	ThreadCount   uint    `json:"threadCount"`
	Width         uint    `json:"width"`
}

func NewSettings() Settings {
	return Settings{
		CenterX:       0,
		CenterY:       0,
		Height:        500,
		MaxIterations: 1000,
		OutputFile:    DefaultOutputFile,
		Scale:         4,
		ThreadCount:   1,
		Width:         500,
	}
}

// LoadSettings reads a JSON settings file on top of the defaults. Keys missing
// from the file keep their default value.
func LoadSettings(settingsFile string) (Settings, error) {
	s := NewSettings()
	err, fileBytes := misc.ReadFile(settingsFile)
	if err != nil {
		return s, err
	}
	if err := sonic.Unmarshal(fileBytes, &s); err != nil {
		return s, fmt.Errorf("unable to decode %s - %w", settingsFile, err)
	}
	if s.OutputFile == "" {
		s.OutputFile = DefaultOutputFile
	}
	return s, nil
}

func (s Settings) Marshal() ([]byte, error) {
	return sonic.Marshal(s)
}

func (s Settings) String() string {
	output := "{Settings "
	output += fmt.Sprintf("CenterX: %f ", s.CenterX)
	output += fmt.Sprintf("CenterY: %f ", s.CenterY)
	output += fmt.Sprintf("Height: %d ", s.Height)
	output += fmt.Sprintf("MaxIterations: %d ", s.MaxIterations)
	output += fmt.Sprintf("Scale: %f ", s.Scale)
	output += fmt.Sprintf("ThreadCount: %d ", s.ThreadCount)
	output += fmt.Sprintf("Width: %d}", s.Width)
	return output
}

// Key identifies the image these settings produce. Floats are written in full
// precision and the output file is left out.
func (s Settings) Key() string {
	return strconv.FormatFloat(s.CenterX, 'g', -1, 64) + "|" +
		strconv.FormatFloat(s.CenterY, 'g', -1, 64) + "|" +
		strconv.FormatFloat(s.Scale, 'g', -1, 64) + "|" +
		strconv.FormatUint(uint64(s.Width), 10) + "x" +
		strconv.FormatUint(uint64(s.Height), 10) + "|" +
		strconv.FormatUint(uint64(s.MaxIterations), 10) + "|" +
		strconv.FormatUint(uint64(s.ThreadCount), 10)
}

// Verify reports the first setting that would make a render ill defined.
// More threads than rows is allowed: the surplus partitions are empty.
func (s Settings) Verify() error {
	if math.IsNaN(s.CenterX) || math.IsInf(s.CenterX, 0) || math.IsNaN(s.CenterY) || math.IsInf(s.CenterY, 0) {
		return ErrInvalidCenter
	}
	if math.IsNaN(s.Scale) || math.IsInf(s.Scale, 0) {
		return ErrInvalidScale
	}
	if s.Width == 0 {
		return ErrInvalidWidth
	}
	if s.Height == 0 {
		return ErrInvalidHeight
	}
	if s.MaxIterations == 0 {
		return ErrInvalidMaxIterations
	}
	if s.ThreadCount == 0 {
		return ErrInvalidThreadCount
	}
	// division keeps the product check from wrapping
	if s.Width > MaxPixels || s.Height > MaxPixels || s.Width > MaxPixels/s.Height {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, s.Width, s.Height, MaxPixels)
	}
	if s.ThreadCount > MaxThreadCount {
		return fmt.Errorf("%w: %d exceeds %d", ErrTooManyThreads, s.ThreadCount, MaxThreadCount)
	}
	return nil
}
