package canvas

import (
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

var ErrUnknownFormat = errors.New("unknown image format")

type Format int

const (
	BMP Format = iota
	PNG
	JPEG
)

func (f Format) String() string {
	switch f {
	case BMP:
		return "bmp"
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks the encoder from the file extension. A path without an
// extension is written as a bitmap.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp", "":
		return BMP, nil
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	default:
		return BMP, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
}

func Encode(w io.Writer, pb *PixelBuffer, format Format) error {
	switch format {
	case BMP:
		return bmp.Encode(w, pb.image)
	case PNG:
		return png.Encode(w, pb.image)
	case JPEG:
		return jpeg.Encode(w, pb.image, &jpeg.Options{Quality: 95})
	default:
		return ErrUnknownFormat
	}
}

// Save writes the buffer to path. The file is removed again if encoding fails
// so a failed save never leaves a truncated image behind.
func Save(path string, pb *PixelBuffer) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = Encode(f, pb, format)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
