// Package canvas holds the pixel buffer a render writes into and the
// serializers that turn it into an image file.
package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"ParallelMandelbrot/task"
)

// Sentinel is the fill color of a fresh buffer; any pixel still this color
// after a render was never visited by a worker.
var Sentinel = color.RGBA{R: 0, G: 0, B: 255, A: 255}

type PixelBuffer struct {
	image *image.RGBA
}

func NewPixelBuffer(width uint, height uint) *PixelBuffer {
	return &PixelBuffer{
		image: image.NewRGBA(image.Rect(0, 0, int(width), int(height))),
	}
}

var ErrPixelCount = errors.New("pixel data does not match dimensions")

// FromPixels wraps raw RGBA bytes, four per pixel in row order.
func FromPixels(width uint, height uint, pix []byte) (*PixelBuffer, error) {
	if width > math.MaxInt/4 || (width != 0 && height > math.MaxInt/4/width) {
		return nil, fmt.Errorf("%w: %dx%d is not addressable", ErrPixelCount, width, height)
	}
	if size := 4 * width * height; uint(len(pix)) != size {
		return nil, fmt.Errorf("%w: expected %d bytes for a %dx%d buffer, got %d", ErrPixelCount, size, width, height, len(pix))
	}
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	copy(img.Pix, pix)
	return &PixelBuffer{image: img}, nil
}

func (pb *PixelBuffer) Width() uint {
	return uint(pb.image.Rect.Dx())
}

func (pb *PixelBuffer) Height() uint {
	return uint(pb.image.Rect.Dy())
}

func (pb *PixelBuffer) Image() *image.RGBA {
	return pb.image
}

func (pb *PixelBuffer) Pixels() []byte {
	return pb.image.Pix
}

func (pb *PixelBuffer) Fill(c color.RGBA) {
	draw.Draw(pb.image, pb.image.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func (pb *PixelBuffer) At(column uint, row uint) color.RGBA {
	return pb.image.RGBAAt(int(column), int(row))
}

func (pb *PixelBuffer) Equal(other *PixelBuffer) bool {
	if other == nil {
		return false
	}
	return pb.image.Rect == other.image.Rect && bytes.Equal(pb.image.Pix, other.image.Pix)
}

// Rows returns a view onto rows [r.Begin, r.End) that shares this buffer's
// memory. Views of disjoint ranges never touch the same bytes, so workers can
// write through them concurrently without locking.
func (pb *PixelBuffer) Rows(r task.RowRange) RowView {
	view := RowView{rows: r}
	if r.Empty() {
		return view
	}
	rect := image.Rect(0, int(r.Begin), pb.image.Rect.Dx(), int(r.End)).Intersect(pb.image.Rect)
	if sub, ok := pb.image.SubImage(rect).(*image.RGBA); ok {
		view.image = sub
	}
	return view
}

var ErrOutsideView = errors.New("pixel outside of row view")

// RowView is the only handle a worker gets on the shared buffer. Writes that
// fall outside its rows are rejected.
type RowView struct {
	image *image.RGBA
	rows  task.RowRange
}

func (v RowView) Rows() task.RowRange {
	return v.rows
}

func (v RowView) Width() uint {
	if v.image == nil {
		return 0
	}
	return uint(v.image.Rect.Dx())
}

func (v RowView) SetPixel(column uint, row uint, c color.RGBA) error {
	if v.image == nil || !(image.Point{X: int(column), Y: int(row)}.In(v.image.Rect)) {
		return ErrOutsideView
	}
	v.image.SetRGBA(int(column), int(row), c)
	return nil
}
