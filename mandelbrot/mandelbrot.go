package mandelbrot

import (
	"image/color"
)

// Boundary is the squared escape radius.
const Boundary = 4.0

type Mandelbrot struct {
	settings Settings
}

func NewMandelbrot(settings Settings) Mandelbrot {
	return Mandelbrot{
		settings: settings,
	}
}

func (m *Mandelbrot) Settings() Settings {
	return m.settings
}

// EscapeTime returns the number of iterations of z = z^2 + c, starting at
// z = c, before |z| exceeds 2. Points that never escape return maxIterations.
// The magnitude is checked before each step, so a point already outside the
// escape radius returns 0.
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Unoptimized_na%C3%AFve_escape_time_algorithm
func EscapeTime(x0 float64, y0 float64, maxIterations uint) uint {
	x, y := x0, y0
	var iteration uint
	for x*x+y*y <= Boundary && iteration < maxIterations {
		xt := x*x - y*y + x0
		yt := 2*x*y + y0
		x = xt
		y = yt
		iteration++
	}
	return iteration
}

// GetGray scales an iteration count linearly onto [0, 255]. Points inside the
// set get the brightest shade.
func GetGray(iterations uint, maxIterations uint) uint8 {
	if maxIterations == 0 {
		return 0
	}
	if iterations > maxIterations {
		iterations = maxIterations
	}
	return uint8(uint64(255) * uint64(iterations) / uint64(maxIterations))
}

func GetColor(iterations uint, maxIterations uint) color.RGBA {
	gray := GetGray(iterations, maxIterations)
	return color.RGBA{R: gray, G: gray, B: gray, A: 255}
}

func (m *Mandelbrot) EscapeTime(x float64, y float64) uint {
	return EscapeTime(x, y, m.settings.MaxIterations)
}

func (m *Mandelbrot) GetColor(iterations uint) color.RGBA {
	return GetColor(iterations, m.settings.MaxIterations)
}

func (m *Mandelbrot) ConvertPixelCoordinateToComplexCoordinate(column uint, row uint) (float64, float64) {
	/*
	 * Convert the (column, row) point on the image to the (x, y) point on the complex plane
	 *
	 * - The window spans [center - scale, center + scale) on both axes, stretched over the width and the height
	 *   independently, so non-square images are distorted.
	 * - Do not simplify the span to 2*scale: the rounding of this exact form is what the reference renderer produces.
	 */
	s := m.settings
	x := (s.CenterX - s.Scale) + float64(column)*((s.CenterX+s.Scale)-(s.CenterX-s.Scale))/float64(s.Width)
	y := (s.CenterY - s.Scale) + float64(row)*((s.CenterY+s.Scale)-(s.CenterY-s.Scale))/float64(s.Height)
	return x, y
}

func (m *Mandelbrot) CalcPixelColor(column uint, row uint) color.RGBA {
	x, y := m.ConvertPixelCoordinateToComplexCoordinate(column, row)
	return m.GetColor(m.EscapeTime(x, y))
}
