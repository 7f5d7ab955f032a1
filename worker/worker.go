package worker

import (
	"fmt"
	"time"

	"ParallelMandelbrot/canvas"
	"ParallelMandelbrot/mandelbrot"
	"ParallelMandelbrot/task"

	"github.com/BrugadaSyndrome/bslogger"
)

// Result is what a worker reports back at the join point.
type Result struct {
	Elapsed        time.Duration
	ID             uint
	PixelsRejected uint
	PixelsWritten  uint
	Rows           task.RowRange
}

func (r *Result) String() string {
	output := "{Result "
	output += fmt.Sprintf("ID: %d ", r.ID)
	output += fmt.Sprintf("Rows: %s ", r.Rows)
	output += fmt.Sprintf("Pixels Written: %d ", r.PixelsWritten)
	output += fmt.Sprintf("Pixels Rejected: %d ", r.PixelsRejected)
	output += fmt.Sprintf("Elapsed: %s}", r.Elapsed)
	return output
}

type Worker struct {
	id         uint
	logger     bslogger.Logger
	mandelbrot mandelbrot.Mandelbrot
	view       canvas.RowView
}

func NewWorker(id uint, settings mandelbrot.Settings, view canvas.RowView) Worker {
	return Worker{
		id:         id,
		logger:     bslogger.NewLogger(fmt.Sprintf("Worker %d", id), bslogger.Normal, nil),
		mandelbrot: mandelbrot.NewMandelbrot(settings),
		view:       view,
	}
}

func (w *Worker) ID() uint {
	return w.id
}

func (w *Worker) Rows() task.RowRange {
	return w.view.Rows()
}

// Process colors every pixel of the worker's rows. It only ever writes through
// its own view, never blocks, and always terminates since the escape loop is
// bounded by MaxIterations.
func (w *Worker) Process() Result {
	rows := w.view.Rows()
	result := Result{
		ID:   w.id,
		Rows: rows,
	}
	startTime := time.Now()

	if rows.Empty() {
		w.logger.Debugf("No rows to process in %s", rows)
		return result
	}

	width := w.mandelbrot.Settings().Width
	for row := rows.Begin; row < rows.End; row++ {
		var column uint
		for column = 0; column < width; column++ {
			color := w.mandelbrot.CalcPixelColor(column, row)
			if err := w.view.SetPixel(column, row, color); err != nil {
				result.PixelsRejected++
				continue
			}
			result.PixelsWritten++
		}
	}

	result.Elapsed = time.Since(startTime)
	w.logger.Debugf("Processed rows %s in %s", rows, result.Elapsed)
	return result
}
