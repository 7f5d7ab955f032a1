package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ParallelMandelbrot/canvas"
	"ParallelMandelbrot/mandelbrot"
	"ParallelMandelbrot/task"
	"ParallelMandelbrot/worker"

	"github.com/BrugadaSyndrome/bslogger"
	"golang.org/x/sync/errgroup"
)

var ErrNothingRendered = errors.New("nothing rendered yet")

type Coordinator struct {
	buffer   *canvas.PixelBuffer
	elapsed  time.Duration
	logger   bslogger.Logger
	results  []worker.Result
	settings mandelbrot.Settings
}

func NewCoordinator(settings mandelbrot.Settings) (Coordinator, error) {
	coordinator := Coordinator{
		logger:   bslogger.NewLogger("Coordinator", bslogger.Normal, nil),
		settings: settings,
	}
	if err := settings.Verify(); err != nil {
		return coordinator, fmt.Errorf("invalid settings: %w", err)
	}
	return coordinator, nil
}

func (c *Coordinator) Settings() mandelbrot.Settings {
	return c.settings
}

// Results returns the per worker outcome of the last render, indexed by
// partition.
func (c *Coordinator) Results() []worker.Result {
	return c.results
}

func (c *Coordinator) Elapsed() time.Duration {
	return c.elapsed
}

// Render allocates a fresh buffer, starts one worker per partition and blocks
// until all of them are done. Workers are not interruptible; ctx is only
// consulted before any of them start.
func (c *Coordinator) Render(ctx context.Context) (*canvas.PixelBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	buffer, ranges, err := c.prepare()
	if err != nil {
		c.logger.Errorf("Render failed: %s", err)
		return nil, err
	}
	if idle := task.Idle(ranges); idle > 0 {
		c.logger.Warningf("Thread count %d exceeds image height %d; %d workers will have no rows", c.settings.ThreadCount, c.settings.Height, idle)
	}
	results := make([]worker.Result, len(ranges))
	c.logger.Debugf("Rendering %dx%d with %d workers", c.settings.Width, c.settings.Height, len(ranges))

	var group errgroup.Group
	for i, rows := range ranges {
		i := i
		w := worker.NewWorker(uint(i), c.settings, buffer.Rows(rows))
		group.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d on rows %s: %v", w.ID(), w.Rows(), r)
				}
			}()

			results[i] = w.Process()
			if results[i].PixelsRejected > 0 {
				return fmt.Errorf("worker %d wrote %d pixels outside of rows %s", w.ID(), results[i].PixelsRejected, w.Rows())
			}
			return nil
		})
	}

	// join barrier: the buffer is not read until every worker has returned
	if err := group.Wait(); err != nil {
		c.logger.Errorf("Render failed: %s", err)
		return nil, err
	}

	c.buffer = buffer
	c.results = results
	c.elapsed = time.Since(startTime)
	c.logger.Infof("Rendered %dx%d with %d workers in %s", c.settings.Width, c.settings.Height, len(ranges), c.elapsed)
	return buffer, nil
}

// prepare allocates the sentinel filled buffer and the partitions. An
// allocation the runtime refuses comes back as an error.
func (c *Coordinator) prepare() (buffer *canvas.PixelBuffer, ranges []task.RowRange, err error) {
	defer func() {
		if r := recover(); r != nil {
			buffer, ranges = nil, nil
			err = fmt.Errorf("unable to allocate %dx%d image for %d workers: %v", c.settings.Width, c.settings.Height, c.settings.ThreadCount, r)
		}
	}()

	buffer = canvas.NewPixelBuffer(c.settings.Width, c.settings.Height)
	buffer.Fill(canvas.Sentinel)
	ranges = task.Partition(c.settings.Height, c.settings.ThreadCount)
	return buffer, ranges, nil
}

// Save hands the last rendered buffer to the serializer.
func (c *Coordinator) Save(path string) error {
	if c.buffer == nil {
		return ErrNothingRendered
	}
	if err := canvas.Save(path, c.buffer); err != nil {
		return err
	}
	c.logger.Infof("Saved image to %s", path)
	return nil
}
