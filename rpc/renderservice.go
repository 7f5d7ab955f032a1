package rpc

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"ParallelMandelbrot/canvas"
	"ParallelMandelbrot/coordinator"
	"ParallelMandelbrot/mandelbrot"
	"ParallelMandelbrot/misc"
	"ParallelMandelbrot/worker"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/zeromicro/go-zero/core/syncx"
)

const ServiceName = "RenderService"

type RenderReply struct {
	Elapsed time.Duration
	Height  uint
	Pixels  []byte
	Results []worker.Result
	Width   uint
}

// Buffer rebuilds the pixel buffer carried by the reply.
func (rr *RenderReply) Buffer() (*canvas.PixelBuffer, error) {
	return canvas.FromPixels(rr.Width, rr.Height, rr.Pixels)
}

// RenderService renders on behalf of remote clients. Requests for the same
// image that arrive while it is being rendered share that one render.
type RenderService struct {
	logger        bslogger.Logger
	renders       syncx.SingleFlight
	rendersDone   atomic.Uint64
	requestsTotal atomic.Uint64
}

func NewRenderService() *RenderService {
	return &RenderService{
		logger:  bslogger.NewLogger(ServiceName, bslogger.Normal, nil),
		renders: syncx.NewSingleFlight(),
	}
}

func (rs *RenderService) Render(settings mandelbrot.Settings, reply *RenderReply) error {
	rs.requestsTotal.Add(1)

	value, err := rs.renders.Do(settings.Key(), func() (value interface{}, err error) {
		// net/rpc does not recover panics in service methods
		defer func() {
			if r := recover(); r != nil {
				value, err = nil, fmt.Errorf("render %s: %v", settings, r)
			}
		}()

		c, err := coordinator.NewCoordinator(settings)
		if err != nil {
			return nil, err
		}
		buffer, err := c.Render(context.Background())
		if err != nil {
			return nil, err
		}
		rs.rendersDone.Add(1)
		return RenderReply{
			Elapsed: c.Elapsed(),
			Height:  buffer.Height(),
			Pixels:  buffer.Pixels(),
			Results: c.Results(),
			Width:   buffer.Width(),
		}, nil
	})
	if err != nil {
		rs.logger.Warningf("Render %s failed: %s", settings, err)
		return err
	}

	*reply = value.(RenderReply)
	return nil
}

func (rs *RenderService) RollCall(caller string, present *bool) error {
	rs.logger.Debugf("Roll call from %s", caller)
	*present = true
	return nil
}

// Stats reports how many requests were received and how many renders they
// actually caused.
func (rs *RenderService) Stats() (requests uint64, renders uint64) {
	return rs.requestsTotal.Load(), rs.rendersDone.Load()
}

// RenderRemote asks the render service at address to render settings and
// returns the resulting buffer.
func RenderRemote(address string, settings mandelbrot.Settings) (*canvas.PixelBuffer, []worker.Result, error) {
	client := NewTcpClient(address, "RenderClient")
	if err := client.Connect(); err != nil {
		return nil, nil, err
	}
	defer func() {
		misc.CheckError(client.Disconnect(), client.Logger, misc.Warning)
	}()

	reply, err := client.Render(settings)
	if err != nil {
		return nil, nil, fmt.Errorf("remote render at %s: %w", address, err)
	}
	buffer, err := reply.Buffer()
	if err != nil {
		return nil, nil, err
	}
	return buffer, reply.Results, nil
}
