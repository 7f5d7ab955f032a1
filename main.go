package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"ParallelMandelbrot/canvas"
	"ParallelMandelbrot/coordinator"
	"ParallelMandelbrot/misc"
	"ParallelMandelbrot/rpc"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/google/gops/agent"
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil && err.Error() != "" {
		fmt.Fprintf(os.Stderr, "mandel: %s\n", err)
	}
	os.Exit(misc.ExitCode(err))
}

func run(args []string, stdout io.Writer) error {
	o, err := parseArguments(args, stdout)
	if err != nil {
		return err
	}
	logger := bslogger.NewLogger("Mandel", bslogger.Normal, nil)

	if o.serveAddress != "" {
		return serve(o, logger)
	}

	s := o.settings
	fmt.Fprintf(stdout, "mandel: x=%f y=%f scale=%f max=%d thread_number=%d outfile=%s\n", s.CenterX, s.CenterY, s.Scale, s.MaxIterations, s.ThreadCount, s.OutputFile)

	if err := s.Verify(); err != nil {
		return misc.Exit(1, fmt.Errorf("invalid settings: %w", err))
	}

	if o.dumpFile != "" {
		settingsBytes, err := s.Marshal()
		if err != nil {
			return misc.Exit(1, err)
		}
		if _, err := misc.WriteFile(o.dumpFile, settingsBytes); err != nil {
			return misc.Exit(1, err)
		}
	}

	var buffer *canvas.PixelBuffer
	if o.remoteAddress != "" {
		logger.Infof("Rendering on %s", o.remoteAddress)
		buffer, _, err = rpc.RenderRemote(o.remoteAddress, s)
	} else {
		var c coordinator.Coordinator
		c, err = coordinator.NewCoordinator(s)
		if err == nil {
			buffer, err = c.Render(context.Background())
		}
	}
	if err != nil {
		return misc.Exit(1, err)
	}

	if err := canvas.Save(s.OutputFile, buffer); err != nil {
		return misc.Exit(1, fmt.Errorf("couldn't write to %s: %w", s.OutputFile, err))
	}
	return nil
}

// serve runs the render service until the process is interrupted.
func serve(o options, logger bslogger.Logger) error {
	if o.gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			return misc.Exit(1, fmt.Errorf("starting gops agent: %w", err))
		}
		defer agent.Close()
	}

	service := rpc.NewRenderService()
	server := rpc.NewTcpServer(service, o.serveAddress, "RenderServer")
	if err := server.Run(); err != nil {
		return misc.Exit(1, err)
	}

	address, err := misc.ReachableAddress(server.Address())
	if !misc.CheckError(err, logger, misc.Warning) {
		logger.Infof("Render remotely with: mandel -remote %s", address)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	requests, renders := service.Stats()
	logger.Infof("Served %d render requests with %d renders", requests, renders)
	return server.Stop()
}
