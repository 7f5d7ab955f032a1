package main

import (
	"flag"
	"fmt"
	"io"

	"ParallelMandelbrot/mandelbrot"
	"ParallelMandelbrot/misc"
)

type options struct {
	dumpFile      string
	gops          bool
	remoteAddress string
	serveAddress  string
	settings      mandelbrot.Settings
	settingsFile  string
}

func showHelp(w io.Writer) {
	fmt.Fprintf(w, "Use: mandel [options]\n")
	fmt.Fprintf(w, "Where options are:\n")
	fmt.Fprintf(w, "-m <max>           The maximum number of iterations per point. (default=1000)\n")
	fmt.Fprintf(w, "-n <thread_number> Number of threads used to render the image. (default=1)\n")
	fmt.Fprintf(w, "-x <coord>         X coordinate of image center point. (default=0)\n")
	fmt.Fprintf(w, "-y <coord>         Y coordinate of image center point. (default=0)\n")
	fmt.Fprintf(w, "-s <scale>         Scale of the image in Mandelbrot coordinates. (default=4)\n")
	fmt.Fprintf(w, "-W <pixels>        Width of the image in pixels. (default=500)\n")
	fmt.Fprintf(w, "-H <pixels>        Height of the image in pixels. (default=500)\n")
	fmt.Fprintf(w, "-o <file>          Set output file, .bmp .png or .jpg. (default=%s)\n", mandelbrot.DefaultOutputFile)
	fmt.Fprintf(w, "-settings <file>   JSON settings file; flags given on the command line win.\n")
	fmt.Fprintf(w, "-dump <file>       Write the effective settings as JSON.\n")
	fmt.Fprintf(w, "-serve <address>   Run a render server instead of rendering, e.g. :51000\n")
	fmt.Fprintf(w, "-gops              Start the gops diagnostics agent while serving.\n")
	fmt.Fprintf(w, "-remote <address>  Render on the server at address and save locally.\n")
	fmt.Fprintf(w, "-h                 Show this help text.\n")
	fmt.Fprintf(w, "\nSome examples are:\n")
	fmt.Fprintf(w, "mandel -x -0.5 -y -0.5 -s 0.2\n")
	fmt.Fprintf(w, "mandel -x -.38 -y -.665 -s .05 -m 100\n")
	fmt.Fprintf(w, "mandel -x 0.286932 -y 0.014287 -s .0005 -m 1000 -n 2\n\n")
}

// parseArguments builds the options for one run. Settings start from the
// defaults, are overlaid by the settings file if one is given, and finally by
// every flag that was set explicitly.
func parseArguments(args []string, output io.Writer) (options, error) {
	var o options
	defaults := mandelbrot.NewSettings()

	fs := flag.NewFlagSet("mandel", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { showHelp(output) }

	centerX := fs.Float64("x", defaults.CenterX, "X coordinate of image center point")
	centerY := fs.Float64("y", defaults.CenterY, "Y coordinate of image center point")
	scale := fs.Float64("s", defaults.Scale, "Scale of the image in Mandelbrot coordinates")
	width := fs.Uint("W", defaults.Width, "Width of the image in pixels")
	height := fs.Uint("H", defaults.Height, "Height of the image in pixels")
	maxIterations := fs.Uint("m", defaults.MaxIterations, "The maximum number of iterations per point")
	threadCount := fs.Uint("n", defaults.ThreadCount, "Number of threads used to render the image")
	outputFile := fs.String("o", defaults.OutputFile, "Output file")
	help := fs.Bool("h", false, "Show help text")
	fs.StringVar(&o.settingsFile, "settings", "", "JSON settings file")
	fs.StringVar(&o.dumpFile, "dump", "", "Write the effective settings as JSON")
	fs.StringVar(&o.serveAddress, "serve", "", "Run a render server at address")
	fs.BoolVar(&o.gops, "gops", false, "Start the gops diagnostics agent while serving")
	fs.StringVar(&o.remoteAddress, "remote", "", "Render on the server at address")

	if err := fs.Parse(args); err != nil {
		return o, misc.Exit(2, nil)
	}
	if *help {
		showHelp(output)
		return o, misc.Exit(1, nil)
	}
	if fs.NArg() > 0 {
		return o, misc.Exit(2, fmt.Errorf("unexpected arguments: %v", fs.Args()))
	}

	o.settings = defaults
	if o.settingsFile != "" {
		var err error
		o.settings, err = mandelbrot.LoadSettings(o.settingsFile)
		if err != nil {
			return o, misc.Exit(1, err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "x":
			o.settings.CenterX = *centerX
		case "y":
			o.settings.CenterY = *centerY
		case "s":
			o.settings.Scale = *scale
		case "W":
			o.settings.Width = *width
		case "H":
			o.settings.Height = *height
		case "m":
			o.settings.MaxIterations = *maxIterations
		case "n":
			o.settings.ThreadCount = *threadCount
		case "o":
			o.settings.OutputFile = *outputFile
		}
	})

	return o, nil
}
