// bmpresize resizes 24-bit BMP files.
//
// Usage:
//
//	bmpresize --rows 480 --cols 640 --kernel bilinear in.bmp out.bmp
//	bmpresize --factor 0.5 --kernel lanczos in.bmp out.bmp
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/adriansahlman/bmpraster/bmpx"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

var filters = map[string]imaging.ResampleFilter{
	"box":        imaging.Box,
	"triangle":   imaging.Linear,
	"hermite":    imaging.Hermite,
	"mitchell":   imaging.MitchellNetravali,
	"catmullrom": imaging.CatmullRom,
	"bspline":    imaging.BSpline,
	"gaussian":   imaging.Gaussian,
	"bartlett":   imaging.Bartlett,
	"lanczos":    imaging.Lanczos,
	"hann":       imaging.Hann,
	"hamming":    imaging.Hamming,
	"blackman":   imaging.Blackman,
	"welch":      imaging.Welch,
	"cosine":     imaging.Cosine,
}

type options struct {
	rows    int
	cols    int
	factor  float64
	kernel  string
	workers int
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "bmpresize [flags] <input.bmp> <output.bmp>",
		Short: "Resize a BMP image",
		Long: "Resize a BMP image to an explicit size or by a scale factor.\n" +
			"Kernels: nearest, bilinear, " + strings.Join(filterNames(), ", ") + ".",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), o.verbose)
			err := run(logger, o, args[0], args[1])
			if err != nil {
				logger.Error("resize failed", "input", args[0], "err", err)
			}
			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.rows, "rows", 0, "target height in pixels (0 keeps aspect ratio)")
	f.IntVar(&o.cols, "cols", 0, "target width in pixels (0 keeps aspect ratio)")
	f.Float64Var(&o.factor, "factor", 0, "scale factor applied to both axes")
	f.StringVarP(&o.kernel, "kernel", "k", "bilinear", "interpolation kernel")
	f.IntVar(&o.workers, "workers", 0, "maximum parallel workers (0 uses GOMAXPROCS)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log debug output")
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func filterNames() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func run(logger *slog.Logger, o options, input, output string) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	r, err := bmpx.Load(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	logger.Debug("loaded", "path", input, "height", r.Height(), "width", r.Width())

	start := time.Now()
	if err := resize(r, o); err != nil {
		return err
	}
	logger.Info(
		"resized",
		"height", r.Height(),
		"width", r.Width(),
		"kernel", o.kernel,
		"elapsed", time.Since(start),
	)

	if err := r.WriteFile(output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	logger.Debug("wrote", "path", output, "bytes", bmpx.HeaderSize+r.Size())
	return nil
}

func resize(r *bmpx.Raster, o options) error {
	rows, cols, err := targetSize(r, o)
	if err != nil {
		return err
	}
	var opts []bmpx.ResizeOption
	if o.workers > 0 {
		opts = append(opts, bmpx.WithParallelLimit(o.workers))
	}
	if k, err := bmpx.ParseKernel(o.kernel); err == nil {
		if o.factor > 0 {
			return r.Scale(o.factor, k, opts...)
		}
		return r.ResizeTo(rows, cols, k, opts...)
	}
	filter, ok := filters[strings.ToLower(o.kernel)]
	if !ok {
		return fmt.Errorf("%w: %q", bmpx.ErrUnknownKernel, o.kernel)
	}
	return r.ResizeFilter(rows, cols, filter, opts...)
}

// targetSize resolves the output dimensions from the flags.
func targetSize(r *bmpx.Raster, o options) (rows, cols int, err error) {
	h, w := float64(r.Height()), float64(r.Width())
	switch {
	case o.factor > 0 && (o.rows != 0 || o.cols != 0):
		return 0, 0, errors.New("--factor cannot be combined with --rows or --cols")
	case o.factor > 0:
		return int(math.Round(h * o.factor)), int(math.Round(w * o.factor)), nil
	case o.rows < 0 || o.cols < 0:
		return 0, 0, fmt.Errorf("%w: %dx%d", bmpx.ErrInvalidDimensions, o.rows, o.cols)
	case o.rows == 0 && o.cols == 0:
		return 0, 0, errors.New("one of --factor, --rows or --cols is required")
	case o.rows == 0:
		return max(1, int(math.Round(float64(o.cols)*h/w))), o.cols, nil
	case o.cols == 0:
		return o.rows, max(1, int(math.Round(float64(o.rows)*w/h))), nil
	}
	return o.rows, o.cols, nil
}
