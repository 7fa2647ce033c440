// Command crtsim renders an image as it would look on a CRT display.
//
// Usage:
//
//	crtsim [flags] input output
//
// The output format is chosen from the output file extension.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/crt"
	"github.com/gogpu/crt/internal/image"
)

func main() {
	log.SetFlags(0)

	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("crtsim: %v", err)
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatalf("crtsim: %v", err)
	}
}

// config is the parsed command line.
type config struct {
	params   crt.Params
	workers  int
	debugDir string
	maskPath string
	verbose  bool
	input    string
	output   string
}

func parseArgs(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{params: crt.DefaultParams()}
	p := &cfg.params

	fs := flag.NewFlagSet("crtsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintln(fs.Output(), "usage: crtsim [flags] input output")
		fs.PrintDefaults()
	}

	cutoff := triple(p.Cutoff)
	fs.Var(&cutoff, "cutoff", "signal bandwidth in Hz, one value or r,g,b")
	fs.Float64Var(&p.ActiveLineTime, "line-time", p.ActiveLineTime, "active line time in seconds")
	fs.IntVar(&p.OutputWidth, "width", p.OutputWidth, "output width")
	fs.IntVar(&p.OutputHeight, "height", p.OutputHeight, "output height")
	fs.Float64Var(&p.MinSpotSize, "min-spot", p.MinSpotSize, "black spot width relative to -max-spot")
	fs.Float64Var(&p.MaxSpotSize, "max-spot", p.MaxSpotSize, "white spot width in scanlines")
	fs.Float64Var(&p.BlurSigma, "blur-sigma", p.BlurSigma, "bloom sigma as a fraction of the output height")
	fs.Float64Var(&p.BlurAmount, "blur-amount", p.BlurAmount, "bloom strength, 0 disables bloom")
	fs.IntVar(&p.Samples, "samples", p.Samples, "band-limited samples per scanline")
	fs.Float64Var(&p.OverscanHorizontal, "overscan-h", p.OverscanHorizontal, "horizontal overscan fraction")
	fs.Float64Var(&p.OverscanVertical, "overscan-v", p.OverscanVertical, "vertical overscan fraction")
	fs.Float64Var(&p.Gamma, "gamma", p.Gamma, "CRT gamma")
	fs.IntVar(&p.BoxIterations, "box-iterations", p.BoxIterations, "pass pairs for -bloom box")
	fs.Float64Var(&p.MaskAmount, "mask-amount", p.MaskAmount, "phosphor mask strength, 0 disables the mask")
	fs.Float64Var(&p.MaskDark, "mask-dark", p.MaskDark, "transmission of unlit phosphors")
	fs.IntVar(&p.MaskStagger, "mask-stagger", p.MaskStagger, "mask row stagger, 0 disables")

	space := fs.String("space", p.WorkingSpace.String(), "working space: raw, srgb, gamma22, yiq")
	scan := fs.String("scan", p.Scan.String(), "scan mode: blend, progressive")
	shape := fs.String("spot", p.SpotShape.String(), "spot shape: cubic, cosine, quadratic")
	precision := fs.String("precision", p.Precision.String(), "spot precision: full, half")
	bloom := fs.String("bloom", p.Bloom.String(), "bloom method: gaussian, box, fft")
	maskType := fs.String("mask", p.MaskType.String(), "phosphor mask: mg, slot, rycb")

	fs.IntVar(&cfg.workers, "workers", 0, "worker goroutines, 0 uses GOMAXPROCS")
	fs.StringVar(&cfg.debugDir, "debug-dir", "", "write intermediate stages to this directory")
	fs.StringVar(&cfg.maskPath, "mask-image", "", "mask image replacing -mask")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return nil, fmt.Errorf("want input and output paths, got %d arguments", fs.NArg())
	}
	cfg.input, cfg.output = fs.Arg(0), fs.Arg(1)
	p.Cutoff = cutoff

	var err error
	if p.WorkingSpace, err = parseEnum("space", *space,
		crt.WorkingSpaceRaw, crt.WorkingSpaceSRGB, crt.WorkingSpaceGamma22, crt.WorkingSpaceYIQ); err != nil {
		return nil, err
	}
	if p.Scan, err = parseEnum("scan", *scan, crt.ScanBlend, crt.ScanProgressive); err != nil {
		return nil, err
	}
	if p.SpotShape, err = parseEnum("spot", *shape, crt.SpotCubic, crt.SpotCosine, crt.SpotQuadratic); err != nil {
		return nil, err
	}
	if p.Precision, err = parseEnum("precision", *precision, crt.PrecisionFull, crt.PrecisionHalf); err != nil {
		return nil, err
	}
	if p.Bloom, err = parseEnum("bloom", *bloom, crt.BloomGaussian, crt.BloomBox, crt.BloomFFT); err != nil {
		return nil, err
	}
	if p.MaskType, err = parseEnum("mask", *maskType, crt.MaskMG, crt.MaskSlot, crt.MaskRYCB); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := image.FormatFromPath(cfg.output); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config, stdout io.Writer) error {
	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	crt.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts := []crt.Option{crt.WithWorkers(cfg.workers)}
	if cfg.debugDir != "" {
		if err := os.MkdirAll(cfg.debugDir, 0o750); err != nil {
			return fmt.Errorf("debug dir: %w", err)
		}
		opts = append(opts, crt.WithDebugDir(cfg.debugDir))
	}
	if cfg.maskPath != "" {
		m, err := image.LoadStdImage(cfg.maskPath)
		if err != nil {
			return fmt.Errorf("mask: %w", err)
		}
		opts = append(opts, crt.WithMask(m))
	}

	src, err := image.LoadImage(cfg.input)
	if err != nil {
		return err
	}

	r, err := crt.NewRenderer(cfg.params, opts...)
	if err != nil {
		return err
	}
	defer r.Close()

	start := time.Now()
	out, err := r.Render(src)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := out.SaveImage(cfg.output); err != nil {
		return err
	}

	printer := message.NewPrinter(language.English)
	_, err = printer.Fprintf(stdout, "%s: %d x %d -> %d x %d (%d pixels) in %v\n",
		cfg.output, src.Width(), src.Height(), out.Width(), out.Height(),
		out.Width()*out.Height(), elapsed.Round(time.Millisecond))
	return err
}

// parseEnum returns the value whose String matches s, ignoring case.
func parseEnum[T fmt.Stringer](name, s string, values ...T) (T, error) {
	for _, v := range values {
		if strings.EqualFold(v.String(), s) {
			return v, nil
		}
	}
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	var zero T
	return zero, fmt.Errorf("invalid -%s %q, want one of %s", name, s, strings.Join(names, ", "))
}

// triple is a flag.Value holding one number per channel. A single value
// sets all three.
type triple [3]float64

func (t *triple) String() string {
	if t == nil {
		return ""
	}
	if t[0] == t[1] && t[1] == t[2] {
		return strconv.FormatFloat(t[0], 'g', -1, 64)
	}
	parts := make([]string, 3)
	for i, v := range t {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (t *triple) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 1 && len(parts) != 3 {
		return fmt.Errorf("want 1 or 3 comma separated values, got %d", len(parts))
	}
	var vals [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return err
		}
		vals[i] = v
	}
	if len(parts) == 1 {
		vals[1], vals[2] = vals[0], vals[0]
	}
	*t = vals
	return nil
}
