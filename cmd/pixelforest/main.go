package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tavianator/pixelforest/pkg/config"
	"github.com/tavianator/pixelforest/pkg/controlplane"
	"github.com/tavianator/pixelforest/pkg/generate"
	"github.com/tavianator/pixelforest/pkg/observability"
)

var version = "0.1.0"

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version and exit")
		showHelp    = flag.Bool("help", false, "show help and exit")

		width      = flag.Int("width", 0, "canvas width in pixels (overrides config/env)")
		height     = flag.Int("height", 0, "canvas height in pixels (overrides config/env)")
		bits       = flag.Int("bits", 0, "color bit depth to enumerate, 1-24 (overrides config/env)")
		order      = flag.String("order", "", "color order: hilbert, morton, hue, random")
		frontier   = flag.String("frontier", "", "placement policy: image, min, mean")
		colorSpace = flag.String("colorspace", "", "placement distance space: rgb, lab, luv, oklab")
		striped    = flag.Bool("striped", true, "reorder the sequence to reduce banding")
		target     = flag.String("target", "", "path to a target image; its pixels become the color source")
		out        = flag.String("out", "out.png", "path to write the generated PNG")

		serve        = flag.Bool("serve", false, "start the control plane alongside generation")
		controlHost  = flag.String("control-host", "", "control plane listen host (overrides config/env)")
		controlPort  = flag.Int("control-port", 0, "control plane listen port (overrides config/env)")
		progressStep = flag.Int("progress-every", 10000, "placements between progress updates, 0 disables")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("pixelforest v%s\n", version)
		os.Exit(0)
	}
	if *showHelp {
		showUsage()
		os.Exit(0)
	}

	cfg := config.LoadFromEnv()

	if *width > 0 {
		cfg.Generate.Width = *width
	}
	if *height > 0 {
		cfg.Generate.Height = *height
	}
	if *bits > 0 {
		cfg.Generate.Bits = *bits
	}
	if *order != "" {
		cfg.Generate.Order = generate.Order(*order)
	}
	if *frontier != "" {
		cfg.Generate.Frontier = generate.FrontierKind(*frontier)
	}
	if *colorSpace != "" {
		cfg.Generate.ColorSpace = generate.ColorSpace(*colorSpace)
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "striped" {
			cfg.Generate.Striped = *striped
		}
	})
	if *serve {
		cfg.ControlPlane.Enabled = true
	}
	if *controlHost != "" {
		cfg.ControlPlane.Host = *controlHost
	}
	if *controlPort > 0 {
		cfg.ControlPlane.Port = *controlPort
	}

	observability.SetGlobalLogger(observability.NewLogger(observability.ParseLogLevel(cfg.Observability.LogLevel), os.Stdout))

	opts := generate.Options{
		Width:         cfg.Generate.Width,
		Height:        cfg.Generate.Height,
		Bits:          cfg.Generate.Bits,
		Order:         cfg.Generate.Order,
		Frontier:      cfg.Generate.Frontier,
		ColorSpace:    cfg.Generate.ColorSpace,
		Striped:       cfg.Generate.Striped,
		X0:            cfg.Generate.X0,
		Y0:            cfg.Generate.Y0,
		ProgressEvery: *progressStep,
	}

	if *target != "" {
		img, err := loadImage(*target)
		if err != nil {
			log.Fatalf("loading target image: %v", err)
		}
		opts.TargetImage = img
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	metrics := observability.NewMetrics()
	progress := make(chan generate.Progress, 1)

	var wg sync.WaitGroup
	var server *controlplane.Server

	if cfg.ControlPlane.Enabled {
		server = controlplane.NewServer(controlplane.Config{
			Host:            cfg.ControlPlane.Host,
			Port:            cfg.ControlPlane.Port,
			RequestTimeout:  cfg.ControlPlane.RequestTimeout,
			ShutdownTimeout: cfg.ControlPlane.ShutdownTimeout,
			Auth:            cfg.ControlPlane.Auth,
			RateLimit:       cfg.ControlPlane.RateLimit,
		}, metrics)

		wg.Add(1)
		go func() {
			defer wg.Done()
			go server.WatchProgress(ctx, progress)
			if err := server.Start(); err != nil {
				log.Printf("control plane error: %v", err)
			}
		}()
	}

	log.Printf("Generating %dx%d canvas (order=%s frontier=%s colorspace=%s)...",
		opts.Width, opts.Height, opts.Order, opts.Frontier, opts.ColorSpace)

	start := time.Now()
	cv, err := generate.Run(ctx, opts, progress)
	close(progress)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}
	metrics.RecordPlacement()
	log.Printf("Generation finished in %s", time.Since(start))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("creating output file: %v", err)
	}
	defer f.Close()

	if err := cv.EncodePNG(f); err != nil {
		log.Fatalf("encoding PNG: %v", err)
	}
	log.Printf("Wrote %s", *out)

	if server != nil {
		log.Println("Generation complete. Control plane still serving; press Ctrl+C to stop.")
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ControlPlane.ShutdownTimeout)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			log.Printf("error stopping control plane: %v", err)
		}
		wg.Wait()
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if img, err := png.Decode(f); err == nil {
		return img, nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("seeking %s: %w", path, err)
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func showUsage() {
	fmt.Println("pixelforest - generate images where every pixel is a unique color")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pixelforest [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -help                 Show this help message")
	fmt.Println("  -version              Show version information")
	fmt.Println("  -width N              Canvas width (default 512)")
	fmt.Println("  -height N             Canvas height (default 512)")
	fmt.Println("  -bits N               Color bit depth to enumerate, 1-24 (default 24)")
	fmt.Println("  -order NAME           hilbert, morton, hue, random (default hilbert)")
	fmt.Println("  -frontier NAME        image, min, mean (default mean)")
	fmt.Println("  -colorspace NAME      rgb, lab, luv, oklab (default oklab)")
	fmt.Println("  -striped              Reorder to reduce banding (default true)")
	fmt.Println("  -target PATH          Target image; its pixels become the color source")
	fmt.Println("  -out PATH             Output PNG path (default out.png)")
	fmt.Println("  -serve                Start the control plane alongside generation")
	fmt.Println("  -control-host HOST    Control plane listen host")
	fmt.Println("  -control-port PORT    Control plane listen port")
	fmt.Println("  -progress-every N     Placements between progress updates (default 10000)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  PIXELFOREST_WIDTH, PIXELFOREST_HEIGHT, PIXELFOREST_BITS")
	fmt.Println("  PIXELFOREST_ORDER, PIXELFOREST_FRONTIER, PIXELFOREST_COLOR_SPACE")
	fmt.Println("  PIXELFOREST_STRIPED, PIXELFOREST_CONTROL_ENABLED")
	fmt.Println("  PIXELFOREST_CONTROL_HOST, PIXELFOREST_CONTROL_PORT")
	fmt.Println("  PIXELFOREST_AUTH_ENABLED, PIXELFOREST_JWT_SECRET")
	fmt.Println("  PIXELFOREST_RATE_LIMIT_ENABLED, PIXELFOREST_LOG_LEVEL")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  pixelforest -bits 16 -order hilbert -out hilbert16.png")
	fmt.Println("  pixelforest -target photo.png -frontier image -out mosaic.png")
	fmt.Println("  pixelforest -serve -control-port 9000 -out out.png")
	fmt.Println()
}
