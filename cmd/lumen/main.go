// lumen renders a scene with a recursive path tracer and writes it out as a
// plain-text PPM image.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"lumen/camera"
	"lumen/render"
	"lumen/scene"
	"lumen/scenefile"
	"lumen/scenes"

	"contrib.go.opencensus.io/exporter/stackdriver"
	cloudtrace "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	"github.com/golang/glog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/term"
)

var (
	outputFile = flag.String("output-file", "output.ppm", "Output PPM image.")
	sceneName  = flag.String("scene", "basic", "Built-in scene to render.  One of: "+strings.Join(scenes.Names(), ", ")+".")
	sceneFile  = flag.String("scene-file", "", "JSON scene file to render instead of a built-in scene.")

	width    = flag.Int("width", 0, "Override the scene's image width.")
	height   = flag.Int("height", 0, "Override the scene's image height.")
	fov      = flag.Float64("fov", 0, "Override the scene's horizontal field of view, in degrees.")
	samples  = flag.Int("samples", 0, "Override the scene's camera rays per pixel.")
	maxDepth = flag.Int("max-depth", 0, "Override the scene's maximum recursion depth.")

	workers  = flag.Int("workers", 0, "Rows to render concurrently.  Zero means one per CPU.")
	seed     = flag.Int64("seed", 1, "Random seed.  Renders are repeatable for a fixed seed.")
	useIndex = flag.Bool("use-index", true, "Build a k-d tree over bounded geometry before rendering?")

	monitoring           = flag.Bool("monitoring", false, "Enable monitoring?")
	monitoringProject    = flag.String("monitoring-project", "", "Override project used for monitoring integration.  If not specified, the project associated with Application Default Credentials is used.")
	monitoringTraceRatio = flag.Float64("monitoring-trace-ratio", 1.0, "What ratio of traces should be exported?")

	cpuprofile = flag.String("cpu-profile", "", "write cpu profile to `file`")
)

func main() {
	flag.Parse()

	glog.CopyStandardLogTo("INFO")

	glog.Infof("flags:")
	glog.Infof("output-file: %v", *outputFile)
	glog.Infof("scene: %v", *sceneName)
	glog.Infof("scene-file: %v", *sceneFile)
	glog.Infof("width: %v", *width)
	glog.Infof("height: %v", *height)
	glog.Infof("fov: %v", *fov)
	glog.Infof("samples: %v", *samples)
	glog.Infof("max-depth: %v", *maxDepth)
	glog.Infof("workers: %v", *workers)
	glog.Infof("seed: %v", *seed)
	glog.Infof("use-index: %v", *useIndex)
	glog.Infof("monitoring: %v", *monitoring)
	glog.Infof("monitoring-project: %v", *monitoringProject)
	glog.Infof("monitoring-trace-ratio: %v", *monitoringTraceRatio)
	glog.Infof("cpu-profile: %v", *cpuprofile)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			glog.Exitf("Could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			glog.Exitf("Could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := render.RegisterViews(); err != nil {
		glog.Exitf("Failed to register render views: %v", err)
	}

	if *monitoring {
		traceOpts := []cloudtrace.Option{}
		if *monitoringProject != "" {
			traceOpts = append(traceOpts, cloudtrace.WithProjectID(*monitoringProject))
		}

		_, traceShutdown, err := cloudtrace.InstallNewPipeline(traceOpts, sdktrace.WithSampler(sdktrace.TraceIDRatioBased(*monitoringTraceRatio)))
		if err != nil {
			glog.Exitf("Failed to install Cloud Trace OpenTelemetry trace pipeline: %v", err)
		}
		defer traceShutdown()

		exporter, err := stackdriver.NewExporter(stackdriver.Options{
			ProjectID:         *monitoringProject,
			MetricPrefix:      "lumen",
			ReportingInterval: 60 * time.Second,
		})
		if err != nil {
			glog.Exitf("Failed to create Stackdriver metrics exporter: %v", err)
		}
		if err := exporter.StartMetricsExporter(); err != nil {
			glog.Exitf("Failed to start Stackdriver metrics exporter: %v", err)
		}
		defer exporter.Flush()
		defer exporter.StopMetricsExporter()
	}

	err := do(ctx)
	glog.Flush()
	if err != nil {
		// Exitf skips deferred calls, so stop the profile by hand.
		if *cpuprofile != "" {
			pprof.StopCPUProfile()
		}
		glog.Exitf("Error: %v", err)
	}
}

func do(ctx context.Context) error {
	s, cam, name, err := loadScene()
	if err != nil {
		return err
	}

	applyOverrides(s, cam)

	if *useIndex {
		start := time.Now()
		s.Crush()
		glog.Infof("Built geometry index in %v", time.Since(start))
	}

	// Check that the output file doesn't exist, to avoid blowing away a
	// finished render.
	if _, err := os.Stat(*outputFile); err == nil {
		return fmt.Errorf("output file %s exists", *outputFile)
	}

	out, err := os.Create(*outputFile)
	if err != nil {
		return fmt.Errorf("while opening output file: %w", err)
	}
	defer out.Close()

	options := &render.Options{
		Workers:   *workers,
		Seed:      *seed,
		SceneName: name,
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		options.Progress = func(cur, tot int) {
			fmt.Fprintf(os.Stderr, "\r%d/%d %d%%", cur, tot, 100*cur/tot)
		}
	}

	glog.Infof("Rendering %s at %dx%d, %d samples/pixel", name, s.Width, s.Height, s.Samples)
	start := time.Now()
	err = render.RenderScene(ctx, s, cam, options, out)
	if options.Progress != nil {
		fmt.Fprintf(os.Stderr, "\n")
	}
	if err != nil {
		return fmt.Errorf("while rendering %s: %w", name, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("while closing output file: %w", err)
	}

	glog.Infof("Wrote %s in %v", *outputFile, time.Since(start))
	return nil
}

func loadScene() (*scene.Scene, *camera.PinholeCamera, string, error) {
	if *sceneFile != "" {
		s, cam, err := scenefile.LoadScene(*sceneFile)
		if err != nil {
			return nil, nil, "", fmt.Errorf("while loading scene: %w", err)
		}
		return s, cam, *sceneFile, nil
	}

	build, err := scenes.Lookup(*sceneName)
	if err != nil {
		return nil, nil, "", err
	}
	s, cam := build()
	return s, cam, *sceneName, nil
}

// applyOverrides lets flags that were set replace the scene's own settings.
func applyOverrides(s *scene.Scene, cam *camera.PinholeCamera) {
	if *width > 0 {
		s.Width = *width
	}
	if *height > 0 {
		s.Height = *height
	}
	if *fov > 0 {
		s.FOV = *fov
		cam.FOV = *fov
	}
	if *samples > 0 {
		s.Samples = *samples
	}
	if *maxDepth > 0 {
		s.MaxDepth = *maxDepth
	}
}
