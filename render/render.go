// Package render turns a scene into pixels: it fans camera-ray sampling out
// over the rows of the image, averages the samples, and emits the result in
// row-major order.
package render

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"lumen/camera"
	"lumen/pixmap"
	"lumen/rgb"
	"lumen/scene"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type ProgressFunction func(done, total int)

type Options struct {
	// How many rows render at once.  Zero means one per CPU.
	Workers int

	// Row r samples from a generator seeded with Seed+r, so a render is
	// repeatable for a fixed seed no matter how rows are scheduled.
	Seed int64

	// Called after each row finishes, from a single goroutine.
	Progress ProgressFunction

	// Tags metrics.
	SceneName string
}

type pixelSample struct {
	row, col int
	color    rgb.T
}

// RenderScene renders s through cam and writes it to out as a P3 image.
func RenderScene(ctx context.Context, s *scene.Scene, cam *camera.PinholeCamera, options *Options, out io.Writer) error {
	tracer := otel.Tracer("lumen/render")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "RenderScene")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("width", int64(s.Width)),
		attribute.Int64("height", int64(s.Height)),
		attribute.Int64("samples", int64(s.Samples)),
		attribute.Int64("max-depth", int64(s.MaxDepth)),
	)

	img, err := Render(ctx, s, cam, options)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("while rendering: %w", err)
	}

	_, writeSpan := tracer.Start(ctx, "WritePPM")
	err = pixmap.WritePPM(img, out)
	writeSpan.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("while writing image: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Render computes every pixel of s.  Rows are independent units of work;
// nothing is shared between them except the read-only scene.
func Render(ctx context.Context, s *scene.Scene, cam *camera.PinholeCamera, options *Options) (*pixmap.Image, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("bad image size %dx%d", s.Width, s.Height)
	}
	if s.Samples <= 0 {
		return nil, fmt.Errorf("bad sample count %d", s.Samples)
	}

	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	glog.V(1).Infof("Rendering %dx%d, %d samples/pixel, max depth %d, %d workers", s.Width, s.Height, s.Samples, s.MaxDepth, workers)
	start := time.Now()

	ctx = withSceneTag(ctx, options.SceneName)

	rows := make(chan []pixelSample, s.Height)

	// The collector owns everything below until collectorDone closes.
	collected := make([]pixelSample, 0, s.Width*s.Height)
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		done := 0
		for row := range rows {
			collected = append(collected, row...)
			done++
			recordRow(ctx, len(row)*s.Samples)
			if options.Progress != nil {
				options.Progress(done, s.Height)
			}
		}
	}()

	eg, egCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))

	var acquireErr error
	for r := 0; r < s.Height; r++ {
		r := r // https://golang.org/doc/faq#closures_and_goroutines

		if err := sem.Acquire(egCtx, 1); err != nil {
			acquireErr = fmt.Errorf("while acquiring worker semaphore: %w", err)
			break
		}

		eg.Go(func() error {
			defer sem.Release(1)
			if err := egCtx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(options.Seed + int64(r)))
			rows <- renderRow(s, cam, r, rng)
			return nil
		})
	}

	waitErr := eg.Wait()
	close(rows)
	<-collectorDone

	if waitErr != nil {
		return nil, fmt.Errorf("while waiting for row workers: %w", waitErr)
	}
	if acquireErr != nil {
		return nil, acquireErr
	}

	// Rows finished in whatever order the scheduler chose.
	sort.Slice(collected, func(i, j int) bool {
		if collected[i].row != collected[j].row {
			return collected[i].row < collected[j].row
		}
		return collected[i].col < collected[j].col
	})

	img := &pixmap.Image{}
	img.Resize(s.Height, s.Width)
	for i, px := range collected {
		img.Pixels[i] = rgb.Quantize(px.color)
	}

	elapsed := time.Since(start)
	recordRender(ctx, elapsed)
	glog.V(1).Infof("Rendered %d pixels in %v", len(collected), elapsed)

	return img, nil
}

func renderRow(s *scene.Scene, cam *camera.PinholeCamera, row int, rng *rand.Rand) []pixelSample {
	out := make([]pixelSample, s.Width)
	for col := 0; col < s.Width; col++ {
		out[col] = pixelSample{
			row:   row,
			col:   col,
			color: samplePixel(s, cam, col, row, rng),
		}
	}
	return out
}

// samplePixel averages Samples jittered camera rays through one pixel.
func samplePixel(s *scene.Scene, cam *camera.PinholeCamera, col, row int, rng *rand.Rand) rgb.T {
	accum := rgb.Black
	for i := 0; i < s.Samples; i++ {
		r := cam.PixelToRay(col, row, s.Width, s.Height, rng)
		accum = rgb.AddCC(accum, s.Radiance(r, 0, rng))
	}
	return rgb.DivCS(accum, float64(s.Samples))
}
