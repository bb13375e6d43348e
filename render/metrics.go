package render

import (
	"context"
	"time"

	"github.com/golang/glog"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	sceneKey = tag.MustNewKey("scene")

	rowsRendered  = stats.Int64("lumen/rows_rendered", "Image rows finished", stats.UnitDimensionless)
	samplesTraced = stats.Int64("lumen/samples_traced", "Camera rays traced", stats.UnitDimensionless)
	renderLatency = stats.Float64("lumen/render_latency", "Wall time to compute all pixels of an image", stats.UnitMilliseconds)

	RowsRenderedView = &view.View{
		Name:        "lumen/rows_rendered",
		Description: "Count of image rows that have been rendered",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     rowsRendered,
		Aggregation: view.Count(),
	}

	SamplesTracedView = &view.View{
		Name:        "lumen/samples_traced",
		Description: "Total camera rays traced",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     samplesTraced,
		Aggregation: view.Sum(),
	}

	RenderLatencyView = &view.View{
		Name:        "lumen/render_latency",
		Description: "Distribution of render wall times",
		TagKeys:     []tag.Key{sceneKey},
		Measure:     renderLatency,
		Aggregation: view.Distribution(100, 1000, 10000, 60000, 600000, 3600000),
	}
)

// RegisterViews makes the render metrics visible to exporters.
func RegisterViews() error {
	return view.Register(RowsRenderedView, SamplesTracedView, RenderLatencyView)
}

func withSceneTag(ctx context.Context, name string) context.Context {
	if name == "" {
		name = "unnamed"
	}
	tagged, err := tag.New(ctx, tag.Insert(sceneKey, name))
	if err != nil {
		glog.Warningf("Error while tagging render context: %v", err)
		return ctx
	}
	return tagged
}

func recordRow(ctx context.Context, samples int) {
	stats.Record(ctx, rowsRendered.M(1), samplesTraced.M(int64(samples)))
}

func recordRender(ctx context.Context, elapsed time.Duration) {
	stats.Record(ctx, renderLatency.M(float64(elapsed)/float64(time.Millisecond)))
}
