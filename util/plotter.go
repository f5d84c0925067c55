package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHearingChart renders an HTML bar chart with one bar per day.
func RenderHearingChart(w io.Writer, title, subtitle string, days []string, counts []int) error {
	if len(days) != len(counts) {
		return fmt.Errorf("chart has %d days but %d counts", len(days), len(counts))
	}

	bars := make([]opts.BarData, 0, len(counts))
	for _, n := range counts {
		bars = append(bars, opts.BarData{Value: n})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
	)

	// Day keys are shown as-is on the x axis.
	bar.SetXAxis(days).AddSeries("Hearings", bars)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
