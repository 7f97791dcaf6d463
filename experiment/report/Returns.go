// Package report renders the data tracked in experiments as charts
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is a named sequence of values, one per episode
type Series struct {
	Name   string
	Values []float64
}

// Returns renders an HTML line chart of the episodic returns of each
// series to w
func Returns(w io.Writer, title string, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("returns: no series to render")
	}

	episodes := 0
	for _, s := range series {
		if len(s.Values) > episodes {
			episodes = len(s.Values)
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Return"}),
	)

	x := make([]string, episodes)
	for i := range x {
		x[i] = fmt.Sprintf("%d", i+1)
	}
	line.SetXAxis(x)

	for _, s := range series {
		items := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("returns: %w", err)
	}
	return nil
}
