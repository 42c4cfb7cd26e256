// Package chart renders price history charts.
package chart

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/folio"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Render writes a PNG line chart of closes, oldest first, to w.
// The x axis counts trading sessions back from the most recent one.
func Render(w io.Writer, title string, closes []float64) error {
	if len(closes) < 2 {
		return fmt.Errorf("%w: need at least 2 closes, got %d", folio.ErrInvalidArgument, len(closes))
	}

	xValues := make([]float64, len(closes))
	for i := range closes {
		xValues[i] = float64(i - len(closes) + 1)
	}

	closeSeries := chart.ContinuousSeries{
		Name: "Close",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2,
		},
		XValues: xValues,
		YValues: closes,
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name: "sessions",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{closeSeries},
	}

	// render in memory: a failed render must not leave a partial image in w.
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("%w: cannot write chart: %v", folio.ErrIO, err)
	}
	return nil
}
