package report

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"linkstat/internal/models"
)

var errNotEnoughSamples = errors.New("at least two successful samples are needed for a chart")

type phaseSeries struct {
	name  string
	value func(models.Metrics) float64
}

var phases = []phaseSeries{
	{name: "Name lookup", value: func(m models.Metrics) float64 { return m.NameLookupTime }},
	{name: "Connect", value: func(m models.Metrics) float64 { return m.ConnectTime }},
	{name: "Start transfer", value: func(m models.Metrics) float64 { return m.StartTransferTime }},
	{name: "Total", value: func(m models.Metrics) float64 { return m.TotalTime }},
}

func (g *Generator) generateTimingChart(outputDir string, samples []models.Sample) error {
	var iterations []float64
	var ok []models.Metrics
	for _, s := range samples {
		if !s.Success {
			continue
		}
		iterations = append(iterations, float64(s.Iteration+1))
		ok = append(ok, s.Metrics)
	}
	if len(ok) < 2 {
		return errNotEnoughSamples
	}

	maxValue := 0.0
	var series []chart.Series
	for i, phase := range phases {
		values := make([]float64, len(ok))
		for j, m := range ok {
			values[j] = phase.value(m)
			if values[j] > maxValue {
				maxValue = values[j]
			}
		}
		series = append(series, chart.ContinuousSeries{
			Name: phase.name,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
			},
			XValues: iterations,
			YValues: values,
		})
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	graph := chart.Chart{
		Title: "Probe Timings",
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Sample",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
		},
		YAxis: chart.YAxis{
			Name: "Seconds",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: maxValue * 1.1,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	filename := filepath.Join(outputDir, "timings.png")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}
