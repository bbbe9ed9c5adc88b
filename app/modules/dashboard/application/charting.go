package dashboardservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Status colors follow the grid legend: green available, amber pending,
// red confirmed.
var (
	colorAvailable = drawing.Color{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
	colorPending   = drawing.Color{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	colorConfirmed = drawing.Color{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
)

// StatusChart renders the status distribution of the active tournament's
// stakes as a PNG bar chart.
func (s *DashboardServiceImpl) StatusChart(ctx context.Context) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.status_chart")
	defer span.End()

	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	// A degenerate range makes go-chart refuse to render.
	if stats.TotalStakes == 0 {
		return renderNoDataPlaceholder()
	}

	graph := chart.BarChart{
		Title:    "Estacas por status",
		Width:    600,
		Height:   400,
		BarWidth: 80,
		Bars: []chart.Value{
			{
				Value: float64(stats.Available),
				Label: "Disponível",
				Style: chart.Style{FillColor: colorAvailable, StrokeColor: colorAvailable},
			},
			{
				Value: float64(stats.Reserved),
				Label: "Pendente",
				Style: chart.Style{FillColor: colorPending, StrokeColor: colorPending},
			},
			{
				Value: float64(stats.Confirmed),
				Label: "Confirmada",
				Style: chart.Style{FillColor: colorConfirmed, StrokeColor: colorConfirmed},
			},
		},
	}

	var buffer bytes.Buffer
	if err := graph.Render(chart.PNG, &buffer); err != nil {
		return nil, fmt.Errorf("failed to render status chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	graph := chart.Chart{
		Width:  400,
		Height: 200,
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1, 2},
				YValues: []float64{0, 0, 0},
				Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
			},
			chart.AnnotationSeries{
				Annotations: []chart.Value2{
					{XValue: 1, YValue: 0, Label: "Nenhum torneio ativo"},
				},
			},
		},
	}

	var buffer bytes.Buffer
	if err := graph.Render(chart.PNG, &buffer); err != nil {
		return nil, fmt.Errorf("failed to render placeholder chart: %w", err)
	}
	return buffer.Bytes(), nil
}
