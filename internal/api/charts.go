package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Alecbossard/PathPlanning/internal/units"
)

// speedChart renders an interactive speed-vs-distance chart (HTML) for a
// freshly computed trajectory using go-echarts. This is a quick-look
// debugging surface; the real renderer consumes the JSON endpoints.
func (s *Server) speedChart(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.computeTrajectory(w, r)
	if !ok {
		return
	}

	xs := make([]string, len(rec.Points))
	velocity := make([]opts.LineData, len(rec.Points))
	ceiling := make([]opts.LineData, len(rec.Points))
	for i, p := range rec.Points {
		xs[i] = fmt.Sprintf("%.0f", p.Distance)
		velocity[i] = opts.LineData{Value: units.ConvertSpeed(p.Velocity, s.units)}
		ceiling[i] = opts.LineData{Value: units.ConvertSpeed(p.MaxSpeed, s.units)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Speed Profile", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Speed Profile",
			Subtitle: fmt.Sprintf("optimizer=%s lap=%.2fs length=%.0fm", rec.Optimizer, rec.Metadata.LapTime, rec.Metadata.TotalLength),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distance (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("Speed (%s)", s.units)}),
	)
	line.SetXAxis(xs)
	line.AddSeries("velocity", velocity)
	line.AddSeries("cornering ceiling", ceiling)

	renderChart(w, line)
}

// mapChart renders the trajectory in plan view as an interactive scatter
// chart, coloured by solved speed.
func (s *Server) mapChart(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.computeTrajectory(w, r)
	if !ok {
		return
	}

	data := make([]opts.ScatterData, len(rec.Points))
	var maxSpeed float64
	for i, p := range rec.Points {
		data[i] = opts.ScatterData{Value: []interface{}{p.X, p.Y, p.Velocity}}
		if p.Velocity > maxSpeed {
			maxSpeed = p.Velocity
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Trajectory Map", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Trajectory",
			Subtitle: fmt.Sprintf("optimizer=%s samples=%d", rec.Optimizer, len(rec.Points)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y (m)"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxSpeed),
			InRange:    &opts.VisualMapInRange{Color: []string{"#313695", "#74add1", "#fee090", "#f46d43", "#a50026"}},
		}),
	)
	scatter.AddSeries("trajectory", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	renderChart(w, scatter)
}

// renderable matches any go-echarts chart.
type renderable interface {
	Render(w io.Writer) error
}

func renderChart(w http.ResponseWriter, c renderable) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
