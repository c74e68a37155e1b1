package profile

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveSpeedPlot renders velocity and the curvature-limited ceiling against
// lap distance to a PNG file.
func SaveSpeedPlot(pts []PathPoint, path string) error {
	if len(pts) == 0 {
		return fmt.Errorf("no samples to plot")
	}

	p := plot.New()
	p.Title.Text = "Speed Profile"
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Speed (m/s)"

	velocity := make(plotter.XYs, len(pts))
	ceiling := make(plotter.XYs, len(pts))
	for i, s := range pts {
		velocity[i] = plotter.XY{X: s.Distance, Y: s.Velocity}
		ceiling[i] = plotter.XY{X: s.Distance, Y: s.MaxSpeed}
	}

	ceilLine, err := plotter.NewLine(ceiling)
	if err != nil {
		return fmt.Errorf("failed to build ceiling line: %w", err)
	}
	ceilLine.Width = vg.Points(1)
	ceilLine.Color = color.RGBA{R: 180, G: 180, B: 180, A: 255}
	ceilLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(ceilLine)
	p.Legend.Add("cornering ceiling", ceilLine)

	velLine, err := plotter.NewLine(velocity)
	if err != nil {
		return fmt.Errorf("failed to build velocity line: %w", err)
	}
	velLine.Width = vg.Points(1.5)
	velLine.Color = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	p.Add(velLine)
	p.Legend.Add("solved velocity", velLine)

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save speed plot: %w", err)
	}
	return nil
}

// SaveMapPlot renders the trajectory in plan view to a PNG file.
func SaveMapPlot(pts []PathPoint, path string) error {
	if len(pts) == 0 {
		return fmt.Errorf("no samples to plot")
	}

	p := plot.New()
	p.Title.Text = "Trajectory"
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	xy := make(plotter.XYs, len(pts)+1)
	for i, s := range pts {
		xy[i] = plotter.XY{X: s.X, Y: s.Y}
	}
	xy[len(pts)] = xy[0] // close the loop visually

	line, err := plotter.NewLine(xy)
	if err != nil {
		return fmt.Errorf("failed to build trajectory line: %w", err)
	}
	line.Width = vg.Points(1.5)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save trajectory plot: %w", err)
	}
	return nil
}
