package profile

import (
	"fmt"
	"io"
	"strconv"
)

// csvHeader is the fixed trajectory export schema.
const csvHeader = "x,y,z,yaw,velocity,curvature,acceleration,dist"

// WriteCSV exports a trajectory as CSV, one row per sample with 4
// decimal-place fixed formatting.
func WriteCSV(w io.Writer, pts []PathPoint) error {
	if _, err := fmt.Fprintln(w, csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range pts {
		row := formatRow(&pts[i])
		if _, err := fmt.Fprintln(w, row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}
	return nil
}

func formatRow(p *PathPoint) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	return f(p.X) + "," + f(p.Y) + "," + f(p.Z) + "," + f(p.Yaw) + "," +
		f(p.Velocity) + "," + f(p.Curvature) + "," + f(p.Acceleration) + "," + f(p.Distance)
}
