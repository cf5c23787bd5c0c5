package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Trajectory is a named sequence of planar positions
type Trajectory struct {
	// Name is trajectory legend name
	Name string
	// Data holds x in its first and y in its second column
	Data *mat.Dense
}

var (
	colors = []color.Color{
		color.RGBA{R: 255, B: 128, A: 255},
		color.RGBA{G: 200, A: 255},
		color.RGBA{R: 169, G: 169, B: 169, A: 255},
		color.RGBA{B: 255, A: 255},
	}
	shapes = []draw.GlyphDrawer{
		draw.PyramidGlyph{},
		draw.CircleGlyph{},
		draw.CrossGlyph{},
		draw.SquareGlyph{},
	}
)

// NewTrajectoryPlot creates new plot of the supplied trajectories and returns it.
// It returns error if the plot fails to be created. This can be due to either of the following conditions:
// * no trajectory is supplied
// * either of the trajectories is nil or does not have at least 2 columns
// * gonum plot fails to be created
func NewTrajectoryPlot(title string, trajs ...Trajectory) (*plot.Plot, error) {
	if len(trajs) == 0 {
		return nil, fmt.Errorf("invalid data supplied")
	}

	for _, t := range trajs {
		if t.Data == nil {
			return nil, fmt.Errorf("invalid data supplied: %s", t.Name)
		}

		if _, c := t.Data.Dims(); c < 2 {
			return nil, fmt.Errorf("invalid data dimensions: %s", t.Name)
		}
	}

	p := plot.New()

	p.Title.Text = title
	p.X.Label.Text = "X [m]"
	p.Y.Label.Text = "Y [m]"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	for i, t := range trajs {
		scatter, err := plotter.NewScatter(makePoints(t.Data))
		if err != nil {
			return nil, fmt.Errorf("failed to create scatter: %v", err)
		}
		scatter.GlyphStyle.Color = colors[i%len(colors)]
		scatter.Shape = shapes[i%len(shapes)]
		scatter.GlyphStyle.Radius = vg.Points(2)

		p.Add(scatter)
		p.Legend.Add(t.Name, scatter)
	}

	return p, nil
}

func makePoints(m *mat.Dense) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}
