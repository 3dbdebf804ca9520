package report

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/aria-lang/logan-kmers/internal/spectrum"
)

const (
	plotWidth  = 10 * vg.Inch
	plotHeight = 4 * vg.Inch
)

func newSpectrumPlot(h spectrum.Histogram, title string) (*plot.Plot, error) {
	if len(h) == 0 {
		return nil, fmt.Errorf("cannot plot an empty histogram")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "K-mer Frequency"
	p.Y.Label.Text = "Count"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	pts := make(plotter.XYs, len(h))
	for i, b := range h {
		pts[i].X = float64(b.Frequency)
		pts[i].Y = float64(b.Count)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	// Counts are at least 1; keep the log axis range strictly positive
	// and non-degenerate.
	p.Y.Min = 0.5
	p.Y.Max *= 2
	return p, nil
}

// WritePlotTo renders the histogram in the given format (svg, png, pdf,
// eps, ...).
func WritePlotTo(w io.Writer, h spectrum.Histogram, title, format string) error {
	p, err := newSpectrumPlot(h, title)
	if err != nil {
		return err
	}
	writer, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return err
	}
	_, err = writer.WriteTo(w)
	return err
}

// WritePlot renders the histogram to path, choosing the format from the
// file extension.
func WritePlot(path string, h spectrum.Histogram, title string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "svg"
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating plot")
	}
	if err := WritePlotTo(f, h, title, format); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing plot %s", path)
	}
	return f.Close()
}
