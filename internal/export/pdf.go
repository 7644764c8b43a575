// Package export renders project drawings to PDF, one page per frame of
// the morph.
package export

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/rectalogic/terp/internal/mesh"
	"github.com/rectalogic/terp/internal/state"
)

const margin = 10 // mm

var ErrNothingToExport = errors.New("no drawings to export")

// FrameTimes returns n progress values spread evenly over [0,1].
func FrameTimes(n int) []float32 {
	if n <= 1 {
		return []float32{0}
	}
	ts := make([]float32, n)
	for i := range ts {
		ts[i] = float32(i) / float32(n-1)
	}
	return ts
}

// PDF writes one A4 page per progress value in ts. Every page uses the same
// scale so frames line up when flipped through.
func PDF(w io.Writer, drawings []state.Drawing, ts []float32) error {
	bounds, ok := state.Bounds(drawings)
	if !ok || len(ts) == 0 {
		return ErrNothingToExport
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("terp", true)
	pdf.SetCreator("terp", true)
	pdf.SetCreationDate(time.Unix(0, 0).UTC())

	pageW, pageH := pdf.GetPageSize()
	scale := min((pageW-2*margin)/float64(max(bounds.Width(), 1)), (pageH-2*margin)/float64(max(bounds.Height(), 1)))
	place := func(p mesh.Vec3) (float64, float64) {
		return margin + float64(p.X-bounds.Min.X)*scale, margin + float64(p.Y-bounds.Min.Y)*scale
	}

	ordered := slices.Clone(drawings)
	slices.SortStableFunc(ordered, func(a, b state.Drawing) int {
		switch {
		case a.Layer < b.Layer:
			return -1
		case a.Layer > b.Layer:
			return 1
		}
		return 0
	})

	for _, t := range ts {
		pdf.AddPage()
		for i, d := range ordered {
			pm, err := mesh.BuildInterpolated(d.SourcePoints.Positions(), d.TargetPoints.Positions())
			if err != nil {
				return fmt.Errorf("drawing %d: %w", i, err)
			}
			points, err := mesh.PointsFromPositions(pm.Interpolate(t))
			if err != nil {
				return fmt.Errorf("drawing %d: %w", i, err)
			}
			a := state.BlendSettings{Source: d.SourceAppearance, Target: d.TargetAppearance}.Evaluate(t)
			c := a.Color.NRGBA()
			pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
			pdf.SetAlpha(float64(c.A)/255, "Normal")
			for _, p := range points {
				x, y := place(p)
				pdf.Circle(x, y, float64(a.Radius)*scale, "F")
			}
		}
	}
	return pdf.Output(w)
}
