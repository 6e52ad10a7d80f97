// Package vecraster renders resolved regions to an image, as a quick
// preview of what the mesh pipeline will triangulate. It wraps
// rasterx, filling each region's outer contour and punching out its
// holes with the non-zero winding rule (holes run clockwise).
package vecraster

import (
	"image"
	"image/color"

	"github.com/benoitkugler/vecmesh/vecgeom"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// margin around the drawing, in pixels
const margin = 2

// Render rasterizes the regions into a width x height RGBA image.
// The drawing is uniformly scaled to fit, y pointing up. Regions
// without a color are drawn black.
func Render(areas []*vecgeom.PolyArea, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if len(areas) == 0 {
		return img
	}

	bounds := vecgeom.EmptyRect()
	for _, area := range areas {
		for _, p := range area.Points.Pos {
			bounds.AddPoint(p)
		}
	}
	if bounds.IsEmpty() {
		return img
	}
	sx := (float64(width) - 2*margin) / (bounds.MaxX - bounds.MinX)
	sy := (float64(height) - 2*margin) / (bounds.MaxY - bounds.MinY)
	scale := sx
	if sy < scale {
		scale = sy
	}
	toPixel := func(p vecgeom.Point) fixed.Point26_6 {
		x := margin + (p.X-bounds.MinX)*scale
		y := float64(height) - margin - (p.Y-bounds.MinY)*scale
		return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	}

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	filler := rasterx.NewFiller(width, height, scanner)
	filler.SetWinding(true)

	for _, area := range areas {
		c := color.RGBA{A: 0xff}
		if area.HasColor {
			c = area.Color
		}
		scanner.SetColor(c)
		addContour(filler, area.Poly, area.Points, toPixel)
		for _, hole := range area.Holes {
			addContour(filler, hole, area.Points, toPixel)
		}
		filler.Draw()
		filler.Clear()
	}
	return img
}

func addContour(filler *rasterx.Filler, contour []int, pts *vecgeom.Points, toPixel func(vecgeom.Point) fixed.Point26_6) {
	if len(contour) < 3 {
		return
	}
	filler.Start(toPixel(pts.Pos[contour[0]]))
	for _, v := range contour[1:] {
		filler.Line(toPixel(pts.Pos[v]))
	}
	filler.Stop(true)
}
