/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"mapmeasure/internal/domain"
	"mapmeasure/internal/geom"
	"mapmeasure/internal/storage"
)

// SVGOptions controls the session scene export.
// The coordinate system matches the model (map pixels). A viewBox is provided to scale.
type SVGOptions struct {
	Width       float64 // viewBox width in map pixels; 0 picks a default
	Height      float64 // viewBox height in map pixels; 0 picks a default
	IncludeGrid bool
	ShowLabels  bool
}

// ExportSessionSVG renders the session scene (active grid, completed
// measurements and committed shapes) into a single SVG file at outPath.
// A relative outPath resolves under the session's exports folder.
func ExportSessionSVG(sh *storage.SessionHandle, outPath string, opt SVGOptions) error {
	if sh == nil {
		return fmt.Errorf("session handle is nil")
	}
	doc := sh.Doc

	w := opt.Width
	if w <= 0 {
		w = 1000
	}
	h := opt.Height
	if h <= 0 {
		h = 800
	}

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n", w, h, w, h)
	// Background white
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"#ffffff\"/>\n", w, h)

	if opt.IncludeGrid {
		if g := activeGrid(doc.Grids); g != nil && g.Visible {
			writeGrid(wf, g, w, h)
		}
	}

	lineCol := svgColor(doc.Settings.MeasurementLineColor)
	lineW := doc.Settings.MeasurementLineThickness
	if lineW <= 0 {
		lineW = 1
	}
	for _, m := range doc.Measurements {
		wf("  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"%g\"/>\n",
			m.Start.X, m.Start.Y, m.End.X, m.End.Y, lineCol, lineW)
		if opt.ShowLabels {
			label := m.Label
			if label == "" {
				label = fmt.Sprintf("%.1f", m.GridDistance)
			}
			mx := (m.Start.X + m.End.X) / 2
			my := (m.Start.Y + m.End.Y) / 2
			wf("  <text x=\"%g\" y=\"%g\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"12\" fill=\"#000\">%s</text>\n",
				mx, my, escText(label))
		}
	}

	for _, s := range doc.Shapes {
		writeShape(wf, s)
	}

	wf("</svg>\n")

	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(sh.Root, "exports", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func activeGrid(gs domain.GridState) *domain.GridProfile {
	if gs.ActiveID == nil {
		return nil
	}
	for i := range gs.Profiles {
		if gs.Profiles[i].ID == *gs.ActiveID {
			return &gs.Profiles[i]
		}
	}
	return nil
}

func writeGrid(wf func(string, ...any), g *domain.GridProfile, w, h float64) {
	col := svgColor(g.Color)
	op := g.Opacity
	if op <= 0 {
		op = 0.3
	}
	switch g.Kind {
	case domain.GridSquare:
		for x := 0.0; x <= w; x += g.CellSize {
			wf("  <line x1=\"%g\" y1=\"0\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-opacity=\"%g\" stroke-width=\"1\"/>\n", x, x, h, col, op)
		}
		for y := 0.0; y <= h; y += g.CellSize {
			wf("  <line x1=\"0\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-opacity=\"%g\" stroke-width=\"1\"/>\n", y, w, y, col, op)
		}
	case domain.GridHex:
		pointy := g.Orientation == domain.HexPointy
		// Cover the viewBox generously; clipping handles the overshoot.
		limQ := int(w/g.CellSize) + 2
		limR := int(h/g.CellSize) + 2
		for q := -2; q <= limQ; q++ {
			for r := -limQ - 2; r <= limR+2; r++ {
				var c geom.Point
				if pointy {
					c = geom.AxialToPixelPointy(float64(q), float64(r), g.CellSize)
				} else {
					c = geom.AxialToPixelFlat(float64(q), float64(r), g.CellSize)
				}
				if c.X < -g.CellSize || c.X > w+g.CellSize || c.Y < -g.CellSize || c.Y > h+g.CellSize {
					continue
				}
				wf("  <polygon points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-opacity=\"%g\" stroke-width=\"1\"/>\n",
					hexCorners(c, g.CellSize, pointy), col, op)
			}
		}
	}
}

// hexCorners returns the six corner coordinates of a hex cell as an SVG point list.
func hexCorners(c geom.Point, size float64, pointy bool) string {
	var b bytes.Buffer
	for i := 0; i < 6; i++ {
		angle := math.Pi / 180 * (60 * float64(i))
		if pointy {
			angle = math.Pi / 180 * (60*float64(i) - 30)
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g,%g", c.X+size*math.Cos(angle), c.Y+size*math.Sin(angle))
	}
	return b.String()
}

func writeShape(wf func(string, ...any), s domain.Shape) {
	stroke := svgColor(s.Color)
	fill := svgColor(s.FillColor)
	fillOp := float64(s.FillColor.A) / 255
	switch s.Kind {
	case domain.ShapeRectangle:
		if len(s.Points) < 2 {
			return
		}
		x := math.Min(s.Points[0].X, s.Points[1].X)
		y := math.Min(s.Points[0].Y, s.Points[1].Y)
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\" fill-opacity=\"%g\" stroke=\"%s\"/>\n",
			x, y, math.Abs(s.Points[1].X-s.Points[0].X), math.Abs(s.Points[1].Y-s.Points[0].Y), fill, fillOp, stroke)
	case domain.ShapeCircle:
		if len(s.Points) < 2 {
			return
		}
		r := geom.Distance(s.Points[0], s.Points[1])
		wf("  <circle cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"%s\" fill-opacity=\"%g\" stroke=\"%s\"/>\n",
			s.Points[0].X, s.Points[0].Y, r, fill, fillOp, stroke)
	case domain.ShapeEllipse:
		if len(s.Points) < 2 {
			return
		}
		cx := (s.Points[0].X + s.Points[1].X) / 2
		cy := (s.Points[0].Y + s.Points[1].Y) / 2
		wf("  <ellipse cx=\"%g\" cy=\"%g\" rx=\"%g\" ry=\"%g\" fill=\"%s\" fill-opacity=\"%g\" stroke=\"%s\"/>\n",
			cx, cy, math.Abs(s.Points[1].X-s.Points[0].X)/2, math.Abs(s.Points[1].Y-s.Points[0].Y)/2, fill, fillOp, stroke)
	case domain.ShapePolygon:
		if len(s.Points) < 3 {
			return
		}
		var b bytes.Buffer
		for i, p := range s.Points {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g,%g", p.X, p.Y)
		}
		wf("  <polygon points=\"%s\" fill=\"%s\" fill-opacity=\"%g\" stroke=\"%s\"/>\n", b.String(), fill, fillOp, stroke)
	case domain.ShapeArc:
		if s.Arc == nil {
			return
		}
		wf("  <path d=\"%s\" fill=\"%s\" fill-opacity=\"%g\" stroke=\"%s\"/>\n", sectorPath(*s.Arc), fill, fillOp, stroke)
	}
}

// sectorPath builds a pie-slice path for an arc shape.
func sectorPath(a domain.ArcParams) string {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	sx := a.Center.X + a.Radius*math.Cos(rad(a.StartAngle))
	sy := a.Center.Y + a.Radius*math.Sin(rad(a.StartAngle))
	ex := a.Center.X + a.Radius*math.Cos(rad(a.EndAngle))
	ey := a.Center.Y + a.Radius*math.Sin(rad(a.EndAngle))
	sweep := a.EndAngle - a.StartAngle
	large := 0
	if math.Abs(sweep) > 180 {
		large = 1
	}
	dir := 1
	if sweep < 0 {
		dir = 0
	}
	return fmt.Sprintf("M %g %g L %g %g A %g %g 0 %d %d %g %g Z",
		a.Center.X, a.Center.Y, sx, sy, a.Radius, a.Radius, large, dir, ex, ey)
}

func svgColor(c domain.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
