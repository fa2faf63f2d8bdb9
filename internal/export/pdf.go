/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"mapmeasure/internal/domain"
	"mapmeasure/internal/storage"
)

// PDFReportOptions controls the session report export.
// Vector text only; we rely on built-in Helvetica for portability.
type PDFReportOptions struct {
	Title               string
	IncludeMeasurements bool
	IncludeShapes       bool
	IncludeTemplates    bool
}

// DefaultPDFReportOptions includes every section.
func DefaultPDFReportOptions() PDFReportOptions {
	return PDFReportOptions{IncludeMeasurements: true, IncludeShapes: true, IncludeTemplates: true}
}

// ExportSessionReportPDF writes a tabular report of the session document
// (grids, measurements, shapes, templates) to a single A4 PDF at outPath.
// A relative outPath resolves under the session's exports folder.
func ExportSessionReportPDF(sh *storage.SessionHandle, outPath string, opt PDFReportOptions) error {
	if sh == nil {
		return fmt.Errorf("session handle is nil")
	}
	doc := sh.Doc

	title := opt.Title
	if title == "" {
		title = "Measurement Session Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetAuthor("MapMeasure", false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	prec := doc.Settings.Precision
	if prec < 0 {
		prec = 0
	}
	if prec > 3 {
		prec = 3
	}
	num := func(v float64) string { return fmt.Sprintf("%.*f", prec, v) }

	sectionHeader := func(s string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, s, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	tableHeader := func(widths []float64, cols []string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, c := range cols {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	tableRow := func(widths []float64, cols []string) {
		for i, c := range cols {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	// Grids
	sectionHeader("Grid Profiles")
	if len(doc.Grids.Profiles) == 0 {
		pdf.CellFormat(0, 6, "none", "", 1, "L", false, 0, "")
	} else {
		w := []float64{50, 22, 25, 25, 25, 20}
		tableHeader(w, []string{"Name", "Kind", "Cell (px)", "Scale", "Unit", "Active"})
		for _, g := range doc.Grids.Profiles {
			active := ""
			if doc.Grids.ActiveID != nil && *doc.Grids.ActiveID == g.ID {
				active = "yes"
			}
			kind := string(g.Kind)
			if g.Kind == domain.GridHex && g.Orientation != "" {
				kind = fmt.Sprintf("%s/%s", g.Kind, g.Orientation)
			}
			tableRow(w, []string{g.Name, kind, num(g.CellSize), num(g.Scale), string(g.Unit), active})
		}
	}
	pdf.Ln(4)

	if opt.IncludeMeasurements {
		sectionHeader("Measurements")
		if len(doc.Measurements) == 0 {
			pdf.CellFormat(0, 6, "none", "", 1, "L", false, 0, "")
		} else {
			w := []float64{45, 30, 30, 28, 28, 26}
			tableHeader(w, []string{"Label", "Start", "End", "Pixels", "Grid", "Angle"})
			for _, m := range doc.Measurements {
				label := m.Label
				if label == "" {
					label = m.ID
				}
				tableRow(w, []string{
					label,
					fmt.Sprintf("(%s, %s)", num(m.Start.X), num(m.Start.Y)),
					fmt.Sprintf("(%s, %s)", num(m.End.X), num(m.End.Y)),
					num(m.PixelDistance),
					num(m.GridDistance),
					num(m.AngleDegrees) + " deg",
				})
			}
		}
		pdf.Ln(4)
	}

	if opt.IncludeShapes {
		sectionHeader("Shapes")
		if len(doc.Shapes) == 0 {
			pdf.CellFormat(0, 6, "none", "", 1, "L", false, 0, "")
		} else {
			w := []float64{50, 30, 25, 35, 35}
			tableHeader(w, []string{"Label", "Kind", "Points", "Area", "Perimeter"})
			for _, s := range doc.Shapes {
				label := s.Label
				if label == "" {
					label = s.ID
				}
				tableRow(w, []string{label, string(s.Kind), fmt.Sprintf("%d", len(s.Points)), num(s.Area), num(s.Perimeter)})
			}
		}
		pdf.Ln(4)
	}

	if opt.IncludeTemplates {
		sectionHeader("Templates")
		if len(doc.Templates) == 0 {
			pdf.CellFormat(0, 6, "none", "", 1, "L", false, 0, "")
		} else {
			w := []float64{55, 30, 30, 30}
			tableHeader(w, []string{"Name", "Type", "Size", "Secondary"})
			for _, tp := range doc.Templates {
				sec := ""
				if tp.SecondarySize > 0 {
					sec = num(tp.SecondarySize)
				}
				tableRow(w, []string{tp.Name, string(tp.Type), num(tp.Size), sec})
			}
		}
	}

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(sh.Root, "exports", outPath)
	}
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
