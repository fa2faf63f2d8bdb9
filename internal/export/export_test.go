/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mapmeasure/internal/domain"
	"mapmeasure/internal/geom"
	"mapmeasure/internal/storage"
)

func sampleSession(t *testing.T) *storage.SessionHandle {
	t.Helper()
	active := "grid-1"
	doc := domain.Document{
		SchemaVersion: domain.SchemaVersion,
		Measurements: []domain.Measurement{
			{
				ID: "m-1", Start: geom.Point{X: 0, Y: 0}, End: geom.Point{X: 150, Y: 200},
				PixelDistance: 250, GridDistance: 25, AngleDegrees: 53.13, Label: "move range",
			},
		},
		Shapes: []domain.Shape{
			{
				ID: "s-1", Kind: domain.ShapeRectangle,
				Points: []geom.Point{{X: 100, Y: 100}, {X: 300, Y: 250}},
				Area:   30000, Perimeter: 700, Label: "fog bank",
				FillColor: domain.Color{R: 120, G: 120, B: 200, A: 80},
			},
			{
				ID: "s-2", Kind: domain.ShapeArc,
				Arc:  &domain.ArcParams{Center: geom.Point{X: 400, Y: 400}, Radius: 90, StartAngle: 0, EndAngle: 90},
				Area: 6361.725, Perimeter: 321.37,
			},
		},
		Grids: domain.GridState{
			Profiles: []domain.GridProfile{{
				ID: "grid-1", Name: "Battle Map", Kind: domain.GridSquare,
				CellSize: 50, Scale: 5, Unit: domain.UnitFeet,
				Visible: true, SnapEnabled: true, Opacity: 0.5,
				Color: domain.Color{R: 80, G: 80, B: 80, A: 255},
			}},
			ActiveID: &active,
		},
		Templates: []domain.Template{
			{ID: "t-1", Name: "Cone 15 ft", Type: domain.TemplateCone, Size: 15},
		},
		Settings: domain.Settings{
			DefaultUnit: domain.UnitFeet, Precision: 1,
			MeasurementLineColor:     domain.Color{R: 255, G: 60, B: 0, A: 255},
			MeasurementLineThickness: 2,
		},
	}
	sh, err := storage.InitSession(t.TempDir(), doc)
	if err != nil {
		t.Fatalf("init session: %v", err)
	}
	return sh
}

func TestExportSessionReportPDFCreatesFile(t *testing.T) {
	sh := sampleSession(t)
	out := filepath.Join(sh.Root, "exports", "report.pdf")
	if err := ExportSessionReportPDF(sh, out, DefaultPDFReportOptions()); err != nil {
		t.Fatalf("export: %v", err)
	}
	st, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() <= 0 {
		t.Fatalf("pdf file empty")
	}
}

func TestExportSessionReportPDFRelativePathUnderExports(t *testing.T) {
	sh := sampleSession(t)
	if err := ExportSessionReportPDF(sh, "rel-report.pdf", PDFReportOptions{IncludeMeasurements: true}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(sh.Root, "exports", "rel-report.pdf")); err != nil {
		t.Fatalf("relative output not placed under exports: %v", err)
	}
}

func TestExportSessionSVGContainsScene(t *testing.T) {
	sh := sampleSession(t)
	out := filepath.Join(sh.Root, "exports", "scene.svg")
	opt := SVGOptions{Width: 1000, Height: 800, IncludeGrid: true, ShowLabels: true}
	if err := ExportSessionSVG(sh, out, opt); err != nil {
		t.Fatalf("export: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	s := string(b)
	for _, want := range []string{"<svg", "<line", "<rect", "<path", "move range"} {
		if !strings.Contains(s, want) {
			t.Fatalf("svg missing %q:\n%s", want, s[:min(len(s), 400)])
		}
	}
	// Square grid lines at the cell pitch
	if !strings.Contains(s, "x1=\"50\"") {
		t.Fatalf("expected grid line at x=50")
	}
}

func TestExportSessionSVGHexGrid(t *testing.T) {
	sh := sampleSession(t)
	sh.Doc.Grids.Profiles[0].Kind = domain.GridHex
	sh.Doc.Grids.Profiles[0].Orientation = domain.HexPointy
	out := filepath.Join(sh.Root, "exports", "hex.svg")
	if err := ExportSessionSVG(sh, out, SVGOptions{IncludeGrid: true}); err != nil {
		t.Fatalf("export: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(b), "<polygon") {
		t.Fatalf("expected hex cell polygons in output")
	}
}
