/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import (
	"errors"
	"reflect"
	"testing"

	"mapmeasure/internal/domain"
	"mapmeasure/internal/geom"
)

func populatedEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(Config{})
	if err := e.PreloadDefaults(); err != nil {
		t.Fatalf("preload: %v", err)
	}
	m, _ := e.StartMeasurement(geom.Point{X: 0, Y: 0})
	_, _ = e.UpdateMeasurement(m.ID, geom.Point{X: 150, Y: 0})
	_, _ = e.CompleteMeasurement(m.ID)
	_ = e.BeginShape(domain.ShapeCircle)
	_, _ = e.AddShapePoint(geom.Point{X: 0, Y: 0})
	if _, err := e.AddShapePoint(geom.Point{X: 200, Y: 0}); err != nil {
		t.Fatalf("shape: %v", err)
	}
	return e
}

func TestExportImportRoundTrip(t *testing.T) {
	e := populatedEngine(t)
	before := e.ExportAll()
	if err := e.ImportAll(before); err != nil {
		t.Fatalf("import: %v", err)
	}
	after := e.ExportAll()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("round trip changed state:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestImportIntoFreshEngine(t *testing.T) {
	src := populatedEngine(t)
	doc := src.ExportAll()

	dst := New(Config{})
	if err := dst.ImportAll(doc); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(dst.Measurements()) != 1 || len(dst.Shapes()) != 1 {
		t.Fatalf("collections not replaced")
	}
	g, ok := dst.ActiveGrid()
	if !ok {
		t.Fatalf("active grid not restored")
	}
	if g.Kind != domain.GridSquare {
		t.Fatalf("wrong active grid: %+v", g)
	}
}

func TestImportAtomicityOnInvalidGrid(t *testing.T) {
	e := populatedEngine(t)
	before := e.ExportAll()

	bad := before
	bad.Grids.Profiles = append([]domain.GridProfile(nil), before.Grids.Profiles...)
	bad.Grids.Profiles[0].CellSize = 0

	err := e.ImportAll(bad)
	if !errors.Is(err, domain.ErrImportValidation) {
		t.Fatalf("got %v, want ErrImportValidation", err)
	}
	if !reflect.DeepEqual(before, e.ExportAll()) {
		t.Fatalf("failed import mutated state")
	}
}

func TestImportRejectsDanglingActiveID(t *testing.T) {
	e := New(Config{})
	ghost := "ghost"
	doc := e.ExportAll()
	doc.Grids.ActiveID = &ghost
	if err := e.ImportAll(doc); !errors.Is(err, domain.ErrImportValidation) {
		t.Fatalf("got %v, want ErrImportValidation", err)
	}
}

func TestImportRejectsNewerSchemaVersion(t *testing.T) {
	e := New(Config{})
	doc := e.ExportAll()
	doc.SchemaVersion = domain.SchemaVersion + 1
	if err := e.ImportAll(doc); !errors.Is(err, domain.ErrImportValidation) {
		t.Fatalf("got %v, want ErrImportValidation", err)
	}
}

func TestImportVersionZeroConfigurable(t *testing.T) {
	lenient := New(Config{})
	doc := lenient.ExportAll()
	doc.SchemaVersion = 0
	if err := lenient.ImportAll(doc); err != nil {
		t.Fatalf("lenient import: %v", err)
	}

	strict := New(Config{StrictImportVersion: true})
	if err := strict.ImportAll(doc); !errors.Is(err, domain.ErrImportValidation) {
		t.Fatalf("strict import accepted unversioned document: %v", err)
	}
}

func TestImportDiscardsInProgressEntities(t *testing.T) {
	e := New(Config{})
	doc := populatedEngine(t).ExportAll()
	_, _ = e.StartMeasurement(geom.Point{})
	if err := e.ImportAll(doc); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, ok := e.InProgressMeasurement(); ok {
		t.Fatalf("in-progress measurement survived import")
	}
	if _, err := e.StartMeasurement(geom.Point{}); err != nil {
		t.Fatalf("start after import: %v", err)
	}
}
