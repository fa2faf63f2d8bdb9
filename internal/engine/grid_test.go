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
	"math"
	"testing"

	"mapmeasure/internal/domain"
	"mapmeasure/internal/geom"
)

func squareGrid(cell, scale float64) domain.GridProfile {
	return domain.GridProfile{
		Name:        "test square",
		Kind:        domain.GridSquare,
		CellSize:    cell,
		Scale:       scale,
		Unit:        domain.UnitFeet,
		Visible:     true,
		SnapEnabled: true,
		Opacity:     0.5,
	}
}

func hexGrid(cell float64, orientation domain.HexOrientation) domain.GridProfile {
	return domain.GridProfile{
		Name:        "test hex",
		Kind:        domain.GridHex,
		CellSize:    cell,
		Scale:       5,
		Unit:        domain.UnitFeet,
		Orientation: orientation,
		Visible:     true,
		SnapEnabled: true,
		Opacity:     0.5,
	}
}

func mustRegisterActive(t *testing.T, e *Engine, p domain.GridProfile) string {
	t.Helper()
	id, err := e.RegisterGrid(p)
	if err != nil {
		t.Fatalf("RegisterGrid: %v", err)
	}
	if err := e.SetActiveGrid(id); err != nil {
		t.Fatalf("SetActiveGrid: %v", err)
	}
	return id
}

func TestRegisterGridRejectsInvalid(t *testing.T) {
	e := New(Config{})
	cases := []domain.GridProfile{
		squareGrid(0, 5),
		squareGrid(-10, 5),
		squareGrid(50, 0),
		squareGrid(50, -1),
	}
	for _, p := range cases {
		if _, err := e.RegisterGrid(p); !errors.Is(err, domain.ErrInvalidGrid) {
			t.Fatalf("cellSize=%v scale=%v: got %v, want ErrInvalidGrid", p.CellSize, p.Scale, err)
		}
	}
	bad := squareGrid(50, 5)
	bad.Opacity = 1.5
	if _, err := e.RegisterGrid(bad); !errors.Is(err, domain.ErrInvalidGrid) {
		t.Fatalf("opacity out of range accepted: %v", err)
	}
}

func TestSetActiveGridUnknownID(t *testing.T) {
	e := New(Config{})
	if err := e.SetActiveGrid("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSnapWithoutActiveGridIsIdentity(t *testing.T) {
	e := New(Config{})
	p := geom.Point{X: 13.7, Y: -2.4}
	if e.Snap(p) != p {
		t.Fatalf("snap without grid must be identity")
	}
}

func TestSnapRespectsSnapEnabled(t *testing.T) {
	e := New(Config{})
	g := squareGrid(50, 5)
	g.SnapEnabled = false
	mustRegisterActive(t, e, g)
	p := geom.Point{X: 13, Y: 38}
	if e.Snap(p) != p {
		t.Fatalf("snap with snapEnabled=false must be identity")
	}
}

func TestSquareSnapAndIdempotence(t *testing.T) {
	e := New(Config{})
	mustRegisterActive(t, e, squareGrid(50, 5))
	s := e.Snap(geom.Point{X: 60, Y: 130})
	if s.X != 50 || s.Y != 150 {
		t.Fatalf("unexpected snap: %+v", s)
	}
	if e.Snap(s) != s {
		t.Fatalf("snap must be idempotent")
	}
}

func TestHexSnapIdempotenceBothOrientations(t *testing.T) {
	for _, o := range []domain.HexOrientation{domain.HexFlat, domain.HexPointy} {
		e := New(Config{})
		mustRegisterActive(t, e, hexGrid(40, o))
		p := geom.Point{X: 87.3, Y: -12.9}
		s1 := e.Snap(p)
		s2 := e.Snap(s1)
		if math.Abs(s1.X-s2.X) > 1e-9 || math.Abs(s1.Y-s2.Y) > 1e-9 {
			t.Fatalf("%s: snap not idempotent: %+v vs %+v", o, s1, s2)
		}
	}
}

func TestToGridDistanceRoundTrip(t *testing.T) {
	e := New(Config{})
	mustRegisterActive(t, e, squareGrid(50, 5))
	// Two points exactly one cell apart measure exactly one scale unit.
	if d := e.ToGridDistance(50); d != 5 {
		t.Fatalf("grid distance = %v, want 5", d)
	}
	// No active grid: pixel distance passes through.
	e2 := New(Config{})
	if d := e2.ToGridDistance(123); d != 123 {
		t.Fatalf("grid distance without grid = %v, want 123", d)
	}
}

func TestUpdateGridMergesAndRevalidates(t *testing.T) {
	e := New(Config{})
	id := mustRegisterActive(t, e, squareGrid(50, 5))

	bad := -1.0
	if err := e.UpdateGrid(id, GridPatch{CellSize: &bad}); !errors.Is(err, domain.ErrInvalidGrid) {
		t.Fatalf("invalid patch accepted: %v", err)
	}
	g, _ := e.ActiveGrid()
	if g.CellSize != 50 {
		t.Fatalf("failed update mutated profile: %v", g.CellSize)
	}

	newCell := 25.0
	name := "finer"
	if err := e.UpdateGrid(id, GridPatch{CellSize: &newCell, Name: &name}); err != nil {
		t.Fatalf("UpdateGrid: %v", err)
	}
	g, _ = e.ActiveGrid()
	if g.CellSize != 25 || g.Name != "finer" || g.Scale != 5 {
		t.Fatalf("merge wrong: %+v", g)
	}
}

func TestRemoveActiveGridClearsPointer(t *testing.T) {
	e := New(Config{})
	id := mustRegisterActive(t, e, squareGrid(50, 5))
	if err := e.RemoveGrid(id); err != nil {
		t.Fatalf("RemoveGrid: %v", err)
	}
	if _, ok := e.ActiveGrid(); ok {
		t.Fatalf("active pointer not cleared")
	}
	p := geom.Point{X: 33, Y: 44}
	if e.Snap(p) != p {
		t.Fatalf("snap must be identity after active grid removal")
	}
}

func TestGridsReturnsSnapshot(t *testing.T) {
	e := New(Config{})
	mustRegisterActive(t, e, squareGrid(50, 5))
	grids := e.Grids()
	grids[0].CellSize = 999
	g, _ := e.ActiveGrid()
	if g.CellSize != 50 {
		t.Fatalf("caller mutated engine-owned grid state")
	}
}
