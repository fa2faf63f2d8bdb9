/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDistanceAndAngle(t *testing.T) {
	if d := Distance(Point{0, 0}, Point{3, 4}); d != 5 {
		t.Fatalf("distance = %v, want 5", d)
	}
	if a := AngleDegrees(Point{0, 0}, Point{1, 0}); a != 0 {
		t.Fatalf("angle = %v, want 0", a)
	}
	if a := AngleDegrees(Point{0, 0}, Point{0, 1}); a != 90 {
		t.Fatalf("angle = %v, want 90", a)
	}
	// atan2 negatives must normalize into [0, 360)
	if a := AngleDegrees(Point{0, 0}, Point{0, -1}); a != 270 {
		t.Fatalf("angle = %v, want 270", a)
	}
}

func TestRound(t *testing.T) {
	if v := Round(1.23456, 2); v != 1.23 {
		t.Fatalf("Round = %v", v)
	}
	if v := Round(1.5, 0); v != 2 {
		t.Fatalf("Round = %v", v)
	}
	if v := Round(3.14, -1); v != 3.14 {
		t.Fatalf("negative places must be a no-op, got %v", v)
	}
}

func TestSnapToStep(t *testing.T) {
	p := SnapToStep(Point{12, 38}, 25)
	if p.X != 0 || p.Y != 50 {
		t.Fatalf("unexpected snap: %+v", p)
	}
	q := Point{7.3, -4.2}
	if SnapToStep(q, 0) != q {
		t.Fatalf("zero step must return point unchanged")
	}
}

func TestRectFromCorners(t *testing.T) {
	area, per := RectFromCorners(Point{1, 1}, Point{4, 5})
	if area != 12 || per != 14 {
		t.Fatalf("rect area=%v per=%v", area, per)
	}
}

func TestCircleFromPoints(t *testing.T) {
	area, per, r := CircleFromPoints(Point{0, 0}, Point{3, 0})
	if r != 3 {
		t.Fatalf("radius = %v, want 3", r)
	}
	if !almostEqual(area, 9*math.Pi) {
		t.Fatalf("area = %v, want 9pi", area)
	}
	if !almostEqual(per, 6*math.Pi) {
		t.Fatalf("perimeter = %v, want 6pi", per)
	}
}

func TestEllipseCircleDegeneratesToCircle(t *testing.T) {
	// An ellipse with equal semi-axes is a circle; Ramanujan is exact there.
	area, per := EllipseFromCorners(Point{0, 0}, Point{10, 10})
	if !almostEqual(area, math.Pi*25) {
		t.Fatalf("area = %v", area)
	}
	if !almostEqual(per, 2*math.Pi*5) {
		t.Fatalf("perimeter = %v", per)
	}
}

func TestPolygonShoelaceUnitSquare(t *testing.T) {
	sq := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if a := PolygonArea(sq); a != 1 {
		t.Fatalf("area = %v, want 1", a)
	}
	if p := PolygonPerimeter(sq); p != 4 {
		t.Fatalf("perimeter = %v, want 4", p)
	}
}

func TestPolygonWindingIndependent(t *testing.T) {
	cw := []Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	if a := PolygonArea(cw); a != 1 {
		t.Fatalf("clockwise area = %v, want 1", a)
	}
}

func TestSector(t *testing.T) {
	// Quarter circle of radius 2.
	sweep := math.Pi / 2
	if a := SectorArea(2, sweep); !almostEqual(a, math.Pi) {
		t.Fatalf("sector area = %v, want pi", a)
	}
	if p := SectorPerimeter(2, sweep); !almostEqual(p, math.Pi+4) {
		t.Fatalf("sector perimeter = %v, want pi+4", p)
	}
	if a := SectorArea(2, -sweep); !almostEqual(a, math.Pi) {
		t.Fatalf("negative sweep must use absolute value, got %v", a)
	}
}
