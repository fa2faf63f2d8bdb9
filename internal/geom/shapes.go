/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Area/perimeter formulas for the shape kinds supported by the shape builder.
// Inputs are control points as collected by the builder; callers are expected
// to reject degenerate geometry before committing a shape.

import "math"

// RectFromCorners returns |dx*dy| area and 2(|dx|+|dy|) perimeter for a
// rectangle given two opposite corners.
func RectFromCorners(a, b Point) (area, perimeter float64) {
	dx := math.Abs(b.X - a.X)
	dy := math.Abs(b.Y - a.Y)
	return dx * dy, 2 * (dx + dy)
}

// CircleFromPoints interprets a as center and b as a point on the rim.
func CircleFromPoints(a, b Point) (area, perimeter, radius float64) {
	r := Distance(a, b)
	return math.Pi * r * r, 2 * math.Pi * r, r
}

// EllipseFromCorners derives semi-axes from the bounding box of the two
// points. Perimeter uses Ramanujan's approximation.
func EllipseFromCorners(a, b Point) (area, perimeter float64) {
	sa := math.Abs(b.X-a.X) / 2
	sb := math.Abs(b.Y-a.Y) / 2
	return math.Pi * sa * sb, EllipsePerimeter(sa, sb)
}

// EllipsePerimeter approximates the perimeter of an ellipse with semi-axes
// a, b via Ramanujan: pi*(3(a+b) - sqrt((3a+b)(a+3b))).
func EllipsePerimeter(a, b float64) float64 {
	return math.Pi * (3*(a+b) - math.Sqrt((3*a+b)*(a+3*b)))
}

// PolygonArea computes the area of a simple polygon over ordered vertices
// using the shoelace formula. Fewer than 3 vertices yield 0.
func PolygonArea(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// PolygonPerimeter sums consecutive edge lengths including the closing edge.
func PolygonPerimeter(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	sum := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += Distance(pts[i], pts[j])
	}
	return sum
}

// Sector formulas for arcs. The engine treats an arc as a circular sector:
// area is r^2*sweep/2 and the perimeter is the arc length plus the two radii.
// sweep is in radians and is normalized to its absolute value.

func SectorArea(radius, sweep float64) float64 {
	return 0.5 * radius * radius * math.Abs(sweep)
}

func SectorPerimeter(radius, sweep float64) float64 {
	return radius*math.Abs(sweep) + 2*radius
}
