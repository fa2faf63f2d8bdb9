/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Hexagonal grid math in axial coordinates (q, r) with the implicit third
// cube coordinate s = -q - r. size is the hex edge length in pixels.
// Flat-top hexes have a vertex pointing along +x, pointy-top along +y.

import "math"

const sqrt3 = 1.7320508075688772

// Axial is an integer axial hex coordinate.
type Axial struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (a Axial) S() int { return -a.Q - a.R }

// PixelToAxialFlat converts a pixel point to fractional flat-top axial coords.
func PixelToAxialFlat(p Point, size float64) (q, r float64) {
	q = (2.0 / 3.0 * p.X) / size
	r = (-1.0/3.0*p.X + sqrt3/3.0*p.Y) / size
	return q, r
}

// PixelToAxialPointy converts a pixel point to fractional pointy-top axial coords.
func PixelToAxialPointy(p Point, size float64) (q, r float64) {
	q = (sqrt3/3.0*p.X - 1.0/3.0*p.Y) / size
	r = (2.0 / 3.0 * p.Y) / size
	return q, r
}

// AxialToPixelFlat converts flat-top axial coords back to pixel space.
func AxialToPixelFlat(q, r float64, size float64) Point {
	return Point{
		X: size * (3.0 / 2.0 * q),
		Y: size * (sqrt3/2.0*q + sqrt3*r),
	}
}

// AxialToPixelPointy converts pointy-top axial coords back to pixel space.
func AxialToPixelPointy(q, r float64, size float64) Point {
	return Point{
		X: size * (sqrt3*q + sqrt3/2.0*r),
		Y: size * (3.0 / 2.0 * r),
	}
}

// AxialRound rounds fractional axial coordinates to the nearest hex using
// cube rounding: round all three cube components, then fix the one with the
// largest rounding error so q + r + s = 0 holds.
func AxialRound(qf, rf float64) Axial {
	sf := -qf - rf

	q := math.Round(qf)
	r := math.Round(rf)
	s := math.Round(sf)

	dq := math.Abs(q - qf)
	dr := math.Abs(r - rf)
	ds := math.Abs(s - sf)

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	}
	// an s-side correction would not change q or r
	return Axial{Q: int(q), R: int(r)}
}

// SnapHex quantizes p to the nearest hex center for the given edge size and
// orientation (pointy selects pointy-top, otherwise flat-top).
func SnapHex(p Point, size float64, pointy bool) Point {
	if size <= 0 {
		return p
	}
	if pointy {
		ax := AxialRound(PixelToAxialPointy(p, size))
		return AxialToPixelPointy(float64(ax.Q), float64(ax.R), size)
	}
	ax := AxialRound(PixelToAxialFlat(p, size))
	return AxialToPixelFlat(float64(ax.Q), float64(ax.R), size)
}
