/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import (
	"fmt"
	"log/slog"
	"math"

	"mapmeasure/internal/domain"
	"mapmeasure/internal/geom"
)

// Shape construction is multi-step: BeginShape opens a draft, AddShapePoint
// accumulates snapped control points, and completion commits an immutable
// shape. Rectangle, circle and ellipse complete automatically at two points;
// polygons need an explicit CompletePolygon after at least three points;
// arcs arrive fully parameterized through AddArc. A committed shape never
// mutates; edits are delete and recreate.

type shapeDraft struct {
	kind   domain.ShapeKind
	points []geom.Point
}

// BeginShape opens a new draft for a point-constructed kind, replacing any
// previous draft. Arcs are rejected here: they carry angle inputs raw clicks
// cannot express, so they go through AddArc instead.
func (e *Engine) BeginShape(kind domain.ShapeKind) error {
	switch kind {
	case domain.ShapeRectangle, domain.ShapeCircle, domain.ShapeEllipse, domain.ShapePolygon:
	case domain.ShapeArc:
		return fmt.Errorf("arc shapes take structured parameters, use AddArc: %w", domain.ErrInvalidState)
	default:
		return fmt.Errorf("shape kind %q unknown: %w", kind, domain.ErrInvalidState)
	}
	if e.draft != nil {
		e.log.Debug("replacing shape draft", slog.String("kind", string(e.draft.kind)))
	}
	e.draft = &shapeDraft{kind: kind}
	return nil
}

// AddShapePoint appends a snapped control point to the draft. Two-point
// kinds commit automatically and return the created shape; otherwise the
// returned shape is nil.
func (e *Engine) AddShapePoint(p geom.Point) (*domain.Shape, error) {
	if e.draft == nil {
		return nil, fmt.Errorf("no shape under construction: %w", domain.ErrInvalidState)
	}
	e.draft.points = append(e.draft.points, e.Snap(p))
	if e.draft.kind == domain.ShapePolygon || len(e.draft.points) < 2 {
		return nil, nil
	}
	s, err := e.commitTwoPointShape()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CompletePolygon commits the polygon draft. Fewer than three points, or
// collinear points enclosing no area, fail without committing; the draft is
// kept so more points can be added.
func (e *Engine) CompletePolygon() (domain.Shape, error) {
	if e.draft == nil || e.draft.kind != domain.ShapePolygon {
		return domain.Shape{}, fmt.Errorf("no polygon under construction: %w", domain.ErrInvalidState)
	}
	pts := e.draft.points
	if len(pts) < 3 {
		return domain.Shape{}, fmt.Errorf("polygon needs at least 3 points, have %d: %w", len(pts), domain.ErrDegenerateShape)
	}
	area := geom.PolygonArea(pts)
	if area == 0 {
		return domain.Shape{}, fmt.Errorf("polygon encloses no area: %w", domain.ErrDegenerateShape)
	}
	s := e.commitShape(domain.Shape{
		Kind:      domain.ShapePolygon,
		Points:    append([]geom.Point(nil), pts...),
		Area:      area,
		Perimeter: geom.PolygonPerimeter(pts),
	})
	return s, nil
}

// AddArc commits an arc shape from structured parameters: center, radius and
// start/end angles in degrees. The arc is evaluated as a circular sector.
func (e *Engine) AddArc(params domain.ArcParams) (domain.Shape, error) {
	if params.Radius <= 0 {
		return domain.Shape{}, fmt.Errorf("arc radius must be positive, got %v: %w", params.Radius, domain.ErrDegenerateShape)
	}
	sweep := (params.EndAngle - params.StartAngle) * math.Pi / 180
	if sweep == 0 {
		return domain.Shape{}, fmt.Errorf("arc sweep is zero: %w", domain.ErrDegenerateShape)
	}
	p := params
	s := e.commitShape(domain.Shape{
		Kind:      domain.ShapeArc,
		Arc:       &p,
		Area:      geom.SectorArea(params.Radius, sweep),
		Perimeter: geom.SectorPerimeter(params.Radius, sweep),
	})
	return s, nil
}

// CancelShape discards the draft, reporting whether one existed.
func (e *Engine) CancelShape() bool {
	had := e.draft != nil
	e.draft = nil
	return had
}

// DeleteShape removes a committed shape. There is no edit operation; callers
// recreate shapes instead.
func (e *Engine) DeleteShape(id string) error {
	for i := range e.shapes {
		if e.shapes[i].ID == id {
			e.shapes = append(e.shapes[:i], e.shapes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("shape %q: %w", id, domain.ErrNotFound)
}

// Shapes returns a snapshot of the committed collection.
func (e *Engine) Shapes() []domain.Shape {
	out := make([]domain.Shape, len(e.shapes))
	for i, s := range e.shapes {
		out[i] = copyShape(s)
	}
	return out
}

func (e *Engine) commitTwoPointShape() (domain.Shape, error) {
	a, b := e.draft.points[0], e.draft.points[1]
	s := domain.Shape{
		Kind:   e.draft.kind,
		Points: []geom.Point{a, b},
	}
	switch e.draft.kind {
	case domain.ShapeRectangle:
		if a.X == b.X || a.Y == b.Y {
			return domain.Shape{}, e.failDraft(fmt.Errorf("rectangle corners share an axis: %w", domain.ErrDegenerateShape))
		}
		s.Area, s.Perimeter = geom.RectFromCorners(a, b)
	case domain.ShapeCircle:
		area, per, r := geom.CircleFromPoints(a, b)
		if r == 0 {
			return domain.Shape{}, e.failDraft(fmt.Errorf("circle has zero radius: %w", domain.ErrDegenerateShape))
		}
		s.Area, s.Perimeter = area, per
	case domain.ShapeEllipse:
		if a.X == b.X || a.Y == b.Y {
			return domain.Shape{}, e.failDraft(fmt.Errorf("ellipse bounding box is flat: %w", domain.ErrDegenerateShape))
		}
		s.Area, s.Perimeter = geom.EllipseFromCorners(a, b)
	}
	return e.commitShape(s), nil
}

// failDraft drops the draft so a rejected two-point gesture starts over.
func (e *Engine) failDraft(err error) error {
	e.draft = nil
	return err
}

func (e *Engine) commitShape(s domain.Shape) domain.Shape {
	s.ID = newID()
	s.Color = e.settings.HighlightColor
	e.shapes = append(e.shapes, s)
	e.draft = nil
	snap := copyShape(s)
	e.bus.publish(EventShapeCreated, snap)
	return snap
}

func copyShape(s domain.Shape) domain.Shape {
	out := s
	out.Points = append([]geom.Point(nil), s.Points...)
	if s.Arc != nil {
		arc := *s.Arc
		out.Arc = &arc
	}
	return out
}
