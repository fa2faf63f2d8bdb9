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

	"mapmeasure/internal/domain"
	"mapmeasure/internal/geom"
)

// GridPatch is a partial update for a registered grid profile. Nil fields
// keep their prior value; the merged profile is re-validated before it is
// stored.
type GridPatch struct {
	Name        *string
	Kind        *domain.GridKind
	CellSize    *float64
	Scale       *float64
	Unit        *domain.Unit
	Orientation *domain.HexOrientation
	Visible     *bool
	SnapEnabled *bool
	Opacity     *float64
	Color       *domain.Color
}

func validateGrid(p domain.GridProfile) error {
	if p.CellSize <= 0 {
		return fmt.Errorf("cell size must be positive, got %v: %w", p.CellSize, domain.ErrInvalidGrid)
	}
	if p.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v: %w", p.Scale, domain.ErrInvalidGrid)
	}
	if p.Opacity < 0 || p.Opacity > 1 {
		return fmt.Errorf("opacity must be within [0,1], got %v: %w", p.Opacity, domain.ErrInvalidGrid)
	}
	switch p.Kind {
	case domain.GridSquare:
	case domain.GridHex:
		if p.Orientation != domain.HexFlat && p.Orientation != domain.HexPointy {
			return fmt.Errorf("hex orientation %q unknown: %w", p.Orientation, domain.ErrInvalidGrid)
		}
	default:
		return fmt.Errorf("grid kind %q unknown: %w", p.Kind, domain.ErrInvalidGrid)
	}
	return nil
}

// RegisterGrid validates and stores a grid profile, returning its id. An
// empty id is assigned; a duplicate id is rejected.
func (e *Engine) RegisterGrid(p domain.GridProfile) (string, error) {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Kind == domain.GridHex && p.Orientation == "" {
		p.Orientation = domain.HexPointy
	}
	if _, ok := e.findGrid(p.ID); ok {
		return "", fmt.Errorf("grid id %q already registered: %w", p.ID, domain.ErrInvalidGrid)
	}
	if err := validateGrid(p); err != nil {
		return "", err
	}
	e.grids = append(e.grids, p)
	e.log.Debug("grid registered", slog.String("id", p.ID), slog.String("kind", string(p.Kind)))
	e.bus.publish(EventGridUpdated, p)
	return p.ID, nil
}

// SetActiveGrid marks the profile as active. At most one profile is active.
func (e *Engine) SetActiveGrid(id string) error {
	p, ok := e.findGrid(id)
	if !ok {
		return fmt.Errorf("grid %q: %w", id, domain.ErrNotFound)
	}
	e.activeGrid = id
	e.bus.publish(EventActiveGridChanged, *p)
	return nil
}

// UpdateGrid merges the patch into the stored profile, re-validates the
// invariants and stores the result.
func (e *Engine) UpdateGrid(id string, patch GridPatch) error {
	p, ok := e.findGrid(id)
	if !ok {
		return fmt.Errorf("grid %q: %w", id, domain.ErrNotFound)
	}
	merged := *p
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Kind != nil {
		merged.Kind = *patch.Kind
	}
	if patch.CellSize != nil {
		merged.CellSize = *patch.CellSize
	}
	if patch.Scale != nil {
		merged.Scale = *patch.Scale
	}
	if patch.Unit != nil {
		merged.Unit = *patch.Unit
	}
	if patch.Orientation != nil {
		merged.Orientation = *patch.Orientation
	}
	if patch.Visible != nil {
		merged.Visible = *patch.Visible
	}
	if patch.SnapEnabled != nil {
		merged.SnapEnabled = *patch.SnapEnabled
	}
	if patch.Opacity != nil {
		merged.Opacity = *patch.Opacity
	}
	if patch.Color != nil {
		merged.Color = *patch.Color
	}
	if merged.Kind == domain.GridHex && merged.Orientation == "" {
		merged.Orientation = domain.HexPointy
	}
	if err := validateGrid(merged); err != nil {
		return err
	}
	*p = merged
	e.bus.publish(EventGridUpdated, merged)
	return nil
}

// RemoveGrid deletes a profile. Removing the active profile clears the
// active pointer, after which snapping is a no-op.
func (e *Engine) RemoveGrid(id string) error {
	idx := -1
	for i := range e.grids {
		if e.grids[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("grid %q: %w", id, domain.ErrNotFound)
	}
	removed := e.grids[idx]
	e.grids = append(e.grids[:idx], e.grids[idx+1:]...)
	if e.activeGrid == id {
		e.activeGrid = ""
		e.bus.publish(EventActiveGridChanged, nil)
	}
	e.bus.publish(EventGridUpdated, removed)
	return nil
}

// Snap quantizes a raw pointer position to the active grid. Without an
// active profile, or with snapping disabled on it, the point is returned
// unchanged. Square grids round each coordinate to the nearest cell-size
// multiple; hex grids round through axial/cube coordinates.
func (e *Engine) Snap(p geom.Point) geom.Point {
	g := e.activeGridProfile()
	if g == nil || !g.SnapEnabled {
		return p
	}
	if g.Kind == domain.GridHex {
		return geom.SnapHex(p, g.CellSize, g.Orientation == domain.HexPointy)
	}
	return geom.SnapToStep(p, g.CellSize)
}

// ToGridDistance converts a pixel distance into grid units through the
// active profile's scale. Without an active profile the input is returned
// unchanged.
func (e *Engine) ToGridDistance(pixelDistance float64) float64 {
	g := e.activeGridProfile()
	if g == nil {
		return pixelDistance
	}
	return pixelDistance / g.CellSize * g.Scale
}

// Grids returns a snapshot of all registered profiles.
func (e *Engine) Grids() []domain.GridProfile {
	out := make([]domain.GridProfile, len(e.grids))
	copy(out, e.grids)
	return out
}

// ActiveGrid returns a copy of the active profile, if any.
func (e *Engine) ActiveGrid() (domain.GridProfile, bool) {
	g := e.activeGridProfile()
	if g == nil {
		return domain.GridProfile{}, false
	}
	return *g, true
}

func (e *Engine) findGrid(id string) (*domain.GridProfile, bool) {
	for i := range e.grids {
		if e.grids[i].ID == id {
			return &e.grids[i], true
		}
	}
	return nil, false
}

func (e *Engine) activeGridProfile() *domain.GridProfile {
	if e.activeGrid == "" {
		return nil
	}
	p, ok := e.findGrid(e.activeGrid)
	if !ok {
		return nil
	}
	return p
}
