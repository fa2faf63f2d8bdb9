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

	"mapmeasure/internal/domain"
)

// ExportAll returns a deep-copied session document of the current state: the
// completed measurements, committed shapes, grid profiles with the active
// pointer, template catalog and settings. It is deterministic for a given
// state.
func (e *Engine) ExportAll() domain.Document {
	doc := domain.Document{
		SchemaVersion: domain.SchemaVersion,
		Measurements:  e.Measurements(),
		Shapes:        e.Shapes(),
		Grids: domain.GridState{
			Profiles: e.Grids(),
		},
		Templates: e.Templates(),
		Settings:  e.settings,
	}
	if e.activeGrid != "" {
		id := e.activeGrid
		doc.Grids.ActiveID = &id
	}
	// Exported collections are never nil so the JSON layout is stable.
	if doc.Measurements == nil {
		doc.Measurements = []domain.Measurement{}
	}
	if doc.Shapes == nil {
		doc.Shapes = []domain.Shape{}
	}
	if doc.Grids.Profiles == nil {
		doc.Grids.Profiles = []domain.GridProfile{}
	}
	if doc.Templates == nil {
		doc.Templates = []domain.Template{}
	}
	return doc
}

// ImportAll validates the document and, only on full success, atomically
// replaces all five collections and the active-grid pointer. Any in-progress
// measurement or shape draft is discarded. On validation failure the engine
// state is untouched.
func (e *Engine) ImportAll(doc domain.Document) error {
	if err := e.validateDocument(doc); err != nil {
		return err
	}

	grids := make([]domain.GridProfile, len(doc.Grids.Profiles))
	copy(grids, doc.Grids.Profiles)
	measurements := make([]domain.Measurement, len(doc.Measurements))
	for i, m := range doc.Measurements {
		m.State = domain.MeasurementCompleted
		measurements[i] = m
	}
	shapes := make([]domain.Shape, len(doc.Shapes))
	for i, s := range doc.Shapes {
		shapes[i] = copyShape(s)
	}
	templates := make([]domain.Template, len(doc.Templates))
	copy(templates, doc.Templates)

	e.inProgress = nil
	e.draft = nil
	e.grids = grids
	e.completed = measurements
	e.shapes = shapes
	e.templates = templates
	e.settings = sanitizeSettings(doc.Settings)
	e.activeGrid = ""
	if doc.Grids.ActiveID != nil {
		e.activeGrid = *doc.Grids.ActiveID
	}

	e.bus.publish(EventDataImported, e.ExportAll())
	return nil
}

func (e *Engine) validateDocument(doc domain.Document) error {
	switch {
	case doc.SchemaVersion == 0 && e.cfg.StrictImportVersion:
		return fmt.Errorf("document has no schemaVersion: %w", domain.ErrImportValidation)
	case doc.SchemaVersion > domain.SchemaVersion:
		return fmt.Errorf("document schemaVersion %d is newer than supported %d: %w",
			doc.SchemaVersion, domain.SchemaVersion, domain.ErrImportValidation)
	}

	ids := make(map[string]struct{}, len(doc.Grids.Profiles))
	for _, g := range doc.Grids.Profiles {
		if g.ID == "" {
			return fmt.Errorf("grid profile %q has no id: %w", g.Name, domain.ErrImportValidation)
		}
		if _, dup := ids[g.ID]; dup {
			return fmt.Errorf("duplicate grid id %q: %w", g.ID, domain.ErrImportValidation)
		}
		ids[g.ID] = struct{}{}
		if err := validateGrid(g); err != nil {
			return fmt.Errorf("grid %q: %s: %w", g.ID, err, domain.ErrImportValidation)
		}
	}
	if doc.Grids.ActiveID != nil {
		if _, ok := ids[*doc.Grids.ActiveID]; !ok {
			return fmt.Errorf("active grid %q not among profiles: %w", *doc.Grids.ActiveID, domain.ErrImportValidation)
		}
	}

	for _, m := range doc.Measurements {
		if m.ID == "" {
			return fmt.Errorf("measurement without id: %w", domain.ErrImportValidation)
		}
		if m.PixelDistance < 0 || m.GridDistance < 0 {
			return fmt.Errorf("measurement %q has negative distance: %w", m.ID, domain.ErrImportValidation)
		}
	}

	for _, s := range doc.Shapes {
		if err := validateImportedShape(s); err != nil {
			return err
		}
	}

	for _, t := range doc.Templates {
		if err := validateTemplate(t); err != nil {
			return fmt.Errorf("template %q: %s: %w", t.ID, err, domain.ErrImportValidation)
		}
	}
	return nil
}

func validateImportedShape(s domain.Shape) error {
	if s.ID == "" {
		return fmt.Errorf("shape without id: %w", domain.ErrImportValidation)
	}
	switch s.Kind {
	case domain.ShapeRectangle, domain.ShapeCircle, domain.ShapeEllipse:
		if len(s.Points) < 2 {
			return fmt.Errorf("shape %q needs 2 control points: %w", s.ID, domain.ErrImportValidation)
		}
	case domain.ShapePolygon:
		if len(s.Points) < 3 {
			return fmt.Errorf("polygon %q needs 3 control points: %w", s.ID, domain.ErrImportValidation)
		}
	case domain.ShapeArc:
		if s.Arc == nil || s.Arc.Radius <= 0 {
			return fmt.Errorf("arc %q lacks valid parameters: %w", s.ID, domain.ErrImportValidation)
		}
	default:
		return fmt.Errorf("shape %q has unknown kind %q: %w", s.ID, s.Kind, domain.ErrImportValidation)
	}
	return nil
}
