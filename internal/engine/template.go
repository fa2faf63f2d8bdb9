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

// Templates are reference data: created once, never mutated in place.
// Placing a template on the map is done by external collaborators with the
// template's parameters.

func validateTemplate(t domain.Template) error {
	if t.Size <= 0 {
		return fmt.Errorf("template size must be positive, got %v: %w", t.Size, domain.ErrInvalidTemplate)
	}
	switch t.Type {
	case domain.TemplateCone, domain.TemplateSphere, domain.TemplateLine,
		domain.TemplateCylinder, domain.TemplateCube, domain.TemplateCustom:
	default:
		return fmt.Errorf("template type %q unknown: %w", t.Type, domain.ErrInvalidTemplate)
	}
	return nil
}

// CreateTemplate validates and stores an area-of-effect template, returning
// its id.
func (e *Engine) CreateTemplate(t domain.Template) (string, error) {
	if err := validateTemplate(t); err != nil {
		return "", err
	}
	if t.ID == "" {
		t.ID = newID()
	}
	if _, err := e.Template(t.ID); err == nil {
		return "", fmt.Errorf("template id %q already exists: %w", t.ID, domain.ErrInvalidTemplate)
	}
	e.templates = append(e.templates, t)
	e.bus.publish(EventTemplateCreated, t)
	return t.ID, nil
}

// Templates returns a snapshot of the catalog.
func (e *Engine) Templates() []domain.Template {
	out := make([]domain.Template, len(e.templates))
	copy(out, e.templates)
	return out
}

// Template returns a copy of a single catalog entry.
func (e *Engine) Template(id string) (domain.Template, error) {
	for _, t := range e.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Template{}, fmt.Errorf("template %q: %w", id, domain.ErrNotFound)
}
