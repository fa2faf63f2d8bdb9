/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package engine implements the measurement and grid engine behind the map
// ruler, shape and area-of-effect template tools: grid registry with square
// and hex snapping, measurement lifecycle, shape construction, template
// catalog, settings and whole-state export/import.
//
// An Engine is an explicit instance; create one per map or session. It is
// driven by a single UI goroutine and performs no internal locking: all
// operations run synchronously to completion and events fire on the caller's
// stack in operation order.
package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"mapmeasure/internal/domain"
	applog "mapmeasure/internal/log"
	"mapmeasure/internal/undo"
)

// HistoryRecorder receives completed measurements when the autoSaveHistory
// setting is on. Implemented by the storage history index.
type HistoryRecorder interface {
	Record(m domain.Measurement) error
}

// Config controls optional engine collaborators.
type Config struct {
	// History receives completed measurements; nil disables recording.
	History HistoryRecorder
	// StrictImportVersion rejects session documents without a schemaVersion
	// field instead of treating them as version 1.
	StrictImportVersion bool
}

// Tool is the active pointer-routing tool selected by the UI layer. The
// engine itself is tool-agnostic; switching tools only enforces the
// at-most-one-in-progress-entity rule.
type Tool string

const (
	ToolNone     Tool = "none"
	ToolMeasure  Tool = "measure"
	ToolShape    Tool = "shape"
	ToolTemplate Tool = "template"
	ToolGrid     Tool = "grid"
)

// Engine owns the five collections and the event bus. Not safe for
// concurrent use.
type Engine struct {
	cfg Config
	log *slog.Logger
	bus bus

	grids      []domain.GridProfile
	activeGrid string // id, "" means none

	completed  []domain.Measurement
	inProgress *domain.Measurement

	shapes []domain.Shape
	draft  *shapeDraft

	templates []domain.Template
	settings  domain.Settings

	tool    Tool
	undoMgr *undo.Manager
}

// New creates an empty engine with default settings and no grids, shapes,
// measurements or templates. Call PreloadDefaults for the stock grid
// profiles and template catalog.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:      cfg,
		log:      applog.WithComponent("engine"),
		settings: DefaultSettings(),
		tool:     ToolNone,
		undoMgr:  undo.NewManager(undo.Config{MaxDepth: 64}),
	}
}

// PreloadDefaults registers the stock grid profiles (activating the square
// one) and the standard area-of-effect templates. Intended for fresh
// sessions; it appends, so call it once.
func (e *Engine) PreloadDefaults() error {
	for i, g := range DefaultGridProfiles() {
		id, err := e.RegisterGrid(g)
		if err != nil {
			return err
		}
		if i == 0 {
			if err := e.SetActiveGrid(id); err != nil {
				return err
			}
		}
	}
	for _, t := range DefaultTemplates() {
		if _, err := e.CreateTemplate(t); err != nil {
			return err
		}
	}
	return nil
}

// ActiveTool returns the tool last set by the UI layer.
func (e *Engine) ActiveTool() Tool { return e.tool }

// SetActiveTool switches the pointer-routing tool. Any in-progress
// measurement or shape draft is cancelled first, so at most one in-progress
// entity exists engine-wide.
func (e *Engine) SetActiveTool(tool Tool) {
	if e.inProgress != nil {
		_ = e.CancelMeasurement(e.inProgress.ID)
	}
	if e.draft != nil {
		e.CancelShape()
	}
	e.tool = tool
	e.log.Debug("active tool changed", slog.String("tool", string(tool)))
}

func newID() string { return uuid.NewString() }
