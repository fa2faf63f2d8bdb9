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
	"strconv"

	"mapmeasure/internal/domain"
	"mapmeasure/internal/geom"
)

// Measurement lifecycle: Idle -> InProgress -> Completed | Cancelled.
// At most one measurement may be in progress engine-wide; completed
// measurements are appended to the persisted collection, cancelled ones are
// discarded.

// StartMeasurement snaps the point and opens a new in-progress measurement
// with start == end. A second start without an intervening complete or
// cancel fails.
func (e *Engine) StartMeasurement(p geom.Point) (domain.Measurement, error) {
	if e.inProgress != nil {
		return domain.Measurement{}, fmt.Errorf("measurement %s still open: %w", e.inProgress.ID, domain.ErrConcurrentMeasurement)
	}
	sp := e.Snap(p)
	m := domain.Measurement{
		ID:    newID(),
		Start: sp,
		End:   sp,
		Color: e.settings.MeasurementLineColor,
		State: domain.MeasurementInProgress,
	}
	e.inProgress = &m
	e.bus.publish(EventMeasurementStarted, m)
	return m, nil
}

// UpdateMeasurement moves the end point of the in-progress measurement and
// recomputes distances and angle. Updating a measurement that is not in
// progress fails with ErrInvalidState; an unknown id fails with ErrNotFound.
func (e *Engine) UpdateMeasurement(id string, p geom.Point) (domain.Measurement, error) {
	if e.inProgress == nil || e.inProgress.ID != id {
		if e.knownMeasurement(id) {
			return domain.Measurement{}, fmt.Errorf("measurement %s is not in progress: %w", id, domain.ErrInvalidState)
		}
		return domain.Measurement{}, fmt.Errorf("measurement %s: %w", id, domain.ErrNotFound)
	}
	m := e.inProgress
	m.End = e.Snap(p)
	m.PixelDistance = geom.Distance(m.Start, m.End)
	m.GridDistance = e.ToGridDistance(m.PixelDistance)
	m.AngleDegrees = geom.AngleDegrees(m.Start, m.End)
	e.bus.publish(EventMeasurementUpdated, *m)
	return *m, nil
}

// CompleteMeasurement finalizes the in-progress measurement and appends it
// to the persisted collection, trimming the oldest entries beyond the
// maxHistorySize setting.
func (e *Engine) CompleteMeasurement(id string) (domain.Measurement, error) {
	if e.inProgress == nil || e.inProgress.ID != id {
		if e.knownMeasurement(id) {
			return domain.Measurement{}, fmt.Errorf("measurement %s is not in progress: %w", id, domain.ErrInvalidState)
		}
		return domain.Measurement{}, fmt.Errorf("measurement %s: %w", id, domain.ErrNotFound)
	}
	m := *e.inProgress
	m.State = domain.MeasurementCompleted
	e.inProgress = nil
	e.completed = append(e.completed, m)
	if max := e.settings.MaxHistorySize; max > 0 && len(e.completed) > max {
		e.completed = e.completed[len(e.completed)-max:]
	}
	if e.cfg.History != nil && e.settings.AutoSaveHistory {
		if err := e.cfg.History.Record(m); err != nil {
			e.log.Warn("history record failed", slog.String("id", m.ID), slog.Any("err", err))
		}
	}
	e.bus.publish(EventMeasurementCompleted, m)
	return m, nil
}

// CancelMeasurement discards the in-progress measurement without persisting.
func (e *Engine) CancelMeasurement(id string) error {
	if e.inProgress == nil || e.inProgress.ID != id {
		if e.knownMeasurement(id) {
			return fmt.Errorf("measurement %s is not in progress: %w", id, domain.ErrInvalidState)
		}
		return fmt.Errorf("measurement %s: %w", id, domain.ErrNotFound)
	}
	m := *e.inProgress
	m.State = domain.MeasurementCancelled
	e.inProgress = nil
	e.bus.publish(EventMeasurementCancelled, m)
	return nil
}

// ClearMeasurements empties the completed collection and discards any
// in-progress measurement (emitting measurementCancelled for it).
func (e *Engine) ClearMeasurements() {
	if e.inProgress != nil {
		_ = e.CancelMeasurement(e.inProgress.ID)
	}
	e.completed = nil
}

// ClearAll clears measurements and shapes. With keepSettings false it also
// empties the grid registry (dropping the active pointer) and the template
// catalog and resets settings to their defaults, mirroring the combined
// clear-all affordance in the UI.
func (e *Engine) ClearAll(keepSettings bool) {
	e.ClearMeasurements()
	e.CancelShape()
	e.shapes = nil
	if !keepSettings {
		e.grids = nil
		e.templates = nil
		if e.activeGrid != "" {
			e.activeGrid = ""
			e.bus.publish(EventActiveGridChanged, nil)
		}
		e.settings = DefaultSettings()
		e.bus.publish(EventSettingsUpdated, e.settings)
	}
}

// Measurements returns a snapshot of the completed collection. An
// in-progress measurement is not part of it until completion.
func (e *Engine) Measurements() []domain.Measurement {
	out := make([]domain.Measurement, len(e.completed))
	copy(out, e.completed)
	return out
}

// InProgressMeasurement returns a copy of the open measurement, if any.
func (e *Engine) InProgressMeasurement() (domain.Measurement, bool) {
	if e.inProgress == nil {
		return domain.Measurement{}, false
	}
	return *e.inProgress, true
}

// FormatDistance renders a grid-unit distance using the precision setting
// and the active grid's unit, falling back to the default unit. Pure
// formatting; no state is touched.
func (e *Engine) FormatDistance(value float64) string {
	prec := e.settings.Precision
	if prec < 0 {
		prec = 0
	}
	if prec > 3 {
		prec = 3
	}
	unit := e.settings.DefaultUnit
	if g := e.activeGridProfile(); g != nil {
		unit = g.Unit
	}
	s := strconv.FormatFloat(value, 'f', prec, 64)
	if suffix := unitSuffix(unit); suffix != "" {
		return s + " " + suffix
	}
	return s
}

func unitSuffix(u domain.Unit) string {
	switch u {
	case domain.UnitFeet:
		return "ft"
	case domain.UnitMeters:
		return "m"
	case domain.UnitSquares:
		return "sq"
	case domain.UnitHexes:
		return "hex"
	default:
		return ""
	}
}

func (e *Engine) knownMeasurement(id string) bool {
	for i := range e.completed {
		if e.completed[i].ID == id {
			return true
		}
	}
	return false
}
