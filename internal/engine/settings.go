/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import "mapmeasure/internal/domain"

// DefaultSettings returns the baseline display/behavior record of a fresh
// engine instance.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		DefaultUnit:              domain.UnitFeet,
		Precision:                1,
		ShowTooltips:             true,
		ShowDistanceLabels:       true,
		ShowAngleMarkers:         false,
		MeasurementLineColor:     domain.Color{R: 66, G: 133, B: 244, A: 255},
		MeasurementLineThickness: 2,
		HighlightColor:           domain.Color{R: 255, G: 193, B: 7, A: 200},
		SnapToGrid:               true,
		SnapTolerance:            10,
		MaxHistorySize:           50,
		AutoSaveHistory:          false,
	}
}

// SettingsPatch is a partial update; nil fields keep their prior value.
type SettingsPatch struct {
	DefaultUnit              *domain.Unit
	Precision                *int
	ShowTooltips             *bool
	ShowDistanceLabels       *bool
	ShowAngleMarkers         *bool
	MeasurementLineColor     *domain.Color
	MeasurementLineThickness *float64
	HighlightColor           *domain.Color
	SnapToGrid               *bool
	SnapTolerance            *float64
	MaxHistorySize           *int
	AutoSaveHistory          *bool
}

// UpdateSettings merges the patch into the single settings record,
// sanitizes out-of-range values (precision clamps to 0..3, tolerance and
// history size floor at 0) and returns the full resulting record.
func (e *Engine) UpdateSettings(patch SettingsPatch) domain.Settings {
	s := e.settings
	if patch.DefaultUnit != nil {
		s.DefaultUnit = *patch.DefaultUnit
	}
	if patch.Precision != nil {
		s.Precision = *patch.Precision
	}
	if patch.ShowTooltips != nil {
		s.ShowTooltips = *patch.ShowTooltips
	}
	if patch.ShowDistanceLabels != nil {
		s.ShowDistanceLabels = *patch.ShowDistanceLabels
	}
	if patch.ShowAngleMarkers != nil {
		s.ShowAngleMarkers = *patch.ShowAngleMarkers
	}
	if patch.MeasurementLineColor != nil {
		s.MeasurementLineColor = *patch.MeasurementLineColor
	}
	if patch.MeasurementLineThickness != nil {
		s.MeasurementLineThickness = *patch.MeasurementLineThickness
	}
	if patch.HighlightColor != nil {
		s.HighlightColor = *patch.HighlightColor
	}
	if patch.SnapToGrid != nil {
		s.SnapToGrid = *patch.SnapToGrid
	}
	if patch.SnapTolerance != nil {
		s.SnapTolerance = *patch.SnapTolerance
	}
	if patch.MaxHistorySize != nil {
		s.MaxHistorySize = *patch.MaxHistorySize
	}
	if patch.AutoSaveHistory != nil {
		s.AutoSaveHistory = *patch.AutoSaveHistory
	}
	e.settings = sanitizeSettings(s)
	e.bus.publish(EventSettingsUpdated, e.settings)
	return e.settings
}

// Settings returns a copy of the current record.
func (e *Engine) Settings() domain.Settings { return e.settings }

func sanitizeSettings(s domain.Settings) domain.Settings {
	if s.Precision < 0 {
		s.Precision = 0
	}
	if s.Precision > 3 {
		s.Precision = 3
	}
	if s.SnapTolerance < 0 {
		s.SnapTolerance = 0
	}
	if s.MaxHistorySize < 0 {
		s.MaxHistorySize = 0
	}
	if s.MeasurementLineThickness <= 0 {
		s.MeasurementLineThickness = 1
	}
	return s
}
