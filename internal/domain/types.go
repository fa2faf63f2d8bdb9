/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model of the measurement and grid engine.
// Every struct serializes to the human-readable JSON session document, so
// field names follow the persisted layout.

import "mapmeasure/internal/geom"

// GridKind selects the grid topology.
type GridKind string

const (
	GridSquare GridKind = "square"
	GridHex    GridKind = "hex"
)

// HexOrientation selects the hex layout; meaningful only for hex grids.
type HexOrientation string

const (
	HexFlat   HexOrientation = "flat"
	HexPointy HexOrientation = "pointy"
)

// Unit is the real-world unit a grid cell represents.
type Unit string

const (
	UnitFeet    Unit = "feet"
	UnitMeters  Unit = "meters"
	UnitSquares Unit = "squares"
	UnitHexes   Unit = "hexes"
	UnitCustom  Unit = "custom"
)

// GridProfile is a named configuration of a tactical grid.
// Invariant: CellSize > 0 and Scale > 0.
type GridProfile struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Kind        GridKind       `json:"kind"`
	CellSize    float64        `json:"cellSize"` // pixels per cell edge
	Scale       float64        `json:"scale"`    // real-world units per cell
	Unit        Unit           `json:"unit"`
	Orientation HexOrientation `json:"orientation,omitempty"`
	Visible     bool           `json:"visible"`
	SnapEnabled bool           `json:"snapEnabled"`
	Opacity     float64        `json:"opacity"` // 0..1
	Color       Color          `json:"color"`
}

// MeasurementState tracks the ruler lifecycle.
type MeasurementState string

const (
	MeasurementInProgress MeasurementState = "in_progress"
	MeasurementCompleted  MeasurementState = "completed"
	MeasurementCancelled  MeasurementState = "cancelled"
)

// Measurement is a single ruler line between two points. Distances and the
// angle are derived on every update and frozen on completion. The state
// field is runtime-only; the persisted collection holds completed entries.
type Measurement struct {
	ID            string           `json:"id"`
	Start         geom.Point       `json:"start"`
	End           geom.Point       `json:"end"`
	PixelDistance float64          `json:"pixelDistance"`
	GridDistance  float64          `json:"gridDistance"`
	AngleDegrees  float64          `json:"angleDegrees"`
	Label         string           `json:"label,omitempty"`
	Color         Color            `json:"color"`
	State         MeasurementState `json:"-"`
}

// ShapeKind enumerates the supported geometric figures.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapePolygon   ShapeKind = "polygon"
	ShapeEllipse   ShapeKind = "ellipse"
	ShapeArc       ShapeKind = "arc"
)

// ArcParams parameterizes an arc shape: center, radius and the start/end
// angles in degrees. The engine evaluates arcs as circular sectors.
type ArcParams struct {
	Center     geom.Point `json:"center"`
	Radius     float64    `json:"radius"`
	StartAngle float64    `json:"startAngle"`
	EndAngle   float64    `json:"endAngle"`
}

// Shape is a committed, immutable geometric figure with derived area and
// perimeter. Edits require deleting and recreating.
type Shape struct {
	ID        string       `json:"id"`
	Kind      ShapeKind    `json:"kind"`
	Points    []geom.Point `json:"points"`
	Arc       *ArcParams   `json:"arc,omitempty"`
	Area      float64      `json:"area"`
	Perimeter float64      `json:"perimeter"`
	Label     string       `json:"label,omitempty"`
	Color     Color        `json:"color"`
	FillColor Color        `json:"fillColor"`
}

// TemplateType enumerates area-of-effect template categories.
type TemplateType string

const (
	TemplateCone     TemplateType = "cone"
	TemplateSphere   TemplateType = "sphere"
	TemplateLine     TemplateType = "line"
	TemplateCylinder TemplateType = "cylinder"
	TemplateCube     TemplateType = "cube"
	TemplateCustom   TemplateType = "custom"
)

// Template is reusable area-of-effect reference data; never mutated in place.
// Invariant: Size > 0.
type Template struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Type          TemplateType `json:"type"`
	Size          float64      `json:"size"`
	SecondarySize float64      `json:"secondarySize,omitempty"` // e.g. cylinder height
	Color         Color        `json:"color"`
	FillColor     Color        `json:"fillColor"`
	Opacity       float64      `json:"opacity"`
	Rotatable     bool         `json:"rotatable"`
	SnapToGrid    bool         `json:"snapToGrid"`
	ShowArea      bool         `json:"showArea"`
	Description   string       `json:"description,omitempty"`
}

// Settings is the single global display/behavior record of an engine
// instance. Updates use partial-merge semantics.
type Settings struct {
	DefaultUnit              Unit    `json:"defaultUnit"`
	Precision                int     `json:"precision"` // decimal places, 0..3
	ShowTooltips             bool    `json:"showTooltips"`
	ShowDistanceLabels       bool    `json:"showDistanceLabels"`
	ShowAngleMarkers         bool    `json:"showAngleMarkers"`
	MeasurementLineColor     Color   `json:"measurementLineColor"`
	MeasurementLineThickness float64 `json:"measurementLineThickness"`
	HighlightColor           Color   `json:"highlightColor"`
	SnapToGrid               bool    `json:"snapToGrid"`
	SnapTolerance            float64 `json:"snapTolerance"` // pixels
	MaxHistorySize           int     `json:"maxHistorySize"`
	AutoSaveHistory          bool    `json:"autoSaveHistory"`
}

// GridState is the grids section of the session document.
type GridState struct {
	Profiles []GridProfile `json:"profiles"`
	ActiveID *string       `json:"activeId"`
}

// SchemaVersion is the current session document layout version.
const SchemaVersion = 1

// Document is the full persisted engine state. Measurements holds completed
// measurements only; an in-progress ruler is never exported.
type Document struct {
	SchemaVersion int           `json:"schemaVersion"`
	Measurements  []Measurement `json:"measurements"`
	Shapes        []Shape       `json:"shapes"`
	Grids         GridState     `json:"grids"`
	Templates     []Template    `json:"templates"`
	Settings      Settings      `json:"settings"`
}

// Color is an RGBA color serialized component-wise.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}
