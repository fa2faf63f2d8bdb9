/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import "mapmeasure/internal/domain"

// Stock content for fresh sessions: one battle-map square grid, one pointy
// hex grid, and the standard area-of-effect template set.

func DefaultGridProfiles() []domain.GridProfile {
	return []domain.GridProfile{
		{
			Name:        "Battle Map (5 ft squares)",
			Kind:        domain.GridSquare,
			CellSize:    50,
			Scale:       5,
			Unit:        domain.UnitFeet,
			Visible:     true,
			SnapEnabled: true,
			Opacity:     0.35,
			Color:       domain.Color{R: 120, G: 120, B: 120, A: 255},
		},
		{
			Name:        "Hex Crawl (pointy)",
			Kind:        domain.GridHex,
			CellSize:    40,
			Scale:       5,
			Unit:        domain.UnitFeet,
			Orientation: domain.HexPointy,
			Visible:     true,
			SnapEnabled: true,
			Opacity:     0.35,
			Color:       domain.Color{R: 120, G: 120, B: 120, A: 255},
		},
	}
}

func DefaultTemplates() []domain.Template {
	aoe := func(name string, typ domain.TemplateType, size float64, desc string) domain.Template {
		return domain.Template{
			Name:        name,
			Type:        typ,
			Size:        size,
			Color:       domain.Color{R: 244, G: 67, B: 54, A: 255},
			FillColor:   domain.Color{R: 244, G: 67, B: 54, A: 90},
			Opacity:     0.35,
			Rotatable:   true,
			SnapToGrid:  true,
			ShowArea:    true,
			Description: desc,
		}
	}
	cylinder := aoe("Cylinder 10 ft", domain.TemplateCylinder, 10, "Radius 10 ft cylinder")
	cylinder.SecondarySize = 20 // height
	cylinder.Rotatable = false
	sphere := aoe("Sphere 20 ft", domain.TemplateSphere, 20, "Radius 20 ft sphere")
	sphere.Rotatable = false
	return []domain.Template{
		aoe("Cone 15 ft", domain.TemplateCone, 15, "15 ft cone"),
		aoe("Cone 30 ft", domain.TemplateCone, 30, "30 ft cone"),
		aoe("Cone 60 ft", domain.TemplateCone, 60, "60 ft cone"),
		sphere,
		aoe("Line 30 ft", domain.TemplateLine, 30, "30 ft line, 5 ft wide"),
		aoe("Line 60 ft", domain.TemplateLine, 60, "60 ft line, 5 ft wide"),
		aoe("Line 100 ft", domain.TemplateLine, 100, "100 ft line, 5 ft wide"),
		cylinder,
		aoe("Cube 15 ft", domain.TemplateCube, 15, "15 ft cube"),
	}
}
