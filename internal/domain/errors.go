/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "errors"

// Engine error taxonomy. Callers match with errors.Is; engine operations wrap
// these with context via fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidGrid signals a grid profile violating its invariants
	// (cell size or scale not strictly positive, opacity out of range).
	ErrInvalidGrid = errors.New("invalid grid profile")

	// ErrNotFound signals an unknown entity id.
	ErrNotFound = errors.New("not found")

	// ErrConcurrentMeasurement signals a second in-progress measurement.
	ErrConcurrentMeasurement = errors.New("measurement already in progress")

	// ErrInvalidState signals an operation that is illegal for the entity's
	// current lifecycle state.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrDegenerateShape signals geometry with zero or undefined extent.
	ErrDegenerateShape = errors.New("degenerate shape")

	// ErrInvalidTemplate signals a template with a non-positive size.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrImportValidation signals a malformed or invariant-violating session
	// document; a failed import leaves existing state untouched.
	ErrImportValidation = errors.New("import validation failed")
)
