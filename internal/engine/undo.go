/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"mapmeasure/internal/domain"
	"mapmeasure/internal/undo"
)

// Checkpoint records the current document on the undo stack. The UI layer
// calls it before applying a destructive edit; rapid successive checkpoints
// coalesce into one undo step.
func (e *Engine) Checkpoint() {
	e.undoMgr.Push(e.snapshot())
}

// Undo restores the most recent checkpoint, moving the current document to
// the redo stack. It reports false when the undo stack is empty.
func (e *Engine) Undo() (bool, error) {
	s, ok := e.undoMgr.Undo(e.snapshot())
	if !ok {
		return false, nil
	}
	if err := e.restore(s); err != nil {
		return false, err
	}
	return true, nil
}

// Redo re-applies the most recently undone document.
func (e *Engine) Redo() (bool, error) {
	s, ok := e.undoMgr.Redo(e.snapshot())
	if !ok {
		return false, nil
	}
	if err := e.restore(s); err != nil {
		return false, err
	}
	return true, nil
}

// UndoDepths reports the undo and redo stack depths.
func (e *Engine) UndoDepths() (undoDepth, redoDepth int) {
	return e.undoMgr.Depths()
}

func (e *Engine) snapshot() undo.Snapshot {
	b, err := json.Marshal(e.ExportAll())
	if err != nil {
		// Document types marshal without error; keep an empty blob if not.
		b = nil
	}
	return undo.Snapshot{Blob: b, TS: time.Now()}
}

func (e *Engine) restore(s undo.Snapshot) error {
	var doc domain.Document
	if err := json.Unmarshal(s.Blob, &doc); err != nil {
		return fmt.Errorf("decode undo snapshot: %w", err)
	}
	return e.ImportAll(doc)
}
