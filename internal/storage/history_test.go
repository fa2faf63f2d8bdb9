/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"fmt"
	"os"
	"testing"

	"mapmeasure/internal/domain"
	"mapmeasure/internal/geom"
)

func TestInitOrOpenHistoryCreatesDatabase(t *testing.T) {
	root := t.TempDir()
	db, err := InitOrOpenHistory(root)
	if err != nil {
		t.Fatalf("InitOrOpenHistory error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := os.Stat(HistoryPath(root)); err != nil {
		t.Fatalf("history file missing: %v", err)
	}
	var schema int
	if err := db.QueryRow(`SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read schema version: %v", err)
	}
	if schema != historySchemaVersion {
		t.Fatalf("schema version = %d, want %d", schema, historySchemaVersion)
	}
}

func TestHistoryStoreRecordAndRecent(t *testing.T) {
	root := t.TempDir()
	hs := NewHistoryStore(root, 0)

	m := domain.Measurement{
		ID:            "m-1",
		Start:         geom.Point{X: 0, Y: 0},
		End:           geom.Point{X: 3, Y: 4},
		PixelDistance: 5,
		GridDistance:  0.5,
		AngleDegrees:  53.13,
		Label:         "charge range",
	}
	if err := hs.Record(m); err != nil {
		t.Fatalf("Record error: %v", err)
	}

	recs, err := hs.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	got := recs[0].Measurement
	if got.ID != "m-1" || got.PixelDistance != 5 || got.Label != "charge range" {
		t.Fatalf("record mismatch: %#v", got)
	}
	if got.State != domain.MeasurementCompleted {
		t.Fatalf("recovered measurement should be completed, got %q", got.State)
	}
	if recs[0].RecordedAt.IsZero() {
		t.Fatalf("recorded timestamp missing")
	}
}

func TestHistoryStorePrunesBeyondKeepLast(t *testing.T) {
	root := t.TempDir()
	hs := NewHistoryStore(root, 3)

	for i := 0; i < 5; i++ {
		m := domain.Measurement{
			ID:            fmt.Sprintf("m-%d", i),
			End:           geom.Point{X: float64(i), Y: 0},
			PixelDistance: float64(i),
		}
		if err := hs.Record(m); err != nil {
			t.Fatalf("Record %d error: %v", i, err)
		}
	}

	recs, err := hs.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records after pruning, got %d", len(recs))
	}
	// Newest first
	if recs[0].Measurement.ID != "m-4" || recs[2].Measurement.ID != "m-2" {
		t.Fatalf("unexpected order/content: %q %q", recs[0].Measurement.ID, recs[2].Measurement.ID)
	}
}

func TestHistoryStoreClear(t *testing.T) {
	root := t.TempDir()
	hs := NewHistoryStore(root, 0)
	if err := hs.Record(domain.Measurement{ID: "m-1", PixelDistance: 1}); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if err := hs.Clear(context.Background()); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	recs, err := hs.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty history, got %d records", len(recs))
	}
}
