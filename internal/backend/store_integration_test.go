/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package backend

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"mapmeasure/internal/domain"
)

func openStoreForTest(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("MME_PG_TEST_DSN")
	if dsn == "" {
		dsn = os.Getenv("MME_STORE_DSN")
	}
	if dsn == "" {
		t.Skip("MME_PG_TEST_DSN not set; skipping postgres integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st, err := Open(ctx, Config{DSN: dsn, Timeout: 5 * time.Second})
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	st := openStoreForTest(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := fmt.Sprintf("it-session-%d", time.Now().UnixNano())
	t.Cleanup(func() { _ = st.DeleteSession(context.Background(), name) })

	doc := domain.Document{
		SchemaVersion: domain.SchemaVersion,
		Measurements:  []domain.Measurement{{ID: "m-1", PixelDistance: 5, GridDistance: 0.5}},
		Shapes:        []domain.Shape{},
		Grids:         domain.GridState{Profiles: []domain.GridProfile{}},
		Templates:     []domain.Template{},
		Settings:      domain.Settings{DefaultUnit: domain.UnitFeet, Precision: 1},
	}

	v1, err := st.SaveDocument(ctx, name, doc)
	if err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if v1 != 1 {
		t.Fatalf("first snapshot version = %d, want 1", v1)
	}

	doc.Settings.Precision = 2
	v2, err := st.SaveDocument(ctx, name, doc)
	if err != nil {
		t.Fatalf("SaveDocument second: %v", err)
	}
	if v2 != 2 {
		t.Fatalf("second snapshot version = %d, want 2", v2)
	}

	got, ver, err := st.LoadDocument(ctx, name)
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if ver != 2 || got.Settings.Precision != 2 {
		t.Fatalf("latest snapshot mismatch: ver=%d precision=%d", ver, got.Settings.Precision)
	}

	list, err := st.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	var found bool
	for _, si := range list {
		if si.Name == name && si.Version == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("session %q not in listing", name)
	}
}

func TestStoreLoadUnknownSession(t *testing.T) {
	st := openStoreForTest(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, _, err := st.LoadDocument(ctx, "definitely-not-there"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
