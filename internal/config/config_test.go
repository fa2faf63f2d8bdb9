/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"testing"
)

func TestEnvOverridesStoreDSN(t *testing.T) {
	old := os.Getenv(EnvStoreDSN)
	_ = os.Setenv(EnvStoreDSN, "postgres://example.test:5432/mme")
	t.Cleanup(func() { _ = os.Setenv(EnvStoreDSN, old) })
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := cfg.Store.DSN, "postgres://example.test:5432/mme"; got != want {
		t.Fatalf("Store.DSN = %q, want %q", got, want)
	}
}

func TestEnvOverridesTelemetry(t *testing.T) {
	old := os.Getenv(EnvTelemetryOptIn)
	_ = os.Setenv(EnvTelemetryOptIn, "true")
	t.Cleanup(func() { _ = os.Setenv(EnvTelemetryOptIn, old) })
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatalf("General.TelemetryOptIn expected true from env override")
	}
}

func TestEnvOverridesStrictImport(t *testing.T) {
	old := os.Getenv(EnvStrictImport)
	_ = os.Setenv(EnvStrictImport, "1")
	t.Cleanup(func() { _ = os.Setenv(EnvStrictImport, old) })
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.General.StrictImportVersion {
		t.Fatalf("General.StrictImportVersion expected true from env override")
	}
}

func TestMergeIncludesHistoryEnabled(t *testing.T) {
	// Given a file config that disables history, mergeInto should carry it through
	dst := Defaults()
	src := Defaults()
	src.General.HistoryEnabled = false
	mergeInto(&dst, &src)
	if dst.General.HistoryEnabled {
		t.Fatalf("HistoryEnabled was not merged from file config")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "C:/tmp/mme.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "C:/tmp/mme.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	oldLevel := os.Getenv(EnvLogLevel)
	oldFmt := os.Getenv(EnvLogFormat)
	oldSrc := os.Getenv(EnvLogSource)
	oldFile := os.Getenv(EnvLogFile)
	_ = os.Setenv(EnvLogLevel, "error")
	_ = os.Setenv(EnvLogFormat, "json")
	_ = os.Setenv(EnvLogSource, "1")
	_ = os.Setenv(EnvLogFile, "X:/mme.log")
	t.Cleanup(func() {
		_ = os.Setenv(EnvLogLevel, oldLevel)
		_ = os.Setenv(EnvLogFormat, oldFmt)
		_ = os.Setenv(EnvLogSource, oldSrc)
		_ = os.Setenv(EnvLogFile, oldFile)
	})
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "X:/mme.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

type fakeTokenStore struct{ m map[string]string }

func (f *fakeTokenStore) Get(service, key string) (string, error) { return f.m[service+"/"+key], nil }
func (f *fakeTokenStore) Set(service, key, value string) error {
	f.m[service+"/"+key] = value
	return nil
}
func (f *fakeTokenStore) Delete(service, key string) error {
	delete(f.m, service+"/"+key)
	return nil
}

func TestTokenRoundTrip(t *testing.T) {
	old := tokenStore
	fs := &fakeTokenStore{m: map[string]string{}}
	tokenStore = fs
	t.Cleanup(func() { tokenStore = old })

	t.Setenv("HOME", t.TempDir())
	if err := Save(Defaults(), "secret-token"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	_, tok, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if tok != "secret-token" {
		t.Fatalf("token = %q, want %q", tok, "secret-token")
	}
}
