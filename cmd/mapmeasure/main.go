/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mapmeasure/internal/config"
	"mapmeasure/internal/crash"
	applog "mapmeasure/internal/log"
	"mapmeasure/internal/storage"
	"mapmeasure/internal/telemetry"
	"mapmeasure/internal/version"
)

// currentSession is set by commands that open a session so the crash handler
// can autosave it.
var currentSession *storage.SessionHandle

// appConfig and storeToken are loaded once before any command runs. The
// token, when set, is the session-store DSN kept in the OS keyring instead
// of the config file.
var (
	appConfig  config.AppConfig
	storeToken string
)

var rootCmd = &cobra.Command{
	Use:   "mapmeasure",
	Short: "Measurement and grid engine for tabletop battle maps",
	Long: `mapmeasure manages tactical grids, distance measurements, geometric
shapes and area-of-effect templates for virtual tabletop sessions.
Session state lives in a human-readable session.json per session directory.`,
	Version: version.String(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, token, err := config.Load()
		if err != nil {
			cfg = config.Defaults()
		}
		appConfig = cfg
		storeToken = token
		applog.Init(applog.Options{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.Source,
			File:      cfg.Logging.File,
		})
		if cfg.General.TelemetryOptIn {
			tcfg := telemetry.FromEnv()
			tcfg.OptIn = true
			telemetry.NewDefault(tcfg)
		}
	},
}

func main() {
	defer func() { crash.Recover(currentSession) }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openSession loads the session at dir and registers it for crash autosave.
func openSession(dir string) (*storage.SessionHandle, error) {
	sh, err := storage.Open(dir)
	if err != nil {
		return nil, err
	}
	currentSession = sh
	return sh, nil
}
