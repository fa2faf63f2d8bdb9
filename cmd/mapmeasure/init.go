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
	"path/filepath"

	"github.com/spf13/cobra"

	"mapmeasure/internal/engine"
	"mapmeasure/internal/storage"
)

var initBare bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a new session directory",
	Long: `Create a session directory with a fresh session.json. By default the
session is seeded with the stock grid profiles and spell templates; use
--bare for an empty session.`,
	Args: cobra.ExactArgs(1),
	Run:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initBare, "bare", false, "start without default grids and templates")
}

func runInit(cmd *cobra.Command, args []string) {
	abs, _ := filepath.Abs(args[0])

	eng := engine.New(engine.Config{StrictImportVersion: appConfig.General.StrictImportVersion})
	if !initBare {
		if err := eng.PreloadDefaults(); err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding defaults: %v\n", err)
			os.Exit(1)
		}
	}

	sh, err := storage.InitSession(abs, eng.ExportAll())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		os.Exit(1)
	}
	currentSession = sh
	fmt.Println("Created session at", abs)
}
