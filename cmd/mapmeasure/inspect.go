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
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [dir]",
	Short: "Print a summary of a session",
	Long:  "Show grid profiles, measurement and shape counts, templates and settings of a session directory.",
	Args:  cobra.ExactArgs(1),
	Run:   runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) {
	sh, err := openSession(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		os.Exit(1)
	}
	doc := sh.Doc

	fmt.Println("Session Summary")
	fmt.Println("===============")
	fmt.Printf("Directory: %s\n", sh.Root)
	fmt.Printf("Schema version: %d\n\n", doc.SchemaVersion)

	fmt.Printf("Grid profiles (%d):\n", len(doc.Grids.Profiles))
	for _, g := range doc.Grids.Profiles {
		marker := " "
		if doc.Grids.ActiveID != nil && *doc.Grids.ActiveID == g.ID {
			marker = "*"
		}
		kind := string(g.Kind)
		if g.Orientation != "" {
			kind = fmt.Sprintf("%s (%s)", kind, g.Orientation)
		}
		fmt.Printf("  %s %s - %s, %.0f px/cell, %.1f %s/cell\n", marker, g.Name, kind, g.CellSize, g.Scale, g.Unit)
	}
	fmt.Println()

	fmt.Printf("Measurements: %d\n", len(doc.Measurements))
	fmt.Printf("Shapes: %d\n", len(doc.Shapes))
	fmt.Printf("Templates: %d\n", len(doc.Templates))
	fmt.Println()

	s := doc.Settings
	fmt.Println("Settings:")
	fmt.Printf("  Default unit: %s, precision: %d\n", s.DefaultUnit, s.Precision)
	fmt.Printf("  Snap to grid: %v (tolerance %.0f px)\n", s.SnapToGrid, s.SnapTolerance)
	fmt.Printf("  History: max %d, auto-save %v\n", s.MaxHistorySize, s.AutoSaveHistory)
}
