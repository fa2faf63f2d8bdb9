/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mapmeasure/internal/engine"
	"mapmeasure/internal/geom"
	"mapmeasure/internal/storage"
	"mapmeasure/internal/telemetry"
)

var (
	measureX1, measureY1 float64
	measureX2, measureY2 float64
	measureLabel         string
	measureSave          bool
)

var measureCmd = &cobra.Command{
	Use:   "measure [dir]",
	Short: "Measure the distance between two map points",
	Long: `Run a single ruler measurement through the session's engine. Points snap
to the active grid when snapping is enabled. With --save the result is
appended to the session document; when the auto-save history setting is on
it is also recorded in the local history database.`,
	Args: cobra.ExactArgs(1),
	Run:  runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64Var(&measureX1, "x1", 0.0, "X coordinate of the start point")
	measureCmd.Flags().Float64Var(&measureY1, "y1", 0.0, "Y coordinate of the start point")
	measureCmd.Flags().Float64Var(&measureX2, "x2", 0.0, "X coordinate of the end point")
	measureCmd.Flags().Float64Var(&measureY2, "y2", 0.0, "Y coordinate of the end point")
	measureCmd.Flags().StringVar(&measureLabel, "label", "", "optional label for a saved measurement")
	measureCmd.Flags().BoolVar(&measureSave, "save", false, "persist the measurement in the session")

	measureCmd.MarkFlagsRequiredTogether("x1", "y1", "x2", "y2")
}

func runMeasure(cmd *cobra.Command, args []string) {
	sh, err := openSession(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		os.Exit(1)
	}

	ecfg := engine.Config{StrictImportVersion: appConfig.General.StrictImportVersion}
	if appConfig.General.HistoryEnabled {
		ecfg.History = storage.NewHistoryStore(sh.Root, sh.Doc.Settings.MaxHistorySize)
	}
	eng := engine.New(ecfg)
	telemetry.ObserveEngine(eng)
	defer telemetry.Flush(context.Background())
	if err := eng.ImportAll(sh.Doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session into engine: %v\n", err)
		os.Exit(1)
	}

	m, err := eng.StartMeasurement(geom.Point{X: measureX1, Y: measureY1})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting measurement: %v\n", err)
		os.Exit(1)
	}
	if _, err := eng.UpdateMeasurement(m.ID, geom.Point{X: measureX2, Y: measureY2}); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating measurement: %v\n", err)
		os.Exit(1)
	}
	done, err := eng.CompleteMeasurement(m.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error completing measurement: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Measurement")
	fmt.Println("===========")
	fmt.Printf("Start: (%g, %g)\n", done.Start.X, done.Start.Y)
	fmt.Printf("End:   (%g, %g)\n", done.End.X, done.End.Y)
	fmt.Printf("Pixel distance: %.2f px\n", done.PixelDistance)
	fmt.Printf("Grid distance:  %s\n", eng.FormatDistance(done.GridDistance))
	fmt.Printf("Angle: %.1f degrees\n", done.AngleDegrees)

	if measureSave {
		doc := eng.ExportAll()
		if measureLabel != "" {
			for i := range doc.Measurements {
				if doc.Measurements[i].ID == done.ID {
					doc.Measurements[i].Label = measureLabel
				}
			}
		}
		sh.Doc = doc
		if err := storage.Save(sh); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("\nSaved to session.")
	}
}
