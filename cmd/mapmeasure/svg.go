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

	"mapmeasure/internal/export"
)

var (
	svgOut    string
	svgWidth  float64
	svgHeight float64
	svgNoGrid bool
	svgLabels bool
)

var svgCmd = &cobra.Command{
	Use:   "svg [dir]",
	Short: "Render the session scene to an SVG file",
	Long:  "Render the active grid, completed measurements and committed shapes into a single SVG. Relative output paths land in the session's exports folder.",
	Args:  cobra.ExactArgs(1),
	Run:   runSVG,
}

func init() {
	rootCmd.AddCommand(svgCmd)
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "scene.svg", "output file")
	svgCmd.Flags().Float64Var(&svgWidth, "width", 1000, "viewBox width in map pixels")
	svgCmd.Flags().Float64Var(&svgHeight, "height", 800, "viewBox height in map pixels")
	svgCmd.Flags().BoolVar(&svgNoGrid, "no-grid", false, "omit the grid overlay")
	svgCmd.Flags().BoolVar(&svgLabels, "labels", false, "draw measurement labels")
}

func runSVG(cmd *cobra.Command, args []string) {
	sh, err := openSession(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		os.Exit(1)
	}
	opt := export.SVGOptions{
		Width:       svgWidth,
		Height:      svgHeight,
		IncludeGrid: !svgNoGrid,
		ShowLabels:  svgLabels,
	}
	if err := export.ExportSessionSVG(sh, svgOut, opt); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting SVG: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("SVG written:", svgOut)
}
