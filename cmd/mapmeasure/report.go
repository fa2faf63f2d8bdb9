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
	reportOut   string
	reportTitle string
)

var reportCmd = &cobra.Command{
	Use:   "report [dir]",
	Short: "Export a PDF report of a session",
	Long:  "Write a tabular PDF report (grids, measurements, shapes, templates). Relative output paths land in the session's exports folder.",
	Args:  cobra.ExactArgs(1),
	Run:   runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "report.pdf", "output file")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "report title")
}

func runReport(cmd *cobra.Command, args []string) {
	sh, err := openSession(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		os.Exit(1)
	}
	opt := export.DefaultPDFReportOptions()
	opt.Title = reportTitle
	if err := export.ExportSessionReportPDF(sh, reportOut, opt); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Report written:", reportOut)
}
