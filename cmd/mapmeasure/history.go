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
	"time"

	"github.com/spf13/cobra"

	"mapmeasure/internal/storage"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [dir]",
	Short: "Show the local measurement history",
	Long:  "List completed measurements recorded in the session's embedded history database, newest first.",
	Args:  cobra.ExactArgs(1),
	Run:   runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all history entries")
}

func runHistory(cmd *cobra.Command, args []string) {
	sh, err := openSession(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		os.Exit(1)
	}
	hs := storage.NewHistoryStore(sh.Root, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if historyClear {
		if err := hs.Clear(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	recs, err := hs.Recent(ctx, historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		os.Exit(1)
	}
	if len(recs) == 0 {
		fmt.Println("No history entries.")
		return
	}
	for _, r := range recs {
		m := r.Measurement
		label := m.Label
		if label == "" {
			label = m.ID
		}
		fmt.Printf("%s  %-24s (%g, %g) -> (%g, %g)  %.2f px  grid %.2f  %.1f deg\n",
			r.RecordedAt.Local().Format("2006-01-02 15:04:05"), label,
			m.Start.X, m.Start.Y, m.End.X, m.End.Y,
			m.PixelDistance, m.GridDistance, m.AngleDegrees)
	}
}
