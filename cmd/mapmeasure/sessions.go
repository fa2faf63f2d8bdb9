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

	"mapmeasure/internal/backend"
)

var sessionsDelete string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions in the shared session store",
	Args:  cobra.NoArgs,
	Run:   runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().StringVar(&sessionsDelete, "delete", "", "delete the named session and all its snapshots")
}

func runSessions(cmd *cobra.Command, args []string) {
	cfg := storeConfig()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	st, err := backend.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to session store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if sessionsDelete != "" {
		if err := st.DeleteSession(ctx, sessionsDelete); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting session: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted session %q.\n", sessionsDelete)
		return
	}

	infos, err := st.ListSessions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing sessions: %v\n", err)
		os.Exit(1)
	}
	if len(infos) == 0 {
		fmt.Println("No sessions in the store.")
		return
	}
	fmt.Printf("%-6s %-32s %-8s %s\n", "ID", "NAME", "VERSION", "UPDATED")
	for _, si := range infos {
		fmt.Printf("%-6d %-32s %-8d %s\n", si.ID, si.Name, si.Version, si.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
}
