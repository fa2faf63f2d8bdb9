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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mapmeasure/internal/backend"
	"mapmeasure/internal/storage"
)

var pullName string

var pullCmd = &cobra.Command{
	Use:   "pull [dir]",
	Short: "Download the latest session document from the shared session store",
	Long:  "Fetch the newest snapshot from the shared Postgres session store and write it into the session directory, backing up the previous document.",
	Args:  cobra.ExactArgs(1),
	Run:   runPull,
}

func init() {
	rootCmd.AddCommand(pullCmd)
	pullCmd.Flags().StringVar(&pullName, "name", "", "session name in the store (defaults to the directory name)")
}

func runPull(cmd *cobra.Command, args []string) {
	sh, err := openSession(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		os.Exit(1)
	}
	name := pullName
	if name == "" {
		name = sessionNameFromRoot(sh.Root)
	}

	cfg := storeConfig()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	st, err := backend.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to session store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	doc, version, err := st.LoadDocument(ctx, name)
	if err != nil {
		if errors.Is(err, backend.ErrSessionNotFound) {
			fmt.Fprintf(os.Stderr, "Session %q not found in the store.\n", name)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error pulling session: %v\n", err)
		os.Exit(1)
	}
	sh.Doc = doc
	if err := storage.Save(sh); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Pulled %q version %d into %s.\n", name, version, sh.Root)
}
