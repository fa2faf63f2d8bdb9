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
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mapmeasure/internal/backend"
)

func sessionNameFromRoot(root string) string {
	return filepath.Base(filepath.Clean(root))
}

var pushName string

var pushCmd = &cobra.Command{
	Use:   "push [dir]",
	Short: "Upload the session document to the shared session store",
	Long:  "Save the session document as a new snapshot version in the shared Postgres session store.",
	Args:  cobra.ExactArgs(1),
	Run:   runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
	pushCmd.Flags().StringVar(&pushName, "name", "", "session name in the store (defaults to the directory name)")
}

// storeConfig merges the loaded app config over the environment defaults.
// A keyring-held DSN wins over the config file so credentials stay out of it.
func storeConfig() backend.Config {
	cfg := backend.ConfigFromEnv()
	if appConfig.Store.DSN != "" {
		cfg.DSN = appConfig.Store.DSN
	}
	if storeToken != "" {
		cfg.DSN = storeToken
	}
	if appConfig.Store.TimeoutMs > 0 {
		cfg.Timeout = time.Duration(appConfig.Store.TimeoutMs) * time.Millisecond
	}
	return cfg
}

func runPush(cmd *cobra.Command, args []string) {
	sh, err := openSession(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		os.Exit(1)
	}
	name := pushName
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

	version, err := st.SaveDocument(ctx, name, sh.Doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pushing session: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Pushed %q as version %d.\n", name, version)
}
