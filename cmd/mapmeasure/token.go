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
)

var (
	tokenSet   string
	tokenClear bool
)

var tokenCmd = &cobra.Command{
	Use:   "store-token",
	Short: "Manage the session-store credential in the OS keyring",
	Long: `Store the session-store connection string in the OS keyring so it
stays out of the config file. When set, it takes precedence over the
configured DSN for push, pull and sessions.`,
	Args: cobra.NoArgs,
	Run:  runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenSet, "set", "", "store the given connection string")
	tokenCmd.Flags().BoolVar(&tokenClear, "clear", false, "remove the stored connection string")
}

func runToken(cmd *cobra.Command, args []string) {
	switch {
	case tokenClear:
		if err := config.ForgetToken(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing credential: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Session-store credential cleared.")
	case tokenSet != "":
		if err := config.Save(appConfig, tokenSet); err != nil {
			fmt.Fprintf(os.Stderr, "Error storing credential: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Session-store credential stored in the OS keyring.")
	default:
		if storeToken != "" {
			fmt.Println("A session-store credential is stored.")
		} else {
			fmt.Println("No session-store credential stored.")
		}
	}
}
