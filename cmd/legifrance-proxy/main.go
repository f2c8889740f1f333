// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the legifrance-proxy CLI. The proxy
// resolves French legal-code article references against the Legifrance API
// and serves them over HTTP; each capability is a subcommand: serve,
// resolve, plan, history.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/legifrance-proxy/internal/config"
	"github.com/pdiddy/legifrance-proxy/internal/secrets"
	"github.com/pdiddy/legifrance-proxy/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the legifrance-proxy CLI.
var rootCmd = &cobra.Command{
	Use:   "legifrance-proxy",
	Short: "Proxy for resolving French legal-code articles via Legifrance",
	Long: `legifrance-proxy resolves legal-code article references (code name +
article number + optional as-of date) into canonical LEGIARTI identifiers
and their full text, through the PISTE-authenticated Legifrance API.

Run it as an HTTP service with "serve", or use "resolve" and "plan" for
one-shot lookups and LLM extraction planning from the command line.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./legifrance-proxy.yaml or ~/.config/legifrance-proxy/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	config.Init(cfgFile)
}

// loadConfig materializes the typed config with secret-file fallbacks.
func loadConfig() (types.ProxyConfig, error) {
	return config.Load(loadedSecrets)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
