// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/legifrance-proxy/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent resolution outcomes from the history log",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Server.HistoryPath == "" {
			return fmt.Errorf("no history path configured (set HISTORY_PATH)")
		}

		store, err := history.Open(cfg.Server.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("history is empty")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tCODE\tARTICLE\tOUTCOME\tID/MESSAGE")
		for _, e := range entries {
			detail := e.LegiartiID
			if detail == "" {
				detail = e.Message
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.CreatedAt.Format("2006-01-02 15:04"), e.CodeHint, e.ArticleHint, e.Outcome, detail)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to show")

	rootCmd.AddCommand(historyCmd)
}
