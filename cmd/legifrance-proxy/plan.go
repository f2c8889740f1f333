package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/legifrance-proxy/internal/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build an extraction plan for a legal question",
	Long: `Plan runs the LLM pipeline for one question: lock the explicit legal
references, classify the intent, then build a validated extraction plan.
The result is printed as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		asOf, _ := cmd.Flags().GetString("as-of")
		if question == "" {
			return fmt.Errorf("--question is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Plan.APIKey == "" {
			return fmt.Errorf("no Gemini API key configured (set GEMINI_API_KEY or .secrets/gemini-api-key)")
		}

		llm, err := plan.NewGemini(cmd.Context(), cfg.Plan)
		if err != nil {
			return err
		}

		result, err := plan.NewPlanner(llm, cfg.Plan.MaxRetries).Plan(cmd.Context(), question, asOf)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	planCmd.Flags().String("question", "", "the legal question to plan for")
	planCmd.Flags().String("as-of", "", "reference date (YYYY-MM-DD, default: today)")

	rootCmd.AddCommand(planCmd)
}
