package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/legifrance-proxy/internal/piste"
	"github.com/pdiddy/legifrance-proxy/internal/resolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve one code+article reference from the command line",
	Long: `Resolve performs a one-shot lookup: search the CODE_ETAT fund for the
given code title and article number, pick the matching LEGIARTI
identifier, and fetch the article content.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		code, _ := cmd.Flags().GetString("code")
		article, _ := cmd.Flags().GetString("article")
		date, _ := cmd.Flags().GetString("date")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := piste.NewClient(cfg.Piste)
		if err != nil {
			return err
		}
		defer client.Close()

		outcome, err := resolve.NewResolver(client).ResolveCodeArticle(cmd.Context(), code, article, date)
		if err != nil {
			return err
		}

		resolved, ok := outcome.(resolve.Resolved)
		if !ok {
			return outcomeError(outcome)
		}

		switch {
		case flagBool(cmd, "json"):
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resolved.Article)
		case flagBool(cmd, "yaml"):
			out, err := yaml.Marshal(resolved.Article)
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			_, err = os.Stdout.Write(out)
			return err
		default:
			fmt.Printf("id:      %s\n", resolved.Article.LegiartiID)
			fmt.Printf("article: %s\n", resolved.Article.ArticleNum)
			if resolved.Article.Title != "" {
				fmt.Printf("title:   %s\n", resolved.Article.Title)
			}
			if resolved.Article.DateVersion != "" {
				fmt.Printf("as-of:   %s\n", resolved.Article.DateVersion)
			}
			return nil
		}
	},
}

// outcomeError turns a non-resolved outcome into a CLI error.
func outcomeError(outcome resolve.Outcome) error {
	switch o := outcome.(type) {
	case resolve.NotFound:
		return fmt.Errorf("not found: %s", o.Message)
	case resolve.TooBroad:
		return fmt.Errorf("too broad: %s", o.Message)
	case resolve.Ambiguous:
		fmt.Fprintln(os.Stderr, "candidates:")
		for _, c := range o.Candidates {
			fmt.Fprintf(os.Stderr, "  %s\n", c.ID)
		}
		return fmt.Errorf("ambiguous: %s", o.Message)
	default:
		return fmt.Errorf("unexpected outcome %q", outcome.Kind())
	}
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func init() {
	resolveCmd.Flags().String("code", "", "code title (e.g. \"Code du travail\")")
	resolveCmd.Flags().String("article", "", "article number (e.g. \"L1221-1\")")
	resolveCmd.Flags().String("date", "", "as-of date (YYYY-MM-DD)")
	resolveCmd.Flags().Bool("json", false, "output the resolved article as JSON")
	resolveCmd.Flags().Bool("yaml", false, "output the resolved article as YAML")

	rootCmd.AddCommand(resolveCmd)
}
