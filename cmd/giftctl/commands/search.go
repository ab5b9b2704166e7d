package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/LovationAdmin/giftfinder-api/models"
)

type searchOutput struct {
	Query   string              `json:"query"`
	Source  models.ResultSource `json:"source"`
	Results []models.GiftResult `json:"results"`
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	flags := &profileFlags{}
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run the retrieval pipeline and print ranked gifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.newService()
			if err != nil {
				return fmt.Errorf("load rules: %w", err)
			}
			defer svc.Close()

			profile := flags.profile()
			query, err := svc.Query(profile)
			if err != nil {
				return err
			}
			profile.Normalize()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			results, source := svc.Retrieve(ctx, profile)

			out := searchOutput{Query: query, Source: source, Results: results}
			if opts.jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printResults(cmd.OutOrStdout(), out)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "overall timeout")
	return cmd
}

func printResults(w io.Writer, out searchOutput) {
	title := color.New(color.Bold)
	dim := color.New(color.Faint)
	price := color.New(color.FgGreen)
	score := color.New(color.FgCyan)

	fmt.Fprintf(w, "%s %s\n", dim.Sprint("Query:"), out.Query)
	sourceColor := color.New(color.FgGreen)
	if out.Source == models.SourceFallback {
		sourceColor = color.New(color.FgYellow)
	}
	fmt.Fprintf(w, "%s %s\n\n", dim.Sprint("Source:"), sourceColor.Sprint(out.Source))

	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No gifts found within budget.")
		return
	}

	for i, g := range out.Results {
		fmt.Fprintf(w, "%d. %s\n", i+1, title.Sprint(g.Name))
		fmt.Fprintf(w, "   %s  %s  %.1f★  %s\n",
			price.Sprintf("₹%.2f", g.Price),
			g.StoreName,
			g.Rating,
			score.Sprintf("score %.2f", g.RelevanceScore))
		fmt.Fprintf(w, "   %s %s\n", dim.Sprint("tags:"), strings.Join(g.Tags, ", "))
		if g.ProductURL != "" {
			fmt.Fprintf(w, "   %s\n", dim.Sprint(g.ProductURL))
		}
	}
}
