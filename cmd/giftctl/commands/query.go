package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LovationAdmin/giftfinder-api/config"
	"github.com/LovationAdmin/giftfinder-api/models"
	"github.com/LovationAdmin/giftfinder-api/services"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	flags := &profileFlags{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the search query built from a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := services.NewGiftSearchService(config.Config{}, nil)
			query, err := svc.Query(flags.profile())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(models.QueryResponse{Query: query})
			}
			_, err = fmt.Fprintln(out, query)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}
