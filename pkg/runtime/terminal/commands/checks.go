package commands

import (
	"fmt"

	"github.com/de-tools/sec-atlas/pkg/services/checks"
	"github.com/spf13/cobra"
)

func NewChecksCmd(registry checks.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "checks",
		Short: "List the available check categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories := registry.ListCategories()
			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No checks registered")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Available checks:")
			for _, category := range categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", category)
			}
			return nil
		},
	}
}
