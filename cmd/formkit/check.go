package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <name>...",
		Short: "Check whether names are still available",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.openBackend(cmd.Context())
			if err != nil {
				return err
			}
			defer src.close()

			for _, name := range args {
				res, err := src.reader.CheckUniqueness(cmd.Context(), name)
				if err != nil {
					return err
				}
				if res.Valid {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: available\n", name)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: taken, try %s\n", name, strings.Join(res.Suggestions, ", "))
			}
			return nil
		},
	}
}
