package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/modules/address"
	"github.com/dmitrymomot/formkit/pkg/form"
)

func newAddressCmd(a *app) *cobra.Command {
	var (
		in     address.Input
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "address",
		Short:   "Validate an address",
		Example: `  formkit address --city "Main St" --username homer`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := address.New(form.WithLogger(a.log), form.WithContext(cmd.Context()))
			defer c.Close()
			if err := c.Apply(in); err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), c.Summary(), asJSON)
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Street, "street", "", "street")
	f.StringVar(&in.City, "city", "", "city")
	f.StringVar(&in.Username, "username", "", "username")
	f.BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}
