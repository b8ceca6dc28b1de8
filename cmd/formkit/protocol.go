package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/modules/profile"
	"github.com/dmitrymomot/formkit/pkg/form"
)

func newProtocolCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "protocol",
		Short: "Mint protocol numbers from the backend counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, err := a.openBackend(ctx)
			if err != nil {
				return err
			}
			defer src.close()

			p, err := profile.NewProtocol(ctx, src.reader, form.WithLogger(a.log), form.WithContext(ctx))
			if err != nil {
				return err
			}
			defer p.Close()

			for i := range count {
				if i > 0 {
					if err := p.Reset(ctx); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%v-%v\n", p.Prefix.Value(), p.Counter.Value())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "how many numbers to mint")
	return cmd
}
