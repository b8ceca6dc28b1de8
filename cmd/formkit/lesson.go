package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/modules/lesson"
	"github.com/dmitrymomot/formkit/pkg/form"
)

func newLessonCmd(a *app) *cobra.Command {
	var (
		in      lesson.Input
		asJSON  bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Validate a lesson",
		Example: `  formkit lesson --title "Lesson 1" --nickname pippo --username minnie
  formkit lesson --completed --from 2024-09-25 --to 2021-09-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, err := a.openBackend(ctx)
			if err != nil {
				return err
			}
			defer src.close()

			l := lesson.New(
				lesson.Config{Reader: src.reader, Settle: a.settings.SettleDelay},
				form.WithLogger(a.log),
				form.WithContext(ctx),
			)
			defer l.Close()

			if err := l.Apply(in); err != nil {
				return err
			}
			waitCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			if err := l.Form().WaitIdle(waitCtx); err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), l.Summary(), asJSON)
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "lesson title")
	f.BoolVar(&in.Completed, "completed", false, "mark the lesson completed, enabling the period")
	f.StringVar(&in.FromDate, "from", "", "period start, YYYY-MM-DD")
	f.StringVar(&in.ToDate, "to", "", "period end, YYYY-MM-DD")
	f.StringVar(&in.Nickname, "nickname", "", "nickname, checked for uniqueness")
	f.StringVar(&in.Username, "username", "", "username, checked for uniqueness")
	f.BoolVar(&asJSON, "json", false, "print the summary as JSON")
	f.DurationVar(&timeout, "timeout", 10*time.Second, "how long to wait for uniqueness checks")
	return cmd
}
