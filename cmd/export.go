package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/report"
	"github.com/abhisek/academy/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the learner progress report as an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		cat, err := catalog.Default()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		profiles, err := s.Profiles().List(ctx)
		if err != nil {
			return fmt.Errorf("list learners: %w", err)
		}
		attempts, err := s.Attempts().All(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}

		wb, err := report.Build(cat, profiles, attempts)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}
		defer wb.Close()

		if err := wb.Save(out); err != nil {
			return fmt.Errorf("save %s: %w", out, err)
		}
		fmt.Printf("Wrote %s (%d learners, %d attempts)\n", out, len(profiles), len(attempts))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "academy-report.xlsx", "Output file")
}
