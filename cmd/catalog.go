package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List curriculums (optionally filtered by pillar)",
	RunE: func(cmd *cobra.Command, args []string) error {
		pillar, _ := cmd.Flags().GetString("pillar")

		cat, err := catalog.Default()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		currs := cat.Curriculums()
		if pillar != "" {
			p, ok := cat.Pillar(pillar)
			if !ok {
				p, ok = cat.PillarByName(pillar)
			}
			if !ok {
				return fmt.Errorf("no pillar %q", pillar)
			}
			currs = cat.ByPillar(p.ID)
		}

		// Header.
		fmt.Printf("%-24s  %-40s  %-24s  %-12s  %6s  %s\n",
			"ID", "Title", "Pillar", "Difficulty", "Topics", "Time")
		fmt.Println(strings.Repeat("─", 124))

		for _, c := range currs {
			title := c.Title
			if c.Trending {
				title += " *"
			}
			fmt.Printf("%-24s  %-40s  %-24s  %-12s  %6d  %s\n",
				c.ID, truncate(title, 40), truncate(c.PillarName, 24),
				c.Difficulty, len(c.Topics), c.EstimatedTime)
		}

		fmt.Printf("\n%d curriculums\n", len(currs))
		return nil
	},
}

func init() {
	catalogCmd.Flags().String("pillar", "", "Filter by pillar id or name (e.g. search)")
}
