package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/progress"
)

var learnersCmd = &cobra.Command{
	Use:   "learners",
	Short: "List all learners, highest XP first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		all, err := s.Profiles().List(ctx)
		if err != nil {
			return fmt.Errorf("list learners: %w", err)
		}
		if len(all) == 0 {
			fmt.Println("No learners yet. Run academy to create one.")
			return nil
		}

		active, _ := s.Profiles().Active(ctx)

		fmt.Printf("%4s  %-24s  %-30s  %-7s  %5s  %8s  %6s  %s\n",
			"#", "Name", "Email", "Role", "Level", "XP", "Streak", "Last active")
		fmt.Println(strings.Repeat("─", 110))

		for i, p := range progress.Leaderboard(all, 0) {
			name := truncate(p.Name, 24)
			if p.ID == active {
				name = truncate(p.Name, 22) + " *"
			}
			last := "never"
			if !p.LastActive.IsZero() {
				last = humanize.Time(p.LastActive)
			}
			fmt.Printf("%4d  %-24s  %-30s  %-7s  %5d  %8s  %5dd  %s\n",
				i+1, name, truncate(p.Email, 30), p.Role, progress.Level(p.XP),
				humanize.Comma(int64(p.XP)), p.Streak, last)
		}

		fmt.Printf("\n%d learners\n", len(all))
		return nil
	},
}
