package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/session"
	"github.com/abhisek/academy/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	Long:  "Show level, XP, streak and curriculum progress for a learner. Defaults to the signed-in learner.",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

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
		p, err := findLearner(ctx, s, email)
		if err != nil {
			return err
		}

		sum := session.BuildSummary(cat, p)
		sep := strings.Repeat("─", 60)

		fmt.Printf("%s <%s>\n", p.Name, p.Email)
		fmt.Println(sep)
		fmt.Printf("Level:        %d (%.0f%% into level)\n", sum.Level, sum.LevelProgress*100)
		fmt.Printf("XP:           %s\n", humanize.Comma(int64(sum.XP)))
		fmt.Printf("Streak:       %dd (longest %dd)\n", sum.Streak, sum.LongestStreak)
		fmt.Printf("Topics:       %d/%d\n", sum.TopicsDone, sum.TopicsTotal)
		if !p.LastActive.IsZero() {
			fmt.Printf("Last active:  %s\n", humanize.Time(p.LastActive))
		}

		if len(sum.Active) > 0 {
			fmt.Println()
			fmt.Println("In progress")
			fmt.Println(sep)
			for _, a := range sum.Active {
				fmt.Printf("%-44s  %5.1f%%\n", truncate(a.Curriculum.Title, 44), a.Percent)
			}
		}

		if len(sum.Certificates) > 0 {
			fmt.Println()
			fmt.Println("Certificates")
			fmt.Println(sep)
			for _, c := range sum.Certificates {
				fmt.Printf("✓ %s\n", c.Title)
			}
		}

		if len(sum.Badges) > 0 {
			fmt.Printf("\nBadges: %s\n", strings.Join(sum.Badges, ", "))
		}
		if sum.Next != nil {
			fmt.Printf("\nUp next: %s\n", sum.Next.Title)
		}
		return nil
	},
}

// findLearner looks a learner up by email, or returns the signed-in
// learner when email is empty.
func findLearner(ctx context.Context, s *store.Store, email string) (learner.Profile, error) {
	if email != "" {
		p, err := s.Profiles().FindByEmail(ctx, email)
		if errors.Is(err, store.ErrNotFound) {
			return learner.Profile{}, fmt.Errorf("no learner with email %q", email)
		}
		return p, err
	}

	id, err := s.Profiles().Active(ctx)
	if err != nil {
		return learner.Profile{}, fmt.Errorf("read active learner: %w", err)
	}
	if id == "" {
		return learner.Profile{}, fmt.Errorf("nobody is signed in; pass --email")
	}
	p, err := s.Profiles().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return learner.Profile{}, fmt.Errorf("signed-in learner %s no longer exists", id)
	}
	return p, err
}

func init() {
	statsCmd.Flags().String("email", "", "Learner email (defaults to the signed-in learner)")
}
