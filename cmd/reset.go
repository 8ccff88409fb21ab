package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Delete one learner (--email) or every learner, together with their tutor transcripts and attempt history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		yes, _ := cmd.Flags().GetBool("yes")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		target := "ALL learners"
		var id string
		if email != "" {
			p, err := findLearner(ctx, s, email)
			if err != nil {
				return err
			}
			id = p.ID
			target = fmt.Sprintf("%s <%s>", p.Name, p.Email)
		}

		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "This deletes %s. Type 'yes' to continue: ", target)
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if strings.TrimSpace(line) != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		if id != "" {
			err = s.Profiles().Delete(ctx, id)
		} else {
			err = s.Profiles().DeleteAll(ctx)
		}
		if err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", target)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("email", "", "Only delete this learner")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
