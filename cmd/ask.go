package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/tutor"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the AI tutor one question",
	Long:  "Ask the AI tutor a question from the shell. The signed-in learner's profile is used as context when there is one.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topicID, _ := cmd.Flags().GetString("topic")
		question := strings.Join(args, " ")

		log, err := newLogger(cmd)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer log.Sync()

		cat, err := catalog.Default()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		client, err := newTutor(ctx, cat, s, log)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		q := tutor.Question{Text: question}
		if p, err := findLearner(ctx, s, ""); err == nil {
			q.ProfileContext = tutor.ProfileContext(p)
		}
		if topicID != "" {
			_, t, ok := cat.Topic(topicID)
			if !ok {
				return fmt.Errorf("no topic %q", topicID)
			}
			q.ModuleContext = t.Title
		}

		reply, err := client.Ask(ctx, q)
		fmt.Println(reply)
		if err != nil {
			fmt.Fprintln(os.Stderr, "tutor error:", err)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().String("topic", "", "Topic id to ask about (e.g. topic-search-0)")
}
