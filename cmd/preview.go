package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/learner"
	"github.com/abhisek/academy/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Take a topic quiz in the shell (no database)",
	Long: `Answer one topic's quiz interactively in the shell.

Nothing is saved: no learner, no XP, no attempt history. Useful for
checking catalog content after an edit.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topic", "", "Topic id (required), e.g. topic-search-0")
	previewCmd.Flags().Bool("read", false, "Print the articles before the quiz")
	_ = previewCmd.MarkFlagRequired("topic")
}

func runPreview(cmd *cobra.Command, args []string) error {
	topicID, _ := cmd.Flags().GetString("topic")
	read, _ := cmd.Flags().GetBool("read")
	out := cmd.OutOrStdout()

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	c, topic, ok := cat.Topic(topicID)
	if !ok {
		return fmt.Errorf("no topic found for %q", topicID)
	}

	// A throwaway learner who has finished everything before this topic.
	var p learner.Profile
	for _, t := range c.Topics[:c.TopicIndex(topicID)] {
		p.CompletedModules = append(p.CompletedModules, t.ID)
	}
	sess, err := quiz.NewTopicSession(c, topicID, p)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Topic: %s (%s, %s)\n\n", topic.Title, c.Title, topic.Difficulty)
	for {
		if read {
			fmt.Fprintf(out, "── Article %d/%d ──\n%s\n\n", sess.ArticleIndex()+1, sess.ArticleCount(), sess.Article())
		}
		if !sess.NextArticle() {
			break
		}
	}
	if err := sess.StartQuiz(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		step := sess.Step()
		fmt.Fprintf(out, "── Question %d/%d ──\n%s\n", sess.StepIndex()+1, sess.StepCount(), step.Content)
		for j, o := range step.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, o)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return nil
		}
		fb, err := sess.Answer(previewResponse(step, scanner.Text()))
		if err != nil {
			return err
		}
		if fb.Correct {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", fb.Expected)
		}
		fmt.Fprintln(out)

		res, err := sess.Continue(p)
		if err != nil {
			return err
		}
		if res.Finished() {
			verdict := "not passed, every answer must be correct"
			if res.Passed() {
				verdict = "passed"
			}
			fmt.Fprintf(out, "── Summary: %d/%d correct, %s ──\n", res.Score, res.Total, verdict)
			return nil
		}
	}
}

// previewResponse reads a 1-based option number for multiple-choice steps
// and free text otherwise.
func previewResponse(step catalog.QuizStep, line string) quiz.Response {
	line = strings.TrimSpace(line)
	if step.Type != catalog.MultipleChoice {
		return quiz.Text(line)
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return quiz.Choice(-1)
	}
	return quiz.Choice(n - 1)
}
