package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/mathtext"
	"github.com/abhisek/quizmaster/internal/quizgen"
	"github.com/abhisek/quizmaster/internal/session"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Play a quiz in plain text on stdin/stdout",
	Long: `Generate questions on a topic and answer them line by line.

No full-screen UI: answers are read from stdin, which makes this handy for
checking question quality or scripting. Requests are still logged to the
database for "quizmaster llm list".`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringP("topic", "t", "", "Quiz topic (required)")
	askCmd.Flags().StringP("difficulty", "d", "Mixed", "Easy, Medium, Hard or Mixed")
	askCmd.Flags().IntP("count", "c", 5, "Number of questions to ask")
	_ = askCmd.MarkFlagRequired("topic")
}

func runAsk(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")

	difficulty, err := quizgen.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	gen := quizgen.New(newProvider(cmd.Context(), st.EventRepo()), quizgen.DefaultConfig())
	return playText(cmd.Context(), gen, topic, difficulty, count, os.Stdin, cmd.OutOrStdout())
}

// playText drives a session over line-oriented input. Each line is an
// answer (1-4 or A-D), "h" for the hint, "s" to skip or "q" to stop. After
// a failed fetch, "r" retries.
func playText(ctx context.Context, gen quizgen.Generator, topic string, difficulty quizgen.Difficulty, count int, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	scanner := bufio.NewScanner(in)
	readLine := func(prompt string) (string, bool) {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	state, req := session.New().Start(topic, difficulty)
	if req == nil {
		return quizgen.ErrEmptyTopic
	}
	fmt.Fprintf(out, "Topic: %s (%s)\n\n", state.Topic, state.Difficulty)

	for req != nil {
		fmt.Fprintln(out, "Generating...")
		state = state.Resolve(session.Fetch(ctx, gen, req))
		req = nil

		if state.Status == session.StatusError {
			fmt.Fprintf(out, "%s\n  (%v)\n", state.Err, state.Failure)
			line, ok := readLine("[r]etry or [q]uit: ")
			if ok && strings.EqualFold(line, "r") {
				state, req = state.Retry()
			}
			continue
		}

		q := state.Current
		fmt.Fprintf(out, "\nQ%d [%s] %s\n", len(state.History), q.Difficulty, mathtext.Plain(q.Text))
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'A'+i, mathtext.Plain(opt))
		}

		for !state.Submitted {
			line, ok := readLine("Answer (1-4, h=hint, s=skip, q=quit): ")
			if !ok || strings.EqualFold(line, "q") {
				printTally(out, state)
				return nil
			}
			switch strings.ToLower(line) {
			case "h":
				state = state.RevealHint()
				fmt.Fprintf(out, "  Hint: %s\n", mathtext.Plain(q.Hint))
				continue
			case "s":
				state, req = state.Skip()
				fmt.Fprintf(out, "  Skipped. The answer was %c.\n", 'A'+q.CorrectIndex)
			}
			if req != nil {
				break
			}
			i, ok := parseChoice(line)
			if !ok {
				fmt.Fprintln(out, "  Enter 1-4 or A-D.")
				continue
			}
			state = state.Answer(i)
			if state.LastCorrect() {
				fmt.Fprintln(out, "  Correct!")
			} else {
				fmt.Fprintf(out, "  Wrong. The answer is %c.\n", 'A'+q.CorrectIndex)
			}
			fmt.Fprintf(out, "  %s\n", mathtext.Plain(q.Explanation))
		}

		if state.Answered >= count {
			break
		}
		if req == nil {
			state, req = state.Next()
		}
	}

	printTally(out, state)
	return nil
}

// parseChoice accepts 1-4 or a-d.
func parseChoice(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= quizgen.OptionCount {
		return n - 1, true
	}
	if len(s) == 1 {
		c := strings.ToLower(s)[0]
		if c >= 'a' && c < 'a'+quizgen.OptionCount {
			return int(c - 'a'), true
		}
	}
	return 0, false
}

func printTally(out io.Writer, s session.State) {
	fmt.Fprintf(out, "\nScore: %d/%d  Streak: %d\n", s.Score, s.Answered, s.Streak)
}
