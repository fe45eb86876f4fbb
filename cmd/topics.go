package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/quizgen"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Print suggested quiz topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		gen := quizgen.New(newProvider(cmd.Context(), st.EventRepo()), quizgen.DefaultConfig())
		suggested := gen.SuggestTopics(cmd.Context())
		if len(suggested) == 0 {
			warnf("No suggestions available, showing defaults.")
		}

		for _, t := range quizgen.TopicsOrFallback(suggested) {
			fmt.Fprintf(cmd.OutOrStdout(), "%-32s  %s\n", t.Label, t.Category)
		}
		return nil
	},
}
