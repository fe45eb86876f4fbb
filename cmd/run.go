package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/app"
	"github.com/abhisek/quizmaster/internal/llm"
	"github.com/abhisek/quizmaster/internal/quizgen"
	"github.com/abhisek/quizmaster/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	provider := newProvider(cmd.Context(), st.EventRepo())

	return app.Run(app.Options{
		Generator: quizgen.New(provider, quizgen.DefaultConfig()),
		Prefs:     st.PreferenceRepo(),
	})
}

// newProvider builds the configured LLM provider. Without credentials it
// warns and returns a provider that fails every request, so the quiz shows
// its error state instead of refusing to start.
func newProvider(ctx context.Context, eventRepo store.EventRepo) llm.Provider {
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		warnf("LLM provider not configured: %v", err)
		warnf("Set GEMINI_API_KEY (or QUIZ_LLM_PROVIDER and its key) to generate questions.")
		return llm.Unconfigured(err)
	}
	if mock, ok := provider.(*llm.MockProvider); ok && mock.Fallback == nil {
		mock.Fallback = quizgen.NewDemoResponder()
	}
	return provider
}
