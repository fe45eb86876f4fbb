package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/store"
	"github.com/abhisek/quizmaster/internal/ui/theme"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light]",
	Short:     "Show or set the color theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(theme.Dark), string(theme.Light)},
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		prefs := st.PreferenceRepo()
		ctx := cmd.Context()

		if len(args) == 1 {
			mode := theme.ParseMode(args[0])
			if err := prefs.Set(ctx, store.PrefTheme, string(mode)); err != nil {
				return fmt.Errorf("save theme: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Theme set to", mode)
			return nil
		}

		v, ok, err := prefs.Get(ctx, store.PrefTheme)
		if err != nil {
			return fmt.Errorf("read theme: %w", err)
		}
		if !ok {
			v = string(theme.Dark) + " (default)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}
