package quizgen

import "strings"

// RecentWindow returns a copy of the last n entries of history.
// n <= 0 returns the whole history.
func RecentWindow(history []string, n int) []string {
	if n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	out := make([]string, len(history))
	copy(out, history)
	return out
}

// buildDedup formats prior questions as a bullet list for the prompt,
// keeping only the most recent max. Returns "" if there are none.
func buildDedup(prior []string, max int) string {
	prior = RecentWindow(prior, max)
	if len(prior) == 0 {
		return ""
	}

	var b strings.Builder
	for _, q := range prior {
		b.WriteString("- ")
		b.WriteString(q)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// normalizeText folds case and whitespace for exact-repeat comparison.
func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
