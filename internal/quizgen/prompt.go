package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz master writing engaging, educational multiple-choice questions.

Rules:
- Generate exactly one question about the requested topic.
- Provide 4 distinct options and the zero-based index (0-3) of the correct one.
- Provide a brief, helpful explanation of why the answer is correct.
- Provide a subtle hint that helps the player deduce the answer without stating it.
- Label the question's difficulty as Easy, Medium or Hard.

Formatting:
- If the question involves mathematics, physics or chemistry formulas, use LaTeX.
- Use single dollar signs ($) for inline math, e.g. $E=mc^2$ or $\frac{1}{2}$.
- Use double dollar signs ($$) for block equations.
- Do not use markdown code blocks for math.`

const topicsPromptTemplate = `Generate %d distinct, currently trending or universally popular quiz topics.
Focus on a mix of current events, pop culture (movies, music), technology trends, and engaging history/science.
Each topic has a "label" (max 3 words, e.g. "Artificial Intelligence", "Ancient Rome") and a "category" (one of: Science, History, Technology, Entertainment, Sports, Geography, Arts, Literature).`

// buildUserMessage constructs the question request from GenerateInput and
// Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a single multiple-choice question about %q.\n", input.Topic)
	b.WriteString(difficultyInstruction(input.Difficulty))
	b.WriteString("\n")

	if history := buildDedup(input.RecentHistory, cfg.MaxRecentHistory); history != "" {
		b.WriteString("\nIMPORTANT: Do not repeat or rephrase any of the following previously asked questions:\n")
		b.WriteString(history)
		b.WriteString("\n")
	}

	return b.String()
}

func difficultyInstruction(d Difficulty) string {
	if d == DifficultyMixed || d == "" {
		return "The difficulty can be random (Easy, Medium, or Hard)."
	}
	return fmt.Sprintf("The difficulty level must be specifically %q.", string(d))
}

func buildTopicsMessage(n int) string {
	return fmt.Sprintf(topicsPromptTemplate, n)
}
