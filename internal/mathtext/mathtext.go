// Package mathtext splits question text into plain and math segments.
//
// Math is delimited with $$...$$ for block equations and $...$ for inline
// expressions. Unterminated delimiters are kept as literal text.
package mathtext

import "strings"

// Kind identifies a segment type.
type Kind int

const (
	Text Kind = iota
	Inline
	Block
)

// Segment is a run of text of a single kind. For math segments Value is
// the content between the delimiters.
type Segment struct {
	Kind  Kind
	Value string
}

// Split breaks s into segments in order. Adjacent text is merged and
// empty math segments are dropped.
func Split(s string) []Segment {
	var out []Segment
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			out = append(out, Segment{Kind: Text, Value: text.String()})
			text.Reset()
		}
	}

	for len(s) > 0 {
		i := strings.IndexByte(s, '$')
		if i < 0 {
			text.WriteString(s)
			break
		}
		text.WriteString(s[:i])
		s = s[i:]

		if strings.HasPrefix(s, "$$") {
			end := strings.Index(s[2:], "$$")
			if end < 0 {
				text.WriteString(s)
				break
			}
			if body := s[2 : 2+end]; strings.TrimSpace(body) != "" {
				flush()
				out = append(out, Segment{Kind: Block, Value: strings.TrimSpace(body)})
			}
			s = s[2+end+2:]
			continue
		}

		end := strings.IndexByte(s[1:], '$')
		if end < 0 {
			text.WriteString(s)
			break
		}
		body := s[1 : 1+end]
		if strings.TrimSpace(body) == "" || strings.Contains(body, "\n") {
			// "$ $" or a lone dollar before a line break: not math.
			text.WriteByte('$')
			s = s[1:]
			continue
		}
		flush()
		out = append(out, Segment{Kind: Inline, Value: body})
		s = s[1+end+1:]
	}
	flush()
	return out
}

// HasMath reports whether s contains at least one math segment.
func HasMath(s string) bool {
	for _, seg := range Split(s) {
		if seg.Kind != Text {
			return true
		}
	}
	return false
}

// Plain renders s for plain-text output: inline math is unwrapped, block
// math goes on its own line, and common LaTeX commands become Unicode.
func Plain(s string) string {
	var b strings.Builder
	for _, seg := range Split(s) {
		switch seg.Kind {
		case Text:
			b.WriteString(seg.Value)
		case Inline:
			b.WriteString(Symbols(seg.Value))
		case Block:
			b.WriteString("\n    ")
			b.WriteString(Symbols(seg.Value))
			b.WriteString("\n")
		}
	}
	return b.String()
}

var symbolReplacer = strings.NewReplacer(
	`\times`, "×",
	`\cdot`, "·",
	`\div`, "÷",
	`\pm`, "±",
	`\leq`, "≤",
	`\geq`, "≥",
	`\neq`, "≠",
	`\approx`, "≈",
	`\infty`, "∞",
	`\rightarrow`, "→",
	`\to`, "→",
	`\sqrt`, "√",
	`\pi`, "π",
	`\theta`, "θ",
	`\alpha`, "α",
	`\beta`, "β",
	`\gamma`, "γ",
	`\Delta`, "Δ",
	`\delta`, "δ",
	`\lambda`, "λ",
	`\mu`, "μ",
	`\sigma`, "σ",
	`\Omega`, "Ω",
	`\omega`, "ω",
	`\sum`, "∑",
	`\int`, "∫",
	`\degree`, "°",
	`\circ`, "°",
	`\left`, "",
	`\right`, "",
	`\,`, " ",
	`\ `, " ",
)

// Symbols replaces common LaTeX commands in a math expression with Unicode
// and rewrites \frac{a}{b} as (a)/(b). Unknown commands are left as-is.
func Symbols(expr string) string {
	return symbolReplacer.Replace(expandFracs(expr))
}

// expandFracs rewrites \frac{a}{b} into a/b, parenthesizing compound parts.
func expandFracs(s string) string {
	const cmd = `\frac`
	for {
		i := strings.Index(s, cmd)
		if i < 0 {
			return s
		}
		num, rest, ok := braced(s[i+len(cmd):])
		if !ok {
			return s
		}
		den, rest, ok := braced(rest)
		if !ok {
			return s
		}
		s = s[:i] + group(expandFracs(num)) + "/" + group(expandFracs(den)) + rest
	}
}

// braced reads a {...} group with nesting from the start of s.
func braced(s string) (inner, rest string, ok bool) {
	s = strings.TrimLeft(s, " ")
	if !strings.HasPrefix(s, "{") {
		return "", s, false
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", s, false
}

func group(s string) string {
	if strings.ContainsAny(s, " +-*/") {
		return "(" + s + ")"
	}
	return s
}
