package quizgen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/quizmaster/internal/llm"
)

type demoQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
	Hint               string   `json:"hint"`
	Difficulty         string   `json:"difficulty"`
}

var demoBank = []demoQuestion{
	{
		Question:           "Which planet has the shortest year?",
		Options:            []string{"Venus", "Mercury", "Mars", "Earth"},
		CorrectAnswerIndex: 1,
		Explanation:        "Mercury orbits the Sun in about 88 days.",
		Hint:               "It is the closest planet to the Sun.",
		Difficulty:         "Easy",
	},
	{
		Question:           "What is the value of $\\sqrt{144}$?",
		Options:            []string{"10", "11", "12", "14"},
		CorrectAnswerIndex: 2,
		Explanation:        "$12 \\times 12 = 144$.",
		Hint:               "Think of a dozen.",
		Difficulty:         "Easy",
	},
	{
		Question:           "Which empire built Machu Picchu?",
		Options:            []string{"Aztec", "Maya", "Olmec", "Inca"},
		CorrectAnswerIndex: 3,
		Explanation:        "It was built in the 15th century for the Inca emperor Pachacuti.",
		Hint:               "Their capital was Cusco.",
		Difficulty:         "Medium",
	},
	{
		Question:           "Which protocol does HTTP/3 run on?",
		Options:            []string{"QUIC", "SCTP", "TCP", "DCCP"},
		CorrectAnswerIndex: 0,
		Explanation:        "HTTP/3 maps HTTP semantics onto QUIC, which runs over UDP.",
		Hint:               "Google designed it.",
		Difficulty:         "Hard",
	},
}

// NewDemoResponder returns a canned responder for llm.MockProvider so the
// "mock" backend can be played without credentials. Questions cycle through
// a fixed bank, numbered per round so repeats are not rejected; topic requests get FallbackTopics.
func NewDemoResponder() func(llm.Request) llm.MockResponse {
	var (
		mu   sync.Mutex
		next int
	)
	return func(req llm.Request) llm.MockResponse {
		var payload any
		switch req.Schema {
		case TopicsSchema:
			payload = map[string]any{"topics": FallbackTopics()}
		default:
			mu.Lock()
			q := demoBank[next%len(demoBank)]
			if round := next / len(demoBank); round > 0 {
				q.Question = fmt.Sprintf("%s (round %d)", q.Question, round+1)
			}
			payload = q
			next++
			mu.Unlock()
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return llm.MockResponse{Err: err}
		}
		return llm.MockResponse{Content: raw}
	}
}
