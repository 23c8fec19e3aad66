package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/ashmilgit15/nursing-mcq-website/internal/replenish"
)

const (
	triviaAPIBaseURL    = "https://the-trivia-api.com"
	triviaAPICategories = "science,medicine"
	triviaAPILimit      = 10
)

// TriviaAPI fetches science and medicine questions from The Trivia API.
// It ignores subject keywords; the content filter decides relevance.
type TriviaAPI struct {
	http httpClient
}

func NewTriviaAPI(opts ...Option) *TriviaAPI {
	return &TriviaAPI{http: newHTTPClient(triviaAPIBaseURL, opts)}
}

func (s *TriviaAPI) Name() string { return "trivia-api" }

type triviaAPIQuestion struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correctAnswer"`
	IncorrectAnswers []string `json:"incorrectAnswers"`
	Difficulty       string   `json:"difficulty"`
}

func (s *TriviaAPI) Fetch(ctx context.Context, _ []string, _ string) ([]replenish.RawCandidate, error) {
	u := fmt.Sprintf("%s/api/questions?categories=%s&limit=%d&type=multiple",
		strings.TrimRight(s.http.baseURL, "/"), triviaAPICategories, triviaAPILimit)

	var body []triviaAPIQuestion
	if err := s.http.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	out := make([]replenish.RawCandidate, 0, len(body))
	for _, q := range body {
		out = append(out, replenish.RawCandidate{
			Question:      q.Question,
			Options:       append([]string{q.CorrectAnswer}, q.IncorrectAnswers...),
			CorrectAnswer: q.CorrectAnswer,
			Difficulty:    q.Difficulty,
		})
	}
	return out, nil
}
