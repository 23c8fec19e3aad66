package sources

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ashmilgit15/nursing-mcq-website/internal/replenish"
)

const (
	openTDBBaseURL = "https://opentdb.com"
	openTDBAmount  = 10

	openTDBGeneral    = 9
	openTDBScience    = 17
	openTDBPsychology = 22
)

// first keyword -> Open Trivia DB category
var openTDBCategories = map[string]int{
	"medical":    openTDBScience,
	"science":    openTDBScience,
	"biology":    openTDBScience,
	"psychology": openTDBPsychology,
	"sociology":  openTDBPsychology,
	"management": openTDBGeneral,
	"general":    openTDBGeneral,
}

// ErrOpenTDBCode is returned when the API answers with a non-zero
// response_code (no results, rate limited, bad token).
var ErrOpenTDBCode = errors.New("opentdb: unsuccessful response code")

// OpenTDB fetches questions from the Open Trivia Database.
type OpenTDB struct {
	http httpClient
}

func NewOpenTDB(opts ...Option) *OpenTDB {
	return &OpenTDB{http: newHTTPClient(openTDBBaseURL, opts)}
}

func (s *OpenTDB) Name() string { return "opentdb" }

type openTDBResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Difficulty       string   `json:"difficulty"`
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

func (s *OpenTDB) Fetch(ctx context.Context, keywords []string, _ string) ([]replenish.RawCandidate, error) {
	u := fmt.Sprintf("%s/api.php?amount=%d&category=%d&type=multiple&encode=url3986",
		strings.TrimRight(s.http.baseURL, "/"), openTDBAmount, openTDBCategory(keywords))

	var body openTDBResponse
	if err := s.http.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.ResponseCode != 0 {
		return nil, fmt.Errorf("%w %d", ErrOpenTDBCode, body.ResponseCode)
	}

	out := make([]replenish.RawCandidate, 0, len(body.Results))
	for _, r := range body.Results {
		options := make([]string, 0, len(r.IncorrectAnswers)+1)
		options = append(options, unescape(r.CorrectAnswer))
		for _, a := range r.IncorrectAnswers {
			options = append(options, unescape(a))
		}
		out = append(out, replenish.RawCandidate{
			Question:      unescape(r.Question),
			Options:       options,
			CorrectAnswer: unescape(r.CorrectAnswer),
			Difficulty:    r.Difficulty,
		})
	}
	return out, nil
}

func openTDBCategory(keywords []string) int {
	if len(keywords) > 0 {
		if c, ok := openTDBCategories[strings.ToLower(keywords[0])]; ok {
			return c
		}
	}
	return openTDBGeneral
}

// unescape decodes RFC 3986 percent-encoding; malformed input is kept as is.
func unescape(s string) string {
	if d, err := url.PathUnescape(s); err == nil {
		return d
	}
	return s
}
