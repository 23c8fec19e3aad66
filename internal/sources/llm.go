package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ashmilgit15/nursing-mcq-website/internal/llm"
	"github.com/ashmilgit15/nursing-mcq-website/internal/replenish"
)

const llmSystemPrompt = `You write multiple choice practice questions for nursing licensure exams.

Rules:
- Every question must be about the given nursing subject and clinically accurate.
- Provide exactly 4 options. Exactly one option is correct.
- "answer" is the exact text of the correct option.
- Distractors should be plausible mistakes a nursing student could make.
- The explanation states in one or two sentences why the answer is correct.
- Use plain text. No markdown, no numbering inside options.
- Do not repeat any question from the "already in the bank" list.`

// QuestionBatchSchema is the structured output requested from the model.
var QuestionBatchSchema = &llm.Schema{
	Name:        "mcq-batch",
	Description: "A batch of multiple choice nursing exam questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question stem",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "Text of the correct option, copied verbatim",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the answer is correct",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
					},
					"required":             []any{"question", "options", "answer", "explanation", "difficulty"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// LLMConfig tunes generation.
type LLMConfig struct {
	Count       int // questions per call
	MaxTokens   int
	Temperature float64

	// MaxPriorQuestions caps how many existing questions are listed in the
	// prompt to steer the model away from duplicates.
	MaxPriorQuestions int
}

func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Count:             10,
		MaxTokens:         4096,
		Temperature:       0.7,
		MaxPriorQuestions: 15,
	}
}

// PriorQuestionsFunc returns the question texts already stored for subject.
type PriorQuestionsFunc func(subject string) []string

// LLM generates questions with a language model.
type LLM struct {
	provider llm.Provider
	config   LLMConfig
	prior    PriorQuestionsFunc
}

// NewLLM returns a source backed by provider. prior may be nil.
func NewLLM(provider llm.Provider, cfg LLMConfig, prior PriorQuestionsFunc) *LLM {
	return &LLM{provider: provider, config: cfg, prior: prior}
}

func (s *LLM) Name() string { return "llm:" + s.provider.ModelID() }

type llmBatch struct {
	Questions []struct {
		Question    string   `json:"question"`
		Options     []string `json:"options"`
		Answer      string   `json:"answer"`
		Explanation string   `json:"explanation"`
		Difficulty  string   `json:"difficulty"`
	} `json:"questions"`
}

func (s *LLM) Fetch(ctx context.Context, keywords []string, subject string) ([]replenish.RawCandidate, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	var prior []string
	if s.prior != nil {
		prior = s.prior(subject)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      llmSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(subject, keywords, prior, s.config)}},
		Schema:      QuestionBatchSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate %s questions: %w", subject, err)
	}

	var batch llmBatch
	if err := json.Unmarshal(resp.Content, &batch); err != nil {
		return nil, fmt.Errorf("parse generated questions: %w", err)
	}

	out := make([]replenish.RawCandidate, 0, len(batch.Questions))
	for _, q := range batch.Questions {
		out = append(out, replenish.RawCandidate{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.Answer,
			Explanation:   q.Explanation,
			Difficulty:    q.Difficulty,
		})
	}
	return out, nil
}

func buildUserMessage(subject string, keywords, prior []string, cfg LLMConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", subject)
	fmt.Fprintf(&b, "Topics: %s\n", strings.Join(keywords, ", "))
	fmt.Fprintf(&b, "Number of questions: %d\n", cfg.Count)

	b.WriteString("\nAlready in the bank:\n")
	if n := cfg.MaxPriorQuestions; n > 0 && len(prior) > n {
		prior = prior[len(prior)-n:]
	}
	if len(prior) == 0 {
		b.WriteString("None")
	}
	for i, q := range prior {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, q)
	}
	return b.String()
}
