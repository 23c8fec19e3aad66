package sources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashmilgit15/nursing-mcq-website/internal/llm"
)

func serve(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

func TestOpenTDBFetch(t *testing.T) {
	var query string
	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":0,"results":[{
			"type":"multiple","difficulty":"medium","category":"Science%20%26%20Nature",
			"question":"What%20organ%20produces%20insulin%3F",
			"correct_answer":"Pancreas",
			"incorrect_answers":["Liver","Spleen","Gall%20bladder"]}]}`))
	})

	got, err := NewOpenTDB(WithBaseURL(base)).Fetch(context.Background(), []string{"biology", "physiology"}, "Human Physiology")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "What organ produces insulin?", got[0].Question)
	assert.Equal(t, []string{"Pancreas", "Liver", "Spleen", "Gall bladder"}, got[0].Options)
	assert.Equal(t, "Pancreas", got[0].CorrectAnswer)
	assert.Equal(t, "medium", got[0].Difficulty)
	assert.Contains(t, query, "category=17")
	assert.Contains(t, query, "encode=url3986")
	assert.Contains(t, query, "amount=10")
}

func TestOpenTDBCategory(t *testing.T) {
	tests := []struct {
		keywords []string
		want     int
	}{
		{[]string{"medical"}, 17},
		{[]string{"Biology", "x"}, 17},
		{[]string{"psychology"}, 22},
		{[]string{"sociology"}, 22},
		{[]string{"management"}, 9},
		{[]string{"nutrition"}, 9},
		{nil, 9},
		{[]string{"x", "medical"}, 9},
	}
	for _, tt := range tests {
		if got := openTDBCategory(tt.keywords); got != tt.want {
			t.Errorf("openTDBCategory(%v) = %d, want %d", tt.keywords, got, tt.want)
		}
	}
}

func TestOpenTDBResponseCode(t *testing.T) {
	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response_code":5,"results":[]}`))
	})

	_, err := NewOpenTDB(WithBaseURL(base)).Fetch(context.Background(), nil, "Nutrition")
	assert.ErrorIs(t, err, ErrOpenTDBCode)
}

func TestOpenTDBHTTPError(t *testing.T) {
	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := NewOpenTDB(WithBaseURL(base)).Fetch(context.Background(), nil, "Nutrition")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestUnescapeKeepsMalformedInput(t *testing.T) {
	assert.Equal(t, "100%", unescape("100%"))
	assert.Equal(t, "a b", unescape("a%20b"))
}

func TestTriviaAPIFetch(t *testing.T) {
	var query string
	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/questions", r.URL.Path)
		query = r.URL.RawQuery
		json.NewEncoder(w).Encode([]map[string]any{{
			"category":         "science",
			"id":               "abc",
			"correctAnswer":    "Red blood cells",
			"incorrectAnswers": []string{"Platelets", "Neutrophils", "Plasma"},
			"question":         "Which cells carry hemoglobin?",
			"difficulty":       "easy",
			"type":             "Multiple Choice",
		}})
	})

	got, err := NewTriviaAPI(WithBaseURL(base)).Fetch(context.Background(), []string{"anatomy"}, "Human Anatomy")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Which cells carry hemoglobin?", got[0].Question)
	assert.Equal(t, []string{"Red blood cells", "Platelets", "Neutrophils", "Plasma"}, got[0].Options)
	assert.Equal(t, "Red blood cells", got[0].CorrectAnswer)
	assert.Equal(t, "easy", got[0].Difficulty)
	assert.Contains(t, query, "categories=science,medicine")
	assert.Contains(t, query, "limit=10")
}

func TestTriviaAPIMalformedBody(t *testing.T) {
	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	})

	_, err := NewTriviaAPI(WithBaseURL(base)).Fetch(context.Background(), nil, "Nutrition")
	assert.Error(t, err)
}

func TestHTTPSourcesHonourContext(t *testing.T) {
	release := make(chan struct{})
	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewTriviaAPI(WithBaseURL(base)).Fetch(ctx, nil, "Nutrition")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

const batchJSON = `{"questions":[
	{"question":"Which vitamin deficiency causes scurvy?","options":["Vitamin C","Vitamin D","Vitamin A","Vitamin K"],
	 "answer":"Vitamin C","explanation":"Vitamin C is needed for collagen synthesis.","difficulty":"easy"},
	{"question":"Normal serum potassium range?","options":["3.5-5.0 mEq/L","1.0-2.0 mEq/L","6.0-8.0 mEq/L","135-145 mEq/L"],
	 "answer":"3.5-5.0 mEq/L","explanation":"Values outside this range risk arrhythmia.","difficulty":"medium"}]}`

func TestLLMFetch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(batchJSON)})
	prior := func(subject string) []string {
		assert.Equal(t, "Nutrition", subject)
		return []string{"Which vitamin is fat soluble?"}
	}
	src := NewLLM(mock, DefaultLLMConfig(), prior)

	got, err := src.Fetch(context.Background(), []string{"nutrition", "dietetics"}, "Nutrition")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Vitamin C", got[0].CorrectAnswer)
	assert.Equal(t, "Vitamin C is needed for collagen synthesis.", got[0].Explanation)
	assert.Equal(t, "medium", got[1].Difficulty)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Same(t, QuestionBatchSchema, req.Schema)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Subject: Nutrition")
	assert.Contains(t, msg, "Topics: nutrition, dietetics")
	assert.Contains(t, msg, "1. Which vitamin is fat soluble?")
	assert.Equal(t, "llm:mock", src.Name())
}

func TestLLMFetchRejectsSchemaViolations(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[{"question":"q"}]}`)})

	_, err := NewLLM(mock, DefaultLLMConfig(), nil).Fetch(context.Background(), nil, "Nutrition")
	var invalid *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid), "got %v", err)
}

func TestLLMFetchProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewLLM(mock, DefaultLLMConfig(), nil).Fetch(context.Background(), nil, "Nutrition")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate Nutrition questions")
}

func TestBuildUserMessageCapsPriorQuestions(t *testing.T) {
	cfg := DefaultLLMConfig()
	cfg.MaxPriorQuestions = 2

	msg := buildUserMessage("Sociology", []string{"sociology"}, []string{"a", "b", "c"}, cfg)
	assert.NotContains(t, msg, ". a")
	assert.Contains(t, msg, "1. b\n2. c")

	msg = buildUserMessage("Sociology", nil, nil, cfg)
	assert.True(t, strings.HasSuffix(msg, "Already in the bank:\nNone"), msg)
}

func TestBuild(t *testing.T) {
	got, err := Build(DefaultNames, Deps{})
	require.NoError(t, err)
	require.Len(t, got, 2, "llm source is skipped without a provider")
	assert.Equal(t, "opentdb", got[0].Name())
	assert.Equal(t, "trivia-api", got[1].Name())

	got, err = Build([]string{NameLLM}, Deps{Provider: llm.NewMockProvider(), LLM: DefaultLLMConfig()})
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = Build([]string{"quizapi"}, Deps{})
	assert.Error(t, err)
}
