package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
	"github.com/ashmilgit15/nursing-mcq-website/internal/progress"
	"github.com/ashmilgit15/nursing-mcq-website/internal/replenish"
	"github.com/ashmilgit15/nursing-mcq-website/internal/session"
	"github.com/ashmilgit15/nursing-mcq-website/internal/store"
)

type listBank []bank.Question

func (b listBank) Count(string) int { return len(b) }

func (b listBank) At(_ string, i int) (bank.Question, bool) {
	if i < 0 || i >= len(b) {
		return bank.Question{}, false
	}
	return b[i], true
}

func newListBank(n int) listBank {
	b := make(listBank, n)
	for i := range b {
		b[i] = bank.Question{
			Text:         fmt.Sprintf("Question %d?", i),
			Options:      []string{"right", "wrong", "also wrong", "nope"},
			CorrectIndex: 0,
			Explanation:  "because",
		}
	}
	return b
}

func scanner(s string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(s))
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"v1.2", "v1.2.0"},
		{"v1.2.3", "v1.2.3"},
		{"v2.0.0-rc.1", "v2.0.0-rc.1 (pre-release)"},
		{"(devel)", "(devel)"},
		{"1.2.3", "1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := formatVersion(tt.in); got != tt.want {
				t.Errorf("formatVersion(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPickSubject(t *testing.T) {
	var out bytes.Buffer
	got, err := pickSubject(scanner("x\n9\n2\n"), &out, []string{"Nutrition", "Microbiology"})
	require.NoError(t, err)
	assert.Equal(t, "Microbiology", got)
	assert.Contains(t, out.String(), " 1) Nutrition")
	assert.Equal(t, 2, strings.Count(out.String(), "Enter a number from the list."))
}

func TestPickSubjectEOF(t *testing.T) {
	_, err := pickSubject(scanner(""), io.Discard, []string{"Nutrition"})
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestPlayRound(t *testing.T) {
	e := session.New("Nutrition", newListBank(5), session.WithSeed(1), session.WithTimeLimit(0))

	var out bytes.Buffer
	sum := playRound(context.Background(), scanner("1\n2\n\nabc\n7\nq\n"), &out, e)

	assert.Equal(t, 2, sum.Answered)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, session.RoundSize, sum.Total)
	assert.Equal(t, 3, e.Position())

	text := out.String()
	assert.Contains(t, text, "Correct!")
	assert.Contains(t, text, "Incorrect. Answer: right")
	assert.Contains(t, text, "Not a number.")
	assert.Contains(t, text, session.ErrOptionOutOfRange.Error())
	assert.Contains(t, text, "[1/50]")
	assert.Contains(t, text, "[4/50]")
}

func TestPlayRoundEmptyBank(t *testing.T) {
	e := session.New("Nutrition", listBank{}, session.WithTimeLimit(0))

	var out bytes.Buffer
	sum := playRound(context.Background(), scanner("1\n"), &out, e)

	assert.Equal(t, 0, sum.Answered)
	assert.Contains(t, out.String(), "No questions for Nutrition yet.")
}

func TestPrintStats(t *testing.T) {
	ctx := context.Background()
	p := progress.New(ctx, store.NewMemoryKV(), zap.NewNop())
	p.RecordAnswer(ctx, "Nutrition", true)
	p.RecordAnswer(ctx, "Nutrition", false)
	p.RecordAnswer(ctx, "Anatomy", true)

	var out bytes.Buffer
	printStats(&out, p.Snapshot())
	text := out.String()

	assert.Contains(t, text, "Answered:  3")
	assert.Contains(t, text, "Accuracy:  67%")
	assert.Less(t, strings.Index(text, "Anatomy"), strings.Index(text, "Nutrition"))
	assert.Contains(t, text, "50%")
}

func TestPrintStatsEmpty(t *testing.T) {
	var out bytes.Buffer
	printStats(&out, progress.Record{})
	assert.Contains(t, out.String(), "Accuracy:  0%")
	assert.NotContains(t, out.String(), "Subject")
}

func TestPrintBookmarks(t *testing.T) {
	ctx := context.Background()
	b := bank.New(ctx, store.NewMemoryKV(), zap.NewNop())
	q, ok := b.At(bank.Nutrition, 0)
	require.True(t, ok)

	var out bytes.Buffer
	printBookmarks(&out, []progress.QuestionRef{
		{Subject: bank.Nutrition, Index: 0},
		{Subject: bank.Nutrition, Index: 100000},
	}, b)
	text := out.String()

	assert.Contains(t, text, q.Text)
	assert.Contains(t, text, "Answer: "+q.CorrectOption())
	assert.Contains(t, text, "(no longer in bank)")

	out.Reset()
	printBookmarks(&out, nil, b)
	assert.Equal(t, "No bookmarks.\n", out.String())
}

func TestPrintBankTable(t *testing.T) {
	ctx := context.Background()
	b := bank.New(ctx, store.NewMemoryKV(), zap.NewNop())
	coord := replenish.New(b, nil)

	var out bytes.Buffer
	printBankTable(&out, b.Subjects(), coord)
	text := out.String()

	assert.Contains(t, text, bank.Nutrition)
	assert.Contains(t, text, "TOTAL")
}

func TestPrintResults(t *testing.T) {
	var out bytes.Buffer
	printResults(&out, nil)
	assert.Equal(t, "Nothing to collect.\n", out.String())

	out.Reset()
	printResults(&out, []replenish.Result{
		{Subject: "Nutrition", Fetched: 10, Accepted: 4, Inserted: 3},
		{Subject: "Anatomy", Skipped: true},
		{Subject: "Sociology", UsedFallback: true, Err: errors.New("boom\nagain")},
	})
	text := out.String()
	assert.Contains(t, text, "skipped (already collecting)")
	assert.Contains(t, text, "fallback, boom; again")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "Mé", truncate("Médecine", 2))
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0050", formatCost(0.005))
	assert.Equal(t, "$1.25", formatCost(1.25))
}
