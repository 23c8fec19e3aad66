package home

import (
	"context"
	"strconv"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
	"github.com/ashmilgit15/nursing-mcq-website/internal/progress"
	"github.com/ashmilgit15/nursing-mcq-website/internal/replenish"
	"github.com/ashmilgit15/nursing-mcq-website/internal/router"
	"github.com/ashmilgit15/nursing-mcq-website/internal/screen"
	"github.com/ashmilgit15/nursing-mcq-website/internal/screens/quiz"
	"github.com/ashmilgit15/nursing-mcq-website/internal/store"
)

func newTestHome(t *testing.T) (*HomeScreen, screen.Deps) {
	t.Helper()
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	kv := store.NewMemoryKV()
	b := bank.New(ctx, kv, logger)
	deps := screen.Deps{
		Bank:        b,
		Coordinator: replenish.New(b, nil, replenish.WithLogger(logger)),
		Progress:    progress.New(ctx, kv, logger),
		Logger:      logger,
	}
	return New(deps), deps
}

func TestHomeListsSubjectsWithStatus(t *testing.T) {
	h, deps := newTestHome(t)

	subjects := deps.Bank.Subjects()
	require.Len(t, h.menu.Items, len(subjects)+3)

	first := h.menu.Items[0]
	assert.Equal(t, subjects[0], first.Label)
	assert.Contains(t, first.Detail, "questions")
	assert.Contains(t, first.Detail, "needs more", "seed banks sit below the threshold")

	view := h.View(100, 40)
	assert.Contains(t, view, "Choose a subject to practice")
	assert.Contains(t, view, subjects[0])
}

func TestHomeSelectSubjectPushesQuiz(t *testing.T) {
	h, _ := newTestHome(t)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	q, ok := msg.Screen.(*quiz.QuizScreen)
	require.True(t, ok, "got %T", msg.Screen)
	assert.Equal(t, h.subjects[0], q.Title())
}

func TestHomeRefreshKeepsSelection(t *testing.T) {
	h, deps := newTestHome(t)

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	require.Equal(t, 2, h.menu.Selected)

	subject := h.subjects[0]
	deps.Bank.Append(context.Background(), subject, []bank.Question{{
		Text:         "Which unit measures energy in food?",
		Options:      []string{"Kilocalorie", "Newton"},
		CorrectIndex: 0,
		Source:       bank.SourceFetched,
	}})
	h.Update(screen.BankUpdatedMsg{Subject: subject, Inserted: 1})

	assert.Equal(t, 2, h.menu.Selected)
	want := deps.Bank.Count(subject)
	assert.True(t, strings.HasPrefix(h.menu.Items[0].Detail, strconv.Itoa(want)+" questions"))
}

func TestHomeBookmarkDetail(t *testing.T) {
	h, deps := newTestHome(t)
	deps.Progress.ToggleBookmark(context.Background(), progress.QuestionRef{Subject: "Nutrition", Index: 0})
	h.Update(screen.TickMsg{})

	bm := h.menu.Items[len(h.menu.Items)-3]
	assert.Equal(t, "Bookmarks", bm.Label)
	assert.Equal(t, "1 saved", bm.Detail)
}

func TestHomeQuitItem(t *testing.T) {
	h, _ := newTestHome(t)
	h.menu.Selected = len(h.menu.Items) - 1

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestScrollWindow(t *testing.T) {
	menu := "a\nb\nc\nd\ne\nf\n"
	assert.Equal(t, "a\nb\nc", scrollWindow(menu, 0, 3))
	assert.Equal(t, "c\nd\ne", scrollWindow(menu, 3, 3))
	assert.Equal(t, "d\ne\nf", scrollWindow(menu, 5, 3))
	assert.Equal(t, "a\nb\nc\nd\ne\nf", scrollWindow(menu, 5, 10))
}
