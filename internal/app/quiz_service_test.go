package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"horror-quiz-service/internal/app"
	"horror-quiz-service/internal/domain"
	"horror-quiz-service/internal/infra/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLevelsPreservesOrderAndCounts(t *testing.T) {
	service := app.NewQuizService(quizData([]int{3, 1, 2}, []int{2, 0, 4}))

	levels := service.ListLevels()
	require.Len(t, levels, 3)
	for i, want := range []struct{ id, count int }{{3, 2}, {1, 0}, {2, 4}} {
		assert.Equal(t, want.id, levels[i].ID)
		assert.Equal(t, want.count, levels[i].QuestionCount)
		assert.Equal(t, fmt.Sprintf("Level %d", want.id), levels[i].Name)
	}
}

func TestListLevelsEmpty(t *testing.T) {
	service := app.NewQuizService(domain.QuizData{})
	levels := service.ListLevels()
	assert.NotNil(t, levels)
	assert.Empty(t, levels)
}

func TestGetLevel(t *testing.T) {
	service := app.NewQuizService(quizData([]int{1, 2, 0, -4}, []int{3, 5, 1, 1}))

	for _, id := range []int{1, 2, 0, -4} {
		level, err := service.GetLevel(id)
		require.NoError(t, err)
		assert.Equal(t, id, level.ID)
	}

	for _, id := range []int{99, -1, 3} {
		_, err := service.GetLevel(id)
		assert.True(t, errors.Is(err, domain.ErrLevelNotFound), "id %d", id)
	}
}

func TestNewQuizServiceNormalizesNilQuestions(t *testing.T) {
	service := app.NewQuizService(domain.QuizData{Levels: []domain.Level{{ID: 1, Name: "Empty"}}})

	levels := service.ListLevels()
	require.Len(t, levels, 1)
	assert.Zero(t, levels[0].QuestionCount)

	level, err := service.GetLevel(1)
	require.NoError(t, err)
	raw, err := json.Marshal(level)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Empty","description":"","questions":[]}`, string(raw))
}

func TestGetLevelReturnsQuestions(t *testing.T) {
	service := app.NewQuizService(quizData([]int{7}, []int{2}))

	level, err := service.GetLevel(7)
	require.NoError(t, err)
	require.Len(t, level.Questions, 2)
	assert.JSONEq(t, `{"question":"Q7-1"}`, string(level.Questions[1]))
}

func TestStatsTwoLevelScenario(t *testing.T) {
	service := app.NewQuizService(quizData([]int{1, 2}, []int{3, 5}))

	stats := service.Stats()
	assert.Equal(t, 2, stats.TotalLevels)
	assert.Equal(t, 8, stats.TotalQuestions)
	assert.Equal(t, []string{"Garten of Banban", "Poppy Playtime", "Five Nights at Freddy's"}, stats.GamesFeatured)
}

func TestStatsGamesFeaturedIsFixed(t *testing.T) {
	empty := app.NewQuizService(domain.QuizData{}).Stats()
	assert.Zero(t, empty.TotalLevels)
	assert.Zero(t, empty.TotalQuestions)
	assert.Equal(t, []string{"Garten of Banban", "Poppy Playtime", "Five Nights at Freddy's"}, empty.GamesFeatured)

	// Mutating a returned slice must not leak into later calls.
	empty.GamesFeatured[0] = "Something else"
	again := app.NewQuizService(domain.QuizData{}).Stats()
	assert.Equal(t, "Garten of Banban", again.GamesFeatured[0])
}

func TestQueriesAreIdempotent(t *testing.T) {
	service := app.NewQuizService(quizData([]int{1, 2}, []int{3, 5}))

	assert.Equal(t, service.ListLevels(), service.ListLevels())
	assert.Equal(t, service.Stats(), service.Stats())
	first, err := service.GetLevel(2)
	require.NoError(t, err)
	second, err := service.GetLevel(2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNewQuizServiceFromLoader(t *testing.T) {
	loader := memory.NewStaticQuizLoader(quizData([]int{1, 2}, []int{3, 5}))

	service, err := app.NewQuizServiceFromLoader(context.Background(), loader)
	require.NoError(t, err)
	assert.Equal(t, 8, service.Stats().TotalQuestions)
}

func TestNewQuizServiceFromLoaderFails(t *testing.T) {
	boom := errors.New("boom")
	_, err := app.NewQuizServiceFromLoader(context.Background(), failingLoader{err: boom})
	assert.ErrorIs(t, err, boom)

	dup := memory.NewStaticQuizLoader(domain.QuizData{Levels: []domain.Level{{ID: 1}, {ID: 1}}})
	_, err = app.NewQuizServiceFromLoader(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateLevelID)
}

type failingLoader struct {
	err error
}

func (l failingLoader) LoadQuizData(context.Context) (domain.QuizData, error) {
	return domain.QuizData{}, l.err
}

func quizData(ids []int, counts []int) domain.QuizData {
	data := domain.QuizData{}
	for i, id := range ids {
		questions := make([]domain.Question, counts[i])
		for q := range questions {
			raw, _ := json.Marshal(map[string]string{"question": fmt.Sprintf("Q%d-%d", id, q)})
			questions[q] = raw
		}
		data.Levels = append(data.Levels, domain.Level{
			ID:          id,
			Name:        fmt.Sprintf("Level %d", id),
			Description: "desc",
			Questions:   questions,
		})
	}
	return data
}
