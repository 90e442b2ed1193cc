package memory

import (
	"context"

	"horror-quiz-service/internal/domain"
)

// StaticQuizLoader is a simple loader backed by an in-memory document (useful for tests/demos).
type StaticQuizLoader struct {
	data domain.QuizData
}

func NewStaticQuizLoader(data domain.QuizData) *StaticQuizLoader {
	return &StaticQuizLoader{data: data}
}

func (l *StaticQuizLoader) LoadQuizData(ctx context.Context) (domain.QuizData, error) {
	if err := ctx.Err(); err != nil {
		return domain.QuizData{}, err
	}
	levels := make([]domain.Level, len(l.data.Levels))
	copy(levels, l.data.Levels)
	return domain.QuizData{Levels: levels}, nil
}
