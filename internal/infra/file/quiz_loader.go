package file

import (
	"context"
	"fmt"
	"os"

	"horror-quiz-service/internal/domain"
)

// QuizLoader reads the quiz document from a JSON file on disk.
type QuizLoader struct {
	path string
}

func NewQuizLoader(path string) *QuizLoader {
	return &QuizLoader{path: path}
}

func (l *QuizLoader) LoadQuizData(ctx context.Context) (domain.QuizData, error) {
	if err := ctx.Err(); err != nil {
		return domain.QuizData{}, err
	}
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return domain.QuizData{}, fmt.Errorf("read quiz file: %w", err)
	}
	data, err := domain.ParseQuizData(raw)
	if err != nil {
		return domain.QuizData{}, fmt.Errorf("parse quiz file %s: %w", l.path, err)
	}
	return data, nil
}
