package app

import (
	"context"
	"fmt"

	"horror-quiz-service/internal/domain"
)

// gamesFeatured is fixed and does not depend on the loaded levels.
var gamesFeatured = [...]string{"Garten of Banban", "Poppy Playtime", "Five Nights at Freddy's"}

// QuizLoader produces the quiz document from a backing source (file, Postgres, Redis, memory).
type QuizLoader interface {
	LoadQuizData(ctx context.Context) (domain.QuizData, error)
}

// QuizService answers read-only queries over quiz data loaded once at startup.
// It holds no mutable state, so it is safe for concurrent use.
type QuizService struct {
	levels []domain.Level
}

// NewQuizService copies the levels and replaces nil question lists with empty ones.
// Duplicate ids are not checked here; loaders reject them and GetLevel returns the first match.
func NewQuizService(data domain.QuizData) *QuizService {
	levels := make([]domain.Level, len(data.Levels))
	copy(levels, data.Levels)
	for i := range levels {
		if levels[i].Questions == nil {
			levels[i].Questions = []domain.Question{}
		}
	}
	return &QuizService{levels: levels}
}

// NewQuizServiceFromLoader loads the quiz document once and builds a service over it.
func NewQuizServiceFromLoader(ctx context.Context, loader QuizLoader) (*QuizService, error) {
	data, err := loader.LoadQuizData(ctx)
	if err != nil {
		return nil, fmt.Errorf("load quiz data: %w", err)
	}
	if err := data.Normalize(); err != nil {
		return nil, fmt.Errorf("load quiz data: %w", err)
	}
	return NewQuizService(data), nil
}

// ListLevels projects every level, in source order, to its summary.
func (s *QuizService) ListLevels() []domain.LevelSummary {
	summaries := make([]domain.LevelSummary, 0, len(s.levels))
	for _, level := range s.levels {
		summaries = append(summaries, domain.LevelSummary{
			ID:            level.ID,
			Name:          level.Name,
			Description:   level.Description,
			QuestionCount: len(level.Questions),
		})
	}
	return summaries
}

// GetLevel returns the first level with the given id.
func (s *QuizService) GetLevel(id int) (domain.Level, error) {
	for i := range s.levels {
		if s.levels[i].ID == id {
			return s.levels[i], nil
		}
	}
	return domain.Level{}, domain.ErrLevelNotFound
}

// Stats reports level and question totals plus the featured games.
func (s *QuizService) Stats() domain.Stats {
	total := 0
	for _, level := range s.levels {
		total += len(level.Questions)
	}
	return domain.Stats{
		TotalLevels:    len(s.levels),
		TotalQuestions: total,
		GamesFeatured:  append([]string(nil), gamesFeatured[:]...),
	}
}
