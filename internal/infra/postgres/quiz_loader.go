package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"horror-quiz-service/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// QuizLoader loads levels from the quiz_levels table, questions kept as JSONB.
type QuizLoader struct {
	pool *pgxpool.Pool
}

func NewQuizLoader(pool *pgxpool.Pool) *QuizLoader {
	return &QuizLoader{pool: pool}
}

func (l *QuizLoader) LoadQuizData(ctx context.Context) (domain.QuizData, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, name, description, questions FROM quiz_levels ORDER BY position, id`)
	if err != nil {
		return domain.QuizData{}, fmt.Errorf("query levels: %w", err)
	}
	defer rows.Close()

	data := domain.QuizData{Levels: []domain.Level{}}
	for rows.Next() {
		var (
			level domain.Level
			raw   []byte
		)
		if err := rows.Scan(&level.ID, &level.Name, &level.Description, &raw); err != nil {
			return domain.QuizData{}, fmt.Errorf("scan level: %w", err)
		}
		if err := json.Unmarshal(raw, &level.Questions); err != nil {
			return domain.QuizData{}, fmt.Errorf("%w: level %d questions: %v", domain.ErrInvalidQuizData, level.ID, err)
		}
		data.Levels = append(data.Levels, level)
	}
	if err := rows.Err(); err != nil {
		return domain.QuizData{}, fmt.Errorf("iterate levels: %w", err)
	}
	if err := data.Normalize(); err != nil {
		return domain.QuizData{}, err
	}
	return data, nil
}
