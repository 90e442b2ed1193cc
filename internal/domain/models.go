package domain

import (
	"encoding/json"
	"fmt"
)

// Question is passed through untouched; the service never looks inside it.
type Question = json.RawMessage

// Level is a named group of questions.
type Level struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// QuizData is the whole quiz document, loaded once at startup.
type QuizData struct {
	Levels []Level `json:"levels"`
}

// LevelSummary is the listing projection of a level.
type LevelSummary struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	QuestionCount int    `json:"question_count"`
}

// Stats aggregates counts over the loaded data.
type Stats struct {
	TotalLevels    int      `json:"total_levels"`
	TotalQuestions int      `json:"total_questions"`
	GamesFeatured  []string `json:"games_featured"`
}

// QuestionCount returns the total number of questions across all levels.
func (d QuizData) QuestionCount() int {
	total := 0
	for _, level := range d.Levels {
		total += len(level.Questions)
	}
	return total
}

// ParseQuizData decodes a quiz document and checks it is usable.
func ParseQuizData(raw []byte) (QuizData, error) {
	var data QuizData
	if err := json.Unmarshal(raw, &data); err != nil {
		return QuizData{}, fmt.Errorf("%w: %v", ErrInvalidQuizData, err)
	}
	if err := data.Normalize(); err != nil {
		return QuizData{}, err
	}
	return data, nil
}

// Normalize replaces nil question lists with empty ones and rejects duplicate ids.
func (d *QuizData) Normalize() error {
	if d.Levels == nil {
		d.Levels = []Level{}
	}
	seen := make(map[int]struct{}, len(d.Levels))
	for i := range d.Levels {
		level := &d.Levels[i]
		if _, ok := seen[level.ID]; ok {
			return fmt.Errorf("%w: %w %d", ErrInvalidQuizData, ErrDuplicateLevelID, level.ID)
		}
		seen[level.ID] = struct{}{}
		if level.Questions == nil {
			level.Questions = []Question{}
		}
	}
	return nil
}
