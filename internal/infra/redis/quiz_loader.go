package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"horror-quiz-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

// DefaultDocumentKey is where the quiz document lives when no key is configured.
const DefaultDocumentKey = "quiz:document"

// ErrDocumentMissing is returned when the configured key holds nothing.
var ErrDocumentMissing = errors.New("quiz document missing from redis")

// QuizStore keeps the whole quiz document as one JSON string:
//
//	SET quiz:document {"levels":[...]}
//
// Instances load it once at startup; the seed command writes it.
type QuizStore struct {
	client *redis.Client
	key    string
}

func NewQuizStore(client *redis.Client, key string) *QuizStore {
	if key == "" {
		key = DefaultDocumentKey
	}
	return &QuizStore{client: client, key: key}
}

func (s *QuizStore) LoadQuizData(ctx context.Context) (domain.QuizData, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.QuizData{}, fmt.Errorf("%w: key %s", ErrDocumentMissing, s.key)
	}
	if err != nil {
		return domain.QuizData{}, fmt.Errorf("get quiz document: %w", err)
	}
	data, err := domain.ParseQuizData(raw)
	if err != nil {
		return domain.QuizData{}, fmt.Errorf("parse quiz document %s: %w", s.key, err)
	}
	return data, nil
}

// SaveQuizData replaces the stored document. It never expires.
func (s *QuizStore) SaveQuizData(ctx context.Context, data domain.QuizData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal quiz document: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("set quiz document: %w", err)
	}
	return nil
}

// Key returns the redis key holding the document.
func (s *QuizStore) Key() string {
	return s.key
}
