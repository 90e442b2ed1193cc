package cli

import (
	"context"
	"fmt"
	"log"

	"horror-quiz-service/internal/config"
	"horror-quiz-service/internal/domain"
	"horror-quiz-service/internal/infra/file"
	"horror-quiz-service/internal/infra/postgres"
	redisstore "horror-quiz-service/internal/infra/redis"

	"github.com/spf13/cobra"
)

// QuizSaver replaces the quiz document held by a store.
type QuizSaver interface {
	SaveQuizData(ctx context.Context, data domain.QuizData) error
}

// NewSeedCmd copies the JSON data file into Postgres or Redis.
func NewSeedCmd(configPath *string) *cobra.Command {
	var target, dataPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Copy the quiz data file into a shared store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if dataPath != "" {
				cfg.Quiz.DataPath = dataPath
			}
			return runSeed(cmd.Context(), cfg, target)
		},
	}
	cmd.Flags().StringVar(&target, "target", config.SourcePostgres, "store to seed: postgres or redis")
	cmd.Flags().StringVar(&dataPath, "data", "", "quiz JSON file (overrides quiz.data_path)")
	return cmd
}

func runSeed(ctx context.Context, cfg config.Config, target string) error {
	data, err := file.NewQuizLoader(cfg.Quiz.DataPath).LoadQuizData(ctx)
	if err != nil {
		return err
	}

	switch target {
	case config.SourcePostgres:
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
		db := postgres.OpenDB(cfg.Postgres.URL)
		defer db.Close()
		err = seed(ctx, postgres.NewQuizSeeder(db), data)
	case config.SourceRedis:
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("redis addr not configured")
		}
		client := newRedisClient(cfg)
		defer client.Close()
		err = seed(ctx, redisstore.NewQuizStore(client, cfg.Quiz.RedisKey), data)
	default:
		return fmt.Errorf("unknown seed target %q", target)
	}
	if err != nil {
		return err
	}
	log.Printf("seeded %d levels with %d questions into %s", len(data.Levels), data.QuestionCount(), target)
	return nil
}

func seed(ctx context.Context, saver QuizSaver, data domain.QuizData) error {
	if err := saver.SaveQuizData(ctx, data); err != nil {
		return fmt.Errorf("seed quiz data: %w", err)
	}
	return nil
}
