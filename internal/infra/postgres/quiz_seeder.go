package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"horror-quiz-service/internal/domain"
	"horror-quiz-service/internal/infra/postgres/migrations"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

type levelRow struct {
	bun.BaseModel `bun:"table:quiz_levels"`

	ID          int               `bun:"id,pk"`
	Position    int               `bun:"position,notnull"`
	Name        string            `bun:"name,notnull"`
	Description string            `bun:"description,notnull"`
	Questions   []domain.Question `bun:"questions,type:jsonb,notnull"`
}

// OpenDB opens a bun handle over the pg driver for the given DSN.
func OpenDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Migrate applies every pending migration and returns the applied group.
func Migrate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return group, nil
}

// QuizSeeder replaces the contents of quiz_levels with a quiz document.
type QuizSeeder struct {
	db *bun.DB
}

func NewQuizSeeder(db *bun.DB) *QuizSeeder {
	return &QuizSeeder{db: db}
}

// SaveQuizData writes all levels in one transaction; row position follows document order.
func (s *QuizSeeder) SaveQuizData(ctx context.Context, data domain.QuizData) error {
	rows := make([]levelRow, 0, len(data.Levels))
	for i, level := range data.Levels {
		questions := level.Questions
		if questions == nil {
			questions = []domain.Question{}
		}
		rows = append(rows, levelRow{
			ID:          level.ID,
			Position:    i,
			Name:        level.Name,
			Description: level.Description,
			Questions:   questions,
		})
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*levelRow)(nil)).Where("TRUE").Exec(ctx); err != nil {
			return fmt.Errorf("clear levels: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("insert levels: %w", err)
		}
		return nil
	})
}
