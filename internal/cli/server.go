package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"horror-quiz-service/internal/app"
	"horror-quiz-service/internal/config"
	"horror-quiz-service/internal/infra/file"
	pgloader "horror-quiz-service/internal/infra/postgres"
	redisstore "horror-quiz-service/internal/infra/redis"
	transport "horror-quiz-service/internal/transport/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Load the quiz data and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if portFlag != "" {
		cfg.Server.Port = portFlag
	}

	server, err := buildServer(ctx, cfg)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	}
	log.Printf("starting quiz service on %s", ln.Addr())
	return serve(ctx, server, ln)
}

// buildServer loads the quiz data and prepares the HTTP server without binding a port.
func buildServer(ctx context.Context, cfg config.Config) (*http.Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loader, closeLoader, err := newQuizLoader(ctx, cfg)
	if err != nil {
		return nil, err
	}
	service, err := app.NewQuizServiceFromLoader(ctx, loader)
	closeLoader()
	if err != nil {
		return nil, err
	}
	stats := service.Stats()
	log.Printf("loaded %d levels with %d questions from %s", stats.TotalLevels, stats.TotalQuestions, cfg.Quiz.Source)

	handler, err := transport.NewHandler(service, transport.Options{
		StaticDir:    cfg.Web.StaticDir,
		TemplatePath: cfg.Web.TemplatePath,
	})
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  config.Duration(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: config.Duration(cfg.Server.WriteTimeout, 15*time.Second),
	}, nil
}

// newQuizLoader picks the configured source. The returned close func releases
// connections once the data has been read.
func newQuizLoader(ctx context.Context, cfg config.Config) (app.QuizLoader, func(), error) {
	switch cfg.Quiz.Source {
	case config.SourcePostgres:
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return pgloader.NewQuizLoader(pool), pool.Close, nil
	case config.SourceRedis:
		client := newRedisClient(cfg)
		return redisstore.NewQuizStore(client, cfg.Quiz.RedisKey), func() { _ = client.Close() }, nil
	default:
		return file.NewQuizLoader(cfg.Quiz.DataPath), func() {}, nil
	}
}

func newRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// serve runs server on ln until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, server *http.Server, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
