package cli

import (
	"context"
	"time"

	"aurora-quiz/internal/app"
	"aurora-quiz/internal/config"
	"aurora-quiz/internal/infra/memory"
	pgloader "aurora-quiz/internal/infra/postgres"
	redisstore "aurora-quiz/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// backends holds the content and session stores selected by config.
type backends struct {
	banks    app.QuestionSetRepository
	sessions app.SessionRepository
	closers  []func()
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// openBackends picks Postgres over a YAML file over the built-in sample for content,
// and Redis over process memory for caching and session snapshots.
func openBackends(ctx context.Context, cfg config.Config, log *zap.Logger) (*backends, error) {
	b := &backends{}

	var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(memory.SampleQuestionSet())
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		loader = pgloader.NewQuestionLoader(pool)
		log.Info("question source", zap.String("kind", "postgres"))
	case cfg.Bank.Path != "":
		loader = memory.NewFileQuestionLoader(cfg.Bank.Path)
		log.Info("question source", zap.String("kind", "file"), zap.String("path", cfg.Bank.Path))
	default:
		log.Info("question source", zap.String("kind", "sample"))
	}

	bankTTL := config.Duration(cfg.Bank.TTL, 10*time.Minute)
	if cfg.Redis.Addr == "" {
		b.banks = memory.NewQuestionRepository(loader, bankTTL)
		b.sessions = memory.NewSessionStore()
		return b, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	b.closers = append(b.closers, func() { _ = client.Close() })
	b.banks = redisstore.NewQuestionRepository(client, loader, bankTTL, log)
	b.sessions = redisstore.NewSessionStore(client, config.Duration(cfg.Redis.TTL, 10*time.Minute))
	log.Info("redis enabled", zap.String("addr", cfg.Redis.Addr))
	return b, nil
}
