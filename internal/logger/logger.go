package logger

import (
	"aurora-quiz/internal/config"
	"go.uber.org/zap"
)

func New(cfg config.Config) (*zap.Logger, error) {
	if cfg.Log.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
