package bootstrap

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/finbook/finbook-api/internal/config"
	"github.com/finbook/finbook-api/pkg/logger"
)

type Bootstrap struct {
	Log    *slog.Logger
	Dynamo *dynamodb.Client
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewJSONHandler)
	bs.Dynamo, err = InitDynamo(applicationCtx, cfg)
	if err != nil {
		return bs, err
	}

	return bs, nil
}
