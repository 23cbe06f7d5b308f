//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/carikost/carikost/internal/bootstrap"
	"github.com/carikost/carikost/internal/domain/catalog"
	"github.com/carikost/carikost/internal/domain/chat"
	"github.com/carikost/carikost/internal/domain/search"
	"github.com/carikost/carikost/internal/infra/config"
	"github.com/carikost/carikost/internal/infra/llm/gemini"
	"github.com/carikost/carikost/internal/infra/scheduler"
	httpiface "github.com/carikost/carikost/internal/interface/http"
	"github.com/carikost/carikost/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSearchConfig,
		provideSchedulerConfig,
		provideGeminiClient,
		provideValkeyClient,
		provideListingCache,
		provideWebResultCache,
		provideProviders,
		provideWebSearcher,
		provideCatalogStore,
		search.NewService,
		chat.NewService,
		catalog.NewService,
		scheduler.New,
		wire.Bind(new(search.GenClient), new(*gemini.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
