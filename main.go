package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Arylite/nephtys/config"
	"github.com/Arylite/nephtys/controllers"
	"github.com/Arylite/nephtys/models"
	"github.com/Arylite/nephtys/repository"
	"github.com/Arylite/nephtys/routes"
	"github.com/Arylite/nephtys/search"
	"github.com/Arylite/nephtys/storage"
	"github.com/Arylite/nephtys/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db := config.InitDatabase(&models.Webtoon{})
	store := repository.NewWebtoonStore(db)

	objects, err := storage.NewR2Gateway(context.Background(), storage.Options{
		Endpoint:        cfg.StorageEndpointURL(),
		Bucket:          cfg.StorageBucket,
		Region:          cfg.StorageRegion,
		AccessKeyID:     cfg.StorageAccessKeyID,
		SecretAccessKey: cfg.StorageSecretAccessKey,
	})
	if err != nil {
		utils.Logger.Fatal("object storage init failed", zap.Error(err))
	}

	rc := utils.GetRedis()

	var index search.Index
	if algolia, err := search.NewAlgoliaIndex(cfg.SearchAppID, cfg.SearchAPIKey, cfg.SearchIndexName); err != nil {
		utils.Logger.Warn("search index disabled", zap.Error(err))
	} else {
		index = algolia
	}
	searchSvc := search.NewService(index, store, utils.NewCache(rc),
		time.Duration(cfg.SearchCacheTTL)*time.Second, utils.Logger.Named("search"))

	signedURLTTL := time.Duration(cfg.SignedURLTTLSeconds) * time.Second
	r := routes.SetupRouter(cfg, routes.Dependencies{
		Webtoons:  controllers.NewWebtoonController(store, objects, signedURLTTL, utils.Logger.Named("webtoon")),
		Analytics: controllers.NewAnalyticsController(store, utils.NewViewStore(rc)),
		Search:    controllers.NewSearchController(searchSvc, objects, signedURLTTL, utils.Logger.Named("search")),
		Stats:     controllers.NewStatsController(store),
		Config:    controllers.NewConfigController(cfg),
	})

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
