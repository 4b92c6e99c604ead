package controllers

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/Arylite/nephtys/models"
	"github.com/Arylite/nephtys/utils"
)

// ViewCounter records and reads per-webtoon view counts.
type ViewCounter interface {
	Add(ctx context.Context, id string) (*utils.WebtoonViews, error)
	Get(ctx context.Context, id string) (*utils.WebtoonViews, error)
}

// Searcher is the search sync service as seen by the HTTP layer.
type Searcher interface {
	ReindexAll(ctx context.Context) (int, error)
	Query(ctx context.Context, text string) ([]models.Webtoon, error)
}
